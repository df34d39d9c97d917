package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/scheduler"
	"github.com/marcusball/class-scheduler/internal/slot"
	"github.com/marcusball/class-scheduler/internal/utils"
)

func run(t *testing.T, params *scheduler.Parameters, options *domain.ScheduleOptions) ([]*domain.Schedule, *scheduler.Result) {
	t.Helper()

	s, err := scheduler.New(params, options)
	require.NoError(t, err)

	collector := &scheduler.Collector{}
	res, err := s.Schedule(context.Background(), collector)
	require.NoError(t, err)
	require.Equal(t, res.Count, len(collector.Schedules()))

	return collector.Schedules(), res
}

func sampleOptions() *domain.ScheduleOptions {
	return &domain.ScheduleOptions{
		Periods: []int{1, 2, 3, 4, 5, 6},
		Classes: []domain.Class{
			{Name: "Calculus", Sections: []domain.Section{{"MWF1"}, {"MWF2"}, {"TR1-2"}}},
			{Name: "Physics", Sections: []domain.Section{{"MWF1"}, {"TR2", "F3"}}},
			{Name: "Writing", Sections: []domain.Section{{"MW3"}, {"R1"}}},
		},
	}
}

func TestSchedule_SingleClassSingleSection(t *testing.T) {
	options := &domain.ScheduleOptions{
		Classes: []domain.Class{{Name: "Biology", Sections: []domain.Section{{"TR5-6"}}}},
	}

	schedules, res := run(t, nil, options)
	require.Len(t, schedules, 1)
	assert.False(t, res.Truncated)

	want, err := slot.Parse("TR5-6")
	require.NoError(t, err)
	assert.Equal(t, len(want), schedules[0].Len())
	for _, p := range want {
		class, ok := schedules[0].ClassAt(p)
		assert.True(t, ok)
		assert.Equal(t, "Biology", class)
	}
}

func TestSchedule_AllCombinationsConflict(t *testing.T) {
	options := &domain.ScheduleOptions{
		Classes: []domain.Class{
			{Name: "A", Sections: []domain.Section{{"M1"}, {"T1"}}},
			{Name: "B", Sections: []domain.Section{{"MT1"}, {"M1-2", "T1"}}},
		},
	}

	schedules, res := run(t, nil, options)
	assert.Empty(t, schedules)
	assert.Equal(t, 0, res.Count)
}

func TestSchedule_DepthFirstOrder(t *testing.T) {
	options := &domain.ScheduleOptions{
		Classes: []domain.Class{
			{Name: "A", Sections: []domain.Section{{"M1"}, {"T1"}}},
			{Name: "B", Sections: []domain.Section{{"M1"}, {"W1"}, {"R1"}}},
		},
	}

	schedules, _ := run(t, nil, options)
	require.Len(t, schedules, 5)

	owner := func(s *domain.Schedule, day domain.Day) string {
		class, _ := s.ClassAt(domain.Period{Day: day, Number: 1})
		return class
	}

	// A:M1 conflicts with B:M1, so the first branch yields two schedules
	assert.Equal(t, "B", owner(schedules[0], domain.Wednesday))
	assert.Equal(t, "A", owner(schedules[0], domain.Monday))
	assert.Equal(t, "B", owner(schedules[1], domain.Thursday))
	assert.Equal(t, "A", owner(schedules[2], domain.Tuesday))
	assert.Equal(t, "B", owner(schedules[2], domain.Monday))
	assert.Equal(t, "B", owner(schedules[3], domain.Wednesday))
	assert.Equal(t, "B", owner(schedules[4], domain.Thursday))
}

func TestSchedule_EveryScheduleIsValid(t *testing.T) {
	options := sampleOptions()
	schedules, _ := run(t, nil, options)
	require.NotEmpty(t, schedules)

	for _, s := range schedules {
		require.NoError(t, utils.ValidateSchedule(s, options))
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	options := sampleOptions()

	first, _ := run(t, nil, options)
	second, _ := run(t, nil, options)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]), "schedule %d differs", i)
	}
}

// TestSchedule_DuplicateSlotInSectionConflicts keeps the literal behavior: a section that
// lists the same slot twice collides with itself and is never chosen.
func TestSchedule_DuplicateSlotInSectionConflicts(t *testing.T) {
	options := &domain.ScheduleOptions{
		Classes: []domain.Class{
			{Name: "Lab", Sections: []domain.Section{{"M1", "M1"}, {"T1"}}},
		},
	}

	schedules, _ := run(t, nil, options)
	require.Len(t, schedules, 1)
	_, ok := schedules[0].ClassAt(domain.Period{Day: domain.Tuesday, Number: 1})
	assert.True(t, ok)
}

func TestSchedule_ClassWithoutSections(t *testing.T) {
	options := &domain.ScheduleOptions{
		Classes: []domain.Class{
			{Name: "A", Sections: []domain.Section{{"M1"}}},
			{Name: "Ghost"},
		},
	}

	schedules, _ := run(t, nil, options)
	assert.Empty(t, schedules)
}

func TestSchedule_NoClasses(t *testing.T) {
	schedules, _ := run(t, nil, &domain.ScheduleOptions{})
	require.Len(t, schedules, 1)
	assert.Equal(t, 0, schedules[0].Len())
}

func TestSchedule_MaxResults(t *testing.T) {
	options := sampleOptions()
	all, _ := run(t, nil, options)
	require.Greater(t, len(all), 2)

	limited, res := run(t, &scheduler.Parameters{MaxResults: 2}, options)
	require.Len(t, limited, 2)
	assert.True(t, res.Truncated)
	assert.True(t, all[0].Equal(limited[0]))
	assert.True(t, all[1].Equal(limited[1]))

	exact, res := run(t, &scheduler.Parameters{MaxResults: len(all)}, options)
	assert.Len(t, exact, len(all))
	assert.False(t, res.Truncated)
}

func TestSchedule_WorkersFindSameSet(t *testing.T) {
	options := sampleOptions()
	sequential, _ := run(t, nil, options)
	parallel, _ := run(t, &scheduler.Parameters{Workers: 4}, options)

	require.Len(t, parallel, len(sequential))
	for _, want := range sequential {
		found := false
		for _, got := range parallel {
			if want.Equal(got) {
				found = true
				break
			}
		}
		assert.True(t, found)
	}
}

func TestSchedule_SinkStop(t *testing.T) {
	s, err := scheduler.New(nil, sampleOptions())
	require.NoError(t, err)

	calls := 0
	res, err := s.Schedule(context.Background(), scheduler.SinkFunc(func(context.Context, *domain.Schedule, *domain.ScheduleOptions) error {
		calls++
		return scheduler.ErrStopped
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, res.Count)
}

func TestSchedule_SinkError(t *testing.T) {
	s, err := scheduler.New(&scheduler.Parameters{Workers: 2}, sampleOptions())
	require.NoError(t, err)

	boom := errors.New("disk full")
	_, err = s.Schedule(context.Background(), scheduler.SinkFunc(func(context.Context, *domain.Schedule, *domain.ScheduleOptions) error {
		return boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestSchedule_Cancelled(t *testing.T) {
	s, err := scheduler.New(nil, sampleOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Schedule(ctx, &scheduler.Collector{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchedule_RandomCatalogsAreValid(t *testing.T) {
	for i := 0; i < 20; i++ {
		options := utils.GenerateRandomCatalog(4, 3)
		schedules, _ := run(t, nil, options)
		for _, s := range schedules {
			require.NoError(t, utils.ValidateSchedule(s, options))
		}
	}
}

func BenchmarkSchedule_RandomCatalog(b *testing.B) {
	options := utils.GenerateRandomCatalog(6, 4)
	s, err := scheduler.New(nil, options)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Schedule(context.Background(), scheduler.SinkFunc(func(context.Context, *domain.Schedule, *domain.ScheduleOptions) error {
			return nil
		}))
	}
}

func TestTee(t *testing.T) {
	first, second := &scheduler.Collector{}, &scheduler.Collector{}
	schedules, _ := run(t, nil, sampleOptions())

	s, err := scheduler.New(nil, sampleOptions())
	require.NoError(t, err)
	res, err := s.Schedule(context.Background(), scheduler.Tee(first, second))
	require.NoError(t, err)

	assert.Equal(t, len(schedules), res.Count)
	assert.Len(t, first.Schedules(), res.Count)
	assert.Len(t, second.Schedules(), res.Count)
}
