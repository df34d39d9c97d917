package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/render"
)

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		flagJSON = false
		flagXLSX = ""
	})
}

func tinyCatalog() *domain.ScheduleOptions {
	return &domain.ScheduleOptions{
		Periods: []int{1},
		Classes: []domain.Class{
			{Name: "A", Sections: []domain.Section{{"M1"}, {"T1"}}},
			{Name: "B", Sections: []domain.Section{{"M1"}}},
		},
	}
}

func TestGenerate_Table(t *testing.T) {
	resetFlags(t)

	var out bytes.Buffer
	require.NoError(t, generate(context.Background(), &out, tinyCatalog(), nil))

	assert.Contains(t, out.String(), "Schedule 1\n")
	assert.NotContains(t, out.String(), "Schedule 2")
}

func TestGenerate_Nothing(t *testing.T) {
	resetFlags(t)

	options := &domain.ScheduleOptions{
		Classes: []domain.Class{
			{Name: "A", Sections: []domain.Section{{"M1"}}},
			{Name: "B", Sections: []domain.Section{{"M1"}}},
		},
	}

	var out bytes.Buffer
	require.NoError(t, generate(context.Background(), &out, options, nil))
	assert.Equal(t, "No conflict-free schedule found.\n", out.String())
}

func TestGenerate_JSONAndWorkbook(t *testing.T) {
	resetFlags(t)
	flagJSON = true
	flagXLSX = filepath.Join(t.TempDir(), "out.xlsx")

	var out bytes.Buffer
	require.NoError(t, generate(context.Background(), &out, tinyCatalog(), nil))

	var got struct {
		Schedules []*domain.Schedule `json:"schedules"`
		Count     int                `json:"count"`
		Truncated bool               `json:"truncated"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Schedules, 1)

	class, ok := got.Schedules[0].ClassAt(domain.Period{Day: domain.Tuesday, Number: 1})
	assert.True(t, ok)
	assert.Equal(t, "A", class)

	f, err := excelize.OpenFile(flagXLSX)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{render.SheetName(1)}, f.GetSheetList())
}

func TestCheck(t *testing.T) {
	options := &domain.ScheduleOptions{
		Classes: []domain.Class{
			{Name: "Lab", Sections: []domain.Section{{"TR5-6", "F1"}}},
			{Name: "Ghost"},
		},
	}

	var out bytes.Buffer
	require.NoError(t, check(&out, options))
	assert.Equal(t, "Lab\n"+
		"  1. TR5-6, F1 -> T5 R5 T6 R6 F1\n"+
		"Ghost\n"+
		"  no sections, nothing can be scheduled\n", out.String())
}
