package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/slot"
	"golang.org/x/sync/errgroup"
)

var errLimitReached = errors.New("scheduler: result limit reached")

type Scheduler struct {
	parameters *Parameters
	options    *domain.ScheduleOptions
	classes    []candidate
}

// New expands every section of options up front, so a malformed slot notation is
// reported here rather than halfway through a search.
func New(parameters *Parameters, options *domain.ScheduleOptions) (*Scheduler, error) {
	if parameters == nil {
		parameters = &Parameters{}
	}

	s := &Scheduler{
		parameters: parameters,
		options:    options,
		classes:    make([]candidate, 0, len(options.Classes)),
	}

	for _, class := range options.Classes {
		c := candidate{
			name:     class.Name,
			sections: make([][]domain.Period, 0, len(class.Sections)),
		}

		for i, section := range class.Sections {
			periods, err := slot.ExpandSection(section)
			if err != nil {
				return nil, fmt.Errorf("class %q section %d: %w", class.Name, i+1, err)
			}
			c.sections = append(c.sections, periods)
		}

		s.classes = append(s.classes, c)
	}

	return s, nil
}

// Schedule hands every conflict-free assignment of one section per class to sink.
// Finding nothing is not an error. With a single worker the schedules arrive in
// depth-first order: classes in declared order, sections in declared order.
func (s *Scheduler) Schedule(ctx context.Context, sink Sink) (*Result, error) {
	e := &emitter{
		sink:    sink,
		options: s.options,
		max:     s.parameters.MaxResults,
	}

	var err error
	if s.parameters.Workers > 1 && len(s.classes) > 0 {
		err = s.fanOut(ctx, e)
	} else {
		err = s.search(ctx, domain.NewSchedule(), 0, e)
	}

	// a sink failure wins over the stop signals other workers saw after it
	if e.err != nil {
		return nil, e.err
	}

	switch {
	case err == nil, errors.Is(err, errLimitReached), errors.Is(err, ErrStopped):
	default:
		return nil, err
	}

	slog.Debug("schedule search finished", "classes", len(s.classes), "schedules", e.count, "truncated", e.truncated)

	return &Result{Count: e.count, Truncated: e.truncated}, nil
}

// search places class i onto partial, which it never modifies.
func (s *Scheduler) search(ctx context.Context, partial *domain.Schedule, i int, e *emitter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if i == len(s.classes) {
		return e.emit(ctx, partial)
	}

	class := s.classes[i]
	for _, periods := range class.sections {
		next, ok := place(partial, class.name, periods)
		if !ok {
			continue
		}

		if err := s.search(ctx, next, i+1, e); err != nil {
			return err
		}
	}

	return nil
}

// fanOut searches the subtree of each section of the first class on its own goroutine.
func (s *Scheduler) fanOut(ctx context.Context, e *emitter) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parameters.Workers)

	first := s.classes[0]
	for _, periods := range first.sections {
		g.Go(func() error {
			next, ok := place(domain.NewSchedule(), first.name, periods)
			if !ok {
				return nil
			}
			return s.search(gctx, next, 1, e)
		})
	}

	return g.Wait()
}

// place copies parent and claims every period for class on the copy. The copy is
// dropped at the first period that is already taken.
func place(parent *domain.Schedule, class string, periods []domain.Period) (*domain.Schedule, bool) {
	child := parent.Clone()
	for _, p := range periods {
		if !child.Insert(p, class) {
			return nil, false
		}
	}
	return child, true
}

// emitter serializes deliveries to the sink and enforces MaxResults.
type emitter struct {
	mu        sync.Mutex
	sink      Sink
	options   *domain.ScheduleOptions
	max       int
	count     int
	truncated bool
	stopped   bool
	err       error
}

func (e *emitter) emit(ctx context.Context, schedule *domain.Schedule) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}

	// one more schedule exists beyond the limit
	if e.max > 0 && e.count >= e.max {
		e.truncated = true
		e.stopped = true
		return errLimitReached
	}

	if err := e.sink.Consume(ctx, schedule, e.options); err != nil {
		e.stopped = true
		if !errors.Is(err, ErrStopped) {
			e.err = err
		}
		return err
	}
	e.count++

	return nil
}
