package scheduler

import (
	"context"
	"errors"

	"github.com/marcusball/class-scheduler/internal/domain"
)

// ErrStopped may be returned by a Sink to end the search early without failing it.
var ErrStopped = errors.New("scheduler: stopped by sink")

// Sink receives every complete, conflict-free schedule exactly once. The scheduler
// never touches a delivered schedule again.
type Sink interface {
	Consume(ctx context.Context, schedule *domain.Schedule, options *domain.ScheduleOptions) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(ctx context.Context, schedule *domain.Schedule, options *domain.ScheduleOptions) error

func (f SinkFunc) Consume(ctx context.Context, schedule *domain.Schedule, options *domain.ScheduleOptions) error {
	return f(ctx, schedule, options)
}

// Parameters bound a search. The zero value searches exhaustively on one goroutine.
type Parameters struct {
	MaxResults int // 0 means unlimited
	Workers    int // > 1 fans out one task per section of the first class
}

// candidate is a class with all of its sections already expanded to periods.
type candidate struct {
	name     string
	sections [][]domain.Period
}

// Result summarizes a finished search.
type Result struct {
	Count     int
	Truncated bool
}

// Tee hands every schedule to each sink in turn and stops at the first error.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, schedule *domain.Schedule, options *domain.ScheduleOptions) error {
		for _, sink := range sinks {
			if err := sink.Consume(ctx, schedule, options); err != nil {
				return err
			}
		}
		return nil
	})
}
