package scheduler

import (
	"context"
	"sync"

	"github.com/marcusball/class-scheduler/internal/domain"
)

// Collector is a Sink that keeps every schedule it receives, in delivery order.
type Collector struct {
	mu        sync.Mutex
	schedules []*domain.Schedule
}

// Consume appends schedule to the collection; it never fails.
func (c *Collector) Consume(_ context.Context, schedule *domain.Schedule, _ *domain.ScheduleOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.schedules = append(c.schedules, schedule)
	return nil
}

// Schedules returns everything collected so far, in the order it arrived.
func (c *Collector) Schedules() []*domain.Schedule {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.schedules
}
