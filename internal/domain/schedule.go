package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Schedule maps every occupied slot to the name of the class holding it.
// A slot is held by at most one class.
type Schedule struct {
	slots map[Period]string
}

func NewSchedule() *Schedule {
	return &Schedule{slots: make(map[Period]string)}
}

// Clone returns an independent copy, later inserts on either side are not visible to the other.
func (s *Schedule) Clone() *Schedule {
	return &Schedule{slots: maps.Clone(s.slots)}
}

// Insert claims p for class. It reports false, leaving the schedule unchanged,
// when p is already taken by any class including class itself.
func (s *Schedule) Insert(p Period, class string) bool {
	if _, exists := s.slots[p]; exists {
		return false
	}
	s.slots[p] = class
	return true
}

func (s *Schedule) ClassAt(p Period) (string, bool) {
	class, ok := s.slots[p]
	return class, ok
}

func (s *Schedule) Len() int {
	return len(s.slots)
}

// Periods returns the occupied slots sorted by period number then day.
func (s *Schedule) Periods() []Period {
	periods := slices.Collect(maps.Keys(s.slots))
	slices.SortFunc(periods, func(a, b Period) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return periods
}

// Equal reports whether both schedules hold the same slots for the same classes.
func (s *Schedule) Equal(other *Schedule) bool {
	return maps.Equal(s.slots, other.slots)
}

type ScheduleSlot struct {
	Period
	Class string `json:"class"`
}

func (s *Schedule) Slots() []ScheduleSlot {
	periods := s.Periods()
	slots := make([]ScheduleSlot, 0, len(periods))
	for _, p := range periods {
		slots = append(slots, ScheduleSlot{Period: p, Class: s.slots[p]})
	}
	return slots
}

func (s *Schedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slots())
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var slots []ScheduleSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}

	s.slots = make(map[Period]string, len(slots))
	for _, slot := range slots {
		if !s.Insert(slot.Period, slot.Class) {
			return fmt.Errorf("slot %s appears more than once", slot.Period)
		}
	}
	return nil
}
