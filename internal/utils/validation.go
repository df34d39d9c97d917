package utils

import (
	"fmt"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/slot"
)

// ValidateCatalogSlots parses every slot notation of options and reports the first that fails.
func ValidateCatalogSlots(options *domain.ScheduleOptions) error {
	for _, class := range options.Classes {
		for i, section := range class.Sections {
			if _, err := slot.ExpandSection(section); err != nil {
				return fmt.Errorf("class %q section %d: %w", class.Name, i+1, err)
			}
		}
	}
	return nil
}

// ValidateSchedule checks that schedule is a complete schedule of options: every class
// holds exactly the periods of one of its sections and nothing else is placed.
func ValidateSchedule(schedule *domain.Schedule, options *domain.ScheduleOptions) error {
	declared := make(map[string]int)
	for _, class := range options.Classes {
		declared[class.Name]++
	}

	owned := make(map[string]int)
	for _, s := range schedule.Slots() {
		if declared[s.Class] == 0 {
			return fmt.Errorf("slot %s is held by unknown class %q", s.Period, s.Class)
		}
		owned[s.Class]++
	}

	for _, class := range options.Classes {
		// a repeated name shares its slots with the other declarations, so no single section can account for them
		if declared[class.Name] > 1 {
			continue
		}

		placed := false
		for _, section := range class.Sections {
			periods, err := slot.ExpandSection(section)
			if err != nil {
				return err
			}
			if holdsExactly(schedule, class.Name, periods, owned[class.Name]) {
				placed = true
				break
			}
		}

		if !placed {
			return fmt.Errorf("class %q is not placed through any of its sections", class.Name)
		}
	}

	return nil
}

func holdsExactly(schedule *domain.Schedule, class string, periods []domain.Period, owned int) bool {
	if len(periods) != owned {
		return false
	}

	seen := make(map[domain.Period]bool, len(periods))
	for _, p := range periods {
		if seen[p] {
			return false
		}
		seen[p] = true

		holder, ok := schedule.ClassAt(p)
		if !ok || holder != class {
			return false
		}
	}
	return true
}

// ValidateDisplayPeriods rejects a periods list that repeats a number, which would print the same row twice.
func ValidateDisplayPeriods(options *domain.ScheduleOptions) error {
	seen := make(map[int]bool)
	for _, p := range options.Periods {
		if seen[p] {
			return fmt.Errorf("period %d is listed more than once", p)
		}
		seen[p] = true
	}
	return nil
}
