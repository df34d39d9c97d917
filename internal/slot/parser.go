// Package slot parses the compact day/period notation used by class sections.
//
// A notation is one or more tokens of 1-5 day letters followed by a period number
// or an inclusive period range, e.g. "MWF3" or "TR5-6". Text between tokens is ignored.
package slot

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/marcusball/class-scheduler/internal/domain"
)

// pattern is compiled once and only ever read afterwards.
var pattern = regexp.MustCompile(`([MTWRF]{1,5})(\d{1,2})(?:-(\d{1,2}))?`)

// Parse returns the periods denoted by every token in notation. For each token the
// period numbers are walked in ascending order and, for each of them, the days in
// the order they are written. A notation without tokens yields no periods.
func Parse(notation string) ([]domain.Period, error) {
	var periods []domain.Period

	for _, match := range pattern.FindAllStringSubmatch(notation, -1) {
		days := match[1]

		start, err := strconv.ParseUint(match[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", match[0], err)
		}

		end := start
		if match[3] != "" {
			end, err = strconv.ParseUint(match[3], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("slot %q: %w", match[0], err)
			}
		}

		// a reversed range such as "M5-3" covers nothing
		for number := start; number <= end; number++ {
			for _, c := range days {
				day, err := domain.DayFromChar(c)
				if err != nil {
					return nil, fmt.Errorf("slot %q: %w", match[0], err)
				}
				periods = append(periods, domain.Period{Day: day, Number: uint8(number)})
			}
		}
	}

	return periods, nil
}

// ExpandSection concatenates the periods of every notation in section, in order.
// Duplicates are kept; detecting them is left to the scheduler.
func ExpandSection(section domain.Section) ([]domain.Period, error) {
	var periods []domain.Period

	for _, notation := range section {
		p, err := Parse(notation)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p...)
	}

	return periods, nil
}
