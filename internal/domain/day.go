package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownDay = errors.New("unknown day character")

// Day is a teaching day of the week. Weekends are not schedulable.
type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays in display order.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var dayCodes = [...]byte{'M', 'T', 'W', 'R', 'F'}

// DayFromChar maps the single letter codes M, T, W, R and F to a Day.
func DayFromChar(c rune) (Day, error) {
	switch c {
	case 'M':
		return Monday, nil
	case 'T':
		return Tuesday, nil
	case 'W':
		return Wednesday, nil
	case 'R':
		return Thursday, nil
	case 'F':
		return Friday, nil
	default:
		return 0, fmt.Errorf("%w '%c'", ErrUnknownDay, c)
	}
}

func (d Day) String() string {
	if int(d) >= len(dayNames) {
		return fmt.Sprintf("Day(%d)", d)
	}
	return dayNames[d]
}

// Code returns the single letter code used in slot notation.
func (d Day) Code() byte {
	if int(d) >= len(dayCodes) {
		return '?'
	}
	return dayCodes[d]
}

func (d Day) MarshalText() ([]byte, error) {
	if int(d) >= len(dayCodes) {
		return nil, fmt.Errorf("invalid day %d", d)
	}
	return []byte{dayCodes[d]}, nil
}

func (d *Day) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("%w %q", ErrUnknownDay, text)
	}
	day, err := DayFromChar(rune(text[0]))
	if err != nil {
		return err
	}
	*d = day
	return nil
}
