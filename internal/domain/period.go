package domain

import "fmt"

// Period is a single (day, period number) slot in the week.
type Period struct {
	Day    Day   `json:"day"`
	Number uint8 `json:"period"`
}

func (p Period) String() string {
	return fmt.Sprintf("%c%d", p.Day.Code(), p.Number)
}

// Less orders periods by number first and day second, the same order a timetable is read in.
func (p Period) Less(other Period) bool {
	if p.Number != other.Number {
		return p.Number < other.Number
	}
	return p.Day < other.Day
}
