package domain

import "time"

// ScheduleRun is the stored outcome of generating every schedule of a catalog.
type ScheduleRun struct {
	ID        int64       `json:"id"`
	CatalogID int64       `json:"catalogID"`
	Schedules []*Schedule `json:"schedules"`
	Truncated bool        `json:"truncated"` // search stopped at MaxResults
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}
