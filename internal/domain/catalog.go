package domain

import "time"

// Section is one schedulable arrangement of a class, written as slot notations such as "MWF3" or "TR5-6".
type Section []string

type Class struct {
	Name     string    `json:"name" toml:"name"`
	Sections []Section `json:"sections" toml:"sections"`
}

// ScheduleOptions is the whole input of a scheduling run.
type ScheduleOptions struct {
	// Periods only controls which rows are displayed, it is not used to bound slot numbers.
	Periods []int   `json:"periods" toml:"periods" validate:"dive,min=0,max=255"`
	Classes []Class `json:"classes" toml:"classes" validate:"dive"`
}

// Catalog is a stored ScheduleOptions document.
type Catalog struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     ScheduleOptions `json:"options"`
	CreatedBy   int64           `json:"createdBy"` // 0 once the creating user is deleted, or for seeded catalogs
	CreatedAt   time.Time       `json:"createdAt"`
	Version     int32           `json:"-"`
}
