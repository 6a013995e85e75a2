package domain

import (
	"math"
	"time"
)

// Item is a single donated-item listing in the catalog.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Condition   string     `json:"condition"`
	AgeDays     int        `json:"age_days"`
	AgeYears    float64    `json:"age_years"`
	Description string     `json:"description"`
	Image       string     `json:"image,omitempty"`
	DateCreated time.Time  `json:"dateCreated"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewItem carries the client-supplied fields for a create. ID, AgeYears,
// Image and DateCreated are assigned by the service, never by the caller.
type NewItem struct {
	Name        string
	Category    string
	Condition   string
	AgeDays     int
	Description string
}

// ItemUpdate is the full set of mutable fields. An update replaces all of
// them together; Name, Image and DateCreated stay immutable after creation.
type ItemUpdate struct {
	Category    string
	Condition   string
	AgeDays     int
	Description string
}

// Filter holds optional search criteria, AND-composed. A nil/zero field
// imposes no constraint.
type Filter struct {
	Name        string
	Category    string
	Condition   string
	MaxAgeYears *float64 // inclusive upper bound on AgeYears
}

// AgeYears derives the age in years from an age in days, rounded to one
// decimal place.
func AgeYears(ageDays int) float64 {
	return math.Round(float64(ageDays)/365*10) / 10
}
