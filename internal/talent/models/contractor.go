// Package models defines the core domain models for the talent pool:
// contractors, jobs, shortlists, outreach drafts and engagements, together
// with the closed enumerations used for their lifecycle fields.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Availability represents a contractor's availability state.
type Availability string

const (
	// Available means the contractor can start immediately.
	Available Availability = "available"
	// Within30Days means the contractor can start within thirty days.
	Within30Days Availability = "within_30_days"
	// Unavailable means the contractor cannot take new engagements.
	Unavailable Availability = "unavailable"
	// AnyAvailability is the filter sentinel meaning "do not filter on
	// availability". It is never stored.
	AnyAvailability Availability = "any"
)

// Valid reports whether a is one of the storable availability values.
func (a Availability) Valid() bool {
	switch a {
	case Available, Within30Days, Unavailable:
		return true
	}
	return false
}

// Contractor defines the domain model for a contractor profile.
type Contractor struct {
	// ID is the unique identifier for the contractor.
	ID uuid.UUID
	// Name is the contractor's full name.
	Name string
	// Title is the contractor's professional title.
	Title string
	// Bio is a free-text profile summary.
	Bio string
	// Location is the contractor's base location.
	Location string
	// DayRate is the contractor's daily rate.
	DayRate float64
	// YearsExperience is the total years of professional experience.
	YearsExperience int
	// Rating is the average review rating, nil when unrated.
	Rating *float64
	// ReviewCount is the number of reviews behind Rating.
	ReviewCount int
	// PlacementCount is the number of completed placements.
	PlacementCount int
	// Availability is the contractor's current availability state.
	Availability Availability
	// Clearance is the security clearance level, nil when none.
	Clearance *string
	// Email is the contact email, nil when withheld.
	Email *string
	// Phone is the contact phone number, nil when withheld.
	Phone *string
	// Certifications the contractor holds.
	Certifications []string
	// Sectors the contractor has worked in.
	Sectors []string
	// Skills the contractor offers.
	Skills []string
	// Languages the contractor speaks.
	Languages []string
	// Education holds the CV education entries, loaded on CV reads only.
	Education []EducationEntry
	// WorkHistory holds the CV work-history entries, loaded on CV reads only.
	WorkHistory []WorkHistoryEntry
	// Projects holds the CV project entries, loaded on CV reads only.
	Projects []ProjectEntry
	// CreatedAt records when the profile was imported.
	CreatedAt time.Time
	// UpdatedAt records the last modification time.
	UpdatedAt time.Time
}

// EducationEntry is a single CV education record.
type EducationEntry struct {
	Institution string
	Degree      string
	Field       string
	Year        int
}

// WorkHistoryEntry is a single CV work-history record.
type WorkHistoryEntry struct {
	Company   string
	Role      string
	StartYear int
	EndYear   int
	Summary   string
}

// ProjectEntry is a single CV project record.
type ProjectEntry struct {
	Name        string
	Description string
	Year        int
}
