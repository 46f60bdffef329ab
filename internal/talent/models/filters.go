package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractorFilter is the sparse criteria set accepted by contractor search.
// Zero values mean "no filter"; all filters combine conjunctively.
type ContractorFilter struct {
	// Query is a case-insensitive substring matched against name, title,
	// bio and each skill.
	Query string
	// Location is an exact case-insensitive location match.
	Location string
	// Availability filters on availability state. Empty or AnyAvailability
	// matches everything.
	Availability Availability
	// Certifications matches contractors holding at least one of these.
	Certifications []string
	// Skills matches contractors offering at least one of these.
	Skills []string
	// Sector is an exact case-insensitive membership match against the
	// contractor's sectors.
	Sector string
	// MaxRate is an inclusive upper bound on day rate.
	MaxRate *float64
	// MinExperience is an inclusive lower bound on years of experience.
	MinExperience *int
	// Clearance is an exact case-insensitive clearance match.
	Clearance string
	// Limit caps the returned page. Zero applies the default of 10.
	Limit int
}

// JobFilter is the sparse criteria set accepted by job listing.
type JobFilter struct {
	Status   JobStatus
	Sector   string
	Urgency  Urgency
	Location string
	// Limit caps the returned page. Zero applies the default of 20.
	Limit int
}

// OutreachFilter is the sparse criteria set accepted by outreach listing.
type OutreachFilter struct {
	ContractorID *uuid.UUID
	Status       OutreachStatus
}

// Booking carries the arguments of a book-contractor operation.
type Booking struct {
	ContractorID uuid.UUID
	RoleTitle    string
	ClientName   string
	ShortlistID  *uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
	AgreedRate   *float64
	Notes        string
}

// BookingResult is the outcome of a successful booking.
type BookingResult struct {
	Engagement      Engagement
	ContractorName  string
	ContractorEmail *string
	Message         string
}
