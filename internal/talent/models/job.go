package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobOpen         JobStatus = "open"
	JobShortlisting JobStatus = "shortlisting"
	JobInterviewing JobStatus = "interviewing"
	JobOffered      JobStatus = "offered"
	JobFilled       JobStatus = "filled"
	JobCancelled    JobStatus = "cancelled"
)

// Valid reports whether s is a recognised job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobShortlisting, JobInterviewing, JobOffered, JobFilled, JobCancelled:
		return true
	}
	return false
}

// Urgency represents the sort priority of a job posting.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyNormal   Urgency = "normal"
	UrgencyLow      Urgency = "low"
)

// Valid reports whether u is a recognised urgency value.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyUrgent, UrgencyNormal, UrgencyLow:
		return true
	}
	return false
}

// Rank returns the sort priority of the urgency, critical=1 .. low=4.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 1
	case UrgencyUrgent:
		return 2
	case UrgencyNormal:
		return 3
	default:
		return 4
	}
}

// Job defines the domain model for a job posting.
type Job struct {
	// ID is the unique identifier for the job.
	ID uuid.UUID
	// Title is the role title.
	Title string
	// Description is the free-text posting body.
	Description string
	// ClientName is the client the role is for.
	ClientName string
	// Sector is the industry sector of the role.
	Sector string
	// Location is where the role is based.
	Location string
	// DayRateMin is the lower bound of the day-rate range, nil when open.
	DayRateMin *float64
	// DayRateMax is the upper bound of the day-rate range, nil when open.
	DayRateMax *float64
	// RequiredCertifications the role demands.
	RequiredCertifications []string
	// RequiredSkills the role demands.
	RequiredSkills []string
	// RequiredClearance is the mandated clearance level, nil when none.
	RequiredClearance *string
	// MinExperience is the minimum years of experience required.
	MinExperience int
	// Status is the posting's lifecycle state.
	Status JobStatus
	// Urgency is the posting's sort priority.
	Urgency Urgency
	// CreatedAt records when the posting was imported.
	CreatedAt time.Time
	// UpdatedAt records the last modification time.
	UpdatedAt time.Time
}
