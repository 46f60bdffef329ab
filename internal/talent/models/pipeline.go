package models

import (
	"time"

	"github.com/google/uuid"
)

// ShortlistStatus represents the lifecycle state of a shortlist.
type ShortlistStatus string

const (
	ShortlistActive ShortlistStatus = "active"
	ShortlistClosed ShortlistStatus = "closed"
	ShortlistFilled ShortlistStatus = "filled"
)

// Valid reports whether s is a recognised shortlist status.
func (s ShortlistStatus) Valid() bool {
	switch s {
	case ShortlistActive, ShortlistClosed, ShortlistFilled:
		return true
	}
	return false
}

// CandidateStatus represents the pipeline state of a single shortlist item,
// independent of the parent shortlist's status.
type CandidateStatus string

const (
	CandidateShortlisted  CandidateStatus = "shortlisted"
	CandidateContacted    CandidateStatus = "contacted"
	CandidateInterviewing CandidateStatus = "interviewing"
	CandidateOffered      CandidateStatus = "offered"
	CandidateAccepted     CandidateStatus = "accepted"
	CandidateDeclined     CandidateStatus = "declined"
	CandidateWithdrawn    CandidateStatus = "withdrawn"
)

// Valid reports whether s is a recognised candidate status.
func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateShortlisted, CandidateContacted, CandidateInterviewing,
		CandidateOffered, CandidateAccepted, CandidateDeclined, CandidateWithdrawn:
		return true
	}
	return false
}

// OutreachStatus represents the state of an outreach draft.
type OutreachStatus string

const (
	OutreachDrafted OutreachStatus = "draft"
	OutreachSent    OutreachStatus = "sent"
	OutreachReplied OutreachStatus = "replied"
)

// Valid reports whether s is a recognised outreach status.
func (s OutreachStatus) Valid() bool {
	switch s {
	case OutreachDrafted, OutreachSent, OutreachReplied:
		return true
	}
	return false
}

// EngagementStatus represents the lifecycle state of an engagement.
type EngagementStatus string

const (
	EngagementPending   EngagementStatus = "pending"
	EngagementConfirmed EngagementStatus = "confirmed"
	EngagementActive    EngagementStatus = "active"
	EngagementCompleted EngagementStatus = "completed"
	EngagementCancelled EngagementStatus = "cancelled"
)

// Valid reports whether s is a recognised engagement status.
func (s EngagementStatus) Valid() bool {
	switch s {
	case EngagementPending, EngagementConfirmed, EngagementActive,
		EngagementCompleted, EngagementCancelled:
		return true
	}
	return false
}

// Shortlist defines the domain model for a shortlist of candidates.
type Shortlist struct {
	ID          uuid.UUID
	Name        string
	Description string
	RoleTitle   string
	ClientName  string
	Status      ShortlistStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShortlistItem links one contractor to one shortlist. At most one item
// exists per (shortlist, contractor) pair.
type ShortlistItem struct {
	ID           uuid.UUID
	ShortlistID  uuid.UUID
	ContractorID uuid.UUID
	Status       CandidateStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ShortlistCandidate is a shortlist item joined with the contractor's
// headline fields, as returned by shortlist reads.
type ShortlistCandidate struct {
	ShortlistItem
	ContractorName  string
	ContractorTitle string
	DayRate         float64
	Availability    Availability
}

// ShortlistDetail is a shortlist together with its candidates.
type ShortlistDetail struct {
	Shortlist
	Candidates []ShortlistCandidate
}

// ShortlistSummary is a shortlist annotated with its candidate count.
type ShortlistSummary struct {
	Shortlist
	CandidateCount int
}

// OutreachDraft defines the domain model for a drafted outreach message.
type OutreachDraft struct {
	ID           uuid.UUID
	ContractorID uuid.UUID
	ShortlistID  *uuid.UUID
	Subject      string
	Body         string
	Status       OutreachStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OutreachSummary is an outreach draft annotated with the contractor's name.
type OutreachSummary struct {
	OutreachDraft
	ContractorName string
}

// Engagement defines the domain model for a confirmed booking of a
// contractor to a role.
type Engagement struct {
	ID           uuid.UUID
	ContractorID uuid.UUID
	ShortlistID  *uuid.UUID
	RoleTitle    string
	ClientName   string
	StartDate    *time.Time
	EndDate      *time.Time
	AgreedRate   *float64
	Notes        string
	Status       EngagementStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EngagementSummary is an engagement annotated with the contractor's name.
type EngagementSummary struct {
	Engagement
	ContractorName string
}

// Pipeline is the read-only rollup across jobs, shortlists, engagements and
// outreach used by the pipeline-overview report.
type Pipeline struct {
	OpenJobs          []Job
	ActiveShortlists  []ShortlistSummary
	ActiveEngagements []EngagementSummary
	PendingOutreach   []OutreachSummary
}

// Match is one ranked candidate for a job, annotated with fit details.
type Match struct {
	Contractor
	// MatchingCertifications is the intersection of the job's required
	// certifications with the candidate's, in the candidate's spelling.
	MatchingCertifications []string
	// MatchingSkills is the intersection of the job's required skills
	// with the candidate's, in the candidate's spelling.
	MatchingSkills []string
	// LocationMatch reports an exact case-insensitive location match.
	LocationMatch bool
	// WithinBudget reports whether the candidate's day rate is at or
	// below the job's maximum. A job without a maximum always fits.
	WithinBudget bool
}

// MatchResult is the outcome of ranking candidates for one job.
type MatchResult struct {
	Job     Job
	Total   int64
	Matches []Match
}
