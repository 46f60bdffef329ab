// Package models contains the persistence models for the talent pool,
// configured to work using GORM as the ORM. Set-valued contractor attributes
// that SQL predicates filter on (certifications, sectors, skills) are child
// tables; lists that are only ever read back whole are JSON columns.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Contractor represents a contractor profile in the database.
type Contractor struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"size:120;not null;index"`
	Title           string    `gorm:"size:120"`
	Bio             string    `gorm:"size:3000"`
	Location        string    `gorm:"size:120;index"`
	DayRate         float64   `gorm:"type:decimal(10,2)"`
	YearsExperience int
	Rating          *float64 `gorm:"type:decimal(3,2)"`
	ReviewCount     int
	PlacementCount  int
	Availability    string   `gorm:"size:20;index"`
	Clearance       *string  `gorm:"size:40"`
	Email           *string  `gorm:"size:254"`
	Phone           *string  `gorm:"size:40"`
	Languages       []string `gorm:"serializer:json"`

	Certifications []ContractorCertification `gorm:"constraint:OnDelete:CASCADE"`
	Sectors        []ContractorSector        `gorm:"constraint:OnDelete:CASCADE"`
	Skills         []ContractorSkill         `gorm:"constraint:OnDelete:CASCADE"`
	Education      []EducationEntry          `gorm:"constraint:OnDelete:CASCADE"`
	WorkHistory    []WorkHistoryEntry        `gorm:"constraint:OnDelete:CASCADE"`
	Projects       []ProjectEntry            `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContractorCertification is one certification held by a contractor.
type ContractorCertification struct {
	ID            uint      `gorm:"primaryKey"`
	ContractorID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Certification string    `gorm:"size:120;not null;index"`
}

// ContractorSector is one sector a contractor has worked in.
type ContractorSector struct {
	ID           uint      `gorm:"primaryKey"`
	ContractorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Sector       string    `gorm:"size:120;not null;index"`
}

// ContractorSkill is one skill a contractor offers.
type ContractorSkill struct {
	ID           uint      `gorm:"primaryKey"`
	ContractorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Skill        string    `gorm:"size:120;not null;index"`
}

// EducationEntry is one CV education record.
type EducationEntry struct {
	ID           uint      `gorm:"primaryKey"`
	ContractorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Institution  string    `gorm:"size:200"`
	Degree       string    `gorm:"size:120"`
	Field        string    `gorm:"size:120"`
	Year         int
}

// WorkHistoryEntry is one CV work-history record.
type WorkHistoryEntry struct {
	ID           uint      `gorm:"primaryKey"`
	ContractorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Company      string    `gorm:"size:200"`
	Role         string    `gorm:"size:120"`
	StartYear    int
	EndYear      int
	Summary      string `gorm:"size:2000"`
}

// ProjectEntry is one CV project record.
type ProjectEntry struct {
	ID           uint      `gorm:"primaryKey"`
	ContractorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"size:200"`
	Description  string    `gorm:"size:2000"`
	Year         int
}

// Job represents a job posting in the database.
type Job struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title                  string    `gorm:"size:200;not null"`
	Description            string    `gorm:"size:3000"`
	ClientName             string    `gorm:"size:200"`
	Sector                 string    `gorm:"size:120;index"`
	Location               string    `gorm:"size:120;index"`
	DayRateMin             *float64  `gorm:"type:decimal(10,2)"`
	DayRateMax             *float64  `gorm:"type:decimal(10,2)"`
	RequiredCertifications []string  `gorm:"serializer:json"`
	RequiredSkills         []string  `gorm:"serializer:json"`
	RequiredClearance      *string   `gorm:"size:40"`
	MinExperience          int
	Status                 string `gorm:"size:20;index"`
	Urgency                string `gorm:"size:20;index"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Shortlist represents a shortlist in the database. It owns its items.
type Shortlist struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:2000"`
	RoleTitle   string    `gorm:"size:120"`
	ClientName  string    `gorm:"size:200"`
	Status      string    `gorm:"size:20;index"`

	Items []ShortlistItem `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShortlistItem links one contractor to one shortlist. The composite unique
// index enforces at most one item per (shortlist, contractor) pair.
type ShortlistItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShortlistID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shortlist_contractor"`
	ContractorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shortlist_contractor"`
	Status       string    `gorm:"size:20;index"`
	Notes        string    `gorm:"size:2000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OutreachDraft represents a drafted outreach message in the database.
type OutreachDraft struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ContractorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShortlistID  *uuid.UUID `gorm:"type:uuid;index"`
	Subject      string     `gorm:"size:300"`
	Body         string     `gorm:"size:5000"`
	Status       string     `gorm:"size:20;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Engagement represents a booking of a contractor to a role.
type Engagement struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ContractorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShortlistID  *uuid.UUID `gorm:"type:uuid;index"`
	RoleTitle    string     `gorm:"size:120;not null"`
	ClientName   string     `gorm:"size:200"`
	StartDate    *time.Time
	EndDate      *time.Time
	AgreedRate   *float64 `gorm:"type:decimal(10,2)"`
	Notes        string   `gorm:"size:2000"`
	Status       string   `gorm:"size:20;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
