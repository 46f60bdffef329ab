package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "github.com/gartstein/talentdesk/internal/talent/db/models"
	e "github.com/gartstein/talentdesk/internal/talent/errors"
	"github.com/gartstein/talentdesk/internal/talent/models"
	"github.com/google/uuid"
)

const (
	defaultContractorLimit = 10
	defaultMatchLimit      = 10
)

// contractorOrder ranks search results: rating descending with unrated
// profiles last, then review count descending.
const contractorOrder = "(contractors.rating IS NULL), contractors.rating DESC, contractors.review_count DESC"

// CreateContractor inserts a contractor profile with all of its set-valued
// attributes and CV entries. Used at seed/import time.
func (r *Repository) CreateContractor(ctx context.Context, c *models.Contractor) error {
	row := fromContractor(c)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

// GetContractor returns one contractor with its set-valued attributes, or
// ErrContractorNotFound.
func (r *Repository) GetContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	var row dbm.Contractor
	result := r.db.WithContext(ctx).
		Preload("Certifications").
		Preload("Sectors").
		Preload("Skills").
		First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrContractorNotFound
		}
		return nil, result.Error
	}
	return toContractor(&row), nil
}

// GetContractorCV returns one contractor with set-valued attributes plus the
// structured CV sub-records, or ErrContractorNotFound.
func (r *Repository) GetContractorCV(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	var row dbm.Contractor
	result := r.db.WithContext(ctx).
		Preload("Certifications").
		Preload("Sectors").
		Preload("Skills").
		Preload("Education").
		Preload("WorkHistory").
		Preload("Projects").
		First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrContractorNotFound
		}
		return nil, result.Error
	}
	return toContractor(&row), nil
}

// SearchContractors applies the sparse filter set conjunctively and returns
// the total match count alongside one page in the standard order.
func (r *Repository) SearchContractors(ctx context.Context, f models.ContractorFilter) (int64, []models.Contractor, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultContractorLimit
	}

	var total int64
	count := applyContractorFilter(r.db.WithContext(ctx).Model(&dbm.Contractor{}), f)
	if err := count.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var rows []dbm.Contractor
	page := applyContractorFilter(r.db.WithContext(ctx).Model(&dbm.Contractor{}), f).
		Order(contractorOrder).
		Limit(limit).
		Preload("Certifications").
		Preload("Sectors").
		Preload("Skills").
		Find(&rows)
	if page.Error != nil {
		return 0, nil, page.Error
	}
	return total, toContractors(rows), nil
}

// MatchCandidates finds contractors fit for the job: unavailable profiles
// are always excluded, the job's requirements become conjunctive predicates,
// and results rank by location match, rating (unrated last) and experience.
func (r *Repository) MatchCandidates(ctx context.Context, job *models.Job, limit int) (int64, []models.Contractor, error) {
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	apply := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("contractors.availability <> ?", string(models.Unavailable))
		if len(job.RequiredCertifications) > 0 {
			tx = tx.Where(
				"contractors.id IN (SELECT contractor_id FROM contractor_certifications WHERE LOWER(certification) IN ?)",
				lowerAll(job.RequiredCertifications))
		}
		if len(job.RequiredSkills) > 0 {
			tx = tx.Where(
				"contractors.id IN (SELECT contractor_id FROM contractor_skills WHERE LOWER(skill) IN ?)",
				lowerAll(job.RequiredSkills))
		}
		if job.RequiredClearance != nil {
			tx = tx.Where("LOWER(contractors.clearance) = LOWER(?)", *job.RequiredClearance)
		}
		if job.MinExperience > 0 {
			tx = tx.Where("contractors.years_experience >= ?", job.MinExperience)
		}
		return tx
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Model(&dbm.Contractor{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var rows []dbm.Contractor
	page := apply(r.db.WithContext(ctx).Model(&dbm.Contractor{})).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "(LOWER(contractors.location) = LOWER(?)) DESC, (contractors.rating IS NULL), contractors.rating DESC, contractors.years_experience DESC",
			Vars: []interface{}{job.Location},
		}}).
		Limit(limit).
		Preload("Certifications").
		Preload("Sectors").
		Preload("Skills").
		Find(&rows)
	if page.Error != nil {
		return 0, nil, page.Error
	}
	return total, toContractors(rows), nil
}

// applyContractorFilter chains one parameterised predicate per present
// filter. Absent filters contribute nothing, so an empty filter matches
// every contractor.
func applyContractorFilter(tx *gorm.DB, f models.ContractorFilter) *gorm.DB {
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		tx = tx.Where(
			"LOWER(contractors.name) LIKE ? OR LOWER(contractors.title) LIKE ? OR LOWER(contractors.bio) LIKE ? OR contractors.id IN (SELECT contractor_id FROM contractor_skills WHERE LOWER(skill) LIKE ?)",
			pattern, pattern, pattern, pattern)
	}
	if f.Location != "" {
		tx = tx.Where("LOWER(contractors.location) = LOWER(?)", f.Location)
	}
	if f.Availability != "" && f.Availability != models.AnyAvailability {
		tx = tx.Where("contractors.availability = ?", string(f.Availability))
	}
	if len(f.Certifications) > 0 {
		tx = tx.Where(
			"contractors.id IN (SELECT contractor_id FROM contractor_certifications WHERE LOWER(certification) IN ?)",
			lowerAll(f.Certifications))
	}
	if len(f.Skills) > 0 {
		tx = tx.Where(
			"contractors.id IN (SELECT contractor_id FROM contractor_skills WHERE LOWER(skill) IN ?)",
			lowerAll(f.Skills))
	}
	if f.Sector != "" {
		tx = tx.Where(
			"contractors.id IN (SELECT contractor_id FROM contractor_sectors WHERE LOWER(sector) = LOWER(?))",
			f.Sector)
	}
	if f.MaxRate != nil {
		tx = tx.Where("contractors.day_rate <= ?", *f.MaxRate)
	}
	if f.MinExperience != nil {
		tx = tx.Where("contractors.years_experience >= ?", *f.MinExperience)
	}
	if f.Clearance != "" {
		tx = tx.Where("LOWER(contractors.clearance) = LOWER(?)", f.Clearance)
	}
	return tx
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
