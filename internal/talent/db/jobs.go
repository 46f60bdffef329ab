package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	dbm "github.com/gartstein/talentdesk/internal/talent/db/models"
	e "github.com/gartstein/talentdesk/internal/talent/errors"
	"github.com/gartstein/talentdesk/internal/talent/models"
	"github.com/google/uuid"
)

const defaultJobLimit = 20

// urgencyRank maps the urgency vocabulary to its sort priority. Static SQL:
// no caller-supplied content ever reaches this expression.
const urgencyRank = "CASE jobs.urgency WHEN 'critical' THEN 1 WHEN 'urgent' THEN 2 WHEN 'normal' THEN 3 ELSE 4 END"

// CreateJob inserts a job posting. Used at seed/import time.
func (r *Repository) CreateJob(ctx context.Context, j *models.Job) error {
	row := fromJob(j)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	j.ID = row.ID
	j.CreatedAt = row.CreatedAt
	j.UpdatedAt = row.UpdatedAt
	return nil
}

// GetJob returns one job posting or ErrJobNotFound.
func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var row dbm.Job
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrJobNotFound
		}
		return nil, result.Error
	}
	return toJob(&row), nil
}

// ListJobs applies the sparse filter set conjunctively and returns the total
// match count alongside one page ordered by urgency rank, then newest first.
func (r *Repository) ListJobs(ctx context.Context, f models.JobFilter) (int64, []models.Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultJobLimit
	}

	var total int64
	if err := applyJobFilter(r.db.WithContext(ctx).Model(&dbm.Job{}), f).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var rows []dbm.Job
	page := applyJobFilter(r.db.WithContext(ctx).Model(&dbm.Job{}), f).
		Order(urgencyRank + ", jobs.created_at DESC").
		Limit(limit).
		Find(&rows)
	if page.Error != nil {
		return 0, nil, page.Error
	}
	return total, toJobs(rows), nil
}

// UpdateJobStatus sets the job's status and refreshes its timestamp,
// returning the updated job or ErrJobNotFound.
func (r *Repository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error) {
	result := r.db.WithContext(ctx).Model(&dbm.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, e.ErrJobNotFound
	}
	return r.GetJob(ctx, id)
}

func applyJobFilter(tx *gorm.DB, f models.JobFilter) *gorm.DB {
	if f.Status != "" {
		tx = tx.Where("jobs.status = ?", string(f.Status))
	}
	if f.Sector != "" {
		tx = tx.Where("LOWER(jobs.sector) = LOWER(?)", f.Sector)
	}
	if f.Urgency != "" {
		tx = tx.Where("jobs.urgency = ?", string(f.Urgency))
	}
	if f.Location != "" {
		tx = tx.Where("LOWER(jobs.location) = LOWER(?)", f.Location)
	}
	return tx
}
