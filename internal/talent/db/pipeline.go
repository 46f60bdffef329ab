package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "github.com/gartstein/talentdesk/internal/talent/db/models"
	e "github.com/gartstein/talentdesk/internal/talent/errors"
	"github.com/gartstein/talentdesk/internal/talent/models"
	"github.com/google/uuid"
)

// CreateShortlist inserts a new shortlist.
func (r *Repository) CreateShortlist(ctx context.Context, s *models.Shortlist) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = models.ShortlistActive
	}
	row := &dbm.Shortlist{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		RoleTitle:   s.RoleTitle,
		ClientName:  s.ClientName,
		Status:      string(s.Status),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*s = *toShortlist(row)
	return nil
}

// GetShortlist returns one shortlist with its candidates joined to the
// contractors' headline fields, or ErrShortlistNotFound.
func (r *Repository) GetShortlist(ctx context.Context, id uuid.UUID) (*models.ShortlistDetail, error) {
	var row dbm.Shortlist
	result := r.db.WithContext(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrShortlistNotFound
		}
		return nil, result.Error
	}

	type candidateRow struct {
		ID                     uuid.UUID
		ShortlistID            uuid.UUID
		ContractorID           uuid.UUID
		Status                 string
		Notes                  string
		CreatedAt              time.Time
		UpdatedAt              time.Time
		ContractorName         string
		ContractorTitle        string
		DayRate                float64
		ContractorAvailability string
	}
	var candidates []candidateRow
	err := r.db.WithContext(ctx).
		Table("shortlist_items").
		Select("shortlist_items.*, contractors.name AS contractor_name, contractors.title AS contractor_title, contractors.day_rate, contractors.availability AS contractor_availability").
		Joins("JOIN contractors ON contractors.id = shortlist_items.contractor_id").
		Where("shortlist_items.shortlist_id = ?", id).
		Order("shortlist_items.created_at").
		Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	detail := &models.ShortlistDetail{Shortlist: *toShortlist(&row)}
	for _, c := range candidates {
		detail.Candidates = append(detail.Candidates, models.ShortlistCandidate{
			ShortlistItem: models.ShortlistItem{
				ID:           c.ID,
				ShortlistID:  c.ShortlistID,
				ContractorID: c.ContractorID,
				Status:       models.CandidateStatus(c.Status),
				Notes:        c.Notes,
				CreatedAt:    c.CreatedAt,
				UpdatedAt:    c.UpdatedAt,
			},
			ContractorName:  c.ContractorName,
			ContractorTitle: c.ContractorTitle,
			DayRate:         c.DayRate,
			Availability:    models.Availability(c.ContractorAvailability),
		})
	}
	return detail, nil
}

// ListShortlists returns shortlists annotated with candidate counts, the
// LEFT JOIN keeping zero-candidate shortlists in the result. An empty status
// means no status filter.
func (r *Repository) ListShortlists(ctx context.Context, status models.ShortlistStatus) ([]models.ShortlistSummary, error) {
	type shortlistRow struct {
		ID             uuid.UUID
		Name           string
		Description    string
		RoleTitle      string
		ClientName     string
		Status         string
		CreatedAt      time.Time
		UpdatedAt      time.Time
		CandidateCount int
	}

	q := r.db.WithContext(ctx).
		Table("shortlists").
		Select("shortlists.*, COUNT(shortlist_items.id) AS candidate_count").
		Joins("LEFT JOIN shortlist_items ON shortlist_items.shortlist_id = shortlists.id").
		Group("shortlists.id")
	if status != "" {
		q = q.Where("shortlists.status = ?", string(status))
	}

	var rows []shortlistRow
	if err := q.Order("shortlists.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.ShortlistSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ShortlistSummary{
			Shortlist: models.Shortlist{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				RoleTitle:   row.RoleTitle,
				ClientName:  row.ClientName,
				Status:      models.ShortlistStatus(row.Status),
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			CandidateCount: row.CandidateCount,
		})
	}
	return out, nil
}

// UpsertShortlistItem ensures membership of the contractor on the shortlist.
// A fresh pair inserts with status "shortlisted"; an existing pair keeps its
// status and takes the latest notes instead of failing on the unique index.
func (r *Repository) UpsertShortlistItem(ctx context.Context, shortlistID, contractorID uuid.UUID, notes string) (*models.ShortlistItem, error) {
	row := &dbm.ShortlistItem{
		ID:           uuid.New(),
		ShortlistID:  shortlistID,
		ContractorID: contractorID,
		Status:       string(models.CandidateShortlisted),
		Notes:        notes,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shortlist_id"}, {Name: "contractor_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"notes":      notes,
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	return r.getShortlistItem(ctx, shortlistID, contractorID)
}

// UpdateShortlistItemStatus sets the pipeline status of an existing
// (shortlist, contractor) item, or returns ErrShortlistItemNotFound.
func (r *Repository) UpdateShortlistItemStatus(ctx context.Context, shortlistID, contractorID uuid.UUID, status models.CandidateStatus) (*models.ShortlistItem, error) {
	result := r.db.WithContext(ctx).Model(&dbm.ShortlistItem{}).
		Where("shortlist_id = ? AND contractor_id = ?", shortlistID, contractorID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, e.ErrShortlistItemNotFound
	}
	return r.getShortlistItem(ctx, shortlistID, contractorID)
}

func (r *Repository) getShortlistItem(ctx context.Context, shortlistID, contractorID uuid.UUID) (*models.ShortlistItem, error) {
	var row dbm.ShortlistItem
	result := r.db.WithContext(ctx).
		First(&row, "shortlist_id = ? AND contractor_id = ?", shortlistID, contractorID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrShortlistItemNotFound
		}
		return nil, result.Error
	}
	return toShortlistItem(&row), nil
}

// CreateOutreach inserts a drafted outreach message.
func (r *Repository) CreateOutreach(ctx context.Context, d *models.OutreachDraft) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = models.OutreachDrafted
	}
	row := &dbm.OutreachDraft{
		ID:           d.ID,
		ContractorID: d.ContractorID,
		ShortlistID:  d.ShortlistID,
		Subject:      d.Subject,
		Body:         d.Body,
		Status:       string(d.Status),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*d = *toOutreach(row)
	return nil
}

// ListOutreach returns outreach drafts newest-first, annotated with the
// contractor's name, optionally filtered by contractor and status.
func (r *Repository) ListOutreach(ctx context.Context, f models.OutreachFilter) ([]models.OutreachSummary, error) {
	type outreachRow struct {
		ID             uuid.UUID
		ContractorID   uuid.UUID
		ShortlistID    *uuid.UUID
		Subject        string
		Body           string
		Status         string
		CreatedAt      time.Time
		UpdatedAt      time.Time
		ContractorName string
	}

	q := r.db.WithContext(ctx).
		Table("outreach_drafts").
		Select("outreach_drafts.*, contractors.name AS contractor_name").
		Joins("JOIN contractors ON contractors.id = outreach_drafts.contractor_id")
	if f.ContractorID != nil {
		q = q.Where("outreach_drafts.contractor_id = ?", *f.ContractorID)
	}
	if f.Status != "" {
		q = q.Where("outreach_drafts.status = ?", string(f.Status))
	}

	var rows []outreachRow
	if err := q.Order("outreach_drafts.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.OutreachSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.OutreachSummary{
			OutreachDraft: models.OutreachDraft{
				ID:           row.ID,
				ContractorID: row.ContractorID,
				ShortlistID:  row.ShortlistID,
				Subject:      row.Subject,
				Body:         row.Body,
				Status:       models.OutreachStatus(row.Status),
				CreatedAt:    row.CreatedAt,
				UpdatedAt:    row.UpdatedAt,
			},
			ContractorName: row.ContractorName,
		})
	}
	return out, nil
}

// CreateEngagement books a contractor in one transaction: the engagement row
// is inserted, the contractor's availability flips to unavailable via a
// guarded update (losing a concurrent booking race aborts with
// ErrContractorUnavailable), and when a shortlist is referenced the matching
// item's status is forced to accepted.
func (r *Repository) CreateEngagement(ctx context.Context, eng *models.Engagement) error {
	if eng.ID == uuid.Nil {
		eng.ID = uuid.New()
	}
	if eng.Status == "" {
		eng.Status = models.EngagementConfirmed
	}
	row := &dbm.Engagement{
		ID:           eng.ID,
		ContractorID: eng.ContractorID,
		ShortlistID:  eng.ShortlistID,
		RoleTitle:    eng.RoleTitle,
		ClientName:   eng.ClientName,
		StartDate:    eng.StartDate,
		EndDate:      eng.EndDate,
		AgreedRate:   eng.AgreedRate,
		Notes:        eng.Notes,
		Status:       string(eng.Status),
	}

	err := r.WithTransaction(ctx, func(repo *Repository) error {
		if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
			return err
		}

		result := repo.db.WithContext(ctx).Model(&dbm.Contractor{}).
			Where("id = ? AND availability <> ?", eng.ContractorID, string(models.Unavailable)).
			Updates(map[string]interface{}{
				"availability": string(models.Unavailable),
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.ErrContractorUnavailable
		}

		if eng.ShortlistID != nil {
			if err := repo.db.WithContext(ctx).Model(&dbm.ShortlistItem{}).
				Where("shortlist_id = ? AND contractor_id = ?", *eng.ShortlistID, eng.ContractorID).
				Updates(map[string]interface{}{
					"status":     string(models.CandidateAccepted),
					"updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	*eng = *toEngagement(row)
	return nil
}

// Pipeline assembles the full operational snapshot. Each call re-queries the
// store; the view is never cached.
func (r *Repository) Pipeline(ctx context.Context) (*models.Pipeline, error) {
	var jobRows []dbm.Job
	err := r.db.WithContext(ctx).
		Where("jobs.status NOT IN ?", []string{string(models.JobFilled), string(models.JobCancelled)}).
		Order(urgencyRank).
		Find(&jobRows).Error
	if err != nil {
		return nil, err
	}

	shortlists, err := r.ListShortlists(ctx, models.ShortlistActive)
	if err != nil {
		return nil, err
	}

	type engagementRow struct {
		ID             uuid.UUID
		ContractorID   uuid.UUID
		ShortlistID    *uuid.UUID
		RoleTitle      string
		ClientName     string
		StartDate      *time.Time
		EndDate        *time.Time
		AgreedRate     *float64
		Notes          string
		Status         string
		CreatedAt      time.Time
		UpdatedAt      time.Time
		ContractorName string
	}
	var engRows []engagementRow
	err = r.db.WithContext(ctx).
		Table("engagements").
		Select("engagements.*, contractors.name AS contractor_name").
		Joins("JOIN contractors ON contractors.id = engagements.contractor_id").
		Where("engagements.status IN ?", []string{
			string(models.EngagementPending),
			string(models.EngagementConfirmed),
			string(models.EngagementActive),
		}).
		Order("engagements.start_date").
		Scan(&engRows).Error
	if err != nil {
		return nil, err
	}

	outreach, err := r.ListOutreach(ctx, models.OutreachFilter{Status: models.OutreachDrafted})
	if err != nil {
		return nil, err
	}

	p := &models.Pipeline{
		OpenJobs:         toJobs(jobRows),
		ActiveShortlists: shortlists,
		PendingOutreach:  outreach,
	}
	for _, row := range engRows {
		p.ActiveEngagements = append(p.ActiveEngagements, models.EngagementSummary{
			Engagement: models.Engagement{
				ID:           row.ID,
				ContractorID: row.ContractorID,
				ShortlistID:  row.ShortlistID,
				RoleTitle:    row.RoleTitle,
				ClientName:   row.ClientName,
				StartDate:    row.StartDate,
				EndDate:      row.EndDate,
				AgreedRate:   row.AgreedRate,
				Notes:        row.Notes,
				Status:       models.EngagementStatus(row.Status),
				CreatedAt:    row.CreatedAt,
				UpdatedAt:    row.UpdatedAt,
			},
			ContractorName: row.ContractorName,
		})
	}
	return p, nil
}
