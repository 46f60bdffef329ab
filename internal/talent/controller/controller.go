// Package controller implements the core business logic (service layer) for
// the talent pool: operation preconditions, candidate-fit annotation and
// lifecycle side effects, orchestrating repository operations and sending
// relevant events.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	e "github.com/gartstein/talentdesk/internal/talent/errors"
	"github.com/gartstein/talentdesk/internal/talent/events"
	"github.com/gartstein/talentdesk/internal/talent/models"
)

type EventProducer interface {
	Produce(eventType events.EventType, key string, payload interface{})
}

// Repository defines the storage interface the service operates against.
type Repository interface {
	CreateContractor(ctx context.Context, c *models.Contractor) error
	GetContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	GetContractorCV(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	SearchContractors(ctx context.Context, f models.ContractorFilter) (int64, []models.Contractor, error)
	MatchCandidates(ctx context.Context, job *models.Job, limit int) (int64, []models.Contractor, error)

	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, f models.JobFilter) (int64, []models.Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error)

	CreateShortlist(ctx context.Context, s *models.Shortlist) error
	GetShortlist(ctx context.Context, id uuid.UUID) (*models.ShortlistDetail, error)
	ListShortlists(ctx context.Context, status models.ShortlistStatus) ([]models.ShortlistSummary, error)
	UpsertShortlistItem(ctx context.Context, shortlistID, contractorID uuid.UUID, notes string) (*models.ShortlistItem, error)
	UpdateShortlistItemStatus(ctx context.Context, shortlistID, contractorID uuid.UUID, status models.CandidateStatus) (*models.ShortlistItem, error)

	CreateOutreach(ctx context.Context, d *models.OutreachDraft) error
	ListOutreach(ctx context.Context, f models.OutreachFilter) ([]models.OutreachSummary, error)
	CreateEngagement(ctx context.Context, eng *models.Engagement) error

	Pipeline(ctx context.Context) (*models.Pipeline, error)
	Close() error
}

// TalentService provides the callable operations over the talent pool.
type TalentService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

// NewTalentService constructs a TalentService with a repository, an event
// producer, and a logger.
func NewTalentService(repo Repository, producer EventProducer, logger *zap.Logger) *TalentService {
	return &TalentService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("talent_service"),
	}
}

// SearchContractors runs the dynamic contractor search. An empty filter
// returns the first page of everything in the standard order.
func (s *TalentService) SearchContractors(ctx context.Context, f models.ContractorFilter) (int64, []models.Contractor, error) {
	if f.Availability != "" && f.Availability != models.AnyAvailability && !f.Availability.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown availability %q", e.ErrInvalidInput, f.Availability)
	}
	total, page, err := s.repo.SearchContractors(ctx, f)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to search contractors: %w", err)
	}
	return total, page, nil
}

// GetContractor retrieves a contractor profile by ID.
func (s *TalentService) GetContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	c, err := s.repo.GetContractor(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get contractor: %w", err)
	}
	return c, nil
}

// GetContractorCV retrieves a contractor profile including the structured CV
// sub-records.
func (s *TalentService) GetContractorCV(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	c, err := s.repo.GetContractorCV(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get contractor CV: %w", err)
	}
	return c, nil
}

// ListJobs runs the dynamic job listing.
func (s *TalentService) ListJobs(ctx context.Context, f models.JobFilter) (int64, []models.Job, error) {
	if f.Status != "" && !f.Status.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown job status %q", e.ErrInvalidInput, f.Status)
	}
	if f.Urgency != "" && !f.Urgency.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown urgency %q", e.ErrInvalidInput, f.Urgency)
	}
	total, page, err := s.repo.ListJobs(ctx, f)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return total, page, nil
}

// GetJob retrieves a job posting by ID.
func (s *TalentService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	j, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// FindMatchingContractors ranks available contractors against the job's
// requirements and annotates each with its fit details. A missing job is a
// distinct ErrJobNotFound, never an empty match set.
func (s *TalentService) FindMatchingContractors(ctx context.Context, jobID uuid.UUID, limit int) (*models.MatchResult, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get job for matching: %w", err)
	}

	total, candidates, err := s.repo.MatchCandidates(ctx, job, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to match candidates: %w", err)
	}

	result := &models.MatchResult{Job: *job, Total: total}
	for _, c := range candidates {
		result.Matches = append(result.Matches, annotateMatch(job, c))
	}
	return result, nil
}

// UpdateJobStatus transitions a job to the given status.
func (s *TalentService) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown job status %q", e.ErrInvalidInput, status)
	}
	job, err := s.repo.UpdateJobStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	go func() {
		s.producer.Produce(events.JobStatusChanged, job.ID.String(), job)
	}()
	return job, nil
}

// CreateShortlist creates a shortlist with the required name; the optional
// descriptive fields default to empty.
func (s *TalentService) CreateShortlist(ctx context.Context, sl *models.Shortlist) (*models.Shortlist, error) {
	if sl.Name == "" {
		return nil, fmt.Errorf("%w: shortlist name required", e.ErrInvalidInput)
	}
	sl.ID = uuid.New()
	sl.Status = models.ShortlistActive
	if err := s.repo.CreateShortlist(ctx, sl); err != nil {
		return nil, fmt.Errorf("failed to create shortlist: %w", err)
	}
	go func() {
		s.producer.Produce(events.ShortlistCreated, sl.ID.String(), sl)
	}()
	return sl, nil
}

// AddToShortlist ensures the contractor is a member of the shortlist,
// updating the notes when the pair already exists. The contractor must
// exist; the shortlist must exist. Returns the item and the contractor for
// the caller's convenience.
func (s *TalentService) AddToShortlist(ctx context.Context, shortlistID, contractorID uuid.UUID, notes string) (*models.ShortlistItem, *models.Contractor, error) {
	contractor, err := s.repo.GetContractor(ctx, contractorID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to check contractor: %w", err)
	}
	if _, err := s.repo.GetShortlist(ctx, shortlistID); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to check shortlist: %w", err)
	}

	item, err := s.repo.UpsertShortlistItem(ctx, shortlistID, contractorID, notes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add to shortlist: %w", err)
	}
	go func() {
		s.producer.Produce(events.CandidateShortlisted, item.ID.String(), item)
	}()
	return item, contractor, nil
}

// GetShortlist retrieves a shortlist together with its candidates.
func (s *TalentService) GetShortlist(ctx context.Context, id uuid.UUID) (*models.ShortlistDetail, error) {
	detail, err := s.repo.GetShortlist(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get shortlist: %w", err)
	}
	return detail, nil
}

// ListShortlists returns shortlists with candidate counts, optionally
// filtered by status.
func (s *TalentService) ListShortlists(ctx context.Context, status models.ShortlistStatus) ([]models.ShortlistSummary, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown shortlist status %q", e.ErrInvalidInput, status)
	}
	out, err := s.repo.ListShortlists(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlists: %w", err)
	}
	return out, nil
}

// UpdateCandidateStatus moves an existing shortlist item to the given
// pipeline status.
func (s *TalentService) UpdateCandidateStatus(ctx context.Context, shortlistID, contractorID uuid.UUID, status models.CandidateStatus) (*models.ShortlistItem, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown candidate status %q", e.ErrInvalidInput, status)
	}
	item, err := s.repo.UpdateShortlistItemStatus(ctx, shortlistID, contractorID, status)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update candidate status: %w", err)
	}
	go func() {
		s.producer.Produce(events.CandidateStatusChanged, item.ID.String(), item)
	}()
	return item, nil
}

// DraftOutreach records an outreach draft for an existing contractor and
// returns the draft together with the contractor for convenience.
func (s *TalentService) DraftOutreach(ctx context.Context, draft *models.OutreachDraft) (*models.OutreachDraft, *models.Contractor, error) {
	contractor, err := s.repo.GetContractor(ctx, draft.ContractorID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to check contractor: %w", err)
	}

	draft.ID = uuid.New()
	draft.Status = models.OutreachDrafted
	if err := s.repo.CreateOutreach(ctx, draft); err != nil {
		return nil, nil, fmt.Errorf("failed to draft outreach: %w", err)
	}
	go func() {
		s.producer.Produce(events.OutreachDrafted, draft.ID.String(), draft)
	}()
	return draft, contractor, nil
}

// ListOutreach returns outreach drafts, optionally filtered by contractor
// and status.
func (s *TalentService) ListOutreach(ctx context.Context, f models.OutreachFilter) ([]models.OutreachSummary, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown outreach status %q", e.ErrInvalidInput, f.Status)
	}
	out, err := s.repo.ListOutreach(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list outreach: %w", err)
	}
	return out, nil
}

// BookContractor books an existing contractor into an engagement. The
// engagement insert, the availability flip and the optional shortlist item
// acceptance commit or roll back together.
func (s *TalentService) BookContractor(ctx context.Context, b models.Booking) (*models.BookingResult, error) {
	if b.RoleTitle == "" {
		return nil, fmt.Errorf("%w: role title required", e.ErrInvalidInput)
	}
	contractor, err := s.repo.GetContractor(ctx, b.ContractorID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to check contractor: %w", err)
	}

	eng := &models.Engagement{
		ID:           uuid.New(),
		ContractorID: b.ContractorID,
		ShortlistID:  b.ShortlistID,
		RoleTitle:    b.RoleTitle,
		ClientName:   b.ClientName,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		AgreedRate:   b.AgreedRate,
		Notes:        b.Notes,
		Status:       models.EngagementConfirmed,
	}
	if err := s.repo.CreateEngagement(ctx, eng); err != nil {
		if errors.Is(err, e.ErrContractorUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to book contractor: %w", err)
	}

	go func() {
		s.producer.Produce(events.ContractorBooked, eng.ID.String(), eng)
	}()
	return &models.BookingResult{
		Engagement:      *eng,
		ContractorName:  contractor.Name,
		ContractorEmail: contractor.Email,
		Message:         fmt.Sprintf("Booked %s for %s", contractor.Name, eng.RoleTitle),
	}, nil
}

// GetPipeline assembles the operational snapshot across jobs, shortlists,
// engagements and outreach.
func (s *TalentService) GetPipeline(ctx context.Context) (*models.Pipeline, error) {
	p, err := s.repo.Pipeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline view: %w", err)
	}
	return p, nil
}
