package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gartstein/talentdesk/internal/pkg/utils"
	e "github.com/gartstein/talentdesk/internal/talent/errors"
	"github.com/gartstein/talentdesk/internal/talent/events"
	"github.com/gartstein/talentdesk/internal/talent/models"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

// MockRepository implements the Repository interface for testing.
type MockRepository struct {
	createContractor          func(context.Context, *models.Contractor) error
	getContractor             func(context.Context, uuid.UUID) (*models.Contractor, error)
	getContractorCV           func(context.Context, uuid.UUID) (*models.Contractor, error)
	searchContractors         func(context.Context, models.ContractorFilter) (int64, []models.Contractor, error)
	matchCandidates           func(context.Context, *models.Job, int) (int64, []models.Contractor, error)
	createJob                 func(context.Context, *models.Job) error
	getJob                    func(context.Context, uuid.UUID) (*models.Job, error)
	listJobs                  func(context.Context, models.JobFilter) (int64, []models.Job, error)
	updateJobStatus           func(context.Context, uuid.UUID, models.JobStatus) (*models.Job, error)
	createShortlist           func(context.Context, *models.Shortlist) error
	getShortlist              func(context.Context, uuid.UUID) (*models.ShortlistDetail, error)
	listShortlists            func(context.Context, models.ShortlistStatus) ([]models.ShortlistSummary, error)
	upsertShortlistItem       func(context.Context, uuid.UUID, uuid.UUID, string) (*models.ShortlistItem, error)
	updateShortlistItemStatus func(context.Context, uuid.UUID, uuid.UUID, models.CandidateStatus) (*models.ShortlistItem, error)
	createOutreach            func(context.Context, *models.OutreachDraft) error
	listOutreach              func(context.Context, models.OutreachFilter) ([]models.OutreachSummary, error)
	createEngagement          func(context.Context, *models.Engagement) error
	pipeline                  func(context.Context) (*models.Pipeline, error)
}

func (m *MockRepository) CreateContractor(ctx context.Context, c *models.Contractor) error {
	return m.createContractor(ctx, c)
}

func (m *MockRepository) GetContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	return m.getContractor(ctx, id)
}

func (m *MockRepository) GetContractorCV(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	return m.getContractorCV(ctx, id)
}

func (m *MockRepository) SearchContractors(ctx context.Context, f models.ContractorFilter) (int64, []models.Contractor, error) {
	return m.searchContractors(ctx, f)
}

func (m *MockRepository) MatchCandidates(ctx context.Context, job *models.Job, limit int) (int64, []models.Contractor, error) {
	return m.matchCandidates(ctx, job, limit)
}

func (m *MockRepository) CreateJob(ctx context.Context, j *models.Job) error {
	return m.createJob(ctx, j)
}

func (m *MockRepository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.getJob(ctx, id)
}

func (m *MockRepository) ListJobs(ctx context.Context, f models.JobFilter) (int64, []models.Job, error) {
	return m.listJobs(ctx, f)
}

func (m *MockRepository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error) {
	return m.updateJobStatus(ctx, id, status)
}

func (m *MockRepository) CreateShortlist(ctx context.Context, s *models.Shortlist) error {
	return m.createShortlist(ctx, s)
}

func (m *MockRepository) GetShortlist(ctx context.Context, id uuid.UUID) (*models.ShortlistDetail, error) {
	return m.getShortlist(ctx, id)
}

func (m *MockRepository) ListShortlists(ctx context.Context, status models.ShortlistStatus) ([]models.ShortlistSummary, error) {
	return m.listShortlists(ctx, status)
}

func (m *MockRepository) UpsertShortlistItem(ctx context.Context, shortlistID, contractorID uuid.UUID, notes string) (*models.ShortlistItem, error) {
	return m.upsertShortlistItem(ctx, shortlistID, contractorID, notes)
}

func (m *MockRepository) UpdateShortlistItemStatus(ctx context.Context, shortlistID, contractorID uuid.UUID, status models.CandidateStatus) (*models.ShortlistItem, error) {
	return m.updateShortlistItemStatus(ctx, shortlistID, contractorID, status)
}

func (m *MockRepository) CreateOutreach(ctx context.Context, d *models.OutreachDraft) error {
	return m.createOutreach(ctx, d)
}

func (m *MockRepository) ListOutreach(ctx context.Context, f models.OutreachFilter) ([]models.OutreachSummary, error) {
	return m.listOutreach(ctx, f)
}

func (m *MockRepository) CreateEngagement(ctx context.Context, eng *models.Engagement) error {
	return m.createEngagement(ctx, eng)
}

func (m *MockRepository) Pipeline(ctx context.Context) (*models.Pipeline, error) {
	return m.pipeline(ctx)
}

func (m *MockRepository) Close() error {
	return nil
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []events.EventType
	wg             *sync.WaitGroup
}

// Produce records the event type and signals the wait group.
func (m *MockProducer) Produce(eventType events.EventType, _ string, _ interface{}) {
	m.mu.Lock()
	m.producedEvents = append(m.producedEvents, eventType)
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func (m *MockProducer) recorded() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.EventType, len(m.producedEvents))
	copy(out, m.producedEvents)
	return out
}

func TestTalentService_SearchContractors(t *testing.T) {
	tests := []struct {
		name          string
		filter        models.ContractorFilter
		mockSetup     func(*MockRepository)
		expectError   bool
		expectedError error
		expectedTotal int64
	}{
		{
			name:   "successful search",
			filter: models.ContractorFilter{Location: "London"},
			mockSetup: func(mr *MockRepository) {
				mr.searchContractors = func(_ context.Context, _ models.ContractorFilter) (int64, []models.Contractor, error) {
					return 2, []models.Contractor{{Name: "A"}, {Name: "B"}}, nil
				}
			},
			expectedTotal: 2,
		},
		{
			name:          "unknown availability",
			filter:        models.ContractorFilter{Availability: "sometimes"},
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
		{
			name:   "repository error",
			filter: models.ContractorFilter{},
			mockSetup: func(mr *MockRepository) {
				mr.searchContractors = func(_ context.Context, _ models.ContractorFilter) (int64, []models.Contractor, error) {
					return 0, nil, errors.New("database error")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			tt.mockSetup(mockRepo)
			service := NewTalentService(mockRepo, &MockProducer{}, zaptest.NewLogger(t))

			total, _, err := service.SearchContractors(context.Background(), tt.filter)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.expectedError != nil && !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != tt.expectedTotal {
				t.Errorf("expected total %d, got %d", tt.expectedTotal, total)
			}
		})
	}
}

func TestTalentService_FindMatchingContractors(t *testing.T) {
	jobID := uuid.New()
	job := &models.Job{
		ID:                     jobID,
		Title:                  "Security Lead",
		Location:               "London",
		DayRateMax:             utils.Ptr(700.0),
		RequiredCertifications: []string{"CISSP", "CISM"},
		RequiredSkills:         []string{"Go"},
	}
	inBudget := models.Contractor{
		ID:             uuid.New(),
		Name:           "Alice Morgan",
		Location:       "london",
		DayRate:        650,
		Certifications: []string{"Cissp"},
		Skills:         []string{"go", "rust"},
	}
	overBudget := models.Contractor{
		ID:       uuid.New(),
		Name:     "Carol Deng",
		Location: "Leeds",
		DayRate:  800,
		Skills:   []string{"Go"},
	}

	mockRepo := &MockRepository{
		getJob: func(_ context.Context, id uuid.UUID) (*models.Job, error) {
			if id != jobID {
				return nil, e.ErrJobNotFound
			}
			return job, nil
		},
		matchCandidates: func(_ context.Context, _ *models.Job, _ int) (int64, []models.Contractor, error) {
			return 2, []models.Contractor{inBudget, overBudget}, nil
		},
	}
	service := NewTalentService(mockRepo, &MockProducer{}, zaptest.NewLogger(t))

	result, err := service.FindMatchingContractors(context.Background(), jobID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("expected total 2, got %d", result.Total)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result.Matches))
	}

	first := result.Matches[0]
	if len(first.MatchingCertifications) != 1 || first.MatchingCertifications[0] != "Cissp" {
		t.Errorf("expected the candidate's own certification spelling, got %v", first.MatchingCertifications)
	}
	if len(first.MatchingSkills) != 1 || first.MatchingSkills[0] != "go" {
		t.Errorf("expected matching skill in the candidate's spelling, got %v", first.MatchingSkills)
	}
	if !first.LocationMatch {
		t.Error("expected a case-insensitive location match")
	}
	if !first.WithinBudget {
		t.Error("expected 650 to be within a 700 budget")
	}

	second := result.Matches[1]
	if second.LocationMatch {
		t.Error("Leeds should not match London")
	}
	if second.WithinBudget {
		t.Error("800 should exceed a 700 budget")
	}
	if len(second.MatchingCertifications) != 0 {
		t.Errorf("expected no certification overlap, got %v", second.MatchingCertifications)
	}
}

func TestTalentService_FindMatchingContractorsJobNotFound(t *testing.T) {
	mockRepo := &MockRepository{
		getJob: func(_ context.Context, _ uuid.UUID) (*models.Job, error) {
			return nil, e.ErrJobNotFound
		},
	}
	service := NewTalentService(mockRepo, &MockProducer{}, zaptest.NewLogger(t))

	_, err := service.FindMatchingContractors(context.Background(), uuid.New(), 0)
	if !errors.Is(err, e.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestTalentService_UpdateJobStatus(t *testing.T) {
	jobID := uuid.New()

	tests := []struct {
		name          string
		status        models.JobStatus
		mockSetup     func(*MockRepository)
		expectError   bool
		expectedError error
	}{
		{
			name:   "successful update",
			status: models.JobInterviewing,
			mockSetup: func(mr *MockRepository) {
				mr.updateJobStatus = func(_ context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error) {
					return &models.Job{ID: id, Status: status}, nil
				}
			},
		},
		{
			name:          "unknown status",
			status:        "abandoned",
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
		{
			name:   "job missing",
			status: models.JobFilled,
			mockSetup: func(mr *MockRepository) {
				mr.updateJobStatus = func(_ context.Context, _ uuid.UUID, _ models.JobStatus) (*models.Job, error) {
					return nil, e.ErrJobNotFound
				}
			},
			expectError:   true,
			expectedError: e.ErrJobNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewTalentService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if !tt.expectError {
				mockProducer.wg.Add(1)
			}

			job, err := service.UpdateJobStatus(context.Background(), jobID, tt.status)

			if !tt.expectError {
				mockProducer.wg.Wait()
			}

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if job.Status != tt.status {
				t.Errorf("expected status %s, got %s", tt.status, job.Status)
			}
			if got := mockProducer.recorded(); len(got) != 1 || got[0] != events.JobStatusChanged {
				t.Errorf("expected a job_status_changed event, got %v", got)
			}
		})
	}
}

func TestTalentService_CreateShortlist(t *testing.T) {
	tests := []struct {
		name          string
		input         *models.Shortlist
		mockSetup     func(*MockRepository)
		expectError   bool
		expectedError error
	}{
		{
			name:  "successful creation",
			input: &models.Shortlist{Name: "Q3 Bench"},
			mockSetup: func(mr *MockRepository) {
				mr.createShortlist = func(_ context.Context, _ *models.Shortlist) error {
					return nil
				}
			},
		},
		{
			name:          "missing name",
			input:         &models.Shortlist{},
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewTalentService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if !tt.expectError {
				mockProducer.wg.Add(1)
			}

			sl, err := service.CreateShortlist(context.Background(), tt.input)

			if !tt.expectError {
				mockProducer.wg.Wait()
			}

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sl.ID == uuid.Nil {
				t.Error("expected shortlist ID to be set")
			}
			if sl.Status != models.ShortlistActive {
				t.Errorf("expected active status, got %s", sl.Status)
			}
		})
	}
}

func TestTalentService_AddToShortlist(t *testing.T) {
	shortlistID := uuid.New()
	contractorID := uuid.New()

	tests := []struct {
		name          string
		mockSetup     func(*MockRepository)
		expectError   bool
		expectedError error
	}{
		{
			name: "successful add",
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, id uuid.UUID) (*models.Contractor, error) {
					return &models.Contractor{ID: id, Name: "Alice Morgan", Title: "Platform Engineer"}, nil
				}
				mr.getShortlist = func(_ context.Context, id uuid.UUID) (*models.ShortlistDetail, error) {
					return &models.ShortlistDetail{Shortlist: models.Shortlist{ID: id}}, nil
				}
				mr.upsertShortlistItem = func(_ context.Context, sID, cID uuid.UUID, notes string) (*models.ShortlistItem, error) {
					return &models.ShortlistItem{
						ID:           uuid.New(),
						ShortlistID:  sID,
						ContractorID: cID,
						Status:       models.CandidateShortlisted,
						Notes:        notes,
					}, nil
				}
			},
		},
		{
			name: "contractor missing",
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, _ uuid.UUID) (*models.Contractor, error) {
					return nil, e.ErrContractorNotFound
				}
			},
			expectError:   true,
			expectedError: e.ErrContractorNotFound,
		},
		{
			name: "shortlist missing",
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, id uuid.UUID) (*models.Contractor, error) {
					return &models.Contractor{ID: id}, nil
				}
				mr.getShortlist = func(_ context.Context, _ uuid.UUID) (*models.ShortlistDetail, error) {
					return nil, e.ErrShortlistNotFound
				}
			},
			expectError:   true,
			expectedError: e.ErrShortlistNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewTalentService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if !tt.expectError {
				mockProducer.wg.Add(1)
			}

			item, contractor, err := service.AddToShortlist(context.Background(), shortlistID, contractorID, "strong fit")

			if !tt.expectError {
				mockProducer.wg.Wait()
			}

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.Notes != "strong fit" {
				t.Errorf("expected notes to pass through, got %q", item.Notes)
			}
			if contractor.Name != "Alice Morgan" {
				t.Errorf("expected the contractor back, got %q", contractor.Name)
			}
			if got := mockProducer.recorded(); len(got) != 1 || got[0] != events.CandidateShortlisted {
				t.Errorf("expected a candidate_shortlisted event, got %v", got)
			}
		})
	}
}

func TestTalentService_UpdateCandidateStatus(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewTalentService(mockRepo, &MockProducer{}, zaptest.NewLogger(t))

	_, err := service.UpdateCandidateStatus(context.Background(), uuid.New(), uuid.New(), "ghosted")
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for an unknown status, got %v", err)
	}
}

func TestTalentService_DraftOutreach(t *testing.T) {
	contractorID := uuid.New()

	tests := []struct {
		name          string
		mockSetup     func(*MockRepository)
		expectError   bool
		expectedError error
	}{
		{
			name: "successful draft",
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, id uuid.UUID) (*models.Contractor, error) {
					return &models.Contractor{ID: id, Name: "Alice Morgan", Email: utils.Ptr("alice@example.com")}, nil
				}
				mr.createOutreach = func(_ context.Context, _ *models.OutreachDraft) error {
					return nil
				}
			},
		},
		{
			name: "contractor missing",
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, _ uuid.UUID) (*models.Contractor, error) {
					return nil, e.ErrContractorNotFound
				}
			},
			expectError:   true,
			expectedError: e.ErrContractorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewTalentService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if !tt.expectError {
				mockProducer.wg.Add(1)
			}

			draft, contractor, err := service.DraftOutreach(context.Background(), &models.OutreachDraft{
				ContractorID: contractorID,
				Subject:      "Platform role",
			})

			if !tt.expectError {
				mockProducer.wg.Wait()
			}

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if draft.ID == uuid.Nil {
				t.Error("expected draft ID to be set")
			}
			if draft.Status != models.OutreachDrafted {
				t.Errorf("expected draft status, got %s", draft.Status)
			}
			if contractor.Email == nil || *contractor.Email != "alice@example.com" {
				t.Error("expected the contractor's email back")
			}
		})
	}
}

func TestTalentService_BookContractor(t *testing.T) {
	contractorID := uuid.New()

	tests := []struct {
		name          string
		booking       models.Booking
		mockSetup     func(*MockRepository)
		expectError   bool
		expectedError error
	}{
		{
			name: "successful booking",
			booking: models.Booking{
				ContractorID: contractorID,
				RoleTitle:    "Lead Auditor",
				ClientName:   "Northwind",
			},
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, id uuid.UUID) (*models.Contractor, error) {
					return &models.Contractor{ID: id, Name: "Alice Morgan", Availability: models.Available}, nil
				}
				mr.createEngagement = func(_ context.Context, _ *models.Engagement) error {
					return nil
				}
			},
		},
		{
			name:          "missing role title",
			booking:       models.Booking{ContractorID: contractorID},
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
		{
			name: "contractor missing",
			booking: models.Booking{
				ContractorID: contractorID,
				RoleTitle:    "Lead Auditor",
			},
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, _ uuid.UUID) (*models.Contractor, error) {
					return nil, e.ErrContractorNotFound
				}
			},
			expectError:   true,
			expectedError: e.ErrContractorNotFound,
		},
		{
			name: "contractor unavailable",
			booking: models.Booking{
				ContractorID: contractorID,
				RoleTitle:    "Lead Auditor",
			},
			mockSetup: func(mr *MockRepository) {
				mr.getContractor = func(_ context.Context, id uuid.UUID) (*models.Contractor, error) {
					return &models.Contractor{ID: id, Name: "Carol Deng", Availability: models.Unavailable}, nil
				}
				mr.createEngagement = func(_ context.Context, _ *models.Engagement) error {
					return e.ErrContractorUnavailable
				}
			},
			expectError:   true,
			expectedError: e.ErrContractorUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewTalentService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if !tt.expectError {
				mockProducer.wg.Add(1)
			}

			result, err := service.BookContractor(context.Background(), tt.booking)

			if !tt.expectError {
				mockProducer.wg.Wait()
			}

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Engagement.Status != models.EngagementConfirmed {
				t.Errorf("expected a confirmed engagement, got %s", result.Engagement.Status)
			}
			if result.Message != "Booked Alice Morgan for Lead Auditor" {
				t.Errorf("unexpected confirmation message %q", result.Message)
			}
			if got := mockProducer.recorded(); len(got) != 1 || got[0] != events.ContractorBooked {
				t.Errorf("expected a contractor_booked event, got %v", got)
			}
		})
	}
}
