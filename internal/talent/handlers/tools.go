// Package handlers exposes the talent operations as named, JSON-argument
// tools over HTTP, bridging the transport layer and business logic.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	e "github.com/gartstein/talentdesk/internal/talent/errors"
	"github.com/gartstein/talentdesk/internal/talent/metrics"
	"github.com/gartstein/talentdesk/internal/talent/models"
)

// TalentController defines the business logic interface the tool dispatcher
// invokes.
type TalentController interface {
	SearchContractors(ctx context.Context, f models.ContractorFilter) (int64, []models.Contractor, error)
	GetContractor(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	GetContractorCV(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	ListJobs(ctx context.Context, f models.JobFilter) (int64, []models.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	FindMatchingContractors(ctx context.Context, jobID uuid.UUID, limit int) (*models.MatchResult, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) (*models.Job, error)
	CreateShortlist(ctx context.Context, sl *models.Shortlist) (*models.Shortlist, error)
	AddToShortlist(ctx context.Context, shortlistID, contractorID uuid.UUID, notes string) (*models.ShortlistItem, *models.Contractor, error)
	GetShortlist(ctx context.Context, id uuid.UUID) (*models.ShortlistDetail, error)
	ListShortlists(ctx context.Context, status models.ShortlistStatus) ([]models.ShortlistSummary, error)
	UpdateCandidateStatus(ctx context.Context, shortlistID, contractorID uuid.UUID, status models.CandidateStatus) (*models.ShortlistItem, error)
	DraftOutreach(ctx context.Context, draft *models.OutreachDraft) (*models.OutreachDraft, *models.Contractor, error)
	ListOutreach(ctx context.Context, f models.OutreachFilter) ([]models.OutreachSummary, error)
	BookContractor(ctx context.Context, b models.Booking) (*models.BookingResult, error)
	GetPipeline(ctx context.Context) (*models.Pipeline, error)
}

type toolFunc func(ctx context.Context, args json.RawMessage) (interface{}, error)

// ToolHandler dispatches named tool invocations to the TalentController.
type ToolHandler struct {
	service TalentController
	logger  *zap.Logger
	tools   map[string]toolFunc
}

// NewToolHandler constructs a ToolHandler with the full operation table.
func NewToolHandler(service TalentController, logger *zap.Logger) *ToolHandler {
	h := &ToolHandler{
		service: service,
		logger:  logger.Named("tool_handler"),
	}
	h.tools = map[string]toolFunc{
		"search_contractors":        h.searchContractors,
		"get_contractor":            h.getContractor,
		"get_contractor_cv":         h.getContractorCV,
		"list_jobs":                 h.listJobs,
		"get_job":                   h.getJob,
		"find_matching_contractors": h.findMatchingContractors,
		"update_job_status":         h.updateJobStatus,
		"create_shortlist":          h.createShortlist,
		"add_to_shortlist":          h.addToShortlist,
		"get_shortlist":             h.getShortlist,
		"list_shortlists":           h.listShortlists,
		"update_candidate_status":   h.updateCandidateStatus,
		"draft_outreach":            h.draftOutreach,
		"list_outreach":             h.listOutreach,
		"book_contractor":           h.bookContractor,
		"get_pipeline":              h.getPipeline,
	}
	return h
}

// Names returns the sorted tool names, for agent discovery.
func (h *ToolHandler) Names() []string {
	names := make([]string, 0, len(h.tools))
	for name := range h.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs one named tool. Precondition failures come back as
// `{"error": ...}` data; read-by-id misses as JSON null; malformed arguments
// as 400; store failures as 500 faults.
func (h *ToolHandler) Dispatch(c *fiber.Ctx) error {
	name := c.Params("name")
	tool, ok := h.tools[name]
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": fmt.Sprintf("unknown tool %q", name)})
	}

	args := c.Body()
	if len(args) == 0 {
		args = []byte("{}")
	}

	start := time.Now()
	result, err := tool(c.UserContext(), args)
	if err != nil {
		return h.mapToolError(c, name, err, start)
	}
	metrics.RecordToolCall(name, "ok", time.Since(start).Seconds())
	return c.Status(http.StatusOK).JSON(result)
}

func (h *ToolHandler) mapToolError(c *fiber.Ctx, name string, err error, start time.Time) error {
	switch {
	case errors.Is(err, e.ErrNotFound):
		metrics.RecordToolCall(name, "error", time.Since(start).Seconds())
		return c.Status(http.StatusOK).JSON(fiber.Map{"error": notFoundMessage(err)})
	case errors.Is(err, e.ErrContractorUnavailable):
		metrics.RecordToolCall(name, "error", time.Since(start).Seconds())
		return c.Status(http.StatusOK).JSON(fiber.Map{"error": "Contractor is no longer available"})
	case errors.Is(err, e.ErrInvalidInput):
		metrics.RecordToolCall(name, "error", time.Since(start).Seconds())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Error("Tool invocation failed",
		zap.String("tool", name),
		zap.Error(err),
	)
	metrics.RecordToolCall(name, "fault", time.Since(start).Seconds())
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, e.ErrContractorNotFound):
		return "Contractor not found"
	case errors.Is(err, e.ErrJobNotFound):
		return "Job not found"
	case errors.Is(err, e.ErrShortlistItemNotFound):
		return "Shortlist item not found"
	case errors.Is(err, e.ErrShortlistNotFound):
		return "Shortlist not found"
	}
	return "Not found"
}

type idArgs struct {
	ID string `json:"id"`
}

func (h *ToolHandler) searchContractors(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		Query          string   `json:"query"`
		Location       string   `json:"location"`
		Availability   string   `json:"availability"`
		Certifications []string `json:"certifications"`
		Skills         []string `json:"skills"`
		Sector         string   `json:"sector"`
		MaxRate        *float64 `json:"max_rate"`
		MinExperience  *int     `json:"min_experience"`
		Clearance      string   `json:"clearance"`
		Limit          int      `json:"limit"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	total, page, err := h.service.SearchContractors(ctx, models.ContractorFilter{
		Query:          in.Query,
		Location:       in.Location,
		Availability:   models.Availability(in.Availability),
		Certifications: in.Certifications,
		Skills:         in.Skills,
		Sector:         in.Sector,
		MaxRate:        in.MaxRate,
		MinExperience:  in.MinExperience,
		Clearance:      in.Clearance,
		Limit:          in.Limit,
	})
	if err != nil {
		return nil, err
	}
	contractors := make([]contractorResponse, 0, len(page))
	for i := range page {
		contractors = append(contractors, toContractorResponse(&page[i]))
	}
	return fiber.Map{
		"total_matches": total,
		"showing":       len(contractors),
		"contractors":   contractors,
	}, nil
}

func (h *ToolHandler) getContractor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	id, err := parseIDArgs(args)
	if err != nil {
		return nil, err
	}
	c, err := h.service.GetContractor(ctx, id)
	if errors.Is(err, e.ErrContractorNotFound) {
		// Pure read-by-id: absence is null, not an error object.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toContractorResponse(c), nil
}

func (h *ToolHandler) getContractorCV(ctx context.Context, args json.RawMessage) (interface{}, error) {
	id, err := parseIDArgs(args)
	if err != nil {
		return nil, err
	}
	c, err := h.service.GetContractorCV(ctx, id)
	if errors.Is(err, e.ErrContractorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toContractorCVResponse(c), nil
}

func (h *ToolHandler) listJobs(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		Status   string `json:"status"`
		Sector   string `json:"sector"`
		Urgency  string `json:"urgency"`
		Location string `json:"location"`
		Limit    int    `json:"limit"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	total, page, err := h.service.ListJobs(ctx, models.JobFilter{
		Status:   models.JobStatus(in.Status),
		Sector:   in.Sector,
		Urgency:  models.Urgency(in.Urgency),
		Location: in.Location,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, err
	}
	jobs := make([]jobResponse, 0, len(page))
	for i := range page {
		jobs = append(jobs, toJobResponse(&page[i]))
	}
	return fiber.Map{"total": total, "jobs": jobs}, nil
}

func (h *ToolHandler) getJob(ctx context.Context, args json.RawMessage) (interface{}, error) {
	id, err := parseIDArgs(args)
	if err != nil {
		return nil, err
	}
	j, err := h.service.GetJob(ctx, id)
	if errors.Is(err, e.ErrJobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toJobResponse(j), nil
}

func (h *ToolHandler) findMatchingContractors(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		JobID string `json:"job_id"`
		Limit int    `json:"limit"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	jobID, err := parseID(in.JobID, "job_id")
	if err != nil {
		return nil, err
	}
	result, err := h.service.FindMatchingContractors(ctx, jobID, in.Limit)
	if err != nil {
		return nil, err
	}
	matches := make([]matchResponse, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, toMatchResponse(m))
	}
	return fiber.Map{
		"job":           toJobResponse(&result.Job),
		"total_matches": result.Total,
		"contractors":   matches,
	}, nil
}

func (h *ToolHandler) updateJobStatus(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	id, err := parseID(in.ID, "id")
	if err != nil {
		return nil, err
	}
	job, err := h.service.UpdateJobStatus(ctx, id, models.JobStatus(in.Status))
	if err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

func (h *ToolHandler) createShortlist(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		RoleTitle   string `json:"role_title"`
		ClientName  string `json:"client_name"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	sl, err := h.service.CreateShortlist(ctx, &models.Shortlist{
		Name:        in.Name,
		Description: in.Description,
		RoleTitle:   in.RoleTitle,
		ClientName:  in.ClientName,
	})
	if err != nil {
		return nil, err
	}
	return toShortlistResponse(sl), nil
}

func (h *ToolHandler) addToShortlist(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		ShortlistID  string `json:"shortlist_id"`
		ContractorID string `json:"contractor_id"`
		Notes        string `json:"notes"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	shortlistID, err := parseID(in.ShortlistID, "shortlist_id")
	if err != nil {
		return nil, err
	}
	contractorID, err := parseID(in.ContractorID, "contractor_id")
	if err != nil {
		return nil, err
	}
	item, contractor, err := h.service.AddToShortlist(ctx, shortlistID, contractorID, in.Notes)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"item":             toShortlistItemResponse(item),
		"contractor_name":  contractor.Name,
		"contractor_title": contractor.Title,
	}, nil
}

func (h *ToolHandler) getShortlist(ctx context.Context, args json.RawMessage) (interface{}, error) {
	id, err := parseIDArgs(args)
	if err != nil {
		return nil, err
	}
	detail, err := h.service.GetShortlist(ctx, id)
	if errors.Is(err, e.ErrShortlistNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := shortlistDetailResponse{
		shortlistResponse: toShortlistResponse(&detail.Shortlist),
		Candidates:        []candidateResponse{},
	}
	for i := range detail.Candidates {
		cand := &detail.Candidates[i]
		out.Candidates = append(out.Candidates, candidateResponse{
			shortlistItemResponse: toShortlistItemResponse(&cand.ShortlistItem),
			ContractorName:        cand.ContractorName,
			ContractorTitle:       cand.ContractorTitle,
			DayRate:               cand.DayRate,
			Availability:          string(cand.Availability),
		})
	}
	return out, nil
}

func (h *ToolHandler) listShortlists(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		Status string `json:"status"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	summaries, err := h.service.ListShortlists(ctx, models.ShortlistStatus(in.Status))
	if err != nil {
		return nil, err
	}
	out := make([]shortlistSummaryResponse, 0, len(summaries))
	for i := range summaries {
		out = append(out, shortlistSummaryResponse{
			shortlistResponse: toShortlistResponse(&summaries[i].Shortlist),
			CandidateCount:    summaries[i].CandidateCount,
		})
	}
	return out, nil
}

func (h *ToolHandler) updateCandidateStatus(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		ShortlistID  string `json:"shortlist_id"`
		ContractorID string `json:"contractor_id"`
		Status       string `json:"status"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	shortlistID, err := parseID(in.ShortlistID, "shortlist_id")
	if err != nil {
		return nil, err
	}
	contractorID, err := parseID(in.ContractorID, "contractor_id")
	if err != nil {
		return nil, err
	}
	item, err := h.service.UpdateCandidateStatus(ctx, shortlistID, contractorID, models.CandidateStatus(in.Status))
	if err != nil {
		return nil, err
	}
	return toShortlistItemResponse(item), nil
}

func (h *ToolHandler) draftOutreach(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		ContractorID string `json:"contractor_id"`
		ShortlistID  string `json:"shortlist_id"`
		Subject      string `json:"subject"`
		Body         string `json:"body"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	contractorID, err := parseID(in.ContractorID, "contractor_id")
	if err != nil {
		return nil, err
	}
	draft := &models.OutreachDraft{
		ContractorID: contractorID,
		Subject:      in.Subject,
		Body:         in.Body,
	}
	if in.ShortlistID != "" {
		shortlistID, err := parseID(in.ShortlistID, "shortlist_id")
		if err != nil {
			return nil, err
		}
		draft.ShortlistID = &shortlistID
	}
	created, contractor, err := h.service.DraftOutreach(ctx, draft)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"draft":            toOutreachResponse(created),
		"contractor_name":  contractor.Name,
		"contractor_email": contractor.Email,
	}, nil
}

func (h *ToolHandler) listOutreach(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		ContractorID string `json:"contractor_id"`
		Status       string `json:"status"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	f := models.OutreachFilter{Status: models.OutreachStatus(in.Status)}
	if in.ContractorID != "" {
		contractorID, err := parseID(in.ContractorID, "contractor_id")
		if err != nil {
			return nil, err
		}
		f.ContractorID = &contractorID
	}
	drafts, err := h.service.ListOutreach(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]outreachSummaryResponse, 0, len(drafts))
	for i := range drafts {
		out = append(out, outreachSummaryResponse{
			outreachResponse: toOutreachResponse(&drafts[i].OutreachDraft),
			ContractorName:   drafts[i].ContractorName,
		})
	}
	return out, nil
}

func (h *ToolHandler) bookContractor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var in struct {
		ContractorID string   `json:"contractor_id"`
		RoleTitle    string   `json:"role_title"`
		ClientName   string   `json:"client_name"`
		ShortlistID  string   `json:"shortlist_id"`
		StartDate    string   `json:"start_date"`
		EndDate      string   `json:"end_date"`
		AgreedRate   *float64 `json:"agreed_rate"`
		Notes        string   `json:"notes"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	contractorID, err := parseID(in.ContractorID, "contractor_id")
	if err != nil {
		return nil, err
	}
	b := models.Booking{
		ContractorID: contractorID,
		RoleTitle:    in.RoleTitle,
		ClientName:   in.ClientName,
		AgreedRate:   in.AgreedRate,
		Notes:        in.Notes,
	}
	if in.ShortlistID != "" {
		shortlistID, err := parseID(in.ShortlistID, "shortlist_id")
		if err != nil {
			return nil, err
		}
		b.ShortlistID = &shortlistID
	}
	if b.StartDate, err = parseDate(in.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if b.EndDate, err = parseDate(in.EndDate, "end_date"); err != nil {
		return nil, err
	}
	result, err := h.service.BookContractor(ctx, b)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"engagement":       toEngagementResponse(&result.Engagement),
		"contractor_name":  result.ContractorName,
		"contractor_email": result.ContractorEmail,
		"message":          result.Message,
	}, nil
}

func (h *ToolHandler) getPipeline(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	p, err := h.service.GetPipeline(ctx)
	if err != nil {
		return nil, err
	}

	jobs := make([]jobResponse, 0, len(p.OpenJobs))
	for i := range p.OpenJobs {
		jobs = append(jobs, toJobResponse(&p.OpenJobs[i]))
	}
	shortlists := make([]shortlistSummaryResponse, 0, len(p.ActiveShortlists))
	for i := range p.ActiveShortlists {
		shortlists = append(shortlists, shortlistSummaryResponse{
			shortlistResponse: toShortlistResponse(&p.ActiveShortlists[i].Shortlist),
			CandidateCount:    p.ActiveShortlists[i].CandidateCount,
		})
	}
	engagements := make([]engagementSummaryResponse, 0, len(p.ActiveEngagements))
	for i := range p.ActiveEngagements {
		engagements = append(engagements, engagementSummaryResponse{
			engagementResponse: toEngagementResponse(&p.ActiveEngagements[i].Engagement),
			ContractorName:     p.ActiveEngagements[i].ContractorName,
		})
	}
	outreach := make([]outreachSummaryResponse, 0, len(p.PendingOutreach))
	for i := range p.PendingOutreach {
		outreach = append(outreach, outreachSummaryResponse{
			outreachResponse: toOutreachResponse(&p.PendingOutreach[i].OutreachDraft),
			ContractorName:   p.PendingOutreach[i].ContractorName,
		})
	}

	return fiber.Map{
		"open_jobs":          jobs,
		"active_shortlists":  shortlists,
		"active_engagements": engagements,
		"pending_outreach":   outreach,
		"summary": fiber.Map{
			"open_jobs":          len(jobs),
			"active_shortlists":  len(shortlists),
			"active_engagements": len(engagements),
			"pending_outreach":   len(outreach),
		},
	}, nil
}

func decodeArgs(args json.RawMessage, dst interface{}) error {
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("%w: malformed arguments: %v", e.ErrInvalidInput, err)
	}
	return nil
}

func parseIDArgs(args json.RawMessage) (uuid.UUID, error) {
	var in idArgs
	if err := decodeArgs(args, &in); err != nil {
		return uuid.Nil, err
	}
	return parseID(in.ID, "id")
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", e.ErrInvalidInput, field)
	}
	return id, nil
}

func parseDate(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s, want YYYY-MM-DD", e.ErrInvalidInput, field)
	}
	return &t, nil
}
