package handlers

import (
	"time"

	"github.com/gartstein/talentdesk/internal/talent/models"
)

// Wire shapes returned to agent callers. Numeric fields are native JSON
// numbers and a null rating stays null.

type contractorResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	Location        string   `json:"location"`
	DayRate         float64  `json:"day_rate"`
	YearsExperience int      `json:"years_experience"`
	Rating          *float64 `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	PlacementCount  int      `json:"placement_count"`
	Availability    string   `json:"availability"`
	Clearance       *string  `json:"clearance"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Certifications  []string `json:"certifications"`
	Sectors         []string `json:"sectors"`
	Skills          []string `json:"skills"`
	Languages       []string `json:"languages"`
}

type educationResponse struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        int    `json:"year"`
}

type workHistoryResponse struct {
	Company   string `json:"company"`
	Role      string `json:"role"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	Summary   string `json:"summary"`
}

type projectResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

type contractorCVResponse struct {
	contractorResponse
	Education   []educationResponse   `json:"education"`
	WorkHistory []workHistoryResponse `json:"work_history"`
	Projects    []projectResponse     `json:"projects"`
}

type matchResponse struct {
	contractorResponse
	MatchingCertifications []string `json:"matching_certifications"`
	MatchingSkills         []string `json:"matching_skills"`
	LocationMatch          bool     `json:"location_match"`
	WithinBudget           bool     `json:"within_budget"`
}

type jobResponse struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	ClientName             string   `json:"client_name"`
	Sector                 string   `json:"sector"`
	Location               string   `json:"location"`
	DayRateMin             *float64 `json:"day_rate_min"`
	DayRateMax             *float64 `json:"day_rate_max"`
	RequiredCertifications []string `json:"required_certifications"`
	RequiredSkills         []string `json:"required_skills"`
	RequiredClearance      *string  `json:"required_clearance"`
	MinExperience          int      `json:"min_experience"`
	Status                 string   `json:"status"`
	Urgency                string   `json:"urgency"`
	CreatedAt              string   `json:"created_at"`
}

type shortlistResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RoleTitle   string `json:"role_title"`
	ClientName  string `json:"client_name"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type shortlistSummaryResponse struct {
	shortlistResponse
	CandidateCount int `json:"candidate_count"`
}

type shortlistItemResponse struct {
	ID           string `json:"id"`
	ShortlistID  string `json:"shortlist_id"`
	ContractorID string `json:"contractor_id"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	UpdatedAt    string `json:"updated_at"`
}

type candidateResponse struct {
	shortlistItemResponse
	ContractorName  string  `json:"contractor_name"`
	ContractorTitle string  `json:"contractor_title"`
	DayRate         float64 `json:"day_rate"`
	Availability    string  `json:"availability"`
}

type shortlistDetailResponse struct {
	shortlistResponse
	Candidates []candidateResponse `json:"candidates"`
}

type outreachResponse struct {
	ID           string  `json:"id"`
	ContractorID string  `json:"contractor_id"`
	ShortlistID  *string `json:"shortlist_id"`
	Subject      string  `json:"subject"`
	Body         string  `json:"body"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

type outreachSummaryResponse struct {
	outreachResponse
	ContractorName string `json:"contractor_name"`
}

type engagementResponse struct {
	ID           string   `json:"id"`
	ContractorID string   `json:"contractor_id"`
	ShortlistID  *string  `json:"shortlist_id"`
	RoleTitle    string   `json:"role_title"`
	ClientName   string   `json:"client_name"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	AgreedRate   *float64 `json:"agreed_rate"`
	Notes        string   `json:"notes"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
}

type engagementSummaryResponse struct {
	engagementResponse
	ContractorName string `json:"contractor_name"`
}

func toContractorResponse(c *models.Contractor) contractorResponse {
	return contractorResponse{
		ID:              c.ID.String(),
		Name:            c.Name,
		Title:           c.Title,
		Bio:             c.Bio,
		Location:        c.Location,
		DayRate:         c.DayRate,
		YearsExperience: c.YearsExperience,
		Rating:          c.Rating,
		ReviewCount:     c.ReviewCount,
		PlacementCount:  c.PlacementCount,
		Availability:    string(c.Availability),
		Clearance:       c.Clearance,
		Email:           c.Email,
		Phone:           c.Phone,
		Certifications:  emptyIfNil(c.Certifications),
		Sectors:         emptyIfNil(c.Sectors),
		Skills:          emptyIfNil(c.Skills),
		Languages:       emptyIfNil(c.Languages),
	}
}

func toContractorCVResponse(c *models.Contractor) contractorCVResponse {
	out := contractorCVResponse{
		contractorResponse: toContractorResponse(c),
		Education:          []educationResponse{},
		WorkHistory:        []workHistoryResponse{},
		Projects:           []projectResponse{},
	}
	for _, ed := range c.Education {
		out.Education = append(out.Education, educationResponse(ed))
	}
	for _, wh := range c.WorkHistory {
		out.WorkHistory = append(out.WorkHistory, workHistoryResponse(wh))
	}
	for _, p := range c.Projects {
		out.Projects = append(out.Projects, projectResponse(p))
	}
	return out
}

func toMatchResponse(m models.Match) matchResponse {
	return matchResponse{
		contractorResponse:     toContractorResponse(&m.Contractor),
		MatchingCertifications: emptyIfNil(m.MatchingCertifications),
		MatchingSkills:         emptyIfNil(m.MatchingSkills),
		LocationMatch:          m.LocationMatch,
		WithinBudget:           m.WithinBudget,
	}
}

func toJobResponse(j *models.Job) jobResponse {
	return jobResponse{
		ID:                     j.ID.String(),
		Title:                  j.Title,
		Description:            j.Description,
		ClientName:             j.ClientName,
		Sector:                 j.Sector,
		Location:               j.Location,
		DayRateMin:             j.DayRateMin,
		DayRateMax:             j.DayRateMax,
		RequiredCertifications: emptyIfNil(j.RequiredCertifications),
		RequiredSkills:         emptyIfNil(j.RequiredSkills),
		RequiredClearance:      j.RequiredClearance,
		MinExperience:          j.MinExperience,
		Status:                 string(j.Status),
		Urgency:                string(j.Urgency),
		CreatedAt:              j.CreatedAt.Format(time.RFC3339),
	}
}

func toShortlistResponse(s *models.Shortlist) shortlistResponse {
	return shortlistResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		RoleTitle:   s.RoleTitle,
		ClientName:  s.ClientName,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

func toShortlistItemResponse(i *models.ShortlistItem) shortlistItemResponse {
	return shortlistItemResponse{
		ID:           i.ID.String(),
		ShortlistID:  i.ShortlistID.String(),
		ContractorID: i.ContractorID.String(),
		Status:       string(i.Status),
		Notes:        i.Notes,
		UpdatedAt:    i.UpdatedAt.Format(time.RFC3339),
	}
}

func toOutreachResponse(d *models.OutreachDraft) outreachResponse {
	out := outreachResponse{
		ID:           d.ID.String(),
		ContractorID: d.ContractorID.String(),
		Subject:      d.Subject,
		Body:         d.Body,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
	if d.ShortlistID != nil {
		id := d.ShortlistID.String()
		out.ShortlistID = &id
	}
	return out
}

func toEngagementResponse(eng *models.Engagement) engagementResponse {
	out := engagementResponse{
		ID:           eng.ID.String(),
		ContractorID: eng.ContractorID.String(),
		RoleTitle:    eng.RoleTitle,
		ClientName:   eng.ClientName,
		AgreedRate:   eng.AgreedRate,
		Notes:        eng.Notes,
		Status:       string(eng.Status),
		CreatedAt:    eng.CreatedAt.Format(time.RFC3339),
	}
	if eng.ShortlistID != nil {
		id := eng.ShortlistID.String()
		out.ShortlistID = &id
	}
	if eng.StartDate != nil {
		d := eng.StartDate.Format("2006-01-02")
		out.StartDate = &d
	}
	if eng.EndDate != nil {
		d := eng.EndDate.Format("2006-01-02")
		out.EndDate = &d
	}
	return out
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
