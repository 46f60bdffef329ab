package db

import (
	"sort"

	"github.com/google/uuid"

	dbm "github.com/gartstein/talentdesk/internal/talent/db/models"
	"github.com/gartstein/talentdesk/internal/talent/models"
)

// This file is the single normalization boundary between persistence rows
// and domain models: numeric fields come out natively typed, set-valued
// attributes are collected into sorted string slices, and null ratings stay
// nil rather than collapsing to zero.

func toContractor(row *dbm.Contractor) *models.Contractor {
	c := &models.Contractor{
		ID:              row.ID,
		Name:            row.Name,
		Title:           row.Title,
		Bio:             row.Bio,
		Location:        row.Location,
		DayRate:         row.DayRate,
		YearsExperience: row.YearsExperience,
		Rating:          row.Rating,
		ReviewCount:     row.ReviewCount,
		PlacementCount:  row.PlacementCount,
		Availability:    models.Availability(row.Availability),
		Clearance:       row.Clearance,
		Email:           row.Email,
		Phone:           row.Phone,
		Languages:       sortedCopy(row.Languages),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	for _, cert := range row.Certifications {
		c.Certifications = append(c.Certifications, cert.Certification)
	}
	for _, sec := range row.Sectors {
		c.Sectors = append(c.Sectors, sec.Sector)
	}
	for _, sk := range row.Skills {
		c.Skills = append(c.Skills, sk.Skill)
	}
	sort.Strings(c.Certifications)
	sort.Strings(c.Sectors)
	sort.Strings(c.Skills)
	for _, ed := range row.Education {
		c.Education = append(c.Education, models.EducationEntry{
			Institution: ed.Institution,
			Degree:      ed.Degree,
			Field:       ed.Field,
			Year:        ed.Year,
		})
	}
	for _, wh := range row.WorkHistory {
		c.WorkHistory = append(c.WorkHistory, models.WorkHistoryEntry{
			Company:   wh.Company,
			Role:      wh.Role,
			StartYear: wh.StartYear,
			EndYear:   wh.EndYear,
			Summary:   wh.Summary,
		})
	}
	for _, p := range row.Projects {
		c.Projects = append(c.Projects, models.ProjectEntry{
			Name:        p.Name,
			Description: p.Description,
			Year:        p.Year,
		})
	}
	return c
}

func toContractors(rows []dbm.Contractor) []models.Contractor {
	out := make([]models.Contractor, 0, len(rows))
	for i := range rows {
		out = append(out, *toContractor(&rows[i]))
	}
	return out
}

func fromContractor(c *models.Contractor) *dbm.Contractor {
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	row := &dbm.Contractor{
		ID:              id,
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
		Languages:       c.Languages,
	}
	for _, cert := range c.Certifications {
		row.Certifications = append(row.Certifications, dbm.ContractorCertification{Certification: cert})
	}
	for _, sec := range c.Sectors {
		row.Sectors = append(row.Sectors, dbm.ContractorSector{Sector: sec})
	}
	for _, sk := range c.Skills {
		row.Skills = append(row.Skills, dbm.ContractorSkill{Skill: sk})
	}
	for _, ed := range c.Education {
		row.Education = append(row.Education, dbm.EducationEntry{
			Institution: ed.Institution,
			Degree:      ed.Degree,
			Field:       ed.Field,
			Year:        ed.Year,
		})
	}
	for _, wh := range c.WorkHistory {
		row.WorkHistory = append(row.WorkHistory, dbm.WorkHistoryEntry{
			Company:   wh.Company,
			Role:      wh.Role,
			StartYear: wh.StartYear,
			EndYear:   wh.EndYear,
			Summary:   wh.Summary,
		})
	}
	for _, p := range c.Projects {
		row.Projects = append(row.Projects, dbm.ProjectEntry{
			Name:        p.Name,
			Description: p.Description,
			Year:        p.Year,
		})
	}
	return row
}

func toJob(row *dbm.Job) *models.Job {
	return &models.Job{
		ID:                     row.ID,
		Title:                  row.Title,
		Description:            row.Description,
		ClientName:             row.ClientName,
		Sector:                 row.Sector,
		Location:               row.Location,
		DayRateMin:             row.DayRateMin,
		DayRateMax:             row.DayRateMax,
		RequiredCertifications: sortedCopy(row.RequiredCertifications),
		RequiredSkills:         sortedCopy(row.RequiredSkills),
		RequiredClearance:      row.RequiredClearance,
		MinExperience:          row.MinExperience,
		Status:                 models.JobStatus(row.Status),
		Urgency:                models.Urgency(row.Urgency),
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}
}

func toJobs(rows []dbm.Job) []models.Job {
	out := make([]models.Job, 0, len(rows))
	for i := range rows {
		out = append(out, *toJob(&rows[i]))
	}
	return out
}

func fromJob(j *models.Job) *dbm.Job {
	id := j.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &dbm.Job{
		ID:                     id,
		Title:                  j.Title,
		Description:            j.Description,
		ClientName:             j.ClientName,
		Sector:                 j.Sector,
		Location:               j.Location,
		DayRateMin:             j.DayRateMin,
		DayRateMax:             j.DayRateMax,
		RequiredCertifications: j.RequiredCertifications,
		RequiredSkills:         j.RequiredSkills,
		RequiredClearance:      j.RequiredClearance,
		MinExperience:          j.MinExperience,
		Status:                 string(j.Status),
		Urgency:                string(j.Urgency),
	}
}

func toShortlist(row *dbm.Shortlist) *models.Shortlist {
	return &models.Shortlist{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		RoleTitle:   row.RoleTitle,
		ClientName:  row.ClientName,
		Status:      models.ShortlistStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toShortlistItem(row *dbm.ShortlistItem) *models.ShortlistItem {
	return &models.ShortlistItem{
		ID:           row.ID,
		ShortlistID:  row.ShortlistID,
		ContractorID: row.ContractorID,
		Status:       models.CandidateStatus(row.Status),
		Notes:        row.Notes,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toOutreach(row *dbm.OutreachDraft) *models.OutreachDraft {
	return &models.OutreachDraft{
		ID:           row.ID,
		ContractorID: row.ContractorID,
		ShortlistID:  row.ShortlistID,
		Subject:      row.Subject,
		Body:         row.Body,
		Status:       models.OutreachStatus(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toEngagement(row *dbm.Engagement) *models.Engagement {
	return &models.Engagement{
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
	}
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
