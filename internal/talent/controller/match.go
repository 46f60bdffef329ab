package controller

import (
	"strings"

	"github.com/gartstein/talentdesk/internal/talent/models"
)

// annotateMatch computes the per-candidate fit details for one job: the
// certification and skill intersections, the location flag and the budget
// flag. A job without a maximum rate treats every candidate as in budget.
func annotateMatch(job *models.Job, c models.Contractor) models.Match {
	m := models.Match{
		Contractor:             c,
		MatchingCertifications: intersect(job.RequiredCertifications, c.Certifications),
		MatchingSkills:         intersect(job.RequiredSkills, c.Skills),
		LocationMatch:          strings.EqualFold(job.Location, c.Location),
		WithinBudget:           true,
	}
	if job.DayRateMax != nil {
		m.WithinBudget = c.DayRate <= *job.DayRateMax
	}
	return m
}

// intersect returns the elements of have that appear in want, compared
// case-insensitively, preserving the candidate's own spelling and order.
func intersect(want, have []string) []string {
	if len(want) == 0 || len(have) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(want))
	for _, w := range want {
		wanted[strings.ToLower(w)] = struct{}{}
	}
	var out []string
	for _, h := range have {
		if _, ok := wanted[strings.ToLower(h)]; ok {
			out = append(out, h)
		}
	}
	return out
}
