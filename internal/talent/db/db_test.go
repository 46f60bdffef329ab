package db

import (
	"context"
	"errors"
	"testing"

	"github.com/gartstein/talentdesk/internal/pkg/utils"
	e "github.com/gartstein/talentdesk/internal/talent/errors"
	"github.com/gartstein/talentdesk/internal/talent/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// SetupTestDB initializes an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *Repository {
	repo, err := Open(sqlite.Open(":memory:"))
	require.NoError(t, err, "failed to open test database")
	return repo
}

// seedContractor inserts a contractor, filling in required defaults.
func seedContractor(t *testing.T, repo *Repository, c models.Contractor) *models.Contractor {
	t.Helper()
	if c.Availability == "" {
		c.Availability = models.Available
	}
	require.NoError(t, repo.CreateContractor(context.Background(), &c), "CreateContractor should succeed")
	return &c
}

// seedPool inserts the four contractors the search and matching tests share.
func seedPool(t *testing.T, repo *Repository) (alice, bob, carol, dave *models.Contractor) {
	t.Helper()
	alice = seedContractor(t, repo, models.Contractor{
		Name:            "Alice Morgan",
		Title:           "Platform Engineer",
		Bio:             "Builds delivery platforms for regulated clients",
		Location:        "London",
		DayRate:         650,
		YearsExperience: 10,
		Rating:          utils.Ptr(4.8),
		ReviewCount:     32,
		Availability:    models.Available,
		Clearance:       utils.Ptr("SC"),
		Email:           utils.Ptr("alice@example.com"),
		Certifications:  []string{"CISSP", "CISM"},
		Sectors:         []string{"Finance"},
		Skills:          []string{"Kubernetes", "Terraform", "Go"},
		Languages:       []string{"English"},
	})
	bob = seedContractor(t, repo, models.Contractor{
		Name:            "Bob Archer",
		Title:           "Backend Developer",
		Bio:             "API-heavy backend work",
		Location:        "Manchester",
		DayRate:         450,
		YearsExperience: 6,
		Rating:          utils.Ptr(4.2),
		ReviewCount:     10,
		Availability:    models.Within30Days,
		Certifications:  []string{"AWS Solutions Architect"},
		Sectors:         []string{"Retail"},
		Skills:          []string{"Python", "Django"},
	})
	carol = seedContractor(t, repo, models.Contractor{
		Name:            "Carol Deng",
		Title:           "Security Consultant",
		Bio:             "Security reviews and audits",
		Location:        "London",
		DayRate:         800,
		YearsExperience: 15,
		Rating:          utils.Ptr(5.0),
		ReviewCount:     50,
		Availability:    models.Unavailable,
		Clearance:       utils.Ptr("DV"),
		Certifications:  []string{"CISSP"},
		Sectors:         []string{"Finance", "Defence"},
		Skills:          []string{"Go", "Rust"},
	})
	dave = seedContractor(t, repo, models.Contractor{
		Name:            "Dave Okafor",
		Title:           "Frontend Developer",
		Bio:             "Product-focused frontend work",
		Location:        "London",
		DayRate:         500,
		YearsExperience: 4,
		Availability:    models.Available,
		Sectors:         []string{"Media"},
		Skills:          []string{"React", "TypeScript"},
	})
	return alice, bob, carol, dave
}

func contractorIDs(contractors []models.Contractor) []string {
	ids := make([]string, 0, len(contractors))
	for _, c := range contractors {
		ids = append(ids, c.ID.String())
	}
	return ids
}

// TestWithTransactionCommit ensures work inside a transaction is visible
// after it commits.
func TestWithTransactionCommit(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	sl := models.Shortlist{Name: "Tx Shortlist"}
	err := repo.WithTransaction(ctx, func(txRepo *Repository) error {
		return txRepo.CreateShortlist(ctx, &sl)
	})
	assert.NoError(t, err, "WithTransaction should execute successfully")

	detail, err := repo.GetShortlist(ctx, sl.ID)
	assert.NoError(t, err, "shortlist should exist after commit")
	assert.Equal(t, "Tx Shortlist", detail.Name)
}

// TestWithTransactionRollback ensures an error inside the transaction undoes
// its writes.
func TestWithTransactionRollback(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	sl := models.Shortlist{Name: "Doomed Shortlist"}
	err := repo.WithTransaction(ctx, func(txRepo *Repository) error {
		if err := txRepo.CreateShortlist(ctx, &sl); err != nil {
			return err
		}
		return errors.New("abort")
	})
	assert.Error(t, err, "WithTransaction should surface the inner error")

	_, err = repo.GetShortlist(ctx, sl.ID)
	assert.ErrorIs(t, err, e.ErrShortlistNotFound, "rolled-back shortlist should not exist")
}
