// Package db implements the talent pool's record store on top of GORM.
// All dynamic predicates are built by conditionally chaining parameterised
// Where clauses: filter values are always bound, never written into the
// query text, so only the set of filters present can vary the SQL shape.
package db

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	dbm "github.com/gartstein/talentdesk/internal/talent/db/models"
)

// Repository provides access to the talent record store.
type Repository struct {
	db *gorm.DB
}

// Config holds the postgres connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewRepository opens a postgres connection, retrying with exponential
// backoff while the database comes up, and migrates the schema.
func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var repo *Repository
	err := backoff.Retry(func() error {
		var err error
		repo, err = Open(postgres.Open(dsn))
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return repo, nil
}

// Open builds a Repository on an already-configured dialector and migrates
// the schema. Tests use it with an in-memory sqlite driver.
func Open(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&dbm.Contractor{},
		&dbm.ContractorCertification{},
		&dbm.ContractorSector{},
		&dbm.ContractorSkill{},
		&dbm.EducationEntry{},
		&dbm.WorkHistoryEntry{},
		&dbm.ProjectEntry{},
		&dbm.Job{},
		&dbm.Shortlist{},
		&dbm.ShortlistItem{},
		&dbm.OutreachDraft{},
		&dbm.Engagement{},
	)
}

// WithTransaction runs fn against a transaction-scoped repository and
// commits on success, rolling everything back if fn returns an error.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Close releases the underlying connection pool.
func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
