// Package db stores serialized CompanyState snapshots in a SQL database
// through GORM. SQLite is the default local medium; PostgreSQL is supported
// for deployments that keep the register on a shared database host.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/corpsec/internal/compliance/db/models"
	e "github.com/gartstein/corpsec/internal/compliance/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// MaxElapsed bounds how long Open keeps retrying. Zero means one attempt.
	MaxElapsed time.Duration
}

func dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = "corpsec.db"
		}
		return sqlite.Open(path), nil
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
		return postgres.Open(dsn), nil
	default:
		return nil, &unknownDriverError{driver: cfg.Driver}
	}
}

type unknownDriverError struct {
	driver string
}

func (u *unknownDriverError) Error() string {
	return fmt.Sprintf("unknown database driver %q", u.driver)
}

func NewRepository(cfg *Config) (*Repository, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Open is NewRepository with exponential backoff, for media that may not be
// reachable yet when the process starts.
func Open(ctx context.Context, cfg *Config) (*Repository, error) {
	if cfg.MaxElapsed <= 0 {
		return NewRepository(cfg)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.MaxElapsed

	var repo *Repository
	err := backoff.Retry(func() error {
		var err error
		repo, err = NewRepository(cfg)
		var unknown *unknownDriverError
		if errors.As(err, &unknown) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Load returns the payload stored under key, or ErrNotFound.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	var snap models.Snapshot
	result := r.db.WithContext(ctx).First(&snap, "name = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return snap.Payload, nil
}

// Save writes payload under key, replacing any previous snapshot.
func (r *Repository) Save(ctx context.Context, key string, version int, payload []byte) error {
	snap := models.Snapshot{
		Name:      key,
		Payload:   payload,
		Version:   version,
		UpdatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "version", "updated_at"}),
	}).Create(&snap)
	return result.Error
}

// Delete removes the snapshot under key. Missing keys are not an error.
func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.Snapshot{}, "name = ?", key).Error
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
