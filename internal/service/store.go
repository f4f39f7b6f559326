package service

import (
	"context"
	"errors"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

var (
	// ErrFetchFailed wraps any failure reading the location corpus
	ErrFetchFailed = errors.New("failed to fetch locations")
	// ErrSessionNotFound is returned when no session has the requested key
	ErrSessionNotFound = errors.New("session not found")
	// ErrPruneInProgress is returned when a prune is requested while one is running
	ErrPruneInProgress = errors.New("a prune is already in progress")
)

// LocationStore is the storage collaborator of the pipeline
type LocationStore interface {
	// ListLocations returns every stored row, most recent first
	ListLocations(ctx context.Context) ([]models.RawLocation, error)
	// DeleteLocation removes one row by id
	DeleteLocation(ctx context.Context, id string) error
}

// SessionCache memoizes reconstructed sessions
type SessionCache interface {
	Key(ctx context.Context, records []models.LocationRecord, minRecords int) (string, error)
	Get(ctx context.Context, key string) ([]models.KeyedSession, bool, error)
	Set(ctx context.Context, key string, sessions []models.KeyedSession) error
	Invalidate(ctx context.Context) error
}

// RunRecorder persists maintenance runs
type RunRecorder interface {
	Create(ctx context.Context, run *models.MaintenanceRun) error
	Update(ctx context.Context, run *models.MaintenanceRun) error
	List(ctx context.Context, limit int) ([]*models.MaintenanceRun, error)
}
