package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// MaintenanceRunRepository handles database operations for maintenance runs
type MaintenanceRunRepository struct {
	db *sql.DB
}

// NewMaintenanceRunRepository creates a new maintenance run repository
func NewMaintenanceRunRepository(db *sql.DB) *MaintenanceRunRepository {
	return &MaintenanceRunRepository{db: db}
}

// Create inserts a new run
func (r *MaintenanceRunRepository) Create(ctx context.Context, run *models.MaintenanceRun) error {
	query := `
		INSERT INTO maintenance_runs (
			id, operation, status, min_records, candidates, deleted, failed,
			sessions_removed, error_message, started_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Operation,
		run.Status,
		run.MinRecords,
		run.Candidates,
		run.Deleted,
		run.Failed,
		run.SessionsRemoved,
		run.ErrorMessage,
		run.StartedAt.UTC(),
		nullTime(run.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create maintenance run: %w", err)
	}
	return nil
}

// Update stores the status and counters of a run
func (r *MaintenanceRunRepository) Update(ctx context.Context, run *models.MaintenanceRun) error {
	query := `
		UPDATE maintenance_runs
		SET status = ?,
		    candidates = ?,
		    deleted = ?,
		    failed = ?,
		    sessions_removed = ?,
		    error_message = ?,
		    completed_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		run.Status,
		run.Candidates,
		run.Deleted,
		run.Failed,
		run.SessionsRemoved,
		run.ErrorMessage,
		nullTime(run.CompletedAt),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update maintenance run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("maintenance run not found: %s", run.ID)
	}
	return nil
}

// List retrieves the most recent runs
func (r *MaintenanceRunRepository) List(ctx context.Context, limit int) ([]*models.MaintenanceRun, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}

	query := `
		SELECT id, operation, status, min_records, candidates, deleted, failed,
		       sessions_removed, error_message, started_at, completed_at
		FROM maintenance_runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.MaintenanceRun
	for rows.Next() {
		run := &models.MaintenanceRun{}
		var completedAt sql.NullTime
		err := rows.Scan(
			&run.ID,
			&run.Operation,
			&run.Status,
			&run.MinRecords,
			&run.Candidates,
			&run.Deleted,
			&run.Failed,
			&run.SessionsRemoved,
			&run.ErrorMessage,
			&run.StartedAt,
			&completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance run: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			run.CompletedAt = &t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maintenance runs: %w", err)
	}

	return runs, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
