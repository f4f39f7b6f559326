package repository

import (
	"context"
	"fmt"

	"github.com/jengzang/tracker-dashboard-go/internal/database"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// PostgresLocationRepository reads and deletes location rows in Postgres
type PostgresLocationRepository struct {
	db database.Querier
}

// NewPostgresLocationRepository creates a new Postgres location repository
func NewPostgresLocationRepository(db database.Querier) *PostgresLocationRepository {
	return &PostgresLocationRepository{db: db}
}

// ListLocations retrieves every location row, most recent first
func (r *PostgresLocationRepository) ListLocations(ctx context.Context) ([]models.RawLocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, guid, tracking_id, latitude, longitude, accuracy, speed, timestamp
		FROM locations
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []models.RawLocation
	for rows.Next() {
		var loc models.RawLocation
		err := rows.Scan(
			&loc.ID, &loc.GUID, &loc.TrackingID, &loc.Latitude, &loc.Longitude,
			&loc.Accuracy, &loc.Speed, &loc.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, nil
}

// DeleteLocation deletes a single location by id
func (r *PostgresLocationRepository) DeleteLocation(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete location %s: %w", id, err)
	}
	return nil
}

// InsertLocations upserts location rows one statement at a time
func (r *PostgresLocationRepository) InsertLocations(ctx context.Context, locations []models.RawLocation) error {
	for _, loc := range locations {
		_, err := r.db.Exec(ctx, `
			INSERT INTO locations (id, guid, tracking_id, latitude, longitude, accuracy, speed, timestamp)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				guid = EXCLUDED.guid, tracking_id = EXCLUDED.tracking_id,
				latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude,
				accuracy = EXCLUDED.accuracy, speed = EXCLUDED.speed, timestamp = EXCLUDED.timestamp
		`, loc.ID, loc.GUID, loc.TrackingID, loc.Latitude, loc.Longitude, loc.Accuracy, loc.Speed, loc.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert location %s: %w", loc.ID, err)
		}
	}
	return nil
}

// CountLocations returns the number of stored rows
func (r *PostgresLocationRepository) CountLocations(ctx context.Context) (int64, error) {
	rows, err := r.db.Query(ctx, `SELECT COUNT(*) FROM locations`)
	if err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	defer rows.Close()

	var total int64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, fmt.Errorf("failed to count locations: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return total, nil
}
