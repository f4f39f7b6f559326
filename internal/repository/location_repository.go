package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// LocationRepository handles sqlite operations for location records
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// ListLocations retrieves every location row, most recent first
func (r *LocationRepository) ListLocations(ctx context.Context) ([]models.RawLocation, error) {
	query := `SELECT id, guid, tracking_id, latitude, longitude, accuracy, speed, timestamp
		FROM locations
		ORDER BY timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []models.RawLocation
	for rows.Next() {
		var (
			loc                       models.RawLocation
			guid, trackingID          sql.NullString
			lat, lon, accuracy, speed sql.NullFloat64
			timestamp                 sql.NullInt64
		)
		err := rows.Scan(&loc.ID, &guid, &trackingID, &lat, &lon, &accuracy, &speed, &timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		loc.GUID = nullString(guid)
		loc.TrackingID = nullString(trackingID)
		loc.Latitude = nullFloat(lat)
		loc.Longitude = nullFloat(lon)
		loc.Accuracy = nullFloat(accuracy)
		loc.Speed = nullFloat(speed)
		loc.Timestamp = nullInt(timestamp)
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, nil
}

// DeleteLocation deletes a single location by id. Deleting a missing id is not an error.
func (r *LocationRepository) DeleteLocation(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete location %s: %w", id, err)
	}
	return nil
}

// InsertLocations stores location rows in one transaction, replacing rows with the same id
func (r *LocationRepository) InsertLocations(ctx context.Context, locations []models.RawLocation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO locations
		(id, guid, tracking_id, latitude, longitude, accuracy, speed, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, loc := range locations {
		_, err := stmt.ExecContext(ctx,
			loc.ID, loc.GUID, loc.TrackingID, loc.Latitude, loc.Longitude,
			loc.Accuracy, loc.Speed, loc.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to insert location %s: %w", loc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountLocations returns the number of stored rows
func (r *LocationRepository) CountLocations(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return total, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
