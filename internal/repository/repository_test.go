package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/tracker-dashboard-go/internal/database"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenAndMigrate(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }
func f64(v float64) *float64  { return &v }
func i64(v int64) *int64      { return &v }

func rawLocation(id, guid string, ts int64) models.RawLocation {
	return models.RawLocation{
		ID:        id,
		GUID:      strPtr(guid),
		Latitude:  f64(-23.5),
		Longitude: f64(-46.6),
		Accuracy:  f64(4),
		Speed:     f64(1.5),
		Timestamp: i64(ts),
	}
}

var ctx = context.Background()
