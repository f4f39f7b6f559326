package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

func TestMaintenanceRunLifecycle(t *testing.T) {
	repo := NewMaintenanceRunRepository(openTestDB(t))

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	run := &models.MaintenanceRun{
		ID:         "run-1",
		Operation:  models.OperationPruneIncomplete,
		Status:     models.RunStatusRunning,
		MinRecords: 10,
		StartedAt:  started,
	}
	require.NoError(t, repo.Create(ctx, run))

	completed := started.Add(time.Minute)
	run.Status = models.RunStatusCompleted
	run.Candidates = 4
	run.Deleted = 3
	run.Failed = 1
	run.SessionsRemoved = 1
	run.CompletedAt = &completed
	require.NoError(t, repo.Update(ctx, run))

	runs, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, 3, got.Deleted)
	assert.Equal(t, 1, got.Failed)
	assert.True(t, started.Equal(got.StartedAt))
	require.NotNil(t, got.CompletedAt)
	assert.True(t, completed.Equal(*got.CompletedAt))
}

func TestMaintenanceRunListOrder(t *testing.T) {
	repo := NewMaintenanceRunRepository(openTestDB(t))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		require.NoError(t, repo.Create(ctx, &models.MaintenanceRun{
			ID:        id,
			Operation: models.OperationPruneIncomplete,
			Status:    models.RunStatusRunning,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Nil(t, runs[1].CompletedAt)
}

func TestMaintenanceRunUpdateMissing(t *testing.T) {
	repo := NewMaintenanceRunRepository(openTestDB(t))
	err := repo.Update(ctx, &models.MaintenanceRun{ID: "ghost"})
	assert.ErrorContains(t, err, "not found")
}
