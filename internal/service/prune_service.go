package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jengzang/tracker-dashboard-go/internal/analysis/sessions"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// PruneService deletes the pings of incomplete sessions
type PruneService struct {
	store      LocationStore
	cache      SessionCache // optional
	runs       RunRecorder  // optional
	minRecords int

	mu  sync.Mutex
	now func() time.Time
}

// NewPruneService creates a new prune service. cache and runs may be nil.
func NewPruneService(store LocationStore, cache SessionCache, runs RunRecorder, minRecords int) *PruneService {
	if minRecords < 1 {
		minRecords = sessions.DefaultMinRecords
	}
	return &PruneService{
		store:      store,
		cache:      cache,
		runs:       runs,
		minRecords: minRecords,
		now:        time.Now,
	}
}

// MinRecords returns the configured threshold
func (s *PruneService) MinRecords() int {
	return s.minRecords
}

// PruneIncomplete deletes every ping of every session with fewer than
// minRecords pings (the configured threshold when minRecords < 1).
// Deletes are issued one at a time; a failed delete is logged and counted and
// the loop moves on, so a run may end partially applied. The cache is
// invalidated whatever the outcome.
func (s *PruneService) PruneIncomplete(ctx context.Context, minRecords int) (*models.PruneReport, error) {
	if !s.mu.TryLock() {
		return nil, ErrPruneInProgress
	}
	defer s.mu.Unlock()

	if minRecords < 1 {
		minRecords = s.minRecords
	}

	run := &models.MaintenanceRun{
		ID:         uuid.NewString(),
		Operation:  models.OperationPruneIncomplete,
		Status:     models.RunStatusRunning,
		MinRecords: minRecords,
		StartedAt:  s.now(),
	}
	s.recordStart(ctx, run)
	defer s.invalidate(ctx)

	log := logrus.WithFields(logrus.Fields{"run_id": run.ID, "min_records": minRecords})
	log.Info("[PruneService] Starting prune of incomplete sessions")

	raws, err := s.store.ListLocations(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrFetchFailed, err)
		s.recordFinish(ctx, run, err)
		return nil, err
	}

	records, diag := sessions.Validate(raws)
	selection := sessions.IncompleteRecordIDs(records, minRecords)

	report := &models.PruneReport{
		RunID:           run.ID,
		MinRecords:      minRecords,
		Candidates:      len(selection.RecordIDs),
		SessionsRemoved: len(selection.SessionKeys),
	}
	log.WithFields(logrus.Fields{
		"candidates": report.Candidates,
		"sessions":   report.SessionsRemoved,
		"rejected":   diag.Rejected,
	}).Info("[PruneService] Selected records for deletion")

	var loopErr error
	for _, id := range selection.RecordIDs {
		if err := ctx.Err(); err != nil {
			loopErr = fmt.Errorf("prune interrupted: %w", err)
			break
		}
		if err := s.store.DeleteLocation(ctx, id); err != nil {
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, id)
			log.WithError(err).WithField("record_id", id).Warn("[PruneService] Failed to delete record, continuing")
			continue
		}
		report.Deleted++
	}

	run.Candidates = report.Candidates
	run.Deleted = report.Deleted
	run.Failed = report.Failed
	run.SessionsRemoved = report.SessionsRemoved
	s.recordFinish(ctx, run, loopErr)

	log.WithFields(logrus.Fields{
		"deleted": report.Deleted,
		"failed":  report.Failed,
	}).Info("[PruneService] Prune finished")

	if loopErr != nil {
		return report, loopErr
	}
	return report, nil
}

// ListRuns returns the most recent maintenance runs
func (s *PruneService) ListRuns(ctx context.Context, limit int) ([]*models.MaintenanceRun, error) {
	if s.runs == nil {
		return []*models.MaintenanceRun{}, nil
	}
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance runs: %w", err)
	}
	return runs, nil
}

func (s *PruneService) recordStart(ctx context.Context, run *models.MaintenanceRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Create(ctx, run); err != nil {
		logrus.WithError(err).WithField("run_id", run.ID).Warn("[PruneService] Failed to record run start")
	}
}

func (s *PruneService) recordFinish(ctx context.Context, run *models.MaintenanceRun, runErr error) {
	completed := s.now()
	run.CompletedAt = &completed
	run.Status = models.RunStatusCompleted
	if runErr != nil {
		run.Status = models.RunStatusFailed
		run.ErrorMessage = runErr.Error()
	}

	if s.runs == nil {
		return
	}
	// the run row is written even when the request context is already done
	if err := s.runs.Update(context.WithoutCancel(ctx), run); err != nil {
		logrus.WithError(err).WithField("run_id", run.ID).Warn("[PruneService] Failed to record run result")
	}
}

func (s *PruneService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		logrus.WithError(err).Warn("[PruneService] Failed to invalidate session cache")
	}
}
