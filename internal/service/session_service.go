package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jengzang/tracker-dashboard-go/internal/analysis/sessions"
	"github.com/jengzang/tracker-dashboard-go/internal/analysis/viz"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
	"github.com/jengzang/tracker-dashboard-go/internal/spatial"
)

// SessionOptions controls one read of the session list
type SessionOptions struct {
	MinRecords *int // overrides the configured policy when set
	Render     bool // attach view and segment colors
	Padded     bool // pad the view bounds
}

// SessionService reconstructs tracking sessions from the stored pings
type SessionService struct {
	store          LocationStore
	cache          SessionCache // optional
	minRecords     int
	hideIncomplete bool
}

// NewSessionService creates a new session service. cache may be nil.
func NewSessionService(store LocationStore, cache SessionCache, minRecords int, hideIncomplete bool) *SessionService {
	return &SessionService{
		store:          store,
		cache:          cache,
		minRecords:     minRecords,
		hideIncomplete: hideIncomplete,
	}
}

// Policy resolves the size policy for a read
func (s *SessionService) Policy(opts SessionOptions) sessions.Policy {
	if opts.MinRecords != nil {
		return sessions.Policy{MinRecords: *opts.MinRecords}
	}
	if s.hideIncomplete {
		return sessions.Policy{MinRecords: s.minRecords}
	}
	return sessions.Permissive
}

// ListSessions fetches every ping and returns the reconstructed sessions, most
// recent first. A fetch failure returns ErrFetchFailed and no sessions.
func (s *SessionService) ListSessions(ctx context.Context, opts SessionOptions) (*models.SessionList, error) {
	keyed, diag, err := s.load(ctx, s.Policy(opts))
	if err != nil {
		return nil, err
	}

	list := &models.SessionList{
		Sessions:    make([]models.SessionSummary, 0, len(keyed)),
		Diagnostics: diag,
	}
	for _, ks := range keyed {
		list.Sessions = append(list.Sessions, summarize(ks, opts))
	}

	return list, nil
}

// GetSession returns a single session by key with rendering hints attached.
// Without an explicit threshold every session is reachable, complete or not.
func (s *SessionService) GetSession(ctx context.Context, key string, opts SessionOptions) (*models.SessionSummary, error) {
	policy := sessions.Permissive
	if opts.MinRecords != nil {
		policy = sessions.Policy{MinRecords: *opts.MinRecords}
	}

	keyed, _, err := s.load(ctx, policy)
	if err != nil {
		return nil, err
	}

	for _, ks := range keyed {
		if ks.Key == key {
			opts.Render = true
			summary := summarize(ks, opts)
			return &summary, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, key)
}

func (s *SessionService) load(ctx context.Context, policy sessions.Policy) ([]models.KeyedSession, models.Diagnostics, error) {
	raws, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, models.Diagnostics{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	records, diag := sessions.Validate(raws)
	if diag.Rejected > 0 {
		logrus.WithFields(logrus.Fields{
			"rejected": diag.Rejected,
			"reasons":  diag.Reasons,
		}).Warn("[SessionService] Skipped malformed location records")
	}

	return s.reconstruct(ctx, records, policy), diag, nil
}

// reconstruct runs the pipeline, going through the cache when one is configured.
// Cache failures are logged and the pipeline result is served.
func (s *SessionService) reconstruct(ctx context.Context, records []models.LocationRecord, policy sessions.Policy) []models.KeyedSession {
	if s.cache == nil {
		return sessions.Reconstruct(records, policy)
	}

	key, err := s.cache.Key(ctx, records, policy.MinRecords)
	if err != nil {
		logrus.WithError(err).Warn("[SessionService] Session cache unavailable")
		return sessions.Reconstruct(records, policy)
	}

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).Warn("[SessionService] Failed to read session cache")
	}
	if ok {
		return cached
	}

	keyed := sessions.Reconstruct(records, policy)
	if err := s.cache.Set(ctx, key, keyed); err != nil {
		logrus.WithError(err).Warn("[SessionService] Failed to write session cache")
	}
	return keyed
}

func summarize(ks models.KeyedSession, opts SessionOptions) models.SessionSummary {
	summary := models.NewSessionSummary(ks)
	if opts.Render {
		view := spatial.ComputeView(ks.Session.Locations, opts.Padded)
		summary.View = &view
		summary.Segments = viz.SegmentColors(ks.Session)
	}
	return summary
}
