package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

var errBoom = errors.New("boom")

type fakeStore struct {
	mu        sync.Mutex
	rows      []models.RawLocation
	listErr   error
	failIDs   map[string]bool
	deleted   []string
	listCalls int
}

func (f *fakeStore) ListLocations(ctx context.Context) ([]models.RawLocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.RawLocation, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeStore) DeleteLocation(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return fmt.Errorf("delete %s: %w", id, errBoom)
	}
	f.deleted = append(f.deleted, id)
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeCache struct {
	entries     map[string][]models.KeyedSession
	keyErr      error
	gets, sets  int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]models.KeyedSession{}}
}

func (c *fakeCache) Key(ctx context.Context, records []models.LocationRecord, minRecords int) (string, error) {
	if c.keyErr != nil {
		return "", c.keyErr
	}
	return fmt.Sprintf("%d:%d:%d", c.invalidated, len(records), minRecords), nil
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]models.KeyedSession, bool, error) {
	c.gets++
	s, ok := c.entries[key]
	return s, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, sessions []models.KeyedSession) error {
	c.sets++
	c.entries[key] = sessions
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.invalidated++
	return nil
}

type fakeRuns struct {
	created []models.MaintenanceRun
	updated []models.MaintenanceRun
}

func (r *fakeRuns) Create(ctx context.Context, run *models.MaintenanceRun) error {
	r.created = append(r.created, *run)
	return nil
}

func (r *fakeRuns) Update(ctx context.Context, run *models.MaintenanceRun) error {
	r.updated = append(r.updated, *run)
	return nil
}

func (r *fakeRuns) List(ctx context.Context, limit int) ([]*models.MaintenanceRun, error) {
	out := make([]*models.MaintenanceRun, 0, len(r.updated))
	for i := range r.updated {
		out = append(out, &r.updated[i])
	}
	return out, nil
}

func strPtr(s string) *string { return &s }
func f64(v float64) *float64  { return &v }
func i64(v int64) *int64      { return &v }
func intPtr(v int) *int       { return &v }

// raws builds n valid rows for a session, one second apart, speed i m/s
func raws(key string, n int, startTS int64) []models.RawLocation {
	out := make([]models.RawLocation, n)
	for i := range out {
		out[i] = models.RawLocation{
			ID:         fmt.Sprintf("%s-%d", key, i),
			GUID:       strPtr("device"),
			TrackingID: strPtr(key),
			Latitude:   f64(-23.55 + float64(i)*0.001),
			Longitude:  f64(-46.63),
			Speed:      f64(float64(i)),
			Timestamp:  i64(startTS + int64(i)*1000),
		}
	}
	return out
}

func corpus(parts ...[]models.RawLocation) []models.RawLocation {
	var out []models.RawLocation
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
