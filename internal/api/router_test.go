package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
	"github.com/jengzang/tracker-dashboard-go/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryStore struct {
	mu      sync.Mutex
	rows    []models.RawLocation
	listErr error
}

func (m *memoryStore) ListLocations(ctx context.Context) ([]models.RawLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.RawLocation(nil), m.rows...), nil
}

func (m *memoryStore) DeleteLocation(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func rows(key string, n int, startTS int64) []models.RawLocation {
	out := make([]models.RawLocation, n)
	for i := range out {
		lat, lon, speed, ts := -23.55+float64(i)*0.001, -46.63, float64(i), startTS+int64(i)*1000
		k := key
		out[i] = models.RawLocation{
			ID:         fmt.Sprintf("%s-%d", key, i),
			TrackingID: &k,
			Latitude:   &lat,
			Longitude:  &lon,
			Speed:      &speed,
			Timestamp:  &ts,
		}
	}
	return out
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, store *memoryStore) *gin.Engine {
	t.Helper()
	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })

	return SetupRouter(Services{
		Sessions: service.NewSessionService(store, nil, 10, true),
		Prune:    service.NewPruneService(store, nil, nil, 10),
	}, Options{PruneRateLimit: 2, Stop: stop})
}

func do(r http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &memoryStore{})
	w, _ := do(r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, &memoryStore{})
	w, _ := do(r, http.MethodOptions, "/api/v1/sessions")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListSessionsEndpoint(t *testing.T) {
	store := &memoryStore{rows: append(rows("long", 10, 1000), rows("short", 2, 90_000)...)}
	r := newTestRouter(t, store)

	w, env := do(r, http.MethodGet, "/api/v1/sessions")
	require.Equal(t, http.StatusOK, w.Code)
	var list models.SessionList
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, "long", list.Sessions[0].Key)
	assert.Nil(t, list.Sessions[0].View)

	w, env = do(r, http.MethodGet, "/api/v1/sessions?minRecords=1&render=true")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Sessions, 2)
	assert.Equal(t, "short", list.Sessions[0].Key)
	assert.NotNil(t, list.Sessions[0].View)
	assert.Len(t, list.Sessions[0].Segments, 1)
}

func TestListSessionsBadQuery(t *testing.T) {
	r := newTestRouter(t, &memoryStore{})
	w, _ := do(r, http.MethodGet, "/api/v1/sessions?minRecords=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodGet, "/api/v1/sessions?minRecords=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSessionsStoreDown(t *testing.T) {
	r := newTestRouter(t, &memoryStore{listErr: errors.New("connection refused")})
	w, env := do(r, http.MethodGet, "/api/v1/sessions")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, env.Data)
}

func TestGetSessionEndpoint(t *testing.T) {
	r := newTestRouter(t, &memoryStore{rows: rows("trip", 3, 1000)})

	w, env := do(r, http.MethodGet, "/api/v1/sessions/trip")
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.SessionSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 3, summary.RecordCount)
	assert.NotNil(t, summary.View)

	w, _ = do(r, http.MethodGet, "/api/v1/sessions/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	r := newTestRouter(t, &memoryStore{rows: rows("trip", 3, 1000)})

	w, _ := do(r, http.MethodGet, "/api/v1/sessions/trip/export")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "session-trip.geojson")
	assert.Contains(t, w.Body.String(), "FeatureCollection")

	w, _ = do(r, http.MethodGet, "/api/v1/sessions/trip/export?format=kml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<kml")

	w, _ = do(r, http.MethodGet, "/api/v1/sessions/trip/export?format=gpx")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportQuotedKeyFilename(t *testing.T) {
	r := newTestRouter(t, &memoryStore{rows: rows(`say "hi"`, 2, 1000)})

	w, _ := do(r, http.MethodGet, "/api/v1/sessions/say%20%22hi%22/export")
	require.Equal(t, http.StatusOK, w.Code)

	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `session-say "hi".geojson`, params["filename"])
}

func TestPruneEndpoint(t *testing.T) {
	store := &memoryStore{rows: append(rows("long", 10, 1000), rows("short", 2, 90_000)...)}
	r := newTestRouter(t, store)

	w, env := do(r, http.MethodPost, "/api/v1/maintenance/prune")
	require.Equal(t, http.StatusOK, w.Code)
	var report models.PruneReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, 1, report.SessionsRemoved)
	assert.Len(t, store.rows, 10)

	w, _ = do(r, http.MethodPost, "/api/v1/maintenance/prune?minRecords=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodPost, "/api/v1/maintenance/prune")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRunsEndpoint(t *testing.T) {
	r := newTestRouter(t, &memoryStore{})

	w, env := do(r, http.MethodGet, "/api/v1/maintenance/runs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	w, _ = do(r, http.MethodGet, "/api/v1/maintenance/runs?limit=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
