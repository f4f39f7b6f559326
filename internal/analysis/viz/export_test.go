package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

func sampleSession() models.TrackingSession {
	return models.TrackingSession{
		Locations: []models.LocationRecord{
			{ID: "a", Latitude: 0, Longitude: 0, Speed: 0, Timestamp: 1000},
			{ID: "b", Latitude: 0, Longitude: 0.01, Speed: 10, Timestamp: 2000},
			{ID: "c", Latitude: 0.01, Longitude: 0.01, Speed: 20, Timestamp: 3000},
		},
		StartTime:    1000,
		EndTime:      3000,
		MaxSpeed:     20,
		AverageSpeed: 10,
	}
}

func TestSegmentColors(t *testing.T) {
	segments := SegmentColors(sampleSession())
	require.Len(t, segments, 2)

	assert.Equal(t, 5.0, segments[0].Speed)
	assert.Equal(t, 15.0, segments[1].Speed)
	assert.Equal(t, ColorForSpeed(5, 20).Hex(), segments[0].Color)
	assert.Equal(t, models.LatLng{Lat: 0, Lng: 0.01}, segments[0].To)
	assert.Equal(t, segments[0].To, segments[1].From)
}

func TestSegmentColorsSinglePoint(t *testing.T) {
	session := sampleSession()
	session.Locations = session.Locations[:1]
	assert.Nil(t, SegmentColors(session))
}

func TestExportGeoJSON(t *testing.T) {
	summary := models.SessionSummary{Key: "trip-1", Session: sampleSession()}

	data, err := Export(summary, FormatGeoJSON)
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Session  string `json:"session"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	assert.Equal(t, "trip-1", doc.Session)
	require.Len(t, doc.Features, 4)
	assert.Equal(t, "LineString", doc.Features[0].Geometry.Type)
	assert.Equal(t, "Point", doc.Features[2].Geometry.Type)
	assert.Equal(t, "start", doc.Features[2].Properties["marker"])
	assert.Equal(t, "end", doc.Features[3].Properties["marker"])
}

func TestExportKML(t *testing.T) {
	summary := models.SessionSummary{Key: "trip-1", Session: sampleSession()}

	data, err := Export(summary, FormatKML)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "<kml")
	assert.Contains(t, out, "Session trip-1")
	assert.Equal(t, 4, strings.Count(out, "<Placemark>"))
	assert.Contains(t, out, "<LineString>")
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(models.SessionSummary{}, "gpx")
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/geo+json", ContentType(FormatGeoJSON))
	assert.Equal(t, "application/vnd.google-earth.kml+xml", ContentType(FormatKML))
}
