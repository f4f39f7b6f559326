package sessions

import (
	"fmt"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

func strPtr(s string) *string { return &s }

func ping(id, guid string, trackingID *string, ts int64, speed float64) models.LocationRecord {
	return models.LocationRecord{
		ID:         id,
		GUID:       guid,
		TrackingID: trackingID,
		Latitude:   -23.55 + float64(ts)*0.001,
		Longitude:  -46.63,
		Speed:      speed,
		Timestamp:  ts,
	}
}

func pings(key string, n int, startTS int64) []models.LocationRecord {
	out := make([]models.LocationRecord, n)
	for i := range out {
		out[i] = ping(fmt.Sprintf("%s-%d", key, i), "device", strPtr(key), startTS+int64(i)*1000, float64(i))
	}
	return out
}
