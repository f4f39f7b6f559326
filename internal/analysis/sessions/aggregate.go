package sessions

import (
	"errors"
	"sort"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
	"github.com/jengzang/tracker-dashboard-go/internal/spatial"
	"github.com/jengzang/tracker-dashboard-go/internal/stats"
)

// ErrEmptyGroup is returned when aggregating a group without records
var ErrEmptyGroup = errors.New("cannot aggregate an empty session group")

// Aggregate computes the metrics of one session group.
// The group is copied and stably sorted by timestamp; the caller's slice is untouched.
// Distance is summed across every consecutive pair, however long the time gap.
// AverageSpeed is the arithmetic mean of the per-ping speeds, not distance over time.
func Aggregate(group []models.LocationRecord) (models.TrackingSession, error) {
	if len(group) == 0 {
		return models.TrackingSession{}, ErrEmptyGroup
	}

	sorted := make([]models.LocationRecord, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	points := make([]spatial.Point, len(sorted))
	speeds := make([]float64, len(sorted))
	for i, rec := range sorted {
		points[i] = spatial.Point{Lat: rec.Latitude, Lon: rec.Longitude}
		speeds[i] = rec.Speed
	}

	return models.TrackingSession{
		Locations:    sorted,
		StartTime:    sorted[0].Timestamp,
		EndTime:      sorted[len(sorted)-1].Timestamp,
		Distance:     spatial.PathLength(points),
		MaxSpeed:     stats.Max(speeds),
		AverageSpeed: stats.Mean(speeds),
	}, nil
}

// Reconstruct runs the read pipeline: segment, aggregate every group, then order
// the sessions by start time, most recent first. Sessions starting at the same
// instant are ordered by key so the output is deterministic.
func Reconstruct(records []models.LocationRecord, policy Policy) []models.KeyedSession {
	groups := Segment(records, policy)

	result := make([]models.KeyedSession, 0, len(groups))
	for key, group := range groups {
		session, err := Aggregate(group)
		if err != nil {
			continue
		}
		result = append(result, models.KeyedSession{Key: key, Session: session})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Session.StartTime != result[j].Session.StartTime {
			return result[i].Session.StartTime > result[j].Session.StartTime
		}
		return result[i].Key < result[j].Key
	})

	return result
}
