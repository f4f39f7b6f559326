package viz

import (
	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// SegmentColors generates one rendering hint per pair of consecutive points.
// Each segment is colored by the mean speed of its endpoints against the
// session's maximum speed.
func SegmentColors(session models.TrackingSession) []models.SegmentStyle {
	locs := session.Locations
	if len(locs) < 2 {
		return nil
	}

	segments := make([]models.SegmentStyle, 0, len(locs)-1)
	for i := 1; i < len(locs); i++ {
		prev, curr := locs[i-1], locs[i]
		speed := (prev.Speed + curr.Speed) / 2
		segments = append(segments, models.SegmentStyle{
			From:  models.LatLng{Lat: prev.Latitude, Lng: prev.Longitude},
			To:    models.LatLng{Lat: curr.Latitude, Lng: curr.Longitude},
			Speed: speed,
			Color: ColorForSpeed(speed, session.MaxSpeed).Hex(),
		})
	}

	return segments
}
