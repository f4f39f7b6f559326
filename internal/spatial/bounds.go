package spatial

import (
	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// FallbackCenter is the map center used when there is nothing to frame (São Paulo)
var FallbackCenter = models.LatLng{Lat: -23.550520, Lng: -46.633308}

// PaddingRatio is the share of each axis span added on both sides by a padded view
const PaddingRatio = 0.1

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}

// ComputeView frames a trajectory: the center of its bounding rectangle plus the
// rectangle itself. With padded set, each axis grows by PaddingRatio of its span
// on both sides so endpoints stay off the viewport edge.
func ComputeView(locations []models.LocationRecord, padded bool) models.View {
	if len(locations) == 0 {
		return models.View{Center: FallbackCenter}
	}

	points := make([]Point, len(locations))
	for i, loc := range locations {
		points[i] = Point{Lat: loc.Latitude, Lon: loc.Longitude}
	}
	minLat, minLon, maxLat, maxLon := BoundingBox(points)

	if padded {
		latPad := (maxLat - minLat) * PaddingRatio
		lonPad := (maxLon - minLon) * PaddingRatio
		minLat, maxLat = minLat-latPad, maxLat+latPad
		minLon, maxLon = minLon-lonPad, maxLon+lonPad
	}

	bounds := &models.Bounds{
		NE: models.LatLng{Lat: maxLat, Lng: maxLon},
		SW: models.LatLng{Lat: minLat, Lng: minLon},
	}

	return models.View{
		Center: models.LatLng{
			Lat: (bounds.NE.Lat + bounds.SW.Lat) / 2,
			Lng: (bounds.NE.Lng + bounds.SW.Lng) / 2,
		},
		Bounds: bounds,
	}
}
