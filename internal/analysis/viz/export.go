package viz

import (
	"bytes"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-kml/v3"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// Export formats
const (
	FormatGeoJSON = "geojson"
	FormatKML     = "kml"
)

// ContentType returns the MIME type of an export format
func ContentType(format string) string {
	if format == FormatKML {
		return "application/vnd.google-earth.kml+xml"
	}
	return "application/geo+json"
}

// Export renders a session trajectory in the requested format
func Export(summary models.SessionSummary, format string) ([]byte, error) {
	switch format {
	case FormatGeoJSON, "":
		return ExportGeoJSON(summary)
	case FormatKML:
		return ExportKML(summary)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportGeoJSON writes the trajectory as a FeatureCollection: one LineString per
// speed-colored segment plus start and end markers
func ExportGeoJSON(summary models.SessionSummary) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for i, seg := range SegmentColors(summary.Session) {
		f := geojson.NewFeature(orb.LineString{
			{seg.From.Lng, seg.From.Lat},
			{seg.To.Lng, seg.To.Lat},
		})
		f.Properties["segment"] = i
		f.Properties["speed"] = seg.Speed
		f.Properties["stroke"] = seg.Color
		fc.Append(f)
	}

	locs := summary.Session.Locations
	if len(locs) > 0 {
		first, last := locs[0], locs[len(locs)-1]

		start := geojson.NewFeature(orb.Point{first.Longitude, first.Latitude})
		start.Properties["marker"] = "start"
		start.Properties["timestamp"] = first.Timestamp
		fc.Append(start)

		end := geojson.NewFeature(orb.Point{last.Longitude, last.Latitude})
		end.Properties["marker"] = "end"
		end.Properties["timestamp"] = last.Timestamp
		fc.Append(end)
	}

	fc.ExtraMembers = geojson.Properties{
		"session":      summary.Key,
		"distance":     summary.Session.Distance,
		"maxSpeed":     summary.Session.MaxSpeed,
		"averageSpeed": summary.Session.AverageSpeed,
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal geojson: %w", err)
	}
	return data, nil
}

// ExportKML writes the trajectory as a KML document with one styled placemark
// per segment
func ExportKML(summary models.SessionSummary) ([]byte, error) {
	elements := []kml.Element{
		kml.Name(fmt.Sprintf("Session %s", summary.Key)),
	}

	for i, seg := range SegmentColors(summary.Session) {
		rgb := ColorForSpeed(seg.Speed, summary.Session.MaxSpeed)
		elements = append(elements, kml.Placemark(
			kml.Name(fmt.Sprintf("Segment %d", i+1)),
			kml.Description(fmt.Sprintf("%.1f km/h", seg.Speed*models.MetersPerSecondToKmh)),
			kml.Style(
				kml.LineStyle(
					kml.Color(rgb.RGBA()),
					kml.Width(3),
				),
			),
			kml.LineString(
				kml.Coordinates(
					kml.Coordinate{Lon: seg.From.Lng, Lat: seg.From.Lat},
					kml.Coordinate{Lon: seg.To.Lng, Lat: seg.To.Lat},
				),
			),
		))
	}

	locs := summary.Session.Locations
	if len(locs) > 0 {
		first, last := locs[0], locs[len(locs)-1]
		elements = append(elements,
			kml.Placemark(
				kml.Name("Start"),
				kml.Point(kml.Coordinates(kml.Coordinate{Lon: first.Longitude, Lat: first.Latitude})),
			),
			kml.Placemark(
				kml.Name("End"),
				kml.Point(kml.Coordinates(kml.Coordinate{Lon: last.Longitude, Lat: last.Latitude})),
			),
		)
	}

	var buf bytes.Buffer
	if err := kml.KML(kml.Document(elements...)).WriteIndent(&buf, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to write KML: %w", err)
	}
	return buf.Bytes(), nil
}
