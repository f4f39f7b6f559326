// Package format renders session metrics for people.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is day-first, as shown on the dashboard
const DateLayout = "02/01/2006 15:04"

// Distance formats whole meters below one kilometer and kilometers with two
// decimals above: "850 m", "1.23 km", "1,234.57 km"
func Distance(meters float64) string {
	if meters < 0 {
		meters = 0
	}
	if math.Round(meters) < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}

	km := math.Round(meters/10) / 100
	whole := math.Floor(km)
	return humanize.Comma(int64(whole)) + fmt.Sprintf("%.2f", km-whole)[1:] + " km"
}

// Speed formats a km/h value with one decimal
func Speed(kmh float64) string {
	return fmt.Sprintf("%.1f km/h", kmh)
}

// Duration formats the span between two Unix millisecond timestamps as
// "1h 2min 3s". Zero parts are omitted; a zero or negative span is "".
func Duration(startMs, endMs int64) string {
	total := (endMs - startMs) / 1000
	if total <= 0 {
		return ""
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dmin", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// Date formats a Unix millisecond timestamp in loc (UTC when nil)
func Date(ms int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc).Format(DateLayout)
}

// Count formats an integer with thousands separators
func Count(n int) string {
	return humanize.Comma(int64(n))
}
