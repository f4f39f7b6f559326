package main

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jengzang/tracker-dashboard-go/internal/analysis/viz"
	"github.com/jengzang/tracker-dashboard-go/internal/format"
	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

const speedColumn = 6

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// renderSessions draws the session list. The max speed column is colored by
// the same gradient the map uses, relative to the fastest session listed.
func renderSessions(summaries []models.SessionSummary, loc *time.Location) string {
	if len(summaries) == 0 {
		return mutedStyle.Render("no sessions")
	}

	var fastest float64
	for _, s := range summaries {
		if s.Session.MaxSpeed > fastest {
			fastest = s.Session.MaxSpeed
		}
	}

	rows := make([][]string, 0, len(summaries))
	colors := make([]lipgloss.Color, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Key,
			format.Date(s.Session.StartTime, loc),
			format.Duration(s.Session.StartTime, s.Session.EndTime),
			strconv.Itoa(s.RecordCount),
			format.Distance(s.Session.Distance),
			format.Speed(s.AverageSpeedKmh),
			format.Speed(s.MaxSpeedKmh),
		})
		colors = append(colors, lipgloss.Color(viz.ColorForSpeed(s.Session.MaxSpeed, fastest).Hex()))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("SESSION", "START", "DURATION", "PINGS", "DISTANCE", "AVG", "MAX").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == speedColumn && row >= 0 && row < len(colors) {
				return cellStyle.Foreground(colors[row])
			}
			return cellStyle
		})

	return t.Render()
}
