package models

// MetersPerSecondToKmh converts m/s to km/h
const MetersPerSecondToKmh = 3.6

// TrackingSession is a trip reconstructed from the pings sharing a session key.
// It is rebuilt on every read and never persisted.
type TrackingSession struct {
	Locations    []LocationRecord `json:"locations"` // ascending timestamp, non-empty
	StartTime    int64            `json:"startTime"` // Unix milliseconds
	EndTime      int64            `json:"endTime"`   // Unix milliseconds
	Distance     float64          `json:"distance"`  // meters
	MaxSpeed     float64          `json:"maxSpeed"`  // m/s
	AverageSpeed float64          `json:"averageSpeed"`
}

// DurationMs returns EndTime - StartTime
func (s TrackingSession) DurationMs() int64 {
	return s.EndTime - s.StartTime
}

// KeyedSession pairs a session with the key it was grouped under
type KeyedSession struct {
	Key     string          `json:"key"`
	Session TrackingSession `json:"session"`
}

// SessionSummary is the presentation envelope of a session.
// Speeds are converted to km/h here and nowhere else.
type SessionSummary struct {
	Key             string          `json:"key"`
	Session         TrackingSession `json:"session"`
	RecordCount     int             `json:"recordCount"`
	DurationMs      int64           `json:"durationMs"`
	MaxSpeedKmh     float64         `json:"maxSpeedKmh"`
	AverageSpeedKmh float64         `json:"averageSpeedKmh"`
	View            *View           `json:"view,omitempty"`
	Segments        []SegmentStyle  `json:"segments,omitempty"`
}

// NewSessionSummary builds the envelope for a keyed session
func NewSessionSummary(ks KeyedSession) SessionSummary {
	return SessionSummary{
		Key:             ks.Key,
		Session:         ks.Session,
		RecordCount:     len(ks.Session.Locations),
		DurationMs:      ks.Session.DurationMs(),
		MaxSpeedKmh:     ks.Session.MaxSpeed * MetersPerSecondToKmh,
		AverageSpeedKmh: ks.Session.AverageSpeed * MetersPerSecondToKmh,
	}
}

// SessionList is the response of the sessions listing
type SessionList struct {
	Sessions    []SessionSummary `json:"sessions"`
	Diagnostics Diagnostics      `json:"diagnostics"`
}
