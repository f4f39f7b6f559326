package models

// LocationRecord is one validated GPS ping.
// Speed is stored in meters per second; Timestamp is Unix milliseconds (UTC).
type LocationRecord struct {
	ID         string  `json:"id"`
	GUID       string  `json:"guid"`
	TrackingID *string `json:"trackingId"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Accuracy   float64 `json:"accuracy"`
	Speed      float64 `json:"speed"`     // m/s
	Timestamp  int64   `json:"timestamp"` // Unix milliseconds
}

// SessionKey returns the grouping key of the record: the tracking id when
// present and non-empty, otherwise the guid.
func (r LocationRecord) SessionKey() string {
	if r.TrackingID != nil && *r.TrackingID != "" {
		return *r.TrackingID
	}
	return r.GUID
}

// RawLocation is a location row as read from storage, before validation.
// Every field is nullable because the document store never enforced a schema.
type RawLocation struct {
	ID         string   `json:"id" validate:"required"`
	GUID       *string  `json:"guid,omitempty"`
	TrackingID *string  `json:"trackingId,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"required,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"required,gte=-180,lte=180"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	Timestamp  *int64   `json:"timestamp,omitempty" validate:"required,gt=0"`
}

// Record converts a validated raw row into a LocationRecord.
// Missing optional values become zero, and so do negative speed and accuracy,
// which devices report when the value is unknown.
func (r RawLocation) Record() LocationRecord {
	rec := LocationRecord{
		ID:         r.ID,
		TrackingID: r.TrackingID,
	}
	if r.GUID != nil {
		rec.GUID = *r.GUID
	}
	if r.Latitude != nil {
		rec.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		rec.Longitude = *r.Longitude
	}
	if r.Accuracy != nil && *r.Accuracy > 0 {
		rec.Accuracy = *r.Accuracy
	}
	if r.Speed != nil && *r.Speed > 0 {
		rec.Speed = *r.Speed
	}
	if r.Timestamp != nil {
		rec.Timestamp = *r.Timestamp
	}
	return rec
}

// RawFromRecord is the inverse of Record, used when writing records back.
func RawFromRecord(rec LocationRecord) RawLocation {
	guid := rec.GUID
	lat, lon := rec.Latitude, rec.Longitude
	acc, speed := rec.Accuracy, rec.Speed
	ts := rec.Timestamp
	return RawLocation{
		ID:         rec.ID,
		GUID:       &guid,
		TrackingID: rec.TrackingID,
		Latitude:   &lat,
		Longitude:  &lon,
		Accuracy:   &acc,
		Speed:      &speed,
		Timestamp:  &ts,
	}
}

// Diagnostics tallies the outcome of validating a fetched record set
type Diagnostics struct {
	Total    int            `json:"total"`
	Accepted int            `json:"accepted"`
	Rejected int            `json:"rejected"`
	Reasons  map[string]int `json:"reasons,omitempty"` // field -> rejection count
}
