package models

// LatLng is a coordinate in decimal degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a rectangle given by its northeast and southwest corners
type Bounds struct {
	NE LatLng `json:"ne"`
	SW LatLng `json:"sw"`
}

// View is the initial map framing for a trajectory
type View struct {
	Center LatLng  `json:"center"`
	Bounds *Bounds `json:"bounds"` // nil when there is nothing to frame
}

// SegmentStyle is the rendering hint for one pair of consecutive points
type SegmentStyle struct {
	From  LatLng  `json:"from"`
	To    LatLng  `json:"to"`
	Speed float64 `json:"speed"` // m/s, mean of both endpoints
	Color string  `json:"color"` // #rrggbb
}
