package models

// SessionQuery represents query parameters for listing sessions
type SessionQuery struct {
	MinRecords *int `form:"minRecords" binding:"omitempty,min=0"` // overrides the configured policy
	Render     bool `form:"render"`                               // include view and segment colors
	Padded     bool `form:"padded"`                               // pad the view bounds by 10%
}

// PruneQuery represents query parameters for the prune operation
type PruneQuery struct {
	MinRecords *int `form:"minRecords" binding:"omitempty,min=1"`
}

// ExportQuery represents query parameters for trajectory export
type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=geojson kml"`
}
