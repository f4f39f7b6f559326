package sessions

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// ReasonUnknown is tallied when a rejection carries no field information
const ReasonUnknown = "unknown"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(sessionKeyValidation, models.RawLocation{})
	return v
}

// sessionKeyValidation rejects rows that cannot be grouped: no tracking id and no guid
func sessionKeyValidation(sl validator.StructLevel) {
	raw := sl.Current().Interface().(models.RawLocation)
	if raw.TrackingID != nil && *raw.TrackingID != "" {
		return
	}
	if raw.GUID != nil && *raw.GUID != "" {
		return
	}
	sl.ReportError(raw.GUID, "guid", "GUID", "sessionkey", "")
}

// ValidateRecord checks a single raw row
func ValidateRecord(raw models.RawLocation) error {
	return validate.Struct(raw)
}

// Validate converts raw rows into LocationRecords. Rows missing a coordinate or
// timestamp, with coordinates out of range, or with no usable session key are
// excluded and tallied in the diagnostics instead of poisoning the metrics.
func Validate(raws []models.RawLocation) ([]models.LocationRecord, models.Diagnostics) {
	diag := models.Diagnostics{
		Total:   len(raws),
		Reasons: make(map[string]int),
	}
	records := make([]models.LocationRecord, 0, len(raws))

	for _, raw := range raws {
		if err := ValidateRecord(raw); err != nil {
			diag.Rejected++
			tallyReasons(diag.Reasons, err)
			continue
		}
		records = append(records, raw.Record())
	}

	diag.Accepted = len(records)
	if len(diag.Reasons) == 0 {
		diag.Reasons = nil
	}
	return records, diag
}

func tallyReasons(reasons map[string]int, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		reasons[ReasonUnknown]++
		return
	}
	for _, fe := range verrs {
		reasons[fe.Field()]++
	}
}
