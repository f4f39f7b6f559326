package sessions

import (
	"sort"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// PruneSelection lists the records of incomplete sessions
type PruneSelection struct {
	RecordIDs   []string // ids to delete, grouped by session key then input order
	SessionKeys []string // sorted keys of the incomplete sessions
}

// IncompleteRecordIDs selects every record belonging to a session with fewer than
// minRecords pings. The whole corpus is segmented without filtering first, so the
// decision is made per session and never per record.
func IncompleteRecordIDs(records []models.LocationRecord, minRecords int) PruneSelection {
	groups := Segment(records, Permissive)
	policy := Policy{MinRecords: minRecords}

	var selection PruneSelection
	for key, group := range groups {
		if !policy.Keep(len(group)) {
			selection.SessionKeys = append(selection.SessionKeys, key)
		}
	}
	sort.Strings(selection.SessionKeys)

	for _, key := range selection.SessionKeys {
		for _, rec := range groups[key] {
			selection.RecordIDs = append(selection.RecordIDs, rec.ID)
		}
	}

	return selection
}
