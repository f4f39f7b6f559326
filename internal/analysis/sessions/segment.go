package sessions

import (
	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

// DefaultMinRecords is the default minimum number of pings for a complete session
const DefaultMinRecords = 10

// Policy is the single session-size threshold shared by the read path and the
// pruner. Groups with fewer than MinRecords pings are incomplete; 0 and 1 keep
// every group (permissive) and 2 drops singletons (strict).
type Policy struct {
	MinRecords int
}

// Permissive keeps every group
var Permissive = Policy{}

// Keep reports whether a group of the given size passes the policy
func (p Policy) Keep(size int) bool {
	return size >= p.MinRecords
}

// Segment groups records by session key. Within a group the input order is
// preserved; sorting happens in Aggregate.
func Segment(records []models.LocationRecord, policy Policy) map[string][]models.LocationRecord {
	groups := make(map[string][]models.LocationRecord)
	for _, rec := range records {
		key := rec.SessionKey()
		groups[key] = append(groups[key], rec)
	}

	for key, group := range groups {
		if !policy.Keep(len(group)) {
			delete(groups, key)
		}
	}

	return groups
}
