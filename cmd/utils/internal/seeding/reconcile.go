package seeding

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
	"github.com/appetiteclub/frontdesk/pkg/enums/orderstatus"
)

// StaleTables returns the occupied tables that hold no active order and were
// last touched before now minus grace. The grace window keeps tables claimed
// by a session that has not submitted yet.
func StaleTables(tables []TableDoc, orders []OrderDoc, now time.Time, grace time.Duration) []TableDoc {
	busy := make(map[uuid.UUID]bool)
	for _, o := range orders {
		if orderstatus.IsActive(o.Status) {
			busy[o.TableID] = true
		}
	}

	cutoff := now.Add(-grace)
	var stale []TableDoc
	for _, t := range tables {
		if t.Occupancy != occupancy.States.Occupied.Name {
			continue
		}
		if busy[t.ID] {
			continue
		}
		if t.UpdatedAt.After(cutoff) {
			continue
		}
		stale = append(stale, t)
	}

	sort.Slice(stale, func(i, j int) bool { return stale[i].Number < stale[j].Number })
	return stale
}
