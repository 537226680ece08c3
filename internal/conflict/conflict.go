// Package conflict detects time overlaps between events on the same day.
//
// Intervals are half-open [start, end): events that only touch at a boundary
// do not conflict.
package conflict

import (
	"slices"

	"github.com/gmondol/Clav-Cal/internal/models"
	"github.com/gmondol/Clav-Cal/internal/timeslot"
)

// HasConflict reports whether a and b are distinct events on the same date
// whose time ranges strictly overlap.
func HasConflict(a, b models.Event) bool {
	if a.Date != b.Date || a.ID == b.ID {
		return false
	}
	return overlaps(a, b)
}

func overlaps(a, b models.Event) bool {
	aStart, aEnd := timeslot.TimeToMinutes(a.StartTime), timeslot.TimeToMinutes(a.EndTime)
	bStart, bEnd := timeslot.TimeToMinutes(b.StartTime), timeslot.TimeToMinutes(b.EndTime)
	return aStart < bEnd && bStart < aEnd
}

// ConflictingEvents returns the ids of every event that takes part in at
// least one conflicting pair. The input is expected to be a single day's
// events; the pairwise scan is quadratic.
func ConflictingEvents(events []models.Event) map[string]struct{} {
	out := make(map[string]struct{})
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if HasConflict(events[i], events[j]) {
				out[events[i].ID] = struct{}{}
				out[events[j].ID] = struct{}{}
			}
		}
	}
	return out
}

// SortedIDs returns the keys of a ConflictingEvents result in lexical order.
func SortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Overlapping returns the ids of existing events whose range intersects the
// candidate on the candidate's date. An existing event with the candidate's
// id is skipped so an edit does not collide with its own previous version.
func Overlapping(candidate models.Event, existing []models.Event) []string {
	var ids []string
	for _, e := range existing {
		if e.Date != candidate.Date {
			continue
		}
		if candidate.ID != "" && e.ID == candidate.ID {
			continue
		}
		if overlaps(candidate, e) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
