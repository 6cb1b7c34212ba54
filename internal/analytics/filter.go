package analytics

import (
	"strings"
	"time"

	"practipulse/internal/records"
)

// Filter selects the records that fall inside the period's date range and
// belong to one of its locations. Bounds are inclusive on both ends. Records
// whose timestamp could not be resolved (zero time) never match. Original
// relative order is preserved and the input is never mutated.
func Filter[T Record](items []T, period PeriodDefinition) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !inRange(item.OccurredAt(), period.Start, period.End) {
			continue
		}
		if !matchesAnyLocation(item.LocationRef(), period.LocationIDs) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func inRange(t, start, end time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

// matchesAnyLocation applies the location test: an empty selection matches
// everything, an unassigned record matches nothing, and each requested id is
// tried against the record via MatchesLocation.
func matchesAnyLocation(ref records.LocationRef, locationIDs []string) bool {
	if len(locationIDs) == 0 {
		return true
	}
	if ref.IsZero() {
		return false
	}
	for _, id := range locationIDs {
		if MatchesLocation(ref, id) {
			return true
		}
	}
	return false
}

// MatchesLocation reports whether a record's location reference matches one
// requested identifier. Three rules, in order: exact id equality, name
// equality (case-insensitive), and case-insensitive substring containment in
// either direction. Containment is what lets a record tagged "Gilbert" match
// a request for "gilbert-1" without matching "phoenix-ahwatukee-1".
func MatchesLocation(ref records.LocationRef, requested string) bool {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return false
	}
	if ref.ID != "" && strings.EqualFold(ref.ID, requested) {
		return true
	}
	name := strings.ToLower(strings.TrimSpace(ref.Name))
	if name == "" {
		return false
	}
	req := strings.ToLower(requested)
	if name == req {
		return true
	}
	return strings.Contains(name, req) || strings.Contains(req, name)
}
