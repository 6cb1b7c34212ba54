package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"practipulse/internal/records"
)

// Bucketize groups appointments into weekly or monthly buckets for the trend
// charts. Buckets with no records are not emitted (sparse series); the output
// is sorted ascending by bucket key, which zero-padding makes chronological
// under a lexical sort.
func Bucketize(appointments []records.Appointment, granularity Granularity) []TrendPoint {
	buckets := map[string]*TrendPoint{}
	for _, appt := range appointments {
		t := appt.OccurredAt()
		if t.IsZero() {
			continue
		}
		key := monthKey(t)
		if granularity == GranularityWeek {
			key = weekKey(t)
		}
		point, ok := buckets[key]
		if !ok {
			point = &TrendPoint{BucketKey: key, Locations: map[string]int{}}
			buckets[key] = point
		}
		point.Locations[seriesKey(appt.Location)]++
		point.Total++
	}

	out := make([]TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BucketKey < out[j].BucketKey })
	return out
}

// weekKey is "{year}-W{week}" with the week number computed from day-of-year
// and the weekday of Jan 1, so week 1 always starts on Jan 1 regardless of
// weekday. This is deliberately not time.ISOWeek: ISO weeks can assign the
// first days of January to the previous year's week 52/53, which would split
// a calendar-year period across two year labels on the chart.
func weekKey(t time.Time) string {
	jan1 := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	offset := int(jan1.Weekday())
	week := (t.YearDay() + offset + 6) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// monthKey is "{year}-{month}" zero-padded.
func monthKey(t time.Time) string {
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
}

// seriesKey names the per-location series a record counts toward.
func seriesKey(ref records.LocationRef) string {
	if name := strings.ToLower(strings.TrimSpace(ref.Name)); name != "" {
		return name
	}
	if id := strings.ToLower(strings.TrimSpace(ref.ID)); id != "" {
		return id
	}
	return "unassigned"
}
