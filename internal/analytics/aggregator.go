package analytics

import (
	"sort"

	"practipulse/internal/records"
)

// AggregateLocation produces one LocationMetrics for a single named location
// over the period. A location with no matching records (including one that
// simply does not exist) yields a well-defined all-zero snapshot rather than
// being omitted, so downstream consumers with a fixed location list keep
// their shape.
func AggregateLocation(dataset records.Dataset, locationID string, period PeriodDefinition, assumptions Assumptions) LocationMetrics {
	scoped := period
	scoped.LocationIDs = []string{locationID}
	subset := filterDataset(dataset, scoped)
	return computeLocationMetrics(locationID, subset, summaryFor(dataset, locationID, period), assumptions)
}

// AggregatePeriod rolls the whole period up into one PeriodMetrics. Counts
// and financials are sums over the per-location snapshots; the rate fields
// are recomputed over the union of filtered records rather than averaged
// across locations, so low-volume locations do not bias them.
func AggregatePeriod(dataset records.Dataset, period PeriodDefinition, assumptions Assumptions) PeriodMetrics {
	locs := LocationBreakdown(dataset, period, assumptions)
	union := filterDataset(dataset, period)
	return combine(period, locs, union, assumptions)
}

// LocationBreakdown computes the per-location snapshots backing a period.
// With an explicit location selection each requested id gets a snapshot, in
// request order. With an empty selection ("all locations") the groups are
// derived from the records themselves, including an "unassigned" group for
// records with no location reference.
func LocationBreakdown(dataset records.Dataset, period PeriodDefinition, assumptions Assumptions) []LocationMetrics {
	if len(period.LocationIDs) > 0 {
		out := make([]LocationMetrics, 0, len(period.LocationIDs))
		for _, id := range period.LocationIDs {
			out = append(out, AggregateLocation(dataset, id, period, assumptions))
		}
		return out
	}

	union := filterDataset(dataset, period)
	groups := map[string]records.Dataset{}
	splitByGroup(union, groups)

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]LocationMetrics, 0, len(keys))
	for _, key := range keys {
		out = append(out, computeLocationMetrics(key, groups[key], summaryFor(dataset, key, period), assumptions))
	}
	return out
}

// combine sums counts and financials across snapshots and recomputes the
// union-level rates and trends. Net production and the per-unit averages are
// derived last from the summed values.
func combine(period PeriodDefinition, locs []LocationMetrics, union records.Dataset, assumptions Assumptions) PeriodMetrics {
	m := PeriodMetrics{Period: period}
	for _, loc := range locs {
		m.Patients += loc.Patients
		m.Appointments += loc.Appointments
		m.Leads += loc.Leads
		m.Bookings += loc.Bookings
		m.Production += loc.Production
		m.Revenue += loc.Revenue
		m.AcquisitionCosts += loc.AcquisitionCosts
	}
	m.NetProduction = NetProduction(m.Revenue, m.AcquisitionCosts)

	m.NoShowRate = NoShowRate(union.Appointments)
	m.ReferralSources = ReferralSourceCounts(union.Leads, union.Patients)
	m.ConversionRates = ConversionRatesBySource(union.Leads)

	// Per-appointment and per-lead means: summed total over summed
	// denominator, never a mean of per-location means.
	if m.Appointments > 0 {
		m.AvgNetProduction = m.NetProduction / float64(m.Appointments)
	}
	if m.Leads > 0 {
		m.AvgAcquisition = m.AcquisitionCosts / float64(m.Leads)
	}

	m.Trends = Trends{
		Weekly:  Bucketize(union.Appointments, GranularityWeek),
		Monthly: Bucketize(union.Appointments, GranularityMonth),
	}
	return m
}

// computeLocationMetrics runs the calculators over one already-filtered
// record subset. When an upstream count summary covers the period, its counts
// win over raw derivation; financials always come from raw records because
// summaries carry no amounts.
func computeLocationMetrics(location string, subset records.Dataset, summary *records.CountSummary, assumptions Assumptions) LocationMetrics {
	m := LocationMetrics{Location: location}

	if summary != nil {
		m.Patients = summary.Patients
		m.Appointments = summary.Appointments
		m.Leads = summary.Leads
		m.Bookings = summary.Bookings
	} else {
		m.Patients = len(subset.Patients)
		m.Appointments = len(subset.Appointments)
		m.Leads = len(subset.Leads)
		m.Bookings = len(subset.Bookings)
	}

	m.Production = Production(subset.Appointments, assumptions)
	m.Revenue = Revenue(subset.Revenue, subset.Appointments, assumptions)
	m.AcquisitionCosts = AcquisitionCost(m.Leads, subset.CostEntries, assumptions)
	m.NetProduction = NetProduction(m.Revenue, m.AcquisitionCosts)
	m.NoShowRate = NoShowRate(subset.Appointments)
	m.ConversionRate = ConversionRate(subset.Leads)
	return m
}

// filterDataset applies the record filter to every kind, plus the same
// date/location scoping to manual cost entries.
func filterDataset(dataset records.Dataset, period PeriodDefinition) records.Dataset {
	return records.Dataset{
		Patients:     Filter(dataset.Patients, period),
		Leads:        Filter(dataset.Leads, period),
		Appointments: Filter(dataset.Appointments, period),
		Bookings:     Filter(dataset.Bookings, period),
		Revenue:      Filter(dataset.Revenue, period),
		CostEntries:  filterCostEntries(dataset.CostEntries, period),
	}
}

func filterCostEntries(entries []records.CostEntry, period PeriodDefinition) []records.CostEntry {
	out := make([]records.CostEntry, 0, len(entries))
	for _, entry := range entries {
		if !inRange(entry.Timestamp, period.Start, period.End) {
			continue
		}
		if !matchesAnyLocation(costEntryRef(entry), period.LocationIDs) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// costEntryRef treats the entry's location id as both id and name so the
// substring rule applies: a "gilbert-1" cost entry belongs to the "gilbert"
// group.
func costEntryRef(entry records.CostEntry) records.LocationRef {
	return records.LocationRef{ID: entry.LocationID, Name: entry.LocationID}
}

// summaryFor finds an upstream count summary for the location that covers
// the whole requested window; partial coverage falls back to raw derivation.
func summaryFor(dataset records.Dataset, locationID string, period PeriodDefinition) *records.CountSummary {
	for i := range dataset.Summaries {
		s := &dataset.Summaries[i]
		if !MatchesLocation(records.LocationRef{ID: s.LocationID, Name: s.LocationID}, locationID) {
			continue
		}
		if s.PeriodStart.After(period.Start) || s.PeriodEnd.Before(period.End) {
			continue
		}
		return s
	}
	return nil
}

// splitByGroup partitions every record kind by its location series key.
func splitByGroup(union records.Dataset, groups map[string]records.Dataset) {
	get := func(key string) records.Dataset { return groups[key] }
	put := func(key string, ds records.Dataset) { groups[key] = ds }

	for _, p := range union.Patients {
		key := seriesKey(p.Location)
		ds := get(key)
		ds.Patients = append(ds.Patients, p)
		put(key, ds)
	}
	for _, l := range union.Leads {
		key := seriesKey(l.Location)
		ds := get(key)
		ds.Leads = append(ds.Leads, l)
		put(key, ds)
	}
	for _, a := range union.Appointments {
		key := seriesKey(a.Location)
		ds := get(key)
		ds.Appointments = append(ds.Appointments, a)
		put(key, ds)
	}
	for _, b := range union.Bookings {
		key := seriesKey(b.Location)
		ds := get(key)
		ds.Bookings = append(ds.Bookings, b)
		put(key, ds)
	}
	for _, r := range union.Revenue {
		key := seriesKey(r.Location)
		ds := get(key)
		ds.Revenue = append(ds.Revenue, r)
		put(key, ds)
	}

	// Cost entries attach to an existing record group via the location-match
	// rule; an entry matching no group has nothing to be attributed to and is
	// dropped, the same way an unassigned record never matches a filter.
	// Keys are walked in sorted order so attribution is deterministic.
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, c := range union.CostEntries {
		for _, key := range keys {
			if MatchesLocation(costEntryRef(c), key) {
				ds := get(key)
				ds.CostEntries = append(ds.CostEntries, c)
				put(key, ds)
				break
			}
		}
	}
}
