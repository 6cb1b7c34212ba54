package analytics

import (
	"reflect"
	"testing"

	"practipulse/internal/records"
)

var testAssumptions = Assumptions{CostPerLead: 25, AppointmentValue: 300}

func gilbertRef() records.LocationRef { return records.LocationRef{ID: "gilbert-1", Name: "Gilbert"} }
func phoenixRef() records.LocationRef { return records.LocationRef{ID: "phoenix-1", Name: "Phoenix"} }

func twoLocationDataset() records.Dataset {
	return records.Dataset{
		Patients: []records.Patient{
			{ExternalID: "p1", Location: gilbertRef(), Timestamp: day(2024, 3, 2), Source: "Google Ads"},
			{ExternalID: "p2", Location: gilbertRef(), Timestamp: day(2024, 3, 8), Source: "Dr. Smith referral"},
			{ExternalID: "p3", Location: phoenixRef(), Timestamp: day(2024, 3, 12), Source: ""},
		},
		Leads: []records.Lead{
			{ExternalID: "l1", Location: gilbertRef(), Timestamp: day(2024, 3, 3), Source: "online", Converted: true},
			{ExternalID: "l2", Location: gilbertRef(), Timestamp: day(2024, 3, 5), Source: "walk-in"},
			{ExternalID: "l3", Location: phoenixRef(), Timestamp: day(2024, 3, 7), Source: "facebook"},
			{ExternalID: "l4", Location: phoenixRef(), Timestamp: day(2024, 3, 9), Source: "doctor", Converted: true},
		},
		Appointments: []records.Appointment{
			{ExternalID: "a1", Location: gilbertRef(), Timestamp: day(2024, 3, 4), Status: "completed", Amount: f(400)},
			{ExternalID: "a2", Location: gilbertRef(), Timestamp: day(2024, 3, 6), Status: "no-show"},
			{ExternalID: "a3", Location: phoenixRef(), Timestamp: day(2024, 3, 10), Status: "completed", Amount: f(250)},
			{ExternalID: "a4", Location: phoenixRef(), Timestamp: day(2024, 3, 18), Status: "completed"},
		},
		Bookings: []records.Booking{
			{ExternalID: "b1", Location: gilbertRef(), Timestamp: day(2024, 3, 4)},
		},
		Revenue: []records.RevenueEntry{
			{ExternalID: "r1", Location: gilbertRef(), Timestamp: day(2024, 3, 15), Amount: 10000},
			{ExternalID: "r2", Location: phoenixRef(), Timestamp: day(2024, 3, 16), Amount: 5000},
		},
		CostEntries: []records.CostEntry{
			{LocationID: "gilbert-1", Timestamp: day(2024, 3, 1), Amount: 2000},
			{LocationID: "phoenix-1", Timestamp: day(2024, 3, 1), Amount: 1000},
		},
	}
}

func f(v float64) *float64 { return &v }

func marchPeriod(locationIDs ...string) PeriodDefinition {
	return PeriodDefinition{Start: day(2024, 3, 1), End: day(2024, 3, 31), LocationIDs: locationIDs}
}

func TestAggregatePeriodCombinesFinancials(t *testing.T) {
	m := AggregatePeriod(twoLocationDataset(), marchPeriod("gilbert-1", "phoenix-1"), testAssumptions)

	if m.Revenue != 15000 {
		t.Errorf("Revenue = %v, want 15000", m.Revenue)
	}
	if m.AcquisitionCosts != 3000 {
		t.Errorf("AcquisitionCosts = %v, want 3000", m.AcquisitionCosts)
	}
	if m.NetProduction != 12000 {
		t.Errorf("NetProduction = %v, want 12000", m.NetProduction)
	}
}

func TestSummationConsistency(t *testing.T) {
	dataset := twoLocationDataset()
	period := marchPeriod("gilbert-1", "phoenix-1")

	m := AggregatePeriod(dataset, period, testAssumptions)
	locs := LocationBreakdown(dataset, period, testAssumptions)

	var patients, appointments, leads, bookings int
	var production, revenue, costs float64
	for _, loc := range locs {
		patients += loc.Patients
		appointments += loc.Appointments
		leads += loc.Leads
		bookings += loc.Bookings
		production += loc.Production
		revenue += loc.Revenue
		costs += loc.AcquisitionCosts
	}

	if m.Patients != patients || m.Appointments != appointments || m.Leads != leads || m.Bookings != bookings {
		t.Errorf("count sums diverge: period=%+v", m)
	}
	if m.Production != production || m.Revenue != revenue || m.AcquisitionCosts != costs {
		t.Errorf("financial sums diverge: period=%+v", m)
	}
}

func TestNetProductionInvariant(t *testing.T) {
	dataset := twoLocationDataset()
	period := marchPeriod("gilbert-1", "phoenix-1")

	for _, loc := range LocationBreakdown(dataset, period, testAssumptions) {
		if loc.NetProduction != loc.Revenue-loc.AcquisitionCosts {
			t.Errorf("%s: net %v != revenue %v - costs %v", loc.Location, loc.NetProduction, loc.Revenue, loc.AcquisitionCosts)
		}
	}
	m := AggregatePeriod(dataset, period, testAssumptions)
	if m.NetProduction != m.Revenue-m.AcquisitionCosts {
		t.Errorf("period: net %v != revenue %v - costs %v", m.NetProduction, m.Revenue, m.AcquisitionCosts)
	}
}

func TestAggregatePeriodDeterministic(t *testing.T) {
	dataset := twoLocationDataset()
	period := marchPeriod("gilbert-1", "phoenix-1")

	first := AggregatePeriod(dataset, period, testAssumptions)
	second := AggregatePeriod(dataset, period, testAssumptions)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated aggregation over identical input produced different output")
	}
}

func TestAggregatePeriodZeroSafety(t *testing.T) {
	m := AggregatePeriod(records.Dataset{}, marchPeriod(), testAssumptions)

	if m.NoShowRate != 0 {
		t.Errorf("NoShowRate = %v, want 0", m.NoShowRate)
	}
	if m.ConversionRates != (ReferralBreakdown{}) {
		t.Errorf("ConversionRates = %+v, want all zero", m.ConversionRates)
	}
	if m.ReferralSources != (ReferralBreakdown{}) {
		t.Errorf("ReferralSources = %+v, want all zero", m.ReferralSources)
	}
	if m.AvgNetProduction != 0 || m.AvgAcquisition != 0 {
		t.Errorf("averages = %v/%v, want 0/0", m.AvgNetProduction, m.AvgAcquisition)
	}
	if len(m.Trends.Weekly) != 0 || len(m.Trends.Monthly) != 0 {
		t.Error("empty dataset produced trend points")
	}
}

func TestAggregatePeriodInvertedRange(t *testing.T) {
	period := PeriodDefinition{Start: day(2024, 3, 1), End: day(2024, 2, 1)}
	m := AggregatePeriod(twoLocationDataset(), period, testAssumptions)

	if m.Patients != 0 || m.Appointments != 0 || m.Leads != 0 || m.Bookings != 0 {
		t.Errorf("inverted range produced non-zero counts: %+v", m)
	}
	if m.Revenue != 0 || m.Production != 0 || m.AcquisitionCosts != 0 {
		t.Errorf("inverted range produced non-zero financials: %+v", m)
	}
}

func TestAggregateLocationUnknownLocation(t *testing.T) {
	m := AggregateLocation(twoLocationDataset(), "tucson-1", marchPeriod(), testAssumptions)

	if m.Location != "tucson-1" {
		t.Errorf("Location = %q, want tucson-1", m.Location)
	}
	if m.Patients != 0 || m.Appointments != 0 || m.Revenue != 0 || m.NetProduction != 0 {
		t.Errorf("unknown location not all-zero: %+v", m)
	}
}

func TestAggregateLocationSummaryFastPath(t *testing.T) {
	dataset := twoLocationDataset()
	dataset.Summaries = []records.CountSummary{{
		LocationID:   "gilbert-1",
		Patients:     40,
		Appointments: 55,
		Leads:        20,
		Bookings:     12,
		PeriodStart:  day(2024, 1, 1),
		PeriodEnd:    day(2024, 12, 31),
	}}

	m := AggregateLocation(dataset, "gilbert-1", marchPeriod(), testAssumptions)

	// Counts come from the upstream summary, financials still from raw
	// records.
	if m.Patients != 40 || m.Appointments != 55 || m.Leads != 20 || m.Bookings != 12 {
		t.Errorf("summary counts not used: %+v", m)
	}
	if m.Revenue != 10000 {
		t.Errorf("Revenue = %v, want 10000 from raw records", m.Revenue)
	}
}

func TestAggregateLocationSummaryMustCoverPeriod(t *testing.T) {
	dataset := twoLocationDataset()
	dataset.Summaries = []records.CountSummary{{
		LocationID:  "gilbert-1",
		Patients:    99,
		PeriodStart: day(2024, 3, 10), // starts after the requested window
		PeriodEnd:   day(2024, 3, 31),
	}}

	m := AggregateLocation(dataset, "gilbert-1", marchPeriod(), testAssumptions)
	if m.Patients == 99 {
		t.Error("summary with partial coverage must not override raw counts")
	}
	if m.Patients != 2 {
		t.Errorf("Patients = %d, want 2 from raw records", m.Patients)
	}
}

func TestAggregatePeriodAveragesUseSummedDenominators(t *testing.T) {
	dataset := twoLocationDataset()
	m := AggregatePeriod(dataset, marchPeriod("gilbert-1", "phoenix-1"), testAssumptions)

	// 4 appointments and 4 leads across both locations.
	if want := m.NetProduction / 4; m.AvgNetProduction != want {
		t.Errorf("AvgNetProduction = %v, want %v", m.AvgNetProduction, want)
	}
	if want := m.AcquisitionCosts / 4; m.AvgAcquisition != want {
		t.Errorf("AvgAcquisition = %v, want %v", m.AvgAcquisition, want)
	}
}

func TestAggregatePeriodNoShowRateOverUnion(t *testing.T) {
	// 1 no-show out of 4 appointments across locations: 25%, not the mean of
	// the per-location rates (50% and 0%).
	m := AggregatePeriod(twoLocationDataset(), marchPeriod("gilbert-1", "phoenix-1"), testAssumptions)
	if m.NoShowRate != 25.0 {
		t.Errorf("NoShowRate = %v, want 25.0", m.NoShowRate)
	}
}

func TestLocationBreakdownDerivedGroups(t *testing.T) {
	// Empty selection: groups come from the records themselves.
	locs := LocationBreakdown(twoLocationDataset(), marchPeriod(), testAssumptions)
	if len(locs) != 2 {
		t.Fatalf("got %d groups, want 2", len(locs))
	}
	if locs[0].Location != "gilbert" || locs[1].Location != "phoenix" {
		t.Errorf("groups = %q, %q; want gilbert, phoenix", locs[0].Location, locs[1].Location)
	}
}

func TestReferralPercentagesBounded(t *testing.T) {
	m := AggregatePeriod(twoLocationDataset(), marchPeriod("gilbert-1", "phoenix-1"), testAssumptions)
	pct := m.ReferralPercentages()
	for name, v := range map[string]float64{"digital": pct.Digital, "professional": pct.Professional, "direct": pct.Direct} {
		if v < 0 || v > 100 {
			t.Errorf("%s percentage %v outside [0,100]", name, v)
		}
	}
	if total := pct.Total(); total < 99.9 || total > 100.1 {
		t.Errorf("percentages sum to %v, want ~100", total)
	}
}
