package analytics

import "fmt"

// Conversion-rate thresholds for the insight rules. Documented here, not
// hidden in string formatting: below the low bar the period gets a
// low-conversion flag plus remediation recommendations, above the high bar a
// strength flag.
const (
	lowConversionThreshold  = 50.0
	highConversionThreshold = 80.0
)

// GenerateInsights applies the threshold rules to a period and its
// per-location snapshots and returns human-readable insight and
// recommendation strings. It never fails: missing or empty input produces
// empty slices.
func GenerateInsights(period PeriodMetrics, locations []LocationMetrics) Insights {
	out := Insights{Insights: []string{}, Recommendations: []string{}}
	if period.Leads == 0 && period.Patients == 0 && period.Appointments == 0 {
		return out
	}

	conversion := period.ConversionRates.Digital // fanned-out aggregate, same in every channel
	switch {
	case conversion < lowConversionThreshold:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Lead conversion rate is %.1f%%, below the %.0f%% target.", conversion, lowConversionThreshold))
		out.Recommendations = append(out.Recommendations,
			"Review lead follow-up timing; contacting new leads within an hour materially improves booking rates.",
			"Audit the intake scripts and online booking flow for drop-off points.")
	case conversion > highConversionThreshold:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Lead conversion rate of %.1f%% is a strength for this period.", conversion))
	}

	if best, ok := bestLocation(locations); ok {
		out.Insights = append(out.Insights,
			fmt.Sprintf("%s had the highest conversion rate (%.1f%%) among the selected locations.", best.Location, best.ConversionRate))
	}

	if roi, ok := period.ROI(); ok {
		out.Insights = append(out.Insights,
			fmt.Sprintf("Return on acquisition spend was %.1f%% for this period.", roi))
	}

	return out
}

// CompareInsights evaluates a set of labeled periods and flags the one with
// the best ROI (net production over acquisition spend). Periods without
// positive acquisition costs are skipped; with no eligible period the result
// is empty.
func CompareInsights(periods []PeriodMetrics) Insights {
	out := Insights{Insights: []string{}, Recommendations: []string{}}
	bestIdx := -1
	bestROI := 0.0
	for i, p := range periods {
		roi, ok := p.ROI()
		if !ok {
			continue
		}
		if bestIdx == -1 || roi > bestROI {
			bestIdx = i
			bestROI = roi
		}
	}
	if bestIdx == -1 {
		return out
	}

	best := periods[bestIdx]
	label := best.Period.Label
	if label == "" {
		label = fmt.Sprintf("%s to %s", best.Period.Start.Format("2006-01-02"), best.Period.End.Format("2006-01-02"))
	}
	out.Insights = append(out.Insights,
		fmt.Sprintf("%s delivered the best ROI at %.1f%%.", label, bestROI))
	out.Recommendations = append(out.Recommendations,
		fmt.Sprintf("Compare marketing mix and scheduling from %s against the other periods before reallocating spend.", label))
	return out
}

// bestLocation picks the supplied location with the highest conversion rate.
// Requires at least two locations with lead volume to be meaningful.
func bestLocation(locations []LocationMetrics) (LocationMetrics, bool) {
	best := LocationMetrics{}
	found := false
	withLeads := 0
	for _, loc := range locations {
		if loc.Leads == 0 {
			continue
		}
		withLeads++
		if !found || loc.ConversionRate > best.ConversionRate {
			best = loc
			found = true
		}
	}
	return best, found && withLeads > 1
}
