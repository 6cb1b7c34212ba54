package analytics

import (
	"strings"

	"practipulse/internal/records"
)

// ReferralCategory is the channel a lead or patient is attributed to.
type ReferralCategory string

const (
	ReferralDigital      ReferralCategory = "digital"
	ReferralProfessional ReferralCategory = "professional"
	ReferralDirect       ReferralCategory = "direct"
)

// referralRules are evaluated in order; the first keyword hit wins. Anything
// unmatched, including an absent source, is a direct/walk-in attribution.
var referralRules = []struct {
	category ReferralCategory
	keywords []string
}{
	{ReferralDigital, []string{"digital", "online", "social", "google", "facebook", "instagram", "web", "ads"}},
	{ReferralProfessional, []string{"referral", "doctor", "dr.", "dr ", "professional", "dentist", "physician"}},
}

// ClassifyReferralSource maps a free-text source string onto a channel.
func ClassifyReferralSource(source string) ReferralCategory {
	s := strings.ToLower(strings.TrimSpace(source))
	if s == "" {
		return ReferralDirect
	}
	for _, rule := range referralRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(s, keyword) {
				return rule.category
			}
		}
	}
	return ReferralDirect
}

// NoShowRate is the percentage of appointments with a no-show or cancelled
// status. Zero appointments yields 0, never NaN.
func NoShowRate(appointments []records.Appointment) float64 {
	if len(appointments) == 0 {
		return 0
	}
	missed := 0
	for _, appt := range appointments {
		switch strings.ToLower(appt.Status) {
		case "no-show", "noshow", "no_show", "cancelled", "canceled":
			missed++
		}
	}
	return float64(missed) / float64(len(appointments)) * 100
}

// ReferralSourceCounts classifies every lead and patient in one pass and
// returns raw per-channel counts. The breakdown's total always equals
// len(leads) + len(patients).
func ReferralSourceCounts(leads []records.Lead, patients []records.Patient) ReferralBreakdown {
	var counts ReferralBreakdown
	bump := func(category ReferralCategory) {
		switch category {
		case ReferralDigital:
			counts.Digital++
		case ReferralProfessional:
			counts.Professional++
		default:
			counts.Direct++
		}
	}
	for _, lead := range leads {
		bump(ClassifyReferralSource(lead.Source))
	}
	for _, patient := range patients {
		bump(ClassifyReferralSource(patient.Source))
	}
	return counts
}

// ConversionRate is converted leads over total leads as a percentage. Zero
// leads yields 0.
func ConversionRate(leads []records.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	converted := 0
	for _, lead := range leads {
		if lead.Converted {
			converted++
		}
	}
	return float64(converted) / float64(len(leads)) * 100
}

// ConversionRatesBySource fans the aggregate conversion rate out to every
// referral channel. Per-source attribution of outcomes is not tracked
// upstream, so each channel reports the same aggregate rate rather than an
// undefined value.
func ConversionRatesBySource(leads []records.Lead) ReferralBreakdown {
	rate := ConversionRate(leads)
	return ReferralBreakdown{Digital: rate, Professional: rate, Direct: rate}
}

// Production sums appointment values. Appointments without an amount field
// contribute the configured per-appointment placeholder instead of zero, so
// volume still registers when the upstream feed drops fee data.
func Production(appointments []records.Appointment, assumptions Assumptions) float64 {
	total := 0.0
	for _, appt := range appointments {
		if appt.Amount != nil {
			total += *appt.Amount
		} else {
			total += assumptions.AppointmentValue
		}
	}
	return total
}

// Revenue sums the period's revenue entries. When the feed carried no revenue
// records at all, collected revenue is approximated by production; the two
// differ only when real payment records exist.
func Revenue(revenue []records.RevenueEntry, appointments []records.Appointment, assumptions Assumptions) float64 {
	if len(revenue) == 0 {
		return Production(appointments, assumptions)
	}
	total := 0.0
	for _, entry := range revenue {
		total += entry.Amount
	}
	return total
}

// AcquisitionCost sums real tracked marketing spend when any exists for the
// slice in question; otherwise it estimates leadCount * configured cost per
// lead.
func AcquisitionCost(leadCount int, costEntries []records.CostEntry, assumptions Assumptions) float64 {
	if len(costEntries) > 0 {
		total := 0.0
		for _, entry := range costEntries {
			total += entry.Amount
		}
		return total
	}
	return float64(leadCount) * assumptions.CostPerLead
}

// NetProduction derives net from already-computed revenue and acquisition
// cost. Always computed from derived values, never re-summed, so the
// net == revenue - costs invariant holds exactly.
func NetProduction(revenue, acquisitionCosts float64) float64 {
	return revenue - acquisitionCosts
}
