package analytics

import (
	"time"

	"practipulse/internal/records"
)

// Granularity selects the trend bucket size.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// PeriodDefinition is the unit of comparison: a date range plus the set of
// locations it covers. An empty LocationIDs means "all locations". An
// inverted range (Start after End) is not an error; it simply matches no
// records and produces all-zero metrics.
type PeriodDefinition struct {
	Label       string    `json:"label,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	LocationIDs []string  `json:"location_ids"`
}

// Assumptions are the documented estimation constants the engine falls back
// to when real records are missing: a flat cost per lead when no marketing
// spend was tracked for the period, and a flat per-appointment production
// value when an appointment carries no amount field. They are configuration,
// not guesses buried in calculator bodies.
type Assumptions struct {
	CostPerLead      float64 `json:"cost_per_lead"`
	AppointmentValue float64 `json:"appointment_value"`
}

// ReferralBreakdown holds per-channel values. A breakdown holds either raw
// counts or percentages of the classified total, never both in one object.
type ReferralBreakdown struct {
	Digital      float64 `json:"digital"`
	Professional float64 `json:"professional"`
	Direct       float64 `json:"direct"`
}

// Total returns the sum over all channels.
func (b ReferralBreakdown) Total() float64 {
	return b.Digital + b.Professional + b.Direct
}

// LocationMetrics is the per-location snapshot for one period.
// NetProduction always equals Revenue - AcquisitionCosts; it is the only
// financial field allowed to be negative.
type LocationMetrics struct {
	Location         string  `json:"location"`
	Patients         int     `json:"patients"`
	Appointments     int     `json:"appointments"`
	Leads            int     `json:"leads"`
	Bookings         int     `json:"bookings"`
	Production       float64 `json:"production"`
	Revenue          float64 `json:"revenue"`
	NetProduction    float64 `json:"net_production"`
	AcquisitionCosts float64 `json:"acquisition_costs"`
	NoShowRate       float64 `json:"no_show_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
}

// Trends carries the weekly and monthly time series for one period.
type Trends struct {
	Weekly  []TrendPoint `json:"weekly"`
	Monthly []TrendPoint `json:"monthly"`
}

// TrendPoint is one bucket of a time series: a zero-padded bucket key, one
// count per location series, and a total. Buckets with no records are not
// emitted; consumers treat missing buckets as zero.
type TrendPoint struct {
	BucketKey string         `json:"bucket_key"`
	Locations map[string]int `json:"locations"`
	Total     int            `json:"total"`
}

// PeriodMetrics is the aggregate over a whole period: counts and financials
// summed across the selected locations, plus the derived ratios and trends.
type PeriodMetrics struct {
	Period           PeriodDefinition  `json:"period"`
	Patients         int               `json:"patients"`
	Appointments     int               `json:"appointments"`
	Leads            int               `json:"leads"`
	Bookings         int               `json:"bookings"`
	Production       float64           `json:"production"`
	Revenue          float64           `json:"revenue"`
	NetProduction    float64           `json:"net_production"`
	AcquisitionCosts float64           `json:"acquisition_costs"`
	NoShowRate       float64           `json:"no_show_rate"`
	ReferralSources  ReferralBreakdown `json:"referral_sources"`
	ConversionRates  ReferralBreakdown `json:"conversion_rates"`
	AvgNetProduction float64           `json:"avg_net_production"`
	AvgAcquisition   float64           `json:"avg_acquisition_cost"`
	Trends           Trends            `json:"trends"`
}

// ReferralPercentages converts the referral-source counts into percentages of
// the classified total. Returned separately so counts and percentages are
// never mixed in one object.
func (m PeriodMetrics) ReferralPercentages() ReferralBreakdown {
	total := m.ReferralSources.Total()
	if total == 0 {
		return ReferralBreakdown{}
	}
	return ReferralBreakdown{
		Digital:      m.ReferralSources.Digital / total * 100,
		Professional: m.ReferralSources.Professional / total * 100,
		Direct:       m.ReferralSources.Direct / total * 100,
	}
}

// ROI is net production as a percentage of acquisition spend. Defined only
// when acquisition costs are positive; ok is false otherwise.
func (m PeriodMetrics) ROI() (float64, bool) {
	if m.AcquisitionCosts <= 0 {
		return 0, false
	}
	return m.NetProduction / m.AcquisitionCosts * 100, true
}

// Insights is the generator output consumed by the report/AI-summary layer.
type Insights struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// Record is the common surface the filter needs from every canonical record
// kind: a resolved timestamp and a location reference.
type Record interface {
	OccurredAt() time.Time
	LocationRef() records.LocationRef
}
