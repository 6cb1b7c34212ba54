package analytics

import (
	"strings"
	"testing"
)

func periodWithConversion(rate float64) PeriodMetrics {
	return PeriodMetrics{
		Leads:           10,
		Patients:        5,
		Appointments:    8,
		ConversionRates: ReferralBreakdown{Digital: rate, Professional: rate, Direct: rate},
	}
}

func TestGenerateInsightsLowConversion(t *testing.T) {
	got := GenerateInsights(periodWithConversion(30), nil)

	if len(got.Insights) == 0 || !strings.Contains(got.Insights[0], "below") {
		t.Fatalf("low conversion not flagged: %+v", got)
	}
	if len(got.Recommendations) != 2 {
		t.Errorf("got %d recommendations, want 2", len(got.Recommendations))
	}
}

func TestGenerateInsightsHighConversion(t *testing.T) {
	got := GenerateInsights(periodWithConversion(90), nil)

	if len(got.Insights) == 0 || !strings.Contains(got.Insights[0], "strength") {
		t.Fatalf("high conversion not flagged: %+v", got)
	}
	if len(got.Recommendations) != 0 {
		t.Errorf("strength insight should carry no remediation, got %v", got.Recommendations)
	}
}

func TestGenerateInsightsMidRangeConversion(t *testing.T) {
	got := GenerateInsights(periodWithConversion(65), nil)
	for _, insight := range got.Insights {
		if strings.Contains(insight, "below") || strings.Contains(insight, "strength") {
			t.Errorf("mid-range conversion flagged: %q", insight)
		}
	}
}

func TestGenerateInsightsEmptyInput(t *testing.T) {
	got := GenerateInsights(PeriodMetrics{}, nil)
	if len(got.Insights) != 0 || len(got.Recommendations) != 0 {
		t.Errorf("empty input produced output: %+v", got)
	}
	if got.Insights == nil || got.Recommendations == nil {
		t.Error("slices must be empty, not nil, so they serialize as [] rather than null")
	}
}

func TestGenerateInsightsBestLocation(t *testing.T) {
	locations := []LocationMetrics{
		{Location: "gilbert", Leads: 10, ConversionRate: 70},
		{Location: "phoenix", Leads: 10, ConversionRate: 40},
	}
	got := GenerateInsights(periodWithConversion(55), locations)

	found := false
	for _, insight := range got.Insights {
		if strings.Contains(insight, "gilbert") && strings.Contains(insight, "highest conversion") {
			found = true
		}
	}
	if !found {
		t.Errorf("best location not named: %+v", got.Insights)
	}
}

func TestGenerateInsightsBestLocationNeedsComparison(t *testing.T) {
	locations := []LocationMetrics{
		{Location: "gilbert", Leads: 10, ConversionRate: 70},
		{Location: "phoenix", Leads: 0},
	}
	got := GenerateInsights(periodWithConversion(55), locations)
	for _, insight := range got.Insights {
		if strings.Contains(insight, "highest conversion") {
			t.Errorf("single location with leads should not produce a comparison insight: %q", insight)
		}
	}
}

func TestCompareInsightsBestPeriodByROI(t *testing.T) {
	periods := []PeriodMetrics{
		{Period: PeriodDefinition{Label: "Q1"}, NetProduction: 12000, AcquisitionCosts: 3000}, // 400%
		{Period: PeriodDefinition{Label: "Q2"}, NetProduction: 9000, AcquisitionCosts: 1000},  // 900%
	}
	got := CompareInsights(periods)

	if len(got.Insights) == 0 || !strings.Contains(got.Insights[0], "Q2") {
		t.Fatalf("best ROI period not Q2: %+v", got)
	}
}

func TestCompareInsightsSkipsZeroCostPeriods(t *testing.T) {
	periods := []PeriodMetrics{
		{Period: PeriodDefinition{Label: "Q1"}, NetProduction: 12000, AcquisitionCosts: 0},
	}
	got := CompareInsights(periods)
	if len(got.Insights) != 0 {
		t.Errorf("ROI is undefined without acquisition costs, got %+v", got)
	}
}
