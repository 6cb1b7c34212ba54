package analytics

import (
	"testing"

	"practipulse/internal/records"
)

func TestNoShowRate(t *testing.T) {
	appointments := make([]records.Appointment, 0, 10)
	for i := 0; i < 8; i++ {
		appointments = append(appointments, records.Appointment{Status: "completed"})
	}
	appointments = append(appointments,
		records.Appointment{Status: "no-show"},
		records.Appointment{Status: "no-show"},
	)

	if got := NoShowRate(appointments); got != 20.0 {
		t.Errorf("NoShowRate = %v, want 20.0", got)
	}
}

func TestNoShowRateCountsCancellations(t *testing.T) {
	appointments := []records.Appointment{
		{Status: "cancelled"},
		{Status: "canceled"},
		{Status: "completed"},
		{Status: "completed"},
	}
	if got := NoShowRate(appointments); got != 50.0 {
		t.Errorf("NoShowRate = %v, want 50.0", got)
	}
}

func TestNoShowRateZeroAppointments(t *testing.T) {
	if got := NoShowRate(nil); got != 0 {
		t.Errorf("NoShowRate(nil) = %v, want 0", got)
	}
}

func TestClassifyReferralSource(t *testing.T) {
	tests := []struct {
		source string
		want   ReferralCategory
	}{
		{"Google Ads", ReferralDigital},
		{"online booking", ReferralDigital},
		{"Social Media", ReferralDigital},
		{"Facebook", ReferralDigital},
		{"Dr. Smith referral", ReferralProfessional},
		{"professional network", ReferralProfessional},
		{"Doctor recommendation", ReferralProfessional},
		{"", ReferralDirect},
		{"walk-in", ReferralDirect},
		{"friend", ReferralDirect},
	}
	for _, tt := range tests {
		if got := ClassifyReferralSource(tt.source); got != tt.want {
			t.Errorf("ClassifyReferralSource(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestReferralSourceCountsSumToClassifiedTotal(t *testing.T) {
	leads := []records.Lead{
		{Source: "Google Ads"},
		{Source: "Dr. Smith referral"},
		{Source: ""},
	}
	patients := []records.Patient{
		{Source: "instagram"},
		{Source: "walk-in"},
	}

	counts := ReferralSourceCounts(leads, patients)
	if counts.Digital != 2 || counts.Professional != 1 || counts.Direct != 2 {
		t.Errorf("counts = %+v, want digital=2 professional=1 direct=2", counts)
	}
	if got, want := counts.Total(), float64(len(leads)+len(patients)); got != want {
		t.Errorf("Total() = %v, want %v", got, want)
	}
}

func TestReferralSourceCountsEmpty(t *testing.T) {
	counts := ReferralSourceCounts(nil, nil)
	if counts.Digital != 0 || counts.Professional != 0 || counts.Direct != 0 {
		t.Errorf("empty input gave %+v, want all zero", counts)
	}
}

func TestConversionRate(t *testing.T) {
	leads := []records.Lead{
		{Converted: true},
		{Converted: true},
		{Converted: false},
		{Converted: false},
	}
	if got := ConversionRate(leads); got != 50.0 {
		t.Errorf("ConversionRate = %v, want 50.0", got)
	}
	if got := ConversionRate(nil); got != 0 {
		t.Errorf("ConversionRate(nil) = %v, want 0", got)
	}
}

func TestConversionRatesBySourceFanOut(t *testing.T) {
	leads := []records.Lead{
		{Source: "Google Ads", Converted: true},
		{Source: "Dr. Smith referral", Converted: false},
	}
	rates := ConversionRatesBySource(leads)
	if rates.Digital != 50.0 || rates.Professional != 50.0 || rates.Direct != 50.0 {
		t.Errorf("fan-out rates = %+v, want 50.0 in every channel", rates)
	}
}

func TestProductionUsesPlaceholderNotZero(t *testing.T) {
	assumptions := Assumptions{AppointmentValue: 350}
	amount := 500.0
	appointments := []records.Appointment{
		{Amount: &amount},
		{Amount: nil},
		{Amount: nil},
	}
	if got, want := Production(appointments, assumptions), 500.0+2*350.0; got != want {
		t.Errorf("Production = %v, want %v", got, want)
	}
}

func TestRevenueFallsBackToProduction(t *testing.T) {
	assumptions := Assumptions{AppointmentValue: 200}
	appointments := []records.Appointment{{Amount: nil}, {Amount: nil}}

	if got := Revenue(nil, appointments, assumptions); got != 400 {
		t.Errorf("Revenue without entries = %v, want 400", got)
	}

	entries := []records.RevenueEntry{{Amount: 1000}, {Amount: 250}}
	if got := Revenue(entries, appointments, assumptions); got != 1250 {
		t.Errorf("Revenue with entries = %v, want 1250", got)
	}
}

func TestAcquisitionCostPrefersRealSpend(t *testing.T) {
	assumptions := Assumptions{CostPerLead: 25}

	if got := AcquisitionCost(10, nil, assumptions); got != 250 {
		t.Errorf("estimated cost = %v, want 250", got)
	}

	entries := []records.CostEntry{{Amount: 120}, {Amount: 80}}
	if got := AcquisitionCost(10, entries, assumptions); got != 200 {
		t.Errorf("tracked cost = %v, want 200", got)
	}
}
