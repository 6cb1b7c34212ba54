package records

import (
	"testing"
	"time"
)

func TestAdaptAppointmentTimestampFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want time.Time
	}{
		{
			"scheduledDate preferred over createdAt",
			map[string]interface{}{
				"id":            "a1",
				"scheduledDate": "2024-03-05",
				"createdAt":     "2024-01-01",
			},
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"createdAt used when scheduledDate absent",
			map[string]interface{}{
				"id":        "a2",
				"createdAt": "2024-02-10T09:30:00Z",
			},
			time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			"malformed date treated as absent",
			map[string]interface{}{
				"id":            "a3",
				"scheduledDate": "not-a-date",
			},
			time.Time{},
		},
		{
			"malformed preferred field falls through to next",
			map[string]interface{}{
				"id":            "a4",
				"scheduledDate": "garbage",
				"createdAt":     "2024-04-01",
			},
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt, ok := AdaptAppointment(tt.raw)
			if !ok {
				t.Fatal("adapter rejected payload with id")
			}
			if !appt.Timestamp.Equal(tt.want) {
				t.Errorf("Timestamp = %v, want %v", appt.Timestamp, tt.want)
			}
		})
	}
}

func TestAdaptAppointmentAmountFallback(t *testing.T) {
	appt, _ := AdaptAppointment(map[string]interface{}{"id": "a1", "fee": 175.5})
	if appt.Amount == nil || *appt.Amount != 175.5 {
		t.Errorf("Amount = %v, want 175.5 from fee field", appt.Amount)
	}

	appt, _ = AdaptAppointment(map[string]interface{}{"id": "a2", "value": "320", "fee": 999.0})
	if appt.Amount == nil || *appt.Amount != 320 {
		t.Errorf("Amount = %v, want 320 (value outranks fee, numeric strings parse)", appt.Amount)
	}

	appt, _ = AdaptAppointment(map[string]interface{}{"id": "a3"})
	if appt.Amount != nil {
		t.Errorf("Amount = %v, want nil when no amount field present", *appt.Amount)
	}
}

func TestAdaptLocationShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want LocationRef
	}{
		{"flat id", map[string]interface{}{"id": "x", "locationId": "gilbert-1"}, LocationRef{ID: "gilbert-1"}},
		{"snake id", map[string]interface{}{"id": "x", "location_id": "gilbert-1"}, LocationRef{ID: "gilbert-1"}},
		{"location as string", map[string]interface{}{"id": "x", "location": "Gilbert"}, LocationRef{Name: "Gilbert"}},
		{
			"location as object",
			map[string]interface{}{"id": "x", "location": map[string]interface{}{"id": "gilbert-1", "name": "Gilbert"}},
			LocationRef{ID: "gilbert-1", Name: "Gilbert"},
		},
		{"absent location stays unassigned", map[string]interface{}{"id": "x"}, LocationRef{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patient, ok := AdaptPatient(tt.raw)
			if !ok {
				t.Fatal("adapter rejected payload with id")
			}
			if patient.Location != tt.want {
				t.Errorf("Location = %+v, want %+v", patient.Location, tt.want)
			}
		})
	}
}

func TestAdaptLeadConversion(t *testing.T) {
	lead, _ := AdaptLead(map[string]interface{}{"id": "l1", "status": "Converted"})
	if !lead.Converted {
		t.Error("status=converted should mark the lead converted")
	}

	lead, _ = AdaptLead(map[string]interface{}{"id": "l2", "converted": true})
	if !lead.Converted {
		t.Error("converted flag should mark the lead converted")
	}

	lead, _ = AdaptLead(map[string]interface{}{"id": "l3", "status": "new"})
	if lead.Converted {
		t.Error("new lead should not be converted")
	}
}

func TestAdaptRejectsPayloadWithoutID(t *testing.T) {
	if _, ok := AdaptPatient(map[string]interface{}{"name": "nobody"}); ok {
		t.Error("payload without id must be rejected")
	}
}

func TestAdaptRevenueEntryRequiresAmount(t *testing.T) {
	if _, ok := AdaptRevenueEntry(map[string]interface{}{"id": "r1", "postedAt": "2024-03-01"}); ok {
		t.Error("revenue entry without amount carries no signal and must be dropped")
	}

	entry, ok := AdaptRevenueEntry(map[string]interface{}{"id": "r2", "amount": 1250.0, "postedAt": "2024-03-01"})
	if !ok || entry.Amount != 1250 {
		t.Errorf("entry = %+v ok=%v, want amount 1250", entry, ok)
	}
}

func TestAdaptNumericExternalID(t *testing.T) {
	patient, ok := AdaptPatient(map[string]interface{}{"id": 12345.0})
	if !ok || patient.ExternalID != "12345" {
		t.Errorf("ExternalID = %q ok=%v, want 12345", patient.ExternalID, ok)
	}
}
