package records

import (
	"strconv"
	"strings"
	"time"
)

// The practice-management API returns the same logical record in several
// shapes depending on which endpoint produced it: differing timestamp field
// names, amounts as numbers or strings, locations as ids, names, or nested
// objects. Every "try field A, else field B" chain lives in this file; the
// canonical structs in models.go are the only shape the rest of the codebase
// sees.

var (
	patientTimestampFields     = []string{"firstVisitDate", "first_visit_date", "createdAt", "created_at", "createdDate"}
	leadTimestampFields        = []string{"createdAt", "created_at", "submittedAt", "submitted_at", "date"}
	appointmentTimestampFields = []string{"scheduledDate", "scheduled_at", "startTime", "start_time", "date", "createdAt", "created_at"}
	bookingTimestampFields     = []string{"bookingDate", "booking_date", "requestedAt", "requested_at", "createdAt", "created_at"}
	revenueTimestampFields     = []string{"postedAt", "posted_at", "date", "createdAt", "created_at"}

	appointmentAmountFields = []string{"value", "amount", "fee", "production"}
	revenueAmountFields     = []string{"value", "amount", "total"}

	sourceFields = []string{"source", "referralSource", "referral_source"}
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// AdaptPatient normalizes one loose patient payload. ok is false when the
// payload has no usable identifier.
func AdaptPatient(raw map[string]interface{}) (Patient, bool) {
	id := resolveID(raw)
	if id == "" {
		return Patient{}, false
	}
	return Patient{
		ExternalID: id,
		Location:   resolveLocation(raw),
		Source:     resolveString(raw, sourceFields...),
		Timestamp:  resolveTimestamp(raw, patientTimestampFields...),
	}, true
}

// AdaptLead normalizes one loose lead payload.
func AdaptLead(raw map[string]interface{}) (Lead, bool) {
	id := resolveID(raw)
	if id == "" {
		return Lead{}, false
	}
	status := strings.ToLower(resolveString(raw, "status", "leadStatus", "lead_status"))
	return Lead{
		ExternalID: id,
		Location:   resolveLocation(raw),
		Source:     resolveString(raw, sourceFields...),
		Status:     status,
		Converted:  resolveConverted(raw, status),
		Timestamp:  resolveTimestamp(raw, leadTimestampFields...),
	}, true
}

// AdaptAppointment normalizes one loose appointment payload.
func AdaptAppointment(raw map[string]interface{}) (Appointment, bool) {
	id := resolveID(raw)
	if id == "" {
		return Appointment{}, false
	}
	return Appointment{
		ExternalID: id,
		Location:   resolveLocation(raw),
		Status:     strings.ToLower(resolveString(raw, "status", "appointmentStatus", "appointment_status")),
		Amount:     resolveAmount(raw, appointmentAmountFields...),
		Timestamp:  resolveTimestamp(raw, appointmentTimestampFields...),
	}, true
}

// AdaptBooking normalizes one loose online-booking payload.
func AdaptBooking(raw map[string]interface{}) (Booking, bool) {
	id := resolveID(raw)
	if id == "" {
		return Booking{}, false
	}
	return Booking{
		ExternalID: id,
		Location:   resolveLocation(raw),
		Status:     strings.ToLower(resolveString(raw, "status")),
		Timestamp:  resolveTimestamp(raw, bookingTimestampFields...),
	}, true
}

// AdaptRevenueEntry normalizes one loose revenue/payment payload. Entries
// without an amount are dropped; a revenue record with nothing to sum carries
// no signal.
func AdaptRevenueEntry(raw map[string]interface{}) (RevenueEntry, bool) {
	id := resolveID(raw)
	if id == "" {
		return RevenueEntry{}, false
	}
	amount := resolveAmount(raw, revenueAmountFields...)
	if amount == nil {
		return RevenueEntry{}, false
	}
	return RevenueEntry{
		ExternalID: id,
		Location:   resolveLocation(raw),
		Amount:     *amount,
		Timestamp:  resolveTimestamp(raw, revenueTimestampFields...),
	}, true
}

func resolveID(raw map[string]interface{}) string {
	for _, field := range []string{"id", "_id", "externalId", "external_id", "uuid"} {
		if s := toString(raw[field]); s != "" {
			return s
		}
	}
	return ""
}

// resolveTimestamp tries the candidate fields in order and returns the first
// parseable value. Absent or malformed values yield the zero time, which the
// record filter treats as "outside every period".
func resolveTimestamp(raw map[string]interface{}, fields ...string) time.Time {
	for _, field := range fields {
		val, ok := raw[field]
		if !ok || val == nil {
			continue
		}
		if t := parseTimestamp(val); !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

func parseTimestamp(val interface{}) time.Time {
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	case float64:
		// JSON numbers arrive as float64; treat as unix seconds.
		if v > 0 {
			return time.Unix(int64(v), 0).UTC()
		}
	}
	return time.Time{}
}

// resolveLocation handles the three upstream location shapes: a flat id
// field, a flat name field, or a nested object carrying either.
func resolveLocation(raw map[string]interface{}) LocationRef {
	ref := LocationRef{}
	for _, field := range []string{"locationId", "location_id", "clinicId", "clinic_id"} {
		if s := toString(raw[field]); s != "" {
			ref.ID = s
			break
		}
	}
	for _, field := range []string{"locationName", "location_name"} {
		if s := toString(raw[field]); s != "" {
			ref.Name = s
			break
		}
	}

	if nested, ok := raw["location"]; ok && (ref.ID == "" || ref.Name == "") {
		switch v := nested.(type) {
		case string:
			if ref.Name == "" {
				ref.Name = v
			}
		case map[string]interface{}:
			if ref.ID == "" {
				ref.ID = toString(v["id"])
			}
			if ref.Name == "" {
				ref.Name = toString(v["name"])
			}
		}
	}
	return ref
}

func resolveAmount(raw map[string]interface{}, fields ...string) *float64 {
	for _, field := range fields {
		val, ok := raw[field]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case float64:
			return &v
		case int:
			f := float64(v)
			return &f
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func resolveString(raw map[string]interface{}, fields ...string) string {
	for _, field := range fields {
		if s := toString(raw[field]); s != "" {
			return s
		}
	}
	return ""
}

func resolveConverted(raw map[string]interface{}, status string) bool {
	if b, ok := raw["converted"].(bool); ok {
		return b
	}
	if _, ok := raw["convertedAt"]; ok {
		return true
	}
	switch status {
	case "converted", "won", "patient":
		return true
	}
	return false
}

func toString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		// Numeric ids come back as JSON numbers from some endpoints.
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
