package records

import (
	"time"

	"github.com/google/uuid"
)

// LocationRef is the resolved location tag carried by every synced record.
// A record belongs to at most one location; an empty ref means "unassigned"
// and never matches a location filter.
type LocationRef struct {
	ID   string `json:"id" gorm:"column:location_id;index;size:100"`
	Name string `json:"name" gorm:"column:location_name;size:200"`
}

// IsZero reports whether the record carries no location reference at all.
func (r LocationRef) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

// Patient is a synced patient record from the practice-management system.
type Patient struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExternalID string      `json:"external_id" gorm:"uniqueIndex;not null;size:100"`
	Location   LocationRef `json:"location" gorm:"embedded"`
	Source     string      `json:"source" gorm:"size:200"`
	Timestamp  time.Time   `json:"timestamp" gorm:"index"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// Lead is a synced lead/inquiry record. Converted marks leads the upstream
// system attributed a patient outcome to.
type Lead struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExternalID string      `json:"external_id" gorm:"uniqueIndex;not null;size:100"`
	Location   LocationRef `json:"location" gorm:"embedded"`
	Source     string      `json:"source" gorm:"size:200"`
	Status     string      `json:"status" gorm:"size:50"`
	Converted  bool        `json:"converted"`
	Timestamp  time.Time   `json:"timestamp" gorm:"index"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// Appointment is a synced appointment record. Amount is the billed/production
// value when the upstream payload carried one; nil otherwise.
type Appointment struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExternalID string      `json:"external_id" gorm:"uniqueIndex;not null;size:100"`
	Location   LocationRef `json:"location" gorm:"embedded"`
	Status     string      `json:"status" gorm:"size:50"`
	Amount     *float64    `json:"amount"`
	Timestamp  time.Time   `json:"timestamp" gorm:"index"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// Booking is a synced online-booking record (a booking may or may not have
// produced an appointment yet).
type Booking struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExternalID string      `json:"external_id" gorm:"uniqueIndex;not null;size:100"`
	Location   LocationRef `json:"location" gorm:"embedded"`
	Status     string      `json:"status" gorm:"size:50"`
	Timestamp  time.Time   `json:"timestamp" gorm:"index"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// RevenueEntry is a synced payment/collection record.
type RevenueEntry struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ExternalID string      `json:"external_id" gorm:"uniqueIndex;not null;size:100"`
	Location   LocationRef `json:"location" gorm:"embedded"`
	Amount     float64     `json:"amount"`
	Timestamp  time.Time   `json:"timestamp" gorm:"index"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// CountSummary holds per-location counts the upstream sync already aggregated
// server-side. When present for a location it overrides raw-record derived
// counts; financials are always derived from raw records.
type CountSummary struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	LocationID   string    `json:"location_id" gorm:"index;not null;size:100"`
	Patients     int       `json:"patients"`
	Appointments int       `json:"appointments"`
	Leads        int       `json:"leads"`
	Bookings     int       `json:"bookings"`
	PeriodStart  time.Time `json:"period_start" gorm:"index"`
	PeriodEnd    time.Time `json:"period_end" gorm:"index"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Dataset is everything the aggregation engine consumes for one invocation:
// already fetched, already normalized, not yet aggregated.
type Dataset struct {
	Patients     []Patient
	Leads        []Lead
	Appointments []Appointment
	Bookings     []Booking
	Revenue      []RevenueEntry
	Summaries    []CountSummary
	CostEntries  []CostEntry
}

// CostEntry is a manually tracked marketing-spend entry. It lives in the
// costs package's table but is read-only from the engine's point of view.
type CostEntry struct {
	LocationID string    `json:"location_id"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// OccurredAt / LocationRef accessors give the aggregation engine one common
// surface over every record kind.

func (p Patient) OccurredAt() time.Time         { return p.Timestamp }
func (p Patient) LocationRef() LocationRef      { return p.Location }
func (l Lead) OccurredAt() time.Time            { return l.Timestamp }
func (l Lead) LocationRef() LocationRef         { return l.Location }
func (a Appointment) OccurredAt() time.Time     { return a.Timestamp }
func (a Appointment) LocationRef() LocationRef  { return a.Location }
func (b Booking) OccurredAt() time.Time         { return b.Timestamp }
func (b Booking) LocationRef() LocationRef      { return b.Location }
func (r RevenueEntry) OccurredAt() time.Time    { return r.Timestamp }
func (r RevenueEntry) LocationRef() LocationRef { return r.Location }

// TableName overrides for GORM.
func (Patient) TableName() string      { return "synced_patients" }
func (Lead) TableName() string         { return "synced_leads" }
func (Appointment) TableName() string  { return "synced_appointments" }
func (Booking) TableName() string      { return "synced_bookings" }
func (RevenueEntry) TableName() string { return "synced_revenue_entries" }
func (CountSummary) TableName() string { return "location_count_summaries" }
