package domain

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleDonor         Role = "donor"
	RoleRecipient     Role = "recipient"
	RoleHospitalAdmin Role = "hospital_admin"
	RoleAdmin         Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleRecipient, RoleHospitalAdmin, RoleAdmin:
		return true
	}

	return false
}

// Actor is the caller identity asserted by the upstream gateway.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type RequestSource string

const (
	SourceDonor     RequestSource = "donor"
	SourceRecipient RequestSource = "recipient"
)

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}

	return false
}

type Donor struct {
	ID                    string         `db:"id" json:"id"`
	BloodType             BloodType      `db:"blood_type" json:"blood_type"`
	IsEligible            bool           `db:"is_eligible" json:"is_eligible"`
	LastDonationDate      *time.Time     `db:"last_donation_date" json:"last_donation_date,omitempty"`
	NextEligibleDate      *time.Time     `db:"next_eligible_date" json:"next_eligible_date,omitempty"`
	PreferredDonationType DonationType   `db:"preferred_donation_type" json:"preferred_donation_type"`
	TotalDonations        int            `db:"total_donations" json:"total_donations"`
	Points                int            `db:"points" json:"points"`
	Badges                pq.StringArray `db:"badges" json:"badges"`
	IsAvailable           bool           `db:"is_available" json:"is_available"`
	NotificationsEnabled  bool           `db:"notifications_enabled" json:"notifications_enabled"`
	City                  *string        `db:"city" json:"city,omitempty"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}

type Hospital struct {
	ID                      string         `db:"id" json:"id"`
	Name                    string         `db:"name" json:"name"`
	City                    string         `db:"city" json:"city"`
	AdminUserID             string         `db:"admin_user_id" json:"admin_user_id"`
	Status                  HospitalStatus `db:"status" json:"status"`
	RejectedReason          *string        `db:"rejected_reason" json:"rejected_reason,omitempty"`
	ApprovedAt              *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy              *string        `db:"approved_by" json:"approved_by,omitempty"`
	SuspendedAt             *time.Time     `db:"suspended_at" json:"suspended_at,omitempty"`
	SuspendedReason         *string        `db:"suspended_reason" json:"suspended_reason,omitempty"`
	TotalRequestsFulfilled  int            `db:"total_requests_fulfilled" json:"total_requests_fulfilled"`
	TotalDonationsProcessed int            `db:"total_donations_processed" json:"total_donations_processed"`
	CreatedAt               time.Time      `db:"created_at" json:"created_at"`
}

func (h *Hospital) IsApproved() bool {
	return h.Status == HospitalApproved
}

type InventoryUnit struct {
	ID                   string          `db:"id" json:"id"`
	HospitalID           string          `db:"hospital_id" json:"hospital_id"`
	BloodType            BloodType       `db:"blood_type" json:"blood_type"`
	DonationType         DonationType    `db:"donation_type" json:"donation_type"`
	UnitsCount           int             `db:"units_count" json:"units_count"`
	CollectionDate       time.Time       `db:"collection_date" json:"collection_date"`
	ExpiryDate           time.Time       `db:"expiry_date" json:"expiry_date"`
	Status               InventoryStatus `db:"status" json:"status"`
	ReservedForRequestID *string         `db:"reserved_for_request_id" json:"reserved_for_request_id,omitempty"`
	ReservedAt           *time.Time      `db:"reserved_at" json:"reserved_at,omitempty"`
	UsedAt               *time.Time      `db:"used_at" json:"used_at,omitempty"`
	DiscardedAt          *time.Time      `db:"discarded_at" json:"discarded_at,omitempty"`
	DiscardReason        *string         `db:"discard_reason" json:"discard_reason,omitempty"`
	BatchNumber          *string         `db:"batch_number" json:"batch_number,omitempty"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
}

type BloodRequest struct {
	ID               string        `db:"id" json:"id"`
	Source           RequestSource `db:"source" json:"source"`
	RequestorID      string        `db:"requestor_id" json:"requestor_id"`
	HospitalID       string        `db:"hospital_id" json:"hospital_id"`
	BloodType        BloodType     `db:"blood_type" json:"blood_type"`
	DonationType     DonationType  `db:"donation_type" json:"donation_type"`
	UnitsNeeded      *int          `db:"units_needed" json:"units_needed,omitempty"`
	UnitsFulfilled   int           `db:"units_fulfilled" json:"units_fulfilled"`
	Urgency          Urgency       `db:"urgency" json:"urgency"`
	Status           RequestStatus `db:"status" json:"status"`
	RequiredBy       *time.Time    `db:"required_by" json:"required_by,omitempty"`
	PatientName      *string       `db:"patient_name" json:"patient_name,omitempty"`
	PatientAge       *int          `db:"patient_age" json:"patient_age,omitempty"`
	MedicalCondition *string       `db:"medical_condition" json:"medical_condition,omitempty"`
	Notes            *string       `db:"notes" json:"notes,omitempty"`
	RedirectedBy     *string       `db:"redirected_by" json:"redirected_by,omitempty"`
	RedirectedTo     *string       `db:"redirected_to" json:"redirected_to,omitempty"`
	FulfilledAt      *time.Time    `db:"fulfilled_at" json:"fulfilled_at,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`

	Matches         []MatchEntry `db:"-" json:"matches,omitempty"`
	AssignedUnitIDs []string     `db:"-" json:"assigned_unit_ids,omitempty"`
}

// RemainingUnits is the number of units still missing, or nil for unit-less requests.
func (r *BloodRequest) RemainingUnits() *int {
	if r.UnitsNeeded == nil {
		return nil
	}

	remaining := *r.UnitsNeeded - r.UnitsFulfilled
	if remaining < 0 {
		remaining = 0
	}

	return &remaining
}

type MatchEntry struct {
	RequestID     string      `db:"request_id" json:"request_id"`
	DonorID       string      `db:"donor_id" json:"donor_id"`
	Status        MatchStatus `db:"status" json:"status"`
	NotifiedAt    time.Time   `db:"notified_at" json:"notified_at"`
	RespondedAt   *time.Time  `db:"responded_at" json:"responded_at,omitempty"`
	DeclineReason *string     `db:"decline_reason" json:"decline_reason,omitempty"`
}

type Donation struct {
	ID            string       `db:"id" json:"id"`
	DonorID       string       `db:"donor_id" json:"donor_id"`
	HospitalID    string       `db:"hospital_id" json:"hospital_id"`
	RequestID     *string      `db:"request_id" json:"request_id,omitempty"`
	BloodType     BloodType    `db:"blood_type" json:"blood_type"`
	DonationType  DonationType `db:"donation_type" json:"donation_type"`
	QuantityML    int          `db:"quantity_ml" json:"quantity_ml"`
	DonationDate  time.Time    `db:"donation_date" json:"donation_date"`
	PointsAwarded int          `db:"points_awarded" json:"points_awarded"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

type RequestRedirect struct {
	ID             string    `db:"id" json:"id"`
	RequestID      string    `db:"request_id" json:"request_id"`
	FromHospitalID string    `db:"from_hospital_id" json:"from_hospital_id"`
	ToHospitalID   string    `db:"to_hospital_id" json:"to_hospital_id"`
	RedirectedBy   string    `db:"redirected_by" json:"redirected_by"`
	RedirectedAt   time.Time `db:"redirected_at" json:"redirected_at"`
}

type Broadcast struct {
	ID               string         `db:"id" json:"id"`
	SentBy           string         `db:"sent_by" json:"sent_by"`
	Title            string         `db:"title" json:"title"`
	Message          string         `db:"message" json:"message"`
	TargetBloodTypes pq.StringArray `db:"target_blood_types" json:"target_blood_types"`
	TargetCity       *string        `db:"target_city" json:"target_city,omitempty"`
	TotalRecipients  int            `db:"total_recipients" json:"total_recipients"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

type RequestFilter struct {
	HospitalID string
	Status     RequestStatus
	BloodType  BloodType
	Urgency    Urgency
	Limit      uint64
	Offset     uint64
}

type InventoryFilter struct {
	Status    InventoryStatus
	BloodType BloodType
}

// InventorySummary is the count of available, unexpired units for one blood type.
type InventorySummary struct {
	BloodType BloodType `db:"blood_type" json:"blood_type"`
	Units     int       `db:"units" json:"units"`
}

type BloodTypeDemand struct {
	BloodType     BloodType `db:"blood_type" json:"blood_type"`
	TotalRequests int       `db:"total_requests" json:"total_requests"`
	UnitsNeeded   int       `db:"units_needed" json:"units_needed"`
	Fulfilled     int       `db:"fulfilled" json:"fulfilled"`
}

type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

func RiskLevelFor(availableUnits int) RiskLevel {
	switch {
	case availableUnits == 0:
		return RiskCritical
	case availableUnits < 5:
		return RiskHigh
	case availableUnits < 15:
		return RiskMedium
	default:
		return RiskLow
	}
}

type ShortageEntry struct {
	BloodType       BloodType `json:"blood_type"`
	AvailableUnits  int       `json:"available_units"`
	RecentDemand    int       `json:"recent_demand"`
	Shortfall       int       `json:"shortfall"`
	FulfillmentRate int       `json:"fulfillment_rate"`
	RiskLevel       RiskLevel `json:"risk_level"`
}

type ShortageReport struct {
	Shortages     []ShortageEntry `json:"shortages"`
	CriticalTypes []BloodType     `json:"critical_types"`
	HighRiskTypes []BloodType     `json:"high_risk_types"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// DonorRequestView is what a donor is allowed to see about a request.
type DonorRequestView struct {
	ID           string        `json:"id"`
	HospitalID   string        `json:"hospital_id"`
	BloodType    BloodType     `json:"blood_type"`
	DonationType DonationType  `json:"donation_type"`
	UnitsNeeded  *int          `json:"units_needed,omitempty"`
	Urgency      Urgency       `json:"urgency"`
	Status       RequestStatus `json:"status"`
	RequiredBy   *time.Time    `json:"required_by,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	MatchStatus  MatchStatus   `json:"match_status,omitempty"`
	RespondedAt  *time.Time    `json:"responded_at,omitempty"`
}

// Sanitize projects a request for a donor. Requestor identity, patient data,
// the match list and the assigned inventory never leave this function.
func Sanitize(r *BloodRequest, match *MatchEntry) DonorRequestView {
	view := DonorRequestView{
		ID:           r.ID,
		HospitalID:   r.HospitalID,
		BloodType:    r.BloodType,
		DonationType: r.DonationType,
		UnitsNeeded:  r.UnitsNeeded,
		Urgency:      r.Urgency,
		Status:       r.Status,
		RequiredBy:   r.RequiredBy,
		CreatedAt:    r.CreatedAt,
	}

	if match != nil {
		view.MatchStatus = match.Status
		view.RespondedAt = match.RespondedAt
	}

	return view
}
