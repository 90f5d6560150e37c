// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

// DonationApplied carries the donor fields changed by a logged donation.
type DonationApplied struct {
	DonationDate     time.Time
	NextEligibleDate time.Time
	Points           int
	UpdatedAt        time.Time
}

// RestorationCandidate is a donor due for restoration. It doubles as the keyset cursor
// of the next page.
type RestorationCandidate struct {
	ID               string    `db:"id"`
	NextEligibleDate time.Time `db:"next_eligible_date"`
}

// DonorCandidateFilter narrows the donor pool searched for a request.
type DonorCandidateFilter struct {
	BloodTypes       []domain.BloodType
	EligibleAt       time.Time
	ExcludeRequestID string
	Limit            uint64
}

// DonorRepository defines the contract for donor profiles and their eligibility cache.
type DonorRepository interface {
	// CreateDonor inserts a donor profile.
	// It returns *apperrors.AlreadyExistsError if a donor with the same id exists.
	CreateDonor(ctx context.Context, tx *sqlx.Tx, donor *domain.Donor) error

	// GetDonorByID returns apperrors.ErrNotFound if the donor does not exist.
	GetDonorByID(ctx context.Context, ext sqlx.ExtContext, donorID string) (*domain.Donor, error)

	// GetDonorByIDWithLock reads the donor and acquires a row-level lock ("FOR UPDATE").
	GetDonorByIDWithLock(ctx context.Context, tx *sqlx.Tx, donorID string) (*domain.Donor, error)

	// GetDonorsByIDs returns the donors that exist among donorIDs.
	GetDonorsByIDs(ctx context.Context, ext sqlx.ExtContext, donorIDs []string) ([]domain.Donor, error)

	// ApplyDonation increments the donor counters in place and returns the new total donation count.
	ApplyDonation(ctx context.Context, tx *sqlx.Tx, donorID string, applied DonationApplied) (int, error)

	// AddBadge appends badge unless the donor already holds it. It reports whether the badge was added.
	AddBadge(ctx context.Context, tx *sqlx.Tx, donorID string, badge string) (bool, error)

	// SetEligibility flips the cached is_eligible flag when, and only when, the stored
	// next eligible date agrees with the new value at now. It reports whether a row changed.
	SetEligibility(ctx context.Context, ext sqlx.ExtContext, donorID string, eligible bool, now time.Time) (bool, error)

	// ListRestorationCandidates returns donors cached as ineligible whose cooldown ended at or before now,
	// ordered by (next_eligible_date, id) and starting strictly after the optional cursor.
	ListRestorationCandidates(ctx context.Context, now time.Time, after *RestorationCandidate, limit uint64) ([]RestorationCandidate, error)

	// FindCandidates returns available donors with notifications enabled whose blood type is in the
	// filter and whose cooldown ended, excluding donors already matched to ExcludeRequestID.
	FindCandidates(ctx context.Context, ext sqlx.ExtContext, filter DonorCandidateFilter) ([]domain.Donor, error)

	// ListDonorIDsForBroadcast returns donor ids matching the optional blood type and city targets.
	ListDonorIDsForBroadcast(ctx context.Context, ext sqlx.ExtContext, bloodTypes []string, city *string) ([]string, error)
}

// InventoryRepository defines the contract for the inventory ledger.
type InventoryRepository interface {
	// CreateUnit inserts an available inventory unit.
	// It returns apperrors.ErrNotFound if the hospital does not exist.
	CreateUnit(ctx context.Context, tx *sqlx.Tx, unit *domain.InventoryUnit) error

	// GetUnitByID returns apperrors.ErrNotFound if the unit does not exist.
	GetUnitByID(ctx context.Context, ext sqlx.ExtContext, unitID string) (*domain.InventoryUnit, error)

	// GetUnitsWithLock reads the listed units ordered by id and locks them ("FOR UPDATE").
	// Missing ids are simply absent from the result.
	GetUnitsWithLock(ctx context.Context, tx *sqlx.Tx, unitIDs []string) ([]domain.InventoryUnit, error)

	// ReserveUnits flips the listed units from available to reserved for requestID.
	// Only units still available and unexpired at now are touched; the affected row count is returned.
	ReserveUnits(ctx context.Context, tx *sqlx.Tx, unitIDs []string, requestID string, now time.Time) (int64, error)

	// ReleaseUnits moves every unit reserved for requestID back to available and returns their ids.
	ReleaseUnits(ctx context.Context, tx *sqlx.Tx, requestID string) ([]string, error)

	// ConsumeUnits moves every unit reserved for requestID to used and returns their ids.
	ConsumeUnits(ctx context.Context, tx *sqlx.Tx, requestID string, now time.Time) ([]string, error)

	// ExpireUnits moves available units with expiry_date at or before now to expired and returns their ids.
	ExpireUnits(ctx context.Context, ext sqlx.ExtContext, now time.Time) ([]string, error)

	// DiscardUnit moves an available unit to discarded. It reports whether the row changed.
	DiscardUnit(ctx context.Context, tx *sqlx.Tx, unitID string, reason string, now time.Time) (bool, error)

	// ListUnits returns the units of a hospital, newest first.
	ListUnits(ctx context.Context, hospitalID string, filter domain.InventoryFilter) ([]domain.InventoryUnit, error)

	// ListUnitIDsByRequest returns ids of units reserved for or used by requestID.
	ListUnitIDsByRequest(ctx context.Context, ext sqlx.ExtContext, requestID string) ([]string, error)

	// Summary sums available, unexpired units per blood type. An empty hospitalID covers all hospitals.
	Summary(ctx context.Context, hospitalID string, now time.Time) ([]domain.InventorySummary, error)
}

// RequestRepository defines the contract for blood requests and their redirect history.
type RequestRepository interface {
	// CreateRequest inserts a blood request.
	// It returns apperrors.ErrNotFound if the hospital does not exist.
	CreateRequest(ctx context.Context, tx *sqlx.Tx, request *domain.BloodRequest) error

	// GetRequestByID returns apperrors.ErrNotFound if the request does not exist.
	GetRequestByID(ctx context.Context, ext sqlx.ExtContext, requestID string) (*domain.BloodRequest, error)

	// GetRequestByIDWithLock reads the request and acquires a row-level lock ("FOR UPDATE").
	GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.BloodRequest, error)

	// GetRequestsByIDs returns the requests that exist among requestIDs.
	GetRequestsByIDs(ctx context.Context, ext sqlx.ExtContext, requestIDs []string) ([]domain.BloodRequest, error)

	// UpdateRequest persists the mutable lifecycle fields of a locked request.
	UpdateRequest(ctx context.Context, tx *sqlx.Tx, request *domain.BloodRequest) error

	// ListRequests returns requests matching filter, most urgent and newest first.
	ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.BloodRequest, error)

	// CreateRedirect appends a redirect audit row.
	CreateRedirect(ctx context.Context, tx *sqlx.Tx, redirect *domain.RequestRedirect) error

	// DemandSince aggregates requests created at or after since per blood type.
	DemandSince(ctx context.Context, since time.Time) ([]domain.BloodTypeDemand, error)
}

// MatchRepository defines the contract for donor match entries of a request.
type MatchRepository interface {
	// InsertMatches adds notified entries for the donors not yet matched to requestID
	// and returns the ids of the donors actually inserted.
	InsertMatches(ctx context.Context, tx *sqlx.Tx, requestID string, donorIDs []string, now time.Time) ([]string, error)

	// GetMatch returns apperrors.ErrNotFound if the donor is not matched to the request.
	GetMatch(ctx context.Context, ext sqlx.ExtContext, requestID, donorID string) (*domain.MatchEntry, error)

	// RespondMatch moves a notified entry to status. It reports whether the row changed.
	RespondMatch(ctx context.Context, tx *sqlx.Tx, requestID, donorID string, status domain.MatchStatus, reason *string, now time.Time) (bool, error)

	// MarkDonated moves an accepted entry to donated. It reports whether the row changed.
	MarkDonated(ctx context.Context, tx *sqlx.Tx, requestID, donorID string) (bool, error)

	// ListMatches returns all entries of a request in notification order.
	ListMatches(ctx context.Context, ext sqlx.ExtContext, requestID string) ([]domain.MatchEntry, error)

	// ListMatchesByDonor returns a donor's entries with one of the given statuses.
	ListMatchesByDonor(ctx context.Context, donorID string, statuses []domain.MatchStatus) ([]domain.MatchEntry, error)
}

// HospitalRepository defines the contract for hospitals and their counters.
type HospitalRepository interface {
	// CreateHospital inserts a hospital in the pending state.
	CreateHospital(ctx context.Context, tx *sqlx.Tx, hospital *domain.Hospital) error

	// GetHospitalByID returns apperrors.ErrNotFound if the hospital does not exist.
	GetHospitalByID(ctx context.Context, ext sqlx.ExtContext, hospitalID string) (*domain.Hospital, error)

	// GetHospitalByIDWithLock reads the hospital and acquires a row-level lock ("FOR UPDATE").
	GetHospitalByIDWithLock(ctx context.Context, tx *sqlx.Tx, hospitalID string) (*domain.Hospital, error)

	// UpdateHospitalStatus persists the review fields of a locked hospital.
	UpdateHospitalStatus(ctx context.Context, tx *sqlx.Tx, hospital *domain.Hospital) error

	// IncrementRequestsFulfilled adds one to total_requests_fulfilled.
	IncrementRequestsFulfilled(ctx context.Context, tx *sqlx.Tx, hospitalID string) error

	// IncrementDonationsProcessed adds one to total_donations_processed.
	IncrementDonationsProcessed(ctx context.Context, tx *sqlx.Tx, hospitalID string) error
}

// DonationRepository defines the contract for the donation log.
type DonationRepository interface {
	// CreateDonation inserts a donation.
	// It returns apperrors.ErrDonationLogged if the donor already logged a donation for the same request.
	CreateDonation(ctx context.Context, tx *sqlx.Tx, donation *domain.Donation) error

	// ExistsForRequest reports whether a donation by donorID for requestID is already logged.
	ExistsForRequest(ctx context.Context, ext sqlx.ExtContext, donorID, requestID string) (bool, error)

	// ListByDonor returns a donor's donations, newest first.
	ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error)
}

// BroadcastRepository defines the contract for stored admin broadcasts.
type BroadcastRepository interface {
	CreateBroadcast(ctx context.Context, tx *sqlx.Tx, broadcast *domain.Broadcast) error
}

// OutboxRepository defines the contract for the transactional event outbox.
type OutboxRepository interface {
	// Append stores events in the same transaction as the state change that produced them.
	Append(ctx context.Context, tx *sqlx.Tx, events ...domain.Event) error

	// FetchUnpublished locks up to limit unpublished events, oldest first ("FOR UPDATE SKIP LOCKED"),
	// so concurrent relays never pick the same rows.
	FetchUnpublished(ctx context.Context, tx *sqlx.Tx, limit uint64) ([]domain.Event, error)

	// MarkPublished stamps published_at on the given events.
	MarkPublished(ctx context.Context, tx *sqlx.Tx, eventIDs []string, now time.Time) error

	// RecordFailure counts a failed delivery of eventID and stores lastError. Once the event has
	// failed maxAttempts times it is dead-lettered (failed_at is set) and FetchUnpublished skips it.
	// It reports whether the event was dead-lettered.
	RecordFailure(ctx context.Context, tx *sqlx.Tx, eventID, lastError string, maxAttempts int, now time.Time) (bool, error)
}

// AppointmentRepository defines the contract for donation appointments.
type AppointmentRepository interface {
	// CreateAppointment inserts an appointment.
	// It returns apperrors.ErrNotFound if the donor, hospital or request does not exist.
	CreateAppointment(ctx context.Context, tx *sqlx.Tx, appointment *domain.Appointment) error

	// GetAppointmentByID returns apperrors.ErrNotFound if the appointment does not exist.
	GetAppointmentByID(ctx context.Context, ext sqlx.ExtContext, appointmentID string) (*domain.Appointment, error)

	// GetAppointmentByIDWithLock reads the appointment and acquires a row-level lock ("FOR UPDATE").
	GetAppointmentByIDWithLock(ctx context.Context, tx *sqlx.Tx, appointmentID string) (*domain.Appointment, error)

	// UpdateAppointment persists the lifecycle fields of a locked appointment.
	UpdateAppointment(ctx context.Context, tx *sqlx.Tx, appointment *domain.Appointment) error

	// ListAppointments returns appointments matching filter, soonest first.
	ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)

	// ListDueReminders returns remindable appointments scheduled in [from, to) that have no reminder yet.
	ListDueReminders(ctx context.Context, from, to time.Time, limit uint64) ([]domain.Appointment, error)

	// MarkReminderSent stamps reminder_sent_at when the appointment is still remindable and
	// unreminded. It reports whether the row changed.
	MarkReminderSent(ctx context.Context, tx *sqlx.Tx, appointmentID string, now time.Time) (bool, error)
}

// NotificationRepository defines the contract for the per-user notification inbox.
type NotificationRepository interface {
	// CreateNotifications inserts notifications, skipping any (event_id, user_id) pair already stored.
	// It returns the number of rows inserted.
	CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) (int64, error)

	// ListByUser returns a user's notifications not expired at now, newest first.
	ListByUser(ctx context.Context, userID string, now time.Time, limit uint64) ([]domain.Notification, error)

	// CountUnread counts a user's unread notifications not expired at now.
	CountUnread(ctx context.Context, userID string, now time.Time) (int, error)

	// MarkRead marks the notification read when it belongs to userID. It reports whether a row matched.
	MarkRead(ctx context.Context, notificationID, userID string, now time.Time) (bool, error)
}
