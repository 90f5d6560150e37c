package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
	sqlx.ExtContext
}

var _ Transactor = (*TransactorMock)(nil)

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type DonorRepositoryMock struct {
	mock.Mock
}

var _ repository.DonorRepository = (*DonorRepositoryMock)(nil)

func (m *DonorRepositoryMock) CreateDonor(ctx context.Context, tx *sqlx.Tx, donor *domain.Donor) error {
	args := m.Called(ctx, tx, donor)
	return args.Error(0)
}

func (m *DonorRepositoryMock) GetDonorByID(ctx context.Context, ext sqlx.ExtContext, donorID string) (*domain.Donor, error) {
	args := m.Called(ctx, ext, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *DonorRepositoryMock) GetDonorByIDWithLock(ctx context.Context, tx *sqlx.Tx, donorID string) (*domain.Donor, error) {
	args := m.Called(ctx, tx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *DonorRepositoryMock) GetDonorsByIDs(ctx context.Context, ext sqlx.ExtContext, donorIDs []string) ([]domain.Donor, error) {
	args := m.Called(ctx, ext, donorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *DonorRepositoryMock) ApplyDonation(ctx context.Context, tx *sqlx.Tx, donorID string, applied repository.DonationApplied) (int, error) {
	args := m.Called(ctx, tx, donorID, applied)
	return args.Int(0), args.Error(1)
}

func (m *DonorRepositoryMock) AddBadge(ctx context.Context, tx *sqlx.Tx, donorID string, badge string) (bool, error) {
	args := m.Called(ctx, tx, donorID, badge)
	return args.Bool(0), args.Error(1)
}

func (m *DonorRepositoryMock) SetEligibility(ctx context.Context, ext sqlx.ExtContext, donorID string, eligible bool, now time.Time) (bool, error) {
	args := m.Called(ctx, ext, donorID, eligible, now)
	return args.Bool(0), args.Error(1)
}

func (m *DonorRepositoryMock) ListRestorationCandidates(
	ctx context.Context,
	now time.Time,
	after *repository.RestorationCandidate,
	limit uint64,
) ([]repository.RestorationCandidate, error) {
	args := m.Called(ctx, now, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]repository.RestorationCandidate), args.Error(1)
}

func (m *DonorRepositoryMock) FindCandidates(ctx context.Context, ext sqlx.ExtContext, filter repository.DonorCandidateFilter) ([]domain.Donor, error) {
	args := m.Called(ctx, ext, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Donor), args.Error(1)
}

func (m *DonorRepositoryMock) ListDonorIDsForBroadcast(ctx context.Context, ext sqlx.ExtContext, bloodTypes []string, city *string) ([]string, error) {
	args := m.Called(ctx, ext, bloodTypes, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

type InventoryRepositoryMock struct {
	mock.Mock
}

var _ repository.InventoryRepository = (*InventoryRepositoryMock)(nil)

func (m *InventoryRepositoryMock) CreateUnit(ctx context.Context, tx *sqlx.Tx, unit *domain.InventoryUnit) error {
	args := m.Called(ctx, tx, unit)
	return args.Error(0)
}

func (m *InventoryRepositoryMock) GetUnitByID(ctx context.Context, ext sqlx.ExtContext, unitID string) (*domain.InventoryUnit, error) {
	args := m.Called(ctx, ext, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InventoryUnit), args.Error(1)
}

func (m *InventoryRepositoryMock) GetUnitsWithLock(ctx context.Context, tx *sqlx.Tx, unitIDs []string) ([]domain.InventoryUnit, error) {
	args := m.Called(ctx, tx, unitIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.InventoryUnit), args.Error(1)
}

func (m *InventoryRepositoryMock) ReserveUnits(ctx context.Context, tx *sqlx.Tx, unitIDs []string, requestID string, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, unitIDs, requestID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InventoryRepositoryMock) ReleaseUnits(ctx context.Context, tx *sqlx.Tx, requestID string) ([]string, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *InventoryRepositoryMock) ConsumeUnits(ctx context.Context, tx *sqlx.Tx, requestID string, now time.Time) ([]string, error) {
	args := m.Called(ctx, tx, requestID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *InventoryRepositoryMock) ExpireUnits(ctx context.Context, ext sqlx.ExtContext, now time.Time) ([]string, error) {
	args := m.Called(ctx, ext, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *InventoryRepositoryMock) DiscardUnit(ctx context.Context, tx *sqlx.Tx, unitID string, reason string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, unitID, reason, now)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepositoryMock) ListUnits(ctx context.Context, hospitalID string, filter domain.InventoryFilter) ([]domain.InventoryUnit, error) {
	args := m.Called(ctx, hospitalID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.InventoryUnit), args.Error(1)
}

func (m *InventoryRepositoryMock) ListUnitIDsByRequest(ctx context.Context, ext sqlx.ExtContext, requestID string) ([]string, error) {
	args := m.Called(ctx, ext, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *InventoryRepositoryMock) Summary(ctx context.Context, hospitalID string, now time.Time) ([]domain.InventorySummary, error) {
	args := m.Called(ctx, hospitalID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.InventorySummary), args.Error(1)
}

type RequestRepositoryMock struct {
	mock.Mock
}

var (
	_ repository.RequestRepository = (*RequestRepositoryMock)(nil)
	_ repository.MatchRepository   = (*RequestRepositoryMock)(nil)
)

func (m *RequestRepositoryMock) CreateRequest(ctx context.Context, tx *sqlx.Tx, request *domain.BloodRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

func (m *RequestRepositoryMock) GetRequestByID(ctx context.Context, ext sqlx.ExtContext, requestID string) (*domain.BloodRequest, error) {
	args := m.Called(ctx, ext, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BloodRequest), args.Error(1)
}

func (m *RequestRepositoryMock) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.BloodRequest, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BloodRequest), args.Error(1)
}

func (m *RequestRepositoryMock) GetRequestsByIDs(ctx context.Context, ext sqlx.ExtContext, requestIDs []string) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, ext, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

func (m *RequestRepositoryMock) UpdateRequest(ctx context.Context, tx *sqlx.Tx, request *domain.BloodRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

func (m *RequestRepositoryMock) ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

func (m *RequestRepositoryMock) CreateRedirect(ctx context.Context, tx *sqlx.Tx, redirect *domain.RequestRedirect) error {
	args := m.Called(ctx, tx, redirect)
	return args.Error(0)
}

func (m *RequestRepositoryMock) DemandSince(ctx context.Context, since time.Time) ([]domain.BloodTypeDemand, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BloodTypeDemand), args.Error(1)
}

func (m *RequestRepositoryMock) InsertMatches(ctx context.Context, tx *sqlx.Tx, requestID string, donorIDs []string, now time.Time) ([]string, error) {
	args := m.Called(ctx, tx, requestID, donorIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *RequestRepositoryMock) GetMatch(ctx context.Context, ext sqlx.ExtContext, requestID, donorID string) (*domain.MatchEntry, error) {
	args := m.Called(ctx, ext, requestID, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.MatchEntry), args.Error(1)
}

func (m *RequestRepositoryMock) RespondMatch(
	ctx context.Context, tx *sqlx.Tx, requestID, donorID string, status domain.MatchStatus, reason *string, now time.Time,
) (bool, error) {
	args := m.Called(ctx, tx, requestID, donorID, status, reason, now)
	return args.Bool(0), args.Error(1)
}

func (m *RequestRepositoryMock) MarkDonated(ctx context.Context, tx *sqlx.Tx, requestID, donorID string) (bool, error) {
	args := m.Called(ctx, tx, requestID, donorID)
	return args.Bool(0), args.Error(1)
}

func (m *RequestRepositoryMock) ListMatches(ctx context.Context, ext sqlx.ExtContext, requestID string) ([]domain.MatchEntry, error) {
	args := m.Called(ctx, ext, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.MatchEntry), args.Error(1)
}

func (m *RequestRepositoryMock) ListMatchesByDonor(ctx context.Context, donorID string, statuses []domain.MatchStatus) ([]domain.MatchEntry, error) {
	args := m.Called(ctx, donorID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.MatchEntry), args.Error(1)
}

type HospitalRepositoryMock struct {
	mock.Mock
}

var _ repository.HospitalRepository = (*HospitalRepositoryMock)(nil)

func (m *HospitalRepositoryMock) CreateHospital(ctx context.Context, tx *sqlx.Tx, hospital *domain.Hospital) error {
	args := m.Called(ctx, tx, hospital)
	return args.Error(0)
}

func (m *HospitalRepositoryMock) GetHospitalByID(ctx context.Context, ext sqlx.ExtContext, hospitalID string) (*domain.Hospital, error) {
	args := m.Called(ctx, ext, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Hospital), args.Error(1)
}

func (m *HospitalRepositoryMock) GetHospitalByIDWithLock(ctx context.Context, tx *sqlx.Tx, hospitalID string) (*domain.Hospital, error) {
	args := m.Called(ctx, tx, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Hospital), args.Error(1)
}

func (m *HospitalRepositoryMock) UpdateHospitalStatus(ctx context.Context, tx *sqlx.Tx, hospital *domain.Hospital) error {
	args := m.Called(ctx, tx, hospital)
	return args.Error(0)
}

func (m *HospitalRepositoryMock) IncrementRequestsFulfilled(ctx context.Context, tx *sqlx.Tx, hospitalID string) error {
	args := m.Called(ctx, tx, hospitalID)
	return args.Error(0)
}

func (m *HospitalRepositoryMock) IncrementDonationsProcessed(ctx context.Context, tx *sqlx.Tx, hospitalID string) error {
	args := m.Called(ctx, tx, hospitalID)
	return args.Error(0)
}

type DonationRepositoryMock struct {
	mock.Mock
}

var _ repository.DonationRepository = (*DonationRepositoryMock)(nil)

func (m *DonationRepositoryMock) CreateDonation(ctx context.Context, tx *sqlx.Tx, donation *domain.Donation) error {
	args := m.Called(ctx, tx, donation)
	return args.Error(0)
}

func (m *DonationRepositoryMock) ExistsForRequest(ctx context.Context, ext sqlx.ExtContext, donorID, requestID string) (bool, error) {
	args := m.Called(ctx, ext, donorID, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *DonationRepositoryMock) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Donation), args.Error(1)
}

type BroadcastRepositoryMock struct {
	mock.Mock
}

var _ repository.BroadcastRepository = (*BroadcastRepositoryMock)(nil)

func (m *BroadcastRepositoryMock) CreateBroadcast(ctx context.Context, tx *sqlx.Tx, broadcast *domain.Broadcast) error {
	args := m.Called(ctx, tx, broadcast)
	return args.Error(0)
}

type OutboxRepositoryMock struct {
	mock.Mock
}

var _ repository.OutboxRepository = (*OutboxRepositoryMock)(nil)

// Append records the event types only, so expectations stay readable.
func (m *OutboxRepositoryMock) Append(ctx context.Context, tx *sqlx.Tx, events ...domain.Event) error {
	types := make([]domain.EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}

	args := m.Called(ctx, tx, types)

	return args.Error(0)
}

func (m *OutboxRepositoryMock) FetchUnpublished(ctx context.Context, tx *sqlx.Tx, limit uint64) ([]domain.Event, error) {
	args := m.Called(ctx, tx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *OutboxRepositoryMock) MarkPublished(ctx context.Context, tx *sqlx.Tx, eventIDs []string, now time.Time) error {
	args := m.Called(ctx, tx, eventIDs, now)
	return args.Error(0)
}

func (m *OutboxRepositoryMock) RecordFailure(ctx context.Context, tx *sqlx.Tx, eventID, lastError string, maxAttempts int, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, eventID, lastError, maxAttempts, now)
	return args.Bool(0), args.Error(1)
}

type AppointmentRepositoryMock struct {
	mock.Mock
}

var _ repository.AppointmentRepository = (*AppointmentRepositoryMock)(nil)

func (m *AppointmentRepositoryMock) CreateAppointment(ctx context.Context, tx *sqlx.Tx, appointment *domain.Appointment) error {
	args := m.Called(ctx, tx, appointment)
	return args.Error(0)
}

func (m *AppointmentRepositoryMock) GetAppointmentByID(ctx context.Context, ext sqlx.ExtContext, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, ext, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *AppointmentRepositoryMock) GetAppointmentByIDWithLock(ctx context.Context, tx *sqlx.Tx, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, tx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *AppointmentRepositoryMock) UpdateAppointment(ctx context.Context, tx *sqlx.Tx, appointment *domain.Appointment) error {
	args := m.Called(ctx, tx, appointment)
	return args.Error(0)
}

func (m *AppointmentRepositoryMock) ListAppointments(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *AppointmentRepositoryMock) ListDueReminders(ctx context.Context, from, to time.Time, limit uint64) ([]domain.Appointment, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *AppointmentRepositoryMock) MarkReminderSent(ctx context.Context, tx *sqlx.Tx, appointmentID string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, appointmentID, now)
	return args.Bool(0), args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

var _ repository.NotificationRepository = (*NotificationRepositoryMock)(nil)

func (m *NotificationRepositoryMock) CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) (int64, error) {
	args := m.Called(ctx, tx, notifications)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepositoryMock) ListByUser(ctx context.Context, userID string, now time.Time, limit uint64) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) CountUnread(ctx context.Context, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, notificationID, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, notificationID, userID, now)
	return args.Bool(0), args.Error(1)
}
