package http

import (
	"context"
	"time"

	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/YusovID/bloodbank-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type EligibilityServiceMock struct {
	mock.Mock
}

func (m *EligibilityServiceMock) RegisterDonor(ctx context.Context, actor domain.Actor, in service.RegisterDonorInput) (*domain.Donor, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *EligibilityServiceMock) GetDonor(ctx context.Context, actor domain.Actor, donorID string) (*domain.Donor, error) {
	args := m.Called(ctx, actor, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Donor), args.Error(1)
}

func (m *EligibilityServiceMock) RecordDonation(ctx context.Context, actor domain.Actor, in service.RecordDonationInput) (*service.DonationResult, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.DonationResult), args.Error(1)
}

func (m *EligibilityServiceMock) ListDonations(ctx context.Context, actor domain.Actor, donorID string) ([]domain.Donation, error) {
	args := m.Called(ctx, actor, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *EligibilityServiceMock) CheckEligibility(ctx context.Context, actor domain.Actor, donorID string, now time.Time) (*domain.Eligibility, error) {
	args := m.Called(ctx, actor, donorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Eligibility), args.Error(1)
}

func (m *EligibilityServiceMock) RestorationSweep(ctx context.Context, now time.Time) (*service.SweepResult, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.SweepResult), args.Error(1)
}

type HospitalServiceMock struct {
	mock.Mock
}

func (m *HospitalServiceMock) RegisterHospital(ctx context.Context, actor domain.Actor, name, city string) (*domain.Hospital, error) {
	args := m.Called(ctx, actor, name, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Hospital), args.Error(1)
}

func (m *HospitalServiceMock) ApproveHospital(ctx context.Context, actor domain.Actor, hospitalID string) (*service.HospitalResult, error) {
	args := m.Called(ctx, actor, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.HospitalResult), args.Error(1)
}

func (m *HospitalServiceMock) RejectHospital(ctx context.Context, actor domain.Actor, hospitalID, reason string) (*service.HospitalResult, error) {
	args := m.Called(ctx, actor, hospitalID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.HospitalResult), args.Error(1)
}

func (m *HospitalServiceMock) SuspendHospital(ctx context.Context, actor domain.Actor, hospitalID, reason string) (*service.HospitalResult, error) {
	args := m.Called(ctx, actor, hospitalID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.HospitalResult), args.Error(1)
}

func (m *HospitalServiceMock) GetHospital(ctx context.Context, actor domain.Actor, hospitalID string) (*domain.Hospital, error) {
	args := m.Called(ctx, actor, hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Hospital), args.Error(1)
}

type InventoryServiceMock struct {
	mock.Mock
}

func (m *InventoryServiceMock) AddUnits(ctx context.Context, actor domain.Actor, in service.AddUnitsInput) (*domain.InventoryUnit, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InventoryUnit), args.Error(1)
}

func (m *InventoryServiceMock) Discard(ctx context.Context, actor domain.Actor, unitID, reason string) (*domain.InventoryUnit, error) {
	args := m.Called(ctx, actor, unitID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.InventoryUnit), args.Error(1)
}

func (m *InventoryServiceMock) ListUnits(
	ctx context.Context, actor domain.Actor, hospitalID string, filter domain.InventoryFilter,
) (*service.InventoryView, error) {
	args := m.Called(ctx, actor, hospitalID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.InventoryView), args.Error(1)
}

func (m *InventoryServiceMock) ExpireSweep(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

type RequestServiceMock struct {
	mock.Mock
}

func (m *RequestServiceMock) result(args mock.Arguments) (*service.RequestResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RequestResult), args.Error(1)
}

func (m *RequestServiceMock) CreateRequest(ctx context.Context, actor domain.Actor, in service.CreateRequestInput) (*service.RequestResult, error) {
	return m.result(m.Called(ctx, actor, in))
}

func (m *RequestServiceMock) GetRequest(ctx context.Context, actor domain.Actor, requestID string) (*service.RequestView, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RequestView), args.Error(1)
}

func (m *RequestServiceMock) ListRequests(ctx context.Context, actor domain.Actor, filter domain.RequestFilter) ([]domain.BloodRequest, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BloodRequest), args.Error(1)
}

func (m *RequestServiceMock) Cancel(ctx context.Context, actor domain.Actor, requestID string) (*service.RequestResult, error) {
	return m.result(m.Called(ctx, actor, requestID))
}

func (m *RequestServiceMock) MarkUnavailable(ctx context.Context, actor domain.Actor, requestID, reason string) (*service.RequestResult, error) {
	return m.result(m.Called(ctx, actor, requestID, reason))
}

func (m *RequestServiceMock) ConfirmFulfillment(ctx context.Context, actor domain.Actor, requestID string) (*service.RequestResult, error) {
	return m.result(m.Called(ctx, actor, requestID))
}

func (m *RequestServiceMock) Redirect(ctx context.Context, actor domain.Actor, requestID, targetHospitalID string) (*service.RequestResult, error) {
	return m.result(m.Called(ctx, actor, requestID, targetHospitalID))
}

type MatchingServiceMock struct {
	mock.Mock
}

func (m *MatchingServiceMock) Notify(ctx context.Context, actor domain.Actor, requestID string, donorIDs []string) (*service.NotifyResult, error) {
	args := m.Called(ctx, actor, requestID, donorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.NotifyResult), args.Error(1)
}

func (m *MatchingServiceMock) NotifyCompatibleDonors(ctx context.Context, actor domain.Actor, requestID string, limit uint64) (*service.NotifyResult, error) {
	args := m.Called(ctx, actor, requestID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.NotifyResult), args.Error(1)
}

func (m *MatchingServiceMock) Respond(
	ctx context.Context, actor domain.Actor, requestID, donorID string, decision service.Decision, reason *string,
) (*service.RespondResult, error) {
	args := m.Called(ctx, actor, requestID, donorID, decision, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RespondResult), args.Error(1)
}

func (m *MatchingServiceMock) AcceptedRequests(ctx context.Context, actor domain.Actor, donorID string) ([]domain.DonorRequestView, error) {
	args := m.Called(ctx, actor, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.DonorRequestView), args.Error(1)
}

type AllocationServiceMock struct {
	mock.Mock
}

func (m *AllocationServiceMock) AssignInventory(ctx context.Context, actor domain.Actor, requestID string, unitIDs []string) (*service.RequestResult, error) {
	args := m.Called(ctx, actor, requestID, unitIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RequestResult), args.Error(1)
}

type BroadcastServiceMock struct {
	mock.Mock
}

func (m *BroadcastServiceMock) SendBroadcast(ctx context.Context, actor domain.Actor, in service.SendBroadcastInput) (*service.BroadcastResult, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.BroadcastResult), args.Error(1)
}

type ReportServiceMock struct {
	mock.Mock
}

func (m *ReportServiceMock) ShortageReport(ctx context.Context, actor domain.Actor, now time.Time) (*domain.ShortageReport, error) {
	args := m.Called(ctx, actor, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ShortageReport), args.Error(1)
}

type AppointmentServiceMock struct {
	mock.Mock
}

func (m *AppointmentServiceMock) ScheduleAppointment(ctx context.Context, actor domain.Actor, in service.ScheduleAppointmentInput) (*service.AppointmentResult, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AppointmentResult), args.Error(1)
}

func (m *AppointmentServiceMock) GetAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, actor, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *AppointmentServiceMock) ListAppointments(ctx context.Context, actor domain.Actor, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *AppointmentServiceMock) ConfirmAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*service.AppointmentResult, error) {
	args := m.Called(ctx, actor, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AppointmentResult), args.Error(1)
}

func (m *AppointmentServiceMock) RescheduleAppointment(ctx context.Context, actor domain.Actor, appointmentID string, scheduledAt time.Time) (*service.AppointmentResult, error) {
	args := m.Called(ctx, actor, appointmentID, scheduledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AppointmentResult), args.Error(1)
}

func (m *AppointmentServiceMock) CancelAppointment(ctx context.Context, actor domain.Actor, appointmentID, reason string) (*service.AppointmentResult, error) {
	args := m.Called(ctx, actor, appointmentID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AppointmentResult), args.Error(1)
}

func (m *AppointmentServiceMock) CompleteAppointment(ctx context.Context, actor domain.Actor, appointmentID string) (*service.AppointmentResult, error) {
	args := m.Called(ctx, actor, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AppointmentResult), args.Error(1)
}

func (m *AppointmentServiceMock) ReminderSweep(ctx context.Context, now time.Time) (*service.ReminderSweepResult, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ReminderSweepResult), args.Error(1)
}

type NotificationServiceMock struct {
	mock.Mock
}

func (m *NotificationServiceMock) GetNotifications(ctx context.Context, actor domain.Actor) (*domain.NotificationInbox, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.NotificationInbox), args.Error(1)
}

func (m *NotificationServiceMock) MarkNotificationRead(ctx context.Context, actor domain.Actor, notificationID string) error {
	args := m.Called(ctx, actor, notificationID)
	return args.Error(0)
}
