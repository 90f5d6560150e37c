package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/YusovID/bloodbank-service/internal/apperrors"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type appointmentMocks struct {
	transactor   *TransactorMock
	appointments *AppointmentRepositoryMock
	donors       *DonorRepositoryMock
	hospitals    *HospitalRepositoryMock
	matches      *RequestRepositoryMock
	outbox       *OutboxRepositoryMock
}

func newAppointmentMocks() *appointmentMocks {
	return &appointmentMocks{
		transactor:   new(TransactorMock),
		appointments: new(AppointmentRepositoryMock),
		donors:       new(DonorRepositoryMock),
		hospitals:    new(HospitalRepositoryMock),
		matches:      new(RequestRepositoryMock),
		outbox:       new(OutboxRepositoryMock),
	}
}

func (m *appointmentMocks) service() *AppointmentServiceImpl {
	return NewAppointmentService(newTestBase(m.transactor, m.outbox), m.appointments, m.donors, m.hospitals, m.matches)
}

func (m *appointmentMocks) assertExpectations(t *testing.T) {
	m.transactor.AssertExpectations(t)
	m.appointments.AssertExpectations(t)
	m.donors.AssertExpectations(t)
	m.hospitals.AssertExpectations(t)
	m.matches.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

func bookedAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:           "ap1",
		DonorID:      "d1",
		HospitalID:   "h1",
		ScheduledAt:  testNow.Add(72 * time.Hour),
		DonationType: domain.DonationWholeBlood,
		Status:       status,
		CreatedAt:    testNow.Add(-time.Hour),
		UpdatedAt:    testNow.Add(-time.Hour),
	}
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestAppointmentServiceImpl_ScheduleAppointment(t *testing.T) {
	ctx := context.Background()
	slot := testNow.Add(72 * time.Hour)

	testCases := []struct {
		name        string
		actor       domain.Actor
		input       ScheduleAppointmentInput
		setupMocks  func(t *testing.T, m *appointmentMocks)
		expectedErr error
	}{
		{
			name:  "Eligible donor books an approved hospital",
			actor: donorActor,
			input: ScheduleAppointmentInput{HospitalID: "h1", ScheduledAt: slot, Notes: strPtr("  first time  ")},
			setupMocks: func(t *testing.T, m *appointmentMocks) {
				tx := expectTx(t, m.transactor, true)
				m.donors.On("GetDonorByID", ctx, tx, "d1").Return(&domain.Donor{ID: "d1"}, nil).Once()
				m.hospitals.On("GetHospitalByID", ctx, tx, "h1").Return(approved("h1", "ha1"), nil).Once()
				m.appointments.On("CreateAppointment", ctx, tx, mock.MatchedBy(func(a *domain.Appointment) bool {
					return a.DonorID == "d1" && a.Status == domain.AppointmentScheduled &&
						a.DonationType == domain.DonationWholeBlood && *a.Notes == "first time"
				})).Return(nil).Once()
				m.outbox.On("Append", ctx, tx, []domain.EventType{domain.EventAppointmentScheduled}).Return(nil).Once()
			},
		},
		{
			name:  "Cooldown ends before the booked day",
			actor: donorActor,
			input: ScheduleAppointmentInput{HospitalID: "h1", ScheduledAt: slot},
			setupMocks: func(t *testing.T, m *appointmentMocks) {
				tx := expectTx(t, m.transactor, true)
				m.donors.On("GetDonorByID", ctx, tx, "d1").
					Return(&domain.Donor{ID: "d1", NextEligibleDate: timePtr(testNow.Add(48 * time.Hour))}, nil).Once()
				m.hospitals.On("GetHospitalByID", ctx, tx, "h1").Return(approved("h1", "ha1"), nil).Once()
				m.appointments.On("CreateAppointment", ctx, tx, mock.Anything).Return(nil).Once()
				m.outbox.On("Append", ctx, tx, []domain.EventType{domain.EventAppointmentScheduled}).Return(nil).Once()
			},
		},
		{
			name:  "Linked request with an accepted match",
			actor: donorActor,
			input: ScheduleAppointmentInput{HospitalID: "h1", RequestID: strPtr("r1"), ScheduledAt: slot},
			setupMocks: func(t *testing.T, m *appointmentMocks) {
				tx := expectTx(t, m.transactor, true)
				m.donors.On("GetDonorByID", ctx, tx, "d1").Return(&domain.Donor{ID: "d1"}, nil).Once()
				m.hospitals.On("GetHospitalByID", ctx, tx, "h1").Return(approved("h1", "ha1"), nil).Once()
				m.matches.On("GetMatch", ctx, tx, "r1", "d1").
					Return(&domain.MatchEntry{DonorID: "d1", Status: domain.MatchAccepted}, nil).Once()
				m.appointments.On("CreateAppointment", ctx, tx, mock.MatchedBy(func(a *domain.Appointment) bool {
					return a.RequestID != nil && *a.RequestID == "r1"
				})).Return(nil).Once()
				m.outbox.On("Append", ctx, tx, []domain.EventType{domain.EventAppointmentScheduled}).Return(nil).Once()
			},
		},
		{
			name:  "Linked request the donor has not accepted",
			actor: donorActor,
			input: ScheduleAppointmentInput{HospitalID: "h1", RequestID: strPtr("r1"), ScheduledAt: slot},
			setupMocks: func(t *testing.T, m *appointmentMocks) {
				tx := expectTx(t, m.transactor, false)
				m.donors.On("GetDonorByID", ctx, tx, "d1").Return(&domain.Donor{ID: "d1"}, nil).Once()
				m.hospitals.On("GetHospitalByID", ctx, tx, "h1").Return(approved("h1", "ha1"), nil).Once()
				m.matches.On("GetMatch", ctx, tx, "r1", "d1").
					Return(&domain.MatchEntry{DonorID: "d1", Status: domain.MatchNotified}, nil).Once()
			},
			expectedErr: apperrors.ErrConflict,
		},
		{
			name:  "Linked request the donor was never matched to",
			actor: donorActor,
			input: ScheduleAppointmentInput{HospitalID: "h1", RequestID: strPtr("r1"), ScheduledAt: slot},
			setupMocks: func(t *testing.T, m *appointmentMocks) {
				tx := expectTx(t, m.transactor, false)
				m.donors.On("GetDonorByID", ctx, tx, "d1").Return(&domain.Donor{ID: "d1"}, nil).Once()
				m.hospitals.On("GetHospitalByID", ctx, tx, "h1").Return(approved("h1", "ha1"), nil).Once()
				m.matches.On("GetMatch", ctx, tx, "r1", "d1").
					Return(nil, fmt.Errorf("get match: %w", apperrors.ErrNotFound)).Once()
			},
			expectedErr: apperrors.ErrNotMatched,
		},
		{
			name:  "Donor still in cooldown on the booked day",
			actor: donorActor,
			input: ScheduleAppointmentInput{HospitalID: "h1", ScheduledAt: slot},
			setupMocks: func(t *testing.T, m *appointmentMocks) {
				tx := expectTx(t, m.transactor, false)
				m.donors.On("GetDonorByID", ctx, tx, "d1").
					Return(&domain.Donor{ID: "d1", NextEligibleDate: timePtr(testNow.Add(96 * time.Hour))}, nil).Once()
			},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:  "Hospital not approved",
			actor: donorActor,
			input: ScheduleAppointmentInput{HospitalID: "h1", ScheduledAt: slot},
			setupMocks: func(t *testing.T, m *appointmentMocks) {
				tx := expectTx(t, m.transactor, false)
				m.donors.On("GetDonorByID", ctx, tx, "d1").Return(&domain.Donor{ID: "d1"}, nil).Once()
				m.hospitals.On("GetHospitalByID", ctx, tx, "h1").
					Return(&domain.Hospital{ID: "h1", Status: domain.HospitalSuspended}, nil).Once()
			},
			expectedErr: apperrors.ErrHospitalNotApproved,
		},
		{
			name:        "Slot in the past",
			actor:       donorActor,
			input:       ScheduleAppointmentInput{HospitalID: "h1", ScheduledAt: testNow.Add(-time.Hour)},
			setupMocks:  func(t *testing.T, m *appointmentMocks) {},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "Unknown donation type",
			actor:       donorActor,
			input:       ScheduleAppointmentInput{HospitalID: "h1", ScheduledAt: slot, DonationType: "saliva"},
			setupMocks:  func(t *testing.T, m *appointmentMocks) {},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "Only donors book appointments",
			actor:       recipientActor,
			input:       ScheduleAppointmentInput{HospitalID: "h1", ScheduledAt: slot},
			setupMocks:  func(t *testing.T, m *appointmentMocks) {},
			expectedErr: apperrors.ErrForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newAppointmentMocks()
			tc.setupMocks(t, m)

			result, err := m.service().ScheduleAppointment(ctx, tc.actor, tc.input)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, result)
				m.appointments.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, domain.AppointmentScheduled, result.Appointment.Status)
				assert.Equal(t, slot, result.Appointment.ScheduledAt)
				require.Len(t, result.Events, 1)
				assert.Equal(t, "d1", result.Events[0].Payload["donor_id"])
			}

			m.assertExpectations(t)
		})
	}
}

func TestAppointmentServiceImpl_Transitions(t *testing.T) {
	ctx := context.Background()
	newSlot := testNow.Add(120 * time.Hour)

	type call func(svc *AppointmentServiceImpl, actor domain.Actor) (*AppointmentResult, error)

	confirm := func(svc *AppointmentServiceImpl, actor domain.Actor) (*AppointmentResult, error) {
		return svc.ConfirmAppointment(ctx, actor, "ap1")
	}
	reschedule := func(svc *AppointmentServiceImpl, actor domain.Actor) (*AppointmentResult, error) {
		return svc.RescheduleAppointment(ctx, actor, "ap1", newSlot)
	}
	cancel := func(svc *AppointmentServiceImpl, actor domain.Actor) (*AppointmentResult, error) {
		return svc.CancelAppointment(ctx, actor, "ap1", " hospital closed ")
	}
	complete := func(svc *AppointmentServiceImpl, actor domain.Actor) (*AppointmentResult, error) {
		return svc.CompleteAppointment(ctx, actor, "ap1")
	}

	testCases := []struct {
		name        string
		actor       domain.Actor
		call        call
		current     *domain.Appointment
		staffLookup bool
		staffAdmin  string
		expectedErr error
		event       domain.EventType
		check       func(t *testing.T, a *domain.Appointment)
	}{
		{
			name:        "Hospital staff confirm",
			actor:       hospitalActor,
			call:        confirm,
			current:     bookedAppointment(domain.AppointmentScheduled),
			staffLookup: true,
			staffAdmin:  "ha1",
			event:       domain.EventAppointmentConfirmed,
			check: func(t *testing.T, a *domain.Appointment) {
				assert.Equal(t, domain.AppointmentConfirmed, a.Status)
				require.NotNil(t, a.ConfirmedBy)
				assert.Equal(t, "ha1", *a.ConfirmedBy)
				assert.Equal(t, testNow, *a.ConfirmedAt)
			},
		},
		{
			name:        "Donor cannot confirm",
			actor:       donorActor,
			call:        confirm,
			current:     bookedAppointment(domain.AppointmentScheduled),
			expectedErr: apperrors.ErrForbidden,
		},
		{
			name:        "Staff of another hospital cannot confirm",
			actor:       hospitalActor,
			call:        confirm,
			current:     bookedAppointment(domain.AppointmentScheduled),
			staffLookup: true,
			staffAdmin:  "ha2",
			expectedErr: apperrors.ErrForbidden,
		},
		{
			name:        "Cancelled appointment cannot be confirmed",
			actor:       adminActor,
			call:        confirm,
			current:     bookedAppointment(domain.AppointmentCancelled),
			expectedErr: apperrors.ErrInvalidTransition,
		},
		{
			name:  "Donor reschedules and the reminder is re-armed",
			actor: donorActor,
			call:  reschedule,
			current: func() *domain.Appointment {
				a := bookedAppointment(domain.AppointmentConfirmed)
				a.ReminderSentAt = timePtr(testNow.Add(-time.Hour))
				return a
			}(),
			event: domain.EventAppointmentRescheduled,
			check: func(t *testing.T, a *domain.Appointment) {
				assert.Equal(t, domain.AppointmentRescheduled, a.Status)
				assert.Equal(t, newSlot, a.ScheduledAt)
				require.NotNil(t, a.RescheduledFrom)
				assert.Equal(t, testNow.Add(72*time.Hour), *a.RescheduledFrom)
				assert.Nil(t, a.ReminderSentAt)
			},
		},
		{
			name:    "Donor cancels with a reason",
			actor:   donorActor,
			call:    cancel,
			current: bookedAppointment(domain.AppointmentScheduled),
			event:   domain.EventAppointmentCancelled,
			check: func(t *testing.T, a *domain.Appointment) {
				assert.Equal(t, domain.AppointmentCancelled, a.Status)
				assert.Equal(t, "hospital closed", *a.CancelReason)
				assert.Equal(t, "d1", *a.CancelledBy)
			},
		},
		{
			name:        "Another donor cannot cancel",
			actor:       domain.Actor{ID: "d2", Role: domain.RoleDonor},
			call:        cancel,
			current:     bookedAppointment(domain.AppointmentScheduled),
			expectedErr: apperrors.ErrForbidden,
		},
		{
			name:    "Admin completes",
			actor:   adminActor,
			call:    complete,
			current: bookedAppointment(domain.AppointmentConfirmed),
			event:   domain.EventAppointmentCompleted,
			check: func(t *testing.T, a *domain.Appointment) {
				assert.Equal(t, domain.AppointmentCompleted, a.Status)
				assert.Equal(t, testNow, *a.CompletedAt)
			},
		},
		{
			name:        "Completed appointment stays completed",
			actor:       adminActor,
			call:        complete,
			current:     bookedAppointment(domain.AppointmentCompleted),
			expectedErr: apperrors.ErrInvalidTransition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newAppointmentMocks()
			tx := expectTx(t, m.transactor, tc.expectedErr == nil)

			m.appointments.On("GetAppointmentByIDWithLock", ctx, tx, "ap1").Return(tc.current, nil).Once()

			if tc.staffLookup {
				m.hospitals.On("GetHospitalByID", ctx, tx, "h1").Return(approved("h1", tc.staffAdmin), nil).Once()
			}

			if tc.expectedErr == nil {
				m.appointments.On("UpdateAppointment", ctx, tx, mock.Anything).Return(nil).Once()
				m.outbox.On("Append", ctx, tx, []domain.EventType{tc.event}).Return(nil).Once()
			}

			result, err := tc.call(m.service(), tc.actor)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, result)
				m.appointments.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				tc.check(t, result.Appointment)
				assert.Equal(t, testNow, result.Appointment.UpdatedAt)
				assert.Equal(t, string(result.Appointment.Status), result.Events[0].Payload["status"])
			}

			m.assertExpectations(t)
		})
	}

	t.Run("Rescheduling into the past", func(t *testing.T) {
		m := newAppointmentMocks()

		_, err := m.service().RescheduleAppointment(ctx, donorActor, "ap1", testNow.Add(-time.Minute))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		m.transactor.AssertNotCalled(t, "BeginTxx", mock.Anything, mock.Anything)
	})

	t.Run("Cancelling without a reason", func(t *testing.T) {
		m := newAppointmentMocks()

		_, err := m.service().CancelAppointment(ctx, donorActor, "ap1", "  ")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		m.transactor.AssertNotCalled(t, "BeginTxx", mock.Anything, mock.Anything)
	})
}

func TestAppointmentServiceImpl_GetAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Donor reads own appointment", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("GetAppointmentByID", ctx, mock.Anything, "ap1").Return(bookedAppointment(domain.AppointmentScheduled), nil).Once()

		appointment, err := m.service().GetAppointment(ctx, donorActor, "ap1")

		require.NoError(t, err)
		assert.Equal(t, "ap1", appointment.ID)
		m.hospitals.AssertNotCalled(t, "GetHospitalByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Hospital staff read their hospital's appointment", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("GetAppointmentByID", ctx, mock.Anything, "ap1").Return(bookedAppointment(domain.AppointmentScheduled), nil).Once()
		m.hospitals.On("GetHospitalByID", ctx, mock.Anything, "h1").Return(approved("h1", "ha1"), nil).Once()

		_, err := m.service().GetAppointment(ctx, hospitalActor, "ap1")

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("Other donors are refused", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("GetAppointmentByID", ctx, mock.Anything, "ap1").Return(bookedAppointment(domain.AppointmentScheduled), nil).Once()

		_, err := m.service().GetAppointment(ctx, domain.Actor{ID: "d2", Role: domain.RoleDonor}, "ap1")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Missing appointment", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("GetAppointmentByID", ctx, mock.Anything, "ap9").Return(nil, apperrors.ErrNotFound).Once()

		_, err := m.service().GetAppointment(ctx, adminActor, "ap9")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAppointmentServiceImpl_ListAppointments(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	t.Run("Donors only see their own appointments", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("ListAppointments", ctx, domain.AppointmentFilter{DonorID: "d1", Limit: 20}).
			Return([]domain.Appointment{*bookedAppointment(domain.AppointmentScheduled)}, nil).Once()

		appointments, err := m.service().ListAppointments(ctx, donorActor, domain.AppointmentFilter{DonorID: "d2"})

		require.NoError(t, err)
		assert.Len(t, appointments, 1)
		m.assertExpectations(t)
	})

	t.Run("Hospital staff list one day capped at the page maximum", func(t *testing.T) {
		m := newAppointmentMocks()
		m.hospitals.On("GetHospitalByID", ctx, mock.Anything, "h1").Return(approved("h1", "ha1"), nil).Once()
		m.appointments.On("ListAppointments", ctx, domain.AppointmentFilter{HospitalID: "h1", Day: &day, Limit: 100}).
			Return([]domain.Appointment{}, nil).Once()

		_, err := m.service().ListAppointments(ctx, hospitalActor, domain.AppointmentFilter{HospitalID: "h1", Day: &day, Limit: 500})

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("Hospital staff must name their hospital", func(t *testing.T) {
		m := newAppointmentMocks()

		_, err := m.service().ListAppointments(ctx, hospitalActor, domain.AppointmentFilter{})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Staff of another hospital are refused", func(t *testing.T) {
		m := newAppointmentMocks()
		m.hospitals.On("GetHospitalByID", ctx, mock.Anything, "h1").Return(approved("h1", "ha2"), nil).Once()

		_, err := m.service().ListAppointments(ctx, hospitalActor, domain.AppointmentFilter{HospitalID: "h1"})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.appointments.AssertNotCalled(t, "ListAppointments", mock.Anything, mock.Anything)
	})

	t.Run("Unknown status", func(t *testing.T) {
		m := newAppointmentMocks()

		_, err := m.service().ListAppointments(ctx, adminActor, domain.AppointmentFilter{Status: "lost"})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Recipients have no appointments", func(t *testing.T) {
		m := newAppointmentMocks()

		_, err := m.service().ListAppointments(ctx, recipientActor, domain.AppointmentFilter{})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestAppointmentServiceImpl_ReminderSweep(t *testing.T) {
	ctx := context.Background()
	from, to := testNow.Add(24*time.Hour), testNow.Add(48*time.Hour)

	due := func(ids ...string) []domain.Appointment {
		out := make([]domain.Appointment, 0, len(ids))
		for _, id := range ids {
			a := bookedAppointment(domain.AppointmentConfirmed)
			a.ID = id
			a.ScheduledAt = testNow.Add(30 * time.Hour)
			out = append(out, *a)
		}

		return out
	}

	t.Run("Every due appointment is reminded once", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("ListDueReminders", ctx, from, to, uint64(200)).Return(due("ap1", "ap2", "ap3"), nil).Once()

		tx1 := expectTx(t, m.transactor, true)
		tx2 := expectTx(t, m.transactor, true)
		tx3 := expectTx(t, m.transactor, false)

		m.appointments.On("MarkReminderSent", ctx, tx1, "ap1", testNow).Return(true, nil).Once()
		m.outbox.On("Append", ctx, tx1, []domain.EventType{domain.EventAppointmentReminder}).Return(nil).Once()
		m.appointments.On("MarkReminderSent", ctx, tx2, "ap2", testNow).Return(false, nil).Once()
		m.appointments.On("MarkReminderSent", ctx, tx3, "ap3", testNow).Return(false, errors.New("db down")).Once()

		result, err := m.service().ReminderSweep(ctx, testNow)

		require.NoError(t, err)
		assert.Equal(t, []string{"ap1"}, result.Reminded)
		assert.Equal(t, 1, result.Failed)
		m.assertExpectations(t)
	})

	t.Run("Nothing due", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("ListDueReminders", ctx, from, to, uint64(200)).Return([]domain.Appointment{}, nil).Once()

		result, err := m.service().ReminderSweep(ctx, testNow)

		require.NoError(t, err)
		assert.Empty(t, result.Reminded)
		m.transactor.AssertNotCalled(t, "BeginTxx", mock.Anything, mock.Anything)
	})

	t.Run("Listing failure", func(t *testing.T) {
		m := newAppointmentMocks()
		m.appointments.On("ListDueReminders", ctx, from, to, uint64(200)).Return(nil, errors.New("db down")).Once()

		_, err := m.service().ReminderSweep(ctx, testNow)

		assert.ErrorContains(t, err, "db down")
	})
}
