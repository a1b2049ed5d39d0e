package appointments

import (
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingAppointment() *models.Appointment {
	return &models.Appointment{
		ID:                "appt-1",
		PatientID:         "patient-1",
		Status:            constvars.AppointmentStatusPendingAssignment,
		PaymentStatus:     constvars.PaymentStatusPending,
		RequestedDate:     "2030-01-01",
		RequestedTimeSlot: "09:00-10:00",
	}
}

func assignedAppointment(doctorID string) *models.Appointment {
	appointment := pendingAppointment()
	_ = Accept(appointment, doctorID, time.Now())
	return appointment
}

func assertInvalidTransition(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	if message != "" {
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, message, customErr.ClientMessage)
	}
}

func TestAccept(t *testing.T) {
	now := time.Now()

	t.Run("pending becomes assigned", func(t *testing.T) {
		appointment := pendingAppointment()
		require.NoError(t, Accept(appointment, "doctor-1", now))
		assert.Equal(t, constvars.AppointmentStatusAssigned, appointment.Status)
		assert.True(t, appointment.IsAssignedTo("doctor-1"))
		assert.Equal(t, now, *appointment.AssignedAt)
	})

	t.Run("second accept reports already assigned", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		err := Accept(appointment, "doctor-2", now)
		assertInvalidTransition(t, err, constvars.ErrClientAppointmentAlreadyAssigned)
		assert.True(t, appointment.IsAssignedTo("doctor-1"))
	})

	t.Run("cancelled cannot be accepted", func(t *testing.T) {
		appointment := pendingAppointment()
		require.NoError(t, Cancel(appointment, "", now))
		assertInvalidTransition(t, Accept(appointment, "doctor-1", now), constvars.ErrClientAppointmentNotPending)
	})
}

func TestDecline(t *testing.T) {
	now := time.Now()
	appointment := pendingAppointment()
	require.NoError(t, Decline(appointment, "doctor-1", "too far", now))
	assert.Equal(t, constvars.AppointmentStatusDeclinedByDoctor, appointment.Status)
	assert.Equal(t, "too far", appointment.DeclinedReason)
	assert.Equal(t, "doctor-1", appointment.DeclinedBy)

	assertInvalidTransition(t, Decline(appointment, "doctor-2", "", now), constvars.ErrClientAppointmentNotPending)
	assertInvalidTransition(t, Accept(appointment, "doctor-2", now), constvars.ErrClientAppointmentNotPending)
}

func TestRescheduleAndCancel(t *testing.T) {
	now := time.Now()

	t.Run("reschedule clears the doctor", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		require.NoError(t, Reschedule(appointment, "2030-02-02", "14:00-15:00", now))
		assert.Equal(t, constvars.AppointmentStatusPendingAssignment, appointment.Status)
		assert.Nil(t, appointment.DoctorID)
		assert.Nil(t, appointment.AssignedAt)
		assert.Equal(t, "2030-02-02", appointment.RequestedDate)
		assert.Equal(t, "14:00-15:00", appointment.RequestedTimeSlot)
	})

	t.Run("started service can still be rescheduled", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusServiceStarted, false, now))
		require.NoError(t, Reschedule(appointment, "2030-02-02", "14:00-15:00", now))
		assert.Equal(t, constvars.AppointmentStatusPendingAssignment, appointment.Status)
		assert.Nil(t, appointment.DoctorID)
		assert.Nil(t, appointment.ActualStartTime)
	})

	t.Run("started service can still be cancelled", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusServiceStarted, false, now))
		require.NoError(t, Cancel(appointment, "", now))
		assert.Equal(t, constvars.AppointmentStatusCancelledByPatient, appointment.Status)
	})

	t.Run("completed can no longer change", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusCompleted, false, now))
		assertInvalidTransition(t, Reschedule(appointment, "2030-02-02", "14:00-15:00", now), constvars.ErrClientAppointmentNotActive)
		assertInvalidTransition(t, Cancel(appointment, "", now), constvars.ErrClientAppointmentNotActive)
	})

	t.Run("declined can no longer change", func(t *testing.T) {
		appointment := pendingAppointment()
		require.NoError(t, Decline(appointment, "doctor-1", "", now))
		assertInvalidTransition(t, Reschedule(appointment, "2030-02-02", "14:00-15:00", now), constvars.ErrClientAppointmentNotActive)
		assertInvalidTransition(t, Cancel(appointment, "", now), constvars.ErrClientAppointmentNotActive)
	})

	t.Run("cancel records the reason", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		require.NoError(t, Cancel(appointment, "feeling better", now))
		assert.Equal(t, constvars.AppointmentStatusCancelledByPatient, appointment.Status)
		assert.Equal(t, "feeling better", appointment.CancellationReason)
		assertInvalidTransition(t, Cancel(appointment, "", now), constvars.ErrClientAppointmentNotActive)
	})
}

func TestAdvance(t *testing.T) {
	now := time.Now()

	t.Run("lenient allows skipping ahead", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusCompleted, false, now))
		assert.Equal(t, constvars.AppointmentStatusCompleted, appointment.Status)
		require.NotNil(t, appointment.ActualStartTime)
		require.NotNil(t, appointment.ActualEndTime)
		assert.Equal(t, constvars.PaymentStatusPending, appointment.PaymentStatus)
	})

	t.Run("strict requires the next status", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		err := Advance(appointment, constvars.AppointmentStatusArrived, true, now)
		assertInvalidTransition(t, err, "status must move from assigned to on_the_way")

		for _, status := range []string{
			constvars.AppointmentStatusOnTheWay,
			constvars.AppointmentStatusArrived,
			constvars.AppointmentStatusServiceStarted,
			constvars.AppointmentStatusCompleted,
		} {
			require.NoError(t, Advance(appointment, status, true, now), status)
		}
	})

	t.Run("never moves backwards", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusArrived, false, now))
		assertInvalidTransition(t, Advance(appointment, constvars.AppointmentStatusOnTheWay, false, now), "")
		assertInvalidTransition(t, Advance(appointment, constvars.AppointmentStatusArrived, false, now), "")
	})

	t.Run("service_started sets the start time once", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		started := now.Add(-time.Hour)
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusServiceStarted, false, started))
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusCompleted, false, now))
		assert.Equal(t, started, *appointment.ActualStartTime)
		assert.Equal(t, now, *appointment.ActualEndTime)
	})

	t.Run("rejects targets outside the progression", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		assertInvalidTransition(t, Advance(appointment, constvars.AppointmentStatusAssigned, false, now), "status assigned is not allowed here")
		assertInvalidTransition(t, Advance(appointment, constvars.AppointmentStatusCancelledByPatient, false, now), "")
	})

	t.Run("pending is not in progress", func(t *testing.T) {
		assertInvalidTransition(t, Advance(pendingAppointment(), constvars.AppointmentStatusOnTheWay, false, now), constvars.ErrClientAppointmentNotInProgress)
	})

	t.Run("completion keeps a paid status", func(t *testing.T) {
		appointment := assignedAppointment("doctor-1")
		appointment.PaymentStatus = constvars.PaymentStatusPaid
		require.NoError(t, Advance(appointment, constvars.AppointmentStatusCompleted, false, now))
		assert.Equal(t, constvars.PaymentStatusPaid, appointment.PaymentStatus)
	})
}

func TestCanReceiveFeedback(t *testing.T) {
	tests := []struct {
		status        string
		paymentStatus string
		want          bool
	}{
		{constvars.AppointmentStatusCompleted, constvars.PaymentStatusPending, true},
		{constvars.AppointmentStatusCompleted, constvars.PaymentStatusPaid, true},
		{constvars.AppointmentStatusServiceStarted, constvars.PaymentStatusPaid, true},
		{constvars.AppointmentStatusArrived, constvars.PaymentStatusPending, false},
		{constvars.AppointmentStatusPendingAssignment, constvars.PaymentStatusPaid, false},
		{constvars.AppointmentStatusCancelledByPatient, constvars.PaymentStatusPaid, false},
	}
	for _, tt := range tests {
		appointment := &models.Appointment{Status: tt.status, PaymentStatus: tt.paymentStatus}
		assert.Equal(t, tt.want, CanReceiveFeedback(appointment), "%s/%s", tt.status, tt.paymentStatus)
	}
}
