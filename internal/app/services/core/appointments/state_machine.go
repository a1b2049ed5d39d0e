package appointments

import (
	"fmt"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"time"
)

// progression is the in-progress chain a doctor walks through after accepting.
var progression = []string{
	constvars.AppointmentStatusAssigned,
	constvars.AppointmentStatusOnTheWay,
	constvars.AppointmentStatusArrived,
	constvars.AppointmentStatusServiceStarted,
	constvars.AppointmentStatusCompleted,
}

var knownStatuses = map[string]bool{
	constvars.AppointmentStatusPendingAssignment:  true,
	constvars.AppointmentStatusAssigned:           true,
	constvars.AppointmentStatusOnTheWay:           true,
	constvars.AppointmentStatusArrived:            true,
	constvars.AppointmentStatusServiceStarted:     true,
	constvars.AppointmentStatusCompleted:          true,
	constvars.AppointmentStatusDeclinedByDoctor:   true,
	constvars.AppointmentStatusCancelledByPatient: true,
}

// patientMutable lists the statuses a patient may still reschedule or cancel from.
var patientMutable = map[string]bool{
	constvars.AppointmentStatusPendingAssignment: true,
	constvars.AppointmentStatusAssigned:          true,
	constvars.AppointmentStatusOnTheWay:          true,
	constvars.AppointmentStatusArrived:           true,
	constvars.AppointmentStatusServiceStarted:    true,
}

func IsKnownStatus(status string) bool {
	return knownStatuses[status]
}

// isInProgress reports whether a doctor holds the appointment and has not completed it.
func isInProgress(status string) bool {
	index := progressionIndex(status)
	return index >= 0 && status != constvars.AppointmentStatusCompleted
}

// CanReceiveFeedback holds for completed visits, and for paid visits a doctor is still working on.
func CanReceiveFeedback(appointment *models.Appointment) bool {
	if appointment.Status == constvars.AppointmentStatusCompleted {
		return true
	}
	return appointment.PaymentStatus == constvars.PaymentStatusPaid && isInProgress(appointment.Status)
}

// IsPatientMutable reports whether the patient may still reschedule or cancel.
func IsPatientMutable(status string) bool {
	return patientMutable[status]
}

func progressionIndex(status string) int {
	for i, s := range progression {
		if s == status {
			return i
		}
	}
	return -1
}

// Accept assigns a pending appointment to doctorID.
func Accept(appointment *models.Appointment, doctorID string, now time.Time) error {
	if appointment.Status != constvars.AppointmentStatusPendingAssignment {
		message := constvars.ErrClientAppointmentNotPending
		if appointment.DoctorID != nil {
			message = constvars.ErrClientAppointmentAlreadyAssigned
		}
		return exceptions.ErrInvalidTransition(nil, message, appointment.Status, constvars.TransitionAccept)
	}
	appointment.Status = constvars.AppointmentStatusAssigned
	appointment.DoctorID = &doctorID
	appointment.AssignedAt = &now
	appointment.UpdatedAt = now
	return nil
}

// Decline is terminal. The appointment leaves the pool for every doctor.
func Decline(appointment *models.Appointment, doctorID, reason string, now time.Time) error {
	if appointment.Status != constvars.AppointmentStatusPendingAssignment {
		return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotPending, appointment.Status, constvars.TransitionDecline)
	}
	appointment.Status = constvars.AppointmentStatusDeclinedByDoctor
	appointment.DeclinedReason = reason
	appointment.DeclinedBy = doctorID
	appointment.UpdatedAt = now
	return nil
}

// Reschedule returns the appointment to the assignment pool with a new date and slot.
func Reschedule(appointment *models.Appointment, date, timeSlot string, now time.Time) error {
	if !IsPatientMutable(appointment.Status) {
		return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotActive, appointment.Status, constvars.TransitionReschedule)
	}
	appointment.Status = constvars.AppointmentStatusPendingAssignment
	appointment.RequestedDate = date
	appointment.RequestedTimeSlot = timeSlot
	appointment.DoctorID = nil
	appointment.AssignedAt = nil
	appointment.ActualStartTime = nil
	appointment.UpdatedAt = now
	return nil
}

func Cancel(appointment *models.Appointment, reason string, now time.Time) error {
	if !IsPatientMutable(appointment.Status) {
		return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotActive, appointment.Status, constvars.TransitionCancel)
	}
	appointment.Status = constvars.AppointmentStatusCancelledByPatient
	appointment.CancellationReason = reason
	appointment.UpdatedAt = now
	return nil
}

// Advance moves an in-progress appointment forward. With strict set the
// target must be the next status; otherwise any later status is accepted.
func Advance(appointment *models.Appointment, target string, strict bool, now time.Time) error {
	current := progressionIndex(appointment.Status)
	if current < 0 || appointment.Status == constvars.AppointmentStatusCompleted {
		return exceptions.ErrInvalidTransition(nil, constvars.ErrClientAppointmentNotInProgress, appointment.Status, constvars.TransitionAdvance)
	}

	next := progressionIndex(target)
	if next <= 0 {
		return exceptions.ErrInvalidTransition(nil, fmt.Sprintf(constvars.ErrClientAppointmentStatusNotAllowed, target), appointment.Status, constvars.TransitionAdvance)
	}
	if next <= current || (strict && next != current+1) {
		message := fmt.Sprintf(constvars.ErrClientAppointmentStatusOutOfOrder, appointment.Status, progression[current+1])
		return exceptions.ErrInvalidTransition(nil, message, appointment.Status, constvars.TransitionAdvance)
	}

	appointment.Status = target
	if next >= progressionIndex(constvars.AppointmentStatusServiceStarted) && appointment.ActualStartTime == nil {
		appointment.ActualStartTime = &now
	}
	if target == constvars.AppointmentStatusCompleted {
		appointment.ActualEndTime = &now
		if appointment.PaymentStatus != constvars.PaymentStatusPaid {
			appointment.PaymentStatus = constvars.PaymentStatusPending
		}
	}
	appointment.UpdatedAt = now
	return nil
}
