package routers

import (
	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, ctrl *Controllers) {
	router.Get("/requests", ctrl.Assignment.ListAvailable)
	router.Post("/requests/{appointmentID}/accept", ctrl.Assignment.Accept)
	router.Post("/requests/{appointmentID}/decline", ctrl.Assignment.Decline)

	router.Get("/appointments", ctrl.Appointment.ListDoctorAppointments)
	router.Get("/appointments/{appointmentID}", ctrl.Appointment.GetDoctorAppointment)
	router.Put("/appointments/{appointmentID}/status", ctrl.Appointment.AdvanceStatus)

	router.Put("/availability", ctrl.User.SetAvailability)
	router.Get("/earnings", ctrl.Earnings.GetEarnings)
	router.Get("/feedback", ctrl.Feedback.ListDoctorFeedback)
}
