package routers

import (
	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, ctrl *Controllers) {
	router.Get("/addresses", ctrl.Address.ListAddresses)
	router.Post("/addresses", ctrl.Address.CreateAddress)
	router.Put("/addresses/{addressID}", ctrl.Address.UpdateAddress)
	router.Delete("/addresses/{addressID}", ctrl.Address.DeleteAddress)

	router.Get("/appointments", ctrl.Appointment.ListPatientAppointments)
	router.Post("/appointments", ctrl.Appointment.CreateAppointment)
	router.Get("/appointments/{appointmentID}", ctrl.Appointment.GetPatientAppointment)
	router.Put("/appointments/{appointmentID}/reschedule", ctrl.Appointment.RescheduleAppointment)
	router.Put("/appointments/{appointmentID}/cancel", ctrl.Appointment.CancelAppointment)
	router.Post("/appointments/{appointmentID}/payments", ctrl.Payment.Settle)
	router.Post("/appointments/{appointmentID}/feedback", ctrl.Feedback.SubmitFeedback)

	router.Get("/payments", ctrl.Payment.ListPayments)
	router.Get("/payments/{paymentID}/receipt", ctrl.Payment.GetReceipt)
	router.Get("/feedback", ctrl.Feedback.ListPatientFeedback)
}
