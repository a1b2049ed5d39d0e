package models

type Feedback struct {
	ID            string  `json:"id" bson:"_id"`
	PatientID     string  `json:"patient_id" bson:"patientId"`
	AppointmentID string  `json:"appointment_id" bson:"appointmentId"`
	DoctorID      *string `json:"doctor_id" bson:"doctorId"`
	Rating        int     `json:"rating" bson:"rating"`
	Comments      string  `json:"comments,omitempty" bson:"comments,omitempty"`
	TimeModel     `bson:",inline"`
}
