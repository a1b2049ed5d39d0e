package models

import "time"

// Payment is immutable once inserted.
type Payment struct {
	ID                   string    `json:"id" bson:"_id"`
	AppointmentID        string    `json:"appointment_id" bson:"appointmentId"`
	PatientID            string    `json:"patient_id" bson:"patientId"`
	DoctorID             *string   `json:"doctor_id" bson:"doctorId"`
	Amount               float64   `json:"amount" bson:"amount"`
	Currency             string    `json:"currency" bson:"currency"`
	Method               string    `json:"method" bson:"method"`
	GatewayTransactionID string    `json:"gateway_transaction_id" bson:"gatewayTransactionId"`
	Status               string    `json:"status" bson:"status"`
	FailureReason        string    `json:"failure_reason,omitempty" bson:"failureReason,omitempty"`
	PlatformFeeAmount    float64   `json:"platform_fee_amount" bson:"platformFeeAmount"`
	DoctorFeeAmount      float64   `json:"doctor_fee_amount" bson:"doctorFeeAmount"`
	AdminFeeAmount       float64   `json:"admin_fee_amount" bson:"adminFeeAmount"`
	ReceiptObjectKey     string    `json:"receipt_object_key,omitempty" bson:"receiptObjectKey,omitempty"`
	TransactionDate      time.Time `json:"transaction_date" bson:"transactionDate"`
}

type FeeSplit struct {
	PlatformFeeAmount float64
	DoctorFeeAmount   float64
	AdminFeeAmount    float64
}

type ChargeRequest struct {
	AppointmentID string
	PatientID     string
	Amount        float64
	Currency      string
	Method        string
}

type ChargeResult struct {
	Successful           bool
	GatewayTransactionID string
	FailureReason        string
}
