package responses

type SettlePayment struct {
	PaymentID     string  `json:"payment_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	DoctorFee     float64 `json:"doctor_fee_amount"`
	PlatformFee   float64 `json:"platform_fee_amount"`
	AdminFee      float64 `json:"admin_fee_amount"`
}

type Receipt struct {
	PaymentID string `json:"payment_id"`
	URL       string `json:"url"`
}
