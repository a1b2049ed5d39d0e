package requests

type SettlePayment struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"omitempty,currency_code"`
	Method   string  `json:"method" validate:"required,oneof=card cash upi wallet netbanking"`
}
