package constvars

// Resource names used in not-found messages
const (
	ResourceUser        = "user"
	ResourceAddress     = "address"
	ResourceAppointment = "appointment"
	ResourcePayment     = "payment"
	ResourceService     = "service"
	ResourceOffer       = "offer"
)
