package constvars

const (
	LoginSuccessMessage = "login success"

	GetProfileSuccessMessage    = "success get profile"
	UpdateProfileSuccessMessage = "success update profile"
	SetAvailabilitySuccessMsg   = "success update availability"

	CreateUserSuccessMessage = "success create user"
	ListUsersSuccessMessage  = "success get users"
	GetUserSuccessMessage    = "success get user"
	UpdateUserSuccessMessage = "success update user"
	DeleteUserSuccessMessage = "success delete user"

	ListAddressesSuccessMessage = "success get addresses"
	CreateAddressSuccessMessage = "success create address"
	UpdateAddressSuccessMessage = "success update address"
	DeleteAddressSuccessMessage = "success delete address"

	CreateAppointmentSuccessMessage     = "success create appointment"
	ListAppointmentsSuccessMessage      = "success get appointments"
	GetAppointmentSuccessMessage        = "success get appointment"
	RescheduleAppointmentSuccessMessage = "success reschedule appointment"
	CancelAppointmentSuccessMessage     = "success cancel appointment"
	AdvanceAppointmentSuccessMessage    = "success update appointment status"

	ListAvailableRequestsSuccessMessage = "success get available requests"
	AcceptRequestSuccessMessage         = "success accept request"
	DeclineRequestSuccessMessage        = "success decline request"

	SettlePaymentSuccessMessage = "payment processed"
	ListPaymentsSuccessMessage  = "success get payments"
	GetReceiptSuccessMessage    = "success get receipt"

	SubmitFeedbackSuccessMessage = "success submit feedback"
	ListFeedbackSuccessMessage   = "success get feedback"

	GetEarningsSuccessMessage = "success get earnings"

	ListServicesSuccessMessage  = "success get services"
	GetServiceSuccessMessage    = "success get service"
	CreateServiceSuccessMessage = "success create service"
	UpdateServiceSuccessMessage = "success update service"
	DeleteServiceSuccessMessage = "success delete service"
	ListOffersSuccessMessage    = "success get offers"
	CreateOfferSuccessMessage   = "success create offer"
	UpdateOfferSuccessMessage   = "success update offer"
	DeleteOfferSuccessMessage   = "success delete offer"

	SuperadminOverviewSuccessMessage = "superadmin overview is not available yet"
)
