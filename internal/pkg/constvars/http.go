package constvars

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMEApplicationJSON = "application/json"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusRequestEntityLarge  = 413
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"
	HeaderBearerPrefix  = "Bearer "
)

const (
	URLParamAddressID     = "addressID"
	URLParamAppointmentID = "appointmentID"
	URLParamPaymentID     = "paymentID"
	URLParamUserID        = "userID"
	URLParamServiceID     = "serviceID"
	URLParamOfferID       = "offerID"
)

const (
	QueryParamStatus = "status"
	QueryParamRole   = "role"
)
