package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"email":         "must be a valid email",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"len":           "must be %s characters long",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"uuid":          "must be a valid UUID",
	"password":      "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"role":          "must be one of [patient, doctor, admin, superadmin]",
	"not_past_date": "requested date cannot be in the past",
	"time_slot":     "must look like HH:MM-HH:MM with the end after the start",
	"currency_code": "must be a 3-letter uppercase currency code",
	"phone_number":  "must be a valid phone number in international format",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Tags whose message already reads as a full sentence
var TagsWithStandaloneMessage = map[string]bool{
	"not_past_date": true,
	"phone_number":  true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientResourceNotFound              = "%s not found"
	ErrClientAppointmentAlreadyAssigned    = "appointment already assigned"
	ErrClientAppointmentNotPending         = "appointment is no longer pending assignment"
	ErrClientAppointmentNotActive          = "appointment can no longer be changed"
	ErrClientAppointmentNotInProgress      = "appointment is not in progress"
	ErrClientAppointmentStatusNotAllowed   = "status %s is not allowed here"
	ErrClientAppointmentStatusOutOfOrder   = "status must move from %s to %s"
	ErrClientAppointmentNotPayable         = "appointment cannot be paid"
	ErrClientSettlementInProgress          = "a payment for this appointment is already being processed"
	ErrClientAlreadySettled                = "appointment already paid"
	ErrClientFeedbackNotAllowed            = "feedback can only be given for completed appointments"
	ErrClientFeedbackAlreadySubmitted      = "feedback already submitted for this appointment"
	ErrClientServiceUnavailable            = "selected service is not available"
	ErrClientAddressUnavailable            = "selected address is not available"
	ErrClientRoleHierarchy                 = "you can't manage accounts with this role"
	ErrClientCannotDeleteSelf              = "you can't delete your own account"
	ErrClientReceiptArchiveDisabled        = "receipts are not available right now"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "request body is too large"
	ErrClientUnknownRole                   = "role %s is not recognized"
	ErrClientOfferWindowInvalid            = "valid_until must be after valid_from"
	ErrClientAppointmentStatusUnknown      = "status %s is not a known appointment status"
	ErrClientFeedbackRatingOutOfRange      = "rating must be between %d and %d"
)

// Error messages for developers
const (
	ErrDevInvalidInput                 = "invalid input"
	ErrDevValidationFailed             = "validation failed"
	ErrDevURLParamIDValidationFailed   = "url param %s must be a valid uuid"
	ErrDevCannotParseJSON              = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON            = "cannot convert struct or other data types to JSON"
	ErrDevServerDeadlineExceeded       = "server deadline exceeded"
	ErrDevServerProcess                = "server failed to process the request"
	ErrDevMissingRequestID             = "request id missing from context"
	ErrDevMissingPrincipal             = "principal missing from context"
	ErrDevAuthTokenMissing             = "auth token missing"
	ErrDevAuthTokenInvalidOrExpired    = "auth token invalid or expired"
	ErrDevAuthTokenRevoked             = "auth token revoked by a newer credential or role change"
	ErrDevAuthIdentityDisabled         = "identity disabled"
	ErrDevAuthIdentityNotFound         = "identity not found"
	ErrDevAuthGenerateToken            = "failed to generate auth token"
	ErrDevAuthUnknownRole              = "unknown role claim %s"
	ErrDevInvalidCredentials           = "invalid credentials"
	ErrDevFailedToHashPassword         = "failed to hash password"
	ErrDevEmailAlreadyExists           = "email already exists"
	ErrDevRoleNotPermitted             = "role %s not permitted on %s %s"
	ErrDevRoleHierarchy                = "actor role %s cannot manage role %s"
	ErrDevEnforcerFailed               = "rbac enforcer failed"
	ErrDevResourceNotFound             = "%s %s not found or not owned by caller"
	ErrDevInvalidTransition            = "invalid transition from %s on %s"
	ErrDevAlreadySettled               = "appointment %s already settled"
	ErrDevSettlementLocked             = "settlement lock for appointment %s held by another request"
	ErrDevFeedbackAlreadySubmitted     = "feedback for appointment %s already exists"
	ErrDevPaymentGatewayCharge         = "payment gateway charge failed"
	ErrDevDBFailedToFindDocument       = "failed to find document"
	ErrDevDBFailedToInsertDocument     = "failed to insert document"
	ErrDevDBFailedToUpdateDocument     = "failed to update document"
	ErrDevDBFailedToDeleteDocument     = "failed to delete document"
	ErrDevDBFailedToIterateDocuments   = "failed to iterate documents"
	ErrDevDBFailedToStartSession       = "failed to start database session"
	ErrDevDBFailedToCommitTransaction  = "failed to commit transaction"
	ErrDevDBFailedToCreateIndexes      = "failed to create indexes"
	ErrDevRedisGetData                 = "failed to get key %s from redis"
	ErrDevRedisSetData                 = "failed to set data to redis"
	ErrDevRedisDeleteData              = "failed to delete data from redis"
	ErrDevRedisUnlock                  = "failed to release redis lock"
	ErrDevMinioFailedToCreateObject    = "failed to create object on bucket %s"
	ErrDevMinioFailedToStatObject      = "failed to stat object on bucket %s"
	ErrDevMinioFailedToPresignObject   = "failed to presign object on bucket %s"
	ErrDevMinioReceiptArchiveDisabled  = "receipt archive disabled"
	ErrDevRabbitMQFailedToPublish      = "failed to publish message to queue %s"
	ErrDevRabbitMQFailedToOpenChannel  = "failed to open rabbitmq channel"
	ErrDevRabbitMQFailedToDeclareQueue = "failed to declare queue %s"
	ErrDevRateLimited                  = "rate limit exceeded"
	ErrDevRequestBodyTooLarge          = "request body exceeds limit"
)
