package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingSubjectIDKey          = "subject_id"
	LoggingRoleKey               = "role"
	LoggingUserIDKey             = "user_id"
	LoggingAddressIDKey          = "address_id"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingAppointmentStatusKey  = "appointment_status"
	LoggingTargetStatusKey       = "target_status"
	LoggingDoctorIDKey           = "doctor_id"
	LoggingPatientIDKey          = "patient_id"
	LoggingPaymentIDKey          = "payment_id"
	LoggingPaymentStatusKey      = "payment_status"
	LoggingGatewayTransactionKey = "gateway_transaction_id"
	LoggingAmountKey             = "amount"
	LoggingFeedbackIDKey         = "feedback_id"
	LoggingServiceIDKey          = "service_id"
	LoggingOfferIDKey            = "offer_id"
	LoggingExternalIDKey         = "external_id"
	LoggingEventTypeKey          = "event_type"
	LoggingObjectKey             = "object_key"
	LoggingBucketKey             = "bucket"
	LoggingQueueKey              = "queue"
	LoggingCountKey              = "count"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
)
