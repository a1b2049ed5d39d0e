package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PRINCIPAL_KEY            ContextKey = "principal"
)

const (
	REQUEST_ID_PREFIX = "HMVST_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

const (
	DateFormat = "2006-01-02"
)

// SystemActorID marks writes made by command line tools rather than a caller.
const SystemActorID = "system"
