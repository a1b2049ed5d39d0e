package config

import (
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:       utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:       utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:     utils.GetEnvString("MONGODB_DB_NAME", "homevisit"),
			Username:   utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
			ReplicaSet: utils.GetEnvString("MONGODB_REPLICA_SET", "rs0"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
			PoolSize: utils.GetEnvInt("REDIS_POOL_SIZE", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:               utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:               utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username:           utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password:           utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:              utils.GetEnvString("RABBITMQ_VHOST", ""),
			HeartbeatInSeconds: utils.GetEnvInt("RABBITMQ_HEARTBEAT_IN_SECONDS", 10),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			CorsAllowedOrigins:         utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"*"}),
			StoreDriver:                utils.GetEnvString("APP_STORE_DRIVER", constvars.StoreDriverMongo),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			LoginMaxAttemptsPerMinute:  utils.GetEnvInt("APP_LOGIN_MAX_ATTEMPTS_PER_MINUTE", 5),
			LoginBlockTimeInMinutes:    utils.GetEnvInt("APP_LOGIN_BLOCK_TIME_IN_MINUTES", 5),
			StrictStatusProgression:    utils.GetEnvBool("APP_STRICT_STATUS_PROGRESSION", false),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", ""),
			Issuer:        utils.GetEnvString("JWT_ISSUER", "homevisit-service"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Fee: AppFee{
			PlatformPercent: utils.GetEnvFloat("FEE_PLATFORM_PERCENT", 0.15),
			DoctorPercent:   utils.GetEnvFloat("FEE_DOCTOR_PERCENT", 0.70),
			AdminPercent:    utils.GetEnvFloat("FEE_ADMIN_PERCENT", 0.15),
		},
		Payment: AppPayment{
			DefaultCurrency:              utils.GetEnvString("PAYMENT_DEFAULT_CURRENCY", "INR"),
			SettlementLockTTLInSeconds:   utils.GetEnvInt("PAYMENT_SETTLEMENT_LOCK_TTL_IN_SECONDS", 30),
			GatewayRequestTimeoutSeconds: utils.GetEnvInt("PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
		},
		Catalog: AppCatalog{
			CacheTTLInMinutes: utils.GetEnvInt("CATALOG_CACHE_TTL_IN_MINUTES", 10),
		},
		Earnings: AppEarnings{
			ReconcileCronSpec: utils.GetEnvString("EARNINGS_RECONCILE_CRON_SPEC", "@hourly"),
		},
		RabbitMQ: AppRabbitMQ{
			Enabled:     utils.GetEnvBool("RABBITMQ_ENABLED", false),
			EventsQueue: utils.GetEnvString("RABBITMQ_EVENTS_QUEUE", "homevisit.events"),
		},
		Minio: AppMinio{
			Enabled:                     utils.GetEnvBool("MINIO_ENABLED", false),
			ReceiptBucket:               utils.GetEnvString("MINIO_RECEIPT_BUCKET", "receipts"),
			PresignedURLExpiryInMinutes: utils.GetEnvInt("MINIO_PRESIGNED_URL_EXPIRY_IN_MINUTES", 15),
		},
		Seed: AppSeed{
			MemoryStore:        utils.GetEnvBool("SEED_MEMORY_STORE", false),
			SuperadminEmail:    utils.GetEnvString("SEED_SUPERADMIN_EMAIL", ""),
			SuperadminPassword: utils.GetEnvString("SEED_SUPERADMIN_PASSWORD", ""),
		},
	}
}
