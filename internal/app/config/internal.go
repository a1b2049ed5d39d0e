package config

import (
	"fmt"
	"homevisit-service/internal/pkg/constvars"
	"math"
)

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Fee      AppFee
	Payment  AppPayment
	Catalog  AppCatalog
	Earnings AppEarnings
	RabbitMQ AppRabbitMQ
	Minio    AppMinio
	Seed     AppSeed
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Timezone                   string
	EndpointPrefix             string
	CorsAllowedOrigins         []string
	StoreDriver                string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
	LoginMaxAttemptsPerMinute  int
	LoginBlockTimeInMinutes    int
	// StrictStatusProgression forces doctors to advance one status at a time.
	StrictStatusProgression bool
}

type AppJWT struct {
	Secret        string
	Issuer        string
	ExpTimeInHour int
}

// AppFee holds the settlement split. The three percentages must sum to 1.0.
type AppFee struct {
	PlatformPercent float64
	DoctorPercent   float64
	AdminPercent    float64
}

type AppPayment struct {
	DefaultCurrency              string
	SettlementLockTTLInSeconds   int
	GatewayRequestTimeoutSeconds int
}

type AppCatalog struct {
	CacheTTLInMinutes int
}

type AppEarnings struct {
	ReconcileCronSpec string
}

type AppRabbitMQ struct {
	Enabled     bool
	EventsQueue string
}

type AppMinio struct {
	Enabled                     bool
	ReceiptBucket               string
	PresignedURLExpiryInMinutes int
}

// AppSeed feeds the seed command. MemoryStore asks the HTTP server to seed its
// own process-local store, which no other process can reach.
type AppSeed struct {
	MemoryStore        bool
	SuperadminEmail    string
	SuperadminPassword string
}

func (c *InternalConfig) Validate() error {
	sum := c.Fee.PlatformPercent + c.Fee.DoctorPercent + c.Fee.AdminPercent
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("fee percentages must sum to 1.0, got %.4f", sum)
	}
	if c.Fee.PlatformPercent < 0 || c.Fee.DoctorPercent < 0 || c.Fee.AdminPercent < 0 {
		return fmt.Errorf("fee percentages must not be negative")
	}
	switch c.App.StoreDriver {
	case constvars.StoreDriverMongo, constvars.StoreDriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.App.StoreDriver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret must not be empty")
	}
	return nil
}
