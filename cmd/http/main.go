package main

import (
	"context"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/delivery/http/controllers"
	"homevisit-service/internal/app/delivery/http/middlewares"
	"homevisit-service/internal/app/delivery/http/routers"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/drivers/logger"
	"homevisit-service/internal/app/drivers/messaging"
	"homevisit-service/internal/app/drivers/storage"
	"homevisit-service/internal/app/services/core/addresses"
	"homevisit-service/internal/app/services/core/appointments"
	"homevisit-service/internal/app/services/core/assignments"
	"homevisit-service/internal/app/services/core/auth"
	"homevisit-service/internal/app/services/core/catalog"
	"homevisit-service/internal/app/services/core/earnings"
	"homevisit-service/internal/app/services/core/feedbacks"
	"homevisit-service/internal/app/services/core/payments"
	"homevisit-service/internal/app/services/core/roles"
	"homevisit-service/internal/app/services/core/users"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/app/services/shared/jwtmanager"
	"homevisit-service/internal/app/services/shared/locker"
	"homevisit-service/internal/app/services/shared/payment_gateway"
	"homevisit-service/internal/app/services/shared/redis"
	receiptstorage "homevisit-service/internal/app/services/shared/storage"
	"homevisit-service/internal/app/services/shared/transaction"
	"homevisit-service/internal/pkg/constvars"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type repositories struct {
	transactor  contracts.Transactor
	identity    contracts.IdentityRepository
	user        contracts.UserRepository
	address     contracts.AddressRepository
	catalog     contracts.CatalogRepository
	appointment contracts.AppointmentRepository
	payment     contracts.PaymentRepository
	earnings    contracts.EarningsRepository
	feedback    contracts.FeedbackRepository
	cache       contracts.RedisRepository
	locker      contracts.LockerService
}

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	if err := internalConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("addr", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx := context.Background()
	log := bootstrap.Logger
	cfg := bootstrap.InternalConfig

	repos, err := setupRepositories(ctx, bootstrap)
	if err != nil {
		return err
	}

	// Domain events
	publisher := events.NewLoggingPublisher(log)
	if cfg.RabbitMQ.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(bootstrap.DriverConfig)
		publisher, err = events.NewRabbitMQPublisher(bootstrap.RabbitMQ, cfg.RabbitMQ.EventsQueue, log)
		if err != nil {
			return err
		}
	}

	// Receipts
	receiptArchive := receiptstorage.NewDisabledReceiptArchive()
	if cfg.Minio.Enabled {
		bootstrap.Minio = storage.NewMinio(bootstrap.DriverConfig, cfg)
		receiptArchive = receiptstorage.NewMinioReceiptArchive(bootstrap.Minio, cfg.Minio.ReceiptBucket, log)
	}

	// Identity
	jwtManager, err := jwtmanager.NewJWTManager(cfg, log)
	if err != nil {
		return err
	}
	identityProvider := auth.NewLocalIdentityProvider(repos.identity, jwtManager, log)

	// RBAC
	enforcer, err := roles.NewEnforcer(routers.BasePath(cfg))
	if err != nil {
		return err
	}
	roleUsecase := roles.NewCasbinRoleUsecase(enforcer)

	// Usecases
	catalogUsecase := catalog.NewCatalogUsecase(
		repos.catalog,
		repos.cache,
		time.Duration(cfg.Catalog.CacheTTLInMinutes)*time.Minute,
		cfg.Payment.DefaultCurrency,
		log,
	)
	userUsecase := users.NewUserUsecase(repos.user, identityProvider, log)
	addressUsecase := addresses.NewAddressUsecase(repos.transactor, repos.address, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		repos.transactor,
		repos.appointment,
		repos.address,
		repos.catalog,
		publisher,
		cfg.App.StrictStatusProgression,
		log,
	)
	assignmentUsecase := assignments.NewAssignmentUsecase(
		repos.transactor,
		repos.appointment,
		repos.user,
		repos.address,
		repos.catalog,
		publisher,
		log,
	)
	paymentUsecase := payments.NewPaymentUsecase(
		repos.transactor,
		repos.appointment,
		repos.payment,
		repos.earnings,
		payment_gateway.NewApprovingGateway(log),
		repos.locker,
		receiptArchive,
		publisher,
		cfg,
		log,
	)
	feedbackUsecase := feedbacks.NewFeedbackUsecase(repos.transactor, repos.appointment, repos.feedback, publisher, log)
	earningsUsecase := earnings.NewEarningsUsecase(repos.appointment, repos.payment, repos.earnings, repos.user, log)

	if cfg.App.StoreDriver == constvars.StoreDriverMemory && cfg.Seed.MemoryStore {
		if err := seedMemoryStore(ctx, bootstrap, catalogUsecase, identityProvider, userUsecase); err != nil {
			return err
		}
	}

	// Background reconciliation of earnings summaries
	worker := earnings.NewWorker(log, cfg, repos.locker, earningsUsecase)
	worker.Start(ctx)
	bootstrap.WorkerStop = worker.Stop

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares.NewMiddlewares(log, auth.NewIdentityGate(identityProvider), roleUsecase, cfg),
		&routers.Controllers{
			Auth:        controllers.NewAuthController(log, auth.NewAuthUsecase(identityProvider, log)),
			Catalog:     controllers.NewCatalogController(log, catalogUsecase),
			User:        controllers.NewUserController(log, userUsecase),
			Address:     controllers.NewAddressController(log, addressUsecase),
			Appointment: controllers.NewAppointmentController(log, appointmentUsecase),
			Assignment:  controllers.NewAssignmentController(log, assignmentUsecase),
			Payment:     controllers.NewPaymentController(log, paymentUsecase),
			Feedback:    controllers.NewFeedbackController(log, feedbackUsecase),
			Earnings:    controllers.NewEarningsController(log, earningsUsecase),
			Superadmin:  controllers.NewSuperadminController(log, roleUsecase),
		},
	)
	return nil
}

func setupRepositories(ctx context.Context, bootstrap *config.Bootstrap) (*repositories, error) {
	log := bootstrap.Logger

	switch bootstrap.InternalConfig.App.StoreDriver {
	case constvars.StoreDriverMemory:
		log.Warn("Using the process-local memory store, data is lost on restart")
		db := database.NewMemoryDB()
		return &repositories{
			transactor:  transaction.NewMemoryTransactor(db),
			identity:    auth.NewIdentityMemoryRepository(db),
			user:        users.NewUserMemoryRepository(db),
			address:     addresses.NewAddressMemoryRepository(db),
			catalog:     catalog.NewCatalogMemoryRepository(db),
			appointment: appointments.NewAppointmentMemoryRepository(db),
			payment:     payments.NewPaymentMemoryRepository(db),
			earnings:    earnings.NewEarningsMemoryRepository(db),
			feedback:    feedbacks.NewFeedbackMemoryRepository(db),
			locker:      locker.NewMemoryLockService(),
		}, nil

	default:
		dbName := bootstrap.DriverConfig.MongoDB.DbName
		bootstrap.MongoDB = database.NewMongoDB(bootstrap.DriverConfig)
		if err := database.EnsureMongoIndexes(ctx, bootstrap.MongoDB, dbName); err != nil {
			return nil, err
		}

		bootstrap.Redis = database.NewRedisClient(bootstrap.DriverConfig)
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)

		return &repositories{
			transactor:  transaction.NewMongoTransactor(bootstrap.MongoDB, log),
			identity:    auth.NewIdentityMongoRepository(bootstrap.MongoDB, dbName),
			user:        users.NewUserMongoRepository(bootstrap.MongoDB, dbName),
			address:     addresses.NewAddressMongoRepository(bootstrap.MongoDB, dbName),
			catalog:     catalog.NewCatalogMongoRepository(bootstrap.MongoDB, dbName),
			appointment: appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName),
			payment:     payments.NewPaymentMongoRepository(bootstrap.MongoDB, dbName),
			earnings:    earnings.NewEarningsMongoRepository(bootstrap.MongoDB, dbName),
			feedback:    feedbacks.NewFeedbackMongoRepository(bootstrap.MongoDB, dbName),
			cache:       redisRepository,
			locker:      locker.NewLockService(redisRepository, log),
		}, nil
	}
}

// seedMemoryStore fills a memory store that cmd/seed has no way to reach.
func seedMemoryStore(
	ctx context.Context,
	bootstrap *config.Bootstrap,
	catalogUsecase contracts.CatalogUsecase,
	identityProvider contracts.IdentityProvider,
	userUsecase contracts.UserUsecase,
) error {
	log := bootstrap.Logger
	seedConfig := bootstrap.InternalConfig.Seed

	count, err := catalogUsecase.Seed(ctx)
	if err != nil {
		return err
	}
	log.Info("Seeded memory store catalog", zap.Int(constvars.LoggingCountKey, count))

	if seedConfig.SuperadminEmail == "" {
		return nil
	}
	created, err := users.BootstrapSuperadmin(ctx, identityProvider, userUsecase, seedConfig.SuperadminEmail, seedConfig.SuperadminPassword)
	if err != nil {
		return err
	}
	log.Info("Seeded memory store superadmin", zap.Bool("created", created))
	return nil
}
