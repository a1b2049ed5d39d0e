package main

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/drivers/logger"
	"homevisit-service/internal/app/services/core/auth"
	"homevisit-service/internal/app/services/core/catalog"
	"homevisit-service/internal/app/services/core/users"
	"homevisit-service/internal/app/services/shared/jwtmanager"
	"homevisit-service/internal/app/services/shared/redis"
	"homevisit-service/internal/pkg/constvars"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const seedTimeout = 2 * time.Minute

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data into the home visit store",
	}
	rootCmd.AddCommand(catalogCmd(driverConfig, internalConfig, log))
	rootCmd.AddCommand(superadminCmd(driverConfig, internalConfig, log))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func catalogCmd(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Upsert the built-in service catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
			defer cancel()

			client, err := connect(ctx, driverConfig, internalConfig)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			// Seeding drops the cached catalog the servers read from.
			redisClient := database.NewRedisClient(driverConfig)
			defer redisClient.Close()

			catalogUsecase := catalog.NewCatalogUsecase(
				catalog.NewCatalogMongoRepository(client, driverConfig.MongoDB.DbName),
				redis.NewRedisRepository(redisClient),
				time.Duration(internalConfig.Catalog.CacheTTLInMinutes)*time.Minute,
				internalConfig.Payment.DefaultCurrency,
				zap.NewNop(),
			)
			count, err := catalogUsecase.Seed(ctx)
			if err != nil {
				log.WithError(err).Error("Failed to seed catalog")
				return err
			}
			log.WithField("documents", count).Info("Catalog seeded")
			return nil
		},
	}
}

func superadminCmd(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, log *logrus.Logger) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "superadmin",
		Short: "Create the first superadmin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("both --email and --password are required")
			}
			if err := internalConfig.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
			defer cancel()

			client, err := connect(ctx, driverConfig, internalConfig)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			dbName := driverConfig.MongoDB.DbName
			jwtManager, err := jwtmanager.NewJWTManager(internalConfig, zap.NewNop())
			if err != nil {
				return err
			}
			identityProvider := auth.NewLocalIdentityProvider(auth.NewIdentityMongoRepository(client, dbName), jwtManager, zap.NewNop())
			userUsecase := users.NewUserUsecase(users.NewUserMongoRepository(client, dbName), identityProvider, zap.NewNop())

			created, err := users.BootstrapSuperadmin(ctx, identityProvider, userUsecase, email, password)
			if err != nil {
				log.WithError(err).Error("Failed to create superadmin")
				return err
			}
			if !created {
				log.WithField("email", email).Info("Superadmin already exists")
				return nil
			}
			log.WithField("email", email).Info("Superadmin created")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", internalConfig.Seed.SuperadminEmail, "superadmin email")
	cmd.Flags().StringVar(&password, "password", internalConfig.Seed.SuperadminPassword, "superadmin password")
	return cmd
}

func connect(ctx context.Context, driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) (*mongo.Client, error) {
	if internalConfig.App.StoreDriver == constvars.StoreDriverMemory {
		return nil, fmt.Errorf("the memory store lives inside the server process, set SEED_MEMORY_STORE=true there instead")
	}
	client := database.NewMongoDB(driverConfig)
	if err := database.EnsureMongoIndexes(ctx, client, driverConfig.MongoDB.DbName); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
