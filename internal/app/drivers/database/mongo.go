package database

import (
	"context"
	"homevisit-service/internal/app/config"
	"log"
	"net"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const mongoConnectTimeout = 10 * time.Second

// NewMongoDB connects to a replica set member; multi-document transactions
// are unavailable on a standalone server. Reads and writes default to
// majority so a committed settlement survives a primary failover.
func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	dbOptions := options.Client().
		SetAppName("homevisit-service").
		SetHosts([]string{net.JoinHostPort(driverConfig.MongoDB.Host, driverConfig.MongoDB.Port)}).
		SetReplicaSet(driverConfig.MongoDB.ReplicaSet).
		SetConnectTimeout(mongoConnectTimeout).
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority())
	if driverConfig.MongoDB.Username != "" {
		dbOptions.SetAuth(options.Credential{
			Username: driverConfig.MongoDB.Username,
			Password: driverConfig.MongoDB.Password,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping mongo database %s: %s", driverConfig.MongoDB.DbName, err.Error())
	}
	log.Printf("Connected to mongo database %s", driverConfig.MongoDB.DbName)
	return client
}
