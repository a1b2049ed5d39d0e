package transaction

import (
	"context"
	"errors"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.uber.org/zap"
)

type mongoTransactor struct {
	client *mongo.Client
	Log    *zap.Logger
}

func NewMongoTransactor(client *mongo.Client, logger *zap.Logger) contracts.Transactor {
	return &mongoTransactor{
		client: client,
		Log:    logger,
	}
}

// WithinTransaction retries fn on transient transaction errors, so write
// conflicts between concurrent callers resolve to one committed winner.
func (t *mongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := t.client.StartSession()
	if err != nil {
		t.Log.Error("mongoTransactor.WithinTransaction error starting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBStartSession(err)
	}
	defer session.EndSession(ctx)

	txnOptions := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txnOptions)
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return customErr
		}
		t.Log.Error("mongoTransactor.WithinTransaction error committing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
