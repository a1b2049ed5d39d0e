package transaction

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
)

type memoryTransactor struct {
	db *database.MemoryDB
}

func NewMemoryTransactor(db *database.MemoryDB) contracts.Transactor {
	return &memoryTransactor{db: db}
}

func (t *memoryTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.RunInTransaction(ctx, fn)
}
