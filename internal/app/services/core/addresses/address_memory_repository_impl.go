package addresses

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"sort"
	"time"
)

type AddressMemoryRepository struct {
	DB *database.MemoryDB
}

func NewAddressMemoryRepository(db *database.MemoryDB) contracts.AddressRepository {
	return &AddressMemoryRepository{DB: db}
}

func (r *AddressMemoryRepository) Create(ctx context.Context, address *models.Address) error {
	if !r.DB.Insert(ctx, constvars.MongoCollectionAddresses, address.ID, *address) {
		return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("address %s already exists", address.ID))
	}
	return nil
}

func (r *AddressMemoryRepository) FindByID(ctx context.Context, id string) (*models.Address, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionAddresses, id)
	if !ok {
		return nil, nil
	}
	address := doc.(models.Address)
	return &address, nil
}

func (r *AddressMemoryRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Address, error) {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionAddresses, func(doc interface{}) bool {
		return doc.(models.Address).OwnerID == ownerID
	})
	addresses := make([]models.Address, 0, len(docs))
	for _, doc := range docs {
		addresses = append(addresses, doc.(models.Address))
	}
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].CreatedAt.Before(addresses[j].CreatedAt) })
	return addresses, nil
}

func (r *AddressMemoryRepository) Update(ctx context.Context, address *models.Address) error {
	r.DB.Update(ctx, constvars.MongoCollectionAddresses,
		func(doc interface{}) bool { return doc.(models.Address).ID == address.ID },
		func(doc interface{}) interface{} { return *address },
	)
	return nil
}

func (r *AddressMemoryRepository) Delete(ctx context.Context, id string) error {
	r.DB.Delete(ctx, constvars.MongoCollectionAddresses, id)
	return nil
}

func (r *AddressMemoryRepository) ClearDefaultExcept(ctx context.Context, ownerID, exceptID string) error {
	now := time.Now()
	r.DB.Update(ctx, constvars.MongoCollectionAddresses,
		func(doc interface{}) bool {
			address := doc.(models.Address)
			return address.OwnerID == ownerID && address.IsDefault && address.ID != exceptID
		},
		func(doc interface{}) interface{} {
			address := doc.(models.Address)
			address.IsDefault = false
			address.UpdatedAt = now
			return address
		},
	)
	return nil
}

// EnsureOwnerGuard is a no-op: memory transactions are already serialized.
func (r *AddressMemoryRepository) EnsureOwnerGuard(ctx context.Context, ownerID string) error {
	return nil
}

func (r *AddressMemoryRepository) LockOwner(ctx context.Context, ownerID string) error {
	return nil
}
