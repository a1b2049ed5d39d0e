package auth

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
)

type IdentityMemoryRepository struct {
	DB *database.MemoryDB
}

func NewIdentityMemoryRepository(db *database.MemoryDB) contracts.IdentityRepository {
	return &IdentityMemoryRepository{DB: db}
}

func (r *IdentityMemoryRepository) Create(ctx context.Context, identity *models.Identity) error {
	return r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		if r.emailTaken(ctx, identity.Email, identity.ID) {
			return exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", identity.Email))
		}
		if !r.DB.Insert(ctx, constvars.MongoCollectionIdentities, identity.ID, *identity) {
			return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("identity %s already exists", identity.ID))
		}
		return nil
	})
}

func (r *IdentityMemoryRepository) FindByID(ctx context.Context, id string) (*models.Identity, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionIdentities, id)
	if !ok {
		return nil, nil
	}
	identity := doc.(models.Identity)
	return &identity, nil
}

func (r *IdentityMemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionIdentities, func(doc interface{}) bool {
		return doc.(models.Identity).Email == email
	})
	if len(docs) == 0 {
		return nil, nil
	}
	identity := docs[0].(models.Identity)
	return &identity, nil
}

func (r *IdentityMemoryRepository) Update(ctx context.Context, identity *models.Identity) error {
	return r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		if r.emailTaken(ctx, identity.Email, identity.ID) {
			return exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", identity.Email))
		}
		if _, ok := r.DB.Get(ctx, constvars.MongoCollectionIdentities, identity.ID); ok {
			r.DB.Put(ctx, constvars.MongoCollectionIdentities, identity.ID, *identity)
		}
		return nil
	})
}

func (r *IdentityMemoryRepository) Delete(ctx context.Context, id string) error {
	r.DB.Delete(ctx, constvars.MongoCollectionIdentities, id)
	return nil
}

func (r *IdentityMemoryRepository) emailTaken(ctx context.Context, email, exceptID string) bool {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionIdentities, func(doc interface{}) bool {
		identity := doc.(models.Identity)
		return identity.Email == email && identity.ID != exceptID
	})
	return len(docs) > 0
}
