package users

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"sort"
)

type UserMemoryRepository struct {
	DB *database.MemoryDB
}

func NewUserMemoryRepository(db *database.MemoryDB) contracts.UserRepository {
	return &UserMemoryRepository{DB: db}
}

func (r *UserMemoryRepository) Create(ctx context.Context, user *models.User) error {
	if !r.DB.Insert(ctx, constvars.MongoCollectionUsers, user.ID, *user) {
		return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("user %s already exists", user.ID))
	}
	return nil
}

func (r *UserMemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionUsers, id)
	if !ok {
		return nil, nil
	}
	user := doc.(models.User)
	return &user, nil
}

func (r *UserMemoryRepository) FindAll(ctx context.Context, filter *models.UserFilter) ([]models.User, error) {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionUsers, func(doc interface{}) bool {
		user := doc.(models.User)
		if filter == nil {
			return true
		}
		return (filter.Role == "" || user.Role == filter.Role) &&
			(filter.Status == "" || user.Status == filter.Status)
	})

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.(models.User))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *UserMemoryRepository) Update(ctx context.Context, user *models.User) error {
	r.DB.Update(ctx, constvars.MongoCollectionUsers,
		func(doc interface{}) bool { return doc.(models.User).ID == user.ID },
		func(doc interface{}) interface{} { return *user },
	)
	return nil
}

func (r *UserMemoryRepository) Delete(ctx context.Context, id string) error {
	r.DB.Delete(ctx, constvars.MongoCollectionUsers, id)
	return nil
}
