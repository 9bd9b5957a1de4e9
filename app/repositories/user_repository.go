package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/internal/store"
	"github.com/shashiranjanraj/madad/pkg/metrics"
)

// UserRepository handles user documents in MongoDB.
type UserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// FindByEmail looks up a user by email. The bool reports whether a
// matching document exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByPhone looks up a user by phone number.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (models.User, bool, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

// FindByID looks up a user by its ObjectID hex string. A malformed id is
// reported as not-found: the token subject is opaque to callers.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, false, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (models.User, bool, error) {
	if !r.store.Available() {
		return models.User{}, false, store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColUsers, "find", time.Now())

	var user models.User
	err := r.store.Users().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("user find: %w", err)
	}
	return user, true, nil
}

// Create inserts the user and fills in the assigned ObjectID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if !r.store.Available() {
		return store.ErrUnavailable
	}
	defer metrics.ObserveStoreOp(store.ColUsers, "insert", time.Now())

	res, err := r.store.Users().InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("user insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}
