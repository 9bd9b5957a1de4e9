// Package store wraps the MongoDB connection used by all repositories.
//
// A *Store is injected into repositories rather than held as a package
// global, so "database not available" is an explicit state every
// operation checks up front instead of a nil deref waiting to happen.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/madad/config"
)

// Collection names. One Mongo collection per entity, lowercase.
const (
	ColUsers    = "user"
	ColVendors  = "vendor"
	ColPayments = "payment"
	ColLogs     = "log"
)

// ErrUnavailable is returned by repository operations when the store
// connection was never established or has been torn down.
var ErrUnavailable = errors.New("store: database not available")

// Store holds a live MongoDB client and database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the MongoDB connection, configures the pool and verifies
// it with a ping. Returns an error instead of exiting so the caller can
// decide to run degraded (the /test probe reports the state).
func Connect(ctx context.Context) (*Store, error) {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(config.DatabaseName()),
	}, nil
}

// Disconnect tears down the connection pool.
func (s *Store) Disconnect(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Available reports whether the store can serve operations.
func (s *Store) Available() bool {
	return s != nil && s.client != nil
}

// Users returns the user collection.
func (s *Store) Users() *mongo.Collection { return s.db.Collection(ColUsers) }

// Vendors returns the vendor collection.
func (s *Store) Vendors() *mongo.Collection { return s.db.Collection(ColVendors) }

// Payments returns the payment collection.
func (s *Store) Payments() *mongo.Collection { return s.db.Collection(ColPayments) }

// Logs returns the application log collection used by the slog Mongo sink.
func (s *Store) Logs() *mongo.Collection { return s.db.Collection(ColLogs) }

// EnsureIndexes creates the indexes the API depends on:
//
//   - 2dsphere on vendor.location for $near queries
//   - unique sparse indexes on user.email and user.phone (sparse so that
//     users registered with only one of the two don't collide on null)
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if !s.Available() {
		return ErrUnavailable
	}

	_, err := s.Vendors().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	if err != nil {
		return fmt.Errorf("store: vendor location index: %w", err)
	}

	unique := true
	sparse := true
	_, err = s.Users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: &options.IndexOptions{Unique: &unique, Sparse: &sparse},
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: &options.IndexOptions{Unique: &unique, Sparse: &sparse},
		},
	})
	if err != nil {
		return fmt.Errorf("store: user unique indexes: %w", err)
	}

	return nil
}

// CollectionNames lists the collections currently present in the database.
func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	return s.db.ListCollectionNames(ctx, bson.D{})
}
