// Package store persists StockFolio documents in MongoDB. Documents
// are keyed by their uuid string id (never the Mongo _id), and every
// query on user-owned collections filters by user id.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound reports a missing document or one owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports a uniqueness violation (email, watchlist symbol).
	ErrDuplicate = errors.New("already exists")
)

// Store wraps a Mongo database with one method per operation the API
// needs.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to MongoDB and pings it so a bad URI fails at startup,
// not on the first request.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// Close releases the underlying connections.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) users() *mongo.Collection      { return s.db.Collection("users") }
func (s *Store) holdings() *mongo.Collection   { return s.db.Collection("holdings") }
func (s *Store) watchlist() *mongo.Collection  { return s.db.Collection("watchlist") }
func (s *Store) portfolios() *mongo.Collection { return s.db.Collection("portfolios") }
func (s *Store) alerts() *mongo.Collection     { return s.db.Collection("alerts") }
