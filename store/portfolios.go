package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/stockfolio/stockfolio"
)

// Portfolios lists a user's portfolios.
func (s *Store) Portfolios(ctx context.Context, userID string) ([]stockfolio.Portfolio, error) {
	cur, err := s.portfolios().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	portfolios := []stockfolio.Portfolio{}
	if err := cur.All(ctx, &portfolios); err != nil {
		return nil, fmt.Errorf("decoding portfolios: %w", err)
	}
	return portfolios, nil
}

// CreatePortfolio inserts a portfolio.
func (s *Store) CreatePortfolio(ctx context.Context, p stockfolio.Portfolio) error {
	if _, err := s.portfolios().InsertOne(ctx, p); err != nil {
		return fmt.Errorf("inserting portfolio: %w", err)
	}
	return nil
}

// RenamePortfolio changes a portfolio's name.
func (s *Store) RenamePortfolio(ctx context.Context, userID, id, name string) error {
	res, err := s.portfolios().UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return fmt.Errorf("renaming portfolio %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePortfolio removes a portfolio and detaches its holdings. The
// holdings themselves survive, they just become unassigned.
func (s *Store) DeletePortfolio(ctx context.Context, userID, id string) error {
	res, err := s.portfolios().DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("deleting portfolio %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = s.holdings().UpdateMany(ctx,
		bson.M{"user_id": userID, "portfolio_id": id},
		bson.M{"$unset": bson.M{"portfolio_id": ""}})
	if err != nil {
		return fmt.Errorf("detaching holdings of portfolio %s: %w", id, err)
	}
	return nil
}
