package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockfolio/stockfolio"
)

// HoldingUpdate is a partial update; nil fields are left untouched.
type HoldingUpdate struct {
	Shares      *float64
	BuyPrice    *float64
	BuyDate     *string
	PortfolioID *string
}

func (u HoldingUpdate) set() bson.M {
	set := bson.M{}
	if u.Shares != nil {
		set["shares"] = *u.Shares
	}
	if u.BuyPrice != nil {
		set["buy_price"] = *u.BuyPrice
	}
	if u.BuyDate != nil {
		set["buy_date"] = *u.BuyDate
	}
	if u.PortfolioID != nil {
		set["portfolio_id"] = *u.PortfolioID
	}
	return set
}

// Holdings lists a user's holdings, optionally only those attached to
// one portfolio.
func (s *Store) Holdings(ctx context.Context, userID, portfolioID string) ([]stockfolio.Holding, error) {
	filter := bson.M{"user_id": userID}
	if portfolioID != "" {
		filter["portfolio_id"] = portfolioID
	}
	cur, err := s.holdings().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing holdings: %w", err)
	}
	holdings := []stockfolio.Holding{}
	if err := cur.All(ctx, &holdings); err != nil {
		return nil, fmt.Errorf("decoding holdings: %w", err)
	}
	return holdings, nil
}

// CreateHolding inserts a holding.
func (s *Store) CreateHolding(ctx context.Context, h stockfolio.Holding) error {
	if _, err := s.holdings().InsertOne(ctx, h); err != nil {
		return fmt.Errorf("inserting holding: %w", err)
	}
	return nil
}

// UpdateHolding applies a partial update to a holding owned by userID
// and returns the updated document.
func (s *Store) UpdateHolding(ctx context.Context, userID, id string, update HoldingUpdate) (stockfolio.Holding, error) {
	var h stockfolio.Holding
	filter := bson.M{"id": id, "user_id": userID}

	set := update.set()
	if len(set) > 0 {
		res, err := s.holdings().UpdateOne(ctx, filter, bson.M{"$set": set})
		if err != nil {
			return h, fmt.Errorf("updating holding %s: %w", id, err)
		}
		if res.MatchedCount == 0 {
			return h, ErrNotFound
		}
	}

	err := s.holdings().FindOne(ctx, filter).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return h, ErrNotFound
	}
	if err != nil {
		return h, fmt.Errorf("reloading holding %s: %w", id, err)
	}
	return h, nil
}

// DeleteHolding removes a holding owned by userID.
func (s *Store) DeleteHolding(ctx context.Context, userID, id string) error {
	res, err := s.holdings().DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("deleting holding %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
