package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/stockfolio/stockfolio"
)

// Watchlist lists a user's watched symbols.
func (s *Store) Watchlist(ctx context.Context, userID string) ([]stockfolio.WatchlistItem, error) {
	cur, err := s.watchlist().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("listing watchlist: %w", err)
	}
	items := []stockfolio.WatchlistItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decoding watchlist: %w", err)
	}
	return items, nil
}

// AddWatchlistItem inserts a watched symbol. ErrDuplicate when the user
// already watches it.
func (s *Store) AddWatchlistItem(ctx context.Context, item stockfolio.WatchlistItem) error {
	count, err := s.watchlist().CountDocuments(ctx, bson.M{"user_id": item.UserID, "symbol": item.Symbol})
	if err != nil {
		return fmt.Errorf("checking watchlist for %q: %w", item.Symbol, err)
	}
	if count > 0 {
		return fmt.Errorf("symbol %q: %w", item.Symbol, ErrDuplicate)
	}
	if _, err := s.watchlist().InsertOne(ctx, item); err != nil {
		return fmt.Errorf("inserting watchlist item: %w", err)
	}
	return nil
}

// RemoveWatchlistItem deletes a watched symbol by its ticker.
func (s *Store) RemoveWatchlistItem(ctx context.Context, userID, symbol string) error {
	res, err := s.watchlist().DeleteOne(ctx, bson.M{"user_id": userID, "symbol": symbol})
	if err != nil {
		return fmt.Errorf("deleting watchlist item %q: %w", symbol, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
