package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/stockfolio/stockfolio"
)

// Alerts lists a user's alerts, triggered ones included.
func (s *Store) Alerts(ctx context.Context, userID string) ([]stockfolio.Alert, error) {
	cur, err := s.alerts().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	alerts := []stockfolio.Alert{}
	if err := cur.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("decoding alerts: %w", err)
	}
	return alerts, nil
}

// PendingAlerts lists untriggered alerts; with userID == "" it spans
// all users (the background sweep uses that).
func (s *Store) PendingAlerts(ctx context.Context, userID string) ([]stockfolio.Alert, error) {
	filter := bson.M{"triggered": false}
	if userID != "" {
		filter["user_id"] = userID
	}
	cur, err := s.alerts().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing pending alerts: %w", err)
	}
	alerts := []stockfolio.Alert{}
	if err := cur.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("decoding pending alerts: %w", err)
	}
	return alerts, nil
}

// CreateAlert inserts an alert.
func (s *Store) CreateAlert(ctx context.Context, a stockfolio.Alert) error {
	if _, err := s.alerts().InsertOne(ctx, a); err != nil {
		return fmt.Errorf("inserting alert: %w", err)
	}
	return nil
}

// MarkTriggered flips an alert to triggered exactly once: an alert
// already triggered by a concurrent check is not matched again.
func (s *Store) MarkTriggered(ctx context.Context, id, when string) error {
	res, err := s.alerts().UpdateOne(ctx,
		bson.M{"id": id, "triggered": false},
		bson.M{"$set": bson.M{"triggered": true, "triggered_at": when}})
	if err != nil {
		return fmt.Errorf("marking alert %s triggered: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAlert removes an alert owned by userID.
func (s *Store) DeleteAlert(ctx context.Context, userID, id string) error {
	res, err := s.alerts().DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("deleting alert %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
