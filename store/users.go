package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockfolio/stockfolio"
)

// CreateUser inserts a new user. ErrDuplicate when the email is taken.
func (s *Store) CreateUser(ctx context.Context, u stockfolio.User) error {
	count, err := s.users().CountDocuments(ctx, bson.M{"email": u.Email})
	if err != nil {
		return fmt.Errorf("checking email %q: %w", u.Email, err)
	}
	if count > 0 {
		return fmt.Errorf("email %q: %w", u.Email, ErrDuplicate)
	}
	if _, err := s.users().InsertOne(ctx, u); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// UserByEmail finds a user by email, hash included (login needs it).
func (s *Store) UserByEmail(ctx context.Context, email string) (stockfolio.User, error) {
	var u stockfolio.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("finding user by email: %w", err)
	}
	return u, nil
}

// UserByID finds a user by its uuid id.
func (s *Store) UserByID(ctx context.Context, id string) (stockfolio.User, error) {
	var u stockfolio.User
	err := s.users().FindOne(ctx, bson.M{"id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("finding user %s: %w", id, err)
	}
	return u, nil
}

// UpdateSettings replaces the user's provider priority and display
// currency.
func (s *Store) UpdateSettings(ctx context.Context, userID string, settings stockfolio.Settings) error {
	res, err := s.users().UpdateOne(ctx, bson.M{"id": userID}, bson.M{"$set": bson.M{
		"provider_priority": settings.ProviderPriority,
		"display_currency":  settings.DisplayCurrency,
	}})
	if err != nil {
		return fmt.Errorf("updating settings for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
