package stockfolio

import "time"

// Document model for the Mongo collections. Ids are uuid strings and
// timestamps are RFC 3339 strings, matching the documents the service
// has always written.

// User is a registered account. The bcrypt hash never leaves the store.
type User struct {
	ID           string `bson:"id" json:"id"`
	Email        string `bson:"email" json:"email"`
	Name         string `bson:"name" json:"name"`
	PasswordHash string `bson:"password" json:"-"`
	CreatedAt    string `bson:"created_at" json:"created_at"`

	// Settings, absent on accounts that never changed them.
	ProviderPriority []string `bson:"provider_priority,omitempty" json:"provider_priority,omitempty"`
	DisplayCurrency  string   `bson:"display_currency,omitempty" json:"display_currency,omitempty"`
}

// Settings is the user-tunable part of a User.
type Settings struct {
	ProviderPriority []string `json:"provider_priority"`
	DisplayCurrency  string   `json:"display_currency"`
}

// Holding is an owned position: a number of shares of a symbol bought
// at a price on a date. A holding may belong to one named portfolio.
type Holding struct {
	ID          string  `bson:"id" json:"id"`
	Symbol      string  `bson:"symbol" json:"symbol"`
	Shares      float64 `bson:"shares" json:"shares"`
	BuyPrice    float64 `bson:"buy_price" json:"buy_price"`
	BuyDate     string  `bson:"buy_date" json:"buy_date"`
	PortfolioID string  `bson:"portfolio_id,omitempty" json:"portfolio_id,omitempty"`
	UserID      string  `bson:"user_id" json:"user_id"`
	CreatedAt   string  `bson:"created_at" json:"created_at"`
}

// WatchlistItem is a tracked symbol with no ownership quantity.
type WatchlistItem struct {
	ID      string `bson:"id" json:"id"`
	Symbol  string `bson:"symbol" json:"symbol"`
	UserID  string `bson:"user_id" json:"user_id"`
	AddedAt string `bson:"added_at" json:"added_at"`
}

// Portfolio is a named grouping of holdings. Deleting one detaches its
// holdings, it never deletes them.
type Portfolio struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	UserID    string `bson:"user_id" json:"user_id"`
	CreatedAt string `bson:"created_at" json:"created_at"`
}

// NowISO is the timestamp format stored in documents.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// TodayISO is the date format for buy dates and trading days.
func TodayISO() string {
	return time.Now().UTC().Format("2006-01-02")
}
