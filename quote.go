package stockfolio

import "context"

// Quote is a point-in-time price snapshot for a symbol, normalized
// across providers.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercent    float64 `json:"change_percent"`
	Volume           int64   `json:"volume"`
	PreviousClose    float64 `json:"previous_close"`
	LatestTradingDay string  `json:"latest_trading_day"`
	Currency         string  `json:"currency,omitempty"`
	Provider         string  `json:"provider,omitempty"`
	IsMock           bool    `json:"is_mock,omitempty"`
}

// QuoteProvider is a single external quote source. Implementations live
// in the per-provider packages (yahoo, finnhub, alphavantage, coingecko).
type QuoteProvider interface {
	// Name is the stable identifier used in a user's provider priority.
	Name() string
	// Quote fetches the current quote for the given symbol.
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// SearchResult is one match from a symbol search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
}

// SymbolSearcher searches an external catalog of securities by keyword.
type SymbolSearcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
