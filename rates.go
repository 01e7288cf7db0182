package stockfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable holds exchange rates against a base currency, as fetched
// from the rates provider. Rates[c] is the number of units of c per one
// unit of Base.
type RateTable struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the conversion rate from one currency to another going
// through the base, or an error when either currency is unknown.
func (t RateTable) Rate(from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	f, err := t.rateFromBase(from)
	if err != nil {
		return decimal.Zero, err
	}
	g, err := t.rateFromBase(to)
	if err != nil {
		return decimal.Zero, err
	}
	return g.Div(f), nil
}

func (t RateTable) rateFromBase(currency string) (decimal.Decimal, error) {
	if currency == t.Base {
		return decimal.NewFromInt(1), nil
	}
	r, ok := t.Rates[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate for currency %q against %s", currency, t.Base)
	}
	return decimal.NewFromFloat(r), nil
}

// Convert converts a monetary value into the target currency. A missing
// rate leaves the value untouched and reports the error, so a summary
// can degrade instead of failing entirely.
func (t RateTable) Convert(m Money, to string) (Money, error) {
	if m.Currency() == to || m.Currency() == "" {
		return M(m.value, to), nil
	}
	rate, err := t.Rate(m.Currency(), to)
	if err != nil {
		return m, err
	}
	return m.Scale(rate, to), nil
}

// RateProvider fetches a rate table for a base currency.
type RateProvider interface {
	Rates(ctx context.Context, base string) (RateTable, error)
}

// RateService caches rate tables per base currency. Rates move slowly;
// the quote TTL is plenty.
type RateService struct {
	provider RateProvider
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cachedTable
}

type cachedTable struct {
	table RateTable
	at    time.Time
}

func NewRateService(provider RateProvider) *RateService {
	return &RateService{
		provider: provider,
		ttl:      DefaultQuoteTTL,
		now:      time.Now,
		cache:    make(map[string]cachedTable),
	}
}

// Rates returns the cached or freshly fetched table for base. On fetch
// failure with a stale table in cache, the stale table is returned
// rather than nothing.
func (s *RateService) Rates(ctx context.Context, base string) (RateTable, error) {
	s.mu.Lock()
	e, ok := s.cache[base]
	s.mu.Unlock()
	if ok && s.now().Sub(e.at) < s.ttl {
		return e.table, nil
	}

	table, err := s.provider.Rates(ctx, base)
	if err != nil {
		if ok {
			return e.table, nil
		}
		return RateTable{}, fmt.Errorf("fetching rates for base %s: %w", base, err)
	}

	s.mu.Lock()
	s.cache[base] = cachedTable{table: table, at: s.now()}
	s.mu.Unlock()
	return table, nil
}
