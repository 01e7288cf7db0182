package stockfolio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// DefaultQuoteTTL is how long a fetched quote stays fresh. Dashboards
// poll much more often than prices need refreshing.
const DefaultQuoteTTL = 5 * time.Minute

// MaxBatchSymbols caps a single batch-quote request.
const MaxBatchSymbols = 20

// QuoteService resolves quotes through an ordered chain of providers
// with an in-memory TTL cache and a deterministic mock fallback.
//
// The zero priority (nil) keeps the registration order. A user-supplied
// priority reorders the chain: named providers first, in the given
// order, then the remaining ones.
type QuoteService struct {
	providers []QuoteProvider
	ttl       time.Duration
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]cachedQuote
}

type cachedQuote struct {
	quote Quote
	at    time.Time
}

// NewQuoteService creates a service trying the given providers in order.
func NewQuoteService(providers ...QuoteProvider) *QuoteService {
	return &QuoteService{
		providers: providers,
		ttl:       DefaultQuoteTTL,
		now:       time.Now,
		cache:     make(map[string]cachedQuote),
	}
}

// ProviderNames returns the names of the registered providers, in
// default order. Settings validation uses it.
func (s *QuoteService) ProviderNames() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Quote returns the current quote for symbol. Providers are tried in
// priority order; the first success wins and is cached. When every
// provider fails, a mock quote is returned and the joined provider
// errors are logged, not returned: the dashboard always gets a number.
func (s *QuoteService) Quote(ctx context.Context, symbol string, priority []string) Quote {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if q, ok := s.cached(symbol); ok {
		return q
	}

	var errs error
	for _, p := range s.reorder(priority) {
		q, err := p.Quote(ctx, symbol)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		q.Provider = p.Name()
		if q.Currency == "" {
			q.Currency = Classify(symbol).Currency
		}
		s.store(symbol, q)
		return q
	}

	if errs != nil {
		log.Printf("all providers failed for %q, serving mock quote: %v", symbol, errs)
	}
	return MockQuote(symbol)
}

// Quotes resolves a batch of symbols, at most MaxBatchSymbols of them.
func (s *QuoteService) Quotes(ctx context.Context, symbols []string, priority []string) map[string]Quote {
	if len(symbols) > MaxBatchSymbols {
		symbols = symbols[:MaxBatchSymbols]
	}
	quotes := make(map[string]Quote, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			continue
		}
		if _, done := quotes[sym]; done {
			continue
		}
		quotes[sym] = s.Quote(ctx, sym, priority)
	}
	return quotes
}

// reorder applies a user priority to the provider chain. Unknown names
// are ignored; providers not named keep their relative order after the
// named ones.
func (s *QuoteService) reorder(priority []string) []QuoteProvider {
	if len(priority) == 0 {
		return s.providers
	}
	byName := make(map[string]QuoteProvider, len(s.providers))
	for _, p := range s.providers {
		byName[p.Name()] = p
	}
	ordered := make([]QuoteProvider, 0, len(s.providers))
	taken := make(map[string]bool, len(priority))
	for _, name := range priority {
		if p, ok := byName[name]; ok && !taken[name] {
			ordered = append(ordered, p)
			taken[name] = true
		}
	}
	for _, p := range s.providers {
		if !taken[p.Name()] {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

func (s *QuoteService) cached(symbol string) (Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[symbol]
	if !ok || s.now().Sub(e.at) >= s.ttl {
		return Quote{}, false
	}
	return e.quote, true
}

func (s *QuoteService) store(symbol string, q Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[symbol] = cachedQuote{quote: q, at: s.now()}
}
