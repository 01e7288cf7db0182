package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is the in-memory Store used by the handler tests. It mimics
// the Mongo store's error contract: ErrDuplicate on unique violations,
// ErrNotFound on misses.
type fakeStore struct {
	mu         sync.Mutex
	users      map[string]stockfolio.User // by id
	holdings   map[string]stockfolio.Holding
	watchlist  map[string]stockfolio.WatchlistItem
	portfolios map[string]stockfolio.Portfolio
	alerts     map[string]stockfolio.Alert
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[string]stockfolio.User{},
		holdings:   map[string]stockfolio.Holding{},
		watchlist:  map[string]stockfolio.WatchlistItem{},
		portfolios: map[string]stockfolio.Portfolio{},
		alerts:     map[string]stockfolio.Alert{},
	}
}

func (f *fakeStore) CreateUser(_ context.Context, u stockfolio.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.users {
		if e.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (stockfolio.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return stockfolio.User{}, store.ErrNotFound
}

func (f *fakeStore) UserByID(_ context.Context, id string) (stockfolio.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return stockfolio.User{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) UpdateSettings(_ context.Context, userID string, settings stockfolio.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.ProviderPriority = settings.ProviderPriority
	u.DisplayCurrency = settings.DisplayCurrency
	f.users[userID] = u
	return nil
}

func (f *fakeStore) Holdings(_ context.Context, userID, portfolioID string) ([]stockfolio.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []stockfolio.Holding{}
	for _, h := range f.holdings {
		if h.UserID == userID && (portfolioID == "" || h.PortfolioID == portfolioID) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateHolding(_ context.Context, h stockfolio.Holding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdings[h.ID] = h
	return nil
}

func (f *fakeStore) UpdateHolding(_ context.Context, userID, id string, update store.HoldingUpdate) (stockfolio.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holdings[id]
	if !ok || h.UserID != userID {
		return stockfolio.Holding{}, store.ErrNotFound
	}
	if update.Shares != nil {
		h.Shares = *update.Shares
	}
	if update.BuyPrice != nil {
		h.BuyPrice = *update.BuyPrice
	}
	if update.BuyDate != nil {
		h.BuyDate = *update.BuyDate
	}
	if update.PortfolioID != nil {
		h.PortfolioID = *update.PortfolioID
	}
	f.holdings[id] = h
	return h, nil
}

func (f *fakeStore) DeleteHolding(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.holdings[id]
	if !ok || h.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.holdings, id)
	return nil
}

func (f *fakeStore) Watchlist(_ context.Context, userID string) ([]stockfolio.WatchlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []stockfolio.WatchlistItem{}
	for _, w := range f.watchlist {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) AddWatchlistItem(_ context.Context, item stockfolio.WatchlistItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.watchlist {
		if w.UserID == item.UserID && w.Symbol == item.Symbol {
			return store.ErrDuplicate
		}
	}
	f.watchlist[item.ID] = item
	return nil
}

func (f *fakeStore) RemoveWatchlistItem(_ context.Context, userID, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, w := range f.watchlist {
		if w.UserID == userID && w.Symbol == symbol {
			delete(f.watchlist, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) Portfolios(_ context.Context, userID string) ([]stockfolio.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []stockfolio.Portfolio{}
	for _, p := range f.portfolios {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreatePortfolio(_ context.Context, p stockfolio.Portfolio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.portfolios[p.ID] = p
	return nil
}

func (f *fakeStore) RenamePortfolio(_ context.Context, userID, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.portfolios[id]
	if !ok || p.UserID != userID {
		return store.ErrNotFound
	}
	p.Name = name
	f.portfolios[id] = p
	return nil
}

func (f *fakeStore) DeletePortfolio(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.portfolios[id]
	if !ok || p.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.portfolios, id)
	// detach, never delete, the holdings
	for hid, h := range f.holdings {
		if h.PortfolioID == id {
			h.PortfolioID = ""
			f.holdings[hid] = h
		}
	}
	return nil
}

func (f *fakeStore) Alerts(_ context.Context, userID string) ([]stockfolio.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []stockfolio.Alert{}
	for _, a := range f.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) PendingAlerts(_ context.Context, userID string) ([]stockfolio.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []stockfolio.Alert{}
	for _, a := range f.alerts {
		if a.Triggered {
			continue
		}
		if userID == "" || a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateAlert(_ context.Context, a stockfolio.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts[a.ID] = a
	return nil
}

func (f *fakeStore) MarkTriggered(_ context.Context, id, when string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok || a.Triggered {
		return store.ErrNotFound
	}
	a.Triggered = true
	a.TriggeredAt = when
	f.alerts[id] = a
	return nil
}

func (f *fakeStore) DeleteAlert(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok || a.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.alerts, id)
	return nil
}

// stubProvider is a canned quote source for handler tests.
type stubProvider struct {
	name   string
	quotes map[string]stockfolio.Quote
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Quote(_ context.Context, symbol string) (stockfolio.Quote, error) {
	q, ok := p.quotes[symbol]
	if !ok {
		return stockfolio.Quote{}, fmt.Errorf("unknown symbol %q", symbol)
	}
	return q, nil
}

type stubRates struct {
	table stockfolio.RateTable
	err   error
}

func (p *stubRates) Rates(context.Context, string) (stockfolio.RateTable, error) {
	return p.table, p.err
}

type stubSearcher struct {
	results []stockfolio.SearchResult
	err     error
}

func (p *stubSearcher) Search(context.Context, string) ([]stockfolio.SearchResult, error) {
	return p.results, p.err
}

// testServer bundles a server over the fake store with one registered,
// logged-in user.
type testServer struct {
	*Server
	store *fakeStore
	token string
	user  stockfolio.User
}

func newTestServer(t *testing.T, provider *stubProvider) *testServer {
	t.Helper()
	fs := newFakeStore()
	var providers []stockfolio.QuoteProvider
	if provider != nil {
		providers = append(providers, provider)
	}
	srv := New(Options{
		Store:     fs,
		Quotes:    stockfolio.NewQuoteService(providers...),
		Rates:     stockfolio.NewRateService(&stubRates{table: stockfolio.RateTable{Base: "USD", Rates: map[string]float64{"EUR": 0.9}}}),
		Search:    &stubSearcher{},
		JWTSecret: "test-secret",
	})
	ts := &testServer{Server: srv, store: fs}

	var reply struct {
		AccessToken string          `json:"access_token"`
		User        stockfolio.User `json:"user"`
	}
	w := ts.do(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"jo@example.com","password":"secret1","name":"Jo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("register failed: %d %s", w.Code, w.Body)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatal(err)
	}
	ts.token = reply.AccessToken
	ts.user = reply.User
	return ts
}

// do performs a request against the router and records the response.
func (ts *testServer) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body != "" {
		r = bytes.NewReader([]byte(body))
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON body into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body, err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(t, http.MethodGet, "/api/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["status"] != "healthy" {
		t.Errorf("body = %v", body)
	}
}

func TestRoot(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(t, http.MethodGet, "/api/", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/holdings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	srv := New(Options{
		Store:     newFakeStore(),
		Quotes:    stockfolio.NewQuoteService(),
		Rates:     stockfolio.NewRateService(&stubRates{}),
		Search:    &stubSearcher{},
		JWTSecret: "test-secret",
		Origins:   []string{"https://app.example.com"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q for a foreign origin", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow-origin = %q for the allowed origin", got)
	}
}
