package coingecko

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{BaseURL: srv.URL, HTTP: srv.Client()}
}

func TestQuote(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Errorf("ids = %q", got)
		}
		fmt.Fprint(w, `{"bitcoin":{"usd":67412.12,"usd_24h_vol":28304912345.1,"usd_24h_change":2.0,"last_updated_at":1712345678}}`)
	})

	q, err := c.Quote(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatal(err)
	}
	if q.Price != 67412.12 || q.ChangePercent != 2.0 || q.Currency != "USD" {
		t.Errorf("quote = %+v", q)
	}
	// previous price implied by the 24h move: price / 1.02
	wantPrev := 67412.12 / 1.02
	if math.Abs(q.PreviousClose-wantPrev) > 1e-6 {
		t.Errorf("previous close = %v, want %v", q.PreviousClose, wantPrev)
	}
	if math.Abs(q.Change-(67412.12-wantPrev)) > 1e-6 {
		t.Errorf("change = %v", q.Change)
	}
}

func TestQuoteUnknownCoin(t *testing.T) {
	c := &Client{BaseURL: "http://invalid.localhost", HTTP: http.DefaultClient}
	// not a coin: must refuse before any network call
	if _, err := c.Quote(context.Background(), "AAPL"); err == nil {
		t.Error("want an error for a non-coin symbol")
	}
}

func TestQuoteTotalCollapse(t *testing.T) {
	// a -100% move would imply an infinite previous price
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bitcoin":{"usd":0.01,"usd_24h_change":-100.0}}`)
	})

	q, err := c.Quote(context.Background(), "BTC")
	if err != nil {
		t.Fatal(err)
	}
	if q.PreviousClose != 0 || math.IsInf(q.Change, 0) || math.IsNaN(q.Change) {
		t.Errorf("quote = %+v, want a finite zero previous close", q)
	}
}

func TestQuoteMissingPrice(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	if _, err := c.Quote(context.Background(), "BTC"); err == nil {
		t.Error("want an error when the coin is absent from the payload")
	}
}
