package frankfurter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	// plain client: the daily disk cache stays out of tests
	return &Client{BaseURL: srv.URL, HTTP: srv.Client()}
}

func TestRates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("base"); got != "USD" {
			t.Errorf("base = %q", got)
		}
		fmt.Fprint(w, `{"amount":1.0,"base":"USD","date":"2024-04-05","rates":{"EUR":0.9217,"GBP":0.7904,"JPY":151.62}}`)
	})

	table, err := c.Rates(context.Background(), "USD")
	if err != nil {
		t.Fatal(err)
	}
	if table.Base != "USD" || table.Date != "2024-04-05" {
		t.Errorf("table = %+v", table)
	}
	if table.Rates["EUR"] != 0.9217 || len(table.Rates) != 3 {
		t.Errorf("rates = %v", table.Rates)
	}
}

func TestRatesEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base":"XXX","rates":{}}`)
	})
	if _, err := c.Rates(context.Background(), "XXX"); err == nil {
		t.Error("want an error when no rates come back")
	}
}

func TestRatesHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	if _, err := c.Rates(context.Background(), "USD"); err == nil {
		t.Error("want an error on a non-200 status")
	}
}
