// Package frankfurter fetches exchange-rate tables from the Frankfurter
// API (ECB reference rates). Rates are published once per working day,
// so responses go through a disk cache with daily expiry.
package frankfurter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/stockfolio/stockfolio"
)

const defaultBaseURL = "https://api.frankfurter.app"

type Client struct {
	// BaseURL is overridable in tests.
	BaseURL string
	HTTP    *http.Client
}

// New creates a client backed by the daily disk cache.
func New() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTP:    newDailyCachingClient(),
	}
}

// ratesPayload is the /latest response.
//
//	{
//	  "amount": 1.0,
//	  "base": "USD",
//	  "date": "2024-04-05",
//	  "rates": { "EUR": 0.9217, "GBP": 0.7904, "JPY": 151.62 }
//	}
type ratesPayload struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Rates fetches the latest rate table for the given base currency.
func (c *Client) Rates(ctx context.Context, base string) (stockfolio.RateTable, error) {
	addr := fmt.Sprintf("%s/latest?base=%s", c.BaseURL, url.QueryEscape(base))

	var payload ratesPayload
	if err := jwget(ctx, c.HTTP, addr, &payload); err != nil {
		return stockfolio.RateTable{}, fmt.Errorf("frankfurter rates for %s: %w", base, err)
	}
	if len(payload.Rates) == 0 {
		return stockfolio.RateTable{}, fmt.Errorf("frankfurter returned no rates for base %q", base)
	}
	return stockfolio.RateTable{
		Base:  payload.Base,
		Date:  payload.Date,
		Rates: payload.Rates,
	}, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response
// into the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
