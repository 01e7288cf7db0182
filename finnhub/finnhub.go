// Package finnhub fetches quotes from the Finnhub REST API.
// It needs an API key (free tier is enough for the dashboard).
package finnhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stockfolio/stockfolio"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

type Client struct {
	// BaseURL is overridable in tests.
	BaseURL string
	HTTP    *http.Client
	apiKey  string
}

func New(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
	}
}

func (c *Client) Name() string { return "finnhub" }

// quotePayload is the /quote response.
//
//	{
//	  "c": 261.74,   current price
//	  "d": 2.33,     change
//	  "dp": 0.898,   percent change
//	  "h": 263.31,
//	  "l": 260.68,
//	  "o": 261.07,
//	  "pc": 259.45,  previous close
//	  "t": 1582641000
//	}
type quotePayload struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// Quote fetches the current quote for symbol. Finnhub answers unknown
// symbols with an all-zero payload rather than an error status.
func (c *Client) Quote(ctx context.Context, symbol string) (stockfolio.Quote, error) {
	if c.apiKey == "" {
		return stockfolio.Quote{}, fmt.Errorf("finnhub API key is not set")
	}
	addr := fmt.Sprintf("%s/quote?symbol=%s&token=%s", c.BaseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	var payload quotePayload
	if err := jwget(ctx, c.HTTP, addr, &payload); err != nil {
		return stockfolio.Quote{}, err
	}
	if payload.Current == 0 && payload.PreviousClose == 0 {
		return stockfolio.Quote{}, fmt.Errorf("finnhub has no data for %q", symbol)
	}

	day := ""
	if payload.Timestamp > 0 {
		day = time.Unix(payload.Timestamp, 0).UTC().Format("2006-01-02")
	}
	return stockfolio.Quote{
		Symbol:           symbol,
		Price:            payload.Current,
		Change:           payload.Change,
		ChangePercent:    payload.ChangePercent,
		PreviousClose:    payload.PreviousClose,
		LatestTradingDay: day,
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
