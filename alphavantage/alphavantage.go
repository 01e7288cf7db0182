// Package alphavantage fetches quotes and symbol searches from the
// Alpha Vantage API. Every value in its payloads is a string under a
// numbered key ("05. price"), hence the jsonpath + string parsing.
package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/stockfolio/stockfolio"
)

const defaultBaseURL = "https://www.alphavantage.co"

type Client struct {
	// BaseURL is overridable in tests.
	BaseURL string
	HTTP    *http.Client
	apiKey  string
}

// New creates a client. The "demo" key works for a handful of symbols,
// like the upstream demo key does.
func New(apiKey string) *Client {
	if apiKey == "" {
		apiKey = "demo"
	}
	return &Client{
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
	}
}

func (c *Client) Name() string { return "alphavantage" }

/*
	{
	  "Global Quote": {
	    "01. symbol": "AAPL",
	    "05. price": "178.7200",
	    "06. volume": "65434500",
	    "07. latest trading day": "2024-04-05",
	    "08. previous close": "177.1500",
	    "09. change": "1.5700",
	    "10. change percent": "0.8863%"
	  }
	}
*/
func (c *Client) Quote(ctx context.Context, symbol string) (stockfolio.Quote, error) {
	addr := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.BaseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	var jobj any
	if err := jwget(ctx, c.HTTP, addr, &jobj); err != nil {
		return stockfolio.Quote{}, err
	}

	// a "Note" (or lately "Information") body means the rate limit hit
	if note := str(jobj, "$.Note") + str(jobj, "$.Information"); note != "" {
		return stockfolio.Quote{}, fmt.Errorf("alphavantage limit reached: %s", note)
	}

	price, err := num(jobj, `$["Global Quote"]["05. price"]`)
	if err != nil || price == 0 {
		return stockfolio.Quote{}, fmt.Errorf("alphavantage has no quote for %q", symbol)
	}
	change, _ := num(jobj, `$["Global Quote"]["09. change"]`)
	changePct, _ := num(jobj, `$["Global Quote"]["10. change percent"]`)
	volume, _ := num(jobj, `$["Global Quote"]["06. volume"]`)
	prevClose, _ := num(jobj, `$["Global Quote"]["08. previous close"]`)

	return stockfolio.Quote{
		Symbol:           symbol,
		Price:            price,
		Change:           change,
		ChangePercent:    changePct,
		Volume:           int64(volume),
		PreviousClose:    prevClose,
		LatestTradingDay: str(jobj, `$["Global Quote"]["07. latest trading day"]`),
	}, nil
}

// str extracts a string at path, or "" when absent.
func str(jobj any, path string) string {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return ""
	}
	s, _ := jval.(string)
	return s
}

// num extracts a numeric string at path and parses it. Alpha Vantage
// percent values carry a trailing "%".
func num(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, err
	}
	s, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("value at %q is not a string: %v", path, jval)
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	return strconv.ParseFloat(s, 64)
}
