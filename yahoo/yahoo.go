// Package yahoo fetches quotes from the Yahoo Finance chart API.
// No API key is needed, which is why it is the default first provider.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/stockfolio/stockfolio"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

type Client struct {
	// BaseURL is overridable in tests.
	BaseURL string
	HTTP    *http.Client
}

func New() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Name() string { return "yahoo" }

// chartPayload is the relevant subset of the chart response.
//
//	{
//	  "chart": {
//	    "result": [ { "meta": {
//	      "currency": "USD",
//	      "symbol": "AAPL",
//	      "regularMarketPrice": 178.72,
//	      "chartPreviousClose": 177.15,
//	      "regularMarketVolume": 65434500,
//	      "regularMarketTime": 1712347200
//	    } } ],
//	    "error": null
//	  }
//	}
type chartPayload struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency            string  `json:"currency"`
				Symbol              string  `json:"symbol"`
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				ChartPreviousClose  float64 `json:"chartPreviousClose"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
				RegularMarketTime   int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote fetches the current quote for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (stockfolio.Quote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.BaseURL, url.PathEscape(symbol))

	var payload chartPayload
	if err := jwget(ctx, c.HTTP, addr, &payload); err != nil {
		return stockfolio.Quote{}, err
	}
	if e := payload.Chart.Error; e != nil {
		return stockfolio.Quote{}, fmt.Errorf("yahoo chart error for %q: %s %s", symbol, e.Code, e.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return stockfolio.Quote{}, fmt.Errorf("yahoo returned no result for %q", symbol)
	}

	meta := payload.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return stockfolio.Quote{}, fmt.Errorf("yahoo returned no price for %q", symbol)
	}
	change := meta.RegularMarketPrice - meta.ChartPreviousClose
	var changePct float64
	if meta.ChartPreviousClose != 0 {
		changePct = change / meta.ChartPreviousClose * 100
	}
	day := ""
	if meta.RegularMarketTime > 0 {
		day = time.Unix(meta.RegularMarketTime, 0).UTC().Format("2006-01-02")
	}
	return stockfolio.Quote{
		Symbol:           symbol,
		Price:            meta.RegularMarketPrice,
		Change:           change,
		ChangePercent:    changePct,
		Volume:           meta.RegularMarketVolume,
		PreviousClose:    meta.ChartPreviousClose,
		LatestTradingDay: day,
		Currency:         meta.Currency,
	}, nil
}
