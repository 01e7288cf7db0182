// Package coingecko fetches crypto prices from the CoinGecko simple
// price API. It only answers for symbols that map to a known coin id;
// stock tickers fall through to the next provider.
package coingecko

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

const defaultBaseURL = "https://api.coingecko.com/api/v3"

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

func (c *Client) Name() string { return "coingecko" }

// pricePayload maps coin id to its quote fields.
//
//	{ "bitcoin": {
//	    "usd": 67412.12,
//	    "usd_24h_vol": 28304912345.1,
//	    "usd_24h_change": 1.84,
//	    "last_updated_at": 1712345678
//	} }
type pricePayload map[string]struct {
	USD         float64 `json:"usd"`
	Volume      float64 `json:"usd_24h_vol"`
	Change24Pct float64 `json:"usd_24h_change"`
	UpdatedAt   int64   `json:"last_updated_at"`
}

// Quote fetches the current USD price for a crypto symbol such as
// "BTC-USD" or "ETH".
func (c *Client) Quote(ctx context.Context, symbol string) (stockfolio.Quote, error) {
	id := stockfolio.CoinID(symbol)
	if id == "" {
		return stockfolio.Quote{}, fmt.Errorf("%q is not a known coin", symbol)
	}

	addr := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_vol=true&include_24hr_change=true&include_last_updated_at=true",
		c.BaseURL, url.QueryEscape(id))

	var payload pricePayload
	if err := jwget(ctx, c.HTTP, addr, &payload); err != nil {
		return stockfolio.Quote{}, err
	}
	coin, ok := payload[id]
	if !ok || coin.USD == 0 {
		return stockfolio.Quote{}, fmt.Errorf("coingecko has no price for %q (%s)", symbol, id)
	}

	// the API reports the 24h move as a percentage; recover the
	// absolute change and the implied previous price from it. A -100%
	// move has no finite previous price.
	previous := 0.0
	if d := 1 + coin.Change24Pct/100; d != 0 {
		previous = coin.USD / d
	}
	day := ""
	if coin.UpdatedAt > 0 {
		day = time.Unix(coin.UpdatedAt, 0).UTC().Format("2006-01-02")
	}
	return stockfolio.Quote{
		Symbol:           symbol,
		Price:            coin.USD,
		Change:           coin.USD - previous,
		ChangePercent:    coin.Change24Pct,
		Volume:           int64(coin.Volume),
		PreviousClose:    previous,
		LatestTradingDay: day,
		Currency:         "USD",
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
