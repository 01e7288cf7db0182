package stockfolio

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"
)

// basePrices anchors mock quotes for well-known tickers so that the
// degraded mode still looks plausible in the dashboard.
var basePrices = map[string]float64{
	"AAPL":  178.50,
	"GOOGL": 141.80,
	"MSFT":  378.90,
	"AMZN":  178.25,
	"TSLA":  248.50,
	"META":  505.75,
	"NVDA":  875.30,
	"JPM":   195.40,
	"V":     275.60,
	"WMT":   165.80,
}

// MockQuote synthesizes a quote from the symbol string alone. The value
// is seeded by hashing the symbol, so repeated calls for the same symbol
// return the same numbers. Callers can tell it apart from real data by
// the IsMock flag.
func MockQuote(symbol string) Quote {
	symbol = strings.ToUpper(symbol)

	h := fnv.New64a()
	h.Write([]byte(symbol))
	r := rand.New(rand.NewSource(int64(h.Sum64())))

	base, ok := basePrices[symbol]
	if !ok {
		base = 100 + r.Float64()*200
	}
	change := (r.Float64() - 0.5) * 10

	return Quote{
		Symbol:           symbol,
		Price:            round2(base + change),
		Change:           round2(change),
		ChangePercent:    round2(change / base * 100),
		Volume:           1_000_000 + r.Int63n(49_000_000),
		PreviousClose:    round2(base),
		LatestTradingDay: time.Now().UTC().Format("2006-01-02"),
		Currency:         Classify(symbol).Currency,
		IsMock:           true,
	}
}

// PopularStocks is the static fallback for symbol search, optionally
// filtered by a case-insensitive query over symbol and name.
func PopularStocks(query string) []SearchResult {
	stocks := []SearchResult{
		{Symbol: "AAPL", Name: "Apple Inc", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "GOOGL", Name: "Alphabet Inc", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "AMZN", Name: "Amazon.com Inc", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "TSLA", Name: "Tesla Inc", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "META", Name: "Meta Platforms Inc", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "V", Name: "Visa Inc", Type: "Equity", Region: "United States", Currency: "USD"},
		{Symbol: "WMT", Name: "Walmart Inc", Type: "Equity", Region: "United States", Currency: "USD"},
	}
	if query == "" {
		return stocks
	}
	q := strings.ToLower(query)
	var out []SearchResult
	for _, s := range stocks {
		if strings.Contains(strings.ToLower(s.Symbol), q) || strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
