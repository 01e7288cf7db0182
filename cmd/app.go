// Package cmd implements the sf CLI application.
package cmd

import (
	"github.com/google/subcommands"

	"github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/alphavantage"
	"github.com/stockfolio/stockfolio/coingecko"
	"github.com/stockfolio/stockfolio/config"
	"github.com/stockfolio/stockfolio/finnhub"
	"github.com/stockfolio/stockfolio/frankfurter"
	"github.com/stockfolio/stockfolio/yahoo"
)

// Register the subcommands.
// A main package calls Register() to wire subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")

	c.Register(&quoteCmd{}, "market data")
	c.Register(&searchCmd{}, "market data")
	c.Register(&ratesCmd{}, "market data")
	c.Register(&summaryCmd{}, "market data")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "assistant")
}

// newQuoteService builds the provider chain in the default order:
// keyless providers first, crypto last since it declines stock tickers
// cheaply anyway.
func newQuoteService(cfg config.Config) *stockfolio.QuoteService {
	providers := []stockfolio.QuoteProvider{yahoo.New()}
	if cfg.FinnhubKey != "" {
		providers = append(providers, finnhub.New(cfg.FinnhubKey))
	}
	providers = append(providers, alphavantage.New(cfg.AlphaVantageKey), coingecko.New())
	return stockfolio.NewQuoteService(providers...)
}

func newRateService() *stockfolio.RateService {
	return stockfolio.NewRateService(frankfurter.New())
}

func newSearcher(cfg config.Config) stockfolio.SymbolSearcher {
	return alphavantage.New(cfg.AlphaVantageKey)
}
