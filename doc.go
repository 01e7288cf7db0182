// Package stockfolio provides the domain logic for the StockFolio
// personal-finance service: users track stock and crypto holdings,
// watchlists and price alerts, and read an aggregated view of their
// portfolio value across currencies.
//
// The core functionalities include:
//   - Quote Fetching: An ordered chain of third-party quote providers
//     (Yahoo Finance, Finnhub, Alpha Vantage, CoinGecko) tried by
//     user-configurable priority, degrading to a deterministic mock
//     quote when every provider fails.
//   - Portfolio Summary: A single pass over a user's holdings computing
//     market value, cost basis and gain/loss per holding and in total,
//     converted into a display currency through a fetched rate table.
//   - Symbol Classification: A suffix-matching table inferring the
//     exchange and native currency of a ticker.
//   - Price Alerts: Comparing current prices against stored targets and
//     flipping alerts exactly once when a target is crossed.
//
// This package serves as the foundational logic for the REST API in the
// server package and the `sf` command-line tool.
package stockfolio
