package stockfolio

import "strings"

// AssetKind distinguishes the two asset classes the service tracks.
type AssetKind string

const (
	Stock  AssetKind = "stock"
	Crypto AssetKind = "crypto"
)

// SymbolInfo is the exchange and native currency inferred from a raw
// ticker symbol.
type SymbolInfo struct {
	Exchange string
	Currency string
	Kind     AssetKind
}

// suffixes maps a ticker suffix to its exchange and trading currency.
// This mirrors the Yahoo Finance suffix convention.
var suffixes = map[string]SymbolInfo{
	".L":  {Exchange: "LSE", Currency: "GBP", Kind: Stock},
	".DE": {Exchange: "XETRA", Currency: "EUR", Kind: Stock},
	".F":  {Exchange: "FRA", Currency: "EUR", Kind: Stock},
	".PA": {Exchange: "EPA", Currency: "EUR", Kind: Stock},
	".AS": {Exchange: "AMS", Currency: "EUR", Kind: Stock},
	".MI": {Exchange: "BIT", Currency: "EUR", Kind: Stock},
	".TO": {Exchange: "TSX", Currency: "CAD", Kind: Stock},
	".T":  {Exchange: "TYO", Currency: "JPY", Kind: Stock},
	".AX": {Exchange: "ASX", Currency: "AUD", Kind: Stock},
	".HK": {Exchange: "HKG", Currency: "HKD", Kind: Stock},
	".SW": {Exchange: "SWX", Currency: "CHF", Kind: Stock},
	".ST": {Exchange: "STO", Currency: "SEK", Kind: Stock},
}

// coinIDs maps common crypto tickers to their CoinGecko coin ids.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"LTC":   "litecoin",
	"LINK":  "chainlink",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
}

// Classify infers exchange, currency and asset kind from a symbol.
// Unknown symbols default to a US-listed stock quoted in USD.
func Classify(symbol string) SymbolInfo {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	// crypto pairs like BTC-USD, and bare tickers of well-known coins
	if base, _, ok := strings.Cut(symbol, "-"); ok {
		if _, known := coinIDs[base]; known {
			return SymbolInfo{Exchange: "CRYPTO", Currency: "USD", Kind: Crypto}
		}
	}
	if _, known := coinIDs[symbol]; known {
		return SymbolInfo{Exchange: "CRYPTO", Currency: "USD", Kind: Crypto}
	}

	if i := strings.LastIndex(symbol, "."); i >= 0 {
		if info, ok := suffixes[symbol[i:]]; ok {
			return info
		}
	}
	return SymbolInfo{Exchange: "US", Currency: "USD", Kind: Stock}
}

// CoinID returns the CoinGecko id for a crypto symbol ("BTC-USD" or
// "BTC"), or "" when the symbol is not a known coin.
func CoinID(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	base, _, _ := strings.Cut(symbol, "-")
	return coinIDs[base]
}
