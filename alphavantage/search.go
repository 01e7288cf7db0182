package alphavantage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stockfolio/stockfolio"
)

// searchPayload is the SYMBOL_SEARCH response; the numbered keys are
// regular enough here to decode with struct tags.
//
//	{ "bestMatches": [ {
//	    "1. symbol": "AAPL",
//	    "2. name": "Apple Inc",
//	    "3. type": "Equity",
//	    "4. region": "United States",
//	    "8. currency": "USD"
//	} ] }
type searchPayload struct {
	Note        string `json:"Note"`
	BestMatches []struct {
		Symbol   string `json:"1. symbol"`
		Name     string `json:"2. name"`
		Type     string `json:"3. type"`
		Region   string `json:"4. region"`
		Currency string `json:"8. currency"`
	} `json:"bestMatches"`
}

// Search queries the symbol catalog by keyword, returning at most ten
// matches.
func (c *Client) Search(ctx context.Context, query string) ([]stockfolio.SearchResult, error) {
	addr := fmt.Sprintf("%s/query?function=SYMBOL_SEARCH&keywords=%s&apikey=%s",
		c.BaseURL, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	var payload searchPayload
	if err := jwget(ctx, c.HTTP, addr, &payload); err != nil {
		return nil, err
	}
	if payload.Note != "" {
		return nil, fmt.Errorf("alphavantage limit reached: %s", payload.Note)
	}

	matches := payload.BestMatches
	if len(matches) > 10 {
		matches = matches[:10]
	}
	results := make([]stockfolio.SearchResult, 0, len(matches))
	for _, m := range matches {
		currency := m.Currency
		if currency == "" {
			currency = "USD"
		}
		results = append(results, stockfolio.SearchResult{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Type:     m.Type,
			Region:   m.Region,
			Currency: currency,
		})
	}
	return results, nil
}
