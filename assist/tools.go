package assist

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/stockfolio/stockfolio"
)

// Tool is one callable function exposed to the advisor model.
type Tool interface {
	// Declaration describes the function to the model.
	Declaration() *genai.FunctionDeclaration
	// Call performs the function with the model-supplied arguments.
	Call(ctx context.Context, args map[string]any) map[string]any
}

// dispatch routes a model function call to the matching tool.
func dispatch(ctx context.Context, tools []Tool, call *genai.FunctionCall) *genai.FunctionResponse {
	for _, tool := range tools {
		if tool.Declaration().Name != call.Name {
			continue
		}
		return &genai.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: tool.Call(ctx, call.Args),
		}
	}
	return &genai.FunctionResponse{
		ID:       call.ID,
		Name:     call.Name,
		Response: map[string]any{"error": fmt.Sprintf("unknown function %s", call.Name)},
	}
}

func declarations(tools []Tool) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		out = append(out, tool.Declaration())
	}
	return out
}

// quoteTool serves live quotes through the provider chain.
type quoteTool struct {
	quotes *stockfolio.QuoteService
}

func (t quoteTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "get_quote",
		Description: "Fetch the current price quote for a stock or crypto ticker symbol.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"symbol": {
					Type:        genai.TypeString,
					Description: "Ticker symbol, e.g. AAPL, SAP.DE or BTC-USD.",
				},
			},
			Required: []string{"symbol"},
		},
	}
}

func (t quoteTool) Call(ctx context.Context, args map[string]any) map[string]any {
	symbol, ok := args["symbol"].(string)
	if !ok {
		return map[string]any{"error": "symbol must be a string"}
	}
	q := t.quotes.Quote(ctx, symbol, nil)
	return map[string]any{
		"symbol":         q.Symbol,
		"price":          q.Price,
		"change":         q.Change,
		"change_percent": q.ChangePercent,
		"previous_close": q.PreviousClose,
		"currency":       q.Currency,
		"provider":       q.Provider,
		"is_mock":        q.IsMock,
	}
}

// searchTool looks up ticker symbols by company name.
type searchTool struct {
	search stockfolio.SymbolSearcher
}

func (t searchTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "search_symbols",
		Description: "Search ticker symbols by company name or keyword.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"query": {
					Type:        genai.TypeString,
					Description: "Company name or keyword to search for.",
				},
			},
			Required: []string{"query"},
		},
	}
}

func (t searchTool) Call(ctx context.Context, args map[string]any) map[string]any {
	query, ok := args["query"].(string)
	if !ok {
		return map[string]any{"error": "query must be a string"}
	}
	results, err := t.search.Search(ctx, query)
	if err != nil {
		results = stockfolio.PopularStocks(query)
	}
	matches := make([]map[string]any, 0, len(results))
	for _, r := range results {
		matches = append(matches, map[string]any{
			"symbol": r.Symbol, "name": r.Name, "region": r.Region, "currency": r.Currency,
		})
	}
	return map[string]any{"matches": matches}
}

// ratesTool serves the current exchange-rate table.
type ratesTool struct {
	rates *stockfolio.RateService
}

func (t ratesTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        "exchange_rates",
		Description: "Fetch the current exchange rates against a base currency.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"base": {
					Type:        genai.TypeString,
					Description: "3-letter base currency code, e.g. USD.",
				},
			},
			Required: []string{"base"},
		},
	}
}

func (t ratesTool) Call(ctx context.Context, args map[string]any) map[string]any {
	base, ok := args["base"].(string)
	if !ok {
		return map[string]any{"error": "base must be a string"}
	}
	table, err := t.rates.Rates(ctx, base)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{"base": table.Base, "date": table.Date, "rates": table.Rates}
}
