// Package assist implements the interactive market advisor for the CLI.
// The model answers questions about tickers, prices and currencies,
// grounding itself through function calls into the live quote, search
// and rate services.
package assist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"

	"github.com/stockfolio/stockfolio"
)

const model = "gemini-2.5-pro"

const systemInstruction = `
You are a market data assistant for a personal stock portfolio tracker.
Answer questions about stocks, crypto and currencies. Use the available
tools to look up current prices, find ticker symbols, and convert
between currencies; never invent a price. When a quote comes back with
is_mock set, say clearly that live data was unavailable and the figure
is a placeholder. Keep answers short and concrete.
`

// Advisor is an interactive chat session over the market services.
type Advisor struct {
	w     io.Writer
	r     *bufio.Reader
	tools []Tool
	chat  *genai.Chat
}

// New creates an advisor bound to the given services.
func New(w io.Writer, r io.Reader, quotes *stockfolio.QuoteService, rates *stockfolio.RateService, search stockfolio.SymbolSearcher) *Advisor {
	return &Advisor{
		w: w,
		r: bufio.NewReader(r),
		tools: []Tool{
			quoteTool{quotes: quotes},
			searchTool{search: search},
			ratesTool{rates: rates},
		},
	}
}

// Start opens the chat session.
func (a *Advisor) Start(ctx context.Context, client *genai.Client) error {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: declarations(a.tools)},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}
	chat, err := client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Ask sends one question and resolves any function calls the model
// makes before returning its final text.
func (a *Advisor) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	resp, err := a.chat.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("the advisor returned no response")
	}
	part := resp.Candidates[0].Content.Parts[0]
	if part.FunctionCall != nil {
		fresp := dispatch(ctx, a.tools, part.FunctionCall)
		// feed the tool result back until the model settles on text
		return a.Ask(ctx, &genai.Part{FunctionResponse: fresp})
	}
	return part.Text, nil
}

const prompt = "assist> "

// Run starts the interactive REPL session. Initial prompts are answered
// before reading from the user.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "StockFolio market assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
