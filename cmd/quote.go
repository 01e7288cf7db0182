package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/config"
	"github.com/stockfolio/stockfolio/renderer"
)

type quoteCmd struct {
	priority string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch current quotes for symbols" }
func (*quoteCmd) Usage() string {
	return `sf quote [-p <providers>] <symbol>...

  Fetch the current quote for each symbol through the provider chain.
  When every provider fails the quote is a deterministic placeholder,
  marked in the output.

Usage Examples:
# One stock and one coin.
$ sf quote AAPL BTC-USD

# Prefer finnhub over the default order.
$ sf quote -p finnhub,yahoo AAPL

`
}

func (p *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.priority, "p", "", "comma separated provider priority")
}

func (p *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	var priority []string
	if p.priority != "" {
		priority = strings.Split(p.priority, ",")
	}

	service := newQuoteService(cfg)
	quotes := make([]stockfolio.Quote, 0, f.NArg())
	for _, symbol := range f.Args() {
		quotes = append(quotes, service.Quote(ctx, symbol, priority))
	}
	printMarkdown(renderer.Quotes(quotes))
	return subcommands.ExitSuccess
}
