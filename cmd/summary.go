package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/config"
	"github.com/stockfolio/stockfolio/renderer"
)

type summaryCmd struct {
	currency string
	priority string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "value a set of holdings in one currency" }
func (*summaryCmd) Usage() string {
	return `sf summary [-currency <code>] [-p <providers>] <symbol>:<shares>:<buy price>...

  Value the given holdings at current prices, converted into the
  display currency, with gain/loss against the buy price. Mock-valued
  holdings are marked with an asterisk.

Usage Examples:
$ sf summary AAPL:10:150 VOD.L:25:98.2

# Everything in euros, preferring finnhub.
$ sf summary -currency EUR -p finnhub AAPL:10:150

`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.currency, "currency", "USD", "display currency")
	f.StringVar(&p.priority, "p", "", "comma separated provider priority")
}

func (p *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one holding is required")
		return subcommands.ExitUsageError
	}
	holdings := make([]stockfolio.Holding, 0, f.NArg())
	for _, arg := range f.Args() {
		h, err := parseHolding(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		holdings = append(holdings, h)
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
	display := strings.ToUpper(p.currency)

	quotes := make(map[string]stockfolio.Quote, len(holdings))
	service := newQuoteService(cfg)
	for _, h := range holdings {
		if _, ok := quotes[h.Symbol]; ok {
			continue
		}
		quotes[h.Symbol] = service.Quote(ctx, h.Symbol, priority)
	}

	table, err := newRateService().Rates(ctx, display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: rates unavailable (%v), foreign holdings stay unconverted\n", err)
		table = stockfolio.RateTable{Base: display}
	}

	s, err := stockfolio.NewSummary(holdings, quotes, table, display)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	printMarkdown(renderer.Summary(s))
	return subcommands.ExitSuccess
}

// parseHolding parses one SYMBOL:SHARES:BUY_PRICE argument.
func parseHolding(arg string) (stockfolio.Holding, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return stockfolio.Holding{}, fmt.Errorf("%q: want SYMBOL:SHARES:BUY_PRICE", arg)
	}
	symbol := strings.ToUpper(strings.TrimSpace(parts[0]))
	if symbol == "" {
		return stockfolio.Holding{}, fmt.Errorf("%q: empty symbol", arg)
	}
	shares, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || shares <= 0 {
		return stockfolio.Holding{}, fmt.Errorf("%q: bad share count %q", arg, parts[1])
	}
	price, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || price < 0 {
		return stockfolio.Holding{}, fmt.Errorf("%q: bad buy price %q", arg, parts[2])
	}
	return stockfolio.Holding{Symbol: symbol, Shares: shares, BuyPrice: price}, nil
}
