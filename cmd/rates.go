package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/stockfolio/stockfolio/renderer"
)

type ratesCmd struct {
	base string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show exchange rates against a base currency" }
func (*ratesCmd) Usage() string {
	return `sf rates [-base <currency>]

  Fetch the latest exchange-rate table (ECB reference rates). Responses
  are cached on disk for the day.

Usage Examples:
$ sf rates -base EUR

`
}

func (p *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.base, "base", "USD", "base currency")
}

func (p *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := newRateService().Rates(ctx, strings.ToUpper(p.base))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rates: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Rates(table))
	return subcommands.ExitSuccess
}
