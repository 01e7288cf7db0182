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

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search ticker symbols by keyword" }
func (*searchCmd) Usage() string {
	return `sf search <keywords>

  Search the symbol catalog by company name or keyword. Falls back to a
  static list of popular stocks when the catalog is unreachable.

Usage Examples:
$ sf search apple

`
}

func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (p *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search keyword is required")
		return subcommands.ExitUsageError
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	query := strings.Join(f.Args(), " ")

	results, err := newSearcher(cfg).Search(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: symbol search failed (%v), using the popular list\n", err)
		results = stockfolio.PopularStocks(query)
	}
	if len(results) == 0 {
		fmt.Printf("No symbol matches %q.\n", query)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.SearchResults(results))
	return subcommands.ExitSuccess
}
