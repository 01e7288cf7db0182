// Package renderer builds the markdown views the CLI prints.
package renderer

import (
	"bytes"
	"fmt"
	"sort"

	md "github.com/nao1215/markdown"

	"github.com/stockfolio/stockfolio"
)

// Quotes renders a batch of quotes as a markdown table. Mock quotes are
// labeled as such in the source column.
func Quotes(quotes []stockfolio.Quote) string {
	table := md.TableSet{
		Header: []string{"Symbol", "Price", "Change", "Change %", "Currency", "Source"},
	}
	for _, q := range quotes {
		source := q.Provider
		if q.IsMock {
			source = "mock"
		}
		table.Rows = append(table.Rows, []string{
			q.Symbol,
			fmt.Sprintf("%.2f", q.Price),
			fmt.Sprintf("%+.2f", q.Change),
			fmt.Sprintf("%+.2f%%", q.ChangePercent),
			q.Currency,
			source,
		})
	}
	return build(func(doc *md.Markdown) {
		doc.CustomTable(table, md.TableOptions{AutoWrapText: false})
	})
}

// SearchResults renders symbol search matches.
func SearchResults(results []stockfolio.SearchResult) string {
	table := md.TableSet{
		Header: []string{"Symbol", "Name", "Region", "Currency"},
	}
	for _, r := range results {
		table.Rows = append(table.Rows, []string{r.Symbol, r.Name, r.Region, r.Currency})
	}
	return build(func(doc *md.Markdown) {
		doc.CustomTable(table, md.TableOptions{AutoWrapText: false})
	})
}

// Rates renders an exchange-rate table, currencies sorted.
func Rates(t stockfolio.RateTable) string {
	currencies := make([]string, 0, len(t.Rates))
	for c := range t.Rates {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	table := md.TableSet{
		Header: []string{"Currency", "Rate"},
	}
	for _, c := range currencies {
		table.Rows = append(table.Rows, []string{c, fmt.Sprintf("%.4f", t.Rates[c])})
	}
	return build(func(doc *md.Markdown) {
		doc.H1(fmt.Sprintf("Rates against %s (%s)", t.Base, t.Date))
		doc.CustomTable(table, md.TableOptions{AutoWrapText: false})
	})
}

// Summary renders the portfolio summary the way the dashboard shows it.
func Summary(s *stockfolio.Summary) string {
	cur := s.DisplayCurrency
	table := md.TableSet{
		Header: []string{"Symbol", "Shares", "Price", "Value", "Gain / Loss"},
	}
	for _, h := range s.Holdings {
		symbol := h.Symbol
		if h.IsMock {
			symbol += " *"
		}
		table.Rows = append(table.Rows, []string{
			symbol,
			fmt.Sprintf("%g", h.Shares),
			fmt.Sprintf("%.2f %s", h.CurrentPrice, h.Currency),
			fmt.Sprintf("%.2f %s", h.MarketValue, cur),
			fmt.Sprintf("%+.2f (%+.2f%%)", h.GainLoss, h.GainLossPercent),
		})
	}
	return build(func(doc *md.Markdown) {
		doc.H1("Portfolio Summary")
		doc.CustomTable(md.TableSet{
			Header: []string{md.Bold("Total Value"), md.Bold(fmt.Sprintf("%.2f %s", s.TotalValue, cur))},
			Rows: [][]string{
				{"Total Cost", fmt.Sprintf("%.2f %s", s.TotalCost, cur)},
				{"Gain / Loss", fmt.Sprintf("%+.2f (%+.2f%%)", s.TotalGainLoss, s.TotalGainLossPercent)},
			},
		}, md.TableOptions{AutoWrapText: false})
		if len(table.Rows) > 0 {
			doc.H2("Holdings")
			doc.CustomTable(table, md.TableOptions{AutoWrapText: false})
		}
	})
}

func build(f func(*md.Markdown)) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	f(doc)
	return doc.String()
}
