package stockfolio

import (
	"errors"
	"fmt"
)

// HoldingValue is one holding enriched with its current quote and the
// derived figures the dashboard shows. Monetary figures are in the
// summary's display currency; CurrentPrice stays in the holding's
// native currency.
type HoldingValue struct {
	Holding
	Currency         string  `json:"currency"`
	CurrentPrice     float64 `json:"current_price"`
	MarketValue      float64 `json:"market_value"`
	CostBasis        float64 `json:"cost_basis"`
	GainLoss         float64 `json:"gain_loss"`
	GainLossPercent  float64 `json:"gain_loss_percent"`
	DayChange        float64 `json:"day_change"`
	DayChangePercent float64 `json:"day_change_percent"`
	IsMock           bool    `json:"is_mock,omitempty"`
}

// Summary aggregates a set of holdings into portfolio totals.
type Summary struct {
	TotalValue           float64        `json:"total_value"`
	TotalCost            float64        `json:"total_cost"`
	TotalGainLoss        float64        `json:"total_gain_loss"`
	TotalGainLossPercent float64        `json:"total_gain_loss_percent"`
	HoldingsCount        int            `json:"holdings_count"`
	DisplayCurrency      string         `json:"display_currency"`
	Holdings             []HoldingValue `json:"holdings"`
}

// NewSummary computes the portfolio summary in a single pass.
//
// Per holding: market value, cost basis, gain/loss and gain/loss
// percent (0 when the cost basis is 0), plus the day change taken from
// the quote. A missing quote falls back to the buy price, so a holding
// never disappears from the totals. Native currencies are inferred from
// the symbol and converted into displayCurrency through the rate table;
// a missing rate leaves that holding's figures in its native currency
// and out of the totals, reported in the joined error while the summary
// is still produced.
func NewSummary(holdings []Holding, quotes map[string]Quote, rates RateTable, displayCurrency string) (*Summary, error) {
	s := &Summary{
		DisplayCurrency: displayCurrency,
		HoldingsCount:   len(holdings),
		Holdings:        make([]HoldingValue, 0, len(holdings)),
	}
	if len(holdings) == 0 {
		return s, nil
	}

	totalValue := M(0, displayCurrency)
	totalCost := M(0, displayCurrency)
	var errs error

	for _, h := range holdings {
		native := Classify(h.Symbol).Currency
		quote, ok := quotes[h.Symbol]
		price := quote.Price
		if !ok || price == 0 {
			price = h.BuyPrice
		}

		shares := Q(h.Shares)
		marketValue := M(price, native).Mul(shares)
		costBasis := M(h.BuyPrice, native).Mul(shares)

		// both amounts share the holding's native currency, so either
		// both convert or neither does
		displayValue, err := rates.Convert(marketValue, displayCurrency)
		displayCost, cerr := rates.Convert(costBasis, displayCurrency)
		if err == nil {
			err = cerr
		}
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("holding %s: %w", h.Symbol, err))
		}

		gainLoss := displayValue.Sub(displayCost)

		hv := HoldingValue{
			Holding:          h,
			Currency:         native,
			CurrentPrice:     price,
			MarketValue:      displayValue.Rounded(),
			CostBasis:        displayCost.Rounded(),
			GainLoss:         gainLoss.Rounded(),
			GainLossPercent:  gainLoss.PercentOf(displayCost).Round2(),
			DayChange:        quote.Change,
			DayChangePercent: quote.ChangePercent,
			IsMock:           quote.IsMock,
		}
		s.Holdings = append(s.Holdings, hv)

		if err == nil {
			totalValue = totalValue.Add(displayValue)
			totalCost = totalCost.Add(displayCost)
		}
	}

	totalGain := totalValue.Sub(totalCost)
	s.TotalValue = totalValue.Rounded()
	s.TotalCost = totalCost.Rounded()
	s.TotalGainLoss = totalGain.Rounded()
	s.TotalGainLossPercent = totalGain.PercentOf(totalCost).Round2()
	return s, errs
}
