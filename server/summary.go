package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockfolio/stockfolio"
)

// handleSummary aggregates the caller's holdings into the dashboard
// summary. ?portfolio= restricts to one portfolio, ?currency= overrides
// the user's display currency.
func (s *Server) handleSummary(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	holdings, err := s.store.Holdings(ctx, user.ID, c.Query("portfolio"))
	if err != nil {
		s.log.Error("summary holdings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load holdings"})
		return
	}

	display := upper(c.Query("currency"))
	if display == "" {
		display = user.DisplayCurrency
	}
	if display == "" {
		display = "USD"
	}

	// every holding gets a quote; the batch cap is an API limit, not a
	// portfolio size limit
	quotes := make(map[string]stockfolio.Quote, len(holdings))
	for _, h := range holdings {
		if _, ok := quotes[h.Symbol]; ok {
			continue
		}
		quotes[h.Symbol] = s.quotes.Quote(ctx, h.Symbol, user.ProviderPriority)
	}

	// an empty table converts nothing but the summary still renders
	table, err := s.rates.Rates(ctx, display)
	if err != nil {
		s.log.Warn("summary rates unavailable", zap.String("currency", display), zap.Error(err))
		table = stockfolio.RateTable{Base: display}
	}

	summary, err := stockfolio.NewSummary(holdings, quotes, table, display)
	if err != nil {
		// partial conversion failures degrade, they don't 500
		s.log.Warn("summary conversion incomplete", zap.Error(err))
	}
	c.JSON(http.StatusOK, summary)
}
