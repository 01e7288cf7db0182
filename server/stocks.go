package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockfolio/stockfolio"
)

func (s *Server) handleQuote(c *gin.Context) {
	symbol := upper(c.Param("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol required"})
		return
	}
	c.JSON(http.StatusOK, s.quotes.Quote(c.Request.Context(), symbol, nil))
}

func (s *Server) handleQuotes(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols parameter required"})
		return
	}
	symbols := strings.Split(raw, ",")
	c.JSON(http.StatusOK, s.quotes.Quotes(c.Request.Context(), symbols, nil))
}

func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter required"})
		return
	}

	results, err := s.search.Search(c.Request.Context(), query)
	if err != nil {
		// degrade to the static catalog, like quotes degrade to mocks
		s.log.Warn("symbol search failed, using popular list", zap.String("query", query), zap.Error(err))
		results = stockfolio.PopularStocks(query)
	}
	if results == nil {
		results = []stockfolio.SearchResult{}
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleRates(c *gin.Context) {
	base := upper(c.DefaultQuery("base", "USD"))
	table, err := s.rates.Rates(c.Request.Context(), base)
	if err != nil {
		s.log.Error("fetch rates", zap.String("base", base), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "cannot fetch exchange rates"})
		return
	}
	c.JSON(http.StatusOK, table)
}
