package server

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockfolio/stockfolio"
)

// handleGetSettings returns the caller's settings, with defaults
// filled in for accounts that never changed them.
func (s *Server) handleGetSettings(c *gin.Context) {
	user := currentUser(c)

	settings := stockfolio.Settings{
		ProviderPriority: user.ProviderPriority,
		DisplayCurrency:  user.DisplayCurrency,
	}
	if len(settings.ProviderPriority) == 0 {
		settings.ProviderPriority = s.quotes.ProviderNames()
	}
	if settings.DisplayCurrency == "" {
		settings.DisplayCurrency = "USD"
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handlePutSettings(c *gin.Context) {
	var req stockfolio.Settings
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	known := s.quotes.ProviderNames()
	for _, name := range req.ProviderPriority {
		if !slices.Contains(known, name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown provider %q", name)})
			return
		}
	}
	if req.DisplayCurrency != "" {
		req.DisplayCurrency = upper(req.DisplayCurrency)
		if len(req.DisplayCurrency) != 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_currency must be a 3-letter code"})
			return
		}
	}

	// partial update: an omitted field keeps its stored value
	user := currentUser(c)
	if req.DisplayCurrency == "" {
		req.DisplayCurrency = user.DisplayCurrency
	}
	if req.ProviderPriority == nil {
		req.ProviderPriority = user.ProviderPriority
	}
	if err := s.store.UpdateSettings(c.Request.Context(), user.ID, req); err != nil {
		s.log.Error("update settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update settings"})
		return
	}
	c.JSON(http.StatusOK, req)
}
