package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/store"
)

type createAlertRequest struct {
	Symbol      string  `json:"symbol" binding:"required"`
	TargetPrice float64 `json:"target_price" binding:"required,gt=0"`
	Direction   string  `json:"direction" binding:"required"`
}

func (s *Server) handleListAlerts(c *gin.Context) {
	user := currentUser(c)
	alerts, err := s.store.Alerts(c.Request.Context(), user.ID)
	if err != nil {
		s.log.Error("list alerts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleCreateAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !stockfolio.ValidDirection(req.Direction) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be above or below"})
		return
	}
	user := currentUser(c)

	alert := stockfolio.Alert{
		ID:          uuid.NewString(),
		Symbol:      upper(req.Symbol),
		TargetPrice: req.TargetPrice,
		Direction:   req.Direction,
		UserID:      user.ID,
		CreatedAt:   stockfolio.NowISO(),
	}
	if err := s.store.CreateAlert(c.Request.Context(), alert); err != nil {
		s.log.Error("create alert", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create alert"})
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (s *Server) handleDeleteAlert(c *gin.Context) {
	user := currentUser(c)
	err := s.store.DeleteAlert(c.Request.Context(), user.ID, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	if err != nil {
		s.log.Error("delete alert", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete alert"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alert deleted"})
}

// handleCheckAlerts evaluates the caller's pending alerts against
// current prices and returns the ones that just triggered. The browser
// polls this and raises the notifications.
func (s *Server) handleCheckAlerts(c *gin.Context) {
	user := currentUser(c)
	var triggered []stockfolio.Alert
	_, err := s.checkAlerts(c.Request.Context(), user.ID, func(a stockfolio.Alert) {
		triggered = append(triggered, a)
	})
	if err != nil {
		s.log.Error("check alerts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot check alerts"})
		return
	}
	if triggered == nil {
		triggered = []stockfolio.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"triggered": triggered})
}

// checkAlerts fetches quotes for every pending alert of userID (all
// users when empty) and flips the ones whose target is crossed. The
// optional onTriggered callback sees each flipped alert.
func (s *Server) checkAlerts(ctx context.Context, userID string, onTriggered func(stockfolio.Alert)) (int, error) {
	pending, err := s.store.PendingAlerts(ctx, userID)
	if err != nil {
		return 0, err
	}

	// fetch each symbol once; the priority of the alert owner is not
	// consulted here, the default provider order is good enough
	quotes := make(map[string]stockfolio.Quote)
	count := 0
	var errs error
	for _, alert := range pending {
		quote, ok := quotes[alert.Symbol]
		if !ok {
			quote = s.quotes.Quote(ctx, alert.Symbol, nil)
			quotes[alert.Symbol] = quote
		}
		// never trigger on fabricated prices
		if quote.IsMock || !alert.ShouldTrigger(quote.Price) {
			continue
		}

		now := stockfolio.NowISO()
		if err := s.store.MarkTriggered(ctx, alert.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue // lost the race with another check
			}
			errs = errors.Join(errs, fmt.Errorf("alert %s: %w", alert.ID, err))
			continue
		}
		alert.Triggered = true
		alert.TriggeredAt = now
		count++
		if onTriggered != nil {
			onTriggered(alert)
		}
	}
	return count, errs
}
