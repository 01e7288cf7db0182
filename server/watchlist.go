package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/store"
)

type addWatchlistRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

func (s *Server) handleListWatchlist(c *gin.Context) {
	user := currentUser(c)
	items, err := s.store.Watchlist(c.Request.Context(), user.ID)
	if err != nil {
		s.log.Error("list watchlist", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list watchlist"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleAddWatchlist(c *gin.Context) {
	var req addWatchlistRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := currentUser(c)

	item := stockfolio.WatchlistItem{
		ID:      uuid.NewString(),
		Symbol:  upper(req.Symbol),
		UserID:  user.ID,
		AddedAt: stockfolio.NowISO(),
	}
	err := s.store.AddWatchlistItem(c.Request.Context(), item)
	if errors.Is(err, store.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol already in watchlist"})
		return
	}
	if err != nil {
		s.log.Error("add watchlist item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot add to watchlist"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleRemoveWatchlist(c *gin.Context) {
	user := currentUser(c)
	err := s.store.RemoveWatchlistItem(c.Request.Context(), user.ID, upper(c.Param("symbol")))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Symbol not in watchlist"})
		return
	}
	if err != nil {
		s.log.Error("remove watchlist item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot remove from watchlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from watchlist"})
}
