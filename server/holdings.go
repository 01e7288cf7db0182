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

type createHoldingRequest struct {
	Symbol      string  `json:"symbol" binding:"required"`
	Shares      float64 `json:"shares" binding:"required,gt=0"`
	BuyPrice    float64 `json:"buy_price" binding:"required,gt=0"`
	BuyDate     string  `json:"buy_date"`
	PortfolioID string  `json:"portfolio_id"`
}

type updateHoldingRequest struct {
	Shares      *float64 `json:"shares"`
	BuyPrice    *float64 `json:"buy_price"`
	BuyDate     *string  `json:"buy_date"`
	PortfolioID *string  `json:"portfolio_id"`
}

func (s *Server) handleListHoldings(c *gin.Context) {
	user := currentUser(c)
	holdings, err := s.store.Holdings(c.Request.Context(), user.ID, c.Query("portfolio"))
	if err != nil {
		s.log.Error("list holdings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list holdings"})
		return
	}
	c.JSON(http.StatusOK, holdings)
}

func (s *Server) handleCreateHolding(c *gin.Context) {
	var req createHoldingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := currentUser(c)

	if req.BuyDate == "" {
		req.BuyDate = stockfolio.TodayISO()
	}
	holding := stockfolio.Holding{
		ID:          uuid.NewString(),
		Symbol:      upper(req.Symbol),
		Shares:      req.Shares,
		BuyPrice:    req.BuyPrice,
		BuyDate:     req.BuyDate,
		PortfolioID: req.PortfolioID,
		UserID:      user.ID,
		CreatedAt:   stockfolio.NowISO(),
	}
	if err := s.store.CreateHolding(c.Request.Context(), holding); err != nil {
		s.log.Error("create holding", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create holding"})
		return
	}
	c.JSON(http.StatusCreated, holding)
}

func (s *Server) handleUpdateHolding(c *gin.Context) {
	var req updateHoldingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := currentUser(c)

	holding, err := s.store.UpdateHolding(c.Request.Context(), user.ID, c.Param("id"), store.HoldingUpdate{
		Shares:      req.Shares,
		BuyPrice:    req.BuyPrice,
		BuyDate:     req.BuyDate,
		PortfolioID: req.PortfolioID,
	})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Holding not found"})
		return
	}
	if err != nil {
		s.log.Error("update holding", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update holding"})
		return
	}
	c.JSON(http.StatusOK, holding)
}

func (s *Server) handleDeleteHolding(c *gin.Context) {
	user := currentUser(c)
	err := s.store.DeleteHolding(c.Request.Context(), user.ID, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Holding not found"})
		return
	}
	if err != nil {
		s.log.Error("delete holding", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete holding"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holding deleted"})
}
