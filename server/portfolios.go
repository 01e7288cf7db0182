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

type portfolioRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) handleListPortfolios(c *gin.Context) {
	user := currentUser(c)
	portfolios, err := s.store.Portfolios(c.Request.Context(), user.ID)
	if err != nil {
		s.log.Error("list portfolios", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list portfolios"})
		return
	}
	c.JSON(http.StatusOK, portfolios)
}

func (s *Server) handleCreatePortfolio(c *gin.Context) {
	var req portfolioRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := currentUser(c)

	portfolio := stockfolio.Portfolio{
		ID:        uuid.NewString(),
		Name:      req.Name,
		UserID:    user.ID,
		CreatedAt: stockfolio.NowISO(),
	}
	if err := s.store.CreatePortfolio(c.Request.Context(), portfolio); err != nil {
		s.log.Error("create portfolio", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create portfolio"})
		return
	}
	c.JSON(http.StatusCreated, portfolio)
}

func (s *Server) handleRenamePortfolio(c *gin.Context) {
	var req portfolioRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := currentUser(c)

	err := s.store.RenamePortfolio(c.Request.Context(), user.ID, c.Param("id"), req.Name)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		return
	}
	if err != nil {
		s.log.Error("rename portfolio", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot rename portfolio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio renamed"})
}

func (s *Server) handleDeletePortfolio(c *gin.Context) {
	user := currentUser(c)
	err := s.store.DeletePortfolio(c.Request.Context(), user.ID, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		return
	}
	if err != nil {
		s.log.Error("delete portfolio", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete portfolio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted, holdings detached"})
}
