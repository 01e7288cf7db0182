// Package server exposes the StockFolio REST API.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockfolio/stockfolio"
	"github.com/stockfolio/stockfolio/store"
)

// Store is the persistence surface the handlers need. *store.Store
// implements it; tests use an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, u stockfolio.User) error
	UserByEmail(ctx context.Context, email string) (stockfolio.User, error)
	UserByID(ctx context.Context, id string) (stockfolio.User, error)
	UpdateSettings(ctx context.Context, userID string, settings stockfolio.Settings) error

	Holdings(ctx context.Context, userID, portfolioID string) ([]stockfolio.Holding, error)
	CreateHolding(ctx context.Context, h stockfolio.Holding) error
	UpdateHolding(ctx context.Context, userID, id string, update store.HoldingUpdate) (stockfolio.Holding, error)
	DeleteHolding(ctx context.Context, userID, id string) error

	Watchlist(ctx context.Context, userID string) ([]stockfolio.WatchlistItem, error)
	AddWatchlistItem(ctx context.Context, item stockfolio.WatchlistItem) error
	RemoveWatchlistItem(ctx context.Context, userID, symbol string) error

	Portfolios(ctx context.Context, userID string) ([]stockfolio.Portfolio, error)
	CreatePortfolio(ctx context.Context, p stockfolio.Portfolio) error
	RenamePortfolio(ctx context.Context, userID, id, name string) error
	DeletePortfolio(ctx context.Context, userID, id string) error

	Alerts(ctx context.Context, userID string) ([]stockfolio.Alert, error)
	PendingAlerts(ctx context.Context, userID string) ([]stockfolio.Alert, error)
	CreateAlert(ctx context.Context, a stockfolio.Alert) error
	MarkTriggered(ctx context.Context, id, when string) error
	DeleteAlert(ctx context.Context, userID, id string) error
}

// Options bundles the server dependencies.
type Options struct {
	Store     Store
	Quotes    *stockfolio.QuoteService
	Rates     *stockfolio.RateService
	Search    stockfolio.SymbolSearcher
	Logger    *zap.Logger
	JWTSecret string
	// Origins is the CORS allow list; "*" allows any origin.
	Origins []string
}

// Server is the StockFolio API server.
type Server struct {
	store  Store
	quotes *stockfolio.QuoteService
	rates  *stockfolio.RateService
	search stockfolio.SymbolSearcher
	log    *zap.Logger
	secret []byte
	router *gin.Engine
}

// New creates the server and wires all routes.
func New(opts Options) *Server {
	s := &Server{
		store:  opts.Store,
		quotes: opts.Quotes,
		rates:  opts.Rates,
		search: opts.Search,
		log:    opts.Logger,
		secret: []byte(opts.JWTSecret),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), cors(opts.Origins))

	api := router.Group("/api")
	api.GET("/", s.handleRoot)
	api.GET("/health", s.handleHealth)

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	// quote endpoints are public, like the rest of the market data
	api.GET("/stocks/quote/:symbol", s.handleQuote)
	api.GET("/stocks/quotes", s.handleQuotes)
	api.GET("/stocks/search", s.handleSearch)
	api.GET("/rates", s.handleRates)

	auth := api.Group("", s.authRequired)
	auth.GET("/auth/me", s.handleMe)

	auth.GET("/holdings", s.handleListHoldings)
	auth.POST("/holdings", s.handleCreateHolding)
	auth.PUT("/holdings/:id", s.handleUpdateHolding)
	auth.DELETE("/holdings/:id", s.handleDeleteHolding)

	auth.GET("/watchlist", s.handleListWatchlist)
	auth.POST("/watchlist", s.handleAddWatchlist)
	auth.DELETE("/watchlist/:symbol", s.handleRemoveWatchlist)

	auth.GET("/portfolios", s.handleListPortfolios)
	auth.POST("/portfolios", s.handleCreatePortfolio)
	auth.PUT("/portfolios/:id", s.handleRenamePortfolio)
	auth.DELETE("/portfolios/:id", s.handleDeletePortfolio)

	auth.GET("/alerts", s.handleListAlerts)
	auth.POST("/alerts", s.handleCreateAlert)
	auth.POST("/alerts/check", s.handleCheckAlerts)
	auth.DELETE("/alerts/:id", s.handleDeleteAlert)

	auth.GET("/settings", s.handleGetSettings)
	auth.PUT("/settings", s.handlePutSettings)

	auth.GET("/portfolio/summary", s.handleSummary)

	s.router = router
	return s
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "StockFolio API"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// cors is a minimal CORS middleware over the configured origin list.
func cors(origins []string) gin.HandlerFunc {
	any := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			any = true
		}
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (any || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// StartAlertSweep re-evaluates every pending alert at the given
// interval until ctx is done. Interval 0 disables the sweep.
func (s *Server) StartAlertSweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.checkAlerts(ctx, "", nil)
				if err != nil {
					s.log.Warn("alert sweep", zap.Error(err))
				}
				if n > 0 {
					s.log.Info("alert sweep triggered alerts", zap.Int("count", n))
				}
			}
		}
	}()
}

// upper normalizes a user-supplied symbol.
func upper(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
