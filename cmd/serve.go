package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/stockfolio/stockfolio/config"
	"github.com/stockfolio/stockfolio/server"
	"github.com/stockfolio/stockfolio/store"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the StockFolio API server" }
func (*serveCmd) Usage() string {
	return `sf serve [-addr <address>]

  Run the REST API server. Configuration comes from the environment
  (MONGO_URL, DB_NAME, JWT_SECRET, FINNHUB_KEY, ALPHA_VANTAGE_KEY,
  CORS_ORIGINS, ALERT_SWEEP) or an optional stockfolio.yaml in the
  working directory.

Usage Examples:
# Serve on the default :8000.
$ sf serve

# Serve on another port with a background alert sweep.
$ ALERT_SWEEP=1m sf serve -addr :9000

`
}

func (p *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.addr, "addr", "", "listen address, overrides the configured one")
}

func (p *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if p.addr != "" {
		cfg.Addr = p.addr
	}

	zcfg := zap.NewProductionConfig()
	zcfg.DisableStacktrace = true
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer logger.Sync()

	db, err := store.Open(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		logger.Error("connecting to mongo", zap.String("url", cfg.MongoURL), zap.Error(err))
		return subcommands.ExitFailure
	}
	defer db.Close(context.Background())

	srv := server.New(server.Options{
		Store:     db,
		Quotes:    newQuoteService(cfg),
		Rates:     newRateService(),
		Search:    newSearcher(cfg),
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,
		Origins:   cfg.Origins(),
	})
	srv.StartAlertSweep(ctx, cfg.AlertSweep)

	logger.Info("serving", zap.String("addr", cfg.Addr), zap.String("db", cfg.DBName))
	if err := srv.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
