package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/config"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importfile"
	matchingHandler "github.com/MrJamesThe3rd/tally/internal/http/matching"
	txHandler "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/notify"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeStore, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svcs, err := app.NewServices(ctx, backend)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	notifier := notify.NewLog(logger)

	var (
		transactionH = txHandler.NewHandler(svcs.Transactions, notifier)
		importH      = importHandler.NewHandler(svcs.Importer, svcs.Transactions, notifier)
		matchingH    = matchingHandler.NewHandler(svcs.Matching)
		exportH      = exportHandler.NewHandler(svcs.Export)
	)

	opts := tallyHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}

	if cfg.Auth.Secret != "" {
		opts.Auth = auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL).Middleware
	} else {
		logger.Warn("AUTH_SECRET is not set, the API is unauthenticated")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           tallyHttp.New(opts, transactionH, importH, matchingH, exportH),
		ReadHeaderTimeout: cfg.Server.Timeout,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "port", srv.Addr, "storage", cfg.Storage.Driver,
			"transactions", svcs.Transactions.Summary().Count)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
