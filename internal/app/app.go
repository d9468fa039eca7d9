// Package app wires configuration into the storage backend and services
// shared by the API server and the terminal UI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/kv"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/tally/internal/matching/store"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

// NewLogger builds the process logger from the Log section of cfg.
func NewLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// OpenStore opens the key-value backend selected by Storage.Driver.
// The returned close function is never nil.
func OpenStore(cfg *config.Config) (kv.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return kv.NewMemoryStore(), noop, nil

	case config.StorageFile:
		store, err := kv.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file store: %w", err)
		}

		return store, noop, nil

	case config.StorageSQLite, config.StoragePostgres:
		dsn := cfg.Storage.SQLitePath
		if cfg.Storage.Driver == config.StoragePostgres {
			dsn = cfg.ConnectionString()
		}

		db, err := database.New(cfg.Storage.Driver, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}

		return kv.NewSQLStore(db), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
}

type Services struct {
	Transactions *transaction.Service
	Matching     *matching.Service
	Importer     *importer.Service
	Export       *export.Service
}

// NewServices builds every service on top of backend and loads the persisted ledger.
func NewServices(ctx context.Context, backend kv.Store) (*Services, error) {
	var (
		transactionService = transaction.NewService(txStore.New(backend))
		matchingService    = matching.NewService(matchingStore.New(backend))
		importService      = importer.NewService(matchingService)
		exportService      = export.NewService(transactionService, nil)
	)

	if err := transactionService.Load(ctx); err != nil {
		return nil, err
	}

	return &Services{
		Transactions: transactionService,
		Matching:     matchingService,
		Importer:     importService,
		Export:       exportService,
	}, nil
}
