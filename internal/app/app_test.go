package app_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestNewLogger(t *testing.T) {
	cfg := &config.Config{}
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"

	var buf bytes.Buffer

	logger := app.NewLogger(&buf, cfg)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestOpenStore_PersistsAcrossServices(t *testing.T) {
	type testCase struct {
		name   string
		driver string
	}

	tests := []testCase{
		{name: "File", driver: config.StorageFile},
		{name: "SQLite", driver: config.StorageSQLite},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()

			cfg := &config.Config{}
			cfg.Storage.Driver = tc.driver
			cfg.Storage.DataDir = dir
			cfg.Storage.SQLitePath = filepath.Join(dir, "db", "tally.db")

			ctx := context.Background()

			backend, closeFn, err := app.OpenStore(cfg)
			require.NoError(t, err)

			svcs, err := app.NewServices(ctx, backend)
			require.NoError(t, err)

			_, _, err = svcs.Transactions.Add(ctx, transaction.CreateParams{
				Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				Description: "Lunch",
				Category:    transaction.CategoryFood,
				Amount:      25000,
				Type:        transaction.TypeExpense,
			})
			require.NoError(t, err)
			require.NoError(t, closeFn())

			backend, closeFn, err = app.OpenStore(cfg)
			require.NoError(t, err)
			defer closeFn()

			svcs, err = app.NewServices(ctx, backend)
			require.NoError(t, err)

			txs := svcs.Transactions.List(transaction.ListFilter{})
			require.Len(t, txs, 1)
			assert.Equal(t, "Lunch", txs[0].Description)
		})
	}
}

func TestOpenStore_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageMemory

	backend, closeFn, err := app.OpenStore(cfg)
	require.NoError(t, err)
	assert.NotNil(t, backend)
	assert.NoError(t, closeFn())

	cfg.Storage.Driver = "redis"
	_, _, err = app.OpenStore(cfg)
	assert.Error(t, err)
}
