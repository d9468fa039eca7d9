package export_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/export"
	exporthttp "github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/kv"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func setup(t *testing.T) (http.Handler, *transaction.Service) {
	t.Helper()

	txSvc := transaction.NewService(store.New(kv.NewMemoryStore()))
	require.NoError(t, txSvc.Load(context.Background()))

	now := func() time.Time { return time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC) }
	h := exporthttp.NewHandler(export.NewService(txSvc, now))

	r := chi.NewRouter()
	r.Route("/export", h.Routes)

	return r, txSvc
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_Download(t *testing.T) {
	router, txSvc := setup(t)

	_, _, err := txSvc.Add(context.Background(), transaction.CreateParams{
		Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "Rent",
		Category:    transaction.CategoryUtilities,
		Amount:      120000,
		Type:        transaction.TypeExpense,
	})
	require.NoError(t, err)

	rec := get(router, "/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="transactions_backup_2024-02-29.json"`, rec.Header().Get("Content-Disposition"))

	txs, err := transaction.DecodeJSON(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, txSvc.List(transaction.ListFilter{}), txs)

	rec = get(router, "/export/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "* 2024-02-01 | Rent | Utilities | -1200.00")
}

func TestHandler_Empty(t *testing.T) {
	router, _ := setup(t)

	assert.Equal(t, http.StatusNotFound, get(router, "/export").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/export/summary").Code)
}
