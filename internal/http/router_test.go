package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyhttp "github.com/MrJamesThe3rd/tally/internal/http"
	exporthttp "github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/http/importfile"
	matchhttp "github.com/MrJamesThe3rd/tally/internal/http/matching"
	txhttp "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/kv"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	matchstore "github.com/MrJamesThe3rd/tally/internal/matching/store"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txstore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func newRouter(t *testing.T, opts tallyhttp.Options) http.Handler {
	t.Helper()

	backend := kv.NewMemoryStore()
	notifier := notify.NewLog(nil)

	txSvc := transaction.NewService(txstore.New(backend))
	require.NoError(t, txSvc.Load(context.Background()))

	matchSvc := matching.NewService(matchstore.New(backend))

	return tallyhttp.New(opts,
		txhttp.NewHandler(txSvc, notifier),
		importfile.NewHandler(importer.NewService(matchSvc), txSvc, notifier),
		matchhttp.NewHandler(matchSvc),
		exporthttp.NewHandler(export.NewService(txSvc, nil)),
	)
}

func TestRouter_Routes(t *testing.T) {
	router := newRouter(t, tallyhttp.Options{AllowedOrigins: []string{"*"}})

	type testCase struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
	}

	tests := []testCase{
		{name: "Health", method: http.MethodGet, target: "/healthz", wantCode: http.StatusNoContent},
		{name: "List", method: http.MethodGet, target: "/api/v1/transactions", wantCode: http.StatusOK},
		{name: "Summary", method: http.MethodGet, target: "/api/v1/summary", wantCode: http.StatusOK},
		{name: "Rules", method: http.MethodGet, target: "/api/v1/categories/rules", wantCode: http.StatusOK},
		{name: "ExportEmpty", method: http.MethodGet, target: "/api/v1/export", wantCode: http.StatusNotFound},
		{name: "WrongContentType", method: http.MethodPost, target: "/api/v1/transactions", body: "x", wantCode: http.StatusUnsupportedMediaType},
		{name: "Unknown", method: http.MethodGet, target: "/api/v1/nope", wantCode: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "text/plain")
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestRouter_Auth(t *testing.T) {
	tokens := auth.NewTokenManager("s3cret", time.Hour)
	router := newRouter(t, tallyhttp.Options{AllowedOrigins: []string{"*"}, Auth: tokens.Middleware})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := tokens.Issue("test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
