package matching_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchhttp "github.com/MrJamesThe3rd/tally/internal/http/matching"
	"github.com/MrJamesThe3rd/tally/internal/kv"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/matching/store"
)

func newRouter() http.Handler {
	h := matchhttp.NewHandler(matching.NewService(store.New(kv.NewMemoryStore())))

	r := chi.NewRouter()
	r.Route("/categories", h.Routes)

	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_LearnAndSuggest(t *testing.T) {
	router := newRouter()

	rec := serve(router, http.MethodPost, "/categories/rules", `{"pattern":"Netflix","category":"utilities"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/categories/rules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"pattern":"Netflix","category":"Utilities"}]`, rec.Body.String())

	rec = serve(router, http.MethodGet, "/categories/suggest?description=NETFLIX.COM+monthly", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Utilities", resp["category"])

	rec = serve(router, http.MethodGet, "/categories/suggest?description=bakery", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"description":"bakery","category":""}`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	type testCase struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
	}

	tests := []testCase{
		{name: "SuggestWithoutDescription", method: http.MethodGet, target: "/categories/suggest", wantCode: http.StatusBadRequest},
		{name: "LearnMalformed", method: http.MethodPost, target: "/categories/rules", body: `{`, wantCode: http.StatusBadRequest},
		{name: "LearnUnknownCategory", method: http.MethodPost, target: "/categories/rules", body: `{"pattern":"x","category":"Travel"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "LearnEmptyPattern", method: http.MethodPost, target: "/categories/rules", body: `{"pattern":" ","category":"Food"}`, wantCode: http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(newRouter(), tc.method, tc.target, tc.body)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}
