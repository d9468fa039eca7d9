package transaction_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	txhttp "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/kv"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	"github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type failingKV struct{ kv.Store }

func (failingKV) Put(context.Context, string, []byte) error { return errors.New("quota exceeded") }

type recorder struct {
	severities []notify.Severity
}

func (r *recorder) Notify(_ context.Context, _ string, s notify.Severity) {
	r.severities = append(r.severities, s)
}

func newRouter(t *testing.T, backend kv.Store) (http.Handler, *recorder) {
	t.Helper()

	svc := transaction.NewService(store.New(backend))
	require.NoError(t, svc.Load(context.Background()))

	rec := &recorder{}
	h := txhttp.NewHandler(svc, rec)

	r := chi.NewRouter()
	r.Route("/transactions", h.Routes)
	r.Route("/summary", h.SummaryRoutes)

	return r, rec
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

const lunchBody = `{"date":"2024-01-15","description":"Lunch","category":"Food","amount":250,"type":"expense"}`

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name     string
		body     string
		wantCode int
	}

	tests := []testCase{
		{name: "Success", body: lunchBody, wantCode: http.StatusCreated},
		{name: "DisplayDate", body: `{"date":"15/01/2024","description":"Bus","category":"transport","amount":"2.5","type":"expense"}`, wantCode: http.StatusCreated},
		{name: "NegativeAmount", body: `{"date":"2024-01-15","description":"Lunch","category":"Food","amount":-5,"type":"expense"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "UnknownCategory", body: `{"date":"2024-01-15","description":"Lunch","category":"Travel","amount":5,"type":"expense"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "MissingDescription", body: `{"date":"2024-01-15","description":" ","category":"Food","amount":5,"type":"expense"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "BadDate", body: `{"date":"tomorrow","description":"Lunch","category":"Food","amount":5,"type":"expense"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "MalformedJSON", body: `{`, wantCode: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := newRouter(t, kv.NewMemoryStore())

			rec := do(t, router, http.MethodPost, "/transactions", tc.body)
			assert.Equal(t, tc.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Scenario(t *testing.T) {
	router, notes := newRouter(t, kv.NewMemoryStore())

	rec := do(t, router, http.MethodPost, "/transactions", lunchBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[respond.MutationResponse](t, rec)
	require.NotNil(t, created.Transaction)
	assert.Equal(t, "Transaction added", created.Message)
	assert.Equal(t, json.Number("250"), created.Summary.TotalExpense)

	rec = do(t, router, http.MethodPost, "/transactions",
		`{"date":"2024-01-16","description":"Salary","category":"Other","amount":50000,"type":"income"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	sum := decode[respond.MutationResponse](t, rec).Summary
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, json.Number("49750"), sum.Balance)

	id := created.Transaction.ID
	target := "/transactions/" + strconv.FormatInt(id, 10)

	rec = do(t, router, http.MethodPut, target,
		`{"date":"2024-01-15","description":"Lunch","category":"Food","amount":300,"type":"expense"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[respond.MutationResponse](t, rec)
	assert.Equal(t, json.Number("300"), updated.Summary.TotalExpense)
	assert.Equal(t, json.Number("49700"), updated.Summary.Balance)
	assert.Equal(t, id, updated.Transaction.ID)

	rec = do(t, router, http.MethodGet, "/transactions?q=lunch", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]respond.TransactionResponse](t, rec), 1)

	rec = do(t, router, http.MethodGet, "/summary?type=income", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, json.Number("50000"), decode[respond.SummaryResponse](t, rec).TotalIncome)

	rec = do(t, router, http.MethodDelete, target, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[respond.MutationResponse](t, rec).Summary.Count)

	rec = do(t, router, http.MethodGet, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, "/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := decode[respond.MutationResponse](t, rec).Summary
	assert.Equal(t, 0, cleared.Count)
	assert.Equal(t, json.Number("0"), cleared.Balance)

	assert.Equal(t, []notify.Severity{
		notify.SeveritySuccess,
		notify.SeveritySuccess,
		notify.SeveritySuccess,
		notify.SeveritySuccess,
		notify.SeveritySuccess,
	}, notes.severities)
}

func TestHandler_NotFoundAndBadID(t *testing.T) {
	router, _ := newRouter(t, kv.NewMemoryStore())

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/transactions/42", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPut, "/transactions/42", lunchBody).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/transactions/abc", "").Code)
}

func TestHandler_ListFilters(t *testing.T) {
	router, _ := newRouter(t, kv.NewMemoryStore())

	for _, body := range []string{
		lunchBody,
		`{"date":"2024-02-01","description":"Train","category":"Transport","amount":40,"type":"expense"}`,
		`{"date":"2024-02-05","description":"Bonus","category":"Other","amount":100,"type":"income"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/transactions", body).Code)
	}

	type testCase struct {
		name     string
		query    string
		wantCode int
		wantLen  int
	}

	tests := []testCase{
		{name: "All", query: "", wantCode: http.StatusOK, wantLen: 3},
		{name: "Type", query: "?type=expense", wantCode: http.StatusOK, wantLen: 2},
		{name: "Category", query: "?category=transport", wantCode: http.StatusOK, wantLen: 1},
		{name: "DateRange", query: "?start_date=2024-02-01&end_date=2024-02-03", wantCode: http.StatusOK, wantLen: 1},
		{name: "DisplayDateText", query: "?q=05/02", wantCode: http.StatusOK, wantLen: 1},
		{name: "BadType", query: "?type=refund", wantCode: http.StatusUnprocessableEntity},
		{name: "BadDate", query: "?start_date=soon", wantCode: http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, "/transactions"+tc.query, "")
			require.Equal(t, tc.wantCode, rec.Code)

			if tc.wantCode == http.StatusOK {
				assert.Len(t, decode[[]respond.TransactionResponse](t, rec), tc.wantLen)
			}
		})
	}
}

func TestHandler_PersistenceFailure(t *testing.T) {
	router, notes := newRouter(t, failingKV{kv.NewMemoryStore()})

	rec := do(t, router, http.MethodPost, "/transactions", lunchBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "kept in memory")
	assert.Equal(t, []notify.Severity{notify.SeverityError}, notes.severities)

	// The record stays in the session even though saving failed.
	rec = do(t, router, http.MethodGet, "/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]respond.TransactionResponse](t, rec), 1)
}
