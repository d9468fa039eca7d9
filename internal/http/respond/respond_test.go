package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

func TestError(t *testing.T) {
	type testCase struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}

	tests := []testCase{
		{
			name:     "Validation",
			err:      &transaction.ValidationError{Field: "amount", Reason: "must be greater than zero"},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error":"invalid amount: must be greater than zero"}`,
		},
		{
			name:     "NotFound",
			err:      fmt.Errorf("removing transaction 7: %w", transaction.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"removing transaction 7: transaction not found"}`,
		},
		{
			name:     "ImportFormat",
			err:      &transaction.ImportFormatError{Index: -1, Err: errors.New("top level must be an array")},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid import format: top level must be an array"}`,
		},
		{
			name: "ImportFormatInvalidEntry",
			err: &transaction.ImportFormatError{
				Index: 0,
				Err:   &transaction.ValidationError{Field: "amount", Reason: "must be greater than zero"},
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid import format: entry 0: invalid amount: must be greater than zero"}`,
		},
		{
			name:     "Persistence",
			err:      &transaction.PersistenceError{Op: "saving", Err: errors.New("disk full")},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"saving transactions: disk full","detail":"the change is kept in memory but could not be saved"}`,
		},
		{
			name:     "Unexpected",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}
