package transaction

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc      *transaction.Service
	notifier notify.Notifier
}

func NewHandler(svc *transaction.Service, notifier notify.Notifier) *Handler {
	return &Handler{svc: svc, notifier: notifier}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/", h.clear)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// SummaryRoutes serves the aggregates, accepting the same filters as the list.
func (h *Handler) SummaryRoutes(r chi.Router) {
	r.Get("/", h.summary)
}

type transactionRequest struct {
	ID          int64       `json:"id,omitempty"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
}

func (req transactionRequest) toTransaction() (transaction.Transaction, error) {
	date, err := transaction.ParseDate(req.Date)
	if err != nil {
		return transaction.Transaction{}, err
	}

	amount, err := transaction.ParseAmount(req.Amount.String())
	if err != nil {
		return transaction.Transaction{}, err
	}

	return transaction.Transaction{
		ID:          req.ID,
		Date:        date,
		Description: req.Description,
		Category:    transaction.Category(req.Category),
		Amount:      amount,
		Type:        transaction.Type(req.Type),
	}, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := req.toTransaction()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	created, summary, err := h.svc.Add(r.Context(), transaction.CreateParams{
		Date:        tx.Date,
		Description: tx.Description,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Type:        tx.Type,
	})
	if !h.report(w, r, "Transaction added", err) {
		return
	}

	resp := respond.Transaction(*created)

	respond.JSON(w, http.StatusCreated, respond.MutationResponse{
		Message:     "Transaction added",
		Summary:     respond.Summary(summary),
		Transaction: &resp,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.Transactions(h.svc.List(filter)))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.Summary(h.svc.SummaryFor(filter)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, respond.Transaction(*tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := req.toTransaction()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	summary, err := h.svc.Update(r.Context(), id, tx)
	if !h.report(w, r, "Transaction updated", err) {
		return
	}

	updated, err := h.svc.Get(id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := respond.Transaction(*updated)

	respond.JSON(w, http.StatusOK, respond.MutationResponse{
		Message:     "Transaction updated",
		Summary:     respond.Summary(summary),
		Transaction: &resp,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.Remove(r.Context(), id)
	if !h.report(w, r, "Transaction deleted", err) {
		return
	}

	respond.JSON(w, http.StatusOK, respond.MutationResponse{
		Message: "Transaction deleted",
		Summary: respond.Summary(summary),
	})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Clear(r.Context())
	if !h.report(w, r, "All transactions cleared", err) {
		return
	}

	respond.JSON(w, http.StatusOK, respond.MutationResponse{
		Message: "All transactions cleared",
		Summary: respond.Summary(summary),
	})
}

// report notifies the outcome of a mutation and writes the error response on failure.
// It returns true when the handler should go on to write its success body.
func (h *Handler) report(w http.ResponseWriter, r *http.Request, success string, err error) bool {
	msg, severity := notify.Outcome(success, err)
	h.notifier.Notify(r.Context(), msg, severity)

	if err != nil {
		respond.Error(w, r, err)
		return false
	}

	return true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}

	return id, true
}

func parseFilter(r *http.Request) (transaction.ListFilter, error) {
	q := r.URL.Query()
	filter := transaction.ListFilter{Text: q.Get("q")}

	if s := q.Get("type"); s != "" {
		t, ok := transaction.ParseType(s)
		if !ok {
			return filter, &transaction.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", s)}
		}

		filter.Type = new(t)
	}

	if s := q.Get("category"); s != "" {
		c, ok := transaction.ParseCategory(s)
		if !ok {
			return filter, &transaction.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", s)}
		}

		filter.Category = new(c)
	}

	if s := q.Get("start_date"); s != "" {
		t, err := transaction.ParseDate(s)
		if err != nil {
			return filter, &transaction.ValidationError{Field: "start_date", Reason: "must be YYYY-MM-DD or DD/MM/YYYY"}
		}

		filter.StartDate = new(t)
	}

	if s := q.Get("end_date"); s != "" {
		t, err := transaction.ParseDate(s)
		if err != nil {
			return filter, &transaction.ValidationError{Field: "end_date", Reason: "must be YYYY-MM-DD or DD/MM/YYYY"}
		}

		filter.EndDate = new(t)
	}

	return filter, nil
}
