package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Get("/summary", h.summary)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	if _, err := h.svc.Write(&buf); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			respond.Message(w, http.StatusNotFound, err.Error())
			return
		}

		respond.Error(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.svc.Filename()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	txs := h.svc.Transactions()
	if len(txs) == 0 {
		respond.Message(w, http.StatusNotFound, export.ErrNothingToExport.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := fmt.Fprint(w, export.GenerateSummary(txs)); err != nil {
		slog.Error("failed to write export summary", "error", err)
	}
}
