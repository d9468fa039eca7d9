package importfile

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	notifier  notify.Notifier
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, notifier notify.Notifier) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		notifier:  notifier,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importFile)
}

type importResponse struct {
	respond.MutationResponse
	Imported     int                           `json:"imported"`
	Remapped     int                           `json:"remapped"`
	Transactions []respond.TransactionResponse `json:"transactions"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Message(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	name := r.FormValue("format")
	if name == "" {
		name = filepath.Ext(header.Filename)
	}

	format, ok := importer.ParseFormat(name)
	if !ok {
		respond.Message(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", name))
		return
	}

	records, err := h.importSvc.Import(r.Context(), format, file)
	if err != nil {
		h.notifier.Notify(r.Context(), err.Error(), notify.SeverityError)
		respond.Error(w, r, err)

		return
	}

	result, err := h.txSvc.Import(r.Context(), records)

	msg := "Nothing to import"
	if result != nil && len(result.Imported) > 0 {
		msg = fmt.Sprintf("Imported %d transactions", len(result.Imported))
	}

	note, severity := notify.Outcome(msg, err)
	h.notifier.Notify(r.Context(), note, severity)

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		MutationResponse: respond.MutationResponse{
			Message: msg,
			Summary: respond.Summary(result.Summary),
		},
		Imported:     len(result.Imported),
		Remapped:     result.Remapped,
		Transactions: respond.Transactions(result.Imported),
	})
}
