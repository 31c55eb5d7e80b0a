// Package handler exposes read-only query endpoints over the forensic log.
// There is deliberately no write endpoint: records enter the log through the
// publisher, never through the HTTP surface.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lexdiff/internal/forensic"
	domainerrors "lexdiff/pkg/domainerrors"
	"lexdiff/pkg/httputil"
)

// Handler wires audit query endpoints to the append-only storage.
type Handler struct {
	storage *forensic.AppendOnlyStorage
	logger  *slog.Logger
}

func New(storage *forensic.AppendOnlyStorage, logger *slog.Logger) *Handler {
	return &Handler{storage: storage, logger: logger}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/records/{recordID}", h.HandleGet)
	r.Get("/audit/statutes/{statuteID}/records", h.HandleByStatute)
	r.Get("/audit/subjects/{subjectID}/records", h.HandleBySubject)
	r.Get("/audit/records", h.HandleByTimeRange)
	r.Get("/audit/verify", h.HandleVerify)
}

// HandleGet handles GET /audit/records/{recordID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "recordID"))
	if err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid record id"))
		return
	}

	record, err := h.storage.Get(id)
	if err != nil {
		if errors.Is(err, forensic.ErrRecordNotFound) {
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeNotFound, "audit record not found"))
			return
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleByStatute handles GET /audit/statutes/{statuteID}/records.
func (h *Handler) HandleByStatute(w http.ResponseWriter, r *http.Request) {
	statuteID := chi.URLParam(r, "statuteID")
	httputil.WriteJSON(w, http.StatusOK, h.storage.GetByStatute(statuteID))
}

// HandleBySubject handles GET /audit/subjects/{subjectID}/records.
func (h *Handler) HandleBySubject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "subjectID"))
	if err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid subject id"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.storage.GetBySubject(id))
}

// HandleByTimeRange handles GET /audit/records?start=...&end=... with
// RFC 3339 bounds; both default to an open end.
func (h *Handler) HandleByTimeRange(w http.ResponseWriter, r *http.Request) {
	start := time.Time{}
	end := time.Now().Add(24 * time.Hour)

	if v := r.URL.Query().Get("start"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid start time"))
			return
		}
		start = parsed
	}
	if v := r.URL.Query().Get("end"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid end time"))
			return
		}
		end = parsed
	}

	httputil.WriteJSON(w, http.StatusOK, h.storage.GetByTimeRange(start, end))
}

// VerifyResponse reports the outcome of a chain verification walk.
type VerifyResponse struct {
	Valid   bool   `json:"valid"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// HandleVerify handles GET /audit/verify.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	resp := VerifyResponse{Valid: true, Records: h.storage.Count()}
	if err := h.storage.VerifyChain(); err != nil {
		h.logger.WarnContext(r.Context(), "audit chain verification failed", "error", err)
		resp.Valid = false
		resp.Error = err.Error()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
