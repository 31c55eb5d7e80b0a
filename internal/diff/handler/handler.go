// Package handler wires diff endpoints to the diff service. Transport
// concerns only; business logic stays in the service.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lexdiff/internal/diff"
	"lexdiff/internal/diff/store"
	"lexdiff/internal/forensic"
	"lexdiff/internal/jwtauth"
	"lexdiff/internal/statute"
	domainerrors "lexdiff/pkg/domainerrors"
	"lexdiff/pkg/httputil"
)

// Service defines the interface for diff operations.
type Service interface {
	Evaluate(ctx context.Context, old, new *statute.Statute) (*diff.StatuteDiff, error)
	GenerateRollback(ctx context.Context, forward *diff.StatuteDiff) (*diff.StatuteDiff, error)
	History(ctx context.Context, statuteID string) ([]*diff.StatuteDiff, error)
	Latest(ctx context.Context, statuteID string) (*diff.StatuteDiff, error)
}

// Auditor records who asked for which diff; nil disables auditing.
type Auditor interface {
	Emit(ctx context.Context, record *forensic.AuditRecord) error
}

// Handler wires diff endpoints to the diff service.
type Handler struct {
	service Service
	auditor Auditor
	logger  *slog.Logger
}

// New constructs a diff handler with its dependencies.
func New(service Service, auditor Auditor, logger *slog.Logger) *Handler {
	return &Handler{service: service, auditor: auditor, logger: logger}
}

// Register mounts diff endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/diff/evaluate", h.HandleEvaluate)
	r.Post("/diff/rollback", h.HandleRollback)
	r.Get("/diff/statutes/{statuteID}/history", h.HandleHistory)
	r.Get("/diff/statutes/{statuteID}/latest", h.HandleLatest)
}

// EvaluateRequest carries the two statute snapshots to compare.
type EvaluateRequest struct {
	Old *statute.Statute `json:"old"`
	New *statute.Statute `json:"new"`
}

// HandleEvaluate handles POST /diff/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[EvaluateRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.Old == nil || req.New == nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "both old and new statutes are required"))
		return
	}

	result, err := h.service.Evaluate(ctx, req.Old, req.New)
	if err != nil {
		if errors.Is(err, diff.ErrStatuteIDMismatch) || errors.Is(err, diff.ErrNilStatute) {
			httputil.WriteError(w, domainerrors.Wrap(domainerrors.CodeBadRequest, err.Error(), err))
			return
		}
		h.logger.ErrorContext(ctx, "diff evaluation failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.audit(ctx, "statute_diff_computed", result)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleRollback handles POST /diff/rollback requests. The body is a
// previously computed forward diff; no statute snapshots are needed.
func (h *Handler) HandleRollback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	forward, err := httputil.Decode[diff.StatuteDiff](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rollback, err := h.service.GenerateRollback(ctx, &forward)
	if err != nil {
		httputil.WriteError(w, domainerrors.Wrap(domainerrors.CodeBadRequest, err.Error(), err))
		return
	}

	h.audit(ctx, "statute_rollback_generated", rollback)
	httputil.WriteJSON(w, http.StatusOK, rollback)
}

// HandleHistory handles GET /diff/statutes/{statuteID}/history requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statuteID := chi.URLParam(r, "statuteID")

	diffs, err := h.service.History(ctx, statuteID)
	if err != nil {
		h.logger.ErrorContext(ctx, "diff history lookup failed", "statute_id", statuteID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	if diffs == nil {
		diffs = []*diff.StatuteDiff{}
	}
	httputil.WriteJSON(w, http.StatusOK, diffs)
}

// HandleLatest handles GET /diff/statutes/{statuteID}/latest requests.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statuteID := chi.URLParam(r, "statuteID")

	d, err := h.service.Latest(ctx, statuteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeNotFound, "no archived diff for statute"))
			return
		}
		h.logger.ErrorContext(ctx, "latest diff lookup failed", "statute_id", statuteID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) audit(ctx context.Context, eventType string, d *diff.StatuteDiff) {
	if h.auditor == nil {
		return
	}
	actor := forensic.UserActor(jwtauth.UserID(ctx), jwtauth.Role(ctx))
	record := forensic.NewRecord(
		eventType,
		actor,
		d.StatuteID,
		uuid.Nil, // no subject involved in a version comparison
		"severity="+d.Impact.Severity.String(),
		forensic.DecisionResult{Kind: forensic.ResultVoid},
	)
	if err := h.auditor.Emit(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "audit emit failed", "event_type", eventType, "error", err)
	}
}
