// Package httpapi assembles the service router. Handlers stay in their
// feature packages; this is wiring only.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	diffhandler "lexdiff/internal/diff/handler"
	forensichandler "lexdiff/internal/forensic/handler"
	"lexdiff/internal/jwtauth"
)

// NewRouter wires all endpoints. The diff and audit APIs sit behind JWT
// auth; health and metrics stay open for probes and scrapers.
func NewRouter(
	logger *slog.Logger,
	validator jwtauth.Validator,
	diffHandler *diffhandler.Handler,
	auditHandler *forensichandler.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.RequireAuth(validator, logger))
		diffHandler.Register(r)
		auditHandler.Register(r)
	})

	return r
}
