package jwtauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	domainerrors "lexdiff/pkg/domainerrors"
	"lexdiff/pkg/httputil"
)

type contextKeyUserID struct{}
type contextKeyRole struct{}

// UserID retrieves the authenticated user ID from the context.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyUserID{}).(string)
	return v
}

// Role retrieves the authenticated role from the context.
func Role(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyRole{}).(string)
	return v
}

// WithIdentity injects identity into a context; used by tests.
func WithIdentity(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID{}, userID)
	return context.WithValue(ctx, contextKeyRole{}, role)
}

// Validator is the narrow surface the middleware needs from Service.
type Validator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller identity in the request context.
func RequireAuth(validator Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token", "error", err)
				httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := WithIdentity(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
