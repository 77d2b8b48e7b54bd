package middleware

import (
	"context"
	"net/http"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/platform/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// ActorKey is the context key for the resolved caller
const ActorKey contextKey = "actor"

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFromContext returns the caller, or the anonymous actor.
func ActorFromContext(ctx context.Context) authz.Actor {
	actor, ok := ctx.Value(ActorKey).(authz.Actor)
	if !ok {
		return authz.Anonymous()
	}
	return actor
}

// AuthorizationMiddleware gates routes on the caller's role labels.
// Ownership checks happen in the services, not here.
type AuthorizationMiddleware struct {
	logger logger.Logger
}

// NewAuthorizationMiddleware creates a new authorization middleware
func NewAuthorizationMiddleware(logger logger.Logger) *AuthorizationMiddleware {
	return &AuthorizationMiddleware{logger: logger}
}

// RequireRole passes callers holding at least one of roles.
func (m *AuthorizationMiddleware) RequireRole(roles ...authz.Role) func(http.Handler) http.Handler {
	required := authz.NewRoleSet(roles...).Strings()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			actor := ActorFromContext(ctx)
			if !actor.IsAuthenticated() {
				m.logger.Warn(ctx, "actor not found in context")
				WriteJSONError(w, ErrorCodeUnauthorized, "Authentication required", http.StatusUnauthorized)
				return
			}

			if actor.Roles.HasAny(roles...) {
				next.ServeHTTP(w, r)
				return
			}

			m.logger.Warn(ctx, "role denied",
				"actor", actor.Username,
				"roles", actor.Roles.String(),
				"path", r.URL.Path,
			)
			WriteJSONErrorWithDetails(w, ErrorCodeForbidden, "Insufficient permissions", http.StatusForbidden, map[string]any{
				"required_roles": required,
			})
		})
	}
}
