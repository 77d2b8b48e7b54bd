package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
)

// ContributorResolver maps an authenticated username to its contributor
// profile id, or nil when it has none.
type ContributorResolver interface {
	Resolve(ctx context.Context, username string) *uuid.UUID
}

// AuthAdapter turns verified token claims into the authz.Actor that
// services receive. It must be placed AFTER the JWT middleware.
//
// The contributor lookup costs one query per authenticated request.
type AuthAdapter struct {
	resolver ContributorResolver
}

// NewAuthAdapter creates a new authentication adapter
func NewAuthAdapter(resolver ContributorResolver) *AuthAdapter {
	return &AuthAdapter{resolver: resolver}
}

// Middleware stores the resolved actor. Requests without claims get the
// anonymous actor.
func (a *AuthAdapter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := GetJWTClaims(ctx)
		if !ok {
			next.ServeHTTP(w, r.WithContext(WithActor(ctx, authz.Anonymous())))
			return
		}

		actor := authz.Actor{
			Username:      claims.Username,
			Roles:         claims.Roles,
			ContributorID: a.resolver.Resolve(ctx, claims.Username),
		}
		next.ServeHTTP(w, r.WithContext(WithActor(ctx, actor)))
	})
}
