package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/philly/learnhub/backend/internal/adapters/auth"
)

type jwtContextKey string

const jwtClaimsContextKey jwtContextKey = "jwt_claims"

// TokenVerifier checks a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Claims, error)
}

// JWTMiddleware authenticates bearer tokens. Verified claims are stored in
// the request context for the AuthAdapter.
type JWTMiddleware struct {
	verifier TokenVerifier
}

func NewJWTMiddleware(verifier TokenVerifier) *JWTMiddleware {
	return &JWTMiddleware{verifier: verifier}
}

// Required rejects requests that carry no valid token.
func (m *JWTMiddleware) Required(next http.Handler) http.Handler {
	return m.handler(next, true)
}

// Optional lets requests without an Authorization header through as
// anonymous. A header that is present must still hold a valid token.
func (m *JWTMiddleware) Optional(next http.Handler) http.Handler {
	return m.handler(next, false)
}

func (m *JWTMiddleware) handler(next http.Handler, required bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if required {
				WriteJSONError(w, ErrorCodeUnauthorized, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		// Remove "Bearer " prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			WriteJSONError(w, ErrorCodeUnauthorized, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := m.verifier.Verify(r.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				WriteJSONError(w, ErrorCodeTokenExpired, auth.ErrTokenExpired.Error(), http.StatusUnauthorized)
			case errors.Is(err, auth.ErrMissingSubject):
				WriteJSONError(w, ErrorCodeInvalidToken, auth.ErrMissingSubject.Error(), http.StatusUnauthorized)
			default:
				WriteJSONError(w, ErrorCodeInvalidToken, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
			}
			return
		}

		ctx := context.WithValue(r.Context(), jwtClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetJWTClaims extracts the claims set by the JWT middleware
func GetJWTClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(jwtClaimsContextKey).(*auth.Claims)
	return claims, ok
}
