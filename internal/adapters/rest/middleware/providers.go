package middleware

import (
	"github.com/google/wire"

	"github.com/philly/learnhub/backend/internal/adapters/auth"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
)

// ProviderSet is the wire provider set for middleware components
var ProviderSet = wire.NewSet(
	NewJWTMiddleware,
	NewAuthAdapter,
	NewAuthorizationMiddleware,
	wire.Bind(new(TokenVerifier), new(*auth.TokenService)),
	wire.Bind(new(ContributorResolver), new(*ownership.Resolver)),
)
