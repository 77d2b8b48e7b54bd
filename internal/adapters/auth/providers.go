package auth

import (
	"github.com/google/wire"

	"github.com/philly/learnhub/backend/internal/identity/ports"
)

// ProviderSet is the wire provider set for credential handling
var ProviderSet = wire.NewSet(
	NewBcryptHasher,
	wire.Bind(new(ports.PasswordHasher), new(*BcryptHasher)),
	NewTokenService,
	wire.Bind(new(ports.TokenIssuer), new(*TokenService)),
)
