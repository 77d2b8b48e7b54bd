package application

import "github.com/google/wire"

// ProviderSet is the wire provider set for the identity application layer
var ProviderSet = wire.NewSet(
	NewIdentityService,
)
