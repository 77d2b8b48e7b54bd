package ownership

import "github.com/google/wire"

// ProviderSet is the wire provider set for ownership registry and resolver
var ProviderSet = wire.NewSet(
	NewRegistry,
	wire.Bind(new(Registry), new(*DefaultRegistry)),
	NewResolver,
)
