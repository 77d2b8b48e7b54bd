package authz_adapter

import (
	"github.com/google/wire"

	contributorPorts "github.com/philly/learnhub/backend/internal/contributors/ports"
	identityPorts "github.com/philly/learnhub/backend/internal/identity/ports"
	likePorts "github.com/philly/learnhub/backend/internal/likes/ports"
	resourcePorts "github.com/philly/learnhub/backend/internal/resources/ports"
)

// ProviderSet is the wire provider set for the authorization adapter
var ProviderSet = wire.NewSet(
	NewAuthzAdapter,
	// Bind the AuthzAdapter to every context's Authorizer port
	wire.Bind(new(resourcePorts.Authorizer), new(*AuthzAdapter)),
	wire.Bind(new(contributorPorts.Authorizer), new(*AuthzAdapter)),
	wire.Bind(new(likePorts.Authorizer), new(*AuthzAdapter)),
	wire.Bind(new(identityPorts.Authorizer), new(*AuthzAdapter)),
)
