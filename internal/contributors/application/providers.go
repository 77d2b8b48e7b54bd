package application

import (
	"github.com/google/wire"

	identityPorts "github.com/philly/learnhub/backend/internal/identity/ports"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
)

// ProviderSet is the wire provider set for the contributors application layer
var ProviderSet = wire.NewSet(
	NewContributorsService,
	NewContributorsOwnershipChecker,
	wire.Bind(new(ownership.ContributorDirectory), new(*ContributorsOwnershipChecker)),
	NewProfileCreator,
	wire.Bind(new(identityPorts.ProfileCreator), new(*ProfileCreator)),
)
