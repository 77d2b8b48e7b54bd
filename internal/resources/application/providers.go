package application

import (
	"github.com/google/wire"

	contributorPorts "github.com/philly/learnhub/backend/internal/contributors/ports"
	likePorts "github.com/philly/learnhub/backend/internal/likes/ports"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

// ProviderSet is the wire provider set for the resources application layer
var ProviderSet = wire.NewSet(
	NewResourcesService,
	NewResourcesOwnershipChecker,
	NewContributorsAdapter,
	wire.Bind(new(ports.ContributionCounter), new(*ContributorsAdapter)),
	wire.Bind(new(ports.ContributorLookup), new(*ContributorsAdapter)),
	NewLikesAdapter,
	wire.Bind(new(ports.LikeCounter), new(*LikesAdapter)),
	NewCatalogAdapter,
	wire.Bind(new(contributorPorts.ResourceLister), new(*CatalogAdapter)),
	wire.Bind(new(likePorts.ResourceChecker), new(*CatalogAdapter)),
)
