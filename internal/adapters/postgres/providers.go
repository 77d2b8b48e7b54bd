package postgres

import (
	"github.com/google/wire"

	contributorPorts "github.com/philly/learnhub/backend/internal/contributors/ports"
	identityPorts "github.com/philly/learnhub/backend/internal/identity/ports"
	likePorts "github.com/philly/learnhub/backend/internal/likes/ports"
	resourcePorts "github.com/philly/learnhub/backend/internal/resources/ports"
)

// ProviderSet is the wire provider set for postgres repositories
var ProviderSet = wire.NewSet(
	NewContributorRepository,
	wire.Bind(new(contributorPorts.ContributorRepository), new(*ContributorRepository)),
	NewResourceRepository,
	wire.Bind(new(resourcePorts.ResourceRepository), new(*ResourceRepository)),
	NewLikeRepository,
	wire.Bind(new(likePorts.LikeRepository), new(*LikeRepository)),
	NewIdentityRepository,
	wire.Bind(new(identityPorts.IdentityRepository), new(*IdentityRepository)),
)
