package server

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/philly/learnhub/backend/internal/adapters/auth"
	"github.com/philly/learnhub/backend/internal/adapters/rest"
	authzApp "github.com/philly/learnhub/backend/internal/authz/application"
	contributorsApp "github.com/philly/learnhub/backend/internal/contributors/application"
	identitySeeder "github.com/philly/learnhub/backend/internal/identity/seeder"
	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/events"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/metrics"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
	platformSeeder "github.com/philly/learnhub/backend/internal/platform/seeder"
	resourcesApp "github.com/philly/learnhub/backend/internal/resources/application"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

func provideVersion() rest.Version {
	return Version
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

func provideTokenConfig(config Config) auth.Config {
	return auth.Config{
		Secret:       config.JWTSecret,
		Issuer:       config.JWTIssuer,
		TTL:          config.TokenTTL,
		JWKSEndpoint: config.JWKSEndpoint,
	}
}

// provideAuthzService registers every ownership checker before the
// authorization service starts answering ownership questions.
func provideAuthzService(
	registry *ownership.DefaultRegistry,
	resourcesChecker *resourcesApp.ResourcesOwnershipChecker,
	contributorsChecker *contributorsApp.ContributorsOwnershipChecker,
	log logger.Logger,
) *authzApp.AuthzService {
	resourcesApp.RegisterResourcesOwnership(registry, resourcesChecker)
	contributorsApp.RegisterContributorsOwnership(registry, contributorsChecker)
	return authzApp.NewAuthzService(registry, log)
}

// provideMetrics creates the collectors, adds pool statistics and counts
// every domain event published on bus.
func provideMetrics(pool *pgxpool.Pool, bus *eventbus.Bus, log logger.Logger) *metrics.Metrics {
	m := metrics.NewMetrics()
	if err := m.Register(metrics.NewPoolCollector(pool)); err != nil {
		log.Warn(context.Background(), "failed to register pool collector", "error", err)
	}
	m.SubscribeTo(bus, events.AllTopics)
	return m
}

func provideAdminCredentials(config Config) identitySeeder.AdminCredentials {
	return identitySeeder.AdminCredentials{
		Username: config.AdminUsername,
		Password: config.AdminPassword,
	}
}

// provideSeeders lists the seeders in the order they run
func provideSeeders(admin *identitySeeder.AdminSeeder) []platformSeeder.Seeder {
	return []platformSeeder.Seeder{admin}
}
