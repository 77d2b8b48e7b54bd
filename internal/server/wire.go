//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/philly/learnhub/backend/internal/adapters/auth"
	"github.com/philly/learnhub/backend/internal/adapters/authz_adapter"
	"github.com/philly/learnhub/backend/internal/adapters/postgres"
	"github.com/philly/learnhub/backend/internal/adapters/rest"
	"github.com/philly/learnhub/backend/internal/adapters/rest/middleware"
	contributorsApp "github.com/philly/learnhub/backend/internal/contributors/application"
	identityApp "github.com/philly/learnhub/backend/internal/identity/application"
	identitySeeder "github.com/philly/learnhub/backend/internal/identity/seeder"
	likesApp "github.com/philly/learnhub/backend/internal/likes/application"
	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
	platformPostgres "github.com/philly/learnhub/backend/internal/platform/postgres"
	platformSeeder "github.com/philly/learnhub/backend/internal/platform/seeder"
	"github.com/philly/learnhub/backend/internal/platform/validator"
	resourcesApp "github.com/philly/learnhub/backend/internal/resources/application"
)

// coreSet builds everything up to the application services
var coreSet = wire.NewSet(
	// Bootstrap phase
	logger.NewBootstrapLogger,
	LoadConfig,

	// Main logger
	provideLoggerConfig,
	logger.ProviderSet,

	// Database
	ConnectDatabase,
	platformPostgres.NewTransactionManager,

	// Repository providers (includes interface binding)
	postgres.ProviderSet,

	// Platform services
	ownership.ProviderSet,
	eventbus.ProviderSet,

	// Credentials and authorization
	provideTokenConfig,
	auth.ProviderSet,
	provideAuthzService,
	authz_adapter.ProviderSet,

	// Application services
	identityApp.ProviderSet,
	contributorsApp.ProviderSet,
	resourcesApp.ProviderSet,
	likesApp.ProviderSet,
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		coreSet,

		// REST handlers
		validator.New,
		rest.ProviderSet,
		provideVersion,
		wire.Bind(new(rest.DatabasePinger), new(*pgxpool.Pool)),
		platformPostgres.NewSchemaCheck,
		wire.Bind(new(rest.SchemaChecker), new(*platformPostgres.SchemaCheck)),

		// Auth middleware
		middleware.ProviderSet,

		// HTTP Server
		provideMetrics,
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}

// InitializeSeeder creates the seeder orchestrator used by the seed command
func InitializeSeeder(ctx context.Context) (*platformSeeder.Orchestrator, func(), error) {
	wire.Build(
		coreSet,

		provideAdminCredentials,
		identitySeeder.NewAdminSeeder,
		wire.Bind(new(identitySeeder.AdminProvisioner), new(*identityApp.IdentityService)),
		provideSeeders,
		platformSeeder.NewOrchestrator,
	)

	return nil, nil, nil
}
