//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	contributorDomain "github.com/philly/learnhub/backend/internal/contributors/domain"
	identityDomain "github.com/philly/learnhub/backend/internal/identity/domain"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
	resourceDomain "github.com/philly/learnhub/backend/internal/resources/domain"
)

// setupDatabase starts a throwaway PostgreSQL, applies the embedded
// migrations and returns a pool. The container is removed on cleanup.
func setupDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		t.Skip("Docker not available, skipping integration tests")
	}
	_ = provider.Close()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("learnhub_test"),
		tcpostgres.WithUsername("learnhub"),
		tcpostgres.WithPassword("learnhub_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.MigrateUp(dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type fixture struct {
	pool         *pgxpool.Pool
	tm           postgres.TransactionManager
	identities   *IdentityRepository
	contributors *ContributorRepository
	resources    *ResourceRepository
	likes        *LikeRepository
}

func newFixture(t *testing.T) *fixture {
	pool := setupDatabase(t)
	return &fixture{
		pool:         pool,
		tm:           postgres.NewTransactionManager(pool),
		identities:   NewIdentityRepository(pool),
		contributors: NewContributorRepository(pool),
		resources:    NewResourceRepository(pool),
		likes:        NewLikeRepository(pool),
	}
}

func (f *fixture) identity(t *testing.T, username string) *identityDomain.Identity {
	t.Helper()
	identity, err := identityDomain.NewIdentity(username, "hash", authz.NewRoleSet(authz.RoleUser))
	require.NoError(t, err)
	require.NoError(t, f.identities.Create(context.Background(), identity))
	return identity
}

func (f *fixture) contributor(t *testing.T, github, screen *string, username string) *contributorDomain.Contributor {
	t.Helper()
	var owner *string
	if username != "" {
		f.identity(t, username)
		owner = &username
	}
	c, err := contributorDomain.NewContributor(github, screen, owner)
	require.NoError(t, err)
	require.NoError(t, f.contributors.Create(context.Background(), c))
	return c
}

// resource inserts a resource and bumps its owner's counter in one transaction.
func (f *fixture) resource(t *testing.T, owner *contributorDomain.Contributor, title string, format resourceDomain.FormatCategory, sub resourceDomain.SubCategory, description string) *resourceDomain.Resource {
	t.Helper()
	ctx := context.Background()
	r, err := resourceDomain.NewResource("https://example.com/"+title, title, format, sub, description, owner.ID)
	require.NoError(t, err)
	err = postgres.RunInTx(ctx, f.tm, func(tx postgres.Transaction) error {
		if err := f.resources.WithTx(tx.Tx()).Create(ctx, r); err != nil {
			return err
		}
		return f.contributors.WithTx(tx.Tx()).IncrementContributions(ctx, owner.ID)
	})
	require.NoError(t, err)
	return r
}

func ptr(s string) *string { return &s }
