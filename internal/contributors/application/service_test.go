package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzApp "github.com/philly/learnhub/backend/internal/authz/application"
	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/contributors/domain"
	"github.com/philly/learnhub/backend/internal/contributors/ports"
	identityPorts "github.com/philly/learnhub/backend/internal/identity/ports"
	"github.com/philly/learnhub/backend/internal/platform/apperror"
	"github.com/philly/learnhub/backend/internal/platform/events"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/ownership"
)

func ptr(s string) *string { return &s }

type fixture struct {
	svc       *ContributorsService
	repo      *memoryRepo
	bus       *recordingBus
	resources stubResources
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMemoryRepo()
	registry := ownership.NewRegistry()
	RegisterContributorsOwnership(registry, NewContributorsOwnershipChecker(repo))
	authorizer := authzApp.NewAuthzService(registry, logger.Nop{})

	bus := &recordingBus{}
	resources := stubResources{}
	svc := NewContributorsService(repo, resources, authorizer, noopTxManager{}, bus, logger.Nop{})
	return &fixture{svc: svc, repo: repo, bus: bus, resources: resources}
}

func (f *fixture) addContributor(t *testing.T, github, screen *string, username string, contributions int) *domain.Contributor {
	t.Helper()
	c, err := domain.NewContributor(github, screen, ptr(username))
	require.NoError(t, err)
	c.Contributions = contributions
	return f.repo.put(c)
}

func owner(c *domain.Contributor) authz.Actor {
	id := c.ID
	return authz.Actor{Username: *c.Username, Roles: authz.NewRoleSet(authz.RoleUser), ContributorID: &id}
}

var admin = authz.Actor{Username: "root", Roles: authz.NewRoleSet(authz.RoleUser, authz.RoleAdmin)}

func TestGetByDisplayName(t *testing.T) {
	f := newFixture(t)
	c := f.addContributor(t, ptr("octocat"), nil, "ada", 1)
	f.resources[c.ID] = []ports.OwnedResource{{LearningID: 7, Title: "Go by Example"}}

	profile, err := f.svc.GetByDisplayName(context.Background(), "  OctoCat ")
	require.NoError(t, err)
	assert.Equal(t, c.ID, profile.ID)
	require.Len(t, profile.Resources, 1)
	assert.Equal(t, int64(7), profile.Resources[0].LearningID)

	_, err = f.svc.GetByDisplayName(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrContributorNotFound)

	_, err = f.svc.GetByDisplayName(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestGetByID_AdminOnly(t *testing.T) {
	f := newFixture(t)
	c := f.addContributor(t, ptr("octocat"), nil, "ada", 0)

	_, err := f.svc.GetByID(context.Background(), owner(c), c.ID)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	profile, err := f.svc.GetByID(context.Background(), admin, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.DisplayName())

	_, err = f.svc.GetByID(context.Background(), admin, uuid.New())
	assert.ErrorIs(t, err, ErrContributorNotFound)
}

func TestListAll_SplitsByGithubProfile(t *testing.T) {
	f := newFixture(t)
	f.addContributor(t, ptr("zeta"), ptr("Zed"), "z", 0)
	f.addContributor(t, nil, ptr("mona"), "m", 0)
	f.addContributor(t, ptr("alpha"), nil, "a", 0)

	dir, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, dir.Github, 2)
	assert.Equal(t, "zeta", dir.Github[0].DisplayName())
	assert.Equal(t, "alpha", dir.Github[1].DisplayName())
	require.Len(t, dir.Screen, 1)
	assert.Equal(t, "mona", dir.Screen[0].DisplayName())
}

func TestListByContributions(t *testing.T) {
	f := newFixture(t)
	f.addContributor(t, ptr("few"), nil, "f", 1)
	f.addContributor(t, ptr("many"), nil, "m", 9)
	f.addContributor(t, nil, ptr("screen"), "s", 4)

	dir, err := f.svc.ListByContributions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "many", dir.Github[0].DisplayName())
	assert.Equal(t, "few", dir.Github[1].DisplayName())
	assert.Equal(t, "screen", dir.Screen[0].DisplayName())
}

func TestListAll_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.err = errors.New("connection refused")

	_, err := f.svc.ListAll(context.Background())
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInternalError, appErr.Code)
	assert.NotContains(t, appErr.Message, "connection refused")
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner keeps absent field", func(t *testing.T) {
		f := newFixture(t)
		c := f.addContributor(t, ptr("octocat"), ptr("Octo"), "ada", 0)

		updated, err := f.svc.Update(ctx, owner(c), "octocat", domain.ProfilePatch{ScreenName: ptr("Ada")})
		require.NoError(t, err)
		assert.Equal(t, "octocat", *updated.GithubProfile)
		assert.Equal(t, "Ada", *updated.ScreenName)
		assert.Equal(t, []string{string(events.ContributorUpdatedTopic)}, topics(f.bus))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newFixture(t)
		c := f.addContributor(t, ptr("octocat"), nil, "ada", 0)
		other := f.addContributor(t, ptr("hubot"), nil, "bob", 0)

		_, err := f.svc.Update(ctx, owner(other), "octocat", domain.ProfilePatch{ScreenName: ptr("x")})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)

		stored, _ := f.repo.FindByID(ctx, c.ID)
		assert.Nil(t, stored.ScreenName)
		assert.Empty(t, f.bus.topics)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		f := newFixture(t)
		f.addContributor(t, ptr("octocat"), nil, "ada", 0)

		updated, err := f.svc.Update(ctx, admin, "octocat", domain.ProfilePatch{GithubProfile: ptr("octo2")})
		require.NoError(t, err)
		assert.Equal(t, "octo2", updated.DisplayName())
	})

	t.Run("payload without a name", func(t *testing.T) {
		f := newFixture(t)
		c := f.addContributor(t, ptr("octocat"), nil, "ada", 0)

		_, err := f.svc.Update(ctx, owner(c), "octocat", domain.ProfilePatch{ScreenName: ptr("  ")})
		assert.ErrorIs(t, err, ErrDisplayNameRequired)
	})

	t.Run("name collision", func(t *testing.T) {
		f := newFixture(t)
		c := f.addContributor(t, ptr("octocat"), nil, "ada", 0)
		f.addContributor(t, ptr("hubot"), nil, "bob", 0)

		_, err := f.svc.Update(ctx, owner(c), "octocat", domain.ProfilePatch{GithubProfile: ptr("HUBOT")})
		assert.ErrorIs(t, err, ErrDisplayNameTaken)
	})

	t.Run("identity without profile", func(t *testing.T) {
		f := newFixture(t)
		f.addContributor(t, ptr("octocat"), nil, "ada", 0)
		noProfile := authz.Actor{Username: "eve", Roles: authz.NewRoleSet(authz.RoleUser)}

		_, err := f.svc.Update(ctx, noProfile, "octocat", domain.ProfilePatch{ScreenName: ptr("x")})
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes empty profile", func(t *testing.T) {
		f := newFixture(t)
		c := f.addContributor(t, nil, ptr("mona"), "ada", 0)

		require.NoError(t, f.svc.Delete(ctx, owner(c), "MONA"))
		_, err := f.repo.FindByID(ctx, c.ID)
		assert.ErrorIs(t, err, ports.ErrContributorNotFound)
		assert.Equal(t, []string{string(events.ContributorDeletedTopic)}, topics(f.bus))
	})

	t.Run("profile with resources is blocked", func(t *testing.T) {
		f := newFixture(t)
		c := f.addContributor(t, ptr("octocat"), nil, "ada", 2)

		err := f.svc.Delete(ctx, admin, "octocat")
		assert.ErrorIs(t, err, ErrContributorHasResources)

		stored, err := f.repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Contributions)
	})

	t.Run("missing profile", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Delete(ctx, admin, "ghost")
		assert.ErrorIs(t, err, ErrContributorNotFound)
	})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.addContributor(t, ptr("octocat"), nil, "ada", 0)

		err := f.svc.Delete(ctx, authz.Anonymous(), "octocat")
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})
}

func TestOwnershipChecker_Directory(t *testing.T) {
	f := newFixture(t)
	c := f.addContributor(t, ptr("octocat"), nil, "Ada", 0)
	checker := NewContributorsOwnershipChecker(f.repo)

	id, err := checker.ContributorIDByUsername(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)

	_, err = checker.ContributorIDByUsername(context.Background(), "eve")
	assert.ErrorIs(t, err, ownership.ErrNotFound)
}

func topics(b *recordingBus) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.topics))
	for i, t := range b.topics {
		out[i] = string(t)
	}
	return out
}

func TestProfileCreator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addContributor(t, ptr("octocat"), nil, "ada", 0)
	creator := NewProfileCreator(f.repo)

	id, err := creator.CreateProfile(ctx, "grace", nil, ptr(" Grace "))
	require.NoError(t, err)
	stored, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Grace", *stored.ScreenName)
	assert.Equal(t, "grace", *stored.Username)
	assert.Zero(t, stored.Contributions)

	_, err = creator.CreateProfile(ctx, "bob", ptr("OCTOCAT"), nil)
	assert.ErrorIs(t, err, identityPorts.ErrDisplayNameTaken)
}
