package application

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/identity/domain"
	"github.com/philly/learnhub/backend/internal/identity/ports"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

// accounts backs both the identity and profile fakes so a transaction can
// roll them back together.
type accounts struct {
	mu         sync.Mutex
	identities map[string]domain.Identity // keyed by lower-case username
	profiles   map[string]string          // lower-case display name -> username
}

func newAccounts() *accounts {
	return &accounts{identities: map[string]domain.Identity{}, profiles: map[string]string{}}
}

type memoryIdentities struct{ a *accounts }

func (r memoryIdentities) WithTx(tx pgx.Tx) ports.IdentityRepository { return r }

func (r memoryIdentities) Create(ctx context.Context, identity *domain.Identity) error {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	key := strings.ToLower(identity.Username)
	if _, ok := r.a.identities[key]; ok {
		return ports.ErrUsernameTaken
	}
	r.a.identities[key] = *identity
	return nil
}

func (r memoryIdentities) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	identity, ok := r.a.identities[strings.ToLower(username)]
	if !ok {
		return nil, ports.ErrIdentityNotFound
	}
	return &identity, nil
}

func (r memoryIdentities) UpdateRoles(ctx context.Context, username string, roles authz.RoleSet) error {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	key := strings.ToLower(username)
	identity, ok := r.a.identities[key]
	if !ok {
		return ports.ErrIdentityNotFound
	}
	identity.Roles = roles
	r.a.identities[key] = identity
	return nil
}

type memoryProfiles struct{ a *accounts }

func (p memoryProfiles) WithTx(tx pgx.Tx) ports.ProfileCreator { return p }

func (p memoryProfiles) CreateProfile(ctx context.Context, username string, github, screen *string) (uuid.UUID, error) {
	p.a.mu.Lock()
	defer p.a.mu.Unlock()
	for _, name := range []*string{github, screen} {
		if name != nil {
			if _, ok := p.a.profiles[strings.ToLower(*name)]; ok {
				return uuid.Nil, ports.ErrDisplayNameTaken
			}
		}
	}
	for _, name := range []*string{github, screen} {
		if name != nil {
			p.a.profiles[strings.ToLower(*name)] = username
		}
	}
	return uuid.New(), nil
}

type snapshotTxManager struct{ a *accounts }

func (m snapshotTxManager) BeginTx(ctx context.Context) (postgres.Transaction, error) {
	m.a.mu.Lock()
	defer m.a.mu.Unlock()
	return &snapshotTx{a: m.a, identities: maps.Clone(m.a.identities), profiles: maps.Clone(m.a.profiles)}, nil
}

type snapshotTx struct {
	a          *accounts
	identities map[string]domain.Identity
	profiles   map[string]string
	committed  bool
}

func (t *snapshotTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *snapshotTx) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	t.a.mu.Lock()
	defer t.a.mu.Unlock()
	t.a.identities = t.identities
	t.a.profiles = t.profiles
	return nil
}

func (t *snapshotTx) Tx() pgx.Tx { return nil }

// prefixHasher stands in for bcrypt.
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (prefixHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return ports.ErrPasswordMismatch
	}
	return nil
}

type stubIssuer struct {
	issued []string
}

func (s *stubIssuer) Issue(ctx context.Context, username string, roles authz.RoleSet) (*ports.Token, error) {
	s.issued = append(s.issued, username+"|"+roles.String())
	return &ports.Token{Value: "token-for-" + username, ExpiresAt: time.Now().Add(time.Hour)}, nil
}
