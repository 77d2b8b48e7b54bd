package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/identity/ports"
)

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

const rolesClaim = "roles"

var (
	ErrMissingToken    = errors.New("missing authentication token")
	ErrInvalidToken    = errors.New("invalid authentication token")
	ErrTokenExpired    = errors.New("token has expired")
	ErrMissingSubject  = errors.New("missing subject in token")
	ErrSigningDisabled = errors.New("token signing is not configured")
)

// Config selects how tokens are signed and verified.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration

	// JWKSEndpoint switches verification to a remote key set. Local
	// signing stays available when Secret is also set.
	JWKSEndpoint string
}

// Claims is what a verified token says about its bearer.
type Claims struct {
	Username  string
	Roles     authz.RoleSet
	ExpiresAt time.Time
}

// TokenService issues HS256 tokens and verifies bearer tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	keys   *jwksSource
	now    func() time.Time
}

// NewTokenService validates the configuration and, when a JWKS endpoint
// is set, performs the initial key set fetch.
func NewTokenService(ctx context.Context, cfg Config) (*TokenService, error) {
	s := &TokenService{
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}

	if cfg.JWKSEndpoint != "" {
		keys, err := newJWKSSource(ctx, cfg.JWKSEndpoint)
		if err != nil {
			return nil, err
		}
		s.keys = keys
	} else if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("auth: JWT secret must be at least %d characters", MinSecretLength)
	}

	if cfg.Secret != "" {
		s.secret = []byte(cfg.Secret)
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}
	return s, nil
}

// Issue signs a token carrying the username as subject and the role labels
// as a space-separated claim.
func (s *TokenService) Issue(ctx context.Context, username string, roles authz.RoleSet) (*ports.Token, error) {
	if len(s.secret) == 0 {
		return nil, ErrSigningDisabled
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	tok, err := jwt.NewBuilder().
		Subject(username).
		Issuer(s.issuer).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim(rolesClaim, roles.String()).
		Build()
	if err != nil {
		return nil, fmt.Errorf("auth: building token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), s.secret))
	if err != nil {
		return nil, fmt.Errorf("auth: signing token: %w", err)
	}

	return &ports.Token{Value: string(signed), ExpiresAt: expiresAt}, nil
}

// Verify parses and validates a raw bearer token.
func (s *TokenService) Verify(ctx context.Context, raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParseOption{
		jwt.WithValidate(true),
		jwt.WithIssuer(s.issuer),
	}
	if s.keys != nil {
		keySet, err := s.keys.Lookup(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, jwt.WithKeySet(keySet))
	} else {
		opts = append(opts, jwt.WithKey(jwa.HS256(), s.secret))
	}

	tok, err := jwt.ParseString(raw, opts...)
	if err != nil {
		if errors.Is(err, jwt.TokenExpiredError()) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	var subject string
	if err := tok.Get("sub", &subject); err != nil || subject == "" {
		return nil, ErrMissingSubject
	}

	// A token without roles is still valid; it simply grants nothing.
	var roles string
	_ = tok.Get(rolesClaim, &roles)

	claims := &Claims{
		Username: subject,
		Roles:    authz.ParseRoleSet(roles),
	}
	if exp, ok := tok.Expiration(); ok {
		claims.ExpiresAt = exp
	}
	return claims, nil
}

var _ ports.TokenIssuer = (*TokenService)(nil)
