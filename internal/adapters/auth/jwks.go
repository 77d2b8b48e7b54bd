package auth

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// jwksSource keeps a remote key set fresh for tokens minted by an external
// identity provider.
type jwksSource struct {
	endpoint string
	cache    *jwk.Cache
}

func newJWKSSource(ctx context.Context, endpoint string) (*jwksSource, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	if err := cache.Register(ctx, endpoint); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	// Perform initial fetch to validate the URL
	if _, err := cache.Lookup(ctx, endpoint); err != nil {
		return nil, fmt.Errorf("failed to fetch initial JWKS: %w", err)
	}

	return &jwksSource{endpoint: endpoint, cache: cache}, nil
}

// Lookup returns the cached key set.
func (s *jwksSource) Lookup(ctx context.Context) (jwk.Set, error) {
	keySet, err := s.cache.Lookup(ctx, s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWKS: %w", err)
	}
	return keySet, nil
}
