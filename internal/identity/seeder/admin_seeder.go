package seeder

import (
	"context"
	"fmt"

	"github.com/philly/learnhub/backend/internal/platform/logger"
	platformSeeder "github.com/philly/learnhub/backend/internal/platform/seeder"
)

// AdminProvisioner creates an administrator identity if it is missing.
type AdminProvisioner interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// AdminCredentials are read from ADMIN_USERNAME and ADMIN_PASSWORD.
type AdminCredentials struct {
	Username string
	Password string
}

// AdminSeeder provisions the configured administrator.
type AdminSeeder struct {
	provisioner AdminProvisioner
	credentials AdminCredentials
	logger      logger.Logger
}

// NewAdminSeeder creates a new admin seeder
func NewAdminSeeder(provisioner AdminProvisioner, credentials AdminCredentials, logger logger.Logger) *AdminSeeder {
	return &AdminSeeder{
		provisioner: provisioner,
		credentials: credentials,
		logger:      logger,
	}
}

// Name returns the name of this seeder
func (s *AdminSeeder) Name() string {
	return "admin"
}

// Seed creates the administrator. Without configured credentials it does nothing.
func (s *AdminSeeder) Seed(ctx context.Context) (platformSeeder.Outcome, error) {
	if s.credentials.Username == "" {
		s.logger.Warn(ctx, "ADMIN_USERNAME not set, skipping admin seeding")
		return platformSeeder.OutcomeSkipped, nil
	}
	if s.credentials.Password == "" {
		return "", fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_USERNAME is set")
	}

	created, err := s.provisioner.EnsureAdmin(ctx, s.credentials.Username, s.credentials.Password)
	if err != nil {
		return "", fmt.Errorf("failed to provision admin %q: %w", s.credentials.Username, err)
	}
	if !created {
		return platformSeeder.OutcomeUnchanged, nil
	}
	s.logger.Info(ctx, "admin identity created", "username", s.credentials.Username)
	return platformSeeder.OutcomeCreated, nil
}

var _ platformSeeder.Seeder = (*AdminSeeder)(nil)
