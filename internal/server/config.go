package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/philly/learnhub/backend/internal/adapters/auth"
	"github.com/philly/learnhub/backend/internal/platform/logger"
)

type Config struct {
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"` // Logging level (debug, info, warn, error)

	JWTSecret    string        `mapstructure:"JWT_SECRET"`    // HS256 key for tokens issued by /auth/login
	JWTIssuer    string        `mapstructure:"JWT_ISSUER"`    // Issued and expected "iss" claim
	TokenTTL     time.Duration `mapstructure:"TOKEN_TTL"`
	JWKSEndpoint string        `mapstructure:"JWKS_ENDPOINT"` // Verify against an external key set instead

	RunMigrations  bool   `mapstructure:"RUN_MIGRATIONS"`
	AdminUsername  string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword  string `mapstructure:"ADMIN_PASSWORD"`
	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`
}

// configKeys are bound explicitly so that Unmarshal sees variables that
// have no default.
var configKeys = []string{
	"DATABASE_URL", "SERVER_ADDRESS", "ENVIRONMENT", "LOG_LEVEL",
	"JWT_SECRET", "JWT_ISSUER", "TOKEN_TTL", "JWKS_ENDPOINT",
	"RUN_MIGRATIONS", "ADMIN_USERNAME", "ADMIN_PASSWORD", "METRICS_ENABLED",
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	config, err := readConfig(viper.New())
	if err != nil {
		bootstrapLogger.Error(ctx, "failed to load configuration", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"jwks", config.JWKSEndpoint != "",
		"run_migrations", config.RunMigrations,
	)
	return config, nil
}

// readConfig applies defaults, reads the environment through v and validates the result.
func readConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("DATABASE_URL", "postgresql://localhost:5432/learnhub?sslmode=disable")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_ISSUER", "learnhub")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("METRICS_ENABLED", true)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) validate() error {
	if c.JWKSEndpoint == "" && len(c.JWTSecret) < auth.MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", auth.MinSecretLength)
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT_ISSUER is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}
