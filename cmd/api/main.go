package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
	"github.com/philly/learnhub/backend/internal/server"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration the same way the server does.
func loadConfig() (server.Config, error) {
	config, err := server.LoadConfig(logger.NewBootstrapLogger())
	if err != nil {
		return server.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return config, nil
}

func serve(cmd *cobra.Command, args []string) error {
	// Initialize the app with all dependencies wired
	app, cleanup, err := server.InitializeApp(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer cleanup()

	return app.Run()
}

var rootCmd = &cobra.Command{
	Use:          "learnhub",
	Short:        "Learning resource catalog API",
	SilenceUsage: true,
	RunE:         serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  serve,
}

// migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		if err := postgres.MigrateUp(config.DatabaseURL); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		status, err := postgres.Status(config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		fmt.Printf("Schema at version %d\n", status.Current)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied and latest schema versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		status, err := postgres.Status(config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}

		fmt.Printf("Current: %d\n", status.Current)
		fmt.Printf("Latest:  %d\n", status.Latest)
		fmt.Printf("Dirty:   %t\n", status.Dirty)
		if !status.UpToDate() {
			fmt.Println("Pending migrations; run `learnhub migrate up`")
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision the configured admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		orchestrator, cleanup, err := server.InitializeSeeder(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize seeder: %w", err)
		}
		defer cleanup()

		results, err := orchestrator.RunAll(cmd.Context())
		for _, r := range results {
			fmt.Printf("%-10s %s (%s)\n", r.Seeder, r.Outcome, r.Duration.Round(time.Millisecond))
		}
		return err
	},
}

func init() {
	// migrate subcommands
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	// root commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
