package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/philly/learnhub/backend/internal/platform/logger"
)

// Outcome is what a single seeder did on one run.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
)

// Seeder provisions one kind of data. Seed must be idempotent: a second run
// against the same database reports OutcomeUnchanged.
type Seeder interface {
	Name() string
	Seed(ctx context.Context) (Outcome, error)
}

// Result records the outcome of one seeder in a run.
type Result struct {
	Seeder   string
	Outcome  Outcome
	Duration time.Duration
}

// Orchestrator runs seeders in registration order.
type Orchestrator struct {
	seeders []Seeder
	logger  logger.Logger
}

func NewOrchestrator(logger logger.Logger, seeders []Seeder) *Orchestrator {
	return &Orchestrator{
		seeders: seeders,
		logger:  logger,
	}
}

// RunAll stops at the first failing seeder. The results of the seeders that
// ran before it are still returned.
func (o *Orchestrator) RunAll(ctx context.Context) ([]Result, error) {
	o.logger.Info(ctx, "seeding started", "seeders", len(o.seeders))

	results := make([]Result, 0, len(o.seeders))
	for _, s := range o.seeders {
		start := time.Now()
		outcome, err := s.Seed(ctx)
		if err != nil {
			o.logger.Error(ctx, "seeder failed", "seeder", s.Name(), "error", err)
			return results, fmt.Errorf("seeder %s failed: %w", s.Name(), err)
		}

		result := Result{Seeder: s.Name(), Outcome: outcome, Duration: time.Since(start)}
		results = append(results, result)
		o.logger.Info(ctx, "seeder finished",
			"seeder", result.Seeder,
			"outcome", string(result.Outcome),
			"duration", result.Duration,
		)
	}

	return results, nil
}
