// Package store persists pipeline runs and their output tables.
package store

import (
	"context"
	"time"

	"github.com/oikos-research/friction-cli/internal/model"
)

// Run kinds recorded by the pipeline.
const (
	RunJoin     = "join"
	RunSimulate = "simulate"
)

// Run is one recorded pipeline execution. Params holds the run's scenario or
// input description as JSON, for auditability.
type Run struct {
	ID        string
	Kind      string
	Params    string
	CreatedAt time.Time
}

// Store defines the persistence interface for the friction pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, kind, params string) (*Run, error)
	LatestRun(ctx context.Context, kind string) (*Run, error)

	// Joined table
	SaveJoined(ctx context.Context, runID string, records []model.Joined) error
	LoadJoined(ctx context.Context, runID string) ([]model.Joined, error)

	// Simulation table
	SaveSimulations(ctx context.Context, runID string, records []model.Simulated) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
