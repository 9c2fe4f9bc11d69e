// Package archive records solve runs for later inspection.
//
// Every archived solve is a [Run]: the circuit's content hash, size
// counts, the verdict with its model, and timing. The [Store] interface
// has two backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for shared deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := archive.NewMemoryStore()
//
//	// Shared
//	store, err := archive.NewMongoStore(ctx, archive.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Record and query runs:
//
//	run := archive.NewRun(hash, result, elapsed)
//	store.Put(ctx, run)
//
//	runs, err := store.List(ctx, hash, 10)
package archive

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/aigkit/pkg/sat"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one archived solve. Model keys are node ids in decimal, a
// concession to BSON which only allows string map keys.
type Run struct {
	ID          string          `json:"id" bson:"_id"`
	CircuitHash string          `json:"circuit_hash" bson:"circuit_hash"`
	Verdict     string          `json:"verdict" bson:"verdict"`
	Model       map[string]bool `json:"model,omitempty" bson:"model,omitempty"`
	Inputs      int             `json:"inputs" bson:"inputs"`
	Latches     int             `json:"latches" bson:"latches"`
	Outputs     int             `json:"outputs" bson:"outputs"`
	Gates       int             `json:"gates" bson:"gates"`
	Duration    time.Duration   `json:"duration_ns" bson:"duration_ns"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
}

// NewRun builds a Run with a fresh id and timestamp from a solve result.
// Size counts are left for the caller to fill in.
func NewRun(circuitHash string, res sat.Result, elapsed time.Duration) Run {
	run := Run{
		ID:          uuid.NewString(),
		CircuitHash: circuitHash,
		Verdict:     res.Verdict.String(),
		Duration:    elapsed,
		CreatedAt:   time.Now().UTC(),
	}
	if len(res.Model) > 0 {
		run.Model = make(map[string]bool, len(res.Model))
		for id, v := range res.Model {
			run.Model[strconv.FormatUint(uint64(id), 10)] = v
		}
	}
	return run
}

// Store is the interface for run storage backends.
type Store interface {
	// Put stores a run.
	Put(ctx context.Context, run Run) error

	// Get retrieves a run by id.
	// Returns ErrNotFound if no run has that id.
	Get(ctx context.Context, id string) (Run, error)

	// List returns runs newest first, filtered by circuit hash when
	// circuitHash is non-empty. A limit <= 0 means no limit.
	List(ctx context.Context, circuitHash string, limit int) ([]Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
