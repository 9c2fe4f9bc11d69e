package server

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aigkit/pkg/observability"
)

// Logging implementations of the observability hooks. The engine already
// logs its stage summaries; these add failure visibility and cache and
// solver detail at debug level.

type engineLogHooks struct {
	observability.NoopEngineHooks
	logger *log.Logger
}

func (h engineLogHooks) OnLoadComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("circuit load failed", "source", source, "error", err)
	}
}

func (h engineLogHooks) OnEncodeComplete(ctx context.Context, clauseCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("encoding failed", "error", err)
	}
}

func (h engineLogHooks) OnSolveComplete(ctx context.Context, verdict string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("solve failed", "error", err)
	}
}

type cacheLogHooks struct {
	observability.NoopCacheHooks
	logger *log.Logger
}

func (h cacheLogHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h cacheLogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h cacheLogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

type solverLogHooks struct {
	observability.NoopSolverHooks
	logger *log.Logger
}

func (h solverLogHooks) OnSolverStart(ctx context.Context, vars, clauses int) {
	h.logger.Debug("solver started", "vars", vars, "clauses", clauses)
}

func (h solverLogHooks) OnSolverStop(ctx context.Context, verdict string, duration time.Duration) {
	h.logger.Debug("solver stopped", "verdict", verdict, "duration", duration)
}

func installHooks(logger *log.Logger) {
	observability.SetEngineHooks(engineLogHooks{logger: logger})
	observability.SetCacheHooks(cacheLogHooks{logger: logger})
	observability.SetSolverHooks(solverLogHooks{logger: logger})
}
