// Package engine ties the circuit pipeline together: loading circuits,
// computing stats, Tseitin encoding, and SAT solving, with caching keyed
// by circuit content. Both the CLI and the HTTP server drive the same
// [Runner], so caching and archiving behave identically everywhere.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aigkit/pkg/aig"
	"github.com/matzehuels/aigkit/pkg/aiger"
	"github.com/matzehuels/aigkit/pkg/archive"
	"github.com/matzehuels/aigkit/pkg/cache"
	"github.com/matzehuels/aigkit/pkg/cnf"
	"github.com/matzehuels/aigkit/pkg/observability"
	"github.com/matzehuels/aigkit/pkg/sat"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, archive, and logger - it
// doesn't store circuits or results. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Archive records solve runs when set. A nil Archive disables
	// recording.
	Archive archive.Store
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Circuit is a loaded circuit: the parsed file plus the content hash that
// keys its cached artifacts. The hash is computed over the canonical
// ASCII serialization of the graph, so it is stable across the input
// variant and independent of symbols and comments.
type Circuit struct {
	File   *aiger.File
	Hash   string
	Source string
}

// Graph returns the underlying graph.
func (c *Circuit) Graph() *aig.Graph { return c.File.Graph }

// Load reads and parses a circuit file, detecting the AIGER variant from
// the header.
func (r *Runner) Load(ctx context.Context, path string) (*Circuit, error) {
	start := time.Now()
	observability.Engine().OnLoadStart(ctx, path)

	f, err := aiger.ReadFile(path)
	if err != nil {
		observability.Engine().OnLoadComplete(ctx, path, 0, time.Since(start), err)
		return nil, err
	}
	return r.finishLoad(ctx, f, path, start)
}

// LoadBytes parses an in-memory circuit, such as an HTTP request body.
// The source only labels log lines and errors.
func (r *Runner) LoadBytes(ctx context.Context, data []byte, source string) (*Circuit, error) {
	start := time.Now()
	observability.Engine().OnLoadStart(ctx, source)

	f, err := aiger.Read(bytes.NewReader(data))
	if err != nil {
		observability.Engine().OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return r.finishLoad(ctx, f, source, start)
}

func (r *Runner) finishLoad(ctx context.Context, f *aiger.File, source string, start time.Time) (*Circuit, error) {
	hash, err := hashGraph(f.Graph)
	if err != nil {
		observability.Engine().OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, err
	}
	observability.Engine().OnLoadComplete(ctx, source, f.Graph.NodeCount(), time.Since(start), nil)

	r.Logger.Info("loaded circuit",
		"source", source,
		"nodes", f.Graph.NodeCount(),
		"duration", time.Since(start))

	return &Circuit{File: f, Hash: hash, Source: source}, nil
}

// hashGraph serializes the graph in canonical ASCII form and hashes it.
func hashGraph(g *aig.Graph) (string, error) {
	var buf bytes.Buffer
	canon := aiger.File{Graph: g}
	if err := canon.Write(&buf, aiger.FormatASCII); err != nil {
		return "", fmt.Errorf("hash circuit: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// Stats summarizes a circuit: section counts plus the combinational
// depth, the number of gate layers above the sources.
type Stats struct {
	Inputs  int    `json:"inputs"`
	Latches int    `json:"latches"`
	Outputs int    `json:"outputs"`
	Gates   int    `json:"gates"`
	MaxID   uint32 `json:"max_id"`
	Depth   int    `json:"depth"`
}

// Stats computes counts and combinational depth for a loaded circuit.
// Cyclic circuits surface the layering's cycle error.
func (r *Runner) Stats(c *Circuit) (Stats, error) {
	g := c.Graph()
	layers, err := g.LayersInput()
	if err != nil {
		return Stats{}, err
	}

	depth := len(layers) - 1
	if depth < 0 {
		depth = 0
	}
	return Stats{
		Inputs:  len(g.Inputs()),
		Latches: len(g.Latches()),
		Outputs: len(g.Outputs()),
		Gates:   len(g.Gates()),
		MaxID:   g.MaxID(),
		Depth:   depth,
	}, nil
}

// EncodeWithCacheInfo Tseitin-encodes the circuit with caching and
// returns cache hit info. The cached formula never carries assumptions;
// callers assert outputs on their own copy.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, c *Circuit) (*cnf.Formula, bool, error) {
	cacheKey := r.Keyer.FormulaKey(c.Hash)

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var f cnf.Formula
		if err := json.Unmarshal(data, &f); err == nil {
			observability.Cache().OnCacheHit(ctx, "cnf")
			return &f, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "cnf")

	start := time.Now()
	observability.Engine().OnEncodeStart(ctx, len(c.Graph().Gates()))

	f, err := cnf.Encode(c.Graph())
	if err != nil {
		observability.Engine().OnEncodeComplete(ctx, 0, time.Since(start), err)
		return nil, false, fmt.Errorf("encode: %w", err)
	}
	observability.Engine().OnEncodeComplete(ctx, f.NumClauses(), time.Since(start), nil)

	r.Logger.Info("encoded circuit",
		"vars", f.NumVars,
		"clauses", f.NumClauses(),
		"duration", time.Since(start))

	// Cache the result
	if data, err := json.Marshal(f); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLFormula)
		observability.Cache().OnCacheSet(ctx, "cnf", len(data))
	}

	return f, false, nil
}

// Encode is a convenience wrapper that calls EncodeWithCacheInfo and discards the cache hit info.
func (r *Runner) Encode(ctx context.Context, c *Circuit) (*cnf.Formula, error) {
	f, _, err := r.EncodeWithCacheInfo(ctx, c)
	return f, err
}

// AssertOutputs appends unit clauses fixing every declared output true.
// Constant-true outputs are vacuous and skipped; a constant-false output
// makes the formula trivially unsatisfiable, expressed as an empty
// clause.
func AssertOutputs(f *cnf.Formula, g *aig.Graph) {
	for i, out := range g.Outputs() {
		if v, ok := out.Const(); ok {
			if !v {
				f.Clauses = append(f.Clauses, []int{})
			}
			continue
		}
		if lit, ok := f.OutputLiteral(g, i); ok {
			f.Assume(lit)
		}
	}
}

// SolveWithCacheInfo answers whether some input assignment makes every
// declared output true, with verdict caching, and returns cache hit
// info. When the runner has an archive, each non-cached solve is
// recorded there.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, c *Circuit) (sat.Result, bool, error) {
	cacheKey := r.Keyer.VerdictKey(c.Hash)

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var res sat.Result
		if err := json.Unmarshal(data, &res); err == nil {
			observability.Cache().OnCacheHit(ctx, "verdict")
			return res, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "verdict")

	f, _, err := r.EncodeWithCacheInfo(ctx, c)
	if err != nil {
		return sat.Result{}, false, err
	}
	AssertOutputs(f, c.Graph())

	start := time.Now()
	observability.Engine().OnSolveStart(ctx, len(c.Graph().Outputs()))
	observability.Solver().OnSolverStart(ctx, f.NumVars, f.NumClauses())

	res, err := sat.Solve(ctx, f)
	elapsed := time.Since(start)
	observability.Solver().OnSolverStop(ctx, res.Verdict.String(), elapsed)
	if err != nil {
		observability.Engine().OnSolveComplete(ctx, "", elapsed, err)
		return sat.Result{}, false, fmt.Errorf("solve: %w", err)
	}
	observability.Engine().OnSolveComplete(ctx, res.Verdict.String(), elapsed, nil)

	r.Logger.Info("solved circuit",
		"verdict", res.Verdict,
		"duration", elapsed)

	// Cache the result
	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLVerdict)
		observability.Cache().OnCacheSet(ctx, "verdict", len(data))
	}

	r.record(ctx, c, res, elapsed)
	return res, false, nil
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, c *Circuit) (sat.Result, error) {
	res, _, err := r.SolveWithCacheInfo(ctx, c)
	return res, err
}

// record archives a solve run when an archive is configured.
func (r *Runner) record(ctx context.Context, c *Circuit, res sat.Result, elapsed time.Duration) {
	if r.Archive == nil {
		return
	}

	g := c.Graph()
	run := archive.NewRun(c.Hash, res, elapsed)
	run.Inputs = len(g.Inputs())
	run.Latches = len(g.Latches())
	run.Outputs = len(g.Outputs())
	run.Gates = len(g.Gates())

	if err := r.Archive.Put(ctx, run); err != nil {
		r.Logger.Warn("archiving run failed", "error", err)
		return
	}
	r.Logger.Info("archived run", "id", run.ID)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
