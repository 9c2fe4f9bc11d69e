// Package pkg provides the core libraries for aigkit circuit analysis.
//
// # Overview
//
// aigkit parses, inspects, evaluates, and solves And-Inverter Graph
// circuits. The pkg directory is organized into four main areas:
//
//  1. [aig] - The graph IR (packed references, nodes, layering, evaluation)
//  2. [aiger] - Interchange formats (AIGER ascii/binary, JSON, DOT)
//  3. [cnf] - Satisfiability (Tseitin encoding, DIMACS, gini solving)
//  4. [engine] - Orchestration and persistence (caching, run archive)
//
// # Architecture
//
// The typical data flow through aigkit:
//
//	AIGER file (.aag / .aig)
//	         ↓
//	    [aiger] package (decode into the graph IR)
//	         ↓
//	    [aig] package (structure, layering, evaluation)
//	         ↓
//	    [cnf] package (Tseitin encoding with constant folding)
//	         ↓
//	    [sat] package (gini solving)
//	         ↓
//	verdict + model, DIMACS, JSON, or SVG/PNG/PDF output
//
// # Quick Start
//
// Decode a circuit and check whether its first output can go high:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/aigkit/pkg/aiger"
//	    "github.com/matzehuels/aigkit/pkg/cnf"
//	    "github.com/matzehuels/aigkit/pkg/sat"
//	)
//
//	// 1. Decode the circuit
//	f, _ := aiger.ReadFile("examples/half_adder.aag")
//
//	// 2. Encode to CNF
//	formula, _ := cnf.Encode(f.Graph)
//
//	// 3. Assert the output and solve
//	if lit, ok := formula.OutputLiteral(f.Graph, 0); ok {
//	    formula.Assume(lit)
//	}
//	res, _ := sat.Solve(context.Background(), formula)
//	fmt.Println(res.Verdict) // sat
//
// # Main Packages
//
// ## Core IR
//
// [aig] - The And-Inverter Graph: two-input AND gates plus polarity bits
// on references. Node ids pack with a negation bit into [aig.Ref], id 0 is
// the constant. The graph keeps declared input, latch, and output order,
// evaluates input vectors, and exposes layered views in both orientations.
//
// [toposort] - Generic lazy Kahn layering over a successor map with cycle
// detection. The [aig] layering and the CNF variable ordering both ride on
// it.
//
// ## Formats
//
// [aiger] - AIGER v1 codec, ascii and binary, with symbol table and
// comment support. The binary writer renumbers literals topologically.
//
// [export] - Canonical JSON document for circuits, used by `info --json`
// and the HTTP API.
//
// [render] - DOT emission for circuits and graphviz rendering to SVG, PNG,
// and PDF.
//
// ## Satisfiability
//
// [cnf] - Tseitin encoder producing DIMACS-style signed literals, with
// constant arguments folded into shorter clauses. Asserts nothing about
// outputs; callers pin the literals they care about.
//
// [sat] - Bridge to the gini solver with context cancellation and model
// extraction back onto node ids.
//
// ## Orchestration
//
// [engine] - The shared runner behind the CLI and the server: load, stats,
// encode, and solve, with content-addressed caching and optional run
// archiving.
//
// [suite] - TOML-described regression suites pairing circuits with
// input/output vectors.
//
// ## Infrastructure
//
// [cache] - Formula and verdict cache keyed by circuit content hash.
// FileCache for the CLI (filesystem), RedisCache for the server, NullCache
// for tests and --no-cache.
//
// [archive] - Persistent record of solve runs (verdict, model, timing).
// MemoryStore for testing, MongoStore for deployments.
//
// [errors] - Coded errors shared by the CLI and the server; codes map to
// process exit statuses and HTTP statuses.
//
// [observability] - Optional hook interfaces for engine, cache, and solver
// events with no-op defaults.
//
// [buildinfo] - Version information injected at build time via ldflags.
//
// # Common Workflows
//
// Evaluate a circuit on a concrete input vector:
//
//	values, _ := f.Graph.Eval([]bool{true, false})
//	outs, _ := f.Graph.OutputValues(values)
//
// Convert ascii AIGER to the compact binary format:
//
//	f, _ := aiger.ReadFile("adder.aag")
//	_ = f.WriteFile("adder.aig", aiger.FormatBinary)
//
// Solve through the cached engine:
//
//	runner := engine.NewRunner(fileCache, nil, logger)
//	circ, _ := runner.Load(ctx, "adder.aag")
//	res, _ := runner.Solve(ctx, circ)
//
// Check a regression suite:
//
//	s, _ := suite.Load("examples/suite.toml")
//	for _, r := range s.Run() {
//	    if !r.Passed() {
//	        fmt.Printf("%s failed\n", r.Case.Name)
//	    }
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/cnf/...       # Specific package
//	go test -run Example        # Examples only
//
// [aig]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/aig
// [toposort]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/toposort
// [aiger]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/aiger
// [export]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/export
// [render]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/render
// [cnf]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/cnf
// [sat]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/sat
// [engine]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/engine
// [suite]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/suite
// [cache]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/cache
// [archive]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/archive
// [errors]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/aigkit/pkg/buildinfo
package pkg
