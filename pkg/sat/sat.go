// Package sat runs CNF formulas through the gini SAT solver and maps
// models back onto circuit node ids.
package sat

import (
	"context"
	"errors"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/matzehuels/aigkit/pkg/cnf"
)

// Verdict is a solver outcome, using the solver's own convention: 1 for
// satisfiable, -1 for unsatisfiable, 0 when no answer was reached.
type Verdict int

const (
	Sat     Verdict = 1
	Unsat   Verdict = -1
	Unknown Verdict = 0
)

// String returns "sat", "unsat", or "unknown".
func (v Verdict) String() string {
	switch v {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	}
	return "unknown"
}

// Result is the outcome of a solve. Model is populated only for [Sat] and
// maps every node id in the formula's variable table, gates included, to
// its value in the satisfying assignment.
type Result struct {
	Verdict Verdict
	Model   map[uint32]bool
}

// tryInterval bounds how long a cancelable solve runs between context
// checks.
const tryInterval = 50 * time.Millisecond

// Solve loads the formula into a fresh solver instance and solves it.
// Cancelling the context stops the solve and returns the context's error.
func Solve(ctx context.Context, f *cnf.Formula) (Result, error) {
	g := gini.New()
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(0)
	}

	switch run(ctx, g) {
	case 1:
		model := make(map[uint32]bool, len(f.Vars))
		for id, v := range f.Vars {
			model[id] = g.Value(z.Dimacs2Lit(v))
		}
		return Result{Verdict: Sat, Model: model}, nil
	case -1:
		return Result{Verdict: Unsat}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{}, errors.New("solver stopped without a verdict")
}

// run picks the blocking solve when the context cannot be canceled, and
// the solver's background connection otherwise, polling it in short
// slices so cancellation is honored mid-solve.
func run(ctx context.Context, g *gini.Gini) int {
	if ctx.Done() == nil {
		return g.Solve()
	}
	conn := g.GoSolve()
	for {
		if res := conn.Try(tryInterval); res != 0 {
			return res
		}
		select {
		case <-ctx.Done():
			return conn.Stop()
		default:
		}
	}
}
