// Package cnf turns combinational And-Inverter Graphs into CNF formulas
// via the Tseitin transformation: one fresh variable per gate, plus
// clauses asserting the variable equals the conjunction of its arguments.
// Constant arguments are folded into shorter clauses instead of variables.
//
// The encoding is equisatisfiability-preserving and asserts nothing about
// outputs. Callers pick the outputs they care about, look their literals
// up with [Formula.Literal], and pin them with [Formula.Assume].
package cnf

import (
	"fmt"

	"github.com/matzehuels/aigkit/pkg/aig"
)

// Formula is a CNF formula over DIMACS-style signed literals: variable v
// appears as v or -v, variables are numbered from 1.
type Formula struct {
	// Clauses is the clause list. Each clause is a disjunction of
	// non-zero literals.
	Clauses [][]int

	// Vars maps node ids to their DIMACS variables. Inputs take 1..N in
	// insertion order; gates follow in layer order, ascending id within a
	// layer. The constant has no variable.
	Vars map[uint32]int

	// NumVars is the number of allocated variables.
	NumVars int
}

// Encode builds the Tseitin encoding of a combinational graph.
//
// Inputs receive variables 1..N in insertion order. Gates are then encoded
// walking [aig.Graph.LayersInput] from layer 1 upward, so every argument
// already has a variable or folds as a constant when its gate is reached.
// Per gate the folding table is:
//
//   - both arguments constant: one unit clause fixing the gate's variable
//   - one argument constant true: two clauses binding the variable to the
//     other argument's literal
//   - one argument constant false: one unit clause forcing the variable
//     false, the other argument ignored
//   - otherwise: the three general Tseitin clauses
//
// Latch-bearing graphs are rejected with [aig.ErrHasLatches]. Dangling
// references and combinational cycles surface from the layering.
func Encode(g *aig.Graph) (*Formula, error) {
	if n := len(g.Latches()); n > 0 {
		return nil, fmt.Errorf("%w: %d latches cannot be encoded", aig.ErrHasLatches, n)
	}
	layers, err := g.LayersInput()
	if err != nil {
		return nil, err
	}

	f := &Formula{Vars: make(map[uint32]int, g.NodeCount())}
	for _, id := range g.Inputs() {
		f.Vars[id] = len(f.Vars) + 1
	}
	for k, layer := range layers {
		if k == 0 {
			// Inputs are already numbered; constants fold at use.
			continue
		}
		for _, id := range layer {
			n, _ := g.Node(id)
			if n.Kind != aig.KindGate {
				panic(fmt.Sprintf("cnf: unexpected %s node @%d above layer 0", n.Kind, id))
			}
			f.encodeGate(id, n.Args)
		}
	}
	f.NumVars = len(f.Vars)
	return f, nil
}

// encodeGate allocates the gate's variable and emits its clauses per the
// folding table.
func (f *Formula) encodeGate(id uint32, args [2]aig.Ref) {
	x := len(f.Vars) + 1
	f.Vars[id] = x

	ca, aConst := args[0].Const()
	cb, bConst := args[1].Const()
	switch {
	case aConst && bConst:
		if ca && cb {
			f.add(x)
		} else {
			f.add(-x)
		}
	case aConst && ca:
		lb := f.literal(args[1])
		f.add(-x, lb)
		f.add(x, -lb)
	case bConst && cb:
		la := f.literal(args[0])
		f.add(-x, la)
		f.add(x, -la)
	case aConst || bConst:
		// A constant-false argument absorbs the conjunction.
		f.add(-x)
	default:
		la := f.literal(args[0])
		lb := f.literal(args[1])
		f.add(-x, la)
		f.add(-x, lb)
		f.add(x, -la, -lb)
	}
}

func (f *Formula) add(lits ...int) {
	f.Clauses = append(f.Clauses, lits)
}

// literal resolves a non-constant reference to its signed literal. Layer
// order guarantees the variable exists by the time a gate needs it.
func (f *Formula) literal(r aig.Ref) int {
	v, ok := f.Vars[r.ID()]
	if !ok {
		panic(fmt.Sprintf("cnf: no variable for %s", r))
	}
	if r.Negated() {
		return -v
	}
	return v
}

// Literal returns the signed DIMACS literal for a reference. The second
// result is false for constant references and ids without a variable.
func (f *Formula) Literal(r aig.Ref) (int, bool) {
	v, ok := f.Vars[r.ID()]
	if !ok {
		return 0, false
	}
	if r.Negated() {
		return -v, true
	}
	return v, true
}

// OutputLiteral returns the signed literal for the graph's i-th declared
// output. The second result is false for out-of-range indexes and for
// constant outputs, which have no variable.
func (f *Formula) OutputLiteral(g *aig.Graph, i int) (int, bool) {
	outs := g.Outputs()
	if i < 0 || i >= len(outs) {
		return 0, false
	}
	return f.Literal(outs[i])
}

// Assume appends one unit clause per literal, fixing each to true. Use it
// to assert output literals before handing the formula to a solver.
func (f *Formula) Assume(lits ...int) {
	for _, l := range lits {
		f.Clauses = append(f.Clauses, []int{l})
	}
}

// NumClauses returns the clause count.
func (f *Formula) NumClauses() int { return len(f.Clauses) }
