// Package export serializes circuits to a stable JSON form.
//
// The format is the canonical interchange representation for API
// responses, archived runs, and `convert` round-trips: a header count,
// the input ids, latch and gate definitions, and the output literals,
// all in AIGER's packed literal encoding (2*id, +1 when negated).
// Insertion order of inputs, latches, and outputs is preserved because
// evaluation vectors are positional; gates are listed by ascending id.
package export

import (
	"fmt"
	"sort"

	"github.com/matzehuels/aigkit/pkg/aig"
	"github.com/matzehuels/aigkit/pkg/aiger"
)

// =============================================================================
// Constants
// =============================================================================

// Symbol kinds, matching the three named sections of an AIGER symbol table.
const (
	SymbolInput  = "input"
	SymbolLatch  = "latch"
	SymbolOutput = "output"
)

// =============================================================================
// Circuit - Circuit Serialization
// =============================================================================

// Circuit is the canonical serialization format for circuits.
// Used for API responses, storage, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// import → transform → export → re-import produces identical results.
type Circuit struct {
	MaxID    uint32   `json:"max_id" bson:"max_id"`
	Inputs   []uint32 `json:"inputs" bson:"inputs"` // node ids, vector order
	Latches  []Latch  `json:"latches,omitempty" bson:"latches,omitempty"`
	Outputs  []uint32 `json:"outputs" bson:"outputs"` // packed literals
	Gates    []Gate   `json:"gates" bson:"gates"`
	Symbols  []Symbol `json:"symbols,omitempty" bson:"symbols,omitempty"`
	Comments []string `json:"comments,omitempty" bson:"comments,omitempty"`
}

// Latch is a state element: its node id and the packed next-state literal.
type Latch struct {
	ID   uint32 `json:"id" bson:"id"`
	Next uint32 `json:"next" bson:"next"`
}

// Gate is an AND gate: its node id and the two packed argument literals.
type Gate struct {
	ID    uint32 `json:"id" bson:"id"`
	Left  uint32 `json:"left" bson:"left"`
	Right uint32 `json:"right" bson:"right"`
}

// Symbol names an input, latch, or output by its position in vector order.
type Symbol struct {
	Kind string `json:"kind" bson:"kind"` // "input", "latch", or "output"
	Pos  int    `json:"pos" bson:"pos"`
	Name string `json:"name" bson:"name"`
}

// =============================================================================
// Graph ↔ Circuit Conversion
// =============================================================================

// FromGraph converts a graph to its serialization format.
// Gates are sorted by id for deterministic output; inputs, latches, and
// outputs keep their vector order.
func FromGraph(g *aig.Graph) Circuit {
	out := Circuit{
		MaxID:   g.MaxID(),
		Inputs:  g.Inputs(),
		Outputs: make([]uint32, 0, len(g.Outputs())),
		Gates:   make([]Gate, 0, len(g.Gates())),
	}

	for _, id := range g.Latches() {
		n, _ := g.Node(id)
		out.Latches = append(out.Latches, Latch{ID: id, Next: n.Next.Raw()})
	}

	for _, r := range g.Outputs() {
		out.Outputs = append(out.Outputs, r.Raw())
	}

	for _, id := range g.Gates() {
		n, _ := g.Node(id)
		out.Gates = append(out.Gates, Gate{ID: id, Left: n.Args[0].Raw(), Right: n.Args[1].Raw()})
	}

	return out
}

// FromFile converts a parsed AIGER file, carrying the symbol table and
// comments along with the circuit.
func FromFile(f *aiger.File) Circuit {
	out := FromGraph(f.Graph)
	out.Symbols = symbolsFromTable(f.Symbols)
	out.Comments = f.Comments
	return out
}

// ToFile converts a Circuit back to a parsed AIGER file.
// Returns an error if the structure violates circuit constraints.
func ToFile(c Circuit) (*aiger.File, error) {
	g := aig.New()

	for _, id := range c.Inputs {
		if err := g.AddInput(id); err != nil {
			return nil, fmt.Errorf("add input %d: %w", id, err)
		}
	}

	for _, l := range c.Latches {
		if err := g.AddLatch(l.ID, aig.FromRaw(l.Next)); err != nil {
			return nil, fmt.Errorf("add latch %d: %w", l.ID, err)
		}
	}

	for _, gt := range c.Gates {
		if err := g.AddGate(gt.ID, aig.FromRaw(gt.Left), aig.FromRaw(gt.Right)); err != nil {
			return nil, fmt.Errorf("add gate %d: %w", gt.ID, err)
		}
	}

	for _, raw := range c.Outputs {
		g.AddOutput(aig.FromRaw(raw))
	}

	f := &aiger.File{Graph: g, Comments: c.Comments}
	if err := tableFromSymbols(c.Symbols, &f.Symbols); err != nil {
		return nil, err
	}
	return f, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// symbolsFromTable flattens the position-keyed maps into a slice sorted by
// kind then position, so marshaling is deterministic.
func symbolsFromTable(t aiger.SymbolTable) []Symbol {
	if t.Empty() {
		return nil
	}

	out := make([]Symbol, 0, len(t.Inputs)+len(t.Latches)+len(t.Outputs))
	appendKind := func(kind string, names map[int]string) {
		pos := make([]int, 0, len(names))
		for p := range names {
			pos = append(pos, p)
		}
		sort.Ints(pos)
		for _, p := range pos {
			out = append(out, Symbol{Kind: kind, Pos: p, Name: names[p]})
		}
	}

	appendKind(SymbolInput, t.Inputs)
	appendKind(SymbolLatch, t.Latches)
	appendKind(SymbolOutput, t.Outputs)
	return out
}

func tableFromSymbols(symbols []Symbol, t *aiger.SymbolTable) error {
	for _, s := range symbols {
		var names *map[int]string
		switch s.Kind {
		case SymbolInput:
			names = &t.Inputs
		case SymbolLatch:
			names = &t.Latches
		case SymbolOutput:
			names = &t.Outputs
		default:
			return fmt.Errorf("unknown symbol kind %q", s.Kind)
		}
		if *names == nil {
			*names = make(map[int]string)
		}
		(*names)[s.Pos] = s.Name
	}
	return nil
}
