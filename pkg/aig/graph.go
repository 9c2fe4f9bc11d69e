package aig

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors returned by graph construction and analysis. All are
// wrapped with context describing the offending node; test with errors.Is.
var (
	// ErrReservedID is returned by mutators asked to store a node at id 0,
	// which is reserved for the constant.
	ErrReservedID = errors.New("id 0 is reserved for the constant")

	// ErrDuplicateID is returned by mutators when the id is already taken.
	// Ids are never reassigned; a collision means the caller lost track of
	// its id space.
	ErrDuplicateID = errors.New("duplicate node id")

	// ErrDanglingRef is returned by analyses when a gate argument, latch
	// next-state, or output reference points at an id that was never added.
	ErrDanglingRef = errors.New("reference to unknown node")

	// ErrInputWidth is returned by [Graph.Eval] when the value slice length
	// differs from the input count.
	ErrInputWidth = errors.New("input value count mismatch")

	// ErrHasLatches is returned by combinational-only analyses, such as
	// [Graph.Eval] and CNF encoding, when the graph contains latches.
	ErrHasLatches = errors.New("graph contains latches")
)

// Graph is a mutable And-Inverter Graph. Nodes are keyed by non-zero id;
// inputs and latches additionally keep their insertion order, which gives
// inputs their evaluation position. Outputs are references, so a single
// node can drive several outputs under different polarities.
type Graph struct {
	nodes   map[uint32]Node
	inputs  []uint32
	latches []uint32
	outputs []Ref
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[uint32]Node)}
}

// AddInput stores a primary input at id. Evaluation binds values to inputs
// in the order they were added.
func (g *Graph) AddInput(id uint32) error {
	if err := g.claim(id); err != nil {
		return err
	}
	g.nodes[id] = Node{ID: id, Kind: KindInput}
	g.inputs = append(g.inputs, id)
	return nil
}

// AddLatch stores a latch at id with the given next-state reference. The
// reference may point at a node added later.
func (g *Graph) AddLatch(id uint32, next Ref) error {
	if err := g.claim(id); err != nil {
		return err
	}
	g.nodes[id] = Node{ID: id, Kind: KindLatch, Next: next}
	g.latches = append(g.latches, id)
	return nil
}

// AddGate stores a two-input AND gate at id. Arguments may reference ids
// that have not been added yet; resolution is deferred until an analysis
// walks the graph, where a still-missing id surfaces as [ErrDanglingRef].
func (g *Graph) AddGate(id uint32, a, b Ref) error {
	if err := g.claim(id); err != nil {
		return err
	}
	g.nodes[id] = Node{ID: id, Kind: KindGate, Args: [2]Ref{a, b}}
	return nil
}

// AddOutput appends a reference to the output list. The same reference may
// be added more than once.
func (g *Graph) AddOutput(r Ref) {
	g.outputs = append(g.outputs, r)
}

func (g *Graph) claim(id uint32) error {
	if id == 0 {
		return ErrReservedID
	}
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%w: @%d", ErrDuplicateID, id)
	}
	return nil
}

// Node returns the node stored at id. Looking up id 0 synthesizes the
// constant node, which is never stored.
func (g *Graph) Node(id uint32) (Node, bool) {
	if id == 0 {
		return Node{ID: 0, Kind: KindConst}, true
	}
	n, ok := g.nodes[id]
	return n, ok
}

// Contains reports whether id resolves to a node, the constant included.
func (g *Graph) Contains(id uint32) bool {
	_, ok := g.Node(id)
	return ok
}

// Inputs returns the input ids in insertion order.
func (g *Graph) Inputs() []uint32 { return slices.Clone(g.inputs) }

// Latches returns the latch ids in insertion order.
func (g *Graph) Latches() []uint32 { return slices.Clone(g.latches) }

// Outputs returns the output references in insertion order.
func (g *Graph) Outputs() []Ref { return slices.Clone(g.outputs) }

// Gates returns the ids of all AND gates in ascending order.
func (g *Graph) Gates() []uint32 {
	ids := make([]uint32, 0, len(g.nodes)-len(g.inputs)-len(g.latches))
	for id, n := range g.nodes {
		if n.Kind == KindGate {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// NodeCount returns the number of stored nodes, the constant excluded.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// MaxID returns the largest stored node id, 0 for an empty graph.
func (g *Graph) MaxID() uint32 {
	var max uint32
	for id := range g.nodes {
		if id > max {
			max = id
		}
	}
	return max
}
