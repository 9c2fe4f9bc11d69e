package aig

import (
	"fmt"
	"slices"

	"github.com/matzehuels/aigkit/pkg/toposort"
)

// combinationalEdges builds the successor map of the combinational
// dependency graph: an edge a -> b means a must be computed before b. Gate
// arguments contribute edges; latch next-state references are sequential
// and contribute none. Every stored node gets an entry so isolated nodes
// land in a layer; id 0 enters only when a gate references the constant.
//
// All references are resolved here, latch next-state and outputs included,
// so a dangling reference fails before any layering runs.
func (g *Graph) combinationalEdges() (map[uint32][]uint32, error) {
	succ := make(map[uint32][]uint32, len(g.nodes))
	for id := range g.nodes {
		succ[id] = nil
	}
	for id, n := range g.nodes {
		switch n.Kind {
		case KindGate:
			for _, arg := range n.Args {
				if !g.Contains(arg.ID()) {
					return nil, fmt.Errorf("%w: gate @%d argument %s", ErrDanglingRef, id, arg)
				}
				succ[arg.ID()] = append(succ[arg.ID()], id)
			}
		case KindLatch:
			if !g.Contains(n.Next.ID()) {
				return nil, fmt.Errorf("%w: latch @%d next state %s", ErrDanglingRef, id, n.Next)
			}
		}
	}
	for i, r := range g.outputs {
		if !g.Contains(r.ID()) {
			return nil, fmt.Errorf("%w: output %d is %s", ErrDanglingRef, i, r)
		}
	}
	return succ, nil
}

// LayersInput decomposes the combinational graph into layers from the
// inputs: layer 0 holds nodes with no combinational dependencies (inputs,
// latches, and the constant when referenced), and each later layer holds
// gates whose arguments all sit in earlier layers. Ids within a layer are
// sorted ascending.
//
// A combinational cycle is reported through
// [github.com/matzehuels/aigkit/pkg/toposort.ErrCycle].
func (g *Graph) LayersInput() ([][]uint32, error) {
	succ, err := g.combinationalEdges()
	if err != nil {
		return nil, err
	}
	return sortedLayers(toposort.All(succ))
}

// LayersOutput is the reverse decomposition: layer 0 holds nodes no gate
// depends on, and each later layer holds nodes consumed only by earlier
// layers. Ids within a layer are sorted ascending.
func (g *Graph) LayersOutput() ([][]uint32, error) {
	succ, err := g.combinationalEdges()
	if err != nil {
		return nil, err
	}
	rev := make(map[uint32][]uint32, len(succ))
	for id := range succ {
		rev[id] = nil
	}
	for from, tos := range succ {
		for _, to := range tos {
			rev[to] = append(rev[to], from)
		}
	}
	return sortedLayers(toposort.All(rev))
}

func sortedLayers(layers [][]uint32, err error) ([][]uint32, error) {
	if err != nil {
		return nil, err
	}
	for _, layer := range layers {
		slices.Sort(layer)
	}
	return layers, nil
}
