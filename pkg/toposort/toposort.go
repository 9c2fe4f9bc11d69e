// Package toposort provides a layered topological sort over directed graphs.
//
// The graph is supplied as a successor map: graph[n] lists the nodes that
// must come after n. Nodes that appear only inside successor lists are part
// of the graph too, so callers do not need a key for every sink.
//
// Layers are produced lazily through a scanner-style iterator; callers that
// only need the first few layers can abandon iteration without paying for
// the rest. Each [Layers] value is single-use: build a new one to iterate
// again.
package toposort

import (
	"errors"
	"fmt"
)

// ErrCycle is reported when the graph contains a cycle. No layers beyond
// the ones already emitted are produced; the result is never silently
// truncated into a partial ordering.
var ErrCycle = errors.New("graph contains a cycle")

// Layers iterates over the layers of a directed graph.
//
// # Algorithm
//
// Kahn-style iterative peeling:
//  1. Count incoming edges for every node, including nodes that appear
//     only as successors.
//  2. Seed the frontier with all zero-degree nodes; this is layer 0.
//  3. Emit the frontier, decrement the degree of its successors, and
//     collect newly zero-degree nodes as the next frontier.
//  4. Repeat until the frontier is empty.
//
// # Cycles
//
// If the frontier empties while nodes remain uncounted, every remaining
// node sits on or behind a cycle. Next returns false and Err reports
// [ErrCycle]; the layers emitted before detection are valid prefixes of a
// topological order.
//
// # Ordering
//
// No order is guaranteed within a layer. Callers that need deterministic
// output must sort each layer themselves.
type Layers[T comparable] struct {
	succ     map[T][]T
	degree   map[T]int
	frontier []T
	layer    []T
	emitted  int
	total    int
	done     bool
	err      error
}

// New builds a layer iterator for graph. The graph map is read but never
// modified; the iterator keeps its own bookkeeping.
func New[T comparable](graph map[T][]T) *Layers[T] {
	degree := make(map[T]int, len(graph))
	for node, succs := range graph {
		if _, ok := degree[node]; !ok {
			degree[node] = 0
		}
		for _, s := range succs {
			degree[s]++
		}
	}

	frontier := make([]T, 0, len(degree))
	for node, d := range degree {
		if d == 0 {
			frontier = append(frontier, node)
		}
	}

	return &Layers[T]{
		succ:     graph,
		degree:   degree,
		frontier: frontier,
		total:    len(degree),
	}
}

// Next advances to the next layer. It returns false when every node has
// been emitted or a cycle was detected; Err distinguishes the two.
func (l *Layers[T]) Next() bool {
	if l.done {
		return false
	}
	if len(l.frontier) == 0 {
		l.done = true
		l.layer = nil
		if l.emitted != l.total {
			l.err = fmt.Errorf("%w: %d of %d nodes unreachable", ErrCycle, l.total-l.emitted, l.total)
		}
		return false
	}

	l.layer = l.frontier
	l.emitted += len(l.layer)

	var next []T
	for _, node := range l.layer {
		for _, s := range l.succ[node] {
			l.degree[s]--
			if l.degree[s] == 0 {
				next = append(next, s)
			}
		}
	}
	l.frontier = next
	return true
}

// Layer returns the layer produced by the most recent call to Next. The
// slice is owned by the caller after the call; the iterator does not reuse
// it.
func (l *Layers[T]) Layer() []T {
	return l.layer
}

// Err returns the cycle error if iteration stopped early, and nil after a
// complete iteration.
func (l *Layers[T]) Err() error {
	return l.err
}

// All collects every layer of graph eagerly. It returns [ErrCycle]
// (wrapped) and no layers if the graph is cyclic.
func All[T comparable](graph map[T][]T) ([][]T, error) {
	it := New(graph)
	var layers [][]T
	for it.Next() {
		layers = append(layers, it.Layer())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return layers, nil
}
