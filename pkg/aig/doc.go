// Package aig provides an in-memory And-Inverter Graph: a Boolean circuit
// built from two-input AND gates and inverters, the working representation
// of hardware model checkers and SAT-based equivalence tools.
//
// # Overview
//
// A circuit is a [Graph] of nodes keyed by non-zero integer id. Inputs,
// latches, and AND gates share one id space; inversion is not a node but a
// polarity bit carried on every [Ref]. Id 0 is reserved for the Boolean
// constant: the positive reference to id 0 is [False] and its negation is
// [True]. The constant has no stored node; lookups of id 0 synthesize it.
//
// # Basic Usage
//
// Build a graph with [New] and the Add mutators, then analyze it:
//
//	g := aig.New()
//	g.AddInput(1)
//	g.AddInput(2)
//	g.AddGate(3, aig.Pos(1), aig.Neg(2))
//	g.AddOutput(aig.Pos(3))
//
//	values, err := g.Eval([]bool{true, false})
//
// Gates may reference ids that have not been added yet; files do not list
// gates in dependency order. Unresolved references surface as
// [ErrDanglingRef] once a layering, evaluation, or encoding is requested.
//
// # Layers
//
// [Graph.LayersInput] and [Graph.LayersOutput] decompose the combinational
// dependency graph (each gate depends on its two arguments; latch
// next-state edges are sequential and excluded) into topological layers in
// the two orientations. Cycles are reported through
// [github.com/matzehuels/aigkit/pkg/toposort.ErrCycle], distinct from
// dangling references.
//
// # Concurrency
//
// Graphs are not safe for concurrent mutation. Once construction is done,
// any number of goroutines may run Eval, layering, or encoding against the
// same graph; all analyses take a read-only view and return fresh results.
package aig
