package aig

import "fmt"

// Eval computes the value of every node under the given input assignment.
// Values bind positionally: values[i] goes to the i'th added input. The
// result maps every stored id to its value; read outputs from it with
// [Graph.OutputValues].
//
// Latch-bearing graphs are rejected with [ErrHasLatches]: a single
// combinational pass cannot assign registers a meaningful value. A wrong
// number of values is rejected with [ErrInputWidth] before any work runs.
func (g *Graph) Eval(values []bool) (map[uint32]bool, error) {
	if n := len(g.latches); n > 0 {
		return nil, fmt.Errorf("%w: %d latches have no combinational value", ErrHasLatches, n)
	}
	if len(values) != len(g.inputs) {
		return nil, fmt.Errorf("%w: got %d values for %d inputs", ErrInputWidth, len(values), len(g.inputs))
	}

	layers, err := g.LayersInput()
	if err != nil {
		return nil, err
	}

	out := make(map[uint32]bool, len(g.nodes))
	for i, id := range g.inputs {
		out[id] = values[i]
	}
	for _, layer := range layers {
		for _, id := range layer {
			n, _ := g.Node(id)
			switch n.Kind {
			case KindConst, KindInput:
				// constants resolve without a map entry; inputs are bound above
			case KindGate:
				a, err := g.resolve(n.Args[0], out)
				if err != nil {
					return nil, err
				}
				b, err := g.resolve(n.Args[1], out)
				if err != nil {
					return nil, err
				}
				out[id] = a && b
			default:
				panic(fmt.Sprintf("aig: unexpected %s node @%d in combinational evaluation", n.Kind, id))
			}
		}
	}
	return out, nil
}

// OutputValues resolves every output reference against a value map from
// [Graph.Eval], folding output polarities in.
func (g *Graph) OutputValues(values map[uint32]bool) ([]bool, error) {
	out := make([]bool, len(g.outputs))
	for i, r := range g.outputs {
		v, err := g.resolve(r, values)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// resolve reads a reference against computed node values, applying the
// polarity bit. The constant resolves without a map entry.
func (g *Graph) resolve(r Ref, values map[uint32]bool) (bool, error) {
	if v, ok := r.Const(); ok {
		return v, nil
	}
	v, ok := values[r.ID()]
	if !ok {
		return false, fmt.Errorf("%w: %s has no computed value", ErrDanglingRef, r)
	}
	return v != r.Negated(), nil
}
