package aig

import "fmt"

// NodeKind identifies what a stored node computes.
type NodeKind int

const (
	// KindConst is the constant node. It lives at id 0 and is never stored;
	// [Graph.Node] synthesizes it on lookup.
	KindConst NodeKind = iota

	// KindInput is a primary input, assigned a value at evaluation time.
	KindInput

	// KindLatch is a one-bit register. Its next-state edge is sequential
	// and does not participate in combinational analyses.
	KindLatch

	// KindGate is a two-input AND gate.
	KindGate
)

// String returns the lowercase name of the kind.
func (k NodeKind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindInput:
		return "input"
	case KindLatch:
		return "latch"
	case KindGate:
		return "gate"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is a single vertex of the circuit. Fields beyond ID and Kind are
// meaningful only for the kinds that declare them.
type Node struct {
	ID   uint32   // non-zero for stored nodes; 0 only for the synthesized constant
	Kind NodeKind // what the node computes
	Next Ref      // KindLatch: next-state function
	Args [2]Ref   // KindGate: conjunction arguments
}

// Children returns the references the node combinationally depends on:
// both arguments for a gate, nothing otherwise. Latch next-state edges are
// sequential and deliberately absent.
func (n Node) Children() []Ref {
	if n.Kind == KindGate {
		return []Ref{n.Args[0], n.Args[1]}
	}
	return nil
}

// String renders the node as an assignment, e.g. "@3 = @1 & ~@2".
func (n Node) String() string {
	switch n.Kind {
	case KindConst:
		return "@0 = false"
	case KindInput:
		return fmt.Sprintf("@%d = input", n.ID)
	case KindLatch:
		return fmt.Sprintf("@%d = latch(%s)", n.ID, n.Next)
	case KindGate:
		return fmt.Sprintf("@%d = %s & %s", n.ID, n.Args[0], n.Args[1])
	}
	return fmt.Sprintf("@%d = %s", n.ID, n.Kind)
}
