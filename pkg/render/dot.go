// Package render draws circuits as Graphviz diagrams.
//
// [ToDOT] lays a circuit out in conventional schematic shapes: triangles
// for inputs, circles for AND gates, boxes for latches, a point for the
// constant, and double circles for the declared outputs. Negated
// references are drawn as dashed edges. The DOT text can then be turned
// into SVG, PNG, or PDF with [Render].
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/aigkit/pkg/aiger"
)

// Options configures circuit diagram generation.
type Options struct {
	// Detailed appends the argument references to gate labels.
	// When false, only the node id is shown.
	Detailed bool
}

// ToDOT converts a circuit to Graphviz DOT format. Symbol table names
// label inputs, latches, and outputs where present; node ids otherwise.
// The resulting DOT string can be rendered with [Render].
func ToDOT(f *aiger.File, opts Options) string {
	g := f.Graph

	var buf bytes.Buffer
	buf.WriteString("digraph aig {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12, fontname=\"Helvetica\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if usesConst(f) {
		buf.WriteString("  n0 [label=\"\", shape=point, width=0.15];\n")
	}
	for i, id := range g.Inputs() {
		label := symbolOr(f.Symbols.Inputs, i, strconv.FormatUint(uint64(id), 10))
		fmt.Fprintf(&buf, "  n%d [label=%q, shape=triangle];\n", id, label)
	}
	for i, id := range g.Latches() {
		label := symbolOr(f.Symbols.Latches, i, strconv.FormatUint(uint64(id), 10))
		fmt.Fprintf(&buf, "  n%d [label=%q, shape=box];\n", id, label)
	}
	for _, id := range g.Gates() {
		fmt.Fprintf(&buf, "  n%d [label=%q, shape=circle];\n", id, gateLabel(f, id, opts.Detailed))
	}
	for i := range g.Outputs() {
		label := symbolOr(f.Symbols.Outputs, i, fmt.Sprintf("o%d", i))
		fmt.Fprintf(&buf, "  o%d [label=%q, shape=doublecircle];\n", i, label)
	}

	buf.WriteString("\n")
	for _, id := range g.Gates() {
		n, _ := g.Node(id)
		for _, a := range n.Args {
			writeEdge(&buf, nodeName(a.ID()), nodeName(id), a.Negated())
		}
	}
	for _, id := range g.Latches() {
		n, _ := g.Node(id)
		writeEdge(&buf, nodeName(n.Next.ID()), nodeName(id), n.Next.Negated())
	}
	for i, r := range g.Outputs() {
		writeEdge(&buf, nodeName(r.ID()), fmt.Sprintf("o%d", i), r.Negated())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id uint32) string {
	return "n" + strconv.FormatUint(uint64(id), 10)
}

func writeEdge(buf *bytes.Buffer, from, to string, negated bool) {
	if negated {
		fmt.Fprintf(buf, "  %s -> %s [style=dashed];\n", from, to)
		return
	}
	fmt.Fprintf(buf, "  %s -> %s;\n", from, to)
}

func gateLabel(f *aiger.File, id uint32, detailed bool) string {
	label := strconv.FormatUint(uint64(id), 10)
	if !detailed {
		return label
	}
	n, _ := f.Graph.Node(id)
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return label + "\n" + strings.Join(args, " & ")
}

func symbolOr(names map[int]string, pos int, fallback string) string {
	if name, ok := names[pos]; ok {
		return name
	}
	return fallback
}

// usesConst reports whether any reference in the circuit points at the
// constant node, which is drawn only when something connects to it.
func usesConst(f *aiger.File) bool {
	g := f.Graph
	for _, id := range g.Gates() {
		n, _ := g.Node(id)
		if n.Args[0].IsConst() || n.Args[1].IsConst() {
			return true
		}
	}
	for _, id := range g.Latches() {
		n, _ := g.Node(id)
		if n.Next.IsConst() {
			return true
		}
	}
	for _, r := range g.Outputs() {
		if r.IsConst() {
			return true
		}
	}
	return false
}
