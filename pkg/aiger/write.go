package aiger

import (
	"bufio"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/aigkit/pkg/aig"
)

// writeASCII emits the canonical "aag" form: M is the largest stored id,
// inputs and latches appear in declared order, gates in ascending id
// order, all literals exactly as stored.
func writeASCII(w *bufio.Writer, f *File) error {
	g := f.Graph
	inputs := g.Inputs()
	latches := g.Latches()
	outputs := g.Outputs()
	gates := g.Gates()

	fmt.Fprintf(w, "aag %d %d %d %d %d\n", g.MaxID(), len(inputs), len(latches), len(outputs), len(gates))
	for _, id := range inputs {
		fmt.Fprintf(w, "%d\n", aig.Pos(id).Raw())
	}
	for _, id := range latches {
		n, _ := g.Node(id)
		fmt.Fprintf(w, "%d %d\n", aig.Pos(id).Raw(), n.Next.Raw())
	}
	for _, r := range outputs {
		fmt.Fprintf(w, "%d\n", r.Raw())
	}
	for _, id := range gates {
		n, _ := g.Node(id)
		fmt.Fprintf(w, "%d %d %d\n", aig.Pos(id).Raw(), n.Args[0].Raw(), n.Args[1].Raw())
	}
	writeTrailer(w, f)
	return nil
}

// writeBinary emits the compact "aig" form. The format prescribes the
// variable numbering, so the circuit is renumbered first: inputs 1..I in
// declared order, latches next, then gates in inputs-first layer order,
// which guarantees every gate's arguments have smaller literals. Symbol
// positions are unaffected; only literals change.
func writeBinary(w *bufio.Writer, f *File) error {
	g := f.Graph
	layers, err := g.LayersInput()
	if err != nil {
		return fmt.Errorf("binary write: %w", err)
	}
	inputs := g.Inputs()
	latches := g.Latches()
	outputs := g.Outputs()

	renum := make(map[uint32]uint32, g.NodeCount()+1)
	var next uint32
	for _, id := range inputs {
		next++
		renum[id] = next
	}
	for _, id := range latches {
		next++
		renum[id] = next
	}
	var gates []uint32
	for k, layer := range layers {
		if k == 0 {
			continue
		}
		for _, id := range layer {
			next++
			renum[id] = next
			gates = append(gates, id)
		}
	}
	lit := func(r aig.Ref) uint32 {
		// renum's zero value maps the constant to itself.
		return aig.NewRef(renum[r.ID()], r.Negated()).Raw()
	}

	fmt.Fprintf(w, "aig %d %d %d %d %d\n", next, len(inputs), len(latches), len(outputs), len(gates))
	for _, id := range latches {
		n, _ := g.Node(id)
		fmt.Fprintf(w, "%d\n", lit(n.Next))
	}
	for _, r := range outputs {
		fmt.Fprintf(w, "%d\n", lit(r))
	}
	for k, id := range gates {
		n, _ := g.Node(id)
		lhs := uint32(len(inputs)+len(latches)+k+1) * 2
		rhs0, rhs1 := lit(n.Args[0]), lit(n.Args[1])
		if rhs0 < rhs1 {
			rhs0, rhs1 = rhs1, rhs0
		}
		writeVarint(w, lhs-rhs0)
		writeVarint(w, rhs0-rhs1)
	}
	writeTrailer(w, f)
	return nil
}

// writeVarint encodes one AIGER 7-bit variable-length integer.
func writeVarint(w *bufio.Writer, x uint32) {
	for x >= 0x80 {
		w.WriteByte(byte(x&0x7f) | 0x80)
		x >>= 7
	}
	w.WriteByte(byte(x))
}

func writeTrailer(w *bufio.Writer, f *File) {
	writeSymbols(w, 'i', f.Symbols.Inputs)
	writeSymbols(w, 'l', f.Symbols.Latches)
	writeSymbols(w, 'o', f.Symbols.Outputs)
	if len(f.Comments) > 0 {
		w.WriteString("c\n")
		for _, line := range f.Comments {
			w.WriteString(line)
			w.WriteByte('\n')
		}
	}
}

func writeSymbols(w *bufio.Writer, kind byte, table map[int]string) {
	for _, pos := range slices.Sorted(maps.Keys(table)) {
		fmt.Fprintf(w, "%c%d %s\n", kind, pos, table[pos])
	}
}
