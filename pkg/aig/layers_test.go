package aig

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/aigkit/pkg/toposort"
)

func equalLayers(got, want [][]uint32) bool {
	return slices.EqualFunc(got, want, slices.Equal)
}

func TestLayersInput_Example(t *testing.T) {
	g := exampleCircuit(t)
	got, err := g.LayersInput()
	if err != nil {
		t.Fatalf("LayersInput: %v", err)
	}
	want := [][]uint32{{1, 2, 3}, {4}, {5}, {6}}
	if !equalLayers(got, want) {
		t.Errorf("LayersInput = %v, want %v", got, want)
	}
}

func TestLayersOutput_Example(t *testing.T) {
	g := exampleCircuit(t)
	got, err := g.LayersOutput()
	if err != nil {
		t.Fatalf("LayersOutput: %v", err)
	}
	want := [][]uint32{{6}, {5}, {3, 4}, {1, 2}}
	if !equalLayers(got, want) {
		t.Errorf("LayersOutput = %v, want %v", got, want)
	}
}

func TestLayers_LinearChainDuality(t *testing.T) {
	g := New()
	must(t, g.AddInput(1))
	must(t, g.AddGate(2, Pos(1), Pos(1)))
	must(t, g.AddGate(3, Pos(2), Pos(2)))
	must(t, g.AddGate(4, Pos(3), Pos(3)))
	g.AddOutput(Pos(4))

	fwd, err := g.LayersInput()
	if err != nil {
		t.Fatalf("LayersInput: %v", err)
	}
	rev, err := g.LayersOutput()
	if err != nil {
		t.Fatalf("LayersOutput: %v", err)
	}
	if len(fwd) != len(rev) {
		t.Fatalf("layer counts differ: %d vs %d", len(fwd), len(rev))
	}
	for k := range fwd {
		if !slices.Equal(fwd[k], rev[len(rev)-1-k]) {
			t.Errorf("inputs-first layer %d = %v, outputs-first layer %d = %v; want mirrored",
				k, fwd[k], len(rev)-1-k, rev[len(rev)-1-k])
		}
	}
}

func TestLayersInput_ForwardReference(t *testing.T) {
	// The gate arrives before the inputs it references.
	g := New()
	must(t, g.AddGate(5, Pos(1), Neg(2)))
	must(t, g.AddInput(1))
	must(t, g.AddInput(2))

	got, err := g.LayersInput()
	if err != nil {
		t.Fatalf("LayersInput: %v", err)
	}
	want := [][]uint32{{1, 2}, {5}}
	if !equalLayers(got, want) {
		t.Errorf("LayersInput = %v, want %v", got, want)
	}
}

func TestLayersInput_ConstantReference(t *testing.T) {
	g := New()
	must(t, g.AddInput(1))
	must(t, g.AddGate(2, True, Pos(1)))

	got, err := g.LayersInput()
	if err != nil {
		t.Fatalf("LayersInput: %v", err)
	}
	// Id 0 joins layer 0 once a gate references the constant.
	want := [][]uint32{{0, 1}, {2}}
	if !equalLayers(got, want) {
		t.Errorf("LayersInput = %v, want %v", got, want)
	}
}

func TestLayersInput_IsolatedInput(t *testing.T) {
	g := New()
	must(t, g.AddInput(1))
	must(t, g.AddInput(2))
	must(t, g.AddGate(3, Pos(1), Pos(1)))

	got, err := g.LayersInput()
	if err != nil {
		t.Fatalf("LayersInput: %v", err)
	}
	want := [][]uint32{{1, 2}, {3}}
	if !equalLayers(got, want) {
		t.Errorf("LayersInput = %v, want %v; input 2 is unreferenced but present", got, want)
	}
}

func TestLayers_LatchBackEdgeAllowed(t *testing.T) {
	// The latch's next state depends on a gate that reads the latch. The
	// sequential loop is legal; only the combinational part is layered.
	g := New()
	must(t, g.AddLatch(1, Pos(2)))
	must(t, g.AddGate(2, Pos(1), Pos(1)))
	g.AddOutput(Pos(2))

	got, err := g.LayersInput()
	if err != nil {
		t.Fatalf("LayersInput: %v", err)
	}
	want := [][]uint32{{1}, {2}}
	if !equalLayers(got, want) {
		t.Errorf("LayersInput = %v, want %v", got, want)
	}
}

func TestLayers_CombinationalCycle(t *testing.T) {
	g := New()
	must(t, g.AddGate(1, Pos(2), Pos(2)))
	must(t, g.AddGate(2, Pos(1), Pos(1)))

	layers, err := g.LayersInput()
	if !errors.Is(err, toposort.ErrCycle) {
		t.Fatalf("LayersInput = %v, want toposort.ErrCycle", err)
	}
	if layers != nil {
		t.Errorf("got partial layers %v alongside cycle error", layers)
	}
	if _, err := g.LayersOutput(); !errors.Is(err, toposort.ErrCycle) {
		t.Errorf("LayersOutput = %v, want toposort.ErrCycle", err)
	}
}

func TestLayers_DanglingGateArg(t *testing.T) {
	g := New()
	must(t, g.AddInput(1))
	must(t, g.AddGate(2, Pos(1), Pos(7)))

	if _, err := g.LayersInput(); !errors.Is(err, ErrDanglingRef) {
		t.Errorf("LayersInput = %v, want ErrDanglingRef", err)
	}
}

func TestLayers_DanglingLatchNext(t *testing.T) {
	g := New()
	must(t, g.AddLatch(1, Pos(7)))

	if _, err := g.LayersInput(); !errors.Is(err, ErrDanglingRef) {
		t.Errorf("LayersInput = %v, want ErrDanglingRef", err)
	}
}

func TestLayers_DanglingOutput(t *testing.T) {
	g := New()
	must(t, g.AddInput(1))
	g.AddOutput(Pos(9))

	if _, err := g.LayersInput(); !errors.Is(err, ErrDanglingRef) {
		t.Errorf("LayersInput = %v, want ErrDanglingRef", err)
	}
}

func TestLayers_CycleDistinctFromDangling(t *testing.T) {
	g := New()
	must(t, g.AddGate(1, Pos(2), Pos(2)))
	must(t, g.AddGate(2, Pos(1), Pos(1)))

	_, err := g.LayersInput()
	if errors.Is(err, ErrDanglingRef) {
		t.Errorf("cycle reported as dangling reference: %v", err)
	}
	if !errors.Is(err, toposort.ErrCycle) {
		t.Errorf("LayersInput = %v, want toposort.ErrCycle", err)
	}
}

func TestLayersInput_Completeness(t *testing.T) {
	g := exampleCircuit(t)
	must(t, g.AddLatch(7, Pos(6)))
	must(t, g.AddGate(8, Pos(7), Neg(3)))
	g.AddOutput(Pos(8))

	layers, err := g.LayersInput()
	if err != nil {
		t.Fatalf("LayersInput: %v", err)
	}
	seen := make(map[uint32]int)
	for k, layer := range layers {
		for _, id := range layer {
			if prev, dup := seen[id]; dup {
				t.Fatalf("@%d emitted in layers %d and %d", id, prev, k)
			}
			seen[id] = k
		}
	}
	if len(seen) != g.NodeCount() {
		t.Fatalf("layers cover %d nodes, graph has %d", len(seen), g.NodeCount())
	}
	for _, id := range g.Gates() {
		n, _ := g.Node(id)
		for _, arg := range n.Children() {
			if seen[arg.ID()] >= seen[id] {
				t.Errorf("gate @%d in layer %d, but argument %s in layer %d",
					id, seen[id], arg, seen[arg.ID()])
			}
		}
	}
}
