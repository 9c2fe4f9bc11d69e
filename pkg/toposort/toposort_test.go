package toposort

import (
	"errors"
	"slices"
	"testing"
)

// sortEach sorts every layer in place so tests can compare against a
// canonical form; the package itself guarantees no intra-layer order.
func sortEach(layers [][]int) [][]int {
	for _, l := range layers {
		slices.Sort(l)
	}
	return layers
}

func equalLayers(a, b [][]int) bool {
	return slices.EqualFunc(a, b, slices.Equal)
}

func TestAll_Example(t *testing.T) {
	graph := map[int][]int{
		3:  {10, 8},
		5:  {11},
		7:  {8, 11},
		8:  {9},
		11: {9, 2, 10},
	}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	want := [][]int{{3, 5, 7}, {8, 11}, {2, 9, 10}}
	if got := sortEach(layers); !equalLayers(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAll_LinearChain(t *testing.T) {
	graph := map[int][]int{1: {2}, 2: {3}, 3: {4}}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	want := [][]int{{1}, {2}, {3}, {4}}
	if got := sortEach(layers); !equalLayers(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAll_MultipleNodesPerLayer(t *testing.T) {
	graph := map[int][]int{1: {2, 3}, 2: {4}, 3: {4}}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	want := [][]int{{1}, {2, 3}, {4}}
	if got := sortEach(layers); !equalLayers(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAll_DisconnectedComponents(t *testing.T) {
	graph := map[int][]int{1: {2}, 3: {4}}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	want := [][]int{{1, 3}, {2, 4}}
	if got := sortEach(layers); !equalLayers(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAll_ComponentsOfDifferentDepth(t *testing.T) {
	graph := map[int][]int{1: {2, 3}, 2: {4}, 3: {4}, 5: {6}}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	want := [][]int{{1, 5}, {2, 3, 6}, {4}}
	if got := sortEach(layers); !equalLayers(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAll_SingleNode(t *testing.T) {
	graph := map[int][]int{1: {}}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	want := [][]int{{1}}
	if got := sortEach(layers); !equalLayers(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAll_SuccessorOnlyNode(t *testing.T) {
	// 2 never appears as a key but is still part of the graph.
	graph := map[int][]int{1: {2}}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	want := [][]int{{1}, {2}}
	if got := sortEach(layers); !equalLayers(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestAll_EmptyGraph(t *testing.T) {
	layers, err := All(map[int][]int{})
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(layers) != 0 {
		t.Errorf("All() = %v, want no layers", layers)
	}
}

func TestAll_Cycle(t *testing.T) {
	graph := map[int][]int{1: {2}, 2: {3}, 3: {1}}

	layers, err := All(graph)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("All() error = %v, want ErrCycle", err)
	}
	if layers != nil {
		t.Errorf("All() returned layers %v alongside a cycle error", layers)
	}
}

func TestNext_StopsAtCycle(t *testing.T) {
	// 1 is a valid first layer; 2 and 3 form a cycle behind it.
	graph := map[int][]int{1: {2}, 2: {3}, 3: {2}}

	it := New(graph)
	if !it.Next() {
		t.Fatalf("Next() = false before any layer, err = %v", it.Err())
	}
	if got := it.Layer(); !slices.Equal(got, []int{1}) {
		t.Errorf("Layer() = %v, want [1]", got)
	}

	if it.Next() {
		t.Errorf("Next() = true past the cycle, layer %v", it.Layer())
	}
	if !errors.Is(it.Err(), ErrCycle) {
		t.Errorf("Err() = %v, want ErrCycle", it.Err())
	}
}

func TestNext_ExhaustedStaysExhausted(t *testing.T) {
	it := New(map[int][]int{1: {}})
	for it.Next() {
	}
	if it.Err() != nil {
		t.Fatalf("Err() = %v, want nil", it.Err())
	}
	if it.Next() {
		t.Error("Next() = true after exhaustion")
	}
}

func TestAll_Completeness(t *testing.T) {
	graph := map[int][]int{
		1: {4, 5},
		2: {5},
		3: {6},
		4: {7},
		5: {7, 8},
		6: {8},
	}

	layers, err := All(graph)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	// Every node exactly once.
	seen := map[int]int{}
	for li, layer := range layers {
		for _, n := range layer {
			if _, dup := seen[n]; dup {
				t.Errorf("node %d emitted twice", n)
			}
			seen[n] = li
		}
	}
	for n := 1; n <= 8; n++ {
		if _, ok := seen[n]; !ok {
			t.Errorf("node %d missing from layers", n)
		}
	}

	// Every edge crosses strictly forward.
	for from, succs := range graph {
		for _, to := range succs {
			if seen[from] >= seen[to] {
				t.Errorf("edge %d->%d not strictly layered: %d >= %d", from, to, seen[from], seen[to])
			}
		}
	}
}
