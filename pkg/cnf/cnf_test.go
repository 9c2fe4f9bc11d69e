package cnf

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/aigkit/pkg/aig"
	"github.com/matzehuels/aigkit/pkg/toposort"
)

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("graph setup: %v", err)
	}
}

func equalClauses(got, want [][]int) bool {
	return slices.EqualFunc(got, want, slices.Equal)
}

// satisfies evaluates the clause set under a total assignment of variables.
func satisfies(clauses [][]int, assign map[int]bool) bool {
	for _, clause := range clauses {
		sat := false
		for _, lit := range clause {
			v := assign[lit]
			if lit < 0 {
				v = !assign[-lit]
			}
			if v {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

func TestEncode_SingleGate(t *testing.T) {
	g := aig.New()
	must(t, g.AddInput(1))
	must(t, g.AddInput(2))
	must(t, g.AddGate(3, aig.Pos(1), aig.Pos(2)))

	f, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if f.NumVars != 3 {
		t.Errorf("NumVars = %d, want 3", f.NumVars)
	}
	if f.Vars[1] != 1 || f.Vars[2] != 2 || f.Vars[3] != 3 {
		t.Errorf("Vars = %v, want inputs 1,2 then gate 3", f.Vars)
	}
	want := [][]int{{-3, 1}, {-3, 2}, {3, -1, -2}}
	if !equalClauses(f.Clauses, want) {
		t.Errorf("Clauses = %v, want %v", f.Clauses, want)
	}
}

func TestEncode_TseitinEquivalence(t *testing.T) {
	g := aig.New()
	must(t, g.AddInput(1))
	must(t, g.AddInput(2))
	must(t, g.AddGate(3, aig.Pos(1), aig.Pos(2)))

	f, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// The clause set is satisfied exactly when the gate variable matches
	// the conjunction of the inputs.
	for _, x1 := range []bool{false, true} {
		for _, x2 := range []bool{false, true} {
			for _, xg := range []bool{false, true} {
				assign := map[int]bool{1: x1, 2: x2, 3: xg}
				want := xg == (x1 && x2)
				if got := satisfies(f.Clauses, assign); got != want {
					t.Errorf("x1=%v x2=%v g=%v: satisfies = %v, want %v", x1, x2, xg, got, want)
				}
			}
		}
	}
}

func TestEncode_ConstTrueArg(t *testing.T) {
	for name, args := range map[string][2]aig.Ref{
		"left":  {aig.True, aig.Neg(1)},
		"right": {aig.Neg(1), aig.True},
	} {
		g := aig.New()
		must(t, g.AddInput(1))
		must(t, g.AddGate(2, args[0], args[1]))

		f, err := Encode(g)
		if err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		// Two equivalence clauses binding the gate to ~x1.
		want := [][]int{{-2, -1}, {2, 1}}
		if !equalClauses(f.Clauses, want) {
			t.Errorf("%s: Clauses = %v, want %v", name, f.Clauses, want)
		}
	}
}

func TestEncode_ConstFalseArg(t *testing.T) {
	for name, args := range map[string][2]aig.Ref{
		"left":  {aig.False, aig.Pos(1)},
		"right": {aig.Pos(1), aig.False},
	} {
		g := aig.New()
		must(t, g.AddInput(1))
		must(t, g.AddGate(2, args[0], args[1]))

		f, err := Encode(g)
		if err != nil {
			t.Fatalf("%s: Encode: %v", name, err)
		}
		want := [][]int{{-2}}
		if !equalClauses(f.Clauses, want) {
			t.Errorf("%s: Clauses = %v, want %v", name, f.Clauses, want)
		}
	}
}

func TestEncode_BothConst(t *testing.T) {
	cases := []struct {
		a, b aig.Ref
		want [][]int
	}{
		{aig.True, aig.True, [][]int{{1}}},
		{aig.True, aig.False, [][]int{{-1}}},
		{aig.False, aig.True, [][]int{{-1}}},
		{aig.False, aig.False, [][]int{{-1}}},
	}
	for _, tc := range cases {
		g := aig.New()
		must(t, g.AddGate(1, tc.a, tc.b))

		f, err := Encode(g)
		if err != nil {
			t.Fatalf("Encode(%s & %s): %v", tc.a, tc.b, err)
		}
		if !equalClauses(f.Clauses, tc.want) {
			t.Errorf("%s & %s: Clauses = %v, want %v", tc.a, tc.b, f.Clauses, tc.want)
		}
	}
}

func TestEncode_MixedFolding(t *testing.T) {
	// One gate per folding row: pass-through, absorbed, fixed, general.
	g := aig.New()
	must(t, g.AddInput(1))
	must(t, g.AddInput(2))
	must(t, g.AddGate(3, aig.True, aig.Pos(1)))
	must(t, g.AddGate(4, aig.False, aig.Pos(2)))
	must(t, g.AddGate(5, aig.True, aig.True))
	must(t, g.AddGate(6, aig.Pos(3), aig.Neg(4)))

	f, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Vars: inputs 1,2 -> 1,2; layer 1 gates 3,4,5 -> 3,4,5; layer 2 gate 6 -> 6.
	want := [][]int{
		{-3, 1}, {3, -1},
		{-4},
		{5},
		{-6, 3}, {-6, -4}, {6, -3, 4},
	}
	if !equalClauses(f.Clauses, want) {
		t.Errorf("Clauses = %v, want %v", f.Clauses, want)
	}
	if f.NumVars != 6 {
		t.Errorf("NumVars = %d, want 6", f.NumVars)
	}
}

func TestEncode_Example(t *testing.T) {
	// g1 = x1 AND x2, g2 = NOT g1 AND x3, g3 = x1 AND NOT g2.
	g := aig.New()
	must(t, g.AddInput(1))
	must(t, g.AddInput(2))
	must(t, g.AddInput(3))
	must(t, g.AddGate(4, aig.Pos(1), aig.Pos(2)))
	must(t, g.AddGate(5, aig.Neg(4), aig.Pos(3)))
	must(t, g.AddGate(6, aig.Pos(1), aig.Neg(5)))
	g.AddOutput(aig.Pos(6))

	f, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := [][]int{
		{-4, 1}, {-4, 2}, {4, -1, -2},
		{-5, -4}, {-5, 3}, {5, 4, -3},
		{-6, 1}, {-6, -5}, {6, -1, 5},
	}
	if !equalClauses(f.Clauses, want) {
		t.Errorf("Clauses = %v, want %v", f.Clauses, want)
	}

	// The whole circuit agrees with Eval on the example assignment: pinning
	// the inputs to x1=T x2=F x3=T and the output to true is unsatisfiable.
	pinned := slices.Clone(f.Clauses)
	pinned = append(pinned, []int{1}, []int{-2}, []int{3}, []int{6})
	found := false
	for mask := 0; mask < 1<<6 && !found; mask++ {
		assign := make(map[int]bool, 6)
		for v := 1; v <= 6; v++ {
			assign[v] = mask&(1<<(v-1)) != 0
		}
		found = satisfies(pinned, assign)
	}
	if found {
		t.Error("pinning output true under x1=T x2=F x3=T is satisfiable, want unsat")
	}
}

func TestEncode_RejectsLatches(t *testing.T) {
	g := aig.New()
	must(t, g.AddInput(1))
	must(t, g.AddLatch(2, aig.Pos(1)))

	if _, err := Encode(g); !errors.Is(err, aig.ErrHasLatches) {
		t.Errorf("Encode = %v, want ErrHasLatches", err)
	}
}

func TestEncode_PropagatesGraphErrors(t *testing.T) {
	dangling := aig.New()
	must(t, dangling.AddGate(1, aig.Pos(9), aig.Pos(9)))
	if _, err := Encode(dangling); !errors.Is(err, aig.ErrDanglingRef) {
		t.Errorf("Encode = %v, want ErrDanglingRef", err)
	}

	cyclic := aig.New()
	must(t, cyclic.AddGate(1, aig.Pos(2), aig.Pos(2)))
	must(t, cyclic.AddGate(2, aig.Pos(1), aig.Pos(1)))
	if _, err := Encode(cyclic); !errors.Is(err, toposort.ErrCycle) {
		t.Errorf("Encode = %v, want toposort.ErrCycle", err)
	}
}

func TestEncode_EmptyGraph(t *testing.T) {
	f, err := Encode(aig.New())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if f.NumVars != 0 || len(f.Clauses) != 0 {
		t.Errorf("empty graph encoded to %d vars, %d clauses", f.NumVars, len(f.Clauses))
	}
}

func TestFormula_Literal(t *testing.T) {
	g := aig.New()
	must(t, g.AddInput(1))
	must(t, g.AddGate(2, aig.Pos(1), aig.Pos(1)))

	f, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if lit, ok := f.Literal(aig.Neg(2)); !ok || lit != -2 {
		t.Errorf("Literal(~@2) = %d, %v, want -2, true", lit, ok)
	}
	if lit, ok := f.Literal(aig.Pos(1)); !ok || lit != 1 {
		t.Errorf("Literal(@1) = %d, %v, want 1, true", lit, ok)
	}
	if _, ok := f.Literal(aig.True); ok {
		t.Error("Literal(constant) reported a variable")
	}
	if _, ok := f.Literal(aig.Pos(99)); ok {
		t.Error("Literal(unknown id) reported a variable")
	}
}

func TestFormula_OutputLiteral(t *testing.T) {
	g := aig.New()
	must(t, g.AddInput(1))
	must(t, g.AddGate(2, aig.Pos(1), aig.Pos(1)))
	g.AddOutput(aig.Neg(2))
	g.AddOutput(aig.True)

	f, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if lit, ok := f.OutputLiteral(g, 0); !ok || lit != -2 {
		t.Errorf("OutputLiteral(0) = %d, %v, want -2, true", lit, ok)
	}
	if _, ok := f.OutputLiteral(g, 1); ok {
		t.Error("OutputLiteral(constant output) reported a variable")
	}
	if _, ok := f.OutputLiteral(g, 2); ok {
		t.Error("OutputLiteral(out of range) reported a variable")
	}
}

func TestFormula_Assume(t *testing.T) {
	f := &Formula{NumVars: 2}
	f.Assume(1, -2)
	want := [][]int{{1}, {-2}}
	if !equalClauses(f.Clauses, want) {
		t.Errorf("Clauses = %v, want %v", f.Clauses, want)
	}
}

func TestWriteDIMACS(t *testing.T) {
	f := &Formula{
		Clauses: [][]int{{-3, 1}, {-3, 2}, {3, -1, -2}},
		NumVars: 3,
	}
	var sb strings.Builder
	if err := f.WriteDIMACS(&sb); err != nil {
		t.Fatalf("WriteDIMACS: %v", err)
	}
	want := "p cnf 3 3\n-3 1 0\n-3 2 0\n3 -1 -2 0\n"
	if sb.String() != want {
		t.Errorf("WriteDIMACS output:\n%q\nwant:\n%q", sb.String(), want)
	}
}
