package sat

import (
	"context"
	"testing"

	"github.com/matzehuels/aigkit/pkg/aig"
	"github.com/matzehuels/aigkit/pkg/cnf"
)

func encodeAnd(t *testing.T) *cnf.Formula {
	t.Helper()
	g := aig.New()
	if err := g.AddInput(1); err != nil {
		t.Fatal(err)
	}
	if err := g.AddInput(2); err != nil {
		t.Fatal(err)
	}
	if err := g.AddGate(3, aig.Pos(1), aig.Pos(2)); err != nil {
		t.Fatal(err)
	}
	f, err := cnf.Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return f
}

func TestSolve_Sat(t *testing.T) {
	f := encodeAnd(t)
	// Force the gate true; the only model sets both inputs.
	f.Assume(f.Vars[3])

	res, err := Solve(context.Background(), f)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Verdict != Sat {
		t.Fatalf("verdict = %s, want sat", res.Verdict)
	}
	for id := uint32(1); id <= 3; id++ {
		if !res.Model[id] {
			t.Errorf("model[@%d] = false, want true", id)
		}
	}
}

func TestSolve_Unsat(t *testing.T) {
	f := encodeAnd(t)
	// Gate true but one input false is contradictory.
	f.Assume(f.Vars[3], -f.Vars[1])

	res, err := Solve(context.Background(), f)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Verdict != Unsat {
		t.Errorf("verdict = %s, want unsat", res.Verdict)
	}
	if res.Model != nil {
		t.Errorf("unsat result carries a model: %v", res.Model)
	}
}

func TestSolve_ConstantFalseGate(t *testing.T) {
	g := aig.New()
	if err := g.AddInput(1); err != nil {
		t.Fatal(err)
	}
	if err := g.AddGate(2, aig.False, aig.Pos(1)); err != nil {
		t.Fatal(err)
	}
	f, err := cnf.Encode(g)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	f.Assume(f.Vars[2])

	res, err := Solve(context.Background(), f)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Verdict != Unsat {
		t.Errorf("verdict = %s, want unsat", res.Verdict)
	}
}

func TestSolve_EmptyFormula(t *testing.T) {
	res, err := Solve(context.Background(), &cnf.Formula{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Verdict != Sat {
		t.Errorf("verdict = %s, want sat", res.Verdict)
	}
	if len(res.Model) != 0 {
		t.Errorf("model = %v, want empty", res.Model)
	}
}

func TestSolve_CancelableContext(t *testing.T) {
	// A cancelable but never-canceled context takes the background-solve
	// path and still completes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := encodeAnd(t)
	f.Assume(f.Vars[3])
	res, err := Solve(ctx, f)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Verdict != Sat {
		t.Errorf("verdict = %s, want sat", res.Verdict)
	}
}

func TestVerdict_String(t *testing.T) {
	if Sat.String() != "sat" || Unsat.String() != "unsat" || Unknown.String() != "unknown" {
		t.Errorf("verdict strings = %s/%s/%s", Sat, Unsat, Unknown)
	}
}
