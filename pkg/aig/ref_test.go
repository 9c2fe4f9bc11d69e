package aig

import "testing"

func TestRef_RoundTrip(t *testing.T) {
	for _, id := range []uint32{1, 2, 7, 1 << 20} {
		for _, neg := range []bool{false, true} {
			r := NewRef(id, neg)
			if r.ID() != id {
				t.Errorf("NewRef(%d, %v).ID() = %d, want %d", id, neg, r.ID(), id)
			}
			if r.Negated() != neg {
				t.Errorf("NewRef(%d, %v).Negated() = %v, want %v", id, neg, r.Negated(), neg)
			}
			if got := r.Not().Not(); got != r {
				t.Errorf("double negation of %s = %s, want identity", r, got)
			}
			if got := FromRaw(r.Raw()); got != r {
				t.Errorf("FromRaw(%d) = %s, want %s", r.Raw(), got, r)
			}
		}
	}
}

func TestRef_Constants(t *testing.T) {
	if False.ID() != 0 || False.Negated() {
		t.Errorf("False = %s, want positive reference to id 0", False)
	}
	if True.ID() != 0 || !True.Negated() {
		t.Errorf("True = %s, want negated reference to id 0", True)
	}
	if False.Not() != True || True.Not() != False {
		t.Error("negation does not swap the constants")
	}
	if v, ok := False.Const(); !ok || v {
		t.Errorf("False.Const() = %v, %v, want false, true", v, ok)
	}
	if v, ok := True.Const(); !ok || !v {
		t.Errorf("True.Const() = %v, %v, want true, true", v, ok)
	}
	if _, ok := Pos(3).Const(); ok {
		t.Error("Pos(3).Const() reported a constant")
	}
	for _, r := range []Ref{Pos(1), Neg(1), Pos(42), Neg(42)} {
		if r == False || r == True {
			t.Errorf("%s collides with a constant", r)
		}
	}
}

func TestRef_Int(t *testing.T) {
	if got := Pos(5).Int(); got != 5 {
		t.Errorf("Pos(5).Int() = %d, want 5", got)
	}
	if got := Neg(5).Int(); got != -5 {
		t.Errorf("Neg(5).Int() = %d, want -5", got)
	}
	// The signed view folds both constant polarities onto 0.
	if False.Int() != 0 || True.Int() != 0 {
		t.Errorf("constant Int() = %d, %d, want 0, 0", False.Int(), True.Int())
	}
	for _, v := range []int{-9, -1, 1, 9} {
		if got := FromInt(v).Int(); got != v {
			t.Errorf("FromInt(%d).Int() = %d", v, got)
		}
	}
}

func TestRef_String(t *testing.T) {
	cases := []struct {
		r    Ref
		want string
	}{
		{Pos(3), "@3"},
		{Neg(3), "~@3"},
		{False, "@0"},
		{True, "~@0"},
	}
	for _, tc := range cases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
