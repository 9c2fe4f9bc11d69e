package aig

import "strconv"

// Ref is a reference to a node with an inversion bit. The node id occupies
// the high bits and the low bit carries polarity, so a Ref is a single
// comparable word: Pos(n) and Neg(n) are distinct values referring to the
// same node. This is the packed literal layout used by the AIGER format.
type Ref uint32

const (
	// False is the positive reference to the constant node, id 0.
	False Ref = 0

	// True is the negated reference to the constant node.
	True Ref = 1
)

// Pos returns the non-negated reference to id.
func Pos(id uint32) Ref { return Ref(id << 1) }

// Neg returns the negated reference to id.
func Neg(id uint32) Ref { return Ref(id<<1 | 1) }

// NewRef returns a reference to id with the given polarity.
func NewRef(id uint32, negated bool) Ref {
	if negated {
		return Neg(id)
	}
	return Pos(id)
}

// FromRaw reinterprets a packed literal (id<<1 | polarity) as a Ref.
func FromRaw(raw uint32) Ref { return Ref(raw) }

// ID returns the id of the referenced node.
func (r Ref) ID() uint32 { return uint32(r) >> 1 }

// Negated reports whether the reference passes through an inverter.
func (r Ref) Negated() bool { return r&1 == 1 }

// Not returns the same reference with the opposite polarity.
func (r Ref) Not() Ref { return r ^ 1 }

// Raw returns the packed literal form, id<<1 | polarity.
func (r Ref) Raw() uint32 { return uint32(r) }

// IsConst reports whether r references the constant node, id 0.
func (r Ref) IsConst() bool { return r.ID() == 0 }

// Const returns the Boolean value of a constant reference. The second
// result is false when r references an ordinary node.
func (r Ref) Const() (value, ok bool) {
	if !r.IsConst() {
		return false, false
	}
	return r.Negated(), true
}

// Int returns the signed view of the reference: the node id, negative when
// negated. Both polarities of the constant map to 0, so the signed view
// cannot distinguish [True] from [False]; use the packed form where the
// constant's polarity matters.
func (r Ref) Int() int {
	if r.Negated() {
		return -int(r.ID())
	}
	return int(r.ID())
}

// FromInt builds a reference from the signed view produced by [Ref.Int].
// Negative values yield negated references; 0 yields [False].
func FromInt(v int) Ref {
	if v < 0 {
		return Neg(uint32(-v))
	}
	return Pos(uint32(v))
}

// String renders the reference as "@id", prefixed with "~" when negated.
func (r Ref) String() string {
	s := "@" + strconv.FormatUint(uint64(r.ID()), 10)
	if r.Negated() {
		return "~" + s
	}
	return s
}
