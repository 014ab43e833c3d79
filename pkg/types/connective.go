package types

import "strings"

// Union is Union(bounds) from spec §3.1: a non-empty sequence of syntactic
// types. Mirrors the teacher's UnionType in pkg/types/union.go.
type Union struct {
	Bounds []Type
}

// NewUnion builds a Union; panics if bounds is empty, matching the
// "non-empty sequence" invariant in spec §3.1 (a malformed AST is an
// internal-failure condition, not representable here).
func NewUnion(bounds ...Type) *Union {
	if len(bounds) == 0 {
		panic("types: Union requires a non-empty sequence of bounds")
	}
	return &Union{Bounds: bounds}
}

func (u *Union) typeNode() {}
func (u *Union) String() string {
	parts := make([]string, len(u.Bounds))
	for i, b := range u.Bounds {
		parts[i] = b.String()
	}
	return strings.Join(parts, " | ")
}
func (u *Union) Equals(other Type) bool {
	o, ok := other.(*Union)
	if !ok {
		return false
	}
	return sameTypeSet(u.Bounds, o.Bounds)
}

// Intersection is Intersection(bounds) from spec §3.1.
type Intersection struct {
	Bounds []Type
}

func NewIntersection(bounds ...Type) *Intersection {
	return &Intersection{Bounds: bounds}
}

func (i *Intersection) typeNode() {}
func (i *Intersection) String() string {
	parts := make([]string, len(i.Bounds))
	for idx, b := range i.Bounds {
		parts[idx] = b.String()
	}
	return strings.Join(parts, " & ")
}
func (i *Intersection) Equals(other Type) bool {
	o, ok := other.(*Intersection)
	if !ok {
		return false
	}
	return sameTypeSet(i.Bounds, o.Bounds)
}

// Difference is Difference(lhs, rhs) from spec §3.1: values of lhs that are
// not values of rhs.
type Difference struct {
	Lhs, Rhs Type
}

func NewDifference(lhs, rhs Type) *Difference {
	return &Difference{Lhs: lhs, Rhs: rhs}
}

func (d *Difference) typeNode()      {}
func (d *Difference) String() string { return d.Lhs.String() + " \\ " + d.Rhs.String() }
func (d *Difference) Equals(other Type) bool {
	o, ok := other.(*Difference)
	return ok && d.Lhs.Equals(o.Lhs) && d.Rhs.Equals(o.Rhs)
}

// Negation is Negation(element) from spec §3.1: the complement of element
// within the universe of all values.
type Negation struct {
	Element Type
}

func NewNegation(element Type) *Negation {
	return &Negation{Element: element}
}

func (n *Negation) typeNode()      {}
func (n *Negation) String() string { return "!" + n.Element.String() }
func (n *Negation) Equals(other Type) bool {
	o, ok := other.(*Negation)
	return ok && n.Element.Equals(o.Element)
}

// sameTypeSet reports whether a and b contain the same types up to
// Equals, regardless of order or duplicates — mirrors the teacher's
// UnionType.Equals matching loop in pkg/types/union.go.
func sameTypeSet(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	matchedB := make([]bool, len(b))
	for _, ta := range a {
		found := false
		for j, tb := range b {
			if !matchedB[j] && ta.Equals(tb) {
				matchedB[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
