package types

import "strings"

// SemanticType is the extended type language used by the flow typer and
// decision engine (spec §3.2): first-class union, intersection, and
// difference nodes combining semantic operands, plus a Leaf wrapping a
// syntactic Type. Conversion Type -> SemanticType is injective; the
// reverse direction is partial and goes through extraction (pkg/extract).
type SemanticType interface {
	typeNode()
	semanticNode()
	String() string
	Equals(other SemanticType) bool
}

// Leaf wraps a syntactic Type as a SemanticType.
type Leaf struct {
	Syntactic Type
}

func (l *Leaf) typeNode()     {}
func (l *Leaf) semanticNode() {}
func (l *Leaf) String() string { return l.Syntactic.String() }
func (l *Leaf) Equals(other SemanticType) bool {
	o, ok := other.(*Leaf)
	return ok && l.Syntactic.Equals(o.Syntactic)
}

// SemUnion is a first-class semantic union.
type SemUnion struct {
	Bounds []SemanticType
}

func (u *SemUnion) typeNode()     {}
func (u *SemUnion) semanticNode() {}
func (u *SemUnion) String() string { return joinSemantic(u.Bounds, " | ") }
func (u *SemUnion) Equals(other SemanticType) bool {
	o, ok := other.(*SemUnion)
	return ok && sameSemanticSet(u.Bounds, o.Bounds)
}

// SemIntersection is a first-class semantic intersection.
type SemIntersection struct {
	Bounds []SemanticType
}

func (i *SemIntersection) typeNode()     {}
func (i *SemIntersection) semanticNode() {}
func (i *SemIntersection) String() string { return joinSemantic(i.Bounds, " & ") }
func (i *SemIntersection) Equals(other SemanticType) bool {
	o, ok := other.(*SemIntersection)
	return ok && sameSemanticSet(i.Bounds, o.Bounds)
}

// SemDifference is a first-class semantic difference.
type SemDifference struct {
	Lhs, Rhs SemanticType
}

func (d *SemDifference) typeNode()     {}
func (d *SemDifference) semanticNode() {}
func (d *SemDifference) String() string { return d.Lhs.String() + " \\ " + d.Rhs.String() }
func (d *SemDifference) Equals(other SemanticType) bool {
	o, ok := other.(*SemDifference)
	return ok && d.Lhs.Equals(o.Lhs) && d.Rhs.Equals(o.Rhs)
}

// ToSemantic injects a syntactic Type into the semantic universe (spec
// §3.2: "Conversion Type -> SemanticType is injective"). Syntactic
// connectives are translated to their first-class semantic counterparts
// so the decision engine never has to special-case Leaf-wrapped unions.
func ToSemantic(t Type) SemanticType {
	switch v := t.(type) {
	case *Union:
		bounds := make([]SemanticType, len(v.Bounds))
		for i, b := range v.Bounds {
			bounds[i] = ToSemantic(b)
		}
		return &SemUnion{Bounds: bounds}
	case *Intersection:
		bounds := make([]SemanticType, len(v.Bounds))
		for i, b := range v.Bounds {
			bounds[i] = ToSemantic(b)
		}
		return &SemIntersection{Bounds: bounds}
	case *Difference:
		return &SemDifference{Lhs: ToSemantic(v.Lhs), Rhs: ToSemantic(v.Rhs)}
	case *Negation:
		// ¬a is the difference of Any and a.
		return &SemDifference{Lhs: &Leaf{Syntactic: AnyType}, Rhs: ToSemantic(v.Element)}
	default:
		return &Leaf{Syntactic: t}
	}
}

// NewSemUnion builds a semantic union.
func NewSemUnion(bounds ...SemanticType) SemanticType {
	if len(bounds) == 1 {
		return bounds[0]
	}
	return &SemUnion{Bounds: bounds}
}

// NewSemIntersection builds a semantic intersection.
func NewSemIntersection(bounds ...SemanticType) SemanticType {
	if len(bounds) == 1 {
		return bounds[0]
	}
	return &SemIntersection{Bounds: bounds}
}

// NewSemDifference builds a \ b.
func NewSemDifference(a, b SemanticType) SemanticType {
	return &SemDifference{Lhs: a, Rhs: b}
}

func joinSemantic(ts []SemanticType, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

func sameSemanticSet(a, b []SemanticType) bool {
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
