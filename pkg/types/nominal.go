package types

// Nominal is Nominal(qualified-name) from spec §3.1: a reference to a
// declared type constrained by zero or more invariant expressions. The
// invariants themselves are AST-level conditions checked by the flow typer
// (spec §4.4, Type declaration); the type term only carries the name.
type Nominal struct {
	QualifiedName Name
}

func (n *Nominal) typeNode()        {}
func (n *Nominal) String() string   { return string(n.QualifiedName) }
func (n *Nominal) Equals(other Type) bool {
	o, ok := other.(*Nominal)
	return ok && n.QualifiedName == o.QualifiedName
}

// NewNominal builds a reference to a nominal declaration, normalizing the
// qualified name so lookups by differently-composed Unicode encodings of
// the same identifier agree.
func NewNominal(name Name) *Nominal {
	return &Nominal{QualifiedName: NormalizeName(string(name))}
}
