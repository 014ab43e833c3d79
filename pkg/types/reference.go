package types

import "fmt"

// Reference is Reference(element: Type, lifetime: Option<Name>) from spec
// §3.1. A zero-value Lifetime means "no explicit lifetime was written";
// the decision engine and flow typer substitute This for it (spec §3.2).
type Reference struct {
	Element  Type
	Lifetime Name // "" means unspecified; resolved to This where needed.
}

func (r *Reference) typeNode() {}
func (r *Reference) String() string {
	lt := r.Lifetime
	if lt == "" {
		lt = This
	}
	return fmt.Sprintf("&%s %s", lt, r.Element.String())
}
func (r *Reference) Equals(other Type) bool {
	o, ok := other.(*Reference)
	if !ok {
		return false
	}
	return r.EffectiveLifetime() == o.EffectiveLifetime() && r.Element.Equals(o.Element)
}

// EffectiveLifetime returns the lifetime, substituting This when the
// reference carries no explicit lifetime.
func (r *Reference) EffectiveLifetime() Name {
	if r.Lifetime == "" {
		return This
	}
	return r.Lifetime
}

// NewReference builds a Reference(element, lifetime).
func NewReference(element Type, lifetime Name) *Reference {
	return &Reference{Element: element, Lifetime: lifetime}
}
