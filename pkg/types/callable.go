package types

import (
	"fmt"
	"strings"
)

// Function is Function(params, returns) from spec §3.1: a pure callable
// with no captured or declared lifetimes.
type Function struct {
	Params  []Type
	Returns []Type
}

func (f *Function) typeNode() {}
func (f *Function) String() string { return signatureString("function", f.Params, f.Returns, nil, nil) }
func (f *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	return ok && typeSliceEquals(f.Params, o.Params) && typeSliceEquals(f.Returns, o.Returns)
}

// Method is Method(params, returns, captured-lifetimes, declared-lifetimes)
// from spec §3.1: an impure callable that may reference lifetimes (spec
// §4.4.4 overload resolution with lifetimes).
type Method struct {
	Params            []Type
	Returns           []Type
	CapturedLifetimes []Name
	DeclaredLifetimes []Name
}

func (m *Method) typeNode() {}
func (m *Method) String() string {
	return signatureString("method", m.Params, m.Returns, m.CapturedLifetimes, m.DeclaredLifetimes)
}
func (m *Method) Equals(other Type) bool {
	o, ok := other.(*Method)
	if !ok {
		return false
	}
	return typeSliceEquals(m.Params, o.Params) &&
		typeSliceEquals(m.Returns, o.Returns) &&
		nameSliceEquals(m.CapturedLifetimes, o.CapturedLifetimes) &&
		nameSliceEquals(m.DeclaredLifetimes, o.DeclaredLifetimes)
}

// Property is Property(params, returns) from spec §3.1: a callable
// accessed via property syntax rather than direct invocation syntax.
type Property struct {
	Params  []Type
	Returns []Type
}

func (p *Property) typeNode() {}
func (p *Property) String() string { return signatureString("property", p.Params, p.Returns, nil, nil) }
func (p *Property) Equals(other Type) bool {
	o, ok := other.(*Property)
	return ok && typeSliceEquals(p.Params, o.Params) && typeSliceEquals(p.Returns, o.Returns)
}

func signatureString(kind string, params, returns []Type, captured, declared []Name) string {
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = p.String()
	}
	rs := make([]string, len(returns))
	for i, r := range returns {
		rs[i] = r.String()
	}
	lt := ""
	if len(declared) > 0 {
		names := make([]string, len(declared))
		for i, n := range declared {
			names[i] = string(n)
		}
		lt = "<" + strings.Join(names, ",") + ">"
	}
	return fmt.Sprintf("%s%s(%s) -> (%s)", kind, lt, strings.Join(ps, ", "), strings.Join(rs, ", "))
}

func typeSliceEquals(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func nameSliceEquals(a, b []Name) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
