// Package resolve defines the two "consumed" collaborator interfaces
// named in spec §6.1 (name resolution and lifetime relation) along with a
// simple in-memory reference implementation of each, used by tests and
// the CLI. A real driver backing multi-file name resolution and nominal
// declaration loading is explicitly out of the core's scope (spec §1); this
// package only specifies and exercises the contract the core depends on.
package resolve

import (
	"fmt"

	"typecheck/pkg/ast"
	"typecheck/pkg/types"
)

// DeclKind distinguishes the three declaration kinds resolveExactly and
// resolveAll can be asked for (spec §6.1).
type DeclKind int

const (
	KindType DeclKind = iota
	KindCallable
	KindStaticVar
)

// Declaration is the resolver's return value: a name bound to one of the
// three declaration shapes pkg/ast defines.
type Declaration interface {
	DeclName() types.Name
	DeclKind() DeclKind
}

// TypeDeclaration wraps an *ast.TypeDecl as a resolver Declaration.
type TypeDeclaration struct{ Decl *ast.TypeDecl }

func (d TypeDeclaration) DeclName() types.Name { return d.Decl.Name }
func (d TypeDeclaration) DeclKind() DeclKind   { return KindType }

// CallableDeclaration wraps an *ast.CallableDecl as a resolver Declaration.
// Multiple CallableDeclarations may share a name (overloading, spec
// §4.4.4): resolveAll returns every one of them.
type CallableDeclaration struct{ Decl *ast.CallableDecl }

func (d CallableDeclaration) DeclName() types.Name { return d.Decl.Name }
func (d CallableDeclaration) DeclKind() DeclKind   { return KindCallable }

// StaticVarDeclaration wraps an *ast.StaticVarDecl as a resolver Declaration.
type StaticVarDeclaration struct{ Decl *ast.StaticVarDecl }

func (d StaticVarDeclaration) DeclName() types.Name { return d.Decl.Name }
func (d StaticVarDeclaration) DeclKind() DeclKind   { return KindStaticVar }

// NameResolver is the "name resolver" collaborator (spec §6.1):
// resolveExactly returns a unique declaration or fails; resolveAll
// returns every candidate sharing a name (used for overload resolution,
// spec §4.4.4). Defined independently of pkg/dnf.NominalResolver and
// pkg/decision.LifetimeRelation so those packages never import this one;
// *MapResolver satisfies pkg/dnf.NominalResolver structurally alongside
// this interface, and StaticLifetimes satisfies the lifetime relation.
type NameResolver interface {
	ResolveExactly(name types.Name, kind DeclKind) (Declaration, error)
	ResolveAll(name types.Name, kind DeclKind) ([]Declaration, error)
}

// LifetimeRelation is the "lifetime relation" collaborator (spec §6.1):
// isWithin(inner, outer) must be reflexive, transitive, and true whenever
// outer is the universal lifetime Star.
type LifetimeRelation interface {
	IsWithin(inner, outer types.Name) bool
}

// MapResolver is a static, fully-loaded NameResolver backed by in-memory
// slices — adequate for a single-invocation checker run over a closed set
// of already-parsed source units (spec §5's "no module system"). It holds
// no lifetime information; lifetime nesting comes from a LifetimeRelation
// such as StaticLifetimes.
type MapResolver struct {
	types     map[types.Name]*ast.TypeDecl
	callables map[types.Name][]*ast.CallableDecl
	statics   map[types.Name]*ast.StaticVarDecl
}

// NewMapResolver builds a resolver from a flat declaration list, as the
// driver would after loading every source unit (spec §6.2's `check`
// entry point walks "every declaration in every file").
func NewMapResolver(decls []ast.Declaration) *MapResolver {
	r := &MapResolver{
		types:     make(map[types.Name]*ast.TypeDecl),
		callables: make(map[types.Name][]*ast.CallableDecl),
		statics:   make(map[types.Name]*ast.StaticVarDecl),
	}
	for _, d := range decls {
		switch v := d.(type) {
		case *ast.TypeDecl:
			r.types[types.NormalizeName(string(v.Name))] = v
		case *ast.CallableDecl:
			name := types.NormalizeName(string(v.Name))
			r.callables[name] = append(r.callables[name], v)
		case *ast.StaticVarDecl:
			r.statics[types.NormalizeName(string(v.Name))] = v
		}
	}
	return r
}

func (r *MapResolver) ResolveExactly(name types.Name, kind DeclKind) (Declaration, error) {
	name = types.NormalizeName(string(name))
	switch kind {
	case KindType:
		if d, ok := r.types[name]; ok {
			return TypeDeclaration{Decl: d}, nil
		}
	case KindStaticVar:
		if d, ok := r.statics[name]; ok {
			return StaticVarDeclaration{Decl: d}, nil
		}
	case KindCallable:
		if cs := r.callables[name]; len(cs) == 1 {
			return CallableDeclaration{Decl: cs[0]}, nil
		} else if len(cs) > 1 {
			return nil, fmt.Errorf("resolve: %q has %d overloads, use ResolveAll", name, len(cs))
		}
	}
	return nil, fmt.Errorf("resolve: cannot resolve %q", name)
}

func (r *MapResolver) ResolveAll(name types.Name, kind DeclKind) ([]Declaration, error) {
	name = types.NormalizeName(string(name))
	switch kind {
	case KindType:
		if d, ok := r.types[name]; ok {
			return []Declaration{TypeDeclaration{Decl: d}}, nil
		}
	case KindStaticVar:
		if d, ok := r.statics[name]; ok {
			return []Declaration{StaticVarDeclaration{Decl: d}}, nil
		}
	case KindCallable:
		cs := r.callables[name]
		out := make([]Declaration, len(cs))
		for i, c := range cs {
			out[i] = CallableDeclaration{Decl: c}
		}
		return out, nil
	}
	return nil, fmt.Errorf("resolve: cannot resolve %q", name)
}

// ResolveNominalBody satisfies pkg/dnf.NominalResolver: a nominal type's
// body is its TypeDecl's Body (spec §4.1).
func (r *MapResolver) ResolveNominalBody(name types.Name) (types.Type, error) {
	d, ok := r.types[types.NormalizeName(string(name))]
	if !ok {
		return nil, fmt.Errorf("resolve: no type declaration named %q", name)
	}
	return d.Body, nil
}

// StaticLifetimes is a LifetimeRelation over a fixed nesting map built
// once up front, matching the "no module system" closed-world assumption
// (spec §5): nestings are registered with Declare before checking. The
// checker records named-block lifetimes in its own TypingEnvironment, not
// here.
type StaticLifetimes struct {
	// within[inner] = outer, i.e. inner is directly nested in outer.
	within map[types.Name]types.Name
}

// NewStaticLifetimes builds a relation where every Name is, at minimum,
// within Star.
func NewStaticLifetimes() *StaticLifetimes {
	return &StaticLifetimes{within: make(map[types.Name]types.Name)}
}

// Declare registers that inner nests directly inside outer.
func (l *StaticLifetimes) Declare(inner, outer types.Name) {
	l.within[inner] = outer
}

// IsWithin walks the direct-nesting chain from inner looking for outer,
// satisfying reflexivity and isWithin(x, Star) directly, transitivity by
// the walk (spec §6.1).
func (l *StaticLifetimes) IsWithin(inner, outer types.Name) bool {
	if inner == outer || outer == types.Star {
		return true
	}
	seen := map[types.Name]bool{inner: true}
	cur := inner
	for {
		next, ok := l.within[cur]
		if !ok {
			return false
		}
		if next == outer {
			return true
		}
		if seen[next] {
			return false // defensive: a cycle means malformed input, not a match
		}
		seen[next] = true
		cur = next
	}
}
