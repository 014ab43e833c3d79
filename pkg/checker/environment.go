// Package checker implements the Flow Typer (C5): it threads a
// TypingEnvironment through a declaration body's statements, conditions,
// and expressions, consulting the Decision Engine (C3) and Type
// Extractors (C4) along the way, and reports diagnostics through the
// Reporter collaborator (spec §4.4).
package checker

import (
	"typecheck/pkg/ast"
	"typecheck/pkg/resolve"
	"typecheck/pkg/types"

	"github.com/google/uuid"
)

// TypingEnvironment maps declared variables, by declaration-site identity,
// to a refined semantic type, and lifetime identifiers to their lexically
// enclosing lifetime (spec §3.4). It is a persistent structure: every
// mutator returns a new environment that shares unchanged entries with
// its parent rather than mutating in place.
type TypingEnvironment struct {
	isBottom bool
	bindings map[uuid.UUID]types.SemanticType
	within   map[types.Name]types.Name
}

// NewEnvironment returns the empty environment a declaration body check
// starts from (spec §3.4's "created empty at the start of a function body
// check").
func NewEnvironment() *TypingEnvironment {
	return &TypingEnvironment{bindings: map[uuid.UUID]types.SemanticType{}, within: map[types.Name]types.Name{}}
}

// Bottom is the distinguished environment signalling an unreachable
// program point; it propagates through any join (spec §3.4).
var Bottom = &TypingEnvironment{isBottom: true}

// IsBottom reports whether this is the unreachable-point sentinel.
func (e *TypingEnvironment) IsBottom() bool {
	return e != nil && e.isBottom
}

// Lookup returns a variable's currently refined type, falling back to its
// declared type if it has not yet been refined (spec §3.4: "refined type
// ... at least as specific as the variable's declared type").
func (e *TypingEnvironment) Lookup(b *ast.VarBinding) types.SemanticType {
	if e == nil || e.isBottom {
		return types.ToSemantic(b.DeclaredType)
	}
	if t, ok := e.bindings[b.ID]; ok {
		return t
	}
	return types.ToSemantic(b.DeclaredType)
}

// Refine returns a new environment identical to e except b now maps to t.
func (e *TypingEnvironment) Refine(b *ast.VarBinding, t types.SemanticType) *TypingEnvironment {
	if e.IsBottom() {
		return e
	}
	next := make(map[uuid.UUID]types.SemanticType, len(e.bindings)+1)
	for k, v := range e.bindings {
		next[k] = v
	}
	next[b.ID] = t
	return &TypingEnvironment{bindings: next, within: e.within}
}

// DeclareLifetime returns a new environment that additionally nests inner
// directly within outer (spec §4.4.1's "Named block: extend the 'within'
// relation with a new lifetime").
func (e *TypingEnvironment) DeclareLifetime(inner, outer types.Name) *TypingEnvironment {
	if e.IsBottom() {
		return e
	}
	next := make(map[types.Name]types.Name, len(e.within)+1)
	for k, v := range e.within {
		next[k] = v
	}
	next[inner] = outer
	return &TypingEnvironment{bindings: e.bindings, within: next}
}

// isWithin walks this environment's locally-declared lifetime nestings,
// falling back to base once the local chain runs out (spec §4.4.1).
func (e *TypingEnvironment) isWithin(inner, outer types.Name, base resolve.LifetimeRelation) bool {
	if inner == outer || outer == types.Star {
		return true
	}
	seen := map[types.Name]bool{}
	cur := inner
	for {
		next, ok := e.within[cur]
		if !ok {
			return base.IsWithin(cur, outer)
		}
		if next == outer {
			return true
		}
		if seen[next] {
			return base.IsWithin(cur, outer)
		}
		seen[next] = true
		cur = next
	}
}

// Join keeps only variables refined in both inputs, unioning their
// refined types, and propagates Bottom identities (spec §4.4.5):
// join(e, Bottom) = join(Bottom, e) = e; the within relation is taken
// from whichever input is non-bottom (they must agree when both are).
func Join(a, b *TypingEnvironment) *TypingEnvironment {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	merged := map[uuid.UUID]types.SemanticType{}
	for id, ta := range a.bindings {
		if tb, ok := b.bindings[id]; ok {
			merged[id] = types.NewSemUnion(ta, tb)
		}
	}
	return &TypingEnvironment{bindings: merged, within: a.within}
}
