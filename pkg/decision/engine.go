// Package decision implements the Decision Engine (C3): isEmpty, isSubtype
// and isContractive over semantic types (spec §4.2). The engine is fully
// determined by emptiness: isSubtype(lhs, rhs) ≡ isEmpty(rhs \ lhs).
package decision

import (
	"typecheck/pkg/dnf"
	"typecheck/pkg/types"
)

// LifetimeRelation decides lifetime nesting (spec §6.1). Defined narrowly
// here (consumer-defined interface) so this package does not depend on
// pkg/resolve; pkg/resolve's LifetimeRelation satisfies it structurally.
type LifetimeRelation interface {
	IsWithin(inner, outer types.Name) bool
}

// Engine is a pure function of its inputs and the resolver (spec §5): no
// mutable state is kept across calls beyond what a single normalization
// allocates internally.
type Engine struct {
	Resolver  dnf.NominalResolver
	Lifetimes LifetimeRelation
	// NormalizationDepthCap bounds nominal-unfolding depth during DNF
	// normalization (spec §5's open question; 0, the zero value, means
	// unbounded). NewEngineWithDepthCap sets it; NewEngine, which
	// checker.New and the CLI use, leaves it 0.
	NormalizationDepthCap int
}

// NewEngine builds a Decision Engine over the given collaborators, with
// unbounded normalization depth; use NewEngineWithDepthCap to bound it.
func NewEngine(resolver dnf.NominalResolver, lifetimes LifetimeRelation) *Engine {
	return &Engine{Resolver: resolver, Lifetimes: lifetimes}
}

// NewEngineWithDepthCap builds a Decision Engine that aborts normalization
// of any type whose nominal-unfolding chain exceeds depthCap (spec §5,
// §9's "normalizationDepthCap" open question).
func NewEngineWithDepthCap(resolver dnf.NominalResolver, lifetimes LifetimeRelation, depthCap int) *Engine {
	return &Engine{Resolver: resolver, Lifetimes: lifetimes, NormalizationDepthCap: depthCap}
}

// IsEmpty reports whether no value inhabits t (spec §4.2). Normalizes to
// DNF; the type is empty iff every conjunct is empty.
func (e *Engine) IsEmpty(t types.SemanticType) (bool, error) {
	d, err := dnf.ToDNFBounded(t, e.Resolver, e.NormalizationDepthCap)
	if err != nil {
		return false, err
	}
	if len(d) == 0 {
		return true, nil
	}
	for _, c := range d {
		empty, err := e.conjunctEmpty(c)
		if err != nil {
			return false, err
		}
		if !empty {
			return false, nil
		}
	}
	return true, nil
}

// IsSubtype reports whether every value of rhs is a value of lhs (the
// "lhs :> rhs" convention, spec §4.2). This single identity drives every
// subtype decision in the checker.
func (e *Engine) IsSubtype(lhs, rhs types.SemanticType) (bool, error) {
	return e.IsEmpty(types.NewSemDifference(rhs, lhs))
}

// IsSubtypeSyntactic is the Type-level convenience wrapper used pervasively
// by the flow typer, which works in terms of syntactic Type annotations.
func (e *Engine) IsSubtypeSyntactic(lhs, rhs types.Type) (bool, error) {
	return e.IsSubtype(types.ToSemantic(lhs), types.ToSemantic(rhs))
}

// IsEmptySyntactic is the Type-level convenience wrapper for IsEmpty.
func (e *Engine) IsEmptySyntactic(t types.Type) (bool, error) {
	return e.IsEmpty(types.ToSemantic(t))
}
