package dnf

import (
	"fmt"

	"typecheck/pkg/types"
)

// NominalResolver resolves a nominal type's body, the single external
// capability toDNF needs (spec §4.1: "resolve N to its body via the
// external resolver"). Defined narrowly here so this package does not
// depend on pkg/resolve's richer Declaration model; any resolver exposing
// this method (including pkg/resolve's NameResolver) satisfies it.
type NominalResolver interface {
	ResolveNominalBody(name types.Name) (types.Type, error)
}

// ToDNF normalizes a semantic type into DNF (spec §4.1). Total on
// well-formed types, deterministic. A nominal name resolution failure is a
// fatal internal condition (spec §4.1 "Failure"), surfaced as an error.
func ToDNF(t types.SemanticType, resolver NominalResolver) (Disjunct, error) {
	return ToDNFBounded(t, resolver, 0)
}

// ToDNFBounded is ToDNF with an additional cap on how many nominal
// unfoldings may occur along a single expansion chain before giving up
// (spec §5's `normalizationDepthCap` open question; 0 means unbounded,
// the default). Without a cap a chain is still finite: compound types are
// atoms here and are not entered, and the cycle guard below unfolds each
// name at most once per chain. The cap bounds how long a chain of
// nominals naming other nominals may grow.
func ToDNFBounded(t types.SemanticType, resolver NominalResolver, depthCap int) (Disjunct, error) {
	return toDNF(t, resolver, map[types.Name]bool{}, 0, depthCap)
}

func toDNF(t types.SemanticType, resolver NominalResolver, expanding map[types.Name]bool, depth, depthCap int) (Disjunct, error) {
	switch v := t.(type) {
	case *types.Leaf:
		return toDNFSyntactic(v.Syntactic, resolver, expanding, depth, depthCap)
	case *types.SemUnion:
		var parts []Disjunct
		for _, b := range v.Bounds {
			d, err := toDNF(b, resolver, expanding, depth, depthCap)
			if err != nil {
				return nil, err
			}
			parts = append(parts, d)
		}
		return unionDisjuncts(parts...), nil
	case *types.SemIntersection:
		var parts []Disjunct
		for _, b := range v.Bounds {
			d, err := toDNF(b, resolver, expanding, depth, depthCap)
			if err != nil {
				return nil, err
			}
			parts = append(parts, d)
		}
		return intersectDisjuncts(parts...), nil
	case *types.SemDifference:
		lhs, err := toDNF(v.Lhs, resolver, expanding, depth, depthCap)
		if err != nil {
			return nil, err
		}
		rhs, err := toDNF(v.Rhs, resolver, expanding, depth, depthCap)
		if err != nil {
			return nil, err
		}
		return intersectDisjuncts(lhs, negateDisjunct(rhs)), nil
	default:
		return nil, fmt.Errorf("dnf: unrecognized SemanticType %T", t)
	}
}

// toDNFSyntactic handles the syntactic-type cases directly reachable from
// a Leaf: atoms and compounds are atoms for DNF purposes (spec §4.1:
// "compound arrays/records/references/callables: treated as atoms"); the
// remaining syntactic connectives and Nominal recurse.
func toDNFSyntactic(t types.Type, resolver NominalResolver, expanding map[types.Name]bool, depth, depthCap int) (Disjunct, error) {
	switch v := t.(type) {
	case *types.Union:
		return toDNF(types.ToSemantic(v), resolver, expanding, depth, depthCap)
	case *types.Intersection:
		return toDNF(types.ToSemantic(v), resolver, expanding, depth, depthCap)
	case *types.Difference:
		return toDNF(types.ToSemantic(v), resolver, expanding, depth, depthCap)
	case *types.Negation:
		return toDNF(types.ToSemantic(v), resolver, expanding, depth, depthCap)
	case *types.Nominal:
		if expanding[v.QualifiedName] {
			// A nominal revisited mid-expansion without passing through a
			// constructor is non-contractive; isContractive (C3) is
			// responsible for rejecting such declarations. toDNF stays
			// total by treating the revisit as an opaque atom rather than
			// looping forever (spec §4.1: "substitute a fresh tag so that
			// the second visit returns the already-cached disjunct").
			return atomConjunct(v), nil
		}
		if depthCap > 0 && depth >= depthCap {
			return nil, fmt.Errorf("dnf: normalization of %q exceeded depth cap %d", v.QualifiedName, depthCap)
		}
		body, err := resolver.ResolveNominalBody(v.QualifiedName)
		if err != nil {
			return nil, fmt.Errorf("dnf: resolving nominal %q: %w", v.QualifiedName, err)
		}
		nested := make(map[types.Name]bool, len(expanding)+1)
		for k := range expanding {
			nested[k] = true
		}
		nested[v.QualifiedName] = true
		return toDNFSyntactic(body, resolver, nested, depth+1, depthCap)
	default:
		// Atom or compound (Array/Reference/Record/Function/Method/Property).
		return atomConjunct(v), nil
	}
}
