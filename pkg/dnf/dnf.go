// Package dnf implements the DNF Normalizer (C2): rewriting any semantic
// type into a disjunction of conjuncts of signed atoms (spec §3.3, §4.1).
package dnf

import (
	"strings"

	"typecheck/pkg/types"
)

// Conjunct is (positives, negatives): semantically (⋂ positives) \ (⋃ negatives).
type Conjunct struct {
	Positives []types.Type
	Negatives []types.Type
}

func (c Conjunct) String() string {
	pos := make([]string, len(c.Positives))
	for i, p := range c.Positives {
		pos[i] = p.String()
	}
	neg := make([]string, len(c.Negatives))
	for i, n := range c.Negatives {
		neg[i] = n.String()
	}
	s := strings.Join(pos, " & ")
	if len(neg) > 0 {
		if s == "" {
			s = "any"
		}
		s += " \\ (" + strings.Join(neg, " | ") + ")"
	}
	return s
}

// Disjunct is an ordered set of Conjuncts; the empty Disjunct denotes the
// empty type.
type Disjunct []Conjunct

func (d Disjunct) String() string {
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, " | ")
}

// atomConjunct builds the singleton disjunct for one positive atom.
func atomConjunct(atom types.Type) Disjunct {
	return Disjunct{{Positives: []types.Type{atom}}}
}

// unionDisjuncts implements "D ∪ D' = disjuncts(D) ++ disjuncts(D')" (spec §3.3).
func unionDisjuncts(ds ...Disjunct) Disjunct {
	var out Disjunct
	for _, d := range ds {
		out = append(out, d...)
	}
	return out
}

// intersectConjuncts concatenates both positive and negative sequences
// (spec §3.3: "conjunct intersection concatenating both positive and
// negative sequences").
func intersectConjuncts(a, b Conjunct) Conjunct {
	pos := make([]types.Type, 0, len(a.Positives)+len(b.Positives))
	pos = append(pos, a.Positives...)
	pos = append(pos, b.Positives...)
	neg := make([]types.Type, 0, len(a.Negatives)+len(b.Negatives))
	neg = append(neg, a.Negatives...)
	neg = append(neg, b.Negatives...)
	return Conjunct{Positives: pos, Negatives: neg}
}

// intersectDisjuncts implements "D ∩ D' = {c ∩ c' | c ∈ D, c' ∈ D'}" (spec §3.3).
func intersectDisjuncts(ds ...Disjunct) Disjunct {
	if len(ds) == 0 {
		return Disjunct{{}}
	}
	out := ds[0]
	for _, d := range ds[1:] {
		var next Disjunct
		for _, c1 := range out {
			for _, c2 := range d {
				next = append(next, intersectConjuncts(c1, c2))
			}
		}
		out = next
	}
	return out
}

// negateConjunct implements De Morgan for one conjunct (spec §3.3):
// "¬C of a conjunct (P, N) = disjunct of |P|+|N| conjuncts: one ([], [p])
// for each p ∈ P, one ([n], []) for each n ∈ N".
func negateConjunct(c Conjunct) Disjunct {
	out := make(Disjunct, 0, len(c.Positives)+len(c.Negatives))
	for _, p := range c.Positives {
		out = append(out, Conjunct{Negatives: []types.Type{p}})
	}
	for _, n := range c.Negatives {
		out = append(out, Conjunct{Positives: []types.Type{n}})
	}
	if len(out) == 0 {
		// ¬(empty conjunct) = ¬Any = empty disjunction (no conjuncts at all
		// denotes the empty type, represented here as a disjunct with one
		// conjunct that is itself unsatisfiable: Void positive with nothing
		// negative would be wrong, so use an explicitly empty Disjunct).
		return Disjunct{}
	}
	return out
}

// negateDisjunct implements "¬D = intersection of conjunct-negations" (spec §3.3).
func negateDisjunct(d Disjunct) Disjunct {
	// Start from the universal conjunct (⋂ of nothing = Any, \ nothing).
	acc := Disjunct{{}}
	for _, c := range d {
		acc = intersectDisjuncts(acc, negateConjunct(c))
	}
	return acc
}
