package dnf

import (
	"testing"

	"typecheck/pkg/types"

	"github.com/google/go-cmp/cmp"
)

type noResolver struct{}

func (noResolver) ResolveNominalBody(name types.Name) (types.Type, error) {
	return nil, errNoSuchNominal(name)
}

type errNoSuchNominal types.Name

func (e errNoSuchNominal) Error() string { return "no such nominal: " + string(e) }

func TestToDNFUnionConcatenatesDisjuncts(t *testing.T) {
	u := types.NewUnion(types.IntType, types.BoolType)
	d, err := ToDNF(types.ToSemantic(u), noResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d) != 2 {
		t.Fatalf("expected 2 disjuncts, got %d: %s", len(d), d)
	}
}

func TestToDNFIntersectionIsPairwise(t *testing.T) {
	a := types.NewUnion(types.IntType, types.BoolType)
	b := types.NewUnion(types.IntType, types.NullType)
	i := types.NewSemIntersection(types.ToSemantic(a), types.ToSemantic(b))
	d, err := ToDNF(i, noResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d) != 4 {
		t.Fatalf("expected 4 conjuncts (2x2 pairwise), got %d: %s", len(d), d)
	}
}

// typeComparer diffs types.Type values by their textual form, since the
// atom terms hold unexported fields and are meant to be compared by
// pointer identity or by what they denote, not by struct shape.
var typeComparer = cmp.Comparer(func(a, b types.Type) bool {
	return a.String() == b.String()
})

func TestNegateConjunctDeMorgan(t *testing.T) {
	c := Conjunct{Positives: []types.Type{types.IntType}, Negatives: []types.Type{types.BoolType}}
	neg := negateConjunct(c)
	// ¬(Int \ Bool) = ¬Int | Bool -> two conjuncts: ([],[Int]) and ([Bool],[]).
	want := Disjunct{
		{Negatives: []types.Type{types.IntType}},
		{Positives: []types.Type{types.BoolType}},
	}
	if diff := cmp.Diff(want, neg, typeComparer); diff != "" {
		t.Fatalf("negateConjunct mismatch (-want +got):\n%s", diff)
	}
}

func TestToDNFNominalCycleBreaksToAtom(t *testing.T) {
	resolver := selfResolver{}
	d, err := ToDNF(types.ToSemantic(types.NewNominal("X")), resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d) != 1 || len(d[0].Positives) != 1 {
		t.Fatalf("expected single opaque nominal atom, got %s", d)
	}
}

type selfResolver struct{}

func (selfResolver) ResolveNominalBody(name types.Name) (types.Type, error) {
	return types.NewNominal(name), nil
}

// chainResolver resolves X to Y, Y to Z, Z to an atom: a genuinely
// contractive chain (no name is revisited mid-expansion) that a depth
// cap can still bound.
type chainResolver struct{}

func (chainResolver) ResolveNominalBody(name types.Name) (types.Type, error) {
	switch name {
	case "X":
		return types.NewNominal("Y"), nil
	case "Y":
		return types.NewNominal("Z"), nil
	case "Z":
		return types.IntType, nil
	}
	return nil, errNoSuchNominal(name)
}

func TestToDNFBoundedRespectsDepthCap(t *testing.T) {
	if _, err := ToDNFBounded(types.ToSemantic(types.NewNominal("X")), chainResolver{}, 2); err == nil {
		t.Fatalf("expected depth cap to abort a 3-deep chain at cap 2")
	}
	d, err := ToDNFBounded(types.ToSemantic(types.NewNominal("X")), chainResolver{}, 0)
	if err != nil {
		t.Fatalf("unbounded normalization should succeed: %v", err)
	}
	if diff := cmp.Diff(Disjunct{{Positives: []types.Type{types.IntType}}}, d, typeComparer); diff != "" {
		t.Fatalf("unbounded resolution mismatch (-want +got):\n%s", diff)
	}
}
