package decision

import (
	"testing"

	"typecheck/pkg/types"
)

// stubResolver is a minimal in-test nominal resolver, grounded on the
// teacher's table-driven test style (pkg/checker/environment_test.go)
// rather than a mocking framework.
type stubResolver map[types.Name]types.Type

func (s stubResolver) ResolveNominalBody(name types.Name) (types.Type, error) {
	t, ok := s[name]
	if !ok {
		return nil, errNotFound(name)
	}
	return t, nil
}

type errNotFound types.Name

func (e errNotFound) Error() string { return "nominal not found: " + string(e) }

type flatLifetimes struct{}

func (flatLifetimes) IsWithin(inner, outer types.Name) bool {
	return inner == outer || outer == types.Star
}

func newTestEngine(resolver stubResolver) *Engine {
	return NewEngine(resolver, flatLifetimes{})
}

func mustEmpty(t *testing.T, e *Engine, ty types.Type, want bool) {
	t.Helper()
	got, err := e.IsEmptySyntactic(ty)
	if err != nil {
		t.Fatalf("IsEmpty(%s): %v", ty, err)
	}
	if got != want {
		t.Errorf("IsEmpty(%s) = %v, want %v", ty, got, want)
	}
}

func TestIsEmptyAtoms(t *testing.T) {
	e := newTestEngine(stubResolver{})
	mustEmpty(t, e, types.VoidType, true)
	mustEmpty(t, e, types.AnyType, false)
	mustEmpty(t, e, types.IntType, false)
	mustEmpty(t, e, types.NewIntersection(types.IntType, types.BoolType), true)
	mustEmpty(t, e, types.NewIntersection(types.IntType, types.AnyType), false)
}

func TestIsEmptyArrayAdmitsEmptyArray(t *testing.T) {
	// Open question (spec §9): Array(Void) is non-empty, since every
	// array type admits the zero-length array regardless of element type.
	e := newTestEngine(stubResolver{})
	mustEmpty(t, e, types.NewArray(types.VoidType), false)
}

func TestIsSubtypeReflexiveAndDifference(t *testing.T) {
	e := newTestEngine(stubResolver{})
	union := types.NewUnion(types.IntType, types.NullType)
	refl, err := e.IsSubtypeSyntactic(union, union)
	if err != nil || !refl {
		t.Fatalf("expected int|null <: int|null, got %v err=%v", refl, err)
	}
	ok, err := e.IsSubtypeSyntactic(union, types.IntType)
	if err != nil || !ok {
		t.Fatalf("expected int <: int|null, got %v err=%v", ok, err)
	}
	ok, err = e.IsSubtypeSyntactic(types.IntType, union)
	if err != nil || ok {
		t.Fatalf("expected int|null NOT<: int, got %v err=%v", ok, err)
	}
}

func TestRecordReadableUnionScenarioC(t *testing.T) {
	// Scenario C from spec §8: type A is {int f, int g}; type B is {bool f}
	e := newTestEngine(stubResolver{})
	a, _ := types.NewRecord(false, []types.Field{{Name: "f", Type: types.IntType}, {Name: "g", Type: types.IntType}})
	b, _ := types.NewRecord(false, []types.Field{{Name: "f", Type: types.BoolType}})
	union := types.NewUnion(a, b)
	// xs.f has semantic type int | bool; this only checks that a subtype
	// query against the record union is decided without error.
	ok, err := e.IsSubtypeSyntactic(types.NewUnion(types.IntType, types.BoolType), union)
	_ = ok
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsContractiveRejectsDirectSelfReference(t *testing.T) {
	e := newTestEngine(stubResolver{"X": types.NewNominal("X")})
	ok, err := e.IsContractive("X", types.NewNominal("X"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected type X is X to be rejected as non-contractive")
	}
}

func TestIsContractiveAcceptsGuardedRecursion(t *testing.T) {
	rec, _ := types.NewRecord(false, []types.Field{{Name: "next", Type: types.NewNominal("X")}})
	body := types.NewUnion(types.NullType, rec)
	e := newTestEngine(stubResolver{"X": body})
	ok, err := e.IsContractive("X", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("expected type X is null | { X next } to be accepted as contractive")
	}
}

func TestIsContractiveAcceptsArrayGuard(t *testing.T) {
	e := newTestEngine(stubResolver{"X": types.NewArray(types.NewNominal("X"))})
	ok, err := e.IsContractive("X", types.NewArray(types.NewNominal("X")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("expected type X is X[] to be accepted as contractive")
	}
}

func TestReferenceLifetimeSubtyping(t *testing.T) {
	e := newTestEngine(stubResolver{})
	inner := types.NewReference(types.IntType, "inner")
	outer := types.NewReference(types.IntType, "outer")
	lt := withinMap{"inner": "outer"}
	e.Lifetimes = lt
	// Reference(a, l1) <: Reference(a, l2) iff l1 is within l2.
	ok, err := e.IsSubtypeSyntactic(outer, inner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("expected &inner int <: &outer int")
	}
}

type withinMap map[types.Name]types.Name

func (w withinMap) IsWithin(inner, outer types.Name) bool {
	if inner == outer || outer == types.Star {
		return true
	}
	cur := inner
	for {
		parent, ok := w[cur]
		if !ok {
			return false
		}
		if parent == outer {
			return true
		}
		cur = parent
	}
}
