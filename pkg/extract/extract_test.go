package extract

import (
	"testing"

	"typecheck/pkg/decision"
	"typecheck/pkg/types"
)

type noResolver struct{}

func (noResolver) ResolveNominalBody(name types.Name) (types.Type, error) {
	panic("no nominals in these tests")
}

type flatLifetimes struct{}

func (flatLifetimes) IsWithin(inner, outer types.Name) bool {
	return inner == outer || outer == types.Star
}

func newEngine() *decision.Engine {
	return decision.NewEngine(noResolver{}, flatLifetimes{})
}

func TestExtractArrayNoExtractionForNonArray(t *testing.T) {
	_, ok, err := Extract(types.ToSemantic(types.IntType), Readable, ShapeArray, newEngine())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no extraction for the readable array type of int")
	}
}

func TestExtractArrayReadableUnionsElements(t *testing.T) {
	u := types.NewUnion(types.NewArray(types.IntType), types.NewArray(types.BoolType))
	got, ok, err := Extract(types.ToSemantic(u), Readable, ShapeArray, newEngine())
	if err != nil || !ok {
		t.Fatalf("expected extraction, ok=%v err=%v", ok, err)
	}
	arr := got.(*types.Array)
	want := types.NewUnion(types.IntType, types.BoolType)
	if !arr.Element.Equals(want) {
		t.Errorf("got element %s, want %s", arr.Element, want)
	}
}

func TestExtractRecordReadableScenarioC(t *testing.T) {
	// Scenario C (spec §8): type A is {int f, int g}; type B is {bool f};
	// reading xs.f from A|B should be int|bool (only "f" is common).
	a, _ := types.NewRecord(false, []types.Field{{Name: "f", Type: types.IntType}, {Name: "g", Type: types.IntType}})
	b, _ := types.NewRecord(false, []types.Field{{Name: "f", Type: types.BoolType}})
	union := types.NewUnion(a, b)

	got, ok, err := Extract(types.ToSemantic(union), Readable, ShapeRecord, newEngine())
	if err != nil || !ok {
		t.Fatalf("expected extraction, ok=%v err=%v", ok, err)
	}
	rec := got.(*types.Record)
	ft, found := rec.Field("f")
	if !found {
		t.Fatalf("expected field f in readable projection")
	}
	want := types.NewUnion(types.IntType, types.BoolType)
	if !ft.Equals(want) {
		t.Errorf("field f = %s, want %s", ft, want)
	}
	if _, found := rec.Field("g"); found {
		t.Errorf("field g should not survive: not common to both arms")
	}
}

func TestExtractRecordWriteableIntersectsFields(t *testing.T) {
	a, _ := types.NewRecord(false, []types.Field{{Name: "f", Type: types.NewUnion(types.IntType, types.BoolType)}})
	b, _ := types.NewRecord(false, []types.Field{{Name: "f", Type: types.NewUnion(types.IntType, types.NullType)}})
	union := types.NewUnion(a, b)

	got, ok, err := Extract(types.ToSemantic(union), Writeable, ShapeRecord, newEngine())
	if err != nil || !ok {
		t.Fatalf("expected extraction, ok=%v err=%v", ok, err)
	}
	rec := got.(*types.Record)
	ft, _ := rec.Field("f")
	e := newEngine()
	isInt, err := e.IsSubtypeSyntactic(ft, types.IntType)
	if err != nil || !isInt {
		t.Errorf("expected writeable field type to accept int, got %s (err=%v)", ft, err)
	}
}

func TestRepresentationOfStripsIntersection(t *testing.T) {
	a, _ := types.NewRecord(false, []types.Field{{Name: "f", Type: types.IntType}})
	b, _ := types.NewRecord(true, []types.Field{{Name: "f", Type: types.IntType}})
	inter := types.NewIntersection(a, b)
	got, err := RepresentationOf(types.ToSemantic(inter), newEngine())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, isIntersection := got.(*types.Intersection); isIntersection {
		t.Errorf("representation must not contain an Intersection node, got %s", got)
	}
}
