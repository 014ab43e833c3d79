package resolve

import (
	"testing"

	"typecheck/pkg/ast"
	"typecheck/pkg/source"
	"typecheck/pkg/types"
)

func typeDecl(name types.Name, body types.Type) *ast.TypeDecl {
	return &ast.TypeDecl{Position: source.Zero, Name: name, Body: body}
}

func callableDecl(name types.Name, params []types.Type) *ast.CallableDecl {
	bindings := make([]*ast.VarBinding, len(params))
	for i, p := range params {
		bindings[i] = ast.NewVarBinding(types.Name("p"), p, false, source.Zero)
	}
	return &ast.CallableDecl{Position: source.Zero, Name: name, Params: bindings, Returns: []types.Type{types.VoidType}}
}

func TestMapResolverResolveExactlyType(t *testing.T) {
	rec, err := types.NewRecord(false, []types.Field{{Name: "x", Type: types.IntType}})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	r := NewMapResolver([]ast.Declaration{typeDecl("Point", rec)})
	d, err := r.ResolveExactly("Point", KindType)
	if err != nil {
		t.Fatalf("ResolveExactly: %v", err)
	}
	if d.DeclKind() != KindType || d.DeclName() != "Point" {
		t.Errorf("got %+v", d)
	}
}

func TestMapResolverResolveExactlyMissing(t *testing.T) {
	r := NewMapResolver(nil)
	if _, err := r.ResolveExactly("Nope", KindType); err == nil {
		t.Errorf("expected resolution failure for unknown name")
	}
}

func TestMapResolverOverloadsRequireResolveAll(t *testing.T) {
	r := NewMapResolver([]ast.Declaration{
		callableDecl("at", []types.Type{types.IntType}),
		callableDecl("at", []types.Type{types.NewArray(types.IntType)}),
	})
	if _, err := r.ResolveExactly("at", KindCallable); err == nil {
		t.Errorf("expected ResolveExactly to reject an ambiguous overload set")
	}
	all, err := r.ResolveAll("at", KindCallable)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d overloads, want 2", len(all))
	}
}

func TestMapResolverResolveNominalBody(t *testing.T) {
	r := NewMapResolver([]ast.Declaration{typeDecl("N", types.IntType)})
	body, err := r.ResolveNominalBody("N")
	if err != nil {
		t.Fatalf("ResolveNominalBody: %v", err)
	}
	if !body.Equals(types.IntType) {
		t.Errorf("got %s, want int", body)
	}
}

func TestStaticLifetimesReflexiveAndStar(t *testing.T) {
	l := NewStaticLifetimes()
	if !l.IsWithin("a", "a") {
		t.Errorf("expected reflexivity")
	}
	if !l.IsWithin("a", types.Star) {
		t.Errorf("expected everything within Star")
	}
}

func TestStaticLifetimesTransitivity(t *testing.T) {
	l := NewStaticLifetimes()
	l.Declare("inner", "mid")
	l.Declare("mid", "outer")
	if !l.IsWithin("inner", "outer") {
		t.Errorf("expected transitive nesting inner < mid < outer")
	}
	if l.IsWithin("outer", "inner") {
		t.Errorf("nesting must not be symmetric")
	}
}
