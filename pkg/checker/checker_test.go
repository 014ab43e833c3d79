package checker

import (
	"testing"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/dnf"
	"typecheck/pkg/resolve"
	"typecheck/pkg/source"
	"typecheck/pkg/types"
)

func newChecker(decls []ast.Declaration) (*Checker, *cerrors.CollectingReporter) {
	r := resolve.NewMapResolver(decls)
	lifetimes := resolve.NewStaticLifetimes()
	reporter := cerrors.NewCollectingReporter()
	var nominal dnf.NominalResolver = r
	c := New(r, nominal, lifetimes, reporter, DefaultConfig)
	return c, reporter
}

func variable(b *ast.VarBinding) *ast.VariableExpr {
	return &ast.VariableExpr{Binding: b}
}

func constant(lit interface{}, t types.Type) *ast.ConstantExpr {
	return &ast.ConstantExpr{Literal: lit, Type: t}
}

func hasKind(errs []cerrors.CheckerError, kind cerrors.Kind) bool {
	for _, e := range errs {
		if e.Kind() == kind {
			return true
		}
	}
	return false
}

// Scenario A: a positive `is` test narrows a union-typed parameter so
// that, within the Then branch, a cast to the narrowed type raises no
// subtype error.
func TestFlowRefinementNarrowsUnion(t *testing.T) {
	x := ast.NewVarBinding("x", types.NewUnion(types.IntType, types.NullType), false, source.Zero)
	body := &ast.Block{Stmts: []ast.Statement{
		&ast.IfStmt{
			Cond: &ast.IsExpr{Operand: variable(x), Target: types.IntType},
			Then: &ast.Block{Stmts: []ast.Statement{
				&ast.ExpressionStmt{Expr: &ast.CastExpr{Operand: variable(x), Target: types.IntType}},
			}},
		},
	}}
	fn := &ast.CallableDecl{Name: "f", Params: []*ast.VarBinding{x}, Returns: []types.Type{types.VoidType}, Body: body}

	c, r := newChecker([]ast.Declaration{fn})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{fn}}})

	if r.HasErrors() {
		t.Errorf("unexpected errors: %v", r.Errors)
	}
}

// Scenario B: testing a variable against a type disjoint from its static
// type can never hold, diagnosed as incomparable operands.
func TestImpossibleTestIsDiagnosed(t *testing.T) {
	x := ast.NewVarBinding("x", types.IntType, false, source.Zero)
	body := &ast.Block{Stmts: []ast.Statement{
		&ast.IfStmt{
			Cond: &ast.IsExpr{Operand: variable(x), Target: types.BoolType},
			Then: &ast.Block{},
		},
	}}
	fn := &ast.CallableDecl{Name: "f", Params: []*ast.VarBinding{x}, Returns: []types.Type{types.VoidType}, Body: body}

	c, r := newChecker([]ast.Declaration{fn})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{fn}}})

	if !hasKind(r.Errors, cerrors.KindIncomparableOperands) {
		t.Errorf("expected INCOMPARABLE_OPERANDS, got %v", r.Errors)
	}
}

// A test against a strict supertype of the operand's static type always
// holds, diagnosed as an always-taken branch.
func TestAlwaysTrueTestIsDiagnosed(t *testing.T) {
	x := ast.NewVarBinding("x", types.IntType, false, source.Zero)
	body := &ast.Block{Stmts: []ast.Statement{
		&ast.IfStmt{
			Cond: &ast.IsExpr{Operand: variable(x), Target: types.NewUnion(types.IntType, types.NullType)},
			Then: &ast.Block{},
		},
	}}
	fn := &ast.CallableDecl{Name: "f", Params: []*ast.VarBinding{x}, Returns: []types.Type{types.VoidType}, Body: body}

	c, r := newChecker([]ast.Declaration{fn})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{fn}}})

	if !hasKind(r.Errors, cerrors.KindBranchAlwaysTaken) {
		t.Errorf("expected BRANCH_ALWAYS_TAKEN, got %v", r.Errors)
	}
}

// Scenario C: reading a field through a union of two records with that
// field present in both yields the union of its types, readable without
// error.
func TestRecordReadableUnion(t *testing.T) {
	recA, _ := types.NewRecord(false, []types.Field{{Name: "tag", Type: types.IntType}})
	recB, _ := types.NewRecord(false, []types.Field{{Name: "tag", Type: types.BoolType}})
	x := ast.NewVarBinding("x", types.NewUnion(recA, recB), false, source.Zero)
	body := &ast.Block{Stmts: []ast.Statement{
		&ast.ExpressionStmt{Expr: &ast.RecordAccessExpr{Record: variable(x), Field: "tag"}},
	}}
	fn := &ast.CallableDecl{Name: "f", Params: []*ast.VarBinding{x}, Returns: []types.Type{types.VoidType}, Body: body}

	c, r := newChecker([]ast.Declaration{fn})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{fn}}})

	if r.HasErrors() {
		t.Errorf("unexpected errors: %v", r.Errors)
	}
}

// Scenario D: two overloads differing by a disjoint parameter type; the
// call resolves uniquely to the applicable one.
func TestOverloadResolvesBySubtype(t *testing.T) {
	intParam := ast.NewVarBinding("v", types.IntType, false, source.Zero)
	boolParam := ast.NewVarBinding("v", types.BoolType, false, source.Zero)
	idInt := &ast.CallableDecl{Name: "id", Params: []*ast.VarBinding{intParam}, Returns: []types.Type{types.IntType}, Body: &ast.Block{}}
	idBool := &ast.CallableDecl{Name: "id", Params: []*ast.VarBinding{boolParam}, Returns: []types.Type{types.BoolType}, Body: &ast.Block{}}

	call := &ast.DirectInvocationExpr{Callee: "id", Args: []ast.Expression{constant(0, types.IntType)}}
	caller := &ast.CallableDecl{Name: "caller", Returns: []types.Type{types.VoidType}, Body: &ast.Block{
		Stmts: []ast.Statement{&ast.ExpressionStmt{Expr: call}},
	}}

	c, r := newChecker([]ast.Declaration{idInt, idBool, caller})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{idInt, idBool, caller}}})

	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	if call.Resolved == nil {
		t.Fatalf("expected a resolved signature")
	}
	if !call.Resolved.Equals(idInt.Signature()) {
		t.Errorf("resolved to %s, want the int overload", call.Resolved)
	}
}

// Scenario E: two overloads whose parameter types are both applicable and
// incomparable is an ambiguous call.
func TestOverloadAmbiguousWhenIncomparable(t *testing.T) {
	p1 := ast.NewVarBinding("v", types.NewUnion(types.IntType, types.NullType), false, source.Zero)
	p2 := ast.NewVarBinding("v", types.NewUnion(types.IntType, types.BoolType), false, source.Zero)
	h1 := &ast.CallableDecl{Name: "h", Params: []*ast.VarBinding{p1}, Returns: []types.Type{types.IntType}, Body: &ast.Block{}}
	h2 := &ast.CallableDecl{Name: "h", Params: []*ast.VarBinding{p2}, Returns: []types.Type{types.IntType}, Body: &ast.Block{}}

	call := &ast.DirectInvocationExpr{Callee: "h", Args: []ast.Expression{constant(0, types.IntType)}}
	caller := &ast.CallableDecl{Name: "caller", Returns: []types.Type{types.VoidType}, Body: &ast.Block{
		Stmts: []ast.Statement{&ast.ExpressionStmt{Expr: call}},
	}}

	c, r := newChecker([]ast.Declaration{h1, h2, caller})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{h1, h2, caller}}})

	if !hasKind(r.Errors, cerrors.KindAmbiguousResolution) {
		t.Errorf("expected AMBIGUOUS_RESOLUTION, got %v", r.Errors)
	}
}

// Scenario F: code following an unconditional return is unreachable.
func TestUnreachableCodeAfterReturn(t *testing.T) {
	body := &ast.Block{Stmts: []ast.Statement{
		&ast.ReturnStmt{Values: []ast.Expression{constant(0, types.IntType)}},
		&ast.ExpressionStmt{Expr: constant(1, types.IntType)},
	}}
	fn := &ast.CallableDecl{Name: "f", Returns: []types.Type{types.IntType}, RequiresReturn: true, Body: body}

	c, r := newChecker([]ast.Declaration{fn})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{fn}}})

	if !hasKind(r.Errors, cerrors.KindUnreachableCode) {
		t.Errorf("expected UNREACHABLE_CODE, got %v", r.Errors)
	}
}

func TestWhileLoopRefinesThenDiscardsOnExit(t *testing.T) {
	x := ast.NewVarBinding("x", types.NewUnion(types.IntType, types.NullType), false, source.Zero)
	body := &ast.Block{Stmts: []ast.Statement{
		&ast.WhileStmt{
			Cond: &ast.IsExpr{Operand: variable(x), Target: types.IntType},
			Body: &ast.Block{Stmts: []ast.Statement{
				&ast.ExpressionStmt{Expr: &ast.CastExpr{Operand: variable(x), Target: types.IntType}},
			}},
		},
	}}
	fn := &ast.CallableDecl{Name: "f", Params: []*ast.VarBinding{x}, Returns: []types.Type{types.VoidType}, Body: body}

	c, r := newChecker([]ast.Declaration{fn})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{fn}}})

	if r.HasErrors() {
		t.Errorf("unexpected errors: %v", r.Errors)
	}
}

func TestAssignToUndeclaredRecordFieldIsReported(t *testing.T) {
	rec, _ := types.NewRecord(false, []types.Field{{Name: "x", Type: types.IntType}})
	r := ast.NewVarBinding("r", rec, false, source.Zero)
	body := &ast.Block{Stmts: []ast.Statement{
		&ast.AssignStmt{
			Targets: []ast.Expression{&ast.RecordAccessExpr{Record: variable(r), Field: "y"}},
			Values:  []ast.Expression{constant(0, types.IntType)},
		},
	}}
	fn := &ast.CallableDecl{Name: "f", Params: []*ast.VarBinding{r}, Returns: []types.Type{types.VoidType}, Body: body}

	c, rep := newChecker([]ast.Declaration{fn})
	c.Check([]ast.SourceUnit{{Declarations: []ast.Declaration{fn}}})

	if !hasKind(rep.Errors, cerrors.KindRecordMissingField) {
		t.Errorf("expected RECORD_MISSING_FIELD, got %v", rep.Errors)
	}
}
