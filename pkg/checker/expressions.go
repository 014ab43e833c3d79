package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/resolve"
	"typecheck/pkg/types"
)

// checkExpression implements checkExpression(expr, env, expected) ->
// SemanticType (spec §4.4.3): infer a semantic type and assign the
// expression the least element of expected that is a supertype of the
// inferred type as its concrete type.
func (c *Checker) checkExpression(expr ast.Expression, env *TypingEnvironment, expected []types.Type) types.SemanticType {
	c.lifetimes.current = env
	inferred := c.inferExpression(expr, env, expected)
	concrete := c.chooseConcrete(expr, inferred, expected)
	expr.SetComputedType(inferred)
	expr.SetConcreteType(concrete)
	return inferred
}

// chooseConcrete selects the least element of expected that is a
// supertype of inferred (spec §4.4.3); two incomparable matching
// candidates is AMBIGUOUS_RESOLUTION; zero matching candidates is a
// SUBTYPE_ERROR, recovering with the first expected type so errors
// cascade minimally (spec §7).
func (c *Checker) chooseConcrete(expr ast.Expression, inferred types.SemanticType, expected []types.Type) types.Type {
	var candidates []types.Type
	for _, e := range expected {
		ok, err := c.Engine.IsSubtype(types.ToSemantic(e), inferred)
		if err != nil {
			c.internalFailure("checking expected-type subtype", expr.Pos(), err)
			continue
		}
		if ok {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		if len(expected) > 0 {
			c.Reporter.TypeError(cerrors.KindSubtype, fmt.Sprintf("expression of type %s is not a subtype of any expected type", inferred), expr.Pos())
			return expected[0]
		}
		return types.AnyType
	}
	least := candidates[0]
	for _, cand := range candidates[1:] {
		leastIsSub, err1 := c.Engine.IsSubtypeSyntactic(cand, least)
		candIsSub, err2 := c.Engine.IsSubtypeSyntactic(least, cand)
		if err1 != nil || err2 != nil {
			continue
		}
		switch {
		case candIsSub && !leastIsSub:
			least = cand
		case !leastIsSub && !candIsSub:
			c.Reporter.TypeError(cerrors.KindAmbiguousResolution, fmt.Sprintf("expected types %s and %s are both applicable and incomparable", least, cand), expr.Pos())
		}
	}
	return least
}

// inferExpression dispatches to the per-form rule (spec §4.4.3). Each
// case propagates whatever "expected" sub-types the rule specifies to
// sub-expressions and returns the form's inferred semantic type.
func (c *Checker) inferExpression(expr ast.Expression, env *TypingEnvironment, expected []types.Type) types.SemanticType {
	switch v := expr.(type) {
	case *ast.ConstantExpr:
		return types.ToSemantic(v.Type)

	case *ast.VariableExpr:
		return env.Lookup(v.Binding)

	case *ast.StaticVariableExpr:
		return c.inferStaticVariable(v)

	case *ast.CastExpr:
		c.checkExpression(v.Operand, env, []types.Type{v.Target})
		return types.ToSemantic(v.Target)

	case *ast.DirectInvocationExpr:
		return c.checkDirectInvocation(v, env)

	case *ast.IndirectInvocationExpr:
		return c.checkIndirectInvocation(v, env)

	case *ast.BinaryExpr:
		return c.inferBinary(v, env)

	case *ast.ArrayInitExpr:
		return c.inferArrayInit(v, env, expected)
	case *ast.ArrayGeneratorExpr:
		return c.inferArrayGenerator(v, env, expected)
	case *ast.ArrayAccessExpr:
		return c.inferArrayAccess(v, env)
	case *ast.ArrayUpdateExpr:
		return c.inferArrayUpdate(v, env)
	case *ast.ArrayLengthExpr:
		c.checkExpression(v.Array, env, []types.Type{types.NewArray(types.AnyType)})
		return types.ToSemantic(types.IntType)

	case *ast.RecordInitExpr:
		return c.inferRecordInit(v, env, expected)
	case *ast.RecordAccessExpr:
		return c.inferRecordAccess(v, env)
	case *ast.RecordUpdateExpr:
		return c.inferRecordUpdate(v, env)

	case *ast.DereferenceExpr:
		return c.inferDereference(v, env)
	case *ast.NewExpr:
		return c.inferNew(v, env)

	case *ast.LambdaDeclExpr:
		return c.inferLambda(v, env)
	case *ast.LambdaAccessExpr:
		return types.ToSemantic(v.Binding.DeclaredType)

	// Boolean connectives and type tests appearing directly in expression
	// position (rather than reached through checkCondition's own
	// recursion) are checked for their side effects only; any narrowing
	// they would produce does not escape since there is no enclosing
	// sign/env to thread it into (spec §4.4.3's "Other: treat as a
	// boolean expression").
	case *ast.IsExpr, *ast.NotExpr, *ast.OrExpr, *ast.AndExpr, *ast.ImpliesExpr, *ast.IffExpr:
		c.checkCondition(expr, true, env)
		return types.ToSemantic(types.BoolType)

	default:
		c.internalFailure(fmt.Sprintf("unrecognized expression %T", expr), expr.Pos(), nil)
		return types.ToSemantic(types.AnyType)
	}
}

// inferStaticVariable looks up a static variable's declared type through
// the name resolver; statics are not flow-refined (spec §3.3, §4.4.3).
func (c *Checker) inferStaticVariable(v *ast.StaticVariableExpr) types.SemanticType {
	decl, err := c.Resolver.ResolveExactly(v.Name, resolve.KindStaticVar)
	if err != nil {
		c.Reporter.TypeError(cerrors.KindResolution, fmt.Sprintf("cannot resolve static variable %q: %v", v.Name, err), v.Pos())
		return types.ToSemantic(types.AnyType)
	}
	sv, ok := decl.(resolve.StaticVarDeclaration)
	if !ok {
		c.internalFailure(fmt.Sprintf("resolved %q to a non-static-variable declaration", v.Name), v.Pos(), nil)
		return types.ToSemantic(types.AnyType)
	}
	return types.ToSemantic(sv.Decl.DeclaredType)
}
