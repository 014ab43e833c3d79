package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/extract"
	"typecheck/pkg/types"
)

// checkIndirectInvocation checks a call through a callable value (a
// lambda, a property read, ...): infer the callee's effective (readable)
// callable shape, then check each argument against the corresponding
// parameter (spec §4.4.3's "Indirect invocation").
func (c *Checker) checkIndirectInvocation(v *ast.IndirectInvocationExpr, env *TypingEnvironment) types.SemanticType {
	calleeType := c.checkExpression(v.Callee, env, []types.Type{types.AnyType})

	effective, ok, err := c.effective(calleeType, extract.Readable, extract.ShapeCallable)
	if err != nil {
		c.internalFailure("extracting readable callable", v.Pos(), err)
		return c.fallbackIndirectArgs(v, env)
	}
	if !ok {
		c.Reporter.TypeError(cerrors.KindSubtype, fmt.Sprintf("%s is not callable", calleeType), v.Pos())
		return c.fallbackIndirectArgs(v, env)
	}

	params, returns := callableShape(effective)
	if len(params) != len(v.Args) {
		c.Reporter.TypeError(cerrors.KindResolution, fmt.Sprintf("callable expects %d arguments, got %d", len(params), len(v.Args)), v.Pos())
		return c.fallbackIndirectArgs(v, env)
	}

	for i, arg := range v.Args {
		c.checkExpression(arg, env, []types.Type{params[i]})
	}
	return returnsToSemantic(returns)
}

func (c *Checker) fallbackIndirectArgs(v *ast.IndirectInvocationExpr, env *TypingEnvironment) types.SemanticType {
	for _, arg := range v.Args {
		c.checkExpression(arg, env, []types.Type{types.AnyType})
	}
	return types.ToSemantic(types.AnyType)
}

// callableShape extracts the parameter/return lists common to the three
// callable shapes (spec §3.1).
func callableShape(t types.Type) ([]types.Type, []types.Type) {
	switch v := t.(type) {
	case *types.Function:
		return v.Params, v.Returns
	case *types.Method:
		return v.Params, v.Returns
	case *types.Property:
		return v.Params, v.Returns
	default:
		return nil, nil
	}
}
