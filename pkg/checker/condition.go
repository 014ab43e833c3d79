package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/types"
)

// checkCondition implements checkCondition(expr, sign, env) -> env' (spec
// §4.4.2), splitting on the condition's logical shape.
func (c *Checker) checkCondition(expr ast.Expression, sign bool, env *TypingEnvironment) *TypingEnvironment {
	c.lifetimes.current = env
	switch v := expr.(type) {
	case *ast.NotExpr:
		return c.checkCondition(v.Operand, !sign, env)

	case *ast.OrExpr:
		if sign {
			return c.checkDisjunction(v.Left, v.Right, env)
		}
		// sign = false: De Morgan, thread both operands negated.
		env = c.checkCondition(v.Left, false, env)
		return c.checkCondition(v.Right, false, env)

	case *ast.AndExpr:
		if sign {
			env = c.checkCondition(v.Left, true, env)
			return c.checkCondition(v.Right, true, env)
		}
		return c.checkDisjunction(negated(v.Left), negated(v.Right), env)

	case *ast.ImpliesExpr:
		if sign {
			notA := c.checkCondition(v.Left, false, env)
			threaded := c.checkCondition(v.Left, true, env)
			threaded = c.checkCondition(v.Right, true, threaded)
			return Join(notA, threaded)
		}
		env = c.checkCondition(v.Left, true, env)
		return c.checkCondition(v.Right, false, env)

	case *ast.IffExpr:
		env = c.checkCondition(v.Left, sign, env)
		return c.checkCondition(v.Right, sign, env)

	case *ast.IsExpr:
		return c.checkIsExpr(v, sign, env)

	case *ast.ForallExpr:
		c.checkQuantifier(v.Bound, v.Body, env)
		return env
	case *ast.ExistsExpr:
		c.checkQuantifier(v.Bound, v.Body, env)
		return env

	default:
		c.checkExpression(expr, env, []types.Type{types.BoolType})
		return env
	}
}

// checkDisjunction implements sign=true disjunction/conjunction-of-negations
// checking (spec §4.4.2): for each disjunct compute the refined
// environment assuming it holds, then recompute the incoming environment
// assuming it does not hold before moving to the next, and union every
// per-disjunct refinement.
func (c *Checker) checkDisjunction(left, right ast.Expression, env *TypingEnvironment) *TypingEnvironment {
	leftTrue := c.checkCondition(left, true, env)
	leftFalse := c.checkCondition(left, false, env)
	rightTrue := c.checkCondition(right, true, leftFalse)
	return Join(leftTrue, rightTrue)
}

// negated wraps an expression in a NotExpr so `and` under sign=false can
// reuse checkDisjunction's De Morgan-dual logic without duplicating it.
func negated(e ast.Expression) ast.Expression {
	return &ast.NotExpr{Operand: e}
}

// checkIsExpr implements the type test rule (spec §4.4.2): infer the
// operand's type, form the true/false refinements, diagnose impossible or
// trivially-true tests, and rewrite the refinable variable's semantic
// type in whichever environment corresponds to sign.
func (c *Checker) checkIsExpr(v *ast.IsExpr, sign bool, env *TypingEnvironment) *TypingEnvironment {
	operandType := c.checkExpression(v.Operand, env, []types.Type{types.AnyType})

	trueType := types.NewSemIntersection(operandType, types.ToSemantic(v.Target))
	falseType := types.NewSemDifference(operandType, types.ToSemantic(v.Target))

	trueEmpty, err := c.Engine.IsEmpty(trueType)
	if err != nil {
		c.internalFailure("checking type-test true branch emptiness", v.Pos(), err)
		return env
	}
	falseEmpty, err := c.Engine.IsEmpty(falseType)
	if err != nil {
		c.internalFailure("checking type-test false branch emptiness", v.Pos(), err)
		return env
	}
	if trueEmpty {
		c.Reporter.TypeError(cerrors.KindIncomparableOperands, fmt.Sprintf("type test %s is %s can never hold", describeOperand(v.Operand), v.Target), v.Pos())
	} else if falseEmpty {
		c.Reporter.TypeError(cerrors.KindBranchAlwaysTaken, fmt.Sprintf("type test %s is %s always holds", describeOperand(v.Operand), v.Target), v.Pos())
	}

	binding, ok := refinableBinding(v.Operand)
	if !ok {
		return env
	}
	if sign {
		return env.Refine(binding, trueType)
	}
	return env.Refine(binding, falseType)
}

// refinableBinding extracts the root variable of an access path over
// variable accesses and record-field projections; array and dereference
// accesses are not refinable and make the test a no-op on the environment
// (spec §4.4.2). A record-field projection refines the whole root
// variable conservatively — refining a single nested field in place would
// require extending the environment to path-keyed bindings, out of scope
// here.
func refinableBinding(e ast.Expression) (*ast.VarBinding, bool) {
	switch v := e.(type) {
	case *ast.VariableExpr:
		return v.Binding, true
	case *ast.RecordAccessExpr:
		return refinableBinding(v.Record)
	default:
		return nil, false
	}
}

func describeOperand(e ast.Expression) string {
	if v, ok := e.(*ast.VariableExpr); ok {
		return string(v.Binding.Name)
	}
	return "expression"
}

// checkQuantifier checks the bound parameter's non-emptiness, then checks
// the body as a condition from an environment extending env with the
// bound variable; its refinements are discarded (spec §4.4.2: "do not
// escape the quantifier").
func (c *Checker) checkQuantifier(bound *ast.VarBinding, body ast.Expression, env *TypingEnvironment) {
	if empty, err := c.Engine.IsEmptySyntactic(bound.DeclaredType); err != nil {
		c.internalFailure("checking quantifier parameter emptiness", body.Pos(), err)
		return
	} else if empty {
		c.Reporter.TypeError(cerrors.KindEmptyType, fmt.Sprintf("quantified variable %q has a type equivalent to Void", bound.Name), body.Pos())
	}
	inner := env.Refine(bound, types.ToSemantic(bound.DeclaredType))
	c.checkCondition(body, true, inner)
}
