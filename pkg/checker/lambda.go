package checker

import (
	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/types"
)

// inferLambda checks the lambda's parameters are non-empty, checks the
// body, and classifies the result as Function (pure) or Method (impure)
// per spec §4.4.3: purity means no dereference, no static variable
// access, no method call, and no `new`, checked recursively through the
// body.
func (c *Checker) inferLambda(v *ast.LambdaDeclExpr, env *TypingEnvironment) types.SemanticType {
	for _, p := range v.Params {
		if empty, err := c.Engine.IsEmptySyntactic(p.DeclaredType); err != nil {
			c.internalFailure("checking lambda parameter emptiness", v.Pos(), err)
		} else if empty {
			c.Reporter.TypeError(cerrors.KindEmptyType, "lambda parameter has a type equivalent to Void", p.Position)
		}
	}

	inner := env
	for _, p := range v.Params {
		inner = inner.Refine(p, types.ToSemantic(p.DeclaredType))
	}

	prevReturns, prevRequires := c.currentReturns, c.currentRequiresReturn
	c.currentReturns = v.Returns
	c.currentRequiresReturn = len(v.Returns) > 0 && !allVoid(v.Returns)
	c.checkBlock(v.Body, inner)
	c.currentReturns, c.currentRequiresReturn = prevReturns, prevRequires

	params := make([]types.Type, len(v.Params))
	for i, p := range v.Params {
		params[i] = p.DeclaredType
	}
	if blockImpure(v.Body) {
		return types.ToSemantic(&types.Method{Params: params, Returns: v.Returns, CapturedLifetimes: v.CapturedLifetimes})
	}
	return types.ToSemantic(&types.Function{Params: params, Returns: v.Returns})
}

func allVoid(ts []types.Type) bool {
	for _, t := range ts {
		if t != types.VoidType {
			return false
		}
	}
	return true
}

// blockImpure/stmtImpure/exprImpure walk an AST subtree looking for a
// dereference, static-variable access, an indirect invocation, a direct
// invocation not resolved to a Function signature, or `new` (spec
// §4.4.3's purity definition, propagated recursively). Direct invocations
// are treated conservatively as impure unless resolved to a Function
// signature, since overload resolution may not have run yet when a nested
// lambda is checked; indirect invocations always count as impure.
func blockImpure(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		if stmtImpure(s) {
			return true
		}
	}
	return false
}

func stmtImpure(s ast.Statement) bool {
	switch v := s.(type) {
	case *ast.VarDeclStmt:
		return v.Init != nil && exprImpure(v.Init)
	case *ast.AssignStmt:
		for _, t := range v.Targets {
			if exprImpure(t) {
				return true
			}
		}
		for _, val := range v.Values {
			if exprImpure(val) {
				return true
			}
		}
		return false
	case *ast.ReturnStmt:
		for _, val := range v.Values {
			if exprImpure(val) {
				return true
			}
		}
		return false
	case *ast.IfStmt:
		if exprImpure(v.Cond) || blockImpure(v.Then) {
			return true
		}
		return blockImpure(v.Else)
	case *ast.SwitchStmt:
		if exprImpure(v.Discriminant) {
			return true
		}
		for _, cs := range v.Cases {
			if blockImpure(cs.Body) {
				return true
			}
		}
		return false
	case *ast.WhileStmt:
		return exprImpure(v.Cond) || blockImpure(v.Body)
	case *ast.AssertStmt:
		return exprImpure(v.Cond)
	case *ast.NamedBlockStmt:
		return blockImpure(v.Body)
	case *ast.ExpressionStmt:
		return exprImpure(v.Expr)
	default:
		return false
	}
}

func exprImpure(e ast.Expression) bool {
	switch v := e.(type) {
	case nil:
		return false
	case *ast.DereferenceExpr:
		return true
	case *ast.NewExpr:
		return true
	case *ast.StaticVariableExpr:
		return true
	case *ast.DirectInvocationExpr:
		if _, isFunction := v.Resolved.(*types.Function); !isFunction {
			return true
		}
		for _, arg := range v.Args {
			if exprImpure(arg) {
				return true
			}
		}
		return false
	case *ast.IndirectInvocationExpr:
		return true
	case *ast.CastExpr:
		return exprImpure(v.Operand)
	case *ast.BinaryExpr:
		return exprImpure(v.Left) || exprImpure(v.Right)
	case *ast.ArrayInitExpr:
		for _, el := range v.Elements {
			if exprImpure(el) {
				return true
			}
		}
		return false
	case *ast.ArrayGeneratorExpr:
		return exprImpure(v.Size) || exprImpure(v.Fill)
	case *ast.ArrayAccessExpr:
		return exprImpure(v.Array) || exprImpure(v.Index)
	case *ast.ArrayUpdateExpr:
		return exprImpure(v.Array) || exprImpure(v.Index) || exprImpure(v.Value)
	case *ast.ArrayLengthExpr:
		return exprImpure(v.Array)
	case *ast.RecordInitExpr:
		for _, f := range v.Fields {
			if exprImpure(f.Value) {
				return true
			}
		}
		return false
	case *ast.RecordAccessExpr:
		return exprImpure(v.Record)
	case *ast.RecordUpdateExpr:
		return exprImpure(v.Record) || exprImpure(v.Value)
	case *ast.LambdaDeclExpr:
		return blockImpure(v.Body)
	case *ast.NotExpr:
		return exprImpure(v.Operand)
	case *ast.OrExpr:
		return exprImpure(v.Left) || exprImpure(v.Right)
	case *ast.AndExpr:
		return exprImpure(v.Left) || exprImpure(v.Right)
	case *ast.ImpliesExpr:
		return exprImpure(v.Left) || exprImpure(v.Right)
	case *ast.IffExpr:
		return exprImpure(v.Left) || exprImpure(v.Right)
	case *ast.IsExpr:
		return exprImpure(v.Operand)
	default:
		return false
	}
}
