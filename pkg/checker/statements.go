package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/extract"
	"typecheck/pkg/resolve"
	"typecheck/pkg/types"
)

// checkBlock threads env through a block's statements in order. Every
// statement is visited even after env goes Bottom; checkStatement reports
// each such statement as unreachable.
func (c *Checker) checkBlock(b *ast.Block, env *TypingEnvironment) *TypingEnvironment {
	for _, s := range b.Stmts {
		env = c.checkStatement(s, env)
	}
	return env
}

// checkStatement dispatches per spec §4.4.1's table. Receiving Bottom as
// the incoming environment to any statement is a user error
// (UNREACHABLE_CODE, spec §4.4.1), reported once and then checking
// continues treating the statement as if it were reachable so later
// statements are still visited.
func (c *Checker) checkStatement(s ast.Statement, env *TypingEnvironment) *TypingEnvironment {
	if env.IsBottom() {
		c.Reporter.TypeError(cerrors.KindUnreachableCode, "statement is unreachable", s.Pos())
		env = NewEnvironment()
	}
	c.lifetimes.current = env

	switch v := s.(type) {
	case *ast.VarDeclStmt:
		return c.checkVarDeclStmt(v, env)
	case *ast.AssignStmt:
		return c.checkAssignStmt(v, env)
	case *ast.ReturnStmt:
		return c.checkReturnStmt(v, env)
	case *ast.IfStmt:
		return c.checkIfStmt(v, env)
	case *ast.SwitchStmt:
		return c.checkSwitchStmt(v, env)
	case *ast.WhileStmt:
		return c.checkWhileStmt(v, env)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.FailStmt:
		return Bottom
	case *ast.AssertStmt:
		return c.checkCondition(v.Cond, true, env)
	case *ast.NamedBlockStmt:
		return c.checkNamedBlockStmt(v, env)
	case *ast.ExpressionStmt:
		c.checkExpression(v.Expr, env, []types.Type{types.AnyType})
		return env
	default:
		c.internalFailure(fmt.Sprintf("unrecognized statement %T", s), s.Pos(), nil)
		return env
	}
}

// checkVarDeclStmt checks the initialiser, if any, against the declared
// type; the environment is unchanged since the declaration itself is
// introduced by the AST before this point (spec §4.4.1).
func (c *Checker) checkVarDeclStmt(v *ast.VarDeclStmt, env *TypingEnvironment) *TypingEnvironment {
	if v.Init != nil {
		c.checkExpression(v.Init, env, []types.Type{v.Var.DeclaredType})
	}
	return env
}

// checkAssignStmt computes each target's assignable type via the
// writeable extractor and checks the corresponding value against it
// (spec §4.4.1). A single value supplying every target (a multi-return
// invocation) is accepted when counts otherwise mismatch 1:1.
func (c *Checker) checkAssignStmt(v *ast.AssignStmt, env *TypingEnvironment) *TypingEnvironment {
	assignable := make([]types.Type, len(v.Targets))
	for i, target := range v.Targets {
		assignable[i] = c.assignableType(target, env)
	}

	if len(v.Values) == 1 && len(v.Targets) != 1 {
		// Treat the single value as feeding every target position: it is
		// checked once, with the target slots as its list of expected
		// types. The number of values it yields is not compared with the
		// number of targets, and no per-target check follows.
		c.checkExpression(v.Values[0], env, assignable)
		return env
	}

	if len(v.Values) != len(v.Targets) {
		c.Reporter.TypeError(cerrors.KindInvalidLvalExpression, "assignment target count does not match value count", v.Pos())
		return env
	}
	for i, value := range v.Values {
		c.checkExpression(value, env, []types.Type{assignable[i]})
	}
	return env
}

// assignableType resolves an l-value's writeable effective type, or
// reports INVALID_LVAL_EXPRESSION and falls back to Any so checking can
// continue (spec §7's local-recovery policy).
func (c *Checker) assignableType(target ast.Expression, env *TypingEnvironment) types.Type {
	switch v := target.(type) {
	case *ast.VariableExpr:
		return v.Binding.DeclaredType
	case *ast.StaticVariableExpr:
		decl, err := c.Resolver.ResolveExactly(v.Name, resolve.KindStaticVar)
		if err != nil {
			c.Reporter.TypeError(cerrors.KindResolution, fmt.Sprintf("cannot resolve static variable %q: %v", v.Name, err), v.Pos())
			return types.AnyType
		}
		return decl.(resolve.StaticVarDeclaration).Decl.DeclaredType
	case *ast.RecordAccessExpr:
		base := c.checkExpression(v.Record, env, []types.Type{types.AnyType})
		rec, ok, err := c.effective(base, extract.Writeable, extract.ShapeRecord)
		if err != nil {
			c.internalFailure("extracting writeable record", v.Pos(), err)
			return types.AnyType
		}
		if !ok {
			c.Reporter.TypeError(cerrors.KindInvalidLvalExpression, "assignment target is not a record field", v.Pos())
			return types.AnyType
		}
		ft, found := rec.(*types.Record).Field(v.Field)
		if !found {
			c.Reporter.TypeError(cerrors.KindRecordMissingField, fmt.Sprintf("record has no field %q", v.Field), v.Pos())
			return types.AnyType
		}
		return ft
	case *ast.ArrayAccessExpr:
		base := c.checkExpression(v.Array, env, []types.Type{types.AnyType})
		c.checkExpression(v.Index, env, []types.Type{types.IntType})
		arr, ok, err := c.effective(base, extract.Writeable, extract.ShapeArray)
		if err != nil {
			c.internalFailure("extracting writeable array", v.Pos(), err)
			return types.AnyType
		}
		if !ok {
			c.Reporter.TypeError(cerrors.KindInvalidLvalExpression, "assignment target is not an array element", v.Pos())
			return types.AnyType
		}
		return arr.(*types.Array).Element
	case *ast.DereferenceExpr:
		base := c.checkExpression(v.Ref, env, []types.Type{types.AnyType})
		ref, ok, err := c.effective(base, extract.Writeable, extract.ShapeReference)
		if err != nil {
			c.internalFailure("extracting writeable reference", v.Pos(), err)
			return types.AnyType
		}
		if !ok {
			c.Reporter.TypeError(cerrors.KindInvalidLvalExpression, "assignment target is not a dereferenceable reference", v.Pos())
			return types.AnyType
		}
		return ref.(*types.Reference).Element
	default:
		c.Reporter.TypeError(cerrors.KindInvalidLvalExpression, "expression is not assignable", target.Pos())
		return types.AnyType
	}
}

// checkReturnStmt checks each return expression against the enclosing
// declaration's return tuple and yields Bottom (spec §4.4.1).
func (c *Checker) checkReturnStmt(v *ast.ReturnStmt, env *TypingEnvironment) *TypingEnvironment {
	if len(v.Values) != len(c.currentReturns) {
		c.Reporter.TypeError(cerrors.KindSubtype, "return value count does not match declared returns", v.Pos())
		return Bottom
	}
	for i, val := range v.Values {
		c.checkExpression(val, env, []types.Type{c.currentReturns[i]})
	}
	return Bottom
}

// checkIfStmt checks the condition under both signs, checks each branch
// from its refined environment, and unions the exit environments (spec
// §4.4.1).
func (c *Checker) checkIfStmt(v *ast.IfStmt, env *TypingEnvironment) *TypingEnvironment {
	thenEnv := c.checkCondition(v.Cond, true, env)
	elseEnv := c.checkCondition(v.Cond, false, env)

	thenExit := c.checkBlock(v.Then, thenEnv)
	var elseExit *TypingEnvironment
	if v.Else != nil {
		elseExit = c.checkBlock(v.Else, elseEnv)
	} else {
		elseExit = elseEnv
	}
	return Join(thenExit, elseExit)
}

// checkSwitchStmt checks the discriminant against Any, each case's
// constants, and each block from the entry environment; exit
// environments are unioned, with the entry environment also joined in
// when there is no default (spec §4.4.1).
func (c *Checker) checkSwitchStmt(v *ast.SwitchStmt, env *TypingEnvironment) *TypingEnvironment {
	c.checkExpression(v.Discriminant, env, []types.Type{types.AnyType})

	exit := Bottom
	for _, cs := range v.Cases {
		for _, constant := range cs.Consts {
			c.checkExpression(constant, env, []types.Type{types.AnyType})
		}
		caseExit := c.checkBlock(cs.Body, env)
		exit = Join(exit, caseExit)
	}
	if !v.HasDefault {
		exit = Join(exit, env)
	}
	return exit
}

// checkWhileStmt checks invariants against the entry environment, checks
// the body from the sign=true refinement, and yields the sign=false
// refinement as the loop's exit environment. A single refinement pass is
// taken rather than iterating to a fixed point (spec §4.4.1, §9 open
// question; see Config.LoopFixedPoint and DESIGN.md).
func (c *Checker) checkWhileStmt(v *ast.WhileStmt, env *TypingEnvironment) *TypingEnvironment {
	for _, inv := range v.Invariants {
		c.checkCondition(inv, true, env)
	}

	bodyEnv := c.checkCondition(v.Cond, true, env)
	exitEnv := c.checkCondition(v.Cond, false, env)

	bodyExit := c.checkBlock(v.Body, bodyEnv)

	if c.Config.LoopFixedPoint {
		// Re-check the body from the join of the previous pass's exit and
		// the original entry until the body's exit environment stops
		// changing, for at most len(v.Body.Stmts)+1 further passes. The
		// loop's exit environment is exitEnv either way.
		prev := bodyExit
		for i := 0; i < len(v.Body.Stmts)+1; i++ {
			merged := Join(env, prev)
			again := c.checkBlock(v.Body, c.checkCondition(v.Cond, true, merged))
			if envEqual(again, prev) {
				break
			}
			prev = again
		}
	}

	return exitEnv
}

// envEqual is a conservative structural comparison used only to decide
// when the fixed-point loop (Config.LoopFixedPoint) has stabilized.
func envEqual(a, b *TypingEnvironment) bool {
	if a.IsBottom() != b.IsBottom() {
		return false
	}
	if a.IsBottom() {
		return true
	}
	if len(a.bindings) != len(b.bindings) {
		return false
	}
	for id, ta := range a.bindings {
		tb, ok := b.bindings[id]
		if !ok || !ta.Equals(tb) {
			return false
		}
	}
	return true
}

// checkNamedBlockStmt extends the within relation with a new lifetime
// before checking the inner block (spec §4.4.1).
func (c *Checker) checkNamedBlockStmt(v *ast.NamedBlockStmt, env *TypingEnvironment) *TypingEnvironment {
	nested := env.DeclareLifetime(v.Lifetime, types.This)
	c.lifetimes.current = nested
	exit := c.checkBlock(v.Body, nested)
	return exit
}
