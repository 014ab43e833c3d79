package checker

import (
	"typecheck/pkg/ast"
	"typecheck/pkg/types"
)

// operandExpected returns what a binary operator propagates to both of
// its operands (spec §4.4.3: "propagate Int or Byte or Bool as
// appropriate").
func operandExpected(op ast.BinaryOp) []types.Type {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		return []types.Type{types.IntType, types.ByteType}
	default:
		return []types.Type{types.AnyType}
	}
}

// isComparison reports whether op always yields Bool regardless of
// operand type (spec §4.4.3).
func isComparison(op ast.BinaryOp) bool {
	switch op {
	case ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq, ast.OpEqual, ast.OpNotEqual:
		return true
	default:
		return false
	}
}

// inferBinary checks both operands against the operator's expected
// operand types and returns Bool for comparisons, else the left operand's
// concrete type (arithmetic preserves Int/Byte, spec §4.4.3).
func (c *Checker) inferBinary(v *ast.BinaryExpr, env *TypingEnvironment) types.SemanticType {
	expected := operandExpected(v.Op)
	c.checkExpression(v.Left, env, expected)
	c.checkExpression(v.Right, env, expected)

	if isComparison(v.Op) {
		return types.ToSemantic(types.BoolType)
	}
	return types.ToSemantic(v.Left.ConcreteType())
}
