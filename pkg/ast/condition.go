package ast

import "typecheck/pkg/types"

// NotExpr, OrExpr, AndExpr, ImpliesExpr and IffExpr are the boolean
// connectives condition-checking dispatches on by sign (spec §4.4.2):
// `not c` flips the checking sign; `or` checked true and `and` checked
// false join the per-operand environments, while `or` checked false and
// `and` checked true thread the environment through both operands.
type NotExpr struct {
	ExprBase
	Operand Expression
}

type OrExpr struct {
	ExprBase
	Left, Right Expression
}

type AndExpr struct {
	ExprBase
	Left, Right Expression
}

// ImpliesExpr is sugar for `not Left or Right`, kept as its own node so
// the checker can apply the equivalent sign rule directly rather than
// requiring a prior desugaring pass.
type ImpliesExpr struct {
	ExprBase
	Left, Right Expression
}

// IffExpr checks Left and then Right under the same sign as the
// biconditional itself, threading the environment through both, so it
// refines as its two operands do in turn (spec §4.4.2).
type IffExpr struct {
	ExprBase
	Left, Right Expression
}

// IsExpr is the primitive type test `e is T` (spec §4.4.2): checked true,
// it narrows e's binding to the intersection of e's inferred type and T;
// checked false, it narrows to the Difference of e's inferred type and T.
type IsExpr struct {
	ExprBase
	Operand Expression
	Target  types.Type
}

// ForallExpr and ExistsExpr are quantifiers appearing only inside
// invariants/pre/postconditions (spec §3.2): they do not themselves
// narrow the ambient environment, only their own bound variable within
// Body.
type ForallExpr struct {
	ExprBase
	Bound *VarBinding
	Body  Expression
}

type ExistsExpr struct {
	ExprBase
	Bound *VarBinding
	Body  Expression
}
