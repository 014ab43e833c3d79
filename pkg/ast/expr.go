package ast

import (
	"typecheck/pkg/types"
)

// ConstantExpr is a literal of a known concrete type (int, bool, byte,
// null, or void).
type ConstantExpr struct {
	ExprBase
	Literal interface{}
	Type    types.Type
}

// VariableExpr reads a local (spec §4.4.3): its computed type is looked
// up in the typing environment by binding identity, not by re-deriving
// the declared type.
type VariableExpr struct {
	ExprBase
	Binding *VarBinding
}

// StaticVariableExpr reads a top-level static variable by its declared
// type (statics are not flow-refined, spec §3.3).
type StaticVariableExpr struct {
	ExprBase
	Name types.Name
}

// CastExpr asserts a concrete type at a program point (spec §4.4.3:
// "e as T" checks e is a subtype of T, and replaces the computed type).
type CastExpr struct {
	ExprBase
	Operand Expression
	Target  types.Type
}

// DirectInvocationExpr calls a statically-named callable; Resolved is
// filled in by overload resolution (spec §4.4.4, §6.2's "signature"
// mutable slot) once a unique applicable candidate is chosen.
type DirectInvocationExpr struct {
	ExprBase
	Callee       types.Name
	Args         []Expression
	LifetimeArgs []types.Name
	Resolved     types.Type // the chosen concrete signature, filled during checking
}

// IndirectInvocationExpr calls a callable value produced by some other
// expression (a lambda, a property read, etc).
type IndirectInvocationExpr struct {
	ExprBase
	Callee Expression
	Args   []Expression
}

// BinaryOp enumerates the concrete binary operators the core understands
// (spec §4.4.3: arithmetic/comparison/equality over int/bool/byte).
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpEqual
	OpNotEqual
)

// BinaryExpr is a primitive binary operation.
type BinaryExpr struct {
	ExprBase
	Op          BinaryOp
	Left, Right Expression
}

// ArrayInitExpr builds an array from explicit elements.
type ArrayInitExpr struct {
	ExprBase
	Elements []Expression
}

// ArrayGeneratorExpr builds an array of Size copies of Fill (spec §3.1's
// "array construction by generator").
type ArrayGeneratorExpr struct {
	ExprBase
	Size Expression
	Fill Expression
}

// ArrayAccessExpr reads arr[idx].
type ArrayAccessExpr struct {
	ExprBase
	Array Expression
	Index Expression
}

// ArrayUpdateExpr produces a new array equal to Array except index Index
// is Value (functional update, not mutation).
type ArrayUpdateExpr struct {
	ExprBase
	Array Expression
	Index Expression
	Value Expression
}

// ArrayLengthExpr reads an array's length.
type ArrayLengthExpr struct {
	ExprBase
	Array Expression
}

// RecordFieldInit is one `name: value` pair in a record literal.
type RecordFieldInit struct {
	Name  types.Name
	Value Expression
}

// RecordInitExpr builds a record literal.
type RecordInitExpr struct {
	ExprBase
	Fields []RecordFieldInit
}

// RecordAccessExpr reads rec.field (spec §4.3's Readable extraction is
// exercised here).
type RecordAccessExpr struct {
	ExprBase
	Record Expression
	Field  types.Name
}

// RecordUpdateExpr produces a new record equal to Record except Field is
// Value (spec §4.3's Writeable extraction is exercised here).
type RecordUpdateExpr struct {
	ExprBase
	Record Expression
	Field  types.Name
	Value  Expression
}

// DereferenceExpr reads through a Reference.
type DereferenceExpr struct {
	ExprBase
	Ref Expression
}

// NewExpr allocates a new Reference cell holding Value, scoped to
// Lifetime.
type NewExpr struct {
	ExprBase
	Value    Expression
	Lifetime types.Name
}

// LambdaDeclExpr is an inline callable value (spec §3.1).
type LambdaDeclExpr struct {
	ExprBase
	Params            []*VarBinding
	Returns           []types.Type
	CapturedLifetimes []types.Name
	Body              *Block
}

// LambdaAccessExpr reads a captured variable from within a lambda body —
// distinguished from VariableExpr because it crosses a callable
// boundary and therefore does not see the enclosing flow refinement
// (spec §4.4.3's note on closures only seeing declared types).
type LambdaAccessExpr struct {
	ExprBase
	Binding *VarBinding
}
