package ast

import (
	"typecheck/pkg/source"
	"typecheck/pkg/types"
)

// TypeDecl is a nominal type declaration with an optional invariant (spec
// §4.4: "verify the body is contractive and the variable is non-empty;
// check the invariant (if present) as a boolean condition").
type TypeDecl struct {
	Position  source.Position
	Name      types.Name
	Body      types.Type
	Invariant Expression // nil if none; its sole parameter is implicitly bound
	InvariantParam *VarBinding
}

func (d *TypeDecl) Pos() source.Position { return d.Position }
func (d *TypeDecl) declNode()            {}

// StaticVarDecl is a top-level static variable, optionally initialised.
type StaticVarDecl struct {
	Position     source.Position
	Name         types.Name
	DeclaredType types.Type
	Initializer  Expression // nil if none
}

func (d *StaticVarDecl) Pos() source.Position { return d.Position }
func (d *StaticVarDecl) declNode()            {}

// CallableForm distinguishes the three callable declaration shapes (spec §3.1).
type CallableForm int

const (
	FormFunction CallableForm = iota
	FormMethod
	FormProperty
)

// CallableDecl is a function/method/property declaration (spec §4.4):
// lifetimes, parameters, returns, pre/postconditions and a body.
type CallableDecl struct {
	Position          source.Position
	Name              types.Name
	Form              CallableForm
	Params            []*VarBinding
	Returns           []types.Type
	DeclaredLifetimes []types.Name
	CapturedLifetimes []types.Name
	Preconditions     []Expression
	Postconditions    []Expression
	Body              *Block
	// RequiresReturn is true unless every return type is Void-equivalent,
	// matching spec §4.4's "verify every control-flow exit produces a
	// return when required".
	RequiresReturn bool
}

func (d *CallableDecl) Pos() source.Position { return d.Position }
func (d *CallableDecl) declNode()            {}

// ParamTypes extracts the declared parameter types, e.g. for building the
// callable's syntactic signature type.
func (d *CallableDecl) ParamTypes() []types.Type {
	out := make([]types.Type, len(d.Params))
	for i, p := range d.Params {
		out[i] = p.DeclaredType
	}
	return out
}

// Signature builds the syntactic Type for this declaration's call shape.
func (d *CallableDecl) Signature() types.Type {
	switch d.Form {
	case FormMethod:
		return &types.Method{Params: d.ParamTypes(), Returns: d.Returns, CapturedLifetimes: d.CapturedLifetimes, DeclaredLifetimes: d.DeclaredLifetimes}
	case FormProperty:
		return &types.Property{Params: d.ParamTypes(), Returns: d.Returns}
	default:
		return &types.Function{Params: d.ParamTypes(), Returns: d.Returns}
	}
}
