// Package ast defines the minimal statement/expression/declaration node
// set the Flow Typer (C5) consumes (spec §1, §6): parsing and name
// resolution across source files are external collaborators, so this
// package only specifies their output contract, not a concrete grammar or
// lexer for any particular surface syntax.
package ast

import (
	"typecheck/pkg/source"
	"typecheck/pkg/types"

	"github.com/google/uuid"
)

// Node is the root of every AST node.
type Node interface {
	Pos() source.Position
}

// Declaration is a top-level form: a type declaration, static variable, or
// callable (spec §4.4).
type Declaration interface {
	Node
	declNode()
}

// Statement is a form consumed by statement checking (spec §4.4.1).
type Statement interface {
	Node
	stmtNode()
}

// Expression is a form consumed by expression and condition checking
// (spec §4.4.2, §4.4.3). Every expression node carries the mutable "type"
// slot spec §6.2 requires the core to fill in.
type Expression interface {
	Node
	exprNode()
	ComputedType() types.SemanticType
	SetComputedType(types.SemanticType)
	ConcreteType() types.Type
	SetConcreteType(types.Type)
}

// ExprBase is embedded by every concrete Expression to share the mutable
// type slots and position, mirroring the single-write-per-expression
// contract of spec §6.2 and §9 ("Global mutable state").
type ExprBase struct {
	Position source.Position
	computed types.SemanticType
	concrete types.Type
}

func (e *ExprBase) Pos() source.Position             { return e.Position }
func (e *ExprBase) exprNode()                        {}
func (e *ExprBase) ComputedType() types.SemanticType  { return e.computed }
func (e *ExprBase) SetComputedType(t types.SemanticType) { e.computed = t }
func (e *ExprBase) ConcreteType() types.Type          { return e.concrete }
func (e *ExprBase) SetConcreteType(t types.Type)      { e.concrete = t }

// VarBinding is a variable's declaration site: identity is by this pointer
// (or, equivalently, its stable ID), not by name (spec §3.4).
type VarBinding struct {
	ID           uuid.UUID
	Name         types.Name
	DeclaredType types.Type
	IsConst      bool
	Position     source.Position
}

// NewVarBinding constructs a declaration-site identity for a variable.
func NewVarBinding(name types.Name, declared types.Type, isConst bool, pos source.Position) *VarBinding {
	return &VarBinding{ID: uuid.New(), Name: name, DeclaredType: declared, IsConst: isConst, Position: pos}
}

// SourceUnit is one file's worth of declarations (spec §6.2's `check(files
// []SourceUnit)` input).
type SourceUnit struct {
	Name         string
	File         *source.SourceFile
	Declarations []Declaration
}
