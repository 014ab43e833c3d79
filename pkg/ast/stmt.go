package ast

import (
	"typecheck/pkg/source"
	"typecheck/pkg/types"
)

// Block is an ordered sequence of statements.
type Block struct {
	Position source.Position
	Stmts    []Statement
}

func (b *Block) Pos() source.Position { return b.Position }

// VarDeclStmt introduces a variable; the AST already carries the binding
// (spec §4.4.1: "declarations are introduced by the AST before this
// point"), so checking it only validates an initialiser against the
// declared type.
type VarDeclStmt struct {
	Position source.Position
	Var      *VarBinding
	Init     Expression // nil if uninitialised
}

func (s *VarDeclStmt) Pos() source.Position { return s.Position }
func (s *VarDeclStmt) stmtNode()            {}

// AssignStmt is a (possibly multi-) assignment: len(Targets) == len(Values)
// unless a single multi-return callable invocation supplies all values
// (spec §4.4.1).
type AssignStmt struct {
	Position source.Position
	Targets  []Expression
	Values   []Expression
}

func (s *AssignStmt) Pos() source.Position { return s.Position }
func (s *AssignStmt) stmtNode()            {}

// ReturnStmt yields BOTTOM (spec §4.4.1).
type ReturnStmt struct {
	Position source.Position
	Values   []Expression
}

func (s *ReturnStmt) Pos() source.Position { return s.Position }
func (s *ReturnStmt) stmtNode()            {}

// IfStmt checks its condition twice, once per sign, and unions the exit
// environments of both branches (spec §4.4.1).
type IfStmt struct {
	Position source.Position
	Cond     Expression
	Then     *Block
	Else     *Block // nil if no else branch
}

func (s *IfStmt) Pos() source.Position { return s.Position }
func (s *IfStmt) stmtNode()            {}

// SwitchCase is one `case` arm: Consts is empty for the default arm.
type SwitchCase struct {
	Consts []Expression
	Body   *Block
}

// SwitchStmt: exit environments are unioned; absent a default, the entry
// environment also joins in (fall-through possible) (spec §4.4.1).
type SwitchStmt struct {
	Position     source.Position
	Discriminant Expression
	Cases        []SwitchCase
	HasDefault   bool
}

func (s *SwitchStmt) Pos() source.Position { return s.Position }
func (s *SwitchStmt) stmtNode()            {}

// WhileStmt covers both while and do-while forms (spec §4.4.1); loops are
// not iterated to a fixed point by default (see internal/config, §9).
type WhileStmt struct {
	Position   source.Position
	Cond       Expression
	Invariants []Expression
	Body       *Block
	IsDoWhile  bool
}

func (s *WhileStmt) Pos() source.Position { return s.Position }
func (s *WhileStmt) stmtNode()            {}

// BreakStmt, ContinueStmt, FailStmt each yield BOTTOM (spec §4.4.1).
type BreakStmt struct{ Position source.Position }

func (s *BreakStmt) Pos() source.Position { return s.Position }
func (s *BreakStmt) stmtNode()            {}

type ContinueStmt struct{ Position source.Position }

func (s *ContinueStmt) Pos() source.Position { return s.Position }
func (s *ContinueStmt) stmtNode()            {}

type FailStmt struct{ Position source.Position }

func (s *FailStmt) Pos() source.Position { return s.Position }
func (s *FailStmt) stmtNode()            {}

// AssertStmt covers both assert and assume: check condition with sign =
// true, propagate the refined environment (spec §4.4.1).
type AssertStmt struct {
	Position source.Position
	Cond     Expression
	IsAssume bool
}

func (s *AssertStmt) Pos() source.Position { return s.Position }
func (s *AssertStmt) stmtNode()            {}

// NamedBlockStmt extends the "within" relation with a new lifetime before
// checking its inner block (spec §4.4.1).
type NamedBlockStmt struct {
	Position source.Position
	Lifetime types.Name
	Body     *Block
}

func (s *NamedBlockStmt) Pos() source.Position { return s.Position }
func (s *NamedBlockStmt) stmtNode()            {}

// ExpressionStmt checks a bare expression for its side effects (e.g. a
// direct invocation used as a statement). Not named explicitly in spec
// §4.4.1's table but required to make expression statements checkable at
// all; treated like Assert/Assume with sign discarded.
type ExpressionStmt struct {
	Position source.Position
	Expr     Expression
}

func (s *ExpressionStmt) Pos() source.Position { return s.Position }
func (s *ExpressionStmt) stmtNode()            {}
