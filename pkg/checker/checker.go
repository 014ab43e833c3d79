package checker

import (
	"fmt"

	"typecheck/pkg/ast"
	"typecheck/pkg/decision"
	"typecheck/pkg/dnf"
	cerrors "typecheck/pkg/errors"
	"typecheck/pkg/extract"
	"typecheck/pkg/resolve"
	"typecheck/pkg/source"
	"typecheck/pkg/types"

	"github.com/hashicorp/go-multierror"
)

// trackingLifetimes layers the currently-active TypingEnvironment's
// locally-declared lifetime nestings on top of the static base relation
// the driver supplies (spec §4.4.1's named-block extension). The engine
// is constructed once per Checker and consults whichever environment is
// "current" at call time; this single mutable field is the only state
// that changes during an otherwise single-threaded, eager traversal
// (spec §5).
type trackingLifetimes struct {
	current *TypingEnvironment
	base    resolve.LifetimeRelation
}

func (l *trackingLifetimes) IsWithin(inner, outer types.Name) bool {
	if l.current == nil {
		return l.base.IsWithin(inner, outer)
	}
	return l.current.isWithin(inner, outer, l.base)
}

// Config holds the open-question knob spec §9 calls out explicitly for
// loop checking; the companion Array(Void) emptiness convention lives in
// pkg/decision since it is purely a decision-engine concern.
type Config struct {
	// LoopFixedPoint, when true, re-checks a loop body until its exit
	// environment stabilizes instead of taking a single refinement pass
	// (spec §9 open question; default false — see DESIGN.md).
	LoopFixedPoint bool
}

// DefaultConfig documents the default choice for spec §9's loop-fixed-point
// open question: a single refinement pass.
var DefaultConfig = Config{LoopFixedPoint: false}

// Checker is the Flow Typer (C5). It is built once per check() run and
// reused across every declaration in every source unit.
type Checker struct {
	Resolver resolve.NameResolver
	Reporter cerrors.Reporter
	Engine   *decision.Engine
	Config   Config

	lifetimes *trackingLifetimes

	// currentReturns/currentRequiresReturn describe the enclosing
	// callable being checked, consulted by ReturnStmt checking (spec
	// §4.4.1).
	currentReturns        []types.Type
	currentRequiresReturn bool
}

// New builds a Checker wired to its external collaborators (spec §6.1):
// nameResolver answers resolveExactly/resolveAll, nominalResolver answers
// a nominal's body for DNF and contractiveness, lifetimeBase is the
// driver-supplied static "within" relation, and reporter is the
// syntax/type-error sink.
func New(nameResolver resolve.NameResolver, nominalResolver dnf.NominalResolver, lifetimeBase resolve.LifetimeRelation, reporter cerrors.Reporter, cfg Config) *Checker {
	lt := &trackingLifetimes{base: lifetimeBase}
	engine := decision.NewEngine(nominalResolver, lt)
	return &Checker{
		Resolver:  nameResolver,
		Reporter:  reporter,
		Engine:    engine,
		Config:    cfg,
		lifetimes: lt,
	}
}

// Check is the exposed entry point (spec §6.2): walk every declaration in
// every file, invoking the flow typer on each callable body, and mutate
// each expression node with its concrete type (and, for invocations, its
// selected signature). Produces no value; errors go through c.Reporter.
func (c *Checker) Check(files []ast.SourceUnit) {
	for _, f := range files {
		for _, d := range f.Declarations {
			c.checkDeclaration(d)
		}
	}
}

// CheckAll is Check plus an aggregate return value for callers that want
// a single error rather than combing through the reporter afterwards
// (the CLI's `check` subcommand and the test suite both want this):
// every declaration is still checked regardless of whether an earlier
// one hit an internal failure, and every internal failure collected
// along the way is folded into one *multierror.Error. Recoverable type
// errors are not included; those stay in the reporter for the caller to
// format and print individually.
func (c *Checker) CheckAll(files []ast.SourceUnit) error {
	c.Check(files)
	cr, ok := c.Reporter.(*cerrors.CollectingReporter)
	if !ok {
		return nil
	}
	var merr *multierror.Error
	for _, ie := range cr.Internal {
		merr = multierror.Append(merr, ie)
	}
	return merr.ErrorOrNil()
}

func (c *Checker) checkDeclaration(d ast.Declaration) {
	switch v := d.(type) {
	case *ast.TypeDecl:
		c.checkTypeDecl(v)
	case *ast.StaticVarDecl:
		c.checkStaticVarDecl(v)
	case *ast.CallableDecl:
		c.checkCallableDecl(v)
	default:
		c.internalFailure(fmt.Sprintf("unrecognized declaration %T", d), d.Pos(), nil)
	}
}

// checkTypeDecl verifies contractiveness and non-emptiness of the
// declared body, then checks any invariant as a boolean condition (spec
// §4.4: "Type declaration").
func (c *Checker) checkTypeDecl(d *ast.TypeDecl) {
	contractive, err := c.Engine.IsContractive(d.Name, d.Body)
	if err != nil {
		c.internalFailure("checking contractiveness", d.Pos(), err)
		return
	}
	if !contractive {
		c.Reporter.TypeError(cerrors.KindEmptyType, fmt.Sprintf("type %q is not contractive: every recursive cycle must pass through a constructor", d.Name), d.Pos())
		return
	}

	empty, err := c.Engine.IsEmptySyntactic(d.Body)
	if err != nil {
		c.internalFailure("checking emptiness of type body", d.Pos(), err)
		return
	}
	if empty {
		c.Reporter.TypeError(cerrors.KindEmptyType, fmt.Sprintf("type %q is declared equivalent to Void", d.Name), d.Pos())
		return
	}

	if d.Invariant != nil {
		env := NewEnvironment()
		if d.InvariantParam != nil {
			env = env.Refine(d.InvariantParam, types.ToSemantic(d.InvariantParam.DeclaredType))
		}
		c.lifetimes.current = env
		c.checkCondition(d.Invariant, true, env)
	}
}

// checkStaticVarDecl checks an initialiser, if any, against the declared
// type (spec §4.4: "Static variable").
func (c *Checker) checkStaticVarDecl(d *ast.StaticVarDecl) {
	if d.Initializer == nil {
		return
	}
	env := NewEnvironment()
	c.lifetimes.current = env
	c.checkExpression(d.Initializer, env, []types.Type{d.DeclaredType})
}

// checkCallableDecl declares lifetimes, checks non-emptiness of
// parameters/returns, checks pre/postconditions with sign=true, then
// checks the body and verifies every exit returns when required (spec
// §4.4: "Function/method/property").
func (c *Checker) checkCallableDecl(d *ast.CallableDecl) {
	for _, p := range d.Params {
		if empty, err := c.Engine.IsEmptySyntactic(p.DeclaredType); err != nil {
			c.internalFailure("checking parameter emptiness", d.Pos(), err)
			return
		} else if empty {
			c.Reporter.TypeError(cerrors.KindEmptyType, fmt.Sprintf("parameter %q has a type equivalent to Void", p.Name), p.Position)
		}
	}
	for i, r := range d.Returns {
		if r == types.VoidType {
			// A literal Void return marks a callable that returns no value
			// (see ast.CallableDecl.RequiresReturn), not an empty return type.
			continue
		}
		if empty, err := c.Engine.IsEmptySyntactic(r); err != nil {
			c.internalFailure("checking return emptiness", d.Pos(), err)
			return
		} else if empty {
			c.Reporter.TypeError(cerrors.KindEmptyType, fmt.Sprintf("return %d of %q has a type equivalent to Void", i, d.Name), d.Pos())
		}
	}

	env := NewEnvironment()
	for _, p := range d.Params {
		env = env.Refine(p, types.ToSemantic(p.DeclaredType))
	}
	for _, lt := range d.DeclaredLifetimes {
		env = env.DeclareLifetime(lt, types.This)
	}
	c.lifetimes.current = env

	for _, pre := range d.Preconditions {
		env = c.checkCondition(pre, true, env)
		c.lifetimes.current = env
	}
	for _, post := range d.Postconditions {
		c.checkCondition(post, true, env)
	}

	prevReturns, prevRequires := c.currentReturns, c.currentRequiresReturn
	c.currentReturns = d.Returns
	c.currentRequiresReturn = d.RequiresReturn

	exit := c.checkBlock(d.Body, env)

	c.currentReturns, c.currentRequiresReturn = prevReturns, prevRequires

	if d.RequiresReturn && !exit.IsBottom() {
		c.Reporter.TypeError(cerrors.KindSubtype, fmt.Sprintf("callable %q does not return on every control-flow path", d.Name), d.Pos())
	}
}

// internalFailure reports a fatal implementation-bug condition through
// the reporter (spec §7's "internal failure" row). It does not stop the
// declaration's checking: each caller recovers locally, most by returning
// a fallback type, and the remaining statements are still checked.
func (c *Checker) internalFailure(msg string, pos source.Position, cause error) {
	c.Reporter.InternalFailure(msg, pos, cause)
}

// effective requests the readable/writeable effective shape of a semantic
// type from the extractors (C4), as the flow typer does for every array,
// record, reference, or callable access (spec §2: "asks the extractors
// for effective ... type").
func (c *Checker) effective(t types.SemanticType, mode extract.Mode, shape extract.Shape) (types.Type, bool, error) {
	return extract.Extract(t, mode, shape, c.Engine)
}
