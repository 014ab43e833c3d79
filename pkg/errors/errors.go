// Package errors defines the core's diagnostic taxonomy (spec §7) and the
// Reporter collaborator interface (spec §6.1) the core calls instead of
// propagating errors through return values.
package errors

import (
	"fmt"

	"typecheck/pkg/source"

	pkgerrors "github.com/pkg/errors"
)

// Kind names one of the error kinds from spec §7, plus the two collaborator
// report forms ("Syntax" for the external reporter's syntaxError, and
// "Internal" for internalFailure).
type Kind string

const (
	KindSyntax               Kind = "Syntax"
	KindSubtype               Kind = "SUBTYPE_ERROR"
	KindResolution            Kind = "RESOLUTION_ERROR"
	KindAmbiguousResolution   Kind = "AMBIGUOUS_RESOLUTION"
	KindIncomparableOperands  Kind = "INCOMPARABLE_OPERANDS"
	KindBranchAlwaysTaken     Kind = "BRANCH_ALWAYS_TAKEN"
	KindUnreachableCode       Kind = "UNREACHABLE_CODE"
	KindInvalidLvalExpression Kind = "INVALID_LVAL_EXPRESSION"
	KindRecordMissingField    Kind = "RECORD_MISSING_FIELD"
	KindEmptyType             Kind = "EMPTY_TYPE"
	KindInternal              Kind = "Internal"
)

// CheckerError is implemented by every diagnostic the core produces.
type CheckerError interface {
	error
	Pos() source.Position
	Kind() Kind
	Message() string
}

// TypeError is a recoverable, user-facing diagnostic: checking continues
// after it is reported (spec §7, all rows but "internal failure").
type TypeError struct {
	Position source.Position
	ErrKind  Kind
	Msg      string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s at %s: [%s] %s", e.ErrKind, e.Position, e.ErrKind, e.Msg)
}
func (e *TypeError) Pos() source.Position { return e.Position }
func (e *TypeError) Kind() Kind            { return e.ErrKind }
func (e *TypeError) Message() string       { return e.Msg }

// SyntaxError models the "syntax error reporter" collaborator's first
// method; the core itself never raises these, but the Reporter interface
// groups both forms together the way the teacher's PaseratiError family does.
type SyntaxError struct {
	Position source.Position
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %s: %s", e.Position, e.Msg)
}
func (e *SyntaxError) Pos() source.Position { return e.Position }
func (e *SyntaxError) Kind() Kind            { return KindSyntax }
func (e *SyntaxError) Message() string       { return e.Msg }

// InternalError models internalFailure(message, location, cause): a fatal
// implementation-bug condition (spec §7, §9 "Error returns vs.
// exceptions"). Reporting one does not stop checking of the declaration.
type InternalError struct {
	Position source.Position
	Msg      string
	Cause    error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return pkgerrors.Wrap(e.Cause, fmt.Sprintf("internal failure at %s: %s", e.Position, e.Msg)).Error()
	}
	return fmt.Sprintf("internal failure at %s: %s", e.Position, e.Msg)
}
func (e *InternalError) Pos() source.Position { return e.Position }
func (e *InternalError) Kind() Kind            { return KindInternal }
func (e *InternalError) Message() string       { return e.Msg }
func (e *InternalError) Unwrap() error         { return e.Cause }

// Reporter is the external "syntax error reporter" collaborator (spec
// §6.1): the core calls it to surface user-visible and implementation-bug
// conditions. The core never formats final messages itself.
type Reporter interface {
	SyntaxError(message string, loc source.Position)
	TypeError(kind Kind, message string, loc source.Position)
	InternalFailure(message string, loc source.Position, cause error)
}

// CollectingReporter is the default Reporter used by tests and the CLI: it
// accumulates every diagnostic instead of printing it, mirroring the
// teacher's `c.errors = append(c.errors, err)` pattern in pkg/checker/error.go.
type CollectingReporter struct {
	Errors   []CheckerError
	Internal []*InternalError
}

func NewCollectingReporter() *CollectingReporter {
	return &CollectingReporter{}
}

func (r *CollectingReporter) SyntaxError(message string, loc source.Position) {
	r.Errors = append(r.Errors, &SyntaxError{Position: loc, Msg: message})
}

func (r *CollectingReporter) TypeError(kind Kind, message string, loc source.Position) {
	r.Errors = append(r.Errors, &TypeError{Position: loc, ErrKind: kind, Msg: message})
}

func (r *CollectingReporter) InternalFailure(message string, loc source.Position, cause error) {
	ie := &InternalError{Position: loc, Msg: message, Cause: cause}
	r.Internal = append(r.Internal, ie)
	r.Errors = append(r.Errors, ie)
}

// HasErrors reports whether any diagnostic (recoverable or internal) was collected.
func (r *CollectingReporter) HasErrors() bool {
	return len(r.Errors) > 0
}
