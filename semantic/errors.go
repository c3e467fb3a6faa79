// Package semantic implements name resolution, type checking, constant folding and definite-return analysis for
// MiniJava syntax trees.
package semantic

import (
	"fmt"

	"github.com/xiaobogaga/minijava/ast"
)

// Kind classifies a semantic error. A single kind covers several messages that share a cause.
type Kind int

const (
	DuplicateClass Kind = iota + 1
	DuplicateMember
	UnknownType
	InvalidVoidUsage
	MissingEntryPoint
	MultipleEntryPoints
	WrongEntryPointName
	TypeMismatch
	NotAnLvalue
	NoSuchMember
	Argument
	UnqualifiedAccessInStaticContext
	DuplicateLocalDefinition
	LiteralOverflow
	NonReturningMethod
	UnknownName
	EntryPointArgsUsage
	// UndefinedResult is never returned by the analysis itself. It describes the nodes handed to a fold
	// ProblemHandler, so that a handler may return it to abort folding.
	UndefinedResult
)

var kindNames = map[Kind]string{
	DuplicateClass:                   "duplicate class",
	DuplicateMember:                  "duplicate member",
	UnknownType:                      "unknown type",
	InvalidVoidUsage:                 "invalid use of void",
	MissingEntryPoint:                "missing entry point",
	MultipleEntryPoints:              "multiple entry points",
	WrongEntryPointName:              "wrong entry point name",
	TypeMismatch:                     "type mismatch",
	NotAnLvalue:                      "not an lvalue",
	NoSuchMember:                     "no such member",
	Argument:                         "argument mismatch",
	UnqualifiedAccessInStaticContext: "unqualified access in static context",
	DuplicateLocalDefinition:         "duplicate local definition",
	LiteralOverflow:                  "literal overflow",
	NonReturningMethod:               "non-returning method",
	UnknownName:                      "unknown name",
	EntryPointArgsUsage:              "entry point argument usage",
	UndefinedResult:                  "undefined result",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type returned for every semantic check failure.
type Error struct {
	Kind Kind
	Pos  ast.Position // Zero if the triggering node has no position.
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// Is makes errors.Is(err, ErrTypeMismatch) and friends match any error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && !t.Pos.IsValid()
}

var (
	ErrDuplicateClass                   = &Error{Kind: DuplicateClass}
	ErrDuplicateMember                  = &Error{Kind: DuplicateMember}
	ErrUnknownType                      = &Error{Kind: UnknownType}
	ErrInvalidVoidUsage                 = &Error{Kind: InvalidVoidUsage}
	ErrMissingEntryPoint                = &Error{Kind: MissingEntryPoint}
	ErrMultipleEntryPoints              = &Error{Kind: MultipleEntryPoints}
	ErrWrongEntryPointName              = &Error{Kind: WrongEntryPointName}
	ErrTypeMismatch                     = &Error{Kind: TypeMismatch}
	ErrNotAnLvalue                      = &Error{Kind: NotAnLvalue}
	ErrNoSuchMember                     = &Error{Kind: NoSuchMember}
	ErrArgument                         = &Error{Kind: Argument}
	ErrUnqualifiedAccessInStaticContext = &Error{Kind: UnqualifiedAccessInStaticContext}
	ErrDuplicateLocalDefinition         = &Error{Kind: DuplicateLocalDefinition}
	ErrLiteralOverflow                  = &Error{Kind: LiteralOverflow}
	ErrNonReturningMethod               = &Error{Kind: NonReturningMethod}
	ErrUnknownName                      = &Error{Kind: UnknownName}
	ErrEntryPointArgsUsage              = &Error{Kind: EntryPointArgsUsage}
	ErrUndefinedResult                  = &Error{Kind: UndefinedResult}
)

func makeSemanticError(kind Kind, node ast.Node, format string, msg ...interface{}) *Error {
	err := &Error{Kind: kind, Msg: fmt.Sprintf(format, msg...)}
	if node != nil {
		err.Pos = node.Pos()
	}
	return err
}
