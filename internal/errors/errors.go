// Package errors defines the structured error taxonomy shared by the
// lexer, parser, revision-number algebra, diff engine and model of
// package rcs.
package errors

import "fmt"

// LexError reports a malformed token or an unterminated @-string.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("rcs: lex error at offset %d: %s", e.Offset, e.Msg)
}

// ParseError reports a grammar violation.
type ParseError struct {
	Offset   int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rcs: parse error at offset %d: expected %s", e.Offset, e.Expected)
}

// InvalidNumError reports incompatible operand shapes in revision-number
// arithmetic or comparison.
type InvalidNumError struct {
	A, B string
}

func (e *InvalidNumError) Error() string {
	return fmt.Sprintf("rcs: invalid num operands %q, %q", e.A, e.B)
}

// UnknownRevisionError reports a reference to a revision absent from
// the delta map.
type UnknownRevisionError struct {
	Num string
}

func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("rcs: unknown revision %q", e.Num)
}

// DuplicateRevisionError reports addDelta over an existing key.
type DuplicateRevisionError struct {
	Num string
}

func (e *DuplicateRevisionError) Error() string {
	return fmt.Sprintf("rcs: duplicate revision %q", e.Num)
}

// MalformedDiffError reports an ed-script command out of bounds.
type MalformedDiffError struct {
	Line int
	Msg  string
}

func (e *MalformedDiffError) Error() string {
	return fmt.Sprintf("rcs: malformed diff at line %d: %s", e.Line, e.Msg)
}

// InvariantViolationError reports a setter rejecting a value because it
// would break a §3 invariant.
type InvariantViolationError struct {
	Field string
	Msg   string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("rcs: invariant violation on %s: %s", e.Field, e.Msg)
}

func IsLexError(err error) bool {
	_, ok := err.(*LexError)
	return ok
}

func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}

func IsInvalidNum(err error) bool {
	_, ok := err.(*InvalidNumError)
	return ok
}

func IsUnknownRevision(err error) bool {
	_, ok := err.(*UnknownRevisionError)
	return ok
}

func IsDuplicateRevision(err error) bool {
	_, ok := err.(*DuplicateRevisionError)
	return ok
}

func IsMalformedDiff(err error) bool {
	_, ok := err.(*MalformedDiffError)
	return ok
}

func IsInvariantViolation(err error) bool {
	_, ok := err.(*InvariantViolationError)
	return ok
}
