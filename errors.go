package rcs

import "github.com/bcohen/editrcs/internal/errors"

// Re-exported error types, so callers type-switch against package rcs
// rather than reaching into internal/errors (mirrors the teacher's
// root errors.go).
type (
	LexError                = errors.LexError
	ParseError               = errors.ParseError
	InvalidNumError          = errors.InvalidNumError
	UnknownRevisionError     = errors.UnknownRevisionError
	DuplicateRevisionError   = errors.DuplicateRevisionError
	MalformedDiffError       = errors.MalformedDiffError
	InvariantViolationError  = errors.InvariantViolationError
)

var (
	IsLexError           = errors.IsLexError
	IsParseError         = errors.IsParseError
	IsInvalidNum         = errors.IsInvalidNum
	IsUnknownRevision    = errors.IsUnknownRevision
	IsDuplicateRevision  = errors.IsDuplicateRevision
	IsMalformedDiff      = errors.IsMalformedDiff
	IsInvariantViolation = errors.IsInvariantViolation
)
