// Package rcs reads, manipulates, and writes RCS ,v files: the
// append-only revision-history format produced by the Revision
// Control System (see rcsfile(5)). It models a file's full history —
// the admin section plus per-revision deltas, each carrying either a
// full snapshot or an ed-script diff — and supports transformations
// the stock RCS tools do not: joining two histories, renaming a
// committer across every delta, renumbering revisions, and pivoting a
// branch to become the trunk.
//
// The package is synchronous and holds no internal state beyond the
// Rcs value a caller constructs; nothing here spawns a goroutine or
// needs a context.Context.
package rcs

import "github.com/bcohen/editrcs/internal/logger"

// Logger is the four-level logging interface ParseRcs uses for parse
// diagnostics; the emitter and the model mutators do not log. Callers
// may supply their own implementation via Options.Logger.
type Logger = logger.Logger

// DiscardLogger is a Logger that drops every message.
var DiscardLogger Logger = logger.Discard

// Options configures ParseRcs. The zero value behaves like
// DefaultOptions: a nil Logger is treated as DiscardLogger.
type Options struct {
	// Logger receives parse diagnostics. Defaults to DiscardLogger.
	Logger Logger

	// RejectPre59Newphrase, when true, makes ParseRcs return a
	// ParseError on a newphrase shape that predates RCS 5.9 instead
	// of the default behavior of ignoring and preserving it
	// verbatim (see spec §6, §9 "newphrase preservation").
	RejectPre59Newphrase bool

	// MaxStringBytes bounds the decoded length of a single @-quoted
	// string token. Zero means unbounded. Exceeding it surfaces as a
	// LexError.
	MaxStringBytes int
}

// DefaultOptions returns the zero-risk default configuration:
// DiscardLogger, pre-5.9 newphrases ignored rather than rejected, and
// no string-length ceiling.
func DefaultOptions() Options {
	return Options{
		Logger: DiscardLogger,
	}
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return DiscardLogger
	}
	return o.Logger
}
