package rcs

import (
	"strings"

	"github.com/bcohen/editrcs/internal/errors"
	"github.com/bcohen/editrcs/internal/lex"
)

// Lexer tokenizes RCS ,v source in a single left-to-right pass. It
// classifies id, num, sym, string, ':' and ';' tokens per rcsfile(5)
// and is agnostic of the grammar that consumes them; Parser drives it.
type Lexer struct {
	s              *lex.Scanner
	maxStringBytes int
}

// NewLexer returns a Lexer over buf. maxStringBytes bounds the decoded
// length of a single @-quoted string; 0 means unbounded.
func NewLexer(buf []byte, maxStringBytes int) *Lexer {
	return &Lexer{s: lex.New(buf), maxStringBytes: maxStringBytes}
}

// Offset returns the current byte offset, for error reporting.
func (l *Lexer) Offset() int {
	return l.s.Offset()
}

// PeekOffset skips leading whitespace and returns the byte offset of
// the next token without consuming it, so a caller can anchor an
// offset-carrying error at a token it is about to read.
func (l *Lexer) PeekOffset() int {
	l.s.SkipWhitespace()
	return l.s.Offset()
}

func (l *Lexer) lexErr(msg string) error {
	return &errors.LexError{Offset: l.s.Offset(), Msg: msg}
}

func (l *Lexer) parseErr(expected string) error {
	return &errors.ParseError{Offset: l.s.Offset(), Expected: expected}
}

// GetNum consumes a num token: one or more digits or dots. If required
// is false and none is present, it returns ok=false without error.
func (l *Lexer) GetNum(required bool) (num string, ok bool, err error) {
	l.s.SkipWhitespace()
	tok := l.s.TakeWhile(func(b byte) bool { return lex.IsDigit(b) || b == '.' })
	if len(tok) == 0 {
		if required {
			return "", false, l.parseErr("<num>")
		}
		return "", false, nil
	}
	return string(tok), true, nil
}

// GetId consumes an id token: idchar or dot, one or more.
func (l *Lexer) GetId(required bool) (id string, ok bool, err error) {
	l.s.SkipWhitespace()
	tok := l.s.TakeWhile(func(b byte) bool { return lex.IsIdChar(b) || b == '.' })
	if len(tok) == 0 {
		if required {
			return "", false, l.parseErr("<id>")
		}
		return "", false, nil
	}
	return string(tok), true, nil
}

// GetSym consumes a sym token: one or more idchars (no embedded dots).
func (l *Lexer) GetSym(required bool) (sym string, ok bool, err error) {
	l.s.SkipWhitespace()
	tok := l.s.TakeWhile(lex.IsIdChar)
	if len(tok) == 0 {
		if required {
			return "", false, l.parseErr("<sym>")
		}
		return "", false, nil
	}
	return string(tok), true, nil
}

// GetKeyword consumes the literal keyword kw if the next token is
// exactly kw followed by whitespace, a special character, or EOF.
// It does not consume the trailing delimiter.
func (l *Lexer) GetKeyword(kw string, required bool) (ok bool, err error) {
	l.s.SkipWhitespace()
	save := l.s.Offset()
	for i := 0; i < len(kw); i++ {
		b, has := l.s.Peek()
		if !has || b != kw[i] {
			l.rewind(save)
			if required {
				return false, l.parseErr("'" + kw + "'")
			}
			return false, nil
		}
		l.s.Advance()
	}
	if b, has := l.s.Peek(); has && !lex.IsWhitespace(b) && !lex.IsSpecial(b) {
		l.rewind(save)
		if required {
			return false, l.parseErr("'" + kw + "'")
		}
		return false, nil
	}
	return true, nil
}

func (l *Lexer) rewind(pos int) {
	l.s.Seek(pos)
}

// GetColon consumes a single ':'.
func (l *Lexer) GetColon(required bool) (ok bool, err error) {
	return l.getByte(':', required)
}

// GetSemicolon consumes a single ';'.
func (l *Lexer) GetSemicolon(required bool) (ok bool, err error) {
	return l.getByte(';', required)
}

func (l *Lexer) getByte(want byte, required bool) (bool, error) {
	l.s.SkipWhitespace()
	b, has := l.s.Peek()
	if !has || b != want {
		if required {
			return false, l.parseErr(string(want))
		}
		return false, nil
	}
	l.s.Advance()
	return true, nil
}

// GetString consumes an @-quoted string, unescaping doubled '@' and
// returning the decoded bytes. It does not interpret newlines: they
// are literal content.
func (l *Lexer) GetString(required bool) (string, bool, error) {
	l.s.SkipWhitespace()
	b, has := l.s.Peek()
	if !has || b != '@' {
		if required {
			return "", false, l.parseErr("<string>")
		}
		return "", false, nil
	}
	openOffset := l.s.Offset()
	l.s.Advance()
	var out []byte
	for {
		b, has := l.s.Peek()
		if !has {
			return "", false, &errors.LexError{Offset: openOffset, Msg: "unterminated @-string"}
		}
		if b != '@' {
			out = append(out, b)
			l.s.Advance()
			if l.maxStringBytes > 0 && len(out) > l.maxStringBytes {
				return "", false, &errors.LexError{Offset: openOffset, Msg: "@-string exceeds maximum length"}
			}
			continue
		}
		// b == '@': either doubled (escaped) or terminator.
		l.s.Advance()
		nb, has := l.s.Peek()
		if has && nb == '@' {
			out = append(out, '@')
			l.s.Advance()
			continue
		}
		return string(out), true, nil
	}
}

// GetNewphraseValue consumes the raw value of an unrecognised admin or
// delta-header phrase: a run of id/num/string words up to (but not
// including) the terminating ';', reassembled with single-space
// separators. Used to capture and later re-emit newphrases verbatim
// in meaning, per spec §9.
func (l *Lexer) GetNewphraseValue() (string, error) {
	var words []string
	for {
		if s, ok, err := l.GetString(false); err != nil {
			return "", err
		} else if ok {
			words = append(words, quoteAtString(s))
			continue
		}
		if n, ok, err := l.GetNum(false); err != nil {
			return "", err
		} else if ok {
			words = append(words, n)
			continue
		}
		if id, ok, err := l.GetId(false); err != nil {
			return "", err
		} else if ok {
			words = append(words, id)
			continue
		}
		break
	}
	return strings.Join(words, " "), nil
}

// quoteAtString returns s wrapped in '@'-quotes with embedded '@'
// doubled, the canonical encoding of every user-supplied string field.
func quoteAtString(s string) string {
	return "@" + strings.ReplaceAll(s, "@", "@@") + "@"
}

// CheckNewlineTerm requires that nothing but whitespace (any amount,
// including none) remains in the input.
func (l *Lexer) CheckNewlineTerm() error {
	l.s.SkipWhitespace()
	b, has := l.s.Peek()
	if has && b == '\n' {
		l.s.Advance()
	}
	if !l.s.Done() {
		return l.parseErr("end of file")
	}
	return nil
}
