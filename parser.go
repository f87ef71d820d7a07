package rcs

import (
	"github.com/bcohen/editrcs/internal/errors"
	"github.com/bcohen/editrcs/internal/omap"
)

// ParseRcs parses the bytes of an RCS ,v file into an Rcs value, per
// the grammar of rcsfile(5):
//
//	rcsfile  := admin {delta}+ desc {deltatext}+
//	admin    := "head" num ";"
//	           ["branch" num ";"]
//	            "access" {id} ";"
//	            "symbols" {sym ":" num} ";"
//	            "locks"  {id  ":" num} ";" ["strict" ";"]
//	           ["integrity" string ";"]
//	           ["comment" string ";"]
//	           ["expand"  string ";"]
//	            {newphrase}
//	delta    := num "date" num ";" "author" id ";"
//	                "state" [id] ";"
//	                "branches" {num} ";"
//	                "next" [num] ";"
//	               ["commitid" id ";"]
//	                {newphrase}
//	desc     := "desc" string
//	deltatext:= num "log" string {newphrase} "text" string
//
// Delta-header records and delta-text records are merged by revision
// number into the returned value's delta map. Unknown newphrases are
// captured as Newphrase values; those found in a deltatext record are
// kept with the delta's header newphrases.
func ParseRcs(data []byte, opts Options) (*Rcs, error) {
	log := opts.logger()
	l := NewLexer(data, opts.MaxStringBytes)
	r := New()

	if err := parseAdmin(l, r, opts); err != nil {
		return nil, err
	}
	log.Debugf("rcs: admin parsed, head=%s", r.Head())

	headers := omap.New[*RcsDelta]()
	for {
		save := l.PeekOffset()
		num, ok, err := l.GetNum(false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if headers.Has(num) {
			return nil, &errors.ParseError{Offset: save, Expected: "unique revision number"}
		}
		d, err := parseDeltaHeader(l, Num(num), opts)
		if err != nil {
			return nil, err
		}
		headers.Set(num, d)
	}
	if headers.Len() == 0 {
		return nil, l.parseErr("<num> (at least one delta)")
	}

	if _, err := l.GetKeyword("desc", true); err != nil {
		return nil, err
	}
	desc, _, err := l.GetString(true)
	if err != nil {
		return nil, err
	}
	r.SetDesc(desc)

	for {
		save := l.PeekOffset()
		num, ok, err := l.GetNum(false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		d, ok := headers.Get(num)
		if !ok {
			return nil, &errors.UnknownRevisionError{Num: num}
		}
		if _, err := r.GetDelta(Num(num)); err == nil {
			// A delta-header record for num was already merged into r by
			// an earlier deltatext record: this is a second occurrence
			// of the same revision's text, not a new one.
			return nil, &errors.ParseError{Offset: save, Expected: "unique revision number"}
		}
		if err := parseDeltaText(l, r, d, opts); err != nil {
			return nil, err
		}
		if err := r.AddDelta(Num(num), d); err != nil {
			return nil, err
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := l.CheckNewlineTerm(); err != nil {
		return nil, err
	}
	log.Infof("rcs: parsed %d deltas", r.DeltaCount())
	return r, nil
}

func parseAdmin(l *Lexer, r *Rcs, opts Options) error {
	if _, err := l.GetKeyword("head", true); err != nil {
		return err
	}
	head, _, err := l.GetNum(true)
	if err != nil {
		return err
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return err
	}

	if ok, err := l.GetKeyword("branch", false); err != nil {
		return err
	} else if ok {
		branch, _, err := l.GetNum(false)
		if err != nil {
			return err
		}
		if _, err := l.GetSemicolon(true); err != nil {
			return err
		}
		r.SetBranch(Num(branch))
	}

	if _, err := l.GetKeyword("access", true); err != nil {
		return err
	}
	var access []string
	for {
		id, ok, err := l.GetId(false)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		access = append(access, id)
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return err
	}
	r.SetAccess(access)

	if _, err := l.GetKeyword("symbols", true); err != nil {
		return err
	}
	symbols := omap.New[Num]()
	for {
		sym, ok, err := l.GetSym(false)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if _, err := l.GetColon(true); err != nil {
			return err
		}
		rev, _, err := l.GetNum(true)
		if err != nil {
			return err
		}
		symbols.Set(sym, Num(rev))
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return err
	}
	r.SetSymbols(symbols)

	if _, err := l.GetKeyword("locks", true); err != nil {
		return err
	}
	locks := omap.New[Num]()
	for {
		id, ok, err := l.GetId(false)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if _, err := l.GetColon(true); err != nil {
			return err
		}
		rev, _, err := l.GetNum(true)
		if err != nil {
			return err
		}
		locks.Set(id, Num(rev))
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return err
	}
	r.SetLocks(locks)

	if ok, err := l.GetKeyword("strict", false); err != nil {
		return err
	} else if ok {
		if _, err := l.GetSemicolon(true); err != nil {
			return err
		}
		r.SetStrict(true)
	}

	// SetHead's invariant check requires the delta to already exist,
	// which isn't true yet during admin parsing; Rcs.Validate at the
	// end of ParseRcs enforces it once every delta is in place.
	r.setHeadUnchecked(Num(head))

	if ok, err := l.GetKeyword("integrity", false); err != nil {
		return err
	} else if ok {
		s, _, err := l.GetString(true)
		if err != nil {
			return err
		}
		if _, err := l.GetSemicolon(true); err != nil {
			return err
		}
		r.SetIntegrity(s)
	}

	if ok, err := l.GetKeyword("comment", false); err != nil {
		return err
	} else if ok {
		s, _, err := l.GetString(true)
		if err != nil {
			return err
		}
		if _, err := l.GetSemicolon(true); err != nil {
			return err
		}
		r.SetComment(s)
	}

	if ok, err := l.GetKeyword("expand", false); err != nil {
		return err
	} else if ok {
		s, _, err := l.GetString(true)
		if err != nil {
			return err
		}
		if _, err := l.GetSemicolon(true); err != nil {
			return err
		}
		r.SetExpand(s)
	}

	newphrases, err := parseNewphrases(l, opts)
	if err != nil {
		return err
	}
	r.SetNewphraseAdmin(newphrases)
	return nil
}

func parseDeltaHeader(l *Lexer, revision Num, opts Options) (*RcsDelta, error) {
	d := NewRcsDelta(revision)

	if _, err := l.GetKeyword("date", true); err != nil {
		return nil, err
	}
	date, _, err := l.GetNum(true)
	if err != nil {
		return nil, err
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return nil, err
	}
	d.SetDate(date)

	if _, err := l.GetKeyword("author", true); err != nil {
		return nil, err
	}
	author, _, err := l.GetId(true)
	if err != nil {
		return nil, err
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return nil, err
	}
	d.SetAuthor(author)

	if _, err := l.GetKeyword("state", true); err != nil {
		return nil, err
	}
	state, _, err := l.GetId(false)
	if err != nil {
		return nil, err
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return nil, err
	}
	d.SetState(state)

	if _, err := l.GetKeyword("branches", true); err != nil {
		return nil, err
	}
	var branches []Num
	for {
		b, ok, err := l.GetNum(false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		branches = append(branches, Num(b))
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return nil, err
	}
	d.SetBranches(branches)

	if _, err := l.GetKeyword("next", true); err != nil {
		return nil, err
	}
	next, _, err := l.GetNum(false)
	if err != nil {
		return nil, err
	}
	if _, err := l.GetSemicolon(true); err != nil {
		return nil, err
	}
	d.SetNext(Num(next))

	if ok, err := l.GetKeyword("commitid", false); err != nil {
		return nil, err
	} else if ok {
		id, _, err := l.GetId(true)
		if err != nil {
			return nil, err
		}
		if _, err := l.GetSemicolon(true); err != nil {
			return nil, err
		}
		d.SetCommitID(id)
	}

	newphrases, err := parseNewphrases(l, opts)
	if err != nil {
		return nil, err
	}
	d.SetNewphraseDelta(newphrases)
	return d, nil
}

func parseDeltaText(l *Lexer, r *Rcs, d *RcsDelta, opts Options) error {
	if _, err := l.GetKeyword("log", true); err != nil {
		return err
	}
	logMsg, _, err := l.GetString(true)
	if err != nil {
		return err
	}
	d.SetLog(logMsg)

	newphrases, err := parseNewphrases(l, opts)
	if err != nil {
		return err
	}
	d.SetNewphraseDelta(append(d.NewphraseDelta(), newphrases...))

	if _, err := l.GetKeyword("text", true); err != nil {
		return err
	}
	text, _, err := l.GetString(true)
	if err != nil {
		return err
	}
	d.SetText(text, d.Revision() != r.Head())
	return nil
}

// parseNewphrases consumes zero or more trailing "<id> <value> ;"
// phrases that aren't one of the grammar's fixed keywords: it stops as
// soon as the next token is a num (the start of the next delta or of
// deltatext) or one of the fixed keywords that follow newphrase's
// position in the grammar ("desc", "log", "text").
func parseNewphrases(l *Lexer, opts Options) ([]Newphrase, error) {
	var out []Newphrase
	for {
		save := l.Offset()
		id, ok, err := l.GetId(false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		switch id {
		case "desc", "log", "text", "date", "author", "state", "branches", "next", "commitid":
			l.rewind(save)
			return out, nil
		}
		if isNumShape(id) {
			// GetId's idchar class subsumes digits and '.', so a bare
			// revision number (the start of the next delta header or
			// deltatext record) lexes as an id here too; only an
			// actual newphrase name contains a non-numeric byte.
			l.rewind(save)
			return out, nil
		}
		value, err := l.GetNewphraseValue()
		if err != nil {
			return nil, err
		}
		if _, err := l.GetSemicolon(true); err != nil {
			return nil, err
		}
		if opts.RejectPre59Newphrase && value == "" {
			return nil, &errors.ParseError{Offset: save, Expected: "RCS 5.9+ newphrase value"}
		}
		opts.logger().Debugf("rcs: captured newphrase %q", id)
		out = append(out, Newphrase{Name: id, Value: value})
	}
}

// isNumShape reports whether s consists solely of digits and '.', the
// lexical shape of a revision number, with at least one digit.
func isNumShape(s string) bool {
	hasDigit := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.':
		default:
			return false
		}
	}
	return hasDigit
}
