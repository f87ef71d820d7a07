package rcs

import (
	"github.com/bcohen/editrcs/internal/errors"
	"github.com/bcohen/editrcs/internal/omap"
)

// RcsDelta is one revision's record: metadata plus either a full
// snapshot of the file at that revision (IsDiff == false) or an
// ed script that turns the text of the delta whose Next names this
// one into this delta's text (IsDiff == true). See spec §3.2.
//
// RcsDelta carries no back-pointer to the Rcs value that holds it;
// operations needing a sibling (textToDiff) take it explicitly.
type RcsDelta struct {
	revision Num
	date     string
	author   string
	state    string
	branches []Num
	next     Num
	log      string
	text     string
	isDiff   bool

	commitID       string
	newphraseDelta []Newphrase
}

// NewRcsDelta returns an RcsDelta for revision with zero-valued
// fields; the caller fills in the rest via setters.
func NewRcsDelta(revision Num) *RcsDelta {
	return &RcsDelta{revision: revision}
}

func (d *RcsDelta) Revision() Num     { return d.revision }
func (d *RcsDelta) SetRevision(n Num) { d.revision = n }

func (d *RcsDelta) Date() string      { return d.date }
func (d *RcsDelta) SetDate(s string)  { d.date = s }
func (d *RcsDelta) Author() string    { return d.author }
func (d *RcsDelta) SetAuthor(s string) { d.author = s }
func (d *RcsDelta) State() string     { return d.state }
func (d *RcsDelta) SetState(s string) { d.state = s }

// Branches returns the ordered set of child branch heads originating
// at this delta. The caller must not modify the returned slice.
func (d *RcsDelta) Branches() []Num { return d.branches }
func (d *RcsDelta) SetBranches(b []Num) {
	d.branches = append([]Num(nil), b...)
}

func (d *RcsDelta) Next() Num     { return d.next }
func (d *RcsDelta) SetNext(n Num) { d.next = n }

func (d *RcsDelta) Log() string     { return d.log }
func (d *RcsDelta) SetLog(s string) { d.log = s }

func (d *RcsDelta) CommitID() string     { return d.commitID }
func (d *RcsDelta) SetCommitID(s string) { d.commitID = s }

// Newphrase is a captured, unrecognised admin, delta-header or
// deltatext phrase: an id followed by its value, the id/num/string
// words up to the terminating ';' rejoined with single spaces (strings
// keep their @-quoting). The original spacing between words is not
// kept (spec §4.2, §9).
type Newphrase struct {
	Name  string
	Value string
}

func (d *RcsDelta) NewphraseDelta() []Newphrase { return d.newphraseDelta }
func (d *RcsDelta) SetNewphraseDelta(n []Newphrase) {
	d.newphraseDelta = append([]Newphrase(nil), n...)
}

// Text returns the raw text field, whichever form is stored: a full
// snapshot when IsDiff is false, otherwise an ed script applied to the
// text of the delta whose Next names this one.
func (d *RcsDelta) Text() string { return d.text }

// SetText replaces the text field and records its form.
func (d *RcsDelta) SetText(text string, isDiff bool) {
	d.text = text
	d.isDiff = isDiff
}

// IsDiff reports whether Text holds an ed script (true) or a full
// snapshot (false).
func (d *RcsDelta) IsDiff() bool { return d.isDiff }

// TextToDiff replaces d's text with the ed script from d's current
// text to other's text, and marks d as a diff: applying d's new text
// with TextFromDiff to d's former text yields other's text.
func (d *RcsDelta) TextToDiff(other *RcsDelta) error {
	script, err := TextToDiff(d.text, other.text)
	if err != nil {
		return err
	}
	d.SetText(script, true)
	return nil
}

// Clone returns a deep copy of d: no slice or string in the result
// aliases d's storage.
func (d *RcsDelta) Clone() *RcsDelta {
	c := *d
	c.branches = append([]Num(nil), d.branches...)
	c.newphraseDelta = append([]Newphrase(nil), d.newphraseDelta...)
	return &c
}

// Rcs is the in-memory model of an RCS ,v file: the admin section plus
// the delta store. See spec §3.3.
type Rcs struct {
	head    Num
	branch  Num
	access  []string
	symbols *omap.Map[Num]
	locks   *omap.Map[Num]
	strict    bool
	integrity string
	comment   string
	expand    string
	desc      string

	newphraseAdmin []Newphrase

	deltas *omap.Map[*RcsDelta]
}

// New returns an empty Rcs with no head; the caller must AddDelta at
// least one delta and SetHead before the value satisfies the §3.3
// invariants.
func New() *Rcs {
	return &Rcs{
		symbols: omap.New[Num](),
		locks:   omap.New[Num](),
		deltas:  omap.New[*RcsDelta](),
	}
}

func (r *Rcs) Head() Num { return r.head }

// SetHead validates that revision names an existing delta before
// accepting it, per spec §4.5.
func (r *Rcs) SetHead(revision Num) error {
	if !revision.Empty() && !r.deltas.Has(string(revision)) {
		return &errors.InvariantViolationError{Field: "head", Msg: "revision " + string(revision) + " not in deltas"}
	}
	r.head = revision
	return nil
}

// setHeadUnchecked sets head without validating it against deltas, for
// the parser's use while the delta map is still being built.
func (r *Rcs) setHeadUnchecked(revision Num) { r.head = revision }

func (r *Rcs) Branch() Num     { return r.branch }
func (r *Rcs) SetBranch(n Num) { r.branch = n }

// Access returns the ordered sequence of user ids permitted to commit.
// The caller must not modify the returned slice.
func (r *Rcs) Access() []string { return r.access }
func (r *Rcs) SetAccess(ids []string) {
	r.access = append([]string(nil), ids...)
}

// Symbols returns the live symbolic-name-to-revision map, in insertion
// order via its Each/Keys methods.
func (r *Rcs) Symbols() *omap.Map[Num] { return r.symbols }
func (r *Rcs) SetSymbols(m *omap.Map[Num]) {
	if m == nil {
		m = omap.New[Num]()
	}
	r.symbols = m
}

func (r *Rcs) Locks() *omap.Map[Num] { return r.locks }
func (r *Rcs) SetLocks(m *omap.Map[Num]) {
	if m == nil {
		m = omap.New[Num]()
	}
	r.locks = m
}

func (r *Rcs) Strict() bool     { return r.strict }
func (r *Rcs) SetStrict(v bool) { r.strict = v }

// Integrity is the opaque RCS 5.8 admin checksum phrase, preserved
// verbatim for round-tripping; this library does not compute or
// verify it.
func (r *Rcs) Integrity() string     { return r.integrity }
func (r *Rcs) SetIntegrity(s string) { r.integrity = s }

func (r *Rcs) Comment() string   { return r.comment }
func (r *Rcs) SetComment(s string) { r.comment = s }
func (r *Rcs) Expand() string    { return r.expand }
func (r *Rcs) SetExpand(s string) { r.expand = s }
func (r *Rcs) Desc() string      { return r.desc }
func (r *Rcs) SetDesc(s string)  { r.desc = s }

func (r *Rcs) NewphraseAdmin() []Newphrase { return r.newphraseAdmin }
func (r *Rcs) SetNewphraseAdmin(n []Newphrase) {
	r.newphraseAdmin = append([]Newphrase(nil), n...)
}

// GetDelta returns the delta for revision, or UnknownRevisionError.
func (r *Rcs) GetDelta(revision Num) (*RcsDelta, error) {
	d, ok := r.deltas.Get(string(revision))
	if !ok {
		return nil, &errors.UnknownRevisionError{Num: string(revision)}
	}
	return d, nil
}

// AddDelta inserts delta under revision. It fails with
// DuplicateRevisionError if the key is already present.
func (r *Rcs) AddDelta(revision Num, delta *RcsDelta) error {
	if r.deltas.Has(string(revision)) {
		return &errors.DuplicateRevisionError{Num: string(revision)}
	}
	r.deltas.Set(string(revision), delta)
	return nil
}

// RemoveDelta deletes the delta for revision, if present.
func (r *Rcs) RemoveDelta(revision Num) {
	r.deltas.Delete(string(revision))
}

// DeltaCount returns the number of deltas.
func (r *Rcs) DeltaCount() int { return r.deltas.Len() }

// Revisions returns all revision numbers in insertion order (file
// order, as seeded by the parser). The caller must not modify the
// returned slice.
func (r *Rcs) Revisions() []string { return r.deltas.Keys() }

// MapDeltas applies fn to every delta in insertion order.
func (r *Rcs) MapDeltas(fn func(revision Num, delta *RcsDelta)) {
	r.deltas.Each(func(key string, d *RcsDelta) {
		fn(Num(key), d)
	})
}

// RenumberDeltas replaces the delta store with the result of applying
// fn to every (revision, delta) pair, collecting the results into a
// fresh ordered map rather than mutating keys under iteration (spec
// §9 "Mutation-during-iteration"). fn may return a different revision
// number than it was given, renumbering the delta; it must not return
// a revision already produced by an earlier call for this invocation.
func (r *Rcs) RenumberDeltas(fn func(revision Num, delta *RcsDelta) (Num, *RcsDelta)) error {
	fresh := omap.New[*RcsDelta]()
	var err error
	r.deltas.Each(func(key string, d *RcsDelta) {
		if err != nil {
			return
		}
		newRev, newDelta := fn(Num(key), d)
		if fresh.Has(string(newRev)) {
			err = &errors.DuplicateRevisionError{Num: string(newRev)}
			return
		}
		fresh.Set(string(newRev), newDelta)
	})
	if err != nil {
		return err
	}
	r.deltas = fresh
	return nil
}

// Validate checks the §3.3 invariants that tie the admin section to
// the delta store: head must name an existing non-diff delta, every
// next/branch/symbol/lock reference must resolve, and head must reach
// the start of the trunk by following next links.
func (r *Rcs) Validate() error {
	if r.head.Empty() {
		return &errors.InvariantViolationError{Field: "head", Msg: "head is not set"}
	}
	headDelta, err := r.GetDelta(r.head)
	if err != nil {
		return err
	}
	if headDelta.IsDiff() {
		return &errors.InvariantViolationError{Field: "head", Msg: "head delta must carry a full snapshot, not a diff"}
	}
	var walkErr error
	r.deltas.Each(func(key string, d *RcsDelta) {
		if walkErr != nil {
			return
		}
		if !d.next.Empty() && !r.deltas.Has(string(d.next)) {
			walkErr = &errors.UnknownRevisionError{Num: string(d.next)}
			return
		}
		for _, b := range d.branches {
			if !r.deltas.Has(string(b)) {
				walkErr = &errors.UnknownRevisionError{Num: string(b)}
				return
			}
		}
	})
	if walkErr != nil {
		return walkErr
	}
	if _, err := r.TrunkChain(); err != nil {
		return err
	}
	var symErr error
	r.symbols.Each(func(sym string, rev Num) {
		if symErr != nil {
			return
		}
		if !r.deltas.Has(string(rev)) {
			symErr = &errors.UnknownRevisionError{Num: string(rev)}
		}
	})
	if symErr != nil {
		return symErr
	}
	var lockErr error
	r.locks.Each(func(user string, rev Num) {
		if lockErr != nil {
			return
		}
		if !r.deltas.Has(string(rev)) {
			lockErr = &errors.UnknownRevisionError{Num: string(rev)}
		}
	})
	return lockErr
}

// TrunkChain walks from head by next links and returns the visited
// revisions from head to the start of the trunk, inclusive.
func (r *Rcs) TrunkChain() ([]Num, error) {
	var chain []Num
	seen := make(map[Num]bool)
	cur := r.head
	for !cur.Empty() {
		if seen[cur] {
			return nil, &errors.InvariantViolationError{Field: "next", Msg: "cycle detected in trunk chain at " + string(cur)}
		}
		seen[cur] = true
		chain = append(chain, cur)
		d, err := r.GetDelta(cur)
		if err != nil {
			return nil, err
		}
		cur = d.next
	}
	return chain, nil
}
