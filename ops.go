package rcs

import (
	"strings"

	"github.com/bcohen/editrcs/internal/errors"
)

// ReconstructText walks r from its head, applying TextFromDiff at each
// step, until it reaches target. This is the client-side reconstruction
// walk of spec §4.5; the library caches nothing, so repeated calls
// redo the walk.
func ReconstructText(r *Rcs, target Num) (string, error) {
	chain, err := r.TrunkChain()
	if err != nil {
		return "", err
	}
	idx := -1
	for i, rev := range chain {
		if rev == target {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", &errors.UnknownRevisionError{Num: string(target)}
	}
	head, err := r.GetDelta(r.Head())
	if err != nil {
		return "", err
	}
	text := head.Text()
	for i := 1; i <= idx; i++ {
		d, err := r.GetDelta(chain[i])
		if err != nil {
			return "", err
		}
		text, err = TextFromDiff(text, d.Text())
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// CheckoutStart reconstructs the text of the earliest trunk revision
// (the tail of the chain reached by following next from head), backing
// the checkout_start CLI (spec §8 S1).
func CheckoutStart(r *Rcs) (string, error) {
	chain, err := r.TrunkChain()
	if err != nil {
		return "", err
	}
	if len(chain) == 0 {
		return "", &errors.InvariantViolationError{Field: "head", Msg: "empty trunk chain"}
	}
	return ReconstructText(r, chain[len(chain)-1])
}

// RenameUser replaces author across every delta that has it, leaving
// every other field untouched (spec §8 S3).
func RenameUser(r *Rcs, oldUser, newUser string) {
	r.MapDeltas(func(_ Num, d *RcsDelta) {
		if d.Author() == oldUser {
			d.SetAuthor(newUser)
		}
	})
}

func requireNoBranches(r *Rcs, chain []Num) error {
	for _, rev := range chain {
		d, err := r.GetDelta(rev)
		if err != nil {
			return err
		}
		if len(d.Branches()) > 0 {
			return &errors.InvariantViolationError{Field: "join", Msg: "joining histories with branches is not supported"}
		}
	}
	return nil
}

// JoinRcs splices b's trunk onto the top of a's trunk, producing a
// single history (spec §8 S2). It requires that the text of a's head
// equal the text of b's earliest revision: that shared revision is
// where the two histories meet, and b's copy of it is dropped in
// favor of a's.
//
// b's trunk revisions above its earliest are renumbered by shifting
// every component positionally by shift = DecrementNum(a.Head(),
// bStart), so the new overall head is b's old head renumbered onto
// a's numbering scheme. b's symbols and locks are renumbered the same
// way and merged with a's (a's entries take precedence on collision).
//
// This implementation only joins trunk histories; neither a nor b may
// have branches, a scope limitation documented in DESIGN.md.
func JoinRcs(a, b *Rcs) (*Rcs, error) {
	aChain, err := a.TrunkChain()
	if err != nil {
		return nil, err
	}
	bChain, err := b.TrunkChain()
	if err != nil {
		return nil, err
	}
	if len(bChain) == 0 {
		return nil, &errors.InvariantViolationError{Field: "head", Msg: "b has no revisions"}
	}
	if err := requireNoBranches(a, aChain); err != nil {
		return nil, err
	}
	if err := requireNoBranches(b, bChain); err != nil {
		return nil, err
	}
	bStart := bChain[len(bChain)-1]

	aHeadDelta, err := a.GetDelta(a.Head())
	if err != nil {
		return nil, err
	}
	bStartText, err := ReconstructText(b, bStart)
	if err != nil {
		return nil, err
	}
	if aHeadDelta.Text() != bStartText {
		return nil, &errors.InvariantViolationError{Field: "join", Msg: "text(a.head) != text(b.start)"}
	}

	shift, err := DecrementNum(a.Head(), bStart)
	if err != nil {
		return nil, err
	}

	joined := New()
	joined.SetAccess(a.Access())
	joined.SetComment(a.Comment())
	joined.SetExpand(a.Expand())
	joined.SetDesc(a.Desc())
	joined.SetBranch(a.Branch())

	for _, rev := range aChain {
		d, err := a.GetDelta(rev)
		if err != nil {
			return nil, err
		}
		if err := joined.AddDelta(rev, d.Clone()); err != nil {
			return nil, err
		}
	}
	symbols := a.Symbols().Clone()
	locks := a.Locks().Clone()

	// bridge is the delta immediately above bStart in b's chain: the
	// one whose next gets redirected onto a.Head(). Once spliced,
	// a.Head() sits below bridge, so a.Head()'s text is recomputed as
	// the ed script from bridge's text to a.Head()'s own text.
	var bridge Num
	if len(bChain) >= 2 {
		bridge = bChain[len(bChain)-2]
	}

	newHead := a.Head()
	for i := len(bChain) - 2; i >= 0; i-- {
		rev := bChain[i]
		d, err := b.GetDelta(rev)
		if err != nil {
			return nil, err
		}
		nd := d.Clone()
		newRev, err := IncrementNum(rev, shift)
		if err != nil {
			return nil, err
		}
		nd.SetRevision(newRev)
		if nd.Next() == bStart {
			nd.SetNext(a.Head())
		} else if !nd.Next().Empty() {
			n, err := IncrementNum(nd.Next(), shift)
			if err != nil {
				return nil, err
			}
			nd.SetNext(n)
		}
		if err := joined.AddDelta(newRev, nd); err != nil {
			return nil, err
		}
		newHead = newRev
	}

	if !bridge.Empty() {
		bridgeText, err := ReconstructText(b, bridge)
		if err != nil {
			return nil, err
		}
		script, err := TextToDiff(bridgeText, aHeadDelta.Text())
		if err != nil {
			return nil, err
		}
		rejoined, err := joined.GetDelta(a.Head())
		if err != nil {
			return nil, err
		}
		rejoined.SetText(script, true)
	}

	b.Symbols().Each(func(sym string, rev Num) {
		if err != nil || symbols.Has(sym) {
			return
		}
		var newRev Num
		if rev == bStart {
			newRev = a.Head()
		} else {
			newRev, err = IncrementNum(rev, shift)
		}
		if err == nil {
			symbols.Set(sym, newRev)
		}
	})
	if err != nil {
		return nil, err
	}
	b.Locks().Each(func(user string, rev Num) {
		if err != nil || locks.Has(user) {
			return
		}
		var newRev Num
		if rev == bStart {
			newRev = a.Head()
		} else {
			newRev, err = IncrementNum(rev, shift)
		}
		if err == nil {
			locks.Set(user, newRev)
		}
	})
	if err != nil {
		return nil, err
	}
	joined.SetSymbols(symbols)
	joined.SetLocks(locks)

	if err := joined.SetHead(newHead); err != nil {
		return nil, err
	}
	if err := joined.Validate(); err != nil {
		return nil, err
	}
	return joined, nil
}

// PivotBranch makes the branch whose tip is branchHead the new trunk,
// with the former trunk head's chain continuing below it (spec §8
// S4). It requires the branch to spring directly from the current
// head; pivoting a branch off a deeper trunk revision is out of scope
// (see DESIGN.md).
func PivotBranch(r *Rcs, branchHead Num) (*Rcs, error) {
	tipDelta, err := r.GetDelta(branchHead)
	if err != nil {
		return nil, err
	}
	if !tipDelta.Next().Empty() {
		return nil, &errors.InvariantViolationError{Field: "branchHead", Msg: "not a branch tip"}
	}

	comps := strings.Split(string(branchHead), ".")
	if len(comps) < 3 || len(comps)%2 != 0 {
		return nil, &errors.InvalidNumError{A: string(branchHead)}
	}
	origin := Num(strings.Join(comps[:len(comps)-2], "."))
	if origin != r.Head() {
		return nil, &errors.InvariantViolationError{Field: "branchHead", Msg: "branch does not spring from head"}
	}
	originDelta, err := r.GetDelta(origin)
	if err != nil {
		return nil, err
	}
	rootRev := Num(strings.Join(comps[:len(comps)-1], ".") + ".1")
	foundRoot := false
	for _, b := range originDelta.Branches() {
		if b == rootRev {
			foundRoot = true
			break
		}
	}
	if !foundRoot {
		return nil, &errors.UnknownRevisionError{Num: string(rootRev)}
	}

	// chain: branch root to tip, oldest to newest.
	var chain []Num
	cur := rootRev
	for {
		chain = append(chain, cur)
		if cur == branchHead {
			break
		}
		d, err := r.GetDelta(cur)
		if err != nil {
			return nil, err
		}
		if d.Next().Empty() {
			return nil, &errors.InvariantViolationError{Field: "branchHead", Msg: "chain from root never reaches tip"}
		}
		cur = d.Next()
	}

	// Reconstruct every original text before mutating anything.
	texts := make(map[Num]string, len(chain)+1)
	originText, err := ReconstructText(r, origin)
	if err != nil {
		return nil, err
	}
	texts[origin] = originText
	prev := origin
	for _, rev := range chain {
		d, err := r.GetDelta(rev)
		if err != nil {
			return nil, err
		}
		t, err := TextFromDiff(texts[prev], d.Text())
		if err != nil {
			return nil, err
		}
		texts[rev] = t
		prev = rev
	}

	// ordered oldest-to-newest list whose predecessor relationship
	// changes: origin, then every chain member.
	rewritten := append([]Num{origin}, chain...)

	var newBranches []Num
	for _, b := range originDelta.Branches() {
		if b != rootRev {
			newBranches = append(newBranches, b)
		}
	}
	originDelta.SetBranches(newBranches)

	for i, rev := range chain {
		d, err := r.GetDelta(rev)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			d.SetNext(origin)
		} else {
			d.SetNext(chain[i-1])
		}
	}

	for i, rev := range rewritten {
		d, err := r.GetDelta(rev)
		if err != nil {
			return nil, err
		}
		if i == len(rewritten)-1 {
			d.SetText(texts[rev], false)
			continue
		}
		predecessor := rewritten[i+1]
		script, err := TextToDiff(texts[predecessor], texts[rev])
		if err != nil {
			return nil, err
		}
		d.SetText(script, true)
	}

	if err := r.SetHead(branchHead); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
