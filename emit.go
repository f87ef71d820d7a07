package rcs

import (
	"strings"
)

// Emit serializes r as a byte-faithful RCS ,v file: the admin section
// in canonical order (head, branch?, access, symbols, locks [strict],
// integrity?, comment?, expand?, captured newphrases), the delta
// headers in insertion order, desc, then the delta-text records in
// insertion order. Every user-supplied string is @-quoted with
// embedded @ doubled.
func Emit(r *Rcs) []byte {
	var sb strings.Builder

	sb.WriteString("head\t")
	sb.WriteString(string(r.Head()))
	sb.WriteString(";\n")

	if !r.Branch().Empty() {
		sb.WriteString("branch\t")
		sb.WriteString(string(r.Branch()))
		sb.WriteString(";\n")
	}

	sb.WriteString("access")
	for _, id := range r.Access() {
		sb.WriteString("\n\t")
		sb.WriteString(id)
	}
	sb.WriteString(";\n")

	sb.WriteString("symbols")
	r.Symbols().Each(func(sym string, rev Num) {
		sb.WriteString("\n\t")
		sb.WriteString(sym)
		sb.WriteByte(':')
		sb.WriteString(string(rev))
	})
	sb.WriteString(";\n")

	sb.WriteString("locks")
	r.Locks().Each(func(user string, rev Num) {
		sb.WriteString("\n\t")
		sb.WriteString(user)
		sb.WriteByte(':')
		sb.WriteString(string(rev))
	})
	sb.WriteString(";")
	if r.Strict() {
		sb.WriteString(" strict;")
	}
	sb.WriteByte('\n')

	if r.Integrity() != "" {
		sb.WriteString("integrity\t")
		sb.WriteString(quoteAtString(r.Integrity()))
		sb.WriteString(";\n")
	}
	if r.Comment() != "" {
		sb.WriteString("comment\t")
		sb.WriteString(quoteAtString(r.Comment()))
		sb.WriteString(";\n")
	}
	if r.Expand() != "" {
		sb.WriteString("expand\t")
		sb.WriteString(quoteAtString(r.Expand()))
		sb.WriteString(";\n")
	}
	emitNewphrases(&sb, r.NewphraseAdmin())
	sb.WriteByte('\n')

	r.MapDeltas(func(revision Num, d *RcsDelta) {
		emitDeltaHeader(&sb, d)
	})

	sb.WriteString("\n\ndesc\n")
	sb.WriteString(quoteAtString(r.Desc()))
	sb.WriteString("\n\n")

	r.MapDeltas(func(revision Num, d *RcsDelta) {
		emitDeltaText(&sb, d)
	})

	return []byte(sb.String())
}

// String returns Emit(r) as a string, matching spec.md's toString(Rcs)
// naming for callers that want text rather than bytes.
func (r *Rcs) String() string {
	return string(Emit(r))
}

func emitDeltaHeader(sb *strings.Builder, d *RcsDelta) {
	sb.WriteByte('\n')
	sb.WriteString(string(d.Revision()))
	sb.WriteString("\ndate\t")
	sb.WriteString(d.Date())
	sb.WriteString(";\tauthor ")
	sb.WriteString(d.Author())
	sb.WriteString(";\tstate")
	if d.State() != "" {
		sb.WriteByte(' ')
		sb.WriteString(d.State())
	}
	sb.WriteString(";\nbranches")
	for _, b := range d.Branches() {
		sb.WriteString("\n\t")
		sb.WriteString(string(b))
	}
	sb.WriteString(";\nnext\t")
	sb.WriteString(string(d.Next()))
	sb.WriteByte(';')
	if d.CommitID() != "" {
		sb.WriteString("\ncommitid\t")
		sb.WriteString(d.CommitID())
		sb.WriteByte(';')
	}
	emitNewphrases(sb, d.NewphraseDelta())
	sb.WriteByte('\n')
}

func emitDeltaText(sb *strings.Builder, d *RcsDelta) {
	sb.WriteByte('\n')
	sb.WriteString(string(d.Revision()))
	sb.WriteString("\nlog\n")
	sb.WriteString(quoteAtString(d.Log()))
	sb.WriteByte('\n')
	sb.WriteString("text\n")
	sb.WriteString(quoteAtString(d.Text()))
	sb.WriteByte('\n')
}

func emitNewphrases(sb *strings.Builder, phrases []Newphrase) {
	for _, p := range phrases {
		sb.WriteByte('\n')
		sb.WriteString(p.Name)
		if p.Value != "" {
			sb.WriteByte(' ')
			sb.WriteString(p.Value)
		}
		sb.WriteByte(';')
	}
}
