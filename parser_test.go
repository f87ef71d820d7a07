package rcs_test

import (
	"testing"

	rcs "github.com/bcohen/editrcs"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// deltaSnapshot captures the exported view of an RcsDelta for
// structural round-trip comparison, since RcsDelta's fields are
// unexported.
type deltaSnapshot struct {
	Revision rcs.Num
	Date     string
	Author   string
	State    string
	Branches []rcs.Num
	Next     rcs.Num
	Log      string
	Text     string
	IsDiff   bool
}

func snapshotDelta(d *rcs.RcsDelta) deltaSnapshot {
	return deltaSnapshot{
		Revision: d.Revision(),
		Date:     d.Date(),
		Author:   d.Author(),
		State:    d.State(),
		Branches: d.Branches(),
		Next:     d.Next(),
		Log:      d.Log(),
		Text:     d.Text(),
		IsDiff:   d.IsDiff(),
	}
}

const minimalRcsFile = `head	1.2;
access;
symbols;
locks; strict;
comment	@# minimal@;


1.2
date	2024.01.02.00.00.00;	author alice;	state Exp;
branches;
next	1.1;


1.1
date	2024.01.01.00.00.00;	author alice;	state Exp;
branches;
next	;


desc
@desc text@

1.2
log
@second commit@
text
@line one
line two@


1.1
log
@first commit@
text
@d1 1
a1 1
replacement@
`

func TestParseRcsMinimal(t *testing.T) {
	r, err := rcs.ParseRcs([]byte(minimalRcsFile), rcs.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, rcs.Num("1.2"), r.Head())
	require.True(t, r.Strict())
	require.Equal(t, "# minimal", r.Comment())
	require.Equal(t, 2, r.DeltaCount())

	head, err := r.GetDelta("1.2")
	require.NoError(t, err)
	require.False(t, head.IsDiff())
	require.Equal(t, "line one\nline two", head.Text())

	tail, err := r.GetDelta("1.1")
	require.NoError(t, err)
	require.True(t, tail.IsDiff())

	text, err := rcs.ReconstructText(r, "1.1")
	require.NoError(t, err)
	require.Equal(t, "replacement\nline two", text)
}

func TestTextFromDiffSubstituteFirstLine(t *testing.T) {
	got, err := rcs.TextFromDiff("line one\nline two", "d1 1\na1 1\nreplacement\n")
	require.NoError(t, err)
	require.Equal(t, "replacement\nline two", got)
}

func TestParseEmitRoundTrip(t *testing.T) {
	texts := map[rcs.Num]string{
		"1.3": "one\ntwo\nthree",
		"1.2": "one\ntwo",
		"1.1": "one",
	}
	chain := []rcs.Num{"1.3", "1.2", "1.1"}
	r := chainFixture(t, chain, texts)

	first := rcs.Emit(r)
	reparsed, err := rcs.ParseRcs(first, rcs.DefaultOptions())
	require.NoError(t, err)
	second := rcs.Emit(reparsed)
	require.Equal(t, string(first), string(second), "canonical emission must be stable across a parse/emit cycle")

	require.Equal(t, r.Head(), reparsed.Head())
	require.Equal(t, r.DeltaCount(), reparsed.DeltaCount())
	for _, rev := range chain {
		want, err := rcs.ReconstructText(r, rev)
		require.NoError(t, err)
		got, err := rcs.ReconstructText(reparsed, rev)
		require.NoError(t, err)
		require.Equal(t, want, got, "revision %s", rev)

		wantDelta, err := r.GetDelta(rev)
		require.NoError(t, err)
		gotDelta, err := reparsed.GetDelta(rev)
		require.NoError(t, err)
		if diff := cmp.Diff(snapshotDelta(wantDelta), snapshotDelta(gotDelta)); diff != "" {
			t.Errorf("delta %s mismatch after parse/emit round trip (-want +got):\n%s", rev, diff)
		}
	}
}

func TestParseDuplicateDeltaText(t *testing.T) {
	bad := `head	1.1;
access;
symbols;
locks;

1.1
date	2024.01.01.00.00.00;	author alice;	state Exp;
branches;
next	;

desc
@d@

1.1
log
@first@
text
@hello@

1.1
log
@dup@
text
@hello again@
`
	_, err := rcs.ParseRcs([]byte(bad), rcs.DefaultOptions())
	require.Error(t, err)
	require.True(t, rcs.IsParseError(err))
	var perr *rcs.ParseError
	require.ErrorAs(t, err, &perr)
	require.Greater(t, perr.Offset, 0)
	require.Equal(t, "unique revision number", perr.Expected)
}

func TestParseUnterminatedString(t *testing.T) {
	bad := `head	1.1;
access;
symbols;
locks;
comment	@unterminated
`
	_, err := rcs.ParseRcs([]byte(bad), rcs.DefaultOptions())
	require.Error(t, err)
	require.True(t, rcs.IsLexError(err))
}

func TestParseHeadNotInDeltas(t *testing.T) {
	bad := `head	1.9;
access;
symbols;
locks;

1.1
date	2024.01.01.00.00.00;	author alice;	state Exp;
branches;
next	;

desc
@d@

1.1
log
@first@
text
@hello@
`
	_, err := rcs.ParseRcs([]byte(bad), rcs.DefaultOptions())
	require.Error(t, err)
	require.True(t, rcs.IsUnknownRevision(err))
}
