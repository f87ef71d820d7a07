package rcs_test

import (
	"testing"

	rcs "github.com/bcohen/editrcs"
	"github.com/stretchr/testify/require"
)

// TestCheckoutStart is scenario S1: head 1.3, chain 1.3 -> 1.2 -> 1.1,
// reconstructing 1.1 by applying two diffs reproduces the original
// first commit.
func TestCheckoutStart(t *testing.T) {
	texts := map[rcs.Num]string{
		"1.3": "alpha\nbeta\ngamma",
		"1.2": "alpha\nbeta",
		"1.1": "alpha",
	}
	r := chainFixture(t, []rcs.Num{"1.3", "1.2", "1.1"}, texts)

	got, err := rcs.CheckoutStart(r)
	require.NoError(t, err)
	require.Equal(t, texts["1.1"], got)
}

// TestRenameUser is scenario S3: every delta authored by olduser is
// rewritten to newuser, nothing else changes.
func TestRenameUser(t *testing.T) {
	texts := map[rcs.Num]string{
		"1.2": "v2",
		"1.1": "v1",
	}
	r := chainFixture(t, []rcs.Num{"1.2", "1.1"}, texts)
	d2, err := r.GetDelta("1.2")
	require.NoError(t, err)
	d2.SetAuthor("olduser")
	d1, err := r.GetDelta("1.1")
	require.NoError(t, err)
	d1.SetAuthor("someoneelse")

	rcs.RenameUser(r, "olduser", "newuser")

	got2, err := r.GetDelta("1.2")
	require.NoError(t, err)
	require.Equal(t, "newuser", got2.Author())
	got1, err := r.GetDelta("1.1")
	require.NoError(t, err)
	require.Equal(t, "someoneelse", got1.Author())

	require.NoError(t, r.Validate())
}

// TestJoinRcs is scenario S2: A (head 1.4) and B (head 1.3, start
// 1.1) share text at A's head / B's start; join produces a single
// trunk 1.6 -> 1.5 -> 1.4 -> 1.3 -> 1.2 -> 1.1 where every original
// revision's text still reconstructs.
func TestJoinRcs(t *testing.T) {
	aTexts := map[rcs.Num]string{
		"1.4": "shared",
		"1.3": "a3",
		"1.2": "a2",
		"1.1": "a1",
	}
	a := chainFixture(t, []rcs.Num{"1.4", "1.3", "1.2", "1.1"}, aTexts)

	bTexts := map[rcs.Num]string{
		"1.3": "b3",
		"1.2": "b2",
		"1.1": "shared",
	}
	b := chainFixture(t, []rcs.Num{"1.3", "1.2", "1.1"}, bTexts)
	bSymbols := b.Symbols()
	bSymbols.Set("b-tag", "1.3")
	b.SetSymbols(bSymbols)

	joined, err := rcs.JoinRcs(a, b)
	require.NoError(t, err)
	require.Equal(t, rcs.Num("1.6"), joined.Head())
	require.NoError(t, joined.Validate())

	chain, err := joined.TrunkChain()
	require.NoError(t, err)
	require.Equal(t, []rcs.Num{"1.6", "1.5", "1.4", "1.3", "1.2", "1.1"}, chain)

	// A's originals survive at their original numbers.
	for rev, want := range aTexts {
		got, err := rcs.ReconstructText(joined, rev)
		require.NoError(t, err)
		require.Equal(t, want, got, "a revision %s", rev)
	}
	// B's revisions above the shared start are shifted by 0.3 and
	// keep their own text.
	shifted := map[rcs.Num]string{
		"1.6": bTexts["1.3"],
		"1.5": bTexts["1.2"],
	}
	for rev, want := range shifted {
		got, err := rcs.ReconstructText(joined, rev)
		require.NoError(t, err)
		require.Equal(t, want, got, "joined revision %s", rev)
	}

	sym, ok := joined.Symbols().Get("b-tag")
	require.True(t, ok)
	require.Equal(t, rcs.Num("1.6"), sym)
}

// TestPivotBranch is scenario S4: branch 1.3.1.1 -> 1.3.1.2 off head
// 1.3 becomes the new trunk; every original revision's text is still
// reconstructable after the pivot.
func TestPivotBranch(t *testing.T) {
	texts := map[rcs.Num]string{
		"1.3":     "trunk3",
		"1.2":     "trunk2",
		"1.1":     "trunk1",
		"1.3.1.1": "branch1",
		"1.3.1.2": "branch2",
	}
	r := chainFixture(t, []rcs.Num{"1.3", "1.2", "1.1"}, texts)

	b1 := rcs.NewRcsDelta("1.3.1.1")
	b1.SetAuthor("alice")
	b1.SetDate("2024.02.01.00.00.00")
	script1, err := rcs.TextToDiff(texts["1.3"], texts["1.3.1.1"])
	require.NoError(t, err)
	b1.SetText(script1, true)
	b1.SetNext("1.3.1.2")
	require.NoError(t, r.AddDelta("1.3.1.1", b1))

	b2 := rcs.NewRcsDelta("1.3.1.2")
	b2.SetAuthor("alice")
	b2.SetDate("2024.02.02.00.00.00")
	script2, err := rcs.TextToDiff(texts["1.3.1.1"], texts["1.3.1.2"])
	require.NoError(t, err)
	b2.SetText(script2, true)
	require.NoError(t, r.AddDelta("1.3.1.2", b2))

	d3, err := r.GetDelta("1.3")
	require.NoError(t, err)
	d3.SetBranches([]rcs.Num{"1.3.1.1"})
	require.NoError(t, r.Validate())

	pivoted, err := rcs.PivotBranch(r, "1.3.1.2")
	require.NoError(t, err)
	require.Equal(t, rcs.Num("1.3.1.2"), pivoted.Head())
	require.NoError(t, pivoted.Validate())

	chain, err := pivoted.TrunkChain()
	require.NoError(t, err)
	require.Equal(t, []rcs.Num{"1.3.1.2", "1.3.1.1", "1.3", "1.2", "1.1"}, chain)

	for rev, want := range texts {
		got, err := rcs.ReconstructText(pivoted, rev)
		require.NoError(t, err)
		require.Equal(t, want, got, "revision %s", rev)
	}
}
