package rcs_test

import (
	"testing"

	rcs "github.com/bcohen/editrcs"
	"github.com/stretchr/testify/require"
)

func TestAddDeltaDuplicate(t *testing.T) {
	r := rcs.New()
	require.NoError(t, r.AddDelta("1.1", rcs.NewRcsDelta("1.1")))
	err := r.AddDelta("1.1", rcs.NewRcsDelta("1.1"))
	require.Error(t, err)
	require.True(t, rcs.IsDuplicateRevision(err))
}

func TestGetDeltaUnknown(t *testing.T) {
	r := rcs.New()
	_, err := r.GetDelta("9.9")
	require.Error(t, err)
	require.True(t, rcs.IsUnknownRevision(err))
}

func TestSetHeadRejectsUnknownRevision(t *testing.T) {
	r := rcs.New()
	err := r.SetHead("1.1")
	require.Error(t, err)
	require.True(t, rcs.IsInvariantViolation(err))
}

func TestSetHeadAcceptsExistingRevision(t *testing.T) {
	r := rcs.New()
	require.NoError(t, r.AddDelta("1.1", rcs.NewRcsDelta("1.1")))
	require.NoError(t, r.SetHead("1.1"))
	require.Equal(t, rcs.Num("1.1"), r.Head())
}

func TestValidateHeadMustBeSnapshot(t *testing.T) {
	r := rcs.New()
	d := rcs.NewRcsDelta("1.1")
	d.SetText("diff-ish", true)
	require.NoError(t, r.AddDelta("1.1", d))
	require.NoError(t, r.SetHead("1.1"))
	err := r.Validate()
	require.Error(t, err)
	require.True(t, rcs.IsInvariantViolation(err))
}

func TestMapDeltasIterationOrder(t *testing.T) {
	r := rcs.New()
	order := []rcs.Num{"1.3", "1.1", "1.2"}
	for _, rev := range order {
		require.NoError(t, r.AddDelta(rev, rcs.NewRcsDelta(rev)))
	}
	var seen []rcs.Num
	r.MapDeltas(func(rev rcs.Num, _ *rcs.RcsDelta) {
		seen = append(seen, rev)
	})
	require.Equal(t, order, seen)
}

func TestRenumberDeltasCollision(t *testing.T) {
	r := rcs.New()
	require.NoError(t, r.AddDelta("1.1", rcs.NewRcsDelta("1.1")))
	require.NoError(t, r.AddDelta("1.2", rcs.NewRcsDelta("1.2")))
	err := r.RenumberDeltas(func(rev rcs.Num, d *rcs.RcsDelta) (rcs.Num, *rcs.RcsDelta) {
		return "2.1", d
	})
	require.Error(t, err)
	require.True(t, rcs.IsDuplicateRevision(err))
}

func TestRenumberDeltasRenames(t *testing.T) {
	r := rcs.New()
	require.NoError(t, r.AddDelta("1.1", rcs.NewRcsDelta("1.1")))
	require.NoError(t, r.AddDelta("1.2", rcs.NewRcsDelta("1.2")))
	err := r.RenumberDeltas(func(rev rcs.Num, d *rcs.RcsDelta) (rcs.Num, *rcs.RcsDelta) {
		n, err := rcs.IncrementNum(rev, "1.0")
		require.NoError(t, err)
		d.SetRevision(n)
		return n, d
	})
	require.NoError(t, err)
	require.Equal(t, []string{"2.1", "2.2"}, r.Revisions())
}

func TestRcsDeltaCloneIsIndependent(t *testing.T) {
	d := rcs.NewRcsDelta("1.1")
	d.SetBranches([]rcs.Num{"1.1.1.1"})
	clone := d.Clone()
	d.SetBranches([]rcs.Num{"1.1.1.2"})
	require.Equal(t, []rcs.Num{"1.1.1.1"}, clone.Branches())
}

func TestTextToDiffOnDelta(t *testing.T) {
	const original = "one\ntwo"
	a := rcs.NewRcsDelta("1.2")
	a.SetText(original, false)
	b := rcs.NewRcsDelta("1.1")
	b.SetText("one", false)

	require.NoError(t, a.TextToDiff(b))
	require.True(t, a.IsDiff())

	got, err := rcs.TextFromDiff(original, a.Text())
	require.NoError(t, err)
	require.Equal(t, b.Text(), got)
}
