package rcs_test

import (
	"fmt"
	"testing"

	rcs "github.com/bcohen/editrcs"
	"github.com/stretchr/testify/require"
)

// chainFixture builds an Rcs whose trunk is chain[0] (head) down to
// chain[len-1] (start), where chain[i]'s reconstructed text is
// texts[chain[i]]. Every non-head delta's stored text is the ed
// script from its chain predecessor's text to its own, matching how
// ReconstructText walks the chain (see ops.go).
func chainFixture(t *testing.T, chain []rcs.Num, texts map[rcs.Num]string) *rcs.Rcs {
	t.Helper()
	r := rcs.New()
	for i, rev := range chain {
		d := rcs.NewRcsDelta(rev)
		d.SetDate(fmt.Sprintf("2024.01.%02d.00.00.00", i+1))
		d.SetAuthor("alice")
		d.SetState("Exp")
		d.SetLog("commit " + string(rev))
		if i+1 < len(chain) {
			d.SetNext(chain[i+1])
		}
		if i == 0 {
			d.SetText(texts[rev], false)
		} else {
			script, err := rcs.TextToDiff(texts[chain[i-1]], texts[rev])
			require.NoError(t, err)
			d.SetText(script, true)
		}
		require.NoError(t, r.AddDelta(rev, d))
	}
	require.NoError(t, r.SetHead(chain[0]))
	r.SetAccess([]string{"alice", "bob"})
	r.SetDesc("fixture file")
	require.NoError(t, r.Validate())
	return r
}
