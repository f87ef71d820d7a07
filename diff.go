package rcs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bcohen/editrcs/internal/errors"
)

// cmdRE matches one ed-script command line: "a<n> <c>" or "d<n> <c>".
var cmdRE = regexp.MustCompile(`^([ad])([0-9]+)[ \t]+([0-9]+)[ \t]*$`)

// TextFromDiff applies an ed-style diff script to source and returns
// the resulting text. Every non-head RcsDelta is reconstructed this
// way: source is the text of the delta whose next points at the
// delta that owns script.
//
// Line numbers in script are expressed against the original source,
// not a running position; a running offset translates each original
// line number into the current array index as commands are applied
// in order.
//
// Unlike the RCS prototype this library is ported from, a delete
// command may remove all the way through the last line of source
// (toline == len(lines) is not "past the end") and an append command
// may target the position immediately after the last line (fromline
// == len(lines)); both are legal per rcsfile(5) and are only rejected
// when they go strictly further than that.
func TextFromDiff(source, script string) (string, error) {
	lines := strings.Split(source, "\n")
	offset := -1
	remaining := script
	cmdNum := 0
	for {
		var cmdLine string
		if idx := strings.IndexByte(remaining, '\n'); idx >= 0 {
			cmdLine = remaining[:idx]
			remaining = remaining[idx+1:]
		} else {
			cmdLine = remaining
			remaining = ""
		}
		cmdNum++
		if strings.TrimSpace(cmdLine) == "" {
			break
		}
		m := cmdRE.FindStringSubmatch(cmdLine)
		if m == nil {
			return "", &errors.MalformedDiffError{Line: cmdNum, Msg: fmt.Sprintf("invalid ed command %q", cmdLine)}
		}
		start, _ := strconv.Atoi(m[2])
		count, _ := strconv.Atoi(m[3])
		switch m[1] {
		case "d":
			fromline := start + offset
			toline := fromline + count
			if fromline < 0 || fromline >= len(lines) || toline < fromline || toline > len(lines) {
				return "", &errors.MalformedDiffError{Line: cmdNum, Msg: "delete range out of bounds"}
			}
			lines = append(lines[:fromline:fromline], lines[toline:]...)
			offset -= count
		case "a":
			fromline := start + offset + 1
			if fromline < 0 || fromline > len(lines) {
				return "", &errors.MalformedDiffError{Line: cmdNum, Msg: "append position out of bounds"}
			}
			added := make([]string, 0, count)
			for i := 0; i < count; i++ {
				var line string
				if idx := strings.IndexByte(remaining, '\n'); idx >= 0 {
					line = remaining[:idx]
					remaining = remaining[idx+1:]
				} else {
					// Final added line with no trailing newline in the
					// script: only legal for the very last addition.
					if i < count-1 {
						return "", &errors.MalformedDiffError{Line: cmdNum, Msg: "append runs past end of script"}
					}
					line = remaining
					remaining = ""
				}
				added = append(added, line)
				cmdNum++
			}
			tail := append([]string(nil), lines[fromline:]...)
			lines = append(lines[:fromline:fromline], added...)
			lines = append(lines, tail...)
			offset += count
		}
	}
	return strings.Join(lines, "\n"), nil
}

// TextToDiff computes an ed script such that TextFromDiff(a, script)
// == b: the diff engine's convention is diff(source, dest), matching
// the external `diff -n` tool the original prototype shells out to.
// When a equals b the trivial identity (empty script) is returned.
//
// This is a non-minimal encoding by design (one delete of all of a
// followed by one insert of all of b): spec §4.4 only requires the
// round-trip law hold, not minimality.
func TextToDiff(a, b string) (string, error) {
	if a == b {
		return "", nil
	}
	partsA := strings.Split(a, "\n")
	partsB := strings.Split(b, "\n")
	var sb strings.Builder
	fmt.Fprintf(&sb, "d1 %d\n", len(partsA))
	fmt.Fprintf(&sb, "a%d %d\n", len(partsA), len(partsB))
	if len(partsB) > 0 {
		sb.WriteString(strings.Join(partsB, "\n"))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
