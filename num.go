package rcs

import (
	"strconv"
	"strings"

	"github.com/bcohen/editrcs/internal/errors"
)

// Num is an RCS dotted revision number, e.g. "1.2.1.4". The empty Num
// denotes "absent" (the next of a trunk tail, or an unborn head).
type Num string

// Empty reports whether n is the absent marker.
func (n Num) Empty() bool {
	return n == ""
}

// String returns n unchanged; Num is itself the external textual form.
func (n Num) String() string {
	return string(n)
}

// components splits a non-empty Num into its dotted integer parts.
func components(n Num) ([]int, error) {
	parts := strings.Split(string(n), ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		if p == "" {
			return nil, &errors.InvalidNumError{A: string(n)}
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, &errors.InvalidNumError{A: string(n)}
		}
		out[i] = v
	}
	return out, nil
}

func joinComponents(c []int) Num {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.Itoa(v)
	}
	return Num(strings.Join(parts, "."))
}

// CompareNum returns a value less than, equal to, or greater than 0
// depending on whether a is less than, equal to, or greater than b,
// comparing lexicographically component by component. Shorter operands
// compare as a prefix: "1.2" < "1.2.1".
func CompareNum(a, b Num) (int, error) {
	ac, err := components(a)
	if err != nil {
		return 0, err
	}
	bc, err := components(b)
	if err != nil {
		return 0, err
	}
	n := len(ac)
	if len(bc) < n {
		n = len(bc)
	}
	for i := 0; i < n; i++ {
		switch {
		case ac[i] < bc[i]:
			return -1, nil
		case ac[i] > bc[i]:
			return 1, nil
		}
	}
	switch {
	case len(ac) < len(bc):
		return -1, nil
	case len(ac) > len(bc):
		return 1, nil
	default:
		return 0, nil
	}
}

// IncrementNum returns num with delta's components added positionally,
// starting from the left. Components of num beyond delta's length are
// copied through unchanged. The empty num is returned unchanged (it
// denotes "absent"). Returns InvalidNumError if delta has more
// components than num.
func IncrementNum(num, delta Num) (Num, error) {
	if num.Empty() {
		return num, nil
	}
	numC, err := components(num)
	if err != nil {
		return "", err
	}
	deltaC, err := components(delta)
	if err != nil {
		return "", err
	}
	if len(deltaC) > len(numC) {
		return "", &errors.InvalidNumError{A: string(num), B: string(delta)}
	}
	out := append([]int(nil), numC...)
	for i := range deltaC {
		out[i] += deltaC[i]
	}
	return joinComponents(out), nil
}

// DecrementNum returns num with delta's components subtracted
// positionally, starting from the left. The result is an additive
// offset between two revisions on the same branch, not itself a
// revision number that need reference an existing delta; its
// components may be zero or negative. Returns InvalidNumError if
// delta has more components than num.
func DecrementNum(num, delta Num) (Num, error) {
	if num.Empty() {
		return num, nil
	}
	numC, err := components(num)
	if err != nil {
		return "", err
	}
	deltaC, err := components(delta)
	if err != nil {
		return "", err
	}
	if len(deltaC) > len(numC) {
		return "", &errors.InvalidNumError{A: string(num), B: string(delta)}
	}
	out := append([]int(nil), numC...)
	for i := range deltaC {
		out[i] -= deltaC[i]
	}
	return joinComponents(out), nil
}
