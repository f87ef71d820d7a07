// Package filelock provides an advisory, exclusive lock on a single
// named file. The CLI tools that write a ,v file take it on the output
// path just before writing and release it after; the earlier read of
// the input file is not covered by the lock.
package filelock

import "io"

// Locker takes an exclusive, advisory lock on a single file.
type Locker interface {
	Lock(name string) (io.Closer, error)
}

type osLocker struct{}

// OS is the platform-backed Locker: flock(2) on unix, an exclusive
// (share mode 0) CreateFile on windows, and an explicit error
// elsewhere.
var OS Locker = osLocker{}

func (osLocker) Lock(name string) (io.Closer, error) {
	return lock(name)
}
