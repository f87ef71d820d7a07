//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package filelock

import (
	"fmt"
	"io"
	"os"
	"syscall"
)

// fileHandle backs a held lock with the open descriptor flock(2) was
// called against; releasing the lock is just closing it, since the
// lock does not outlive the descriptor.
type fileHandle struct {
	f *os.File
}

func (h *fileHandle) Close() error {
	return h.f.Close()
}

func lock(name string) (io.Closer, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("filelock: open %s: %w", name, err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("filelock: %s is held by another process: %w", name, err)
	}
	return &fileHandle{f: f}, nil
}
