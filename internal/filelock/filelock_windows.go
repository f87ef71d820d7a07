//go:build windows

package filelock

import (
	"fmt"
	"io"
	"syscall"
)

// fileHandle backs a held lock with the exclusive-access handle
// CreateFile returned; there is no separate lock/unlock call on
// windows, an exclusive open (share mode 0) is the lock.
type fileHandle struct {
	fd syscall.Handle
}

func (h *fileHandle) Close() error {
	return syscall.Close(h.fd)
}

func lock(name string) (io.Closer, error) {
	path, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("filelock: %s: %w", name, err)
	}
	fd, err := syscall.CreateFile(
		path,
		syscall.GENERIC_READ|syscall.GENERIC_WRITE,
		0, // no sharing: an exclusive open is the lock
		nil,
		syscall.OPEN_ALWAYS,
		syscall.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("filelock: %s is held by another process: %w", name, err)
	}
	return &fileHandle{fd: fd}, nil
}
