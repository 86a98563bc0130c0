// Package procio implements the process-memory I/O primitives the rest of
// the scan core is built on: positional reads and writes against an opened
// /proc/<pid>/mem handle, and the remote vectored write used by the hot
// write-to-matches loop.
package procio

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

// Mem is a scoped handle onto /proc/<pid>/mem. Exactly one Mem should be
// held per worker goroutine; there is no shared state between instances.
type Mem struct {
	pid      int
	f        *os.File
	writable bool
}

// OpenRead opens /proc/<pid>/mem read-only.
func OpenRead(pid int) (*Mem, error) {
	return open(pid, os.O_RDONLY)
}

// OpenReadWrite opens /proc/<pid>/mem read-write, for the remote writer.
func OpenReadWrite(pid int) (*Mem, error) {
	return open(pid, os.O_RDWR)
}

func open(pid int, flag int) (*Mem, error) {
	path := fmt.Sprintf("/proc/%d/mem", pid)
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.Wrapf(scanerr.ErrPermission, "open %s", path)
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(scanerr.ErrTargetUnavailable, "open %s", path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return &Mem{pid: pid, f: f, writable: flag != os.O_RDONLY}, nil
}

// Close releases the underlying descriptor.
func (m *Mem) Close() error {
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	m.f = nil
	return err
}

// Read performs a positional read at addr into buf, tolerating short reads
// across unreadable pages: on io.EOF or one of EIO/EFAULT/EPERM/EACCES it
// returns the bytes read so far (possibly zero) with a nil error. Any other
// error is a hard failure wrapped in scanerr.ErrIORead. A zero-byte,
// nil-error return means end-of-range.
func (m *Mem) Read(addr memtype.RemotePtr, buf []byte) (int, error) {
	n, err := m.f.ReadAt(buf, int64(addr))
	if err == nil {
		return n, nil
	}
	if err == io.EOF || isBenignFault(err) {
		return n, nil
	}
	return n, errors.Wrapf(scanerr.ErrIORead, "read /proc/%d/mem at %#x: %v", m.pid, addr, err)
}

// Write performs a positional write at addr, retrying the remainder of any
// short write. A hard error propagates wrapped in scanerr.ErrIOPartial.
func (m *Mem) Write(addr memtype.RemotePtr, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := m.f.WriteAt(buf[total:], int64(addr)+int64(total))
		total += n
		if err != nil {
			return total, errors.Wrapf(scanerr.ErrIOPartial, "write /proc/%d/mem at %#x: %v", m.pid, addr+memtype.RemotePtr(total), err)
		}
		if n == 0 {
			break
		}
	}
	if total < len(buf) {
		return total, errors.Wrapf(scanerr.ErrIOPartial, "short write to /proc/%d/mem at %#x: wrote %d of %d", m.pid, addr, total, len(buf))
	}
	return total, nil
}

// isBenignFault reports whether err corresponds to one of the page-fault
// errnos the spec requires readers to tolerate: EIO, EFAULT, EPERM, EACCES.
func isBenignFault(err error) bool {
	pe, ok := err.(*os.PathError)
	if !ok {
		return false
	}
	errno, ok := pe.Err.(unix.Errno)
	if !ok {
		return false
	}
	switch errno {
	case unix.EIO, unix.EFAULT, unix.EPERM, unix.EACCES:
		return true
	default:
		return false
	}
}
