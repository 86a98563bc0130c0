package procio

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

// WriteRemote writes buf to addr in the target process using a single
// process_vm_writev call (one local iovec, one remote iovec), avoiding an
// open(2) per call in the hot write-to-matches loop. pid identifies the
// target; the caller does not need an open Mem handle for this path.
func WriteRemote(pid int, addr memtype.RemotePtr, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	local := []unix.Iovec{{Base: &buf[0], Len: uint64(len(buf))}}
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}
	n, err := unix.ProcessVMWritev(pid, local, remote, 0)
	if err != nil {
		return n, errors.Wrapf(scanerr.ErrIOPartial, "process_vm_writev pid=%d addr=%#x: %v", pid, addr, err)
	}
	if n != len(buf) {
		return n, errors.Wrapf(scanerr.ErrIOPartial, "process_vm_writev pid=%d addr=%#x: wrote %d of %d", pid, addr, n, len(buf))
	}
	return n, nil
}

// ReadRemote reads len(buf) bytes from addr in the target process using a
// single process_vm_readv call. Used by callers that want a remote-vectored
// read without holding an open Mem handle (e.g. short probe reads).
func ReadRemote(pid int, addr memtype.RemotePtr, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	local := []unix.Iovec{{Base: &buf[0], Len: uint64(len(buf))}}
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}
	n, err := unix.ProcessVMReadv(pid, local, remote, 0)
	if err != nil {
		if isBenignFaultErrno(err) {
			return n, nil
		}
		return n, errors.Wrapf(scanerr.ErrIORead, "process_vm_readv pid=%d addr=%#x: %v", pid, addr, err)
	}
	return n, nil
}

func isBenignFaultErrno(err error) bool {
	errno, ok := err.(unix.Errno)
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
