// Package writer implements the remote write path (§4.9): a typed scalar
// write, a raw byte-buffer write, and a batch write across a store's
// matched cells, all going through procio's single-iovec remote write.
package writer

import (
	"github.com/pkg/errors"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/procio"
	"github.com/future-re/memscan/store"
)

// Report is the outcome of a batch write: how many cells were written
// successfully, how many failed, and the individual failures.
type Report struct {
	SuccessCount int
	FailedCount  int
	Errors       []error
}

func (r *Report) fail(err error) {
	r.FailedCount++
	r.Errors = append(r.Errors, err)
}

// WriteScalar encodes the low width bytes of value (in e's byte order) into
// a width-byte local buffer and writes it to addr in a single remote write.
// width must be one of 1, 2, 4, 8.
func WriteScalar(pid int, addr memtype.RemotePtr, value uint64, width int, e memtype.Endianness) error {
	buf, err := encodeScalar(value, width, e)
	if err != nil {
		return err
	}
	n, err := procio.WriteRemote(pid, addr, buf)
	if err != nil {
		return err
	}
	if n != width {
		return errors.Errorf("writer: wrote %d of %d bytes at %#x", n, width, addr)
	}
	return nil
}

func encodeScalar(value uint64, width int, e memtype.Endianness) ([]byte, error) {
	buf := make([]byte, width)
	switch width {
	case 1:
		memtype.PutU8(buf, uint8(value), e)
	case 2:
		memtype.PutU16(buf, uint16(value), e)
	case 4:
		memtype.PutU32(buf, uint32(value), e)
	case 8:
		memtype.PutU64(buf, value, e)
	default:
		return nil, errors.Errorf("writer: unsupported scalar width %d", width)
	}
	return buf, nil
}

// WriteBytes writes buf to addr in a single remote write; a short write is
// an error.
func WriteBytes(pid int, addr memtype.RemotePtr, buf []byte) error {
	n, err := procio.WriteRemote(pid, addr, buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return errors.Errorf("writer: wrote %d of %d bytes at %#x", n, len(buf), addr)
	}
	return nil
}

// WriteToMatchesBatch writes value byte-by-byte to every currently matched
// cell in s, one remote write per cell.
func WriteToMatchesBatch(pid int, s *store.MatchStore, value byte) Report {
	var rep Report
	s.Walk(func(sw *store.Swath, i int, addr memtype.RemotePtr) bool {
		if err := WriteBytes(pid, addr, []byte{value}); err != nil {
			rep.fail(err)
		} else {
			rep.SuccessCount++
		}
		return true
	})
	return rep
}

// WriteToMatchTarget writes value to the contiguous matched segment
// containing the global index-th matched cell, at the width implied by the
// highest bit set in that cell's match flags (§4.9: find the start of the
// segment by walking backward while the predecessor's flags still contain
// the target cell's flags, then write MatchFlags.Width() bytes).
func WriteToMatchTarget(pid int, s *store.MatchStore, targetIndex int, value uint64, e memtype.Endianness) Report {
	var rep Report
	found := false
	idx := -1

	s.Walk(func(sw *store.Swath, i int, addr memtype.RemotePtr) bool {
		idx++
		if idx != targetIndex {
			return true
		}
		found = true
		flags := sw.Cells[i].MatchInfo
		start := i
		for start > 0 && sw.Cells[start-1].MatchInfo&flags == flags {
			start--
		}
		width := flags.Width()
		if width == 0 {
			width = 1
		}
		segAddr := sw.FirstAddr + memtype.RemotePtr(start)
		if err := WriteScalar(pid, segAddr, value, width, e); err != nil {
			rep.fail(err)
		} else {
			rep.SuccessCount++
		}
		return false
	})
	if !found {
		rep.fail(errors.Errorf("writer: match index %d not found", targetIndex))
	}
	return rep
}
