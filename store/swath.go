// Package store implements the match store (§3/§4.8 data model): swaths of
// contiguous remote-address bytes carrying per-byte old values and match
// flags, the store that owns them, and the compressed history ring that
// retains past scan results.
package store

import "github.com/future-re/memscan/memtype"

// Cell is one byte's worth of captured state: the byte value last read at
// that address, and the match flags recorded there (Empty means "not
// currently a match", but OldByte may still be a valid captured value).
type Cell struct {
	OldByte   byte
	MatchInfo memtype.MatchFlags
}

// Swath is a contiguous run of remote-address bytes captured at one point
// in time. Cell i describes the byte at FirstAddr+i; cells are appended in
// ascending remote-address order and never reordered.
type Swath struct {
	FirstAddr memtype.RemotePtr
	Cells     []Cell
}

// End returns the address one past the swath's last cell.
func (s *Swath) End() memtype.RemotePtr { return s.FirstAddr + uint64(len(s.Cells)) }

// MatchCount returns the number of cells with MatchInfo != Empty.
func (s *Swath) MatchCount() int {
	n := 0
	for _, c := range s.Cells {
		if c.MatchInfo != memtype.Empty {
			n++
		}
	}
	return n
}

// Empty reports whether every cell in the swath is unmatched.
func (s *Swath) Empty() bool {
	for _, c := range s.Cells {
		if c.MatchInfo != memtype.Empty {
			return false
		}
	}
	return true
}

// OldValueAt reconstructs an OldValue of the given byte width starting at
// cell index i, used by predicates that consult previously captured bytes.
// ok is false when i+width would run past the swath.
func (s *Swath) OldValueAt(i, width int, flags memtype.MatchFlags) (ov memtype.OldValue, ok bool) {
	if i < 0 || i+width > len(s.Cells) {
		return memtype.OldValue{}, false
	}
	buf := make([]byte, width)
	for j := 0; j < width; j++ {
		buf[j] = s.Cells[i+j].OldByte
	}
	return memtype.OldValue{Bytes: buf, Flags: flags}, true
}
