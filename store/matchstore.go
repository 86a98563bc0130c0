package store

import "github.com/future-re/memscan/memtype"

// MatchStore owns the swaths produced by a scan. Invariants (§3):
//  1. Swaths do not overlap in remote address space.
//  2. Swaths are ordered by insertion, which corresponds to region order.
//  3. Pruning removes swaths all of whose cells are Empty.
//  4. The match count is the count of cells with MatchInfo != Empty.
type MatchStore struct {
	Swaths []*Swath
}

// New returns an empty store.
func New() *MatchStore { return &MatchStore{} }

// Reset clears the store back to empty.
func (s *MatchStore) Reset() { s.Swaths = nil }

// AppendSwath appends sw if it has at least one cell. Callers are
// responsible for appending swaths in ascending region order so the
// non-overlap invariant holds.
func (s *MatchStore) AppendSwath(sw *Swath) {
	if sw == nil || len(sw.Cells) == 0 {
		return
	}
	s.Swaths = append(s.Swaths, sw)
}

// MatchCount returns the total number of matched cells across all swaths.
func (s *MatchStore) MatchCount() int {
	n := 0
	for _, sw := range s.Swaths {
		n += sw.MatchCount()
	}
	return n
}

// Prune removes every swath whose cells are all Empty, preserving order.
func (s *MatchStore) Prune() {
	out := s.Swaths[:0]
	for _, sw := range s.Swaths {
		if !sw.Empty() {
			out = append(out, sw)
		}
	}
	s.Swaths = out
}

// DeleteInAddressRange clears match flags (but keeps old bytes) for every
// cell whose address falls in [lo, hi), then prunes any swath this emptied
// out entirely. It returns the number of matched cells cleared.
func (s *MatchStore) DeleteInAddressRange(lo, hi memtype.RemotePtr) int {
	deleted := 0
	for _, sw := range s.Swaths {
		start := sw.FirstAddr
		for i := range sw.Cells {
			addr := start + uint64(i)
			if addr < lo || addr >= hi {
				continue
			}
			if sw.Cells[i].MatchInfo != memtype.Empty {
				sw.Cells[i].MatchInfo = memtype.Empty
				deleted++
			}
		}
	}
	s.Prune()
	return deleted
}

// Walk calls fn for every matched cell in store order (the order the
// global index contract in §4.8 relies on), passing the owning swath, the
// cell's index within it, and its remote address. fn returning false stops
// the walk early.
func (s *MatchStore) Walk(fn func(sw *Swath, i int, addr memtype.RemotePtr) bool) {
	for _, sw := range s.Swaths {
		for i, c := range sw.Cells {
			if c.MatchInfo == memtype.Empty {
				continue
			}
			if !fn(sw, i, sw.FirstAddr+uint64(i)) {
				return
			}
		}
	}
}

// OldValueAt reconstructs a width-byte OldValue for addr from whichever
// swath contains it, used by the full-scan engine when a previous snapshot
// is supplied as the source of old values (§4.5 step 4c). ok is false when
// addr falls outside every swath or too close to one's end.
func (s *MatchStore) OldValueAt(addr memtype.RemotePtr, width int, flags memtype.MatchFlags) (ov memtype.OldValue, ok bool) {
	sw := s.swathContaining(addr)
	if sw == nil {
		return memtype.OldValue{}, false
	}
	return sw.OldValueAt(int(addr-sw.FirstAddr), width, flags)
}

func (s *MatchStore) swathContaining(addr memtype.RemotePtr) *Swath {
	for _, sw := range s.Swaths {
		if addr >= sw.FirstAddr && addr < sw.End() {
			return sw
		}
	}
	return nil
}

// Clone deep-copies the store, used when a history entry must own a full
// snapshot independent of subsequent filtering. Swaths hold no
// cross-references, so a deep copy has no cycles to worry about (§9).
func (s *MatchStore) Clone() *MatchStore {
	clone := &MatchStore{Swaths: make([]*Swath, len(s.Swaths))}
	for i, sw := range s.Swaths {
		cells := make([]Cell, len(sw.Cells))
		copy(cells, sw.Cells)
		clone.Swaths[i] = &Swath{FirstAddr: sw.FirstAddr, Cells: cells}
	}
	return clone
}
