package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
)

func newTestStore() *MatchStore {
	s := New()
	s.AppendSwath(&Swath{FirstAddr: 0x1000, Cells: []Cell{
		{OldByte: 1, MatchInfo: memtype.FlagS8},
		{OldByte: 2, MatchInfo: memtype.Empty},
		{OldByte: 3, MatchInfo: memtype.FlagS8},
	}})
	s.AppendSwath(&Swath{FirstAddr: 0x2000, Cells: []Cell{
		{OldByte: 4, MatchInfo: memtype.FlagS32},
	}})
	return s
}

func TestMatchCountAndPrune(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, 3, s.MatchCount())

	s.Swaths[1].Cells[0].MatchInfo = memtype.Empty
	s.Prune()
	assert.Len(t, s.Swaths, 1)
}

func TestDeleteInAddressRange(t *testing.T) {
	s := newTestStore()
	deleted := s.DeleteInAddressRange(0x1000, 0x1002)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 2, s.MatchCount())
}

func TestWalkStableOrder(t *testing.T) {
	s := newTestStore()
	var addrs []memtype.RemotePtr
	s.Walk(func(sw *Swath, i int, addr memtype.RemotePtr) bool {
		addrs = append(addrs, addr)
		return true
	})
	assert.Equal(t, []memtype.RemotePtr{0x1000, 0x1002, 0x2000}, addrs)
}

func TestWalkEarlyStop(t *testing.T) {
	s := newTestStore()
	count := 0
	s.Walk(func(sw *Swath, i int, addr memtype.RemotePtr) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestCloneIsIndependent(t *testing.T) {
	s := newTestStore()
	clone := s.Clone()
	clone.Swaths[0].Cells[0].MatchInfo = memtype.Empty
	assert.Equal(t, memtype.FlagS8, s.Swaths[0].Cells[0].MatchInfo)
}

func TestOldValueAtAcrossSwaths(t *testing.T) {
	s := New()
	s.AppendSwath(&Swath{FirstAddr: 0x1000, Cells: []Cell{{OldByte: 0xAA}, {OldByte: 0xBB}}})
	ov, ok := s.OldValueAt(0x1000, 2, memtype.B16)
	assert.True(t, ok)
	assert.Equal(t, []byte{0xAA, 0xBB}, ov.Bytes)

	_, ok = s.OldValueAt(0x5000, 2, memtype.B16)
	assert.False(t, ok)
}
