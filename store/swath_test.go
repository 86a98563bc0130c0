package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
)

func TestSwathEndAndMatchCount(t *testing.T) {
	sw := &Swath{FirstAddr: 0x1000, Cells: []Cell{
		{OldByte: 1, MatchInfo: memtype.Empty},
		{OldByte: 2, MatchInfo: memtype.FlagS32},
		{OldByte: 3, MatchInfo: memtype.FlagS32},
		{OldByte: 4, MatchInfo: memtype.Empty},
	}}
	assert.Equal(t, memtype.RemotePtr(0x1004), sw.End())
	assert.Equal(t, 2, sw.MatchCount())
	assert.False(t, sw.Empty())
}

func TestSwathOldValueAt(t *testing.T) {
	sw := &Swath{FirstAddr: 0x1000, Cells: []Cell{
		{OldByte: 0x01}, {OldByte: 0x00}, {OldByte: 0x00}, {OldByte: 0x00},
	}}
	ov, ok := sw.OldValueAt(0, 4, memtype.B32)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, ov.Bytes)

	_, ok = sw.OldValueAt(1, 4, memtype.B32)
	assert.False(t, ok)
}
