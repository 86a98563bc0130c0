package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
)

func u32le(v uint32) []byte {
	buf := make([]byte, 4)
	memtype.PutU32(buf, v, memtype.LittleEndian)
	return buf
}

func TestEqualToI32Matches(t *testing.T) {
	rt, err := New(I32, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)

	mem := u32le(42)
	user := memtype.NewIntUserValue(42, 42)
	var out memtype.MatchFlags
	n := rt(mem, nil, user, &out)
	assert.Equal(t, 4, n)
	assert.Equal(t, memtype.FlagS32, out)

	user2 := memtype.NewIntUserValue(7, 7)
	out = memtype.Empty
	n = rt(mem, nil, user2, &out)
	assert.Equal(t, 0, n)
}

func TestRangeSwappedBounds(t *testing.T) {
	rt, err := New(I32, memtype.Range, memtype.LittleEndian)
	assert.NoError(t, err)

	mem := u32le(5)
	// Low/high given backwards; the routine must normalize.
	user := memtype.NewIntUserValue(10, 0)
	var out memtype.MatchFlags
	n := rt(mem, nil, user, &out)
	assert.Equal(t, 4, n)
}

func TestIncreasedByRequiresOldValue(t *testing.T) {
	rt, err := New(I32, memtype.IncreasedBy, memtype.LittleEndian)
	assert.NoError(t, err)

	mem := u32le(15)
	old := &memtype.OldValue{Bytes: u32le(10), Flags: memtype.All}
	user := memtype.NewIntUserValue(5, 5)
	var out memtype.MatchFlags
	n := rt(mem, old, user, &out)
	assert.Equal(t, 4, n)

	n = rt(mem, nil, user, &out)
	assert.Equal(t, 0, n)
}

func TestNoRoutineForUnsupportedCombination(t *testing.T) {
	_, err := New(I32, memtype.Regex, memtype.LittleEndian)
	assert.Error(t, err)
}

func TestEqualToRejectsUserValueWithoutMatchingFlag(t *testing.T) {
	rt, err := New(I32, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)
	user := &memtype.UserValue{Flags: memtype.B8, I32Low: 1, I32High: 1}
	var out memtype.MatchFlags
	n := rt(u32le(1), nil, user, &out)
	assert.Equal(t, 0, n)
}
