package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
)

func TestAnyIntegerTriesWidestFirst(t *testing.T) {
	rt, err := New(AnyInteger, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)

	// A single 0x2A byte: not a valid u64/u32/u16 equal-42 match (those read
	// more bytes than available or decode a different value), but matches
	// the u8/i8 attempt at the tail of the descending order.
	mem := []byte{42}
	user := memtype.NewIntUserValue(42, 42)
	var out memtype.MatchFlags
	n := rt(mem, nil, user, &out)
	assert.Equal(t, 1, n)
	assert.True(t, out.Any(memtype.B8))
}

func TestAnyIntegerPrefersWiderWidthWhenBothFit(t *testing.T) {
	rt, err := New(AnyInteger, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)

	mem := u32le(42)
	user := memtype.NewIntUserValue(42, 42)
	var out memtype.MatchFlags
	n := rt(mem, nil, user, &out)
	assert.Equal(t, 4, n)
	assert.True(t, out.Any(memtype.B32))
}

func TestAnyNumberTriesFloatsBeforeIntegers(t *testing.T) {
	rt, err := New(AnyNumber, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)

	buf := make([]byte, 8)
	memtype.PutF64(buf, 3.5, memtype.LittleEndian)
	user := memtype.NewFloatUserValue(3.5, 3.5)
	var out memtype.MatchFlags
	n := rt(buf, nil, user, &out)
	assert.Equal(t, 8, n)
	assert.True(t, out.Any(memtype.Float))
}
