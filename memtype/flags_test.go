package memtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchFlagsHasAny(t *testing.T) {
	f := FlagU32 | FlagF64
	assert.True(t, f.Has(FlagU32))
	assert.True(t, f.Any(FlagU32|FlagS32))
	assert.False(t, f.Has(FlagS32))
	assert.False(t, f.Any(FlagU16))
}

func TestMatchFlagsWidth(t *testing.T) {
	assert.Equal(t, 8, (FlagU64 | FlagS8).Width())
	assert.Equal(t, 4, FlagF32.Width())
	assert.Equal(t, 2, FlagS16.Width())
	assert.Equal(t, 1, FlagU8.Width())
	assert.Equal(t, 0, Empty.Width())
}

func TestNewIntUserValue(t *testing.T) {
	uv := NewIntUserValue(-5, 10)
	assert.True(t, uv.Flags.Has(Integer))
	assert.Equal(t, int8(-5), uv.I8Low)
	assert.Equal(t, int64(10), uv.I64High)
	assert.Equal(t, uint64(10), uv.U64High)
}

func TestOldValueHas(t *testing.T) {
	ov := &OldValue{Bytes: []byte{1, 2, 3, 4}, Flags: FlagS32}
	assert.True(t, ov.Has(FlagS32, 4))
	assert.False(t, ov.Has(FlagS32, 8))
	assert.False(t, ov.Has(FlagF32, 4))
	var nilOV *OldValue
	assert.False(t, nilOV.Has(FlagS32, 4))
}
