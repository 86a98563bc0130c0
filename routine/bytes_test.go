package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
)

func TestByteArrayEqualToExact(t *testing.T) {
	rt, err := New(ByteArray, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)

	user := memtype.NewBytesUserValue([]byte{0xDE, 0xAD, 0xBE, 0xEF}, nil)
	var out memtype.MatchFlags
	n := rt([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}, nil, user, &out)
	assert.Equal(t, 4, n)

	n = rt([]byte{0xDE, 0xAD, 0xBE, 0xFF}, nil, user, &out)
	assert.Equal(t, 0, n)
}

func TestByteArrayEqualToMasked(t *testing.T) {
	rt, err := New(ByteArray, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)

	pattern := []byte{0xDE, 0x00, 0xBE, 0xEF}
	mask := []byte{0xFF, 0x00, 0xFF, 0xFF}
	user := memtype.NewBytesUserValue(pattern, mask)
	var out memtype.MatchFlags
	n := rt([]byte{0xDE, 0x99, 0xBE, 0xEF}, nil, user, &out)
	assert.Equal(t, 4, n)
}

func TestStringEqualAnchoredAtOffsetZero(t *testing.T) {
	rt, err := New(String, memtype.EqualTo, memtype.LittleEndian)
	assert.NoError(t, err)

	user := memtype.NewStringUserValue("hello")
	var out memtype.MatchFlags
	n := rt([]byte("hello world"), nil, user, &out)
	assert.Equal(t, 5, n)

	n = rt([]byte("say hello"), nil, user, &out)
	assert.Equal(t, 0, n, "string routine compares only at offset zero, never searches")
}

func TestStringRegexAnchoredMatch(t *testing.T) {
	rt, err := New(String, memtype.Regex, memtype.LittleEndian)
	assert.NoError(t, err)

	user := memtype.NewStringUserValue(`[0-9]+`)
	var out memtype.MatchFlags
	n := rt([]byte("123abc"), nil, user, &out)
	assert.Equal(t, 3, n)

	n = rt([]byte("abc123"), nil, user, &out)
	assert.Equal(t, 0, n)
}

func TestStringRegexInvalidPatternIsNoMatchNotPanic(t *testing.T) {
	rt, err := New(String, memtype.Regex, memtype.LittleEndian)
	assert.NoError(t, err)

	user := memtype.NewStringUserValue(`(unterminated`)
	var out memtype.MatchFlags
	assert.NotPanics(t, func() {
		n := rt([]byte("abc"), nil, user, &out)
		assert.Equal(t, 0, n)
	})
}

func TestFindPattern(t *testing.T) {
	hay := []byte{0x00, 0x00, 0xDE, 0xAD, 0x00}
	assert.Equal(t, 2, FindPattern(hay, []byte{0xDE, 0xAD}))
	assert.Equal(t, -1, FindPattern(hay, []byte{0xFF}))
}
