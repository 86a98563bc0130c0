package region

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleMaps = `00400000-00401000 r-xp 00000000 08:01 1234 /usr/bin/target
00401000-00402000 r--p 00001000 08:01 1234 /usr/bin/target
00402000-00403000 rw-p 00002000 08:01 1234 /usr/bin/target
01a00000-01a21000 rw-p 00000000 00:00 0 [heap]
7ffd00000000-7ffd00021000 rw-p 00000000 00:00 0 [stack]
7f0000000000-7f0000010000 r--p 00000000 08:01 5678 /lib/libc.so
7f0000010000-7f0000020000 r-xp 00010000 08:01 5678 /lib/libc.so
not a valid line here
`

func TestDiscoverFromClassifiesRegions(t *testing.T) {
	regions, err := discoverFrom(strings.NewReader(sampleMaps), "/usr/bin/target")
	assert.NoError(t, err)

	byType := make(map[Type][]*Region)
	for _, r := range regions {
		byType[r.Type] = append(byType[r.Type], r)
	}

	assert.Len(t, byType[Code], 1)
	assert.Len(t, byType[Exe], 3) // the executable mapping plus two rolled-in adjacent mappings
	assert.Len(t, byType[Heap], 1)
	assert.Len(t, byType[Stack], 1)
	assert.Len(t, byType[Misc], 1)

	for _, r := range byType[Exe] {
		assert.Equal(t, uint64(0x00400000), r.LoadAddr)
	}
}

func TestFilterByLevel(t *testing.T) {
	regions, err := discoverFrom(strings.NewReader(sampleMaps), "/usr/bin/target")
	assert.NoError(t, err)

	rw := FilterByLevel(regions, AllRW)
	for _, r := range rw {
		assert.True(t, r.Writable)
	}

	hse := FilterByLevel(regions, HeapStackExecutable)
	for _, r := range hse {
		assert.Contains(t, []Type{Heap, Stack, Exe}, r.Type)
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	for _, tc := range []Type{Misc, Exe, Code, Heap, Stack} {
		parsed, err := ParseType(tc.String())
		assert.NoError(t, err)
		assert.Equal(t, tc, parsed)
	}
	_, err := ParseType("bogus")
	assert.Error(t, err)
}
