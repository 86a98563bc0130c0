package engine

import (
	"os"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/store"
)

func TestFullScanFindsByteArrayInOwnMemory(t *testing.T) {
	marker := []byte("memscan-fullscan-needle-0xABCD")
	defer runtime.KeepAlive(marker)

	opts := memtype.ScanOptions{
		DataType:    memtype.ByteArray,
		MatchType:   memtype.EqualTo,
		Step:        1,
		BlockSize:   1 << 16,
		RegionLevel: memtype.LevelAll,
	}
	user := memtype.NewBytesUserValue(marker, nil)

	s, stats, err := FullScan(os.Getpid(), opts, user, nil, nil)
	assert.NoError(t, err)
	assert.Greater(t, stats.RegionsVisited, 0)
	assert.Greater(t, s.MatchCount(), 0)

	wantAddr := memtype.RemotePtr(uintptr(unsafe.Pointer(&marker[0])))
	found := false
	s.Walk(func(sw *store.Swath, i int, addr memtype.RemotePtr) bool {
		if addr == wantAddr {
			found = true
			return false
		}
		return true
	})
	assert.True(t, found, "expected the needle's own address among the matches")
}

func TestFullScanEqualToI32InHeapValue(t *testing.T) {
	value := int32(0x5a5a5a5a)
	defer runtime.KeepAlive(&value)

	opts := memtype.ScanOptions{
		DataType:    memtype.I32,
		MatchType:   memtype.EqualTo,
		Step:        1,
		BlockSize:   1 << 16,
		RegionLevel: memtype.LevelAll,
	}
	user := memtype.NewIntUserValue(int64(value), int64(value))

	s, _, err := FullScan(os.Getpid(), opts, user, nil, nil)
	assert.NoError(t, err)
	assert.Greater(t, s.MatchCount(), 0)
}
