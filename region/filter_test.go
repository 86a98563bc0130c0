package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterAllowsEverythingWhenDisabled(t *testing.T) {
	f := NewFilter(Disabled, Heap)
	r := &Region{Type: Stack}
	assert.True(t, f.IsRegionAllowed(r))
}

func TestFilterRegionAllowSet(t *testing.T) {
	f := NewFilter(ScanTime, Heap, Stack)
	assert.True(t, f.IsRegionAllowed(&Region{Type: Heap}))
	assert.False(t, f.IsRegionAllowed(&Region{Type: Exe}))
}

func TestFilterRegions(t *testing.T) {
	f := NewFilter(ScanTime, Heap)
	regions := []*Region{
		{ID: 0, Type: Heap},
		{ID: 1, Type: Stack},
		{ID: 2, Type: Heap},
	}
	filtered := f.FilterRegions(regions)
	assert.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.Equal(t, Heap, r.Type)
	}
}

func TestIsAddressAllowed(t *testing.T) {
	f := NewFilter(ExportTime, Heap)
	regions := []*Region{
		{Start: 0x1000, End: 0x2000, Type: Heap},
		{Start: 0x2000, End: 0x3000, Type: Stack},
	}
	assert.True(t, f.IsAddressAllowed(0x1500, regions))
	assert.False(t, f.IsAddressAllowed(0x2500, regions))
	assert.True(t, f.IsAddressAllowed(0x9000, regions)) // no owning region: allowed
}
