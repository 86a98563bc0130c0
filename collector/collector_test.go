package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/region"
	"github.com/future-re/memscan/store"
)

func buildStore() *store.MatchStore {
	s := store.New()
	sw := &store.Swath{FirstAddr: 0x1000}
	for i := 0; i < 8; i++ {
		flags := memtype.Empty
		if i%2 == 0 {
			flags = memtype.B32
		}
		sw.Cells = append(sw.Cells, store.Cell{OldByte: byte(i), MatchInfo: flags})
	}
	s.AppendSwath(sw)
	return s
}

func TestListEmitsUpToLimitAndReportsTotal(t *testing.T) {
	s := buildStore()
	entries, total := List(s, nil, nil, nil, 4, 2)
	assert.Len(t, entries, 2)
	assert.Equal(t, 4, total, "4 cells carry a non-empty MatchInfo")
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, 1, entries[1].Index, "global index skips unmatched cells")
}

func TestListExportFilterDropsDisallowedRegion(t *testing.T) {
	s := buildStore()
	regions := []*region.Region{{ID: 0, Start: 0x1000, End: 0x1010, Type: region.Heap}}
	filter := region.NewFilter(region.ExportTime, region.Stack) // Heap is not in the allow-set

	entries, total := List(s, nil, filter, regions, 4, 10)
	assert.Empty(t, entries)
	assert.Equal(t, 0, total)
}

func TestListWithoutLimitReturnsEverything(t *testing.T) {
	s := buildStore()
	entries, total := List(s, nil, nil, nil, 4, 0)
	assert.Len(t, entries, 4)
	assert.Equal(t, 4, total)
}

func TestListUsesClassifierWhenProvided(t *testing.T) {
	s := buildStore()
	regions := []*region.Region{{ID: 0, Start: 0x1000, End: 0x2000, Type: region.Heap}}
	classifier := region.NewClassifier(regions)

	entries, _ := List(s, classifier, nil, nil, 4, 1)
	assert.Equal(t, "heap", entries[0].Region)
}
