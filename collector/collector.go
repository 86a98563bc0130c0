// Package collector materializes the first N matches out of a store in a
// stable global order (§4.8): walking swaths in store order, every matched
// cell gets a global_index regardless of whether it survives an
// export-time filter, so narrowing the store between two `List` calls
// never shifts the indices of matches that are still present.
package collector

import (
	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/region"
	"github.com/future-re/memscan/store"
)

// Entry is one materialized match.
type Entry struct {
	Index   int
	Address memtype.RemotePtr
	Value   []byte
	Region  string
}

// List walks s in store order, emitting up to limit entries. classifier may
// be nil, in which case Region is left empty. filter, when non-nil and in
// region.ExportTime mode, is consulted against regions to decide whether a
// matched address is skipped — skipped entries still advance the global
// index. valueSize is the byte width of the last scan's data type (1 for
// variable-width types). Returns the emitted entries and the effective
// total: the filtered match count when the export filter is active, else
// the raw match count.
func List(
	s *store.MatchStore,
	classifier *region.Classifier,
	filter *region.Filter,
	regions []*region.Region,
	valueSize int,
	limit int,
) ([]Entry, int) {
	if valueSize < 1 {
		valueSize = 1
	}

	var entries []Entry
	globalIndex := -1
	effectiveTotal := 0

	s.Walk(func(sw *store.Swath, i int, addr memtype.RemotePtr) bool {
		globalIndex++

		if filter != nil && filter.Mode == region.ExportTime && !filter.IsAddressAllowed(addr, regions) {
			return true
		}
		effectiveTotal++

		if limit > 0 && len(entries) >= limit {
			return true
		}

		value := valueAt(sw, i, valueSize)
		label := ""
		if classifier != nil {
			label = classifier.Classify(addr)
		}
		entries = append(entries, Entry{
			Index:   globalIndex,
			Address: addr,
			Value:   value,
			Region:  label,
		})
		return true
	})

	return entries, effectiveTotal
}

func valueAt(sw *store.Swath, i, width int) []byte {
	end := i + width
	if end > len(sw.Cells) {
		end = len(sw.Cells)
	}
	buf := make([]byte, 0, end-i)
	for _, c := range sw.Cells[i:end] {
		buf = append(buf, c.OldByte)
	}
	return buf
}
