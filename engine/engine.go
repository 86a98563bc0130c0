// Package engine implements the scan algorithms that stream target-process
// memory through a routine.Routine and record hits in a store.MatchStore:
// the full-scan engine (§4.5), the narrowing filter engine (§4.6), and the
// parallel scheduler (§4.7) that fans the full scan out across regions.
package engine

import (
	"v.io/x/lib/vlog"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/procio"
	"github.com/future-re/memscan/region"
	"github.com/future-re/memscan/routine"
	"github.com/future-re/memscan/store"
)

// scanRegion streams one region through rt, appending matched ranges into a
// freshly built swath. It is shared by the serial full scan and each
// parallel worker so both paths apply identical block/stride semantics.
func scanRegion(
	mem *procio.Mem,
	r *region.Region,
	opts memtype.ScanOptions,
	rt routine.Routine,
	user *memtype.UserValue,
	prev *store.MatchStore,
) (*store.Swath, store.Stats, error) {
	var stats store.Stats
	sw := &store.Swath{FirstAddr: r.Start}

	blockSize := opts.EffectiveBlockSize()
	step := opts.EffectiveStep()
	needWidth := memtype.BytesNeeded(opts.DataType)
	usesOld := memtype.UsesOldValue(opts.MatchType)

	addr := r.Start
	for addr < r.End {
		remaining := r.End - addr
		blockLen := blockSize
		if uint64(blockLen) > remaining {
			blockLen = int(remaining)
		}
		buf := make([]byte, blockLen)
		n, err := mem.Read(addr, buf)
		if err != nil {
			return sw, stats, err
		}
		if n == 0 {
			break
		}
		buf = buf[:n]
		baseIdx := len(sw.Cells)
		for _, b := range buf {
			sw.Cells = append(sw.Cells, store.Cell{OldByte: b, MatchInfo: memtype.Empty})
		}

		for off := 0; off < n; off += step {
			var old *memtype.OldValue
			if usesOld && prev != nil {
				if ov, ok := prev.OldValueAt(addr+memtype.RemotePtr(off), needWidth, memtype.All); ok {
					old = &ov
				}
			}
			var outFlags memtype.MatchFlags
			matched := rt(buf[off:], old, user, &outFlags)
			if matched <= 0 {
				continue
			}
			end := off + matched
			if end > len(buf) {
				end = len(buf)
			}
			for k := off; k < end; k++ {
				sw.Cells[baseIdx+k].MatchInfo |= outFlags
			}
		}

		stats.BytesScanned += int64(n)
		if n < blockLen {
			// Short read: the rest of the region is unreadable from here.
			break
		}
		addr += memtype.RemotePtr(n)
	}

	stats.RegionsVisited = 1
	stats.Matches = sw.MatchCount()
	return sw, stats, nil
}

// visibleRegions applies the region-level filter and, when active in
// scan-time mode, the export/scan-time allow-set filter (§4.5 step 1).
func visibleRegions(pid int, opts memtype.ScanOptions, filter *region.Filter) ([]*region.Region, error) {
	exePath, err := region.ResolveExePath(pid)
	if err != nil {
		return nil, err
	}
	regions, err := region.Discover(pid, exePath)
	if err != nil {
		return nil, err
	}
	regions = region.FilterByLevel(regions, toRegionLevel(opts.RegionLevel))
	if filter != nil && filter.Mode == region.ScanTime {
		regions = filter.FilterRegions(regions)
	}
	return regions, nil
}

func toRegionLevel(l memtype.RegionLevel) region.Level {
	switch l {
	case memtype.LevelAllRW:
		return region.AllRW
	case memtype.LevelHeapStackExecutable:
		return region.HeapStackExecutable
	case memtype.LevelHeapStackExecutableBss:
		return region.HeapStackExecutableBss
	default:
		return region.All
	}
}

func logRegionSkip(r *region.Region, err error) {
	vlog.VI(1).Infof("engine: region %d [%#x,%#x) skipped: %v", r.ID, r.Start, r.End, err)
}
