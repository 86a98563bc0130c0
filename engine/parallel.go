package engine

import (
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/grailbio/base/traverse"
	"v.io/x/lib/vlog"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/procio"
	"github.com/future-re/memscan/region"
	"github.com/future-re/memscan/routine"
	"github.com/future-re/memscan/store"
)

// regionResult pairs a scanned region's id with its swath, so the reduce
// step (step 4 of §4.7) can sort and dedupe before merging into the final
// store.
type regionResult struct {
	id int
	sw *store.Swath
}

// ParallelFullScan implements §4.7: workers share the region list and an
// atomic "next region index", each pulling and scanning regions until none
// remain, then a single-threaded reduce sorts by region.id and appends to
// the final store, discarding duplicate ids. With workers <= 1 or a single
// region it falls back to the serial FullScan, producing identical output.
func ParallelFullScan(
	pid int,
	opts memtype.ScanOptions,
	user *memtype.UserValue,
	prev *store.MatchStore,
	filter *region.Filter,
	workers int,
) (*store.MatchStore, store.Stats, error) {
	var total store.Stats

	regions, err := visibleRegions(pid, opts, filter)
	if err != nil {
		return nil, total, err
	}

	w := effectiveWorkers(workers, len(regions))
	if w <= 1 {
		return fullScanOverRegions(pid, regions, opts, user, prev)
	}

	if _, err := routine.New(opts.DataType, opts.MatchType, opts.Endianness()); err != nil {
		return nil, total, err
	}

	perWorker := make([][]regionResult, w)
	perWorkerStats := make([]store.Stats, w)
	var nextIdx int64 = -1
	var firstErr error

	err = traverse.Each(w, func(worker int) error {
		mem, err := procio.OpenRead(pid)
		if err != nil {
			return err
		}
		defer mem.Close() // nolint: errcheck

		// Each worker builds its own routine, so per-routine state such as
		// the regex cache is never shared between workers.
		rt, err := routine.New(opts.DataType, opts.MatchType, opts.Endianness())
		if err != nil {
			return err
		}

		var local []regionResult
		var localStats store.Stats
		for {
			idx := atomic.AddInt64(&nextIdx, 1)
			if idx >= int64(len(regions)) {
				break
			}
			r := regions[idx]
			sw, stats, err := scanRegion(mem, r, opts, rt, user, prev)
			if err != nil {
				logRegionSkip(r, err)
				continue
			}
			local = append(local, regionResult{id: r.ID, sw: sw})
			localStats.Add(stats)
		}
		perWorker[worker] = local
		perWorkerStats[worker] = localStats
		return nil
	})
	if err != nil {
		firstErr = err
	}
	if firstErr != nil {
		return nil, total, firstErr
	}

	var all []regionResult
	for i, local := range perWorker {
		all = append(all, local...)
		total.Add(perWorkerStats[i])
	}
	sort.Slice(all, func(i, j int) bool { return all[i].id < all[j].id })

	out := store.New()
	seen := make(map[int]bool, len(all))
	for _, rr := range all {
		if seen[rr.id] {
			continue
		}
		seen[rr.id] = true
		out.AppendSwath(rr.sw)
	}
	vlog.VI(1).Infof("engine: parallel full scan pid=%d workers=%d regions=%d matches=%d", pid, w, total.RegionsVisited, total.Matches)
	return out, total, nil
}

func fullScanOverRegions(pid int, regions []*region.Region, opts memtype.ScanOptions, user *memtype.UserValue, prev *store.MatchStore) (*store.MatchStore, store.Stats, error) {
	var total store.Stats
	rt, err := routine.New(opts.DataType, opts.MatchType, opts.Endianness())
	if err != nil {
		return nil, total, err
	}
	mem, err := procio.OpenRead(pid)
	if err != nil {
		return nil, total, err
	}
	defer mem.Close() // nolint: errcheck

	out := store.New()
	for _, r := range regions {
		sw, stats, err := scanRegion(mem, r, opts, rt, user, prev)
		if err != nil {
			logRegionSkip(r, err)
			continue
		}
		out.AppendSwath(sw)
		total.Add(stats)
	}
	return out, total, nil
}

// effectiveWorkers returns min(hardware parallelism or the caller's
// requested count, nRegions), per §4.7 step 1. requested <= 0 means "use
// runtime.NumCPU()".
func effectiveWorkers(requested, nRegions int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if nRegions < requested {
		requested = nRegions
	}
	return requested
}
