package engine

import (
	"v.io/x/lib/vlog"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/region"
	"github.com/future-re/memscan/store"
)

// FullScan implements §4.5: discover and classify regions, build the
// routine for (opts.DataType, opts.MatchType, opts.Endianness()), then
// stream every visible region's memory through it, recording hits into a
// freshly built store. prev, when non-nil, supplies old values for
// predicates that need them (Update, Changed, IncreasedBy, ...). filter,
// when non-nil and in region.ScanTime mode, drops disallowed regions
// before they are ever read.
func FullScan(
	pid int,
	opts memtype.ScanOptions,
	user *memtype.UserValue,
	prev *store.MatchStore,
	filter *region.Filter,
) (*store.MatchStore, store.Stats, error) {
	regions, err := visibleRegions(pid, opts, filter)
	if err != nil {
		return nil, store.Stats{}, err
	}
	out, total, err := fullScanOverRegions(pid, regions, opts, user, prev)
	if err != nil {
		return nil, total, err
	}
	vlog.VI(1).Infof("engine: full scan pid=%d regions=%d matches=%d bytes=%d", pid, total.RegionsVisited, total.Matches, total.BytesScanned)
	return out, total, nil
}
