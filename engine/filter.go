package engine

import (
	"v.io/x/lib/vlog"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/procio"
	"github.com/future-re/memscan/routine"
	"github.com/future-re/memscan/scanerr"
	"github.com/future-re/memscan/store"
)

// Filter implements §4.6: re-read every currently matched cell's address,
// reconstruct an old value from its stored bytes when the new predicate
// needs one, and re-apply the new routine. Cells that fail to match, or
// whose address becomes unreadable, are cleared; swaths left entirely
// empty are pruned. Filtering never grows the match set.
func Filter(pid int, s *store.MatchStore, opts memtype.ScanOptions, user *memtype.UserValue) (store.Stats, error) {
	var stats store.Stats

	if s.MatchCount() == 0 {
		return stats, scanerr.ErrNoExistingMatches
	}

	rt, err := routine.New(opts.DataType, opts.MatchType, opts.Endianness())
	if err != nil {
		return stats, err
	}

	mem, err := procio.OpenRead(pid)
	if err != nil {
		return stats, err
	}
	defer mem.Close() // nolint: errcheck

	width := memtype.BytesNeeded(opts.DataType)
	usesOld := memtype.UsesOldValue(opts.MatchType)

	for _, sw := range s.Swaths {
		for i := range sw.Cells {
			if sw.Cells[i].MatchInfo == memtype.Empty {
				continue
			}
			addr := sw.FirstAddr + memtype.RemotePtr(i)
			buf := make([]byte, width)
			n, err := mem.Read(addr, buf)
			if err != nil {
				return stats, err
			}
			if n == 0 {
				sw.Cells[i].MatchInfo = memtype.Empty
				continue
			}
			buf = buf[:n]

			var old *memtype.OldValue
			if usesOld {
				if ov, ok := sw.OldValueAt(i, width, memtype.All); ok {
					old = &ov
				}
			}

			var outFlags memtype.MatchFlags
			matched := rt(buf, old, user, &outFlags)
			stats.BytesScanned += int64(n)
			if matched > 0 {
				sw.Cells[i].MatchInfo = outFlags
				stats.Matches++
			} else {
				sw.Cells[i].MatchInfo = memtype.Empty
			}
		}
	}

	s.Prune()
	vlog.VI(1).Infof("engine: filter matches=%d bytes=%d", stats.Matches, stats.BytesScanned)
	return stats, nil
}
