package store

import (
	"bytes"
	"encoding/gob"

	"github.com/golang/snappy"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

// maxHistoryDepth is the ring buffer's capacity (§6): pushing an 11th
// entry evicts the oldest. Never reordered.
const maxHistoryDepth = 10

// digestKey is a fixed (non-secret) key for the highwayhash digest carried
// by each history entry. It exists only to detect accidental corruption of
// a ring slot after it is decompressed and before it is gob-decoded, not to
// authenticate anything.
var digestKey = [highwayhash.Size]byte{
	0x6d, 0x65, 0x6d, 0x73, 0x63, 0x61, 0x6e, 0x2d,
	0x68, 0x69, 0x73, 0x74, 0x6f, 0x72, 0x79, 0x2d,
	0x72, 0x69, 0x6e, 0x67, 0x2d, 0x64, 0x69, 0x67,
	0x65, 0x73, 0x74, 0x2d, 0x76, 0x31, 0x00, 0x00,
}

// Stats is cumulative per-call statistics, merged additively when workers
// reduce (§3).
type Stats struct {
	RegionsVisited int
	BytesScanned   int64
	Matches        int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.RegionsVisited += other.RegionsVisited
	s.BytesScanned += other.BytesScanned
	s.Matches += other.Matches
}

// Result is one history entry (§3's ScanResult): the stats and options of
// the call that produced it, the user value if any, and the store as it
// stood at that moment. Never mutated after it is pushed.
type Result struct {
	Stats      Stats
	Options    memtype.ScanOptions
	UserValue  *memtype.UserValue
	StoreBytes []byte // gob-encoded *MatchStore, snappy-compressed unless Compressed is false
	Compressed bool
	Digest     uint64
}

func newResult(stats Stats, opts memtype.ScanOptions, uv *memtype.UserValue, s *MatchStore, compress bool) (*Result, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, errors.Wrap(err, "store: encoding history snapshot")
	}
	raw := buf.Bytes()
	digest := highwayhash.Sum64(raw, digestKey[:])
	stored := raw
	if compress {
		stored = snappy.Encode(nil, raw)
	}
	return &Result{Stats: stats, Options: opts, UserValue: uv, StoreBytes: stored, Compressed: compress, Digest: digest}, nil
}

// Store decodes the entry's snapshot, decompressing it first if it was
// stored compressed.
func (r *Result) Store() (*MatchStore, error) {
	raw := r.StoreBytes
	if r.Compressed {
		decoded, err := snappy.Decode(nil, r.StoreBytes)
		if err != nil {
			return nil, errors.Wrap(scanerr.ErrSnapshotCorrupt, "store: decompressing history snapshot")
		}
		raw = decoded
	}
	if highwayhash.Sum64(raw, digestKey[:]) != r.Digest {
		return nil, errors.Wrap(scanerr.ErrSnapshotCorrupt, "store: history snapshot digest mismatch")
	}
	var s MatchStore
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&s); err != nil {
		return nil, errors.Wrap(scanerr.ErrSnapshotCorrupt, "store: decoding history snapshot")
	}
	return &s, nil
}

// History is the bounded ring of past ScanResults (§6): push evicts the
// oldest entry past depth; entries are never reordered or mutated after
// being pushed.
type History struct {
	entries  []*Result
	depth    int
	compress bool
}

// NewHistory returns an empty history ring holding at most depth entries
// (depth <= 0 defaults to maxHistoryDepth), snappy-compressing pushed
// snapshots when compress is true.
func NewHistory(depth int, compress bool) *History {
	if depth <= 0 {
		depth = maxHistoryDepth
	}
	return &History{depth: depth, compress: compress}
}

// Push compresses (when the ring was built with compress=true) and stores a
// snapshot of s alongside stats/options/user value, evicting the oldest
// entry if the ring is already at capacity. Returns the index the new entry
// occupies after any eviction (len(entries)-1).
func (h *History) Push(stats Stats, opts memtype.ScanOptions, uv *memtype.UserValue, s *MatchStore) (int, error) {
	r, err := newResult(stats, opts, uv, s.Clone(), h.compress)
	if err != nil {
		return -1, err
	}
	h.entries = append(h.entries, r)
	if len(h.entries) > h.depth {
		h.entries = h.entries[len(h.entries)-h.depth:]
	}
	return len(h.entries) - 1, nil
}

// Len returns the number of entries currently retained.
func (h *History) Len() int { return len(h.entries) }

// At returns the i-th entry, decompressing it on demand (not eagerly).
func (h *History) At(i int) (*Result, *MatchStore, error) {
	if i < 0 || i >= len(h.entries) {
		return nil, nil, errors.Errorf("store: history index %d out of range [0,%d)", i, len(h.entries))
	}
	r := h.entries[i]
	s, err := r.Store()
	if err != nil {
		return nil, nil, err
	}
	return r, s, nil
}
