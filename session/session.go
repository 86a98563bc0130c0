// Package session provides the single façade object (A6) named in the
// external interface: one Session owns a target PID's scan lifecycle —
// configuration, the current match store, the history ring, and liveness
// state — and exposes full scan, filter, list, write, and snapshot
// operations built on the engine, collector, writer, and store packages.
package session

import (
	"bytes"
	"encoding/gob"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"v.io/x/lib/vlog"

	"github.com/future-re/memscan/collector"
	"github.com/future-re/memscan/engine"
	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/region"
	"github.com/future-re/memscan/scanerr"
	"github.com/future-re/memscan/store"
	"github.com/future-re/memscan/writer"
)

// Stats is the cumulative, session-lifetime counterpart to a single call's
// store.Stats.
type Stats struct {
	TotalScans        int
	TotalFilters      int
	TotalBytesRead    int64
	TotalBytesWritten int64
}

// Session owns one target process's scanning lifecycle. All exported
// methods are safe for concurrent use by a single caller goroutine; a
// Session is not itself intended to be shared across goroutines issuing
// concurrent scans (the parallel scheduler already owns the concurrency
// within a single call).
type Session struct {
	mu sync.Mutex

	pid    int
	config Config

	store       *store.MatchStore
	history     *store.History
	lastOptions memtype.ScanOptions
	haveOptions bool

	filter *region.Filter
	stats  Stats
}

// NewSession validates cfg and probes the target's liveness, failing fast
// with TargetUnavailable if the process is dead or a zombie, rather than
// letting the first /proc/<pid>/mem open surface a confusing I/O error.
func NewSession(pid int, cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	live, err := ProbeLiveness(pid)
	if err != nil {
		return nil, err
	}
	if live == LivenessDead || live == LivenessZombie {
		return nil, errors.Wrapf(scanerr.ErrTargetUnavailable, "pid %d is %s", pid, live)
	}

	s := &Session{
		pid:    pid,
		config: cfg,
		store:  store.New(),
	}
	if cfg.HistoryDepth > 0 {
		s.history = store.NewHistory(cfg.HistoryDepth, cfg.CompressHistory)
	}
	s.filter = buildFilter(cfg)
	return s, nil
}

func buildFilter(cfg Config) *region.Filter {
	if cfg.RegionFilterMode == memtype.FilterDisabled {
		return nil
	}
	mode := region.ScanTime
	if cfg.RegionFilterMode == memtype.FilterExportTime {
		mode = region.ExportTime
	}
	types := make([]region.Type, len(cfg.RegionFilterTypes))
	for i, t := range cfg.RegionFilterTypes {
		types[i] = region.Type(t)
	}
	return region.NewFilter(mode, types...)
}

// FullScan runs a fresh full scan (§4.5/§4.7), replacing the current
// store. When cfg.Workers != 1 (after defaulting) the parallel scheduler
// is used; otherwise the serial engine runs.
func (s *Session) FullScan(dataType memtype.ScanDataType, matchType memtype.ScanMatchType, reverseEndian bool, user *memtype.UserValue) (store.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.config.scanOptions(dataType, matchType, reverseEndian)

	var out *store.MatchStore
	var stats store.Stats
	var err error
	if s.config.Workers == 1 {
		out, stats, err = engine.FullScan(s.pid, opts, user, nil, s.filter)
	} else {
		out, stats, err = engine.ParallelFullScan(s.pid, opts, user, nil, s.filter, s.config.Workers)
	}
	if err != nil {
		return stats, err
	}

	s.store = out
	s.lastOptions = opts
	s.haveOptions = true
	s.stats.TotalScans++
	s.stats.TotalBytesRead += stats.BytesScanned
	vlog.VI(1).Infof("session: full scan pid=%d matches=%d", s.pid, stats.Matches)
	return stats, nil
}

// Filter narrows the current store with a new predicate (§4.6). Fails with
// NoExistingMatches if the store is currently empty.
func (s *Session) Filter(dataType memtype.ScanDataType, matchType memtype.ScanMatchType, reverseEndian bool, user *memtype.UserValue) (store.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.config.scanOptions(dataType, matchType, reverseEndian)
	stats, err := engine.Filter(s.pid, s.store, opts, user)
	if err != nil {
		return stats, err
	}
	s.lastOptions = opts
	s.haveOptions = true
	s.stats.TotalFilters++
	s.stats.TotalBytesRead += stats.BytesScanned
	vlog.VI(1).Infof("session: filter pid=%d matches=%d", s.pid, stats.Matches)
	return stats, nil
}

// PushHistory snapshots the current store into the history ring, returning
// the index it landed at.
func (s *Session) PushHistory(user *memtype.UserValue) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return -1, errors.Wrap(scanerr.ErrInvalidConfig, "session: history disabled")
	}
	var stats store.Stats
	stats.Matches = s.store.MatchCount()
	return s.history.Push(stats, s.lastOptions, user, s.store)
}

// RestoreHistory replaces the current store with history entry i.
func (s *Session) RestoreHistory(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return errors.Wrap(scanerr.ErrInvalidConfig, "session: history disabled")
	}
	r, st, err := s.history.At(i)
	if err != nil {
		return err
	}
	s.store = st
	s.lastOptions = r.Options
	s.haveOptions = true
	return nil
}

// List materializes up to n matches via the collector (§4.8).
func (s *Session) List(n int, classifier *region.Classifier, regions []*region.Region) ([]collector.Entry, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	valueSize := 1
	if s.haveOptions {
		valueSize = memtype.BytesNeeded(s.lastOptions.DataType)
	}
	return collector.List(s.store, classifier, s.filter, regions, valueSize, n)
}

// WriteScalar writes a single scalar value to addr (§4.9).
func (s *Session) WriteScalar(addr memtype.RemotePtr, value uint64, width int, e memtype.Endianness) error {
	err := writer.WriteScalar(s.pid, addr, value, width, e)
	s.mu.Lock()
	if err == nil {
		s.stats.TotalBytesWritten += int64(width)
	}
	s.mu.Unlock()
	return err
}

// WriteBytes writes a raw byte buffer to addr (§4.9).
func (s *Session) WriteBytes(addr memtype.RemotePtr, buf []byte) error {
	err := writer.WriteBytes(s.pid, addr, buf)
	s.mu.Lock()
	if err == nil {
		s.stats.TotalBytesWritten += int64(len(buf))
	}
	s.mu.Unlock()
	return err
}

// WriteToMatches writes value to every currently matched cell (batch mode)
// or to a single targeted match's contiguous segment (§4.9).
func (s *Session) WriteToMatches(targetIndex int, value uint64, e memtype.Endianness) writer.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rep writer.Report
	if targetIndex < 0 {
		rep = writer.WriteToMatchesBatch(s.pid, s.store, byte(value))
	} else {
		rep = writer.WriteToMatchTarget(s.pid, s.store, targetIndex, value, e)
	}
	s.stats.TotalBytesWritten += int64(rep.SuccessCount)
	return rep
}

// Liveness probes the target's current process state.
func (s *Session) Liveness() (LivenessState, error) {
	return ProbeLiveness(s.pid)
}

// Reset clears the store back to Fresh.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store.New()
	s.haveOptions = false
}

// Stats returns a copy of the session's cumulative counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// snapshotPayload is the on-disk gob envelope for SaveSnapshot/LoadSnapshot.
type snapshotPayload struct {
	Options   memtype.ScanOptions
	UserValue *memtype.UserValue
	Store     *store.MatchStore
}

// SaveSnapshot serializes the current store and last scan options through
// gob then zstd-compresses the stream onto w (A6, supplementing the
// in-memory history ring with on-disk persistence).
func (s *Session) SaveSnapshot(w io.Writer, user *memtype.UserValue) error {
	s.mu.Lock()
	payload := snapshotPayload{Options: s.lastOptions, UserValue: user, Store: s.store}
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return errors.Wrap(err, "session: encoding snapshot")
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "session: opening zstd writer")
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		zw.Close() // nolint: errcheck
		return errors.Wrap(err, "session: writing compressed snapshot")
	}
	return zw.Close()
}

// LoadSnapshot replaces the current store with the snapshot read from r.
func (s *Session) LoadSnapshot(r io.Reader) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return errors.Wrap(scanerr.ErrSnapshotCorrupt, "session: opening zstd reader")
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return errors.Wrap(scanerr.ErrSnapshotCorrupt, "session: decompressing snapshot")
	}

	var payload snapshotPayload
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&payload); err != nil {
		return errors.Wrap(scanerr.ErrSnapshotCorrupt, "session: decoding snapshot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = payload.Store
	s.lastOptions = payload.Options
	s.haveOptions = true
	return nil
}
