// Package scanerr defines the sentinel error kinds surfaced by the scan
// core (§7 of the design). Call sites wrap these with
// github.com/pkg/errors.Wrapf to attach context (region id, address)
// without losing the sentinel identity: errors.Cause(err) still recovers
// the original sentinel after wrapping.
package scanerr

import "github.com/pkg/errors"

var (
	// ErrTargetUnavailable: /proc entries missing, process dead or zombie.
	ErrTargetUnavailable = errors.New("scanerr: target unavailable")
	// ErrPermission: cannot open /proc/<pid>/mem for read or write.
	ErrPermission = errors.New("scanerr: permission denied")
	// ErrInvalidOptions: (data_type, match_type) combination has no
	// routine, or a predicate requires a user value that was not provided.
	ErrInvalidOptions = errors.New("scanerr: invalid scan options")
	// ErrInvalidUserValue: user value flags do not include the active
	// type, or a regex pattern cannot be compiled.
	ErrInvalidUserValue = errors.New("scanerr: invalid user value")
	// ErrNoExistingMatches: filter attempted before any full scan
	// recorded results.
	ErrNoExistingMatches = errors.New("scanerr: no existing matches")
	// ErrIOPartial: a remote write returned fewer bytes than requested.
	ErrIOPartial = errors.New("scanerr: short write")
	// ErrIORead: a non-page-fault read error.
	ErrIORead = errors.New("scanerr: read error")
	// ErrSnapshotCorrupt: a loaded snapshot's digest does not match, or
	// its compressed stream is truncated.
	ErrSnapshotCorrupt = errors.New("scanerr: snapshot corrupt")
	// ErrInvalidConfig: session-wide Config validation failure.
	ErrInvalidConfig = errors.New("scanerr: invalid config")
)
