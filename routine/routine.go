// Package routine is the scan-routine factory (§4.4): for each (data type,
// predicate, endianness) triple it builds a callable with a fixed
// signature that decides whether a single remote location currently
// matches, and reports the width of the match.
package routine

import "github.com/future-re/memscan/memtype"

// Routine evaluates a predicate at one remote location. mem is the
// readable bytes starting at that location (its length is the remaining
// bytes in the current block); old and user may be nil when the predicate
// does not need them. On match, outFlags is set to the width/type flag
// that matched and the function returns the number of bytes matched
// (always >= 1). On no-match it returns 0 and leaves *outFlags untouched.
type Routine func(mem []byte, old *memtype.OldValue, user *memtype.UserValue, outFlags *memtype.MatchFlags) int
