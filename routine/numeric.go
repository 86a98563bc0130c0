package routine

import (
	"github.com/pkg/errors"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

// width bundles everything a numeric routine needs for one scalar type T:
// how to decode it off the wire, how to pull a candidate low/high out of a
// UserValue and an old value out of an OldValue, and how to compare two
// values of T per the tolerance rules §4.4 specifies (exact for integers,
// tolerance-aware for floats).
type width[T any] struct {
	flag   memtype.MatchFlags
	size   int
	decode func([]byte, memtype.Endianness) T
	user   func(*memtype.UserValue) (low, high T)
	old    func(*memtype.OldValue, memtype.Endianness) (T, bool)
	equal  func(a, b T) bool
	less   func(a, b T) bool // strict a < b
	sub    func(a, b T) T    // a - b, used by IncreasedBy/DecreasedBy
}

// buildNumeric constructs a Routine for one scalar width and predicate.
// The predicate logic is written once here and shared by every width via
// the width[T] vtable, matching the "tagged variant + table" dispatch
// shape the design notes call out as one valid strategy.
func buildNumeric[T any](w width[T], endian memtype.Endianness, match memtype.ScanMatchType) (Routine, error) {
	switch match {
	case memtype.Any:
		return func(mem []byte, _ *memtype.OldValue, _ *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size {
				return 0
			}
			*out = w.flag
			return w.size
		}, nil

	case memtype.EqualTo:
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size || user == nil || !user.Flags.Any(allWidthBits(w.flag)) {
				return 0
			}
			v := w.decode(mem, endian)
			low, _ := w.user(user)
			if w.equal(v, low) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.NotEqualTo:
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size || user == nil || !user.Flags.Any(allWidthBits(w.flag)) {
				return 0
			}
			v := w.decode(mem, endian)
			low, _ := w.user(user)
			if !w.equal(v, low) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.GreaterThan:
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size || user == nil || !user.Flags.Any(allWidthBits(w.flag)) {
				return 0
			}
			v := w.decode(mem, endian)
			low, _ := w.user(user)
			if w.less(low, v) && !w.equal(v, low) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.LessThan:
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size || user == nil || !user.Flags.Any(allWidthBits(w.flag)) {
				return 0
			}
			v := w.decode(mem, endian)
			low, _ := w.user(user)
			if w.less(v, low) && !w.equal(v, low) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.Range:
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size || user == nil || !user.Flags.Any(allWidthBits(w.flag)) {
				return 0
			}
			v := w.decode(mem, endian)
			lo, hi := w.user(user)
			if w.less(hi, lo) {
				lo, hi = hi, lo
			}
			if (w.less(lo, v) || w.equal(lo, v)) && (w.less(v, hi) || w.equal(v, hi)) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.Update, memtype.NotChanged:
		return func(mem []byte, old *memtype.OldValue, _ *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size {
				return 0
			}
			ov, ok := w.old(old, endian)
			if !ok {
				return 0
			}
			v := w.decode(mem, endian)
			if w.equal(v, ov) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.Changed:
		return func(mem []byte, old *memtype.OldValue, _ *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size {
				return 0
			}
			ov, ok := w.old(old, endian)
			if !ok {
				return 0
			}
			v := w.decode(mem, endian)
			if !w.equal(v, ov) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.Increased:
		return func(mem []byte, old *memtype.OldValue, _ *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size {
				return 0
			}
			ov, ok := w.old(old, endian)
			if !ok {
				return 0
			}
			v := w.decode(mem, endian)
			if w.less(ov, v) && !w.equal(v, ov) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.Decreased:
		return func(mem []byte, old *memtype.OldValue, _ *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size {
				return 0
			}
			ov, ok := w.old(old, endian)
			if !ok {
				return 0
			}
			v := w.decode(mem, endian)
			if w.less(v, ov) && !w.equal(v, ov) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.IncreasedBy:
		return func(mem []byte, old *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size || user == nil || !user.Flags.Any(allWidthBits(w.flag)) {
				return 0
			}
			ov, ok := w.old(old, endian)
			if !ok {
				return 0
			}
			v := w.decode(mem, endian)
			delta, _ := w.user(user)
			if w.equal(w.sub(v, ov), delta) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	case memtype.DecreasedBy:
		return func(mem []byte, old *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) < w.size || user == nil || !user.Flags.Any(allWidthBits(w.flag)) {
				return 0
			}
			ov, ok := w.old(old, endian)
			if !ok {
				return 0
			}
			v := w.decode(mem, endian)
			delta, _ := w.user(user)
			if w.equal(w.sub(ov, v), delta) {
				*out = w.flag
				return w.size
			}
			return 0
		}, nil

	default:
		return nil, errors.Wrapf(scanerr.ErrInvalidOptions, "predicate %v has no numeric routine", match)
	}
}

// allWidthBits broadens a single width flag to the family it belongs to
// (e.g. FlagS32 -> B32) so EqualTo can accept a UserValue built generically
// for "any integer" or "any float" rather than one pinned to the exact
// signed/unsigned flag.
func allWidthBits(f memtype.MatchFlags) memtype.MatchFlags {
	switch {
	case f.Any(memtype.B8):
		return memtype.B8
	case f.Any(memtype.B16):
		return memtype.B16
	case f.Any(memtype.B32):
		return memtype.B32
	case f.Any(memtype.B64):
		return memtype.B64
	default:
		return memtype.Empty
	}
}
