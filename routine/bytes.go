package routine

import (
	"regexp"
	"sync"

	"blainsmith.com/go/seahash"
	farm "github.com/dgryski/go-farm"
	"github.com/pkg/errors"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

// needlePrefixHashLen bounds how many leading bytes of a needle are hashed
// for the fast-reject check in matchNeedle: long enough to reject most
// mismatches without paying for a second full-length hash over every
// candidate window.
const needlePrefixHashLen = 8

func newByteArrayRoutine(match memtype.ScanMatchType) (Routine, error) {
	switch match {
	case memtype.Any:
		return func(mem []byte, _ *memtype.OldValue, _ *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) == 0 {
				return 0
			}
			*out = memtype.B8
			return len(mem)
		}, nil

	case memtype.EqualTo:
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if user == nil || len(user.Bytes) == 0 {
				return 0
			}
			if matchNeedle(mem, user.Bytes, user.Mask) {
				*out = memtype.B8
				return len(user.Bytes)
			}
			return 0
		}, nil

	default:
		return nil, errors.Wrapf(scanerr.ErrInvalidOptions, "byte array has no routine for %v", match)
	}
}

func newStringRoutine(match memtype.ScanMatchType) (Routine, error) {
	switch match {
	case memtype.Any:
		return func(mem []byte, _ *memtype.OldValue, _ *memtype.UserValue, out *memtype.MatchFlags) int {
			if len(mem) == 0 {
				return 0
			}
			*out = memtype.B8
			return len(mem)
		}, nil

	case memtype.EqualTo:
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if user == nil || len(user.Str) == 0 {
				return 0
			}
			needle := []byte(user.Str)
			if matchNeedle(mem, needle, nil) {
				*out = memtype.B8
				return len(needle)
			}
			return 0
		}, nil

	case memtype.Regex:
		// Each call to newStringRoutine happens once per worker (the
		// parallel scheduler builds one Routine per goroutine), so this
		// cache is naturally thread-local: workers never share compiled
		// patterns.
		cache := &regexCache{compiled: make(map[uint64]*regexp.Regexp)}
		return func(mem []byte, _ *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
			if user == nil || user.Str == "" {
				return 0
			}
			re := cache.get(user.Str)
			if re == nil {
				return 0
			}
			loc := re.FindIndex(mem)
			if loc == nil || loc[0] != 0 {
				return 0
			}
			if loc[1] == 0 {
				return 0
			}
			*out = memtype.B8
			return loc[1]
		}, nil

	default:
		return nil, errors.Wrapf(scanerr.ErrInvalidOptions, "string has no routine for %v", match)
	}
}

// matchNeedle implements the "prefix compare at the current position"
// semantics shared by ByteArray and String: the needle is compared against
// mem starting at offset 0 only, never searched for. With a mask, the
// comparison is masked equality; with exact-length patterns shorter than
// needlePrefixHashLen the fast-reject check is skipped as not worth it.
func matchNeedle(mem, needle, mask []byte) bool {
	if len(mem) < len(needle) {
		return false
	}
	if mask == nil && len(needle) >= needlePrefixHashLen {
		n := needlePrefixHashLen
		if seahash.Sum64(mem[:n]) != seahash.Sum64(needle[:n]) {
			return false
		}
	}
	if mask == nil {
		for i := range needle {
			if mem[i] != needle[i] {
				return false
			}
		}
		return true
	}
	if len(mask) != len(needle) {
		return false
	}
	for i := range needle {
		if (mem[i]^needle[i])&mask[i] != 0 {
			return false
		}
	}
	return true
}

// regexCache memoizes compiled patterns keyed by a farm hash of the
// pattern source, avoiding a full string comparison on the hot path when
// the same Session reuses a routine across many scan steps. Compilation
// errors are recorded as a nil entry so an invalid pattern stays a
// no-match rather than aborting the scan (§4.4).
type regexCache struct {
	mu       sync.Mutex
	compiled map[uint64]*regexp.Regexp
}

func (c *regexCache) get(pattern string) *regexp.Regexp {
	key := farm.Hash64([]byte(pattern))
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.compiled[key]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		c.compiled[key] = nil
		return nil
	}
	c.compiled[key] = re
	return re
}
