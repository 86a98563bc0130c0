package routine

// FindPattern returns the offset of the first occurrence of needle in hay,
// or -1. Unlike the per-location ByteArray/String routines (which compare
// only at the current position), this is a first-occurrence search used by
// higher-level byte-pattern-within-region scans; the per-location engine
// does not call it.
func FindPattern(hay, needle []byte) int {
	return FindPatternMasked(hay, needle, nil)
}

// FindPatternMasked is FindPattern with an optional wildcard mask, same
// semantics as matchNeedle: mask[i] == 0xFF means that byte must match.
func FindPatternMasked(hay, needle, mask []byte) int {
	if len(needle) == 0 || len(hay) < len(needle) {
		return -1
	}
	last := len(hay) - len(needle)
	for start := 0; start <= last; start++ {
		if matchNeedle(hay[start:], needle, mask) {
			return start
		}
	}
	return -1
}
