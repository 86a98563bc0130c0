package memtype

// MatchFlags is a compact bit-set recording which scalar widths/signs a
// recorded match (or a captured old value) is known to be valid as. A
// SwathCell's match_info is Empty when the cell is not currently matched;
// OldValue.Flags records which widths the captured bytes can be
// reinterpreted as.
type MatchFlags uint16

const (
	Empty MatchFlags = 0

	FlagU8 MatchFlags = 1 << iota
	FlagS8
	FlagU16
	FlagS16
	FlagU32
	FlagS32
	FlagU64
	FlagS64
	FlagF32
	FlagF64
)

// Derived groupings: "any width that is N bytes wide".
const (
	B8  = FlagU8 | FlagS8
	B16 = FlagU16 | FlagS16
	B32 = FlagU32 | FlagS32 | FlagF32
	B64 = FlagU64 | FlagS64 | FlagF64

	Integer = FlagU8 | FlagS8 | FlagU16 | FlagS16 | FlagU32 | FlagS32 | FlagU64 | FlagS64
	Float   = FlagF32 | FlagF64
	All     = Integer | Float
)

// Has reports whether f contains every bit in want.
func (f MatchFlags) Has(want MatchFlags) bool { return f&want == want }

// Any reports whether f shares any bit with want.
func (f MatchFlags) Any(want MatchFlags) bool { return f&want != 0 }

// Width returns the byte width implied by the highest set bit in f, used by
// the targeted write path to infer how wide a contiguous matched segment is.
// Returns 0 for Empty.
func (f MatchFlags) Width() int {
	switch {
	case f.Any(B64):
		return 8
	case f.Any(B32):
		return 4
	case f.Any(B16):
		return 2
	case f.Any(B8):
		return 1
	default:
		return 0
	}
}
