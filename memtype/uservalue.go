package memtype

// FlagFor returns the MatchFlags bit a fixed-width ScanDataType sets on a
// match. The Any* aggregate types have no single flag; callers dispatch to
// the width that actually matched instead.
func FlagFor(t ScanDataType) MatchFlags {
	switch t {
	case I8:
		return FlagS8
	case I16:
		return FlagS16
	case I32:
		return FlagS32
	case I64:
		return FlagS64
	case F32:
		return FlagF32
	case F64:
		return FlagF64
	case ByteArray, String:
		return B8
	default:
		return Empty
	}
}

// UserValue is a strongly typed, multi-width record of the value(s) a
// predicate compares against. Only the fields named by Flags are
// meaningful; the others are zero. Low/High are equal for EqualTo-style
// predicates and distinct for Range.
type UserValue struct {
	Flags MatchFlags

	I8Low, I8High   int8
	U8Low, U8High   uint8
	I16Low, I16High int16
	U16Low, U16High uint16
	I32Low, I32High int32
	U32Low, U32High uint32
	I64Low, I64High int64
	U64Low, U64High uint64
	F32Low, F32High float32
	F64Low, F64High float64

	// Bytes and Mask describe a ByteArray predicate: an optional
	// equal-length wildcard mask where 0xFF means "must match" and 0x00
	// means "don't care". Mask is nil when every byte must match exactly.
	Bytes []byte
	Mask  []byte

	// Str is the needle for a String predicate, or the pattern source for
	// Regex (the compiled form is cached by the routine package, keyed by
	// this string).
	Str string
}

// NewIntUserValue builds a UserValue usable against any integer width,
// populating both the signed and unsigned interpretation of low/high so
// that AnyInteger routines can consult whichever width they are trying.
func NewIntUserValue(low, high int64) *UserValue {
	return &UserValue{
		Flags:       Integer,
		I8Low:       int8(low), I8High: int8(high),
		U8Low: uint8(low), U8High: uint8(high),
		I16Low: int16(low), I16High: int16(high),
		U16Low: uint16(low), U16High: uint16(high),
		I32Low: int32(low), I32High: int32(high),
		U32Low: uint32(low), U32High: uint32(high),
		I64Low: low, I64High: high,
		U64Low: uint64(low), U64High: uint64(high),
	}
}

// NewFloatUserValue builds a UserValue usable against both float widths.
func NewFloatUserValue(low, high float64) *UserValue {
	return &UserValue{
		Flags:  Float,
		F32Low: float32(low), F32High: float32(high),
		F64Low: low, F64High: high,
	}
}

// NewBytesUserValue builds a UserValue for a ByteArray predicate. mask may
// be nil for an exact match.
func NewBytesUserValue(pattern, mask []byte) *UserValue {
	return &UserValue{Flags: B8, Bytes: pattern, Mask: mask}
}

// NewStringUserValue builds a UserValue for a String or Regex predicate.
func NewStringUserValue(s string) *UserValue {
	return &UserValue{Flags: B8, Str: s}
}

// OldValue is a length-prefixed byte sequence captured at a remote address
// at some earlier point, plus a record of which scalar widths it is long
// enough and flagged to supply. Filter-time old values are reconstructed
// from a swath's stored old_byte cells; full-scan-time old values (when a
// previous snapshot is supplied) are reconstructed from that snapshot.
type OldValue struct {
	Bytes []byte
	Flags MatchFlags
}

// Has reports whether the old value has at least width bytes and declares
// the given flag.
func (o *OldValue) Has(flag MatchFlags, width int) bool {
	return o != nil && o.Flags.Has(flag) && len(o.Bytes) >= width
}
