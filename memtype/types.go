package memtype

// ScanDataType names the shape of the value a scan is looking for. The
// Any* values ask the routine factory to try a descending sequence of
// widths at each location rather than a single fixed width.
type ScanDataType int

const (
	I8 ScanDataType = iota
	I16
	I32
	I64
	F32
	F64
	ByteArray
	String
	AnyInteger
	AnyFloat
	AnyNumber
)

func (t ScanDataType) String() string {
	switch t {
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case ByteArray:
		return "ByteArray"
	case String:
		return "String"
	case AnyInteger:
		return "AnyInteger"
	case AnyFloat:
		return "AnyFloat"
	case AnyNumber:
		return "AnyNumber"
	default:
		return "Unknown"
	}
}

// BytesNeeded returns the fixed byte width a data type needs, or 1 for the
// variable-width ByteArray/String/Any* families (the minimum a routine must
// be able to read before it can decide no-match).
func BytesNeeded(t ScanDataType) int {
	switch t {
	case I8:
		return 1
	case I16:
		return 2
	case I32:
		return 4
	case I64:
		return 8
	case F32:
		return 4
	case F64:
		return 8
	default:
		return 1
	}
}

// ScanMatchType names the predicate a scan routine evaluates at each
// location. The two families differ in what extra data they require: the
// snapshot/delta family needs only (optionally) an old value, the
// user-value family needs a UserValue.
type ScanMatchType int

const (
	// Snapshot / delta family.
	Any ScanMatchType = iota
	Update
	NotChanged
	Changed
	Increased
	Decreased

	// With user value.
	EqualTo
	NotEqualTo
	GreaterThan
	LessThan
	Range
	Regex
	IncreasedBy
	DecreasedBy
)

func (m ScanMatchType) String() string {
	switch m {
	case Any:
		return "Any"
	case Update:
		return "Update"
	case NotChanged:
		return "NotChanged"
	case Changed:
		return "Changed"
	case Increased:
		return "Increased"
	case Decreased:
		return "Decreased"
	case EqualTo:
		return "EqualTo"
	case NotEqualTo:
		return "NotEqualTo"
	case GreaterThan:
		return "GreaterThan"
	case LessThan:
		return "LessThan"
	case Range:
		return "Range"
	case Regex:
		return "Regex"
	case IncreasedBy:
		return "IncreasedBy"
	case DecreasedBy:
		return "DecreasedBy"
	default:
		return "Unknown"
	}
}

// NeedsUserValue reports whether m requires a UserValue to be supplied.
func NeedsUserValue(m ScanMatchType) bool {
	switch m {
	case EqualTo, NotEqualTo, GreaterThan, LessThan, Range, Regex, IncreasedBy, DecreasedBy:
		return true
	default:
		return false
	}
}

// UsesOldValue reports whether m's evaluation reads a previously captured
// old value (either from the store's swath cells or from a prior snapshot
// supplied to a full scan).
func UsesOldValue(m ScanMatchType) bool {
	switch m {
	case Update, NotChanged, Changed, Increased, Decreased, IncreasedBy, DecreasedBy:
		return true
	default:
		return false
	}
}
