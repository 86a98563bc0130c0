package routine

import (
	"github.com/pkg/errors"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

// New builds the Routine for one (data type, predicate, endianness)
// triple. It returns scanerr.ErrInvalidOptions when no routine exists for
// the combination. User values are not checked here: a routine whose
// predicate needs one reports no match when it is nil or lacks the flag.
func New(dataType memtype.ScanDataType, matchType memtype.ScanMatchType, endian memtype.Endianness) (Routine, error) {
	switch dataType {
	case I8:
		return fixed(buildNumeric(widthI8(), endian, matchType))
	case I16:
		return fixed(buildNumeric(widthI16(), endian, matchType))
	case I32:
		return fixed(buildNumeric(widthI32(), endian, matchType))
	case I64:
		return fixed(buildNumeric(widthI64(), endian, matchType))
	case F32:
		return fixed(buildNumeric(widthF32(), endian, matchType))
	case F64:
		return fixed(buildNumeric(widthF64(), endian, matchType))
	case ByteArray:
		return newByteArrayRoutine(matchType)
	case String:
		return newStringRoutine(matchType)
	case AnyInteger:
		return newAnyIntegerRoutine(endian, matchType)
	case AnyFloat:
		return newAnyFloatRoutine(endian, matchType)
	case AnyNumber:
		return newAnyNumberRoutine(endian, matchType)
	default:
		return nil, errors.Wrapf(scanerr.ErrInvalidOptions, "unknown data type %v", dataType)
	}
}

// re-export memtype's data type constants under routine's own names so
// callers reading this file don't have to cross-reference memtype for the
// switch above; the underlying type is identical.
const (
	I8         = memtype.I8
	I16        = memtype.I16
	I32        = memtype.I32
	I64        = memtype.I64
	F32        = memtype.F32
	F64        = memtype.F64
	ByteArray  = memtype.ByteArray
	String     = memtype.String
	AnyInteger = memtype.AnyInteger
	AnyFloat   = memtype.AnyFloat
	AnyNumber  = memtype.AnyNumber
)

func fixed(r Routine, err error) (Routine, error) {
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.Wrap(scanerr.ErrInvalidOptions, "no routine for predicate")
	}
	return r, nil
}
