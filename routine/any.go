package routine

import "github.com/future-re/memscan/memtype"

// descendingIntegerWidths is the contract order AnyInteger tries at each
// location: u64, i64, u32, i32, u16, i16, u8, i8. Later widths are never
// attempted once an earlier one matches.
func descendingIntegerWidths(endian memtype.Endianness, match memtype.ScanMatchType) ([]Routine, error) {
	builders := []func() (Routine, error){
		func() (Routine, error) { return buildNumeric(widthU64(), endian, match) },
		func() (Routine, error) { return buildNumeric(widthI64(), endian, match) },
		func() (Routine, error) { return buildNumeric(widthU32(), endian, match) },
		func() (Routine, error) { return buildNumeric(widthI32(), endian, match) },
		func() (Routine, error) { return buildNumeric(widthU16(), endian, match) },
		func() (Routine, error) { return buildNumeric(widthI16(), endian, match) },
		func() (Routine, error) { return buildNumeric(widthU8(), endian, match) },
		func() (Routine, error) { return buildNumeric(widthI8(), endian, match) },
	}
	routines := make([]Routine, 0, len(builders))
	for _, b := range builders {
		r, err := b()
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}
	return routines, nil
}

func descendingFloatWidths(endian memtype.Endianness, match memtype.ScanMatchType) ([]Routine, error) {
	f64, err := buildNumeric(widthF64(), endian, match)
	if err != nil {
		return nil, err
	}
	f32, err := buildNumeric(widthF32(), endian, match)
	if err != nil {
		return nil, err
	}
	return []Routine{f64, f32}, nil
}

// tryInOrder runs candidates in order and returns the first that matches.
func tryInOrder(candidates []Routine) Routine {
	return func(mem []byte, old *memtype.OldValue, user *memtype.UserValue, out *memtype.MatchFlags) int {
		for _, r := range candidates {
			if n := r(mem, old, user, out); n > 0 {
				return n
			}
		}
		return 0
	}
}

func newAnyIntegerRoutine(endian memtype.Endianness, match memtype.ScanMatchType) (Routine, error) {
	widths, err := descendingIntegerWidths(endian, match)
	if err != nil {
		return nil, err
	}
	return tryInOrder(widths), nil
}

func newAnyFloatRoutine(endian memtype.Endianness, match memtype.ScanMatchType) (Routine, error) {
	widths, err := descendingFloatWidths(endian, match)
	if err != nil {
		return nil, err
	}
	return tryInOrder(widths), nil
}

func newAnyNumberRoutine(endian memtype.Endianness, match memtype.ScanMatchType) (Routine, error) {
	floats, err := descendingFloatWidths(endian, match)
	if err != nil {
		return nil, err
	}
	ints, err := descendingIntegerWidths(endian, match)
	if err != nil {
		return nil, err
	}
	return tryInOrder(append(floats, ints...)), nil
}
