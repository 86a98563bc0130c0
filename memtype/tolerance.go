package memtype

import "math"

// Numeric tolerances for float comparisons, bit-exact per the scan routine
// contract: EqualTo/NotEqualTo/Range treat two floats as equal when their
// difference is within max(absTol, relTol*max(1, |a|, |b|)).
const (
	AbsTolF32 = 1e-6
	AbsTolF64 = 1e-12
	RelTolF32 = 1e-5
	RelTolF64 = 1e-12
)

// FloatsEqual32 reports whether a and b are equal within F32 tolerance.
func FloatsEqual32(a, b float32) bool {
	diff := math.Abs(float64(a - b))
	scale := math.Max(1, math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
	return diff <= math.Max(AbsTolF32, RelTolF32*scale)
}

// FloatsEqual64 reports whether a and b are equal within F64 tolerance.
func FloatsEqual64(a, b float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return diff <= math.Max(AbsTolF64, RelTolF64*scale)
}
