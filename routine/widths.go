package routine

import "github.com/future-re/memscan/memtype"

func widthI8() width[int8] {
	return width[int8]{
		flag: memtype.FlagFor(memtype.I8), size: 1,
		decode: memtype.ReadI8,
		user:   func(u *memtype.UserValue) (int8, int8) { return u.I8Low, u.I8High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (int8, bool) {
			if !o.Has(memtype.FlagS8, 1) {
				return 0, false
			}
			return memtype.ReadI8(o.Bytes, e), true
		},
		equal: func(a, b int8) bool { return a == b },
		less:  func(a, b int8) bool { return a < b },
		sub:   func(a, b int8) int8 { return a - b },
	}
}

func widthU8() width[uint8] {
	return width[uint8]{
		flag: memtype.FlagU8, size: 1,
		decode: memtype.ReadU8,
		user:   func(u *memtype.UserValue) (uint8, uint8) { return u.U8Low, u.U8High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (uint8, bool) {
			if !o.Has(memtype.FlagU8, 1) {
				return 0, false
			}
			return memtype.ReadU8(o.Bytes, e), true
		},
		equal: func(a, b uint8) bool { return a == b },
		less:  func(a, b uint8) bool { return a < b },
		sub:   func(a, b uint8) uint8 { return a - b },
	}
}

func widthI16() width[int16] {
	return width[int16]{
		flag: memtype.FlagFor(memtype.I16), size: 2,
		decode: memtype.ReadI16,
		user:   func(u *memtype.UserValue) (int16, int16) { return u.I16Low, u.I16High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (int16, bool) {
			if !o.Has(memtype.FlagS16, 2) {
				return 0, false
			}
			return memtype.ReadI16(o.Bytes, e), true
		},
		equal: func(a, b int16) bool { return a == b },
		less:  func(a, b int16) bool { return a < b },
		sub:   func(a, b int16) int16 { return a - b },
	}
}

func widthU16() width[uint16] {
	return width[uint16]{
		flag: memtype.FlagU16, size: 2,
		decode: memtype.ReadU16,
		user:   func(u *memtype.UserValue) (uint16, uint16) { return u.U16Low, u.U16High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (uint16, bool) {
			if !o.Has(memtype.FlagU16, 2) {
				return 0, false
			}
			return memtype.ReadU16(o.Bytes, e), true
		},
		equal: func(a, b uint16) bool { return a == b },
		less:  func(a, b uint16) bool { return a < b },
		sub:   func(a, b uint16) uint16 { return a - b },
	}
}

func widthI32() width[int32] {
	return width[int32]{
		flag: memtype.FlagFor(memtype.I32), size: 4,
		decode: memtype.ReadI32,
		user:   func(u *memtype.UserValue) (int32, int32) { return u.I32Low, u.I32High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (int32, bool) {
			if !o.Has(memtype.FlagS32, 4) {
				return 0, false
			}
			return memtype.ReadI32(o.Bytes, e), true
		},
		equal: func(a, b int32) bool { return a == b },
		less:  func(a, b int32) bool { return a < b },
		sub:   func(a, b int32) int32 { return a - b },
	}
}

func widthU32() width[uint32] {
	return width[uint32]{
		flag: memtype.FlagU32, size: 4,
		decode: memtype.ReadU32,
		user:   func(u *memtype.UserValue) (uint32, uint32) { return u.U32Low, u.U32High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (uint32, bool) {
			if !o.Has(memtype.FlagU32, 4) {
				return 0, false
			}
			return memtype.ReadU32(o.Bytes, e), true
		},
		equal: func(a, b uint32) bool { return a == b },
		less:  func(a, b uint32) bool { return a < b },
		sub:   func(a, b uint32) uint32 { return a - b },
	}
}

func widthI64() width[int64] {
	return width[int64]{
		flag: memtype.FlagFor(memtype.I64), size: 8,
		decode: memtype.ReadI64,
		user:   func(u *memtype.UserValue) (int64, int64) { return u.I64Low, u.I64High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (int64, bool) {
			if !o.Has(memtype.FlagS64, 8) {
				return 0, false
			}
			return memtype.ReadI64(o.Bytes, e), true
		},
		equal: func(a, b int64) bool { return a == b },
		less:  func(a, b int64) bool { return a < b },
		sub:   func(a, b int64) int64 { return a - b },
	}
}

func widthU64() width[uint64] {
	return width[uint64]{
		flag: memtype.FlagU64, size: 8,
		decode: memtype.ReadU64,
		user:   func(u *memtype.UserValue) (uint64, uint64) { return u.U64Low, u.U64High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (uint64, bool) {
			if !o.Has(memtype.FlagU64, 8) {
				return 0, false
			}
			return memtype.ReadU64(o.Bytes, e), true
		},
		equal: func(a, b uint64) bool { return a == b },
		less:  func(a, b uint64) bool { return a < b },
		sub:   func(a, b uint64) uint64 { return a - b },
	}
}

func widthF32() width[float32] {
	return width[float32]{
		flag: memtype.FlagFor(memtype.F32), size: 4,
		decode: memtype.ReadF32,
		user:   func(u *memtype.UserValue) (float32, float32) { return u.F32Low, u.F32High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (float32, bool) {
			if !o.Has(memtype.FlagF32, 4) {
				return 0, false
			}
			return memtype.ReadF32(o.Bytes, e), true
		},
		equal: memtype.FloatsEqual32,
		less:  func(a, b float32) bool { return a < b },
		sub:   func(a, b float32) float32 { return a - b },
	}
}

func widthF64() width[float64] {
	return width[float64]{
		flag: memtype.FlagFor(memtype.F64), size: 8,
		decode: memtype.ReadF64,
		user:   func(u *memtype.UserValue) (float64, float64) { return u.F64Low, u.F64High },
		old: func(o *memtype.OldValue, e memtype.Endianness) (float64, bool) {
			if !o.Has(memtype.FlagF64, 8) {
				return 0, false
			}
			return memtype.ReadF64(o.Bytes, e), true
		},
		equal: memtype.FloatsEqual64,
		less:  func(a, b float64) bool { return a < b },
		sub:   func(a, b float64) float64 { return a - b },
	}
}
