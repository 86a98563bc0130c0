// Package memtype holds the vocabulary shared by every other package in this
// module: endianness-aware reads of scalar values out of byte buffers, the
// compact match-flags bit-set, the scan data type and predicate taxonomies,
// and the typed user/old value records the routine factory consumes.
package memtype

import "encoding/binary"

// Endianness selects how multi-byte scalars are decoded from a target's
// memory. The host's own endianness is assumed little; ReverseEndianness in
// ScanOptions flips this per scan.
type Endianness int

const (
	// LittleEndian decodes scalars least-significant-byte first.
	LittleEndian Endianness = iota
	// BigEndian decodes scalars most-significant-byte first.
	BigEndian
)

// ByteOrder returns the encoding/binary.ByteOrder matching e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// EndiannessFor returns BigEndian when reverse is true, else LittleEndian.
// reverse mirrors ScanOptions.ReverseEndianness: the target's own byte order
// is little unless the caller asks us to swap.
func EndiannessFor(reverse bool) Endianness {
	if reverse {
		return BigEndian
	}
	return LittleEndian
}

// ReadU8 through ReadF64 decode a scalar at the front of buf. The caller must
// have already checked len(buf) >= sizeof(T); these helpers panic on a short
// buffer so that callers are forced to bounds-check once, at the routine
// boundary, rather than on every scalar width.

func ReadU8(buf []byte, _ Endianness) uint8 { return buf[0] }

func ReadI8(buf []byte, _ Endianness) int8 { return int8(buf[0]) }

func ReadU16(buf []byte, e Endianness) uint16 { return e.ByteOrder().Uint16(buf) }

func ReadI16(buf []byte, e Endianness) int16 { return int16(e.ByteOrder().Uint16(buf)) }

func ReadU32(buf []byte, e Endianness) uint32 { return e.ByteOrder().Uint32(buf) }

func ReadI32(buf []byte, e Endianness) int32 { return int32(e.ByteOrder().Uint32(buf)) }

func ReadU64(buf []byte, e Endianness) uint64 { return e.ByteOrder().Uint64(buf) }

func ReadI64(buf []byte, e Endianness) int64 { return int64(e.ByteOrder().Uint64(buf)) }

func ReadF32(buf []byte, e Endianness) float32 {
	return float32FromBits(e.ByteOrder().Uint32(buf))
}

func ReadF64(buf []byte, e Endianness) float64 {
	return float64FromBits(e.ByteOrder().Uint64(buf))
}

// PutU8 through PutF64 are the write-side counterparts, used by the remote
// writer (C13) to encode a scalar into the target's endianness before the
// positional write.

func PutU8(buf []byte, v uint8, _ Endianness) { buf[0] = v }

func PutI8(buf []byte, v int8, _ Endianness) { buf[0] = byte(v) }

func PutU16(buf []byte, v uint16, e Endianness) { e.ByteOrder().PutUint16(buf, v) }

func PutI16(buf []byte, v int16, e Endianness) { e.ByteOrder().PutUint16(buf, uint16(v)) }

func PutU32(buf []byte, v uint32, e Endianness) { e.ByteOrder().PutUint32(buf, v) }

func PutI32(buf []byte, v int32, e Endianness) { e.ByteOrder().PutUint32(buf, uint32(v)) }

func PutU64(buf []byte, v uint64, e Endianness) { e.ByteOrder().PutUint64(buf, v) }

func PutI64(buf []byte, v int64, e Endianness) { e.ByteOrder().PutUint64(buf, uint64(v)) }

func PutF32(buf []byte, v float32, e Endianness) { e.ByteOrder().PutUint32(buf, float32Bits(v)) }

func PutF64(buf []byte, v float64, e Endianness) { e.ByteOrder().PutUint64(buf, float64Bits(v)) }
