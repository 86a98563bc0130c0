package memtype

// RemotePtr is a target-process address. It is always 64-bit regardless of
// host word size: the scanner's own address space width must not leak into
// the wire/storage format for addresses it merely observes in another
// process, and a fixed-width integer (unlike uintptr) is what encoding/gob
// can serialize directly into history and on-disk snapshots.
type RemotePtr = uint64
