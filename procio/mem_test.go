package procio

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/future-re/memscan/memtype"
)

func addrOf(b *byte) memtype.RemotePtr {
	return memtype.RemotePtr(uintptr(unsafe.Pointer(b)))
}

func TestOpenReadAndReadOwnMemory(t *testing.T) {
	// /proc/self is always readable; use it to exercise the real
	// positional-read path without depending on a specific target process.
	mem, err := OpenRead(os.Getpid())
	assert.NoError(t, err)
	defer mem.Close() // nolint: errcheck

	marker := []byte("memscan-self-read-marker")
	buf := make([]byte, len(marker))
	addr := addrOf(&marker[0])

	n, err := mem.Read(addr, buf)
	assert.NoError(t, err)
	assert.Equal(t, marker, buf[:n])
}

func TestOpenReadMissingProcess(t *testing.T) {
	_, err := OpenRead(999999)
	assert.Error(t, err)
}

func TestProbeLivenessSelf(t *testing.T) {
	state, err := ProbeLiveness(os.Getpid())
	assert.NoError(t, err)
	assert.Equal(t, Running, state)
}

func TestProbeLivenessDead(t *testing.T) {
	state, err := ProbeLiveness(999999)
	assert.NoError(t, err)
	assert.Equal(t, Dead, state)
}
