package memtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatsEqual32Tolerance(t *testing.T) {
	assert.True(t, FloatsEqual32(1.0, 1.0))
	assert.True(t, FloatsEqual32(1.0, float32(1.0+5e-7)))
	assert.False(t, FloatsEqual32(1.0, 1.1))
}

func TestFloatsEqual64Tolerance(t *testing.T) {
	assert.True(t, FloatsEqual64(100.0, 100.0+5e-11))
	assert.False(t, FloatsEqual64(100.0, 100.01))
}

func TestEndianRoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	PutU32(buf, 0x01020304, LittleEndian)
	assert.Equal(t, uint32(0x01020304), ReadU32(buf, LittleEndian))
	PutU32(buf, 0x01020304, BigEndian)
	assert.Equal(t, uint32(0x01020304), ReadU32(buf, BigEndian))
}
