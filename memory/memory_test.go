package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRamWraps(t *testing.T) {
	r := NewRam(0x800)
	r.Write(0x0801, 0xAB)
	assert.Equal(t, uint8(0xAB), r.Read(0x0001))
	assert.Equal(t, uint8(0xAB), r.Read(0x1801))
	assert.Equal(t, 0x800, r.Len())
}

func TestRamLoad(t *testing.T) {
	r := NewRam(4)
	require.NoError(t, r.Load([]uint8{1, 2, 3, 4}))
	assert.Equal(t, []uint8{1, 2, 3, 4}, r.Bytes())

	err := r.Load([]uint8{9, 9})
	assert.Error(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 4}, r.Bytes())
}

func TestRomIgnoresWrites(t *testing.T) {
	r := NewRom([]uint8{0x10, 0x20})
	r.Write(0, 0xFF)
	assert.Equal(t, uint8(0x10), r.Read(0))
	assert.Equal(t, uint8(0x20), r.Read(3))

	empty := NewRom(nil)
	assert.Equal(t, uint8(0), empty.Read(0x1234))
}

func TestUnmapped(t *testing.T) {
	var u Unmapped
	u.Write(0x4000, 0x12)
	assert.Equal(t, uint8(0), u.Read(0x4000))
}

func TestReadWord(t *testing.T) {
	r := NewRam(0x10)
	r.Write(0x0C, 0x34)
	r.Write(0x0D, 0x12)
	assert.Equal(t, uint16(0x1234), ReadWord(r, 0x0C))
}
