package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRegister(t *testing.T) {
	var r Register

	assert.Equal(t, Register(0), r)
	r.Set(StatusVerticalBlank, 1)
	assert.Equal(t, uint16(1), r.Get(StatusVerticalBlank))
	assert.Equal(t, uint16(0), r.Get(StatusSpriteZeroHit))
	assert.Equal(t, Register(0b10000000), r)

	r.Set(StatusOpenBus, 31)
	assert.Equal(t, uint16(31), r.Get(StatusOpenBus))
	assert.Equal(t, Register(0b10011111), r)

	r.SetFlag(StatusSpriteOverflow, true)
	assert.True(t, r.Flag(StatusSpriteOverflow))
	assert.Equal(t, Register(0b10111111), r)

	r.Set(StatusOpenBus, 2)
	assert.Equal(t, uint16(2), r.Get(StatusOpenBus))
	assert.Equal(t, Register(0b10100010), r)

	r.SetFlag(StatusVerticalBlank, false)
	assert.False(t, r.Flag(StatusVerticalBlank))
	assert.Equal(t, Register(0b00100010), r)
}

func TestLoopyRegister(t *testing.T) {
	var r Register

	r.Set(LoopyCoarseX, 31)
	assert.Equal(t, Register(0b0000000000011111), r)

	r.Set(LoopyCoarseY, 31)
	assert.Equal(t, Register(0b0000001111111111), r)

	r.Set(LoopyFineY, 5)
	assert.Equal(t, uint16(5), r.Get(LoopyFineY))
	assert.Equal(t, Register(0b0101001111111111), r)

	r.Set(LoopyCoarseY, 9)
	assert.Equal(t, uint16(31), r.Get(LoopyCoarseX))
	assert.Equal(t, uint16(9), r.Get(LoopyCoarseY))
	assert.Equal(t, Register(0b0101000100111111), r)

	// only the low bit of a one bit field is kept
	r.Set(LoopyNametableY, 3)
	assert.Equal(t, uint16(1), r.Get(LoopyNametableY))
	assert.Equal(t, Register(0b0101100100111111), r)

	// overflow out of the field is dropped
	r.Set(LoopyCoarseY, 32)
	assert.Equal(t, uint16(0), r.Get(LoopyCoarseY))
	assert.Equal(t, uint16(5), r.Get(LoopyFineY))
	assert.Equal(t, Register(0b0101100000011111), r)

	r.Set(LoopyNametableX, ^r.Get(LoopyNametableX))
	assert.Equal(t, uint16(1), r.Get(LoopyNametableX))
}
