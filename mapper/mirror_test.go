package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMirrorHorizontal(t *testing.T) {
	assert.Equal(t, uint16(0x000), MirrorHorizontal(0x000))
	assert.Equal(t, uint16(0x000), MirrorHorizontal(0x400))
	assert.Equal(t, uint16(0x400), MirrorHorizontal(0x800))
	assert.Equal(t, uint16(0x400), MirrorHorizontal(0xC00))
	assert.Equal(t, uint16(0x7FF), MirrorHorizontal(0xFFF))
}

func TestMirrorVertical(t *testing.T) {
	assert.Equal(t, uint16(0x000), MirrorVertical(0x000))
	assert.Equal(t, uint16(0x400), MirrorVertical(0x400))
	assert.Equal(t, uint16(0x000), MirrorVertical(0x800))
	assert.Equal(t, uint16(0x400), MirrorVertical(0xC00))
}

func TestFoldInRange(t *testing.T) {
	modes := []Mirroring{Horizontal, Vertical, SingleLower, SingleUpper}
	for _, m := range modes {
		for a := 0; a <= 0xFFFF; a++ {
			folded := m.Fold(uint16(a))
			if folded > 2047 {
				t.Fatalf("%s: %#04x folded to %#04x", m, a, folded)
			}
		}
	}
	for a := 0; a <= 0xFFFF; a++ {
		if MirrorVertical(uint16(a)) != uint16(a)&2047 {
			t.Fatalf("vertical mismatch at %#04x", a)
		}
	}
}

func TestFoldSingleScreen(t *testing.T) {
	for _, a := range []uint16{0x000, 0x400, 0x800, 0xC00} {
		assert.Equal(t, uint16(0x005), SingleLower.Fold(a+5))
		assert.Equal(t, uint16(0x405), SingleUpper.Fold(a+5))
	}
}

func TestMirroringString(t *testing.T) {
	assert.Equal(t, "horizontal", Horizontal.String())
	assert.Equal(t, "vertical", Vertical.String())
	assert.Equal(t, "single-screen upper", SingleUpper.String())
	assert.Equal(t, "mirroring(9)", Mirroring(9).String())
}
