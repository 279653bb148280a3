package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColour(t *testing.T) {
	assert.Len(t, raw, Size*3)
	assert.Equal(t, color.RGBA{R: 84, G: 84, B: 84, A: 0xFF}, Colour(0x00))
	assert.Equal(t, color.RGBA{R: 236, G: 238, B: 236, A: 0xFF}, Colour(0x20))
	assert.Equal(t, color.RGBA{A: 0xFF}, Colour(0x3F))

	// only the low six bits select an entry
	assert.Equal(t, Colour(0x01), Colour(0x41))
}

func TestTable(t *testing.T) {
	table := Table()
	assert.Equal(t, Colour(0x16), table[0x16])

	table[0] = color.RGBA{}
	assert.NotEqual(t, table[0], Colour(0))
}
