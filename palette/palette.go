// Package palette holds the 64 entry master colour table the picture unit
// indexes into.
package palette

import (
	_ "embed"
	"image/color"
	"sync"
)

// Size is the number of entries in the table.
const Size = 64

//go:embed 2c02.pal
var raw []byte

var (
	once  sync.Once
	table [Size]color.RGBA
)

func load() {
	for i := 0; i < Size; i++ {
		table[i] = color.RGBA{R: raw[i*3], G: raw[i*3+1], B: raw[i*3+2], A: 0xFF}
	}
}

// Colour returns the colour for a 6 bit palette index.
func Colour(index uint8) color.RGBA {
	once.Do(load)
	return table[index&(Size-1)]
}

// Table returns a copy of the full table.
func Table() [Size]color.RGBA {
	once.Do(load)
	return table
}
