// Package sink has headless display and audio outputs for recording a run
// to disk.
package sink

import (
	"image"

	"github.com/fogleman/gg"

	"nes-emu/palette"
	"nes-emu/ppu"
)

// PNG collects frames for saving as images.
type PNG struct {
	screen [ppu.Height][ppu.Width]uint8
	last   [ppu.Height][ppu.Width]uint8
	frames int
}

func NewPNG() *PNG {
	return &PNG{}
}

func (p *PNG) SetPixel(x, y int, index uint8) {
	if x < 0 || x >= ppu.Width || y < 0 || y >= ppu.Height {
		return
	}
	p.screen[y][x] = index
}

// EndFrame keeps the finished frame; drawing continues into a fresh one.
func (p *PNG) EndFrame() {
	p.last = p.screen
	p.frames++
}

// Frames is the number of completed frames.
func (p *PNG) Frames() int {
	return p.frames
}

func (p *PNG) render() *gg.Context {
	dc := gg.NewContext(ppu.Width, ppu.Height)
	for y := range p.last {
		for x, index := range p.last[y] {
			c := palette.Colour(index)
			dc.SetRGB255(int(c.R), int(c.G), int(c.B))
			dc.SetPixel(x, y)
		}
	}
	return dc
}

// Image returns the last completed frame.
func (p *PNG) Image() image.Image {
	return p.render().Image()
}

// Save writes the last completed frame to path.
func (p *PNG) Save(path string) error {
	return p.render().SavePNG(path)
}
