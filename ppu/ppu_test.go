package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nes-emu/memory"
)

// cart is a flat 16KB picture bus with no mirroring.
type cart struct {
	chr       *memory.Ram
	scanlines int
}

func (c *cart) Chr() memory.Memory { return c.chr }
func (c *cart) Scanline()          { c.scanlines++ }

func newPPU(t *testing.T, timing Timing) (*PPU, *cart) {
	t.Helper()
	c := &cart{chr: memory.NewRam(0x4000)}
	p := New(timing)
	p.ConnectCartridge(c)
	p.Reset()
	return p, c
}

func tickTo(p *PPU, scanline, dot int) {
	for {
		s, d := p.Position()
		if s == scanline && d == dot {
			return
		}
		p.Tick()
	}
}

// runFrame ticks until the next vblank and returns the visible pixels.
func runFrame(p *PPU) *[Height][Width]uint8 {
	var screen [Height][Width]uint8
	frame := p.Frame()
	for p.Frame() == frame {
		px := p.Tick()
		if px.Visible {
			screen[px.Y][px.X] = px.Index
		}
	}
	return &screen
}

func TestVBlankAndNMI(t *testing.T) {
	p, _ := newPPU(t, NTSC)
	p.Write(0x2000, 0x80)

	tickTo(p, 241, 1)
	assert.False(t, p.NMI())
	p.Tick()
	assert.True(t, p.NMI())
	assert.Equal(t, uint64(1), p.Frame())

	// disabling NMI generation drops the line, re-enabling raises it
	p.Write(0x2000, 0x00)
	assert.False(t, p.NMI())
	p.Write(0x2000, 0x80)
	assert.True(t, p.NMI())

	status := p.Read(0x2002)
	assert.Equal(t, uint8(0x80), status&0x80)
	assert.False(t, p.NMI())
	assert.Equal(t, uint8(0), p.Read(0x2002)&0x80)
}

func TestVBlankClearedAtPreRender(t *testing.T) {
	p, _ := newPPU(t, NTSC)
	tickTo(p, 242, 0)
	assert.True(t, p.Status().Flag(StatusVerticalBlank))

	tickTo(p, 261, 1)
	assert.True(t, p.Status().Flag(StatusVerticalBlank))
	p.Tick()
	assert.False(t, p.Status().Flag(StatusVerticalBlank))
}

func TestFrameLength(t *testing.T) {
	p, _ := newPPU(t, NTSC)
	runFrame(p)

	dots := 0
	frame := p.Frame()
	for p.Frame() == frame {
		p.Tick()
		dots++
	}
	assert.Equal(t, 262*DotsPerLine, dots)

	p, _ = newPPU(t, PAL)
	runFrame(p)
	dots = 0
	frame = p.Frame()
	for p.Frame() == frame {
		p.Tick()
		dots++
	}
	assert.Equal(t, 312*DotsPerLine, dots)
}

func TestOddFrameSkip(t *testing.T) {
	p, _ := newPPU(t, NTSC)
	p.Write(0x2001, 0x08)

	var lengths []int
	runFrame(p)
	for i := 0; i < 2; i++ {
		dots := 0
		frame := p.Frame()
		for p.Frame() == frame {
			p.Tick()
			dots++
		}
		lengths = append(lengths, dots)
	}
	assert.ElementsMatch(t, []int{262 * DotsPerLine, 262*DotsPerLine - 1}, lengths)
}

func TestScanlineClock(t *testing.T) {
	p, c := newPPU(t, NTSC)
	runFrame(p)
	assert.Equal(t, 0, c.scanlines, "rendering disabled")

	p.Write(0x2001, 0x18)
	runFrame(p)
	c.scanlines = 0
	runFrame(p)
	assert.Equal(t, 241, c.scanlines)
}

func TestDataBufferedRead(t *testing.T) {
	p, c := newPPU(t, NTSC)

	p.Write(0x2006, 0x21)
	p.Write(0x2006, 0x08)
	p.Write(0x2007, 0x55)
	p.Write(0x2007, 0x66)
	assert.Equal(t, uint8(0x55), c.chr.Read(0x2108))
	assert.Equal(t, uint8(0x66), c.chr.Read(0x2109))

	p.Write(0x2006, 0x21)
	p.Write(0x2006, 0x08)
	p.Read(0x2007)
	assert.Equal(t, uint8(0x55), p.Read(0x2007))
	assert.Equal(t, uint8(0x66), p.Read(0x2007))
}

func TestDataIncrement32(t *testing.T) {
	p, c := newPPU(t, NTSC)
	p.Write(0x2000, 0x04)
	p.Write(0x2006, 0x20)
	p.Write(0x2006, 0x00)
	p.Write(0x2007, 1)
	p.Write(0x2007, 2)
	assert.Equal(t, uint8(1), c.chr.Read(0x2000))
	assert.Equal(t, uint8(2), c.chr.Read(0x2020))
}

func TestPaletteMirrors(t *testing.T) {
	p, _ := newPPU(t, NTSC)

	p.Write(0x2006, 0x3F)
	p.Write(0x2006, 0x10)
	p.Write(0x2007, 0x2A)

	p.Write(0x2006, 0x3F)
	p.Write(0x2006, 0x00)
	assert.Equal(t, uint8(0x2A), p.Read(0x2007), "palette reads are not buffered")

	// $3F20-$3FFF mirror the 32 entries
	p.Write(0x2006, 0x3F)
	p.Write(0x2006, 0x30)
	assert.Equal(t, uint8(0x2A), p.Read(0x2007))

	p.Write(0x2001, 0x01)
	p.Write(0x2006, 0x3F)
	p.Write(0x2006, 0x00)
	assert.Equal(t, uint8(0x20), p.Read(0x2007), "grayscale")
}

func TestOAMAccess(t *testing.T) {
	p, _ := newPPU(t, NTSC)
	p.Write(0x2003, 0x10)
	p.Write(0x2004, 0xAA)
	p.Write(0x2004, 0xBB)
	assert.Equal(t, uint8(0xAA), p.OAM()[0x10])
	assert.Equal(t, uint8(0xBB), p.OAM()[0x11])

	p.Write(0x2003, 0x11)
	assert.Equal(t, uint8(0xBB), p.Read(0x2004))
}

func TestStatusResetsLatch(t *testing.T) {
	p, c := newPPU(t, NTSC)
	p.Write(0x2006, 0x3F)
	p.Read(0x2002)
	p.Write(0x2006, 0x22)
	p.Write(0x2006, 0x00)
	p.Write(0x2007, 0x99)
	assert.Equal(t, uint8(0x99), c.chr.Read(0x2200))
}

// solidTiles fills tile 1 with colour 1 and points every nametable entry
// at it.
func solidTiles(c *cart) {
	for row := uint16(0); row < 8; row++ {
		c.chr.Write(0x0010+row, 0xFF)
	}
	for addr := uint16(0x2000); addr < 0x23C0; addr++ {
		c.chr.Write(addr, 1)
	}
}

func setPalette(p *PPU, index uint16, value uint8) {
	p.Write(0x2006, 0x3F)
	p.Write(0x2006, uint8(index))
	p.Write(0x2007, value)
}

func TestBackdrop(t *testing.T) {
	p, _ := newPPU(t, NTSC)
	setPalette(p, 0, 0x0F)
	screen := runFrame(p)
	assert.Equal(t, uint8(0x0F), screen[0][0])
	assert.Equal(t, uint8(0x0F), screen[239][255])
}

func TestBackgroundPixels(t *testing.T) {
	p, c := newPPU(t, NTSC)
	solidTiles(c)
	setPalette(p, 0, 0x0F)
	setPalette(p, 1, 0x16)
	p.Write(0x2006, 0x20)
	p.Write(0x2006, 0x00)
	p.Write(0x2001, 0x0A)

	runFrame(p)
	screen := runFrame(p)
	assert.Equal(t, uint8(0x16), screen[10][10])
	assert.Equal(t, uint8(0x16), screen[100][200])

	// left column masked
	p.Write(0x2001, 0x08)
	screen = runFrame(p)
	assert.Equal(t, uint8(0x0F), screen[50][3])
	assert.Equal(t, uint8(0x16), screen[50][8])
}

func TestSpriteZeroHit(t *testing.T) {
	p, c := newPPU(t, NTSC)
	solidTiles(c)
	oam := p.OAM()
	oam[0], oam[1], oam[2], oam[3] = 9, 1, 0, 20

	p.Write(0x2001, 0x1E)
	runFrame(p)
	tickTo(p, 5, 0)
	assert.False(t, p.Status().Flag(StatusSpriteZeroHit))
	tickTo(p, 11, 0)
	assert.True(t, p.Status().Flag(StatusSpriteZeroHit))
	assert.Equal(t, uint8(0x40), p.Read(0x2002)&0x40)

	tickTo(p, 261, 2)
	assert.False(t, p.Status().Flag(StatusSpriteZeroHit))
}

func TestSpriteOverflow(t *testing.T) {
	p, _ := newPPU(t, NTSC)
	oam := p.OAM()
	for i := 0; i < 64; i++ {
		oam[i*4] = 0xFF
	}
	for i := 0; i < 9; i++ {
		oam[i*4] = 30
		oam[i*4+3] = uint8(i * 10)
	}
	p.Write(0x2001, 0x10)

	tickTo(p, 29, 258)
	assert.False(t, p.Status().Flag(StatusSpriteOverflow))
	tickTo(p, 30, 258)
	assert.True(t, p.Status().Flag(StatusSpriteOverflow))
}

func TestPatternTable(t *testing.T) {
	p, c := newPPU(t, NTSC)
	c.chr.Write(0x1000, 0x80) // tile 0 row 0, leftmost pixel plane 0
	setPalette(p, 0, 0x0F)
	setPalette(p, 1, 0x21)

	table := p.PatternTable(1, 0)
	require.Len(t, table, 128*128)
	assert.Equal(t, uint8(0x21), table[0])
	assert.Equal(t, uint8(0x0F), table[1])
}

func TestFlipByte(t *testing.T) {
	assert.Equal(t, uint8(0x01), flipByte(0x80))
	assert.Equal(t, uint8(0xF0), flipByte(0x0F))
}
