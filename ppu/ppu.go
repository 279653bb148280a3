// Package ppu implements the picture unit: its eight CPU visible registers,
// the dot and scanline timing that drives vblank and NMI, and the
// background and sprite pixel pipeline.
package ppu

import "nes-emu/memory"

const (
	Width  = 256
	Height = 240

	DotsPerLine = 341

	vblankLine = 241

	// dot on which MMC3 style mappers see the scanline clock
	scanlineClockDot = 260
)

// Timing describes the frame shape of a TV system.
type Timing struct {
	Scanlines    int
	OddFrameSkip bool
}

var (
	NTSC = Timing{Scanlines: 262, OddFrameSkip: true}
	PAL  = Timing{Scanlines: 312}
)

// Cartridge is what the picture unit needs from the mapper: the CHR view
// with nametables folded in, and the scanline clock.
type Cartridge interface {
	Chr() memory.Memory
	Scanline()
}

// Pixel is the output of a single dot.
type Pixel struct {
	X, Y    int
	Index   uint8
	Visible bool
}

type spriteEntry struct {
	y         uint8
	id        uint8
	attribute uint8
	x         uint8
}

type PPU struct {
	timing   Timing
	preLine  int
	scanline int
	dot      int
	frame    uint64
	odd      bool

	cart Cartridge
	bus  memory.Memory

	control Register
	mask    Register
	status  Register

	vramAddr Register
	tramAddr Register
	fineX    uint8

	addressLatch  bool
	ppuDataBuffer uint8

	palette [32]uint8
	oam     [256]uint8
	oamAddr uint8

	bgNextTileID       uint8
	bgNextTileAttrib   uint8
	bgNextTileLsb      uint8
	bgNextTileMsb      uint8
	bgShifterPatternLo uint16
	bgShifterPatternHi uint16
	bgShifterAttribLo  uint16
	bgShifterAttribHi  uint16

	spriteScanline         [8]spriteEntry
	spriteCount            int
	spriteShifterPatternLo [8]uint8
	spriteShifterPatternHi [8]uint8

	spriteZeroHitPossible   bool
	spriteZeroBeingRendered bool
}

func New(timing Timing) *PPU {
	p := &PPU{
		timing:  timing,
		preLine: timing.Scanlines - 1,
		bus:     memory.Unmapped{},
	}
	return p
}

func (p *PPU) ConnectCartridge(cart Cartridge) {
	p.cart = cart
	p.bus = cart.Chr()
}

func (p *PPU) Reset() {
	p.fineX = 0
	p.addressLatch = false
	p.ppuDataBuffer = 0
	p.scanline = 0
	p.dot = 0
	p.odd = false
	p.bgNextTileID = 0
	p.bgNextTileAttrib = 0
	p.bgNextTileLsb = 0
	p.bgNextTileMsb = 0
	p.bgShifterPatternLo = 0
	p.bgShifterPatternHi = 0
	p.bgShifterAttribLo = 0
	p.bgShifterAttribHi = 0
	p.spriteCount = 0
	p.status = 0
	p.mask = 0
	p.control = 0
	p.vramAddr = 0
	p.tramAddr = 0
}

// NMI is the state of the NMI output line: high while in vblank with NMI
// generation enabled.
func (p *PPU) NMI() bool {
	return p.status.Flag(StatusVerticalBlank) && p.control.Flag(CtrlEnableNMI)
}

// Position is the scanline and dot about to be rendered.
func (p *PPU) Position() (scanline, dot int) {
	return p.scanline, p.dot
}

// Frame counts vblank entries since power on.
func (p *PPU) Frame() uint64 {
	return p.frame
}

func (p *PPU) Timing() Timing {
	return p.timing
}

// OAM exposes object attribute memory.
func (p *PPU) OAM() *[256]uint8 {
	return &p.oam
}

func (p *PPU) Control() Register { return p.control }
func (p *PPU) Mask() Register    { return p.mask }
func (p *PPU) Status() Register  { return p.status }

func (p *PPU) rendering() bool {
	return p.mask.Flag(MaskBackground) || p.mask.Flag(MaskSprites)
}

func (p *PPU) increment() uint16 {
	if p.control.Flag(CtrlIncrementMode) {
		return 32
	}
	return 1
}

// Read is a CPU read of register addr&7.
func (p *PPU) Read(addr uint16) uint8 {
	data := uint8(0)
	switch addr & 0x0007 {
	case 0x0002:
		data = (uint8(p.status) & 0xE0) | (p.ppuDataBuffer & 0x1F)
		p.status.SetFlag(StatusVerticalBlank, false)
		p.addressLatch = false
	case 0x0004:
		data = p.oam[p.oamAddr]
	case 0x0007:
		vaddr := uint16(p.vramAddr) & 0x3FFF
		if vaddr >= 0x3F00 {
			// palette reads are immediate; the buffer gets the nametable
			// byte underneath
			data = p.read(vaddr)
			p.ppuDataBuffer = p.bus.Read(vaddr - 0x1000)
		} else {
			data = p.ppuDataBuffer
			p.ppuDataBuffer = p.read(vaddr)
		}
		p.vramAddr += Register(p.increment())
	}
	return data
}

// Write is a CPU write of register addr&7.
func (p *PPU) Write(addr uint16, data uint8) {
	switch addr & 0x0007 {
	case 0x0000:
		p.control = Register(data)
		p.tramAddr.Set(LoopyNametableX, p.control.Get(CtrlNametableX))
		p.tramAddr.Set(LoopyNametableY, p.control.Get(CtrlNametableY))
	case 0x0001:
		p.mask = Register(data)
	case 0x0003:
		p.oamAddr = data
	case 0x0004:
		p.oam[p.oamAddr] = data
		p.oamAddr++
	case 0x0005:
		if !p.addressLatch {
			p.fineX = data & 0x07
			p.tramAddr.Set(LoopyCoarseX, uint16(data)>>3)
		} else {
			p.tramAddr.Set(LoopyFineY, uint16(data)&0x07)
			p.tramAddr.Set(LoopyCoarseY, uint16(data)>>3)
		}
		p.addressLatch = !p.addressLatch
	case 0x0006:
		if !p.addressLatch {
			p.tramAddr = Register((uint16(data)&0x3F)<<8 | uint16(p.tramAddr)&0x00FF)
		} else {
			p.tramAddr = Register(uint16(p.tramAddr)&0xFF00 | uint16(data))
			p.vramAddr = p.tramAddr
		}
		p.addressLatch = !p.addressLatch
	case 0x0007:
		p.write(uint16(p.vramAddr), data)
		p.vramAddr += Register(p.increment())
	}
}

func paletteIndex(addr uint16) uint16 {
	addr &= 0x001F
	// sprite backdrop entries mirror the background ones
	if addr&0x0013 == 0x0010 {
		addr &^= 0x0010
	}
	return addr
}

func (p *PPU) read(addr uint16) uint8 {
	addr &= 0x3FFF
	if addr < 0x3F00 {
		return p.bus.Read(addr)
	}
	mask := uint8(0x3F)
	if p.mask.Flag(MaskGrayscale) {
		mask = 0x30
	}
	return p.palette[paletteIndex(addr)] & mask
}

func (p *PPU) write(addr uint16, data uint8) {
	addr &= 0x3FFF
	if addr < 0x3F00 {
		p.bus.Write(addr, data)
		return
	}
	p.palette[paletteIndex(addr)] = data & 0x3F
}

func (p *PPU) colourIndex(palette uint8, pixel uint8) uint8 {
	return p.read(0x3F00+uint16(palette)<<2+uint16(pixel)) & 0x3F
}

// PatternTable renders pattern table i (0 or 1) as a 128x128 grid of
// colour indices using the given palette.
func (p *PPU) PatternTable(i int, palette uint8) []uint8 {
	out := make([]uint8, 128*128)
	base := uint16(i&1) * 0x1000
	for tileY := uint16(0); tileY < 16; tileY++ {
		for tileX := uint16(0); tileX < 16; tileX++ {
			offset := tileY*256 + tileX*16
			for row := uint16(0); row < 8; row++ {
				tileLsb := p.bus.Read(base + offset + row)
				tileMsb := p.bus.Read(base + offset + row + 0x0008)
				for col := uint16(0); col < 8; col++ {
					pixel := (tileMsb&0x01)<<1 | (tileLsb & 0x01)
					tileLsb >>= 1
					tileMsb >>= 1
					x := tileX*8 + (7 - col)
					y := tileY*8 + row
					out[int(y)*128+int(x)] = p.colourIndex(palette, pixel)
				}
			}
		}
	}
	return out
}
