package console

import (
	"nes-emu/joypad"
	"nes-emu/memory"
	"nes-emu/ppu"
)

const (
	ramSize = 0x0800

	oamDMA   = 0x4014
	joypad1  = 0x4016
	joypad2  = 0x4017
	ioEnd    = 0x401F
	ppuStart = 0x2000
	ppuEnd   = 0x3FFF
	oamData  = 0x2004
)

// Bus decodes the CPU address space.
//
//	$0000-$1FFF  2KB internal ram, mirrored
//	$2000-$3FFF  picture unit registers, mirrored every 8 bytes
//	$4014        OAM DMA
//	$4016        joypad 1 / strobe
//	$4017        joypad 2
//	$4000-$401F  otherwise unmapped, reads 0
//	$4020-$FFFF  cartridge
type Bus struct {
	ram    *memory.Ram
	ppu    *ppu.PPU
	joypad *joypad.Joypad
	cart   memory.Memory

	dma bool
}

func newBus(p *ppu.PPU, j *joypad.Joypad, cart memory.Memory) *Bus {
	return &Bus{
		ram:    memory.NewRam(ramSize),
		ppu:    p,
		joypad: j,
		cart:   cart,
	}
}

func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < ppuStart:
		return b.ram.Read(addr)
	case addr <= ppuEnd:
		return b.ppu.Read(addr & 0x0007)
	case addr == joypad1:
		return b.joypad.Read1()
	case addr == joypad2:
		return b.joypad.Read2()
	case addr <= ioEnd:
		return 0
	}
	return b.cart.Read(addr)
}

func (b *Bus) Write(addr uint16, data uint8) {
	switch {
	case addr < ppuStart:
		b.ram.Write(addr, data)
	case addr <= ppuEnd:
		b.ppu.Write(addr&0x0007, data)
	case addr == oamDMA:
		b.transfer(data)
	case addr == joypad1:
		b.joypad.Write(data)
	case addr <= ioEnd:
		// joypad 2 writes go to the audio frame counter
	default:
		b.cart.Write(addr, data)
	}
}

// Peek reads without side effects. Registers read as 0.
func (b *Bus) Peek(addr uint16) uint8 {
	switch {
	case addr < ppuStart:
		return b.ram.Read(addr)
	case addr <= ioEnd:
		return 0
	}
	return b.cart.Read(addr)
}

// Ram is the 2KB of internal work ram.
func (b *Bus) Ram() *memory.Ram {
	return b.ram
}

func (b *Bus) transfer(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		b.ppu.Write(oamData, b.Read(base|i))
	}
	b.dma = true
}

// takeDMA reports whether a transfer happened since the last call.
func (b *Bus) takeDMA() bool {
	dma := b.dma
	b.dma = false
	return dma
}

// Inspect returns a view of the bus that reads through Peek and drops
// writes.
func (b *Bus) Inspect() memory.Memory {
	return inspector{b}
}

type inspector struct {
	b *Bus
}

func (i inspector) Read(addr uint16) uint8 {
	return i.b.Peek(addr)
}

func (i inspector) Write(addr uint16, data uint8) {}
