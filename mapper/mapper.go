// Package mapper resolves cartridge address space into program ROM, CHR
// ROM/RAM, PRG RAM and the console's 2KB of nametable RAM.
//
// Every board decodes the same way for the parts it does not own: reads of
// $4020-$5FFF, and of $6000-$7FFF on boards without PRG RAM, return zero and
// the matching writes are dropped. This never produces an error.
package mapper

import (
	"errors"
	"fmt"

	"nes-emu/memory"
	"nes-emu/rom"
)

var (
	ErrUnsupportedMapper = errors.New("mapper: unsupported mapper")
	ErrNoPrg             = errors.New("mapper: image has no prg rom")
	ErrBadPrgSize        = errors.New("mapper: bad prg rom size")
)

const (
	prgRamSize = 0x2000
	chrRamSize = 0x2000
	vramSize   = 0x0800
)

// Mapper is the uniform view of a cartridge. Prg answers CPU addresses in
// $4020-$FFFF and Chr answers picture unit addresses in $0000-$3EFF.
type Mapper interface {
	Prg() memory.Memory
	Chr() memory.Memory

	// PersistentRam is nil unless the cartridge has battery backup.
	PersistentRam() *memory.Ram

	Mirroring() Mirroring

	// IRQ is the state of the cartridge interrupt line.
	IRQ() bool

	// Scanline is clocked by the picture unit once per rendered scanline.
	Scanline()

	Reset()
}

// board is the banking logic of a single mapper number.
type board interface {
	// mapPrg returns an offset into prg rom for an address in $8000-$FFFF
	mapPrg(addr uint16) uint32

	// writeRegister handles writes to $8000-$FFFF
	writeRegister(addr uint16, data uint8)

	// mapChr returns an offset into chr for an address in $0000-$1FFF
	mapChr(addr uint16) uint32

	// mirroring returns false if the header mirroring applies
	mirroring() (Mirroring, bool)

	// ramAccess reports whether prg ram is readable and writable
	ramAccess() (bool, bool)

	irq() bool
	scanline()
	reset()
}

// fixed provides the behaviour shared by boards without the feature.
type fixed struct{}

func (fixed) mirroring() (Mirroring, bool) {
	return Horizontal, false
}

func (fixed) ramAccess() (bool, bool) {
	return true, true
}

func (fixed) irq() bool {
	return false
}

func (fixed) scanline() {}

// Cartridge owns the stores of a loaded image and delegates bank selection
// to its board.
type Cartridge struct {
	id        uint16
	board     board
	prgMemory []uint8
	chrMemory []uint8
	chrRam    bool
	ram       *memory.Ram
	battery   bool
	vram      *memory.Ram
	mirror    Mirroring
}

// New builds the cartridge for img.
func New(img *rom.Image) (*Cartridge, error) {
	if len(img.Prg) == 0 {
		return nil, ErrNoPrg
	}

	cart := &Cartridge{
		id:        img.Mapper,
		prgMemory: img.Prg,
		chrMemory: img.Chr,
		battery:   img.Battery,
		vram:      memory.NewRam(vramSize),
	}

	if len(cart.chrMemory) == 0 {
		cart.chrMemory = make([]uint8, chrRamSize)
		cart.chrRam = true
	}

	switch img.Mirroring {
	case rom.Vertical, rom.FourScreen:
		// four screen boards carry their own vram, which is not emulated
		cart.mirror = Vertical
	default:
		cart.mirror = Horizontal
	}

	prgBanks := len(img.Prg) / rom.PrgBankSize
	chrBanks := len(img.Chr) / rom.ChrBankSize

	needsRam := img.Battery || len(img.Trainer) > 0
	switch img.Mapper {
	case 0:
		cart.board = &Mapper0000{PrgBanks: prgBanks}
	case 1:
		cart.board = newMapper0001(len(cart.prgMemory), len(cart.chrMemory))
		needsRam = true
	case 2:
		cart.board = &Mapper0002{PrgBanks: prgBanks}
	case 3:
		cart.board = &Mapper0003{PrgBanks: prgBanks, ChrBanks: chrBanks}
	case 4:
		// the fixed banks sit at the last two 8KB banks
		if len(img.Prg) < 0x4000 || len(img.Prg)%0x2000 != 0 {
			return nil, fmt.Errorf("%w: %d bytes for mapper 4", ErrBadPrgSize, len(img.Prg))
		}
		cart.board = newMapper0004(len(cart.prgMemory), len(cart.chrMemory))
		needsRam = true
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, img.Mapper)
	}

	if needsRam {
		cart.ram = memory.NewRam(prgRamSize)
		if len(img.Trainer) > 0 {
			copy(cart.ram.Bytes()[0x1000:], img.Trainer)
		}
	}

	cart.board.reset()
	return cart, nil
}

// ID is the mapper number from the image header.
func (c *Cartridge) ID() uint16 {
	return c.id
}

func (c *Cartridge) Prg() memory.Memory {
	return prgView{c}
}

func (c *Cartridge) Chr() memory.Memory {
	return chrView{c}
}

func (c *Cartridge) PersistentRam() *memory.Ram {
	if !c.battery {
		return nil
	}
	return c.ram
}

func (c *Cartridge) Mirroring() Mirroring {
	if m, ok := c.board.mirroring(); ok {
		return m
	}
	return c.mirror
}

func (c *Cartridge) IRQ() bool {
	return c.board.irq()
}

func (c *Cartridge) Scanline() {
	c.board.scanline()
}

// Reset returns the banking state to power-on. RAM contents survive.
func (c *Cartridge) Reset() {
	c.board.reset()
}

func (c *Cartridge) cpuRead(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return c.prgMemory[c.board.mapPrg(addr)%uint32(len(c.prgMemory))]
	case addr >= 0x6000:
		if c.ram != nil {
			if read, _ := c.board.ramAccess(); read {
				return c.ram.Read(addr - 0x6000)
			}
		}
	}
	return 0
}

func (c *Cartridge) cpuWrite(addr uint16, data uint8) {
	switch {
	case addr >= 0x8000:
		c.board.writeRegister(addr, data)
	case addr >= 0x6000:
		if c.ram != nil {
			if _, write := c.board.ramAccess(); write {
				c.ram.Write(addr-0x6000, data)
			}
		}
	}
}

func (c *Cartridge) ppuRead(addr uint16) uint8 {
	addr &= 0x3FFF
	if addr < 0x2000 {
		return c.chrMemory[c.board.mapChr(addr)%uint32(len(c.chrMemory))]
	}
	return c.vram.Read(c.Mirroring().Fold(addr & 0x0FFF))
}

func (c *Cartridge) ppuWrite(addr uint16, data uint8) {
	addr &= 0x3FFF
	if addr < 0x2000 {
		if c.chrRam {
			c.chrMemory[c.board.mapChr(addr)%uint32(len(c.chrMemory))] = data
		}
		return
	}
	c.vram.Write(c.Mirroring().Fold(addr&0x0FFF), data)
}

type prgView struct {
	c *Cartridge
}

func (v prgView) Read(addr uint16) uint8 {
	return v.c.cpuRead(addr)
}

func (v prgView) Write(addr uint16, data uint8) {
	v.c.cpuWrite(addr, data)
}

type chrView struct {
	c *Cartridge
}

func (v chrView) Read(addr uint16) uint8 {
	return v.c.ppuRead(addr)
}

func (v chrView) Write(addr uint16, data uint8) {
	v.c.ppuWrite(addr, data)
}

var _ Mapper = (*Cartridge)(nil)
