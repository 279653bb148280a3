// Package memory defines the byte-wide read/write contract every device on
// the CPU and picture-unit buses implements, plus the plain stores devices
// are built from.
package memory

import "fmt"

// Memory is an addressable device. Read may have side effects (a joypad
// shift, a status latch being cleared).
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// Ram is a read/write store. Addresses beyond its length wrap, which is how
// the console's mirrored RAM regions behave.
type Ram struct {
	data []uint8
}

func NewRam(size int) *Ram {
	return &Ram{data: make([]uint8, size)}
}

func (r *Ram) Read(addr uint16) uint8 {
	return r.data[int(addr)%len(r.data)]
}

func (r *Ram) Write(addr uint16, data uint8) {
	r.data[int(addr)%len(r.data)] = data
}

func (r *Ram) Len() int {
	return len(r.data)
}

// Bytes exposes the backing store. The slice is never reallocated.
func (r *Ram) Bytes() []uint8 {
	return r.data
}

// Load replaces the whole contents. The length must match exactly.
func (r *Ram) Load(data []uint8) error {
	if len(data) != len(r.data) {
		return fmt.Errorf("memory: load of %d bytes into %d byte ram", len(data), len(r.data))
	}
	copy(r.data, data)
	return nil
}

// Rom is a read-only store; writes are ignored.
type Rom struct {
	data []uint8
}

func NewRom(data []uint8) *Rom {
	return &Rom{data: data}
}

func (r *Rom) Read(addr uint16) uint8 {
	if len(r.data) == 0 {
		return 0
	}
	return r.data[int(addr)%len(r.data)]
}

func (r *Rom) Write(addr uint16, data uint8) {}

func (r *Rom) Len() int {
	return len(r.data)
}

// Unmapped reads as zero and ignores writes.
type Unmapped struct{}

func (Unmapped) Read(addr uint16) uint8 {
	return 0
}

func (Unmapped) Write(addr uint16, data uint8) {}

// ReadWord reads a little-endian 16 bit value at addr.
func ReadWord(m Memory, addr uint16) uint16 {
	lo := uint16(m.Read(addr))
	hi := uint16(m.Read(addr + 1))
	return (hi << 8) | lo
}
