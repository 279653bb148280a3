package cpu

import "fmt"

// Flags is the processor status register.
type Flags uint8

const (
	C Flags = 1 << iota // carry
	Z                   // zero
	I                   // interrupt disable
	D                   // decimal, tracked but ignored by the 2A03
	B                   // break, only exists on the stack copy
	U                   // unused, always reads as set
	V                   // overflow
	N                   // negative
)

// Has reports whether every bit of f is set.
func (p Flags) Has(f Flags) bool {
	return p&f == f
}

// String lists the flags from bit 7 down, upper case when set.
func (p Flags) String() string {
	const names = "NVUBDIZC"
	b := []byte("nvubdizc")
	for i := 0; i < 8; i++ {
		if p&(0x80>>i) != 0 {
			b[i] = names[i]
		}
	}
	return string(b)
}

// Registers is the programmer visible register file.
type Registers struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  Flags
}

func (r Registers) String() string {
	return fmt.Sprintf("PC:$%04X A:$%02X X:$%02X Y:$%02X S:$%02X P:%s", r.PC, r.A, r.X, r.Y, r.S, r.P)
}

// State is everything the processor carries between steps.
type State struct {
	Registers

	// PrevNMI is the NMI line as sampled on the previous step; an NMI is
	// taken only on a low to high transition.
	PrevNMI bool
}
