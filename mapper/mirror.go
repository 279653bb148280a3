package mapper

import "fmt"

// Mirroring selects how the four logical nametables fold onto the 2KB of
// video RAM.
type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	SingleLower
	SingleUpper
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case SingleLower:
		return "single-screen lower"
	case SingleUpper:
		return "single-screen upper"
	}
	return fmt.Sprintf("mirroring(%d)", uint8(m))
}

// Fold maps a nametable-relative address onto an index in [0, 2047].
func (m Mirroring) Fold(addr uint16) uint16 {
	switch m {
	case Vertical:
		return MirrorVertical(addr)
	case SingleLower:
		return addr & 1023
	case SingleUpper:
		return 1024 | (addr & 1023)
	}
	return MirrorHorizontal(addr)
}

// MirrorHorizontal folds $2000/$2400 onto the first KB and $2800/$2C00 onto
// the second.
func MirrorHorizontal(addr uint16) uint16 {
	return (addr & 1023) | ((addr & 2048) >> 1)
}

// MirrorVertical folds $2000/$2800 onto the first KB and $2400/$2C00 onto
// the second.
func MirrorVertical(addr uint16) uint16 {
	return addr & 2047
}
