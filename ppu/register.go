package ppu

// Field is a run of Size bits starting at bit Index of a register.
type Field struct {
	Index uint16
	Size  uint16
}

func (f Field) mask() uint16 {
	return ((^(0xFFFF << f.Size)) & 0xFFFF) << f.Index
}

// Register is a PPU register addressed by field.
type Register uint16

func (r Register) Get(f Field) uint16 {
	return (uint16(r) & f.mask()) >> f.Index
}

// Set replaces the bits of f; value bits beyond the field width are dropped.
func (r *Register) Set(f Field, value uint16) {
	mask := f.mask()
	*r = Register((uint16(*r) &^ mask) | (mask & (value << f.Index)))
}

// Flag reports whether a one bit field is set.
func (r Register) Flag(f Field) bool {
	return r.Get(f) != 0
}

func (r *Register) SetFlag(f Field, v bool) {
	if v {
		r.Set(f, 1)
	} else {
		r.Set(f, 0)
	}
}

// PPUCTRL
var (
	CtrlNametableX    = Field{0, 1}
	CtrlNametableY    = Field{1, 1}
	CtrlIncrementMode = Field{2, 1}
	CtrlPatternSprite = Field{3, 1}
	CtrlPatternBg     = Field{4, 1}
	CtrlSpriteSize    = Field{5, 1}
	CtrlSlaveMode     = Field{6, 1}
	CtrlEnableNMI     = Field{7, 1}
)

// PPUMASK
var (
	MaskGrayscale   = Field{0, 1}
	MaskBgLeft      = Field{1, 1}
	MaskSpritesLeft = Field{2, 1}
	MaskBackground  = Field{3, 1}
	MaskSprites     = Field{4, 1}
	MaskEmphasis    = Field{5, 3}
)

// PPUSTATUS
var (
	StatusOpenBus        = Field{0, 5}
	StatusSpriteOverflow = Field{5, 1}
	StatusSpriteZeroHit  = Field{6, 1}
	StatusVerticalBlank  = Field{7, 1}
)

// Loopy scroll address, used for both v and t.
var (
	LoopyCoarseX    = Field{0, 5}
	LoopyCoarseY    = Field{5, 5}
	LoopyNametableX = Field{10, 1}
	LoopyNametableY = Field{11, 1}
	LoopyFineY      = Field{12, 3}
)
