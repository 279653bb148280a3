package mapper

// Mapper0001 is MMC1. Registers are loaded serially, one bit per write,
// through a five bit shift register.
//
// CPU $6000-$7FFF: 8 KB PRG RAM
// CPU $8000-$BFFF: 16 KB PRG ROM bank, switchable or fixed to the first bank
// CPU $C000-$FFFF: 16 KB PRG ROM bank, fixed to the last bank or switchable
// PPU $0000-$0FFF: 4 KB switchable CHR bank
// PPU $1000-$1FFF: 4 KB switchable CHR bank
type Mapper0001 struct {
	prgSize int

	shift   uint8
	counter uint8

	control  uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgBanks [2]uint32
	chrBanks [2]uint32
}

func newMapper0001(prgSize int, chrSize int) *Mapper0001 {
	return &Mapper0001{prgSize: prgSize}
}

// 7  bit  0
// ---- ----
// Rxxx xxxD
// |       |
// |       +- Data bit to be shifted into shift register, LSB first
// +--------- 1: Reset shift register and write Control with (Control OR $0C)
func (m *Mapper0001) writeRegister(addr uint16, data uint8) {
	if data&0x80 != 0 {
		m.shift = 0
		m.counter = 0
		m.control |= 0x0C
		m.updateBanks()
		return
	}

	m.shift |= (data & 0x01) << m.counter
	m.counter++
	if m.counter < 5 {
		return
	}

	switch {
	case addr < 0xA000:
		m.control = m.shift
	case addr < 0xC000:
		m.chrBank0 = m.shift
	case addr < 0xE000:
		m.chrBank1 = m.shift
	default:
		m.prgBank = m.shift
	}
	m.shift = 0
	m.counter = 0
	m.updateBanks()
}

func (m *Mapper0001) prgMode() uint8 {
	return (m.control >> 2) & 0x03
}

func (m *Mapper0001) chrMode() uint8 {
	return (m.control >> 4) & 0x01
}

func (m *Mapper0001) updateBanks() {
	bank := uint32(m.prgBank & 0x0F)
	switch m.prgMode() {
	case 0, 1:
		// 32 KB, low bit of the bank number ignored
		m.prgBanks[0] = (bank >> 1) * 0x8000
		m.prgBanks[1] = m.prgBanks[0] + 0x4000
	case 2:
		m.prgBanks[0] = 0
		m.prgBanks[1] = bank * 0x4000
	case 3:
		m.prgBanks[0] = bank * 0x4000
		m.prgBanks[1] = uint32(m.prgSize) - 0x4000
	}

	switch m.chrMode() {
	case 0:
		m.chrBanks[0] = uint32(m.chrBank0>>1) * 0x2000
		m.chrBanks[1] = m.chrBanks[0] + 0x1000
	case 1:
		m.chrBanks[0] = uint32(m.chrBank0) * 0x1000
		m.chrBanks[1] = uint32(m.chrBank1) * 0x1000
	}
}

func (m *Mapper0001) mapPrg(addr uint16) uint32 {
	if addr < 0xC000 {
		return m.prgBanks[0] + uint32(addr&0x3FFF)
	}
	return m.prgBanks[1] + uint32(addr&0x3FFF)
}

func (m *Mapper0001) mapChr(addr uint16) uint32 {
	if addr < 0x1000 {
		return m.chrBanks[0] + uint32(addr)
	}
	return m.chrBanks[1] + uint32(addr&0x0FFF)
}

// Control bits 0-1: 0 one-screen lower, 1 one-screen upper, 2 vertical,
// 3 horizontal
func (m *Mapper0001) mirroring() (Mirroring, bool) {
	switch m.control & 0x03 {
	case 0:
		return SingleLower, true
	case 1:
		return SingleUpper, true
	case 2:
		return Vertical, true
	}
	return Horizontal, true
}

// PRG bank bit 4 disables the ram chip
func (m *Mapper0001) ramAccess() (bool, bool) {
	enabled := m.prgBank&0x10 == 0
	return enabled, enabled
}

func (m *Mapper0001) irq() bool {
	return false
}

func (m *Mapper0001) scanline() {}

func (m *Mapper0001) reset() {
	m.shift = 0
	m.counter = 0
	m.control = 0x0C
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
	m.updateBanks()
}
