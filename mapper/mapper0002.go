package mapper

// Mapper0002 is UxROM: a switchable 16KB bank at $8000 and the last bank
// fixed at $C000.
type Mapper0002 struct {
	fixed
	PrgBankSelectLo uint8
	PrgBankSelectHi uint8
	PrgBanks        int
}

func (m *Mapper0002) mapPrg(addr uint16) uint32 {
	if addr < 0xC000 {
		return uint32(m.PrgBankSelectLo)*0x4000 + uint32(addr&0x3FFF)
	}
	return uint32(m.PrgBankSelectHi)*0x4000 + uint32(addr&0x3FFF)
}

func (m *Mapper0002) writeRegister(addr uint16, data uint8) {
	m.PrgBankSelectLo = data & 0x0F
}

func (m *Mapper0002) mapChr(addr uint16) uint32 {
	return uint32(addr)
}

func (m *Mapper0002) reset() {
	m.PrgBankSelectLo = 0
	m.PrgBankSelectHi = uint8(m.PrgBanks - 1)
}
