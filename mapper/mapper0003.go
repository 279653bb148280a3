package mapper

// Mapper0003 is CNROM: fixed program ROM and a switchable 8KB CHR bank.
type Mapper0003 struct {
	fixed
	PrgBanks       int
	ChrBanks       int
	chrBanksSelect uint8
}

func (m *Mapper0003) mapPrg(addr uint16) uint32 {
	if m.PrgBanks == 1 {
		return uint32(addr & 0x3FFF)
	}
	return uint32(addr & 0x7FFF)
}

func (m *Mapper0003) writeRegister(addr uint16, data uint8) {
	m.chrBanksSelect = data & 0x03
	if m.ChrBanks > 0 {
		m.chrBanksSelect %= uint8(m.ChrBanks)
	}
}

func (m *Mapper0003) mapChr(addr uint16) uint32 {
	return uint32(m.chrBanksSelect)*0x2000 + uint32(addr)
}

func (m *Mapper0003) reset() {
	m.chrBanksSelect = 0
}
