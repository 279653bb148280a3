package mapper

// Mapper0000 is NROM: 16KB or 32KB of fixed program ROM and 8KB of CHR.
type Mapper0000 struct {
	fixed
	PrgBanks int
}

func (m *Mapper0000) mapPrg(addr uint16) uint32 {
	base := uint16(0x3FFF)
	if m.PrgBanks > 1 {
		base = 0x7FFF
	}
	return uint32(addr & base)
}

func (m *Mapper0000) writeRegister(addr uint16, data uint8) {}

func (m *Mapper0000) mapChr(addr uint16) uint32 {
	return uint32(addr)
}

func (m *Mapper0000) reset() {}
