package mapper

// Mapper0004 is MMC3: 8KB program banks, 1KB/2KB CHR banks and a scanline
// counter that drives the cartridge IRQ line.
type Mapper0004 struct {
	targetRegister uint8
	prgBankMode    bool
	chrInversion   bool
	mirrorMode     Mirroring
	register       [8]uint32
	chrBank        [8]uint32
	prgBank        [4]uint32
	IRQActive      bool
	IRQEnable      bool
	IRQReload      bool
	IRQCounter     uint8
	IRQLatch       uint8
	ramEnable      bool
	ramWrite       bool
	prgBanks       uint32
	chrBanks       uint32
}

func newMapper0004(prgSize int, chrSize int) *Mapper0004 {
	return &Mapper0004{
		prgBanks: uint32(prgSize / 0x2000),
		chrBanks: uint32(chrSize / 0x0400),
	}
}

func (m *Mapper0004) writeRegister(addr uint16, data uint8) {
	even := addr&0x0001 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.targetRegister = data & 0x07
			m.prgBankMode = data&0x40 != 0
			m.chrInversion = data&0x80 != 0
		} else {
			m.register[m.targetRegister] = uint32(data)
		}
		m.updateBanks()
	case addr < 0xC000:
		if even {
			m.mirrorMode = Vertical
			if data&0x01 != 0 {
				m.mirrorMode = Horizontal
			}
		} else {
			m.ramEnable = data&0x80 != 0
			m.ramWrite = data&0x40 == 0
		}
	case addr < 0xE000:
		if even {
			m.IRQLatch = data
		} else {
			m.IRQCounter = 0
			m.IRQReload = true
		}
	default:
		if even {
			m.IRQEnable = false
			m.IRQActive = false
		} else {
			m.IRQEnable = true
		}
	}
}

func (m *Mapper0004) updateBanks() {
	r := &m.register
	if m.chrInversion {
		m.chrBank[0] = r[2]
		m.chrBank[1] = r[3]
		m.chrBank[2] = r[4]
		m.chrBank[3] = r[5]
		m.chrBank[4] = r[0] & 0xFE
		m.chrBank[5] = r[0] | 0x01
		m.chrBank[6] = r[1] & 0xFE
		m.chrBank[7] = r[1] | 0x01
	} else {
		m.chrBank[0] = r[0] & 0xFE
		m.chrBank[1] = r[0] | 0x01
		m.chrBank[2] = r[1] & 0xFE
		m.chrBank[3] = r[1] | 0x01
		m.chrBank[4] = r[2]
		m.chrBank[5] = r[3]
		m.chrBank[6] = r[4]
		m.chrBank[7] = r[5]
	}

	secondLast := m.prgBanks - 2
	if m.prgBankMode {
		m.prgBank[0] = secondLast
		m.prgBank[2] = r[6] & 0x3F
	} else {
		m.prgBank[0] = r[6] & 0x3F
		m.prgBank[2] = secondLast
	}
	m.prgBank[1] = r[7] & 0x3F
	m.prgBank[3] = m.prgBanks - 1
}

func (m *Mapper0004) mapPrg(addr uint16) uint32 {
	slot := (addr - 0x8000) / 0x2000
	return (m.prgBank[slot]%m.prgBanks)*0x2000 + uint32(addr&0x1FFF)
}

func (m *Mapper0004) mapChr(addr uint16) uint32 {
	slot := addr / 0x0400
	bank := m.chrBank[slot]
	if m.chrBanks > 0 {
		bank %= m.chrBanks
	}
	return bank*0x0400 + uint32(addr&0x03FF)
}

func (m *Mapper0004) mirroring() (Mirroring, bool) {
	return m.mirrorMode, true
}

func (m *Mapper0004) ramAccess() (bool, bool) {
	return m.ramEnable, m.ramEnable && m.ramWrite
}

func (m *Mapper0004) irq() bool {
	return m.IRQActive
}

func (m *Mapper0004) scanline() {
	if m.IRQCounter == 0 || m.IRQReload {
		m.IRQCounter = m.IRQLatch
		m.IRQReload = false
	} else {
		m.IRQCounter--
	}
	if m.IRQCounter == 0 && m.IRQEnable {
		m.IRQActive = true
	}
}

func (m *Mapper0004) reset() {
	m.targetRegister = 0
	m.prgBankMode = false
	m.chrInversion = false
	m.mirrorMode = Vertical
	m.IRQActive = false
	m.IRQEnable = false
	m.IRQReload = false
	m.IRQCounter = 0
	m.IRQLatch = 0
	m.ramEnable = true
	m.ramWrite = true
	m.register = [8]uint32{0, 2, 4, 5, 6, 7, 0, 1}
	m.updateBanks()
}
