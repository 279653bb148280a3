package cpu

// Each operation returns 1 if it pays the extra cycle when its addressing
// mode crosses a page boundary.
var operations = [...]func(*CPU) uint8{
	ADC: adc, AND: and, ASL: asl, BCC: bcc, BCS: bcs, BEQ: beq, BIT: bit,
	BMI: bmi, BNE: bne, BPL: bpl, BRK: brk, BVC: bvc, BVS: bvs, CLC: clc,
	CLD: cld, CLI: cli, CLV: clv, CMP: cmp, CPX: cpx, CPY: cpy, DEC: dec,
	DEX: dex, DEY: dey, EOR: eor, INC: inc, INX: inx, INY: iny, JMP: jmp,
	JSR: jsr, LDA: lda, LDX: ldx, LDY: ldy, LSR: lsr, NOP: nop, ORA: ora,
	PHA: pha, PHP: php, PLA: pla, PLP: plp, ROL: rol, ROR: ror, RTI: rti,
	RTS: rts, SBC: sbc, SEC: sec, SED: sed, SEI: sei, STA: sta, STX: stx,
	STY: sty, TAX: tax, TAY: tay, TSX: tsx, TXA: txa, TXS: txs, TYA: tya,
}

// add is the binary adder shared by ADC and SBC.
func (c *CPU) add(value uint8) {
	temp := uint16(c.A) + uint16(value) + uint16(c.flag(C))
	c.setFlag(C, temp > 0xFF)
	c.setFlag(V, (^(c.A^value))&(c.A^uint8(temp))&0x80 != 0)
	c.A = uint8(temp)
	c.setZN(c.A)
}

func adc(c *CPU) uint8 {
	c.add(c.fetch())
	return 1
}

func sbc(c *CPU) uint8 {
	c.add(c.fetch() ^ 0xFF)
	return 1
}

func and(c *CPU) uint8 {
	c.A &= c.fetch()
	c.setZN(c.A)
	return 1
}

func eor(c *CPU) uint8 {
	c.A ^= c.fetch()
	c.setZN(c.A)
	return 1
}

func ora(c *CPU) uint8 {
	c.A |= c.fetch()
	c.setZN(c.A)
	return 1
}

func asl(c *CPU) uint8 {
	v := c.fetch()
	c.setFlag(C, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	c.store(v)
	return 0
}

func lsr(c *CPU) uint8 {
	v := c.fetch()
	c.setFlag(C, v&0x01 != 0)
	v >>= 1
	c.setZN(v)
	c.store(v)
	return 0
}

func rol(c *CPU) uint8 {
	v := c.fetch()
	carry := c.flag(C)
	c.setFlag(C, v&0x80 != 0)
	v = v<<1 | carry
	c.setZN(v)
	c.store(v)
	return 0
}

func ror(c *CPU) uint8 {
	v := c.fetch()
	carry := c.flag(C)
	c.setFlag(C, v&0x01 != 0)
	v = v>>1 | carry<<7
	c.setZN(v)
	c.store(v)
	return 0
}

func (c *CPU) branch(taken bool) uint8 {
	if !taken {
		return 0
	}
	c.extra++
	c.addrAbs = c.PC + c.addrRel
	if c.addrAbs&0xFF00 != c.PC&0xFF00 {
		c.extra++
	}
	c.PC = c.addrAbs
	return 0
}

func bcc(c *CPU) uint8 { return c.branch(!c.P.Has(C)) }
func bcs(c *CPU) uint8 { return c.branch(c.P.Has(C)) }
func beq(c *CPU) uint8 { return c.branch(c.P.Has(Z)) }
func bne(c *CPU) uint8 { return c.branch(!c.P.Has(Z)) }
func bmi(c *CPU) uint8 { return c.branch(c.P.Has(N)) }
func bpl(c *CPU) uint8 { return c.branch(!c.P.Has(N)) }
func bvc(c *CPU) uint8 { return c.branch(!c.P.Has(V)) }
func bvs(c *CPU) uint8 { return c.branch(c.P.Has(V)) }

func bit(c *CPU) uint8 {
	v := c.fetch()
	c.setFlag(Z, c.A&v == 0)
	c.setFlag(N, v&0x80 != 0)
	c.setFlag(V, v&0x40 != 0)
	return 0
}

func brk(c *CPU) uint8 {
	// skip the padding byte
	c.PC++
	c.push16(c.PC)
	c.push(uint8(c.P | B | U))
	c.P |= I
	c.PC = uint16(c.read(vectorIRQ)) | uint16(c.read(vectorIRQ+1))<<8
	return 0
}

func clc(c *CPU) uint8 { c.setFlag(C, false); return 0 }
func cld(c *CPU) uint8 { c.setFlag(D, false); return 0 }
func cli(c *CPU) uint8 { c.setFlag(I, false); return 0 }
func clv(c *CPU) uint8 { c.setFlag(V, false); return 0 }
func sec(c *CPU) uint8 { c.setFlag(C, true); return 0 }
func sed(c *CPU) uint8 { c.setFlag(D, true); return 0 }
func sei(c *CPU) uint8 { c.setFlag(I, true); return 0 }

func (c *CPU) compare(reg uint8) {
	v := c.fetch()
	c.setFlag(C, reg >= v)
	c.setZN(reg - v)
}

func cmp(c *CPU) uint8 {
	c.compare(c.A)
	return 1
}

func cpx(c *CPU) uint8 {
	c.compare(c.X)
	return 0
}

func cpy(c *CPU) uint8 {
	c.compare(c.Y)
	return 0
}

func dec(c *CPU) uint8 {
	v := c.fetch() - 1
	c.write(c.addrAbs, v)
	c.setZN(v)
	return 0
}

func inc(c *CPU) uint8 {
	v := c.fetch() + 1
	c.write(c.addrAbs, v)
	c.setZN(v)
	return 0
}

func dex(c *CPU) uint8 { c.X--; c.setZN(c.X); return 0 }
func dey(c *CPU) uint8 { c.Y--; c.setZN(c.Y); return 0 }
func inx(c *CPU) uint8 { c.X++; c.setZN(c.X); return 0 }
func iny(c *CPU) uint8 { c.Y++; c.setZN(c.Y); return 0 }

func jmp(c *CPU) uint8 {
	c.PC = c.addrAbs
	return 0
}

func jsr(c *CPU) uint8 {
	c.push16(c.PC - 1)
	c.PC = c.addrAbs
	return 0
}

func rts(c *CPU) uint8 {
	c.PC = c.pull16() + 1
	return 0
}

func rti(c *CPU) uint8 {
	c.P = Flags(c.pull())&^B | U
	c.PC = c.pull16()
	return 0
}

func lda(c *CPU) uint8 {
	c.A = c.fetch()
	c.setZN(c.A)
	return 1
}

func ldx(c *CPU) uint8 {
	c.X = c.fetch()
	c.setZN(c.X)
	return 1
}

func ldy(c *CPU) uint8 {
	c.Y = c.fetch()
	c.setZN(c.Y)
	return 1
}

func nop(c *CPU) uint8 {
	return 0
}

func pha(c *CPU) uint8 {
	c.push(c.A)
	return 0
}

func php(c *CPU) uint8 {
	c.push(uint8(c.P | B | U))
	return 0
}

func pla(c *CPU) uint8 {
	c.A = c.pull()
	c.setZN(c.A)
	return 0
}

func plp(c *CPU) uint8 {
	c.P = Flags(c.pull())&^B | U
	return 0
}

func sta(c *CPU) uint8 {
	c.write(c.addrAbs, c.A)
	return 0
}

func stx(c *CPU) uint8 {
	c.write(c.addrAbs, c.X)
	return 0
}

func sty(c *CPU) uint8 {
	c.write(c.addrAbs, c.Y)
	return 0
}

func tax(c *CPU) uint8 { c.X = c.A; c.setZN(c.X); return 0 }
func tay(c *CPU) uint8 { c.Y = c.A; c.setZN(c.Y); return 0 }
func tsx(c *CPU) uint8 { c.X = c.S; c.setZN(c.X); return 0 }
func txa(c *CPU) uint8 { c.A = c.X; c.setZN(c.A); return 0 }
func tya(c *CPU) uint8 { c.A = c.Y; c.setZN(c.A); return 0 }

func txs(c *CPU) uint8 {
	c.S = c.X
	return 0
}
