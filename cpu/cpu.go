// Package cpu emulates the 2A03's 6502 core one instruction at a time.
//
// Decimal mode is not implemented: the D flag can be set and cleared but
// ADC and SBC always operate in binary, as on the console's processor.
package cpu

import "nes-emu/memory"

const (
	stackBase = 0x0100

	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE

	interruptCycles = 7
)

// Interrupts are the two interrupt request lines as seen by the CPU.
type Interrupts interface {
	// NMI is edge triggered: serviced once when the line goes high.
	NMI() bool

	// IRQ is level triggered: serviced while high and I is clear.
	IRQ() bool
}

type CPU struct {
	State

	bus   memory.Memory
	lines Interrupts

	// per instruction scratch
	operand Operand
	fetched uint8
	addrAbs uint16
	addrRel uint16
	extra   int

	resetPending bool
	fault        error
	cycles       uint64
}

// New returns a CPU with a reset pending; the first Step loads the reset
// vector. lines may be nil.
func New(bus memory.Memory, lines Interrupts) *CPU {
	c := &CPU{
		bus:   bus,
		lines: lines,
	}
	c.P = U | I
	c.resetPending = true
	return c
}

// Reset requests a reset, serviced ahead of anything else on the next Step.
// It also clears a halt caused by an unsupported opcode.
func (c *CPU) Reset() {
	c.resetPending = true
	c.fault = nil
}

// Cycles is the number of cycles executed since construction.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Stall accounts for cycles in which the bus was held by something else.
func (c *CPU) Stall(cycles int) {
	c.cycles += uint64(cycles)
}

// Halted returns the error that stopped the CPU, if any.
func (c *CPU) Halted() error {
	return c.fault
}

// Step services one pending interrupt or executes one instruction and
// returns the cycles it took. After an unsupported opcode every call
// returns the same error until Reset.
func (c *CPU) Step() (int, error) {
	if c.fault != nil {
		return 0, c.fault
	}

	if cycles, ok := c.interrupt(); ok {
		c.cycles += uint64(cycles)
		return cycles, nil
	}

	inst, entry, err := decode(c.bus, c.PC)
	if err != nil {
		c.fault = err
		return 0, err
	}
	c.PC += inst.Size()

	c.operand = inst.Operand
	c.extra = 0
	crossed := c.address(inst.Operand)
	penalty := operations[inst.Op](c)

	cycles := int(entry.cycles) + int(crossed&penalty) + c.extra
	c.cycles += uint64(cycles)
	return cycles, nil
}

// interrupt polls the lines in priority order and services the first one
// that is due.
func (c *CPU) interrupt() (int, bool) {
	nmi, irq := false, false
	if c.lines != nil {
		nmi = c.lines.NMI()
		irq = c.lines.IRQ()
	}

	if c.resetPending {
		c.resetPending = false
		// the reset sequence runs the stack pushes with writes inhibited.
		// the nmi edge is left for the next step
		c.S -= 3
		c.P |= I | U
		c.PC = memory.ReadWord(c.bus, vectorReset)
		return interruptCycles, true
	}

	edge := nmi && !c.PrevNMI
	c.PrevNMI = nmi

	switch {
	case edge:
		c.service(vectorNMI)
		return interruptCycles, true
	case irq && !c.P.Has(I):
		c.service(vectorIRQ)
		return interruptCycles, true
	}
	return 0, false
}

func (c *CPU) service(vector uint16) {
	c.push16(c.PC)
	c.push(uint8((c.P &^ B) | U))
	c.P |= I
	c.PC = memory.ReadWord(c.bus, vector)
}

// address resolves the effective address of an operand into addrAbs or
// addrRel and returns 1 when indexing crossed a page.
func (c *CPU) address(o Operand) uint8 {
	switch o := o.(type) {
	case Accumulator, Implied:
		c.fetched = c.A
	case Immediate:
		c.fetched = uint8(o)
	case Relative:
		c.addrRel = uint16(int16(o))
	case Absolute:
		c.addrAbs = uint16(o)
	case ZeroPage:
		c.addrAbs = uint16(o)
	case Indirect:
		ptr := uint16(o)
		// the high byte is fetched without carrying into the pointer's page
		hi := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
		c.addrAbs = uint16(c.read(hi))<<8 | uint16(c.read(ptr))
	case AbsoluteIndexed:
		c.addrAbs = o.Addr + uint16(c.index(o.Index))
		return crossed(o.Addr, c.addrAbs)
	case ZeroPageIndexed:
		c.addrAbs = uint16(o.Addr + c.index(o.Index))
	case IndexedIndirect:
		c.addrAbs = c.zeroPageWord(uint8(o) + c.X)
	case IndirectIndexed:
		base := c.zeroPageWord(uint8(o))
		c.addrAbs = base + uint16(c.Y)
		return crossed(base, c.addrAbs)
	}
	return 0
}

func crossed(a, b uint16) uint8 {
	if a&0xFF00 != b&0xFF00 {
		return 1
	}
	return 0
}

func (c *CPU) index(i Index) uint8 {
	if i == Y {
		return c.Y
	}
	return c.X
}

func (c *CPU) zeroPageWord(addr uint8) uint16 {
	lo := uint16(c.read(uint16(addr)))
	hi := uint16(c.read(uint16(addr + 1)))
	return hi<<8 | lo
}

// fetch returns the value the current operand refers to.
func (c *CPU) fetch() uint8 {
	switch c.operand.(type) {
	case Accumulator, Implied, Immediate:
	default:
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}

// store writes a shift or rotate result back where it came from.
func (c *CPU) store(data uint8) {
	if _, ok := c.operand.(Accumulator); ok {
		c.A = data
		return
	}
	c.write(c.addrAbs, data)
}

func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) write(addr uint16, data uint8) {
	c.bus.Write(addr, data)
}

func (c *CPU) push(data uint8) {
	c.write(stackBase+uint16(c.S), data)
	c.S--
}

func (c *CPU) pull() uint8 {
	c.S++
	return c.read(stackBase + uint16(c.S))
}

func (c *CPU) push16(data uint16) {
	c.push(uint8(data >> 8))
	c.push(uint8(data))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

func (c *CPU) flag(f Flags) uint8 {
	if c.P&f != 0 {
		return 1
	}
	return 0
}

func (c *CPU) setFlag(f Flags, v bool) {
	if v {
		c.P |= f
	} else {
		c.P &^= f
	}
}

func (c *CPU) setZN(v uint8) {
	c.setFlag(Z, v == 0)
	c.setFlag(N, v&0x80 != 0)
}
