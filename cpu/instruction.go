package cpu

import (
	"fmt"
	"strings"

	"nes-emu/memory"
)

// Mnemonic identifies an operation independent of its addressing mode.
type Mnemonic uint8

const (
	ADC Mnemonic = iota + 1
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var mnemonics = [...]string{
	"???",
	"adc", "and", "asl", "bcc", "bcs", "beq", "bit", "bmi", "bne", "bpl",
	"brk", "bvc", "bvs", "clc", "cld", "cli", "clv", "cmp", "cpx", "cpy",
	"dec", "dex", "dey", "eor", "inc", "inx", "iny", "jmp", "jsr", "lda",
	"ldx", "ldy", "lsr", "nop", "ora", "pha", "php", "pla", "plp", "rol",
	"ror", "rti", "rts", "sbc", "sec", "sed", "sei", "sta", "stx", "sty",
	"tax", "tay", "tsx", "txa", "txs", "tya",
}

func (m Mnemonic) String() string {
	if int(m) < len(mnemonics) {
		return mnemonics[m]
	}
	return mnemonics[0]
}

// Instruction is a decoded opcode and operand.
type Instruction struct {
	Op      Mnemonic
	Operand Operand
}

func (i Instruction) String() string {
	if i.Operand == nil {
		return i.Op.String()
	}
	operand := i.Operand.String()
	if operand == "" {
		return i.Op.String()
	}
	return i.Op.String() + " " + operand
}

// Size is the encoded length in bytes.
func (i Instruction) Size() uint16 {
	if i.Operand == nil {
		return 1
	}
	return 1 + i.Operand.size()
}

type mode uint8

const (
	imp mode = iota
	acc
	imm
	rel
	abs
	abx
	aby
	zp0
	zpx
	zpy
	ind
	izx
	izy
)

type opcode struct {
	op     Mnemonic
	mode   mode
	cycles uint8
}

// Official opcodes only; the zero value marks an unsupported one.
var opcodes = [256]opcode{
	0x69: {ADC, imm, 2}, 0x65: {ADC, zp0, 3}, 0x75: {ADC, zpx, 4}, 0x6D: {ADC, abs, 4},
	0x7D: {ADC, abx, 4}, 0x79: {ADC, aby, 4}, 0x61: {ADC, izx, 6}, 0x71: {ADC, izy, 5},

	0x29: {AND, imm, 2}, 0x25: {AND, zp0, 3}, 0x35: {AND, zpx, 4}, 0x2D: {AND, abs, 4},
	0x3D: {AND, abx, 4}, 0x39: {AND, aby, 4}, 0x21: {AND, izx, 6}, 0x31: {AND, izy, 5},

	0x0A: {ASL, acc, 2}, 0x06: {ASL, zp0, 5}, 0x16: {ASL, zpx, 6}, 0x0E: {ASL, abs, 6},
	0x1E: {ASL, abx, 7},

	0x90: {BCC, rel, 2}, 0xB0: {BCS, rel, 2}, 0xF0: {BEQ, rel, 2}, 0x30: {BMI, rel, 2},
	0xD0: {BNE, rel, 2}, 0x10: {BPL, rel, 2}, 0x50: {BVC, rel, 2}, 0x70: {BVS, rel, 2},

	0x24: {BIT, zp0, 3}, 0x2C: {BIT, abs, 4},

	0x00: {BRK, imp, 7},

	0x18: {CLC, imp, 2}, 0xD8: {CLD, imp, 2}, 0x58: {CLI, imp, 2}, 0xB8: {CLV, imp, 2},

	0xC9: {CMP, imm, 2}, 0xC5: {CMP, zp0, 3}, 0xD5: {CMP, zpx, 4}, 0xCD: {CMP, abs, 4},
	0xDD: {CMP, abx, 4}, 0xD9: {CMP, aby, 4}, 0xC1: {CMP, izx, 6}, 0xD1: {CMP, izy, 5},

	0xE0: {CPX, imm, 2}, 0xE4: {CPX, zp0, 3}, 0xEC: {CPX, abs, 4},
	0xC0: {CPY, imm, 2}, 0xC4: {CPY, zp0, 3}, 0xCC: {CPY, abs, 4},

	0xC6: {DEC, zp0, 5}, 0xD6: {DEC, zpx, 6}, 0xCE: {DEC, abs, 6}, 0xDE: {DEC, abx, 7},
	0xCA: {DEX, imp, 2}, 0x88: {DEY, imp, 2},

	0x49: {EOR, imm, 2}, 0x45: {EOR, zp0, 3}, 0x55: {EOR, zpx, 4}, 0x4D: {EOR, abs, 4},
	0x5D: {EOR, abx, 4}, 0x59: {EOR, aby, 4}, 0x41: {EOR, izx, 6}, 0x51: {EOR, izy, 5},

	0xE6: {INC, zp0, 5}, 0xF6: {INC, zpx, 6}, 0xEE: {INC, abs, 6}, 0xFE: {INC, abx, 7},
	0xE8: {INX, imp, 2}, 0xC8: {INY, imp, 2},

	0x4C: {JMP, abs, 3}, 0x6C: {JMP, ind, 5},
	0x20: {JSR, abs, 6},

	0xA9: {LDA, imm, 2}, 0xA5: {LDA, zp0, 3}, 0xB5: {LDA, zpx, 4}, 0xAD: {LDA, abs, 4},
	0xBD: {LDA, abx, 4}, 0xB9: {LDA, aby, 4}, 0xA1: {LDA, izx, 6}, 0xB1: {LDA, izy, 5},

	0xA2: {LDX, imm, 2}, 0xA6: {LDX, zp0, 3}, 0xB6: {LDX, zpy, 4}, 0xAE: {LDX, abs, 4},
	0xBE: {LDX, aby, 4},

	0xA0: {LDY, imm, 2}, 0xA4: {LDY, zp0, 3}, 0xB4: {LDY, zpx, 4}, 0xAC: {LDY, abs, 4},
	0xBC: {LDY, abx, 4},

	0x4A: {LSR, acc, 2}, 0x46: {LSR, zp0, 5}, 0x56: {LSR, zpx, 6}, 0x4E: {LSR, abs, 6},
	0x5E: {LSR, abx, 7},

	0xEA: {NOP, imp, 2},

	0x09: {ORA, imm, 2}, 0x05: {ORA, zp0, 3}, 0x15: {ORA, zpx, 4}, 0x0D: {ORA, abs, 4},
	0x1D: {ORA, abx, 4}, 0x19: {ORA, aby, 4}, 0x01: {ORA, izx, 6}, 0x11: {ORA, izy, 5},

	0x48: {PHA, imp, 3}, 0x08: {PHP, imp, 3}, 0x68: {PLA, imp, 4}, 0x28: {PLP, imp, 4},

	0x2A: {ROL, acc, 2}, 0x26: {ROL, zp0, 5}, 0x36: {ROL, zpx, 6}, 0x2E: {ROL, abs, 6},
	0x3E: {ROL, abx, 7},

	0x6A: {ROR, acc, 2}, 0x66: {ROR, zp0, 5}, 0x76: {ROR, zpx, 6}, 0x6E: {ROR, abs, 6},
	0x7E: {ROR, abx, 7},

	0x40: {RTI, imp, 6}, 0x60: {RTS, imp, 6},

	0xE9: {SBC, imm, 2}, 0xE5: {SBC, zp0, 3}, 0xF5: {SBC, zpx, 4}, 0xED: {SBC, abs, 4},
	0xFD: {SBC, abx, 4}, 0xF9: {SBC, aby, 4}, 0xE1: {SBC, izx, 6}, 0xF1: {SBC, izy, 5},

	0x38: {SEC, imp, 2}, 0xF8: {SED, imp, 2}, 0x78: {SEI, imp, 2},

	0x85: {STA, zp0, 3}, 0x95: {STA, zpx, 4}, 0x8D: {STA, abs, 4}, 0x9D: {STA, abx, 5},
	0x99: {STA, aby, 5}, 0x81: {STA, izx, 6}, 0x91: {STA, izy, 6},

	0x86: {STX, zp0, 3}, 0x96: {STX, zpy, 4}, 0x8E: {STX, abs, 4},
	0x84: {STY, zp0, 3}, 0x94: {STY, zpx, 4}, 0x8C: {STY, abs, 4},

	0xAA: {TAX, imp, 2}, 0xA8: {TAY, imp, 2}, 0xBA: {TSX, imp, 2},
	0x8A: {TXA, imp, 2}, 0x9A: {TXS, imp, 2}, 0x98: {TYA, imp, 2},
}

// UnsupportedOpcodeError is returned for an opcode outside the official set.
type UnsupportedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unsupported opcode $%02X at $%04X", e.Opcode, e.PC)
}

// Decode reads the instruction at pc.
func Decode(m memory.Memory, pc uint16) (Instruction, error) {
	inst, _, err := decode(m, pc)
	return inst, err
}

func decode(m memory.Memory, pc uint16) (Instruction, opcode, error) {
	code := m.Read(pc)
	entry := opcodes[code]
	if entry.op == 0 {
		return Instruction{}, entry, &UnsupportedOpcodeError{Opcode: code, PC: pc}
	}
	return Instruction{Op: entry.op, Operand: decodeOperand(m, pc+1, entry.mode)}, entry, nil
}

func decodeOperand(m memory.Memory, addr uint16, md mode) Operand {
	switch md {
	case acc:
		return Accumulator{}
	case imm:
		return Immediate(m.Read(addr))
	case rel:
		return Relative(int8(m.Read(addr)))
	case abs:
		return Absolute(memory.ReadWord(m, addr))
	case abx:
		return AbsoluteIndexed{Addr: memory.ReadWord(m, addr), Index: X}
	case aby:
		return AbsoluteIndexed{Addr: memory.ReadWord(m, addr), Index: Y}
	case zp0:
		return ZeroPage(m.Read(addr))
	case zpx:
		return ZeroPageIndexed{Addr: m.Read(addr), Index: X}
	case zpy:
		return ZeroPageIndexed{Addr: m.Read(addr), Index: Y}
	case ind:
		return Indirect(memory.ReadWord(m, addr))
	case izx:
		return IndexedIndirect(m.Read(addr))
	case izy:
		return IndirectIndexed(m.Read(addr))
	}
	return Implied{}
}

// Line is one disassembled instruction.
type Line struct {
	Addr        uint16
	Bytes       []uint8
	Instruction Instruction

	// Valid is false when the byte at Addr is not a supported opcode.
	Valid bool
}

func (l Line) String() string {
	hex := make([]string, len(l.Bytes))
	for i, b := range l.Bytes {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	text := fmt.Sprintf(".byte $%02x", l.Bytes[0])
	if l.Valid {
		text = l.Instruction.String()
	}
	return fmt.Sprintf("$%04X  %-8s  %s", l.Addr, strings.Join(hex, " "), text)
}

// Disassemble decodes count instructions starting at from. Unsupported
// opcodes produce a single byte line and decoding continues after it.
func Disassemble(m memory.Memory, from uint16, count int) []Line {
	lines := make([]Line, 0, count)
	addr := from
	for i := 0; i < count; i++ {
		line := Line{Addr: addr}
		inst, err := Decode(m, addr)
		size := uint16(1)
		if err == nil {
			line.Instruction = inst
			line.Valid = true
			size = inst.Size()
		}
		for j := uint16(0); j < size; j++ {
			line.Bytes = append(line.Bytes, m.Read(addr+j))
		}
		lines = append(lines, line)
		addr += size
	}
	return lines
}
