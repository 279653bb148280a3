package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nes-emu/memory"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		inst     Instruction
		expected string
		size     uint16
	}{
		{Instruction{ADC, Immediate(0x34)}, "adc #$34", 2},
		{Instruction{JMP, Indirect(0x0034)}, "jmp ($0034)", 3},
		{Instruction{ADC, IndirectIndexed(0x34)}, "adc ($34),Y", 2},
		{Instruction{STA, IndexedIndirect(0x20)}, "sta ($20,X)", 2},
		{Instruction{ASL, Accumulator{}}, "asl a", 1},
		{Instruction{NOP, Implied{}}, "nop", 1},
		{Instruction{LDA, AbsoluteIndexed{0x1234, X}}, "lda $1234,X", 3},
		{Instruction{LDX, ZeroPageIndexed{0x10, Y}}, "ldx $10,Y", 2},
		{Instruction{BIT, ZeroPage(0x02)}, "bit $02", 2},
		{Instruction{JSR, Absolute(0xC000)}, "jsr $c000", 3},
		{Instruction{BNE, Relative(3)}, "bne *+5", 2},
		{Instruction{BEQ, Relative(-4)}, "beq *-2", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.inst.String())
		assert.Equal(t, tt.size, tt.inst.Size(), tt.expected)
	}
}

func TestOpcodeTable(t *testing.T) {
	official := 0
	for _, entry := range opcodes {
		if entry.op != 0 {
			official++
			assert.NotNil(t, operations[entry.op], entry.op.String())
		}
	}
	assert.Equal(t, 151, official)
}

func TestDecode(t *testing.T) {
	ram := memory.NewRam(0x10000)
	copy(ram.Bytes()[0x0600:], []uint8{0xBE, 0x34, 0x12})

	inst, err := Decode(ram, 0x0600)
	require.NoError(t, err)
	assert.Equal(t, Instruction{LDX, AbsoluteIndexed{0x1234, Y}}, inst)
}

func TestDisassemble(t *testing.T) {
	ram := memory.NewRam(0x10000)
	copy(ram.Bytes()[0x8000:], []uint8{0xA9, 0x34, 0x6C, 0x34, 0x00, 0x71, 0x34, 0x02, 0xEA})

	lines := Disassemble(ram, 0x8000, 5)
	require.Len(t, lines, 5)

	assert.Equal(t, "$8000  A9 34     lda #$34", lines[0].String())
	assert.Equal(t, "$8002  6C 34 00  jmp ($0034)", lines[1].String())
	assert.Equal(t, "adc ($34),Y", lines[2].Instruction.String())
	assert.Equal(t, uint16(0x8005), lines[2].Addr)

	assert.False(t, lines[3].Valid)
	assert.Contains(t, lines[3].String(), ".byte $02")

	assert.True(t, lines[4].Valid)
	assert.Equal(t, uint16(0x8008), lines[4].Addr)
	assert.Equal(t, NOP, lines[4].Instruction.Op)
}
