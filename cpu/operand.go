package cpu

import "fmt"

// Index names the register added by an indexed addressing mode.
type Index uint8

const (
	X Index = iota
	Y
)

func (i Index) String() string {
	if i == Y {
		return "Y"
	}
	return "X"
}

// Operand is the decoded addressing mode of an instruction together with
// its operand bytes. The set of implementations is closed.
type Operand interface {
	fmt.Stringer

	// size is the number of operand bytes following the opcode.
	size() uint16
}

type (
	// Accumulator operates on A.
	Accumulator struct{}

	// Implied takes no operand.
	Implied struct{}

	// Immediate is a literal byte.
	Immediate uint8

	// Relative is a signed branch offset from the next instruction.
	Relative int8

	// Absolute is a full 16 bit address.
	Absolute uint16

	// ZeroPage is an address in page zero.
	ZeroPage uint8

	// Indirect is the address of a pointer, used only by JMP.
	Indirect uint16

	// AbsoluteIndexed is Addr plus X or Y.
	AbsoluteIndexed struct {
		Addr  uint16
		Index Index
	}

	// ZeroPageIndexed is Addr plus X or Y, wrapping within page zero.
	ZeroPageIndexed struct {
		Addr  uint8
		Index Index
	}

	// IndexedIndirect is the pointer at zero page (operand + X).
	IndexedIndirect uint8

	// IndirectIndexed is the pointer at zero page operand, plus Y.
	IndirectIndexed uint8
)

func (Accumulator) String() string { return "a" }
func (Implied) String() string     { return "" }

func (o Immediate) String() string { return fmt.Sprintf("#$%02x", uint8(o)) }

// Relative offsets are shown from the address of the branch itself.
func (o Relative) String() string { return fmt.Sprintf("*%+d", int(o)+2) }

func (o Absolute) String() string { return fmt.Sprintf("$%04x", uint16(o)) }
func (o ZeroPage) String() string { return fmt.Sprintf("$%02x", uint8(o)) }
func (o Indirect) String() string { return fmt.Sprintf("($%04x)", uint16(o)) }

func (o AbsoluteIndexed) String() string { return fmt.Sprintf("$%04x,%s", o.Addr, o.Index) }
func (o ZeroPageIndexed) String() string { return fmt.Sprintf("$%02x,%s", o.Addr, o.Index) }

func (o IndexedIndirect) String() string { return fmt.Sprintf("($%02x,X)", uint8(o)) }
func (o IndirectIndexed) String() string { return fmt.Sprintf("($%02x),Y", uint8(o)) }

func (Accumulator) size() uint16     { return 0 }
func (Implied) size() uint16         { return 0 }
func (Immediate) size() uint16       { return 1 }
func (Relative) size() uint16        { return 1 }
func (Absolute) size() uint16        { return 2 }
func (ZeroPage) size() uint16        { return 1 }
func (Indirect) size() uint16        { return 2 }
func (AbsoluteIndexed) size() uint16 { return 2 }
func (ZeroPageIndexed) size() uint16 { return 1 }
func (IndexedIndirect) size() uint16 { return 1 }
func (IndirectIndexed) size() uint16 { return 1 }
