package cpu

import (
	"fmt"
)

// CodeClass is the type of opcode class.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_LOAD    = CodeClass(0) // load
	OP_COMPUTE = CodeClass(1) // compute
)

// CodeComp is the 7-bit ALU computation field of a compute instruction.
// Bit 6 (the 'a' bit) selects M instead of A as the second operand.
type CodeComp int

const (
	COMP_ZERO      = CodeComp(0b0101010) // 0
	COMP_ONE       = CodeComp(0b0111111) // 1
	COMP_NEG_ONE   = CodeComp(0b0111010) // -1
	COMP_D         = CodeComp(0b0001100) // D
	COMP_A         = CodeComp(0b0110000) // A
	COMP_M         = CodeComp(0b1110000) // M
	COMP_NOT_D     = CodeComp(0b0001101) // !D
	COMP_NOT_A     = CodeComp(0b0110001) // !A
	COMP_NOT_M     = CodeComp(0b1110001) // !M
	COMP_NEG_D     = CodeComp(0b0001111) // -D
	COMP_NEG_A     = CodeComp(0b0110011) // -A
	COMP_NEG_M     = CodeComp(0b1110011) // -M
	COMP_D_PLUS_1  = CodeComp(0b0011111) // D+1
	COMP_A_PLUS_1  = CodeComp(0b0110111) // A+1
	COMP_M_PLUS_1  = CodeComp(0b1110111) // M+1
	COMP_D_MINUS_1 = CodeComp(0b0001110) // D-1
	COMP_A_MINUS_1 = CodeComp(0b0110010) // A-1
	COMP_M_MINUS_1 = CodeComp(0b1110010) // M-1
	COMP_D_PLUS_A  = CodeComp(0b0000010) // D+A
	COMP_D_PLUS_M  = CodeComp(0b1000010) // D+M
	COMP_D_MINUS_A = CodeComp(0b0010011) // D-A
	COMP_D_MINUS_M = CodeComp(0b1010011) // D-M
	COMP_A_MINUS_D = CodeComp(0b0000111) // A-D
	COMP_M_MINUS_D = CodeComp(0b1000111) // M-D
	COMP_D_AND_A   = CodeComp(0b0000000) // D&A
	COMP_D_AND_M   = CodeComp(0b1000000) // D&M
	COMP_D_OR_A    = CodeComp(0b0010101) // D|A
	COMP_D_OR_M    = CodeComp(0b1010101) // D|M

	COMP_READS_M = CodeComp(0b1000000)
	COMP_MASK    = CodeComp(0b1111111)
)

// compName maps every defined computation to its mnemonic.
var compName = map[CodeComp]string{
	COMP_ZERO:      "0",
	COMP_ONE:       "1",
	COMP_NEG_ONE:   "-1",
	COMP_D:         "D",
	COMP_A:         "A",
	COMP_M:         "M",
	COMP_NOT_D:     "!D",
	COMP_NOT_A:     "!A",
	COMP_NOT_M:     "!M",
	COMP_NEG_D:     "-D",
	COMP_NEG_A:     "-A",
	COMP_NEG_M:     "-M",
	COMP_D_PLUS_1:  "D+1",
	COMP_A_PLUS_1:  "A+1",
	COMP_M_PLUS_1:  "M+1",
	COMP_D_MINUS_1: "D-1",
	COMP_A_MINUS_1: "A-1",
	COMP_M_MINUS_1: "M-1",
	COMP_D_PLUS_A:  "D+A",
	COMP_D_PLUS_M:  "D+M",
	COMP_D_MINUS_A: "D-A",
	COMP_D_MINUS_M: "D-M",
	COMP_A_MINUS_D: "A-D",
	COMP_M_MINUS_D: "M-D",
	COMP_D_AND_A:   "D&A",
	COMP_D_AND_M:   "D&M",
	COMP_D_OR_A:    "D|A",
	COMP_D_OR_M:    "D|M",
}

// Valid returns true if the computation is one of the 28 defined entries.
func (comp CodeComp) Valid() bool {
	_, ok := compName[comp]
	return ok
}

// ReadsM returns true if the computation takes M as an operand.
func (comp CodeComp) ReadsM() bool {
	return comp&COMP_READS_M != 0
}

func (comp CodeComp) String() string {
	name, ok := compName[comp]
	if !ok {
		return fmt.Sprintf("CodeComp(0b%07b)", int(comp))
	}
	return name
}

// CodeDest is the destination flag set of a compute instruction.
type CodeDest int

//go:generate go tool stringer -linecomment -type=CodeDest
const (
	DEST_NULL = CodeDest(0) // null
	DEST_M    = CodeDest(1) // M
	DEST_D    = CodeDest(2) // D
	DEST_MD   = CodeDest(3) // MD
	DEST_A    = CodeDest(4) // A
	DEST_AM   = CodeDest(5) // AM
	DEST_AD   = CodeDest(6) // AD
	DEST_AMD  = CodeDest(7) // AMD
)

func (dest CodeDest) A() bool { return dest&DEST_A != 0 }
func (dest CodeDest) D() bool { return dest&DEST_D != 0 }
func (dest CodeDest) M() bool { return dest&DEST_M != 0 }

// CodeJump is the branch condition of a compute instruction.
type CodeJump int

//go:generate go tool stringer -linecomment -type=CodeJump
const (
	JUMP_NULL = CodeJump(0) // null
	JUMP_JGT  = CodeJump(1) // JGT
	JUMP_JEQ  = CodeJump(2) // JEQ
	JUMP_JGE  = CodeJump(3) // JGE
	JUMP_JLT  = CodeJump(4) // JLT
	JUMP_JNE  = CodeJump(5) // JNE
	JUMP_JLE  = CodeJump(6) // JLE
	JUMP_JMP  = CodeJump(7) // JMP
)

// Taken reports whether the branch is taken for an ALU result,
// interpreted as a 16-bit two's-complement value.
func (jump CodeJump) Taken(result uint16) bool {
	value := int16(result)

	switch jump {
	case JUMP_JGT:
		return value > 0
	case JUMP_JEQ:
		return value == 0
	case JUMP_JGE:
		return value >= 0
	case JUMP_JLT:
		return value < 0
	case JUMP_JNE:
		return value != 0
	case JUMP_JLE:
		return value <= 0
	case JUMP_JMP:
		return true
	}

	return false
}

// Code is a single 16-bit instruction word.
type Code uint16

const (
	CODE_COMPUTE = Code(0b111 << 13) // Compute prefix, as emitted by the assembler.
	CODE_CLASS   = Code(1 << 15)
	CODE_VALUE   = Code(VALUE_MAX)
	CODE_FIELDS  = Code(0x1fff) // comp, dest and jump.
)

// MakeCodeLoad creates an address-load instruction.
func MakeCodeLoad(value uint16) Code {
	return Code(value) & CODE_VALUE
}

// MakeCodeCompute creates a compute instruction.
func MakeCodeCompute(comp CodeComp, dest CodeDest, jump CodeJump) Code {
	return CODE_COMPUTE |
		(Code(comp&COMP_MASK) << 6) |
		(Code(dest&7) << 3) |
		(Code(jump&7) << 0)
}

// Class returns the instruction class from bit 15.
func (code Code) Class() CodeClass {
	if code&CODE_CLASS == 0 {
		return OP_LOAD
	}
	return OP_COMPUTE
}

// Value returns the unsigned 15-bit literal of an address-load instruction.
func (code Code) Value() uint16 {
	return uint16(code & CODE_VALUE)
}

// ComputeDecode decodes and returns the computation, destination and jump
// fields. Bits 14 and 13 are ignored.
func (code Code) ComputeDecode() (comp CodeComp, dest CodeDest, jump CodeJump) {
	word := uint16(code)
	comp = CodeComp((word >> 6) & 0x7f)
	dest = CodeDest((word >> 3) & 0x7)
	jump = CodeJump((word >> 0) & 0x7)
	return
}

// Fields returns the 13 comp/dest/jump bits, a dense index for
// per-instruction lookup tables.
func (code Code) Fields() int {
	return int(code & CODE_FIELDS)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	if code.Class() == OP_LOAD {
		return fmt.Sprintf("@%d", code.Value())
	}

	comp, dest, jump := code.ComputeDecode()
	if dest != DEST_NULL {
		out = dest.String() + "="
	}
	out += comp.String()
	if jump != JUMP_NULL {
		out += ";" + jump.String()
	}

	return
}

// Binary returns the 16 character textual binary form of the word.
func (code Code) Binary() string {
	return fmt.Sprintf("%016b", uint16(code))
}
