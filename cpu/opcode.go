package cpu

import (
	"slices"
)

// Format is the bit field layout of an instruction word.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R    = Format(0) // R
	FORMAT_I    = Format(1) // I
	FORMAT_J    = Format(2) // J
	FORMAT_EXIT = Format(3) // exit
)

var _format_widths = map[Format][]uint{
	FORMAT_R:    {6, 5, 5, 5, 5, 6},
	FORMAT_I:    {6, 5, 5, 16},
	FORMAT_J:    {6, 26},
	FORMAT_EXIT: {32},
}

// Widths returns the field widths of the format, most significant first.
func (format Format) Widths() (widths []uint, err error) {
	widths, ok := _format_widths[format]
	if !ok {
		err = ErrFormatInvalid
		return
	}

	widths = slices.Clone(widths)

	return
}

// Type is the broad class of an instruction.
type Type int

//go:generate go tool stringer -linecomment -type=Type
const (
	TYPE_ARITHMETIC = Type(0) // arithmetic
	TYPE_SHIFT      = Type(1) // shift
	TYPE_BRANCH     = Type(2) // branch
	TYPE_JUMP       = Type(3) // jump
	TYPE_LOAD_STORE = Type(4) // load/store
	TYPE_SYSTEM     = Type(5) // system
	TYPE_TRAP       = Type(6) // trap
)

// Field is one argument slot of a mnemonic.
type Field int

//go:generate go tool stringer -linecomment -type=Field
const (
	FIELD_RS        = Field(0) // rs
	FIELD_RT        = Field(1) // rt
	FIELD_RD        = Field(2) // rd
	FIELD_SHAMT     = Field(3) // shamt
	FIELD_IMMEDIATE = Field(4) // immediate
	FIELD_OFFSET    = Field(5) // offset(rs)
	FIELD_TARGET    = Field(6) // target
	FIELD_HINT      = Field(7) // hint
)

// Validity of a decoded instruction.
type Validity int

//go:generate go tool stringer -linecomment -type=Validity
const (
	VALIDITY_UNKNOWN = Validity(0) // unknown
	VALIDITY_VALID   = Validity(1) // valid
	VALIDITY_PARTIAL = Validity(2) // partially valid
)

// Opcodes (bits 31..26).
const (
	OPCODE_SPECIAL  = uint32(0x00)
	OPCODE_REGIMM   = uint32(0x01)
	OPCODE_J        = uint32(0x02)
	OPCODE_JAL      = uint32(0x03)
	OPCODE_BEQ      = uint32(0x04)
	OPCODE_BNE      = uint32(0x05)
	OPCODE_ADDI     = uint32(0x08)
	OPCODE_ADDIU    = uint32(0x09)
	OPCODE_SLTI     = uint32(0x0a)
	OPCODE_ANDI     = uint32(0x0c)
	OPCODE_ORI      = uint32(0x0d)
	OPCODE_SPECIAL2 = uint32(0x1c)
	OPCODE_LW       = uint32(0x23)
	OPCODE_SW       = uint32(0x2b)
	OPCODE_EXIT     = uint32(0x3f)
)

// SPECIAL function codes (bits 5..0).
const (
	FUNCT_SLL  = uint32(0x00)
	FUNCT_SRL  = uint32(0x02)
	FUNCT_SRA  = uint32(0x03)
	FUNCT_JR   = uint32(0x08)
	FUNCT_ADD  = uint32(0x20)
	FUNCT_ADDU = uint32(0x21)
	FUNCT_SUB  = uint32(0x22)
	FUNCT_SUBU = uint32(0x23)
	FUNCT_AND  = uint32(0x24)
	FUNCT_OR   = uint32(0x25)
	FUNCT_NOR  = uint32(0x27)
	FUNCT_SLT  = uint32(0x2a)
)

// Reserved words.
const (
	WORD_NOP  = uint32(0x00000000)
	WORD_EXIT = uint32(0xffffffff)
)
