package cpu

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leksak/kilobyte-sub000/machinecode"
)

// Instruction is a decoded machine word. The zero value is unknown.
type Instruction struct {
	proto       *Prototype
	word        uint32
	diagnostics []string
}

// Nop returns the no-op instruction.
func Nop() Instruction {
	return Instruction{proto: _nop, word: WORD_NOP}
}

// Exit returns the halt instruction.
func Exit() Instruction {
	return Instruction{proto: _exit, word: WORD_EXIT}
}

// Decode builds an instruction from its machine word.
func Decode(word uint32) (inst Instruction, err error) {
	proto := lookup(word)
	if proto == nil {
		err = ErrNoSuchInstruction{Word: word}
		return
	}

	inst = Instruction{
		proto:       proto,
		word:        word,
		diagnostics: unused(proto, word),
	}

	return
}

// unused describes every field that the prototype leaves unused but
// which is not zero in the word.
func unused(proto *Prototype, word uint32) (diagnostics []string) {
	type slot struct {
		name  string
		value uint32
		used  bool
	}

	var slots []slot
	switch proto.Format {
	case FORMAT_R:
		if proto == _nop {
			return
		}
		slots = []slot{
			{"rs", machinecode.Rs(word), proto.Uses(FIELD_RS)},
			{"rt", machinecode.Rt(word), proto.Uses(FIELD_RT)},
			{"rd", machinecode.Rd(word), proto.Uses(FIELD_RD)},
			{"shamt", machinecode.Shamt(word), proto.Uses(FIELD_SHAMT)},
		}
	case FORMAT_I:
		slots = []slot{
			{"rs", machinecode.Rs(word), proto.Uses(FIELD_RS) || proto.Uses(FIELD_OFFSET)},
			{"rt", machinecode.Rt(word), proto.Uses(FIELD_RT) || proto.Uses(FIELD_HINT) ||
				proto.Opcode == OPCODE_REGIMM},
		}
	}

	for _, s := range slots {
		if !s.used && s.value != 0 {
			diagnostics = append(diagnostics, f("expected %v to be zero, got %d", s.name, s.value))
		}
	}

	return
}

// Name is the mnemonic name.
func (inst Instruction) Name() string {
	if inst.proto == nil {
		return ""
	}
	return inst.proto.Name
}

// Word is the 32-bit machine encoding.
func (inst Instruction) Word() uint32 {
	return inst.word
}

// Prototype is the catalog entry, or nil for an unknown instruction.
func (inst Instruction) Prototype() *Prototype {
	return inst.proto
}

func (inst Instruction) Format() Format {
	if inst.proto == nil {
		return Format(-1)
	}
	return inst.proto.Format
}

func (inst Instruction) Type() Type {
	if inst.proto == nil {
		return Type(-1)
	}
	return inst.proto.Type
}

// Validity of the instruction.
func (inst Instruction) Validity() Validity {
	switch {
	case inst.proto == nil:
		return VALIDITY_UNKNOWN
	case len(inst.diagnostics) != 0:
		return VALIDITY_PARTIAL
	}
	return VALIDITY_VALID
}

// PartiallyValid is true when a known instruction has non-zero unused fields.
func (inst Instruction) PartiallyValid() bool {
	return inst.Validity() == VALIDITY_PARTIAL
}

// Diagnostics lists the unused-field violations of a partially valid instruction.
func (inst Instruction) Diagnostics() []string {
	return slices.Clone(inst.diagnostics)
}

// Fields decomposes the word with the instruction's format.
func (inst Instruction) Fields() (fields []uint32) {
	widths, err := inst.Format().Widths()
	if err != nil {
		return
	}

	fields, _ = machinecode.Decompose(inst.word, widths...)

	return
}

func (inst Instruction) Opcode() uint32 {
	return machinecode.Opcode(inst.word)
}

func (inst Instruction) Rs() uint32 {
	return machinecode.Rs(inst.word)
}

func (inst Instruction) Rt() uint32 {
	return machinecode.Rt(inst.word)
}

func (inst Instruction) Rd() uint32 {
	return machinecode.Rd(inst.word)
}

func (inst Instruction) Shamt() uint32 {
	return machinecode.Shamt(inst.word)
}

func (inst Instruction) Funct() uint32 {
	return machinecode.Funct(inst.word)
}

func (inst Instruction) Immediate() uint32 {
	return machinecode.Immediate(inst.word)
}

func (inst Instruction) Target() uint32 {
	return machinecode.Target(inst.word)
}

// SignedImmediate is the immediate field, sign-extended.
func (inst Instruction) SignedImmediate() int32 {
	return machinecode.SignExtend16(inst.word)
}

// ExtendedImmediate is the immediate as the ALU sees it: zero-extended
// for the logical immediates, sign-extended otherwise.
func (inst Instruction) ExtendedImmediate() int32 {
	if inst.proto != nil && inst.proto.Unsigned {
		return int32(inst.Immediate())
	}
	return inst.SignedImmediate()
}

// Value of a mnemonic argument field. FIELD_OFFSET is the offset
// immediate; its base register is FIELD_RS.
func (inst Instruction) Value(field Field) uint32 {
	switch field {
	case FIELD_RS:
		return inst.Rs()
	case FIELD_RT, FIELD_HINT:
		return inst.Rt()
	case FIELD_RD:
		return inst.Rd()
	case FIELD_SHAMT:
		return inst.Shamt()
	case FIELD_IMMEDIATE, FIELD_OFFSET:
		return inst.Immediate()
	case FIELD_TARGET:
		return inst.Target()
	}
	return 0
}

// Equal compares by name and canonical argument values. Unused fields
// of a partially valid instruction are ignored.
func (inst Instruction) Equal(other Instruction) bool {
	if inst.proto != other.proto {
		return false
	}

	if inst.proto == nil {
		return inst.word == other.word
	}

	for _, field := range inst.proto.Pattern {
		if inst.Value(field) != other.Value(field) {
			return false
		}
		if field == FIELD_OFFSET && inst.Rs() != other.Rs() {
			return false
		}
	}

	return true
}

// String renders the canonical mnemonic.
func (inst Instruction) String() string {
	if inst.proto == nil {
		return fmt.Sprintf("0x%08x", inst.word)
	}

	if len(inst.proto.Pattern) == 0 {
		return inst.proto.Name
	}

	args := make([]string, 0, len(inst.proto.Pattern))
	for _, field := range inst.proto.Pattern {
		var arg string
		switch field {
		case FIELD_RS:
			arg = RegisterName(inst.Rs())
		case FIELD_RT:
			arg = RegisterName(inst.Rt())
		case FIELD_RD:
			arg = RegisterName(inst.Rd())
		case FIELD_SHAMT:
			arg = fmt.Sprintf("%d", inst.Shamt())
		case FIELD_IMMEDIATE:
			arg = fmt.Sprintf("%d", inst.ExtendedImmediate())
		case FIELD_OFFSET:
			arg = fmt.Sprintf("%d(%v)", inst.SignedImmediate(), RegisterName(inst.Rs()))
		case FIELD_TARGET:
			arg = fmt.Sprintf("%d", inst.Target())
		case FIELD_HINT:
			arg = fmt.Sprintf("%d", inst.Rt())
		}
		args = append(args, arg)
	}

	return inst.proto.Name + " " + strings.Join(args, ", ")
}
