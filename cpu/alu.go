package cpu

// AluOp is an ALU operation.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_AND = AluOp(0) // and
	ALU_OR  = AluOp(1) // or
	ALU_ADD = AluOp(2) // add
	ALU_SUB = AluOp(3) // sub
	ALU_SLT = AluOp(4) // slt
	ALU_NOR = AluOp(5) // nor
	ALU_SRL = AluOp(6) // srl
	ALU_SRA = AluOp(7) // sra
	ALU_SLL = AluOp(8) // sll
)

// R-format operations, by funct, for ALUOp 10.
var _alu_funct = map[uint32]AluOp{
	FUNCT_SLL:  ALU_SLL,
	FUNCT_SRL:  ALU_SRL,
	FUNCT_SRA:  ALU_SRA,
	FUNCT_ADD:  ALU_ADD,
	FUNCT_ADDU: ALU_ADD,
	FUNCT_SUB:  ALU_SUB,
	FUNCT_SUBU: ALU_SUB,
	FUNCT_AND:  ALU_AND,
	FUNCT_OR:   ALU_OR,
	FUNCT_NOR:  ALU_NOR,
	FUNCT_SLT:  ALU_SLT,
}

// I-format operations, by opcode, for ALUOp 10.
var _alu_immediate = map[uint32]AluOp{
	OPCODE_SLTI: ALU_SLT,
	OPCODE_ANDI: ALU_AND,
	OPCODE_ORI:  ALU_OR,
}

// AluSelect picks the ALU operation for a control vector. The funct is
// only consulted for R-format opcodes.
func AluSelect(ctl Control, opcode uint32, funct uint32) (op AluOp, err error) {
	var ok bool

	switch ctl.AluOp() {
	case 0b00:
		op = ALU_ADD
	case 0b01:
		op = ALU_SUB
	case 0b10:
		if opcode == OPCODE_SPECIAL {
			op, ok = _alu_funct[funct]
			if !ok {
				err = ErrFunct(funct)
			}
		} else {
			op, ok = _alu_immediate[opcode]
			if !ok {
				err = ErrOpcode(opcode)
			}
		}
	default:
		err = ErrOpcode(opcode)
	}

	return
}

// Apply the operation. Shifts take the value in a and the amount in b.
func (op AluOp) Apply(a, b int32) (result int32) {
	shift := uint32(b) & 0x1f

	switch op {
	case ALU_AND:
		result = a & b
	case ALU_OR:
		result = a | b
	case ALU_ADD:
		result = a + b
	case ALU_SUB:
		result = a - b
	case ALU_SLT:
		if a < b {
			result = 1
		}
	case ALU_NOR:
		result = ^(a | b)
	case ALU_SRL:
		result = int32(uint32(a) >> shift)
	case ALU_SRA:
		result = a >> shift
	case ALU_SLL:
		result = a << shift
	default:
		panic("unknown ALU operation")
	}

	return
}
