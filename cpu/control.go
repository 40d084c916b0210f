package cpu

import (
	"fmt"
)

// Control is the datapath control signal vector for one cycle.
type Control struct {
	RegDst   bool // Write back to rd rather than rt.
	AluSrc   bool // Second ALU operand is the extended immediate.
	MemToReg bool // Write back from data memory.
	RegWrite bool // Write back enabled.
	MemRead  bool // Data memory read.
	MemWrite bool // Data memory write.
	Branch   bool // Branch when the ALU result is zero.
	AluOp1   bool // ALU operation family, high bit.
	AluOp0   bool // ALU operation family, low bit.
}

var (
	_control_r         = Control{RegDst: true, RegWrite: true, AluOp1: true}
	_control_load      = Control{AluSrc: true, MemToReg: true, RegWrite: true, MemRead: true}
	_control_store     = Control{AluSrc: true, MemWrite: true}
	_control_branch    = Control{Branch: true, AluOp0: true}
	_control_add_imm   = Control{AluSrc: true, RegWrite: true}
	_control_logic_imm = Control{AluSrc: true, RegWrite: true, AluOp1: true}
)

var _control_table = map[uint32]Control{
	OPCODE_SPECIAL: _control_r,
	OPCODE_LW:      _control_load,
	OPCODE_SW:      _control_store,
	OPCODE_BEQ:     _control_branch,
	OPCODE_ADDI:    _control_add_imm,
	OPCODE_ADDIU:   _control_add_imm,
	OPCODE_SLTI:    _control_logic_imm,
	OPCODE_ANDI:    _control_logic_imm,
	OPCODE_ORI:     _control_logic_imm,
	OPCODE_J:       {},
}

// ControlFor derives the control signals of an opcode.
func ControlFor(opcode uint32) (ctl Control, err error) {
	ctl, ok := _control_table[opcode]
	if !ok {
		err = ErrOpcode(opcode)
	}

	return
}

// AluOp is the two-bit ALU family selector.
func (ctl Control) AluOp() (op uint32) {
	if ctl.AluOp1 {
		op |= 0b10
	}
	if ctl.AluOp0 {
		op |= 0b01
	}
	return
}

func (ctl Control) String() string {
	bit := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	return fmt.Sprintf("RegDst=%d ALUSrc=%d MemToReg=%d RegWrite=%d MemRead=%d MemWrite=%d Branch=%d ALUOp=%02b",
		bit(ctl.RegDst), bit(ctl.AluSrc), bit(ctl.MemToReg), bit(ctl.RegWrite),
		bit(ctl.MemRead), bit(ctl.MemWrite), bit(ctl.Branch), ctl.AluOp())
}
