// Package cpu implements the instruction codec and single-cycle datapath
// of a MIPS subset.
//
// Instructions are decoded from 32-bit machine words (Decode) or from
// mnemonic text (Parse) against a fixed catalog of prototypes. The
// catalog covers the SPECIAL, SPECIAL2 and REGIMM opcode groups and the
// primary opcodes, plus two reserved words: 0x00000000 is always nop,
// and 0xffffffff is the exit instruction that halts the machine.
//
// The datapath (Cpu) fetches from instruction memory, derives control
// signals from the opcode, runs one ALU operation and commits the
// register or memory write and the new program counter. Only a subset
// of the catalog can be executed: nop, add, addu, sub, subu, and, or,
// nor, slt, sll, srl, sra, jr, lw, sw, beq, addi, addiu, slti, andi,
// ori, j and exit. Anything else decodes, but fails to execute with
// ErrOpcodeUnsupported.
//
// Branches are taken relative to the address of the branch itself, and
// jr adds the register value, in words, to the address of the jr.
package cpu
