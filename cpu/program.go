package cpu

import (
	"iter"
)

// Statement is one line of a program listing.
type Statement struct {
	LineNo      int         // Source line number, from 1.
	Text        string      // Source text.
	Instruction Instruction // Decoded instruction.
}

// Program is an ordered list of statements, loaded from address 0.
type Program struct {
	Statements []Statement
}

// Instructions returns the program in load order.
func (prog *Program) Instructions() (insts []Instruction) {
	insts = make([]Instruction, 0, len(prog.Statements))
	for _, stmt := range prog.Statements {
		insts = append(insts, stmt.Instruction)
	}

	return
}

// Binary returns the machine words of the program.
func (prog *Program) Binary() (words []uint32) {
	for _, stmt := range prog.Listing() {
		words = append(words, stmt.Instruction.Word())
	}

	return
}

// Listing iterates over the statements by byte address.
func (prog *Program) Listing() iter.Seq2[uint32, Statement] {
	return func(yield func(uint32, Statement) bool) {
		for n, stmt := range prog.Statements {
			if !yield(uint32(n*WORD_SIZE), stmt) {
				return
			}
		}
	}
}

// LineNo returns the source line of the statement at a byte address,
// or 0 if there is none.
func (prog *Program) LineNo(address uint32) int {
	index := int(address / WORD_SIZE)
	if address%WORD_SIZE != 0 || index >= len(prog.Statements) {
		return 0
	}

	return prog.Statements[index].LineNo
}
