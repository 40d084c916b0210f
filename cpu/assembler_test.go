package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leksak/kilobyte-sub000/machinecode"
)

func TestParseSpelling(t *testing.T) {
	assert := assert.New(t)

	canonical, err := Parse("add $t1, $t2, $t3")
	assert.NoError(err)

	for _, text := range []string{
		"add $t1,$t2,$t3",
		"  add   $t1 ,$t2,   $t3  ",
		"add\t$t1, $t2, $t3",
		"ADD $T1, $T2, $T3",
		"add $9, $t2, $11",
	} {
		inst, err := Parse(text)
		assert.NoError(err, text)
		assert.Equal(canonical, inst, text)
	}

	for _, pair := range [][2]string{
		{"lw $t1, 0($t2)", "lw $t1, ($t2)"},
		{"lw $t1, 16($t2)", "lw $t1, 0x10($t2)"},
		{"lw $t1, -4($t2)", "lw $t1, -0b100 ( $t2 )"},
		{"addi $t1, $t2, 10", "addi $t1, $t2, 0d10"},
		{"j 255", "j 0XFF"},
	} {
		a, err := Parse(pair[0])
		assert.NoError(err, pair[0])
		b, err := Parse(pair[1])
		assert.NoError(err, pair[1])
		assert.Equal(a, b, pair[1])
	}
}

func TestParseMalformed(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text     string
		err      error
		fragment string
	}){
		{"", ErrMnemonicMissing, ""},
		{"   ", ErrMnemonicMissing, ""},
		{"add $t1, $t2", ErrMnemonicArgCount, "$t1, $t2"},
		{"add $t1, $t2, $t3, $t4", ErrMnemonicArgCount, "$t1, $t2, $t3, $t4"},
		{"add $t1,, $t3", ErrMnemonicArgCount, "$t1,, $t3"},
		{"add $t1, $t2, $t3,", ErrMnemonicArgCount, "$t1, $t2, $t3,"},
		{"nop $t1", ErrMnemonicArgCount, "$t1"},
		{"add $t1; $t2, $t3", ErrMnemonicCharacters, ";"},
		{"add $t1, $t2, #3", ErrMnemonicCharacters, "#"},
		{"add $t1, $t2, $t99", ErrRegisterInvalid, "$t99"},
		{"add $t1, $t2, t3", ErrRegisterInvalid, "t3"},
		{"add $t1, $32, $t3", ErrRegisterInvalid, "$32"},
		{"add $t1, ($t2), $t3", ErrMnemonicOffset, "($t2)"},
		{"lw $t1, 10($t2", ErrMnemonicOffset, "10($t2"},
		{"lw $t1, 10$t2)", ErrMnemonicOffset, "10$t2)"},
		{"lw $t1, 10(($t2))", ErrMnemonicOffset, "10(($t2))"},
		{"lw $t1, 40000($t2)", ErrImmediateRange, "40000($t2)"},
		{"sll $t1, $t2, 32", ErrImmediateRange, "32"},
		{"addi $t1, $t2, 0x10000", ErrImmediateRange, "0x10000"},
		{"addi $t1, $t2, -32769", ErrImmediateRange, "-32769"},
		{"j -1", ErrImmediateRange, "-1"},
		{"j 0x4000000", ErrImmediateRange, "0x4000000"},
		{"addi $t1, $t2, abc", machinecode.ErrParseNumber("abc"), "abc"},
	}

	for _, entry := range table {
		_, err := Parse(entry.text)
		assert.ErrorIs(err, ErrMnemonicMalformed, entry.text)
		assert.ErrorIs(err, entry.err, entry.text)

		var mnemonic ErrMnemonic
		if assert.True(errors.As(err, &mnemonic), entry.text) {
			assert.Equal(entry.fragment, mnemonic.Fragment, entry.text)
			assert.Equal(entry.text, mnemonic.Text)
		}
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	listing := []string{
		"addi $t1, $zero, 10",
		"",
		"  addi $t2, $zero, 12",
		"add $t0, $t1, $t2",
		"\t",
		"sw $t0, 0($zero)",
		"exit",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(listing, "\n")))
	assert.NoError(err)
	assert.Len(prog.Statements, 5)

	lines := []int{}
	for _, stmt := range prog.Statements {
		lines = append(lines, stmt.LineNo)
	}
	assert.Equal([]int{1, 3, 4, 6, 7}, lines)
	assert.Equal("addi $t2, $zero, 12", prog.Statements[1].Text)

	assert.Equal([]uint32{0x2009000a, 0x200a000c, 0x012a4020, 0xac080000, 0xffffffff}, prog.Binary())
	assert.Len(prog.Instructions(), 5)

	assert.Equal(4, prog.LineNo(8))
	assert.Equal(0, prog.LineNo(9))
	assert.Equal(0, prog.LineNo(20))

	addresses := []uint32{}
	for address := range prog.Listing() {
		addresses = append(addresses, address)
	}
	assert.Equal([]uint32{0, 4, 8, 12, 16}, addresses)
}

func TestAssemblerSyntax(t *testing.T) {
	assert := assert.New(t)

	listing := "nop\n\nadd $t1, $t2\nnop\n"

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(listing))

	var syntax ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(3, syntax.LineNo)
	assert.Equal("add $t1, $t2", syntax.Line)
	assert.ErrorIs(err, ErrMnemonicArgCount)
}

func TestDisassembler(t *testing.T) {
	assert := assert.New(t)

	listing := "0x014b4820\n\n 0b0 \n-1\n0x01404809\n"

	dis := &Disassembler{}
	prog, err := dis.Parse(strings.NewReader(listing))
	assert.NoError(err)
	assert.Len(prog.Statements, 4)

	names := []string{}
	for _, stmt := range prog.Statements {
		names = append(names, stmt.Instruction.Name())
	}
	assert.Equal([]string{"add", "nop", "exit", "jalr"}, names)
	assert.Equal(5, prog.Statements[3].LineNo)

	_, err = dis.Parse(strings.NewReader("nop\n"))
	assert.ErrorIs(err, machinecode.ErrParseNumber("nop"))

	_, err = dis.Parse(strings.NewReader("0\n0xfc000000\n"))
	assert.ErrorIs(err, ErrInstructionUnknown)
	var syntax ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(2, syntax.LineNo)
}
