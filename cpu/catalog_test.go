package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leksak/kilobyte-sub000/machinecode"
)

func TestCatalogRoundTrip(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for proto := range Prototypes() {
		count++

		inst, err := Parse(proto.Example)
		if !assert.NoError(err, proto.Name) {
			continue
		}
		assert.Equal(proto.Name, inst.Name())
		assert.Equal(VALIDITY_VALID, inst.Validity(), proto.Name)

		decoded, err := Decode(inst.Word())
		assert.NoError(err, proto.Name)
		assert.Equal(inst, decoded, proto.Name)
		assert.True(inst.Equal(decoded), proto.Name)

		again, err := Parse(decoded.String())
		assert.NoError(err, proto.Name)
		assert.Equal(inst, again, proto.Name)
	}

	assert.Greater(count, 80)
}

func TestCatalogWidths(t *testing.T) {
	assert := assert.New(t)

	for _, format := range []Format{FORMAT_R, FORMAT_I, FORMAT_J, FORMAT_EXIT} {
		widths, err := format.Widths()
		assert.NoError(err, format.String())
		assert.NoError(machinecode.CheckWidths(widths...), format.String())
	}

	_, err := Format(9).Widths()
	assert.ErrorIs(err, ErrFormatInvalid)
}

func TestDecodeWords(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word uint32
		text string
	}){
		{0x014b4820, "add $t1, $t2, $t3"},
		{0x014b4822, "sub $t1, $t2, $t3"},
		{0x014b4824, "and $t1, $t2, $t3"},
		{0x014b4825, "or $t1, $t2, $t3"},
		{0x014b4827, "nor $t1, $t2, $t3"},
		{0x014b482a, "slt $t1, $t2, $t3"},
		{0x000a4882, "srl $t1, $t2, 2"},
		{0x000a4a80, "sll $t1, $t2, 10"},
		{0x01200008, "jr $t1"},
		{0x01404809, "jalr $t1, $t2"},
		{0x00004810, "mfhi $t1"},
		{0x01200011, "mthi $t1"},
		{0x012a0018, "mult $t1, $t2"},
		{0x0000000c, "syscall"},
		{0x05200005, "bltz $t1, 5"},
		{0x05210005, "bgez $t1, 5"},
		{0x08000004, "j 4"},
		{0x0c000004, "jal 4"},
		{0x112a0004, "beq $t1, $t2, 4"},
		{0x21490004, "addi $t1, $t2, 4"},
		{0x35490004, "ori $t1, $t2, 4"},
		{0x3c090004, "lui $t1, 4"},
		{0x712a0000, "madd $t1, $t2"},
		{0x70821002, "mul $v0, $a0, $v0"},
		{0x71404820, "clz $t1, $t2"},
		{0x81490007, "lb $t1, 7($t2)"},
		{0x8d49000a, "lw $t1, 10($t2)"},
		{0xafbf0004, "sw $ra, 4($sp)"},
		{0xcfa10002, "pref 1, 2($sp)"},
		{0x23bdfff8, "addi $sp, $sp, -8"},
		{0xffffffff, "exit"},
		{0x00000000, "nop"},
	}

	for _, entry := range table {
		inst, err := Decode(entry.word)
		assert.NoError(err, entry.text)
		assert.Equal(entry.text, inst.String())
		assert.False(inst.PartiallyValid(), entry.text)

		parsed, err := Parse(entry.text)
		assert.NoError(err, entry.text)
		assert.Equal(entry.word, parsed.Word(), entry.text)
		assert.Equal(inst, parsed, entry.text)
	}
}

func TestDecodeNop(t *testing.T) {
	assert := assert.New(t)

	inst, err := Decode(0)
	assert.NoError(err)
	assert.Equal("nop", inst.Name())
	assert.Equal(Nop(), inst)
	assert.Equal(FORMAT_R, inst.Format())

	// sll with any non-zero field is still sll
	inst, err = Decode(0x00000040)
	assert.NoError(err)
	assert.Equal("sll", inst.Name())
}

func TestDecodeFields(t *testing.T) {
	assert := assert.New(t)

	inst, err := Decode(0x014b4820)
	assert.NoError(err)
	assert.Equal(TYPE_ARITHMETIC, inst.Type())
	assert.Equal([]uint32{0, 10, 11, 9, 0, 0x20}, inst.Fields())
	assert.Equal(uint32(10), inst.Rs())
	assert.Equal(uint32(11), inst.Rt())
	assert.Equal(uint32(9), inst.Rd())

	inst, err = Decode(0x8d49000a)
	assert.NoError(err)
	assert.Equal(FORMAT_I, inst.Format())
	assert.Equal(TYPE_LOAD_STORE, inst.Type())
	assert.Equal([]uint32{0x23, 10, 9, 10}, inst.Fields())

	inst, err = Decode(0x08000004)
	assert.NoError(err)
	assert.Equal(FORMAT_J, inst.Format())
	assert.Equal([]uint32{2, 4}, inst.Fields())

	assert.Nil(Instruction{}.Fields())
}

func TestRegisterAlias(t *testing.T) {
	assert := assert.New(t)

	named, err := Parse("add $t1, $t2, $t3")
	assert.NoError(err)

	numbered, err := Parse("add $9, $10, $11")
	assert.NoError(err)

	assert.Equal(named, numbered)
	assert.True(named.Equal(numbered))

	other, err := Parse("add $t1, $t2, $t4")
	assert.NoError(err)
	assert.False(named.Equal(other))
}

func TestSignExtension(t *testing.T) {
	assert := assert.New(t)

	parsed, err := Parse("addi $sp, $sp, -8")
	assert.NoError(err)

	decoded, err := Decode(0x23bdfff8)
	assert.NoError(err)

	assert.Equal(parsed, decoded)
	assert.Equal(int32(-8), decoded.SignedImmediate())
	assert.Equal(int32(-8), decoded.ExtendedImmediate())
	assert.Equal(uint32(0xfff8), decoded.Immediate())

	ori, err := Parse("ori $t1, $t2, 0xfff8")
	assert.NoError(err)
	assert.Equal(int32(0xfff8), ori.ExtendedImmediate())
	assert.Equal(int32(-8), ori.SignedImmediate())
}

func TestPartiallyValid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name        string
		word        uint32
		diagnostics []string
	}){
		{"add", 0x014b48e0, []string{"expected shamt to be zero, got 3"}},
		{"jalr", 0x01444809, []string{"expected rt to be zero, got 4"}},
		{"jr", 0x012a4888, []string{"expected rt to be zero, got 10", "expected rd to be zero, got 9", "expected shamt to be zero, got 2"}},
		{"lui", 0x3d490004, []string{"expected rs to be zero, got 10"}},
		{"blez", 0x19490004, []string{"expected rt to be zero, got 9"}},
	}

	for _, entry := range table {
		inst, err := Decode(entry.word)
		assert.NoError(err, entry.name)
		assert.Equal(entry.name, inst.Name())
		assert.True(inst.PartiallyValid(), entry.name)
		assert.Equal(VALIDITY_PARTIAL, inst.Validity(), entry.name)
		assert.Equal(entry.diagnostics, inst.Diagnostics(), entry.name)
		assert.Equal(entry.word, inst.Word(), entry.name)
	}

	// REGIMM selects with rt, which is therefore never unused.
	inst, err := Decode(0x05210005)
	assert.NoError(err)
	assert.False(inst.PartiallyValid())

	// Unused fields do not take part in equality.
	equal := [](struct {
		text  string
		extra uint32
	}){
		{"jr $t1", 4 << 16},
		{"jr $t1", 10<<16 | 9<<11 | 2<<6},
		{"add $t1, $t2, $t3", 3 << 6},
		{"lui $t1, 4", 10 << 21},
		{"blez $t2, 4", 9 << 16},
	}

	for _, entry := range equal {
		clean, err := Parse(entry.text)
		require.NoError(t, err, entry.text)

		partial, err := Decode(clean.Word() | entry.extra)
		assert.NoError(err, entry.text)
		assert.True(partial.PartiallyValid(), entry.text)
		assert.Equal(entry.text, partial.String())
		assert.True(partial.Equal(clean), entry.text)
		assert.True(clean.Equal(partial), entry.text)
	}

	// Argument values still count.
	one, _ := Parse("jr $t1")
	two, _ := Parse("jr $t2")
	assert.False(one.Equal(two))

	base, _ := Parse("lw $t1, 4($t2)")
	other, _ := Parse("lw $t1, 4($t3)")
	assert.False(base.Equal(other))

	// REGIMM selectors are distinct instructions.
	bltz, _ := Decode(0x05200005)
	bgez, _ := Decode(0x05210005)
	assert.False(bltz.Equal(bgez))
}

func TestParseZeroWord(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"sll $zero, $zero, 0", "nop", "sll $0, $0, 0x0"} {
		parsed, err := Parse(text)
		assert.NoError(err, text)
		assert.Equal(WORD_NOP, parsed.Word(), text)
		assert.Equal(Nop(), parsed, text)

		decoded, err := Decode(parsed.Word())
		assert.NoError(err, text)
		assert.Equal(parsed, decoded, text)
		assert.True(decoded.Equal(parsed), text)
	}

	// A non-zero shift is still a shift.
	parsed, err := Parse("sll $zero, $zero, 1")
	assert.NoError(err)
	assert.Equal("sll", parsed.Name())
}

func TestDecodeUnknown(t *testing.T) {
	assert := assert.New(t)

	table := []uint32{
		0xfc000000, // opcode 0x3f, not exit
		0x00000001, // SPECIAL funct 1
		0x04040000, // REGIMM rt 4
		0x70000003, // SPECIAL2 funct 3
		0x44000000, // COP1
	}

	for _, word := range table {
		inst, err := Decode(word)
		assert.ErrorIs(err, ErrInstructionUnknown, "0x%08x", word)
		assert.Equal(ErrNoSuchInstruction{Word: word}, err)
		assert.Equal(VALIDITY_UNKNOWN, inst.Validity())
		assert.Equal("", inst.Name())
	}

	_, err := Parse("frob $t1, $t2")
	assert.ErrorIs(err, ErrInstructionUnknown)
	assert.NotErrorIs(err, ErrMnemonicMalformed)
}

func TestLookupName(t *testing.T) {
	assert := assert.New(t)

	proto, ok := LookupName("lw")
	require.True(t, ok)
	assert.Equal(OPCODE_LW, proto.Opcode)
	assert.Equal(2, proto.Arity())
	assert.True(proto.Uses(FIELD_OFFSET))
	assert.False(proto.Uses(FIELD_RD))

	_, ok = LookupName("LW")
	assert.False(ok)
}
