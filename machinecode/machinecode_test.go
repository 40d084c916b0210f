package machinecode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var layouts = [][]uint{
	{6, 5, 5, 5, 5, 6},
	{6, 5, 5, 16},
	{6, 26},
	{32},
	{1, 30, 1},
}

func TestDecompose(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		word   uint32
		widths []uint
		fields []uint32
	}){
		{"add", 0x014b4820, []uint{6, 5, 5, 5, 5, 6}, []uint32{0, 10, 11, 9, 0, 0x20}},
		{"addi", 0x23bdfff8, []uint{6, 5, 5, 16}, []uint32{8, 29, 29, 0xfff8}},
		{"j", 0x08000004, []uint{6, 26}, []uint32{2, 4}},
		{"ones", 0xffffffff, []uint{32}, []uint32{0xffffffff}},
	}

	for _, entry := range table {
		fields, err := Decompose(entry.word, entry.widths...)
		assert.NoError(err, entry.name)
		assert.Equal(entry.fields, fields, entry.name)

		word, err := Compose(entry.fields, entry.widths...)
		assert.NoError(err, entry.name)
		assert.Equal(entry.word, word, entry.name)
	}
}

func TestWidthsInvalid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		widths []uint
	}){
		{"short", []uint{6, 5, 5, 5, 5, 5}},
		{"long", []uint{6, 5, 5, 5, 5, 7}},
		{"zero", []uint{0, 32}},
		{"empty", nil},
	}

	for _, entry := range table {
		_, err := Decompose(0, entry.widths...)
		assert.ErrorIs(err, ErrFieldWidths, entry.name)

		_, err = Compose(make([]uint32, len(entry.widths)), entry.widths...)
		assert.ErrorIs(err, ErrFieldWidths, entry.name)
	}
}

func TestComposeInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Compose([]uint32{1, 2}, 6, 5, 5, 16)
	assert.ErrorIs(err, ErrFieldCount)

	_, err = Compose([]uint32{64, 0}, 6, 26)
	var overflow ErrFieldOverflow
	assert.True(errors.As(err, &overflow))
	assert.Equal(0, overflow.Index)
	assert.Equal(uint(6), overflow.Width)
}

func TestBits(t *testing.T) {
	assert := assert.New(t)

	word := uint32(0x8d49000a)

	assert.Equal(uint32(0x23), Bits(word, 31, 26))
	assert.Equal(uint32(0x23), Opcode(word))
	assert.Equal(uint32(10), Rs(word))
	assert.Equal(uint32(9), Rt(word))
	assert.Equal(uint32(0x000a), Immediate(word))
	assert.Equal(uint32(9), Rd(0x01404809))
	assert.Equal(uint32(2), Shamt(0x000a4882))
	assert.Equal(uint32(2), Funct(0x000a4882))
	assert.Equal(uint32(4), Target(0x0c000004))
	assert.Equal(word, Bits(word, 31, 0))

	assert.Panics(func() { Bits(word, 3, 3) })
	assert.Panics(func() { Bits(word, 32, 0) })
}

func TestSignExtend16(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(-8), SignExtend16(0xfff8))
	assert.Equal(int32(8), SignExtend16(0x0008))
	assert.Equal(int32(-32768), SignExtend16(0x8000))
	assert.Equal(int32(32767), SignExtend16(0x7fff))
	assert.Equal(int32(-1), SignExtend16(0x1234ffff))
}

func TestParseLiteral(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value int64
		ok    bool
	}){
		{"10", 10, true},
		{" 10\t", 10, true},
		{"-10", -10, true},
		{"0x1F", 31, true},
		{"0XfF", 255, true},
		{"-0x10", -16, true},
		{"0b101", 5, true},
		{"0B11", 3, true},
		{"0d99", 99, true},
		{"0D07", 7, true},
		{"0", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{"0x", 0, false},
		{"--1", 0, false},
		{"+1", 0, false},
		{"0b102", 0, false},
		{"12a", 0, false},
		{"$t0", 0, false},
	}

	for _, entry := range table {
		value, err := ParseLiteral(entry.text)
		if entry.ok {
			assert.NoError(err, entry.text)
			assert.Equal(entry.value, value, entry.text)
		} else {
			assert.Equal(ErrParseNumber(entry.text), err, entry.text)
		}
	}
}

func TestParseWord(t *testing.T) {
	assert := assert.New(t)

	word, err := ParseWord("0xffffffff")
	assert.NoError(err)
	assert.Equal(uint32(0xffffffff), word)

	word, err = ParseWord("-1")
	assert.NoError(err)
	assert.Equal(uint32(0xffffffff), word)

	_, err = ParseWord("0x100000000")
	assert.ErrorIs(err, ErrWordRange)

	_, err = ParseWord("-2147483649")
	assert.ErrorIs(err, ErrWordRange)
}

func FuzzComposeDecompose(f *testing.F) {
	for n := range layouts {
		f.Add(uint32(0), uint8(n))
		f.Add(uint32(0xffffffff), uint8(n))
		f.Add(uint32(0x014b4820), uint8(n))
	}

	f.Fuzz(func(t *testing.T, word uint32, layout uint8) {
		assert := assert.New(t)

		widths := layouts[int(layout)%len(layouts)]

		fields, err := Decompose(word, widths...)
		assert.NoError(err)
		assert.Len(fields, len(widths))

		composed, err := Compose(fields, widths...)
		assert.NoError(err)
		assert.Equal(word, composed)
	})
}
