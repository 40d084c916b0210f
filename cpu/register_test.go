package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupRegister(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		index uint32
		ok    bool
	}){
		{"$zero", 0, true},
		{"$0", 0, true},
		{"$t0", 8, true},
		{"$8", 8, true},
		{" $T0 ", 8, true},
		{"$s7", 23, true},
		{"$t8", 24, true},
		{"$gp", 28, true},
		{"$sp", 29, true},
		{"$fp", 30, true},
		{"$ra", 31, true},
		{"$31", 31, true},
		{"$32", 0, false},
		{"$-1", 0, false},
		{"t0", 0, false},
		{"$", 0, false},
		{"$t10", 0, false},
		{"", 0, false},
	}

	for _, entry := range table {
		index, err := LookupRegister(entry.name)
		if entry.ok {
			assert.NoError(err, entry.name)
			assert.Equal(entry.index, index, entry.name)
		} else {
			assert.ErrorIs(err, ErrRegisterInvalid, entry.name)
		}
	}

	for n := range uint32(REGISTER_COUNT) {
		index, err := LookupRegister(RegisterName(n))
		assert.NoError(err)
		assert.Equal(n, index)
	}
	assert.Equal("$40", RegisterName(40))
}

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	var a, b RegisterFile

	a.Write(0, 55)
	assert.Equal(int32(0), a.Read(0))

	assert.NoError(a.Set("$zero", 12))
	value, err := a.Get("$zero")
	assert.NoError(err)
	assert.Zero(value)

	assert.NoError(a.Set("$t0", -7))
	value, _ = a.Get("$8")
	assert.Equal(int32(-7), value)

	// Register files are independent.
	value, _ = b.Get("$t0")
	assert.Zero(value)

	assert.ErrorIs(a.Set("$bogus", 1), ErrRegisterInvalid)
	_, err = a.Get("bogus")
	assert.ErrorIs(err, ErrRegisterInvalid)

	names := []string{}
	for name, value := range a.All() {
		names = append(names, name)
		if name == "$t0" {
			assert.Equal(int32(-7), value)
		}
	}
	assert.Len(names, REGISTER_COUNT)
	assert.Equal("$zero", names[0])
	assert.Equal("$ra", names[31])

	a.Reset()
	value, _ = a.Get("$t0")
	assert.Zero(value)
}
