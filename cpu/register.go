package cpu

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// REGISTER_COUNT is the size of the register file.
const REGISTER_COUNT = 32

var _register_names = [REGISTER_COUNT]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

var _register_index = map[string]uint32{}

func init() {
	for n, name := range _register_names {
		_register_index[name] = uint32(n)
	}
}

// RegisterName returns the symbolic name of a register index.
func RegisterName(index uint32) string {
	if index >= REGISTER_COUNT {
		return fmt.Sprintf("$%d", index)
	}
	return _register_names[index]
}

// LookupRegister resolves "$name" or "$index" to a register index.
func LookupRegister(name string) (index uint32, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "$") {
		err = ErrRegisterInvalid
		return
	}

	index, ok := _register_index[name]
	if ok {
		return
	}

	value, perr := strconv.ParseUint(name[1:], 10, 8)
	if perr != nil || value >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	index = uint32(value)

	return
}

// RegisterFile holds the general purpose registers. Register 0 always
// reads as zero; writes to it are discarded.
type RegisterFile struct {
	value [REGISTER_COUNT]int32
}

// Read a register by index.
func (rf *RegisterFile) Read(index uint32) int32 {
	return rf.value[index]
}

// Write a register by index.
func (rf *RegisterFile) Write(index uint32, value int32) {
	if index == 0 {
		return
	}
	rf.value[index] = value
}

// Get reads a register by name.
func (rf *RegisterFile) Get(name string) (value int32, err error) {
	index, err := LookupRegister(name)
	if err != nil {
		err = fmt.Errorf("%w: %v", err, name)
		return
	}

	value = rf.Read(index)

	return
}

// Set writes a register by name.
func (rf *RegisterFile) Set(name string, value int32) (err error) {
	index, err := LookupRegister(name)
	if err != nil {
		err = fmt.Errorf("%w: %v", err, name)
		return
	}

	rf.Write(index, value)

	return
}

// Reset zeroes all registers.
func (rf *RegisterFile) Reset() {
	rf.value = [REGISTER_COUNT]int32{}
}

// All iterates over the registers by name, in index order.
func (rf *RegisterFile) All() iter.Seq2[string, int32] {
	return func(yield func(string, int32) bool) {
		for n, value := range rf.value {
			if !yield(_register_names[n], value) {
				return
			}
		}
	}
}
