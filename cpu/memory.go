package cpu

import (
	"encoding/binary"
	"errors"
)

const (
	DATA_MEMORY_SIZE = 1000 // Default data memory, in bytes.
	TEXT_MEMORY_SIZE = 1000 // Default instruction memory, in bytes.
	WORD_SIZE        = 4    // Bytes per word.
)

// DataMemory is a zero-filled, fixed-size, big-endian byte store.
type DataMemory struct {
	bytes []byte
}

// NewDataMemory allocates a data memory of size bytes.
func NewDataMemory(size int) (mem *DataMemory) {
	mem = &DataMemory{
		bytes: make([]byte, size),
	}

	return
}

// Size of the memory in bytes.
func (mem *DataMemory) Size() int {
	return len(mem.bytes)
}

func (mem *DataMemory) check(address int64, length int) (err error) {
	if address < 0 || address+int64(length) > int64(len(mem.bytes)) {
		err = ErrAddress{Address: address, Size: len(mem.bytes)}
	}

	return
}

// ReadWord reads the four bytes at address.
func (mem *DataMemory) ReadWord(address int64) (value int32, err error) {
	err = mem.check(address, WORD_SIZE)
	if err != nil {
		return
	}

	value = int32(binary.BigEndian.Uint32(mem.bytes[address:]))

	return
}

// WriteWord writes the four bytes at address.
func (mem *DataMemory) WriteWord(address int64, value int32) (err error) {
	err = mem.check(address, WORD_SIZE)
	if err != nil {
		return
	}

	binary.BigEndian.PutUint32(mem.bytes[address:], uint32(value))

	return
}

// LoadByte reads a single byte.
func (mem *DataMemory) LoadByte(address int64) (value byte, err error) {
	err = mem.check(address, 1)
	if err != nil {
		return
	}

	value = mem.bytes[address]

	return
}

// StoreByte writes a single byte.
func (mem *DataMemory) StoreByte(address int64, value byte) (err error) {
	err = mem.check(address, 1)
	if err != nil {
		return
	}

	mem.bytes[address] = value

	return
}

// Reset zero-fills the memory.
func (mem *DataMemory) Reset() {
	clear(mem.bytes)
}

// InstructionMemory holds decoded instructions, one per word slot.
// Unused slots hold a nop.
type InstructionMemory struct {
	slots []Instruction
	count int
}

// NewInstructionMemory allocates size bytes worth of instruction slots.
func NewInstructionMemory(size int) (text *InstructionMemory) {
	text = &InstructionMemory{
		slots: make([]Instruction, size/WORD_SIZE),
	}
	text.Reset()

	return
}

// Capacity is the number of instruction slots.
func (text *InstructionMemory) Capacity() int {
	return len(text.slots)
}

// Len is the number of loaded instructions.
func (text *InstructionMemory) Len() int {
	return text.count
}

// Load replaces the memory contents. On error the memory is untouched.
func (text *InstructionMemory) Load(program []Instruction) (err error) {
	if len(program) > len(text.slots) {
		err = errors.Join(ErrProgramTooLarge,
			ErrAddress{Address: int64(len(program) * WORD_SIZE), Size: len(text.slots) * WORD_SIZE})
		return
	}

	text.Reset()
	copy(text.slots, program)
	text.count = len(program)

	return
}

// Fetch the instruction at a byte address.
func (text *InstructionMemory) Fetch(address uint32) (inst Instruction, err error) {
	if address%WORD_SIZE != 0 {
		err = ErrAddressAlign
		return
	}

	index := int64(address / WORD_SIZE)
	if index >= int64(len(text.slots)) {
		err = ErrAddress{Address: int64(address), Size: len(text.slots) * WORD_SIZE}
		return
	}

	inst = text.slots[index]

	return
}

// Reset fills every slot with a nop.
func (text *InstructionMemory) Reset() {
	nop := Nop()
	for n := range text.slots {
		text.slots[n] = nop
	}
	text.count = 0
}

// ProgramCounter is the byte address of the next instruction.
type ProgramCounter struct {
	Address uint32
}

// Advance moves to the next word, returning the new address.
func (pc *ProgramCounter) Advance() uint32 {
	pc.Address += WORD_SIZE
	return pc.Address
}

// Index is the instruction slot the counter points at.
func (pc ProgramCounter) Index() int {
	return int(pc.Address / WORD_SIZE)
}

// Reset to address 0.
func (pc *ProgramCounter) Reset() {
	pc.Address = 0
}
