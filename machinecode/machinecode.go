package machinecode

// WORD_BITS is the width of a machine word.
const WORD_BITS = 32

func mask(width uint) uint32 {
	return uint32((uint64(1) << width) - 1)
}

// CheckWidths verifies that a layout covers exactly one machine word.
func CheckWidths(widths ...uint) (err error) {
	total := uint(0)
	for _, width := range widths {
		if width == 0 {
			err = ErrFieldWidths
			return
		}
		total += width
	}

	if total != WORD_BITS {
		err = ErrFieldWidths
	}

	return
}

// Decompose splits a word into one unsigned value per field width.
func Decompose(word uint32, widths ...uint) (fields []uint32, err error) {
	err = CheckWidths(widths...)
	if err != nil {
		return
	}

	fields = make([]uint32, len(widths))
	shift := uint(WORD_BITS)
	for n, width := range widths {
		shift -= width
		fields[n] = (word >> shift) & mask(width)
	}

	return
}

// Compose is the inverse of Decompose.
func Compose(fields []uint32, widths ...uint) (word uint32, err error) {
	err = CheckWidths(widths...)
	if err != nil {
		return
	}

	if len(fields) != len(widths) {
		err = ErrFieldCount
		return
	}

	for n, width := range widths {
		if fields[n] > mask(width) {
			err = ErrFieldOverflow{Index: n, Value: fields[n], Width: width}
			return
		}
		word = uint32(uint64(word)<<width) | fields[n]
	}

	return
}

// Bits returns bits [lo, hi] of word, inclusive.
func Bits(word uint32, hi, lo uint) uint32 {
	if lo >= hi || hi >= WORD_BITS {
		panic(ErrBitRange)
	}

	return (word >> lo) & mask(hi-lo+1)
}

// SignExtend16 widens a 16-bit two's-complement value to 32 bits.
func SignExtend16(imm uint32) int32 {
	imm &= 0xffff
	if imm&0x8000 != 0 {
		imm |= 0xffff0000
	}

	return int32(imm)
}

func Opcode(word uint32) uint32 {
	return Bits(word, 31, 26)
}

func Rs(word uint32) uint32 {
	return Bits(word, 25, 21)
}

func Rt(word uint32) uint32 {
	return Bits(word, 20, 16)
}

func Rd(word uint32) uint32 {
	return Bits(word, 15, 11)
}

func Shamt(word uint32) uint32 {
	return Bits(word, 10, 6)
}

func Funct(word uint32) uint32 {
	return Bits(word, 5, 0)
}

func Immediate(word uint32) uint32 {
	return Bits(word, 15, 0)
}

func Target(word uint32) uint32 {
	return Bits(word, 25, 0)
}
