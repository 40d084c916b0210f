package machinecode

import (
	"math"
	"strconv"
	"strings"
)

// ParseLiteral parses a signed number written in decimal, or with a
// 0x, 0b or 0d prefix. Prefixes are case insensitive.
func ParseLiteral(text string) (value int64, err error) {
	digits := strings.ToLower(strings.TrimSpace(text))

	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(digits, "0x"):
		base = 16
		digits = digits[2:]
	case strings.HasPrefix(digits, "0b"):
		base = 2
		digits = digits[2:]
	case strings.HasPrefix(digits, "0d"):
		digits = digits[2:]
	}

	// strconv would accept a second sign.
	if len(digits) == 0 || digits[0] == '-' || digits[0] == '+' {
		err = ErrParseNumber(text)
		return
	}

	value, err = strconv.ParseInt(digits, base, 64)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	if negative {
		value = -value
	}

	return
}

// ParseWord parses a literal that must fit in 32 bits, either as a
// signed or as an unsigned quantity.
func ParseWord(text string) (word uint32, err error) {
	value, err := ParseLiteral(text)
	if err != nil {
		return
	}

	if value < math.MinInt32 || value > math.MaxUint32 {
		err = ErrWordRange
		return
	}

	word = uint32(value)

	return
}
