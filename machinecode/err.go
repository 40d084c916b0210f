package machinecode

import (
	"errors"

	"github.com/leksak/kilobyte-sub000/translate"
)

var f = translate.From

var (
	ErrFieldWidths = errors.New(f("field widths do not sum to 32"))
	ErrFieldCount  = errors.New(f("field count does not match layout"))
	ErrBitRange    = errors.New(f("bit range invalid"))
	ErrWordRange   = errors.New(f("value does not fit in a 32-bit word"))
)

// ErrFieldOverflow is returned when a field value is wider than its slot.
type ErrFieldOverflow struct {
	Index int
	Value uint32
	Width uint
}

func (err ErrFieldOverflow) Error() string {
	return f("field %d value %d does not fit in %d bits", err.Index, err.Value, err.Width)
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
