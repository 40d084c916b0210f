package emulator

import (
	"errors"

	"github.com/leksak/kilobyte-sub000/translate"
)

var f = translate.From

var (
	ErrConfigSize     = errors.New(f("memory size invalid"))
	ErrConfigRegister = errors.New(f("register invalid"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int
	Address uint32
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("line %d (0x%08x) %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrWatch is a failing watch expression.
type ErrWatch struct {
	Expr string
	Err  error
}

func (err *ErrWatch) Error() string {
	return f("watch '%v': %v", err.Expr, err.Err)
}

func (err *ErrWatch) Unwrap() error {
	return err.Err
}
