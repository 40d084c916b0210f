package cpu

import (
	"errors"

	"github.com/leksak/kilobyte-sub000/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrInstructionUnknown = errors.New(f("instruction unknown"))
	ErrMnemonicMalformed  = errors.New(f("mnemonic malformed"))
	ErrMnemonicMissing    = errors.New(f("mnemonic missing"))
	ErrMnemonicCharacters = errors.New(f("illegal characters"))
	ErrMnemonicArgCount   = errors.New(f("argument count mismatch"))
	ErrMnemonicOffset     = errors.New(f("offset syntax invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrImmediateRange     = errors.New(f("value out of range"))

	// Catalog errors
	ErrFormatInvalid    = errors.New(f("format invalid"))
	ErrCatalogDuplicate = errors.New(f("catalog entry duplicated"))

	// Memory errors
	ErrOutOfBounds     = errors.New(f("address out of bounds"))
	ErrAddressAlign    = errors.New(f("address not word aligned"))
	ErrProgramTooLarge = errors.New(f("ran out of instruction memory"))

	// Execution errors
	ErrOpcodeUnsupported = errors.New(f("opcode unsupported"))
	ErrFunctUnsupported  = errors.New(f("funct unsupported"))
)

type ErrCatalog string

func (err ErrCatalog) Error() string {
	return f("catalog entry '%v'", string(err))
}

// ErrNoSuchInstruction is returned for a name or word not in the catalog.
type ErrNoSuchInstruction struct {
	Name string
	Word uint32
}

func (err ErrNoSuchInstruction) Error() string {
	if len(err.Name) != 0 {
		return f("no instruction named '%v'", err.Name)
	}
	return f("no instruction encoded as 0x%08x", err.Word)
}

func (err ErrNoSuchInstruction) Is(target error) bool {
	return target == ErrInstructionUnknown
}

// ErrMnemonic locates a malformed mnemonic.
type ErrMnemonic struct {
	Text     string
	Fragment string
	Err      error
}

func (err ErrMnemonic) Error() string {
	return f("'%v' at '%v': %v", err.Text, err.Fragment, err.Err)
}

func (err ErrMnemonic) Unwrap() []error {
	return []error{ErrMnemonicMalformed, err.Err}
}

// ErrAddress is an access outside of a memory.
type ErrAddress struct {
	Address int64
	Size    int
}

func (err ErrAddress) Error() string {
	return f("address %d outside of %d bytes", err.Address, err.Size)
}

func (err ErrAddress) Is(target error) bool {
	return target == ErrOutOfBounds
}

// ErrOpcode is an opcode without control signals.
type ErrOpcode uint32

func (err ErrOpcode) Error() string {
	return f("opcode 0x%02x unsupported", uint32(err))
}

func (err ErrOpcode) Is(target error) bool {
	return target == ErrOpcodeUnsupported
}

// ErrFunct is an R-format function code without an ALU operation.
type ErrFunct uint32

func (err ErrFunct) Error() string {
	return f("funct 0x%02x unsupported", uint32(err))
}

func (err ErrFunct) Is(target error) bool {
	return target == ErrFunctUnsupported || target == ErrOpcodeUnsupported
}

// ErrInstruction locates an execution failure.
type ErrInstruction struct {
	Address     uint32
	Instruction Instruction
	Err         error
}

func (err ErrInstruction) Error() string {
	return f("0x%08x '%v': %v", err.Address, err.Instruction.String(), err.Err)
}

func (err ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
