package emulator

import (
	"maps"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leksak/kilobyte-sub000/cpu"
	"github.com/leksak/kilobyte-sub000/internal"
)

// Watch is a Starlark expression over the machine state, such as
// "v0 == 8 or pc >= 40". Registers are named without the '$'; pc and
// ticks are predeclared, and mem(address) reads a data memory word.
type Watch struct {
	Expr string
}

// NewWatch checks the expression syntax.
func NewWatch(expr string) (watch *Watch, err error) {
	opts := syntax.FileOptions{}
	_, err = opts.Parse("until", watchProgram(expr), 0)
	if err != nil {
		err = &ErrWatch{Expr: expr, Err: err}
		return
	}

	watch = &Watch{Expr: expr}

	return
}

func watchProgram(expr string) string {
	return "rc=" + expr + "\n"
}

// Eval reports whether the expression holds for the machine.
func (watch *Watch) Eval(machine *cpu.Cpu) (ok bool, err error) {
	mem := starlark.NewBuiltin("mem", func(thread *starlark.Thread, fn *starlark.Builtin,
		args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var address int
		err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &address)
		if err != nil {
			return
		}

		word, err := machine.Data.ReadWord(int64(address))
		if err != nil {
			return
		}

		value = starlark.MakeInt(int(word))

		return
	})

	registers := internal.IterSeq2Map(machine.Register.All(), func(name string, value int32) (string, starlark.Value) {
		return strings.TrimPrefix(name, "$"), starlark.MakeInt(int(value))
	})

	extra := map[string]starlark.Value{
		"pc":    starlark.MakeUint(uint(machine.Pc.Address)),
		"ticks": starlark.MakeInt(machine.Ticks),
		"mem":   mem,
	}

	pred := starlark.StringDict(maps.Collect(internal.IterSeq2Concat(registers, maps.All(extra))))

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, &thread, "until", watchProgram(watch.Expr), pred)
	if err != nil {
		err = &ErrWatch{Expr: watch.Expr, Err: err}
		return
	}

	ok = bool(dict["rc"].Truth())

	return
}
