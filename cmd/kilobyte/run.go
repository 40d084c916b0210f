package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/leksak/kilobyte-sub000/cpu"
	"github.com/leksak/kilobyte-sub000/emulator"
	"github.com/leksak/kilobyte-sub000/trace"
)

var (
	changed = color.New(color.FgYellow, color.Bold)
	halted  = color.New(color.FgGreen)
	failed  = color.New(color.FgRed)
)

// display prints every cycle, highlighting the registers it changed.
type display struct {
	output  io.Writer
	machine *cpu.Cpu
	last    [cpu.REGISTER_COUNT]int32
}

// Observe runs under the emulator lock, so reads the CPU directly.
func (disp *display) Observe(ev emulator.Event) (err error) {
	var deltas []string
	for index := range uint32(cpu.REGISTER_COUNT) {
		value := disp.machine.Register.Read(index)
		if value != disp.last[index] {
			deltas = append(deltas, changed.Sprintf("%v=%d", cpu.RegisterName(index), value))
			disp.last[index] = value
		}
	}

	text := ev.Instruction.String()
	if ev.Halted {
		text = halted.Sprint(text)
	}

	_, err = fmt.Fprintf(disp.output, "%6d %4d 0x%08x  %-28v %v\n",
		ev.Tick, ev.LineNo, ev.Address, text, strings.Join(deltas, " "))

	return
}

func runCommand(opts *options) *ffcli.Command {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var machine string
	var binary bool
	var tracedb string
	var until string
	fs.StringVar(&machine, "machine", "", "YAML machine configuration")
	fs.BoolVar(&binary, "binary", false, "Input is machine words, not mnemonics")
	fs.StringVar(&tracedb, "trace", "", "Record every cycle to this SQLite database")
	fs.StringVar(&until, "until", "", "Stop once this expression holds, such as 'v0 == 8'")

	return &ffcli.Command{
		Name:       "run",
		ShortUsage: "run [flags] <program.s | ->",
		ShortHelp:  "Run a program until exit",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) (err error) {
			if len(args) != 1 {
				return flag.ErrHelp
			}

			emu, err := newEmulator(opts, machine, args[0], binary)
			if err != nil {
				return
			}

			if len(until) != 0 {
				emu.Until, err = emulator.NewWatch(until)
				if err != nil {
					return
				}
			}

			if emu.Verbose {
				emu.Observers = append(emu.Observers, &display{output: os.Stdout, machine: emu.Cpu})
			}

			if len(tracedb) != 0 {
				var rec *trace.Recorder
				rec, err = trace.NewRecorder(ctx, "file:"+tracedb, emu.Verbose)
				if err != nil {
					return
				}
				defer rec.Close()
				emu.Observers = append(emu.Observers, rec)
			}

			err = emu.Run(ctx)

			var runtime *emulator.ErrRuntime
			if errors.As(err, &runtime) {
				failed.Fprintf(os.Stderr, "%v: %v\n", args[0], runtime)
			}

			fmt.Println(emu.Cpu)

			return
		},
	}
}
