package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/leksak/kilobyte-sub000/cpu"
	"github.com/leksak/kilobyte-sub000/machinecode"
)

var diagnostic = color.New(color.FgRed)

// arguments are the command line arguments, or the lines of stdin.
func arguments(args []string) (lines []string, err error) {
	if len(args) != 0 {
		lines = args
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) != 0 {
			lines = append(lines, line)
		}
	}

	err = scanner.Err()

	return
}

func decodeCommand(opts *options) *ffcli.Command {
	return &ffcli.Command{
		Name:       "decode",
		ShortUsage: "decode [word ...]",
		ShortHelp:  "Decode machine words into mnemonics",
		Exec: func(ctx context.Context, args []string) (err error) {
			words, err := arguments(args)
			if err != nil {
				return
			}

			for _, text := range words {
				var word uint32
				word, err = machinecode.ParseWord(text)
				if err != nil {
					return
				}

				inst, derr := cpu.Decode(word)
				if derr != nil {
					diagnostic.Printf("0x%08x  %v\n", word, derr)
					continue
				}

				fmt.Printf("0x%08x  %-28v %v\n", word, inst, inst.Validity())
				for _, diag := range inst.Diagnostics() {
					diagnostic.Printf("    %v\n", diag)
				}

				if opts.verbose {
					ctl, _ := cpu.ControlFor(inst.Opcode())
					spew.Dump(inst.Prototype(), inst.Fields(), ctl)
				}
			}

			return
		},
	}
}

func encodeCommand(opts *options) *ffcli.Command {
	return &ffcli.Command{
		Name:       "encode",
		ShortUsage: "encode [mnemonic ...]",
		ShortHelp:  "Encode mnemonics into machine words",
		Exec: func(ctx context.Context, args []string) (err error) {
			lines, err := arguments(args)
			if err != nil {
				return
			}

			asm := &cpu.Assembler{Verbose: opts.verbose}
			prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
			if err != nil {
				return
			}

			for _, stmt := range prog.Statements {
				fmt.Printf("0x%08x  %v\n", stmt.Instruction.Word(), stmt.Instruction)
			}

			return
		},
	}
}

func catalogCommand(opts *options) *ffcli.Command {
	return &ffcli.Command{
		Name:       "catalog",
		ShortUsage: "catalog",
		ShortHelp:  "List every known instruction",
		Exec: func(ctx context.Context, args []string) (err error) {
			for proto := range cpu.Prototypes() {
				fmt.Printf("%-8v %-4v %-12v %v\n", proto.Name, proto.Format, proto.Type, proto.Example)
			}
			return
		},
	}
}
