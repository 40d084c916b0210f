// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/peterbourgon/ff/v3/ffyaml"

	"github.com/leksak/kilobyte-sub000/emulator"
	"github.com/leksak/kilobyte-sub000/translate"
)

// options shared by all subcommands.
type options struct {
	verbose bool
	lang    string
}

// openInput opens a file, or stdin for "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// newEmulator builds an emulator from an optional machine file, and
// loads the program at path.
func newEmulator(opts *options, machine string, path string, binary bool) (emu *emulator.Emulator, err error) {
	cfg := emulator.DefaultConfig()
	if len(machine) != 0 {
		cfg, err = emulator.ReadConfig(machine)
		if err != nil {
			return
		}
	}
	cfg.Verbose = cfg.Verbose || opts.verbose

	emu, err = emulator.NewEmulatorFromConfig(cfg)
	if err != nil {
		return
	}

	inf, err := openInput(path)
	if err != nil {
		return
	}
	defer inf.Close()

	if binary {
		err = emu.LoadBinary(inf)
	} else {
		err = emu.LoadListing(inf)
	}

	return
}

func main() {
	appName := filepath.Base(os.Args[0])
	opts := &options{}

	rootFlagSet := flag.NewFlagSet(appName, flag.ExitOnError)
	rootFlagSet.BoolVar(&opts.verbose, "v", false, "Verbose mode")
	rootFlagSet.StringVar(&opts.lang, "lang", "", "Message language, such as en-US")
	_ = rootFlagSet.String("config", "", "YAML file of flag values")

	ctx := context.Background()
	// trap Ctrl+C and call cancel on the context
	ctx, cancel := context.WithCancel(ctx)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	defer func() {
		signal.Stop(quit)
		cancel()
	}()

	go func() {
		<-quit
		cancel()
	}()

	root := &ffcli.Command{
		ShortUsage: appName + " [flags] <subcommand>",
		FlagSet:    rootFlagSet,
		Options: []ff.Option{
			ff.WithEnvVarPrefix("KILOBYTE"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
		},
		Subcommands: []*ffcli.Command{
			runCommand(opts),
			decodeCommand(opts),
			encodeCommand(opts),
			catalogCommand(opts),
			serveCommand(opts),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}

	err := root.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("%v: %v", appName, err)
	}

	if len(opts.lang) != 0 {
		err = translate.SetLanguage(opts.lang)
		if err != nil {
			log.Fatalf("%v: -lang %v: %v", appName, opts.lang, err)
		}
	}

	err = root.Run(ctx)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("%v: %v", appName, err)
	}
}
