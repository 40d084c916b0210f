package main

import (
	"context"
	"errors"
	"flag"
	"net/http"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/leksak/kilobyte-sub000/server"
)

func serveCommand(opts *options) *ffcli.Command {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var machine string
	var binary bool
	var listen string
	fs.StringVar(&machine, "machine", "", "YAML machine configuration")
	fs.BoolVar(&binary, "binary", false, "Input is machine words, not mnemonics")
	fs.StringVar(&listen, "listen", ":1357", "Listen address")

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [flags] <program.s | ->",
		ShortHelp:  "Serve the machine state over HTTP",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) (err error) {
			if len(args) != 1 {
				return flag.ErrHelp
			}

			emu, err := newEmulator(opts, machine, args[0], binary)
			if err != nil {
				return
			}

			srv := server.NewServer(emu)

			go func() {
				<-ctx.Done()
				_ = srv.Echo.Close()
			}()

			err = srv.Start(listen)
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}

			return
		},
	}
}
