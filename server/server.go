// Package server is an HTTP view of an emulator.
package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leksak/kilobyte-sub000/cpu"
	"github.com/leksak/kilobyte-sub000/emulator"
	"github.com/leksak/kilobyte-sub000/machinecode"
)

// Word is a data memory word.
type Word struct {
	Address int64 `json:"address"`
	Value   int32 `json:"value"`
}

// Current is the instruction at the program counter.
type Current struct {
	Address  uint32 `json:"address"`
	LineNo   int    `json:"line"`
	Word     uint32 `json:"word"`
	Mnemonic string `json:"mnemonic"`
	Validity string `json:"validity"`
	Control  string `json:"control,omitempty"`
}

// Server routes requests to an emulator.
type Server struct {
	Verbose  bool
	Emulator *emulator.Emulator
	Echo     *echo.Echo
}

// NewServer creates the routes for emu.
func NewServer(emu *emulator.Emulator) (srv *Server) {
	srv = &Server{
		Verbose:  emu.Verbose,
		Emulator: emu,
		Echo:     echo.New(),
	}

	srv.Echo.HideBanner = true

	srv.Echo.GET("/state", srv.state)
	srv.Echo.GET("/registers", srv.registers)
	srv.Echo.GET("/memory/:address", srv.memory)
	srv.Echo.GET("/instruction", srv.instruction)
	srv.Echo.POST("/step", srv.step)
	srv.Echo.POST("/run", srv.run)
	srv.Echo.POST("/reset", srv.reset)

	return
}

// Start listening on address.
func (srv *Server) Start(address string) error {
	if srv.Verbose {
		log.Printf("serve: listening on %v", address)
	}
	return srv.Echo.Start(address)
}

// failure maps emulator errors to HTTP errors.
func failure(err error) error {
	switch {
	case errors.Is(err, cpu.ErrOutOfBounds), errors.Is(err, cpu.ErrAddressAlign):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, cpu.ErrOpcodeUnsupported), errors.Is(err, cpu.ErrInstructionUnknown):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (srv *Server) state(c echo.Context) error {
	return c.JSON(http.StatusOK, srv.Emulator.Snapshot())
}

func (srv *Server) registers(c echo.Context) error {
	return c.JSON(http.StatusOK, srv.Emulator.Snapshot().Registers)
}

func (srv *Server) memory(c echo.Context) error {
	address, err := machinecode.ParseLiteral(c.Param("address"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	value, err := srv.Emulator.ReadMemoryWord(address)
	if err != nil {
		return failure(err)
	}

	return c.JSON(http.StatusOK, Word{Address: address, Value: value})
}

func (srv *Server) instruction(c echo.Context) error {
	address := srv.Emulator.ProgramCounter()

	inst, err := srv.Emulator.CurrentInstruction()
	if err != nil {
		return failure(err)
	}

	current := Current{
		Address:  address,
		LineNo:   srv.Emulator.LineNo(),
		Word:     inst.Word(),
		Mnemonic: inst.String(),
		Validity: inst.Validity().String(),
	}

	ctl, err := cpu.ControlFor(inst.Opcode())
	if err == nil {
		current.Control = ctl.String()
	}

	return c.JSON(http.StatusOK, current)
}

func (srv *Server) step(c echo.Context) error {
	_, err := srv.Emulator.Step()
	if err != nil {
		return failure(err)
	}

	return c.JSON(http.StatusOK, srv.Emulator.Snapshot())
}

func (srv *Server) run(c echo.Context) error {
	err := srv.Emulator.Run(c.Request().Context())
	if err != nil {
		return failure(err)
	}

	return c.JSON(http.StatusOK, srv.Emulator.Snapshot())
}

func (srv *Server) reset(c echo.Context) error {
	err := srv.Emulator.Reset()
	if err != nil {
		return failure(err)
	}

	return c.JSON(http.StatusOK, srv.Emulator.Snapshot())
}
