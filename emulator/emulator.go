// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"io"
	"maps"
	"sync"

	"github.com/leksak/kilobyte-sub000/cpu"
)

// Event describes one completed cycle.
type Event struct {
	Tick        int             // Cycle number, from 1.
	Address     uint32          // Address of the executed instruction.
	LineNo      int             // Source line, or 0.
	Instruction cpu.Instruction // Executed instruction.
	Control     cpu.Control     // Control signals of the cycle.
	Next        uint32          // Program counter after the cycle.
	Halted      bool            // Exit instruction reached.
}

// Observer is notified after every completed cycle.
type Observer interface {
	Observe(ev Event) error
}

// Snapshot is the machine state between two cycles.
type Snapshot struct {
	Pc          uint32           `json:"pc"`
	Ticks       int              `json:"ticks"`
	Halted      bool             `json:"halted"`
	LineNo      int              `json:"line"`
	Instruction string           `json:"instruction"`
	Registers   map[string]int32 `json:"registers"`
}

// Emulator state. CPU + loaded program.
//
// State is only changed inside a cycle, under a lock; readers always
// see the state between two cycles. Callers go through the Emulator
// methods: the embedded Cpu is only safe to touch from an Observer,
// which runs inside the cycle.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Until     *Watch     // If set, Run stops once it holds.
	Observers []Observer // Notified after every cycle.

	registers map[string]int32 // Applied on reset.
	memory    map[int64]int32  // Applied on reset.

	lock   sync.RWMutex
	halted bool
}

// NewEmulator creates an emulator with the default memory sizes.
func NewEmulator() (emu *Emulator) {
	emu, _ = NewEmulatorFromConfig(DefaultConfig())
	return
}

// NewEmulatorFromConfig creates an emulator from a machine configuration.
func NewEmulatorFromConfig(cfg *Config) (emu *Emulator, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	emu = &Emulator{
		Verbose:   cfg.Verbose,
		Cpu:       cpu.NewCpu(cfg.TextBytes, cfg.DataBytes),
		Program:   &cpu.Program{},
		registers: maps.Clone(cfg.Registers),
		memory:    maps.Clone(cfg.Memory),
	}

	if len(cfg.Until) != 0 {
		emu.Until, err = NewWatch(cfg.Until)
		if err != nil {
			emu = nil
			return
		}
	}

	err = emu.reset()
	if err != nil {
		emu = nil
	}

	return
}

// reset the machine state and apply the initial values.
func (emu *Emulator) reset() (err error) {
	emu.Cpu.Reset()
	emu.halted = false

	for name, value := range emu.registers {
		err = emu.Cpu.Register.Set(name, value)
		if err != nil {
			return
		}
	}

	for address, value := range emu.memory {
		err = emu.Cpu.Data.WriteWord(address, value)
		if err != nil {
			return
		}
	}

	return
}

// Load a program and reset. On error the previous program stays loaded.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.lock.Lock()
	defer emu.lock.Unlock()

	err = emu.Cpu.Text.Load(prog.Instructions())
	if err != nil {
		return
	}

	emu.Program = prog

	err = emu.reset()

	return
}

// LoadListing assembles and loads a mnemonic listing.
func (emu *Emulator) LoadListing(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	err = emu.Load(prog)

	return
}

// LoadBinary disassembles and loads a machine word listing.
func (emu *Emulator) LoadBinary(input io.Reader) (err error) {
	dis := &cpu.Disassembler{Verbose: emu.Verbose}
	prog, err := dis.Parse(input)
	if err != nil {
		return
	}

	err = emu.Load(prog)

	return
}

// Reset registers, data memory and the program counter, and reload
// the current program.
func (emu *Emulator) Reset() (err error) {
	emu.lock.Lock()
	defer emu.lock.Unlock()

	err = emu.Cpu.Text.Load(emu.Program.Instructions())
	if err != nil {
		return
	}

	err = emu.reset()

	return
}

// Step executes a single cycle. Once halted, Step does nothing until
// the next Reset or Load.
func (emu *Emulator) Step() (halted bool, err error) {
	emu.lock.Lock()
	defer emu.lock.Unlock()

	halted, err = emu.step()

	return
}

// Tick is Step.
func (emu *Emulator) Tick() (halted bool, err error) {
	return emu.Step()
}

// Execute runs inst as if fetched from the program counter, as one
// cycle. Observers are not notified.
func (emu *Emulator) Execute(inst cpu.Instruction) (halted bool, err error) {
	emu.lock.Lock()
	defer emu.lock.Unlock()

	if emu.halted {
		halted = true
		return
	}

	address := emu.Cpu.Pc.Address

	halted, err = emu.Cpu.Execute(inst)
	if err != nil {
		err = &ErrRuntime{LineNo: emu.Program.LineNo(address), Address: address, Err: err}
		return
	}

	emu.Cpu.Ticks++
	emu.halted = halted

	return
}

func (emu *Emulator) step() (halted bool, err error) {
	if emu.halted {
		halted = true
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	address := emu.Cpu.Pc.Address
	lineno := emu.Program.LineNo(address)

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Address: address, Err: err}
		}
	}()

	inst, err := emu.Cpu.Fetch()
	if err != nil {
		return
	}

	halted, err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	emu.halted = halted

	ev := Event{
		Tick:        emu.Cpu.Ticks,
		Address:     address,
		LineNo:      lineno,
		Instruction: inst,
		Control:     emu.Cpu.Control,
		Next:        emu.Cpu.Pc.Address,
		Halted:      halted,
	}

	for _, obs := range emu.Observers {
		err = obs.Observe(ev)
		if err != nil {
			return
		}
	}

	return
}

// Run until the exit instruction, an error, the watch expression
// holding, or ctx being done. ctx is checked between cycles.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var halted bool
		halted, err = emu.Step()
		if err != nil || halted {
			return
		}

		if emu.Until != nil {
			var stop bool
			stop, err = emu.watch()
			if err != nil || stop {
				return
			}
		}
	}
}

func (emu *Emulator) watch() (stop bool, err error) {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	stop, err = emu.Until.Eval(emu.Cpu)

	return
}

// Halted is true once the exit instruction has executed.
func (emu *Emulator) Halted() bool {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	return emu.halted
}

// ReadRegister reads a register by name.
func (emu *Emulator) ReadRegister(name string) (value int32, err error) {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	value, err = emu.Cpu.Register.Get(name)

	return
}

// WriteRegister writes a register by name.
func (emu *Emulator) WriteRegister(name string, value int32) (err error) {
	emu.lock.Lock()
	defer emu.lock.Unlock()

	err = emu.Cpu.Register.Set(name, value)

	return
}

// ReadMemoryWord reads a data memory word.
func (emu *Emulator) ReadMemoryWord(address int64) (value int32, err error) {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	value, err = emu.Cpu.Data.ReadWord(address)

	return
}

// WriteMemoryWord writes a data memory word.
func (emu *Emulator) WriteMemoryWord(address int64, value int32) (err error) {
	emu.lock.Lock()
	defer emu.lock.Unlock()

	err = emu.Cpu.Data.WriteWord(address, value)

	return
}

// CurrentInstruction is the instruction at the program counter.
func (emu *Emulator) CurrentInstruction() (inst cpu.Instruction, err error) {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	inst, err = emu.Cpu.Fetch()

	return
}

// ProgramCounter is the address of the next instruction.
func (emu *Emulator) ProgramCounter() uint32 {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	return emu.Cpu.Pc.Address
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	return emu.Cpu.Ticks
}

// LineNo returns the source line of the next instruction.
func (emu *Emulator) LineNo() int {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	return emu.Program.LineNo(emu.Cpu.Pc.Address)
}

// Snapshot copies the state between two cycles.
func (emu *Emulator) Snapshot() (snap Snapshot) {
	emu.lock.RLock()
	defer emu.lock.RUnlock()

	snap = Snapshot{
		Pc:        emu.Cpu.Pc.Address,
		Ticks:     emu.Cpu.Ticks,
		Halted:    emu.halted,
		LineNo:    emu.Program.LineNo(emu.Cpu.Pc.Address),
		Registers: maps.Collect(emu.Cpu.Register.All()),
	}

	inst, err := emu.Cpu.Fetch()
	if err == nil {
		snap.Instruction = inst.String()
	}

	return
}
