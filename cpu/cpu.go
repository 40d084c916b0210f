package cpu

import (
	"fmt"
	"log"
	"strings"
)

// Cpu is the single-cycle datapath: program counter, register file,
// instruction memory and data memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       ProgramCounter     // Address of the next instruction.
	Register RegisterFile       // General purpose registers.
	Text     *InstructionMemory // Instruction memory.
	Data     *DataMemory        // Data memory.
	Control  Control            // Control signals of the last cycle.

	Ticks int // Completed cycles since reset.
}

// NewCpu creates a CPU with the given memory sizes, in bytes.
func NewCpu(textBytes int, dataBytes int) (cpu *Cpu) {
	cpu = &Cpu{
		Text: NewInstructionMemory(textBytes),
		Data: NewDataMemory(dataBytes),
	}

	return
}

// Reset clears registers, data memory and the program counter.
// Instruction memory is kept.
func (cpu *Cpu) Reset() {
	cpu.Pc.Reset()
	cpu.Register.Reset()
	cpu.Data.Reset()
	cpu.Control = Control{}
	cpu.Ticks = 0
}

// Load a program into instruction memory and reset.
func (cpu *Cpu) Load(program []Instruction) (err error) {
	err = cpu.Text.Load(program)
	if err != nil {
		return
	}

	cpu.Reset()

	return
}

// Fetch the instruction at the program counter.
func (cpu *Cpu) Fetch() (inst Instruction, err error) {
	inst, err = cpu.Text.Fetch(cpu.Pc.Address)
	return
}

// Tick executes one full cycle. halted is set by the exit instruction.
func (cpu *Cpu) Tick() (halted bool, err error) {
	inst, err := cpu.Fetch()
	if err != nil {
		err = ErrInstruction{Address: cpu.Pc.Address, Err: err}
		return
	}

	halted, err = cpu.Execute(inst)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// Execute runs one instruction as if fetched from the program counter.
// A failing instruction leaves no trace in the machine state.
func (cpu *Cpu) Execute(inst Instruction) (halted bool, err error) {
	pc := cpu.Pc.Address
	next := pc + WORD_SIZE

	defer func() {
		if err != nil {
			err = ErrInstruction{Address: pc, Instruction: inst, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("0x%08x: %v", pc, inst)
	}

	if inst.Format() == FORMAT_EXIT {
		cpu.Pc.Address = next
		halted = true
		return
	}

	ctl, err := ControlFor(inst.Opcode())
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("control: %v", ctl)
	}

	var commit func()
	switch inst.Format() {
	case FORMAT_J:
		next = (next & 0xf0000000) | (inst.Target() << 2)
	case FORMAT_R:
		next, commit, err = cpu.executeR(inst, ctl, pc, next)
	case FORMAT_I:
		next, commit, err = cpu.executeI(inst, ctl, pc, next)
	default:
		err = ErrFormatInvalid
	}
	if err != nil {
		return
	}

	if commit != nil {
		commit()
	}

	cpu.Control = ctl
	cpu.Pc.Address = next

	return
}

// writeBack returns a commit function that writes a register.
func (cpu *Cpu) writeBack(index uint32, value int32) func() {
	return func() {
		if cpu.Verbose {
			log.Printf("%v <- %d", RegisterName(index), value)
		}
		cpu.Register.Write(index, value)
	}
}

func (cpu *Cpu) executeR(inst Instruction, ctl Control, pc uint32, next uint32) (target uint32, commit func(), err error) {
	target = next

	a := cpu.Register.Read(inst.Rs())
	b := cpu.Register.Read(inst.Rt())

	if ctl.AluOp() == 0b10 && inst.Funct() == FUNCT_JR {
		target = pc + uint32(a)<<2
		return
	}

	op, err := AluSelect(ctl, OPCODE_SPECIAL, inst.Funct())
	if err != nil {
		return
	}

	if inst.Type() == TYPE_SHIFT && inst.Prototype().Uses(FIELD_SHAMT) {
		a = b
		b = int32(inst.Shamt())
	}

	result := op.Apply(a, b)

	if ctl.RegDst && ctl.RegWrite {
		commit = cpu.writeBack(inst.Rd(), result)
	}

	return
}

func (cpu *Cpu) executeI(inst Instruction, ctl Control, pc uint32, next uint32) (target uint32, commit func(), err error) {
	target = next

	a := cpu.Register.Read(inst.Rs())
	rt := cpu.Register.Read(inst.Rt())

	b := rt
	if ctl.AluSrc {
		b = inst.ExtendedImmediate()
	}

	op, err := AluSelect(ctl, inst.Opcode(), 0)
	if err != nil {
		return
	}

	result := op.Apply(a, b)

	switch {
	case ctl.Branch:
		if result == 0 {
			target = pc + uint32(inst.SignedImmediate()<<2)
		}
	case ctl.MemToReg:
		var value int32
		value, err = cpu.Data.ReadWord(int64(result))
		if err != nil {
			return
		}
		commit = cpu.writeBack(inst.Rt(), value)
	case ctl.MemWrite && ctl.AluSrc:
		address := int64(result)
		err = cpu.Data.check(address, WORD_SIZE)
		if err != nil {
			return
		}
		commit = func() {
			if cpu.Verbose {
				log.Printf("[%d] <- %d", address, rt)
			}
			_ = cpu.Data.WriteWord(address, rt)
		}
	case ctl.AluSrc && ctl.RegWrite:
		commit = cpu.writeBack(inst.Rt(), result)
	}

	return
}

// String dumps the machine state.
func (cpu *Cpu) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "pc: 0x%08x ticks: %d\n", cpu.Pc.Address, cpu.Ticks)
	n := 0
	for name, value := range cpu.Register.All() {
		fmt.Fprintf(&sb, "%-5v %11d", name, value)
		n++
		if n%4 == 0 {
			sb.WriteString("\n")
		} else {
			sb.WriteString("  ")
		}
	}

	return sb.String()
}
