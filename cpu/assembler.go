// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/leksak/kilobyte-sub000/machinecode"
)

var (
	_mnemonic_illegal = regexp.MustCompile(`[^0-9A-Za-z$\-,()\s]`)
	_mnemonic_offset  = regexp.MustCompile(`^([^()]*)\(([^()]*)\)$`)
)

// operands collects the resolved argument values of a mnemonic.
type operands struct {
	rs, rt, rd, shamt, imm, target uint32
}

func literal(text string, lo int64, hi int64) (value int64, err error) {
	value, err = machinecode.ParseLiteral(text)
	if err != nil {
		return
	}

	if value < lo || value > hi {
		err = ErrImmediateRange
	}

	return
}

func (ops *operands) resolve(field Field, arg string) (err error) {
	if field != FIELD_OFFSET && strings.ContainsAny(arg, "()") {
		err = ErrMnemonicOffset
		return
	}

	var value int64
	switch field {
	case FIELD_RS:
		ops.rs, err = LookupRegister(arg)
	case FIELD_RT:
		ops.rt, err = LookupRegister(arg)
	case FIELD_RD:
		ops.rd, err = LookupRegister(arg)
	case FIELD_SHAMT:
		value, err = literal(arg, 0, 31)
		ops.shamt = uint32(value)
	case FIELD_HINT:
		value, err = literal(arg, 0, 31)
		ops.rt = uint32(value)
	case FIELD_IMMEDIATE:
		value, err = literal(arg, -0x8000, 0xffff)
		ops.imm = uint32(value) & 0xffff
	case FIELD_TARGET:
		value, err = literal(arg, 0, 1<<26-1)
		ops.target = uint32(value)
	case FIELD_OFFSET:
		match := _mnemonic_offset.FindStringSubmatch(arg)
		if match == nil {
			err = ErrMnemonicOffset
			return
		}
		if offset := strings.TrimSpace(match[1]); len(offset) != 0 {
			value, err = literal(offset, -0x8000, 0x7fff)
			if err != nil {
				return
			}
		}
		ops.imm = uint32(value) & 0xffff
		ops.rs, err = LookupRegister(match[2])
	}

	return
}

func (ops *operands) encode(proto *Prototype) (word uint32, err error) {
	var fields []uint32
	switch proto.Format {
	case FORMAT_R:
		fields = []uint32{proto.Opcode, ops.rs, ops.rt, ops.rd, ops.shamt, proto.Funct}
	case FORMAT_I:
		rt := ops.rt
		if proto.Opcode == OPCODE_REGIMM {
			rt = proto.Rt
		}
		fields = []uint32{proto.Opcode, ops.rs, rt, ops.imm}
	case FORMAT_J:
		fields = []uint32{proto.Opcode, ops.target}
	case FORMAT_EXIT:
		fields = []uint32{WORD_EXIT}
	default:
		err = ErrFormatInvalid
		return
	}

	widths, err := proto.Format.Widths()
	if err != nil {
		return
	}

	word, err = machinecode.Compose(fields, widths...)

	return
}

// Parse builds an instruction from its mnemonic text, such as
// "lw $t1, 10($t2)". Registers may be named or numbered.
func Parse(text string) (inst Instruction, err error) {
	line := strings.TrimSpace(text)
	if len(line) == 0 {
		err = ErrMnemonic{Text: text, Err: ErrMnemonicMissing}
		return
	}

	if bad := _mnemonic_illegal.FindString(line); len(bad) != 0 {
		err = ErrMnemonic{Text: text, Fragment: bad, Err: ErrMnemonicCharacters}
		return
	}

	name, rest := line, ""
	if index := strings.IndexAny(line, " \t"); index >= 0 {
		name, rest = line[:index], line[index+1:]
	}
	name = strings.ToLower(name)
	rest = strings.TrimSpace(rest)

	proto, ok := LookupName(name)
	if !ok {
		err = ErrNoSuchInstruction{Name: name}
		return
	}

	var args []string
	if len(rest) != 0 {
		args = strings.Split(rest, ",")
	}

	if len(args) != proto.Arity() {
		err = ErrMnemonic{Text: text, Fragment: rest, Err: ErrMnemonicArgCount}
		return
	}

	ops := &operands{}
	for n, field := range proto.Pattern {
		arg := strings.TrimSpace(args[n])
		if len(arg) == 0 {
			err = ErrMnemonic{Text: text, Fragment: rest, Err: ErrMnemonicArgCount}
			return
		}

		err = ops.resolve(field, arg)
		if err != nil {
			err = ErrMnemonic{Text: text, Fragment: arg, Err: err}
			return
		}
	}

	word, err := ops.encode(proto)
	if err != nil {
		return
	}

	// The all-zero and all-one words decode as nop and exit, whatever
	// mnemonic spelled them.
	switch word {
	case WORD_NOP:
		inst = Nop()
	case WORD_EXIT:
		inst = Exit()
	default:
		inst = Instruction{proto: proto, word: word}
	}

	return
}

// Assembler reads program listings: one mnemonic per line, blank lines
// skipped.
type Assembler struct {
	Verbose bool // If set, log each assembled line.
}

// Parse a listing.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	return scan(input, func(line string) (Instruction, error) {
		inst, err := Parse(line)
		if err == nil && asm.Verbose {
			log.Printf("0x%08x %v", inst.Word(), inst)
		}
		return inst, err
	})
}

// Disassembler reads raw machine words, one literal per line, blank
// lines skipped.
type Disassembler struct {
	Verbose bool // If set, log each decoded word.
}

// Parse a word listing. Partially valid words are accepted.
func (dis *Disassembler) Parse(input io.Reader) (prog *Program, err error) {
	return scan(input, func(line string) (inst Instruction, err error) {
		word, err := machinecode.ParseWord(line)
		if err != nil {
			return
		}

		inst, err = Decode(word)
		if err != nil {
			return
		}

		if dis.Verbose {
			log.Printf("0x%08x %v", word, inst)
			for _, diag := range inst.Diagnostics() {
				log.Printf("0x%08x %v", word, diag)
			}
		}

		return
	})
}

func scan(input io.Reader, decode func(line string) (Instruction, error)) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		var inst Instruction
		inst, err = decode(line)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo:      lineno,
			Text:        strings.TrimSpace(line),
			Instruction: inst,
		})
	}

	err = scanner.Err()

	return
}
