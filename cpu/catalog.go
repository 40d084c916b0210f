package cpu

import (
	"errors"
	"iter"
	"slices"

	"github.com/leksak/kilobyte-sub000/machinecode"
)

// Prototype describes one catalog entry.
type Prototype struct {
	Name     string  // Mnemonic name.
	Format   Format  // Bit field layout.
	Type     Type    // Instruction class.
	Opcode   uint32  // Primary opcode.
	Funct    uint32  // Function code, SPECIAL and SPECIAL2 only.
	Rt       uint32  // Selector in rt, REGIMM only.
	Pattern  []Field // Mnemonic arguments, in order.
	Unsigned bool    // Immediate is zero-extended.
	Example  string  // Example mnemonic.
}

// Uses returns true if the mnemonic pattern supplies the field.
func (proto *Prototype) Uses(field Field) bool {
	return slices.Contains(proto.Pattern, field)
}

// Arity is the number of mnemonic arguments.
func (proto *Prototype) Arity() int {
	return len(proto.Pattern)
}

type shape struct {
	format  Format
	kind    Type
	pattern []Field
}

var (
	_none     = []Field{}
	_rd_rs_rt = []Field{FIELD_RD, FIELD_RS, FIELD_RT}
	_rd_rt_sa = []Field{FIELD_RD, FIELD_RT, FIELD_SHAMT}
	_rd_rt_rs = []Field{FIELD_RD, FIELD_RT, FIELD_RS}
	_rd_rs    = []Field{FIELD_RD, FIELD_RS}
	_rs_rt    = []Field{FIELD_RS, FIELD_RT}
	_rs       = []Field{FIELD_RS}
	_rd       = []Field{FIELD_RD}
	_rt_rs_im = []Field{FIELD_RT, FIELD_RS, FIELD_IMMEDIATE}
	_rs_rt_im = []Field{FIELD_RS, FIELD_RT, FIELD_IMMEDIATE}
	_rs_im    = []Field{FIELD_RS, FIELD_IMMEDIATE}
	_rt_im    = []Field{FIELD_RT, FIELD_IMMEDIATE}
	_rt_off   = []Field{FIELD_RT, FIELD_OFFSET}
	_hint_off = []Field{FIELD_HINT, FIELD_OFFSET}
	_target   = []Field{FIELD_TARGET}
)

func special(name string, funct uint32, kind Type, pattern []Field, example string) Prototype {
	return Prototype{Name: name, Format: FORMAT_R, Type: kind, Opcode: OPCODE_SPECIAL,
		Funct: funct, Pattern: pattern, Example: example}
}

func special2(name string, funct uint32, pattern []Field, example string) Prototype {
	return Prototype{Name: name, Format: FORMAT_R, Type: TYPE_ARITHMETIC, Opcode: OPCODE_SPECIAL2,
		Funct: funct, Pattern: pattern, Example: example}
}

func regimm(name string, rt uint32, kind Type, example string) Prototype {
	return Prototype{Name: name, Format: FORMAT_I, Type: kind, Opcode: OPCODE_REGIMM,
		Rt: rt, Pattern: _rs_im, Example: example}
}

func immediate(name string, opcode uint32, kind Type, pattern []Field, example string) Prototype {
	return Prototype{Name: name, Format: FORMAT_I, Type: kind, Opcode: opcode,
		Pattern: pattern, Example: example}
}

func unsigned(proto Prototype) Prototype {
	proto.Unsigned = true
	return proto
}

var _prototypes = []Prototype{
	{Name: "nop", Format: FORMAT_R, Type: TYPE_SYSTEM, Opcode: OPCODE_SPECIAL, Funct: FUNCT_SLL,
		Pattern: _none, Example: "nop"},
	{Name: "exit", Format: FORMAT_EXIT, Type: TYPE_SYSTEM, Opcode: OPCODE_EXIT,
		Pattern: _none, Example: "exit"},

	special("sll", FUNCT_SLL, TYPE_SHIFT, _rd_rt_sa, "sll $t1, $t2, 10"),
	special("srl", FUNCT_SRL, TYPE_SHIFT, _rd_rt_sa, "srl $t1, $t2, 2"),
	special("sra", FUNCT_SRA, TYPE_SHIFT, _rd_rt_sa, "sra $t1, $t2, 2"),
	special("sllv", 0x04, TYPE_SHIFT, _rd_rt_rs, "sllv $t1, $t2, $t3"),
	special("srlv", 0x06, TYPE_SHIFT, _rd_rt_rs, "srlv $t1, $t2, $t3"),
	special("srav", 0x07, TYPE_SHIFT, _rd_rt_rs, "srav $t1, $t2, $t3"),
	special("jr", FUNCT_JR, TYPE_JUMP, _rs, "jr $t1"),
	special("jalr", 0x09, TYPE_JUMP, _rd_rs, "jalr $t1, $t2"),
	special("movz", 0x0a, TYPE_ARITHMETIC, _rd_rs_rt, "movz $t1, $t2, $t3"),
	special("movn", 0x0b, TYPE_ARITHMETIC, _rd_rs_rt, "movn $t1, $t2, $t3"),
	special("syscall", 0x0c, TYPE_SYSTEM, _none, "syscall"),
	special("break", 0x0d, TYPE_SYSTEM, _none, "break"),
	special("sync", 0x0f, TYPE_SYSTEM, _none, "sync"),
	special("mfhi", 0x10, TYPE_ARITHMETIC, _rd, "mfhi $t1"),
	special("mthi", 0x11, TYPE_ARITHMETIC, _rs, "mthi $t1"),
	special("mflo", 0x12, TYPE_ARITHMETIC, _rd, "mflo $t1"),
	special("mtlo", 0x13, TYPE_ARITHMETIC, _rs, "mtlo $t1"),
	special("mult", 0x18, TYPE_ARITHMETIC, _rs_rt, "mult $t1, $t2"),
	special("multu", 0x19, TYPE_ARITHMETIC, _rs_rt, "multu $t1, $t2"),
	special("div", 0x1a, TYPE_ARITHMETIC, _rs_rt, "div $t1, $t2"),
	special("divu", 0x1b, TYPE_ARITHMETIC, _rs_rt, "divu $t1, $t2"),
	special("add", FUNCT_ADD, TYPE_ARITHMETIC, _rd_rs_rt, "add $t1, $t2, $t3"),
	special("addu", FUNCT_ADDU, TYPE_ARITHMETIC, _rd_rs_rt, "addu $t1, $t2, $t3"),
	special("sub", FUNCT_SUB, TYPE_ARITHMETIC, _rd_rs_rt, "sub $t1, $t2, $t3"),
	special("subu", FUNCT_SUBU, TYPE_ARITHMETIC, _rd_rs_rt, "subu $t1, $t2, $t3"),
	special("and", FUNCT_AND, TYPE_ARITHMETIC, _rd_rs_rt, "and $t1, $t2, $t3"),
	special("or", FUNCT_OR, TYPE_ARITHMETIC, _rd_rs_rt, "or $t1, $t2, $t3"),
	special("xor", 0x26, TYPE_ARITHMETIC, _rd_rs_rt, "xor $t1, $t2, $t3"),
	special("nor", FUNCT_NOR, TYPE_ARITHMETIC, _rd_rs_rt, "nor $t1, $t2, $t3"),
	special("slt", FUNCT_SLT, TYPE_ARITHMETIC, _rd_rs_rt, "slt $t1, $t2, $t3"),
	special("sltu", 0x2b, TYPE_ARITHMETIC, _rd_rs_rt, "sltu $t1, $t2, $t3"),
	special("tge", 0x30, TYPE_TRAP, _rs_rt, "tge $t1, $t2"),
	special("tgeu", 0x31, TYPE_TRAP, _rs_rt, "tgeu $t1, $t2"),
	special("tlt", 0x32, TYPE_TRAP, _rs_rt, "tlt $t1, $t2"),
	special("tltu", 0x33, TYPE_TRAP, _rs_rt, "tltu $t1, $t2"),
	special("teq", 0x34, TYPE_TRAP, _rs_rt, "teq $t1, $t2"),
	special("tne", 0x36, TYPE_TRAP, _rs_rt, "tne $t1, $t2"),

	regimm("bltz", 0x00, TYPE_BRANCH, "bltz $t1, 5"),
	regimm("bgez", 0x01, TYPE_BRANCH, "bgez $t1, 5"),
	regimm("bltzl", 0x02, TYPE_BRANCH, "bltzl $t1, 5"),
	regimm("bgezl", 0x03, TYPE_BRANCH, "bgezl $t1, 5"),
	regimm("tgei", 0x08, TYPE_TRAP, "tgei $t1, 5"),
	regimm("tgeiu", 0x09, TYPE_TRAP, "tgeiu $t1, 5"),
	regimm("tlti", 0x0a, TYPE_TRAP, "tlti $t1, 5"),
	regimm("tltiu", 0x0b, TYPE_TRAP, "tltiu $t1, 5"),
	regimm("teqi", 0x0c, TYPE_TRAP, "teqi $t1, 5"),
	regimm("tnei", 0x0e, TYPE_TRAP, "tnei $t1, 5"),
	regimm("bltzal", 0x10, TYPE_BRANCH, "bltzal $t1, 5"),
	regimm("bgezal", 0x11, TYPE_BRANCH, "bgezal $t1, 5"),
	regimm("bltzall", 0x12, TYPE_BRANCH, "bltzall $t1, 5"),
	regimm("bgezall", 0x13, TYPE_BRANCH, "bgezall $t1, 5"),

	{Name: "j", Format: FORMAT_J, Type: TYPE_JUMP, Opcode: OPCODE_J, Pattern: _target, Example: "j 4"},
	{Name: "jal", Format: FORMAT_J, Type: TYPE_JUMP, Opcode: OPCODE_JAL, Pattern: _target, Example: "jal 4"},

	immediate("beq", OPCODE_BEQ, TYPE_BRANCH, _rs_rt_im, "beq $t1, $t2, 4"),
	immediate("bne", OPCODE_BNE, TYPE_BRANCH, _rs_rt_im, "bne $t1, $t2, 4"),
	immediate("blez", 0x06, TYPE_BRANCH, _rs_im, "blez $t1, 4"),
	immediate("bgtz", 0x07, TYPE_BRANCH, _rs_im, "bgtz $t1, 4"),
	immediate("addi", OPCODE_ADDI, TYPE_ARITHMETIC, _rt_rs_im, "addi $t1, $t2, 4"),
	immediate("addiu", OPCODE_ADDIU, TYPE_ARITHMETIC, _rt_rs_im, "addiu $t1, $t2, 4"),
	immediate("slti", OPCODE_SLTI, TYPE_ARITHMETIC, _rt_rs_im, "slti $t1, $t2, 4"),
	immediate("sltiu", 0x0b, TYPE_ARITHMETIC, _rt_rs_im, "sltiu $t1, $t2, 4"),
	unsigned(immediate("andi", OPCODE_ANDI, TYPE_ARITHMETIC, _rt_rs_im, "andi $t1, $t2, 4")),
	unsigned(immediate("ori", OPCODE_ORI, TYPE_ARITHMETIC, _rt_rs_im, "ori $t1, $t2, 4")),
	unsigned(immediate("xori", 0x0e, TYPE_ARITHMETIC, _rt_rs_im, "xori $t1, $t2, 4")),
	unsigned(immediate("lui", 0x0f, TYPE_ARITHMETIC, _rt_im, "lui $t1, 4")),
	immediate("beql", 0x14, TYPE_BRANCH, _rs_rt_im, "beql $t1, $t2, 4"),
	immediate("bnel", 0x15, TYPE_BRANCH, _rs_rt_im, "bnel $t1, $t2, 4"),
	immediate("blezl", 0x16, TYPE_BRANCH, _rs_im, "blezl $t1, 4"),
	immediate("bgtzl", 0x17, TYPE_BRANCH, _rs_im, "bgtzl $t1, 4"),

	special2("madd", 0x00, _rs_rt, "madd $t1, $t2"),
	special2("maddu", 0x01, _rs_rt, "maddu $t1, $t2"),
	special2("mul", 0x02, _rd_rs_rt, "mul $v0, $a0, $v0"),
	special2("msub", 0x04, _rs_rt, "msub $t1, $t2"),
	special2("msubu", 0x05, _rs_rt, "msubu $t1, $t2"),
	special2("clz", 0x20, _rd_rs, "clz $t1, $t2"),
	special2("clo", 0x21, _rd_rs, "clo $t1, $t2"),

	immediate("lb", 0x20, TYPE_LOAD_STORE, _rt_off, "lb $t1, 7($t2)"),
	immediate("lh", 0x21, TYPE_LOAD_STORE, _rt_off, "lh $t1, 10($t2)"),
	immediate("lwl", 0x22, TYPE_LOAD_STORE, _rt_off, "lwl $t1, 10($t2)"),
	immediate("lw", OPCODE_LW, TYPE_LOAD_STORE, _rt_off, "lw $t1, 10($t2)"),
	immediate("lbu", 0x24, TYPE_LOAD_STORE, _rt_off, "lbu $t1, 10($t2)"),
	immediate("lhu", 0x25, TYPE_LOAD_STORE, _rt_off, "lhu $t1, 10($t2)"),
	immediate("lwr", 0x26, TYPE_LOAD_STORE, _rt_off, "lwr $t1, 10($t2)"),
	immediate("sb", 0x28, TYPE_LOAD_STORE, _rt_off, "sb $t1, 10($t2)"),
	immediate("sh", 0x29, TYPE_LOAD_STORE, _rt_off, "sh $t1, 10($t2)"),
	immediate("swl", 0x2a, TYPE_LOAD_STORE, _rt_off, "swl $t1, 10($t2)"),
	immediate("sw", OPCODE_SW, TYPE_LOAD_STORE, _rt_off, "sw $ra, 4($sp)"),
	immediate("swr", 0x2e, TYPE_LOAD_STORE, _rt_off, "swr $t1, 10($t2)"),
	immediate("ll", 0x30, TYPE_LOAD_STORE, _rt_off, "ll $t1, 10($t2)"),
	immediate("lwc1", 0x31, TYPE_LOAD_STORE, _rt_off, "lwc1 $1, 10($t2)"),
	immediate("lwc2", 0x32, TYPE_LOAD_STORE, _rt_off, "lwc2 $1, 10($t2)"),
	immediate("pref", 0x33, TYPE_LOAD_STORE, _hint_off, "pref 1, 2($sp)"),
	immediate("ldc1", 0x35, TYPE_LOAD_STORE, _rt_off, "ldc1 $2, 10($t2)"),
	immediate("ldc2", 0x36, TYPE_LOAD_STORE, _rt_off, "ldc2 $2, 10($t2)"),
	immediate("sc", 0x38, TYPE_LOAD_STORE, _rt_off, "sc $t1, 10($t2)"),
	immediate("swc1", 0x39, TYPE_LOAD_STORE, _rt_off, "swc1 $1, 10($t2)"),
	immediate("swc2", 0x3a, TYPE_LOAD_STORE, _rt_off, "swc2 $1, 10($t2)"),
	immediate("sdc1", 0x3d, TYPE_LOAD_STORE, _rt_off, "sdc1 $2, 10($t2)"),
	immediate("sdc2", 0x3e, TYPE_LOAD_STORE, _rt_off, "sdc2 $2, 10($t2)"),
}

// Lookup tables, filled once by init().
var (
	_special  [64]*Prototype
	_special2 [64]*Prototype
	_regimm   [32]*Prototype
	_primary  [64]*Prototype
	_by_name  = map[string]*Prototype{}

	_nop  *Prototype
	_exit *Prototype
)

func init() {
	for n := range _prototypes {
		err := register(&_prototypes[n])
		if err != nil {
			panic(errors.Join(err, ErrCatalog(_prototypes[n].Name)))
		}
	}
}

func register(proto *Prototype) (err error) {
	widths, err := proto.Format.Widths()
	if err != nil {
		return
	}

	err = machinecode.CheckWidths(widths...)
	if err != nil {
		return
	}

	if _, ok := _by_name[proto.Name]; ok {
		err = ErrCatalogDuplicate
		return
	}
	_by_name[proto.Name] = proto

	var slot **Prototype
	switch {
	case proto.Name == "nop":
		slot = &_nop
	case proto.Format == FORMAT_EXIT:
		slot = &_exit
	case proto.Opcode == OPCODE_SPECIAL:
		slot = &_special[proto.Funct]
	case proto.Opcode == OPCODE_SPECIAL2:
		slot = &_special2[proto.Funct]
	case proto.Opcode == OPCODE_REGIMM:
		slot = &_regimm[proto.Rt]
	default:
		slot = &_primary[proto.Opcode]
	}

	if *slot != nil {
		err = ErrCatalogDuplicate
		return
	}
	*slot = proto

	return
}

// lookup finds the prototype encoded by a word, or nil.
func lookup(word uint32) *Prototype {
	switch word {
	case WORD_NOP:
		return _nop
	case WORD_EXIT:
		return _exit
	}

	opcode := machinecode.Opcode(word)
	switch opcode {
	case OPCODE_SPECIAL:
		return _special[machinecode.Funct(word)]
	case OPCODE_SPECIAL2:
		return _special2[machinecode.Funct(word)]
	case OPCODE_REGIMM:
		return _regimm[machinecode.Rt(word)]
	}

	return _primary[opcode]
}

// LookupName finds a prototype by mnemonic name.
func LookupName(name string) (proto *Prototype, ok bool) {
	proto, ok = _by_name[name]
	return
}

// Prototypes iterates over the catalog in declaration order.
func Prototypes() iter.Seq[*Prototype] {
	return func(yield func(*Prototype) bool) {
		for n := range _prototypes {
			if !yield(&_prototypes[n]) {
				return
			}
		}
	}
}
