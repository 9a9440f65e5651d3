package compiler

import "fmt"

// Opcode identifies a virtual machine instruction.
type Opcode uint8

// "x ADD y" style comments are stack pictures describing the operand
// stack before and after execution of the instruction.
//
// OP<index> indicates an operand that is an index into the specified
// table: constants or locals. Jump operands are signed instruction-count
// deltas applied after the instruction pointer has advanced past the
// jump.
const ( //nolint:revive
	// binary arithmetic (order must match token.Token PLUS..SLASH)
	ADD    Opcode = iota // l r ADD l+r
	SUB                  // l r SUB l-r
	MUL                  // l r MUL l*r
	DIV                  // l r DIV l/r
	RETURN               // value RETURN -

	// --- opcodes with an argument must go below this line ---

	LOADCONST  //  - LOADCONST<constant>  value
	LOADLOCAL  //  - LOADLOCAL<local>     value
	STORELOCAL //  value STORELOCAL<local> -
	CALL       //  fn a1 .. an CALL<n>    result
	JMP        //  - JMP<offset>          -
	JMPFALSE   //  cond JMPFALSE<offset>  cond   (peeks, never pops)

	// OpcodeArgMin is the first opcode that carries an argument.
	OpcodeArgMin = LOADCONST
	// OpcodeMax is the highest valid opcode.
	OpcodeMax = JMPFALSE
)

var opcodeNames = [...]string{
	ADD:        "add",
	SUB:        "sub",
	MUL:        "mul",
	DIV:        "div",
	RETURN:     "return",
	LOADCONST:  "loadconst",
	LOADLOCAL:  "loadlocal",
	STORELOCAL: "storelocal",
	CALL:       "call",
	JMP:        "jmp",
	JMPFALSE:   "jmpfalse",
}

func (op Opcode) String() string {
	if op <= OpcodeMax {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal op (%d)", uint8(op))
}

// HasArg returns true if the opcode carries an argument.
func (op Opcode) HasArg() bool { return op >= OpcodeArgMin }

// IsJump returns true if the opcode's argument is a signed instruction
// delta.
func (op Opcode) IsJump() bool { return op == JMP || op == JMPFALSE }

// Instr is a single instruction of a chunk: an opcode and its argument.
// The argument is meaningful only for opcodes at or above OpcodeArgMin.
type Instr struct {
	Op  Opcode
	Arg int32
}

func (ins Instr) String() string {
	if !ins.Op.HasArg() {
		return ins.Op.String()
	}
	return fmt.Sprintf("%s %d", ins.Op, ins.Arg)
}
