package compiler

import (
	"fmt"

	"github.com/nerinelang/nerine/lang/types"
)

// Chunk is the compilation artifact for one function, or for the top
// level of a compilation unit. A chunk is immutable once compilation
// completes; the machine executes it by reference and never mutates it.
type Chunk struct {
	// Name is the declared function name, or TopLevelName for the chunk
	// of a compilation unit's top-level statements.
	Name string

	// Instrs is the linear instruction stream.
	Instrs []Instr

	// Constants is the chunk's constant pool, indexed by LOADCONST.
	Constants []types.Value

	// NumParams is the number of declared parameters; parameters occupy
	// the first NumParams local slots in declaration order.
	NumParams int

	// LocalCount is the number of local slots a frame executing this
	// chunk must reserve.
	LocalCount int
}

// TopLevelName is the name given to the chunk compiled from the top-level
// statements of a program.
const TopLevelName = "<main>"

// emit appends an instruction and returns its index, for back-patching.
func (c *Chunk) emit(op Opcode, arg int32) int {
	c.Instrs = append(c.Instrs, Instr{Op: op, Arg: arg})
	return len(c.Instrs) - 1
}

// addConstant appends v to the constant pool and returns its index. The
// pool is append-only; equal values are not deduplicated.
func (c *Chunk) addConstant(v types.Value) int32 {
	c.Constants = append(c.Constants, v)
	return int32(len(c.Constants) - 1)
}

// Validate checks the chunk's structural invariants: constant and local
// indices in range, jump targets landing on a valid instruction index,
// and a non-negative local count covering the parameters.
func (c *Chunk) Validate() error {
	if c.LocalCount < c.NumParams {
		return fmt.Errorf("chunk %s: local count %d smaller than parameter count %d", c.Name, c.LocalCount, c.NumParams)
	}
	for i, ins := range c.Instrs {
		switch ins.Op {
		case LOADCONST:
			if int(ins.Arg) < 0 || int(ins.Arg) >= len(c.Constants) {
				return fmt.Errorf("chunk %s: instruction %d: constant index %d out of range [0, %d)", c.Name, i, ins.Arg, len(c.Constants))
			}
		case LOADLOCAL, STORELOCAL:
			if int(ins.Arg) < 0 || int(ins.Arg) >= c.LocalCount {
				return fmt.Errorf("chunk %s: instruction %d: local index %d out of range [0, %d)", c.Name, i, ins.Arg, c.LocalCount)
			}
		case JMP, JMPFALSE:
			// the delta applies after the instruction pointer advanced
			// past the jump; landing one past the last instruction is
			// valid and ends the chunk
			target := i + 1 + int(ins.Arg)
			if target < 0 || target > len(c.Instrs) {
				return fmt.Errorf("chunk %s: instruction %d: jump target %d out of range [0, %d]", c.Name, i, target, len(c.Instrs))
			}
		case CALL:
			if ins.Arg < 0 {
				return fmt.Errorf("chunk %s: instruction %d: negative argument count", c.Name, i)
			}
		}
	}
	return nil
}
