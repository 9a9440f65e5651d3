// Package machine implements the stack-based virtual machine that
// executes bytecode chunks over explicit call frames.
package machine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nerinelang/nerine/lang/compiler"
	"github.com/nerinelang/nerine/lang/types"
)

// DefaultMaxCallDepth is the call stack depth limit used when the thread
// does not configure one.
const DefaultMaxCallDepth = 1024

// Thread executes chunks. A thread is single-threaded and reusable: each
// RunChunk call resets its execution state. The zero value is a valid
// thread writing print output to standard output.
type Thread struct {
	// MaxCallDepth bounds the call stack; <= 0 means DefaultMaxCallDepth.
	MaxCallDepth int

	// MaxSteps bounds the number of executed instructions; 0 means
	// unlimited. Exceeding the budget stops execution with an
	// InterruptedError.
	MaxSteps uint64

	// Stdout is the destination of the print builtin; nil means
	// os.Stdout.
	Stdout io.Writer

	// Funcs resolves function ids of CALL callees to their chunks.
	Funcs *compiler.FuncTable

	steps  uint64
	frames []*frame
}

// frame is the runtime record of one function activation: the chunk being
// executed, an instruction pointer, an operand stack and the local slot
// array. Frames exist only during interpretation.
type frame struct {
	chunk  *compiler.Chunk
	fn     types.Function // 0 for the entry frame
	ip     int
	stack  []types.Value
	locals []types.Value
}

func newFrame(c *compiler.Chunk, fn types.Function) *frame {
	locals := make([]types.Value, c.LocalCount)
	for i := range locals {
		locals[i] = types.Undef
	}
	return &frame{chunk: c, fn: fn, locals: locals}
}

// popOrUndef pops the top of the operand stack, or returns Undef if the
// stack is empty. Used where the undefined value is the implicit result.
func (fr *frame) popOrUndef() types.Value {
	if len(fr.stack) == 0 {
		return types.Undef
	}
	v := fr.stack[len(fr.stack)-1]
	fr.stack = fr.stack[:len(fr.stack)-1]
	return v
}

// RunChunk executes chunk in a fresh entry frame whose first local slots
// are seeded from globals, and returns the program result together with
// the entry frame's final locals (so a host can persist global slot
// values across runs). On error the entire call stack is discarded.
func (th *Thread) RunChunk(ctx context.Context, chunk *compiler.Chunk, globals []types.Value) (types.Value, []types.Value, error) {
	maxDepth := th.MaxCallDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCallDepth
	}
	stdout := th.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	entry := newFrame(chunk, 0)
	copy(entry.locals, globals)
	th.steps = 0
	th.frames = append(th.frames[:0], entry)

	fail := func(err error) (types.Value, []types.Value, error) {
		th.frames = th.frames[:0]
		return nil, nil, err
	}

	for {
		// CALL and RETURN change which frame is on top, so the current
		// frame is re-acquired on every iteration
		fr := th.frames[len(th.frames)-1]

		if fr.ip >= len(fr.chunk.Instrs) {
			// ran off the end of the chunk
			ret := fr.popOrUndef()
			if len(th.frames) == 1 {
				th.frames = th.frames[:0]
				return ret, entry.locals, nil
			}
			th.frames = th.frames[:len(th.frames)-1]
			caller := th.frames[len(th.frames)-1]
			caller.stack = append(caller.stack, ret)
			continue
		}

		th.steps++
		if th.MaxSteps > 0 && th.steps > th.MaxSteps {
			return fail(&InterruptedError{Reason: "step budget exceeded"})
		}
		if th.steps&255 == 0 {
			if err := ctx.Err(); err != nil {
				return fail(&InterruptedError{Reason: err.Error()})
			}
		}

		ins := fr.chunk.Instrs[fr.ip]
		fr.ip++

		switch ins.Op {
		case compiler.LOADCONST:
			k := int(ins.Arg)
			if k < 0 || k >= len(fr.chunk.Constants) {
				// compiled chunks cannot contain this, it is an
				// interpreter-level bug
				panic(fmt.Sprintf("constant index %d out of range in chunk %s", k, fr.chunk.Name))
			}
			fr.stack = append(fr.stack, fr.chunk.Constants[k])

		case compiler.LOADLOCAL:
			i := int(ins.Arg)
			if i < 0 || i >= len(fr.locals) {
				return fail(&UndefinedVariableError{Name: fmt.Sprintf("slot %d", i)})
			}
			fr.stack = append(fr.stack, fr.locals[i])

		case compiler.STORELOCAL:
			if len(fr.stack) == 0 {
				return fail(&StackOverflowError{})
			}
			v := fr.stack[len(fr.stack)-1]
			fr.stack = fr.stack[:len(fr.stack)-1]
			i := int(ins.Arg)
			if i < 0 || i >= len(fr.locals) {
				return fail(&UndefinedVariableError{Name: fmt.Sprintf("slot %d", i)})
			}
			fr.locals[i] = v

		case compiler.ADD, compiler.SUB, compiler.MUL, compiler.DIV:
			if len(fr.stack) < 2 {
				return fail(&StackOverflowError{})
			}
			rv := fr.stack[len(fr.stack)-1]
			lv := fr.stack[len(fr.stack)-2]
			fr.stack = fr.stack[:len(fr.stack)-2]
			r, ok := rv.(types.Number)
			if !ok {
				return fail(&TypeError{Expected: "number", Found: rv.Type()})
			}
			l, ok := lv.(types.Number)
			if !ok {
				return fail(&TypeError{Expected: "number", Found: lv.Type()})
			}
			var z types.Number
			switch ins.Op {
			case compiler.ADD:
				z = l + r
			case compiler.SUB:
				z = l - r
			case compiler.MUL:
				z = l * r
			case compiler.DIV:
				if r == 0 {
					return fail(&DivisionByZeroError{})
				}
				z = l / r
			}
			fr.stack = append(fr.stack, z)

		case compiler.CALL:
			argc := int(ins.Arg)
			if len(fr.stack) < argc+1 {
				return fail(&StackOverflowError{})
			}
			args := fr.stack[len(fr.stack)-argc:]
			fr.stack = fr.stack[:len(fr.stack)-argc]
			callee := fr.stack[len(fr.stack)-1]
			fr.stack = fr.stack[:len(fr.stack)-1]

			fn, ok := callee.(types.Function)
			if !ok {
				return fail(&TypeError{Expected: "function", Found: callee.Type()})
			}

			if fn == types.PrintID {
				for _, a := range args {
					fmt.Fprintln(stdout, a)
				}
				fr.stack = append(fr.stack, types.Undef)
				break
			}

			if len(th.frames) >= maxDepth {
				return fail(&StackOverflowError{})
			}
			fchunk, ok := th.Funcs.Lookup(fn)
			if !ok {
				panic(fmt.Sprintf("unknown function id %d in chunk %s", uint32(fn), fr.chunk.Name))
			}
			nf := newFrame(fchunk, fn)
			// parameters fill the first local slots in order; extra
			// arguments are dropped, missing ones stay undefined
			n := argc
			if fchunk.NumParams < n {
				n = fchunk.NumParams
			}
			copy(nf.locals, args[:n])
			th.frames = append(th.frames, nf)

		case compiler.RETURN:
			ret := fr.popOrUndef()
			th.frames = th.frames[:len(th.frames)-1]
			if len(th.frames) == 0 {
				return ret, entry.locals, nil
			}
			caller := th.frames[len(th.frames)-1]
			caller.stack = append(caller.stack, ret)

		case compiler.JMP:
			fr.ip += int(ins.Arg)

		case compiler.JMPFALSE:
			if len(fr.stack) == 0 {
				return fail(&StackOverflowError{})
			}
			// peek, never pop: the condition value stays on the stack
			if !fr.stack[len(fr.stack)-1].Truth() {
				fr.ip += int(ins.Arg)
			}

		default:
			panic(fmt.Sprintf("illegal opcode %d in chunk %s", uint8(ins.Op), fr.chunk.Name))
		}
	}
}
