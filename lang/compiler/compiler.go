// Package compiler takes a parsed AST and compiles it to bytecode chunks
// that can be executed by the virtual machine. It also provides the scope
// chain that assigns every declared name a stable local slot, and a
// textual disassembly of compiled chunks.
//
// Name resolution happens here, at lowering time: a reference to a name
// that no scope in the chain declares is a compile error, not a runtime
// one.
package compiler

import (
	"fmt"

	"github.com/nerinelang/nerine/lang/ast"
	"github.com/nerinelang/nerine/lang/token"
	"github.com/nerinelang/nerine/lang/types"
)

// printName is the reserved identifier that resolves to the print builtin
// when no scope declares it.
const printName = "print"

// Compile lowers a parsed program to the chunk of its top-level
// statements. Names resolve against scope, which the caller typically
// seeds with the accumulated global declarations; the scope is mutated by
// the declarations the program makes. Function declarations compile to
// their own chunks, registered in funcs.
func Compile(prog *ast.Program, scope *Scope, funcs *FuncTable) (chunk *Chunk, err error) {
	fc := newFcomp(TopLevelName, 0, scope, funcs)

	defer func() {
		if e := recover(); e != nil {
			cerr, ok := e.(Error)
			if !ok {
				panic(e)
			}
			chunk, err = nil, cerr
		}
	}()

	for _, s := range prog.Stmts {
		fc.stmt(s)
	}
	return fc.finish(), nil
}

// An fcomp holds the compiler state for a single chunk.
type fcomp struct {
	chunk *Chunk
	scope *Scope // current scope, a chain rooted at the chunk's namespace
	funcs *FuncTable

	// indices of jump instructions emitted with a placeholder offset and
	// not yet patched
	pending map[int]struct{}
}

func newFcomp(name string, numParams int, scope *Scope, funcs *FuncTable) *fcomp {
	return &fcomp{
		chunk:   &Chunk{Name: name, NumParams: numParams},
		scope:   scope,
		funcs:   funcs,
		pending: make(map[int]struct{}),
	}
}

// finish seals the chunk: every recorded jump placeholder must have been
// resolved, and the chunk's local count is the scope chain's final count.
func (fc *fcomp) finish() *Chunk {
	if len(fc.pending) > 0 {
		panic(fmt.Sprintf("internal error: %d unresolved jump placeholders in chunk %s", len(fc.pending), fc.chunk.Name))
	}
	fc.chunk.LocalCount = fc.scope.LocalCount()
	return fc.chunk
}

// emitJump appends op with a placeholder offset and records its index for
// back-patching.
func (fc *fcomp) emitJump(op Opcode) int {
	at := fc.chunk.emit(op, 0)
	fc.pending[at] = struct{}{}
	return at
}

// patchJump resolves the placeholder at the given index to land on the
// next instruction to be emitted.
func (fc *fcomp) patchJump(at int) {
	delete(fc.pending, at)
	fc.chunk.Instrs[at].Arg = int32(len(fc.chunk.Instrs) - (at + 1))
}

func (fc *fcomp) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LetDecl:
		// the initializer is evaluated before the name is declared, so
		// "let x = x" does not resolve
		fc.expr(s.Init)
		slot := fc.scope.Declare(s.Name.Name)
		fc.chunk.emit(STORELOCAL, int32(slot))

	case *ast.FunctionDecl:
		fc.functionDecl(s)

	case *ast.IfStmt:
		fc.expr(s.Cond)
		thenJump := fc.emitJump(JMPFALSE)
		fc.stmt(s.Then)
		if s.Else != nil {
			endJump := fc.emitJump(JMP)
			fc.patchJump(thenJump)
			fc.stmt(s.Else)
			fc.patchJump(endJump)
		} else {
			fc.patchJump(thenJump)
		}

	case *ast.ForStmt:
		fc.scope = fc.scope.PushBlock()
		fc.stmt(s.Init)
		loopStart := len(fc.chunk.Instrs)
		fc.expr(s.Cond)
		exitJump := fc.emitJump(JMPFALSE)
		fc.stmt(s.Body)
		fc.expr(s.Post)
		jumpIP := len(fc.chunk.Instrs)
		fc.chunk.emit(JMP, int32(loopStart-(jumpIP+1)))
		fc.patchJump(exitJump)
		fc.scope = fc.scope.Pop()

	case *ast.ReturnStmt:
		fc.expr(s.Value)
		fc.chunk.emit(RETURN, 0)

	case *ast.BlockStmt:
		fc.scope = fc.scope.PushBlock()
		for _, st := range s.Stmts {
			fc.stmt(st)
		}
		fc.scope = fc.scope.Pop()

	case ast.Expr:
		// expression statement; its value stays on the operand stack
		fc.expr(s)

	default:
		panic(&UnsupportedFeatureError{
			Feature: fmt.Sprintf("statement %T", s),
			Span:    s.Span(),
		})
	}
}

func (fc *fcomp) functionDecl(decl *ast.FunctionDecl) {
	// the function name is declared in the enclosing scope before the
	// body compiles; the body itself cannot refer to it (no closures)
	slot := fc.scope.Declare(decl.Name.Name)

	fnScope := fc.scope.PushFunction()
	sub := newFcomp(decl.Name.Name, len(decl.Params), fnScope, fc.funcs)
	for _, p := range decl.Params {
		fnScope.Declare(p.Name)
	}
	// the body's braces delimit the function scope itself, they do not
	// open an extra block scope
	for _, s := range decl.Body.Stmts {
		sub.stmt(s)
	}
	id := fc.funcs.Register(sub.finish())

	fc.chunk.emit(LOADCONST, fc.chunk.addConstant(id))
	fc.chunk.emit(STORELOCAL, int32(slot))
}

func (fc *fcomp) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.NumberLit:
		fc.chunk.emit(LOADCONST, fc.chunk.addConstant(types.Number(e.Value)))

	case *ast.IdentExpr:
		if slot, ok := fc.scope.Lookup(e.Name); ok {
			fc.chunk.emit(LOADLOCAL, int32(slot))
			return
		}
		if e.Name == printName {
			fc.chunk.emit(LOADCONST, fc.chunk.addConstant(types.PrintID))
			return
		}
		panic(&UndefinedNameError{Name: e.Name, Span: e.Span()})

	case *ast.BinaryExpr:
		fc.expr(e.Left)
		fc.expr(e.Right)
		// opcode order matches the token order of PLUS..SLASH
		fc.chunk.emit(ADD+Opcode(e.Op-token.PLUS), 0)

	case *ast.CallExpr:
		fc.expr(e.Fn)
		for _, arg := range e.Args {
			fc.expr(arg)
		}
		fc.chunk.emit(CALL, int32(len(e.Args)))

	default:
		panic(&UnsupportedFeatureError{
			Feature: fmt.Sprintf("expression %T", e),
			Span:    e.Span(),
		})
	}
}
