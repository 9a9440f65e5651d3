package compiler_test

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerinelang/nerine/internal/filetest"
	"github.com/nerinelang/nerine/lang/compiler"
	"github.com/nerinelang/nerine/lang/parser"
	"github.com/nerinelang/nerine/lang/token"
	"github.com/nerinelang/nerine/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateCompilerTests = flag.Bool("test.update-compiler-tests", false, "If set, replace expected compiler test results with actual results.")

func compileSource(t *testing.T, src string) (*compiler.Chunk, *compiler.FuncTable, error) {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	funcs := compiler.NewFuncTable()
	chunk, err := compiler.Compile(prog, compiler.NewGlobalScope(), funcs)
	return chunk, funcs, err
}

// TestCompile disassembles the compiled form of the testdata programs and
// compares it against the golden listings. Every successfully compiled
// chunk must also pass the structural validation.
func TestCompile(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".js") {
		t.Run(fi.Name(), func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			var buf, ebuf bytes.Buffer
			chunk, funcs, err := compileSource(t, string(b))
			if err != nil {
				fmt.Fprintln(&ebuf, err)
			} else {
				require.NoError(t, chunk.Validate())
				require.NoError(t, compiler.Fdisasm(&buf, chunk))
				funcs.ForEach(func(_ types.Function, c *compiler.Chunk) {
					require.NoError(t, c.Validate())
					require.NoError(t, compiler.Fdisasm(&buf, c))
				})
			}
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateCompilerTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateCompilerTests)
		})
	}
}

func TestUndefinedName(t *testing.T) {
	_, _, err := compileSource(t, "let x = y + 1;")
	require.Error(t, err)
	var une *compiler.UndefinedNameError
	require.ErrorAs(t, err, &une)
	assert.Equal(t, "y", une.Name)
	assert.Equal(t, token.MakeSpan(8, 9), une.Span)
	assert.Equal(t, "Compile error: undefined name 'y' at 8:9", err.Error())
}

// The initializer of a let declaration is lowered before the name is
// declared.
func TestLetInitDoesNotSeeItself(t *testing.T) {
	_, _, err := compileSource(t, "let x = x;")
	var une *compiler.UndefinedNameError
	require.ErrorAs(t, err, &une)
	assert.Equal(t, "x", une.Name)
}

// Function bodies cannot reference enclosing declarations: no closures.
func TestFunctionBodyDoesNotSeeGlobals(t *testing.T) {
	_, _, err := compileSource(t, "let x = 1; function f() { return x }")
	var une *compiler.UndefinedNameError
	require.ErrorAs(t, err, &une)
	assert.Equal(t, "x", une.Name)
}

// print resolves to the builtin only when no declaration shadows it.
func TestPrintShadowing(t *testing.T) {
	chunk, _, err := compileSource(t, "let print = 1; print")
	require.NoError(t, err)
	last := chunk.Instrs[len(chunk.Instrs)-1]
	assert.Equal(t, compiler.LOADLOCAL, last.Op)
	assert.Equal(t, int32(0), last.Arg)

	chunk, _, err = compileSource(t, "print")
	require.NoError(t, err)
	require.Len(t, chunk.Instrs, 1)
	assert.Equal(t, compiler.LOADCONST, chunk.Instrs[0].Op)
	assert.Equal(t, types.PrintID, chunk.Constants[chunk.Instrs[0].Arg])
}

// The chunk's local count matches the scope's final count, including
// slots of popped blocks.
func TestLocalCountAgreement(t *testing.T) {
	scope := compiler.NewGlobalScope()
	prog, err := parser.Parse([]byte("let a = 1; { let b = 2; } let c = 3;"))
	require.NoError(t, err)
	chunk, err := compiler.Compile(prog, scope, compiler.NewFuncTable())
	require.NoError(t, err)
	assert.Equal(t, 3, chunk.LocalCount)
	assert.Equal(t, scope.LocalCount(), chunk.LocalCount)
	require.NoError(t, chunk.Validate())
}

func TestFuncTableIds(t *testing.T) {
	funcs := compiler.NewFuncTable()
	prog, err := parser.Parse([]byte("function f() { return 1 } function g() { return 2 }"))
	require.NoError(t, err)
	_, err = compiler.Compile(prog, compiler.NewGlobalScope(), funcs)
	require.NoError(t, err)

	assert.Equal(t, 2, funcs.Len())
	f, ok := funcs.Lookup(types.Function(1))
	require.True(t, ok)
	assert.Equal(t, "f", f.Name)
	g, ok := funcs.Lookup(types.Function(2))
	require.True(t, ok)
	assert.Equal(t, "g", g.Name)
	_, ok = funcs.Lookup(types.PrintID)
	assert.False(t, ok, "the print builtin has no chunk")

	// ids keep increasing across compilations of the same table
	prog, err = parser.Parse([]byte("function h() { return 3 }"))
	require.NoError(t, err)
	_, err = compiler.Compile(prog, compiler.NewGlobalScope(), funcs)
	require.NoError(t, err)
	h, ok := funcs.Lookup(types.Function(3))
	require.True(t, ok)
	assert.Equal(t, "h", h.Name)
}

func TestValidateRejectsMalformedChunks(t *testing.T) {
	mk := func(instrs []compiler.Instr, nconsts, nlocals int) *compiler.Chunk {
		c := &compiler.Chunk{Name: "bad", Instrs: instrs, LocalCount: nlocals}
		for i := 0; i < nconsts; i++ {
			c.Constants = append(c.Constants, types.Number(float64(i)))
		}
		return c
	}

	bad := []*compiler.Chunk{
		mk([]compiler.Instr{{Op: compiler.LOADCONST, Arg: 0}}, 0, 0),
		mk([]compiler.Instr{{Op: compiler.LOADLOCAL, Arg: 2}}, 0, 2),
		mk([]compiler.Instr{{Op: compiler.STORELOCAL, Arg: -1}}, 0, 1),
		mk([]compiler.Instr{{Op: compiler.JMP, Arg: 5}}, 0, 0),
		mk([]compiler.Instr{{Op: compiler.JMPFALSE, Arg: -3}}, 0, 0),
		mk([]compiler.Instr{{Op: compiler.CALL, Arg: -1}}, 0, 0),
	}
	for i, c := range bad {
		assert.Error(t, c.Validate(), "chunk %d", i)
	}

	ok := mk([]compiler.Instr{{Op: compiler.LOADCONST, Arg: 0}, {Op: compiler.JMP, Arg: -2}}, 1, 0)
	assert.NoError(t, ok.Validate())
}
