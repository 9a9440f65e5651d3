package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"
	"github.com/nerinelang/nerine/lang/ast"
	"github.com/nerinelang/nerine/lang/compiler"
	"github.com/nerinelang/nerine/lang/engine"
	"github.com/nerinelang/nerine/lang/parser"
	"github.com/nerinelang/nerine/lang/scanner"
	"github.com/nerinelang/nerine/lang/types"
)

// runFile executes (or phase-dumps) a single source file. On success
// nothing is printed except what the program itself prints; on failure
// one formatted error line goes to stderr.
func (c *Cmd) runFile(ctx context.Context, stdio mainer.Stdio, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	switch {
	case c.Tokens:
		return dumpTokens(stdio.Stdout, b)
	case c.AST:
		return dumpAST(stdio, b)
	case c.Disasm:
		return dumpDisasm(stdio, b)
	}

	eng, err := engine.NewFromEnv()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	eng.Stdout = stdio.Stdout

	if _, err := eng.ExecuteContext(ctx, string(b)); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}

// dumpTokens prints the token stream, one token per line: the span, the
// token kind and, for tokens that carry one, the literal text.
func dumpTokens(w io.Writer, src []byte) error {
	for _, tv := range scanner.ScanSource(src) {
		var err error
		if lit := tv.Token.Literal(tv.Value); lit != "" {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", tv.Value.Span, tv.Token, lit)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", tv.Value.Span, tv.Token)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// dumpAST prints the parsed tree, or the parse error on stderr.
func dumpAST(stdio mainer.Stdio, src []byte) error {
	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	printer := ast.Printer{Output: stdio.Stdout}
	return printer.Print(prog)
}

// dumpDisasm compiles the file in a fresh scope and prints the listing of
// the top-level chunk followed by each function chunk in id order.
func dumpDisasm(stdio mainer.Stdio, src []byte) error {
	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	funcs := compiler.NewFuncTable()
	chunk, err := compiler.Compile(prog, compiler.NewGlobalScope(), funcs)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	if err := compiler.Fdisasm(stdio.Stdout, chunk); err != nil {
		return err
	}
	var werr error
	funcs.ForEach(func(_ types.Function, c *compiler.Chunk) {
		if werr == nil {
			werr = compiler.Fdisasm(stdio.Stdout, c)
		}
	})
	return werr
}
