// Package parser implements the parser that transforms source code into an
// abstract syntax tree (AST).
//
// Parsing is recursive descent with precedence climbing for expressions.
// There is no error recovery: the first error aborts the parse and no
// partial AST is returned.
package parser

import (
	"strings"

	"github.com/nerinelang/nerine/lang/ast"
	"github.com/nerinelang/nerine/lang/scanner"
	"github.com/nerinelang/nerine/lang/token"
)

// Parse parses a full program from src. On failure the returned error is a
// parser.Error and the program is nil.
func Parse(src []byte) (prog *ast.Program, err error) {
	var p parser
	p.init(src)

	defer func() {
		if e := recover(); e != nil {
			perr, ok := e.(Error)
			if !ok {
				panic(e)
			}
			prog, err = nil, perr
		}
	}()

	prog = p.parseProgram()
	return prog, nil
}

// parser parses source text and generates an AST.
type parser struct {
	scanner scanner.Scanner

	// current token
	tok token.Token
	val token.Value
}

func (p *parser) init(src []byte) {
	p.scanner.Init(src)

	// advance to first token
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

// expect returns the span of the current token and consumes it if it is
// one of the expected tokens, otherwise it panics with a parse error which
// gets recovered in Parse.
func (p *parser) expect(toks ...token.Token) token.Span {
	span := p.val.Span

	var buf strings.Builder
	var ok bool
	for i, tok := range toks {
		if p.tok == tok {
			ok = true
			break
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.String())
	}

	if !ok {
		var lbl string
		if len(toks) > 1 {
			lbl = "one of " + buf.String()
		} else {
			lbl = buf.String()
		}
		p.failExpected(lbl)
	}

	p.advance()
	return span
}

// failExpected panics with the parse error for the current token not
// matching the expected label.
func (p *parser) failExpected(expected string) {
	if p.tok == token.EOF {
		panic(&UnexpectedEOFError{Expected: expected, Span: p.val.Span})
	}

	found := p.tok.Literal(p.val)
	if found == "" {
		found = p.tok.String()
	}
	panic(&UnexpectedTokenError{
		Expected: expected,
		Found:    found,
		Span:     p.val.Span,
	})
}

// acceptSemi consumes an optional statement-terminating semicolon.
func (p *parser) acceptSemi() {
	if p.tok == token.SEMI {
		p.advance()
	}
}

func (p *parser) parseProgram() *ast.Program {
	var prog ast.Program
	for p.tok != token.EOF {
		prog.Stmts = append(prog.Stmts, p.parseStmt())
	}
	return &prog
}
