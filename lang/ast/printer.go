package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes an indented, one-node-per-line textual representation of
// an AST, each line ending with the node's span. It is used by the parser
// golden tests and the --ast phase dump.
type Printer struct {
	Output io.Writer
}

// Print writes the tree rooted at n to the printer's output.
func (p *Printer) Print(n Node) error {
	pv := &printVisitor{w: p.Output}
	Walk(pv, n)
	return pv.err
}

type printVisitor struct {
	w     io.Writer
	depth int
	err   error
}

func (pv *printVisitor) Visit(n Node) Visitor {
	if n == nil {
		pv.depth--
		return nil
	}
	if pv.err == nil {
		_, pv.err = fmt.Fprintf(pv.w, "%s%s [%s]\n",
			strings.Repeat(". ", pv.depth), label(n), n.Span())
	}
	pv.depth++
	return pv
}

func label(n Node) string {
	switch n := n.(type) {
	case *Program:
		return fmt.Sprintf("program {stmts=%d}", len(n.Stmts))
	case *LetDecl:
		return "let"
	case *FunctionDecl:
		return fmt.Sprintf("function {params=%d}", len(n.Params))
	case *IfStmt:
		if n.Else != nil {
			return "if {else=true}"
		}
		return "if"
	case *ForStmt:
		return "for"
	case *ReturnStmt:
		return "return"
	case *BlockStmt:
		return fmt.Sprintf("block {stmts=%d}", len(n.Stmts))
	case *BinaryExpr:
		return fmt.Sprintf("binary %s", n.Op)
	case *CallExpr:
		return fmt.Sprintf("call {args=%d}", len(n.Args))
	case *IdentExpr:
		return fmt.Sprintf("ident %s", n.Name)
	case *NumberLit:
		return fmt.Sprintf("number %s", n.Raw)
	default:
		return fmt.Sprintf("%T", n)
	}
}
