package ast

import "github.com/nerinelang/nerine/lang/token"

type (
	// BinaryExpr represents a binary operation. Op is one of PLUS, MINUS,
	// STAR or SLASH.
	BinaryExpr struct {
		Op    token.Token
		Left  Expr
		Right Expr
	}

	// CallExpr represents a call expression, e.g. f(x, 1 + 2). Call
	// suffixes chain to the left: f()() is Call(Call(f)).
	CallExpr struct {
		Fn     Expr
		Lparen token.Span
		Args   []Expr
		Rparen token.Span
	}

	// IdentExpr represents a reference to a name.
	IdentExpr struct {
		Name     string
		NameSpan token.Span
	}

	// NumberLit represents a numeric literal.
	NumberLit struct {
		Raw     string // raw source text, e.g. "3.14"
		Value   float64
		LitSpan token.Span
	}
)

func (n *BinaryExpr) Span() token.Span { return n.Left.Span().Merge(n.Right.Span()) }
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) stmt() {}
func (n *BinaryExpr) expr() {}

func (n *CallExpr) Span() token.Span { return n.Fn.Span().Merge(n.Rparen) }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) stmt() {}
func (n *CallExpr) expr() {}

func (n *IdentExpr) Span() token.Span { return n.NameSpan }
func (n *IdentExpr) Walk(_ Visitor)   {}
func (n *IdentExpr) stmt()            {}
func (n *IdentExpr) expr()            {}

func (n *NumberLit) Span() token.Span { return n.LitSpan }
func (n *NumberLit) Walk(_ Visitor)   {}
func (n *NumberLit) stmt()            {}
func (n *NumberLit) expr()            {}
