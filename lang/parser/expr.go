package parser

import (
	"github.com/nerinelang/nerine/lang/ast"
	"github.com/nerinelang/nerine/lang/token"
)

var binopPriority = [...]struct{ left, right int }{
	token.PLUS: {10, 10}, token.MINUS: {10, 10},
	token.STAR: {11, 11}, token.SLASH: {11, 11},
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseSubExpr(0)
}

// parses a SubExpr where the binary operator has a priority higher than
// the provided priority (for precedence climbing). All binary operators
// are left associative: the right operand is parsed at the operator's own
// priority, so an operator of equal priority stops the climb.
func (p *parser) parseSubExpr(priority int) ast.Expr {
	left := p.parseSuffixedExpr()

	for p.tok.IsBinop() && binopPriority[p.tok].left > priority {
		var bin ast.BinaryExpr
		bin.Left = left
		bin.Op = p.tok
		p.expect(p.tok)
		bin.Right = p.parseSubExpr(binopPriority[bin.Op].right)
		left = &bin
	}

	return left
}

// parseSuffixedExpr parses a primary expression followed by any number of
// call suffixes, producing a left-leaning chain: f()() is Call(Call(f)).
func (p *parser) parseSuffixedExpr() ast.Expr {
	primary := p.parsePrimaryExpr()
	for p.tok == token.LPAREN {
		primary = p.parseCallExpr(primary)
	}
	return primary
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.NUMBER:
		lit := &ast.NumberLit{
			Raw:     p.val.Raw,
			Value:   p.val.Num,
			LitSpan: p.val.Span,
		}
		p.advance()
		return lit

	case token.IDENT:
		return p.parseIdentExpr()

	case token.LPAREN:
		// parenthesized expression, no dedicated node
		p.expect(token.LPAREN)
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr

	default:
		p.expect(token.NUMBER, token.IDENT, token.LPAREN)
		panic("unreachable")
	}
}

func (p *parser) parseCallExpr(fn ast.Expr) *ast.CallExpr {
	var expr ast.CallExpr
	expr.Fn = fn
	expr.Lparen = p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		// comma-separated arguments, trailing comma not accepted
		expr.Args = append(expr.Args, p.parseExpr())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			expr.Args = append(expr.Args, p.parseExpr())
		}
	}
	expr.Rparen = p.expect(token.RPAREN)
	return &expr
}

func (p *parser) parseIdentExpr() *ast.IdentExpr {
	if p.tok != token.IDENT {
		p.failExpected(token.IDENT.String())
	}
	expr := &ast.IdentExpr{Name: p.val.Raw, NameSpan: p.val.Span}
	p.advance()
	return expr
}
