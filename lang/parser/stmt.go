package parser

import (
	"github.com/nerinelang/nerine/lang/ast"
	"github.com/nerinelang/nerine/lang/token"
)

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.LET:
		decl := p.parseLetDecl()
		p.acceptSemi()
		return decl
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		stmt := p.parseReturnStmt()
		p.acceptSemi()
		return stmt
	case token.LBRACE:
		return p.parseBlock()
	default:
		// expression statement
		expr := p.parseExpr()
		p.acceptSemi()
		return expr
	}
}

// parseLetDecl parses a let declaration without its terminating semicolon,
// which belongs to the caller (optional in statement position, required in
// a for-loop header).
func (p *parser) parseLetDecl() *ast.LetDecl {
	var decl ast.LetDecl
	decl.Let = p.expect(token.LET)
	decl.Name = p.parseIdentExpr()
	decl.Assign = p.expect(token.ASSIGN)
	decl.Init = p.parseExpr()
	return &decl
}

func (p *parser) parseFunctionDecl() *ast.FunctionDecl {
	var decl ast.FunctionDecl
	decl.Function = p.expect(token.FUNCTION)
	decl.Name = p.parseIdentExpr()

	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		decl.Params = append(decl.Params, p.parseIdentExpr())
		for p.tok == token.COMMA {
			p.expect(token.COMMA)
			decl.Params = append(decl.Params, p.parseIdentExpr())
		}
	}
	p.expect(token.RPAREN)

	decl.Body = p.parseBlock()
	return &decl
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	var stmt ast.IfStmt
	stmt.If = p.expect(token.IF)
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Then = p.parseBlock()

	if p.tok == token.ELSE {
		p.expect(token.ELSE)
		switch p.tok {
		case token.IF:
			// else-if chain: the nested if becomes the sole statement of a
			// synthetic else block
			nested := p.parseIfStmt()
			span := nested.Span()
			stmt.Else = &ast.BlockStmt{
				Lbrace: token.MakeSpan(span.Start, span.Start),
				Stmts:  []ast.Stmt{nested},
				Rbrace: token.MakeSpan(span.End, span.End),
			}
		case token.LBRACE:
			stmt.Else = p.parseBlock()
		default:
			p.expect(token.IF, token.LBRACE)
		}
	}
	return &stmt
}

func (p *parser) parseForStmt() *ast.ForStmt {
	var stmt ast.ForStmt
	stmt.For = p.expect(token.FOR)
	p.expect(token.LPAREN)

	if p.tok == token.LET {
		stmt.Init = p.parseLetDecl()
	} else {
		stmt.Init = p.parseExpr()
	}
	p.expect(token.SEMI)
	stmt.Cond = p.parseExpr()
	p.expect(token.SEMI)
	stmt.Post = p.parseExpr()
	p.expect(token.RPAREN)

	stmt.Body = p.parseBlock()
	return &stmt
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	var stmt ast.ReturnStmt
	stmt.Return = p.expect(token.RETURN)
	stmt.Value = p.parseExpr()
	return &stmt
}

func (p *parser) parseBlock() *ast.BlockStmt {
	var block ast.BlockStmt
	block.Lbrace = p.expect(token.LBRACE)
	for p.tok != token.RBRACE && p.tok != token.EOF {
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	block.Rbrace = p.expect(token.RBRACE)
	return &block
}
