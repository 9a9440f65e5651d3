// Package ast defines the types to represent the abstract syntax tree
// (AST) of the language. Every node carries a span into the original
// source, and a parent node's span always encloses the spans of its
// children.
package ast

import "github.com/nerinelang/nerine/lang/token"

// Node represents any node in the AST.
type Node interface {
	// Span reports the source byte range covered by the node.
	Span() token.Span

	// Walk enters each node inside itself to implement the Visitor pattern.
	Walk(v Visitor)
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// Expr represents an expression in the AST. Expressions may appear in
// statement position (an expression statement), so every Expr is also a
// Stmt.
type Expr interface {
	Stmt
	expr()
}

// Program is the root node, holding the top-level statements of a
// compilation unit.
type Program struct {
	Stmts []Stmt
}

func (n *Program) Span() token.Span {
	if len(n.Stmts) == 0 {
		return token.Span{}
	}
	return n.Stmts[0].Span().Merge(n.Stmts[len(n.Stmts)-1].Span())
}

func (n *Program) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each of the children of
// node with the visitor w.
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses an AST in depth-first order: it starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor w for
// each of the non-nil children of node, followed by a call of
// w.Visit(nil).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(nil)
}
