// Package ast defines an abstract syntax tree for the Lox grammar.
package ast

import (
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// Node is the interface for ast nodes.
type Node interface {
	// Start returns the first token associated with the node.
	Start() token.Token

	// End returns the last token associated with the node.
	End() token.Token

	// Kind returns the kind of node this is.
	Kind() Kind
}

// Expression is an expression node.
//
// Every expression carries a unique integer ID assigned by the parser at
// construction, this is the stable identity used to key the resolver's
// side table of scope depths.
type Expression interface {
	Node

	// NodeID returns the expression's unique ID.
	NodeID() int

	expressionNode() // Prevents accidental misuse as another node type
}

// Statement is a statement node.
type Statement interface {
	Node
	statementNode() // Prevents accidental misuse as another node type
}

// Ident is a named identifier appearing in a declaration, e.g. the name
// of a variable, function or parameter.
//
// It is not itself an [Expression], a variable reference in expression
// position is a [Variable].
type Ident struct {
	// Name is the ident's name.
	Name string

	// The [token.Ident] token.
	Token token.Token
}

// Program is an ast [Node] representing a single parsed .lox program.
type Program struct {
	// Name is the name of the file the program was parsed from.
	Name string

	// Statements is the list of top level statements in the program.
	Statements []Statement

	// NextID is the next free expression ID, one greater than the largest
	// ID assigned to any expression in Statements.
	//
	// A REPL threads this through successive parses so every expression in
	// a session gets a unique ID and a single resolution table can serve
	// the whole session.
	NextID int
}

// Start returns the first token in the program.
//
// If the program is empty, [token.EOF] is returned.
func (p Program) Start() token.Token {
	if len(p.Statements) == 0 {
		return token.Token{Kind: token.EOF}
	}

	return p.Statements[0].Start()
}

// End returns the final token in the program.
func (p Program) End() token.Token {
	if len(p.Statements) == 0 {
		return token.Token{Kind: token.EOF}
	}

	return p.Statements[len(p.Statements)-1].End()
}

// Kind returns [KindProgram].
func (p Program) Kind() Kind {
	return KindProgram
}
