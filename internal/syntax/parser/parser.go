// Package parser implements the .lox file parser.
//
// The parser is a hand written recursive descent parser over the token
// stream produced by the scanner, using a single token of lookahead and
// precedence climbing for expressions. It recovers from syntax errors by
// panic-mode synchronisation, discarding tokens until a plausible statement
// boundary so that multiple errors may be reported in a single run.
package parser

import (
	"errors"
	"fmt"
	"io"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/scanner"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// maxArguments is the most arguments (or parameters) a call or function
// declaration may have, exceeding it is a diagnostic but not fatal.
const maxArguments = 255

// ErrParse is a generic parsing error, details on the error are passed
// to the parser's [syntax.ErrorHandler] at the moment it occurs.
var ErrParse = errors.New("parse error")

// Option is a functional option to configure a [Parser].
type Option func(p *Parser)

// FirstID sets the first expression node ID the parser will assign.
//
// A REPL uses this to keep node IDs unique across the parses of successive
// lines, by default IDs start at 0.
func FirstID(id int) Option {
	return func(p *Parser) {
		p.nextID = id
	}
}

// Parser is the lox parser.
type Parser struct {
	handler   syntax.ErrorHandler // The installed error handler, to be called in response to parse errors
	scanner   *scanner.Scanner    // Scanner to produce tokens
	name      string              // Name of the file being parsed
	src       []byte              // Raw source text
	current   token.Token         // Current token under inspection
	next      token.Token         // Next token in the stream
	nextID    int                 // Next free expression node ID
	hadErrors bool                // Whether we encountered parse errors
}

// New initialises and returns a new [Parser] that reads from r.
func New(name string, r io.Reader, handler syntax.ErrorHandler, options ...Option) (*Parser, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from input: %w", err)
	}

	p := &Parser{
		handler: handler,
		scanner: scanner.New(name, src, handler),
		name:    name,
		src:     src,
	}

	for _, option := range options {
		option(p)
	}

	// Read 2 tokens so current and next are set
	p.advance()
	p.advance()

	return p, nil
}

// Parse parses the file to completion returning an [ast.Program] and any
// parsing errors.
//
// The returned error will simply signify whether or not there were parse errors,
// the installed error handler passed to [New] will have the full detail and should
// be preferred.
func (p *Parser) Parse() (ast.Program, error) {
	program := ast.Program{
		Name:       p.name,
		Statements: make([]ast.Statement, 0),
	}

	for !p.current.Is(token.EOF) {
		if p.current.Is(token.Error) {
			// An error from the scanner, it's already been reported
			// through the handler
			p.hadErrors = true

			p.synchronise()

			continue
		}

		statement, err := p.parseDeclaration()
		if err != nil {
			p.synchronise()
			continue
		}

		if statement != nil {
			program.Statements = append(program.Statements, statement)
		}

		p.advance()
	}

	program.NextID = p.nextID

	if p.hadErrors {
		return program, ErrParse
	}

	return program, nil
}

// advance advances the parser by a single token.
func (p *Parser) advance() {
	p.current = p.next
	p.next = p.scanner.Scan()
}

// expect asserts that the next token is of the given kind, emitting a syntax
// error with the given message if not.
//
// The parser is advanced only if the next token is of the right kind such
// that after returning p.current is the expected token.
//
// It returns [ErrParse] if the expectation is violated, nil otherwise.
func (p *Parser) expect(kind token.Kind, msg string) error {
	if p.next.Is(token.Error) {
		// The scanner has emitted an error and has already passed it
		// to the error handler
		p.hadErrors = true

		return ErrParse
	}

	if !p.next.Is(kind) {
		p.error(p.next, msg)
		return ErrParse
	}

	p.advance()

	return nil
}

// newID returns the next free expression node ID, advancing the counter.
func (p *Parser) newID() int {
	id := p.nextID
	p.nextID++

	return id
}

// position returns the given token's position as a [syntax.Position].
func (p *Parser) position(tok token.Token) syntax.Position {
	return syntax.Position{
		Name:     p.name,
		Offset:   tok.Start,
		Line:     tok.Line,
		StartCol: tok.Col,
		EndCol:   tok.Col + (tok.End - tok.Start),
	}
}

// error reports a parse error at the given token, composing the canonical
// "Error at '<lexeme>': <msg>" message and calling the installed handler.
//
// At EOF the where-clause becomes " at end".
func (p *Parser) error(tok token.Token, msg string) {
	p.hadErrors = true

	if p.handler == nil {
		return
	}

	var where string
	if tok.Is(token.EOF) {
		where = " at end"
	} else {
		where = fmt.Sprintf(" at '%s'", p.lexeme(tok))
	}

	p.handler(p.position(tok), "Error"+where+": "+msg)
}

// text returns the chunk of source text described by the p.current token.
func (p *Parser) text() string {
	return p.lexeme(p.current)
}

// lexeme returns the chunk of source text described by the given token.
func (p *Parser) lexeme(tok token.Token) string {
	return string(p.src[tok.Start:tok.End])
}

// synchronise is called during error recovery, after a parse error we are
// unsure of the local state as the syntax is invalid.
//
// synchronise discards tokens until it is just past a ';' or a keyword that
// plausibly begins a statement is at the head, after which point the parser
// should be back in sync and can continue normally.
func (p *Parser) synchronise() {
	for !p.current.Is(token.EOF) {
		p.advance()

		switch {
		case p.current.Is(token.Semicolon):
			p.advance()
			return
		case p.current.Is(
			token.Class,
			token.Fun,
			token.Var,
			token.For,
			token.If,
			token.While,
			token.Print,
			token.Return,
		):
			return
		}
	}
}

// parseDeclaration parses a declaration.
//
// On entry p.current is the first token of the declaration, on successful
// return it is the last.
func (p *Parser) parseDeclaration() (ast.Statement, error) {
	switch p.current.Kind {
	case token.Var:
		return p.parseVarStatement()
	case token.Fun:
		return p.parseFunctionStatement()
	case token.Class:
		p.error(p.current, "Classes are not supported.")
		return nil, ErrParse
	default:
		return p.parseStatement()
	}
}

// parseStatement parses a statement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Kind {
	case token.Print:
		return p.parsePrintStatement()
	case token.LeftBrace:
		return p.parseBlock()
	case token.If:
		return p.parseIfStatement()
	case token.While:
		return p.parseWhileStatement()
	case token.For:
		return p.parseForStatement()
	case token.Return:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarStatement parses a variable declaration statement.
func (p *Parser) parseVarStatement() (ast.Statement, error) {
	result := ast.VarStatement{
		Keyword: p.current,
	}

	if err := p.expect(token.Ident, "Expect variable name."); err != nil {
		return nil, err
	}

	result.Name = ast.Ident{
		Name:  p.text(),
		Token: p.current,
	}

	if p.next.Is(token.Equal) {
		p.advance() // The '='
		p.advance() // First token of the initialiser

		initialiser, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		result.Initialiser = initialiser
	}

	if err := p.expect(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	result.Semicolon = p.current

	return result, nil
}

// parseFunctionStatement parses a function declaration.
func (p *Parser) parseFunctionStatement() (ast.Statement, error) {
	result := ast.FunctionStatement{
		Keyword: p.current,
	}

	if err := p.expect(token.Ident, "Expect function name."); err != nil {
		return nil, err
	}

	result.Name = ast.Ident{
		Name:  p.text(),
		Token: p.current,
	}

	if err := p.expect(token.LeftParen, "Expect '(' after function name."); err != nil {
		return nil, err
	}

	if p.next.Is(token.RightParen) {
		p.advance()
	} else {
		for {
			if err := p.expect(token.Ident, "Expect parameter name."); err != nil {
				return nil, err
			}

			result.Params = append(result.Params, ast.Ident{
				Name:  p.text(),
				Token: p.current,
			})

			if !p.next.Is(token.Comma) {
				break
			}

			p.advance() // The ','
		}

		if err := p.expect(token.RightParen, "Expect ')' after parameters."); err != nil {
			return nil, err
		}
	}

	if len(result.Params) > maxArguments {
		// Diagnostic only, parsing (and the parameters themselves) proceed
		p.error(result.Name.Token, "Cannot have more than 255 parameters.")
	}

	if err := p.expect(token.LeftBrace, "Expect '{' before function body."); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	block, ok := body.(ast.Block)
	if !ok {
		// parseBlock always returns an ast.Block
		return nil, ErrParse
	}

	result.Body = block

	return result, nil
}

// parseBlock parses a braced block of declarations.
//
// On entry p.current is the opening '{'.
func (p *Parser) parseBlock() (ast.Statement, error) {
	result := ast.Block{
		LeftBrace: p.current,
	}

	for !p.next.Is(token.RightBrace, token.EOF) {
		if p.next.Is(token.Error) {
			p.hadErrors = true
			return nil, ErrParse
		}

		p.advance()

		statement, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}

		if statement != nil {
			result.Statements = append(result.Statements, statement)
		}
	}

	if err := p.expect(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}

	result.RightBrace = p.current

	return result, nil
}

// parsePrintStatement parses a print statement.
func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	result := ast.PrintStatement{
		Keyword: p.current,
	}

	p.advance() // First token of the expression

	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	result.Expression = expression

	if err := p.expect(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}

	result.Semicolon = p.current

	return result, nil
}

// parseExpressionStatement parses a bare expression statement.
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return ast.ExpressionStatement{
		Expression: expression,
		Semicolon:  p.current,
	}, nil
}

// parseIfStatement parses an if statement, a dangling else binds to the
// nearest enclosing if.
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	result := ast.IfStatement{
		Keyword: p.current,
	}

	if err := p.expect(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}

	p.advance() // First token of the condition

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	result.Condition = condition

	if err := p.expect(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	p.advance() // First token of the then branch

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	result.Then = then

	if p.next.Is(token.Else) {
		p.advance() // The 'else'
		p.advance() // First token of the else branch

		otherwise, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		result.Else = otherwise
	}

	return result, nil
}

// parseWhileStatement parses a while loop.
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	result := ast.WhileStatement{
		Keyword: p.current,
	}

	if err := p.expect(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}

	p.advance() // First token of the condition

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	result.Condition = condition

	if err := p.expect(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	p.advance() // First token of the body

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	result.Body = body

	return result, nil
}

// parseForStatement parses a for loop, desugaring it into an equivalent
// while loop:
//
//	for (init; cond; incr) body
//
// becomes
//
//	{ init; while (cond) { body; incr; } }
//
// An omitted condition becomes a literal 'true', an omitted initialiser or
// increment simply drops out. There is no dedicated for node in the tree.
func (p *Parser) parseForStatement() (ast.Statement, error) {
	keyword := p.current

	if err := p.expect(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initialiser ast.Statement

	switch {
	case p.next.Is(token.Semicolon):
		p.advance() // The ';', no initialiser
	case p.next.Is(token.Var):
		p.advance() // The 'var'

		statement, err := p.parseVarStatement()
		if err != nil {
			return nil, err
		}

		initialiser = statement
	default:
		p.advance() // First token of the initialiser expression

		statement, err := p.parseExpressionStatement()
		if err != nil {
			return nil, err
		}

		initialiser = statement
	}

	var condition ast.Expression

	if p.next.Is(token.Semicolon) {
		p.advance() // The ';', no condition
	} else {
		p.advance() // First token of the condition

		expression, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		condition = expression

		if err := p.expect(token.Semicolon, "Expect ';' after loop condition."); err != nil {
			return nil, err
		}
	}

	var increment ast.Expression

	if p.next.Is(token.RightParen) {
		p.advance() // The ')', no increment
	} else {
		p.advance() // First token of the increment

		expression, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		increment = expression

		if err := p.expect(token.RightParen, "Expect ')' after for clauses."); err != nil {
			return nil, err
		}
	}

	closing := p.current

	p.advance() // First token of the body

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = ast.Block{
			Statements: []ast.Statement{
				body,
				ast.ExpressionStatement{Expression: increment, Semicolon: closing},
			},
			LeftBrace:  keyword,
			RightBrace: closing,
		}
	}

	if condition == nil {
		condition = ast.Literal{
			Value: ast.LiteralValue{Kind: ast.BoolLiteral, Bool: true},
			Token: keyword,
			ID:    p.newID(),
		}
	}

	var loop ast.Statement = ast.WhileStatement{
		Condition: condition,
		Body:      body,
		Keyword:   keyword,
	}

	if initialiser != nil {
		loop = ast.Block{
			Statements: []ast.Statement{initialiser, loop},
			LeftBrace:  keyword,
			RightBrace: closing,
		}
	}

	return loop, nil
}

// parseReturnStatement parses a return statement.
func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	result := ast.ReturnStatement{
		Keyword: p.current,
	}

	if !p.next.Is(token.Semicolon) {
		p.advance() // First token of the return value

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		result.Value = value
	}

	if err := p.expect(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}

	result.Semicolon = p.current

	return result, nil
}
