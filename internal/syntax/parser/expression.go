package parser

import (
	"strconv"

	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// parseExpression parses an expression.
//
// On entry p.current is the first token of the expression, on successful
// return it is the last. Continuation tokens (a binary operator, an opening
// '(' of a call) are detected by peeking at p.next at each precedence level,
// lowest to highest.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment parses an assignment, the lowest precedence expression.
//
// The left hand side is parsed as a normal expression first and re-examined
// only if an '=' follows. Only a plain [ast.Variable] is a valid assignment
// target, anything else reports a diagnostic at the '=' but parsing of the
// right hand side continues so further errors are still found.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	expression, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.next.Is(token.Equal) {
		return expression, nil
	}

	p.advance() // The '='

	equals := p.current

	p.advance() // First token of the value

	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	if target, ok := expression.(ast.Variable); ok {
		return ast.Assign{
			Value: value,
			Name:  target.Name,
			Token: target.Token,
			ID:    p.newID(),
		}, nil
	}

	// Not fatal, we've already parsed the right hand side so the parser
	// is still in sync
	p.error(equals, "Invalid assignment target.")

	return expression, nil
}

// parseOr parses a short-circuiting 'or' expression.
func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.next.Is(token.Or) {
		p.advance() // The 'or'

		op := p.current

		p.advance() // First token of the right operand

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = ast.Logical{Left: left, Right: right, Op: op, ID: p.newID()}
	}

	return left, nil
}

// parseAnd parses a short-circuiting 'and' expression.
func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.next.Is(token.And) {
		p.advance() // The 'and'

		op := p.current

		p.advance() // First token of the right operand

		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		left = ast.Logical{Left: left, Right: right, Op: op, ID: p.newID()}
	}

	return left, nil
}

// parseEquality parses an equality ('==' or '!=') expression.
func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.next.Is(token.EqualEqual, token.BangEqual) {
		p.advance()

		op := p.current

		p.advance()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = ast.Binary{Left: left, Right: right, Op: op, ID: p.newID()}
	}

	return left, nil
}

// parseComparison parses a comparison ('>', '>=', '<', '<=') expression.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.next.Is(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		p.advance()

		op := p.current

		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = ast.Binary{Left: left, Right: right, Op: op, ID: p.newID()}
	}

	return left, nil
}

// parseTerm parses an additive ('+' or '-') expression.
func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.next.Is(token.Plus, token.Minus) {
		p.advance()

		op := p.current

		p.advance()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		left = ast.Binary{Left: left, Right: right, Op: op, ID: p.newID()}
	}

	return left, nil
}

// parseFactor parses a multiplicative ('*' or '/') expression.
func (p *Parser) parseFactor() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.next.Is(token.Star, token.Slash) {
		p.advance()

		op := p.current

		p.advance()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = ast.Binary{Left: left, Right: right, Op: op, ID: p.newID()}
	}

	return left, nil
}

// parseUnary parses a unary ('!' or '-') expression.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if !p.current.Is(token.Bang, token.Minus) {
		return p.parseCall()
	}

	op := p.current

	p.advance() // First token of the operand

	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return ast.Unary{Right: right, Op: op, ID: p.newID()}, nil
}

// parseCall parses a call expression, i.e. a primary expression followed by
// any number of parenthesised argument lists.
func (p *Parser) parseCall() (ast.Expression, error) {
	expression, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.next.Is(token.LeftParen) {
		p.advance() // The '('

		var args []ast.Expression

		if p.next.Is(token.RightParen) {
			p.advance() // The ')', no arguments
		} else {
			for {
				p.advance() // First token of the argument

				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}

				args = append(args, arg)

				if !p.next.Is(token.Comma) {
					break
				}

				p.advance() // The ','
			}

			if err := p.expect(token.RightParen, "Expect ')' after arguments."); err != nil {
				return nil, err
			}
		}

		if len(args) > maxArguments {
			// Diagnostic only, the call still parses
			p.error(p.current, "Cannot have more than 255 arguments.")
		}

		expression = ast.Call{
			Callee: expression,
			Args:   args,
			Paren:  p.current,
			ID:     p.newID(),
		}
	}

	return expression, nil
}

// parsePrimary parses a primary expression, the highest precedence level.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.current.Kind {
	case token.True:
		return ast.Literal{
			Value: ast.LiteralValue{Kind: ast.BoolLiteral, Bool: true},
			Token: p.current,
			ID:    p.newID(),
		}, nil
	case token.False:
		return ast.Literal{
			Value: ast.LiteralValue{Kind: ast.BoolLiteral, Bool: false},
			Token: p.current,
			ID:    p.newID(),
		}, nil
	case token.Nil:
		return ast.Literal{
			Value: ast.LiteralValue{Kind: ast.NilLiteral},
			Token: p.current,
			ID:    p.newID(),
		}, nil
	case token.Number:
		return p.parseNumberLiteral()
	case token.String:
		return p.parseStringLiteral()
	case token.Ident:
		return ast.Variable{
			Name:  p.text(),
			Token: p.current,
			ID:    p.newID(),
		}, nil
	case token.LeftParen:
		return p.parseGrouping()
	case token.Error:
		// The scanner has already reported this through the handler
		p.hadErrors = true

		return nil, ErrParse
	default:
		p.error(p.current, "Expect expression.")
		return nil, ErrParse
	}
}

// parseNumberLiteral parses a number literal.
func (p *Parser) parseNumberLiteral() (ast.Expression, error) {
	value, err := strconv.ParseFloat(p.text(), 64)
	if err != nil {
		// The scanner only emits well formed numbers so this should
		// be impossible
		p.error(p.current, "Invalid number literal.")
		return nil, ErrParse
	}

	return ast.Literal{
		Value: ast.LiteralValue{Kind: ast.NumberLiteral, Number: value},
		Token: p.current,
		ID:    p.newID(),
	}, nil
}

// parseStringLiteral parses a string literal, trimming the enclosing quotes.
func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	text := p.text()

	return ast.Literal{
		Value: ast.LiteralValue{Kind: ast.StringLiteral, String: text[1 : len(text)-1]},
		Token: p.current,
		ID:    p.newID(),
	}, nil
}

// parseGrouping parses a parenthesised expression.
func (p *Parser) parseGrouping() (ast.Expression, error) {
	left := p.current

	p.advance() // First token of the inner expression

	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.RightParen, "Expect ')' after expression."); err != nil {
		return nil, err
	}

	return ast.Grouping{
		Inner:      inner,
		LeftParen:  left,
		RightParen: p.current,
		ID:         p.newID(),
	}, nil
}
