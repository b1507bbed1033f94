package ast

import "go.followtheprocess.codes/lox/internal/syntax/token"

// LiteralKind discriminates the payload of a [LiteralValue].
type LiteralKind int

// Literal payload kinds.
const (
	NilLiteral    LiteralKind = iota // The literal 'nil'
	BoolLiteral                      // 'true' or 'false'
	NumberLiteral                    // A number literal e.g. '12.5'
	StringLiteral                    // A string literal e.g. '"hello"'
)

// LiteralValue is the payload of a [Literal] expression, a tagged holder
// for one of nil, bool, number or string.
type LiteralValue struct {
	String string      // The string contents, unquoted. Set only for [StringLiteral]
	Number float64     // The numeric value. Set only for [NumberLiteral]
	Bool   bool        // The boolean value. Set only for [BoolLiteral]
	Kind   LiteralKind // Which variant this is
}

// Literal is a literal expression, one of nil, true, false, a number
// or a string.
type Literal struct {
	// Value is the literal payload.
	Value LiteralValue

	// Token is the literal's token.
	Token token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the literal's token.
func (l Literal) Start() token.Token { return l.Token }

// End also returns the literal's token.
func (l Literal) End() token.Token { return l.Token }

// Kind returns [KindLiteral].
func (l Literal) Kind() Kind { return KindLiteral }

// NodeID returns the expression's unique ID.
func (l Literal) NodeID() int { return l.ID }

// expressionNode marks a [Literal] as an [Expression].
func (l Literal) expressionNode() {}

// Variable is a variable reference in expression position.
type Variable struct {
	// Name is the variable's name.
	Name string

	// Token is the [token.Ident] naming the variable.
	Token token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the variable's name token.
func (v Variable) Start() token.Token { return v.Token }

// End also returns the variable's name token.
func (v Variable) End() token.Token { return v.Token }

// Kind returns [KindVariable].
func (v Variable) Kind() Kind { return KindVariable }

// NodeID returns the expression's unique ID.
func (v Variable) NodeID() int { return v.ID }

// expressionNode marks a [Variable] as an [Expression].
func (v Variable) expressionNode() {}

// Assign is an assignment expression, e.g. 'x = 12'.
//
// The target of the assignment is always a plain variable, the parser
// rejects any other assignment target.
type Assign struct {
	// Value is the expression whose result is assigned.
	Value Expression

	// Name is the name of the variable being assigned to.
	Name string

	// Token is the [token.Ident] naming the assignment target.
	Token token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the name token of the assignment target.
func (a Assign) Start() token.Token { return a.Token }

// End returns the last token of the assigned value expression.
func (a Assign) End() token.Token {
	if a.Value != nil {
		return a.Value.End()
	}

	return a.Token
}

// Kind returns [KindAssign].
func (a Assign) Kind() Kind { return KindAssign }

// NodeID returns the expression's unique ID.
func (a Assign) NodeID() int { return a.ID }

// expressionNode marks an [Assign] as an [Expression].
func (a Assign) expressionNode() {}

// Grouping is a parenthesised expression, e.g. '(1 + 2)'.
type Grouping struct {
	// Inner is the grouped expression.
	Inner Expression

	// LeftParen is the opening '('.
	LeftParen token.Token

	// RightParen is the closing ')'.
	RightParen token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the opening '('.
func (g Grouping) Start() token.Token { return g.LeftParen }

// End returns the closing ')'.
func (g Grouping) End() token.Token { return g.RightParen }

// Kind returns [KindGrouping].
func (g Grouping) Kind() Kind { return KindGrouping }

// NodeID returns the expression's unique ID.
func (g Grouping) NodeID() int { return g.ID }

// expressionNode marks a [Grouping] as an [Expression].
func (g Grouping) expressionNode() {}

// Unary is a unary expression, e.g. '-x' or '!ok'.
type Unary struct {
	// Right is the operand.
	Right Expression

	// Op is the operator token, one of [token.Minus] or [token.Bang].
	Op token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the operator token.
func (u Unary) Start() token.Token { return u.Op }

// End returns the last token of the operand.
func (u Unary) End() token.Token {
	if u.Right != nil {
		return u.Right.End()
	}

	return u.Op
}

// Kind returns [KindUnary].
func (u Unary) Kind() Kind { return KindUnary }

// NodeID returns the expression's unique ID.
func (u Unary) NodeID() int { return u.ID }

// expressionNode marks a [Unary] as an [Expression].
func (u Unary) expressionNode() {}

// Binary is a binary expression, e.g. '1 + 2' or 'a <= b'.
type Binary struct {
	// Left is the left operand.
	Left Expression

	// Right is the right operand.
	Right Expression

	// Op is the operator token.
	Op token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the first token of the left operand.
func (b Binary) Start() token.Token {
	if b.Left != nil {
		return b.Left.Start()
	}

	return b.Op
}

// End returns the last token of the right operand.
func (b Binary) End() token.Token {
	if b.Right != nil {
		return b.Right.End()
	}

	return b.Op
}

// Kind returns [KindBinary].
func (b Binary) Kind() Kind { return KindBinary }

// NodeID returns the expression's unique ID.
func (b Binary) NodeID() int { return b.ID }

// expressionNode marks a [Binary] as an [Expression].
func (b Binary) expressionNode() {}

// Logical is a short-circuiting logical expression, 'and' or 'or'.
//
// Unlike [Binary], the right operand is only evaluated if the left does
// not decide the result, and the result is the last evaluated operand
// itself, not a coerced bool.
type Logical struct {
	// Left is the left operand.
	Left Expression

	// Right is the right operand.
	Right Expression

	// Op is the operator token, one of [token.And] or [token.Or].
	Op token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the first token of the left operand.
func (l Logical) Start() token.Token {
	if l.Left != nil {
		return l.Left.Start()
	}

	return l.Op
}

// End returns the last token of the right operand.
func (l Logical) End() token.Token {
	if l.Right != nil {
		return l.Right.End()
	}

	return l.Op
}

// Kind returns [KindLogical].
func (l Logical) Kind() Kind { return KindLogical }

// NodeID returns the expression's unique ID.
func (l Logical) NodeID() int { return l.ID }

// expressionNode marks a [Logical] as an [Expression].
func (l Logical) expressionNode() {}

// Call is a call expression, e.g. 'f(1, 2)'.
type Call struct {
	// Callee is the expression evaluating to the thing being called.
	Callee Expression

	// Args are the argument expressions, in source order.
	Args []Expression

	// Paren is the closing ')' of the argument list, used for error
	// reporting on the call as a whole.
	Paren token.Token

	// ID is the expression's unique ID.
	ID int
}

// Start returns the first token of the callee.
func (c Call) Start() token.Token {
	if c.Callee != nil {
		return c.Callee.Start()
	}

	return c.Paren
}

// End returns the closing ')'.
func (c Call) End() token.Token { return c.Paren }

// Kind returns [KindCall].
func (c Call) Kind() Kind { return KindCall }

// NodeID returns the expression's unique ID.
func (c Call) NodeID() int { return c.ID }

// expressionNode marks a [Call] as an [Expression].
func (c Call) expressionNode() {}
