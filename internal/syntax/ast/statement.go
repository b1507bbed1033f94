package ast

import "go.followtheprocess.codes/lox/internal/syntax/token"

// ExpressionStatement is an expression evaluated for it's side effects,
// e.g. 'f(x);'.
type ExpressionStatement struct {
	// Expression is the expression to evaluate.
	Expression Expression

	// Semicolon is the terminating ';'.
	Semicolon token.Token
}

// Start returns the first token of the expression.
func (e ExpressionStatement) Start() token.Token {
	if e.Expression != nil {
		return e.Expression.Start()
	}

	return e.Semicolon
}

// End returns the terminating ';'.
func (e ExpressionStatement) End() token.Token { return e.Semicolon }

// Kind returns [KindExpressionStatement].
func (e ExpressionStatement) Kind() Kind { return KindExpressionStatement }

// statementNode marks an [ExpressionStatement] as a [Statement].
func (e ExpressionStatement) statementNode() {}

// PrintStatement writes the display form of an expression followed by a
// newline to standard output, e.g. 'print x;'.
type PrintStatement struct {
	// Expression is the expression whose value is printed.
	Expression Expression

	// Keyword is the 'print' token.
	Keyword token.Token

	// Semicolon is the terminating ';'.
	Semicolon token.Token
}

// Start returns the 'print' keyword.
func (p PrintStatement) Start() token.Token { return p.Keyword }

// End returns the terminating ';'.
func (p PrintStatement) End() token.Token { return p.Semicolon }

// Kind returns [KindPrintStatement].
func (p PrintStatement) Kind() Kind { return KindPrintStatement }

// statementNode marks a [PrintStatement] as a [Statement].
func (p PrintStatement) statementNode() {}

// VarStatement is a variable declaration, e.g. 'var x = 1;'.
type VarStatement struct {
	// Initialiser is the optional initialiser expression, nil if the
	// variable was declared without a value, in which case it is nil
	// at runtime too.
	Initialiser Expression

	// Name is the declared variable's name.
	Name Ident

	// Keyword is the 'var' token.
	Keyword token.Token

	// Semicolon is the terminating ';'.
	Semicolon token.Token
}

// Start returns the 'var' keyword.
func (v VarStatement) Start() token.Token { return v.Keyword }

// End returns the terminating ';'.
func (v VarStatement) End() token.Token { return v.Semicolon }

// Kind returns [KindVarStatement].
func (v VarStatement) Kind() Kind { return KindVarStatement }

// statementNode marks a [VarStatement] as a [Statement].
func (v VarStatement) statementNode() {}

// Block is a braced sequence of statements introducing a new scope.
type Block struct {
	// Statements are the block's statements, in source order.
	Statements []Statement

	// LeftBrace is the opening '{'.
	LeftBrace token.Token

	// RightBrace is the closing '}'.
	RightBrace token.Token
}

// Start returns the opening '{'.
func (b Block) Start() token.Token { return b.LeftBrace }

// End returns the closing '}'.
func (b Block) End() token.Token { return b.RightBrace }

// Kind returns [KindBlock].
func (b Block) Kind() Kind { return KindBlock }

// statementNode marks a [Block] as a [Statement].
func (b Block) statementNode() {}

// IfStatement is a conditional, e.g. 'if (c) then else other'.
type IfStatement struct {
	// Condition is the condition expression.
	Condition Expression

	// Then is the statement executed when Condition is truthy.
	Then Statement

	// Else is the statement executed when Condition is falsey, nil if
	// no 'else' clause was present.
	Else Statement

	// Keyword is the 'if' token.
	Keyword token.Token
}

// Start returns the 'if' keyword.
func (i IfStatement) Start() token.Token { return i.Keyword }

// End returns the last token of the else branch if present, otherwise of
// the then branch.
func (i IfStatement) End() token.Token {
	if i.Else != nil {
		return i.Else.End()
	}

	if i.Then != nil {
		return i.Then.End()
	}

	return i.Keyword
}

// Kind returns [KindIfStatement].
func (i IfStatement) Kind() Kind { return KindIfStatement }

// statementNode marks an [IfStatement] as a [Statement].
func (i IfStatement) statementNode() {}

// WhileStatement is a loop, e.g. 'while (c) body'.
//
// There is no dedicated for loop node, the parser desugars 'for' into an
// enclosing [Block] and a [WhileStatement].
type WhileStatement struct {
	// Condition is the loop condition.
	Condition Expression

	// Body is the loop body.
	Body Statement

	// Keyword is the 'while' token.
	Keyword token.Token
}

// Start returns the 'while' keyword.
func (w WhileStatement) Start() token.Token { return w.Keyword }

// End returns the last token of the body.
func (w WhileStatement) End() token.Token {
	if w.Body != nil {
		return w.Body.End()
	}

	return w.Keyword
}

// Kind returns [KindWhileStatement].
func (w WhileStatement) Kind() Kind { return KindWhileStatement }

// statementNode marks a [WhileStatement] as a [Statement].
func (w WhileStatement) statementNode() {}

// FunctionStatement is a function declaration, e.g. 'fun f(a, b) { ... }'.
type FunctionStatement struct {
	// Params are the parameter names, in source order.
	Params []Ident

	// Name is the declared function's name.
	Name Ident

	// Body is the function body.
	Body Block

	// Keyword is the 'fun' token.
	Keyword token.Token
}

// Start returns the 'fun' keyword.
func (f FunctionStatement) Start() token.Token { return f.Keyword }

// End returns the closing '}' of the body.
func (f FunctionStatement) End() token.Token { return f.Body.End() }

// Kind returns [KindFunctionStatement].
func (f FunctionStatement) Kind() Kind { return KindFunctionStatement }

// statementNode marks a [FunctionStatement] as a [Statement].
func (f FunctionStatement) statementNode() {}

// ReturnStatement returns from the enclosing function, e.g. 'return x;'.
type ReturnStatement struct {
	// Value is the optional return value expression, nil if the return
	// had no value, in which case the function returns nil.
	Value Expression

	// Keyword is the 'return' token.
	Keyword token.Token

	// Semicolon is the terminating ';'.
	Semicolon token.Token
}

// Start returns the 'return' keyword.
func (r ReturnStatement) Start() token.Token { return r.Keyword }

// End returns the terminating ';'.
func (r ReturnStatement) End() token.Token { return r.Semicolon }

// Kind returns [KindReturnStatement].
func (r ReturnStatement) Kind() Kind { return KindReturnStatement }

// statementNode marks a [ReturnStatement] as a [Statement].
func (r ReturnStatement) statementNode() {}
