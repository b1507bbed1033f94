// Package resolver implements the static resolution pass over the AST.
//
// The resolver runs between parsing and interpretation. It walks the tree
// maintaining a stack of block-local scopes and, for every variable
// reference and assignment, records how many environments separate the use
// from the declaration. The interpreter uses this side table to look
// variables up at a fixed distance, which is what makes closures see the
// environment they were defined in rather than the one they are called in.
//
// It also reports the static errors a correct program can never contain:
// reading a variable in its own initialiser, redeclaring a variable in the
// same local scope and returning from outside a function.
package resolver

import (
	"errors"
	"fmt"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// ErrResolve is a generic resolving error, details on the error are passed
// to the resolver's [syntax.ErrorHandler] at the moment it occurs.
var ErrResolve = errors.New("resolve error")

// Resolution is the resolver's output, a side table mapping expression node
// IDs to lexical depths.
//
// A depth d means "the binding lives in the environment reached by walking
// exactly d enclosing links from the environment active when the expression
// is evaluated". Expressions absent from the table refer to globals.
type Resolution map[int]int

// Lookup returns the recorded depth for the given expression and whether
// one was recorded at all. Expressions with no recorded depth are global
// references.
func (r Resolution) Lookup(expression ast.Expression) (depth int, ok bool) {
	depth, ok = r[expression.NodeID()]
	return depth, ok
}

// functionContext tracks what kind of function body, if any, the resolver
// is currently inside.
type functionContext int

const (
	contextNone     functionContext = iota // Top level code
	contextFunction                        // Inside a function declaration
)

// Resolver is the static resolver for lox programs.
type Resolver struct {
	handler     syntax.ErrorHandler // The installed error handler, to be called in response to resolution errors
	resolution  Resolution          // Scope depths recorded so far
	name        string              // The name of the file being resolved
	scopes      []map[string]bool   // Stack of local scopes, name -> fully defined
	diagnostics []syntax.Diagnostic // Diagnostics collected during resolving
	context     functionContext     // What kind of function we are currently resolving, if any
	hadErrors   bool                // Whether we encountered resolution errors
}

// New returns a new [Resolver].
func New(name string, handler syntax.ErrorHandler) *Resolver {
	return &Resolver{
		handler:    handler,
		resolution: make(Resolution),
		name:       name,
	}
}

// Resolve resolves an [ast.Program], returning the [Resolution] side table
// to be handed to the interpreter.
//
// In the presence of an error, Resolve returns [ErrResolve], for more
// detail the installed error handler is called as each error is found, or
// call [Resolver.Diagnostics].
func (r *Resolver) Resolve(program ast.Program) (Resolution, error) {
	for _, statement := range program.Statements {
		r.resolveStatement(statement)
	}

	if r.hadErrors {
		return nil, ErrResolve
	}

	return r.resolution, nil
}

// Diagnostics returns the diagnostics gathered during resolving.
func (r *Resolver) Diagnostics() []syntax.Diagnostic {
	return r.diagnostics
}

// error reports a resolution error at the given token, composing the
// canonical "Error at '<lexeme>': <msg>" message.
func (r *Resolver) error(tok token.Token, lexeme, msg string) {
	r.hadErrors = true

	position := syntax.Position{
		Name:     r.name,
		Offset:   tok.Start,
		Line:     tok.Line,
		StartCol: tok.Col,
		EndCol:   tok.Col + (tok.End - tok.Start),
	}

	full := fmt.Sprintf("Error at '%s': %s", lexeme, msg)

	r.diagnostics = append(r.diagnostics, syntax.Diagnostic{Msg: full, Position: position})

	if r.handler != nil {
		r.handler(position, full)
	}
}

// beginScope pushes a new, empty local scope onto the stack.
func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

// endScope pops the innermost scope off the stack.
func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare records the name in the innermost scope as declared but not yet
// defined, so that the variable's own initialiser cannot read it.
//
// Declarations at global scope are not tracked.
func (r *Resolver) declare(name ast.Ident) {
	if len(r.scopes) == 0 {
		return
	}

	scope := r.scopes[len(r.scopes)-1]

	if _, exists := scope[name.Name]; exists {
		r.error(name.Token, name.Name, "Variable with this name already declared in this scope.")
	}

	scope[name.Name] = false
}

// define marks a previously declared name as fully defined and safe to read.
func (r *Resolver) define(name ast.Ident) {
	if len(r.scopes) == 0 {
		return
	}

	r.scopes[len(r.scopes)-1][name.Name] = true
}

// resolveLocal scans the scope stack innermost-outward for the name and, on
// the first match, records the number of scopes between the use and the
// declaration in the side table.
//
// If the name is in no local scope it is left unresolved, meaning global.
//
// Note the signed, downward iteration: an unsigned index would never
// terminate once it wrapped past zero.
func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.resolution[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

// resolveStatement resolves a single statement.
func (r *Resolver) resolveStatement(statement ast.Statement) {
	switch stmt := statement.(type) {
	case ast.VarStatement:
		r.declare(stmt.Name)

		if stmt.Initialiser != nil {
			r.resolveExpression(stmt.Initialiser)
		}

		r.define(stmt.Name)
	case ast.FunctionStatement:
		// Declare and define eagerly so the function may refer to itself
		// recursively inside it's own body
		r.declare(stmt.Name)
		r.define(stmt.Name)

		r.resolveFunction(stmt)
	case ast.Block:
		r.beginScope()

		for _, inner := range stmt.Statements {
			r.resolveStatement(inner)
		}

		r.endScope()
	case ast.ExpressionStatement:
		r.resolveExpression(stmt.Expression)
	case ast.PrintStatement:
		r.resolveExpression(stmt.Expression)
	case ast.IfStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.Then)

		if stmt.Else != nil {
			r.resolveStatement(stmt.Else)
		}
	case ast.WhileStatement:
		r.resolveExpression(stmt.Condition)
		r.resolveStatement(stmt.Body)
	case ast.ReturnStatement:
		if r.context == contextNone {
			r.error(stmt.Keyword, "return", "Cannot return from top-level code.")
		}

		if stmt.Value != nil {
			r.resolveExpression(stmt.Value)
		}
	}
}

// resolveFunction resolves a function declaration's parameters and body in
// a fresh scope, tracking that we are now inside a function.
func (r *Resolver) resolveFunction(function ast.FunctionStatement) {
	enclosing := r.context
	r.context = contextFunction

	r.beginScope()

	for _, param := range function.Params {
		r.declare(param)
		r.define(param)
	}

	// The body's statements are resolved directly in the function scope,
	// not via the Block case, so parameters and body share a scope
	for _, statement := range function.Body.Statements {
		r.resolveStatement(statement)
	}

	r.endScope()

	r.context = enclosing
}

// resolveExpression resolves a single expression.
func (r *Resolver) resolveExpression(expression ast.Expression) {
	switch expr := expression.(type) {
	case ast.Variable:
		if len(r.scopes) > 0 {
			if defined, present := r.scopes[len(r.scopes)-1][expr.Name]; present && !defined {
				r.error(expr.Token, expr.Name, "Cannot read local variable in its own initializer.")
			}
		}

		r.resolveLocal(expr.ID, expr.Name)
	case ast.Assign:
		r.resolveExpression(expr.Value)
		r.resolveLocal(expr.ID, expr.Name)
	case ast.Grouping:
		r.resolveExpression(expr.Inner)
	case ast.Unary:
		r.resolveExpression(expr.Right)
	case ast.Binary:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)
	case ast.Logical:
		r.resolveExpression(expr.Left)
		r.resolveExpression(expr.Right)
	case ast.Call:
		r.resolveExpression(expr.Callee)

		for _, arg := range expr.Args {
			r.resolveExpression(arg)
		}
	case ast.Literal:
		// Literals resolve to themselves, nothing to do
	}
}
