// Package interpreter implements the tree-walking evaluator for lox.
//
// The interpreter consumes the AST produced by the parser together with the
// resolution side table produced by the resolver, maintaining a chain of
// [Environment]s as it recursively executes statements and evaluates
// expressions. Closures capture the environment active at their point of
// definition, print statements write to the configured stdout and runtime
// errors abort the current run.
package interpreter

import (
	"errors"
	"fmt"
	"io"
	"maps"

	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// RuntimeError is an error raised during evaluation, carrying the offending
// token for line information.
type RuntimeError struct {
	Msg   string      // A descriptive message explaining the error
	Token token.Token // The token evaluation failed on
}

// Error implements the error interface for a [*RuntimeError].
func (r *RuntimeError) Error() string {
	return r.Msg
}

// Interpreter is the lox tree-walking interpreter.
//
// An Interpreter may execute any number of programs in sequence (e.g. the
// lines of a REPL session), globals persist between runs.
type Interpreter struct {
	globals     *Environment        // The global frame, natives live here
	environment *Environment        // The currently active frame
	locals      resolver.Resolution // Scope depths for every local variable reference
	stdout      io.Writer           // print statements write here
}

// New returns a new [Interpreter] with the native library installed into
// it's global frame, writing program output to stdout.
func New(stdout io.Writer) *Interpreter {
	globals := NewEnvironment()

	for name, native := range library() {
		globals.Define(name, native)
	}

	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(resolver.Resolution),
		stdout:      stdout,
	}
}

// Interpret executes a resolved program to completion.
//
// The resolution table is merged into the interpreter's own, so successive
// calls (REPL lines) accumulate resolutions as long as expression node IDs
// remain unique across parses.
//
// The first runtime error aborts execution and is returned, already
// executed side effects are not rolled back.
func (i *Interpreter) Interpret(program ast.Program, resolution resolver.Resolution) error {
	maps.Copy(i.locals, resolution)

	for _, statement := range program.Statements {
		if err := i.execute(statement); err != nil {
			var runtimeErr *RuntimeError
			if errors.As(err, &runtimeErr) {
				return runtimeErr
			}

			// A return unwind escaping to the top level is prevented
			// statically by the resolver, anything else here is an
			// internal invariant violation
			return fmt.Errorf("internal error: %w", err)
		}
	}

	return nil
}

// execute executes a single statement for it's side effects.
func (i *Interpreter) execute(statement ast.Statement) error {
	switch stmt := statement.(type) {
	case ast.ExpressionStatement:
		_, err := i.evaluate(stmt.Expression)
		return err
	case ast.PrintStatement:
		value, err := i.evaluate(stmt.Expression)
		if err != nil {
			return err
		}

		fmt.Fprintln(i.stdout, Display(value))

		return nil
	case ast.VarStatement:
		var value Value = Nil{}

		if stmt.Initialiser != nil {
			initialised, err := i.evaluate(stmt.Initialiser)
			if err != nil {
				return err
			}

			value = initialised
		}

		i.environment.Define(stmt.Name.Name, value)

		return nil
	case ast.Block:
		return i.executeBlock(stmt.Statements, i.environment.Child())
	case ast.IfStatement:
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if Truthy(condition) {
			return i.execute(stmt.Then)
		}

		if stmt.Else != nil {
			return i.execute(stmt.Else)
		}

		return nil
	case ast.WhileStatement:
		for {
			condition, err := i.evaluate(stmt.Condition)
			if err != nil {
				return err
			}

			if !Truthy(condition) {
				return nil
			}

			if err := i.execute(stmt.Body); err != nil {
				return err
			}
		}
	case ast.FunctionStatement:
		i.environment.Define(stmt.Name.Name, NewFunction(stmt, i.environment))
		return nil
	case ast.ReturnStatement:
		var value Value = Nil{}

		if stmt.Value != nil {
			returned, err := i.evaluate(stmt.Value)
			if err != nil {
				return err
			}

			value = returned
		}

		return returnSignal{value: value}
	default:
		return fmt.Errorf("unhandled ast statement: %T", stmt)
	}
}

// executeBlock executes a list of statements with the given environment as
// the active frame, restoring the previous frame on every exit path: normal
// completion, runtime error and return unwind alike.
func (i *Interpreter) executeBlock(statements []ast.Statement, environment *Environment) error {
	previous := i.environment
	i.environment = environment

	defer func() {
		i.environment = previous
	}()

	for _, statement := range statements {
		if err := i.execute(statement); err != nil {
			return err
		}
	}

	return nil
}

// evaluate evaluates a single expression, yielding its value.
func (i *Interpreter) evaluate(expression ast.Expression) (Value, error) {
	switch expr := expression.(type) {
	case ast.Literal:
		return literalValue(expr.Value), nil
	case ast.Grouping:
		return i.evaluate(expr.Inner)
	case ast.Variable:
		return i.lookUpVariable(expr)
	case ast.Assign:
		return i.evaluateAssign(expr)
	case ast.Unary:
		return i.evaluateUnary(expr)
	case ast.Binary:
		return i.evaluateBinary(expr)
	case ast.Logical:
		return i.evaluateLogical(expr)
	case ast.Call:
		return i.evaluateCall(expr)
	default:
		return nil, fmt.Errorf("unhandled ast expression: %T", expr)
	}
}

// literalValue converts an ast literal payload into a runtime [Value].
func literalValue(literal ast.LiteralValue) Value {
	switch literal.Kind {
	case ast.BoolLiteral:
		return Boolean(literal.Bool)
	case ast.NumberLiteral:
		return Number(literal.Number)
	case ast.StringLiteral:
		return String(literal.String)
	default:
		return Nil{}
	}
}

// lookUpVariable reads a variable, at the statically resolved depth if one
// was recorded, otherwise from the global frame.
func (i *Interpreter) lookUpVariable(variable ast.Variable) (Value, error) {
	if depth, ok := i.locals[variable.ID]; ok {
		return i.environment.GetAt(depth, variable.Name), nil
	}

	return i.globals.Get(variable.Token, variable.Name)
}

// evaluateAssign evaluates an assignment expression, the assignment itself
// evaluates to the assigned value.
func (i *Interpreter) evaluateAssign(assign ast.Assign) (Value, error) {
	value, err := i.evaluate(assign.Value)
	if err != nil {
		return nil, err
	}

	if depth, ok := i.locals[assign.ID]; ok {
		i.environment.AssignAt(depth, assign.Name, value)
		return value, nil
	}

	if err := i.globals.Assign(assign.Token, assign.Name, value); err != nil {
		return nil, err
	}

	return value, nil
}

// evaluateUnary evaluates a unary expression.
func (i *Interpreter) evaluateUnary(unary ast.Unary) (Value, error) {
	right, err := i.evaluate(unary.Right)
	if err != nil {
		return nil, err
	}

	switch unary.Op.Kind {
	case token.Minus:
		number, ok := right.(Number)
		if !ok {
			return nil, &RuntimeError{Token: unary.Op, Msg: "Operand must be a number."}
		}

		return -number, nil
	case token.Bang:
		return Boolean(!Truthy(right)), nil
	default:
		return nil, fmt.Errorf("unhandled unary operator: %s", unary.Op.Kind)
	}
}

// evaluateBinary evaluates a binary expression, operands are evaluated
// left to right before the operator is dispatched.
func (i *Interpreter) evaluateBinary(binary ast.Binary) (Value, error) {
	left, err := i.evaluate(binary.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.evaluate(binary.Right)
	if err != nil {
		return nil, err
	}

	switch binary.Op.Kind {
	case token.Plus:
		return i.evaluatePlus(binary, left, right)
	case token.Minus:
		l, r, err := i.numberOperands(binary, left, right)
		if err != nil {
			return nil, err
		}

		return l - r, nil
	case token.Star:
		l, r, err := i.numberOperands(binary, left, right)
		if err != nil {
			return nil, err
		}

		return l * r, nil
	case token.Slash:
		l, r, err := i.numberOperands(binary, left, right)
		if err != nil {
			return nil, err
		}

		// Division by zero is not an error, it yields IEEE inf/nan
		return l / r, nil
	case token.Greater:
		l, r, err := i.numberOperands(binary, left, right)
		if err != nil {
			return nil, err
		}

		return Boolean(l > r), nil
	case token.GreaterEqual:
		l, r, err := i.numberOperands(binary, left, right)
		if err != nil {
			return nil, err
		}

		return Boolean(l >= r), nil
	case token.Less:
		l, r, err := i.numberOperands(binary, left, right)
		if err != nil {
			return nil, err
		}

		return Boolean(l < r), nil
	case token.LessEqual:
		l, r, err := i.numberOperands(binary, left, right)
		if err != nil {
			return nil, err
		}

		return Boolean(l <= r), nil
	case token.EqualEqual:
		return Boolean(Equal(left, right)), nil
	case token.BangEqual:
		return Boolean(!Equal(left, right)), nil
	default:
		return nil, fmt.Errorf("unhandled binary operator: %s", binary.Op.Kind)
	}
}

// evaluatePlus dispatches the '+' operator, which is addition for two
// numbers and concatenation for two strings.
func (i *Interpreter) evaluatePlus(binary ast.Binary, left, right Value) (Value, error) {
	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			return l + r, nil
		}
	}

	if l, ok := left.(String); ok {
		if r, ok := right.(String); ok {
			return l + r, nil
		}
	}

	return nil, &RuntimeError{Token: binary.Op, Msg: "Operands must be two numbers or two strings."}
}

// numberOperands asserts that both operands of a binary expression are
// numbers, returning them unboxed.
func (i *Interpreter) numberOperands(binary ast.Binary, left, right Value) (Number, Number, error) {
	l, ok := left.(Number)
	if !ok {
		return 0, 0, &RuntimeError{Token: binary.Op, Msg: "Operands must be numbers."}
	}

	r, ok := right.(Number)
	if !ok {
		return 0, 0, &RuntimeError{Token: binary.Op, Msg: "Operands must be numbers."}
	}

	return l, r, nil
}

// evaluateLogical evaluates a short-circuiting 'and' or 'or' expression,
// yielding the last evaluated operand itself, not a coerced bool.
func (i *Interpreter) evaluateLogical(logical ast.Logical) (Value, error) {
	left, err := i.evaluate(logical.Left)
	if err != nil {
		return nil, err
	}

	if logical.Op.Kind == token.Or {
		if Truthy(left) {
			return left, nil
		}
	} else {
		if !Truthy(left) {
			return left, nil
		}
	}

	return i.evaluate(logical.Right)
}

// evaluateCall evaluates a call expression: the callee first, then the
// arguments left to right, then the invocation itself.
func (i *Interpreter) evaluateCall(call ast.Call) (Value, error) {
	callee, err := i.evaluate(call.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(call.Args))

	for _, arg := range call.Args {
		value, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, value)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: call.Paren, Msg: "Can only call functions and classes."}
	}

	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Token: call.Paren,
			Msg:   fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}

	result, err := callable.Call(i, args)
	if err != nil {
		var runtimeErr *RuntimeError
		if errors.As(err, &runtimeErr) {
			return nil, runtimeErr
		}

		// A native failed with a plain Go error, surface it as a runtime
		// error at the call site
		return nil, &RuntimeError{Token: call.Paren, Msg: err.Error()}
	}

	return result, nil
}
