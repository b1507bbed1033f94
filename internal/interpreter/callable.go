package interpreter

import (
	"errors"

	"go.followtheprocess.codes/lox/internal/syntax/ast"
)

// Callable is a [Value] that may be invoked with arguments, either a
// user-declared function or a native built in.
type Callable interface {
	Value

	// Arity returns the number of parameters the callable accepts, a call
	// with any other number of arguments is a runtime error.
	Arity() int

	// Call invokes the callable with the given arguments.
	Call(interpreter *Interpreter, args []Value) (Value, error)

	// String returns the callable's printable representation.
	String() string
}

// returnSignal is the non-local control flow used to implement return
// statements, it unwinds through statement execution as an error value but
// is not an error: it is caught (only) by the [Function] invocation that
// owns the executing body.
type returnSignal struct {
	value Value
}

// Error implements the error interface so a returnSignal can tunnel
// through nested block and loop execution.
func (r returnSignal) Error() string {
	return "return"
}

// Function is a user-declared lox function together with the environment
// captured at its point of definition, i.e. a closure.
type Function struct {
	declaration ast.FunctionStatement
	closure     *Environment
}

// NewFunction returns a new [Function] for the given declaration, capturing
// the given environment as it's closure.
func NewFunction(declaration ast.FunctionStatement, closure *Environment) *Function {
	return &Function{
		declaration: declaration,
		closure:     closure,
	}
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call executes the function's body in a fresh environment enclosed by the
// closure, with the parameters bound to the arguments.
//
// A return statement anywhere in the body unwinds to here, its value
// becoming the call's result. Falling off the end of the body yields nil.
func (f *Function) Call(interpreter *Interpreter, args []Value) (Value, error) {
	environment := f.closure.Child()

	for i, param := range f.declaration.Params {
		environment.Define(param.Name, args[i])
	}

	err := interpreter.executeBlock(f.declaration.Body.Statements, environment)
	if err != nil {
		var ret returnSignal
		if errors.As(err, &ret) {
			return ret.value, nil
		}

		return nil, err
	}

	return Nil{}, nil
}

// String returns the function's printable representation.
func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Name + ">"
}

// value marks a [*Function] as a [Value].
func (f *Function) value() {}

// Native is a built in function implemented in Go.
type Native struct {
	fn    func(args []Value) (Value, error)
	name  string
	arity int
}

// Arity returns the number of arguments the native accepts.
func (n *Native) Arity() int {
	return n.arity
}

// Call invokes the native implementation.
func (n *Native) Call(interpreter *Interpreter, args []Value) (Value, error) {
	return n.fn(args)
}

// String returns the native's printable representation.
func (n *Native) String() string {
	return "<native fn>"
}

// value marks a [*Native] as a [Value].
func (n *Native) value() {}
