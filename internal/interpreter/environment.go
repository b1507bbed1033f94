package interpreter

import (
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// Environment is a single frame in the chain of scopes, mapping names to
// values with an optional link to the enclosing frame.
//
// Environments are reference-shared, closures capture the frame that was
// active at their point of definition and keep it alive for as long as the
// closure itself lives. Cycles (a function stored in the very environment
// it captures) are genuine and are collected by the Go garbage collector.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new, empty [Environment] with no enclosing
// frame, i.e. a global frame.
func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]Value),
	}
}

// Child creates a new empty [Environment] enclosed by the calling one.
func (e *Environment) Child() *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: e,
	}
}

// Define unconditionally installs a binding in this frame, shadowing any
// binding of the same name in enclosing frames.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get walks the scope chain outwards and returns the first binding for the
// name, or a runtime error at the given token if no frame contains it.
func (e *Environment) Get(tok token.Token, name string) (Value, error) {
	if value, ok := e.values[name]; ok {
		return value, nil
	}

	if e.enclosing != nil {
		return e.enclosing.Get(tok, name)
	}

	return nil, &RuntimeError{Token: tok, Msg: "Undefined variable '" + name + "'."}
}

// Assign walks the scope chain outwards and updates the first frame that
// contains the name, or returns a runtime error at the given token if no
// frame does.
func (e *Environment) Assign(tok token.Token, name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}

	if e.enclosing != nil {
		return e.enclosing.Assign(tok, name, value)
	}

	return &RuntimeError{Token: tok, Msg: "Undefined variable '" + name + "'."}
}

// GetAt returns the binding for name in the frame exactly distance links up
// the chain, without searching any further.
//
// The resolver guarantees the binding is present at that depth.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt updates the binding for name in the frame exactly distance links
// up the chain, without searching any further.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).values[name] = value
}

// ancestor returns the frame exactly distance enclosing links away.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for range distance {
		env = env.enclosing
	}

	return env
}
