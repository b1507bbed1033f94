package interpreter_test

import (
	"math"
	"testing"

	"go.followtheprocess.codes/lox/internal/interpreter"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/test"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name  string            // Name of the test case
		value interpreter.Value // Value under test
		want  string            // Expected display form
	}{
		{name: "nil", value: interpreter.Nil{}, want: "nil"},
		{name: "true", value: interpreter.Boolean(true), want: "true"},
		{name: "false", value: interpreter.Boolean(false), want: "false"},
		{name: "integral number", value: interpreter.Number(120), want: "120"},
		{name: "integral number no trailing zero", value: interpreter.Number(3.0), want: "3"},
		{name: "negative number", value: interpreter.Number(-2), want: "-2"},
		{name: "fractional number", value: interpreter.Number(0.5), want: "0.5"},
		{name: "shortest round trip", value: interpreter.Number(0.30000000000000004), want: "0.30000000000000004"},
		{name: "string", value: interpreter.String("hello"), want: "hello"},
		{name: "empty string", value: interpreter.String(""), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, interpreter.Display(tt.value), tt.want)
		})
	}
}

func TestDisplayFunction(t *testing.T) {
	declaration := ast.FunctionStatement{Name: ast.Ident{Name: "add"}}

	fn := interpreter.NewFunction(declaration, interpreter.NewEnvironment())

	test.Equal(t, interpreter.Display(fn), "<fn add>")
	test.Equal(t, fn.Arity(), 0)
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string            // Name of the test case
		value interpreter.Value // Value under test
		want  bool              // Expected truthiness
	}{
		{name: "nil is falsey", value: interpreter.Nil{}, want: false},
		{name: "false is falsey", value: interpreter.Boolean(false), want: false},
		{name: "true is truthy", value: interpreter.Boolean(true), want: true},
		{name: "zero is truthy", value: interpreter.Number(0), want: true},
		{name: "number is truthy", value: interpreter.Number(12), want: true},
		{name: "empty string is truthy", value: interpreter.String(""), want: true},
		{name: "string is truthy", value: interpreter.String("hi"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, interpreter.Truthy(tt.value), tt.want)
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string            // Name of the test case
		a    interpreter.Value // Left operand
		b    interpreter.Value // Right operand
		want bool              // Expected equality
	}{
		{name: "both nil", a: interpreter.Nil{}, b: interpreter.Nil{}, want: true},
		{name: "nil and number", a: interpreter.Nil{}, b: interpreter.Number(0), want: false},
		{name: "number and nil", a: interpreter.Number(0), b: interpreter.Nil{}, want: false},
		{name: "equal numbers", a: interpreter.Number(1), b: interpreter.Number(1), want: true},
		{name: "unequal numbers", a: interpreter.Number(1), b: interpreter.Number(2), want: false},
		{name: "nan is not equal to itself", a: interpreter.Number(math.NaN()), b: interpreter.Number(math.NaN()), want: false},
		{name: "equal strings", a: interpreter.String("a"), b: interpreter.String("a"), want: true},
		{name: "unequal strings", a: interpreter.String("a"), b: interpreter.String("b"), want: false},
		{name: "string and number never equal", a: interpreter.String("1"), b: interpreter.Number(1), want: false},
		{name: "bools", a: interpreter.Boolean(true), b: interpreter.Boolean(true), want: true},
		{name: "bool and number never equal", a: interpreter.Boolean(true), b: interpreter.Number(1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, interpreter.Equal(tt.a, tt.b), tt.want)

			// Equality is symmetric
			test.Equal(t, interpreter.Equal(tt.b, tt.a), tt.want)
		})
	}
}

func TestEqualCallablesByIdentity(t *testing.T) {
	declaration := ast.FunctionStatement{Name: ast.Ident{Name: "f"}}

	env := interpreter.NewEnvironment()

	a := interpreter.NewFunction(declaration, env)
	b := interpreter.NewFunction(declaration, env)

	test.True(t, interpreter.Equal(a, a), test.Context("a callable should equal itself"))
	test.True(t, !interpreter.Equal(a, b), test.Context("distinct callables should not be equal"))
}
