package resolver_test

import (
	"fmt"
	"strings"
	"testing"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/parser"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestResolveDepths(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := `fun outer() {
  var x = 1;
  fun inner() {
    print x;
  }
  inner();
}`

	program := mustParse(t, src)

	res := resolver.New("depths", testFailHandler(t))

	resolution, err := res.Resolve(program)
	test.Ok(t, err)

	outer, ok := program.Statements[0].(ast.FunctionStatement)
	test.True(t, ok, test.Context("expected a function statement, got %T", program.Statements[0]))

	inner, ok := outer.Body.Statements[1].(ast.FunctionStatement)
	test.True(t, ok, test.Context("expected the inner function, got %T", outer.Body.Statements[1]))

	// 'x' inside inner crosses one function boundary from its declaration
	innerPrint, ok := inner.Body.Statements[0].(ast.PrintStatement)
	test.True(t, ok, test.Context("expected a print statement, got %T", inner.Body.Statements[0]))

	x, ok := innerPrint.Expression.(ast.Variable)
	test.True(t, ok, test.Context("expected a variable, got %T", innerPrint.Expression))

	depth, ok := resolution.Lookup(x)
	test.True(t, ok, test.Context("'x' should have been resolved locally"))
	test.Equal(t, depth, 1)

	// The call to inner() is in the same scope as the declaration
	call, ok := outer.Body.Statements[2].(ast.ExpressionStatement)
	test.True(t, ok, test.Context("expected an expression statement, got %T", outer.Body.Statements[2]))

	callee, ok := call.Expression.(ast.Call)
	test.True(t, ok, test.Context("expected a call, got %T", call.Expression))

	innerRef, ok := callee.Callee.(ast.Variable)
	test.True(t, ok, test.Context("expected a variable callee, got %T", callee.Callee))

	depth, ok = resolution.Lookup(innerRef)
	test.True(t, ok, test.Context("'inner' should have been resolved locally"))
	test.Equal(t, depth, 0)
}

func TestClosureResolution(t *testing.T) {
	defer goleak.VerifyNone(t)

	// The canonical closure program: the 'a' captured by showA must stay
	// bound to the global, not the shadowing block-local declared later
	src := `var a = "global";
{
  fun showA() {
    print a;
  }
  showA();
  var a = "block";
  showA();
}`

	program := mustParse(t, src)

	res := resolver.New("closure", testFailHandler(t))

	resolution, err := res.Resolve(program)
	test.Ok(t, err)

	block, ok := program.Statements[1].(ast.Block)
	test.True(t, ok, test.Context("expected a block, got %T", program.Statements[1]))

	showA, ok := block.Statements[0].(ast.FunctionStatement)
	test.True(t, ok, test.Context("expected a function, got %T", block.Statements[0]))

	bodyPrint, ok := showA.Body.Statements[0].(ast.PrintStatement)
	test.True(t, ok, test.Context("expected a print, got %T", showA.Body.Statements[0]))

	a, ok := bodyPrint.Expression.(ast.Variable)
	test.True(t, ok, test.Context("expected a variable, got %T", bodyPrint.Expression))

	// At the point showA's body is resolved, no local 'a' exists yet, so
	// the reference must be left unresolved, i.e. global
	_, ok = resolution.Lookup(a)
	test.True(t, !ok, test.Context("'a' inside showA should resolve to the global, not the later block-local"))
}

func TestStaticErrors(t *testing.T) {
	tests := []struct {
		name string   // Name of the test case
		src  string   // Source text to resolve
		want []string // Expected diagnostics as "line: message"
	}{
		{
			name: "return outside a function",
			src:  "return 1;",
			want: []string{"1: Error at 'return': Cannot return from top-level code."},
		},
		{
			name: "read in own initialiser",
			src:  "{\n  var a = a;\n}",
			want: []string{"2: Error at 'a': Cannot read local variable in its own initializer."},
		},
		{
			name: "redeclaration in the same scope",
			src:  "{\n  var x;\n  var x;\n}",
			want: []string{"3: Error at 'x': Variable with this name already declared in this scope."},
		},
		{
			name: "parameter shadowed by redeclaration",
			src:  "fun f(a) {\n  var a;\n}",
			want: []string{"2: Error at 'a': Variable with this name already declared in this scope."},
		},
		{
			name: "multiple errors all reported",
			src:  "return 1;\n{\n  var b = b;\n}",
			want: []string{
				"1: Error at 'return': Cannot return from top-level code.",
				"3: Error at 'b': Cannot read local variable in its own initializer.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			program := mustParse(t, tt.src)

			collector := &errorCollector{}

			res := resolver.New(tt.name, collector.handler())

			_, err := res.Resolve(program)
			test.Err(t, err, test.Context("Resolve() should fail given static errors"))

			test.Equal(t, len(collector.errs), len(tt.want), test.Context("wrong number of diagnostics: %v", collector.errs))

			for i, got := range collector.errs {
				test.Equal(t, got, tt.want[i])
			}

			test.Equal(t, len(res.Diagnostics()), len(tt.want))
		})
	}
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		src  string // Source text to resolve
	}{
		{
			name: "global self reference is not a static error",
			src:  "var a = a;",
		},
		{
			name: "return inside a function",
			src:  "fun f() {\n  return 1;\n}",
		},
		{
			name: "recursive function",
			src:  "fun f(n) {\n  if (n <= 1) return 1;\n  return n * f(n - 1);\n}",
		},
		{
			name: "shadowing in a nested scope",
			src:  "{\n  var x = 1;\n  {\n    var x = 2;\n  }\n}",
		},
		{
			name: "redeclaring a global",
			src:  "var a = 1;\nvar a = 2;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			program := mustParse(t, tt.src)

			res := resolver.New(tt.name, testFailHandler(t))

			_, err := res.Resolve(program)
			test.Ok(t, err)

			test.Equal(t, len(res.Diagnostics()), 0)
		})
	}
}

// mustParse parses the given source, failing the test on any error.
func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()

	p, err := parser.New(t.Name(), strings.NewReader(src), testFailHandler(t))
	test.Ok(t, err)

	program, err := p.Parse()
	test.Ok(t, err)

	return program
}

// testFailHandler returns a [syntax.ErrorHandler] that handles errors by
// failing the enclosing test.
func testFailHandler(tb testing.TB) syntax.ErrorHandler {
	tb.Helper()

	return func(pos syntax.Position, msg string) {
		tb.Fatalf("%s: %s", pos, msg)
	}
}

// errorCollector is a helper struct that implements a [syntax.ErrorHandler]
// which simply collects diagnostics as "line: message" strings to be
// inspected later.
type errorCollector struct {
	errs []string
}

// handler returns the [syntax.ErrorHandler] to be plugged in to resolution.
func (e *errorCollector) handler() syntax.ErrorHandler {
	return func(pos syntax.Position, msg string) {
		e.errs = append(e.errs, fmt.Sprintf("%d: %s", pos.Line, msg))
	}
}
