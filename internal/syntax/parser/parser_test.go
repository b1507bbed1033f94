package parser_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/parser"
	"go.followtheprocess.codes/lox/internal/syntax/token"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/txtar"
	"go.uber.org/goleak"
)

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string     // Name of the test case
		src  string     // Source text to parse
		want []ast.Kind // Expected top level statement kinds
	}{
		{
			name: "expression statement",
			src:  "1 + 2;",
			want: []ast.Kind{ast.KindExpressionStatement},
		},
		{
			name: "print statement",
			src:  `print "hello";`,
			want: []ast.Kind{ast.KindPrintStatement},
		},
		{
			name: "var with initialiser",
			src:  "var a = 1;",
			want: []ast.Kind{ast.KindVarStatement},
		},
		{
			name: "var without initialiser",
			src:  "var a;",
			want: []ast.Kind{ast.KindVarStatement},
		},
		{
			name: "block",
			src:  "{ var a = 1; print a; }",
			want: []ast.Kind{ast.KindBlock},
		},
		{
			name: "empty block",
			src:  "{}",
			want: []ast.Kind{ast.KindBlock},
		},
		{
			name: "if",
			src:  "if (true) print 1;",
			want: []ast.Kind{ast.KindIfStatement},
		},
		{
			name: "if else",
			src:  "if (true) print 1; else print 2;",
			want: []ast.Kind{ast.KindIfStatement},
		},
		{
			name: "while",
			src:  "while (true) print 1;",
			want: []ast.Kind{ast.KindWhileStatement},
		},
		{
			name: "function declaration",
			src:  "fun add(a, b) { return a + b; }",
			want: []ast.Kind{ast.KindFunctionStatement},
		},
		{
			name: "for desugars to a block",
			src:  "for (var i = 0; i < 3; i = i + 1) print i;",
			want: []ast.Kind{ast.KindBlock},
		},
		{
			name: "for with no initialiser desugars to a while",
			src:  "for (; false;) print 1;",
			want: []ast.Kind{ast.KindWhileStatement},
		},
		{
			name: "multiple statements",
			src:  "var a = 1;\nprint a;\na = 2;",
			want: []ast.Kind{ast.KindVarStatement, ast.KindPrintStatement, ast.KindExpressionStatement},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			program := mustParse(t, tt.src)

			test.Equal(t, len(program.Statements), len(tt.want), test.Context("wrong number of statements"))

			for i, statement := range program.Statements {
				test.Equal(t, statement.Kind(), tt.want[i])
			}
		})
	}
}

func TestPrecedence(t *testing.T) {
	t.Run("multiplication binds tighter than addition", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		// 1 + 2 * 3 should parse as 1 + (2 * 3)
		expression := parseExpression(t, "1 + 2 * 3;")

		plus, ok := expression.(ast.Binary)
		test.True(t, ok, test.Context("top level node should be the '+', got %T", expression))
		test.Equal(t, plus.Op.Kind, token.Plus)

		times, ok := plus.Right.(ast.Binary)
		test.True(t, ok, test.Context("right of '+' should be the '*', got %T", plus.Right))
		test.Equal(t, times.Op.Kind, token.Star)
	})

	t.Run("grouping overrides precedence", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		// (1 + 2) * 3 should parse as group * 3
		expression := parseExpression(t, "(1 + 2) * 3;")

		times, ok := expression.(ast.Binary)
		test.True(t, ok, test.Context("top level node should be the '*', got %T", expression))
		test.Equal(t, times.Op.Kind, token.Star)

		_, ok = times.Left.(ast.Grouping)
		test.True(t, ok, test.Context("left of '*' should be the grouping, got %T", times.Left))
	})

	t.Run("comparison binds tighter than equality", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		expression := parseExpression(t, "1 < 2 == true;")

		eq, ok := expression.(ast.Binary)
		test.True(t, ok, test.Context("top level node should be the '==', got %T", expression))
		test.Equal(t, eq.Op.Kind, token.EqualEqual)

		less, ok := eq.Left.(ast.Binary)
		test.True(t, ok, test.Context("left of '==' should be the '<', got %T", eq.Left))
		test.Equal(t, less.Op.Kind, token.Less)
	})

	t.Run("logical operators produce logical nodes", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		// or binds looser than and: a or b and c is a or (b and c)
		expression := parseExpression(t, "a or b and c;")

		or, ok := expression.(ast.Logical)
		test.True(t, ok, test.Context("top level node should be the 'or', got %T", expression))
		test.Equal(t, or.Op.Kind, token.Or)

		and, ok := or.Right.(ast.Logical)
		test.True(t, ok, test.Context("right of 'or' should be the 'and', got %T", or.Right))
		test.Equal(t, and.Op.Kind, token.And)
	})

	t.Run("assignment is right associative", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		expression := parseExpression(t, "a = b = 1;")

		outer, ok := expression.(ast.Assign)
		test.True(t, ok, test.Context("top level node should be an assignment, got %T", expression))
		test.Equal(t, outer.Name, "a")

		inner, ok := outer.Value.(ast.Assign)
		test.True(t, ok, test.Context("value should be the inner assignment, got %T", outer.Value))
		test.Equal(t, inner.Name, "b")
	})

	t.Run("calls chain", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		expression := parseExpression(t, "f(1)(2);")

		outer, ok := expression.(ast.Call)
		test.True(t, ok, test.Context("top level node should be a call, got %T", expression))

		_, ok = outer.Callee.(ast.Call)
		test.True(t, ok, test.Context("callee should itself be a call, got %T", outer.Callee))
	})
}

func TestForDesugaring(t *testing.T) {
	defer goleak.VerifyNone(t)

	program := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")

	test.Equal(t, len(program.Statements), 1)

	// { var i = 0; while (i < 3) { print i; i = i + 1; } }
	block, ok := program.Statements[0].(ast.Block)
	test.True(t, ok, test.Context("top level should be a block, got %T", program.Statements[0]))
	test.Equal(t, len(block.Statements), 2)

	_, ok = block.Statements[0].(ast.VarStatement)
	test.True(t, ok, test.Context("first statement should be the initialiser, got %T", block.Statements[0]))

	loop, ok := block.Statements[1].(ast.WhileStatement)
	test.True(t, ok, test.Context("second statement should be the loop, got %T", block.Statements[1]))

	condition, ok := loop.Condition.(ast.Binary)
	test.True(t, ok, test.Context("condition should be the comparison, got %T", loop.Condition))
	test.Equal(t, condition.Op.Kind, token.Less)

	body, ok := loop.Body.(ast.Block)
	test.True(t, ok, test.Context("loop body should be a block, got %T", loop.Body))
	test.Equal(t, len(body.Statements), 2)

	_, ok = body.Statements[0].(ast.PrintStatement)
	test.True(t, ok, test.Context("first body statement should be the original body, got %T", body.Statements[0]))

	increment, ok := body.Statements[1].(ast.ExpressionStatement)
	test.True(t, ok, test.Context("second body statement should be the increment, got %T", body.Statements[1]))

	_, ok = increment.Expression.(ast.Assign)
	test.True(t, ok, test.Context("increment should be the assignment, got %T", increment.Expression))
}

func TestForOmittedClauses(t *testing.T) {
	defer goleak.VerifyNone(t)

	program := mustParse(t, "for (;;) print 1;")

	test.Equal(t, len(program.Statements), 1)

	// No initialiser and no increment, so no enclosing block
	loop, ok := program.Statements[0].(ast.WhileStatement)
	test.True(t, ok, test.Context("top level should be a while, got %T", program.Statements[0]))

	// An omitted condition becomes a literal true
	condition, ok := loop.Condition.(ast.Literal)
	test.True(t, ok, test.Context("condition should be a literal, got %T", loop.Condition))
	test.Equal(t, condition.Value.Kind, ast.BoolLiteral)
	test.Equal(t, condition.Value.Bool, true)

	_, ok = loop.Body.(ast.PrintStatement)
	test.True(t, ok, test.Context("body should be the print, got %T", loop.Body))
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string   // Name of the test case
		src  string   // Source text to parse
		want []string // Expected diagnostics as "line: message"
	}{
		{
			name: "missing variable name",
			src:  "var = 1;",
			want: []string{"1: Error at '=': Expect variable name."},
		},
		{
			name: "missing expression",
			src:  "print ;",
			want: []string{"1: Error at ';': Expect expression."},
		},
		{
			name: "two unrelated errors both reported",
			src:  "var = 1;\nprint ;",
			want: []string{
				"1: Error at '=': Expect variable name.",
				"2: Error at ';': Expect expression.",
			},
		},
		{
			name: "invalid assignment target",
			src:  "a + b = 1;",
			want: []string{"1: Error at '=': Invalid assignment target."},
		},
		{
			name: "unclosed paren at end",
			src:  "(1 + 2;",
			want: []string{"1: Error at ';': Expect ')' after expression."},
		},
		{
			name: "missing semicolon at end",
			src:  "print 1",
			want: []string{"1: Error at end: Expect ';' after value."},
		},
		{
			name: "classes are not supported",
			src:  "class Foo {}",
			want: []string{"1: Error at 'class': Classes are not supported."},
		},
		{
			name: "missing paren after if",
			src:  "if true) print 1;",
			want: []string{"1: Error at 'true': Expect '(' after 'if'."},
		},
		{
			name: "missing function name",
			src:  "fun (a) {}",
			want: []string{"1: Error at '(': Expect function name."},
		},
		{
			name: "recovery continues after a bad statement",
			src:  "var 1;\nvar ok = 2;\nprint };",
			want: []string{
				"1: Error at '1': Expect variable name.",
				"3: Error at '}': Expect expression.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			collector := &errorCollector{}

			p, err := parser.New(tt.name, strings.NewReader(tt.src), collector.handler())
			test.Ok(t, err)

			_, err = p.Parse()
			test.Err(t, err, test.Context("Parse() should fail given invalid syntax"))

			test.Equal(t, len(collector.errs), len(tt.want), test.Context("wrong number of diagnostics: %v", collector.errs))

			for i, got := range collector.errs {
				test.Equal(t, got, tt.want[i])
			}
		})
	}
}

// TestInvalidArchives runs every txtar archive in testdata/invalid, each
// containing a src.lox program and the exact console diagnostics (want.txt)
// parsing it must produce.
func TestInvalidArchives(t *testing.T) {
	pattern := filepath.Join("testdata", "invalid", "*.txtar")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	test.True(t, len(files) > 0, test.Context("no archives found at %s", pattern))

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			archive, err := txtar.ParseFile(file)
			test.Ok(t, err)

			src, ok := archive.Read("src.lox")
			test.True(t, ok, test.Context("%s missing src.lox", file))

			want, ok := archive.Read("want.txt")
			test.True(t, ok, test.Context("%s missing want.txt", file))

			buf := &bytes.Buffer{}

			p, err := parser.New(name, strings.NewReader(src), syntax.ConsoleHandler(buf))
			test.Ok(t, err)

			_, err = p.Parse()
			test.Err(t, err, test.Context("Parse() should fail given invalid syntax"))

			test.Diff(t, buf.String(), want)
		})
	}
}

func TestArgumentLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 256 arguments, one over the limit
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}

	src := "f(" + strings.Join(args, ", ") + ");"

	collector := &errorCollector{}

	p, err := parser.New("limit", strings.NewReader(src), collector.handler())
	test.Ok(t, err)

	program, err := p.Parse()
	test.Err(t, err, test.Context("over-long argument lists are still a (non-fatal) error"))

	// The diagnostic is non-fatal: the statement still parsed
	test.Equal(t, len(program.Statements), 1)
	test.Equal(t, len(collector.errs), 1)
	test.Equal(t, collector.errs[0], "1: Error at ')': Cannot have more than 255 arguments.")
}

func TestParameterLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	params := make([]string, 256)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}

	src := "fun f(" + strings.Join(params, ", ") + ") {}"

	collector := &errorCollector{}

	p, err := parser.New("limit", strings.NewReader(src), collector.handler())
	test.Ok(t, err)

	program, err := p.Parse()
	test.Err(t, err)

	test.Equal(t, len(program.Statements), 1)
	test.Equal(t, len(collector.errs), 1)
	test.Equal(t, collector.errs[0], "1: Error at 'f': Cannot have more than 255 parameters.")
}

func TestFirstID(t *testing.T) {
	defer goleak.VerifyNone(t)

	p, err := parser.New("ids", strings.NewReader("print 1 + 2;"), testFailHandler(t), parser.FirstID(100))
	test.Ok(t, err)

	program, err := p.Parse()
	test.Ok(t, err)

	// Three expressions: two literals and the binary
	test.Equal(t, program.NextID, 103)
}

func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"print 1;",
		"var a = 1;",
		`var greeting = "hello";`,
		"fun add(a, b) { return a + b; }",
		"for (var i = 0; i < 3; i = i + 1) print i;",
		"if (a and b) print a; else print b;",
		"{ var a = 1; { var b = 2; } }",
		"a + b = 1;",
		"var = ;",
		"(((",
		"fun f(",
		`"unterminated`,
		"@@@@",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	// Property: the parser never panics or loops indefinitely, fuzz by
	// default will catch both of these
	f.Fuzz(func(t *testing.T, src string) {
		p, err := parser.New("fuzz", strings.NewReader(src), nil)
		test.Ok(t, err)

		p.Parse() //nolint:errcheck // Just checking for panics and infinite loops
	})
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

// parseExpression parses a source comprising a single expression statement,
// returning the expression.
func parseExpression(t *testing.T, src string) ast.Expression {
	t.Helper()

	program := mustParse(t, src)

	test.Equal(t, len(program.Statements), 1)

	statement, ok := program.Statements[0].(ast.ExpressionStatement)
	test.True(t, ok, test.Context("expected an expression statement, got %T", program.Statements[0]))

	return statement.Expression
}

// testFailHandler returns a [syntax.ErrorHandler] that handles syntax errors
// by failing the enclosing test.
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

// handler returns the [syntax.ErrorHandler] to be plugged in to the parse.
func (e *errorCollector) handler() syntax.ErrorHandler {
	return func(pos syntax.Position, msg string) {
		e.errs = append(e.errs, fmt.Sprintf("%d: %s", pos.Line, msg))
	}
}
