package parser

import (
	"testing"

	"github.com/lagoon-lang/lagoon/internal/ast"
	"github.com/lagoon-lang/lagoon/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := New(l)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors: %v", p.Errors())
	}
	return prog
}

func TestLetStatement(t *testing.T) {
	prog := parseProgram(t, `let x = 5;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("want *ast.LetStatement, got %T", prog.Statements[0])
	}
	if stmt.Name.Value != "x" {
		t.Errorf("got name %q", stmt.Name.Value)
	}
}

func TestConstStatement(t *testing.T) {
	prog := parseProgram(t, `const PI = 3;`)
	stmt, ok := prog.Statements[0].(*ast.ConstStatement)
	if !ok {
		t.Fatalf("want *ast.ConstStatement, got %T", prog.Statements[0])
	}
	if stmt.Name.Value != "PI" {
		t.Errorf("got name %q", stmt.Name.Value)
	}
}

func TestIfStatement(t *testing.T) {
	prog := parseProgram(t, `if x then { y; } else { z; }`)
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("want *ast.IfStatement, got %T", prog.Statements[0])
	}
	if stmt.Alternative == nil {
		t.Fatal("expected alternative block")
	}
}

func TestForStatement(t *testing.T) {
	prog := parseProgram(t, `for item in list then { println(item); }`)
	stmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("want *ast.ForStatement, got %T", prog.Statements[0])
	}
	if stmt.Binding.Value != "item" {
		t.Errorf("got binding %q", stmt.Binding.Value)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, `fn add(a, b) { return a + b; }`)
	stmt, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("want *ast.FunctionDeclaration, got %T", prog.Statements[0])
	}
	if len(stmt.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(stmt.Params))
	}
}

func TestStructDeclarationAndLiteral(t *testing.T) {
	prog := parseProgram(t, "struct Point { x, y }\nlet p = Point { x: 1, y: 2 };")
	if _, ok := prog.Statements[0].(*ast.StructDeclaration); !ok {
		t.Fatalf("want *ast.StructDeclaration, got %T", prog.Statements[0])
	}
	let, ok := prog.Statements[1].(*ast.LetStatement)
	if !ok {
		t.Fatalf("want *ast.LetStatement, got %T", prog.Statements[1])
	}
	if _, ok := let.Value.(*ast.StructLiteral); !ok {
		t.Fatalf("want *ast.StructLiteral, got %T", let.Value)
	}
}

func TestClosureLiteral(t *testing.T) {
	prog := parseProgram(t, `let f = fn(x) { return x; };`)
	let := prog.Statements[0].(*ast.LetStatement)
	if _, ok := let.Value.(*ast.ClosureLiteral); !ok {
		t.Fatalf("want *ast.ClosureLiteral, got %T", let.Value)
	}
}

func TestShortClosureLiteral(t *testing.T) {
	prog := parseProgram(t, `let f = |x| x + 1;`)
	let := prog.Statements[0].(*ast.LetStatement)
	clo, ok := let.Value.(*ast.ClosureLiteral)
	if !ok {
		t.Fatalf("want *ast.ClosureLiteral, got %T", let.Value)
	}
	if len(clo.Params) != 1 || clo.Params[0].Name != "x" {
		t.Fatalf("got params %+v", clo.Params)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":      "(1 + (2 * 3))",
		"(1 + 2) * 3":    "((1 + 2) * 3)",
		"1 < 2 and 2 < 3": "((1 < 2) and (2 < 3))",
		"-a * b":         "((-a) * b)",
		"!true":          "(!true)",
	}
	for src, want := range cases {
		prog := parseProgram(t, src+";")
		stmt := prog.Statements[0].(*ast.ExpressionStatement)
		if got := stmt.Expression.String(); got != want {
			t.Errorf("%q: got %q, want %q", src, got, want)
		}
	}
}

func TestMembershipOperators(t *testing.T) {
	prog := parseProgram(t, `x in list;`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	infix, ok := stmt.Expression.(*ast.InfixExpression)
	if !ok || infix.Operator != "in" {
		t.Fatalf("got %+v", stmt.Expression)
	}

	prog2 := parseProgram(t, `x not in list;`)
	stmt2 := prog2.Statements[0].(*ast.ExpressionStatement)
	infix2, ok := stmt2.Expression.(*ast.InfixExpression)
	if !ok || infix2.Operator != "not in" {
		t.Fatalf("got %+v", stmt2.Expression)
	}
}

func TestCallAndIndexAndGet(t *testing.T) {
	prog := parseProgram(t, `foo(1, 2)[0].bar;`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	get, ok := stmt.Expression.(*ast.GetExpression)
	if !ok {
		t.Fatalf("want *ast.GetExpression, got %T", stmt.Expression)
	}
	idx, ok := get.Target.(*ast.IndexExpression)
	if !ok {
		t.Fatalf("want *ast.IndexExpression, got %T", get.Target)
	}
	if _, ok := idx.Target.(*ast.CallExpression); !ok {
		t.Fatalf("want *ast.CallExpression, got %T", idx.Target)
	}
}

func TestAssignExpression(t *testing.T) {
	prog := parseProgram(t, `x = 5;`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	assign, ok := stmt.Expression.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("want *ast.AssignExpression, got %T", stmt.Expression)
	}
	if assign.Target.(*ast.Identifier).Value != "x" {
		t.Errorf("got target %v", assign.Target)
	}
}

func TestInterpolatedString(t *testing.T) {
	prog := parseProgram(t, `"hi {name}!";`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	lit, ok := stmt.Expression.(*ast.InterpolatedStringLiteral)
	if !ok {
		t.Fatalf("want *ast.InterpolatedStringLiteral, got %T", stmt.Expression)
	}
	if len(lit.Parts) != 3 {
		t.Fatalf("want 3 parts, got %d: %+v", len(lit.Parts), lit.Parts)
	}
	if lit.Parts[0].Text != "hi " {
		t.Errorf("got first part %q", lit.Parts[0].Text)
	}
	if lit.Parts[1].Expr == nil || lit.Parts[1].Expr.String() != "name" {
		t.Errorf("got second part %+v", lit.Parts[1])
	}
}
