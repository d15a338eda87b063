// Package ast defines the syntax tree produced by internal/parser and walked
// by internal/interp, internal/jstranspile and internal/bytecode.
package ast

import (
	"bytes"
	"strings"

	"github.com/lagoon-lang/lagoon/internal/token"
)

// Node is any syntax tree node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Statement is a node that can appear directly in a block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of a parsed source file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Parameter is a single formal parameter name (lagoon parameters are
// untyped; see spec's Non-goal on static typing).
type Parameter struct {
	Name string
}

// ---- Statements ----

// LetStatement declares a mutable binding: `let name = value;`.
type LetStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) statementNode()       {}
func (s *LetStatement) TokenLiteral() string { return s.Token.Literal }
func (s *LetStatement) Pos() token.Position  { return s.Token.Pos }
func (s *LetStatement) String() string {
	return "let " + s.Name.String() + " = " + exprString(s.Value) + ";"
}

// ConstStatement declares an immutable binding: `const name = value;`.
// The interpreter wraps Value in a Constant wrapper (see interp.ConstantValue).
type ConstStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (s *ConstStatement) statementNode()       {}
func (s *ConstStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ConstStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ConstStatement) String() string {
	return "const " + s.Name.String() + " = " + exprString(s.Value) + ";"
}

// FunctionDeclaration is `fn name(params) { body }`. Unlike a `let` binding,
// the interpreter registers it in the globals map.
type FunctionDeclaration struct {
	Token  token.Token
	Name   *Identifier
	Params []*Parameter
	Body   *BlockStatement
}

func (s *FunctionDeclaration) statementNode()       {}
func (s *FunctionDeclaration) TokenLiteral() string { return s.Token.Literal }
func (s *FunctionDeclaration) Pos() token.Position  { return s.Token.Pos }
func (s *FunctionDeclaration) String() string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return "fn " + s.Name.String() + "(" + strings.Join(names, ", ") + ") " + s.Body.String()
}

// StructDeclaration declares a struct type: `struct Name { field1, field2 }`.
type StructDeclaration struct {
	Token  token.Token
	Name   *Identifier
	Fields []string
}

func (s *StructDeclaration) statementNode()       {}
func (s *StructDeclaration) TokenLiteral() string { return s.Token.Literal }
func (s *StructDeclaration) Pos() token.Position  { return s.Token.Pos }
func (s *StructDeclaration) String() string {
	return "struct " + s.Name.String() + " { " + strings.Join(s.Fields, ", ") + " }"
}

// ReturnStatement exits the current function with Value (internally
// propagated as interp's non-local Return signal).
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	return "return " + exprString(s.Value) + ";"
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ExpressionStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExpressionStatement) String() string       { return exprString(s.Expression) }

// BlockStatement is a `{ ... }` sequence of statements. It does not open a
// new Environment scope; the flat single-scope model is the evaluator's
// responsibility, not the parser's (see interp.Environment).
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStatement) statementNode()       {}
func (s *BlockStatement) TokenLiteral() string { return s.Token.Literal }
func (s *BlockStatement) Pos() token.Position  { return s.Token.Pos }
func (s *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, st := range s.Statements {
		out.WriteString(st.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement is `if cond then block [else block]`.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Literal }
func (s *IfStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IfStatement) String() string {
	out := "if " + exprString(s.Condition) + " then " + s.Consequence.String()
	if s.Alternative != nil {
		out += " else " + s.Alternative.String()
	}
	return out
}

// ForStatement is `for value, index in iterable then block` (the index
// binding is optional: `for value in iterable then block` is also valid).
// Both bindings are dropped from the environment once the loop exits, and
// neither is ever established (not even as Null) when iterable is empty
// (see the for-loop binding-drop invariant).
type ForStatement struct {
	Token        token.Token
	Binding      *Identifier
	IndexBinding *Identifier
	Iterable     Expression
	Body         *BlockStatement
}

func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ForStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ForStatement) String() string {
	binding := s.Binding.String()
	if s.IndexBinding != nil {
		binding += ", " + s.IndexBinding.String()
	}
	return "for " + binding + " in " + exprString(s.Iterable) + " then " + s.Body.String()
}

// ---- Expressions ----

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) Pos() token.Position  { return e.Token.Pos }
func (e *Identifier) String() string       { return e.Value }

// NumberLiteral is a lagoon Number; the language has a single numeric type
// backed by float64 (see spec's Number variant).
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (e *NumberLiteral) expressionNode()      {}
func (e *NumberLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NumberLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *NumberLiteral) String() string       { return e.Token.Literal }

// StringLiteral is a plain (non-interpolated) string.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StringLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *StringLiteral) String() string       { return `"` + e.Value + `"` }

// InterpolatedStringLiteral holds the raw, unresolved `{expr}` spans of a
// string literal as alternating literal/expression Parts.
type InterpolatedStringLiteral struct {
	Token token.Token
	Parts []InterpolationPart
}

// InterpolationPart is either a literal text chunk or a parsed expression
// spliced from a `{expr}` span.
type InterpolationPart struct {
	Text string
	Expr Expression
}

func (e *InterpolatedStringLiteral) expressionNode()      {}
func (e *InterpolatedStringLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *InterpolatedStringLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *InterpolatedStringLiteral) String() string       { return `"` + e.Token.Literal + `"` }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()      {}
func (e *BooleanLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *BooleanLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *BooleanLiteral) String() string       { return e.Token.Literal }

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Token token.Token
}

func (e *NullLiteral) expressionNode()      {}
func (e *NullLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NullLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *NullLiteral) String() string       { return "null" }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (e *ListLiteral) expressionNode()      {}
func (e *ListLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *ListLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *ListLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = exprString(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StructLiteral is `StructName { field1: e1, field2: e2 }`.
type StructLiteral struct {
	Token  token.Token
	Name   *Identifier
	Fields map[string]Expression
	Order  []string // preserves source field order for deterministic String() output
}

func (e *StructLiteral) expressionNode()      {}
func (e *StructLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StructLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *StructLiteral) String() string {
	parts := make([]string, 0, len(e.Order))
	for _, k := range e.Order {
		parts = append(parts, k+": "+exprString(e.Fields[k]))
	}
	return e.Name.String() + " { " + strings.Join(parts, ", ") + " }"
}

// ClosureLiteral is `fn(params) { body }` or the short form `|params| expr`.
// Closures capture their defining environment by value (a snapshot), never
// by reference; see interp.FunctionValue.
type ClosureLiteral struct {
	Token  token.Token
	Params []*Parameter
	Body   *BlockStatement
}

func (e *ClosureLiteral) expressionNode()      {}
func (e *ClosureLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *ClosureLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *ClosureLiteral) String() string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
	}
	return "fn(" + strings.Join(names, ", ") + ") " + e.Body.String()
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token    token.Token
	Callee   Expression
	Args     []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpression) Pos() token.Position  { return e.Token.Pos }
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = exprString(a)
	}
	return exprString(e.Callee) + "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpression is `target[index]`.
type IndexExpression struct {
	Token  token.Token
	Target Expression
	Index  Expression
}

func (e *IndexExpression) expressionNode()      {}
func (e *IndexExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IndexExpression) Pos() token.Position  { return e.Token.Pos }
func (e *IndexExpression) String() string {
	return exprString(e.Target) + "[" + exprString(e.Index) + "]"
}

// GetExpression is `target.name`, resolved at evaluation time against
// struct fields, native methods, or built-in method tables (spec §4.4).
type GetExpression struct {
	Token  token.Token
	Target Expression
	Name   string
}

func (e *GetExpression) expressionNode()      {}
func (e *GetExpression) TokenLiteral() string { return e.Token.Literal }
func (e *GetExpression) Pos() token.Position  { return e.Token.Pos }
func (e *GetExpression) String() string       { return exprString(e.Target) + "." + e.Name }

// InfixExpression covers binary arithmetic, comparison, logical, and
// membership (`in` / `not in`) operators.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *InfixExpression) expressionNode()      {}
func (e *InfixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *InfixExpression) Pos() token.Position  { return e.Token.Pos }
func (e *InfixExpression) String() string {
	return "(" + exprString(e.Left) + " " + e.Operator + " " + exprString(e.Right) + ")"
}

// PrefixExpression covers unary `!` and `-`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (e *PrefixExpression) expressionNode()      {}
func (e *PrefixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *PrefixExpression) Pos() token.Position  { return e.Token.Pos }
func (e *PrefixExpression) String() string {
	return "(" + e.Operator + exprString(e.Right) + ")"
}

// AssignExpression is `target = value`, where target is an Identifier,
// IndexExpression, or GetExpression.
type AssignExpression struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (e *AssignExpression) expressionNode()      {}
func (e *AssignExpression) TokenLiteral() string { return e.Token.Literal }
func (e *AssignExpression) Pos() token.Position  { return e.Token.Pos }
func (e *AssignExpression) String() string {
	return exprString(e.Target) + " = " + exprString(e.Value)
}

func exprString(e Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}
