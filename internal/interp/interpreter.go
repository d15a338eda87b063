// Package interp implements lagoon's tree-walking interpreter: the value
// model, the flat single-scope environment, the expression/statement
// evaluator, the built-in method tables, and the `require` module loader.
package interp

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lagoon-lang/lagoon/internal/ast"
	"github.com/lagoon-lang/lagoon/internal/lexer"
	"github.com/lagoon-lang/lagoon/internal/parser"
	"github.com/lagoon-lang/lagoon/internal/token"
)

// Interpreter holds the process-wide globals map and the single "current"
// environment handle that the evaluator swaps at call boundaries (spec
// §4.1). There is never more than one live environment per call frame; the
// call stack itself provides nesting.
type Interpreter struct {
	Globals     *Environment
	environment *Environment

	Output io.Writer

	// SourcePath is the path of the file currently executing, used to
	// resolve relative `require` paths. It is stored as given to Run (it is
	// not made absolute), so a relative path resolves against the process's
	// working directory.
	SourcePath string

	// Loaded tracks require()'d paths already evaluated in this process,
	// so re-importing the same file re-enters the same interpreter state
	// without re-running its top-level statements.
	Loaded map[string]bool

	// SearchPaths are extra directories tried for `require` after the
	// importing file's own directory (populated from internal/config).
	SearchPaths []string

	// Source is the full text of the file currently executing, kept
	// alongside SourcePath so errors can be rendered with the offending
	// line (internal/errors.CompilerError).
	Source string

	// pos is the position of the node currently being evaluated, stamped
	// on every ErrorValue newError produces.
	pos token.Position
}

// New creates an Interpreter with print/println/type/require and the
// domain-stack natives registered in Globals.
func New() *Interpreter {
	i := &Interpreter{
		Globals:     NewEnvironment(),
		environment: NewEnvironment(),
		Output:      os.Stdout,
		Loaded:      make(map[string]bool),
	}
	registerCoreBuiltins(i)
	registerDomainBuiltins(i)
	return i
}

// RegisterFunction exposes a host Go function as a lagoon global, used by
// pkg/lagoon's embedder API.
func (i *Interpreter) RegisterFunction(name string, fn NativeFunctionCallback) {
	i.Globals.Set(name, &NativeFunctionValue{Name: name, Fn: fn})
}

// Run parses and evaluates src as the entry program, returning the last
// statement's result, or an *ErrorValue on failure.
func (i *Interpreter) Run(src, path string) Value {
	i.SourcePath = path
	i.Source = src
	prog, errs := Parse(src)
	if len(errs) > 0 {
		return i.newError(UndefinedVariable, "parse error: %s", errs[0])
	}
	return i.Eval(prog)
}

// Parse runs the lexer and parser over src and returns any parse errors.
func Parse(src string) (*ast.Program, []string) {
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// Eval dispatches on the dynamic type of node. It always returns a Value:
// errors are represented as *ErrorValue and a `return` statement's payload
// as *ReturnValue; both are sentinel values the caller must check for
// rather than a separate Go error channel.
func (i *Interpreter) Eval(node ast.Node) Value {
	i.pos = node.Pos()
	switch n := node.(type) {
	case *ast.Program:
		return i.evalStatements(n.Statements)
	case *ast.BlockStatement:
		return i.evalStatements(n.Statements)
	case *ast.ExpressionStatement:
		return i.Eval(n.Expression)
	case *ast.LetStatement:
		return i.evalLet(n)
	case *ast.ConstStatement:
		return i.evalConst(n)
	case *ast.FunctionDeclaration:
		return i.evalFunctionDeclaration(n)
	case *ast.StructDeclaration:
		return i.evalStructDeclaration(n)
	case *ast.ReturnStatement:
		return i.evalReturn(n)
	case *ast.IfStatement:
		return i.evalIf(n)
	case *ast.ForStatement:
		return i.evalFor(n)

	case *ast.NumberLiteral:
		return &NumberValue{Value: n.Value}
	case *ast.StringLiteral:
		return &StringValue{Value: n.Value}
	case *ast.InterpolatedStringLiteral:
		return i.evalInterpolatedString(n)
	case *ast.BooleanLiteral:
		return &BoolValue{Value: n.Value}
	case *ast.NullLiteral:
		return Null
	case *ast.Identifier:
		return i.evalIdentifier(n)
	case *ast.ListLiteral:
		return i.evalListLiteral(n)
	case *ast.StructLiteral:
		return i.evalStructLiteral(n)
	case *ast.ClosureLiteral:
		return &FunctionValue{Params: n.Params, Body: n.Body, Env: i.environment.Clone()}
	case *ast.PrefixExpression:
		return i.evalPrefixExpression(n)
	case *ast.InfixExpression:
		return i.evalInfixExpression(n)
	case *ast.IndexExpression:
		return i.evalIndexExpression(n)
	case *ast.GetExpression:
		return i.evalGetExpression(n)
	case *ast.CallExpression:
		return i.evalCallExpression(n)
	case *ast.AssignExpression:
		return i.evalAssignExpression(n)
	}
	return i.newError(UndefinedVariable, "cannot evaluate node %T", node)
}

func (i *Interpreter) evalStatements(stmts []ast.Statement) Value {
	var result Value = Null
	for _, stmt := range stmts {
		result = i.Eval(stmt)
		switch result.(type) {
		case *ReturnValue, *ErrorValue:
			return result
		}
	}
	return result
}

func (i *Interpreter) evalLet(n *ast.LetStatement) Value {
	var val Value = Null
	if n.Value != nil {
		val = i.Eval(n.Value)
		if IsError(val) {
			return val
		}
	}
	i.environment.Set(n.Name.Value, val)
	return Null
}

func (i *Interpreter) evalConst(n *ast.ConstStatement) Value {
	val := i.Eval(n.Value)
	if IsError(val) {
		return val
	}
	i.environment.Set(n.Name.Value, NewConstant(val))
	return Null
}

func (i *Interpreter) evalFunctionDeclaration(n *ast.FunctionDeclaration) Value {
	i.Globals.Set(n.Name.Value, &FunctionValue{
		Name:   n.Name.Value,
		Params: n.Params,
		Body:   n.Body,
	})
	return Null
}

func (i *Interpreter) evalStructDeclaration(n *ast.StructDeclaration) Value {
	i.Globals.Set(n.Name.Value, &StructValue{
		Name:    n.Name.Value,
		Fields:  n.Fields,
		Methods: make(map[string]Value),
	})
	return Null
}

func (i *Interpreter) evalReturn(n *ast.ReturnStatement) Value {
	var val Value = Null
	if n.Value != nil {
		val = i.Eval(n.Value)
		if IsError(val) {
			return val
		}
	}
	return &ReturnValue{Value: val}
}

func (i *Interpreter) evalIf(n *ast.IfStatement) Value {
	cond := i.Eval(n.Condition)
	if IsError(cond) {
		return cond
	}
	if ToBool(cond) {
		return i.Eval(n.Consequence)
	}
	if n.Alternative != nil {
		return i.Eval(n.Alternative)
	}
	return Null
}

func (i *Interpreter) evalFor(n *ast.ForStatement) Value {
	iterable := i.Eval(n.Iterable)
	if IsError(iterable) {
		return iterable
	}
	list, ok := Unwrap(iterable).(*ListValue)
	if !ok {
		return i.newError(InvalidIterable, "cannot iterate over a %s", TypeString(iterable))
	}
	name := n.Binding.Value
	indexName := ""
	if n.IndexBinding != nil {
		indexName = n.IndexBinding.Value
	}
	for idx, el := range list.Elements {
		i.environment.Set(name, el)
		if indexName != "" {
			i.environment.Set(indexName, &NumberValue{Value: float64(idx)})
		}
		result := i.Eval(n.Body)
		switch result.(type) {
		case *ReturnValue, *ErrorValue:
			i.environment.Drop(name)
			if indexName != "" {
				i.environment.Drop(indexName)
			}
			return result
		}
	}
	i.environment.Drop(name)
	if indexName != "" {
		i.environment.Drop(indexName)
	}
	return Null
}

func (i *Interpreter) evalInterpolatedString(n *ast.InterpolatedStringLiteral) Value {
	var out string
	for _, part := range n.Parts {
		if part.Expr != nil {
			v := i.Eval(part.Expr)
			if IsError(v) {
				return v
			}
			out += ToLagoonString(v)
			continue
		}
		out += part.Text
	}
	return &StringValue{Value: out}
}

// evalIdentifier resolves a bare name: globals are consulted before the
// current environment, so a top-level `fn foo()` always masks any local
// `let foo` (spec's "global precedes local" invariant).
func (i *Interpreter) evalIdentifier(n *ast.Identifier) Value {
	if v, ok := i.Globals.Get(n.Value); ok {
		return v
	}
	if v, ok := i.environment.Get(n.Value); ok {
		return v
	}
	return i.newError(UndefinedVariable, "undefined variable %q", n.Value)
}

func (i *Interpreter) evalListLiteral(n *ast.ListLiteral) Value {
	elements := make([]Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v := i.Eval(el)
		if IsError(v) {
			return v
		}
		elements = append(elements, v)
	}
	return &ListValue{Elements: elements}
}

// evalStructLiteral builds a StructInstance. StructInstance values used as
// field initializers are deep-copied at the environment level so the
// resulting nested instance has independent mutation identity from the
// source (spec's struct-field-isolation invariant); every other value kind
// keeps its normal reference-or-value semantics.
func (i *Interpreter) evalStructLiteral(n *ast.StructLiteral) Value {
	defVal := i.evalIdentifier(n.Name)
	if IsError(defVal) {
		return defVal
	}
	def, ok := Unwrap(defVal).(*StructValue)
	if !ok {
		return i.newError(UndefinedVariable, "%q is not a struct", n.Name.Value)
	}

	env := NewEnvironment()
	for name, method := range def.Methods {
		env.Set(name, method)
	}
	for field := range n.Fields {
		if !containsString(def.Fields, field) {
			return i.newError(UndefinedField, "struct %s has no field %q", def.Name, field)
		}
	}
	for _, field := range def.Fields {
		expr, ok := n.Fields[field]
		if !ok {
			env.Set(field, Null)
			continue
		}
		v := i.Eval(expr)
		if IsError(v) {
			return v
		}
		if instance, ok := v.(*StructInstanceValue); ok {
			v = &StructInstanceValue{Def: instance.Def, Env: instance.Env.Clone()}
		}
		env.Set(field, v)
	}
	return &StructInstanceValue{Def: def, Env: env}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (i *Interpreter) evalPrefixExpression(n *ast.PrefixExpression) Value {
	right := i.Eval(n.Right)
	if IsError(right) {
		return right
	}
	switch n.Operator {
	case "-":
		return &NumberValue{Value: -ToNumber(right)}
	case "!", "not":
		return &BoolValue{Value: !ToBool(right)}
	}
	return i.newError(UndefinedVariable, "unknown prefix operator %q", n.Operator)
}

func (i *Interpreter) evalInfixExpression(n *ast.InfixExpression) Value {
	left := i.Eval(n.Left)
	if IsError(left) {
		return left
	}

	switch n.Operator {
	case "and":
		if !ToBool(left) {
			return &BoolValue{Value: false}
		}
		right := i.Eval(n.Right)
		if IsError(right) {
			return right
		}
		return &BoolValue{Value: ToBool(right)}
	case "or":
		if ToBool(left) {
			return &BoolValue{Value: true}
		}
		right := i.Eval(n.Right)
		if IsError(right) {
			return right
		}
		return &BoolValue{Value: ToBool(right)}
	}

	right := i.Eval(n.Right)
	if IsError(right) {
		return right
	}

	switch n.Operator {
	case "+":
		_, leftIsString := Unwrap(left).(*StringValue)
		_, rightIsString := Unwrap(right).(*StringValue)
		if leftIsString || rightIsString {
			return &StringValue{Value: ToLagoonString(left) + ToLagoonString(right)}
		}
		return &NumberValue{Value: ToNumber(left) + ToNumber(right)}
	case "-":
		return &NumberValue{Value: ToNumber(left) - ToNumber(right)}
	case "*":
		return &NumberValue{Value: ToNumber(left) * ToNumber(right)}
	case "/":
		return &NumberValue{Value: ToNumber(left) / ToNumber(right)}
	case "%":
		li, ri := int64(ToNumber(left)), int64(ToNumber(right))
		if ri == 0 {
			return &NumberValue{Value: 0}
		}
		return &NumberValue{Value: float64(li % ri)}
	case "**":
		return &NumberValue{Value: math.Pow(ToNumber(left), ToNumber(right))}
	case "==":
		return &BoolValue{Value: equalKindHomogeneous(left, right)}
	case "!=":
		return &BoolValue{Value: !equalKindHomogeneous(left, right)}
	case "<":
		return &BoolValue{Value: ToNumber(left) < ToNumber(right)}
	case "<=":
		return &BoolValue{Value: ToNumber(left) <= ToNumber(right)}
	case ">":
		return &BoolValue{Value: ToNumber(left) > ToNumber(right)}
	case ">=":
		return &BoolValue{Value: ToNumber(left) >= ToNumber(right)}
	case "in":
		return &BoolValue{Value: membership(left, right)}
	case "not in":
		return &BoolValue{Value: !membership(left, right)}
	}
	return i.newError(UndefinedVariable, "unknown operator %q", n.Operator)
}

// equalKindHomogeneous implements `==`/`!=`: only matching kinds compare;
// mixed kinds widen to false rather than coercing through Is, which is
// deliberately asymmetric and reserved for membership and the `is()` probe.
func equalKindHomogeneous(a, b Value) bool {
	left, right := Unwrap(a), Unwrap(b)
	switch l := left.(type) {
	case *StringValue:
		r, ok := right.(*StringValue)
		return ok && l.Value == r.Value
	case *NumberValue:
		r, ok := right.(*NumberValue)
		return ok && l.Value == r.Value
	case *BoolValue:
		r, ok := right.(*BoolValue)
		return ok && l.Value == r.Value
	case *NullValue:
		_, ok := right.(*NullValue)
		return ok
	default:
		return false
	}
}

func membership(needle, haystack Value) bool {
	list, ok := Unwrap(haystack).(*ListValue)
	if !ok {
		return false
	}
	for _, el := range list.Elements {
		if Is(needle, el) {
			return true
		}
	}
	return false
}

func (i *Interpreter) evalIndexExpression(n *ast.IndexExpression) Value {
	target := i.Eval(n.Target)
	if IsError(target) {
		return target
	}
	if n.Index == nil {
		return i.newError(UndefinedIndex, "empty index is only valid as an assignment target")
	}
	idx := i.Eval(n.Index)
	if IsError(idx) {
		return idx
	}
	list, ok := Unwrap(target).(*ListValue)
	if !ok {
		return i.newError(UndefinedIndex, "cannot index a %s", TypeString(target))
	}
	pos := int(ToNumber(idx))
	if pos < 0 || pos >= len(list.Elements) {
		return i.newError(UndefinedIndex, "index %d out of range (length %d)", pos, len(list.Elements))
	}
	return list.Elements[pos]
}

// evalGetExpression resolves `target.name` per the property-resolution
// order in spec §4.4: StructInstance field/method, then Struct static
// method table, then the fixed built-in table for String/Number/List.
func (i *Interpreter) evalGetExpression(n *ast.GetExpression) Value {
	target := i.Eval(n.Target)
	if IsError(target) {
		return target
	}
	return i.getProperty(target, n.Name, n.Target)
}

func (i *Interpreter) getProperty(target Value, name string, receiverExpr ast.Expression) Value {
	switch t := Unwrap(target).(type) {
	case *StructInstanceValue:
		v, ok := t.Env.Get(name)
		if !ok {
			return i.newError(UndefinedField, "%s has no field %q", t.Def.Name, name)
		}
		if fn, ok := v.(*FunctionValue); ok {
			return fn.boundCopy(receiverExpr)
		}
		return v
	case *StructValue:
		v, ok := t.Methods[name]
		if !ok {
			return i.newError(UndefinedMethod, "struct %s has no method %q", t.Name, name)
		}
		return v
	case *StringValue:
		fn, ok := stringMethods[name]
		if !ok {
			return i.newError(UndefinedMethod, "string has no method %q", name)
		}
		return &NativeMethodValue{Name: name, Fn: fn, Receiver: receiverExpr}
	case *NumberValue:
		fn, ok := numberMethods[name]
		if !ok {
			return i.newError(UndefinedMethod, "number has no method %q", name)
		}
		return &NativeMethodValue{Name: name, Fn: fn, Receiver: receiverExpr}
	case *ListValue:
		fn, ok := listMethods[name]
		if !ok {
			return i.newError(UndefinedMethod, "list has no method %q", name)
		}
		return &NativeMethodValue{Name: name, Fn: fn, Receiver: receiverExpr}
	default:
		return i.newError(UndefinedMethod, "%s has no method %q", TypeString(target), name)
	}
}

func (i *Interpreter) evalAssignExpression(n *ast.AssignExpression) Value {
	value := i.Eval(n.Value)
	if IsError(value) {
		return value
	}

	switch target := n.Target.(type) {
	case *ast.Identifier:
		if existing, ok := i.environment.Get(target.Value); ok {
			if _, isConst := existing.(*ConstantValue); isConst {
				return i.newError(CannotAssignValueToConstant, "cannot assign to constant %q", target.Value)
			}
		}
		i.environment.Set(target.Value, value)
		return value

	case *ast.IndexExpression:
		container := i.Eval(target.Target)
		if IsError(container) {
			return container
		}
		list, ok := Unwrap(container).(*ListValue)
		if !ok {
			return i.newError(InvalidAppendTarget, "cannot index-assign into a %s", TypeString(container))
		}
		if target.Index == nil {
			list.Elements = append(list.Elements, value)
			return value
		}
		idxVal := i.Eval(target.Index)
		if IsError(idxVal) {
			return idxVal
		}
		pos := int(ToNumber(idxVal))
		if pos < 0 || pos >= len(list.Elements) {
			return i.newError(UndefinedIndex, "index %d out of range (length %d)", pos, len(list.Elements))
		}
		list.Elements[pos] = value
		return value

	case *ast.GetExpression:
		container := i.Eval(target.Target)
		if IsError(container) {
			return container
		}
		switch t := Unwrap(container).(type) {
		case *StructInstanceValue:
			t.Env.Set(target.Name, value)
			return value
		case *StructValue:
			fn, ok := value.(*FunctionValue)
			if !ok {
				return i.newError(InvalidMethodAssignmentTarget, "only functions may be assigned into struct %s's method table", t.Name)
			}
			t.Methods[target.Name] = fn
			return value
		default:
			return i.newError(InvalidMethodAssignmentTarget, "cannot assign a field on a %s", TypeString(container))
		}
	}
	return i.newError(UndefinedVariable, "invalid assignment target")
}

// require resolves path relative to the directory of the currently executing
// source file, auto-appending ".lag", and re-enters this same interpreter so
// the module's top-level definitions splice directly into the host: globals
// (fn/struct decls) and the *current* environment (let bindings) are shared,
// not swapped out, per the module-loader contract. Only relative paths
// (leading ".") are accepted; anything else is fatal. SearchPaths are tried
// only after the relative resolution against SourcePath's directory fails.
func (i *Interpreter) require(path string) Value {
	if !strings.HasPrefix(path, ".") {
		return i.newError(UndefinedVariable, "require: cannot find module %q", path)
	}
	candidates := []string{filepath.Join(filepath.Dir(i.SourcePath), path)}
	for _, sp := range i.SearchPaths {
		candidates = append(candidates, filepath.Join(sp, path))
	}
	var resolved string
	for _, c := range candidates {
		if !hasLagExt(c) {
			c += ".lag"
		}
		if _, err := os.Stat(c); err == nil {
			resolved = c
			break
		}
	}
	if resolved == "" {
		return i.newError(UndefinedVariable, "require: cannot find module %q", path)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		abs = resolved
	}
	if i.Loaded[abs] {
		return Null
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return i.newError(UndefinedVariable, "require: %s", err)
	}
	i.Loaded[abs] = true

	savedPath, savedSource := i.SourcePath, i.Source
	result := i.Run(string(data), resolved)
	i.SourcePath, i.Source = savedPath, savedSource
	return result
}

func hasLagExt(p string) bool {
	return len(p) >= 4 && p[len(p)-4:] == ".lag"
}

// Fprintf writes a formatted diagnostic to the interpreter's output,
// following the corpus-wide convention of plain fmt.Fprintf diagnostics
// rather than a structured logging library (see DESIGN.md).
func (i *Interpreter) Fprintf(format string, args ...interface{}) {
	fmt.Fprintf(i.Output, format, args...)
}
