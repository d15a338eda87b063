package bytecode

import (
	"fmt"

	"github.com/lagoon-lang/lagoon/internal/ast"
	"github.com/lagoon-lang/lagoon/internal/interp"
)

// Unsupported reports a construct outside the restricted subset this
// back end compiles.
type Unsupported struct {
	Feature string
}

func (e *Unsupported) Error() string {
	return fmt.Sprintf("bytecode: unsupported construct: %s", e.Feature)
}

// Chunk is a compiled unit: instructions plus the constant pool they
// reference.
type Chunk struct {
	Instructions []Instruction
	Constants    []interp.Value
	Globals      []string
}

// Compiler lowers a restricted ast.Program into a Chunk.
type Compiler struct {
	chunk   *Chunk
	globals map[string]int
}

// Compile compiles prog, rejecting structs, closures, and require.
func Compile(prog *ast.Program) (*Chunk, error) {
	c := &Compiler{chunk: &Chunk{}, globals: make(map[string]int)}
	for _, stmt := range prog.Statements {
		if err := c.compileStatement(stmt); err != nil {
			return nil, err
		}
	}
	return c.chunk, nil
}

func (c *Compiler) emit(op Op, operand int) int {
	c.chunk.Instructions = append(c.chunk.Instructions, Instruction{Op: op, Operand: operand})
	return len(c.chunk.Instructions) - 1
}

func (c *Compiler) emitCall(builtinID, argc int) int {
	c.chunk.Instructions = append(c.chunk.Instructions, Instruction{Op: OpCall, Operand: builtinID, ArgC: argc})
	return len(c.chunk.Instructions) - 1
}

func (c *Compiler) addConstant(v interp.Value) int {
	c.chunk.Constants = append(c.chunk.Constants, v)
	return len(c.chunk.Constants) - 1
}

func (c *Compiler) globalSlot(name string) int {
	if idx, ok := c.globals[name]; ok {
		return idx
	}
	idx := len(c.chunk.Globals)
	c.chunk.Globals = append(c.chunk.Globals, name)
	c.globals[name] = idx
	return idx
}

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		if err := c.compileExpression(s.Value); err != nil {
			return err
		}
		c.emit(OpSetGlobal, c.globalSlot(s.Name.Value))
		return nil
	case *ast.ExpressionStatement:
		if err := c.compileExpression(s.Expression); err != nil {
			return err
		}
		c.emit(OpPop, 0)
		return nil
	case *ast.IfStatement:
		return c.compileIf(s)
	case *ast.ReturnStatement:
		if s.Value != nil {
			if err := c.compileExpression(s.Value); err != nil {
				return err
			}
		} else {
			c.emit(OpConstant, c.addConstant(interp.Null))
		}
		c.emit(OpReturn, 0)
		return nil
	default:
		return &Unsupported{Feature: fmt.Sprintf("%T", stmt)}
	}
}

func (c *Compiler) compileIf(s *ast.IfStatement) error {
	if err := c.compileExpression(s.Condition); err != nil {
		return err
	}
	jumpIfFalsePos := c.emit(OpJumpIfFalse, 0)
	for _, st := range s.Consequence.Statements {
		if err := c.compileStatement(st); err != nil {
			return err
		}
	}
	jumpPos := c.emit(OpJump, 0)
	c.chunk.Instructions[jumpIfFalsePos].Operand = len(c.chunk.Instructions)
	if s.Alternative != nil {
		for _, st := range s.Alternative.Statements {
			if err := c.compileStatement(st); err != nil {
				return err
			}
		}
	}
	c.chunk.Instructions[jumpPos].Operand = len(c.chunk.Instructions)
	return nil
}

func (c *Compiler) compileExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		c.emit(OpConstant, c.addConstant(&interp.NumberValue{Value: e.Value}))
	case *ast.StringLiteral:
		c.emit(OpConstant, c.addConstant(&interp.StringValue{Value: e.Value}))
	case *ast.BooleanLiteral:
		c.emit(OpConstant, c.addConstant(&interp.BoolValue{Value: e.Value}))
	case *ast.NullLiteral:
		c.emit(OpConstant, c.addConstant(interp.Null))
	case *ast.Identifier:
		c.emit(OpGetGlobal, c.globalSlot(e.Value))
	case *ast.PrefixExpression:
		if err := c.compileExpression(e.Right); err != nil {
			return err
		}
		switch e.Operator {
		case "-":
			c.emit(OpNeg, 0)
		case "!", "not":
			c.emit(OpNot, 0)
		default:
			return &Unsupported{Feature: "prefix operator " + e.Operator}
		}
	case *ast.InfixExpression:
		return c.compileInfix(e)
	case *ast.CallExpression:
		return c.compileCall(e)
	default:
		return &Unsupported{Feature: fmt.Sprintf("%T", expr)}
	}
	return nil
}

func (c *Compiler) compileInfix(e *ast.InfixExpression) error {
	if err := c.compileExpression(e.Left); err != nil {
		return err
	}
	if err := c.compileExpression(e.Right); err != nil {
		return err
	}
	switch e.Operator {
	case "+":
		c.emit(OpAdd, 0)
	case "-":
		c.emit(OpSub, 0)
	case "*":
		c.emit(OpMul, 0)
	case "/":
		c.emit(OpDiv, 0)
	case "==":
		c.emit(OpEqual, 0)
	case "<":
		c.emit(OpLess, 0)
	default:
		return &Unsupported{Feature: "infix operator " + e.Operator}
	}
	return nil
}

// compileCall only supports calls to the `print`/`println` natives; any
// other callee is rejected, since user-defined function calls would need a
// call stack and frame model this back end deliberately does not have.
func (c *Compiler) compileCall(e *ast.CallExpression) error {
	ident, ok := e.Callee.(*ast.Identifier)
	if !ok || (ident.Value != "print" && ident.Value != "println") {
		return &Unsupported{Feature: "calls other than print/println"}
	}
	for _, arg := range e.Args {
		if err := c.compileExpression(arg); err != nil {
			return err
		}
	}
	builtinID := 0
	if ident.Value == "println" {
		builtinID = 1
	}
	c.emitCall(builtinID, len(e.Args))
	return nil
}
