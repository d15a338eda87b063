package bytecode

import (
	"fmt"
	"io"

	"github.com/lagoon-lang/lagoon/internal/interp"
)

// VM executes a compiled Chunk. It has no frame stack, no closures, and no
// struct support — by design, this back end only ever runs the restricted
// subset Compile accepts.
type VM struct {
	stack   []interp.Value
	globals map[int]interp.Value
	Output  io.Writer
}

// NewVM creates a VM writing print/println output to out.
func NewVM(out io.Writer) *VM {
	return &VM{globals: make(map[int]interp.Value), Output: out}
}

func (vm *VM) push(v interp.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() interp.Value {
	n := len(vm.stack)
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v
}

// Run executes chunk's instructions from the start and returns the final
// popped value (or Null if the program produced none).
func (vm *VM) Run(chunk *Chunk) (interp.Value, error) {
	ip := 0
	for ip < len(chunk.Instructions) {
		instr := chunk.Instructions[ip]
		switch instr.Op {
		case OpConstant:
			vm.push(chunk.Constants[instr.Operand])
		case OpPop:
			if len(vm.stack) > 0 {
				vm.pop()
			}
		case OpAdd:
			b, a := vm.pop(), vm.pop()
			vm.push(&interp.NumberValue{Value: interp.ToNumber(a) + interp.ToNumber(b)})
		case OpSub:
			b, a := vm.pop(), vm.pop()
			vm.push(&interp.NumberValue{Value: interp.ToNumber(a) - interp.ToNumber(b)})
		case OpMul:
			b, a := vm.pop(), vm.pop()
			vm.push(&interp.NumberValue{Value: interp.ToNumber(a) * interp.ToNumber(b)})
		case OpDiv:
			b, a := vm.pop(), vm.pop()
			vm.push(&interp.NumberValue{Value: interp.ToNumber(a) / interp.ToNumber(b)})
		case OpNeg:
			a := vm.pop()
			vm.push(&interp.NumberValue{Value: -interp.ToNumber(a)})
		case OpNot:
			a := vm.pop()
			vm.push(&interp.BoolValue{Value: !interp.ToBool(a)})
		case OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(&interp.BoolValue{Value: interp.Is(a, b)})
		case OpLess:
			b, a := vm.pop(), vm.pop()
			vm.push(&interp.BoolValue{Value: interp.ToNumber(a) < interp.ToNumber(b)})
		case OpGetGlobal:
			v, ok := vm.globals[instr.Operand]
			if !ok {
				v = interp.Null
			}
			vm.push(v)
		case OpSetGlobal:
			vm.globals[instr.Operand] = vm.pop()
		case OpJumpIfFalse:
			if !interp.ToBool(vm.pop()) {
				ip = instr.Operand
				continue
			}
		case OpJump:
			ip = instr.Operand
			continue
		case OpCall:
			args := make([]interp.Value, instr.ArgC)
			for i := instr.ArgC - 1; i >= 0; i-- {
				args[i] = vm.pop()
			}
			for _, a := range args {
				fmt.Fprintf(vm.Output, "%s", interp.ToLagoonString(a))
			}
			if instr.Operand == 1 {
				fmt.Fprintf(vm.Output, "\n")
			}
			vm.push(interp.Null)
		case OpReturn:
			return vm.pop(), nil
		}
		ip++
	}
	if len(vm.stack) == 0 {
		return interp.Null, nil
	}
	return vm.pop(), nil
}
