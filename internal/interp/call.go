package interp

import "github.com/lagoon-lang/lagoon/internal/ast"

// evalCallExpression evaluates the callee and arguments, then dispatches on
// the callee's concrete kind (spec §4.5).
func (i *Interpreter) evalCallExpression(n *ast.CallExpression) Value {
	callee := i.Eval(n.Callee)
	if IsError(callee) {
		return callee
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v := i.Eval(a)
		if IsError(v) {
			return v
		}
		args = append(args, v)
	}

	return i.call(callee, args)
}

// call dispatches an already-evaluated callee and argument list, unwrapping
// Constant wrappers as it recurs.
func (i *Interpreter) call(callee Value, args []Value) Value {
	switch fn := Unwrap(callee).(type) {
	case *FunctionValue:
		return i.callFunction(fn, args)
	case *NativeFunctionValue:
		return fn.Fn(i, args)
	case *NativeMethodValue:
		receiver := i.Eval(fn.Receiver)
		if IsError(receiver) {
			return receiver
		}
		return fn.Fn(i, receiver, args)
	default:
		return i.newError(UndefinedVariable, "%s is not callable", TypeString(callee))
	}
}

// callFunction builds a fresh environment from the function's captured
// snapshot (or an empty one for top-level declarations), binds `this` when
// the function carries a bound receiver, binds the positional parameters,
// swaps it in as the current environment, runs the body, and restores the
// caller's environment handle afterward (spec §4.5 steps 1-7).
func (i *Interpreter) callFunction(fn *FunctionValue, args []Value) Value {
	var callEnv *Environment
	if fn.Env != nil {
		callEnv = fn.Env.Clone()
	} else {
		callEnv = NewEnvironment()
	}

	params := fn.Params
	if fn.Receiver != nil {
		receiver := i.Eval(fn.Receiver)
		if IsError(receiver) {
			return receiver
		}
		if len(params) > 0 && params[0].Name == "this" {
			callEnv.Set("this", receiver)
			params = params[1:]
		} else {
			callEnv.Set("this", receiver)
		}
	}

	if len(args) != len(params) {
		return i.newError(TooFewArguments, "%s expects %d argument(s), got %d", fn.displayName(), len(params), len(args))
	}
	for idx, p := range params {
		callEnv.Set(p.Name, args[idx])
	}

	saved := i.environment
	i.environment = callEnv
	result := i.Eval(fn.Body)
	i.environment = saved

	if ret, ok := result.(*ReturnValue); ok {
		return ret.Value
	}
	if IsError(result) {
		return result
	}
	return Null
}

func (fn *FunctionValue) displayName() string {
	if fn.Name != "" {
		return "function " + fn.Name
	}
	return "closure"
}
