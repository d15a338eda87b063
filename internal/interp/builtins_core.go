package interp

// registerCoreBuiltins installs the global native functions every lagoon
// program can call without a `require`: print, println, type and require
// itself (spec §4.6/§4.8).
func registerCoreBuiltins(i *Interpreter) {
	i.RegisterFunction("print", func(i *Interpreter, args []Value) Value {
		for _, a := range args {
			i.Fprintf("%s", ToLagoonString(a))
		}
		return Null
	})
	i.RegisterFunction("println", func(i *Interpreter, args []Value) Value {
		for _, a := range args {
			i.Fprintf("%s", ToLagoonString(a))
		}
		i.Fprintf("\n")
		return Null
	})
	i.RegisterFunction("type", func(i *Interpreter, args []Value) Value {
		if len(args) != 1 {
			return i.newError(TooFewArguments, "type() expects 1 argument, got %d", len(args))
		}
		return &StringValue{Value: TypeString(args[0])}
	})
	i.RegisterFunction("require", func(i *Interpreter, args []Value) Value {
		if len(args) != 1 {
			return i.newError(TooFewArguments, "require() expects 1 argument, got %d", len(args))
		}
		path, ok := Unwrap(args[0]).(*StringValue)
		if !ok {
			return i.newError(UndefinedVariable, "require() expects a string path")
		}
		return i.require(path.Value)
	})
}
