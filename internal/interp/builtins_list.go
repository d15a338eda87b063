package interp

import "strings"

// listMethods is the fixed dispatch table for List receivers (spec §4.6),
// grounded on the adapted implementation's stdlib/list.rs: isEmpty,
// isNotEmpty, reverse, join, filter, each, map, first, plus the
// domain-stack addition sortNatural (see builtins_domain.go).
var listMethods map[string]NativeMethodCallback

func init() {
	listMethods = map[string]NativeMethodCallback{
		"isEmpty": func(i *Interpreter, recv Value, args []Value) Value {
			return &BoolValue{Value: len(asList(recv).Elements) == 0}
		},
		"isNotEmpty": func(i *Interpreter, recv Value, args []Value) Value {
			return &BoolValue{Value: len(asList(recv).Elements) > 0}
		},
		"length": func(i *Interpreter, recv Value, args []Value) Value {
			return &NumberValue{Value: float64(len(asList(recv).Elements))}
		},
		"reverse": func(i *Interpreter, recv Value, args []Value) Value {
			src := asList(recv).Elements
			out := make([]Value, len(src))
			for idx, v := range src {
				out[len(src)-1-idx] = v
			}
			return &ListValue{Elements: out}
		},
		"join": func(i *Interpreter, recv Value, args []Value) Value {
			sep := ""
			if len(args) > 0 {
				sep = ToLagoonString(args[0])
			}
			parts := make([]string, 0, len(asList(recv).Elements))
			for _, v := range asList(recv).Elements {
				parts = append(parts, ToLagoonString(v))
			}
			return &StringValue{Value: strings.Join(parts, sep)}
		},
		"first": func(i *Interpreter, recv Value, args []Value) Value {
			elements := asList(recv).Elements
			if len(args) == 0 {
				if len(elements) == 0 {
					return Null
				}
				return elements[0]
			}
			for _, v := range elements {
				result := i.call(args[0], []Value{v})
				if IsError(result) {
					return result
				}
				if ToBool(result) {
					return v
				}
			}
			return Null
		},
		"filter": func(i *Interpreter, recv Value, args []Value) Value {
			if len(args) == 0 {
				return i.newError(TooFewArguments, "filter() expects a predicate function")
			}
			var out []Value
			for _, v := range asList(recv).Elements {
				result := i.call(args[0], []Value{v})
				if IsError(result) {
					return result
				}
				if ToBool(result) {
					out = append(out, v)
				}
			}
			return &ListValue{Elements: out}
		},
		"map": func(i *Interpreter, recv Value, args []Value) Value {
			if len(args) == 0 {
				return i.newError(TooFewArguments, "map() expects a mapping function")
			}
			src := asList(recv).Elements
			out := make([]Value, len(src))
			for idx, v := range src {
				result := i.call(args[0], []Value{v})
				if IsError(result) {
					return result
				}
				out[idx] = result
			}
			return &ListValue{Elements: out}
		},
		"each": func(i *Interpreter, recv Value, args []Value) Value {
			if len(args) == 0 {
				return i.newError(TooFewArguments, "each() expects a function")
			}
			for _, v := range asList(recv).Elements {
				result := i.call(args[0], []Value{v})
				if IsError(result) {
					return result
				}
			}
			return recv
		},
		"sortNatural": builtinSortNatural,
	}
}

func asList(v Value) *ListValue {
	l, ok := Unwrap(v).(*ListValue)
	if !ok {
		return &ListValue{}
	}
	return l
}
