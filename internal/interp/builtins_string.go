package interp

import "strings"

// stringMethods is the fixed dispatch table for String receivers (spec
// §4.6), grounded on the stdlib surface of the implementation this
// interpreter was adapted from (stdlib/string.rs): contains, startsWith,
// endsWith, finish, append, tap, toUpper, toLower, plus the domain-stack
// additions localeCompare and normalize (see builtins_domain.go).
var stringMethods map[string]NativeMethodCallback

func init() {
	stringMethods = map[string]NativeMethodCallback{
		"contains": func(i *Interpreter, recv Value, args []Value) Value {
			s := ToLagoonString(recv)
			return &BoolValue{Value: strings.Contains(s, argString(args, 0))}
		},
		"startsWith": func(i *Interpreter, recv Value, args []Value) Value {
			s := ToLagoonString(recv)
			return &BoolValue{Value: strings.HasPrefix(s, argString(args, 0))}
		},
		"endsWith": func(i *Interpreter, recv Value, args []Value) Value {
			s := ToLagoonString(recv)
			return &BoolValue{Value: strings.HasSuffix(s, argString(args, 0))}
		},
		// finish ensures the string ends with the given suffix, appending
		// it only if not already present.
		"finish": func(i *Interpreter, recv Value, args []Value) Value {
			s := ToLagoonString(recv)
			suffix := argString(args, 0)
			if strings.HasSuffix(s, suffix) {
				return &StringValue{Value: s}
			}
			return &StringValue{Value: s + suffix}
		},
		"append": func(i *Interpreter, recv Value, args []Value) Value {
			return &StringValue{Value: ToLagoonString(recv) + argString(args, 0)}
		},
		// tap calls the given function with the string for a side effect
		// and returns the original string unchanged.
		"tap": func(i *Interpreter, recv Value, args []Value) Value {
			if len(args) > 0 {
				result := i.call(args[0], []Value{recv})
				if IsError(result) {
					return result
				}
			}
			return recv
		},
		"toUpper": func(i *Interpreter, recv Value, args []Value) Value {
			return &StringValue{Value: strings.ToUpper(ToLagoonString(recv))}
		},
		"toLower": func(i *Interpreter, recv Value, args []Value) Value {
			return &StringValue{Value: strings.ToLower(ToLagoonString(recv))}
		},
		"length": func(i *Interpreter, recv Value, args []Value) Value {
			return &NumberValue{Value: float64(len([]rune(ToLagoonString(recv))))}
		},
		"trim": func(i *Interpreter, recv Value, args []Value) Value {
			return &StringValue{Value: strings.TrimSpace(ToLagoonString(recv))}
		},
		"split": func(i *Interpreter, recv Value, args []Value) Value {
			parts := strings.Split(ToLagoonString(recv), argString(args, 0))
			elements := make([]Value, len(parts))
			for idx, p := range parts {
				elements[idx] = &StringValue{Value: p}
			}
			return &ListValue{Elements: elements}
		},
		"localeCompare": builtinLocaleCompare,
		"normalize":     builtinNormalize,
	}
}

func argString(args []Value, idx int) string {
	if idx >= len(args) {
		return ""
	}
	return ToLagoonString(args[idx])
}
