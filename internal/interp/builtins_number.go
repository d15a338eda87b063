package interp

import (
	"math"
	"math/big"
	"strconv"
)

// numberMethods is the fixed dispatch table for Number receivers (spec
// §4.6), grounded on the adapted implementation's stdlib/number.rs:
// isInteger, isFloat, toFixed.
var numberMethods = map[string]NativeMethodCallback{
	"isInteger": func(i *Interpreter, recv Value, args []Value) Value {
		n := ToNumber(recv)
		return &BoolValue{Value: n == math.Trunc(n)}
	},
	"isFloat": func(i *Interpreter, recv Value, args []Value) Value {
		n := ToNumber(recv)
		return &BoolValue{Value: n != math.Trunc(n)}
	},
	"toFixed": func(i *Interpreter, recv Value, args []Value) Value {
		n := ToNumber(recv)
		digits := 0
		if len(args) > 0 {
			digits = int(ToNumber(args[0]))
		}
		if digits == 0 {
			return &StringValue{Value: strconv.FormatFloat(math.Trunc(n), 'f', 0, 64)}
		}
		if digits > 0 {
			// Round the shortest decimal form of n, not its binary value, so
			// 1.005 gives "1.01"; big.Rat rounds halves away from zero.
			if r, ok := new(big.Rat).SetString(strconv.FormatFloat(n, 'f', -1, 64)); ok {
				return &StringValue{Value: r.FloatString(digits)}
			}
		}
		return &StringValue{Value: strconv.FormatFloat(n, 'f', digits, 64)}
	},
	"abs": func(i *Interpreter, recv Value, args []Value) Value {
		return &NumberValue{Value: math.Abs(ToNumber(recv))}
	},
	"round": func(i *Interpreter, recv Value, args []Value) Value {
		return &NumberValue{Value: math.Round(ToNumber(recv))}
	},
	"floor": func(i *Interpreter, recv Value, args []Value) Value {
		return &NumberValue{Value: math.Floor(ToNumber(recv))}
	},
	"ceil": func(i *Interpreter, recv Value, args []Value) Value {
		return &NumberValue{Value: math.Ceil(ToNumber(recv))}
	},
}
