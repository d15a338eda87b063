package interp

import "testing"

func TestToNumber(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{&NumberValue{Value: 3.5}, 3.5},
		{&BoolValue{Value: true}, 1},
		{&BoolValue{Value: false}, 0},
		{Null, 0},
		{&StringValue{Value: " 42 "}, 42},
		{&StringValue{Value: "nope"}, 0},
	}
	for _, c := range cases {
		if got := ToNumber(c.v); got != c.want {
			t.Errorf("ToNumber(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToBoolTruthinessOfZero(t *testing.T) {
	if ToBool(&NumberValue{Value: 0}) {
		t.Error("0 should be falsy")
	}
	if ToBool(&NumberValue{Value: -1}) {
		t.Error("-1 should be falsy")
	}
	if !ToBool(&NumberValue{Value: 1}) {
		t.Error("1 should be truthy")
	}
}

func TestIsAsymmetric(t *testing.T) {
	if !Is(&StringValue{Value: "1"}, &NumberValue{Value: 1}) {
		t.Error(`is("1", 1) should be true`)
	}
	if !Is(&NumberValue{Value: 1}, &StringValue{Value: "1"}) {
		t.Error(`is(1, "1") should be true`)
	}
	if Is(Null, &NumberValue{Value: 0}) {
		t.Error(`is(null, 0) should be false`)
	}
	if !Is(&NumberValue{Value: 0}, Null) {
		t.Error(`is(0, null) should be true`)
	}
}

func TestConstantNeverWrapsConstant(t *testing.T) {
	inner := NewConstant(&NumberValue{Value: 1})
	outer := NewConstant(inner)
	if outer != inner {
		t.Error("NewConstant should flatten nested constants")
	}
}

func TestTypeString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{&StringValue{Value: "x"}, "string"},
		{&NumberValue{Value: 1}, "number"},
		{&BoolValue{Value: true}, "bool"},
		{Null, "null"},
		{&ListValue{}, "list"},
		{&FunctionValue{}, "function"},
	}
	for _, c := range cases {
		if got := TypeString(c.v); got != c.want {
			t.Errorf("TypeString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
