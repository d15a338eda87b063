package lagoon

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lagoon-lang/lagoon/internal/interp"
)

func TestEvalReturnsValue(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, err := e.Eval(`1 + 2;`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.String() != "3" {
		t.Fatalf("got %q, want %q", v.String(), "3")
	}
}

func TestEvalConvertsErrorValue(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = e.Eval(`undefinedThing;`)
	if err == nil {
		t.Fatal("expected error for undefined identifier")
	}
}

func TestWithOutputCapturesPrint(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(WithOutput(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Eval(`println("hi");`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "hi" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestRegisterFunction(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.RegisterFunction("double", func(i *interp.Interpreter, args []Value) Value {
		return &interp.NumberValue{Value: interp.ToNumber(args[0]) * 2}
	})
	v, err := e.Eval(`double(21);`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.String() != "42" {
		t.Fatalf("got %q, want %q", v.String(), "42")
	}
}
