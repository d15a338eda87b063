package jstranspile

import (
	"strings"
	"testing"

	"github.com/lagoon-lang/lagoon/internal/interp"
)

func TestTranspileArithmeticAndLet(t *testing.T) {
	prog, errs := interp.Parse(`let x = 1 + 2 * 3;`)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	out, err := Transpile(prog)
	if err != nil {
		t.Fatalf("transpile error: %v", err)
	}
	if !strings.Contains(out, "let x = (1 + (2 * 3));") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTranspileFunctionAndIf(t *testing.T) {
	prog, errs := interp.Parse(`fn max(a, b) { if a < b then { return b; } else { return a; } }`)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	out, err := Transpile(prog)
	if err != nil {
		t.Fatalf("transpile error: %v", err)
	}
	if !strings.Contains(out, "function max(a, b) {") {
		t.Fatalf("missing function header: %q", out)
	}
	if !strings.Contains(out, "if ((a < b)) {") {
		t.Fatalf("missing if: %q", out)
	}
}

func TestTranspileOperatorTranslation(t *testing.T) {
	prog, errs := interp.Parse(`let ok = a and b or not c;`)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	out, err := Transpile(prog)
	if err != nil {
		t.Fatalf("transpile error: %v", err)
	}
	if !strings.Contains(out, "&&") || !strings.Contains(out, "||") || !strings.Contains(out, "!c") {
		t.Fatalf("operator translation missing: %q", out)
	}
}

func TestTranspileRejectsStruct(t *testing.T) {
	prog, errs := interp.Parse(`struct Point { x, y }`)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if _, err := Transpile(prog); err == nil {
		t.Fatal("expected Unsupported error for struct declaration")
	}
}

func TestTranspileRejectsClosure(t *testing.T) {
	prog, errs := interp.Parse(`let f = |x| x + 1;`)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if _, err := Transpile(prog); err == nil {
		t.Fatal("expected Unsupported error for closure literal")
	}
}
