package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRequireSplicesIntoHostEnvironment(t *testing.T) {
	var buf bytes.Buffer
	i := New()
	i.Output = &buf

	path := filepath.Join("testdata", "require", "main.lag")
	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	result := i.Run(string(source), path)
	if IsError(result) {
		t.Fatalf("unexpected error: %s", result.(*ErrorValue).Message)
	}
	if buf.String() != "36\n42\n" {
		t.Fatalf("got %q, want %q", buf.String(), "36\n42\n")
	}
}

func TestRequireIsIdempotent(t *testing.T) {
	out, _ := run(t, `
require("./testdata/require/mathutil");
require("./testdata/require/mathutil");
println(square(3));
`)
	if out != "9\n" {
		t.Fatalf("got %q, want %q", out, "9\n")
	}
}

func TestRequireRejectsNonRelativePath(t *testing.T) {
	var buf bytes.Buffer
	i := New()
	i.Output = &buf
	result := i.Run(`require("mathutil");`, "test.lag")
	errVal, ok := result.(*ErrorValue)
	if !ok {
		t.Fatalf("expected error, got %v", result)
	}
	if errVal.Kind != UndefinedVariable {
		t.Fatalf("got kind %v, want UndefinedVariable", errVal.Kind)
	}
}

func TestRequireRejectsMissingFile(t *testing.T) {
	var buf bytes.Buffer
	i := New()
	i.Output = &buf
	result := i.Run(`require("./does-not-exist");`, "test.lag")
	errVal, ok := result.(*ErrorValue)
	if !ok {
		t.Fatalf("expected error, got %v", result)
	}
	if errVal.Kind != UndefinedVariable {
		t.Fatalf("got kind %v, want UndefinedVariable", errVal.Kind)
	}
}
