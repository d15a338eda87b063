package errors

import (
	"strings"
	"testing"

	"github.com/lagoon-lang/lagoon/internal/token"
)

func TestCompilerErrorFormatShowsSourceLineAndCaret(t *testing.T) {
	e := NewCompilerError(token.Position{Line: 2, Column: 5}, "unexpected token", "let x = 1;\nlet y = ;\n", "script.lag")

	out := e.Format(false)
	if !strings.Contains(out, "Error in script.lag:2:5") {
		t.Fatalf("missing header, got %q", out)
	}
	if !strings.Contains(out, "let y = ;") {
		t.Fatalf("missing source line, got %q", out)
	}
	if !strings.Contains(out, "    ^") {
		t.Fatalf("missing caret at column 5, got %q", out)
	}
	if !strings.Contains(out, "unexpected token") {
		t.Fatalf("missing message, got %q", out)
	}
}

func TestFromStringErrorsExtractsPosition(t *testing.T) {
	errs := FromStringErrors([]string{
		`expected next token to be ;, got EOF at line 3, column 1`,
	}, "source", "file.lag")

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Pos.Line != 3 || errs[0].Pos.Column != 1 {
		t.Fatalf("got pos %+v, want line 3 column 1", errs[0].Pos)
	}
	if errs[0].Message != "expected next token to be ;, got EOF" {
		t.Fatalf("got message %q", errs[0].Message)
	}
}

func TestFromStringErrorsWithoutPositionFallsBack(t *testing.T) {
	errs := FromStringErrors([]string{"something went wrong"}, "source", "file.lag")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Message != "something went wrong" {
		t.Fatalf("got message %q", errs[0].Message)
	}
	if errs[0].Pos != (token.Position{}) {
		t.Fatalf("expected zero position, got %+v", errs[0].Pos)
	}
}

func TestFormatErrorsNumbersMultipleErrors(t *testing.T) {
	errs := []*CompilerError{
		NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "a", "f.lag"),
		NewCompilerError(token.Position{Line: 2, Column: 1}, "second", "a\nb", "f.lag"),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("missing error count, got %q", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Fatalf("missing numbering, got %q", out)
	}
}
