// Package errors formats lagoon diagnostics for terminal output: a
// "file:line:column" header, the offending source line, and a caret under
// the error position, with ANSI color (bold header, red-bold message) when
// the caller asks for it. Whether output is a terminal is not checked here;
// cmd/lagoon always asks for color.
package errors

import (
	"fmt"
	"strings"

	"github.com/lagoon-lang/lagoon/internal/token"
)

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[1;31m"
)

// CompilerError is a lex/parse-time or runtime diagnostic tied to a source
// position.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError builds a CompilerError from an already-known position,
// used when the caller has a *interp.ErrorValue's Pos rather than a raw
// string to parse.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Format renders the error as a multi-line string, optionally with ANSI
// color codes for an interactive terminal.
func (e *CompilerError) Format(color bool) string {
	var b strings.Builder
	header := fmt.Sprintf("Error in %s:%d:%d", e.File, e.Pos.Line, e.Pos.Column)
	if color {
		b.WriteString(colorBold + header + colorReset + "\n")
	} else {
		b.WriteString(header + "\n")
	}

	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line-1 >= 0 && e.Pos.Line-1 < len(lines) {
		line := lines[e.Pos.Line-1]
		b.WriteString(line + "\n")
		col := e.Pos.Column - 1
		if col < 0 {
			col = 0
		}
		b.WriteString(strings.Repeat(" ", col) + "^\n")
	}

	if color {
		b.WriteString(colorRed + e.Message + colorReset)
	} else {
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

// FormatErrors renders one or more errors, numbering them when there is more
// than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d error(s):\n\n", len(errs))
	for idx, e := range errs {
		fmt.Fprintf(&b, "[Error %d of %d]\n", idx+1, len(errs))
		b.WriteString(e.Format(color))
		if idx < len(errs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// FromStringErrors wraps internal/parser's plain-string diagnostics (each
// ending in "at line L, column C", per Parser.addError) into CompilerErrors
// carrying real positions, so they render with the same source-line-and-caret
// format as runtime errors.
func FromStringErrors(stringErrs []string, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(stringErrs))
	for _, s := range stringErrs {
		pos, message := parseErrorString(s)
		out = append(out, NewCompilerError(pos, message, source, file))
	}
	return out
}

func parseErrorString(s string) (token.Position, string) {
	idx := strings.LastIndex(s, " at line ")
	if idx == -1 {
		return token.Position{}, s
	}
	message := s[:idx]
	var line, col int
	if _, err := fmt.Sscanf(s[idx+len(" at line "):], "%d, column %d", &line, &col); err != nil {
		return token.Position{}, s
	}
	return token.Position{Line: line, Column: col}, message
}
