// Package lagoon is the embedder API: the embedder-facing boundary where
// lagoon's internal sentinel-Value error convention is converted into a
// plain Go error (cmd/lagoon's run command is the other such boundary),
// following the shape of the teacher's functional-options engine package.
package lagoon

import (
	"fmt"
	"io"
	"os"

	"github.com/lagoon-lang/lagoon/internal/interp"
)

// Value is a lagoon runtime value, re-exported so embedders never need to
// import internal/interp directly.
type Value = interp.Value

// NativeFunctionCallback is a host Go function exposed as a lagoon global.
type NativeFunctionCallback = interp.NativeFunctionCallback

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput sets the writer print/println write to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.interp.Output = w }
}

// WithSearchPaths sets extra directories tried by `require` after the
// importing file's own directory.
func WithSearchPaths(paths []string) Option {
	return func(e *Engine) { e.interp.SearchPaths = paths }
}

// Engine is an embeddable lagoon interpreter instance.
type Engine struct {
	interp *interp.Interpreter
}

// New creates an Engine, applying opts in order.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{interp: interp.New()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Eval parses and runs source as a top-level program, converting any
// resulting *interp.ErrorValue into a Go error. source is treated as an
// anonymous, path-less script for `require` resolution purposes.
func (e *Engine) Eval(source string) (Value, error) {
	return e.EvalFile(source, "")
}

// EvalFile is like Eval but sets path as the script's source path, so that
// relative `require` calls inside source resolve against path's directory.
func (e *Engine) EvalFile(source, path string) (Value, error) {
	result := e.interp.Run(source, path)
	if errVal, ok := result.(*interp.ErrorValue); ok {
		return nil, fmt.Errorf("%s: %s", errVal.Kind, errVal.Message)
	}
	return result, nil
}

// RegisterFunction exposes fn as a lagoon global callable named name.
func (e *Engine) RegisterFunction(name string, fn NativeFunctionCallback) {
	e.interp.RegisterFunction(name, fn)
}

// SetOutput redirects print/println output.
func (e *Engine) SetOutput(w io.Writer) {
	e.interp.Output = w
}

// Stdout is the default Engine output target, provided for embedders that
// want to restore it after redirecting.
var Stdout io.Writer = os.Stdout
