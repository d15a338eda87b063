package interp

import (
	"fmt"

	"github.com/lagoon-lang/lagoon/internal/token"
)

// ErrorKind identifies the category of a runtime error (spec §7).
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
	UndefinedIndex
	UndefinedField
	UndefinedMethod
	InvalidIterable
	TooFewArguments
	InvalidAppendTarget
	InvalidMethodAssignmentTarget
	CannotAssignValueToConstant
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedIndex:
		return "UndefinedIndex"
	case UndefinedField:
		return "UndefinedField"
	case UndefinedMethod:
		return "UndefinedMethod"
	case InvalidIterable:
		return "InvalidIterable"
	case TooFewArguments:
		return "TooFewArguments"
	case InvalidAppendTarget:
		return "InvalidAppendTarget"
	case InvalidMethodAssignmentTarget:
		return "InvalidMethodAssignmentTarget"
	case CannotAssignValueToConstant:
		return "CannotAssignValueToConstant"
	default:
		return "UnknownError"
	}
}

// ErrorValue is a runtime error. Like ReturnValue it is a sentinel Value:
// Eval always returns a plain Value, and callers check Type() == "ERROR" to
// detect and propagate a failure instead of threading a separate Go error
// return through every evaluation method. Only the outer boundaries
// (pkg/lagoon.Engine.Eval, cmd/lagoon's run command) convert it to a Go
// error. Pos/File/Source carry the source position and text of the file
// under evaluation when the error was raised (which, when the error
// originates inside a require()'d module, is that module's own file, not
// the top-level caller's), so cmd/lagoon can render it with
// internal/errors.CompilerError instead of a bare message.
type ErrorValue struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
	File    string
	Source  string
}

func (e *ErrorValue) Type() string   { return "ERROR" }
func (e *ErrorValue) String() string { return "ERROR: " + e.Message }

// newError builds an ErrorValue stamped with the position of the node i is
// currently evaluating (see Eval, which records it on every dispatch) and
// the file/source i is currently running.
func (i *Interpreter) newError(kind ErrorKind, format string, args ...interface{}) *ErrorValue {
	return &ErrorValue{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     i.pos,
		File:    i.SourcePath,
		Source:  i.Source,
	}
}

// IsError reports whether v is an ErrorValue.
func IsError(v Value) bool {
	_, ok := v.(*ErrorValue)
	return ok
}
