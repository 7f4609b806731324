package evaluator

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies a fatal runtime error. Every kind aborts the whole
// program; there is no user-facing catch construct.
type ErrorKind string

const (
	ErrUnresolvedName      ErrorKind = "UnresolvedName"
	ErrUndefinedFunction   ErrorKind = "UndefinedFunction"
	ErrArityMismatch       ErrorKind = "ArityMismatch"
	ErrTypeMismatch        ErrorKind = "TypeMismatch"
	ErrDivisionByZero      ErrorKind = "DivisionByZero"
	ErrCoercion            ErrorKind = "CoercionError"
	ErrUnsupportedOperator ErrorKind = "UnsupportedOperator"
	ErrStackOverflow       ErrorKind = "StackOverflow"
)

// StackFrame for error stack traces
type StackFrame struct {
	Name string
	Line int
}

// Error
type Error struct {
	Kind       ErrorKind
	Message    string
	Line       int
	StackTrace []StackFrame
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }

func (e *Error) Inspect() string {
	result := string(e.Kind) + ": " + e.Message
	if e.Line > 0 {
		result += " (line " + strconv.Itoa(e.Line) + ")"
	}
	if len(e.StackTrace) > 0 {
		result += "\nStack trace:"
		for i := len(e.StackTrace) - 1; i >= 0; i-- {
			frame := e.StackTrace[i]
			result += fmt.Sprintf("\n  at %s (line %d)", frame.Name, frame.Line)
		}
	}
	return result
}

func (e *Error) Hash() uint32 { return hashString(e.Message) }

// ReturnValue wraps a value produced by "return" while it propagates up to
// the nearest enclosing call frame.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }
func (rv *ReturnValue) Hash() uint32     { return rv.Value.Hash() }

// BreakSignal aborts the innermost loop.
type BreakSignal struct{}

func (bs *BreakSignal) Type() ObjectType { return BREAK_SIGNAL_OBJ }
func (bs *BreakSignal) Inspect() string  { return "break" }
func (bs *BreakSignal) Hash() uint32     { return 0 }

// ContinueSignal skips to the next iteration of the innermost loop.
type ContinueSignal struct{}

func (cs *ContinueSignal) Type() ObjectType { return CONTINUE_SIGNAL_OBJ }
func (cs *ContinueSignal) Inspect() string  { return "continue" }
func (cs *ContinueSignal) Hash() uint32     { return 0 }

// ExitSignal terminates the program with the given process exit code.
type ExitSignal struct {
	Code int
}

func (es *ExitSignal) Type() ObjectType { return EXIT_SIGNAL_OBJ }
func (es *ExitSignal) Inspect() string  { return "exit " + strconv.Itoa(es.Code) }
func (es *ExitSignal) Hash() uint32     { return 0 }
