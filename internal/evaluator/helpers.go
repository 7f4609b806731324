package evaluator

import "fmt"

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NULL  = &Null{}
)

func nativeBoolToBooleanObject(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// newErrorWithStack creates an error carrying a copy of the current call
// stack for the driver's traceback report.
func (e *Evaluator) newErrorWithStack(kind ErrorKind, format string, a ...interface{}) *Error {
	err := newError(kind, format, a...)
	if len(e.CallStack) > 0 {
		err.StackTrace = make([]StackFrame, len(e.CallStack))
		copy(err.StackTrace, e.CallStack)
	}
	return err
}

// PushCall adds a call frame to the stack
func (e *Evaluator) PushCall(name string, line int) {
	e.CallStack = append(e.CallStack, StackFrame{Name: name, Line: line})
}

// PopCall removes the top call frame
func (e *Evaluator) PopCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

func unwrapReturnValue(obj Object) Object {
	if returnValue, ok := obj.(*ReturnValue); ok {
		return returnValue.Value
	}
	return obj
}

// isTruthy applies the single truthiness rule: false, numeric zero, the
// empty string, empty containers, and null are falsy; everything else is
// truthy.
func isTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Null:
		return false
	case *Boolean:
		return obj.Value
	case *Integer:
		return obj.Value != 0
	case *Float:
		return obj.Value != 0
	case *String:
		return obj.Value != ""
	case *List:
		return len(obj.Elements) > 0
	case *Dict:
		return len(obj.Pairs) > 0
	default:
		return true
	}
}
