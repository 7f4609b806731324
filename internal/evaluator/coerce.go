package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/jdl/internal/config"
)

// coerce applies one of the four conversion builtins to an already
// evaluated value.
func (e *Evaluator) coerce(kind string, val Object) Object {
	switch kind {
	case config.IntKeyword:
		return e.coerceInt(val)
	case config.FloatKeyword:
		return e.coerceFloat(val)
	case config.BoolKeyword:
		return nativeBoolToBooleanObject(isTruthy(val))
	case config.StrKeyword:
		return &String{Value: FormatValue(val)}
	default:
		return newError(ErrTypeMismatch, "unknown coercion %q", kind)
	}
}

func (e *Evaluator) coerceInt(val Object) Object {
	switch val := val.(type) {
	case *Integer:
		return val
	case *Float:
		return &Integer{Value: int64(val.Value)}
	case *Boolean:
		if val.Value {
			return &Integer{Value: 1}
		}
		return &Integer{Value: 0}
	case *String:
		n, err := strconv.ParseInt(strings.TrimSpace(val.Value), 10, 64)
		if err != nil {
			return e.newErrorWithStack(ErrCoercion, "cannot convert %q to int", val.Value)
		}
		return &Integer{Value: n}
	default:
		return e.newErrorWithStack(ErrTypeMismatch, "cannot convert %s to int", val.Type())
	}
}

func (e *Evaluator) coerceFloat(val Object) Object {
	switch val := val.(type) {
	case *Float:
		return val
	case *Integer:
		return &Float{Value: float64(val.Value)}
	case *Boolean:
		if val.Value {
			return &Float{Value: 1}
		}
		return &Float{Value: 0}
	case *String:
		f, err := strconv.ParseFloat(strings.TrimSpace(val.Value), 64)
		if err != nil {
			return e.newErrorWithStack(ErrCoercion, "cannot convert %q to float", val.Value)
		}
		return &Float{Value: f}
	default:
		return e.newErrorWithStack(ErrTypeMismatch, "cannot convert %s to float", val.Type())
	}
}
