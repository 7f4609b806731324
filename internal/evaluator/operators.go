package evaluator

import (
	"math"
	"strings"

	"github.com/funvibe/jdl/internal/program"
)

func (e *Evaluator) evalOperator(instr *program.Instruction, env *Environment) Object {
	switch instr.Op {
	case "+", "-", "*", "/", "%":
		return e.evalArithmetic(instr, env)
	case "==", "!=", "<", ">", "<=", ">=":
		return e.evalComparison(instr, env)
	case "and", "or":
		return e.evalLogical(instr, env)
	case "not":
		val := e.Eval(instr.Args[0], env)
		if isError(val) {
			return val
		}
		return nativeBoolToBooleanObject(!isTruthy(val))
	case "!->":
		return e.evalNotIn(instr, env)
	default:
		return newError(ErrUnsupportedOperator, "unknown operator %q", instr.Op)
	}
}

// evalArithmetic folds the operand list left to right. Nested instructions
// carrying the same operator are flattened first, so deeply chained sums
// reduce iteratively instead of recursing once per element.
func (e *Evaluator) evalArithmetic(instr *program.Instruction, env *Environment) Object {
	operands := flattenOperands(instr)
	acc := e.Eval(operands[0], env)
	if isError(acc) {
		return acc
	}
	for _, op := range operands[1:] {
		val := e.Eval(op, env)
		if isError(val) {
			return val
		}
		acc = e.evalArithmeticPair(instr.Op, acc, val)
		if isError(acc) {
			return acc
		}
	}
	return acc
}

func flattenOperands(instr *program.Instruction) []program.Operand {
	stack := make([]program.Operand, len(instr.Args))
	copy(stack, instr.Args)
	flat := make([]program.Operand, 0, len(stack))
	for len(stack) > 0 {
		item := stack[0]
		stack = stack[1:]
		if nested, ok := item.(*program.Instruction); ok && nested.Op == instr.Op {
			stack = append(append([]program.Operand{}, nested.Args...), stack...)
			continue
		}
		flat = append(flat, item)
	}
	return flat
}

func (e *Evaluator) evalArithmeticPair(operator string, left, right Object) Object {
	if left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ {
		return e.evalIntegerArithmetic(operator, left.(*Integer), right.(*Integer))
	}
	if isNumeric(left) && isNumeric(right) {
		return e.evalFloatArithmetic(operator, toFloat64(left), toFloat64(right))
	}
	if operator == "+" {
		if left.Type() == STRING_OBJ && right.Type() == STRING_OBJ {
			return &String{Value: left.(*String).Value + right.(*String).Value}
		}
		if left.Type() == LIST_OBJ && right.Type() == LIST_OBJ {
			l, r := left.(*List), right.(*List)
			elements := make([]Object, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			elements = append(elements, r.Elements...)
			return NewList(elements)
		}
	}
	return e.newErrorWithStack(ErrTypeMismatch, "operator %q not supported for %s and %s",
		operator, left.Type(), right.Type())
}

func (e *Evaluator) evalIntegerArithmetic(operator string, left, right *Integer) Object {
	switch operator {
	case "+":
		return &Integer{Value: left.Value + right.Value}
	case "-":
		return &Integer{Value: left.Value - right.Value}
	case "*":
		return &Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return e.newErrorWithStack(ErrDivisionByZero, "division by zero")
		}
		return &Integer{Value: left.Value / right.Value}
	case "%":
		if right.Value == 0 {
			return e.newErrorWithStack(ErrDivisionByZero, "modulo by zero")
		}
		return &Integer{Value: left.Value % right.Value}
	default:
		return newError(ErrUnsupportedOperator, "unknown operator %q", operator)
	}
}

func (e *Evaluator) evalFloatArithmetic(operator string, left, right float64) Object {
	switch operator {
	case "+":
		return &Float{Value: left + right}
	case "-":
		return &Float{Value: left - right}
	case "*":
		return &Float{Value: left * right}
	case "/":
		if right == 0 {
			return e.newErrorWithStack(ErrDivisionByZero, "division by zero")
		}
		return &Float{Value: left / right}
	case "%":
		if right == 0 {
			return e.newErrorWithStack(ErrDivisionByZero, "modulo by zero")
		}
		return &Float{Value: math.Mod(left, right)}
	default:
		return newError(ErrUnsupportedOperator, "unknown operator %q", operator)
	}
}

func (e *Evaluator) evalComparison(instr *program.Instruction, env *Environment) Object {
	left := e.Eval(instr.Args[0], env)
	if isError(left) {
		return left
	}
	right := e.Eval(instr.Args[1], env)
	if isError(right) {
		return right
	}

	switch instr.Op {
	case "==":
		return nativeBoolToBooleanObject(ObjectsEqual(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!ObjectsEqual(left, right))
	}

	cmp, ok := compareOrdered(left, right)
	if !ok {
		return e.newErrorWithStack(ErrUnsupportedOperator,
			"ordering comparison %q not supported for %s and %s",
			instr.Op, left.Type(), right.Type())
	}
	switch instr.Op {
	case "<":
		return nativeBoolToBooleanObject(cmp < 0)
	case ">":
		return nativeBoolToBooleanObject(cmp > 0)
	case "<=":
		return nativeBoolToBooleanObject(cmp <= 0)
	case ">=":
		return nativeBoolToBooleanObject(cmp >= 0)
	default:
		return newError(ErrUnsupportedOperator, "unknown operator %q", instr.Op)
	}
}

// compareOrdered orders numbers numerically and strings lexicographically.
// Every other kind is unordered.
func compareOrdered(left, right Object) (int, bool) {
	if isNumeric(left) && isNumeric(right) {
		l, r := toFloat64(left), toFloat64(right)
		switch {
		case l < r:
			return -1, true
		case l > r:
			return 1, true
		default:
			return 0, true
		}
	}
	if left.Type() == STRING_OBJ && right.Type() == STRING_OBJ {
		return strings.Compare(left.(*String).Value, right.(*String).Value), true
	}
	return 0, false
}

// evalLogical short-circuits: "and" skips its second operand when the
// first is falsy, "or" when the first is truthy.
func (e *Evaluator) evalLogical(instr *program.Instruction, env *Environment) Object {
	left := e.Eval(instr.Args[0], env)
	if isError(left) {
		return left
	}
	leftTruthy := isTruthy(left)
	if instr.Op == "and" && !leftTruthy {
		return FALSE
	}
	if instr.Op == "or" && leftTruthy {
		return TRUE
	}
	right := e.Eval(instr.Args[1], env)
	if isError(right) {
		return right
	}
	return nativeBoolToBooleanObject(isTruthy(right))
}

// evalNotIn implements "!->": true when the left value is absent from the
// right container (list elements, dict keys, or string substring).
func (e *Evaluator) evalNotIn(instr *program.Instruction, env *Environment) Object {
	left := e.Eval(instr.Args[0], env)
	if isError(left) {
		return left
	}
	right := e.Eval(instr.Args[1], env)
	if isError(right) {
		return right
	}

	switch container := right.(type) {
	case *List:
		for _, el := range container.Elements {
			if ObjectsEqual(left, el) {
				return FALSE
			}
		}
		return TRUE
	case *Dict:
		if !Hashable(left) {
			return e.newErrorWithStack(ErrTypeMismatch, "%s is not usable as a dict key", left.Type())
		}
		_, found := container.Get(left)
		return nativeBoolToBooleanObject(!found)
	case *String:
		needle, ok := left.(*String)
		if !ok {
			return e.newErrorWithStack(ErrTypeMismatch, "cannot search for %s in a string", left.Type())
		}
		return nativeBoolToBooleanObject(!strings.Contains(container.Value, needle.Value))
	default:
		return e.newErrorWithStack(ErrTypeMismatch, "right operand of %q must be a container, got %s",
			instr.Op, right.Type())
	}
}

func isNumeric(obj Object) bool {
	return obj.Type() == INTEGER_OBJ || obj.Type() == FLOAT_OBJ
}

func toFloat64(obj Object) float64 {
	switch obj := obj.(type) {
	case *Integer:
		return float64(obj.Value)
	case *Float:
		return obj.Value
	default:
		return 0
	}
}
