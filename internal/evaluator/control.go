package evaluator

import (
	"github.com/funvibe/jdl/internal/program"
)

// execIf runs the then-block in a fresh child environment when the
// condition is truthy, the else-block (if present) otherwise.
func (e *Evaluator) execIf(instr *program.Instruction, env *Environment) Object {
	cond := e.Eval(instr.Args[0], env)
	if isError(cond) {
		return cond
	}
	if isTruthy(cond) {
		return e.execBlock(instr.Args[1].(*program.Block), NewEnclosedEnvironment(env))
	}
	if len(instr.Args) == 3 {
		return e.execBlock(instr.Args[2].(*program.Block), NewEnclosedEnvironment(env))
	}
	return NULL
}

// execWhile re-evaluates the condition in the enclosing environment before
// each pass and runs the body in a child environment created anew per
// iteration, so names defined inside do not leak or persist across passes.
func (e *Evaluator) execWhile(instr *program.Instruction, env *Environment) Object {
	cond := instr.Args[0]
	body := instr.Args[1].(*program.Block)

	var result Object = NULL
	for {
		c := e.Eval(cond, env)
		if isError(c) {
			return c
		}
		if !isTruthy(c) {
			return result
		}
		res := e.execBlock(body, NewEnclosedEnvironment(env))
		switch res.(type) {
		case *Error, *ReturnValue, *ExitSignal:
			return res
		case *BreakSignal:
			return result
		case *ContinueSignal:
			continue
		}
		result = res
	}
}

// execFor evaluates the iterable once and walks its elements: list values,
// dict keys, or the single-rune strings of a string.
func (e *Evaluator) execFor(instr *program.Instruction, env *Environment) Object {
	name := instr.Args[0].(*program.StringLiteral).Value
	iterable := e.Eval(instr.Args[1], env)
	if isError(iterable) {
		return iterable
	}
	body := instr.Args[2].(*program.Block)

	var items []Object
	switch it := iterable.(type) {
	case *List:
		items = it.Elements
	case *Dict:
		items = it.Keys()
	case *String:
		for _, r := range it.Value {
			items = append(items, &String{Value: string(r)})
		}
	default:
		return e.newErrorWithStack(ErrTypeMismatch, "cannot iterate over %s", iterable.Type())
	}

	var result Object = NULL
	for _, item := range items {
		loopEnv := NewEnclosedEnvironment(env)
		loopEnv.Set(name, item)
		res := e.execBlock(body, loopEnv)
		switch res.(type) {
		case *Error, *ReturnValue, *ExitSignal:
			return res
		case *BreakSignal:
			return result
		case *ContinueSignal:
			continue
		}
		result = res
	}
	return result
}

// execSwitch evaluates the subject once and compares it against each case
// key in declaration order using "==" semantics. The first match's body
// runs in a fresh child environment; a trailing bare block is the default.
func (e *Evaluator) execSwitch(instr *program.Instruction, env *Environment) Object {
	value := e.Eval(instr.Args[0], env)
	if isError(value) {
		return value
	}

	var defaultBody *program.Block
	for _, arg := range instr.Args[1:] {
		switch clause := arg.(type) {
		case *program.CaseClause:
			key := e.Eval(clause.Key, env)
			if isError(key) {
				return key
			}
			if ObjectsEqual(value, key) {
				return e.execBlock(clause.Body, NewEnclosedEnvironment(env))
			}
		case *program.Block:
			defaultBody = clause
		}
	}
	if defaultBody != nil {
		return e.execBlock(defaultBody, NewEnclosedEnvironment(env))
	}
	return NULL
}

// execReturn wraps the operand (Null when absent, a list when several) in
// a return signal that unwinds to the nearest call frame.
func (e *Evaluator) execReturn(instr *program.Instruction, env *Environment) Object {
	switch len(instr.Args) {
	case 0:
		return &ReturnValue{Value: NULL}
	case 1:
		val := e.Eval(instr.Args[0], env)
		if isError(val) {
			return val
		}
		return &ReturnValue{Value: val}
	default:
		values := make([]Object, 0, len(instr.Args))
		for _, arg := range instr.Args {
			val := e.Eval(arg, env)
			if isError(val) {
				return val
			}
			values = append(values, val)
		}
		return &ReturnValue{Value: NewList(values)}
	}
}
