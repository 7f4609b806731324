package evaluator

import (
	"github.com/funvibe/jdl/internal/program"
)

// execFunc builds a function value capturing the defining environment and
// binds it under its name in that same environment.
func (e *Evaluator) execFunc(instr *program.Instruction, env *Environment) Object {
	name := instr.Args[0].(*program.StringLiteral).Value
	params := instr.Args[1].(*program.NameList)
	body := instr.Args[2].(*program.Block)

	fn := &Function{
		Name:       name,
		Parameters: params.Names,
		Body:       body,
		Env:        env, // Closure
	}
	env.Set(name, fn)
	return fn
}

// applyNamed handles an opcode that resolved to neither keyword nor
// operator: it must name a function in scope.
func (e *Evaluator) applyNamed(instr *program.Instruction, env *Environment) Object {
	obj, ok := env.Get(instr.Op)
	if !ok {
		return e.newErrorWithStack(ErrUndefinedFunction, "unknown instruction %q", instr.Op)
	}
	fn, ok := obj.(*Function)
	if !ok {
		return e.newErrorWithStack(ErrUndefinedFunction, "%q is not callable (bound to %s)",
			instr.Op, obj.Type())
	}

	// Arguments evaluate left to right in the caller's environment.
	args := make([]Object, 0, len(instr.Args))
	for _, arg := range instr.Args {
		val := e.Eval(arg, env)
		if isError(val) {
			return val
		}
		args = append(args, val)
	}
	return e.applyFunction(fn, args, instr.Line)
}

// applyFunction binds arguments positionally in a fresh child of the
// function's captured environment and runs the body. A return signal from
// the body becomes the call's result; running to completion yields Null.
func (e *Evaluator) applyFunction(fn *Function, args []Object, line int) Object {
	if len(args) != len(fn.Parameters) {
		return e.newErrorWithStack(ErrArityMismatch, "%q requires %d argument(s), got %d",
			fn.Name, len(fn.Parameters), len(args))
	}

	callEnv := NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		callEnv.Set(param, args[i])
	}

	e.PushCall(fn.Name, line)
	defer e.PopCall()

	res := e.execBlock(fn.Body, callEnv)
	switch res := res.(type) {
	case *Error, *ExitSignal:
		return res
	case *ReturnValue:
		return res.Value
	default:
		// Loop signals do not cross the call boundary; a body that falls
		// off the end produces Null.
		return NULL
	}
}
