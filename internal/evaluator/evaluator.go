package evaluator

import (
	"bufio"
	"io"
	"os"

	"github.com/funvibe/jdl/internal/config"
	"github.com/funvibe/jdl/internal/program"
)

type Evaluator struct {
	Out io.Writer
	In  *bufio.Reader

	// CallStack for error tracebacks
	CallStack []StackFrame

	// evalDepth tracks the nesting depth of Eval/Exec calls to turn host
	// stack exhaustion into a reportable StackOverflow error.
	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		Out: os.Stdout,
		In:  bufio.NewReader(os.Stdin),
	}
}

// maxEvalDepth is the maximum nesting depth of Eval calls. Recursion past
// this point would risk exhausting the host stack.
const maxEvalDepth = 10000

// Run executes a top-level instruction sequence in env. An error aborts
// execution immediately; a return signal that reaches the top level simply
// halts the program. The result of the last instruction is returned.
func (e *Evaluator) Run(prog *program.Program, env *Environment) Object {
	var result Object = NULL
	for _, instr := range prog.Instructions {
		result = e.Exec(instr, env)
		switch result.(type) {
		case *Error, *ExitSignal:
			return result
		case *ReturnValue:
			return unwrapReturnValue(result)
		case *BreakSignal, *ContinueSignal:
			// A loop signal that escapes to the top level halts execution,
			// same as an unconsumed return.
			return NULL
		}
	}
	return result
}

// Eval resolves an operand to a value: literals evaluate to themselves,
// references resolve via the scope chain, and nested instructions are
// dispatched recursively. Operand order is strictly left to right.
func (e *Evaluator) Eval(op program.Operand, env *Environment) Object {
	switch node := op.(type) {
	case *program.NullLiteral:
		return NULL
	case *program.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *program.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *program.FloatLiteral:
		return &Float{Value: node.Value}
	case *program.StringLiteral:
		return &String{Value: node.Value}
	case *program.Ref:
		val, ok := env.Get(node.Name)
		if !ok {
			return e.newErrorWithStack(ErrUnresolvedName, "name %q is not defined", node.Name)
		}
		return val
	case *program.Instruction:
		return e.Exec(node, env)
	default:
		return newError(ErrTypeMismatch, "operand %s cannot be evaluated as a value", op.String())
	}
}

// Exec dispatches a single instruction. Opcode resolution follows a fixed
// precedence: reserved keywords, then operator symbols, then a
// scope-resolved function call.
func (e *Evaluator) Exec(instr *program.Instruction, env *Environment) Object {
	e.evalDepth++
	if e.evalDepth > maxEvalDepth {
		e.evalDepth--
		return e.newErrorWithStack(ErrStackOverflow, "maximum recursion depth exceeded")
	}
	defer func() { e.evalDepth-- }()

	var result Object
	switch config.ClassifyOpcode(instr.Op) {
	case config.OpcodeKeyword:
		result = e.execKeyword(instr, env)
	case config.OpcodeOperator:
		result = e.evalOperator(instr, env)
	default:
		result = e.applyNamed(instr, env)
	}
	return e.errorAt(instr, result)
}

func (e *Evaluator) execKeyword(instr *program.Instruction, env *Environment) Object {
	switch instr.Op {
	case config.VarKeyword:
		return e.execVar(instr, env)
	case config.FuncKeyword:
		return e.execFunc(instr, env)
	case config.ReturnKeyword:
		return e.execReturn(instr, env)
	case config.IfKeyword:
		return e.execIf(instr, env)
	case config.WhileKeyword:
		return e.execWhile(instr, env)
	case config.ForKeyword:
		return e.execFor(instr, env)
	case config.SwitchKeyword:
		return e.execSwitch(instr, env)
	case config.BreakKeyword:
		return &BreakSignal{}
	case config.ContinueKeyword:
		return &ContinueSignal{}
	case config.PrintKeyword:
		return e.execPrint(instr, env)
	case config.InputKeyword:
		return e.execInput(instr, env)
	case config.ArrayKeyword:
		return e.execArray(instr, env)
	case config.DictKeyword:
		return e.execDict(instr, env)
	case config.IndexKeyword:
		return e.execIndex(instr, env)
	case config.LenKeyword:
		return e.execLen(instr, env)
	case config.GetKeyword:
		return e.execGet(instr, env)
	case config.ExportKeyword:
		return e.execExport(instr, env)
	case config.ExitKeyword:
		return e.execExit(instr, env)
	case config.IntKeyword, config.FloatKeyword, config.BoolKeyword, config.StrKeyword:
		val := e.Eval(instr.Args[0], env)
		if isError(val) {
			return val
		}
		return e.coerce(instr.Op, val)
	default:
		return newError(ErrUndefinedFunction, "unknown keyword %q", instr.Op)
	}
}

// execBlock runs a body's instructions in env, stopping early when a
// signal or error needs to propagate.
func (e *Evaluator) execBlock(block *program.Block, env *Environment) Object {
	var result Object = NULL
	for _, instr := range block.Instructions {
		result = e.Exec(instr, env)
		switch result.Type() {
		case ERROR_OBJ, RETURN_VALUE_OBJ, BREAK_SIGNAL_OBJ, CONTINUE_SIGNAL_OBJ, EXIT_SIGNAL_OBJ:
			return result
		}
	}
	return result
}

// errorAt stamps the failing instruction's line on an error that does not
// carry one yet.
func (e *Evaluator) errorAt(instr *program.Instruction, result Object) Object {
	if err, ok := result.(*Error); ok && err.Line == 0 {
		err.Line = instr.Line
	}
	return result
}
