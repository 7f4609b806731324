package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/jdl/internal/program"
)

// execVar evaluates the operand and binds it in the current frame. The
// bound value is also the instruction's result.
func (e *Evaluator) execVar(instr *program.Instruction, env *Environment) Object {
	name := instr.Args[0].(*program.StringLiteral).Value
	val := e.Eval(instr.Args[1], env)
	if isError(val) {
		return val
	}
	return env.Assign(name, val)
}

// execPrint writes the operands space-joined and newline-terminated.
func (e *Evaluator) execPrint(instr *program.Instruction, env *Environment) Object {
	parts := make([]string, 0, len(instr.Args))
	for _, arg := range instr.Args {
		val := e.Eval(arg, env)
		if isError(val) {
			return val
		}
		parts = append(parts, FormatValue(val))
	}
	fmt.Fprintln(e.Out, strings.Join(parts, " "))
	return NULL
}

// execInput reads one line from the input source, applying the optional
// datatype coercion.
func (e *Evaluator) execInput(instr *program.Instruction, env *Environment) Object {
	line, err := e.In.ReadString('\n')
	if err != nil && err != io.EOF {
		return e.newErrorWithStack(ErrCoercion, "input failed: %v", err)
	}
	line = strings.TrimRight(line, "\r\n")
	val := &String{Value: line}
	if len(instr.Args) == 0 {
		return val
	}
	datatype := instr.Args[0].(*program.StringLiteral).Value
	return e.coerce(datatype, val)
}

// execArray builds a list from its evaluated operands.
func (e *Evaluator) execArray(instr *program.Instruction, env *Environment) Object {
	elements := make([]Object, 0, len(instr.Args))
	for _, arg := range instr.Args {
		val := e.Eval(arg, env)
		if isError(val) {
			return val
		}
		elements = append(elements, val)
	}
	return NewList(elements)
}

// execDict builds a dictionary from alternating key-value operands.
func (e *Evaluator) execDict(instr *program.Instruction, env *Environment) Object {
	dict := NewDict()
	for i := 0; i < len(instr.Args); i += 2 {
		key := e.Eval(instr.Args[i], env)
		if isError(key) {
			return key
		}
		if !Hashable(key) {
			return e.newErrorWithStack(ErrTypeMismatch, "%s is not usable as a dict key", key.Type())
		}
		val := e.Eval(instr.Args[i+1], env)
		if isError(val) {
			return val
		}
		dict.Set(key, val)
	}
	return dict
}

// execIndex retrieves an element: list by integer index, dict by key,
// string by rune index.
func (e *Evaluator) execIndex(instr *program.Instruction, env *Environment) Object {
	container := e.Eval(instr.Args[0], env)
	if isError(container) {
		return container
	}
	index := e.Eval(instr.Args[1], env)
	if isError(index) {
		return index
	}

	switch container := container.(type) {
	case *List:
		idx, ok := index.(*Integer)
		if !ok {
			return e.newErrorWithStack(ErrTypeMismatch, "list index must be an int, got %s", index.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(container.Elements)) {
			return e.newErrorWithStack(ErrTypeMismatch, "list index %d out of range [0, %d)",
				idx.Value, len(container.Elements))
		}
		return container.Elements[idx.Value]
	case *Dict:
		if !Hashable(index) {
			return e.newErrorWithStack(ErrTypeMismatch, "%s is not usable as a dict key", index.Type())
		}
		val, found := container.Get(index)
		if !found {
			return e.newErrorWithStack(ErrUnresolvedName, "key %s not found", index.Inspect())
		}
		return val
	case *String:
		idx, ok := index.(*Integer)
		if !ok {
			return e.newErrorWithStack(ErrTypeMismatch, "string index must be an int, got %s", index.Type())
		}
		runes := []rune(container.Value)
		if idx.Value < 0 || idx.Value >= int64(len(runes)) {
			return e.newErrorWithStack(ErrTypeMismatch, "string index %d out of range [0, %d)",
				idx.Value, len(runes))
		}
		return &String{Value: string(runes[idx.Value])}
	default:
		return e.newErrorWithStack(ErrTypeMismatch, "cannot index into %s", container.Type())
	}
}

// execLen yields the element count of a list or dict, or the rune count of
// a string.
func (e *Evaluator) execLen(instr *program.Instruction, env *Environment) Object {
	val := e.Eval(instr.Args[0], env)
	if isError(val) {
		return val
	}
	switch val := val.(type) {
	case *List:
		return &Integer{Value: int64(len(val.Elements))}
	case *Dict:
		return &Integer{Value: int64(len(val.Pairs))}
	case *String:
		return &Integer{Value: int64(len([]rune(val.Value)))}
	default:
		return e.newErrorWithStack(ErrTypeMismatch, "len not supported for %s", val.Type())
	}
}

// execGet looks a name up without the reference sigil.
func (e *Evaluator) execGet(instr *program.Instruction, env *Environment) Object {
	name := instr.Args[0].(*program.StringLiteral).Value
	val, ok := env.Get(name)
	if !ok {
		return e.newErrorWithStack(ErrUnresolvedName, "name %q is not defined", name)
	}
	return val
}

// execExport hoists bindings into the parent frame so a block can hand
// results outward.
func (e *Evaluator) execExport(instr *program.Instruction, env *Environment) Object {
	if env.IsGlobal() {
		return e.newErrorWithStack(ErrUnresolvedName,
			"cannot export from the global scope")
	}
	for _, arg := range instr.Args {
		name := arg.(*program.StringLiteral).Value
		if !env.Export(name) {
			return e.newErrorWithStack(ErrUnresolvedName, "name %q is not defined", name)
		}
	}
	return NULL
}

// execExit produces the program-terminating signal. A non-integer operand
// follows the convention of exiting 1 after printing the value.
func (e *Evaluator) execExit(instr *program.Instruction, env *Environment) Object {
	if len(instr.Args) == 0 {
		return &ExitSignal{Code: 0}
	}
	val := e.Eval(instr.Args[0], env)
	if isError(val) {
		return val
	}
	if code, ok := val.(*Integer); ok {
		return &ExitSignal{Code: int(code.Value)}
	}
	fmt.Fprintln(e.Out, FormatValue(val))
	return &ExitSignal{Code: 1}
}
