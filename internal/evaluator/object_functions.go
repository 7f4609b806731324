package evaluator

import (
	"strings"

	"github.com/funvibe/jdl/internal/program"
)

// Function is a user-defined function. Env is the environment the function
// was defined in; calls run in a fresh child of it, so lookups resolve
// against the definition site (closure semantics), not the call site.
type Function struct {
	Name       string
	Parameters []string
	Body       *program.Block
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }

func (f *Function) Inspect() string {
	return "<func " + f.Name + "(" + strings.Join(f.Parameters, ", ") + ")>"
}

func (f *Function) Hash() uint32 { return hashString(f.Name) }
