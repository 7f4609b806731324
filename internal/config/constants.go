package config

// RefSigil marks a string operand as a variable reference ("$name").
const RefSigil = "$"

const SourceFileExt = ".jdl"

// SourceFileExtensions are all recognized program file extensions.
// Programs are plain YAML (or JSON, which YAML subsumes) documents.
var SourceFileExtensions = []string{".jdl", ".yaml", ".yml", ".json"}

// Reserved opcode names. These always win over user definitions and
// cannot be shadowed.
const (
	VarKeyword      = "var"
	FuncKeyword     = "func"
	ReturnKeyword   = "return"
	IfKeyword       = "if"
	WhileKeyword    = "while"
	ForKeyword      = "for"
	SwitchKeyword   = "switch"
	BreakKeyword    = "break"
	ContinueKeyword = "continue"
	PrintKeyword    = "print"
	InputKeyword    = "input"
	ArrayKeyword    = "array"
	DictKeyword     = "dict"
	IndexKeyword    = "index"
	LenKeyword      = "len"
	GetKeyword      = "get"
	ExportKeyword   = "export"
	ExitKeyword     = "exit"
	IntKeyword      = "int"
	FloatKeyword    = "float"
	BoolKeyword     = "bool"
	StrKeyword      = "str"
)

// OpcodeClass is the closed classification of instruction heads.
// Resolution order is fixed: keyword, then operator, then a scope-resolved
// function call.
type OpcodeClass int

const (
	OpcodeCall OpcodeClass = iota
	OpcodeKeyword
	OpcodeOperator
)

var keywords = map[string]bool{
	VarKeyword:      true,
	FuncKeyword:     true,
	ReturnKeyword:   true,
	IfKeyword:       true,
	WhileKeyword:    true,
	ForKeyword:      true,
	SwitchKeyword:   true,
	BreakKeyword:    true,
	ContinueKeyword: true,
	PrintKeyword:    true,
	InputKeyword:    true,
	ArrayKeyword:    true,
	DictKeyword:     true,
	IndexKeyword:    true,
	LenKeyword:      true,
	GetKeyword:      true,
	ExportKeyword:   true,
	ExitKeyword:     true,
	IntKeyword:      true,
	FloatKeyword:    true,
	BoolKeyword:     true,
	StrKeyword:      true,
}

var operators = map[string]bool{
	"+":   true,
	"-":   true,
	"*":   true,
	"/":   true,
	"%":   true,
	"==":  true,
	"!=":  true,
	"<":   true,
	">":   true,
	"<=":  true,
	">=":  true,
	"!->": true,
	"and": true,
	"or":  true,
	"not": true,
}

// CoercionKeywords are the keyword opcodes that double as type names for
// the optional "input" datatype argument.
var CoercionKeywords = map[string]bool{
	IntKeyword:   true,
	FloatKeyword: true,
	BoolKeyword:  true,
	StrKeyword:   true,
}

func IsKeyword(op string) bool  { return keywords[op] }
func IsOperator(op string) bool { return operators[op] }

func ClassifyOpcode(op string) OpcodeClass {
	if keywords[op] {
		return OpcodeKeyword
	}
	if operators[op] {
		return OpcodeOperator
	}
	return OpcodeCall
}
