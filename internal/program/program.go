package program

import (
	"fmt"
	"strconv"
	"strings"
)

// Program is a top-level sequence of instructions, executed in order in the
// global environment.
type Program struct {
	Instructions []*Instruction
}

// Instruction is an opcode-headed operand tuple, the unit of execution.
// The opcode is a reserved keyword, an operator symbol, or a user-defined
// function name; the distinction is resolved at dispatch time, not here.
type Instruction struct {
	Op   string
	Args []Operand
	Line int
}

// Operand is anything that may appear after an opcode: a literal, a
// variable reference, a nested instruction, a block of instructions, or a
// switch case clause.
type Operand interface {
	operandNode()
	String() string
}

type NullLiteral struct{}

type BooleanLiteral struct {
	Value bool
}

type IntegerLiteral struct {
	Value int64
}

type FloatLiteral struct {
	Value float64
}

type StringLiteral struct {
	Value string
}

// Ref is a variable reference, written "$name" in the wire format. The
// sigil is stripped at decode time.
type Ref struct {
	Name string
}

// Block is a sequence of instructions executed as a body (if/while/for/
// switch/func). Blocks are only legal in the operand slots the grammar
// reserves for them.
type Block struct {
	Instructions []*Instruction
}

// CaseClause is a single switch arm: a key operand paired with a body.
type CaseClause struct {
	Key  Operand
	Body *Block
}

// NameList is the parameter-name list of a func definition.
type NameList struct {
	Names []string
}

func (*NullLiteral) operandNode()    {}
func (*BooleanLiteral) operandNode() {}
func (*IntegerLiteral) operandNode() {}
func (*FloatLiteral) operandNode()   {}
func (*StringLiteral) operandNode()  {}
func (*Ref) operandNode()            {}
func (*Instruction) operandNode()    {}
func (*Block) operandNode()          {}
func (*CaseClause) operandNode()     {}
func (*NameList) operandNode()       {}

func (n *NullLiteral) String() string    { return "null" }
func (b *BooleanLiteral) String() string { return strconv.FormatBool(b.Value) }
func (i *IntegerLiteral) String() string { return strconv.FormatInt(i.Value, 10) }
func (f *FloatLiteral) String() string   { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (s *StringLiteral) String() string  { return strconv.Quote(s.Value) }
func (r *Ref) String() string            { return "$" + r.Name }

func (in *Instruction) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(in.Op)
	for _, a := range in.Args {
		sb.WriteString(", ")
		sb.WriteString(a.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (b *Block) String() string {
	parts := make([]string, len(b.Instructions))
	for i, in := range b.Instructions {
		parts[i] = in.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c *CaseClause) String() string {
	return fmt.Sprintf("{%s: %s}", c.Key.String(), c.Body.String())
}

func (n *NameList) String() string {
	return "[" + strings.Join(n.Names, ", ") + "]"
}
