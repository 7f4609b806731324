package program

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/jdl/internal/config"
)

// Decode parses a YAML (or JSON) document into a validated Program. The
// document root must be a sequence: either a sequence of instructions, or
// a single instruction (a sequence whose first element is a string), which
// is convenient for the REPL.
func Decode(data []byte) (*Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &Program{}, nil
	}
	root := doc.Content[0]
	block, err := decodeBlock(root)
	if err != nil {
		return nil, err
	}
	return &Program{Instructions: block.Instructions}, nil
}

// DecodeFile reads and decodes a program file.
func DecodeFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func decodeError(n *yaml.Node, format string, a ...interface{}) error {
	return fmt.Errorf("program: line %d: %s", n.Line, fmt.Sprintf(format, a...))
}

// decodeBlock accepts either a sequence of instructions or a single bare
// instruction (first element is a scalar opcode) and normalizes both to a
// Block. The original wire format distinguished the two by tuple vs. list;
// YAML has only sequences, so the head's shape decides.
func decodeBlock(n *yaml.Node) (*Block, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, decodeError(n, "expected a block (sequence), got %s", kindName(n))
	}
	if len(n.Content) == 0 {
		return &Block{}, nil
	}
	if resolveAlias(n.Content[0]).Kind == yaml.ScalarNode {
		instr, err := decodeInstruction(n)
		if err != nil {
			return nil, err
		}
		return &Block{Instructions: []*Instruction{instr}}, nil
	}
	block := &Block{Instructions: make([]*Instruction, 0, len(n.Content))}
	for _, item := range n.Content {
		instr, err := decodeInstruction(item)
		if err != nil {
			return nil, err
		}
		block.Instructions = append(block.Instructions, instr)
	}
	return block, nil
}

func decodeInstruction(n *yaml.Node) (*Instruction, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, decodeError(n, "expected an instruction (sequence), got %s", kindName(n))
	}
	if len(n.Content) == 0 {
		return nil, decodeError(n, "empty instruction")
	}
	head := resolveAlias(n.Content[0])
	if head.Kind != yaml.ScalarNode || !isStringScalar(head) {
		return nil, decodeError(head, "instruction opcode must be a string")
	}
	op := head.Value
	if strings.HasPrefix(op, config.RefSigil) {
		return nil, decodeError(head, "instruction opcode %q must not carry the reference sigil", op)
	}
	instr := &Instruction{Op: op, Line: n.Line}
	if err := decodeArgs(instr, n.Content[1:]); err != nil {
		return nil, err
	}
	return instr, nil
}

// decodeArgs validates the operand list against the per-opcode grammar and
// fills instr.Args. Block and name slots are fixed by the opcode; every
// other sequence operand must itself be an instruction.
func decodeArgs(instr *Instruction, args []*yaml.Node) error {
	op := instr.Op
	switch op {
	case config.VarKeyword:
		if err := wantArity(instr, args, 2, 2); err != nil {
			return err
		}
		name, err := decodeName(args[0], op)
		if err != nil {
			return err
		}
		val, err := decodeOperand(args[1])
		if err != nil {
			return err
		}
		instr.Args = []Operand{name, val}
		return nil

	case config.FuncKeyword:
		if err := wantArity(instr, args, 3, 3); err != nil {
			return err
		}
		name, err := decodeName(args[0], op)
		if err != nil {
			return err
		}
		params, err := decodeParams(args[1])
		if err != nil {
			return err
		}
		body, err := decodeBlock(args[2])
		if err != nil {
			return err
		}
		instr.Args = []Operand{name, params, body}
		return nil

	case config.IfKeyword:
		if err := wantArity(instr, args, 2, 3); err != nil {
			return err
		}
		cond, err := decodeOperand(args[0])
		if err != nil {
			return err
		}
		then, err := decodeBlock(args[1])
		if err != nil {
			return err
		}
		instr.Args = []Operand{cond, then}
		if len(args) == 3 {
			alt, err := decodeBlock(args[2])
			if err != nil {
				return err
			}
			instr.Args = append(instr.Args, alt)
		}
		return nil

	case config.WhileKeyword:
		if err := wantArity(instr, args, 2, 2); err != nil {
			return err
		}
		cond, err := decodeOperand(args[0])
		if err != nil {
			return err
		}
		body, err := decodeBlock(args[1])
		if err != nil {
			return err
		}
		instr.Args = []Operand{cond, body}
		return nil

	case config.ForKeyword:
		if err := wantArity(instr, args, 3, 3); err != nil {
			return err
		}
		name, err := decodeName(args[0], op)
		if err != nil {
			return err
		}
		iterable, err := decodeOperand(args[1])
		if err != nil {
			return err
		}
		body, err := decodeBlock(args[2])
		if err != nil {
			return err
		}
		instr.Args = []Operand{name, iterable, body}
		return nil

	case config.SwitchKeyword:
		return decodeSwitchArgs(instr, args)

	case config.BreakKeyword, config.ContinueKeyword:
		return wantArity(instr, args, 0, 0)

	case config.ReturnKeyword, config.PrintKeyword, config.ArrayKeyword:
		return decodePlainArgs(instr, args, 0, -1)

	case config.DictKeyword:
		if len(args)%2 != 0 {
			return decodeError(argNode(args, instr), "%q requires an even number of arguments (key-value pairs)", op)
		}
		return decodePlainArgs(instr, args, 0, -1)

	case config.IndexKeyword:
		return decodePlainArgs(instr, args, 2, 2)

	case config.LenKeyword, config.IntKeyword, config.FloatKeyword,
		config.BoolKeyword, config.StrKeyword:
		return decodePlainArgs(instr, args, 1, 1)

	case config.GetKeyword:
		if err := wantArity(instr, args, 1, 1); err != nil {
			return err
		}
		name, err := decodeName(args[0], op)
		if err != nil {
			return err
		}
		instr.Args = []Operand{name}
		return nil

	case config.ExportKeyword:
		if err := wantArity(instr, args, 1, -1); err != nil {
			return err
		}
		for _, a := range args {
			name, err := decodeName(a, op)
			if err != nil {
				return err
			}
			instr.Args = append(instr.Args, name)
		}
		return nil

	case config.InputKeyword:
		if err := wantArity(instr, args, 0, 1); err != nil {
			return err
		}
		if len(args) == 1 {
			name, err := decodeName(args[0], op)
			if err != nil {
				return err
			}
			if !config.CoercionKeywords[name.Value] {
				return decodeError(argNode(args, instr), "unknown input datatype %q", name.Value)
			}
			instr.Args = []Operand{name}
		}
		return nil

	case config.ExitKeyword:
		return decodePlainArgs(instr, args, 0, 1)

	case "not":
		return decodePlainArgs(instr, args, 1, 1)

	case "==", "!=", "<", ">", "<=", ">=", "!->", "and", "or":
		return decodePlainArgs(instr, args, 2, 2)

	case "+", "-", "*", "/", "%":
		return decodePlainArgs(instr, args, 2, -1)

	default:
		// User-defined function call: any operands.
		return decodePlainArgs(instr, args, 0, -1)
	}
}

func decodeSwitchArgs(instr *Instruction, args []*yaml.Node) error {
	if err := wantArity(instr, args, 2, -1); err != nil {
		return err
	}
	value, err := decodeOperand(args[0])
	if err != nil {
		return err
	}
	instr.Args = []Operand{value}
	for i, arg := range args[1:] {
		arg = resolveAlias(arg)
		switch arg.Kind {
		case yaml.MappingNode:
			clause, err := decodeCaseClause(arg)
			if err != nil {
				return err
			}
			instr.Args = append(instr.Args, clause)
		case yaml.SequenceNode:
			// A trailing bare block is the default case.
			if i != len(args[1:])-1 {
				return decodeError(arg, "switch default block must come last")
			}
			body, err := decodeBlock(arg)
			if err != nil {
				return err
			}
			instr.Args = append(instr.Args, body)
		default:
			return decodeError(arg, "switch expects case mappings and an optional default block, got %s", kindName(arg))
		}
	}
	return nil
}

// decodeCaseClause decodes a one-entry mapping {key: [body]}. Case keys
// are literals or references; they are evaluated at match time.
func decodeCaseClause(n *yaml.Node) (*CaseClause, error) {
	if len(n.Content) != 2 {
		return nil, decodeError(n, "switch case must be a single key-body mapping")
	}
	keyNode := resolveAlias(n.Content[0])
	if keyNode.Kind != yaml.ScalarNode {
		return nil, decodeError(keyNode, "switch case key must be a scalar")
	}
	key, err := decodeScalar(keyNode)
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(n.Content[1])
	if err != nil {
		return nil, err
	}
	return &CaseClause{Key: key, Body: body}, nil
}

func decodePlainArgs(instr *Instruction, args []*yaml.Node, min, max int) error {
	if err := wantArity(instr, args, min, max); err != nil {
		return err
	}
	for _, a := range args {
		op, err := decodeOperand(a)
		if err != nil {
			return err
		}
		instr.Args = append(instr.Args, op)
	}
	return nil
}

// decodeOperand handles a value-position node: scalars become literals or
// references, sequences become nested instructions. Mappings are only
// legal inside switch and are rejected here.
func decodeOperand(n *yaml.Node) (Operand, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		return decodeInstruction(n)
	case yaml.MappingNode:
		return nil, decodeError(n, "mappings are only valid as switch cases; use the %q opcode to build a dictionary", config.DictKeyword)
	default:
		return nil, decodeError(n, "unsupported operand node")
	}
}

func decodeScalar(n *yaml.Node) (Operand, error) {
	switch n.Tag {
	case "!!null":
		return &NullLiteral{}, nil
	case "!!bool":
		v, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, decodeError(n, "invalid boolean %q", n.Value)
		}
		return &BooleanLiteral{Value: v}, nil
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, decodeError(n, "invalid integer %q", n.Value)
		}
		return &IntegerLiteral{Value: v}, nil
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, decodeError(n, "invalid float %q", n.Value)
		}
		return &FloatLiteral{Value: v}, nil
	case "!!str", "":
		if strings.HasPrefix(n.Value, config.RefSigil) {
			name := strings.TrimPrefix(n.Value, config.RefSigil)
			if name == "" {
				return nil, decodeError(n, "empty variable reference")
			}
			return &Ref{Name: name}, nil
		}
		return &StringLiteral{Value: n.Value}, nil
	default:
		return nil, decodeError(n, "unsupported scalar tag %s", n.Tag)
	}
}

// decodeName decodes a bare identifier slot (var/func/for/get/export
// names, input datatype). Sigils are not allowed here.
func decodeName(n *yaml.Node, op string) (*StringLiteral, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode || !isStringScalar(n) {
		return nil, decodeError(n, "%q expects a name, got %s", op, kindName(n))
	}
	if strings.HasPrefix(n.Value, config.RefSigil) {
		return nil, decodeError(n, "%q name %q must not carry the reference sigil", op, n.Value)
	}
	return &StringLiteral{Value: n.Value}, nil
}

// decodeParams decodes the parameter-name list of a func definition.
func decodeParams(n *yaml.Node) (*NameList, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, decodeError(n, "func parameters must be a sequence of names")
	}
	params := &NameList{Names: make([]string, 0, len(n.Content))}
	for _, item := range n.Content {
		name, err := decodeName(item, config.FuncKeyword)
		if err != nil {
			return nil, err
		}
		params.Names = append(params.Names, name.Value)
	}
	return params, nil
}

func wantArity(instr *Instruction, args []*yaml.Node, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		n := argNode(args, instr)
		if min == max {
			return decodeError(n, "%q takes %d argument(s), got %d", instr.Op, min, len(args))
		}
		if max < 0 {
			return decodeError(n, "%q takes at least %d argument(s), got %d", instr.Op, min, len(args))
		}
		return decodeError(n, "%q takes %d to %d arguments, got %d", instr.Op, min, max, len(args))
	}
	return nil
}

func argNode(args []*yaml.Node, instr *Instruction) *yaml.Node {
	if len(args) > 0 {
		return args[0]
	}
	return &yaml.Node{Line: instr.Line}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isStringScalar(n *yaml.Node) bool {
	return n.Tag == "!!str" || n.Tag == ""
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.DocumentNode:
		return "a document"
	default:
		return "an unknown node"
	}
}
