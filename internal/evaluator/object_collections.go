package evaluator

import (
	"sort"
	"strconv"
	"strings"
)

// List is an ordered, mutable sequence. Lists are held by pointer and may
// alias: two names bound to the same list observe each other's mutations.
type List struct {
	Elements []Object
}

func NewList(elements []Object) *List {
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Len() int         { return len(l.Elements) }

func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = inspectNested(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Hash() uint32 {
	h := uint32(1)
	for _, el := range l.Elements {
		h = 31*h + el.Hash()
	}
	return h
}

// HashKey identifies a dict entry. Kind is part of the key, so 1 and "1"
// occupy distinct slots.
type HashKey struct {
	Type ObjectType
	Hash uint32
}

type DictPair struct {
	Key   Object
	Value Object
}

// Dict is an unordered key-value mapping. Like lists, dicts are held by
// pointer and alias on assignment. Keys are restricted to scalar kinds.
type Dict struct {
	Pairs map[HashKey]DictPair
}

func NewDict() *Dict {
	return &Dict{Pairs: make(map[HashKey]DictPair)}
}

// Hashable reports whether obj may be used as a dict key.
func Hashable(obj Object) bool {
	switch obj.Type() {
	case NULL_OBJ, BOOLEAN_OBJ, INTEGER_OBJ, FLOAT_OBJ, STRING_OBJ:
		return true
	default:
		return false
	}
}

func (d *Dict) Type() ObjectType { return DICT_OBJ }
func (d *Dict) Len() int         { return len(d.Pairs) }

func (d *Dict) Get(key Object) (Object, bool) {
	pair, ok := d.Pairs[HashKey{Type: key.Type(), Hash: key.Hash()}]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (d *Dict) Set(key, value Object) {
	d.Pairs[HashKey{Type: key.Type(), Hash: key.Hash()}] = DictPair{Key: key, Value: value}
}

// Keys returns the dict keys sorted by rendering, so iteration and Inspect
// are deterministic even though the mapping itself is unordered.
func (d *Dict) Keys() []Object {
	keys := make([]Object, 0, len(d.Pairs))
	for _, pair := range d.Pairs {
		keys = append(keys, pair.Key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Inspect() < keys[j].Inspect()
	})
	return keys
}

func (d *Dict) Inspect() string {
	parts := make([]string, 0, len(d.Pairs))
	for _, key := range d.Keys() {
		value, _ := d.Get(key)
		parts = append(parts, inspectNested(key)+": "+inspectNested(value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *Dict) Hash() uint32 {
	h := uint32(1)
	for _, key := range d.Keys() {
		value, _ := d.Get(key)
		h = 31*h + key.Hash()
		h = 31*h + value.Hash()
	}
	return h
}

// inspectNested renders a container element. Strings are quoted here so
// that [a, "b, c"] round-trips readably; at the top level they stay bare.
func inspectNested(obj Object) string {
	if s, ok := obj.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return obj.Inspect()
}
