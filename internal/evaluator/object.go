package evaluator

import "hash/fnv"

type ObjectType string

const (
	NULL_OBJ     = "NULL"
	BOOLEAN_OBJ  = "BOOLEAN"
	INTEGER_OBJ  = "INTEGER"
	FLOAT_OBJ    = "FLOAT"
	STRING_OBJ   = "STRING"
	LIST_OBJ     = "LIST"
	DICT_OBJ     = "DICT"
	FUNCTION_OBJ = "FUNCTION"

	ERROR_OBJ           = "ERROR"
	RETURN_VALUE_OBJ    = "RETURN_VALUE"
	BREAK_SIGNAL_OBJ    = "BREAK_SIGNAL"
	CONTINUE_SIGNAL_OBJ = "CONTINUE_SIGNAL"
	EXIT_SIGNAL_OBJ     = "EXIT_SIGNAL"
)

type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
