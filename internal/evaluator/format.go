package evaluator

// FormatValue renders a value the way "print" and the "str" coercion show
// it: strings bare, everything else via Inspect. Strings nested inside
// containers stay quoted (see inspectNested).
func FormatValue(obj Object) string {
	if s, ok := obj.(*String); ok {
		return s.Value
	}
	return obj.Inspect()
}
