package evaluator

// ObjectsEqual performs a deep structural equality check. Cross-kind
// comparison is false (never an error), except Int/Float which compare
// numerically. Lists and dicts compare element-wise, not by identity.
func ObjectsEqual(a, b Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if isNumeric(a) && isNumeric(b) {
		return toFloat64(a) == toFloat64(b)
	}
	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Null:
		return true
	case *Boolean:
		return aVal.Value == b.(*Boolean).Value
	case *String:
		return aVal.Value == b.(*String).Value
	case *List:
		bVal := b.(*List)
		if len(aVal.Elements) != len(bVal.Elements) {
			return false
		}
		for i := range aVal.Elements {
			if !ObjectsEqual(aVal.Elements[i], bVal.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bVal := b.(*Dict)
		if len(aVal.Pairs) != len(bVal.Pairs) {
			return false
		}
		for _, pair := range aVal.Pairs {
			other, found := bVal.Get(pair.Key)
			if !found || !ObjectsEqual(pair.Value, other) {
				return false
			}
		}
		return true
	case *Function:
		// Functions are passed by reference; equality is identity, which
		// the a == b fast path already covered.
		return false
	}
	return false
}
