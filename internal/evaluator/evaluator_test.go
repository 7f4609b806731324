package evaluator

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/jdl/internal/program"
)

// testRun decodes src as a program, executes it in a fresh global
// environment, and returns the final result plus everything printed.
func testRun(t *testing.T, src string) (Object, string) {
	t.Helper()
	return testRunInput(t, src, "")
}

func testRunInput(t *testing.T, src, input string) (Object, string) {
	t.Helper()
	prog, err := program.Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	var out bytes.Buffer
	e := New()
	e.Out = &out
	e.In = bufio.NewReader(strings.NewReader(input))
	res := e.Run(prog, NewEnvironment())
	return res, out.String()
}

func testRunError(t *testing.T, src string, kind ErrorKind) *Error {
	t.Helper()
	res, _ := testRun(t, src)
	err, ok := res.(*Error)
	if !ok {
		t.Fatalf("expected %s error, got %s (%s)", kind, res.Type(), res.Inspect())
	}
	if err.Kind != kind {
		t.Fatalf("expected %s error, got %s: %s", kind, err.Kind, err.Message)
	}
	return err
}

func TestVarAndPrint(t *testing.T) {
	_, out := testRun(t, `
- [var, x, 42]
- [print, $x]
`)
	if out != "42\n" {
		t.Errorf("output = %q, want %q", out, "42\n")
	}
}

func TestFunctionCall(t *testing.T) {
	_, out := testRun(t, `
- [func, add, [a, b], [[return, ["+", $a, $b]]]]
- [print, [add, 5, 7]]
`)
	if out != "12\n" {
		t.Errorf("output = %q, want %q", out, "12\n")
	}
}

func TestIfElse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"then branch",
			`
- [var, x, 10]
- [if, ["==", $x, 10], [[print, x is ten]], [[print, x is not ten]]]
`,
			"x is ten\n",
		},
		{
			"else branch",
			`
- [var, x, 3]
- [if, ["==", $x, 10], [[print, x is ten]], [[print, x is not ten]]]
`,
			"x is not ten\n",
		},
		{
			"falsy condition without else is a no-op",
			`- [if, false, [[print, never]]]`,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := testRun(t, tt.src)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestWhileLoop(t *testing.T) {
	_, out := testRun(t, `
- [var, i, 0]
- [while, ["<", $i, 5], [[print, $i], [var, i, ["+", $i, 1]]]]
`)
	want := "0\n1\n2\n3\n4\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestWhileZeroIterations(t *testing.T) {
	_, out := testRun(t, `
- [while, false, [[print, never]]]
- [print, done]
`)
	if out != "done\n" {
		t.Errorf("output = %q, want %q", out, "done\n")
	}
}

func TestWhileBreakContinue(t *testing.T) {
	_, out := testRun(t, `
- [var, i, 0]
- [while, true, [
    [var, i, ["+", $i, 1]],
    [if, ["==", $i, 2], [[continue]]],
    [if, [">", $i, 4], [[break]]],
    [print, $i]]]
`)
	want := "1\n3\n4\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestForLoop(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"over list",
			`- [for, item, [array, 1, 2, 3], [[print, $item]]]`,
			"1\n2\n3\n",
		},
		{
			"over string yields single-rune strings",
			`- [for, ch, abc, [[print, $ch]]]`,
			"a\nb\nc\n",
		},
		{
			"over dict yields keys",
			`- [for, k, [dict, a, 1, b, 2], [[print, $k]]]`,
			"a\nb\n",
		},
		{
			"break aborts iteration",
			`- [for, n, [array, 1, 2, 3, 4], [[if, ["==", $n, 3], [[break]]], [print, $n]]]`,
			"1\n2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := testRun(t, tt.src)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestForNonIterable(t *testing.T) {
	testRunError(t, `- [for, x, 42, [[print, $x]]]`, ErrTypeMismatch)
}

func TestSwitch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"first matching case wins",
			`
- [var, x, 10]
- [switch, $x, {5: [[print, five]]}, {10: [[print, ten]]}, {10: [[print, shadowed]]}]
`,
			"ten\n",
		},
		{
			"default block",
			`- [switch, 99, {1: [[print, one]]}, [[print, fallback]]]`,
			"fallback\n",
		},
		{
			"no match and no default is a no-op",
			`
- [switch, 99, {1: [[print, one]]}]
- [print, after]
`,
			"after\n",
		},
		{
			"case key may be a reference",
			`
- [var, limit, 3]
- [switch, 3, {$limit: [[print, at limit]]}]
`,
			"at limit\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := testRun(t, tt.src)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestReturnHaltsTopLevel(t *testing.T) {
	_, out := testRun(t, `
- [print, before]
- [return]
- [print, after]
`)
	if out != "before\n" {
		t.Errorf("output = %q, want %q", out, "before\n")
	}
}

func TestReturnFromLoopAbortsIt(t *testing.T) {
	_, out := testRun(t, `
- [func, firstOver, [limit, items], [
    [for, n, $items, [[if, [">", $n, $limit], [[return, $n]]]]],
    [return, -1]]]
- [print, [firstOver, 2, [array, 1, 2, 3, 4]]]
`)
	if out != "3\n" {
		t.Errorf("output = %q, want %q", out, "3\n")
	}
}

func TestFunctionWithoutReturnYieldsNull(t *testing.T) {
	res, _ := testRun(t, `
- [func, noop, [], [[var, x, 1]]]
- [noop]
`)
	if res != NULL {
		t.Errorf("result = %s, want null", res.Inspect())
	}
}

func TestClosureSeesDefiningScopeAtCallTime(t *testing.T) {
	// y does not exist when f is defined, but it exists in f's defining
	// scope by the time f is called: resolution is dynamic over the
	// captured chain, not a snapshot.
	_, out := testRun(t, `
- [func, f, [], [[return, $y]]]
- [var, y, 7]
- [print, [f]]
`)
	if out != "7\n" {
		t.Errorf("output = %q, want %q", out, "7\n")
	}
}

func TestClosureDoesNotSeeCallSite(t *testing.T) {
	// g's local y must be invisible to f, whose defining scope is global.
	testRunError(t, `
- [func, f, [], [[return, $y]]]
- [func, g, [], [[var, y, 1], [return, [f]]]]
- [print, [g]]
`, ErrUnresolvedName)
}

func TestNestedFunctionClosesOverLocals(t *testing.T) {
	_, out := testRun(t, `
- [func, outer, [], [
    [var, base, 100],
    [func, inner, [n], [[return, ["+", $base, $n]]]],
    [return, [inner, 5]]]]
- [print, [outer]]
`)
	if out != "105\n" {
		t.Errorf("output = %q, want %q", out, "105\n")
	}
}

func TestArityMismatch(t *testing.T) {
	testRunError(t, `
- [func, add, [a, b], [[return, ["+", $a, $b]]]]
- [add, 1]
`, ErrArityMismatch)
}

func TestUndefinedFunction(t *testing.T) {
	testRunError(t, `- [nosuch, 1, 2]`, ErrUndefinedFunction)
}

func TestUnresolvedName(t *testing.T) {
	testRunError(t, `- [print, $missing]`, ErrUnresolvedName)
}

func TestKeywordsCannotBeShadowed(t *testing.T) {
	// A function named like a keyword is bound, but the keyword keeps
	// winning at dispatch.
	_, out := testRun(t, `
- [func, print, [a], [[return, shadowed]]]
- [print, still builtin]
`)
	if out != "still builtin\n" {
		t.Errorf("output = %q, want %q", out, "still builtin\n")
	}
}

func TestRecursionDepthLimit(t *testing.T) {
	testRunError(t, `
- [func, loop, [], [[loop]]]
- [loop]
`, ErrStackOverflow)
}

func TestRecursiveFunction(t *testing.T) {
	_, out := testRun(t, `
- [func, fact, [n], [
    [if, ["<=", $n, 1], [[return, 1]]],
    [return, ["*", $n, [fact, ["-", $n, 1]]]]]]
- [print, [fact, 10]]
`)
	if out != "3628800\n" {
		t.Errorf("output = %q, want %q", out, "3628800\n")
	}
}

func TestBlockScopeDoesNotLeak(t *testing.T) {
	// A name first defined inside an if-body must not be visible after
	// the block.
	testRunError(t, `
- [if, true, [[var, hidden, 1]]]
- [print, $hidden]
`, ErrUnresolvedName)
}

func TestVarUpdatesEnclosingBinding(t *testing.T) {
	_, out := testRun(t, `
- [var, total, 0]
- [if, true, [[var, total, 10]]]
- [print, $total]
`)
	if out != "10\n" {
		t.Errorf("output = %q, want %q", out, "10\n")
	}
}

func TestListEqualityIsStructural(t *testing.T) {
	// c is a fresh list built by concatenation; it still compares equal
	// to a, element-wise, because "==" is deep equality rather than
	// pointer identity.
	_, out := testRun(t, `
- [var, a, [array, 1, 2]]
- [var, b, $a]
- [var, c, ["+", $a, [array]]]
- [print, ["==", $a, $b]]
- [print, ["==", $a, $c]]
`)
	if out != "true\ntrue\n" {
		t.Errorf("output = %q, want %q", out, "true\ntrue\n")
	}
}

func TestPrintMultipleValues(t *testing.T) {
	_, out := testRun(t, `- [print, x, 1, 2.5, true, null, [array, 1, two]]`)
	want := "x 1 2.5 true null [1, \"two\"]\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestInput(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input string
		want  string
	}{
		{"plain line", `- [print, [input]]`, "hello\n", "hello\n"},
		{"int coercion", `- [print, ["+", [input, int], 1]]`, "41\n", "42\n"},
		{"float coercion", `- [print, [input, float]]`, "2.5\n", "2.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := testRunInput(t, tt.src, tt.input)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestIndexAndLen(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"list index", `- [print, [index, [array, a, b, c], 1]]`, "b\n"},
		{"dict index", `- [print, [index, [dict, k, 42], k]]`, "42\n"},
		{"string index", `- [print, [index, hello, 4]]`, "o\n"},
		{"list len", `- [print, [len, [array, 1, 2, 3]]]`, "3\n"},
		{"string len", `- [print, [len, hello]]`, "5\n"},
		{"dict len", `- [print, [len, [dict, a, 1]]]`, "1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := testRun(t, tt.src)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	t.Run("index out of range", func(t *testing.T) {
		testRunError(t, `- [print, [index, [array, 1], 5]]`, ErrTypeMismatch)
	})
	t.Run("missing dict key", func(t *testing.T) {
		testRunError(t, `- [print, [index, [dict, a, 1], b]]`, ErrUnresolvedName)
	})
}

func TestGetAndExport(t *testing.T) {
	t.Run("get resolves without sigil", func(t *testing.T) {
		_, out := testRun(t, `
- [var, x, 5]
- [print, [get, x]]
`)
		if out != "5\n" {
			t.Errorf("output = %q, want %q", out, "5\n")
		}
	})
	t.Run("export hoists into the parent frame", func(t *testing.T) {
		_, out := testRun(t, `
- [func, setup, [], [[var, answer, 42], [export, answer]]]
- [setup]
- [print, $answer]
`)
		if out != "42\n" {
			t.Errorf("output = %q, want %q", out, "42\n")
		}
	})
	t.Run("export from global scope fails", func(t *testing.T) {
		testRunError(t, `
- [var, x, 1]
- [export, x]
`, ErrUnresolvedName)
	})
}

func TestExit(t *testing.T) {
	res, out := testRun(t, `
- [print, before]
- [exit, 3]
- [print, after]
`)
	sig, ok := res.(*ExitSignal)
	if !ok {
		t.Fatalf("expected exit signal, got %s", res.Type())
	}
	if sig.Code != 3 {
		t.Errorf("exit code = %d, want 3", sig.Code)
	}
	if out != "before\n" {
		t.Errorf("output = %q, want %q", out, "before\n")
	}
}

func TestErrorCarriesStackTrace(t *testing.T) {
	err := testRunError(t, `
- [func, inner, [], [[return, $missing]]]
- [func, outer, [], [[return, [inner]]]]
- [outer]
`, ErrUnresolvedName)
	if len(err.StackTrace) != 2 {
		t.Fatalf("stack trace depth = %d, want 2", len(err.StackTrace))
	}
	if err.StackTrace[0].Name != "outer" || err.StackTrace[1].Name != "inner" {
		t.Errorf("stack trace = %+v", err.StackTrace)
	}
}

func TestIsTruthy(t *testing.T) {
	emptyDict := NewDict()
	fullDict := NewDict()
	fullDict.Set(&String{Value: "k"}, &Integer{Value: 1})

	tests := []struct {
		name string
		obj  Object
		want bool
	}{
		{"null", NULL, false},
		{"false", FALSE, false},
		{"true", TRUE, true},
		{"zero int", &Integer{Value: 0}, false},
		{"nonzero int", &Integer{Value: -7}, true},
		{"zero float", &Float{Value: 0}, false},
		{"nonzero float", &Float{Value: 0.1}, true},
		{"empty string", &String{Value: ""}, false},
		{"nonempty string", &String{Value: "x"}, true},
		{"empty list", NewList(nil), false},
		{"nonempty list", NewList([]Object{NULL}), true},
		{"empty dict", emptyDict, false},
		{"nonempty dict", fullDict, true},
		{"function", &Function{Name: "f"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTruthy(tt.obj); got != tt.want {
				t.Errorf("isTruthy = %t, want %t", got, tt.want)
			}
		})
	}
}
