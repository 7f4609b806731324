package evaluator

import (
	"testing"
)

func TestIntCoercion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int identity", `- [print, [int, 42]]`, "42\n"},
		{"float truncates", `- [print, [int, 3.9]]`, "3\n"},
		{"negative float truncates toward zero", `- [print, [int, -3.9]]`, "-3\n"},
		{"numeric string", `- [print, [int, "42"]]`, "42\n"},
		{"padded numeric string", `- [print, [int, " 7 "]]`, "7\n"},
		{"true is one", `- [print, [int, true]]`, "1\n"},
		{"false is zero", `- [print, [int, false]]`, "0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := testRun(t, tt.src)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	t.Run("unparseable string", func(t *testing.T) {
		testRunError(t, `- [print, [int, abc]]`, ErrCoercion)
	})
	t.Run("list is not convertible", func(t *testing.T) {
		testRunError(t, `- [print, [int, [array, 1]]]`, ErrTypeMismatch)
	})
	t.Run("null is not convertible", func(t *testing.T) {
		testRunError(t, `- [print, [int, null]]`, ErrTypeMismatch)
	})
}

func TestFloatCoercion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"float identity", `- [print, [float, 2.5]]`, "2.5\n"},
		{"int widens", `- [print, [float, 2]]`, "2\n"},
		{"numeric string", `- [print, [float, "1.25"]]`, "1.25\n"},
		{"bool", `- [print, [float, true]]`, "1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := testRun(t, tt.src)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}

	t.Run("unparseable string", func(t *testing.T) {
		testRunError(t, `- [print, [float, "1.2.3"]]`, ErrCoercion)
	})
}

func TestBoolCoercion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"zero", `- [print, [bool, 0]]`, "false\n"},
		{"nonzero", `- [print, [bool, 3]]`, "true\n"},
		{"empty string", `- [print, [bool, ""]]`, "false\n"},
		{"nonempty string", `- [print, [bool, x]]`, "true\n"},
		{"null", `- [print, [bool, null]]`, "false\n"},
		{"empty list", `- [print, [bool, [array]]]`, "false\n"},
		{"nonempty dict", `- [print, [bool, [dict, a, 1]]]`, "true\n"},
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

func TestStrCoercion(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int", `- [print, [str, 42]]`, "42\n"},
		{"float", `- [print, [str, 2.5]]`, "2.5\n"},
		{"bool", `- [print, [str, true]]`, "true\n"},
		{"null", `- [print, [str, null]]`, "null\n"},
		{"string identity", `- [print, [str, hello]]`, "hello\n"},
		{"list", `- [print, [str, [array, 1, two]]]`, "[1, \"two\"]\n"},
		{"dict", `- [print, [str, [dict, a, 1]]]`, "{\"a\": 1}\n"},
		{"str result is a string", `- [print, ["+", [str, 42], "!"]]`, "42!\n"},
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
