package evaluator

import (
	"testing"
)

func TestEnvironmentLookupWalksChain(t *testing.T) {
	global := NewEnvironment()
	global.Set("x", &Integer{Value: 1})
	child := NewEnclosedEnvironment(global)
	grandchild := NewEnclosedEnvironment(child)

	for name, env := range map[string]*Environment{
		"defining frame": global,
		"child":          child,
		"grandchild":     grandchild,
	} {
		val, ok := env.Get("x")
		if !ok {
			t.Fatalf("%s: x not found", name)
		}
		if val.(*Integer).Value != 1 {
			t.Errorf("%s: x = %s, want 1", name, val.Inspect())
		}
	}
}

func TestEnvironmentSiblingIsolation(t *testing.T) {
	global := NewEnvironment()
	a := NewEnclosedEnvironment(global)
	b := NewEnclosedEnvironment(global)

	a.Set("local", TRUE)
	if _, ok := b.Get("local"); ok {
		t.Error("sibling frame sees a's local binding")
	}
	if _, ok := global.Get("local"); ok {
		t.Error("parent frame sees child's local binding")
	}
}

func TestEnvironmentAssign(t *testing.T) {
	t.Run("updates the nearest enclosing binding", func(t *testing.T) {
		global := NewEnvironment()
		global.Set("counter", &Integer{Value: 0})
		child := NewEnclosedEnvironment(global)

		child.Assign("counter", &Integer{Value: 5})
		val, _ := global.Get("counter")
		if val.(*Integer).Value != 5 {
			t.Errorf("global counter = %s, want 5", val.Inspect())
		}
	})
	t.Run("defines locally when unbound", func(t *testing.T) {
		global := NewEnvironment()
		child := NewEnclosedEnvironment(global)

		child.Assign("fresh", TRUE)
		if _, ok := global.Get("fresh"); ok {
			t.Error("fresh leaked into the parent frame")
		}
		if _, ok := child.Get("fresh"); !ok {
			t.Error("fresh not bound in the current frame")
		}
	})
}

func TestEnvironmentExport(t *testing.T) {
	global := NewEnvironment()
	child := NewEnclosedEnvironment(global)
	child.Set("result", &Integer{Value: 9})

	if !child.Export("result") {
		t.Fatal("export failed")
	}
	val, ok := global.Get("result")
	if !ok || val.(*Integer).Value != 9 {
		t.Errorf("global result missing after export")
	}

	if global.Export("result") {
		t.Error("export from the global frame should fail")
	}
	if child.Export("nosuch") {
		t.Error("export of an unbound name should fail")
	}
}
