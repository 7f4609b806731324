package evaluator

import "sync"

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment is one frame of the scope chain: local bindings plus a link
// to the frame that opened it. Lookups walk outward to the global frame;
// writes always land in the frame they were issued in.
type Environment struct {
	mu    sync.RWMutex
	store map[string]Object
	outer *Environment
}

func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	obj, ok := e.store[name]
	e.mu.RUnlock()
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name in the current frame, overwriting any existing local
// binding.
func (e *Environment) Set(name string, val Object) Object {
	e.mu.Lock()
	e.store[name] = val
	e.mu.Unlock()
	return val
}

// Update rebinds the nearest existing binding of name, walking the parent
// chain. Returns false when no frame binds the name.
func (e *Environment) Update(name string, val Object) bool {
	e.mu.Lock()
	_, ok := e.store[name]
	if ok {
		e.store[name] = val
		e.mu.Unlock()
		return true
	}
	e.mu.Unlock()
	if e.outer != nil {
		return e.outer.Update(name, val)
	}
	return false
}

// Assign implements "var": reassign the name where it already lives, or
// define it in the current frame. New names introduced inside a control
// block therefore stay local, while a loop counter bound outside the body
// is updated in place.
func (e *Environment) Assign(name string, val Object) Object {
	if e.Update(name, val) {
		return val
	}
	return e.Set(name, val)
}

// Export copies a local binding into the parent frame. Returns false when
// the name is unbound or this is already the global frame.
func (e *Environment) Export(name string) bool {
	if e.outer == nil {
		return false
	}
	val, ok := e.Get(name)
	if !ok {
		return false
	}
	e.outer.Set(name, val)
	return true
}

// IsGlobal reports whether this is the root frame of the chain.
func (e *Environment) IsGlobal() bool {
	return e.outer == nil
}
