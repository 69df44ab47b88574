package evaluator

import "sync"

type binding struct {
	value   Object
	mutable bool
}

// Environment is a lexically scoped variable store. Functions live in a
// separate table so a variable cannot shadow a function definition.
type Environment struct {
	mu        sync.RWMutex
	store     map[string]binding
	functions map[string]*Function
	outer     *Environment
}

func NewEnvironment() *Environment {
	return &Environment{
		store:     map[string]binding{},
		functions: map[string]*Function{},
	}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	b, ok := e.store[name]
	e.mu.RUnlock()
	if ok {
		return b.value, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

func (e *Environment) Define(name string, value Object) {
	e.mu.Lock()
	e.store[name] = binding{value: value}
	e.mu.Unlock()
}

func (e *Environment) DefineMutable(name string, value Object) {
	e.mu.Lock()
	e.store[name] = binding{value: value, mutable: true}
	e.mu.Unlock()
}

// IsMutable reports whether name resolves to a mut binding in this
// scope chain.
func (e *Environment) IsMutable(name string) bool {
	e.mu.RLock()
	b, ok := e.store[name]
	e.mu.RUnlock()
	if ok {
		return b.mutable
	}
	if e.outer != nil {
		return e.outer.IsMutable(name)
	}
	return false
}

// Update rebinds an existing mut variable in whichever scope defined
// it. Returns false when the name is unbound or immutable.
func (e *Environment) Update(name string, value Object) bool {
	e.mu.Lock()
	if b, ok := e.store[name]; ok {
		if !b.mutable {
			e.mu.Unlock()
			return false
		}
		e.store[name] = binding{value: value, mutable: true}
		e.mu.Unlock()
		return true
	}
	e.mu.Unlock()
	if e.outer != nil {
		return e.outer.Update(name, value)
	}
	return false
}

func (e *Environment) DefineFunction(fn *Function) {
	e.mu.Lock()
	e.functions[fn.Name] = fn
	e.mu.Unlock()
}

func (e *Environment) GetFunction(name string) (*Function, bool) {
	e.mu.RLock()
	fn, ok := e.functions[name]
	e.mu.RUnlock()
	if ok {
		return fn, true
	}
	if e.outer != nil {
		return e.outer.GetFunction(name)
	}
	return nil, false
}

// FunctionNames returns every function name visible from this scope.
func (e *Environment) FunctionNames() []string {
	var names []string
	for env := e; env != nil; env = env.outer {
		env.mu.RLock()
		for name := range env.functions {
			names = append(names, name)
		}
		env.mu.RUnlock()
	}
	return names
}

// VariableNames returns every variable name visible from this scope.
func (e *Environment) VariableNames() []string {
	var names []string
	for env := e; env != nil; env = env.outer {
		env.mu.RLock()
		for name := range env.store {
			names = append(names, name)
		}
		env.mu.RUnlock()
	}
	return names
}
