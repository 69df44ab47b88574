package evaluator

import "fmt"

// Registry holds the builtin function table. Builtins validate their
// own arity and argument types; the evaluator does not pre-validate.
type Registry struct {
	functions map[string]*Builtin
}

func NewRegistry() *Registry {
	r := &Registry{functions: map[string]*Builtin{}}
	r.registerMath()
	r.registerStrings()
	r.registerArrays()
	r.registerIO()
	r.registerTypes()
	r.registerTagged()
	r.registerData()
	r.registerTime()
	return r
}

func (r *Registry) register(name string, arity int, convergent bool, fn BuiltinFn) {
	r.functions[name] = &Builtin{Name: name, Arity: arity, Convergent: convergent, Fn: fn}
}

func (r *Registry) Contains(name string) bool {
	_, ok := r.functions[name]
	return ok
}

func (r *Registry) Get(name string) (*Builtin, bool) {
	b, ok := r.functions[name]
	return b, ok
}

func (r *Registry) Call(ev *Evaluator, name string, args []Object) (Object, error) {
	b, ok := r.functions[name]
	if !ok {
		return nil, &UndefinedFunctionError{Name: name}
	}
	return b.Fn(ev, args)
}

func callErrorf(format string, args ...interface{}) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

func argNumber(name string, args []Object, i int) (float64, error) {
	n, ok := args[i].(*Number)
	if !ok {
		return 0, &TypeMismatchError{Context: name, Index: i + 1, Expected: NUMBER_OBJ, Found: args[i].Type()}
	}
	return n.Value, nil
}

func argString(name string, args []Object, i int) (string, error) {
	s, ok := args[i].(*String)
	if !ok {
		return "", &TypeMismatchError{Context: name, Index: i + 1, Expected: STRING_OBJ, Found: args[i].Type()}
	}
	return s.Value, nil
}

func argArray(name string, args []Object, i int) (*Array, error) {
	a, ok := args[i].(*Array)
	if !ok {
		return nil, &TypeMismatchError{Context: name, Index: i + 1, Expected: ARRAY_OBJ, Found: args[i].Type()}
	}
	return a, nil
}

func wantArgs(name string, args []Object, n int) error {
	if len(args) != n {
		return callErrorf("%s expects exactly %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func wantAtLeast(name string, args []Object, n int) error {
	if len(args) < n {
		return callErrorf("%s expects at least %d argument(s), got %d", name, n, len(args))
	}
	return nil
}
