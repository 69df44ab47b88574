package typesystem

// Env tracks variable and function types during inference. Parent chains
// mirror lexical scope.
type Env struct {
	variables map[string]Type
	functions map[string]FuncType
	parent    *Env
}

func NewEnv() *Env {
	return &Env{
		variables: make(map[string]Type),
		functions: make(map[string]FuncType),
	}
}

func NewEnclosedEnv(parent *Env) *Env {
	env := NewEnv()
	env.parent = parent
	return env
}

func (e *Env) DefineVariable(name string, t Type) {
	e.variables[name] = t
}

func (e *Env) DefineFunction(name string, t FuncType) {
	e.functions[name] = t
}

func (e *Env) Variable(name string) (Type, bool) {
	if t, ok := e.variables[name]; ok {
		return t, true
	}
	if e.parent != nil {
		return e.parent.Variable(name)
	}
	return nil, false
}

func (e *Env) Function(name string) (FuncType, bool) {
	if t, ok := e.functions[name]; ok {
		return t, true
	}
	if e.parent != nil {
		return e.parent.Function(name)
	}
	return FuncType{}, false
}

func (e *Env) VariableNames() []string {
	var names []string
	for env := e; env != nil; env = env.parent {
		for name := range env.variables {
			names = append(names, name)
		}
	}
	return names
}

func (e *Env) FunctionNames() []string {
	var names []string
	for env := e; env != nil; env = env.parent {
		for name := range env.functions {
			names = append(names, name)
		}
	}
	return names
}

// NewBuiltinEnv returns an environment preloaded with the types of the
// convergence-aware builtin functions the parser checks chains against.
func NewBuiltinEnv() *Env {
	env := NewEnv()

	num2 := []Type{Number, Number}
	env.DefineFunction("add", FuncType{Params: num2, Return: Number, Convergent: true})
	env.DefineFunction("multiply", FuncType{Params: num2, Return: Number, Convergent: true})
	env.DefineFunction("min", FuncType{Params: num2, Return: Number, Convergent: true})
	env.DefineFunction("max", FuncType{Params: num2, Return: Number, Convergent: true})
	env.DefineFunction("subtract", FuncType{Params: num2, Return: Number})
	env.DefineFunction("divide", FuncType{Params: num2, Return: Number})
	env.DefineFunction("power", FuncType{Params: num2, Return: Number})
	env.DefineFunction("modulo", FuncType{Params: num2, Return: Number})
	env.DefineFunction("sqrt", FuncType{Params: []Type{Number}, Return: Number})
	env.DefineFunction("abs", FuncType{Params: []Type{Number}, Return: Number})

	env.DefineFunction("concat", FuncType{Params: []Type{String, String}, Return: String, Convergent: true})
	env.DefineFunction("length", FuncType{
		Params: []Type{UnionType{Members: []Type{String, ArrayType{Elem: Unknown}}}},
		Return: Number,
	})
	env.DefineFunction("toUpper", FuncType{Params: []Type{String}, Return: String})
	env.DefineFunction("toLower", FuncType{Params: []Type{String}, Return: String})

	generic := GenericType{Name: "T"}
	genericArray := ArrayType{Elem: generic}
	maybeElem := UnionType{Members: []Type{generic, Null}}
	env.DefineFunction("first", FuncType{Params: []Type{genericArray}, Return: maybeElem})
	env.DefineFunction("last", FuncType{Params: []Type{genericArray}, Return: maybeElem})
	env.DefineFunction("rest", FuncType{Params: []Type{genericArray}, Return: genericArray})
	env.DefineFunction("push", FuncType{Params: []Type{genericArray, generic}, Return: genericArray})

	env.DefineFunction("print", FuncType{Params: []Type{Unknown}, Return: Unknown, Convergent: true})
	env.DefineFunction("println", FuncType{Params: []Type{Unknown}, Return: Unknown, Convergent: true})
	env.DefineFunction("toString", FuncType{Params: []Type{Unknown}, Return: String})
	env.DefineFunction("toNumber", FuncType{Params: []Type{Unknown}, Return: UnionType{Members: []Type{Number, Null}}})

	return env
}
