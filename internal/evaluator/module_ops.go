package evaluator

import (
	"fmt"

	"github.com/susumulang/susumu/internal/ast"
)

// moduleFrom loads a module and returns a reference object that
// import() accepts in place of a name string.
func (ev *Evaluator) moduleFrom(args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, &RuntimeError{Message: "from() expects exactly 1 argument: module name"}
	}
	name, ok := args[0].(*String)
	if !ok {
		return nil, &RuntimeError{Message: "module name must be a string"}
	}

	module, err := ev.Loader.Load(name.Value)
	if err != nil {
		return nil, &RuntimeError{Message: err.Error()}
	}

	exports := make([]Object, len(module.Exports))
	for i, export := range module.Exports {
		exports[i] = &String{Value: export}
	}

	ref := NewObjectValue()
	ref.Set("type", &String{Value: "module_reference"})
	ref.Set("module_name", name)
	ref.Set("exports", &Array{Elements: exports})
	return ref, nil
}

// moduleImport brings exported functions from a module into the global
// function table. The first argument is a module name or a reference
// from from(); the second is a function name or array of names.
func (ev *Evaluator) moduleImport(args []Object) (Object, error) {
	if len(args) != 2 {
		return nil, &RuntimeError{Message: "import() expects exactly 2 arguments: module and function list"}
	}

	moduleName, err := importModuleName(args[0])
	if err != nil {
		return nil, err
	}
	names, err := importNames(args[1])
	if err != nil {
		return nil, err
	}

	module, loadErr := ev.Loader.Load(moduleName)
	if loadErr != nil {
		return nil, &RuntimeError{Message: loadErr.Error()}
	}

	for _, name := range names {
		fnDef, found := module.Functions[name]
		if !found {
			return nil, &RuntimeError{
				Message: fmt.Sprintf("function '%s' not found in module '%s'", name, moduleName),
			}
		}
		if !module.Exported(name) {
			return nil, &RuntimeError{
				Message: fmt.Sprintf("function '%s' is not exported by module '%s'", name, moduleName),
			}
		}
		ev.GlobalEnv.DefineFunction(functionFromDef(fnDef, ev.GlobalEnv))
	}

	imported := make([]Object, len(names))
	for i, name := range names {
		imported[i] = &String{Value: name}
	}
	result := NewObjectValue()
	result.Set("type", &String{Value: "import_success"})
	result.Set("module", &String{Value: moduleName})
	result.Set("imported_functions", &Array{Elements: imported})
	return result, nil
}

// moduleExport is a no-op at run time; export lists are extracted
// during module loading.
func (ev *Evaluator) moduleExport(args []Object) (Object, error) {
	result := NewObjectValue()
	result.Set("type", &String{Value: "export_declaration"})
	result.Set("functions", &Array{Elements: args})
	return result, nil
}

func importModuleName(arg Object) (string, error) {
	switch v := arg.(type) {
	case *String:
		return v.Value, nil
	case *ObjectValue:
		if name, ok := v.Get("module_name"); ok {
			if s, ok := name.(*String); ok {
				return s.Value, nil
			}
		}
		return "", &RuntimeError{Message: "invalid module reference"}
	}
	return "", &RuntimeError{Message: "first argument must be a module name or module reference"}
}

func importNames(arg Object) ([]string, error) {
	switch v := arg.(type) {
	case *String:
		return []string{v.Value}, nil
	case *Array:
		names := make([]string, 0, len(v.Elements))
		for _, elem := range v.Elements {
			s, ok := elem.(*String)
			if !ok {
				return nil, &RuntimeError{Message: "all function names must be strings"}
			}
			names = append(names, s.Value)
		}
		return names, nil
	}
	return nil, &RuntimeError{Message: "import spec must be a string or array of strings"}
}

func functionFromDef(def *ast.FunctionDef, env *Environment) *Function {
	params := make([]string, len(def.Params))
	for i, p := range def.Params {
		params[i] = p.Name
	}
	return &Function{Name: def.Name, Params: params, Body: def.Body, Env: env}
}
