package evaluator

import "sort"

func (r *Registry) registerArrays() {
	r.register("first", 1, false, builtinFirst)
	r.register("last", 1, false, builtinLast)
	r.register("rest", 1, false, builtinRest)
	r.register("push", 2, false, builtinPush)
	r.register("pop", 1, false, builtinPop)
	r.register("reverse", 1, false, builtinReverse)
	r.register("sort", 1, false, builtinSort)
	r.register("range", 2, false, builtinRange)
	r.register("map", 2, false, builtinMap)
	r.register("filter", 2, false, builtinFilter)
	r.register("reduce", 2, false, builtinReduce)
}

func builtinFirst(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("first", args, 1); err != nil {
		return nil, err
	}
	arr, err := argArray("first", args, 0)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return NULL, nil
	}
	return arr.Elements[0], nil
}

func builtinLast(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("last", args, 1); err != nil {
		return nil, err
	}
	arr, err := argArray("last", args, 0)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return NULL, nil
	}
	return arr.Elements[len(arr.Elements)-1], nil
}

func builtinRest(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("rest", args, 1); err != nil {
		return nil, err
	}
	arr, err := argArray("rest", args, 0)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return &Array{}, nil
	}
	rest := make([]Object, len(arr.Elements)-1)
	copy(rest, arr.Elements[1:])
	return &Array{Elements: rest}, nil
}

// push is non-destructive: it returns a new array.
func builtinPush(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("push", args, 2); err != nil {
		return nil, err
	}
	arr, err := argArray("push", args, 0)
	if err != nil {
		return nil, err
	}
	elements := make([]Object, len(arr.Elements), len(arr.Elements)+1)
	copy(elements, arr.Elements)
	return &Array{Elements: append(elements, args[1])}, nil
}

func builtinPop(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("pop", args, 1); err != nil {
		return nil, err
	}
	arr, err := argArray("pop", args, 0)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return &Array{}, nil
	}
	elements := make([]Object, len(arr.Elements)-1)
	copy(elements, arr.Elements[:len(arr.Elements)-1])
	return &Array{Elements: elements}, nil
}

func builtinReverse(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("reverse", args, 1); err != nil {
		return nil, err
	}
	arr, err := argArray("reverse", args, 0)
	if err != nil {
		return nil, err
	}
	elements := make([]Object, len(arr.Elements))
	for i, elem := range arr.Elements {
		elements[len(arr.Elements)-1-i] = elem
	}
	return &Array{Elements: elements}, nil
}

// sort orders numbers numerically and strings lexicographically; mixed
// arrays are an error.
func builtinSort(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("sort", args, 1); err != nil {
		return nil, err
	}
	arr, err := argArray("sort", args, 0)
	if err != nil {
		return nil, err
	}
	elements := make([]Object, len(arr.Elements))
	copy(elements, arr.Elements)

	var sortErr error
	sort.SliceStable(elements, func(i, j int) bool {
		switch a := elements[i].(type) {
		case *Number:
			if b, ok := elements[j].(*Number); ok {
				return a.Value < b.Value
			}
		case *String:
			if b, ok := elements[j].(*String); ok {
				return a.Value < b.Value
			}
		}
		sortErr = callErrorf("sort: array elements must be all numbers or all strings")
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return &Array{Elements: elements}, nil
}

func builtinRange(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("range", args, 2); err != nil {
		return nil, err
	}
	from, err := argNumber("range", args, 0)
	if err != nil {
		return nil, err
	}
	to, err := argNumber("range", args, 1)
	if err != nil {
		return nil, err
	}

	var elements []Object
	for v := from; v < to; v++ {
		elements = append(elements, &Number{Value: v})
	}
	return &Array{Elements: elements}, nil
}

// transformName resolves the second argument of map/filter/reduce: a
// function name given as a string.
func transformName(name string, args []Object, i int) (string, error) {
	s, ok := args[i].(*String)
	if !ok {
		return "", callErrorf("%s: argument %d must be a function name string, found %s",
			name, i+1, args[i].Type())
	}
	return s.Value, nil
}

func builtinMap(ev *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("map", args, 2); err != nil {
		return nil, err
	}
	arr, err := argArray("map", args, 0)
	if err != nil {
		return nil, err
	}
	fnName, err := transformName("map", args, 1)
	if err != nil {
		return nil, err
	}

	results := make([]Object, 0, len(arr.Elements))
	for _, elem := range arr.Elements {
		result, err := ev.callFunction(fnName, []Object{elem}, ev.GlobalEnv)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return &Array{Elements: results}, nil
}

func builtinFilter(ev *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("filter", args, 2); err != nil {
		return nil, err
	}
	arr, err := argArray("filter", args, 0)
	if err != nil {
		return nil, err
	}
	fnName, err := transformName("filter", args, 1)
	if err != nil {
		return nil, err
	}

	var results []Object
	for _, elem := range arr.Elements {
		keep, err := ev.callFunction(fnName, []Object{elem}, ev.GlobalEnv)
		if err != nil {
			return nil, err
		}
		if isTruthy(keep) {
			results = append(results, elem)
		}
	}
	return &Array{Elements: results}, nil
}

func builtinReduce(ev *Evaluator, args []Object) (Object, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, callErrorf("reduce expects 2 or 3 arguments (array, reducer, initial?), got %d", len(args))
	}
	arr, err := argArray("reduce", args, 0)
	if err != nil {
		return nil, err
	}
	fnName, err := transformName("reduce", args, 1)
	if err != nil {
		return nil, err
	}

	var acc Object
	elements := arr.Elements
	if len(args) == 3 {
		acc = args[2]
	} else {
		if len(elements) == 0 {
			return NULL, nil
		}
		acc = elements[0]
		elements = elements[1:]
	}

	for _, elem := range elements {
		acc, err = ev.callFunction(fnName, []Object{acc, elem}, ev.GlobalEnv)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
