package evaluator

import (
	"strconv"
	"strings"
)

func (r *Registry) registerTypes() {
	r.register("typeOf", 1, false, builtinTypeOf)
	r.register("isNull", 1, false, builtinIsNull)
	r.register("isEmpty", 1, false, builtinIsEmpty)
	r.register("isNumber", 1, false, builtinIsNumber)
	r.register("isString", 1, false, builtinIsString)
	r.register("isBoolean", 1, false, builtinIsBoolean)
	r.register("isArray", 1, false, builtinIsArray)
	r.register("isObject", 1, false, builtinIsObject)
	r.register("equals", 2, false, builtinEquals)
	r.register("toString", 1, false, builtinToString)
	r.register("toNumber", 1, false, builtinToNumber)
}

func builtinTypeOf(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("typeOf", args, 1); err != nil {
		return nil, err
	}
	return &String{Value: strings.ToLower(string(args[0].Type()))}, nil
}

func builtinIsNull(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("isNull", args, 1); err != nil {
		return nil, err
	}
	return nativeBool(isNull(args[0])), nil
}

func builtinIsEmpty(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("isEmpty", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *String:
		return nativeBool(v.Value == ""), nil
	case *Array:
		return nativeBool(len(v.Elements) == 0), nil
	case *ObjectValue:
		return nativeBool(len(v.Pairs) == 0), nil
	case *Null:
		return TRUE, nil
	}
	return FALSE, nil
}

func builtinIsNumber(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("isNumber", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*Number)
	return nativeBool(ok), nil
}

func builtinIsString(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("isString", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*String)
	return nativeBool(ok), nil
}

func builtinIsBoolean(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("isBoolean", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*Boolean)
	return nativeBool(ok), nil
}

func builtinIsArray(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("isArray", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*Array)
	return nativeBool(ok), nil
}

func builtinIsObject(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("isObject", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*ObjectValue)
	return nativeBool(ok), nil
}

func builtinEquals(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("equals", args, 2); err != nil {
		return nil, err
	}
	return nativeBool(objectsEqual(args[0], args[1])), nil
}

func builtinToString(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("toString", args, 1); err != nil {
		return nil, err
	}
	return &String{Value: args[0].Inspect()}, nil
}

func builtinToNumber(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("toNumber", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *Number:
		return v, nil
	case *Boolean:
		if v.Value {
			return &Number{Value: 1}, nil
		}
		return &Number{Value: 0}, nil
	case *String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, callErrorf("toNumber: cannot convert '%s' to a number", v.Value)
		}
		return &Number{Value: parsed}, nil
	}
	return nil, callErrorf("toNumber: cannot convert %s to a number", args[0].Type())
}
