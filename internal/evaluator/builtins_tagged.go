package evaluator

import "github.com/susumulang/susumu/internal/config"

// Tagged-value builtins back the some/none/success/error constructors
// and their inspection helpers.
func (r *Registry) registerTagged() {
	r.register("some", 1, false, builtinSome)
	r.register("none", 0, false, builtinNone)
	r.register("success", 1, false, builtinSuccess)
	r.register("error", 1, false, builtinError)
	r.register("isSome", 1, false, taggedPredicate("isSome", config.SomeCtorName))
	r.register("isNone", 1, false, taggedPredicate("isNone", config.NoneCtorName))
	r.register("isSuccess", 1, false, taggedPredicate("isSuccess", config.SuccessCtorName))
	r.register("isError", 1, false, taggedPredicate("isError", config.ErrorCtorName))
	r.register("unwrap", 1, false, builtinUnwrap)
	r.register("unwrapOr", 2, false, builtinUnwrapOr)
}

func builtinSome(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("some", args, 1); err != nil {
		return nil, err
	}
	return &Tagged{Tag: config.SomeCtorName, Value: args[0]}, nil
}

func builtinNone(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("none", args, 0); err != nil {
		return nil, err
	}
	return &Tagged{Tag: config.NoneCtorName, Value: NULL}, nil
}

func builtinSuccess(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("success", args, 1); err != nil {
		return nil, err
	}
	return &Tagged{Tag: config.SuccessCtorName, Value: args[0]}, nil
}

func builtinError(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("error", args, 1); err != nil {
		return nil, err
	}
	return &Tagged{Tag: config.ErrorCtorName, Value: args[0]}, nil
}

func taggedPredicate(name, tag string) BuiltinFn {
	return func(_ *Evaluator, args []Object) (Object, error) {
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		actual, _, ok := taggedParts(args[0])
		return nativeBool(ok && actual == tag), nil
	}
}

// unwrap extracts the payload of some/success; none and error are
// runtime errors.
func builtinUnwrap(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("unwrap", args, 1); err != nil {
		return nil, err
	}
	tag, payload, ok := taggedParts(args[0])
	if !ok {
		return args[0], nil
	}
	switch tag {
	case config.SomeCtorName, config.SuccessCtorName:
		if payload == nil {
			return NULL, nil
		}
		return payload, nil
	case config.NoneCtorName:
		return nil, callErrorf("unwrap: called on none")
	default:
		if payload == nil {
			payload = NULL
		}
		return nil, callErrorf("unwrap: called on error(%s)", payload.Inspect())
	}
}

func builtinUnwrapOr(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("unwrapOr", args, 2); err != nil {
		return nil, err
	}
	tag, payload, ok := taggedParts(args[0])
	if !ok {
		if isNull(args[0]) {
			return args[1], nil
		}
		return args[0], nil
	}
	switch tag {
	case config.SomeCtorName, config.SuccessCtorName:
		if payload == nil {
			return NULL, nil
		}
		return payload, nil
	default:
		return args[1], nil
	}
}
