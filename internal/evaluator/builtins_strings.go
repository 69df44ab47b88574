package evaluator

import "strings"

func (r *Registry) registerStrings() {
	r.register("concat", 2, true, builtinConcat)
	r.register("length", 1, false, builtinLength)
	r.register("substring", 3, false, builtinSubstring)
	r.register("toUpper", 1, false, builtinToUpper)
	r.register("toLower", 1, false, builtinToLower)
	r.register("trim", 1, false, builtinTrim)
	r.register("split", 2, false, builtinSplit)
	r.register("contains", 2, false, builtinContains)
	r.register("join", 2, false, builtinJoin)
	r.register("toTitleCase", 1, false, builtinToTitleCase)
}

// concat stringifies non-string arguments rather than rejecting them.
func builtinConcat(_ *Evaluator, args []Object) (Object, error) {
	var sb strings.Builder
	for _, arg := range args {
		sb.WriteString(arg.Inspect())
	}
	return &String{Value: sb.String()}, nil
}

// length works on strings and arrays.
func builtinLength(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("length", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *String:
		return &Number{Value: float64(len([]rune(v.Value)))}, nil
	case *Array:
		return &Number{Value: float64(len(v.Elements))}, nil
	case *ObjectValue:
		return &Number{Value: float64(len(v.Pairs))}, nil
	}
	return nil, callErrorf("length: argument must be a string, array or object, found %s", args[0].Type())
}

func builtinSubstring(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("substring", args, 3); err != nil {
		return nil, err
	}
	s, err := argString("substring", args, 0)
	if err != nil {
		return nil, err
	}
	start, err := argNumber("substring", args, 1)
	if err != nil {
		return nil, err
	}
	end, err := argNumber("substring", args, 2)
	if err != nil {
		return nil, err
	}

	runes := []rune(s)
	from, to := int(start), int(end)
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return &String{Value: ""}, nil
	}
	return &String{Value: string(runes[from:to])}, nil
}

func builtinToUpper(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("toUpper", args, 1); err != nil {
		return nil, err
	}
	s, err := argString("toUpper", args, 0)
	if err != nil {
		return nil, err
	}
	return &String{Value: strings.ToUpper(s)}, nil
}

func builtinToLower(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("toLower", args, 1); err != nil {
		return nil, err
	}
	s, err := argString("toLower", args, 0)
	if err != nil {
		return nil, err
	}
	return &String{Value: strings.ToLower(s)}, nil
}

func builtinTrim(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("trim", args, 1); err != nil {
		return nil, err
	}
	s, err := argString("trim", args, 0)
	if err != nil {
		return nil, err
	}
	return &String{Value: strings.TrimSpace(s)}, nil
}

func builtinSplit(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("split", args, 2); err != nil {
		return nil, err
	}
	s, err := argString("split", args, 0)
	if err != nil {
		return nil, err
	}
	sep, err := argString("split", args, 1)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(s, sep)
	elements := make([]Object, len(parts))
	for i, p := range parts {
		elements[i] = &String{Value: p}
	}
	return &Array{Elements: elements}, nil
}

// contains checks substring presence for strings and element equality
// for arrays.
func builtinContains(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("contains", args, 2); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *String:
		sub, err := argString("contains", args, 1)
		if err != nil {
			return nil, err
		}
		return nativeBool(strings.Contains(v.Value, sub)), nil
	case *Array:
		for _, elem := range v.Elements {
			if objectsEqual(elem, args[1]) {
				return TRUE, nil
			}
		}
		return FALSE, nil
	}
	return nil, callErrorf("contains: argument 1 must be a string or array, found %s", args[0].Type())
}

func builtinJoin(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("join", args, 2); err != nil {
		return nil, err
	}
	arr, err := argArray("join", args, 0)
	if err != nil {
		return nil, err
	}
	sep, err := argString("join", args, 1)
	if err != nil {
		return nil, err
	}

	parts := make([]string, len(arr.Elements))
	for i, elem := range arr.Elements {
		parts[i] = elem.Inspect()
	}
	return &String{Value: strings.Join(parts, sep)}, nil
}

func builtinToTitleCase(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("toTitleCase", args, 1); err != nil {
		return nil, err
	}
	s, err := argString("toTitleCase", args, 0)
	if err != nil {
		return nil, err
	}

	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return &String{Value: strings.Join(words, " ")}, nil
}
