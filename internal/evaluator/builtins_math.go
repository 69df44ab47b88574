package evaluator

import "math"

// Convergent math builtins accept any number of arguments past their
// declared arity, folding left to right: 5 -> add <- 3 <- 2 is 10.
func (r *Registry) registerMath() {
	r.register("add", 2, true, builtinAdd)
	r.register("sum", 1, true, builtinSum)
	r.register("subtract", 2, false, builtinSubtract)
	r.register("multiply", 2, true, builtinMultiply)
	r.register("divide", 2, false, builtinDivide)
	r.register("modulo", 2, false, builtinModulo)
	r.register("power", 2, false, builtinPower)
	r.register("sqrt", 1, false, builtinSqrt)
	r.register("abs", 1, false, builtinAbs)
	r.register("min", 2, true, builtinMin)
	r.register("max", 2, true, builtinMax)
	r.register("average", 1, true, builtinAverage)
}

func numericArgs(name string, args []Object) ([]float64, error) {
	values := make([]float64, len(args))
	for i := range args {
		v, err := argNumber(name, args, i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func builtinAdd(_ *Evaluator, args []Object) (Object, error) {
	if err := wantAtLeast("add", args, 1); err != nil {
		return nil, err
	}
	values, err := numericArgs("add", args)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	if math.IsInf(total, 0) {
		return nil, callErrorf("arithmetic overflow in addition")
	}
	return &Number{Value: total}, nil
}

// sum accepts either a single array of numbers or the same variadic
// form as add.
func builtinSum(ev *Evaluator, args []Object) (Object, error) {
	if len(args) == 1 {
		if arr, ok := args[0].(*Array); ok {
			return builtinAdd(ev, arr.Elements)
		}
	}
	return builtinAdd(ev, args)
}

func builtinSubtract(_ *Evaluator, args []Object) (Object, error) {
	switch len(args) {
	case 1:
		v, err := argNumber("subtract", args, 0)
		if err != nil {
			return nil, err
		}
		return &Number{Value: -v}, nil
	case 2:
		values, err := numericArgs("subtract", args)
		if err != nil {
			return nil, err
		}
		return &Number{Value: values[0] - values[1]}, nil
	}
	return nil, callErrorf("subtract expects 1 or 2 arguments, got %d", len(args))
}

func builtinMultiply(_ *Evaluator, args []Object) (Object, error) {
	if err := wantAtLeast("multiply", args, 1); err != nil {
		return nil, err
	}
	values, err := numericArgs("multiply", args)
	if err != nil {
		return nil, err
	}
	product := 1.0
	for _, v := range values {
		product *= v
	}
	if math.IsInf(product, 0) {
		return nil, callErrorf("arithmetic overflow in multiplication")
	}
	return &Number{Value: product}, nil
}

func builtinDivide(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("divide", args, 2); err != nil {
		return nil, err
	}
	values, err := numericArgs("divide", args)
	if err != nil {
		return nil, err
	}
	if values[1] == 0 {
		return nil, callErrorf("division by zero")
	}
	return &Number{Value: values[0] / values[1]}, nil
}

func builtinModulo(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("modulo", args, 2); err != nil {
		return nil, err
	}
	values, err := numericArgs("modulo", args)
	if err != nil {
		return nil, err
	}
	if values[1] == 0 {
		return nil, callErrorf("modulo by zero")
	}
	return &Number{Value: math.Mod(values[0], values[1])}, nil
}

func builtinPower(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("power", args, 2); err != nil {
		return nil, err
	}
	values, err := numericArgs("power", args)
	if err != nil {
		return nil, err
	}
	return &Number{Value: math.Pow(values[0], values[1])}, nil
}

func builtinSqrt(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("sqrt", args, 1); err != nil {
		return nil, err
	}
	v, err := argNumber("sqrt", args, 0)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, callErrorf("sqrt of a negative number")
	}
	return &Number{Value: math.Sqrt(v)}, nil
}

func builtinAbs(_ *Evaluator, args []Object) (Object, error) {
	if err := wantArgs("abs", args, 1); err != nil {
		return nil, err
	}
	v, err := argNumber("abs", args, 0)
	if err != nil {
		return nil, err
	}
	return &Number{Value: math.Abs(v)}, nil
}

func builtinMin(_ *Evaluator, args []Object) (Object, error) {
	if err := wantAtLeast("min", args, 1); err != nil {
		return nil, err
	}
	values, err := numericArgs("min", args)
	if err != nil {
		return nil, err
	}
	best := values[0]
	for _, v := range values[1:] {
		if v < best {
			best = v
		}
	}
	return &Number{Value: best}, nil
}

func builtinMax(_ *Evaluator, args []Object) (Object, error) {
	if err := wantAtLeast("max", args, 1); err != nil {
		return nil, err
	}
	values, err := numericArgs("max", args)
	if err != nil {
		return nil, err
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return &Number{Value: best}, nil
}

func builtinAverage(ev *Evaluator, args []Object) (Object, error) {
	if len(args) == 1 {
		if arr, ok := args[0].(*Array); ok {
			args = arr.Elements
		}
	}
	if err := wantAtLeast("average", args, 1); err != nil {
		return nil, err
	}
	total, err := builtinAdd(ev, args)
	if err != nil {
		return nil, err
	}
	return &Number{Value: total.(*Number).Value / float64(len(args))}, nil
}
