package evaluator

import (
	"fmt"

	"github.com/susumulang/susumu/internal/ast"
)

// evalForEach iterates an Array, collecting per-iteration results into
// a new array. A fresh child scope is pushed per iteration.
func (ev *Evaluator) evalForEach(node *ast.ForEach, env *Environment) (Object, error) {
	iterable, err := ev.Eval(node.Iterable, env)
	if err != nil {
		return nil, err
	}
	arr, ok := iterable.(*Array)
	if !ok {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("foreach expects an array, found %s", iterable.Type()),
			Line:    node.Token.Line,
			Column:  node.Token.Column,
		}
	}

	results := make([]Object, 0, len(arr.Elements))
	for _, item := range arr.Elements {
		scope := NewEnclosedEnvironment(env)
		scope.Define(node.Variable, item)
		result, err := ev.Eval(node.Body, scope)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return &Array{Elements: results}, nil
}

func (ev *Evaluator) evalWhile(node *ast.While, env *Environment) (Object, error) {
	result := Object(NULL)
	for {
		cond, err := ev.Eval(node.Condition, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return result, nil
		}
		result, err = ev.Eval(node.Body, env)
		if err != nil {
			return nil, err
		}
	}
}

// evalAssignment binds a name. Rebinding is allowed only for mut
// variables and happens in the scope that defined them.
func (ev *Evaluator) evalAssignment(node *ast.Assignment, env *Environment) (Object, error) {
	value, err := ev.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}

	if node.Mutable {
		env.DefineMutable(node.Name, value)
		return value, nil
	}

	if _, exists := env.Get(node.Name); exists {
		if env.Update(node.Name, value) {
			return value, nil
		}
		return nil, &RuntimeError{
			Message: fmt.Sprintf("cannot assign to immutable variable '%s'", node.Name),
			Line:    node.Token.Line,
			Column:  node.Token.Column,
		}
	}

	env.Define(node.Name, value)
	return value, nil
}

// evalPropertyAccess reads a field; missing fields and non-object
// receivers yield null rather than an error. Tagged values expose their
// constructor name as 'type' and payload as 'value'.
func (ev *Evaluator) evalPropertyAccess(node *ast.PropertyAccess, env *Environment) (Object, error) {
	receiver, err := ev.Eval(node.Object, env)
	if err != nil {
		return nil, err
	}

	switch obj := receiver.(type) {
	case *ObjectValue:
		if value, ok := obj.Get(node.Field); ok {
			return value, nil
		}
	case *Tagged:
		switch node.Field {
		case "type":
			return &String{Value: obj.Tag}, nil
		case "value":
			return obj.Value, nil
		}
	}
	return NULL, nil
}

func (ev *Evaluator) evalObjectMutation(node *ast.ObjectMutation, env *Environment) (Object, error) {
	receiver, ok := env.Get(node.Object)
	if !ok {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("undefined variable '%s'", node.Object),
			Line:    node.Token.Line,
			Column:  node.Token.Column,
		}
	}
	if !env.IsMutable(node.Object) {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("cannot mutate immutable variable '%s'", node.Object),
			Line:    node.Token.Line,
			Column:  node.Token.Column,
		}
	}
	obj, ok := receiver.(*ObjectValue)
	if !ok {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("cannot set field on %s", receiver.Type()),
			Line:    node.Token.Line,
			Column:  node.Token.Column,
		}
	}

	value, err := ev.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}
	obj.Set(node.Field, value)
	return value, nil
}

func (ev *Evaluator) evalBinaryOp(node *ast.BinaryOp, env *Environment) (Object, error) {
	left, err := ev.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}
	return binaryOp(node, left, right)
}

func binaryOp(node *ast.BinaryOp, left, right Object) (Object, error) {
	switch node.Operator {
	case "==":
		return nativeBool(objectsEqual(left, right)), nil
	case "!=":
		return nativeBool(!objectsEqual(left, right)), nil
	}

	if ln, lok := left.(*Number); lok {
		if rn, rok := right.(*Number); rok {
			return numberOp(node, ln.Value, rn.Value)
		}
	}

	if node.Operator == "+" {
		// String concatenation coerces a numeric operand.
		if ls, ok := left.(*String); ok {
			switch r := right.(type) {
			case *String:
				return &String{Value: ls.Value + r.Value}, nil
			case *Number:
				return &String{Value: ls.Value + (&Number{Value: r.Value}).Inspect()}, nil
			}
		}
		if rs, ok := right.(*String); ok {
			if l, ok := left.(*Number); ok {
				return &String{Value: (&Number{Value: l.Value}).Inspect() + rs.Value}, nil
			}
		}
	}

	return nil, &RuntimeError{
		Message: fmt.Sprintf("unsupported operand types for '%s': %s and %s",
			node.Operator, left.Type(), right.Type()),
		Line:   node.Token.Line,
		Column: node.Token.Column,
	}
}

func numberOp(node *ast.BinaryOp, l, r float64) (Object, error) {
	switch node.Operator {
	case "+":
		return &Number{Value: l + r}, nil
	case "-":
		return &Number{Value: l - r}, nil
	case "*":
		return &Number{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, &RuntimeError{
				Message: "division by zero",
				Line:    node.Token.Line,
				Column:  node.Token.Column,
			}
		}
		return &Number{Value: l / r}, nil
	case "<":
		return nativeBool(l < r), nil
	case ">":
		return nativeBool(l > r), nil
	case "<=":
		return nativeBool(l <= r), nil
	case ">=":
		return nativeBool(l >= r), nil
	}
	return nil, &RuntimeError{
		Message: fmt.Sprintf("unsupported operator '%s'", node.Operator),
		Line:    node.Token.Line,
		Column:  node.Token.Column,
	}
}

// objectsEqual is structural equality; numbers compare on the
// underlying float.
func objectsEqual(a, b Object) bool {
	switch av := a.(type) {
	case *Null:
		return isNull(b)
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !objectsEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *ObjectValue:
		bv, ok := b.(*ObjectValue)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for key, value := range av.Pairs {
			other, present := bv.Pairs[key]
			if !present || !objectsEqual(value, other) {
				return false
			}
		}
		return true
	case *Tagged:
		bv, ok := b.(*Tagged)
		return ok && av.Tag == bv.Tag && objectsEqual(av.Value, bv.Value)
	}
	return a == b
}
