package evaluator

import (
	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/config"
)

// evalMatchWithValue tries cases in source order. A case commits when
// its pattern matches and its guard, if any, evaluates truthy in the
// scope extended with the pattern's bindings.
func (ev *Evaluator) evalMatchWithValue(value Object, cases []ast.MatchCase, env *Environment) (Object, error) {
	for _, c := range cases {
		scope := NewEnclosedEnvironment(env)
		if !ev.matchPattern(c.Pattern, value, scope) {
			continue
		}
		if c.Guard != nil {
			guard, err := ev.Eval(c.Guard, scope)
			if err != nil {
				return nil, err
			}
			if !isTruthy(guard) {
				continue
			}
		}
		return ev.Eval(c.Body, scope)
	}
	return nil, &RuntimeError{Message: "No pattern matched"}
}

// matchPattern reports whether value matches pattern, binding names
// into scope as a side effect. Bindings from a failed sibling pattern
// are discarded with the scope.
func (ev *Evaluator) matchPattern(pattern ast.Pattern, value Object, scope *Environment) bool {
	switch pat := pattern.(type) {
	case *ast.WildcardPattern:
		return true

	case *ast.IdentifierPattern:
		scope.Define(pat.Name, value)
		return true

	case *ast.LiteralPattern:
		return ev.matchLiteral(pat.Value, value)

	case *ast.ArrowPattern:
		return ev.matchArrowPattern(pat, value, scope)

	case *ast.TuplePattern:
		arr, ok := value.(*Array)
		if !ok || len(arr.Elements) != len(pat.Elements) {
			return false
		}
		for i, elem := range pat.Elements {
			if !ev.matchPattern(elem, arr.Elements[i], scope) {
				return false
			}
		}
		return true

	case *ast.ObjectPattern:
		obj, ok := value.(*ObjectValue)
		if !ok {
			return false
		}
		for _, field := range pat.Fields {
			fieldValue, present := obj.Get(field.Key)
			if !present {
				return false
			}
			if !ev.matchPattern(field.Pattern, fieldValue, scope) {
				return false
			}
		}
		return true
	}
	return false
}

func (ev *Evaluator) matchLiteral(literal ast.Expression, value Object) bool {
	switch lit := literal.(type) {
	case *ast.NumberLiteral:
		num, ok := value.(*Number)
		return ok && num.Value == lit.Value
	case *ast.StringLiteral:
		str, ok := value.(*String)
		return ok && str.Value == lit.Value
	case *ast.BooleanLiteral:
		b, ok := value.(*Boolean)
		return ok && b.Value == lit.Value
	case *ast.NullLiteral:
		return isNull(value)
	}
	return false
}

// matchArrowPattern recognizes tagged constructor values. Both the
// dedicated Tagged representation and a plain object of the shape
// {type: ctor, value: payload} match, since builtins may surface the
// latter.
func (ev *Evaluator) matchArrowPattern(pat *ast.ArrowPattern, value Object, scope *Environment) bool {
	tag, payload, ok := taggedParts(value)
	if !ok || tag != pat.Constructor {
		return false
	}
	if pat.Arg == nil {
		return true
	}
	if payload == nil {
		payload = NULL
	}
	return ev.matchPattern(pat.Arg, payload, scope)
}

func taggedParts(value Object) (string, Object, bool) {
	switch v := value.(type) {
	case *Tagged:
		return v.Tag, v.Value, true
	case *ObjectValue:
		tagValue, ok := v.Get("type")
		if !ok {
			return "", nil, false
		}
		tag, ok := tagValue.(*String)
		if !ok {
			return "", nil, false
		}
		switch tag.Value {
		case config.SomeCtorName, config.NoneCtorName, config.SuccessCtorName, config.ErrorCtorName:
			payload, _ := v.Get("value")
			return tag.Value, payload, true
		}
	}
	return "", nil, false
}
