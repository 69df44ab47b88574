package evaluator

import (
	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/config"
)

func (ev *Evaluator) evalConditional(node *ast.Conditional, env *Environment) (Object, error) {
	if isPlaceholderCondition(node.Condition) {
		return nil, &RuntimeError{
			Message: "conditional without a condition is only valid inside an arrow chain",
			Line:    node.Token.Line,
			Column:  node.Token.Column,
		}
	}

	value, err := ev.Eval(node.Condition, env)
	if err != nil {
		// Success and custom conditions are the language's error
		// handling idiom: a raised error judges as failure instead
		// of propagating.
		if node.Kind == ast.CondIf {
			return nil, err
		}
		if _, isReturn := err.(*ReturnSignal); isReturn {
			return nil, err
		}
		value = NULL
	}
	return ev.evalConditionalWithValue(node, value, env)
}

// evalConditionalWithValue selects a branch by judging value against
// the conditional's kind. Else-if branches re-judge the same value in
// source order; with no else the conditional evaluates to Null.
func (ev *Evaluator) evalConditionalWithValue(node *ast.Conditional, value Object, env *Environment) (Object, error) {
	if judgeCondition(node.Kind, node.Name, value) {
		return ev.Eval(node.Then, env)
	}
	for _, branch := range node.ElseIfs {
		if judgeCondition(branch.Kind, branch.Name, value) {
			return ev.Eval(branch.Body, env)
		}
	}
	if node.Else != nil {
		return ev.Eval(node.Else, env)
	}
	return NULL, nil
}

func judgeCondition(kind ast.ConditionKind, name string, value Object) bool {
	switch kind {
	case ast.CondSuccess:
		return !isNull(value)
	case ast.CondCustom:
		return customCondition(name, value)
	default:
		return isTruthy(value)
	}
}

// customCondition dispatches on the condition name; unrecognized names
// fall back to generic truthiness.
func customCondition(name string, value Object) bool {
	switch name {
	case config.SuccessCtorName:
		return !isNull(value)
	case "null":
		return isNull(value)
	case "empty":
		switch v := value.(type) {
		case *String:
			return v.Value == ""
		case *Array:
			return len(v.Elements) == 0
		}
		return false
	default:
		return isTruthy(value)
	}
}

// isTruthy: null is false, booleans are themselves, numbers are true
// when nonzero, strings/arrays/objects when non-empty.
func isTruthy(value Object) bool {
	switch v := value.(type) {
	case *Null:
		return false
	case *Boolean:
		return v.Value
	case *Number:
		return v.Value != 0
	case *String:
		return v.Value != ""
	case *Array:
		return len(v.Elements) > 0
	case *ObjectValue:
		return len(v.Pairs) > 0
	default:
		return true
	}
}
