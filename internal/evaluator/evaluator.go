package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/config"
	"github.com/susumulang/susumu/internal/modules"
)

// Evaluator walks the AST and produces runtime values. A single
// Evaluator is not safe for concurrent use except where @parallel
// fans out convergent arguments, which only reads shared scopes.
type Evaluator struct {
	GlobalEnv *Environment
	Out       io.Writer
	Loader    *modules.Loader

	builtins  *Registry
	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		GlobalEnv: NewEnvironment(),
		Out:       os.Stdout,
		Loader:    modules.NewLoader(),
		builtins:  NewRegistry(),
	}
}

// Execute registers every function definition into the global scope,
// then evaluates the top-level expression. Without one, a zero-argument
// main function is invoked if defined; otherwise the result is Null.
func (ev *Evaluator) Execute(program *ast.Program) (Object, error) {
	for _, fn := range program.Functions {
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Name
		}
		ev.GlobalEnv.DefineFunction(&Function{
			Name:   fn.Name,
			Params: params,
			Body:   fn.Body,
			Env:    ev.GlobalEnv,
		})
	}

	if program.Main != nil {
		return ev.Eval(program.Main, ev.GlobalEnv)
	}

	if mainFn, ok := ev.GlobalEnv.GetFunction("main"); ok && len(mainFn.Params) == 0 {
		return ev.callUserFunction(mainFn, nil)
	}
	return NULL, nil
}

func (ev *Evaluator) Eval(expr ast.Expression, env *Environment) (Object, error) {
	ev.evalDepth++
	defer func() { ev.evalDepth-- }()
	if ev.evalDepth > config.MaxEvalDepth {
		return nil, &RuntimeError{Message: "maximum evaluation depth exceeded"}
	}

	switch node := expr.(type) {
	case *ast.NumberLiteral:
		return &Number{Value: node.Value}, nil
	case *ast.StringLiteral:
		return &String{Value: node.Value}, nil
	case *ast.BooleanLiteral:
		return nativeBool(node.Value), nil
	case *ast.NullLiteral:
		return NULL, nil

	case *ast.Identifier:
		if value, ok := env.Get(node.Value); ok {
			return value, nil
		}
		return nil, &RuntimeError{
			Message: fmt.Sprintf("undefined variable '%s'", node.Value),
			Line:    node.Token.Line,
			Column:  node.Token.Column,
		}

	case *ast.ArrayLiteral:
		return ev.evalElements(node.Elements, env)
	case *ast.TupleLiteral:
		return ev.evalElements(node.Elements, env)

	case *ast.ObjectLiteral:
		obj := NewObjectValue()
		for _, field := range node.Fields {
			value, err := ev.Eval(field.Value, env)
			if err != nil {
				return nil, err
			}
			obj.Set(field.Key, value)
		}
		return obj, nil

	case *ast.ArrowChain:
		return ev.evalArrowChain(node, env)

	case *ast.CallExpression:
		args, err := ev.evalArgs(node.Args, env)
		if err != nil {
			return nil, err
		}
		return ev.callFunction(node.Name, args, env)

	case *ast.Conditional:
		return ev.evalConditional(node, env)

	case *ast.ReturnExpression:
		value := Object(NULL)
		if node.Value != nil {
			var err error
			value, err = ev.Eval(node.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return nil, &ReturnSignal{Value: value}

	case *ast.ErrorExpression:
		value := Object(NULL)
		if node.Value != nil {
			var err error
			value, err = ev.Eval(node.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return nil, &UserError{Value: value}

	case *ast.ForEach:
		return ev.evalForEach(node, env)
	case *ast.While:
		return ev.evalWhile(node, env)

	case *ast.Block:
		result := Object(NULL)
		for _, e := range node.Expressions {
			var err error
			result, err = ev.Eval(e, env)
			if err != nil {
				return nil, err
			}
		}
		return result, nil

	case *ast.Match:
		if node.Scrutinee == nil {
			return nil, &RuntimeError{
				Message: "match without a value is only valid inside an arrow chain",
				Line:    node.Token.Line,
				Column:  node.Token.Column,
			}
		}
		value, err := ev.Eval(node.Scrutinee, env)
		if err != nil {
			return nil, err
		}
		return ev.evalMatchWithValue(value, node.Cases, env)

	case *ast.MaybeExpression:
		if !node.IsSome {
			return &Tagged{Tag: config.NoneCtorName, Value: NULL}, nil
		}
		value, err := ev.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		return &Tagged{Tag: config.SomeCtorName, Value: value}, nil

	case *ast.ResultExpression:
		value, err := ev.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		tag := config.SuccessCtorName
		if !node.IsSuccess {
			tag = config.ErrorCtorName
		}
		return &Tagged{Tag: tag, Value: value}, nil

	case *ast.Assignment:
		return ev.evalAssignment(node, env)
	case *ast.PropertyAccess:
		return ev.evalPropertyAccess(node, env)
	case *ast.ObjectMutation:
		return ev.evalObjectMutation(node, env)
	case *ast.BinaryOp:
		return ev.evalBinaryOp(node, env)
	case *ast.Annotated:
		return ev.evalAnnotated(node, env)

	case *ast.ErrorPropagation:
		value, err := ev.Eval(node.Expression, env)
		if err != nil {
			return nil, err
		}
		if tagged, ok := value.(*Tagged); ok {
			switch tagged.Tag {
			case config.SuccessCtorName, config.SomeCtorName:
				return tagged.Value, nil
			case config.ErrorCtorName:
				return nil, &UserError{Value: tagged.Value}
			case config.NoneCtorName:
				return nil, &UserError{Value: NULL}
			}
		}
		return value, nil

	case *ast.DefaultValue:
		value, err := ev.Eval(node.Value, env)
		if err != nil {
			if _, isUser := err.(*UserError); !isUser {
				return nil, err
			}
			value = NULL
		}
		if isNull(value) || isNoneOrError(value) {
			return ev.Eval(node.Fallback, env)
		}
		return value, nil
	}

	return nil, &RuntimeError{Message: fmt.Sprintf("cannot evaluate %T", expr)}
}

func (ev *Evaluator) evalElements(elements []ast.Expression, env *Environment) (Object, error) {
	values := make([]Object, 0, len(elements))
	for _, e := range elements {
		value, err := ev.Eval(e, env)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return &Array{Elements: values}, nil
}

func (ev *Evaluator) evalArgs(args []ast.Expression, env *Environment) ([]Object, error) {
	values := make([]Object, 0, len(args))
	for _, a := range args {
		value, err := ev.Eval(a, env)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func isNull(value Object) bool {
	_, ok := value.(*Null)
	return ok
}

func isNoneOrError(value Object) bool {
	tagged, ok := value.(*Tagged)
	if !ok {
		return false
	}
	return tagged.Tag == config.NoneCtorName || tagged.Tag == config.ErrorCtorName
}
