package evaluator

import (
	"fmt"
	"sync"

	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/config"
)

// evalArrowChain implements convergence: a forward step into a function
// name collects the running value as argument 0 plus every immediately
// following backward step as further arguments, so a -> f <- b <- c is
// f(a, b, c). Forward steps into scrutinee-less matches and
// placeholder conditionals consume the running value; any other forward
// target replaces it.
func (ev *Evaluator) evalArrowChain(chain *ast.ArrowChain, env *Environment) (Object, error) {
	return ev.evalChainSteps(chain, env, false, nil)
}

// chainTrace observes each completed chain step: the step ordinal, a
// short name for the target, and the running value after the step.
type chainTrace func(step int, target string, value Object)

func (ev *Evaluator) evalChainSteps(chain *ast.ArrowChain, env *Environment, parallel bool, trace chainTrace) (Object, error) {
	if len(chain.Expressions) == 0 {
		return NULL, nil
	}
	if len(chain.Directions) == 0 {
		return ev.Eval(chain.Expressions[0], env)
	}

	result, err := ev.Eval(chain.Expressions[0], env)
	if err != nil {
		return nil, err
	}

	i := 0
	step := 0
	for i < len(chain.Directions) {
		if chain.Directions[i] == ast.Backward {
			return nil, &ArrowChainError{
				Message: "unexpected backward arrow outside of a convergence",
				Line:    chain.Token.Line,
				Column:  chain.Token.Column,
			}
		}

		target := chain.Expressions[i+1]
		switch node := target.(type) {
		case *ast.Identifier:
			// Greedily consume the backward run as convergent arguments.
			j := i + 1
			var convergent []ast.Expression
			for j < len(chain.Directions) && chain.Directions[j] == ast.Backward {
				j++
				convergent = append(convergent, chain.Expressions[j])
			}

			args := []Object{result}
			extra, err := ev.evalConvergentArgs(convergent, env, parallel)
			if err != nil {
				return nil, err
			}
			args = append(args, extra...)

			result, err = ev.callFunction(node.Value, args, env)
			if err != nil {
				return nil, err
			}
			i = j

		case *ast.Match:
			if node.Scrutinee == nil {
				result, err = ev.evalMatchWithValue(result, node.Cases, env)
			} else {
				result, err = ev.Eval(node, env)
			}
			if err != nil {
				return nil, err
			}
			i++

		case *ast.Conditional:
			if isPlaceholderCondition(node.Condition) {
				result, err = ev.evalConditionalWithValue(node, result, env)
			} else {
				result, err = ev.Eval(node, env)
			}
			if err != nil {
				return nil, err
			}
			i++

		case *ast.ReturnExpression:
			// A bare return at a chain tail adopts the running value.
			if node.Value == nil {
				return nil, &ReturnSignal{Value: result}
			}
			if _, err = ev.Eval(node, env); err != nil {
				return nil, err
			}
			i++

		case *ast.ErrorExpression:
			if node.Value == nil {
				return nil, &UserError{Value: result}
			}
			if _, err = ev.Eval(node, env); err != nil {
				return nil, err
			}
			i++

		default:
			result, err = ev.Eval(target, env)
			if err != nil {
				return nil, err
			}
			i++
		}

		step++
		if trace != nil {
			trace(step, chainStepName(target), result)
		}
	}

	return result, nil
}

func chainStepName(target ast.Expression) string {
	switch node := target.(type) {
	case *ast.Identifier:
		return node.Value
	case *ast.Match:
		return "match"
	case *ast.Conditional:
		return "conditional"
	case *ast.ReturnExpression:
		return "return"
	case *ast.ErrorExpression:
		return "error"
	default:
		return "expression"
	}
}

// isPlaceholderCondition reports whether the conditional was parsed in
// standalone form. Only a nil condition is a placeholder; an explicit
// 'null' literal is a real condition that judges as failure.
func isPlaceholderCondition(cond ast.Expression) bool {
	return cond == nil
}

// evalConvergentArgs evaluates the backward-chained arguments of one
// convergence point. In parallel mode each argument runs in its own
// goroutine against the shared scope chain; results keep their
// positional order.
func (ev *Evaluator) evalConvergentArgs(exprs []ast.Expression, env *Environment, parallel bool) ([]Object, error) {
	if !parallel || len(exprs) < 2 {
		return ev.evalArgs(exprs, env)
	}

	values := make([]Object, len(exprs))
	errs := make([]error, len(exprs))
	var wg sync.WaitGroup
	for idx, expr := range exprs {
		wg.Add(1)
		go func(idx int, expr ast.Expression) {
			defer wg.Done()
			worker := &Evaluator{
				GlobalEnv: ev.GlobalEnv,
				Out:       ev.Out,
				Loader:    ev.Loader,
				builtins:  ev.builtins,
			}
			values[idx], errs[idx] = worker.Eval(expr, env)
		}(idx, expr)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// callFunction resolves a name in order: module pseudo-functions,
// builtins, then user-defined functions in the global scope.
func (ev *Evaluator) callFunction(name string, args []Object, env *Environment) (Object, error) {
	switch name {
	case config.FromFuncName:
		return ev.moduleFrom(args)
	case config.ImportFuncName:
		return ev.moduleImport(args)
	case config.ExportFuncName:
		return ev.moduleExport(args)
	}

	if ev.builtins.Contains(name) {
		return ev.builtins.Call(ev, name, args)
	}

	if fn, ok := ev.GlobalEnv.GetFunction(name); ok {
		return ev.callUserFunction(fn, args)
	}

	return nil, &UndefinedFunctionError{Name: name}
}

// callUserFunction invokes fn with exact arity. ReturnSignal is caught
// here and unwrapped into an ordinary value; every other error
// propagates unchanged.
func (ev *Evaluator) callUserFunction(fn *Function, args []Object) (Object, error) {
	if len(args) != len(fn.Params) {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("function %s expects %d arguments, got %d",
				fn.Name, len(fn.Params), len(args)),
		}
	}

	scope := NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Params {
		scope.Define(param, args[i])
	}

	result, err := ev.Eval(fn.Body, scope)
	if err != nil {
		if ret, ok := err.(*ReturnSignal); ok {
			return ret.Value, nil
		}
		return nil, err
	}
	return result, nil
}
