package evaluator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/susumulang/susumu/internal/ast"
)

// evalAnnotated applies the annotation's runtime behavior around the
// wrapped expression. @monitor and @config do not change the result;
// @parallel switches the chain's convergent arguments to concurrent
// evaluation.
func (ev *Evaluator) evalAnnotated(node *ast.Annotated, env *Environment) (Object, error) {
	switch node.Annotation.Kind {
	case ast.AnnTrace:
		return ev.evalTraced(node, env)

	case ast.AnnMonitor:
		start := time.Now()
		result, err := ev.Eval(node.Expression, env)
		elapsed := time.Since(start)
		ev.reportMetrics(node.Annotation.Value, elapsed, err)
		return result, err

	case ast.AnnConfig:
		// Configuration objects are validated at parse time; there is
		// nothing to apply per-expression yet.
		return ev.Eval(node.Expression, env)

	case ast.AnnParallel:
		if chain, ok := node.Expression.(*ast.ArrowChain); ok {
			return ev.evalChainSteps(chain, env, true, nil)
		}
		return ev.Eval(node.Expression, env)

	case ast.AnnDebug:
		label := "debug"
		if s, ok := node.Annotation.Value.(*ast.StringLiteral); ok {
			label = s.Value
		}
		result, err := ev.Eval(node.Expression, env)
		if err != nil {
			fmt.Fprintf(ev.Out, "DEBUG [%s]: error -> %s\n", label, err)
			return nil, err
		}
		fmt.Fprintf(ev.Out, "DEBUG [%s]: %s\n", label, result.Inspect())
		return result, nil
	}
	return ev.Eval(node.Expression, env)
}

func (ev *Evaluator) evalTraced(node *ast.Annotated, env *Environment) (Object, error) {
	name := "trace"
	if s, ok := node.Annotation.Value.(*ast.StringLiteral); ok {
		name = s.Value
	}
	runID := uuid.NewString()

	fmt.Fprintf(ev.Out, "TRACE [%s] run=%s: start\n", name, runID)
	start := time.Now()

	var result Object
	var err error
	if chain, ok := node.Expression.(*ast.ArrowChain); ok {
		result, err = ev.evalChainSteps(chain, env, false, func(step int, target string, value Object) {
			fmt.Fprintf(ev.Out, "TRACE [%s] run=%s: step %d %s -> %s\n", name, runID, step, target, value.Inspect())
		})
	} else {
		result, err = ev.Eval(node.Expression, env)
	}
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(ev.Out, "TRACE [%s] run=%s: error after %s -> %s\n", name, runID, elapsed, err)
		return nil, err
	}
	fmt.Fprintf(ev.Out, "TRACE [%s] run=%s: done in %s -> %s\n", name, runID, elapsed, result.Inspect())
	return result, nil
}

func (ev *Evaluator) reportMetrics(value ast.Expression, elapsed time.Duration, err error) {
	arr, ok := value.(*ast.ArrayLiteral)
	if !ok {
		return
	}
	for _, elem := range arr.Elements {
		metric, ok := elem.(*ast.StringLiteral)
		if !ok {
			continue
		}
		switch metric.Value {
		case "latency":
			fmt.Fprintf(ev.Out, "MONITOR latency: %s\n", elapsed)
		case "errors":
			if err != nil {
				fmt.Fprintln(ev.Out, "MONITOR errors: execution failed")
			}
		default:
			fmt.Fprintf(ev.Out, "MONITOR %s: not tracked\n", metric.Value)
		}
	}
}
