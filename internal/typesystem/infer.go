package typesystem

import (
	"fmt"

	"github.com/susumulang/susumu/internal/ast"
)

// Warning is an advisory type diagnostic. Inference never fails hard:
// anything it cannot see through is Unknown, and mismatches it can see
// become warnings with a suggestion, not parse errors.
type Warning struct {
	Line       int
	Column     int
	Message    string
	Suggestion string
}

// FromAnnotation resolves a parse-level type annotation to a Type.
// Unrecognized names resolve to a generic, keeping annotations advisory.
func FromAnnotation(a *ast.TypeAnnotation) Type {
	if a == nil {
		return Unknown
	}
	switch a.Name {
	case "number":
		return Number
	case "string":
		return String
	case "boolean":
		return Boolean
	case "null":
		return Null
	case "unknown":
		return Unknown
	case "array":
		elem := Type(Unknown)
		if len(a.Args) > 0 {
			elem = FromAnnotation(a.Args[0])
		}
		return ArrayType{Elem: elem}
	case "result":
		success, errType := Type(Unknown), Type(Unknown)
		if len(a.Args) > 0 {
			success = FromAnnotation(a.Args[0])
		}
		if len(a.Args) > 1 {
			errType = FromAnnotation(a.Args[1])
		}
		return ResultType{Success: success, Error: errType}
	default:
		return GenericType{Name: a.Name}
	}
}

// Infer computes the best-effort static type of expr.
func Infer(expr ast.Expression, env *Env) Type {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		return Number
	case *ast.StringLiteral:
		return String
	case *ast.BooleanLiteral:
		return Boolean
	case *ast.NullLiteral:
		return Null
	case *ast.Identifier:
		if t, ok := env.Variable(node.Value); ok {
			return t
		}
		return Unknown
	case *ast.ArrayLiteral:
		return inferArray(node.Elements, env)
	case *ast.TupleLiteral:
		elems := make([]Type, len(node.Elements))
		for i, e := range node.Elements {
			elems[i] = Infer(e, env)
		}
		return TupleType{Elems: elems}
	case *ast.ObjectLiteral:
		fields := make([]Field, len(node.Fields))
		for i, f := range node.Fields {
			fields[i] = Field{Name: f.Key, Type: Infer(f.Value, env)}
		}
		return ObjectType{Fields: fields}
	case *ast.CallExpression:
		if fn, ok := env.Function(node.Name); ok {
			return fn.Return
		}
		return Unknown
	case *ast.BinaryOp:
		return inferBinary(node, env)
	case *ast.Assignment:
		t := Infer(node.Value, env)
		env.DefineVariable(node.Name, t)
		return t
	case *ast.Block:
		if len(node.Expressions) == 0 {
			return Null
		}
		for _, e := range node.Expressions[:len(node.Expressions)-1] {
			Infer(e, env)
		}
		return Infer(node.Expressions[len(node.Expressions)-1], env)
	case *ast.ArrowChain:
		chainType, _ := InferChain(node, env)
		return chainType.Output
	case *ast.ReturnExpression:
		return Infer(node.Value, env)
	case *ast.ResultExpression, *ast.MaybeExpression:
		return ObjectType{Fields: []Field{
			{Name: "type", Type: String},
			{Name: "value", Type: Unknown},
		}}
	case *ast.DefaultValue:
		left := Infer(node.Value, env)
		right := Infer(node.Fallback, env)
		if left == nil || right == nil {
			return Unknown
		}
		if Assignable(left, right) && Assignable(right, left) {
			return left
		}
		return UnionType{Members: []Type{left, right}}
	default:
		return Unknown
	}
}

func inferArray(elements []ast.Expression, env *Env) Type {
	if len(elements) == 0 {
		return ArrayType{Elem: Unknown}
	}
	elem := Infer(elements[0], env)
	for _, e := range elements[1:] {
		next := Infer(e, env)
		if !Assignable(next, elem) || !Assignable(elem, next) {
			return ArrayType{Elem: Unknown}
		}
	}
	return ArrayType{Elem: elem}
}

func inferBinary(node *ast.BinaryOp, env *Env) Type {
	left := Infer(node.Left, env)
	right := Infer(node.Right, env)
	switch node.Operator {
	case "==", "!=", "<", ">", "<=", ">=":
		return Boolean
	case "+":
		if left == Primitive(String) || right == Primitive(String) {
			return String
		}
		if left == Primitive(Number) && right == Primitive(Number) {
			return Number
		}
		return Unknown
	default:
		if left == Primitive(Number) && right == Primitive(Number) {
			return Number
		}
		return Unknown
	}
}

// InferChain walks an arrow chain the same way the evaluator will,
// threading a running type through forward steps and collecting
// convergent backward arguments, and reports advisory mismatches.
func InferChain(chain *ast.ArrowChain, env *Env) (ChainType, []Warning) {
	var warnings []Warning

	running := Infer(chain.Expressions[0], env)
	input := running
	intermediates := []Type{running}

	i := 0
	for i < len(chain.Directions) {
		target := chain.Expressions[i+1]
		if chain.Directions[i] == ast.Backward {
			// The evaluator rejects this at runtime; statically it just
			// ends the useful part of the walk.
			running = Unknown
			i++
			continue
		}

		ident, ok := target.(*ast.Identifier)
		if !ok {
			running = Infer(target, env)
			intermediates = append(intermediates, running)
			i++
			continue
		}

		fn, known := env.Function(ident.Value)

		// Collect converging backward arguments.
		argTypes := []Type{running}
		j := i + 1
		for j < len(chain.Directions) && chain.Directions[j] == ast.Backward {
			argTypes = append(argTypes, Infer(chain.Expressions[j+1], env))
			j++
		}

		if !known {
			if _, isVar := env.Variable(ident.Value); !isVar {
				warnings = append(warnings, Warning{
					Line:       ident.Token.Line,
					Column:     ident.Token.Column,
					Message:    fmt.Sprintf("unknown function '%s' in arrow chain", ident.Value),
					Suggestion: suggestNames(ident.Value, env.FunctionNames()),
				})
			}
			running = Unknown
			intermediates = append(intermediates, running)
			i = j
			continue
		}

		warnings = append(warnings, checkCallTypes(ident, fn, argTypes)...)
		running = fn.Return
		intermediates = append(intermediates, running)
		i = j
	}

	return ChainType{Input: input, Output: running, Intermediates: intermediates}, warnings
}

func checkCallTypes(ident *ast.Identifier, fn FuncType, argTypes []Type) []Warning {
	var warnings []Warning

	if !fn.Convergent && len(argTypes) != len(fn.Params) {
		return []Warning{{
			Line:    ident.Token.Line,
			Column:  ident.Token.Column,
			Message: fmt.Sprintf("'%s' expects %d arguments, chain converges %d", ident.Value, len(fn.Params), len(argTypes)),
		}}
	}

	for i, argType := range argTypes {
		var want Type
		if i < len(fn.Params) {
			want = fn.Params[i]
		} else if fn.Convergent && len(fn.Params) > 0 {
			// Convergent functions accept extra arguments of their last
			// declared parameter type.
			want = fn.Params[len(fn.Params)-1]
		} else {
			break
		}
		if !Assignable(argType, want) {
			warnings = append(warnings, Warning{
				Line:       ident.Token.Line,
				Column:     ident.Token.Column,
				Message:    fmt.Sprintf("'%s' expects %s at position %d, chain provides %s", ident.Value, want, i+1, argType),
				Suggestion: conversionHint(argType, want),
			})
		}
	}
	return warnings
}

func conversionHint(found, want Type) string {
	if found == Primitive(String) && want == Primitive(Number) {
		return "use toNumber to convert string to number"
	}
	if found == Primitive(Number) && want == Primitive(String) {
		return "use toString to convert number to string"
	}
	return ""
}
