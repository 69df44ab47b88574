package evaluator

import (
	"fmt"
	"strings"
)

// RuntimeError is a plain evaluation failure with source position.
type RuntimeError struct {
	Message string
	Line    int
	Column  int
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// UndefinedFunctionError reports a call to a name no user function or
// builtin answers to.
type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function '%s'", e.Name)
}

// TypeMismatchError reports an argument of the wrong runtime type.
// Index is the 1-based argument position.
type TypeMismatchError struct {
	Context  string
	Index    int
	Expected ObjectType
	Found    ObjectType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: argument %d must be a %s, found %s",
		e.Context, e.Index, strings.ToLower(string(e.Expected)), e.Found)
}

// ArrowChainError reports a structurally invalid chain caught at
// runtime, such as a backward arrow with no convergence point.
type ArrowChainError struct {
	Message string
	Line    int
	Column  int
}

func (e *ArrowChainError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// ReturnSignal carries a return value up to the enclosing function
// call. It is not a failure; callUserFunction converts it back into a
// normal value.
type ReturnSignal struct {
	Value Object
}

func (r *ReturnSignal) Error() string { return "return outside of function" }

// UserError is an error raised by the program itself via 'error'. It
// propagates unchanged through function-call boundaries; only a
// success/custom conditional or the top-level driver stops it.
type UserError struct {
	Value Object
}

func (u *UserError) Error() string {
	return "error: " + u.Value.Inspect()
}
