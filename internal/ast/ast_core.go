package ast

import (
	"strings"

	"github.com/susumulang/susumu/internal/token"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Expression is any evaluatable node.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a match-case pattern.
type Pattern interface {
	Node
	patternNode()
}

// Direction is the arrow kind between two adjacent chain operands.
type Direction int

const (
	Forward  Direction = iota // ->
	Backward                  // <-
)

func (d Direction) String() string {
	if d == Backward {
		return "<-"
	}
	return "->"
}

// Program is one compilation unit: function definitions plus an optional
// top-level expression. Immutable after parsing.
type Program struct {
	File      string
	Functions []*FunctionDef
	Main      Expression
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	if p.Main != nil {
		return p.Main.TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Functions) > 0 {
		return p.Functions[0].GetToken()
	}
	if p.Main != nil {
		return p.Main.GetToken()
	}
	return token.Token{}
}

// FunctionDef is a named function: name(params) { body }.
type FunctionDef struct {
	Token      token.Token // the function name token
	Name       string
	Params     []*Param
	ReturnType *ReturnType
	Body       Expression
}

func (f *FunctionDef) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionDef) GetToken() token.Token { return f.Token }

// Param is one function parameter with an optional type annotation.
type Param struct {
	Token      token.Token
	Name       string
	Annotation *TypeAnnotation
}

// ReturnType declares a success type and the error types a function may
// surface. Advisory only.
type ReturnType struct {
	Success *TypeAnnotation
	Errors  []*TypeAnnotation
}

// TypeAnnotation is a parse-level type name with optional arguments,
// e.g. number, array<string>. Resolution happens in typesystem.
type TypeAnnotation struct {
	Token token.Token
	Name  string
	Args  []*TypeAnnotation
}

func (t *TypeAnnotation) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}
