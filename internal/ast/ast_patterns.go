package ast

import "github.com/susumulang/susumu/internal/token"

type WildcardPattern struct {
	Token token.Token
}

func (w *WildcardPattern) patternNode()          {}
func (w *WildcardPattern) TokenLiteral() string  { return w.Token.Lexeme }
func (w *WildcardPattern) GetToken() token.Token { return w.Token }

// IdentifierPattern always matches and binds the value to Name.
type IdentifierPattern struct {
	Token token.Token
	Name  string
}

func (i *IdentifierPattern) patternNode()          {}
func (i *IdentifierPattern) TokenLiteral() string  { return i.Token.Lexeme }
func (i *IdentifierPattern) GetToken() token.Token { return i.Token }

// LiteralPattern matches by value equality against a literal expression.
type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (l *LiteralPattern) patternNode()          {}
func (l *LiteralPattern) TokenLiteral() string  { return l.Token.Lexeme }
func (l *LiteralPattern) GetToken() token.Token { return l.Token }

type TuplePattern struct {
	Token    token.Token
	Elements []Pattern
}

func (t *TuplePattern) patternNode()          {}
func (t *TuplePattern) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TuplePattern) GetToken() token.Token { return t.Token }

type ObjectPatternField struct {
	Key     string
	Pattern Pattern
}

type ObjectPattern struct {
	Token  token.Token
	Fields []ObjectPatternField
}

func (o *ObjectPattern) patternNode()          {}
func (o *ObjectPattern) TokenLiteral() string  { return o.Token.Lexeme }
func (o *ObjectPattern) GetToken() token.Token { return o.Token }

// ArrowPattern matches tagged constructor values: some/none/success/error.
// Arg is nil for payload-less constructors (none).
type ArrowPattern struct {
	Token       token.Token
	Constructor string
	Arg         Pattern
}

func (a *ArrowPattern) patternNode()          {}
func (a *ArrowPattern) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrowPattern) GetToken() token.Token { return a.Token }
