package ast

import "github.com/susumulang/susumu/internal/token"

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()       {}
func (n *NumberLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NumberLiteral) GetToken() token.Token { return n.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()       {}
func (s *StringLiteral) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StringLiteral) GetToken() token.Token { return s.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()       {}
func (n *NullLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token { return n.Token }

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()       {}
func (a *ArrayLiteral) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrayLiteral) GetToken() token.Token { return a.Token }

type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (t *TupleLiteral) expressionNode()       {}
func (t *TupleLiteral) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TupleLiteral) GetToken() token.Token { return t.Token }

type ObjectField struct {
	Key   string
	Value Expression
}

type ObjectLiteral struct {
	Token  token.Token
	Fields []ObjectField
}

func (o *ObjectLiteral) expressionNode()       {}
func (o *ObjectLiteral) TokenLiteral() string  { return o.Token.Lexeme }
func (o *ObjectLiteral) GetToken() token.Token { return o.Token }

// ArrowChain is the flat chain representation: len(Directions) is always
// len(Expressions)-1, Directions[i] linking Expressions[i] to
// Expressions[i+1].
type ArrowChain struct {
	Token       token.Token
	Expressions []Expression
	Directions  []Direction
}

func (a *ArrowChain) expressionNode()       {}
func (a *ArrowChain) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrowChain) GetToken() token.Token { return a.Token }

type CallExpression struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (c *CallExpression) expressionNode()       {}
func (c *CallExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *CallExpression) GetToken() token.Token { return c.Token }

// ConditionKind discriminates how a conditional's test value is judged.
type ConditionKind int

const (
	CondIf      ConditionKind = iota // plain truthiness
	CondSuccess                      // value is not null
	CondCustom                       // named condition, resolved at eval time
)

type ElseIfBranch struct {
	Kind      ConditionKind
	Name      string
	Condition Expression
	Body      Expression
}

// Conditional is i/ei/e. A nil or NullLiteral Condition is the placeholder
// filled by the arrow-chain evaluator with the running value.
type Conditional struct {
	Token     token.Token
	Kind      ConditionKind
	Name      string
	Condition Expression
	Then      Expression
	ElseIfs   []ElseIfBranch
	Else      Expression
}

func (c *Conditional) expressionNode()       {}
func (c *Conditional) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Conditional) GetToken() token.Token { return c.Token }

type ReturnExpression struct {
	Token token.Token
	Value Expression
}

func (r *ReturnExpression) expressionNode()       {}
func (r *ReturnExpression) TokenLiteral() string  { return r.Token.Lexeme }
func (r *ReturnExpression) GetToken() token.Token { return r.Token }

type ErrorExpression struct {
	Token token.Token
	Value Expression
}

func (e *ErrorExpression) expressionNode()       {}
func (e *ErrorExpression) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ErrorExpression) GetToken() token.Token { return e.Token }

// MaybeExpression constructs a some/none tagged value.
type MaybeExpression struct {
	Token  token.Token
	IsSome bool
	Value  Expression
}

func (m *MaybeExpression) expressionNode()       {}
func (m *MaybeExpression) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MaybeExpression) GetToken() token.Token { return m.Token }

// ResultExpression constructs a success/error tagged value.
type ResultExpression struct {
	Token     token.Token
	IsSuccess bool
	Value     Expression
}

func (r *ResultExpression) expressionNode()       {}
func (r *ResultExpression) TokenLiteral() string  { return r.Token.Lexeme }
func (r *ResultExpression) GetToken() token.Token { return r.Token }

type ForEach struct {
	Token    token.Token
	Variable string
	Iterable Expression
	Body     Expression
}

func (f *ForEach) expressionNode()       {}
func (f *ForEach) TokenLiteral() string  { return f.Token.Lexeme }
func (f *ForEach) GetToken() token.Token { return f.Token }

type While struct {
	Token     token.Token
	Condition Expression
	Body      Expression
}

func (w *While) expressionNode()       {}
func (w *While) TokenLiteral() string  { return w.Token.Lexeme }
func (w *While) GetToken() token.Token { return w.Token }

type Block struct {
	Token       token.Token
	Expressions []Expression
}

func (b *Block) expressionNode()       {}
func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token { return b.Token }

type MatchCase struct {
	Pattern Pattern
	Guard   Expression
	Body    Expression
}

// Match with a nil Scrutinee matches the arrow chain's running value.
type Match struct {
	Token     token.Token
	Scrutinee Expression
	Cases     []MatchCase
}

func (m *Match) expressionNode()       {}
func (m *Match) TokenLiteral() string  { return m.Token.Lexeme }
func (m *Match) GetToken() token.Token { return m.Token }

type Assignment struct {
	Token   token.Token
	Name    string
	Value   Expression
	Mutable bool
}

func (a *Assignment) expressionNode()       {}
func (a *Assignment) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token { return a.Token }

type PropertyAccess struct {
	Token  token.Token
	Object Expression
	Field  string
}

func (p *PropertyAccess) expressionNode()       {}
func (p *PropertyAccess) TokenLiteral() string  { return p.Token.Lexeme }
func (p *PropertyAccess) GetToken() token.Token { return p.Token }

// ObjectMutation writes a field of a mut-bound object: obj.field = value.
type ObjectMutation struct {
	Token  token.Token
	Object string
	Field  string
	Value  Expression
}

func (o *ObjectMutation) expressionNode()       {}
func (o *ObjectMutation) TokenLiteral() string  { return o.Token.Lexeme }
func (o *ObjectMutation) GetToken() token.Token { return o.Token }

type BinaryOp struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryOp) expressionNode()       {}
func (b *BinaryOp) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BinaryOp) GetToken() token.Token { return b.Token }

// AnnotationKind is the closed set of recognized annotations.
type AnnotationKind int

const (
	AnnTrace AnnotationKind = iota
	AnnMonitor
	AnnConfig
	AnnParallel
	AnnDebug
)

type Annotation struct {
	Kind  AnnotationKind
	Name  string
	Value Expression
}

type Annotated struct {
	Token      token.Token
	Annotation Annotation
	Expression Expression
}

func (a *Annotated) expressionNode()       {}
func (a *Annotated) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Annotated) GetToken() token.Token { return a.Token }

// ErrorPropagation unwraps success-tagged values and re-signals error ones.
type ErrorPropagation struct {
	Token      token.Token
	Expression Expression
}

func (e *ErrorPropagation) expressionNode()       {}
func (e *ErrorPropagation) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ErrorPropagation) GetToken() token.Token { return e.Token }

// DefaultValue evaluates to Value unless it is null, then Fallback.
type DefaultValue struct {
	Token    token.Token
	Value    Expression
	Fallback Expression
}

func (d *DefaultValue) expressionNode()       {}
func (d *DefaultValue) TokenLiteral() string  { return d.Token.Lexeme }
func (d *DefaultValue) GetToken() token.Token { return d.Token }
