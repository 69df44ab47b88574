package parser

import (
	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/token"
)

// matchExpression parses 'match scrutinee { cases }' or 'match { cases }'.
// Without a scrutinee the match consumes the running value of the chain
// it sits in.
func (p *Parser) matchExpression() (ast.Expression, error) {
	matchTok := p.advance()

	var scrutinee ast.Expression
	if !p.check(token.LBRACE) {
		var err error
		scrutinee, err = p.primary()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.LBRACE, "expected '{' after match"); err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()

	m := &ast.Match{Token: matchTok, Scrutinee: scrutinee}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		c, err := p.matchCase()
		if err != nil {
			return nil, err
		}
		m.Cases = append(m.Cases, c)
		p.match(token.COMMA)
		p.skipNewlinesAndComments()
	}

	if _, err := p.consume(token.RBRACE, "expected '}' after match cases"); err != nil {
		return nil, err
	}
	if len(m.Cases) == 0 {
		return nil, p.errorAt(diagnostics.ErrP005, matchTok, "match expression has no cases")
	}
	return m, nil
}

func (p *Parser) matchCase() (ast.MatchCase, error) {
	pat, err := p.pattern()
	if err != nil {
		return ast.MatchCase{}, err
	}

	var guard ast.Expression
	if p.match(token.WHEN) {
		guard, err = p.binaryOp()
		if err != nil {
			return ast.MatchCase{}, err
		}
	}

	if _, err := p.consume(token.ARROW, "expected '->' after pattern"); err != nil {
		return ast.MatchCase{}, err
	}
	p.skipNewlinesAndComments()

	body, err := p.parseExpression()
	if err != nil {
		return ast.MatchCase{}, err
	}
	return ast.MatchCase{Pattern: pat, Guard: guard, Body: body}, nil
}

func (p *Parser) pattern() (ast.Pattern, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch {
	case p.match(token.UNDERSCORE):
		return &ast.WildcardPattern{Token: p.previous()}, nil
	case p.match(token.NUMBER):
		tok := p.previous()
		value, _ := tok.Literal.(float64)
		return &ast.LiteralPattern{Token: tok, Value: &ast.NumberLiteral{Token: tok, Value: value}}, nil
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.LiteralPattern{Token: tok, Value: &ast.StringLiteral{Token: tok, Value: tok.Lexeme}}, nil
	case p.match(token.TRUE):
		tok := p.previous()
		return &ast.LiteralPattern{Token: tok, Value: &ast.BooleanLiteral{Token: tok, Value: true}}, nil
	case p.match(token.FALSE):
		tok := p.previous()
		return &ast.LiteralPattern{Token: tok, Value: &ast.BooleanLiteral{Token: tok, Value: false}}, nil
	case p.match(token.NULL):
		tok := p.previous()
		return &ast.LiteralPattern{Token: tok, Value: &ast.NullLiteral{Token: tok}}, nil
	case p.match(token.MINUS):
		minusTok := p.previous()
		numTok, err := p.consume(token.NUMBER, "expected number after '-' in pattern")
		if err != nil {
			return nil, err
		}
		value, _ := numTok.Literal.(float64)
		return &ast.LiteralPattern{
			Token: minusTok,
			Value: &ast.NumberLiteral{Token: numTok, Value: -value},
		}, nil
	case p.match(token.LPAREN):
		return p.tuplePattern()
	case p.match(token.LBRACE):
		return p.objectPattern()
	case p.check(token.IDENT), p.check(token.ERROR), p.check(token.RETURN):
		return p.identifierPattern()
	default:
		return nil, p.errorWithSuggestion(diagnostics.ErrP005, "expected pattern")
	}
}

// identifierPattern covers plain binders and the tagged constructors
// some/none/success/error, which take their inner pattern either as
// 'ctor <- pat' or 'ctor(pat)'. A bare 'none' matches without a
// payload; any other bare constructor name is an ordinary binder.
func (p *Parser) identifierPattern() (ast.Pattern, error) {
	nameTok := p.advance()
	name := nameTok.Lexeme

	switch name {
	case "some", "none", "success", "error":
		switch {
		case p.match(token.L_ARROW):
			inner, err := p.pattern()
			if err != nil {
				return nil, err
			}
			if name == "none" {
				inner = &ast.WildcardPattern{Token: nameTok}
			}
			return &ast.ArrowPattern{Token: nameTok, Constructor: name, Arg: inner}, nil
		case p.match(token.LPAREN):
			var inner ast.Pattern = &ast.WildcardPattern{Token: nameTok}
			if name != "none" {
				var err error
				inner, err = p.pattern()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.consume(token.RPAREN, "expected ')' after pattern argument"); err != nil {
				return nil, err
			}
			return &ast.ArrowPattern{Token: nameTok, Constructor: name, Arg: inner}, nil
		case name == "none":
			return &ast.ArrowPattern{Token: nameTok, Constructor: name, Arg: &ast.WildcardPattern{Token: nameTok}}, nil
		}
	}
	return &ast.IdentifierPattern{Token: nameTok, Name: name}, nil
}

func (p *Parser) tuplePattern() (ast.Pattern, error) {
	parenTok := p.previous()
	tp := &ast.TuplePattern{Token: parenTok}

	if !p.check(token.RPAREN) {
		for {
			elem, err := p.pattern()
			if err != nil {
				return nil, err
			}
			tp.Elements = append(tp.Elements, elem)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after tuple pattern"); err != nil {
		return nil, err
	}
	return tp, nil
}

func (p *Parser) objectPattern() (ast.Pattern, error) {
	braceTok := p.previous()
	op := &ast.ObjectPattern{Token: braceTok}
	p.skipNewlinesAndComments()

	if !p.check(token.RBRACE) {
		for {
			var key string
			if p.check(token.IDENT) || p.check(token.STRING) {
				key = p.advance().Lexeme
			} else {
				return nil, p.errorWithSuggestion(diagnostics.ErrP005, "expected field name in object pattern")
			}
			if _, err := p.consume(token.COLON, "expected ':' after field name"); err != nil {
				return nil, err
			}
			fieldPat, err := p.pattern()
			if err != nil {
				return nil, err
			}
			op.Fields = append(op.Fields, ast.ObjectPatternField{Key: key, Pattern: fieldPat})
			if !p.match(token.COMMA) {
				break
			}
			p.skipNewlinesAndComments()
		}
	}

	p.skipNewlinesAndComments()
	if _, err := p.consume(token.RBRACE, "expected '}' after object pattern"); err != nil {
		return nil, err
	}
	return op, nil
}
