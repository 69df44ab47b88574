package parser

import (
	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/diagnostics"
	"github.com/susumulang/susumu/internal/token"
	"github.com/susumulang/susumu/internal/typesystem"
)

func (p *Parser) parseExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.annotated()
}

func (p *Parser) annotated() (ast.Expression, error) {
	if p.match(token.AT) {
		atTok := p.previous()
		annotation, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		p.skipNewlinesAndComments()
		expr, err := p.conditional()
		if err != nil {
			return nil, err
		}
		return &ast.Annotated{Token: atTok, Annotation: annotation, Expression: expr}, nil
	}
	return p.conditional()
}

// conditional handles the trailing form: expr i name { ... } ei name
// { ... } e { ... }, where the chain before 'i' is the condition and
// every else-if branch re-judges the same condition value.
func (p *Parser) conditional() (ast.Expression, error) {
	expr, err := p.arrowChain()
	if err != nil {
		return nil, err
	}

	if !p.check(token.COND_IF) {
		return expr, nil
	}
	iTok := p.advance()

	kind, name, err := p.conditionName("i")
	if err != nil {
		return nil, err
	}
	then, err := p.conditionBody("condition")
	if err != nil {
		return nil, err
	}

	cond := &ast.Conditional{Token: iTok, Kind: kind, Name: name, Condition: expr, Then: then}
	if err := p.elseBranches(cond, expr); err != nil {
		return nil, err
	}
	return cond, nil
}

// elseBranches parses ei*/e? into cond. baseCondition is reused by each
// else-if; nil marks the placeholder filled by the chain evaluator.
// Branch keywords may start a new line after the closing brace.
func (p *Parser) elseBranches(cond *ast.Conditional, baseCondition ast.Expression) error {
	for p.peekPastNewlines() == token.COND_ELSE_IF {
		p.skipNewlinesAndComments()
		p.advance()
		kind, name, err := p.conditionName("ei")
		if err != nil {
			return err
		}
		body, err := p.conditionBody("else-if condition")
		if err != nil {
			return err
		}
		cond.ElseIfs = append(cond.ElseIfs, ast.ElseIfBranch{
			Kind:      kind,
			Name:      name,
			Condition: baseCondition,
			Body:      body,
		})
	}

	if p.peekPastNewlines() == token.COND_ELSE {
		p.skipNewlinesAndComments()
		p.advance()
		body, err := p.conditionBody("'e'")
		if err != nil {
			return err
		}
		cond.Else = body
	}
	return nil
}

func (p *Parser) conditionName(keyword string) (ast.ConditionKind, string, error) {
	if !p.check(token.IDENT) {
		return 0, "", p.errorWithSuggestion(diagnostics.ErrP004, "expected condition name after '"+keyword+"'")
	}
	name := p.advance().Lexeme
	if name == "success" {
		return ast.CondSuccess, name, nil
	}
	return ast.CondCustom, name, nil
}

func (p *Parser) conditionBody(after string) (ast.Expression, error) {
	if _, err := p.consume(token.LBRACE, "expected '{' after "+after); err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()
	body, err := p.braceBlockContent()
	if err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()
	if _, err := p.consume(token.RBRACE, "expected '}' after branch"); err != nil {
		return nil, err
	}
	return body, nil
}

// arrowChain parses operand (-> | <-) operand sequences. Chains may span
// lines: a newline run followed by an arrow continues the chain. A chain
// with zero arrows degenerates to its single operand.
func (p *Parser) arrowChain() (ast.Expression, error) {
	startTok := p.peek()
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}

	expressions := []ast.Expression{first}
	var directions []ast.Direction

	for {
		next := p.peekPastNewlines()
		if next != token.ARROW && next != token.L_ARROW {
			break
		}
		p.skipNewlinesAndComments()

		direction := ast.Forward
		if p.advance().Type == token.L_ARROW {
			direction = ast.Backward
		}
		p.skipNewlinesAndComments()

		operand, err := p.postfix()
		if err != nil {
			return nil, err
		}
		directions = append(directions, direction)
		expressions = append(expressions, operand)
	}

	if len(directions) == 0 {
		return first, nil
	}

	chain := &ast.ArrowChain{Token: startTok, Expressions: expressions, Directions: directions}
	_, warnings := typesystem.InferChain(chain, p.typeEnv)
	p.addWarnings(warnings)
	return chain, nil
}

func (p *Parser) postfix() (ast.Expression, error) {
	expr, err := p.binaryOp()
	if err != nil {
		return nil, err
	}
	for p.match(token.DOT) {
		dotTok := p.previous()
		fieldTok, err := p.consume(token.IDENT, "expected property name after '.'")
		if err != nil {
			return nil, err
		}
		expr = &ast.PropertyAccess{Token: dotTok, Object: expr, Field: fieldTok.Lexeme}
	}
	return expr, nil
}

var binaryOperators = map[token.TokenType]string{
	token.PLUS:     "+",
	token.MINUS:    "-",
	token.ASTERISK: "*",
	token.SLASH:    "/",
	token.EQ:       "==",
	token.NOT_EQ:   "!=",
	token.LT:       "<",
	token.GT:       ">",
	token.LT_EQ:    "<=",
	token.GT_EQ:    ">=",
}

func (p *Parser) binaryOp() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryOperators[p.peek().Type]
		if !ok {
			break
		}
		opTok := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Token: opTok, Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.MINUS) {
		minusTok := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		// -x is sugar for 0 - x.
		return &ast.BinaryOp{
			Token:    minusTok,
			Left:     &ast.NumberLiteral{Token: minusTok, Value: 0},
			Operator: "-",
			Right:    right,
		}, nil
	}
	if p.match(token.PLUS) {
		return p.unary()
	}
	return p.composite()
}

func (p *Parser) composite() (ast.Expression, error) {
	switch {
	case p.check(token.MATCH):
		return p.matchExpression()
	case p.check(token.FOREACH):
		return p.forEach()
	case p.check(token.WHILE):
		return p.while()
	default:
		return p.flowControl()
	}
}

func (p *Parser) forEach() (ast.Expression, error) {
	feTok := p.advance()
	varTok, err := p.consume(token.IDENT, "expected variable name after 'fe'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.IN, "expected 'in' after foreach variable"); err != nil {
		return nil, err
	}
	iterable, err := p.primary()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBRACE, "expected '{' after iterable"); err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()
	body, err := p.braceBlockContent()
	if err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()
	if _, err := p.consume(token.RBRACE, "expected '}' after foreach body"); err != nil {
		return nil, err
	}
	return &ast.ForEach{Token: feTok, Variable: varTok.Lexeme, Iterable: iterable, Body: body}, nil
}

func (p *Parser) while() (ast.Expression, error) {
	whileTok := p.advance()
	condition, err := p.binaryOp()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBRACE, "expected '{' after while condition"); err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()
	body, err := p.braceBlockContent()
	if err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()
	if _, err := p.consume(token.RBRACE, "expected '}' after while body"); err != nil {
		return nil, err
	}
	return &ast.While{Token: whileTok, Condition: condition, Body: body}, nil
}

// flowControl parses return/error. The prefix form 'return <- expr'
// carries its value; a bare 'return' or 'error' is a chain tail that
// adopts the running value of the chain it terminates.
func (p *Parser) flowControl() (ast.Expression, error) {
	if p.match(token.RETURN) {
		returnTok := p.previous()
		if !p.match(token.L_ARROW) {
			return &ast.ReturnExpression{Token: returnTok}, nil
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnExpression{Token: returnTok, Value: value}, nil
	}
	if p.match(token.ERROR) {
		errorTok := p.previous()
		if !p.match(token.L_ARROW) {
			return &ast.ErrorExpression{Token: errorTok}, nil
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ErrorExpression{Token: errorTok, Value: value}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.NUMBER):
		tok := p.previous()
		value, _ := tok.Literal.(float64)
		return &ast.NumberLiteral{Token: tok, Value: value}, nil
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.StringLiteral{Token: tok, Value: tok.Lexeme}, nil
	case p.match(token.TRUE):
		return &ast.BooleanLiteral{Token: p.previous(), Value: true}, nil
	case p.match(token.FALSE):
		return &ast.BooleanLiteral{Token: p.previous(), Value: false}, nil
	case p.match(token.NULL):
		return &ast.NullLiteral{Token: p.previous()}, nil
	case p.match(token.IDENT):
		return p.identifierOrCall()
	case p.match(token.LPAREN):
		return p.tupleOrGroup()
	case p.match(token.LBRACE):
		return p.objectOrBlock()
	case p.match(token.LBRACKET):
		return p.arrayLiteral()
	case p.check(token.COND_IF):
		return p.standaloneConditional()
	default:
		return nil, p.errorWithSuggestion(diagnostics.ErrP001, "unexpected token")
	}
}

func (p *Parser) identifierOrCall() (ast.Expression, error) {
	nameTok := p.previous()
	if !p.match(token.LPAREN) {
		return &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}, nil
	}

	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after function arguments"); err != nil {
		return nil, err
	}

	// Tagged constructors have dedicated nodes; everything else is a call.
	switch nameTok.Lexeme {
	case "some":
		if len(args) == 1 {
			return &ast.MaybeExpression{Token: nameTok, IsSome: true, Value: args[0]}, nil
		}
	case "none":
		if len(args) == 0 {
			return &ast.MaybeExpression{Token: nameTok, IsSome: false}, nil
		}
	case "success":
		if len(args) == 1 {
			return &ast.ResultExpression{Token: nameTok, IsSuccess: true, Value: args[0]}, nil
		}
	}
	return &ast.CallExpression{Token: nameTok, Name: nameTok.Lexeme, Args: args}, nil
}

func (p *Parser) tupleOrGroup() (ast.Expression, error) {
	parenTok := p.previous()
	if p.match(token.RPAREN) {
		return &ast.TupleLiteral{Token: parenTok}, nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.match(token.COMMA) {
		if _, err := p.consume(token.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return first, nil
	}

	elements := []ast.Expression{first}
	if !p.check(token.RPAREN) {
		for {
			elem, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after tuple elements"); err != nil {
		return nil, err
	}
	return &ast.TupleLiteral{Token: parenTok, Elements: elements}, nil
}

// objectOrBlock disambiguates '{' by lookahead: an identifier or string
// followed by ':' (skipping newlines) is an object literal.
func (p *Parser) objectOrBlock() (ast.Expression, error) {
	braceTok := p.previous()
	if p.isObjectLiteral() {
		return p.objectLiteral(braceTok)
	}

	p.skipNewlinesAndComments()
	var expressions []ast.Expression
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		expr, err := p.statementOrExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)
		p.skipNewlinesAndComments()
	}
	if _, err := p.consume(token.RBRACE, "expected '}' after block expression"); err != nil {
		return nil, err
	}
	if len(expressions) == 1 {
		return expressions[0], nil
	}
	return &ast.Block{Token: braceTok, Expressions: expressions}, nil
}

func (p *Parser) isObjectLiteral() bool {
	pos := p.pos
	skip := func() {
		for pos < len(p.tokens) && (p.tokens[pos].Type == token.NEWLINE || p.tokens[pos].Type == token.COMMENT) {
			pos++
		}
	}

	skip()
	if pos >= len(p.tokens) {
		return false
	}
	if p.tokens[pos].Type == token.RBRACE {
		return true // empty object {}
	}
	if p.tokens[pos].Type != token.IDENT && p.tokens[pos].Type != token.STRING {
		return false
	}
	pos++
	skip()
	return pos < len(p.tokens) && p.tokens[pos].Type == token.COLON
}

func (p *Parser) objectLiteral(braceTok token.Token) (ast.Expression, error) {
	obj := &ast.ObjectLiteral{Token: braceTok}
	p.skipNewlinesAndComments()

	if !p.check(token.RBRACE) {
		for {
			var key string
			if p.check(token.IDENT) || p.check(token.STRING) {
				key = p.advance().Lexeme
			} else {
				return nil, p.errorWithSuggestion(diagnostics.ErrP002, "expected property name")
			}
			if _, err := p.consume(token.COLON, "expected ':' after property name"); err != nil {
				return nil, err
			}
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, ast.ObjectField{Key: key, Value: value})
			if !p.match(token.COMMA) {
				break
			}
			p.skipNewlinesAndComments()
		}
	}

	p.skipNewlinesAndComments()
	if _, err := p.consume(token.RBRACE, "expected '}' after object literal"); err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *Parser) arrayLiteral() (ast.Expression, error) {
	bracketTok := p.previous()
	arr := &ast.ArrayLiteral{Token: bracketTok}
	p.skipNewlinesAndComments()

	if !p.check(token.RBRACKET) {
		for {
			elem, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			arr.Elements = append(arr.Elements, elem)
			if !p.match(token.COMMA) {
				break
			}
			p.skipNewlinesAndComments()
		}
	}

	p.skipNewlinesAndComments()
	if _, err := p.consume(token.RBRACKET, "expected ']' after array elements"); err != nil {
		return nil, err
	}
	return arr, nil
}

// standaloneConditional parses 'i name { ... }' with no leading
// expression. The condition is left nil as a placeholder for the arrow
// chain evaluator to fill with the running value.
func (p *Parser) standaloneConditional() (ast.Expression, error) {
	iTok := p.advance()
	kind, name, err := p.conditionName("i")
	if err != nil {
		return nil, err
	}
	then, err := p.conditionBody("condition")
	if err != nil {
		return nil, err
	}
	cond := &ast.Conditional{Token: iTok, Kind: kind, Name: name, Then: then}
	if err := p.elseBranches(cond, nil); err != nil {
		return nil, err
	}
	return cond, nil
}
