package parser

import (
	"github.com/susumulang/susumu/internal/ast"
	"github.com/susumulang/susumu/internal/token"
	"github.com/susumulang/susumu/internal/typesystem"
)

// ParseProgram parses a whole compilation unit. At each statement
// boundary an identifier followed by a balanced paren group and then '{'
// is a function definition; everything else contributes to the main
// expression, with multiple top-level expressions merged into a Block.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	p.registerFunctionNames()

	p.skipNewlinesAndComments()
	var mains []ast.Expression

	for !p.isAtEnd() {
		if p.check(token.IDENT) && p.peekAt(1).Type == token.LPAREN && p.isFunctionDef() {
			fn, err := p.functionDefinition()
			if err != nil {
				return nil, err
			}
			// Redefinition silently overwrites: last definition wins.
			program.Functions = append(program.Functions, fn)
		} else {
			expr, err := p.statementOrExpression()
			if err != nil {
				return nil, err
			}
			mains = append(mains, expr)
		}
		p.skipNewlinesAndComments()
	}

	switch len(mains) {
	case 0:
	case 1:
		program.Main = mains[0]
	default:
		program.Main = &ast.Block{Token: mains[0].GetToken(), Expressions: mains}
	}
	return program, nil
}

// isFunctionDef looks ahead past a balanced paren group, and an
// optional return-type clause, for a '{'. Called with the current token
// an identifier and the next a '('.
func (p *Parser) isFunctionDef() bool {
	lookahead := p.pos + 2
	parenCount := 1
	for lookahead < len(p.tokens) && parenCount > 0 {
		switch p.tokens[lookahead].Type {
		case token.LPAREN:
			parenCount++
		case token.RPAREN:
			parenCount--
		case token.EOF:
			return false
		}
		lookahead++
	}
	lookahead = p.skipReturnTypeTokens(lookahead)
	return lookahead < len(p.tokens) && p.tokens[lookahead].Type == token.LBRACE
}

// skipReturnTypeTokens advances past ': type (/ type)*' starting at
// pos, where a type is an identifier with optional '<...>' arguments.
// Returns pos unchanged when no ':' is present.
func (p *Parser) skipReturnTypeTokens(pos int) int {
	if pos >= len(p.tokens) || p.tokens[pos].Type != token.COLON {
		return pos
	}
	pos++
	for pos < len(p.tokens) {
		switch p.tokens[pos].Type {
		case token.IDENT, token.LT, token.GT, token.COMMA, token.SLASH:
			pos++
		default:
			return pos
		}
	}
	return pos
}

// registerFunctionNames pre-scans the token stream for definition shapes
// so that chains referencing a function defined later in the file do not
// produce spurious unknown-function warnings.
func (p *Parser) registerFunctionNames() {
	for i := 0; i+1 < len(p.tokens); i++ {
		if p.tokens[i].Type != token.IDENT || p.tokens[i+1].Type != token.LPAREN {
			continue
		}
		lookahead := i + 2
		parenCount := 1
		for lookahead < len(p.tokens) && parenCount > 0 {
			switch p.tokens[lookahead].Type {
			case token.LPAREN:
				parenCount++
			case token.RPAREN:
				parenCount--
			}
			lookahead++
		}
		lookahead = p.skipReturnTypeTokens(lookahead)
		if lookahead < len(p.tokens) && p.tokens[lookahead].Type == token.LBRACE {
			p.typeEnv.DefineFunction(p.tokens[i].Lexeme, typesystem.FuncType{Return: typesystem.Unknown})
		}
	}
}

func (p *Parser) statementOrExpression() (ast.Expression, error) {
	if p.check(token.MUT) && p.peekAt(1).Type == token.IDENT && p.peekAt(2).Type == token.ASSIGN {
		return p.assignmentStatement()
	}
	if p.check(token.IDENT) {
		switch {
		case p.peekAt(1).Type == token.ASSIGN:
			return p.assignmentStatement()
		case p.peekAt(1).Type == token.DOT && p.peekAt(2).Type == token.IDENT && p.peekAt(3).Type == token.ASSIGN:
			return p.objectMutation()
		}
	}
	return p.parseExpression()
}

func (p *Parser) assignmentStatement() (ast.Expression, error) {
	mutable := p.match(token.MUT)

	nameTok, err := p.consume(token.IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.ASSIGN, "expected '=' after variable name"); err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	p.typeEnv.DefineVariable(nameTok.Lexeme, typesystem.Infer(value, p.typeEnv))
	return &ast.Assignment{Token: nameTok, Name: nameTok.Lexeme, Value: value, Mutable: mutable}, nil
}

func (p *Parser) objectMutation() (ast.Expression, error) {
	objTok := p.advance() // object name
	p.advance()           // '.'
	fieldTok := p.advance()
	p.advance() // '='
	p.skipNewlinesAndComments()

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ObjectMutation{Token: objTok, Object: objTok.Lexeme, Field: fieldTok.Lexeme, Value: value}, nil
}

func (p *Parser) functionDefinition() (*ast.FunctionDef, error) {
	nameTok, err := p.consume(token.IDENT, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []*ast.Param
	if !p.check(token.RPAREN) {
		for {
			paramTok, err := p.consume(token.IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			param := &ast.Param{Token: paramTok, Name: paramTok.Lexeme}
			if p.match(token.COLON) {
				annotation, err := p.typeAnnotation()
				if err != nil {
					return nil, err
				}
				param.Annotation = annotation
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	var returnType *ast.ReturnType
	if p.match(token.COLON) {
		returnType, err = p.returnType()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.LBRACE, "expected '{' before function body"); err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()

	body, err := p.braceBlockContent()
	if err != nil {
		return nil, err
	}
	p.skipNewlinesAndComments()
	if _, err := p.consume(token.RBRACE, "expected '}' after function body"); err != nil {
		return nil, err
	}

	fn := &ast.FunctionDef{
		Token:      nameTok,
		Name:       nameTok.Lexeme,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
	p.registerFunctionType(fn)
	return fn, nil
}

func (p *Parser) registerFunctionType(fn *ast.FunctionDef) {
	paramTypes := make([]typesystem.Type, len(fn.Params))
	for i, param := range fn.Params {
		paramTypes[i] = typesystem.FromAnnotation(param.Annotation)
	}
	ret := typesystem.Type(typesystem.Unknown)
	if fn.ReturnType != nil {
		ret = typesystem.FromAnnotation(fn.ReturnType.Success)
	}
	p.typeEnv.DefineFunction(fn.Name, typesystem.FuncType{Params: paramTypes, Return: ret})
}

func (p *Parser) typeAnnotation() (*ast.TypeAnnotation, error) {
	nameTok, err := p.consume(token.IDENT, "expected type name")
	if err != nil {
		return nil, err
	}
	annotation := &ast.TypeAnnotation{Token: nameTok, Name: nameTok.Lexeme}
	if p.match(token.LT) {
		for {
			arg, err := p.typeAnnotation()
			if err != nil {
				return nil, err
			}
			annotation.Args = append(annotation.Args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.consume(token.GT, "expected '>' after type arguments"); err != nil {
			return nil, err
		}
	}
	return annotation, nil
}

func (p *Parser) returnType() (*ast.ReturnType, error) {
	success, err := p.typeAnnotation()
	if err != nil {
		return nil, err
	}
	rt := &ast.ReturnType{Success: success}
	for p.check(token.SLASH) {
		p.advance()
		errType, err := p.typeAnnotation()
		if err != nil {
			return nil, err
		}
		rt.Errors = append(rt.Errors, errType)
	}
	return rt, nil
}

// braceBlockContent parses expressions up to (not including) the closing
// brace. A single expression stays bare; several become a Block.
func (p *Parser) braceBlockContent() (ast.Expression, error) {
	startTok := p.peek()
	var expressions []ast.Expression
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		expr, err := p.statementOrExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)
		p.skipNewlinesAndComments()
	}
	switch len(expressions) {
	case 0:
		return &ast.NullLiteral{Token: startTok}, nil
	case 1:
		return expressions[0], nil
	default:
		return &ast.Block{Token: startTok, Expressions: expressions}, nil
	}
}
