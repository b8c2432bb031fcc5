package parser

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostic"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/types"
)

// parseFunctionDeclaration parses
//
//	func name ( [name : type {, name : type}] ) -> type block
func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	start := p.current.Span.Start
	p.nextToken()

	name, err := p.expect(lexer.TokenIdentifier, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLParen, "'('"); err != nil {
		return nil, err
	}

	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokenArrow, "'->'"); err != nil {
		return nil, err
	}
	returnType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Span:       p.spanFrom(start),
		Name:       identifier(name),
		Parameters: params,
		ReturnType: returnType,
		Body:       body,
	}, nil
}

// parseParameters parses the parameter list after '(' up to and
// including ')'. Duplicate names are kept.
func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	var params []*ast.Parameter

	for !p.currentTokenIs(lexer.TokenRParen) {
		if !p.currentTokenIs(lexer.TokenIdentifier) {
			return nil, p.errorf(diagnostic.CodeExpectedToken, "expected parameter name or ')', got %s", describe(p.current))
		}
		name := p.current
		p.nextToken()

		if _, err := p.expect(lexer.TokenColon, "':'"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Parameter{
			Span: p.spanFrom(name.Span.Start),
			Name: identifier(name),
			Type: typ,
		})

		if !p.currentTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}

	if _, err := p.expect(lexer.TokenRParen, "')'"); err != nil {
		return nil, err
	}

	return params, nil
}

// parseVariableDeclaration parses "var name : type [= expr] ;".
func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	start := p.current.Span.Start
	p.nextToken()

	name, err := p.expect(lexer.TokenIdentifier, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon, "':'"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	decl := &ast.VariableDeclaration{Name: identifier(name), Type: typ}
	if p.currentTokenIs(lexer.TokenAssign) {
		p.nextToken()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Initializer = value
	}

	if _, err := p.expect(lexer.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	decl.Span = p.spanFrom(start)
	return decl, nil
}

// parseType parses a type annotation: a type name, or "[type]" for an
// array of any nesting depth.
func (p *Parser) parseType() (types.Type, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.current.Type {
	case lexer.TokenTypeName:
		kind, ok := p.vocab.LookupType(p.current.Value)
		if !ok {
			return nil, p.errorf(diagnostic.CodeExpectedType, "unknown type %q", p.current.Value)
		}
		p.nextToken()
		return types.NewBasic(kind), nil

	case lexer.TokenLBracket:
		p.nextToken()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRBracket, "']'"); err != nil {
			return nil, err
		}
		return types.NewArray(elem), nil
	}

	return nil, p.errorf(diagnostic.CodeExpectedType, "expected type, got %s", describe(p.current))
}
