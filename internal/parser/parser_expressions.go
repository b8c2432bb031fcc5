package parser

import (
	"strconv"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostic"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/vocabulary"
)

// binaryLevels lists the binary operator levels from lowest to highest
// precedence. Every level is left-associative.
var binaryLevels = []map[lexer.TokenType]ast.Operator{
	// equality
	{lexer.TokenEq: ast.OpEq, lexer.TokenNe: ast.OpNe},
	// logical
	{lexer.TokenAnd: ast.OpAnd, lexer.TokenOr: ast.OpOr},
	// comparison
	{lexer.TokenLt: ast.OpLt, lexer.TokenGt: ast.OpGt, lexer.TokenLe: ast.OpLe, lexer.TokenGe: ast.OpGe},
	// arithmetic
	{lexer.TokenPlus: ast.OpAdd, lexer.TokenMinus: ast.OpSub},
	// bitwise
	{lexer.TokenAmpersand: ast.OpBitAnd, lexer.TokenPipe: ast.OpBitOr, lexer.TokenCaret: ast.OpBitXor},
	// term
	{lexer.TokenMul: ast.OpMul, lexer.TokenDiv: ast.OpDiv},
}

// prefixOperators maps the prefix token actually consumed to its operator.
var prefixOperators = map[lexer.TokenType]ast.Operator{
	lexer.TokenMinus:       ast.OpNeg,
	lexer.TokenTilde:       ast.OpBitNot,
	lexer.TokenExclamation: ast.OpNot,
}

// parseExpression parses an expression at the lowest precedence level.
func (p *Parser) parseExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.parseBinary(0)
}

// parseBinary parses a left-associative chain at the given level: one
// operand from the level above, then any number of (operator, operand)
// pairs, each folded onto the result so far.
func (p *Parser) parseBinary(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryLevels[level][p.current.Type]
		if !ok {
			return left, nil
		}
		p.nextToken()

		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Span:     left.GetSpan().Union(right.GetSpan()),
			Left:     left,
			Operator: op,
			Right:    right,
		}
	}
}

// parseUnary parses at most one prefix operator applied to a call or atom.
func (p *Parser) parseUnary() (ast.Expression, error) {
	op, ok := prefixOperators[p.current.Type]
	if !ok {
		return p.parseCall()
	}

	start := p.current.Span.Start
	p.nextToken()

	operand, err := p.parseCall()
	if err != nil {
		return nil, err
	}

	return &ast.UnaryExpression{
		Span:     position.NewSpan(start, operand.GetSpan().End),
		Operator: op,
		Operand:  operand,
	}, nil
}

// parseCall parses an atom optionally followed by one argument list.
func (p *Parser) parseCall() (ast.Expression, error) {
	callee, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if !p.currentTokenIs(lexer.TokenLParen) {
		return callee, nil
	}
	p.nextToken()

	call := &ast.CallExpression{Callee: callee}
	for !p.currentTokenIs(lexer.TokenRParen) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, arg)

		if !p.currentTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(lexer.TokenRParen, "')'"); err != nil {
		return nil, err
	}

	call.Span = p.spanFrom(callee.GetSpan().Start)
	return call, nil
}

// parseAtom parses literals, variable references, assignments,
// parenthesized expressions and array literals.
func (p *Parser) parseAtom() (ast.Expression, error) {
	tok := p.current

	switch tok.Type {
	case lexer.TokenInteger:
		value, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf(diagnostic.CodeInvalidLiteral, "integer literal %s out of range", tok.Value)
		}
		p.nextToken()
		return &ast.IntegerLiteral{Span: tok.Span, Raw: tok.Value, Value: value}, nil

	case lexer.TokenFloat:
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf(diagnostic.CodeInvalidLiteral, "invalid float literal %s", tok.Value)
		}
		p.nextToken()
		return &ast.FloatLiteral{Span: tok.Span, Raw: tok.Value, Value: value}, nil

	case lexer.TokenString:
		p.nextToken()
		return &ast.StringLiteral{Span: tok.Span, Value: tok.Value}, nil

	case lexer.TokenChar:
		r := []rune(tok.Value)
		if len(r) != 1 {
			return nil, p.errorf(diagnostic.CodeInvalidLiteral, "invalid char literal")
		}
		p.nextToken()
		return &ast.CharLiteral{Span: tok.Span, Value: r[0]}, nil

	case lexer.TokenLParen:
		p.nextToken()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TokenIdentifier:
		if p.peek().Type == lexer.TokenAssign {
			return p.parseAssignment()
		}
		p.nextToken()
		return identifier(tok), nil

	case lexer.TokenLBracket:
		return p.parseArrayLiteral()

	case lexer.TokenKeyword:
		switch {
		case p.currentKeywordIs(vocabulary.BoolTrue):
			p.nextToken()
			return &ast.BoolLiteral{Span: tok.Span, Value: true}, nil
		case p.currentKeywordIs(vocabulary.BoolFalse):
			p.nextToken()
			return &ast.BoolLiteral{Span: tok.Span, Value: false}, nil
		}

	case lexer.TokenEOF:
		return nil, p.errorf(diagnostic.CodeUnexpectedEOF, "unexpected end of input")
	}

	return nil, p.errorf(diagnostic.CodeUnexpectedToken, "unexpected %s", describe(tok))
}

// parseAssignment parses "name = expr". The value extends as far as a
// full expression, so "a = b = 1" assigns right to left.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	name := identifier(p.current)
	p.nextToken() // name
	p.nextToken() // '='

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Assignment{
		Span:  position.NewSpan(name.Span.Start, value.GetSpan().End),
		Name:  name,
		Value: value,
	}, nil
}

// parseArrayLiteral parses "[e1, e2, ...]" with at least one element.
func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	start := p.current.Span.Start
	p.nextToken()

	array := &ast.ArrayLiteral{}
	for {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		array.Elements = append(array.Elements, elem)

		if !p.currentTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(lexer.TokenRBracket, "']'"); err != nil {
		return nil, err
	}

	array.Span = p.spanFrom(start)
	return array, nil
}
