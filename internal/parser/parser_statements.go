package parser

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostic"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/vocabulary"
)

// parseStatement dispatches on the leading token. A lone ';' is the empty
// statement and yields a nil Statement. semicolon controls whether a bare
// expression statement must be terminated; the for-loop iteration clause
// parses without one.
func (p *Parser) parseStatement(semicolon bool) (ast.Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch {
	case p.currentKeywordIs(vocabulary.DeclareVar):
		return p.parseVariableDeclaration()
	case p.currentTokenIs(lexer.TokenLBrace):
		return p.parseBlock()
	case p.currentTokenIs(lexer.TokenSemicolon):
		p.nextToken()
		return nil, nil
	case p.currentKeywordIs(vocabulary.ReturnValue):
		return p.parseReturnStatement()
	case p.currentKeywordIs(vocabulary.ConditionMain):
		return p.parseIfStatement()
	case p.currentKeywordIs(vocabulary.LoopCondition):
		return p.parseWhileStatement()
	case p.currentKeywordIs(vocabulary.ControlNext), p.currentKeywordIs(vocabulary.ControlEnd):
		return p.parseLoopControl()
	case p.currentKeywordIs(vocabulary.LoopThreePart):
		return p.parseForStatement()
	case p.currentKeywordIs(vocabulary.LoopIter):
		return p.parseForEachStatement()
	}

	return p.parseExpressionStatement(semicolon)
}

// parseBlock parses "{ statements }" or, without a brace, exactly one
// statement wrapped in a block.
func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.current.Span.Start

	if !p.currentTokenIs(lexer.TokenLBrace) {
		stmt, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		block := &ast.Block{Span: p.spanFrom(start)}
		if stmt != nil {
			block.Statements = []ast.Statement{stmt}
		}
		return block, nil
	}

	p.nextToken()
	block := &ast.Block{}
	for !p.currentTokenIs(lexer.TokenRBrace) {
		if p.currentTokenIs(lexer.TokenEOF) {
			return nil, p.errorf(diagnostic.CodeExpectedToken, "expected '}', got end of input")
		}

		stmt, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.nextToken()

	block.Span = p.spanFrom(start)
	return block, nil
}

// parseLoopBody parses a block with the loop counter raised, so break and
// continue are accepted inside it.
func (p *Parser) parseLoopBody() (*ast.Block, error) {
	p.loops++
	defer func() { p.loops-- }()

	return p.parseBlock()
}

func (p *Parser) parseExpressionStatement(semicolon bool) (ast.Statement, error) {
	start := p.current.Span.Start

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if semicolon {
		if _, err := p.expect(lexer.TokenSemicolon, "';'"); err != nil {
			return nil, err
		}
	}

	return &ast.ExpressionStatement{Span: p.spanFrom(start), Expression: expr}, nil
}

// parseReturnStatement parses "return;" and "return expr;".
func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	start := p.current.Span.Start
	p.nextToken()

	stmt := &ast.ReturnStatement{}
	if !p.currentTokenIs(lexer.TokenSemicolon) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(lexer.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

// parseIfStatement parses "if cond block" followed by any number of
// "elseif cond block" clauses and an optional "else block". The clauses
// are collected into one flat list on the returned node.
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	start := p.current.Span.Start
	p.nextToken()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	success, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Condition: cond, Success: success}

	for p.currentKeywordIs(vocabulary.ConditionAlt) {
		clauseStart := p.current.Span.Start
		p.nextToken()

		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Alternates = append(stmt.Alternates, &ast.ElseIfClause{
			Span:      p.spanFrom(clauseStart),
			Condition: cond,
			Body:      body,
		})
	}

	if p.currentKeywordIs(vocabulary.ConditionFail) {
		p.nextToken()
		failure, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Failure = failure
	}

	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

// parseWhileStatement parses "while cond block".
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	start := p.current.Span.Start
	p.nextToken()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStatement{Span: p.spanFrom(start), Condition: cond, Body: body}, nil
}

// parseLoopControl parses break and continue, which are only legal inside
// a loop body.
func (p *Parser) parseLoopControl() (ast.Statement, error) {
	tok := p.current
	if p.loops == 0 {
		return nil, p.errorf(diagnostic.CodeOutsideLoop, "%q must be in loop", tok.Value)
	}
	p.nextToken()

	if tok.Value == p.vocab.Spelling(vocabulary.ControlEnd) {
		return &ast.BreakStatement{Span: tok.Span}, nil
	}
	return &ast.ContinueStatement{Span: tok.Span}, nil
}

// parseForStatement parses "for ( [init] ; [cond] ; [iter] ) block".
// The init clause is a full statement and consumes its own ';' (a lone
// ';' is the empty statement). The iteration clause has no terminator.
func (p *Parser) parseForStatement() (ast.Statement, error) {
	start := p.current.Span.Start
	p.nextToken()

	if _, err := p.expect(lexer.TokenLParen, "'('"); err != nil {
		return nil, err
	}

	stmt := &ast.ForStatement{}

	init, err := p.parseStatement(true)
	if err != nil {
		return nil, err
	}
	stmt.Init = init

	if !p.currentTokenIs(lexer.TokenSemicolon) {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Condition = cond
	}
	if _, err := p.expect(lexer.TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	if !p.currentTokenIs(lexer.TokenRParen) {
		iter, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		stmt.Iteration = iter
	}
	if _, err := p.expect(lexer.TokenRParen, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	stmt.Span = p.spanFrom(start)

	return stmt, nil
}

// parseForEachStatement parses "forEach ( name in expr ) block".
func (p *Parser) parseForEachStatement() (ast.Statement, error) {
	start := p.current.Span.Start
	p.nextToken()

	if _, err := p.expect(lexer.TokenLParen, "'('"); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.TokenIdentifier, "variable name")
	if err != nil {
		return nil, err
	}
	if !p.currentKeywordIs(vocabulary.ValueIn) {
		return nil, p.errorf(diagnostic.CodeExpectedToken, "expected %q, got %s",
			p.vocab.Spelling(vocabulary.ValueIn), describe(p.current))
	}
	p.nextToken()

	container, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen, "')'"); err != nil {
		return nil, err
	}

	// forEach does not raise the loop counter; break and continue in its
	// body are legal only when an enclosing while or for provides one.
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForEachStatement{
		Span:      p.spanFrom(start),
		Variable:  identifier(name),
		Container: container,
		Body:      body,
	}, nil
}

func identifier(tok lexer.Token) *ast.Identifier {
	return &ast.Identifier{Span: tok.Span, Name: tok.Value}
}
