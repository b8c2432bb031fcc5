// Package parser implements the Vela recursive descent parser.
//
// Statements and declarations are parsed by recursive descent; expressions
// use precedence climbing over a fixed table of left-associative levels.
// Parsing is fail-fast: the first syntax error aborts the pass and is
// returned as a *diagnostic.Error.
package parser

import (
	"fmt"
	"strconv"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostic"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/types"
	"github.com/vela-lang/vela/internal/vocabulary"
)

// DefaultMaxDepth bounds the nesting of statements, expressions and types.
const DefaultMaxDepth = 256

// Options configures a parse.
type Options struct {
	// MaxDepth is the deepest nesting accepted before the parse fails with
	// CodeNestingTooDeep. Zero selects DefaultMaxDepth; a negative value
	// disables the limit.
	MaxDepth int
}

// Parser represents the recursive descent parser
type Parser struct {
	tokens  []lexer.Token
	index   int
	current lexer.Token
	prevEnd position.Position // end of the last consumed token

	vocab *vocabulary.Vocabulary

	// Parser state
	loops    int // enclosing while/for/forEach bodies
	depth    int
	maxDepth int
}

// New creates a parser over tokens. A missing trailing TokenEOF is
// supplied. A nil vocab selects vocabulary.Default().
func New(tokens []lexer.Token, vocab *vocabulary.Vocabulary, opts Options) *Parser {
	if vocab == nil {
		vocab = vocabulary.Default()
	}

	toks := make([]lexer.Token, len(tokens), len(tokens)+1)
	copy(toks, tokens)
	if len(toks) == 0 || toks[len(toks)-1].Type != lexer.TokenEOF {
		end := position.Start()
		if len(toks) > 0 {
			end = toks[len(toks)-1].Span.End
		}
		toks = append(toks, lexer.Token{Type: lexer.TokenEOF, Span: position.NewSpan(end, end)})
	}

	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Parser{
		tokens:   toks,
		current:  toks[0],
		prevEnd:  toks[0].Span.Start,
		vocab:    vocab,
		maxDepth: maxDepth,
	}
}

// Parse parses a token sequence into a program.
func Parse(tokens []lexer.Token, vocab *vocabulary.Vocabulary, opts Options) (*ast.Program, error) {
	return New(tokens, vocab, opts).ParseProgram()
}

// ParseSource lexes and parses source. The error is either a lexical or
// a syntactic *diagnostic.Error.
func ParseSource(source string, vocab *vocabulary.Vocabulary, opts Options) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source, vocab)
	if err != nil {
		return nil, err
	}

	return Parse(tokens, vocab, opts)
}

// ParseType parses a token sequence holding a single type annotation.
func ParseType(tokens []lexer.Token, vocab *vocabulary.Vocabulary) (types.Type, error) {
	p := New(tokens, vocab, Options{})

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return t, nil
}

// ParseProgram parses a sequence of function declarations up to the end
// of input. Input holding only TokenEOF yields an empty program. Tokens
// left after the last function are reported as an unexpected token where
// a function declaration must start.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{
		Span: position.NewSpan(p.tokens[0].Span.Start, p.tokens[len(p.tokens)-1].Span.End),
	}

	for !p.currentTokenIs(lexer.TokenEOF) {
		if !p.currentKeywordIs(vocabulary.DeclareFunc) {
			return nil, p.errorf(diagnostic.CodeUnexpectedToken,
				"unexpected %s, expected function declaration", describe(p.current))
		}

		fn, err := p.parseFunctionDeclaration()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}

	return program, nil
}

// nextToken advances the parser to the next token. At TokenEOF it stays put.
func (p *Parser) nextToken() {
	if p.index >= len(p.tokens)-1 {
		return
	}
	p.prevEnd = p.current.Span.End
	p.index++
	p.current = p.tokens[p.index]
}

// peek returns the token after the current one
func (p *Parser) peek() lexer.Token {
	if p.index+1 < len(p.tokens) {
		return p.tokens[p.index+1]
	}

	return p.tokens[len(p.tokens)-1]
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

// currentKeywordIs checks if the current token spells the given keyword
func (p *Parser) currentKeywordIs(kw vocabulary.Keyword) bool {
	return p.current.Type == lexer.TokenKeyword && p.current.Value == p.vocab.Spelling(kw)
}

// expect consumes a token of the given type or fails naming what was
// expected.
func (p *Parser) expect(tokenType lexer.TokenType, what string) (lexer.Token, error) {
	if !p.currentTokenIs(tokenType) {
		return lexer.Token{}, p.errorf(diagnostic.CodeExpectedToken, "expected %s, got %s", what, describe(p.current))
	}

	tok := p.current
	p.nextToken()
	return tok, nil
}

func (p *Parser) expectEnd() error {
	if !p.currentTokenIs(lexer.TokenEOF) {
		return p.errorf(diagnostic.CodeExpectedEndOfFile, "expected end of input, got %s", describe(p.current))
	}

	return nil
}

// errorf builds a syntax error spanning the current token.
func (p *Parser) errorf(code diagnostic.Code, format string, args ...any) error {
	return diagnostic.Syntax(code, p.current.Span, format, args...)
}

// enter records one level of nesting. Every successful enter must be
// paired with a deferred leave.
func (p *Parser) enter() error {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return p.errorf(diagnostic.CodeNestingTooDeep, "maximum nesting depth exceeded (%d)", p.maxDepth)
	}
	p.depth++

	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start position.Position) position.Span {
	return position.NewSpan(start, p.prevEnd)
}

// describe names a token for error messages.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenString:
		return "string literal"
	case lexer.TokenChar:
		return "char literal"
	case lexer.TokenInteger, lexer.TokenFloat, lexer.TokenIdentifier, lexer.TokenKeyword, lexer.TokenTypeName:
		return strconv.Quote(tok.Value)
	default:
		return fmt.Sprintf("'%s'", tok.Type.Symbol())
	}
}
