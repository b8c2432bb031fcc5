// Package lexer implements the Vela lexical analyzer. It turns source text
// into a token sequence terminated by a single TokenEOF, stopping at the
// first lexical error.
package lexer

import (
	"strings"

	"github.com/vela-lang/vela/internal/diagnostic"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/vocabulary"
)

// eof is the character reported once the input is exhausted. No source
// rune can equal it.
const eof rune = -1

// Lexer represents the lexical analyzer state
type Lexer struct {
	input []rune
	vocab *vocabulary.Vocabulary
	pos   position.Position // position of ch
	ch    rune              // current char under examination
}

// New creates a new lexer over input, classifying words with vocab.
// A nil vocab selects vocabulary.Default().
func New(input string, vocab *vocabulary.Vocabulary) *Lexer {
	if vocab == nil {
		vocab = vocabulary.Default()
	}
	l := &Lexer{
		input: []rune(input),
		vocab: vocab,
		pos:   position.Start(),
	}
	l.ch = l.at(0)
	return l
}

// Tokenize lexes the whole of source. On failure it returns no tokens
// and a *diagnostic.Error.
func Tokenize(source string, vocab *vocabulary.Vocabulary) ([]Token, error) {
	return New(source, vocab).All()
}

// All lexes the remaining input up to and including TokenEOF.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) at(offset int) rune {
	if offset >= len(l.input) {
		return eof
	}
	return l.input[offset]
}

// advance moves to the next character. Past the end it keeps yielding eof.
func (l *Lexer) advance() {
	if l.ch == eof {
		return
	}
	l.pos = l.pos.Advance(l.ch)
	l.ch = l.at(l.pos.Offset)
}

func (l *Lexer) spanFrom(start position.Position) position.Span {
	return position.NewSpan(start, l.pos)
}

// NextToken skips whitespace and comments and returns the next token.
func (l *Lexer) NextToken() (Token, error) {
	for {
		start := l.pos

		switch {
		case l.ch == eof:
			return Token{Type: TokenEOF, Span: l.spanFrom(start)}, nil
		case isOperatorStart(l.ch):
			return l.readOperator(), nil
		case vocabulary.IsDigit(l.ch) || l.ch == '.':
			return l.readNumber(), nil
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.advance()
			continue
		case l.ch == '/':
			l.advance()
			switch l.ch {
			case '/':
				l.skipLineComment()
				continue
			case '*':
				if err := l.skipBlockComment(start); err != nil {
					return Token{}, err
				}
				continue
			}
			return Token{Type: TokenDiv, Span: l.spanFrom(start)}, nil
		case l.ch == '"':
			return l.readString()
		case l.ch == '\'':
			return l.readChar()
		case vocabulary.IsLetter(l.ch):
			return l.readWord(), nil
		}

		ch := l.ch
		l.advance()
		return Token{}, diagnostic.Lexical(diagnostic.CodeUnexpectedCharacter, l.spanFrom(start),
			"unexpected character: %q", ch)
	}
}

func isOperatorStart(ch rune) bool {
	if ch == eof {
		return false
	}
	_, ok := operators[string(ch)]
	return ok
}

// readOperator consumes one punctuation character and upgrades to a
// two-character token when the pair is in the table.
func (l *Lexer) readOperator() Token {
	start := l.pos
	first := l.ch
	tt := operators[string(first)]
	l.advance()

	if l.ch != eof {
		if pair, ok := operators[string([]rune{first, l.ch})]; ok {
			tt = pair
			l.advance()
		}
	}
	return Token{Type: tt, Span: l.spanFrom(start)}
}

// readNumber consumes digits with at most one decimal point. A second
// point ends the literal and is left for the next token.
func (l *Lexer) readNumber() Token {
	start := l.pos
	var b strings.Builder
	tt := TokenInteger

	for vocabulary.IsDigit(l.ch) || l.ch == '.' {
		if l.ch == '.' {
			if tt == TokenFloat {
				break
			}
			tt = TokenFloat
		}
		b.WriteRune(l.ch)
		l.advance()
	}

	text := b.String()
	if text == "." {
		text = "0.0"
	}
	return Token{Type: tt, Value: text, Span: l.spanFrom(start)}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != eof {
		l.advance()
	}
}

// skipBlockComment is entered on the '*' of "/*". Comments do not nest.
func (l *Lexer) skipBlockComment(start position.Position) error {
	l.advance()
	for {
		switch l.ch {
		case eof:
			return diagnostic.Lexical(diagnostic.CodeUnterminatedComment, l.spanFrom(start),
				"unterminated block comment, expected '*/'")
		case '*':
			l.advance()
			if l.ch == '/' {
				l.advance()
				return nil
			}
		default:
			l.advance()
		}
	}
}

// readString scans to the closing quote. A backslash only stops the next
// character from closing the literal; the value keeps the raw text,
// backslashes included.
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	var b strings.Builder
	escape := false

	for {
		l.advance()
		if l.ch == eof {
			return Token{}, diagnostic.Lexical(diagnostic.CodeUnterminatedString, l.spanFrom(start),
				"unterminated string literal, expected '\"'")
		}
		if l.ch == '"' && !escape {
			break
		}
		escape = l.ch == '\\' && !escape
		b.WriteRune(l.ch)
	}

	l.advance()
	return Token{Type: TokenString, Value: b.String(), Span: l.spanFrom(start)}, nil
}

// readChar accepts exactly one character between single quotes.
func (l *Lexer) readChar() (Token, error) {
	start := l.pos
	l.advance()
	ch := l.ch
	l.advance()

	if ch == eof || l.ch != '\'' {
		end := l.pos
		if l.ch != eof {
			end = end.Advance(l.ch)
		}
		return Token{}, diagnostic.Lexical(diagnostic.CodeMalformedChar, position.NewSpan(start, end),
			"malformed char literal, expected \"'\"")
	}

	l.advance()
	return Token{Type: TokenChar, Value: string(ch), Span: l.spanFrom(start)}, nil
}

// readWord reads an identifier and classifies it. Keywords take priority
// over type names.
func (l *Lexer) readWord() Token {
	start := l.pos
	for vocabulary.IsLetter(l.ch) || vocabulary.IsDigit(l.ch) {
		l.advance()
	}

	text := string(l.input[start.Offset:l.pos.Offset])
	tt := TokenIdentifier
	if l.vocab.IsKeyword(text) {
		tt = TokenKeyword
	} else if _, ok := l.vocab.LookupType(text); ok {
		tt = TokenTypeName
	}
	return Token{Type: tt, Value: text, Span: l.spanFrom(start)}
}
