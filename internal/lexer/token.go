package lexer

import (
	"fmt"

	"github.com/vela-lang/vela/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Symbol returns the source spelling of a punctuation token type, or ""
// for literal, word and end-of-input types.
func (tt TokenType) Symbol() string {
	return tokenSymbols[tt]
}

// Token types
const (
	TokenEOF TokenType = iota

	// Literals
	TokenInteger
	TokenFloat
	TokenString
	TokenChar

	// Words
	TokenIdentifier
	TokenKeyword
	TokenTypeName

	// Operators
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenAssign
	TokenEq
	TokenNe
	TokenLt
	TokenLe
	TokenGt
	TokenGe
	TokenAmpersand
	TokenAnd
	TokenPipe
	TokenOr
	TokenCaret
	TokenExclamation
	TokenTilde
	TokenArrow

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenColon
	TokenSemicolon
	TokenComma
)

// Token represents a lexical token. Value holds the literal text for
// literals and words and is empty for punctuation.
type Token struct {
	Type  TokenType
	Value string
	Span  position.Span
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("[%s]", t.Type)
	}
	return fmt.Sprintf("[%s:%q]", t.Type, t.Value)
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF: "EOF",

	TokenInteger: "INT",
	TokenFloat:   "FLOAT",
	TokenString:  "STR",
	TokenChar:    "CHAR",

	TokenIdentifier: "IDENTIFIER",
	TokenKeyword:    "KEYWORD",
	TokenTypeName:   "TYPE",

	TokenPlus:        "PLUS",
	TokenMinus:       "MINUS",
	TokenMul:         "ASTERISK",
	TokenDiv:         "SLASH",
	TokenAssign:      "EQUALS",
	TokenEq:          "EQEQ",
	TokenNe:          "NOTEQ",
	TokenLt:          "LT",
	TokenLe:          "LE",
	TokenGt:          "GT",
	TokenGe:          "GE",
	TokenAmpersand:   "AND",
	TokenAnd:         "ANDAND",
	TokenPipe:        "PIPE",
	TokenOr:          "PIPEPIPE",
	TokenCaret:       "CARET",
	TokenExclamation: "EXCLAMATION",
	TokenTilde:       "TILDE",
	TokenArrow:       "ARROW",

	TokenLParen:    "L_PAREN",
	TokenRParen:    "R_PAREN",
	TokenLBrace:    "L_BRACE",
	TokenRBrace:    "R_BRACE",
	TokenLBracket:  "L_BRACKET",
	TokenRBracket:  "R_BRACKET",
	TokenColon:     "COLON",
	TokenSemicolon: "SEMICOLON",
	TokenComma:     "COMMA",
}

// tokenSymbols maps punctuation token types to their spelling
var tokenSymbols = map[TokenType]string{
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenMul:         "*",
	TokenDiv:         "/",
	TokenAssign:      "=",
	TokenEq:          "==",
	TokenNe:          "!=",
	TokenLt:          "<",
	TokenLe:          "<=",
	TokenGt:          ">",
	TokenGe:          ">=",
	TokenAmpersand:   "&",
	TokenAnd:         "&&",
	TokenPipe:        "|",
	TokenOr:          "||",
	TokenCaret:       "^",
	TokenExclamation: "!",
	TokenTilde:       "~",
	TokenArrow:       "->",

	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenColon:     ":",
	TokenSemicolon: ";",
	TokenComma:     ",",
}

// operators is the punctuation lookup table holding both one- and
// two-character spellings. The slash is lexed separately because it
// may open a comment.
var operators = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenSymbols))
	for tt, sym := range tokenSymbols {
		if tt == TokenDiv {
			continue
		}
		m[sym] = tt
	}
	return m
}()
