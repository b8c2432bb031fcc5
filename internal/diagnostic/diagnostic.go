// Package diagnostic defines the error value shared by the Vela lexer and
// parser, and renders it against source text.
//
// A frontend pass stops at its first failure, so there is exactly one
// Error per failed pass. It travels through ordinary Go error returns;
// use As to recover it from a wrapped error.
package diagnostic

import (
	"errors"
	"fmt"

	"github.com/vela-lang/vela/internal/position"
)

// Stage identifies the frontend pass that produced an error.
type Stage int

const (
	StageLexer Stage = iota
	StageParser
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "lexer"
	case StageParser:
		return "parser"
	default:
		return "unknown"
	}
}

// Code is a stable identifier for an error kind.
type Code string

// Lexical error codes.
const (
	CodeUnterminatedString  Code = "L001"
	CodeMalformedChar       Code = "L002"
	CodeUnterminatedComment Code = "L003"
	CodeUnexpectedCharacter Code = "L004"
)

// Syntax error codes.
const (
	CodeExpectedToken     Code = "P001"
	CodeUnexpectedToken   Code = "P002"
	CodeUnexpectedEOF     Code = "P003"
	CodeOutsideLoop       Code = "P004"
	CodeExpectedType      Code = "P005"
	CodeInvalidLiteral    Code = "P006"
	CodeNestingTooDeep    Code = "P007"
	CodeExpectedEndOfFile Code = "P008"
)

// Error is a lexical or syntactic failure with the span it covers.
type Error struct {
	Stage   Stage
	Code    Code
	Message string
	Span    position.Span
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

// Lexical creates a lexer error.
func Lexical(code Code, span position.Span, format string, args ...any) *Error {
	return &Error{
		Stage:   StageLexer,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// Syntax creates a parser error.
func Syntax(code Code, span position.Span, format string, args ...any) *Error {
	return &Error{
		Stage:   StageParser,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// As extracts a frontend Error from err's chain.
func As(err error) (*Error, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d, true
	}

	return nil, false
}
