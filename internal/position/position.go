// Package position provides source position tracking for the Vela
// frontend. Positions are plain values: storing one into a token or a
// node copies it, so spans stay stable while the lexer cursor moves on.
package position

import (
	"fmt"
	"strings"
)

// Position represents a single point in source code
type Position struct {
	Offset int // 0-based rune index in source
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Start returns the position of the first character of a source.
func Start() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

// Advance returns the position following a character ch located at p.
// Leaving a newline moves to the first column of the next line.
func (p Position) Advance(ch rune) Position {
	p.Offset++
	if ch == '\n' {
		p.Line++
		p.Column = 1
	} else {
		p.Column++
	}
	return p
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before returns true if this position comes before other
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span represents a half-open range [Start, End) of source code
type Span struct {
	Start Position // inclusive
	End   Position // exclusive
}

// NewSpan builds a span from two positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.Start.Offset <= s.End.Offset
}

// String returns a string representation of the span
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Contains returns true if the span contains the given position
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Union returns a span that encompasses both this span and other
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}

	start := s.Start
	if other.Start.Before(start) {
		start = other.Start
	}

	end := s.End
	if end.Before(other.End) {
		end = other.End
	}

	return Span{Start: start, End: end}
}

// Length returns the number of characters covered by the span
func (s Span) Length() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}

// SourceFile represents a source file with content and line access
type SourceFile struct {
	Filename string   // File path, may be empty for in-memory sources
	Content  []rune   // Source code, indexed by Position.Offset
	Lines    []string // Lines of source code for efficient access
}

// NewSourceFile creates a new source file from content
func NewSourceFile(filename, content string) *SourceFile {
	return &SourceFile{
		Filename: filename,
		Content:  []rune(content),
		Lines:    strings.Split(content, "\n"),
	}
}

// GetLine returns the specified line (1-based) or empty string if invalid
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.Lines) {
		return ""
	}
	return strings.TrimSuffix(sf.Lines[lineNum-1], "\r")
}

// GetSpanText returns the text covered by the span
func (sf *SourceFile) GetSpanText(span Span) string {
	if !span.IsValid() {
		return ""
	}
	if span.Start.Offset > len(sf.Content) || span.End.Offset > len(sf.Content) {
		return ""
	}
	return string(sf.Content[span.Start.Offset:span.End.Offset])
}

// PositionFromOffset converts a rune offset to a Position
func (sf *SourceFile) PositionFromOffset(offset int) Position {
	if offset < 0 || offset > len(sf.Content) {
		return Position{}
	}

	pos := Start()
	for i := 0; i < offset; i++ {
		pos = pos.Advance(sf.Content[i])
	}
	return pos
}

// Location formats a position with the file name prefix.
func (sf *SourceFile) Location(pos Position) string {
	if sf.Filename == "" {
		return pos.String()
	}
	return fmt.Sprintf("%s:%s", sf.Filename, pos.String())
}
