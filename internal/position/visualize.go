package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SnippetLine is one rendered line of a highlighted source excerpt.
type SnippetLine struct {
	Number    int    // 1-based line number
	Text      string // source text of the line
	Underline string // caret marker under the span, empty outside it
}

// SpanHighlighter renders excerpts of a source file around a span.
type SpanHighlighter struct {
	file    *SourceFile
	context int
}

// NewSpanHighlighter creates a highlighter showing context lines
// before and after the highlighted span.
func NewSpanHighlighter(file *SourceFile, context int) *SpanHighlighter {
	if context < 0 {
		context = 0
	}
	return &SpanHighlighter{file: file, context: context}
}

// Lines returns the excerpt covering span plus context lines.
func (sh *SpanHighlighter) Lines(span Span) []SnippetLine {
	if !span.IsValid() || sh.file == nil {
		return nil
	}

	startLine := max(1, span.Start.Line-sh.context)
	endLine := min(len(sh.file.Lines), span.End.Line+sh.context)

	out := make([]SnippetLine, 0, endLine-startLine+1)
	for lineNum := startLine; lineNum <= endLine; lineNum++ {
		line := sh.file.GetLine(lineNum)
		sl := SnippetLine{Number: lineNum, Text: line}
		if lineNum >= span.Start.Line && lineNum <= span.End.Line {
			sl.Underline = underline(line, lineNum, span)
		}
		out = append(out, sl)
	}
	return out
}

// HighlightSpan returns the excerpt as plain text with a gutter and carets.
func (sh *SpanHighlighter) HighlightSpan(span Span) string {
	lines := sh.Lines(span)
	if lines == nil {
		return ""
	}

	width := len(fmt.Sprint(lines[len(lines)-1].Number))
	var result strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&result, "%*d | %s\n", width, l.Number, l.Text)
		if l.Underline != "" {
			fmt.Fprintf(&result, "%*s | %s\n", width, "", l.Underline)
		}
	}
	return result.String()
}

func underline(line string, lineNum int, span Span) string {
	lineLen := utf8.RuneCountInString(line)
	startCol, endCol := 1, lineLen+1

	if lineNum == span.Start.Line {
		startCol = span.Start.Column
	}
	if lineNum == span.End.Line {
		endCol = span.End.Column
	}
	// Zero-width spans (end of input) still get one caret.
	if endCol <= startCol {
		endCol = startCol + 1
	}

	runes := []rune(line)
	var b strings.Builder
	for i := 1; i < startCol; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(strings.Repeat("^", endCol-startCol))
	return b.String()
}
