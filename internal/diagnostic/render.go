package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vela-lang/vela/internal/position"
)

// Renderer prints errors with a source excerpt in the style
//
//	error[P004]: "break" must be in loop
//	 --> main.vela:3:5
//	3 |     break;
//	  |     ^^^^^
type Renderer struct {
	Color   bool // emit ANSI styling
	Context int  // lines of context around the span

	header  lipgloss.Style
	locator lipgloss.Style
	gutter  lipgloss.Style
	caret   lipgloss.Style
}

// NewRenderer creates a renderer writing styled output for w.
func NewRenderer(w io.Writer, color bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		Color:   color,
		Context: 1,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		locator: r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
		caret:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
	}
}

// Render formats err against file. A nil file prints only the header.
func (r *Renderer) Render(file *position.SourceFile, err *Error) string {
	var b strings.Builder

	b.WriteString(r.style(r.header, fmt.Sprintf("error[%s]", err.Code)))
	fmt.Fprintf(&b, ": %s\n", err.Message)

	if file == nil {
		return b.String()
	}
	b.WriteString(r.style(r.locator, " --> "+file.Location(err.Span.Start)))
	b.WriteByte('\n')

	lines := position.NewSpanHighlighter(file, r.Context).Lines(err.Span)
	if len(lines) == 0 {
		return b.String()
	}
	width := len(fmt.Sprint(lines[len(lines)-1].Number))
	for _, l := range lines {
		b.WriteString(r.style(r.gutter, fmt.Sprintf("%*d |", width, l.Number)))
		fmt.Fprintf(&b, " %s\n", l.Text)
		if l.Underline != "" {
			b.WriteString(r.style(r.gutter, fmt.Sprintf("%*s |", width, "")))
			b.WriteByte(' ')
			b.WriteString(r.style(r.caret, l.Underline))
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}

	return s.Render(text)
}
