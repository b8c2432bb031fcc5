// Package format prints Vela syntax trees back to canonical source text.
//
// Formatting works on the parsed tree, so comments and blank lines inside
// function bodies are not preserved. HasComments reports whether a source
// would lose comments.
package format

import (
	"fmt"
	"strings"

	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/vocabulary"
)

// Options controls formatting style.
type Options struct {
	// IndentSize specifies the number of spaces for indentation
	IndentSize int
	// PreferTabs uses tabs instead of spaces for indentation
	PreferTabs bool
	// Vocabulary spells keywords and type names in the output. Nil keeps
	// the vocabulary the source was parsed with.
	Vocabulary *vocabulary.Vocabulary
}

// DefaultOptions returns default formatting options
func DefaultOptions() Options {
	return Options{IndentSize: 4}
}

// Source parses src with vocab and returns it formatted. The result is
// parsed again with the output vocabulary and must produce the same tree.
func Source(src string, vocab *vocabulary.Vocabulary, parseOpts parser.Options, opts Options) (string, error) {
	program, err := parser.ParseSource(src, vocab, parseOpts)
	if err != nil {
		return "", err
	}

	out := opts.Vocabulary
	if out == nil {
		out = vocab
	}
	opts.Vocabulary = out

	formatted, err := NewPrinter(opts).Print(program)
	if err != nil {
		return "", err
	}

	reparsed, err := parser.ParseSource(formatted, out, parseOpts)
	if err != nil {
		return "", fmt.Errorf("formatted output does not parse: %v", err)
	}
	if reparsed.String() != program.String() {
		return "", fmt.Errorf("formatted output changes the syntax tree")
	}

	return formatted, nil
}

// HasComments reports whether src contains text outside its tokens other
// than whitespace, that is, comments.
func HasComments(src string, vocab *vocabulary.Vocabulary) (bool, error) {
	tokens, err := lexer.Tokenize(src, vocab)
	if err != nil {
		return false, err
	}

	file := position.NewSourceFile("", src)
	prev := position.Start()
	for _, tok := range tokens {
		gap := file.GetSpanText(position.NewSpan(prev, tok.Span.Start))
		if strings.TrimSpace(gap) != "" {
			return true, nil
		}
		prev = tok.Span.End
	}

	return false, nil
}
