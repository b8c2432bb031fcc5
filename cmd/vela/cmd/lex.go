package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/lexer"
)

func newLexCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lex FILE",
		Short: "Print the token stream of a file",
		Long: `Prints one token per line with its start position, type and value.

Tokens read before a lexical error are printed before the error is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			file, err := s.readSource(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			l := lexer.New(string(file.Content), s.vocab)
			count := 0
			for {
				tok, err := l.NextToken()
				if err != nil {
					return s.report(file, err)
				}
				count++
				if tok.Value != "" {
					fmt.Fprintf(out, "%-8s %-12s %q\n", tok.Span.Start, tok.Type, tok.Value)
				} else {
					fmt.Fprintf(out, "%-8s %s\n", tok.Span.Start, tok.Type)
				}
				if tok.Type == lexer.TokenEOF {
					break
				}
			}

			s.log.Info("%d tokens", count)
			return nil
		},
	}
}
