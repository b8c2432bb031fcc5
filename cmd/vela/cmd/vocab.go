package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/vocabulary"
)

func newVocabCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Print the active keyword and type vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Keywords:")
			for _, kw := range vocabulary.Keywords {
				fmt.Fprintf(out, "  %-16s %s\n", kw, s.vocab.Spelling(kw))
			}
			fmt.Fprintln(out, "Types:")
			for _, name := range s.vocab.TypeNames() {
				kind, _ := s.vocab.LookupType(name)
				fmt.Fprintf(out, "  %-16s %s\n", name, kind)
			}
			if c := s.vocab.Requires(); c != nil {
				fmt.Fprintf(out, "Requires: %s\n", c)
			}
			return nil
		},
	}
}
