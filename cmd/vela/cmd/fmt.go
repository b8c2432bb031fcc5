package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/format"
	"github.com/vela-lang/vela/internal/vocabulary"
)

type fmtOptions struct {
	write   bool
	diff    bool
	list    bool
	force   bool
	tabs    bool
	indent  int
	context int
	toVocab string
}

func newFmtCmd(opts *globalOptions) *cobra.Command {
	fo := &fmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a file in canonical layout",
		Long: `Reformats a file from its syntax tree and prints the result.

Formatting drops comments, so -w refuses to rewrite a file that has any
unless --force is given. With --to the output is spelled in another
vocabulary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			return s.format(cmd, args[0], fo)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&fo.write, "write", "w", false, "write result to the source file instead of stdout")
	flags.BoolVarP(&fo.diff, "diff", "d", false, "print a unified diff instead of the formatted source")
	flags.BoolVarP(&fo.list, "list", "l", false, "print the file name if its formatting differs")
	flags.BoolVar(&fo.force, "force", false, "allow -w to drop comments")
	flags.BoolVar(&fo.tabs, "tabs", false, "indent with tabs")
	flags.IntVar(&fo.indent, "indent", format.DefaultOptions().IndentSize, "spaces per indentation level")
	flags.IntVar(&fo.context, "context", 3, "lines of context in diffs")
	flags.StringVar(&fo.toVocab, "to", "", "vocabulary file to spell the output with")

	return cmd
}

func (s *session) format(cmd *cobra.Command, path string, fo *fmtOptions) error {
	if fo.write && path == "-" {
		return errors.New("cannot write formatted output back to standard input")
	}

	file, err := s.readSource(cmd, path)
	if err != nil {
		return err
	}
	src := string(file.Content)

	opts := format.Options{IndentSize: fo.indent, PreferTabs: fo.tabs}
	if fo.toVocab != "" {
		opts.Vocabulary, err = vocabulary.Load(fo.toVocab)
		if err != nil {
			return err
		}
		s.log.Info("formatting with vocabulary %s", fo.toVocab)
	}

	formatted, err := format.Source(src, s.vocab, s.parse, opts)
	if err != nil {
		return s.report(file, err)
	}

	out := cmd.OutOrStdout()
	switch {
	case fo.list:
		if formatted != src {
			fmt.Fprintln(out, file.Filename)
		}
		return nil

	case fo.diff:
		hunks := format.Diff(src, formatted, fo.context)
		stat := format.Stat(hunks)
		s.log.Info("%d hunks, +%d -%d", len(hunks), stat.LinesAdded, stat.LinesRemoved)
		fmt.Fprint(out, format.Unified(file.Filename, hunks))
		return nil

	case fo.write:
		if formatted == src {
			s.log.Info("%s already formatted", path)
			return nil
		}
		comments, err := format.HasComments(src, s.vocab)
		if err != nil {
			return s.report(file, err)
		}
		if comments && !fo.force {
			return fmt.Errorf("%s has comments that formatting would drop (use --force)", path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write formatted source: %w", err)
		}
		s.log.Info("formatted %s", path)
		return nil
	}

	_, err = fmt.Fprint(out, formatted)
	return err
}
