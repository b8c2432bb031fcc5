package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/watch"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Report the first lexical or syntax error in a file",
		Long: `Lexes and parses a file and reports the first error with a source excerpt.
The exit status is 1 when the file has an error.

With --watch the file is checked again every time it changes, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}

			if !watchMode {
				return s.check(cmd, args[0])
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return s.watch(ctx, cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "check again whenever the file changes")
	return cmd
}

func (s *session) check(cmd *cobra.Command, path string) error {
	file, err := s.readSource(cmd, path)
	if err != nil {
		return err
	}

	program, err := parser.ParseSource(string(file.Content), s.vocab, s.parse)
	if err != nil {
		return s.report(file, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d functions, %d nodes)\n", file.Filename, len(program.Functions), ast.Count(program))
	return nil
}

func (s *session) watch(ctx context.Context, cmd *cobra.Command, path string) error {
	if path == "-" {
		return errors.New("cannot watch standard input")
	}

	w, err := watch.New(0)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}

	s.recheck(cmd, path)
	s.log.Info("watching %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			s.log.Debug("%s %s", ev.Op, ev.Path)
			if ev.Op.Has(watch.OpRemove) || ev.Op.Has(watch.OpRename) {
				s.log.Warn("%s was removed", path)
				continue
			}
			s.recheck(cmd, path)

		case err := <-w.Errors():
			s.log.Warn("watch: %v", err)
		}
	}
}

// recheck runs check and logs failures that are not diagnostics. Watch
// mode keeps running after any failure.
func (s *session) recheck(cmd *cobra.Command, path string) {
	if err := s.check(cmd, path); err != nil && !errors.Is(err, errReported) {
		s.log.Error("%v", err)
	}
}
