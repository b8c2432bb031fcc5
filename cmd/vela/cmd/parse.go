package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/parser"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a file",
		Long: `Parses a file and prints its syntax tree.

Formats:
  sexpr  - compact s-expression (default)
  json   - node tree with kinds and spans
  yaml   - the same tree as YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "sexpr" && format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want sexpr, json or yaml)", format)
			}

			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			file, err := s.readSource(cmd, args[0])
			if err != nil {
				return err
			}

			program, err := parser.ParseSource(string(file.Content), s.vocab, s.parse)
			if err != nil {
				return s.report(file, err)
			}
			s.log.Info("%d functions, %d nodes", len(program.Functions), ast.Count(program))

			return writeTree(cmd.OutOrStdout(), program, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "sexpr", "output format: sexpr, json or yaml")
	return cmd
}

func writeTree(w io.Writer, program *ast.Program, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(ast.Encode(program), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal syntax tree to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.Encode(program)); err != nil {
			return fmt.Errorf("failed to marshal syntax tree to YAML: %w", err)
		}
		return enc.Close()

	default:
		_, err := fmt.Fprintln(w, program.String())
		return err
	}
}
