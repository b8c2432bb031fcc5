package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/cli"
	"github.com/vela-lang/vela/internal/diagnostic"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/vocabulary"
)

// errReported is returned once a diagnostic has already been written to
// stderr, so Execute does not print it a second time.
var errReported = errors.New("source has errors")

type globalOptions struct {
	vocabPath string
	verbose   bool
	debug     bool
	color     string
	maxDepth  int
}

// session carries the state every subcommand needs once flags are parsed.
type session struct {
	log      *cli.Logger
	vocab    *vocabulary.Vocabulary
	parse    parser.Options
	renderer *diagnostic.Renderer
	stderr   io.Writer
}

// NewRootCmd builds the vela command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "vela",
		Short: "Vela language front end",
		Long: `vela lexes and parses Vela source files.

Commands:
  lex      - print the token stream of a file
  parse    - print the syntax tree of a file
  check    - report the first lexical or syntax error
  fmt      - print a file in canonical layout
  vocab    - print the active keyword and type vocabulary
  version  - print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.vocabPath, "vocab", "", "vocabulary file (.toml, .yaml or .yml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.debug, "debug", false, "debug output")
	flags.StringVar(&opts.color, "color", "auto", "colorize diagnostics: auto, always or never")
	flags.IntVar(&opts.maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum syntax nesting depth (negative for unlimited)")

	root.AddCommand(
		newLexCmd(opts),
		newParseCmd(opts),
		newCheckCmd(opts),
		newFmtCmd(opts),
		newVocabCmd(opts),
		newVersionCmd(),
	)

	return root
}

// Execute runs the vela command tree with os.Args.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

func (o *globalOptions) session(cmd *cobra.Command) (*session, error) {
	stderr := cmd.ErrOrStderr()
	log := cli.NewLogger(stderr, o.verbose, o.debug)

	mode, err := cli.ParseColorMode(o.color)
	if err != nil {
		return nil, err
	}
	f, _ := stderr.(*os.File)
	color := cli.UseColor(mode, f)
	log.Debug("color mode %s, styled output %t", mode, color)

	vocab := vocabulary.Default()
	if o.vocabPath != "" {
		vocab, err = vocabulary.Load(o.vocabPath)
		if err != nil {
			return nil, err
		}
		if err := vocab.Supports(cli.Version); err != nil {
			return nil, fmt.Errorf("%s: %w", o.vocabPath, err)
		}
		log.Info("loaded vocabulary %s (%s)", o.vocabPath, vocabulary.DetectFormat(o.vocabPath))
	} else {
		log.Debug("using default vocabulary")
	}

	return &session{
		log:      log,
		vocab:    vocab,
		parse:    parser.Options{MaxDepth: o.maxDepth},
		renderer: diagnostic.NewRenderer(stderr, color),
		stderr:   stderr,
	}, nil
}

// readSource reads path, or standard input when path is "-".
func (s *session) readSource(cmd *cobra.Command, path string) (*position.SourceFile, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		path = "<stdin>"
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	s.log.Info("read %s (%d bytes)", filepath.ToSlash(path), len(data))
	return position.NewSourceFile(path, string(data)), nil
}

// report writes a rendered diagnostic for err and returns errReported, or
// returns err unchanged when it is not a diagnostic.
func (s *session) report(file *position.SourceFile, err error) error {
	d, ok := diagnostic.As(err)
	if !ok {
		return err
	}
	s.log.Debug("%s error %s at %s", d.Stage, d.Code, d.Span)
	fmt.Fprint(s.stderr, s.renderer.Render(file, d))
	return errReported
}
