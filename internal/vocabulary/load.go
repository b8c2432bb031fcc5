package vocabulary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/vela-lang/vela/internal/types"
)

// Format represents the vocabulary file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota

	// FormatTOML represents TOML format
	FormatTOML

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// file is the on-disk shape of a vocabulary. Keywords that are not
// listed keep their default spelling; a types table replaces the
// default type names entirely.
type file struct {
	Requires string            `toml:"requires" yaml:"requires"`
	Keywords map[string]string `toml:"keywords" yaml:"keywords"`
	Types    map[string]string `toml:"types" yaml:"types"`
}

// Load reads a vocabulary file, choosing the decoder by extension.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	v, err := Decode(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// DetectFormat determines the vocabulary format from a file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Decode parses vocabulary content in the given format.
func Decode(data []byte, format Format) (*Vocabulary, error) {
	var f file

	switch format {
	case FormatAuto, FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		md, err := dec.Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown vocabulary key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported vocabulary format %s", format)
	}

	return f.build()
}

func (f *file) build() (*Vocabulary, error) {
	keywords := make(map[Keyword]string, len(defaultKeywords))
	for k, s := range defaultKeywords {
		keywords[k] = s
	}
	for name, spelling := range f.Keywords {
		k := Keyword(name)
		if _, ok := defaultKeywords[k]; !ok {
			return nil, fmt.Errorf("unknown keyword %q", name)
		}
		keywords[k] = spelling
	}

	typeNames := defaultTypes
	if len(f.Types) > 0 {
		typeNames = make(map[string]types.Kind, len(f.Types))
		for spelling, kindName := range f.Types {
			kind, ok := types.ParseKind(kindName)
			if !ok {
				return nil, fmt.Errorf("type %q: unknown kind %q", spelling, kindName)
			}
			typeNames[spelling] = kind
		}
	}

	v, err := New(keywords, typeNames)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(f.Requires) != "" {
		c, err := semver.NewConstraint(f.Requires)
		if err != nil {
			return nil, fmt.Errorf("invalid requires constraint %q: %w", f.Requires, err)
		}
		v.requires = c
	}
	return v, nil
}
