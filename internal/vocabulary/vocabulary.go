// Package vocabulary holds the keyword and type-name tables the lexer and
// parser consult. A Vocabulary is immutable once built, so independent
// parses may share one or use different ones.
package vocabulary

import (
	"fmt"
	"sort"

	semver "github.com/Masterminds/semver/v3"

	"github.com/vela-lang/vela/internal/types"
)

// Keyword is the symbolic name of a keyword, independent of its spelling.
type Keyword string

const (
	DeclareVar    Keyword = "declare_var"
	DeclareFunc   Keyword = "declare_func"
	ReturnValue   Keyword = "return_value"
	ConditionMain Keyword = "condition_main"
	ConditionAlt  Keyword = "condition_alt"
	ConditionFail Keyword = "condition_fail"
	LoopCondition Keyword = "loop_condition"
	ControlNext   Keyword = "control_next"
	ControlEnd    Keyword = "control_end"
	LoopThreePart Keyword = "loop_threepart"
	LoopIter      Keyword = "loop_iter"
	ValueIn       Keyword = "value_in"
	BoolTrue      Keyword = "bool_true"
	BoolFalse     Keyword = "bool_false"
)

// Keywords lists every symbolic keyword the grammar refers to.
var Keywords = []Keyword{
	DeclareVar, DeclareFunc, ReturnValue,
	ConditionMain, ConditionAlt, ConditionFail,
	LoopCondition, ControlNext, ControlEnd, LoopThreePart, LoopIter, ValueIn,
	BoolTrue, BoolFalse,
}

var defaultKeywords = map[Keyword]string{
	DeclareVar:    "var",
	DeclareFunc:   "func",
	ReturnValue:   "return",
	ConditionMain: "if",
	ConditionAlt:  "elseif",
	ConditionFail: "else",
	LoopCondition: "while",
	ControlNext:   "continue",
	ControlEnd:    "break",
	LoopThreePart: "for",
	LoopIter:      "forEach",
	ValueIn:       "in",
	BoolTrue:      "true",
	BoolFalse:     "false",
}

var defaultTypes = map[string]types.Kind{
	"int":   types.Int,
	"float": types.Float,
	"char":  types.Char,
	"str":   types.Str,
	"bool":  types.Bool,
	"void":  types.Void,
}

// Vocabulary maps symbolic keywords to spellings and type names to kinds.
type Vocabulary struct {
	keywords  map[Keyword]string
	spellings map[string]Keyword
	typeNames map[string]types.Kind
	requires  *semver.Constraints
}

// Default returns the built-in Vela vocabulary.
func Default() *Vocabulary {
	v, err := New(defaultKeywords, defaultTypes)
	if err != nil {
		panic(fmt.Sprintf("vocabulary: invalid default table: %v", err))
	}
	return v
}

// New validates keyword and type-name tables and builds a Vocabulary.
// Every symbolic keyword must have a spelling, spellings must be unique
// identifiers, and no spelling may be both a keyword and a type name.
func New(keywords map[Keyword]string, typeNames map[string]types.Kind) (*Vocabulary, error) {
	v := &Vocabulary{
		keywords:  make(map[Keyword]string, len(keywords)),
		spellings: make(map[string]Keyword, len(keywords)),
		typeNames: make(map[string]types.Kind, len(typeNames)),
	}

	for _, k := range Keywords {
		spelling, ok := keywords[k]
		if !ok {
			return nil, fmt.Errorf("missing spelling for keyword %q", k)
		}
		if !IsIdentifier(spelling) {
			return nil, fmt.Errorf("keyword %q: spelling %q is not an identifier", k, spelling)
		}
		if other, dup := v.spellings[spelling]; dup {
			return nil, fmt.Errorf("keywords %q and %q share spelling %q", other, k, spelling)
		}
		v.keywords[k] = spelling
		v.spellings[spelling] = k
	}
	for k := range keywords {
		if _, ok := v.keywords[k]; !ok {
			return nil, fmt.Errorf("unknown keyword %q", k)
		}
	}

	if len(typeNames) == 0 {
		return nil, fmt.Errorf("type table is empty")
	}
	for name, kind := range typeNames {
		if !IsIdentifier(name) {
			return nil, fmt.Errorf("type name %q is not an identifier", name)
		}
		if k, clash := v.spellings[name]; clash {
			return nil, fmt.Errorf("type name %q is already the spelling of keyword %q", name, k)
		}
		v.typeNames[name] = kind
	}

	return v, nil
}

// Spelling returns the surface spelling of a symbolic keyword.
func (v *Vocabulary) Spelling(k Keyword) string {
	return v.keywords[k]
}

// Lookup reports which keyword, if any, is spelled word.
func (v *Vocabulary) Lookup(word string) (Keyword, bool) {
	k, ok := v.spellings[word]
	return k, ok
}

// IsKeyword reports whether word is the spelling of any keyword.
func (v *Vocabulary) IsKeyword(word string) bool {
	_, ok := v.spellings[word]
	return ok
}

// LookupType resolves a type name to its primitive kind.
func (v *Vocabulary) LookupType(word string) (types.Kind, bool) {
	k, ok := v.typeNames[word]
	return k, ok
}

// TypeNames returns the type names in sorted order.
func (v *Vocabulary) TypeNames() []string {
	names := make([]string, 0, len(v.typeNames))
	for name := range v.typeNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Requires returns the frontend version constraint declared by a loaded
// vocabulary file, or nil when none was declared.
func (v *Vocabulary) Requires() *semver.Constraints {
	return v.requires
}

// Supports checks the frontend version against the vocabulary's
// declared constraint.
func (v *Vocabulary) Supports(version string) error {
	if v.requires == nil {
		return nil
	}
	sv, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid frontend version %q: %w", version, err)
	}
	if !v.requires.Check(sv) {
		return fmt.Errorf("vocabulary requires frontend %s, have %s", v.requires.String(), sv.String())
	}
	return nil
}

// IsIdentifier reports whether s would lex as a single identifier:
// an ASCII letter or underscore followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case IsLetter(rune(c)):
		case i > 0 && IsDigit(rune(c)):
		default:
			return false
		}
	}
	return true
}

// IsLetter reports whether ch may start an identifier.
func IsLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

// IsDigit reports whether ch is an ASCII decimal digit.
func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
