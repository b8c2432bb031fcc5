// Package types defines the syntactic type annotations of Vela: a closed
// set of primitive kinds and a recursive array constructor.
package types

import "fmt"

// Kind identifies a primitive type.
type Kind int

const (
	Int Kind = iota
	Float
	Str
	Char
	Bool
	Void
)

var kindNames = map[Kind]string{
	Int:   "int",
	Float: "float",
	Str:   "str",
	Char:  "char",
	Bool:  "bool",
	Void:  "void",
}

// String returns the canonical spelling of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a canonical kind name such as "int".
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Type is a syntactic type annotation. The only implementations are
// *Basic and *Array.
type Type interface {
	String() string
	typeNode()
}

// Basic is a primitive type such as int or str.
type Basic struct {
	Kind Kind
}

func (b *Basic) String() string { return b.Kind.String() }
func (b *Basic) typeNode()      {}

// Array is an array whose elements have type Element.
type Array struct {
	Element Type
}

func (a *Array) String() string { return "[" + a.Element.String() + "]" }
func (a *Array) typeNode()      {}

// NewBasic returns the primitive type of kind k.
func NewBasic(k Kind) *Basic {
	return &Basic{Kind: k}
}

// NewArray wraps element in an array type.
func NewArray(element Type) *Array {
	return &Array{Element: element}
}

// Equal reports whether two annotations denote the same type.
func Equal(a, b Type) bool {
	switch x := a.(type) {
	case *Basic:
		y, ok := b.(*Basic)
		return ok && x.Kind == y.Kind
	case *Array:
		y, ok := b.(*Array)
		return ok && Equal(x.Element, y.Element)
	default:
		return false
	}
}

// Depth returns how many array constructors wrap the innermost basic type.
func Depth(t Type) int {
	n := 0
	for {
		a, ok := t.(*Array)
		if !ok {
			return n
		}
		n++
		t = a.Element
	}
}
