package format

import (
	"fmt"
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/types"
	"github.com/vela-lang/vela/internal/vocabulary"
)

// precedence mirrors the parser's binary operator levels, lowest first.
var precedence = map[ast.Operator]int{
	ast.OpEq: 1, ast.OpNe: 1,
	ast.OpAnd: 2, ast.OpOr: 2,
	ast.OpLt: 3, ast.OpLe: 3, ast.OpGt: 3, ast.OpGe: 3,
	ast.OpAdd: 4, ast.OpSub: 4,
	ast.OpBitAnd: 5, ast.OpBitOr: 5, ast.OpBitXor: 5,
	ast.OpMul: 6, ast.OpDiv: 6,
}

// Printer renders syntax trees as Vela source.
type Printer struct {
	options Options
	vocab   *vocabulary.Vocabulary
	indent  int
	buffer  strings.Builder
	err     error
}

// NewPrinter creates a printer with the given options. A zero IndentSize
// selects the default.
func NewPrinter(options Options) *Printer {
	if options.IndentSize <= 0 {
		options.IndentSize = DefaultOptions().IndentSize
	}
	vocab := options.Vocabulary
	if vocab == nil {
		vocab = vocabulary.Default()
	}
	return &Printer{options: options, vocab: vocab}
}

// Print formats node. The error is non-nil when an identifier in the tree
// is spelled like a keyword or type name of the output vocabulary.
func (p *Printer) Print(node ast.Node) (string, error) {
	p.buffer.Reset()
	p.indent = 0
	p.err = nil

	switch n := node.(type) {
	case *ast.Program:
		p.program(n)
	case ast.Statement:
		p.statement(n)
		p.writeString("\n")
	case ast.Expression:
		p.writeString(p.expression(n))
	default:
		return "", fmt.Errorf("cannot format %T", node)
	}

	if p.err != nil {
		return "", p.err
	}
	return p.buffer.String(), nil
}

func (p *Printer) program(prog *ast.Program) {
	for i, fn := range prog.Functions {
		if i > 0 {
			p.writeString("\n")
		}
		p.function(fn)
		p.writeString("\n")
	}
}

func (p *Printer) function(fn *ast.FunctionDeclaration) {
	params := make([]string, len(fn.Parameters))
	for i, param := range fn.Parameters {
		params[i] = p.name(param.Name) + ": " + p.typeName(param.Type)
	}

	fmt.Fprintf(&p.buffer, "%s %s(%s) -> %s ",
		p.keyword(vocabulary.DeclareFunc), p.name(fn.Name), strings.Join(params, ", "), p.typeName(fn.ReturnType))
	p.block(fn.Body)
}

// block writes a braced block starting at the current column and leaves
// the cursor after the closing brace.
func (p *Printer) block(b *ast.Block) {
	if len(b.Statements) == 0 {
		p.writeString("{}")
		return
	}

	p.writeString("{\n")
	p.indent++
	for _, stmt := range b.Statements {
		p.writeIndent()
		p.statement(stmt)
		p.writeString("\n")
	}
	p.indent--
	p.writeIndent()
	p.writeString("}")
}

func (p *Printer) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		p.block(s)

	case *ast.VariableDeclaration:
		fmt.Fprintf(&p.buffer, "%s %s: %s", p.keyword(vocabulary.DeclareVar), p.name(s.Name), p.typeName(s.Type))
		if s.Initializer != nil {
			p.writeString(" = " + p.expression(s.Initializer))
		}
		p.writeString(";")

	case *ast.ExpressionStatement:
		p.writeString(p.expression(s.Expression) + ";")

	case *ast.ReturnStatement:
		p.writeString(p.keyword(vocabulary.ReturnValue))
		if s.Value != nil {
			p.writeString(" " + p.expression(s.Value))
		}
		p.writeString(";")

	case *ast.IfStatement:
		p.writeString(p.keyword(vocabulary.ConditionMain) + " " + p.expression(s.Condition) + " ")
		p.block(s.Success)
		for _, alt := range s.Alternates {
			p.writeString(" " + p.keyword(vocabulary.ConditionAlt) + " " + p.expression(alt.Condition) + " ")
			p.block(alt.Body)
		}
		if s.Failure != nil {
			p.writeString(" " + p.keyword(vocabulary.ConditionFail) + " ")
			p.block(s.Failure)
		}

	case *ast.WhileStatement:
		p.writeString(p.keyword(vocabulary.LoopCondition) + " " + p.expression(s.Condition) + " ")
		p.block(s.Body)

	case *ast.ForStatement:
		p.writeString(p.keyword(vocabulary.LoopThreePart) + " (")
		if s.Init == nil {
			p.writeString(";")
		} else {
			p.statement(s.Init)
		}
		if s.Condition != nil {
			p.writeString(" " + p.expression(s.Condition))
		}
		p.writeString(";")
		if s.Iteration != nil {
			p.writeString(" ")
			if e, ok := s.Iteration.(*ast.ExpressionStatement); ok {
				p.writeString(p.expression(e.Expression))
			} else {
				p.statement(s.Iteration)
			}
		}
		p.writeString(") ")
		p.block(s.Body)

	case *ast.ForEachStatement:
		fmt.Fprintf(&p.buffer, "%s (%s %s %s) ",
			p.keyword(vocabulary.LoopIter), p.name(s.Variable), p.keyword(vocabulary.ValueIn), p.expression(s.Container))
		p.block(s.Body)

	case *ast.BreakStatement:
		p.writeString(p.keyword(vocabulary.ControlEnd) + ";")

	case *ast.ContinueStatement:
		p.writeString(p.keyword(vocabulary.ControlNext) + ";")

	default:
		p.fail(fmt.Errorf("cannot format statement %T", stmt))
	}
}

func (p *Printer) expression(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return p.name(e)
	case *ast.IntegerLiteral:
		if e.Raw != "" {
			return e.Raw
		}
		return fmt.Sprint(e.Value)
	case *ast.FloatLiteral:
		if e.Raw != "" {
			return e.Raw
		}
		return fmt.Sprint(e.Value)
	case *ast.StringLiteral:
		return `"` + e.Value + `"`
	case *ast.CharLiteral:
		return "'" + string(e.Value) + "'"
	case *ast.BoolLiteral:
		if e.Value {
			return p.keyword(vocabulary.BoolTrue)
		}
		return p.keyword(vocabulary.BoolFalse)

	case *ast.ArrayLiteral:
		return "[" + p.list(e.Elements) + "]"

	case *ast.Assignment:
		return p.name(e.Name) + " = " + p.expression(e.Value)

	case *ast.CallExpression:
		callee := p.expression(e.Callee)
		switch e.Callee.(type) {
		case *ast.BinaryExpression, *ast.UnaryExpression, *ast.CallExpression, *ast.Assignment:
			callee = "(" + callee + ")"
		}
		return callee + "(" + p.list(e.Arguments) + ")"

	case *ast.UnaryExpression:
		operand := p.expression(e.Operand)
		switch e.Operand.(type) {
		case *ast.BinaryExpression, *ast.UnaryExpression, *ast.Assignment:
			operand = "(" + operand + ")"
		}
		return e.Operator.String() + operand

	case *ast.BinaryExpression:
		level := precedence[e.Operator]
		left := p.operand(e.Left, func(l int) bool { return l < level })
		right := p.operand(e.Right, func(l int) bool { return l <= level })
		return left + " " + e.Operator.String() + " " + right
	}

	p.fail(fmt.Errorf("cannot format expression %T", expr))
	return ""
}

// operand formats a binary operand, parenthesizing assignments and binary
// expressions whose level satisfies needParens.
func (p *Printer) operand(expr ast.Expression, needParens func(level int) bool) string {
	s := p.expression(expr)
	switch e := expr.(type) {
	case *ast.Assignment:
		return "(" + s + ")"
	case *ast.BinaryExpression:
		if needParens(precedence[e.Operator]) {
			return "(" + s + ")"
		}
	}
	return s
}

func (p *Printer) list(exprs []ast.Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = p.expression(e)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) keyword(k vocabulary.Keyword) string {
	return p.vocab.Spelling(k)
}

func (p *Printer) name(id *ast.Identifier) string {
	if p.vocab.IsKeyword(id.Name) {
		p.fail(fmt.Errorf("identifier %q is a keyword in the output vocabulary", id.Name))
	} else if _, ok := p.vocab.LookupType(id.Name); ok {
		p.fail(fmt.Errorf("identifier %q is a type name in the output vocabulary", id.Name))
	}
	return id.Name
}

// typeName spells t with the output vocabulary. When several names map to
// one kind the alphabetically first is used.
func (p *Printer) typeName(t types.Type) string {
	switch t := t.(type) {
	case *types.Array:
		return "[" + p.typeName(t.Element) + "]"
	case *types.Basic:
		for _, name := range p.vocab.TypeNames() {
			if kind, _ := p.vocab.LookupType(name); kind == t.Kind {
				return name
			}
		}
		p.fail(fmt.Errorf("type %s has no name in the output vocabulary", t.Kind))
		return t.Kind.String()
	}

	p.fail(fmt.Errorf("cannot format type %v", t))
	return ""
}

func (p *Printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Writing helper functions
func (p *Printer) writeString(s string) {
	p.buffer.WriteString(s)
}

func (p *Printer) writeIndent() {
	if p.options.PreferTabs {
		p.buffer.WriteString(strings.Repeat("\t", p.indent))
	} else {
		p.buffer.WriteString(strings.Repeat(" ", p.indent*p.options.IndentSize))
	}
}
