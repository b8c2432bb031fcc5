// Package ast defines the Abstract Syntax Tree (AST) nodes for the Vela programming language.
//
// The node set is closed: Statement and Expression carry unexported marker
// methods, so only this package can add variants. Every node records the
// span from the start of its leftmost token to the end of its rightmost one.
// String renders a node as a compact s-expression.
package ast

import (
	"fmt"
	"strings"

	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/types"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns an s-expression representation of the node
	String() string
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}
}

// Statement represents all statement nodes in the AST
type Statement interface {
	Node
	statementNode() // Marker method to distinguish statements
}

// Expression represents all expression nodes in the AST
type Expression interface {
	Node
	expressionNode() // Marker method to distinguish expressions
}

// ===== Program Structure =====

// Program represents the root of the AST - a complete Vela source file
type Program struct {
	Span      position.Span          // Source span of the entire program
	Functions []*FunctionDeclaration // Top-level function declarations in source order
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	return sexpr("program", nodeStrings(p.Functions)...)
}
func (p *Program) Accept(visitor Visitor) interface{} { return visitor.VisitProgram(p) }

// ===== Declarations =====

// FunctionDeclaration represents a function definition
type FunctionDeclaration struct {
	Span       position.Span // Source span of the entire function
	Name       *Identifier   // Function name
	Parameters []*Parameter  // Parameters in declaration order, duplicates kept
	ReturnType types.Type    // Declared return type
	Body       *Block        // Function body
}

func (f *FunctionDeclaration) GetSpan() position.Span { return f.Span }
func (f *FunctionDeclaration) String() string {
	return sexpr("func", f.Name.String(), sexpr("", nodeStrings(f.Parameters)...), f.ReturnType.String(), f.Body.String())
}
func (f *FunctionDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitFunctionDeclaration(f)
}

// Parameter represents a function parameter
type Parameter struct {
	Span position.Span // From the name to the end of the type
	Name *Identifier   // Parameter name
	Type types.Type    // Parameter type
}

func (p *Parameter) GetSpan() position.Span { return p.Span }
func (p *Parameter) String() string {
	return sexpr("", p.Name.String(), p.Type.String())
}
func (p *Parameter) Accept(visitor Visitor) interface{} { return visitor.VisitParameter(p) }

// VariableDeclaration represents "var name: type [= value];"
type VariableDeclaration struct {
	Span        position.Span // Source span including the semicolon
	Name        *Identifier   // Variable name
	Type        types.Type    // Declared type
	Initializer Expression    // Initial value (nil if none)
}

func (v *VariableDeclaration) GetSpan() position.Span { return v.Span }
func (v *VariableDeclaration) statementNode()         {}
func (v *VariableDeclaration) String() string {
	if v.Initializer == nil {
		return sexpr("var", v.Name.String(), v.Type.String())
	}
	return sexpr("var", v.Name.String(), v.Type.String(), v.Initializer.String())
}
func (v *VariableDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitVariableDeclaration(v)
}

// ===== Statements =====

// Block represents an ordered sequence of statements
type Block struct {
	Span       position.Span // Braces included, or the single wrapped statement
	Statements []Statement   // Statements in source order
}

func (b *Block) GetSpan() position.Span { return b.Span }
func (b *Block) statementNode()         {}
func (b *Block) String() string {
	return sexpr("block", nodeStrings(b.Statements)...)
}
func (b *Block) Accept(visitor Visitor) interface{} { return visitor.VisitBlock(b) }

// ExpressionStatement represents an expression evaluated for its effect
type ExpressionStatement struct {
	Span       position.Span // Source span of the expression
	Expression Expression    // The expression
}

func (e *ExpressionStatement) GetSpan() position.Span { return e.Span }
func (e *ExpressionStatement) statementNode()         {}
func (e *ExpressionStatement) String() string         { return e.Expression.String() }
func (e *ExpressionStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitExpressionStatement(e)
}

// ReturnStatement represents return statements
type ReturnStatement struct {
	Span  position.Span // Source span of the statement
	Value Expression    // Return value (nil for bare return)
}

func (r *ReturnStatement) GetSpan() position.Span { return r.Span }
func (r *ReturnStatement) statementNode()         {}
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return sexpr("return")
	}
	return sexpr("return", r.Value.String())
}
func (r *ReturnStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitReturnStatement(r)
}

// IfStatement represents a conditional with its flattened elseif chain.
// Failure belongs to the whole chain and runs only when every condition fails.
type IfStatement struct {
	Span       position.Span   // From "if" to the end of the last branch
	Condition  Expression      // Main condition
	Success    *Block          // Branch taken when Condition holds
	Alternates []*ElseIfClause // elseif clauses in source order
	Failure    *Block          // else branch (nil if none)
}

func (i *IfStatement) GetSpan() position.Span { return i.Span }
func (i *IfStatement) statementNode()         {}
func (i *IfStatement) String() string {
	parts := []string{i.Condition.String(), i.Success.String()}
	parts = append(parts, nodeStrings(i.Alternates)...)
	if i.Failure != nil {
		parts = append(parts, sexpr("else", i.Failure.String()))
	}
	return sexpr("if", parts...)
}
func (i *IfStatement) Accept(visitor Visitor) interface{} { return visitor.VisitIfStatement(i) }

// ElseIfClause is one alternate branch of an IfStatement. It holds no
// alternates of its own.
type ElseIfClause struct {
	Span      position.Span // From "elseif" to the end of the body
	Condition Expression    // Clause condition
	Body      *Block        // Branch taken when Condition holds
}

func (e *ElseIfClause) GetSpan() position.Span { return e.Span }
func (e *ElseIfClause) String() string {
	return sexpr("elseif", e.Condition.String(), e.Body.String())
}
func (e *ElseIfClause) Accept(visitor Visitor) interface{} { return visitor.VisitElseIfClause(e) }

// WhileStatement represents while loops
type WhileStatement struct {
	Span      position.Span // Source span of the loop
	Condition Expression    // Loop condition
	Body      *Block        // Loop body
}

func (w *WhileStatement) GetSpan() position.Span { return w.Span }
func (w *WhileStatement) statementNode()         {}
func (w *WhileStatement) String() string {
	return sexpr("while", w.Condition.String(), w.Body.String())
}
func (w *WhileStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitWhileStatement(w)
}

// ForStatement represents the three-part "for (init; cond; iter)" loop.
// Each clause may be absent.
type ForStatement struct {
	Span      position.Span // Source span of the loop
	Init      Statement     // Initializer (nil if empty)
	Condition Expression    // Condition (nil if empty)
	Iteration Statement     // Iteration step (nil if empty)
	Body      *Block        // Loop body
}

func (f *ForStatement) GetSpan() position.Span { return f.Span }
func (f *ForStatement) statementNode()         {}
func (f *ForStatement) String() string {
	return sexpr("for", optString(f.Init), optString(f.Condition), optString(f.Iteration), f.Body.String())
}
func (f *ForStatement) Accept(visitor Visitor) interface{} { return visitor.VisitForStatement(f) }

// ForEachStatement represents "forEach (name in container) body"
type ForEachStatement struct {
	Span      position.Span // Source span of the loop
	Variable  *Identifier   // Bound element variable
	Container Expression    // Iterated value
	Body      *Block        // Loop body
}

func (f *ForEachStatement) GetSpan() position.Span { return f.Span }
func (f *ForEachStatement) statementNode()         {}
func (f *ForEachStatement) String() string {
	return sexpr("foreach", f.Variable.String(), f.Container.String(), f.Body.String())
}
func (f *ForEachStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitForEachStatement(f)
}

// BreakStatement represents break
type BreakStatement struct {
	Span position.Span // Span of the keyword
}

func (b *BreakStatement) GetSpan() position.Span             { return b.Span }
func (b *BreakStatement) statementNode()                     {}
func (b *BreakStatement) String() string                     { return sexpr("break") }
func (b *BreakStatement) Accept(visitor Visitor) interface{} { return visitor.VisitBreakStatement(b) }

// ContinueStatement represents continue
type ContinueStatement struct {
	Span position.Span // Span of the keyword
}

func (c *ContinueStatement) GetSpan() position.Span { return c.Span }
func (c *ContinueStatement) statementNode()         {}
func (c *ContinueStatement) String() string         { return sexpr("continue") }
func (c *ContinueStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitContinueStatement(c)
}

// ===== Expressions =====

// Identifier represents a variable reference or a declared name
type Identifier struct {
	Span position.Span // Source span of the identifier
	Name string        // Identifier text
}

func (i *Identifier) GetSpan() position.Span             { return i.Span }
func (i *Identifier) expressionNode()                    {}
func (i *Identifier) String() string                     { return i.Name }
func (i *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(i) }

// Assignment represents "name = value". It is an expression.
type Assignment struct {
	Span  position.Span // From the name to the end of the value
	Name  *Identifier   // Assigned variable
	Value Expression    // Assigned value
}

func (a *Assignment) GetSpan() position.Span { return a.Span }
func (a *Assignment) expressionNode()        {}
func (a *Assignment) String() string {
	return sexpr("=", a.Name.String(), a.Value.String())
}
func (a *Assignment) Accept(visitor Visitor) interface{} { return visitor.VisitAssignment(a) }

// IntegerLiteral represents an integer literal
type IntegerLiteral struct {
	Span  position.Span // Source span of the literal
	Raw   string        // Raw source text
	Value int64         // Parsed value
}

func (l *IntegerLiteral) GetSpan() position.Span { return l.Span }
func (l *IntegerLiteral) expressionNode()        {}
func (l *IntegerLiteral) String() string         { return l.Raw }
func (l *IntegerLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitIntegerLiteral(l)
}

// FloatLiteral represents a floating point literal
type FloatLiteral struct {
	Span  position.Span // Source span of the literal
	Raw   string        // Raw source text, "0.0" for a lone "."
	Value float64       // Parsed value
}

func (l *FloatLiteral) GetSpan() position.Span             { return l.Span }
func (l *FloatLiteral) expressionNode()                    {}
func (l *FloatLiteral) String() string                     { return l.Raw }
func (l *FloatLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitFloatLiteral(l) }

// StringLiteral represents a string literal. Value is the raw text
// between the quotes; escape sequences are not decoded.
type StringLiteral struct {
	Span  position.Span // Source span including quotes
	Value string        // Raw contents
}

func (l *StringLiteral) GetSpan() position.Span { return l.Span }
func (l *StringLiteral) expressionNode()        {}
func (l *StringLiteral) String() string         { return `"` + l.Value + `"` }
func (l *StringLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitStringLiteral(l)
}

// CharLiteral represents a character literal
type CharLiteral struct {
	Span  position.Span // Source span including quotes
	Value rune          // The character
}

func (l *CharLiteral) GetSpan() position.Span             { return l.Span }
func (l *CharLiteral) expressionNode()                    {}
func (l *CharLiteral) String() string                     { return "'" + string(l.Value) + "'" }
func (l *CharLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitCharLiteral(l) }

// BoolLiteral represents true and false
type BoolLiteral struct {
	Span  position.Span // Span of the keyword
	Value bool          // Literal value
}

func (l *BoolLiteral) GetSpan() position.Span             { return l.Span }
func (l *BoolLiteral) expressionNode()                    {}
func (l *BoolLiteral) String() string                     { return fmt.Sprint(l.Value) }
func (l *BoolLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitBoolLiteral(l) }

// ArrayLiteral represents "[e1, e2, ...]" with at least one element
type ArrayLiteral struct {
	Span     position.Span // Brackets included
	Elements []Expression  // Elements in source order
}

func (l *ArrayLiteral) GetSpan() position.Span { return l.Span }
func (l *ArrayLiteral) expressionNode()        {}
func (l *ArrayLiteral) String() string {
	return sexpr("array", nodeStrings(l.Elements)...)
}
func (l *ArrayLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitArrayLiteral(l) }

// BinaryExpression represents binary operations (a + b, a == b, etc.)
type BinaryExpression struct {
	Span     position.Span // Source span of the entire expression
	Left     Expression    // Left operand
	Operator Operator      // Binary operator
	Right    Expression    // Right operand
}

func (b *BinaryExpression) GetSpan() position.Span { return b.Span }
func (b *BinaryExpression) expressionNode()        {}
func (b *BinaryExpression) String() string {
	return sexpr(b.Operator.String(), b.Left.String(), b.Right.String())
}
func (b *BinaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpression(b)
}

// UnaryExpression represents prefix operations (-a, !a, ~a)
type UnaryExpression struct {
	Span     position.Span // Source span of the expression
	Operator Operator      // Unary operator
	Operand  Expression    // Operand expression
}

func (u *UnaryExpression) GetSpan() position.Span { return u.Span }
func (u *UnaryExpression) expressionNode()        {}
func (u *UnaryExpression) String() string {
	return sexpr(u.Operator.String(), u.Operand.String())
}
func (u *UnaryExpression) Accept(visitor Visitor) interface{} { return visitor.VisitUnaryExpression(u) }

// CallExpression represents function calls
type CallExpression struct {
	Span      position.Span // From the callee to the closing parenthesis
	Callee    Expression    // Function being called
	Arguments []Expression  // Call arguments
}

func (c *CallExpression) GetSpan() position.Span { return c.Span }
func (c *CallExpression) expressionNode()        {}
func (c *CallExpression) String() string {
	return sexpr("call", append([]string{c.Callee.String()}, nodeStrings(c.Arguments)...)...)
}
func (c *CallExpression) Accept(visitor Visitor) interface{} { return visitor.VisitCallExpression(c) }

// ===== Operators =====

// Operator represents all operators in the language
type Operator int

const (
	// Arithmetic operators
	OpAdd Operator = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /

	// Comparison operators
	OpEq // ==
	OpNe // !=
	OpLt // <
	OpLe // <=
	OpGt // >
	OpGe // >=

	// Logical operators
	OpAnd // &&
	OpOr  // ||
	OpNot // !

	// Bitwise operators
	OpBitAnd // &
	OpBitOr  // |
	OpBitXor // ^
	OpBitNot // ~

	// Negation
	OpNeg // unary -
)

var operatorSymbols = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpEq:     "==",
	OpNe:     "!=",
	OpLt:     "<",
	OpLe:     "<=",
	OpGt:     ">",
	OpGe:     ">=",
	OpAnd:    "&&",
	OpOr:     "||",
	OpNot:    "!",
	OpBitAnd: "&",
	OpBitOr:  "|",
	OpBitXor: "^",
	OpBitNot: "~",
	OpNeg:    "-",
}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return "unknown"
}

// IsUnary reports whether op is a prefix operator.
func (op Operator) IsUnary() bool {
	return op == OpNot || op == OpBitNot || op == OpNeg
}

// ===== Helpers =====

func sexpr(head string, parts ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for i, p := range parts {
		if head != "" || i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	b.WriteByte(')')
	return b.String()
}

func nodeStrings[N Node](nodes []N) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}

// optString renders an optional child, "_" when absent.
func optString(n Node) string {
	if n == nil {
		return "_"
	}
	return n.String()
}
