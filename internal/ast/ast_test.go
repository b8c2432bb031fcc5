package ast

import (
	"testing"

	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/types"
)

// createTestSpan creates a one-line span covering columns [col, col+width)
func createTestSpan(line, col, width int) position.Span {
	start := position.Position{Offset: col - 1, Line: line, Column: col}
	end := position.Position{Offset: col - 1 + width, Line: line, Column: col + width}
	return position.NewSpan(start, end)
}

func ident(name string) *Identifier {
	return &Identifier{Span: createTestSpan(1, 1, len(name)), Name: name}
}

func intLit(raw string, v int64) *IntegerLiteral {
	return &IntegerLiteral{Span: createTestSpan(1, 1, len(raw)), Raw: raw, Value: v}
}

func block(stmts ...Statement) *Block {
	return &Block{Span: createTestSpan(1, 1, 2), Statements: stmts}
}

func exprStmt(e Expression) *ExpressionStatement {
	return &ExpressionStatement{Span: e.GetSpan(), Expression: e}
}

// TestBasicNodeTypes tests basic AST node creation and functionality
func TestBasicNodeTypes(t *testing.T) {
	span := createTestSpan(1, 1, 7)

	id := &Identifier{Span: span, Name: "testVar"}
	if id.GetSpan() != span {
		t.Error("Identifier span not set correctly")
	}
	if id.String() != "testVar" {
		t.Errorf("Expected 'testVar', got '%s'", id.String())
	}

	tests := []struct {
		node     Node
		expected string
	}{
		{intLit("42", 42), "42"},
		{&FloatLiteral{Raw: "3.5", Value: 3.5}, "3.5"},
		{&FloatLiteral{Raw: "0.0"}, "0.0"},
		{&StringLiteral{Value: `a\"b`}, `"a\"b"`},
		{&CharLiteral{Value: 'x'}, "'x'"},
		{&BoolLiteral{Value: true}, "true"},
		{&BoolLiteral{Value: false}, "false"},
		{&ArrayLiteral{Elements: []Expression{intLit("1", 1), intLit("2", 2)}}, "(array 1 2)"},
		{&Assignment{Name: ident("x"), Value: intLit("1", 1)}, "(= x 1)"},
		{&UnaryExpression{Operator: OpNot, Operand: ident("ok")}, "(! ok)"},
		{&UnaryExpression{Operator: OpNeg, Operand: ident("n")}, "(- n)"},
		{&CallExpression{Callee: ident("f"), Arguments: []Expression{ident("a"), intLit("2", 2)}}, "(call f a 2)"},
		{&CallExpression{Callee: ident("g")}, "(call g)"},
		{&BreakStatement{}, "(break)"},
		{&ContinueStatement{}, "(continue)"},
		{&ReturnStatement{}, "(return)"},
		{&ReturnStatement{Value: ident("x")}, "(return x)"},
		{&VariableDeclaration{Name: ident("xs"), Type: types.NewArray(types.NewBasic(types.Int))}, "(var xs [int])"},
		{&VariableDeclaration{Name: ident("s"), Type: types.NewBasic(types.Str), Initializer: &StringLiteral{Value: "hi"}}, `(var s str "hi")`},
		{block(), "(block)"},
		{&Program{}, "(program)"},
	}

	for i, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("tests[%d] - String() wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

// TestBinaryExpression tests binary expression functionality
func TestBinaryExpression(t *testing.T) {
	span := createTestSpan(1, 1, 5)

	left := intLit("1", 1)
	right := &BinaryExpression{Left: intLit("2", 2), Operator: OpMul, Right: intLit("3", 3)}

	binExpr := &BinaryExpression{
		Span:     span,
		Left:     left,
		Operator: OpAdd,
		Right:    right,
	}

	if binExpr.GetSpan() != span {
		t.Error("BinaryExpression span not set correctly")
	}
	if binExpr.Left != left || binExpr.Right != right {
		t.Error("BinaryExpression operands not set correctly")
	}
	if got := binExpr.String(); got != "(+ 1 (* 2 3))" {
		t.Errorf("Expected '(+ 1 (* 2 3))', got '%s'", got)
	}
}

// TestFunctionDeclaration tests function declaration functionality
func TestFunctionDeclaration(t *testing.T) {
	fn := &FunctionDeclaration{
		Name: ident("add"),
		Parameters: []*Parameter{
			{Name: ident("a"), Type: types.NewBasic(types.Int)},
			{Name: ident("b"), Type: types.NewArray(types.NewBasic(types.Float))},
		},
		ReturnType: types.NewBasic(types.Int),
		Body:       block(&ReturnStatement{Value: ident("a")}),
	}

	expected := "(func add ((a int) (b [float])) int (block (return a)))"
	if got := fn.String(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	noParams := &FunctionDeclaration{
		Name:       ident("main"),
		ReturnType: types.NewBasic(types.Void),
		Body:       block(),
	}
	if got := noParams.String(); got != "(func main () void (block))" {
		t.Errorf("Expected '(func main () void (block))', got %q", got)
	}

	prog := &Program{Functions: []*FunctionDeclaration{noParams}}
	if got := prog.String(); got != "(program (func main () void (block)))" {
		t.Errorf("unexpected program string %q", got)
	}
}

// TestControlFlowStrings tests rendering of the statement nodes
func TestControlFlowStrings(t *testing.T) {
	ifStmt := &IfStatement{
		Condition: ident("a"),
		Success:   block(exprStmt(intLit("1", 1))),
		Alternates: []*ElseIfClause{
			{Condition: ident("b"), Body: block(exprStmt(intLit("2", 2)))},
			{Condition: ident("c"), Body: block(exprStmt(intLit("3", 3)))},
		},
		Failure: block(exprStmt(intLit("4", 4))),
	}
	expected := "(if a (block 1) (elseif b (block 2)) (elseif c (block 3)) (else (block 4)))"
	if got := ifStmt.String(); got != expected {
		t.Errorf("if:\nexpected=%q\n     got=%q", expected, got)
	}

	bare := &IfStatement{Condition: ident("a"), Success: block()}
	if got := bare.String(); got != "(if a (block))" {
		t.Errorf("bare if: got %q", got)
	}

	forStmt := &ForStatement{Body: block(&BreakStatement{})}
	if got := forStmt.String(); got != "(for _ _ _ (block (break)))" {
		t.Errorf("empty for: got %q", got)
	}

	fullFor := &ForStatement{
		Init:      &VariableDeclaration{Name: ident("i"), Type: types.NewBasic(types.Int), Initializer: intLit("0", 0)},
		Condition: &BinaryExpression{Left: ident("i"), Operator: OpLt, Right: intLit("3", 3)},
		Iteration: exprStmt(&Assignment{Name: ident("i"), Value: &BinaryExpression{Left: ident("i"), Operator: OpAdd, Right: intLit("1", 1)}}),
		Body:      block(),
	}
	expected = "(for (var i int 0) (< i 3) (= i (+ i 1)) (block))"
	if got := fullFor.String(); got != expected {
		t.Errorf("for:\nexpected=%q\n     got=%q", expected, got)
	}

	forEach := &ForEachStatement{Variable: ident("x"), Container: ident("xs"), Body: block(&ContinueStatement{})}
	if got := forEach.String(); got != "(foreach x xs (block (continue)))" {
		t.Errorf("foreach: got %q", got)
	}

	while := &WhileStatement{Condition: &BoolLiteral{Value: true}, Body: block()}
	if got := while.String(); got != "(while true (block))" {
		t.Errorf("while: got %q", got)
	}
}

func TestOperatorString(t *testing.T) {
	tests := map[Operator]string{
		OpAdd:        "+",
		OpSub:        "-",
		OpMul:        "*",
		OpDiv:        "/",
		OpEq:         "==",
		OpNe:         "!=",
		OpLt:         "<",
		OpLe:         "<=",
		OpGt:         ">",
		OpGe:         ">=",
		OpAnd:        "&&",
		OpOr:         "||",
		OpNot:        "!",
		OpBitAnd:     "&",
		OpBitOr:      "|",
		OpBitXor:     "^",
		OpBitNot:     "~",
		OpNeg:        "-",
		Operator(-1): "unknown",
		Operator(99): "unknown",
	}
	for op, expected := range tests {
		if got := op.String(); got != expected {
			t.Errorf("Operator(%d).String() = %q, want %q", int(op), got, expected)
		}
	}

	for _, op := range []Operator{OpNot, OpBitNot, OpNeg} {
		if !op.IsUnary() {
			t.Errorf("%s should be unary", op)
		}
	}
	if OpSub.IsUnary() {
		t.Error("binary '-' must not report unary")
	}
}

// TestMarkerInterfaces checks the statement/expression split at compile time
func TestMarkerInterfaces(t *testing.T) {
	var _ Statement = (*Block)(nil)
	var _ Statement = (*VariableDeclaration)(nil)
	var _ Statement = (*ExpressionStatement)(nil)
	var _ Statement = (*ReturnStatement)(nil)
	var _ Statement = (*IfStatement)(nil)
	var _ Statement = (*WhileStatement)(nil)
	var _ Statement = (*ForStatement)(nil)
	var _ Statement = (*ForEachStatement)(nil)
	var _ Statement = (*BreakStatement)(nil)
	var _ Statement = (*ContinueStatement)(nil)

	var _ Expression = (*Identifier)(nil)
	var _ Expression = (*Assignment)(nil)
	var _ Expression = (*IntegerLiteral)(nil)
	var _ Expression = (*FloatLiteral)(nil)
	var _ Expression = (*StringLiteral)(nil)
	var _ Expression = (*CharLiteral)(nil)
	var _ Expression = (*BoolLiteral)(nil)
	var _ Expression = (*ArrayLiteral)(nil)
	var _ Expression = (*BinaryExpression)(nil)
	var _ Expression = (*UnaryExpression)(nil)
	var _ Expression = (*CallExpression)(nil)

	var _ Node = (*Program)(nil)
	var _ Node = (*FunctionDeclaration)(nil)
	var _ Node = (*Parameter)(nil)
	var _ Node = (*ElseIfClause)(nil)
}
