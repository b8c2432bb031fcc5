package parser

import (
	"strings"
	"testing"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/diagnostic"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/vocabulary"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()

	program, err := ParseSource(input, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected parser error for %q: %v", input, err)
	}
	return program
}

// parseBody parses statements as the body of a single function.
func parseBody(t *testing.T, body string) []ast.Statement {
	t.Helper()

	program := parseProgram(t, "func main() -> void {\n"+body+"\n}")
	if len(program.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(program.Functions))
	}
	return program.Functions[0].Body.Statements
}

// parseExpr parses a single expression statement.
func parseExpr(t *testing.T, expr string) ast.Expression {
	t.Helper()

	stmts := parseBody(t, expr+";")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", stmts[0])
	}
	return es.Expression
}

// expectError parses input and checks the failure code.
func expectError(t *testing.T, input string, code diagnostic.Code) *diagnostic.Error {
	t.Helper()

	program, err := ParseSource(input, nil, Options{})
	if err == nil {
		t.Fatalf("expected error %s for %q, got %v", code, input, program)
	}
	if program != nil {
		t.Fatalf("expected no program on error, got %v", program)
	}
	d, ok := diagnostic.As(err)
	if !ok {
		t.Fatalf("expected *diagnostic.Error, got %T: %v", err, err)
	}
	if d.Code != code {
		t.Fatalf("error code wrong for %q. expected=%s, got=%s (%s)", input, code, d.Code, d.Message)
	}
	return d
}

func TestOperatorPrecedence(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")

	bin, ok := expr.(*ast.BinaryExpression)
	if !ok || bin.Operator != ast.OpAdd {
		t.Fatalf("expected '+' at the root, got %s", expr)
	}
	right, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || right.Operator != ast.OpMul {
		t.Fatalf("expected '*' as right child, got %s", bin.Right)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"a > b && c", "(&& (> a b) c)"},
		{"c && a > b", "(&& c (> a b))"},
		{"a + 1 > b", "(> (+ a 1) b)"},
		{"a > b + 1", "(> a (+ b 1))"},
		{"a > b == c < d", "(== (> a b) (< c d))"},
	}
	for i, tt := range tests {
		if got := parseExpr(t, tt.input).String(); got != tt.expected {
			t.Errorf("tests[%d] - wrong tree. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestLeftAssociativity(t *testing.T) {
	expr := parseExpr(t, "1 - 2 - 3")

	bin := expr.(*ast.BinaryExpression)
	left, ok := bin.Left.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected nested left operand, got %s", expr)
	}
	if lit, ok := bin.Right.(*ast.IntegerLiteral); !ok || lit.Value != 3 {
		t.Fatalf("expected 3 as right operand, got %s", bin.Right)
	}
	if left.String() != "(- 1 2)" {
		t.Fatalf("expected (- 1 2) on the left, got %s", left)
	}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"a == b && c", "(== a (&& b c))"},
		{"a < b == c", "(== (< a b) c)"},
		{"a || b && c", "(&& (|| a b) c)"},
		{"a != b", "(!= a b)"},
		{"a > b", "(> a b)"},
		{"a >= b <= c", "(<= (>= a b) c)"},
		{"1 + 2 & 3", "(+ 1 (& 2 3))"},
		{"a & b * c", "(& a (* b c))"},
		{"a | b ^ c", "(^ (| a b) c)"},
		{"-x * 2", "(* (- x) 2)"},
		{"!done", "(! done)"},
		{"~mask", "(~ mask)"},
		{"!f(1)", "(! (call f 1))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"x = 1 + 2", "(= x (+ 1 2))"},
		{"a = b = 1", "(= a (= b 1))"},
		{"f()", "(call f)"},
		{"f(a, b + 1)", "(call f a (+ b 1))"},
		{"f(a,)", "(call f a)"},
		{"[1, 2, 3]", "(array 1 2 3)"},
		{"[[1], [2, 3]]", "(array (array 1) (array 2 3))"},
		{"true || false", "(|| true false)"},
		{`"s" == "t"`, `(== "s" "t")`},
		{"'c'", "'c'"},
		{"1.5 + .", "(+ 1.5 0.0)"},
	}

	for i, tt := range tests {
		expr := parseExpr(t, tt.input)
		if got := expr.String(); got != tt.expected {
			t.Errorf("tests[%d] %q - wrong tree. expected=%q, got=%q", i, tt.input, tt.expected, got)
		}
	}
}

func TestLiteralValues(t *testing.T) {
	if lit := parseExpr(t, "9223372036854775807").(*ast.IntegerLiteral); lit.Value != 9223372036854775807 {
		t.Errorf("max int64 parsed as %d", lit.Value)
	}
	if lit := parseExpr(t, "2.25").(*ast.FloatLiteral); lit.Value != 2.25 || lit.Raw != "2.25" {
		t.Errorf("float literal = %v (%q)", lit.Value, lit.Raw)
	}
	if lit := parseExpr(t, `"a\nb"`).(*ast.StringLiteral); lit.Value != `a\nb` {
		t.Errorf("string literal value must stay raw, got %q", lit.Value)
	}
	if lit := parseExpr(t, "'z'").(*ast.CharLiteral); lit.Value != 'z' {
		t.Errorf("char literal = %q", lit.Value)
	}
	if lit := parseExpr(t, "false").(*ast.BoolLiteral); lit.Value {
		t.Error("false parsed as true")
	}
}

func TestElseIfFlattening(t *testing.T) {
	stmts := parseBody(t, "if a {1;} elseif b {2;} elseif c {3;} else {4;}")
	if len(stmts) != 1 {
		t.Fatalf("expected a single if statement, got %d statements", len(stmts))
	}

	ifStmt, ok := stmts[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", stmts[0])
	}
	if len(ifStmt.Alternates) != 2 {
		t.Fatalf("expected 2 alternate clauses, got %d", len(ifStmt.Alternates))
	}
	for i, name := range []string{"b", "c"} {
		if got := ifStmt.Alternates[i].Condition.String(); got != name {
			t.Errorf("alternate[%d] condition = %s, want %s", i, got, name)
		}
	}
	if ifStmt.Failure == nil || ifStmt.Failure.String() != "(block 4)" {
		t.Fatalf("expected shared else block (block 4), got %v", ifStmt.Failure)
	}

	expected := "(if a (block 1) (elseif b (block 2)) (elseif c (block 3)) (else (block 4)))"
	if got := ifStmt.String(); got != expected {
		t.Errorf("expected=%q, got=%q", expected, got)
	}
}

func TestIfForms(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"if a {}", "(if a (block))"},
		{"if a x = 1;", "(if a (block (= x 1)))"},
		{"if a {} else b = 2;", "(if a (block) (else (block (= b 2))))"},
		{"if a {} elseif b {}", "(if a (block) (elseif b (block)))"},
		{"if a {} else if b {} else {}", "(if a (block) (else (block (if b (block) (else (block))))))"},
	}

	for i, tt := range tests {
		stmts := parseBody(t, tt.input)
		if len(stmts) != 1 {
			t.Fatalf("tests[%d] - expected 1 statement, got %d", i, len(stmts))
		}
		if got := stmts[0].String(); got != tt.expected {
			t.Errorf("tests[%d] - wrong tree. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var x: int;", "(var x int)"},
		{"var xs: [[str]] = [[\"a\"]];", `(var xs [[str]] (array (array "a")))`},
		{"return;", "(return)"},
		{"return 1 + 1;", "(return (+ 1 1))"},
		{"{ var a: bool = true; { a = false; } }", "(block (var a bool true) (block (= a false)))"},
		{"while x < 3 x = x + 1;", "(while (< x 3) (block (= x (+ x 1))))"},
		{"while x ;", "(while x (block))"},
		{"while true { break; continue; }", "(while true (block (break) (continue)))"},
		{"for (;;) {}", "(for _ _ _ (block))"},
		{"for (var i: int = 0; i < n; i = i + 1) { }", "(for (var i int 0) (< i n) (= i (+ i 1)) (block))"},
		{"for (i = 0; ; ) break;", "(for (= i 0) _ _ (block (break)))"},
		{"for (; ok; ) {}", "(for _ ok _ (block))"},
		{"forEach (x in xs) print(x);", "(foreach x xs (block (call print x)))"},
		{"forEach (c in \"abc\") { print(c); }", `(foreach c "abc" (block (call print c)))`},
		{"f(1);", "(call f 1)"},
	}

	for i, tt := range tests {
		stmts := parseBody(t, tt.input)
		if len(stmts) != 1 {
			t.Fatalf("tests[%d] %q - expected 1 statement, got %d", i, tt.input, len(stmts))
		}
		if got := stmts[0].String(); got != tt.expected {
			t.Errorf("tests[%d] - wrong tree. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestEmptyStatementsAreDropped(t *testing.T) {
	stmts := parseBody(t, ";; var a: int; ; {} ;")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
	}
}

func TestFunctionDeclarations(t *testing.T) {
	program := parseProgram(t, `
func add(a: int, b: int, a: [float]) -> int {
    return a + b;
}

func main() -> void return;
`)

	if len(program.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(program.Functions))
	}

	add := program.Functions[0]
	if add.Name.Name != "add" || add.ReturnType.String() != "int" {
		t.Fatalf("unexpected signature %s", add)
	}
	var names []string
	for _, p := range add.Parameters {
		names = append(names, p.Name.Name+":"+p.Type.String())
	}
	if got := strings.Join(names, ","); got != "a:int,b:int,a:[float]" {
		t.Errorf("parameters must keep order and duplicates, got %s", got)
	}

	main := program.Functions[1]
	if len(main.Parameters) != 0 || main.Body.String() != "(block (return))" {
		t.Errorf("unexpected main %s", main)
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// just a comment\n", "/* block */"} {
		program := parseProgram(t, input)
		if len(program.Functions) != 0 {
			t.Errorf("%q: expected empty program, got %s", input, program)
		}
	}

	program, err := Parse(nil, nil, Options{})
	if err != nil || len(program.Functions) != 0 {
		t.Fatalf("Parse(nil) = %v, %v", program, err)
	}
}

func TestLoopControlOutsideLoop(t *testing.T) {
	d := expectError(t, "func f() -> void {\n  break;\n}", diagnostic.CodeOutsideLoop)
	want := position.NewSpan(
		position.Position{Offset: 21, Line: 2, Column: 3},
		position.Position{Offset: 26, Line: 2, Column: 8},
	)
	if d.Span != want {
		t.Errorf("span = %+v, want %+v", d.Span, want)
	}
	if !strings.Contains(d.Message, "must be in loop") {
		t.Errorf("unexpected message %q", d.Message)
	}

	inputs := []string{
		"func f() -> void continue;",
		"func f() -> void { if x { break; } }",
		"func f() -> void { while x {} break; }",
		"func f() -> void { for (;;) {} continue; }",
		"func f() -> void { forEach (x in xs) {} break; }",
		"func f() -> void { forEach (x in xs) { break; } }",
		"func f() -> void { forEach (c in \"abc\") { continue; } }",
		"func f() -> void { forEach (x in xs) { { break; } } }",
		"func f() -> void { for (break; ;) {} }",
	}
	for _, input := range inputs {
		expectError(t, input, diagnostic.CodeOutsideLoop)
	}
}

func TestLoopControlInsideLoop(t *testing.T) {
	inputs := []string{
		"while x { if y { break; } else { continue; } }",
		"for (;;) { while a { break; } continue; }",
		"while ok { forEach (x in xs) { break; } }",
		"for (;;) forEach (x in xs) continue;",
		"while x break;",
	}
	for _, input := range inputs {
		parseBody(t, input)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		code    diagnostic.Code
		message string
	}{
		{"top level statement", "var x: int;", diagnostic.CodeUnexpectedToken, "expected function declaration"},
		{"trailing brace", "func f() -> void {} }", diagnostic.CodeUnexpectedToken, "unexpected '}', expected function declaration"},
		{"trailing statement", "func f() -> void {} return;", diagnostic.CodeUnexpectedToken, `unexpected "return", expected function declaration`},
		{"missing function name", "func () -> int {}", diagnostic.CodeExpectedToken, "expected function name"},
		{"missing paren", "func f -> int {}", diagnostic.CodeExpectedToken, "expected '('"},
		{"bad parameter", "func f(1) -> int {}", diagnostic.CodeExpectedToken, "expected parameter name or ')'"},
		{"missing colon", "func f(a int) -> int {}", diagnostic.CodeExpectedToken, "expected ':'"},
		{"missing close paren", "func f(a: int b: int) -> int {}", diagnostic.CodeExpectedToken, "expected ')'"},
		{"missing arrow", "func f() int {}", diagnostic.CodeExpectedToken, "expected '->'"},
		{"missing type", "func f() -> {}", diagnostic.CodeExpectedType, "expected type"},
		{"unterminated block", "func f() -> int { return 1;", diagnostic.CodeExpectedToken, "expected '}'"},
		{"missing semicolon", "func f() -> int { x = 1 }", diagnostic.CodeExpectedToken, "expected ';'"},
		{"var missing name", "func f() -> int { var : int; }", diagnostic.CodeExpectedToken, "expected variable name"},
		{"var missing colon", "func f() -> int { var a int; }", diagnostic.CodeExpectedToken, "expected ':'"},
		{"var bad type", "func f() -> int { var a: a; }", diagnostic.CodeExpectedType, "expected type"},
		{"array type missing bracket", "func f() -> [int { }", diagnostic.CodeExpectedToken, "expected ']'"},
		{"unexpected eof", "func f() -> int { return 1 +", diagnostic.CodeUnexpectedEOF, "unexpected end of input"},
		{"unexpected token", "func f() -> int { return ); }", diagnostic.CodeUnexpectedToken, "unexpected ')'"},
		{"empty array", "func f() -> int { x = []; }", diagnostic.CodeUnexpectedToken, "unexpected ']'"},
		{"unclosed array", "func f() -> int { x = [1, 2; }", diagnostic.CodeExpectedToken, "expected ']'"},
		{"unclosed paren", "func f() -> int { x = (1; }", diagnostic.CodeExpectedToken, "expected ')'"},
		{"unclosed call", "func f() -> int { g(1 2); }", diagnostic.CodeExpectedToken, "expected ')'"},
		{"repeated prefix", "func f() -> int { ~-x; }", diagnostic.CodeUnexpectedToken, "unexpected '-'"},
		{"chained call", "func f() -> int { g(1)(2); }", diagnostic.CodeExpectedToken, "expected ';'"},
		{"for missing paren", "func f() -> int { for ;; {} }", diagnostic.CodeExpectedToken, "expected '('"},
		{"for missing separator", "func f() -> int { for (; x ) {} }", diagnostic.CodeExpectedToken, "expected ';'"},
		{"for missing close", "func f() -> int { for (;; x = 1 {} }", diagnostic.CodeExpectedToken, "expected ')'"},
		{"foreach missing name", "func f() -> int { forEach (1 in xs) {} }", diagnostic.CodeExpectedToken, "expected variable name"},
		{"foreach missing in", "func f() -> int { forEach (x xs) {} }", diagnostic.CodeExpectedToken, `expected "in"`},
		{"keyword as value", "func f() -> int { return while; }", diagnostic.CodeUnexpectedToken, `unexpected "while"`},
		{"integer overflow", "func f() -> int { return 99999999999999999999; }", diagnostic.CodeInvalidLiteral, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := expectError(t, tt.input, tt.code)
			if !strings.Contains(d.Message, tt.message) {
				t.Errorf("message = %q, want substring %q", d.Message, tt.message)
			}
			if d.Stage != diagnostic.StageParser {
				t.Errorf("stage = %v, want parser", d.Stage)
			}
		})
	}
}

func TestLexicalErrorsSurface(t *testing.T) {
	_, err := ParseSource(`func f() -> str { return "abc; }`, nil, Options{})
	d, ok := diagnostic.As(err)
	if !ok || d.Stage != diagnostic.StageLexer || d.Code != diagnostic.CodeUnterminatedString {
		t.Fatalf("expected unterminated string from the lexer, got %v", err)
	}
	if d.Span.Start.Column != 26 {
		t.Errorf("error should start at the opening quote, got column %d", d.Span.Start.Column)
	}
}

func TestNodeSpans(t *testing.T) {
	input := "func f(a: [int]) -> int {\n    var x: int = a[0];\n    return (x + 1) * 2;\n}"

	_, err := ParseSource(input, nil, Options{})
	d, _ := diagnostic.As(err)
	if d == nil || d.Code != diagnostic.CodeExpectedToken {
		t.Fatalf("indexing is not part of the grammar and must fail, got %v", err)
	}

	input = "func f(a: [int]) -> int {\n    var x: int = a;\n    return (x + 1) * f(2);\n}"
	file := position.NewSourceFile("", input)
	program := parseProgram(t, input)
	fn := program.Functions[0]

	tests := []struct {
		node     ast.Node
		expected string
	}{
		{fn.Parameters[0], "a: [int]"},
		{fn.Body.Statements[0], "var x: int = a;"},
		{fn.Body.Statements[1], "return (x + 1) * f(2);"},
		{fn.Body.Statements[1].(*ast.ReturnStatement).Value.(*ast.BinaryExpression).Right, "f(2)"},
	}
	for i, tt := range tests {
		if got := file.GetSpanText(tt.node.GetSpan()); got != tt.expected {
			t.Errorf("tests[%d] - span text wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}

	if got := file.GetSpanText(fn.GetSpan()); got != input {
		t.Errorf("function span should cover the whole declaration, got %q", got)
	}
	if fn.Body.GetSpan().Start.Line != 1 || fn.Body.GetSpan().End.Line != 4 {
		t.Errorf("body span = %s", fn.Body.GetSpan())
	}
}

func TestElseIfSpans(t *testing.T) {
	input := "func f() -> void { if a {} elseif b { x; } else {} }"
	file := position.NewSourceFile("", input)
	stmt := parseProgram(t, input).Functions[0].Body.Statements[0].(*ast.IfStatement)

	if got := file.GetSpanText(stmt.Span); got != "if a {} elseif b { x; } else {}" {
		t.Errorf("if span text = %q", got)
	}
	if got := file.GetSpanText(stmt.Alternates[0].Span); got != "elseif b { x; }" {
		t.Errorf("elseif span text = %q", got)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		depth    int
	}{
		{"int", "int", 0},
		{"void", "void", 0},
		{"[str]", "[str]", 1},
		{"[[int]]", "[[int]]", 2},
		{"[[[[char]]]]", "[[[[char]]]]", 4},
	}

	for _, tt := range tests {
		tokens, err := lexer.Tokenize(tt.input, nil)
		if err != nil {
			t.Fatal(err)
		}
		typ, err := ParseType(tokens, nil)
		if err != nil {
			t.Fatalf("ParseType(%q) failed: %v", tt.input, err)
		}
		if typ.String() != tt.expected {
			t.Errorf("ParseType(%q) = %s, want %s", tt.input, typ, tt.expected)
		}
	}

	errs := map[string]diagnostic.Code{
		"[int":  diagnostic.CodeExpectedToken,
		"int ]": diagnostic.CodeExpectedEndOfFile,
		"x":     diagnostic.CodeExpectedType,
		"":      diagnostic.CodeExpectedType,
		"[]":    diagnostic.CodeExpectedType,
	}
	for input, code := range errs {
		tokens, err := lexer.Tokenize(input, nil)
		if err != nil {
			t.Fatal(err)
		}
		_, err = ParseType(tokens, nil)
		d, ok := diagnostic.As(err)
		if !ok || d.Code != code {
			t.Errorf("ParseType(%q) error = %v, want code %s", input, err, code)
		}
	}
}

func TestNestingLimit(t *testing.T) {
	nested := func(n int) string {
		return "func f() -> int { return " + strings.Repeat("(", n) + "1" + strings.Repeat(")", n) + "; }"
	}

	if _, err := ParseSource(nested(100), nil, Options{}); err != nil {
		t.Fatalf("100 levels should parse with the default limit: %v", err)
	}

	_, err := ParseSource(nested(DefaultMaxDepth+10), nil, Options{})
	if d, ok := diagnostic.As(err); !ok || d.Code != diagnostic.CodeNestingTooDeep {
		t.Fatalf("expected nesting error, got %v", err)
	}

	_, err = ParseSource(nested(6), nil, Options{MaxDepth: 5})
	if d, ok := diagnostic.As(err); !ok || d.Code != diagnostic.CodeNestingTooDeep {
		t.Fatalf("expected nesting error with MaxDepth 5, got %v", err)
	}

	if _, err := ParseSource(nested(DefaultMaxDepth+10), nil, Options{MaxDepth: -1}); err != nil {
		t.Fatalf("negative MaxDepth disables the limit: %v", err)
	}

	deepType := "func f() -> " + strings.Repeat("[", 20) + "int" + strings.Repeat("]", 20) + " {}"
	if _, err := ParseSource(deepType, nil, Options{MaxDepth: 10}); err == nil {
		t.Fatal("expected deep array type to hit the limit")
	}
}

func TestCustomVocabulary(t *testing.T) {
	vocab, err := vocabulary.Decode([]byte(`
[keywords]
declare_func = "fn"
declare_var = "let"
condition_main = "when"
condition_alt = "orwhen"
condition_fail = "otherwise"
`), vocabulary.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	program, err := ParseSource("fn main() -> int { let if: int = 1; when if {} orwhen 2 {} otherwise return if; }", vocab, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "(program (func main () int (block (var if int 1) (if if (block) (elseif 2 (block)) (else (block (return if)))))))"
	if got := program.String(); got != expected {
		t.Errorf("expected=%q\n     got=%q", expected, got)
	}

	if _, err := ParseSource("func main() -> int {}", vocab, Options{}); err == nil {
		t.Error("the default spelling must not be a keyword under a custom vocabulary")
	}
}

func TestTokensWithoutEOF(t *testing.T) {
	tokens, err := lexer.Tokenize("func f() -> int {}", nil)
	if err != nil {
		t.Fatal(err)
	}

	program, err := Parse(tokens[:len(tokens)-1], nil, Options{})
	if err != nil {
		t.Fatalf("missing EOF should be supplied: %v", err)
	}
	if len(program.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(program.Functions))
	}
	if tokens[len(tokens)-1].Type != lexer.TokenEOF {
		t.Fatal("caller's token slice must not be modified")
	}
}
