package ast

// Visitor dispatches on the concrete node type through Node.Accept,
// without modifying the AST node types themselves.
type Visitor interface {
	// Program and declaration visitors.
	VisitProgram(node *Program) interface{}
	VisitFunctionDeclaration(node *FunctionDeclaration) interface{}
	VisitParameter(node *Parameter) interface{}
	VisitVariableDeclaration(node *VariableDeclaration) interface{}

	// Statement visitors.
	VisitBlock(node *Block) interface{}
	VisitExpressionStatement(node *ExpressionStatement) interface{}
	VisitReturnStatement(node *ReturnStatement) interface{}
	VisitIfStatement(node *IfStatement) interface{}
	VisitElseIfClause(node *ElseIfClause) interface{}
	VisitWhileStatement(node *WhileStatement) interface{}
	VisitForStatement(node *ForStatement) interface{}
	VisitForEachStatement(node *ForEachStatement) interface{}
	VisitBreakStatement(node *BreakStatement) interface{}
	VisitContinueStatement(node *ContinueStatement) interface{}

	// Expression visitors.
	VisitIdentifier(node *Identifier) interface{}
	VisitAssignment(node *Assignment) interface{}
	VisitIntegerLiteral(node *IntegerLiteral) interface{}
	VisitFloatLiteral(node *FloatLiteral) interface{}
	VisitStringLiteral(node *StringLiteral) interface{}
	VisitCharLiteral(node *CharLiteral) interface{}
	VisitBoolLiteral(node *BoolLiteral) interface{}
	VisitArrayLiteral(node *ArrayLiteral) interface{}
	VisitBinaryExpression(node *BinaryExpression) interface{}
	VisitUnaryExpression(node *UnaryExpression) interface{}
	VisitCallExpression(node *CallExpression) interface{}
}

// BaseVisitor provides a default implementation of the Visitor interface
// that returns nil for all visits. Embed it to override only some methods.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitProgram(node *Program) interface{}                         { return nil }
func (v *BaseVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} { return nil }
func (v *BaseVisitor) VisitParameter(node *Parameter) interface{}                     { return nil }
func (v *BaseVisitor) VisitVariableDeclaration(node *VariableDeclaration) interface{} { return nil }
func (v *BaseVisitor) VisitBlock(node *Block) interface{}                             { return nil }
func (v *BaseVisitor) VisitExpressionStatement(node *ExpressionStatement) interface{} { return nil }
func (v *BaseVisitor) VisitReturnStatement(node *ReturnStatement) interface{}         { return nil }
func (v *BaseVisitor) VisitIfStatement(node *IfStatement) interface{}                 { return nil }
func (v *BaseVisitor) VisitElseIfClause(node *ElseIfClause) interface{}               { return nil }
func (v *BaseVisitor) VisitWhileStatement(node *WhileStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitForStatement(node *ForStatement) interface{}               { return nil }
func (v *BaseVisitor) VisitForEachStatement(node *ForEachStatement) interface{}       { return nil }
func (v *BaseVisitor) VisitBreakStatement(node *BreakStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitContinueStatement(node *ContinueStatement) interface{}     { return nil }
func (v *BaseVisitor) VisitIdentifier(node *Identifier) interface{}                   { return nil }
func (v *BaseVisitor) VisitAssignment(node *Assignment) interface{}                   { return nil }
func (v *BaseVisitor) VisitIntegerLiteral(node *IntegerLiteral) interface{}           { return nil }
func (v *BaseVisitor) VisitFloatLiteral(node *FloatLiteral) interface{}               { return nil }
func (v *BaseVisitor) VisitStringLiteral(node *StringLiteral) interface{}             { return nil }
func (v *BaseVisitor) VisitCharLiteral(node *CharLiteral) interface{}                 { return nil }
func (v *BaseVisitor) VisitBoolLiteral(node *BoolLiteral) interface{}                 { return nil }
func (v *BaseVisitor) VisitArrayLiteral(node *ArrayLiteral) interface{}               { return nil }
func (v *BaseVisitor) VisitBinaryExpression(node *BinaryExpression) interface{}       { return nil }
func (v *BaseVisitor) VisitUnaryExpression(node *UnaryExpression) interface{}         { return nil }
func (v *BaseVisitor) VisitCallExpression(node *CallExpression) interface{}           { return nil }

// Children returns the direct child nodes of node in source order.
// Absent optional children are omitted.
func Children(node Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			add(f)
		}
	case *FunctionDeclaration:
		add(n.Name)
		for _, p := range n.Parameters {
			add(p)
		}
		add(n.Body)
	case *Parameter:
		add(n.Name)
	case *VariableDeclaration:
		add(n.Name)
		if n.Initializer != nil {
			add(n.Initializer)
		}
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *ReturnStatement:
		if n.Value != nil {
			add(n.Value)
		}
	case *IfStatement:
		add(n.Condition, n.Success)
		for _, alt := range n.Alternates {
			add(alt)
		}
		if n.Failure != nil {
			add(n.Failure)
		}
	case *ElseIfClause:
		add(n.Condition, n.Body)
	case *WhileStatement:
		add(n.Condition, n.Body)
	case *ForStatement:
		if n.Init != nil {
			add(n.Init)
		}
		if n.Condition != nil {
			add(n.Condition)
		}
		if n.Iteration != nil {
			add(n.Iteration)
		}
		add(n.Body)
	case *ForEachStatement:
		add(n.Variable, n.Container, n.Body)
	case *Assignment:
		add(n.Name, n.Value)
	case *ArrayLiteral:
		for _, e := range n.Elements {
			add(e)
		}
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *UnaryExpression:
		add(n.Operand)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *BreakStatement, *ContinueStatement, *Identifier,
		*IntegerLiteral, *FloatLiteral, *StringLiteral, *CharLiteral, *BoolLiteral:
		// leaves
	}

	return out
}

// Inspect traverses the tree rooted at node in depth-first pre-order,
// calling f for each node. If f returns false the children of that node
// are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range Children(node) {
		Inspect(c, f)
	}
}

// WalkingVisitor applies a visitor to every node of a tree in pre-order.
type WalkingVisitor struct {
	visitor Visitor // The actual visitor to delegate to
}

// NewWalkingVisitor creates a new walking visitor that delegates to the provided visitor.
func NewWalkingVisitor(visitor Visitor) *WalkingVisitor {
	return &WalkingVisitor{visitor: visitor}
}

// Walk visits node and all of its descendants. It returns the result of
// visiting node itself.
func (w *WalkingVisitor) Walk(node Node) interface{} {
	if node == nil {
		return nil
	}

	result := node.Accept(w.visitor)
	for _, c := range Children(node) {
		w.Walk(c)
	}

	return result
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node Node) int {
	n := 0
	Inspect(node, func(Node) bool {
		n++
		return true
	})
	return n
}
