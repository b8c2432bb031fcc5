package ast

import (
	"github.com/vela-lang/vela/internal/position"
	"github.com/vela-lang/vela/internal/types"
)

// Encode converts a tree into nested maps and slices of plain values, ready
// for a JSON or YAML encoder. Every node map has a "kind" and a "span" key;
// types are rendered in their surface syntax ("[int]").
func Encode(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	m := map[string]interface{}{
		"kind": kindOf(node),
		"span": encodeSpan(node.GetSpan()),
	}

	switch n := node.(type) {
	case *Program:
		m["functions"] = encodeList(n.Functions)
	case *FunctionDeclaration:
		m["name"] = n.Name.Name
		m["parameters"] = encodeList(n.Parameters)
		m["return_type"] = encodeType(n.ReturnType)
		m["body"] = Encode(n.Body)
	case *Parameter:
		m["name"] = n.Name.Name
		m["type"] = encodeType(n.Type)
	case *VariableDeclaration:
		m["name"] = n.Name.Name
		m["type"] = encodeType(n.Type)
		if n.Initializer != nil {
			m["initializer"] = Encode(n.Initializer)
		}
	case *Block:
		m["statements"] = encodeList(n.Statements)
	case *ExpressionStatement:
		m["expression"] = Encode(n.Expression)
	case *ReturnStatement:
		if n.Value != nil {
			m["value"] = Encode(n.Value)
		}
	case *IfStatement:
		m["condition"] = Encode(n.Condition)
		m["success"] = Encode(n.Success)
		m["alternates"] = encodeList(n.Alternates)
		if n.Failure != nil {
			m["failure"] = Encode(n.Failure)
		}
	case *ElseIfClause:
		m["condition"] = Encode(n.Condition)
		m["body"] = Encode(n.Body)
	case *WhileStatement:
		m["condition"] = Encode(n.Condition)
		m["body"] = Encode(n.Body)
	case *ForStatement:
		if n.Init != nil {
			m["init"] = Encode(n.Init)
		}
		if n.Condition != nil {
			m["condition"] = Encode(n.Condition)
		}
		if n.Iteration != nil {
			m["iteration"] = Encode(n.Iteration)
		}
		m["body"] = Encode(n.Body)
	case *ForEachStatement:
		m["variable"] = n.Variable.Name
		m["container"] = Encode(n.Container)
		m["body"] = Encode(n.Body)
	case *Identifier:
		m["name"] = n.Name
	case *Assignment:
		m["name"] = n.Name.Name
		m["value"] = Encode(n.Value)
	case *IntegerLiteral:
		m["value"] = n.Value
	case *FloatLiteral:
		m["value"] = n.Value
	case *StringLiteral:
		m["value"] = n.Value
	case *CharLiteral:
		m["value"] = string(n.Value)
	case *BoolLiteral:
		m["value"] = n.Value
	case *ArrayLiteral:
		m["elements"] = encodeList(n.Elements)
	case *BinaryExpression:
		m["operator"] = n.Operator.String()
		m["left"] = Encode(n.Left)
		m["right"] = Encode(n.Right)
	case *UnaryExpression:
		m["operator"] = n.Operator.String()
		m["operand"] = Encode(n.Operand)
	case *CallExpression:
		m["callee"] = Encode(n.Callee)
		m["arguments"] = encodeList(n.Arguments)
	}

	return m
}

func kindOf(node Node) string {
	switch node.(type) {
	case *Program:
		return "program"
	case *FunctionDeclaration:
		return "function"
	case *Parameter:
		return "parameter"
	case *VariableDeclaration:
		return "var"
	case *Block:
		return "block"
	case *ExpressionStatement:
		return "expression"
	case *ReturnStatement:
		return "return"
	case *IfStatement:
		return "if"
	case *ElseIfClause:
		return "elseif"
	case *WhileStatement:
		return "while"
	case *ForStatement:
		return "for"
	case *ForEachStatement:
		return "foreach"
	case *BreakStatement:
		return "break"
	case *ContinueStatement:
		return "continue"
	case *Identifier:
		return "identifier"
	case *Assignment:
		return "assign"
	case *IntegerLiteral:
		return "int"
	case *FloatLiteral:
		return "float"
	case *StringLiteral:
		return "str"
	case *CharLiteral:
		return "char"
	case *BoolLiteral:
		return "bool"
	case *ArrayLiteral:
		return "array"
	case *BinaryExpression:
		return "binary"
	case *UnaryExpression:
		return "unary"
	case *CallExpression:
		return "call"
	default:
		return "unknown"
	}
}

func encodeList[N Node](nodes []N) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = Encode(n)
	}
	return out
}

func encodeSpan(s position.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": encodePosition(s.Start),
		"end":   encodePosition(s.End),
	}
}

func encodePosition(p position.Position) map[string]interface{} {
	return map[string]interface{}{
		"offset": p.Offset,
		"line":   p.Line,
		"column": p.Column,
	}
}

func encodeType(t types.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
