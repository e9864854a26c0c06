package ast

import "fmt"

// NodeType identifies the concrete kind of an AST node.
type NodeType int

const (
	NodeInvalid NodeType = iota
	NodeTemplate
	NodeText
	NodeBloc
	NodeDefinition
	NodeParamList
	NodeIdentifier
	NodeNumber
	NodeString
	NodeBoolean
	NodeNull
	NodeUndefined
	NodeArray
	NodeObject
	NodeBinary
	NodeUnary
	NodeCall
	NodeIndex
	NodeProperty
)

// String returns the name of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeTemplate:
		return "Template"
	case NodeText:
		return "Text"
	case NodeBloc:
		return "Bloc"
	case NodeDefinition:
		return "Definition"
	case NodeParamList:
		return "ParamList"
	case NodeIdentifier:
		return "Identifier"
	case NodeNumber:
		return "Number"
	case NodeString:
		return "String"
	case NodeBoolean:
		return "Boolean"
	case NodeNull:
		return "Null"
	case NodeUndefined:
		return "Undefined"
	case NodeArray:
		return "Array"
	case NodeObject:
		return "Object"
	case NodeBinary:
		return "Binary"
	case NodeUnary:
		return "Unary"
	case NodeCall:
		return "Call"
	case NodeIndex:
		return "Index"
	case NodeProperty:
		return "Property"
	default:
		return "Invalid"
	}
}

// Position is a location in the source text. Line and Column are
// 1-based; Offset is the byte offset from the start of the input.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ToMap converts the position into a map for serialization.
func (p Position) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"line":   p.Line,
		"column": p.Column,
		"offset": p.Offset,
	}
}

// Token is a lexeme together with the position where it starts.
// Tokens anchor constructed nodes and error reports.
type Token struct {
	Pos  Position
	Text string
}

// String returns the token text and position.
func (t Token) String() string {
	return fmt.Sprintf("Token{%q %s}", t.Text, t.Pos)
}

// Node is the base interface for all AST nodes.
type Node interface {
	Type() NodeType
	Position() Position
	String() string
	ToMap() map[string]interface{}
}

// Expression is implemented by every node that can appear inside a
// bloc head or nested expression position.
type Expression interface {
	Node
	expressionMarker()
}
