package ast

import (
	"fmt"
	"strconv"
)

// NumberLiteral is a numeric literal. All numbers parse as floats.
type NumberLiteral struct {
	Value float64
	Pos   Position
}

// NewNumberLiteral creates a number literal.
func NewNumberLiteral(value float64, pos Position) *NumberLiteral {
	return &NumberLiteral{Value: value, Pos: pos}
}

func (n *NumberLiteral) expressionMarker() {}

// Type returns the node type.
func (n *NumberLiteral) Type() NodeType {
	return NodeNumber
}

// Position returns the position of the node in the source.
func (n *NumberLiteral) Position() Position {
	return n.Pos
}

// String returns the literal value.
func (n *NumberLiteral) String() string {
	return fmt.Sprintf("Number(%s)", strconv.FormatFloat(n.Value, 'g', -1, 64))
}

// ToMap converts the node into a map for serialization.
func (n *NumberLiteral) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Number",
		"value":    n.Value,
		"position": n.Pos.ToMap(),
	}
}

// StringLiteral is a double-quoted string literal with escapes
// already resolved.
type StringLiteral struct {
	Value string
	Pos   Position
}

// NewStringLiteral creates a string literal.
func NewStringLiteral(value string, pos Position) *StringLiteral {
	return &StringLiteral{Value: value, Pos: pos}
}

func (s *StringLiteral) expressionMarker() {}

// Type returns the node type.
func (s *StringLiteral) Type() NodeType {
	return NodeString
}

// Position returns the position of the node in the source.
func (s *StringLiteral) Position() Position {
	return s.Pos
}

// String returns the quoted literal value.
func (s *StringLiteral) String() string {
	return fmt.Sprintf("String(%q)", s.Value)
}

// ToMap converts the node into a map for serialization.
func (s *StringLiteral) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "String",
		"value":    s.Value,
		"position": s.Pos.ToMap(),
	}
}

// BooleanLiteral is a true/false literal.
type BooleanLiteral struct {
	Value bool
	Pos   Position
}

// NewBooleanLiteral creates a boolean literal.
func NewBooleanLiteral(value bool, pos Position) *BooleanLiteral {
	return &BooleanLiteral{Value: value, Pos: pos}
}

func (b *BooleanLiteral) expressionMarker() {}

// Type returns the node type.
func (b *BooleanLiteral) Type() NodeType {
	return NodeBoolean
}

// Position returns the position of the node in the source.
func (b *BooleanLiteral) Position() Position {
	return b.Pos
}

// String returns the literal value.
func (b *BooleanLiteral) String() string {
	return fmt.Sprintf("Boolean(%t)", b.Value)
}

// ToMap converts the node into a map for serialization.
func (b *BooleanLiteral) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Boolean",
		"value":    b.Value,
		"position": b.Pos.ToMap(),
	}
}

// NullLiteral is the null literal.
type NullLiteral struct {
	Pos Position
}

// NewNullLiteral creates a null literal.
func NewNullLiteral(pos Position) *NullLiteral {
	return &NullLiteral{Pos: pos}
}

func (n *NullLiteral) expressionMarker() {}

// Type returns the node type.
func (n *NullLiteral) Type() NodeType {
	return NodeNull
}

// Position returns the position of the node in the source.
func (n *NullLiteral) Position() Position {
	return n.Pos
}

// String returns the literal name.
func (n *NullLiteral) String() string {
	return "Null"
}

// ToMap converts the node into a map for serialization.
func (n *NullLiteral) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Null",
		"position": n.Pos.ToMap(),
	}
}

// UndefinedLiteral is the undefined literal.
type UndefinedLiteral struct {
	Pos Position
}

// NewUndefinedLiteral creates an undefined literal.
func NewUndefinedLiteral(pos Position) *UndefinedLiteral {
	return &UndefinedLiteral{Pos: pos}
}

func (u *UndefinedLiteral) expressionMarker() {}

// Type returns the node type.
func (u *UndefinedLiteral) Type() NodeType {
	return NodeUndefined
}

// Position returns the position of the node in the source.
func (u *UndefinedLiteral) Position() Position {
	return u.Pos
}

// String returns the literal name.
func (u *UndefinedLiteral) String() string {
	return "Undefined"
}

// ToMap converts the node into a map for serialization.
func (u *UndefinedLiteral) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Undefined",
		"position": u.Pos.ToMap(),
	}
}
