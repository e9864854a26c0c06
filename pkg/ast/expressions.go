package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Identifier is a bare name.
type Identifier struct {
	Name string
	Pos  Position
}

// NewIdentifier creates an identifier from its token.
func NewIdentifier(tok Token) *Identifier {
	return &Identifier{Name: tok.Text, Pos: tok.Pos}
}

func (i *Identifier) expressionMarker() {}

// Type returns the node type.
func (i *Identifier) Type() NodeType {
	return NodeIdentifier
}

// Position returns the position of the node in the source.
func (i *Identifier) Position() Position {
	return i.Pos
}

// String returns the identifier name.
func (i *Identifier) String() string {
	return fmt.Sprintf("Identifier(%s)", i.Name)
}

// ToMap converts the node into a map for serialization.
func (i *Identifier) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Identifier",
		"name":     i.Name,
		"position": i.Pos.ToMap(),
	}
}

// BinaryOperation is an infix operation, e.g. a + b or x == y.
type BinaryOperation struct {
	Operator string
	Left     Expression
	Right    Expression
	Pos      Position
}

// NewBinaryOperation creates a binary operation.
func NewBinaryOperation(operator string, left, right Expression, pos Position) *BinaryOperation {
	return &BinaryOperation{Operator: operator, Left: left, Right: right, Pos: pos}
}

func (b *BinaryOperation) expressionMarker() {}

// Type returns the node type.
func (b *BinaryOperation) Type() NodeType {
	return NodeBinary
}

// Position returns the position of the node in the source.
func (b *BinaryOperation) Position() Position {
	return b.Pos
}

// String returns a parenthesized rendering of the operation.
func (b *BinaryOperation) String() string {
	return fmt.Sprintf("Binary(%s %s %s)", b.Left, b.Operator, b.Right)
}

// ToMap converts the node into a map for serialization.
func (b *BinaryOperation) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Binary",
		"operator": b.Operator,
		"left":     b.Left.ToMap(),
		"right":    b.Right.ToMap(),
		"position": b.Pos.ToMap(),
	}
}

// UnaryOperation is a prefix operation, e.g. -x or !ok.
type UnaryOperation struct {
	Operator string
	Operand  Expression
	Pos      Position
}

// NewUnaryOperation creates a unary operation.
func NewUnaryOperation(operator string, operand Expression, pos Position) *UnaryOperation {
	return &UnaryOperation{Operator: operator, Operand: operand, Pos: pos}
}

func (u *UnaryOperation) expressionMarker() {}

// Type returns the node type.
func (u *UnaryOperation) Type() NodeType {
	return NodeUnary
}

// Position returns the position of the node in the source.
func (u *UnaryOperation) Position() Position {
	return u.Pos
}

// String returns a rendering of the operation.
func (u *UnaryOperation) String() string {
	return fmt.Sprintf("Unary(%s %s)", u.Operator, u.Operand)
}

// ToMap converts the node into a map for serialization.
func (u *UnaryOperation) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Unary",
		"operator": u.Operator,
		"operand":  u.Operand.ToMap(),
		"position": u.Pos.ToMap(),
	}
}

// Application is a call: callee(args...).
type Application struct {
	Callee Expression
	Args   []Expression
	Pos    Position
}

// NewApplication creates a call expression.
func NewApplication(callee Expression, args []Expression, pos Position) *Application {
	return &Application{Callee: callee, Args: args, Pos: pos}
}

func (a *Application) expressionMarker() {}

// Type returns the node type.
func (a *Application) Type() NodeType {
	return NodeCall
}

// Position returns the position of the node in the source.
func (a *Application) Position() Position {
	return a.Pos
}

// String returns a rendering of the call.
func (a *Application) String() string {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("Call(%s; %s)", a.Callee, strings.Join(args, ", "))
}

// ToMap converts the node into a map for serialization.
func (a *Application) ToMap() map[string]interface{} {
	args := make([]interface{}, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.ToMap()
	}
	return map[string]interface{}{
		"type":     "Call",
		"callee":   a.Callee.ToMap(),
		"args":     args,
		"position": a.Pos.ToMap(),
	}
}

// Index is a bracketed access: receiver[key].
type Index struct {
	Receiver Expression
	Key      Expression
	Pos      Position
}

// NewIndex creates an index expression.
func NewIndex(receiver, key Expression, pos Position) *Index {
	return &Index{Receiver: receiver, Key: key, Pos: pos}
}

func (x *Index) expressionMarker() {}

// Type returns the node type.
func (x *Index) Type() NodeType {
	return NodeIndex
}

// Position returns the position of the node in the source.
func (x *Index) Position() Position {
	return x.Pos
}

// String returns a rendering of the access.
func (x *Index) String() string {
	return fmt.Sprintf("Index(%s[%s])", x.Receiver, x.Key)
}

// ToMap converts the node into a map for serialization.
func (x *Index) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Index",
		"receiver": x.Receiver.ToMap(),
		"key":      x.Key.ToMap(),
		"position": x.Pos.ToMap(),
	}
}

// Property is a dotted access: receiver.name.
type Property struct {
	Receiver Expression
	Name     *Identifier
	Pos      Position
}

// NewProperty creates a property access.
func NewProperty(receiver Expression, name *Identifier, pos Position) *Property {
	return &Property{Receiver: receiver, Name: name, Pos: pos}
}

func (p *Property) expressionMarker() {}

// Type returns the node type.
func (p *Property) Type() NodeType {
	return NodeProperty
}

// Position returns the position of the node in the source.
func (p *Property) Position() Position {
	return p.Pos
}

// String returns a rendering of the access.
func (p *Property) String() string {
	return fmt.Sprintf("Property(%s.%s)", p.Receiver, p.Name.Name)
}

// ToMap converts the node into a map for serialization.
func (p *Property) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Property",
		"receiver": p.Receiver.ToMap(),
		"name":     p.Name.Name,
		"position": p.Pos.ToMap(),
	}
}

// ArrayConstruction is a literal array: [a, b, c].
type ArrayConstruction struct {
	Items []Expression
	Pos   Position
}

// NewArrayConstruction creates an array literal.
func NewArrayConstruction(items []Expression, pos Position) *ArrayConstruction {
	return &ArrayConstruction{Items: items, Pos: pos}
}

func (a *ArrayConstruction) expressionMarker() {}

// Type returns the node type.
func (a *ArrayConstruction) Type() NodeType {
	return NodeArray
}

// Position returns the position of the node in the source.
func (a *ArrayConstruction) Position() Position {
	return a.Pos
}

// String returns a rendering of the array.
func (a *ArrayConstruction) String() string {
	items := make([]string, len(a.Items))
	for i, item := range a.Items {
		items[i] = item.String()
	}
	return fmt.Sprintf("Array[%s]", strings.Join(items, ", "))
}

// ToMap converts the node into a map for serialization.
func (a *ArrayConstruction) ToMap() map[string]interface{} {
	items := make([]interface{}, len(a.Items))
	for i, item := range a.Items {
		items[i] = item.ToMap()
	}
	return map[string]interface{}{
		"type":     "Array",
		"items":    items,
		"position": a.Pos.ToMap(),
	}
}

// ObjectConstruction is a literal object: {k: v, ...}. Keys are
// unique; when a key repeats, the last occurrence wins.
type ObjectConstruction struct {
	Entries map[string]Expression
	Pos     Position
}

// NewObjectConstruction creates an object literal.
func NewObjectConstruction(entries map[string]Expression, pos Position) *ObjectConstruction {
	if entries == nil {
		entries = make(map[string]Expression)
	}
	return &ObjectConstruction{Entries: entries, Pos: pos}
}

func (o *ObjectConstruction) expressionMarker() {}

// Type returns the node type.
func (o *ObjectConstruction) Type() NodeType {
	return NodeObject
}

// Position returns the position of the node in the source.
func (o *ObjectConstruction) Position() Position {
	return o.Pos
}

// String returns a rendering of the object with keys sorted so the
// output is deterministic.
func (o *ObjectConstruction) String() string {
	keys := make([]string, 0, len(o.Entries))
	for k := range o.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = fmt.Sprintf("%s: %s", k, o.Entries[k])
	}
	return fmt.Sprintf("Object{%s}", strings.Join(entries, ", "))
}

// ToMap converts the node into a map for serialization.
func (o *ObjectConstruction) ToMap() map[string]interface{} {
	entries := make(map[string]interface{}, len(o.Entries))
	for k, v := range o.Entries {
		entries[k] = v.ToMap()
	}
	return map[string]interface{}{
		"type":     "Object",
		"entries":  entries,
		"position": o.Pos.ToMap(),
	}
}
