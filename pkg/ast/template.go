package ast

import (
	"fmt"
	"strings"
)

// Template is an ordered sequence of children (text runs and blocs)
// with an optional parameter list for the nesting level it represents.
type Template struct {
	Children []Node
	Params   *ParamList
	Pos      Position
}

// NewTemplate creates an empty template anchored at pos.
func NewTemplate(pos Position) *Template {
	return &Template{Pos: pos}
}

// Type returns the node type.
func (t *Template) Type() NodeType {
	return NodeTemplate
}

// Position returns the position of the node in the source.
func (t *Template) Position() Position {
	return t.Pos
}

// Append adds a child to the template.
func (t *Template) Append(child Node) {
	t.Children = append(t.Children, child)
}

// String returns an indented tree rendering of the template.
func (t *Template) String() string {
	var builder strings.Builder
	builder.WriteString("Template")
	if t.Params != nil {
		builder.WriteString(" ")
		builder.WriteString(t.Params.String())
	}
	for _, child := range t.Children {
		builder.WriteString("\n  ")
		builder.WriteString(strings.ReplaceAll(child.String(), "\n", "\n  "))
	}
	return builder.String()
}

// ToMap converts the template into a map for serialization.
func (t *Template) ToMap() map[string]interface{} {
	children := make([]interface{}, len(t.Children))
	for i, child := range t.Children {
		children[i] = child.ToMap()
	}
	m := map[string]interface{}{
		"type":     "Template",
		"children": children,
		"position": t.Pos.ToMap(),
	}
	if t.Params != nil {
		m["params"] = t.Params.ToMap()
	}
	return m
}

// TextNode is a literal run of template text between blocs.
type TextNode struct {
	Value string
	Pos   Position
}

// NewTextNode creates a text child.
func NewTextNode(value string, pos Position) *TextNode {
	return &TextNode{Value: value, Pos: pos}
}

// Type returns the node type.
func (n *TextNode) Type() NodeType {
	return NodeText
}

// Position returns the position of the node in the source.
func (n *TextNode) Position() Position {
	return n.Pos
}

// String returns a quoted rendering of the text run.
func (n *TextNode) String() string {
	return fmt.Sprintf("Text(%q)", n.Value)
}

// ToMap converts the node into a map for serialization.
func (n *TextNode) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"type":     "Text",
		"value":    n.Value,
		"position": n.Pos.ToMap(),
	}
}

// Bloc is a [[...]] construct. Contents is non-nil only for opening
// blocs; a bloc without contents is a leaf insertion. Properties holds
// the definitions attached while the bloc was open.
type Bloc struct {
	Expression Expression
	Contents   *Template
	Properties []*Definition
	Pos        Position
}

// NewBloc creates a leaf bloc around its head expression.
func NewBloc(expression Expression, pos Position) *Bloc {
	return &Bloc{Expression: expression, Pos: pos}
}

// Type returns the node type.
func (b *Bloc) Type() NodeType {
	return NodeBloc
}

// Position returns the position of the node in the source.
func (b *Bloc) Position() Position {
	return b.Pos
}

// String returns an indented tree rendering of the bloc.
func (b *Bloc) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Bloc(%s)", b.Expression))
	for _, def := range b.Properties {
		builder.WriteString("\n  ")
		builder.WriteString(strings.ReplaceAll(def.String(), "\n", "\n  "))
	}
	if b.Contents != nil {
		builder.WriteString("\n  ")
		builder.WriteString(strings.ReplaceAll(b.Contents.String(), "\n", "\n  "))
	}
	return builder.String()
}

// ToMap converts the bloc into a map for serialization.
func (b *Bloc) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"type":       "Bloc",
		"expression": b.Expression.ToMap(),
		"position":   b.Pos.ToMap(),
	}
	if b.Contents != nil {
		m["contents"] = b.Contents.ToMap()
	}
	if len(b.Properties) > 0 {
		props := make([]interface{}, len(b.Properties))
		for i, def := range b.Properties {
			props[i] = def.ToMap()
		}
		m["properties"] = props
	}
	return m
}

// Definition is a named-property bloc: [[name: expr]] or the
// [[+:name]]...[[-name]] form. Value and Contents may each be nil.
type Definition struct {
	Target   *Identifier
	Value    Expression
	Contents *Template
	Pos      Position
}

// NewDefinition creates a definition for target with an optional value.
func NewDefinition(target *Identifier, value Expression, pos Position) *Definition {
	return &Definition{Target: target, Value: value, Pos: pos}
}

// Type returns the node type.
func (d *Definition) Type() NodeType {
	return NodeDefinition
}

// Position returns the position of the node in the source.
func (d *Definition) Position() Position {
	return d.Pos
}

// String returns an indented tree rendering of the definition.
func (d *Definition) String() string {
	var builder strings.Builder
	if d.Value != nil {
		builder.WriteString(fmt.Sprintf("Definition(%s: %s)", d.Target.Name, d.Value))
	} else {
		builder.WriteString(fmt.Sprintf("Definition(%s)", d.Target.Name))
	}
	if d.Contents != nil {
		builder.WriteString("\n  ")
		builder.WriteString(strings.ReplaceAll(d.Contents.String(), "\n", "\n  "))
	}
	return builder.String()
}

// ToMap converts the definition into a map for serialization.
func (d *Definition) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"type":     "Definition",
		"target":   d.Target.ToMap(),
		"position": d.Pos.ToMap(),
	}
	if d.Value != nil {
		m["value"] = d.Value.ToMap()
	}
	if d.Contents != nil {
		m["contents"] = d.Contents.ToMap()
	}
	return m
}

// ParamKind distinguishes the two parameter list arrows.
type ParamKind int

const (
	ParamsLocal  ParamKind = iota // ->
	ParamsGlobal                  // =>
)

// String returns the kind name.
func (k ParamKind) String() string {
	if k == ParamsGlobal {
		return "global"
	}
	return "local"
}

// ParamList is the parameter list following an opening bloc head:
// "-> a, b" (local) or "=> a, b" (global).
type ParamList struct {
	Kind  ParamKind
	Names []*Identifier
	Pos   Position
}

// NewParamList creates a parameter list.
func NewParamList(kind ParamKind, names []*Identifier, pos Position) *ParamList {
	return &ParamList{Kind: kind, Names: names, Pos: pos}
}

// Type returns the node type.
func (p *ParamList) Type() NodeType {
	return NodeParamList
}

// Position returns the position of the node in the source.
func (p *ParamList) Position() Position {
	return p.Pos
}

// String returns the list as "local(a, b)" or "global(a, b)".
func (p *ParamList) String() string {
	names := make([]string, len(p.Names))
	for i, id := range p.Names {
		names[i] = id.Name
	}
	return fmt.Sprintf("%s(%s)", p.Kind, strings.Join(names, ", "))
}

// ToMap converts the list into a map for serialization.
func (p *ParamList) ToMap() map[string]interface{} {
	names := make([]interface{}, len(p.Names))
	for i, id := range p.Names {
		names[i] = id.Name
	}
	return map[string]interface{}{
		"type":     "ParamList",
		"kind":     p.Kind.String(),
		"names":    names,
		"position": p.Pos.ToMap(),
	}
}
