package ast

import (
	"strings"
	"testing"
)

func TestPositionString(t *testing.T) {
	pos := Position{Line: 3, Column: 14, Offset: 42}
	if got := pos.String(); got != "3:14" {
		t.Errorf("unexpected position string: %q", got)
	}
}

func TestObjectConstructionStringIsOrdered(t *testing.T) {
	obj := NewObjectConstruction(map[string]Expression{
		"zeta":  NewNumberLiteral(1, Position{}),
		"alpha": NewNumberLiteral(2, Position{}),
	}, Position{})

	s := obj.String()
	if strings.Index(s, "alpha") > strings.Index(s, "zeta") {
		t.Errorf("object keys must render in sorted order: %s", s)
	}
	if s != obj.String() {
		t.Error("String must be deterministic")
	}
}

func TestTemplateToMap(t *testing.T) {
	tpl := NewTemplate(Position{Line: 1, Column: 1})
	tpl.Append(NewTextNode("hi", Position{Line: 1, Column: 1}))

	m := tpl.ToMap()
	if m["type"] != "Template" {
		t.Errorf("unexpected type: %v", m["type"])
	}
	children, ok := m["children"].([]interface{})
	if !ok || len(children) != 1 {
		t.Fatalf("unexpected children: %v", m["children"])
	}
	child, ok := children[0].(map[string]interface{})
	if !ok || child["type"] != "Text" {
		t.Errorf("unexpected child: %v", children[0])
	}
}
