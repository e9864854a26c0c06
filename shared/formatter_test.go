package shared

import (
	"encoding/json"
	"strings"
	"testing"

	"blocml/pkg/ast"
)

func sampleTemplate() *ast.Template {
	tpl := ast.NewTemplate(ast.Position{Line: 1, Column: 1})
	tpl.Append(ast.NewTextNode("hello ", ast.Position{Line: 1, Column: 1}))
	tpl.Append(ast.NewBloc(
		ast.NewIdentifier(ast.Token{Pos: ast.Position{Line: 1, Column: 7, Offset: 6}, Text: "name"}),
		ast.Position{Line: 1, Column: 7, Offset: 6}))
	return tpl
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"tree": FormatTree,
		"json": FormatJSON,
		"YAML": FormatYAML,
	} {
		got, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", name, got, want)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected an error for an unknown format name")
	}
}

func TestFormatNodeTree(t *testing.T) {
	out, err := FormatNode(sampleTemplate(), FormatTree)
	if err != nil {
		t.Fatalf("tree formatting failed: %v", err)
	}
	if !strings.Contains(out, "name") {
		t.Errorf("tree output does not mention the bloc head: %s", out)
	}
}

func TestFormatNodeJSON(t *testing.T) {
	out, err := FormatNode(sampleTemplate(), FormatJSON)
	if err != nil {
		t.Fatalf("JSON formatting failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["type"] != "Template" {
		t.Errorf("expected root type Template, got %v", decoded["type"])
	}
}

func TestFormatNodeYAML(t *testing.T) {
	out, err := FormatNode(sampleTemplate(), FormatYAML)
	if err != nil {
		t.Fatalf("YAML formatting failed: %v", err)
	}
	if !strings.Contains(out, "type: Template") {
		t.Errorf("unexpected YAML output: %s", out)
	}
}
