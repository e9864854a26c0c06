package parser

import (
	"testing"

	"blocml/errors"
	"blocml/pkg/ast"
)

func ident(name string) *ast.Identifier {
	return ast.NewIdentifier(ast.Token{Text: name})
}

func TestStackPopMatchesBinding(t *testing.T) {
	root := ast.NewTemplate(ast.Position{Line: 1, Column: 1})
	stack := newBlocStack(root)

	contents := ast.NewTemplate(ast.Position{})
	stack.push(ast.NewBloc(ident("section"), ast.Position{}), contents, ident("section"))

	if err := stack.pop(ident("section"), ast.Position{}); err != nil {
		t.Fatalf("matching close failed: %v", err)
	}
	if stack.depth() != 1 {
		t.Errorf("expected depth 1 after pop, got %d", stack.depth())
	}
	if stack.top().contents != root {
		t.Error("expected the root to be the container again")
	}
}

func TestStackPopRejectsWrongName(t *testing.T) {
	stack := newBlocStack(ast.NewTemplate(ast.Position{}))
	stack.push(ast.NewBloc(ident("a"), ast.Position{}), ast.NewTemplate(ast.Position{}), ident("a"))

	err := stack.pop(ident("b"), ast.Position{})
	if errors.CodeOf(err) != errors.CodeUnmatchedClose {
		t.Fatalf("expected unmatched close, got %v", err)
	}
	if stack.depth() != 2 {
		t.Error("a failed pop must leave the stack unchanged")
	}
}

func TestStackPopRejectsMissingName(t *testing.T) {
	stack := newBlocStack(ast.NewTemplate(ast.Position{}))
	stack.push(ast.NewBloc(ident("a"), ast.Position{}), ast.NewTemplate(ast.Position{}), ident("a"))

	if err := stack.pop(nil, ast.Position{}); errors.CodeOf(err) != errors.CodeUnmatchedClose {
		t.Fatalf("expected unmatched close, got %v", err)
	}
}

func TestStackNilBindingAcceptsAnyClose(t *testing.T) {
	stack := newBlocStack(ast.NewTemplate(ast.Position{}))
	stack.push(ast.NewBloc(ident("a"), ast.Position{}), ast.NewTemplate(ast.Position{}), nil)

	if err := stack.pop(ident("anything"), ast.Position{}); err != nil {
		t.Fatalf("implicit level rejected a named close: %v", err)
	}

	stack.push(ast.NewBloc(ident("b"), ast.Position{}), ast.NewTemplate(ast.Position{}), nil)
	if err := stack.pop(nil, ast.Position{}); err != nil {
		t.Fatalf("implicit level rejected a bare close: %v", err)
	}
}
