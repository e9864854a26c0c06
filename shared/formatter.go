package shared

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"blocml/pkg/ast"
)

// Format names an AST output rendering.
type Format string

const (
	FormatTree Format = "tree"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from a flag or REPL command.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatTree:
		return FormatTree, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want tree, json or yaml)", name)
	}
}

// FormatNode renders an AST node in the requested format. Tree output
// is the node's own indented String form; JSON and YAML marshal the
// node's map representation.
func FormatNode(node ast.Node, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(node.ToMap(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal AST to JSON: %v", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(node.ToMap())
		if err != nil {
			return "", fmt.Errorf("failed to marshal AST to YAML: %v", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return node.String(), nil
	}
}
