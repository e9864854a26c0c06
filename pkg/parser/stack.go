package parser

import (
	"blocml/errors"
	"blocml/pkg/ast"
)

// blocEntry is one open nesting level: the container node, the
// template its children attach to, and the binding identifier a
// matching close must name. A nil binding marks an implicit bloc
// whose close is accepted without comparison.
type blocEntry struct {
	node     ast.Node
	contents *ast.Template
	binding  *ast.Identifier
}

// blocStack tracks the currently open nesting levels. The bottom
// entry is the synthetic root and is never popped by a close bloc.
type blocStack struct {
	entries []blocEntry
}

// newBlocStack creates a stack holding the synthetic root.
func newBlocStack(root *ast.Template) *blocStack {
	return &blocStack{
		entries: []blocEntry{{node: root, contents: root}},
	}
}

// depth returns the number of open levels, the root included.
func (s *blocStack) depth() int {
	return len(s.entries)
}

// top returns the current container entry.
func (s *blocStack) top() *blocEntry {
	return &s.entries[len(s.entries)-1]
}

// push records a new open nesting level.
func (s *blocStack) push(node ast.Node, contents *ast.Template, binding *ast.Identifier) {
	s.entries = append(s.entries, blocEntry{node: node, contents: contents, binding: binding})
}

// pop removes the top level. When the level was opened with a
// binding, the closing identifier must name it; implicit levels
// accept any closing identifier, including none.
func (s *blocStack) pop(closing *ast.Identifier, closePos ast.Position) error {
	if len(s.entries) == 0 {
		panic("blocstack: pop past the synthetic root")
	}
	top := s.top()
	if top.binding != nil {
		if closing == nil || closing.Name != top.binding.Name {
			return errors.NewUnmatchedClose(closing, top.binding, closePos)
		}
	}
	s.entries = s.entries[:len(s.entries)-1]
	return nil
}
