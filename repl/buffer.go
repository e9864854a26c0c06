package repl

import (
	"strings"
)

// MultiLineBuffer collects template lines entered with a trailing
// backslash until the snippet is submitted as one parse.
type MultiLineBuffer struct {
	lines    []string
	isActive bool
}

// NewMultiLineBuffer creates an empty buffer.
func NewMultiLineBuffer() *MultiLineBuffer {
	return &MultiLineBuffer{}
}

// AddLine adds a line to the buffer and activates it.
func (b *MultiLineBuffer) AddLine(line string) {
	b.lines = append(b.lines, line)
	b.isActive = true
}

// Content returns the buffered template as a single string.
func (b *MultiLineBuffer) Content() string {
	return strings.Join(b.lines, "\n")
}

// Clear empties and deactivates the buffer.
func (b *MultiLineBuffer) Clear() {
	b.lines = nil
	b.isActive = false
}

// IsActive reports whether a multiline snippet is being collected.
func (b *MultiLineBuffer) IsActive() bool {
	return b.isActive
}

// IsEmpty reports whether no lines have been collected.
func (b *MultiLineBuffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// LineCount returns the number of collected lines.
func (b *MultiLineBuffer) LineCount() int {
	return len(b.lines)
}
