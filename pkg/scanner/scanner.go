package scanner

import (
	"regexp"
	"strings"

	"blocml/pkg/ast"
)

// Scanner tracks a cursor and source location over an immutable input
// string. Matches are sticky: a pattern is tried exactly at the
// current offset and moves nothing until the match is committed with
// Advance.
type Scanner struct {
	input  string
	offset int
	line   int
	column int

	pending    string // text of the last successful match
	pendingAt  int    // offset the pending match was made at
	hasPending bool

	skipCache map[int]int // start offset -> offset after whitespace
}

// New creates a scanner positioned at the start of input.
func New(input string) *Scanner {
	return &Scanner{
		input:     input,
		line:      1,
		column:    1,
		skipCache: make(map[int]int),
	}
}

// Pos returns the current source position.
func (s *Scanner) Pos() ast.Position {
	return ast.Position{Line: s.line, Column: s.column, Offset: s.offset}
}

// EOF reports whether the cursor has consumed the whole input.
func (s *Scanner) EOF() bool {
	return s.offset >= len(s.input)
}

// Match tries an anchored match at the current offset. It returns the
// matched token without moving the cursor, or nil when the pattern
// does not match here. The pattern must be anchored with "^"; passing
// an unanchored pattern is a programmer error.
func (s *Scanner) Match(re *regexp.Regexp) *ast.Token {
	if !strings.HasPrefix(re.String(), "^") {
		panic("scanner: pattern is not anchored: " + re.String())
	}
	loc := re.FindStringIndex(s.input[s.offset:])
	if loc == nil {
		return nil
	}
	text := s.input[s.offset : s.offset+loc[1]]
	s.pending = text
	s.pendingAt = s.offset
	s.hasPending = true
	return &ast.Token{Pos: s.Pos(), Text: text}
}

// Advance commits the most recent successful match, moving the cursor
// to its end and updating the line/column by the consumed text.
func (s *Scanner) Advance() {
	if !s.hasPending || s.pendingAt != s.offset {
		panic("scanner: advance without a match at the current offset")
	}
	s.consume(s.pending)
	s.hasPending = false
}

// Take is Match followed immediately by Advance.
func (s *Scanner) Take(re *regexp.Regexp) *ast.Token {
	tok := s.Match(re)
	if tok != nil {
		s.Advance()
	}
	return tok
}

var spacePattern = regexp.MustCompile(`^[ \t\r\n]+`)

// SkipSpace consumes whitespace at the current offset. The skip is
// attempted at most once per position; later visits to the same
// offset reuse the memoized end position instead of rescanning.
func (s *Scanner) SkipSpace() {
	if end, ok := s.skipCache[s.offset]; ok {
		if end > s.offset {
			s.consume(s.input[s.offset:end])
		}
		return
	}
	start := s.offset
	if s.Match(spacePattern) != nil {
		s.Advance()
	}
	s.skipCache[start] = s.offset
}

// Mark is a snapshot of the scanner state for backtracking.
type Mark struct {
	offset int
	line   int
	column int
}

// Snapshot captures the current cursor state.
func (s *Scanner) Snapshot() Mark {
	return Mark{offset: s.offset, line: s.line, column: s.column}
}

// Restore rewinds the scanner to a previously captured snapshot.
func (s *Scanner) Restore(m Mark) {
	s.offset = m.offset
	s.line = m.line
	s.column = m.column
	s.hasPending = false
}

// consume moves the cursor past text, counting newlines. The column
// resets after a newline, otherwise it grows by the consumed length.
func (s *Scanner) consume(text string) {
	s.offset += len(text)
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		s.line += strings.Count(text, "\n")
		s.column = 1 + len(text) - (i + 1)
	} else {
		s.column += len(text)
	}
}
