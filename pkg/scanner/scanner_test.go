package scanner

import (
	"regexp"
	"testing"
)

var (
	wordPattern  = regexp.MustCompile(`^[a-z]+`)
	digitPattern = regexp.MustCompile(`^[0-9]+`)
)

func TestMatchDoesNotAdvance(t *testing.T) {
	s := New("abc def")

	tok := s.Match(wordPattern)
	if tok == nil {
		t.Fatal("expected a match at offset 0")
	}
	if tok.Text != "abc" {
		t.Errorf("expected match text 'abc', got %q", tok.Text)
	}
	if s.Pos().Offset != 0 {
		t.Errorf("Match must not move the cursor, offset is %d", s.Pos().Offset)
	}

	s.Advance()
	if s.Pos().Offset != 3 {
		t.Errorf("expected offset 3 after Advance, got %d", s.Pos().Offset)
	}
}

func TestTakeCombinesMatchAndAdvance(t *testing.T) {
	s := New("abc123")

	if tok := s.Take(wordPattern); tok == nil || tok.Text != "abc" {
		t.Fatalf("expected to take 'abc', got %v", tok)
	}
	if tok := s.Take(digitPattern); tok == nil || tok.Text != "123" {
		t.Fatalf("expected to take '123', got %v", tok)
	}
	if !s.EOF() {
		t.Error("expected EOF after consuming the whole input")
	}
}

func TestNoMatchReturnsNil(t *testing.T) {
	s := New("123")
	if tok := s.Match(wordPattern); tok != nil {
		t.Errorf("expected no match, got %q", tok.Text)
	}
}

func TestUnanchoredPatternPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a pattern without the ^ anchor")
		}
	}()
	s := New("abc")
	s.Match(regexp.MustCompile(`[a-z]+`))
}

func TestLineAndColumnTracking(t *testing.T) {
	s := New("ab\ncd\nef")
	chunk := regexp.MustCompile(`^(?s:.{3})`)

	s.Take(chunk) // "ab\n"
	pos := s.Pos()
	if pos.Line != 2 || pos.Column != 1 {
		t.Errorf("expected 2:1 after first newline, got %d:%d", pos.Line, pos.Column)
	}

	s.Take(chunk) // "cd\n"
	s.Take(regexp.MustCompile(`^e`))
	pos = s.Pos()
	if pos.Line != 3 || pos.Column != 2 {
		t.Errorf("expected 3:2, got %d:%d", pos.Line, pos.Column)
	}
}

func TestSkipSpace(t *testing.T) {
	s := New("  \t\n  x")
	s.SkipSpace()
	pos := s.Pos()
	if pos.Offset != 6 {
		t.Errorf("expected offset 6 after skipping whitespace, got %d", pos.Offset)
	}
	if pos.Line != 2 || pos.Column != 3 {
		t.Errorf("expected 2:3, got %d:%d", pos.Line, pos.Column)
	}

	// Skipping again at a non-space position is a no-op.
	s.SkipSpace()
	if s.Pos().Offset != 6 {
		t.Error("SkipSpace at a non-space position must not move")
	}
}

func TestSkipSpaceAfterRestore(t *testing.T) {
	s := New("  word")
	mark := s.Snapshot()

	s.SkipSpace()
	if s.Pos().Offset != 2 {
		t.Fatalf("expected offset 2, got %d", s.Pos().Offset)
	}

	s.Restore(mark)
	if s.Pos().Offset != 0 {
		t.Fatalf("expected offset 0 after Restore, got %d", s.Pos().Offset)
	}

	// The memoized skip must replay after backtracking, not no-op.
	s.SkipSpace()
	if s.Pos().Offset != 2 {
		t.Errorf("expected offset 2 after re-skip, got %d", s.Pos().Offset)
	}
	if tok := s.Take(wordPattern); tok == nil || tok.Text != "word" {
		t.Errorf("expected to take 'word', got %v", tok)
	}
}

func TestSnapshotRestoreDiscardsPendingMatch(t *testing.T) {
	s := New("abc def")
	s.Take(wordPattern)
	s.SkipSpace()
	mark := s.Snapshot()

	s.Match(wordPattern)
	s.Restore(mark)
	if s.Pos().Offset != 4 {
		t.Errorf("expected offset 4 after Restore, got %d", s.Pos().Offset)
	}

	// A fresh Match/Advance cycle still works at the restored position.
	if tok := s.Take(wordPattern); tok == nil || tok.Text != "def" {
		t.Errorf("expected to take 'def', got %v", tok)
	}
}
