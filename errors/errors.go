package errors

import (
	"fmt"
	"strings"

	"blocml/pkg/ast"
)

// Error codes for the parse-error taxonomy. Lexical, syntactic and
// structural errors all surface as a *ParseError carrying one of
// these codes.
const (
	CodeUnterminatedString  = "UNTERMINATED_STRING"
	CodeUnterminatedComment = "UNTERMINATED_COMMENT"
	CodeExpectedOperand     = "EXPECTED_OPERAND"
	CodeExpectedExpression  = "EXPECTED_EXPRESSION"
	CodeExpectedIdentifier  = "EXPECTED_IDENTIFIER"
	CodeExpectedClose       = "EXPECTED_CLOSE"
	CodeExpectedBlocClose   = "EXPECTED_BLOC_CLOSE"
	CodeExpectedValue       = "EXPECTED_VALUE"
	CodeReservedWord        = "RESERVED_WORD"
	CodePropertyColon       = "PROPERTY_COLON_CONFLICT"
	CodeParamsNonOpening    = "PARAMS_ON_NON_OPENING_BLOC"
	CodePropertyAtRoot      = "PROPERTY_AT_ROOT"
	CodePropertyInProperty  = "PROPERTY_IN_PROPERTY"
	CodeUnmatchedClose      = "UNMATCHED_CLOSE"
	CodeUnclosedBloc        = "UNCLOSED_BLOC"
)

// ParseError is the uniform error value produced by the parser. Every
// error carries a machine-readable code, a message, and at least one
// source position; the unmatched-close error carries two (close and
// open sites). Source names the input when the caller supplied one.
type ParseError struct {
	Code      string
	Message   string
	Source    string
	Positions []ast.Position
}

// NewParseError creates a parse error at pos.
func NewParseError(code, message string, pos ast.Position) *ParseError {
	return &ParseError{
		Code:      code,
		Message:   message,
		Positions: []ast.Position{pos},
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("[PARSE][%s] %s", e.Code, e.Message))
	if len(e.Positions) > 0 {
		builder.WriteString(" at ")
		if e.Source != "" {
			builder.WriteString(e.Source)
			builder.WriteString(":")
		}
		builder.WriteString(e.Positions[0].String())
	}
	return builder.String()
}

// Position returns the primary error position.
func (e *ParseError) Position() ast.Position {
	if len(e.Positions) == 0 {
		return ast.Position{}
	}
	return e.Positions[0]
}

// AddPosition appends a secondary position to the error.
func (e *ParseError) AddPosition(pos ast.Position) *ParseError {
	e.Positions = append(e.Positions, pos)
	return e
}

// WithSource attaches the source name to an error. Non-parse errors
// pass through unchanged.
func WithSource(err error, source string) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ParseError); ok {
		pe.Source = source
		return pe
	}
	return err
}

// CodeOf returns the parse-error code of err, or "" when err is not a
// *ParseError.
func CodeOf(err error) string {
	if pe, ok := err.(*ParseError); ok {
		return pe.Code
	}
	return ""
}

// NewExpected reports that the parser wanted `what` at pos but found
// something else.
func NewExpected(code, what string, pos ast.Position) *ParseError {
	return NewParseError(code, fmt.Sprintf("expected %s", what), pos)
}

// NewUnmatchedClose reports a closing identifier that does not match
// the binding recorded when the bloc was opened. The error carries
// both the close and the open locations.
func NewUnmatchedClose(closing, opening *ast.Identifier, closePos ast.Position) *ParseError {
	closeName := "(none)"
	if closing != nil {
		closeName = closing.Name
		closePos = closing.Pos
	}
	err := NewParseError(CodeUnmatchedClose,
		fmt.Sprintf("closing identifier %q does not match opening identifier %q (opened at %s)",
			closeName, opening.Name, opening.Pos),
		closePos)
	return err.AddPosition(opening.Pos)
}

// NewReservedWord reports a reserved word used where an identifier is
// required.
func NewReservedWord(word string, pos ast.Position) *ParseError {
	return NewParseError(CodeReservedWord,
		fmt.Sprintf("reserved word %q cannot be used as an identifier", word), pos)
}
