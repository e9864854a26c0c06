package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocml/errors"
	"blocml/pkg/ast"
	"blocml/pkg/scanner"
)

func parseExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	sc := scanner.New(input)
	expr, err := New(sc).Parse()
	require.NoError(t, err, "input: %s", input)
	return expr
}

func parseExprErr(t *testing.T, input string) error {
	t.Helper()
	sc := scanner.New(input)
	_, err := New(sc).Parse()
	require.Error(t, err, "input: %s", input)
	return err
}

func TestLiterals(t *testing.T) {
	num := parseExpr(t, "42")
	require.IsType(t, &ast.NumberLiteral{}, num)
	assert.Equal(t, 42.0, num.(*ast.NumberLiteral).Value)

	num = parseExpr(t, "1.5e3")
	assert.Equal(t, 1500.0, num.(*ast.NumberLiteral).Value)

	num = parseExpr(t, ".25")
	assert.Equal(t, 0.25, num.(*ast.NumberLiteral).Value)

	str := parseExpr(t, `"hello"`)
	require.IsType(t, &ast.StringLiteral{}, str)
	assert.Equal(t, "hello", str.(*ast.StringLiteral).Value)

	require.IsType(t, &ast.BooleanLiteral{}, parseExpr(t, "true"))
	assert.False(t, parseExpr(t, "false").(*ast.BooleanLiteral).Value)
	require.IsType(t, &ast.NullLiteral{}, parseExpr(t, "null"))
	require.IsType(t, &ast.UndefinedLiteral{}, parseExpr(t, "undefined"))
}

func TestKeywordPrefixIsAnIdentifier(t *testing.T) {
	// "nullable" starts with "null" but the keyword needs a word
	// boundary, so this is a plain identifier.
	expr := parseExpr(t, "nullable")
	require.IsType(t, &ast.Identifier{}, expr)
	assert.Equal(t, "nullable", expr.(*ast.Identifier).Name)
}

func TestStringEscapes(t *testing.T) {
	str := parseExpr(t, `"a\nb\tc"`)
	assert.Equal(t, "a\nb\tc", str.(*ast.StringLiteral).Value)

	// Unknown escapes pass the escaped character through.
	str = parseExpr(t, `"say \"hi\" \q"`)
	assert.Equal(t, `say "hi" q`, str.(*ast.StringLiteral).Value)
}

func TestUnterminatedString(t *testing.T) {
	err := parseExprErr(t, `"never closed`)
	assert.Equal(t, errors.CodeUnterminatedString, errors.CodeOf(err))
}

func TestPrecedence(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	add := expr.(*ast.BinaryOperation)
	require.Equal(t, "+", add.Operator)
	mul := add.Right.(*ast.BinaryOperation)
	assert.Equal(t, "*", mul.Operator)
	assert.Equal(t, 2.0, mul.Left.(*ast.NumberLiteral).Value)

	expr = parseExpr(t, "a || b && c == d < e + f % g")
	assert.Equal(t, "||", expr.(*ast.BinaryOperation).Operator)

	// The pipe binds loosest of all.
	expr = parseExpr(t, "a | b || c")
	assert.Equal(t, "|", expr.(*ast.BinaryOperation).Operator)
}

func TestLeftAssociativity(t *testing.T) {
	expr := parseExpr(t, "10 - 4 - 3")
	outer := expr.(*ast.BinaryOperation)
	require.Equal(t, "-", outer.Operator)
	inner := outer.Left.(*ast.BinaryOperation)
	assert.Equal(t, "-", inner.Operator)
	assert.Equal(t, 10.0, inner.Left.(*ast.NumberLiteral).Value)
	assert.Equal(t, 3.0, outer.Right.(*ast.NumberLiteral).Value)
}

func TestUnaryOperators(t *testing.T) {
	expr := parseExpr(t, "-x")
	neg := expr.(*ast.UnaryOperation)
	assert.Equal(t, "-", neg.Operator)

	expr = parseExpr(t, "!-x")
	outer := expr.(*ast.UnaryOperation)
	require.Equal(t, "!", outer.Operator)
	assert.Equal(t, "-", outer.Operand.(*ast.UnaryOperation).Operator)

	// Unary binds tighter than binary.
	expr = parseExpr(t, "-a * b")
	assert.Equal(t, "*", expr.(*ast.BinaryOperation).Operator)
}

func TestPostfixChain(t *testing.T) {
	expr := parseExpr(t, `f(x, 1)[0].name`)
	prop := expr.(*ast.Property)
	assert.Equal(t, "name", prop.Name.Name)
	idx := prop.Receiver.(*ast.Index)
	assert.Equal(t, 0.0, idx.Key.(*ast.NumberLiteral).Value)
	call := idx.Receiver.(*ast.Application)
	assert.Equal(t, "f", call.Callee.(*ast.Identifier).Name)
	assert.Len(t, call.Args, 2)
}

func TestEmptyArgumentList(t *testing.T) {
	expr := parseExpr(t, "f()")
	call := expr.(*ast.Application)
	assert.Empty(t, call.Args)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	expr := parseExpr(t, "(1 + 2) * 3")
	mul := expr.(*ast.BinaryOperation)
	require.Equal(t, "*", mul.Operator)
	assert.Equal(t, "+", mul.Left.(*ast.BinaryOperation).Operator)
}

func TestArrayConstruction(t *testing.T) {
	expr := parseExpr(t, `[1, "two", [3]]`)
	arr := expr.(*ast.ArrayConstruction)
	require.Len(t, arr.Items, 3)
	assert.IsType(t, &ast.ArrayConstruction{}, arr.Items[2])

	arr = parseExpr(t, "[]").(*ast.ArrayConstruction)
	assert.Empty(t, arr.Items)
}

func TestObjectConstruction(t *testing.T) {
	expr := parseExpr(t, `{name: "x", count: 2}`)
	obj := expr.(*ast.ObjectConstruction)
	require.Len(t, obj.Entries, 2)
	assert.Equal(t, "x", obj.Entries["name"].(*ast.StringLiteral).Value)

	// A repeated key overwrites the earlier value.
	obj = parseExpr(t, "{a: 1, a: 2}").(*ast.ObjectConstruction)
	require.Len(t, obj.Entries, 1)
	assert.Equal(t, 2.0, obj.Entries["a"].(*ast.NumberLiteral).Value)
}

func TestObjectErrors(t *testing.T) {
	err := parseExprErr(t, "{a 1}")
	assert.Equal(t, errors.CodeExpectedValue, errors.CodeOf(err))

	err = parseExprErr(t, "{a: }")
	assert.Equal(t, errors.CodeExpectedValue, errors.CodeOf(err))

	err = parseExprErr(t, "{true: 1}")
	assert.Equal(t, errors.CodeReservedWord, errors.CodeOf(err))
}

func TestMissingOperand(t *testing.T) {
	err := parseExprErr(t, "1 +")
	assert.Equal(t, errors.CodeExpectedOperand, errors.CodeOf(err))

	err = parseExprErr(t, "!")
	assert.Equal(t, errors.CodeExpectedOperand, errors.CodeOf(err))
}

func TestMissingCloseParen(t *testing.T) {
	err := parseExprErr(t, "(1 + 2")
	assert.Equal(t, errors.CodeExpectedClose, errors.CodeOf(err))

	err = parseExprErr(t, "a[1")
	assert.Equal(t, errors.CodeExpectedClose, errors.CodeOf(err))
}

func TestArrowStopsTheExpression(t *testing.T) {
	// "->" and "=>" belong to the bloc layer; the expression ends
	// before them and the cursor stays on the arrow.
	for _, input := range []string{"x -> a", "x => a"} {
		sc := scanner.New(input)
		expr, err := New(sc).Parse()
		require.NoError(t, err)
		require.IsType(t, &ast.Identifier{}, expr)
		sc.SkipSpace()
		assert.Equal(t, 2, sc.Pos().Offset, "input: %s", input)
	}
}

func TestTryParseReturnsNilOnNoExpression(t *testing.T) {
	sc := scanner.New("]]")
	expr, err := New(sc).TryParse()
	require.NoError(t, err)
	assert.Nil(t, expr)
}

func TestReservedWordIsNotAnIdentifier(t *testing.T) {
	sc := scanner.New("undefined")
	_, err := New(sc).ParseIdentifier()
	require.Error(t, err)
	assert.Equal(t, errors.CodeReservedWord, errors.CodeOf(err))
}

func TestIdentifierLexeme(t *testing.T) {
	for _, name := range []string{"_x", "$ref", "camelCase9", "UPPER"} {
		id := parseExpr(t, name)
		require.IsType(t, &ast.Identifier{}, id, "input: %s", name)
		assert.Equal(t, name, id.(*ast.Identifier).Name)
	}
}

func TestErrorPositions(t *testing.T) {
	sc := scanner.New("a +\n  *")
	_, err := New(sc).Parse()
	require.Error(t, err)
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Position().Line)
}
