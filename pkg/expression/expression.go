// Package expression implements the embedded expression grammar of
// the bloc template language with a precedence-climbing parser.
package expression

import (
	"fmt"
	"regexp"
	"strconv"

	"blocml/errors"
	"blocml/pkg/ast"
	"blocml/pkg/scanner"
)

// Binary operator precedence. Higher binds tighter; all binary
// operators are left-associative.
const (
	PrecedencePipe    = 10 // |
	PrecedenceOr      = 20 // ||
	PrecedenceAnd     = 30 // &&
	PrecedenceEqual   = 50 // ==, !=
	PrecedenceCompare = 60 // <, <=, >, >=
	PrecedenceAdd     = 70 // +, -
	PrecedenceMul     = 80 // *, /, %
)

var operatorPrecedence = map[string]int{
	"*":  PrecedenceMul,
	"/":  PrecedenceMul,
	"%":  PrecedenceMul,
	"+":  PrecedenceAdd,
	"-":  PrecedenceAdd,
	"<":  PrecedenceCompare,
	"<=": PrecedenceCompare,
	">":  PrecedenceCompare,
	">=": PrecedenceCompare,
	"==": PrecedenceEqual,
	"!=": PrecedenceEqual,
	"&&": PrecedenceAnd,
	"||": PrecedenceOr,
	"|":  PrecedencePipe,
}

// reservedWords lexically match the identifier pattern but are only
// legal as literals, never as identifiers.
var reservedWords = map[string]bool{
	"true":      true,
	"false":     true,
	"null":      true,
	"undefined": true,
}

// The arrow tokens are matched by the operator pattern so that the
// "-" of "->" is never taken as a binary minus; an arrow match is
// treated as "no operator here" and left for the bloc-level parser.
var (
	binaryOpPattern  = regexp.MustCompile(`^(?:\|\||&&|==|!=|<=|>=|->|=>|[*/%+<>|-])`)
	unaryOpPattern   = regexp.MustCompile(`^(?:->|=>|[+!-])`)
	identPattern     = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*`)
	numberPattern    = regexp.MustCompile(`^(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)
	undefinedPattern = regexp.MustCompile(`^undefined\b`)
	nullPattern      = regexp.MustCompile(`^null\b`)
	truePattern      = regexp.MustCompile(`^true\b`)
	falsePattern     = regexp.MustCompile(`^false\b`)
	quotePattern     = regexp.MustCompile(`^"`)
	stringChunk      = regexp.MustCompile(`^[^"\\]+`)
	escapePattern    = regexp.MustCompile(`^\\(?s:.)`)
	lparenPattern    = regexp.MustCompile(`^\(`)
	rparenPattern    = regexp.MustCompile(`^\)`)
	lbracketPattern  = regexp.MustCompile(`^\[`)
	rbracketPattern  = regexp.MustCompile(`^\]`)
	lbracePattern    = regexp.MustCompile(`^\{`)
	rbracePattern    = regexp.MustCompile(`^\}`)
	commaPattern     = regexp.MustCompile(`^,`)
	colonPattern     = regexp.MustCompile(`^:`)
	dotPattern       = regexp.MustCompile(`^\.`)
)

// Parser reads an expression from a scanner. It is owned by a single
// parse call and holds no state of its own.
type Parser struct {
	sc *scanner.Scanner
}

// New creates an expression parser over sc.
func New(sc *scanner.Scanner) *Parser {
	return &Parser{sc: sc}
}

// Parse parses a required expression. Missing expression is an error
// at the current position.
func (p *Parser) Parse() (ast.Expression, error) {
	expr, err := p.TryParse()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, errors.NewExpected(errors.CodeExpectedExpression, "expression", p.sc.Pos())
	}
	return expr, nil
}

// TryParse parses an expression if one starts at the current
// position. It returns (nil, nil) when no expression matches here.
//
// The binary layer is precedence climbing over two stacks: operands
// and pending operators. Before a new operator is pushed, the stacks
// reduce while the stacked operator binds at least as tightly, which
// makes equal precedence reduce left-to-right.
func (p *Parser) TryParse() (ast.Expression, error) {
	p.sc.SkipSpace()
	first, err := p.tryUnary()
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, nil
	}

	operands := []ast.Expression{first}
	var operators []ast.Token

	for {
		p.sc.SkipSpace()
		opTok := p.sc.Match(binaryOpPattern)
		if opTok == nil || opTok.Text == "->" || opTok.Text == "=>" {
			break
		}
		p.sc.Advance()

		for len(operators) > 0 &&
			operatorPrecedence[operators[len(operators)-1].Text] >= operatorPrecedence[opTok.Text] {
			reduce(&operands, &operators)
		}
		operators = append(operators, *opTok)

		p.sc.SkipSpace()
		operand, err := p.tryUnary()
		if err != nil {
			return nil, err
		}
		if operand == nil {
			return nil, errors.NewParseError(errors.CodeExpectedOperand,
				fmt.Sprintf("missing operand after operator %q", opTok.Text), p.sc.Pos())
		}
		operands = append(operands, operand)
	}

	for len(operators) > 0 {
		reduce(&operands, &operators)
	}
	return operands[0], nil
}

// reduce pops one operator and its two operands and pushes the folded
// binary operation back onto the operand stack.
func reduce(operands *[]ast.Expression, operators *[]ast.Token) {
	op := (*operators)[len(*operators)-1]
	*operators = (*operators)[:len(*operators)-1]
	right := (*operands)[len(*operands)-1]
	left := (*operands)[len(*operands)-2]
	*operands = (*operands)[:len(*operands)-2]
	*operands = append(*operands, ast.NewBinaryOperation(op.Text, left, right, op.Pos))
}

// TryPrimary parses one full primary production: unary prefixes, a
// core primary, and its postfix chain. It returns (nil, nil) when no
// primary starts here.
func (p *Parser) TryPrimary() (ast.Expression, error) {
	return p.tryUnary()
}

// tryUnary collects prefix operators, parses the postfixed primary
// and wraps it. The first-parsed prefix ends up outermost.
func (p *Parser) tryUnary() (ast.Expression, error) {
	var prefixes []ast.Token
	for {
		p.sc.SkipSpace()
		tok := p.sc.Match(unaryOpPattern)
		if tok == nil || tok.Text == "->" || tok.Text == "=>" {
			break
		}
		p.sc.Advance()
		prefixes = append(prefixes, *tok)
	}

	expr, err := p.tryPostfixed()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		if len(prefixes) > 0 {
			return nil, errors.NewParseError(errors.CodeExpectedOperand,
				fmt.Sprintf("missing operand after unary operator %q", prefixes[len(prefixes)-1].Text),
				p.sc.Pos())
		}
		return nil, nil
	}

	for i := len(prefixes) - 1; i >= 0; i-- {
		expr = ast.NewUnaryOperation(prefixes[i].Text, expr, prefixes[i].Pos)
	}
	return expr, nil
}

// tryPostfixed parses a core primary followed by its postfix chain:
// call application, indexing, and property access, left-to-right.
func (p *Parser) tryPostfixed() (ast.Expression, error) {
	expr, err := p.tryCorePrimary()
	if err != nil || expr == nil {
		return expr, err
	}

	for {
		p.sc.SkipSpace()
		if tok := p.sc.Match(lparenPattern); tok != nil {
			p.sc.Advance()
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = ast.NewApplication(expr, args, tok.Pos)
			continue
		}
		if tok := p.sc.Match(lbracketPattern); tok != nil {
			p.sc.Advance()
			key, err := p.Parse()
			if err != nil {
				return nil, err
			}
			p.sc.SkipSpace()
			if p.sc.Take(rbracketPattern) == nil {
				return nil, errors.NewExpected(errors.CodeExpectedClose, `"]"`, p.sc.Pos())
			}
			expr = ast.NewIndex(expr, key, tok.Pos)
			continue
		}
		if tok := p.sc.Match(dotPattern); tok != nil {
			p.sc.Advance()
			p.sc.SkipSpace()
			name, err := p.ParseIdentifier()
			if err != nil {
				return nil, err
			}
			expr = ast.NewProperty(expr, name, tok.Pos)
			continue
		}
		return expr, nil
	}
}

// tryCorePrimary parses exactly one primary alternative, or returns
// (nil, nil) when none matches.
func (p *Parser) tryCorePrimary() (ast.Expression, error) {
	p.sc.SkipSpace()

	if tok := p.sc.Take(undefinedPattern); tok != nil {
		return ast.NewUndefinedLiteral(tok.Pos), nil
	}
	if tok := p.sc.Take(nullPattern); tok != nil {
		return ast.NewNullLiteral(tok.Pos), nil
	}
	if tok := p.sc.Take(truePattern); tok != nil {
		return ast.NewBooleanLiteral(true, tok.Pos), nil
	}
	if tok := p.sc.Take(falsePattern); tok != nil {
		return ast.NewBooleanLiteral(false, tok.Pos), nil
	}
	if tok := p.sc.Take(numberPattern); tok != nil {
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, errors.NewParseError(errors.CodeExpectedOperand,
				fmt.Sprintf("invalid number literal %q", tok.Text), tok.Pos)
		}
		return ast.NewNumberLiteral(value, tok.Pos), nil
	}
	if tok := p.sc.Take(quotePattern); tok != nil {
		return p.parseString(tok)
	}
	if tok := p.sc.Take(lbracketPattern); tok != nil {
		return p.parseArray(tok)
	}
	if tok := p.sc.Take(lbracePattern); tok != nil {
		return p.parseObject(tok)
	}
	if tok := p.sc.Match(identPattern); tok != nil {
		p.sc.Advance()
		return ast.NewIdentifier(*tok), nil
	}
	if p.sc.Take(lparenPattern) != nil {
		inner, err := p.Parse()
		if err != nil {
			return nil, err
		}
		p.sc.SkipSpace()
		if p.sc.Take(rparenPattern) == nil {
			return nil, errors.NewExpected(errors.CodeExpectedClose, `")"`, p.sc.Pos())
		}
		return inner, nil
	}
	return nil, nil
}

// TryIdentifier parses a bare identifier if one starts here. Reserved
// words are rejected with a dedicated error.
func (p *Parser) TryIdentifier() (*ast.Identifier, error) {
	p.sc.SkipSpace()
	tok := p.sc.Match(identPattern)
	if tok == nil {
		return nil, nil
	}
	if reservedWords[tok.Text] {
		return nil, errors.NewReservedWord(tok.Text, tok.Pos)
	}
	p.sc.Advance()
	return ast.NewIdentifier(*tok), nil
}

// ParseIdentifier parses a required bare identifier.
func (p *Parser) ParseIdentifier() (*ast.Identifier, error) {
	id, err := p.TryIdentifier()
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, errors.NewExpected(errors.CodeExpectedIdentifier, "identifier", p.sc.Pos())
	}
	return id, nil
}

// parseString scans a double-quoted string body after the opening
// quote. \n and \t resolve to their control characters; every other
// escaped character (including a literal newline) passes through.
func (p *Parser) parseString(open *ast.Token) (ast.Expression, error) {
	var value []byte
	for {
		if tok := p.sc.Take(stringChunk); tok != nil {
			value = append(value, tok.Text...)
			continue
		}
		if tok := p.sc.Take(escapePattern); tok != nil {
			switch tok.Text[1] {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			default:
				value = append(value, tok.Text[1:]...)
			}
			continue
		}
		if p.sc.Take(quotePattern) != nil {
			return ast.NewStringLiteral(string(value), open.Pos), nil
		}
		return nil, errors.NewParseError(errors.CodeUnterminatedString,
			"unterminated string literal", open.Pos)
	}
}

// parseArguments parses a call argument list after the opening paren.
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	p.sc.SkipSpace()
	if p.sc.Take(rparenPattern) != nil {
		return nil, nil
	}
	var args []ast.Expression
	for {
		arg, err := p.Parse()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.sc.SkipSpace()
		if p.sc.Take(commaPattern) != nil {
			continue
		}
		if p.sc.Take(rparenPattern) != nil {
			return args, nil
		}
		return nil, errors.NewExpected(errors.CodeExpectedClose, `")"`, p.sc.Pos())
	}
}

// parseArray parses an array construction after the opening bracket.
func (p *Parser) parseArray(open *ast.Token) (ast.Expression, error) {
	p.sc.SkipSpace()
	if p.sc.Take(rbracketPattern) != nil {
		return ast.NewArrayConstruction(nil, open.Pos), nil
	}
	var items []ast.Expression
	for {
		item, err := p.Parse()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.sc.SkipSpace()
		if p.sc.Take(commaPattern) != nil {
			continue
		}
		if p.sc.Take(rbracketPattern) != nil {
			return ast.NewArrayConstruction(items, open.Pos), nil
		}
		return nil, errors.NewExpected(errors.CodeExpectedClose, `"]"`, p.sc.Pos())
	}
}

// parseObject parses an object construction after the opening brace.
// Keys must be identifiers; a repeated key overwrites.
func (p *Parser) parseObject(open *ast.Token) (ast.Expression, error) {
	entries := make(map[string]ast.Expression)
	p.sc.SkipSpace()
	if p.sc.Take(rbracePattern) != nil {
		return ast.NewObjectConstruction(entries, open.Pos), nil
	}
	for {
		key, err := p.ParseIdentifier()
		if err != nil {
			return nil, err
		}
		p.sc.SkipSpace()
		if p.sc.Take(colonPattern) == nil {
			return nil, errors.NewParseError(errors.CodeExpectedValue,
				fmt.Sprintf("missing colon after object key %q", key.Name), p.sc.Pos())
		}
		value, err := p.TryParse()
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errors.NewParseError(errors.CodeExpectedValue,
				fmt.Sprintf("missing value for object key %q", key.Name), p.sc.Pos())
		}
		entries[key.Name] = value
		p.sc.SkipSpace()
		if p.sc.Take(commaPattern) != nil {
			p.sc.SkipSpace()
			continue
		}
		if p.sc.Take(rbracePattern) != nil {
			return ast.NewObjectConstruction(entries, open.Pos), nil
		}
		return nil, errors.NewExpected(errors.CodeExpectedClose, `"}"`, p.sc.Pos())
	}
}
