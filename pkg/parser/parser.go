// Package parser turns bloc template source text into a tree of
// typed AST nodes. The driver alternates between literal text runs
// and [[...]] constructs, keeping the open nesting levels on a stack.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"blocml/errors"
	"blocml/pkg/ast"
	"blocml/pkg/expression"
	"blocml/pkg/scanner"
)

var (
	blocOpenPattern  = regexp.MustCompile(`^\[\[`)
	blocClosePattern = regexp.MustCompile(`^\]\]`)
	// Alternation order matters: "+:" and "*:" must win over "+"/"*".
	modifierPattern = regexp.MustCompile(`^(?:#|\+:|\*:|\+|\*|-)`)
	arrowPattern    = regexp.MustCompile(`^(?:->|=>)`)
	colonPattern    = regexp.MustCompile(`^:`)
	commaPattern    = regexp.MustCompile(`^,`)

	textChunkPattern  = regexp.MustCompile(`^(?:\\(?s:.)|[^\[\\])+`)
	loneBracket       = regexp.MustCompile(`^\[`)
	loneBackslash     = regexp.MustCompile(`^\\`)
	commentChunk      = regexp.MustCompile(`^(?:\\(?s:.)|[^#\\])+`)
	commentEndPattern = regexp.MustCompile(`^#\]\]`)
	hashPattern       = regexp.MustCompile(`^#`)
	blankTailPattern  = regexp.MustCompile(`^[ \t]*(?:\r?\n|$)`)
	skipChunkPattern  = regexp.MustCompile(`^[^\]]+`)
	loneCloseBracket  = regexp.MustCompile(`^\]`)
)

// modifier flags for a single bloc construct.
type modifier struct {
	comment  bool
	open     bool
	property bool
	implicit bool
	close    bool
}

// Parser is the bloc-level driver. All mutable parse state lives
// here, owned by a single Parse call.
type Parser struct {
	sc    *scanner.Scanner
	expr  *expression.Parser
	stack *blocStack
	root  *ast.Template
}

// Parse parses template source text into a Template tree.
func Parse(text string) (*ast.Template, error) {
	return ParseNamed(text, "")
}

// ParseNamed parses template source text. The source name is attached
// to any parse error for reporting; it does not affect parsing.
func ParseNamed(text, source string) (*ast.Template, error) {
	sc := scanner.New(text)
	root := ast.NewTemplate(sc.Pos())
	p := &Parser{
		sc:    sc,
		expr:  expression.New(sc),
		stack: newBlocStack(root),
		root:  root,
	}
	tpl, err := p.parse()
	if err != nil {
		return nil, errors.WithSource(err, source)
	}
	return tpl, nil
}

// parse runs the text/bloc loop until the input is exhausted, then
// pops the implicit root binding and returns the resulting template.
func (p *Parser) parse() (*ast.Template, error) {
	for !p.sc.EOF() {
		p.parseText()
		matched, err := p.parseBloc()
		if err != nil {
			return nil, err
		}
		if !matched {
			break
		}
	}
	if p.stack.depth() > 1 {
		top := p.stack.top()
		name := "(implicit)"
		pos := top.node.Position()
		if top.binding != nil {
			name = fmt.Sprintf("%q", top.binding.Name)
			pos = top.binding.Pos
		}
		return nil, errors.NewParseError(errors.CodeUnclosedBloc,
			fmt.Sprintf("unexpected end of input: bloc %s is still open", name), pos)
	}
	if err := p.stack.pop(nil, p.sc.Pos()); err != nil {
		return nil, err
	}
	return p.unwrapRoot(), nil
}

// unwrapRoot returns the nested template when the whole input is a
// single opening bloc named "template", otherwise the synthetic root.
func (p *Parser) unwrapRoot() *ast.Template {
	if len(p.root.Children) == 1 {
		if bloc, ok := p.root.Children[0].(*ast.Bloc); ok && bloc.Contents != nil {
			if id, ok := bloc.Expression.(*ast.Identifier); ok && id.Name == "template" {
				return bloc.Contents
			}
		}
	}
	return p.root
}

// parseText consumes the longest run of characters not containing an
// unescaped "[[" and appends it as a text child of the current
// container. The raw source text is kept, escapes included.
func (p *Parser) parseText() {
	start := p.sc.Pos()
	var text strings.Builder
	for {
		if tok := p.sc.Take(textChunkPattern); tok != nil {
			text.WriteString(tok.Text)
			continue
		}
		if p.sc.Match(blocOpenPattern) != nil {
			break
		}
		if tok := p.sc.Take(loneBracket); tok != nil {
			text.WriteString(tok.Text)
			continue
		}
		if tok := p.sc.Take(loneBackslash); tok != nil {
			// trailing backslash at end of input
			text.WriteString(tok.Text)
			continue
		}
		break
	}
	if text.Len() > 0 {
		p.stack.top().contents.Append(ast.NewTextNode(text.String(), start))
	}
}

// parseBloc consumes one [[...]] construct. It reports whether a bloc
// started here. On any error inside the construct it makes one
// best-effort skip past the next "]]" before propagating, bounding
// how much trailing garbage is consumed; the parse still aborts.
func (p *Parser) parseBloc() (bool, error) {
	open := p.sc.Take(blocOpenPattern)
	if open == nil {
		return false, nil
	}
	if err := p.parseBlocBody(open); err != nil {
		p.skipPastBlocClose()
		return true, err
	}
	return true, nil
}

// parseBlocBody parses everything after the opening "[[".
func (p *Parser) parseBlocBody(open *ast.Token) error {
	p.sc.SkipSpace()

	var mod modifier
	if tok := p.sc.Match(modifierPattern); tok != nil {
		p.sc.Advance()
		switch tok.Text {
		case "#":
			mod.comment = true
		case "+":
			mod.open = true
		case "+:":
			mod.open = true
			mod.property = true
		case "*":
			mod.open = true
			mod.implicit = true
		case "*:":
			mod.open = true
			mod.implicit = true
			mod.property = true
		case "-":
			mod.close = true
		}
	}

	if mod.comment {
		return p.parseComment(open)
	}

	var (
		head    ast.Expression
		target  *ast.Identifier
		value   ast.Expression
		closeID *ast.Identifier
	)

	switch {
	case mod.property:
		id, err := p.expr.ParseIdentifier()
		if err != nil {
			return err
		}
		target = id
		head = id
		p.sc.SkipSpace()
		if tok := p.sc.Match(colonPattern); tok != nil {
			return errors.NewParseError(errors.CodePropertyColon,
				"a bloc cannot both open with \":\" and contain \":\"", tok.Pos)
		}
	case mod.close:
		id, err := p.expr.TryIdentifier()
		if err != nil {
			return err
		}
		closeID = id
	default:
		expr, err := p.expr.Parse()
		if err != nil {
			return err
		}
		head = expr
		if id, ok := expr.(*ast.Identifier); ok {
			p.sc.SkipSpace()
			if p.sc.Take(colonPattern) != nil {
				v, err := p.expr.Parse()
				if err != nil {
					return err
				}
				target = id
				value = v
			}
		}
	}

	params, err := p.tryParamList()
	if err != nil {
		return err
	}
	if params != nil && !mod.open {
		return errors.NewParseError(errors.CodeParamsNonOpening,
			"parameter list on a non-opening bloc", params.Pos)
	}

	p.sc.SkipSpace()
	if p.sc.Take(blocClosePattern) == nil {
		return errors.NewExpected(errors.CodeExpectedBlocClose, `"]]"`, p.sc.Pos())
	}

	// Fused shorthand: [[*:name]]primary ->params]] writes a property
	// whose contents are a single inline leaf bloc. The whole tail is
	// speculative; anything short of a full match rolls back to the
	// normal open behavior.
	var (
		fusedValue  ast.Expression
		fusedParams *ast.ParamList
	)
	if mod.property {
		mark := p.sc.Snapshot()
		if prim, err := p.expr.TryPrimary(); err == nil && prim != nil {
			ps, perr := p.tryParamList()
			p.sc.SkipSpace()
			if perr == nil && p.sc.Take(blocClosePattern) != nil {
				fusedValue = prim
				fusedParams = ps
			} else {
				p.sc.Restore(mark)
			}
		} else {
			p.sc.Restore(mark)
		}
	}

	if mod.open || mod.close {
		p.removeBlankLine()
	}

	return p.complete(open, mod, head, target, value, closeID, params, fusedValue, fusedParams)
}

// complete attaches the parsed construct to the tree and adjusts the
// bloc stack.
func (p *Parser) complete(
	open *ast.Token,
	mod modifier,
	head ast.Expression,
	target *ast.Identifier,
	value ast.Expression,
	closeID *ast.Identifier,
	params *ast.ParamList,
	fusedValue ast.Expression,
	fusedParams *ast.ParamList,
) error {
	if mod.close {
		if p.stack.depth() == 1 {
			return errors.NewParseError(errors.CodeUnmatchedClose,
				"no open bloc to close", open.Pos)
		}
		return p.stack.pop(closeID, open.Pos)
	}

	if target != nil {
		def := ast.NewDefinition(target, value, open.Pos)
		if err := p.attachProperty(def); err != nil {
			return err
		}
		switch {
		case fusedValue != nil:
			// The list parsed after the property head stays on the
			// property's contents; the list parsed after the inline
			// primary belongs to the leaf it invokes.
			contents := ast.NewTemplate(fusedValue.Position())
			contents.Params = params
			leaf := ast.NewBloc(fusedValue, fusedValue.Position())
			if fusedParams != nil {
				inner := ast.NewTemplate(fusedParams.Pos)
				inner.Params = fusedParams
				leaf.Contents = inner
			}
			contents.Append(leaf)
			def.Contents = contents
		case mod.open:
			contents := ast.NewTemplate(p.sc.Pos())
			contents.Params = params
			def.Contents = contents
			var binding *ast.Identifier
			if !mod.implicit {
				binding = target
			}
			p.stack.push(def, contents, binding)
		}
		return nil
	}

	bloc := ast.NewBloc(head, open.Pos)
	p.stack.top().contents.Append(bloc)
	if mod.open {
		contents := ast.NewTemplate(p.sc.Pos())
		contents.Params = params
		bloc.Contents = contents
		var binding *ast.Identifier
		if !mod.implicit {
			// A non-identifier head cannot be named by a close, so it
			// is left unvalidated like an implicit open.
			if id, ok := head.(*ast.Identifier); ok {
				binding = id
			}
		}
		p.stack.push(bloc, contents, binding)
	}
	return nil
}

// attachProperty adds a definition to the properties of the current
// container. The root and other definitions are invalid parents.
func (p *Parser) attachProperty(def *ast.Definition) error {
	switch node := p.stack.top().node.(type) {
	case *ast.Bloc:
		node.Properties = append(node.Properties, def)
		return nil
	case *ast.Definition:
		return errors.NewParseError(errors.CodePropertyInProperty,
			fmt.Sprintf("property %q cannot be defined inside another property", def.Target.Name),
			def.Pos)
	default:
		return errors.NewParseError(errors.CodePropertyAtRoot,
			fmt.Sprintf("property %q cannot be defined at the template root", def.Target.Name),
			def.Pos)
	}
}

// tryParamList parses "-> a, b" or "=> a, b" when an arrow starts
// here. The arrow picks the parameter scope kind.
func (p *Parser) tryParamList() (*ast.ParamList, error) {
	p.sc.SkipSpace()
	arrow := p.sc.Match(arrowPattern)
	if arrow == nil {
		return nil, nil
	}
	p.sc.Advance()
	kind := ast.ParamsLocal
	if arrow.Text == "=>" {
		kind = ast.ParamsGlobal
	}
	var names []*ast.Identifier
	for {
		id, err := p.expr.ParseIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, id)
		p.sc.SkipSpace()
		if p.sc.Take(commaPattern) == nil {
			break
		}
	}
	return ast.NewParamList(kind, names, arrow.Pos), nil
}

// parseComment consumes everything up to the first unescaped "#]]".
// Nothing is appended to the tree.
func (p *Parser) parseComment(open *ast.Token) error {
	for {
		if p.sc.Take(commentChunk) != nil {
			continue
		}
		if p.sc.Take(commentEndPattern) != nil {
			return nil
		}
		if p.sc.Take(hashPattern) != nil {
			continue
		}
		return errors.NewParseError(errors.CodeUnterminatedComment,
			"unterminated comment", open.Pos)
	}
}

// removeBlankLine trims the cosmetic whitespace around an open or
// close delimiter sitting alone on a line: the all-whitespace tail of
// the preceding text run and the newline that follows the delimiter.
func (p *Parser) removeBlankLine() {
	contents := p.stack.top().contents
	cut := -1 // keep this many leading bytes of the last text child
	if n := len(contents.Children); n > 0 {
		last, ok := contents.Children[n-1].(*ast.TextNode)
		if !ok {
			return
		}
		idx := strings.LastIndexByte(last.Value, '\n')
		if strings.TrimRight(last.Value[idx+1:], " \t") != "" {
			return
		}
		cut = idx + 1
	}
	// Eligibility is settled, so the tail match is committed at once
	// and no pending match is left behind on the scanner.
	if p.sc.Take(blankTailPattern) == nil {
		return
	}
	if cut >= 0 {
		n := len(contents.Children)
		last := contents.Children[n-1].(*ast.TextNode)
		if cut == 0 {
			contents.Children = contents.Children[:n-1]
		} else {
			last.Value = last.Value[:cut]
		}
	}
}

// skipPastBlocClose is the one best-effort recovery: scan forward
// past the next "]]" so the surfaced error is not followed by a
// runaway cursor. The original error is always re-raised by the
// caller.
func (p *Parser) skipPastBlocClose() {
	for {
		if p.sc.Take(blocClosePattern) != nil {
			return
		}
		if p.sc.Take(skipChunkPattern) != nil {
			continue
		}
		if p.sc.Take(loneCloseBracket) != nil {
			continue
		}
		return
	}
}
