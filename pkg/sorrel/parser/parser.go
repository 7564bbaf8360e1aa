// Package parser turns expression text into a sorrel AST.
//
// The algorithm is precedence climbing over a mutable chain: a synthetic
// grouping node acts as the list head, prefix operators and primaries
// are hung off the current node, and each infix operator is spliced into
// the chain at the point its priority and associativity dictate, taking
// the dislodged sub-tree as its left operand.
package parser

import (
	"fmt"

	"github.com/sambeau/sorrel/pkg/sorrel/ast"
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/scanner"
)

// reservedWords are operator keywords that can never be used as
// identifiers, whatever the resolver would say about them.
var reservedWords = map[string]bool{
	"and": true, "or": true,
	"eq": true, "ne": true,
	"lt": true, "le": true, "gt": true, "ge": true,
	"div": true, "mod": true,
	"instanceof": true,
}

// Parser parses expression text against a resolver. The extension flags
// are ordinary mutable state: a single instance must not be shared
// across goroutines with differing configurations.
type Parser struct {
	resolver Resolver
	opts     Options
}

// New creates a parser for the standard language with no extensions.
func New(resolver Resolver) *Parser {
	return &Parser{resolver: resolver}
}

// NewExtended creates a parser with every extension enabled.
func NewExtended(resolver Resolver) *Parser {
	return &Parser{resolver: resolver, opts: AllExtensions()}
}

// NewWithOptions creates a parser with a specific extension set.
func NewWithOptions(resolver Resolver, opts Options) *Parser {
	return &Parser{resolver: resolver, opts: opts}
}

// Options returns the parser's extension flags.
func (p *Parser) Options() Options { return p.opts }

// Parse parses input as a complete expression. Text left over after the
// expression is a parse error.
func (p *Parser) Parse(input string) (ast.Node, error) {
	s := scanner.New(input)
	node, err := p.ParseEmbedded(s)
	if err != nil {
		return nil, err
	}
	s.SkipWhitespace()
	if !s.EOF() {
		return nil, serrors.NewParse(serrors.CodeTrailingText,
			"unexpected text after expression", s.Pos())
	}
	return node, nil
}

// ParseEmbedded parses one expression from the scanner's current
// position, leaving the cursor just after it. The template engine uses
// this to parse ${...} placeholders out of surrounding text.
func (p *Parser) ParseEmbedded(s *scanner.Scanner) (ast.Node, error) {
	head := ast.NewParentheses(nil)
	r := &run{p: p, s: s}
	if err := r.parseExpression(head); err != nil {
		return nil, err
	}
	node := head.Right()
	if node == nil {
		return nil, serrors.NewParse(serrors.CodeUnexpectedEnd,
			"unexpected end of expression", s.Pos())
	}
	if p.opts.Conditional {
		if err := ast.Verify(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// run is the state of a single parse.
type run struct {
	p *Parser
	s *scanner.Scanner
}

// parseExpression drives the outer loop: operand, infix operator,
// splice, repeat until no infix operator follows.
func (r *run) parseExpression(head ast.OperandHolder) error {
	var current ast.OperandHolder = head
	for {
		if err := r.parseOperand(current); err != nil {
			return err
		}
		op := r.matchInfix()
		if op == nil {
			return nil
		}
		splice(head, op)
		current = op
	}
}

// splice walks from the head along the chain of already-placed diadic
// nodes while the placed node binds tighter than op, or equally tightly
// with a right-associative node, then inserts op there, taking the
// dislodged sub-tree as its left operand.
func splice(head ast.OperandHolder, op ast.DiadicNode) {
	parent := head
	for {
		placed, ok := parent.Right().(ast.DiadicNode)
		if !ok {
			break
		}
		if placed.Priority() > op.Priority() ||
			(placed.Priority() == op.Priority() && placed.IsLeftAssociative()) {
			break
		}
		parent = placed
	}
	op.SetLeft(parent.Right())
	parent.SetRight(op)
}

// parseOperand strips a chain of prefix operators, then parses one
// primary with its postfix accessors, and hangs the result on current.
func (r *run) parseOperand(current ast.OperandHolder) error {
	s := r.s
	opts := r.p.opts

prefixes:
	for {
		s.SkipWhitespace()
		switch {
		case s.MatchChar('-'):
			if c := s.Peek(); c == '.' || (c >= '0' && c <= '9') {
				// negative numeric literal, not negation
				s.Back(1)
				break prefixes
			}
			current = push(current, ast.NewNegate(nil))
		case s.MatchChar('!'), s.MatchKeyword("not"):
			current = push(current, ast.NewNot(nil))
		case s.MatchKeyword("empty"):
			current = push(current, ast.NewEmptyTest(nil))
		case opts.CaseConversion && s.MatchKeyword("toupper"):
			current = push(current, ast.NewCaseConvert(nil, true))
		case opts.CaseConversion && s.MatchKeyword("tolower"):
			current = push(current, ast.NewCaseConvert(nil, false))
		case opts.Length && s.MatchKeyword("length"):
			current = push(current, ast.NewLength(nil))
		case opts.Sum && s.MatchKeyword("sum"):
			current = push(current, ast.NewSum(nil))
		default:
			break prefixes
		}
	}

	primary, err := r.parsePrimary()
	if err != nil {
		return err
	}
	primary, err = r.parsePostfix(primary)
	if err != nil {
		return err
	}
	current.SetRight(primary)
	return nil
}

func push(current ast.OperandHolder, n ast.MonadicNode) ast.OperandHolder {
	current.SetRight(n)
	return n
}

// parsePrimary parses the core of an operand: a parenthesized
// sub-expression, an array or object literal, a literal value, or an
// identifier (possibly a qualified function call).
func (r *run) parsePrimary() (ast.Node, error) {
	s := r.s
	s.SkipWhitespace()
	pos := s.Pos()

	if s.EOF() {
		return nil, serrors.NewParse(serrors.CodeUnexpectedEnd,
			"unexpected end of expression", pos)
	}

	if s.MatchChar('(') {
		inner := ast.NewParentheses(nil)
		if err := r.parseExpression(inner); err != nil {
			return nil, err
		}
		s.SkipWhitespace()
		if !s.MatchChar(')') {
			return nil, serrors.NewParse(serrors.CodeUnmatched, "missing ')'", s.Pos())
		}
		// keep exactly one grouping marker around the sub-expression
		if p, ok := inner.Right().(*ast.Parentheses); ok {
			return p, nil
		}
		return inner, nil
	}

	if r.p.opts.Literals && s.MatchChar('[') {
		return r.parseArrayLiteral()
	}
	if r.p.opts.Literals && s.MatchChar('{') {
		return r.parseObjectLiteral()
	}

	if num, ok := s.MatchNumber(); ok {
		if num.IsFloat {
			return ast.NewFloat(num.Float), nil
		}
		return ast.NewInt(num.Int), nil
	}

	if c := s.Peek(); c == '\'' || c == '"' {
		text, ok := s.MatchStringLiteral()
		if !ok {
			return nil, serrors.NewParse(serrors.CodeUnexpectedEnd,
				"unterminated string literal", pos)
		}
		return ast.NewText(text), nil
	}

	switch {
	case s.MatchKeyword("true"):
		return ast.True, nil
	case s.MatchKeyword("false"):
		return ast.False, nil
	case s.MatchKeyword("null"):
		return ast.Null, nil
	}

	if s.MatchIdentifier(scanner.IsIdentifierStart, scanner.IsIdentifierPart) {
		return r.parseIdentifier(s.Matched(), pos)
	}

	return nil, serrors.NewParse(serrors.CodeUnexpected,
		fmt.Sprintf("unexpected character %q", s.Peek()), pos)
}

// parseIdentifier resolves a bare identifier, or binds a qualified
// function call when the resolver supports namespaces and a callable
// prefix:name( follows.
func (r *run) parseIdentifier(name string, pos int) (ast.Node, error) {
	s := r.s

	if reservedWords[name] {
		return nil, &serrors.Error{
			Class:   serrors.ClassParse,
			Code:    serrors.CodeReservedWord,
			Message: fmt.Sprintf("reserved word %q cannot be used as an identifier", name),
			Pos:     pos,
			Data:    map[string]any{"identifier": name},
		}
	}

	if er, ok := r.p.resolver.(ExtendedResolver); ok {
		save := s.Pos()
		s.SkipWhitespace()
		if s.MatchChar(':') {
			s.SkipWhitespace()
			if s.MatchIdentifier(scanner.IsIdentifierStart, scanner.IsIdentifierPart) {
				funcName := s.Matched()
				s.SkipWhitespace()
				if s.MatchChar('(') {
					return r.parseCall(er, name, funcName, pos)
				}
			}
		}
		// not a qualified call after all; ':' belongs to someone else
		s.Rewind(save)
	}

	node, ok := r.p.resolver.Resolve(name)
	if !ok {
		return nil, &serrors.Error{
			Class:   serrors.ClassParse,
			Code:    serrors.CodeUnresolved,
			Message: fmt.Sprintf("unresolved identifier %q", name),
			Pos:     pos,
			Data:    map[string]any{"identifier": name},
		}
	}
	return node, nil
}

// parseCall parses the argument list of prefix:name( and binds the call
// to the namespace's function set.
func (r *run) parseCall(er ExtendedResolver, prefix, funcName string, pos int) (ast.Node, error) {
	s := r.s

	uri, ok := er.ResolvePrefix(prefix)
	if !ok {
		return nil, serrors.NewParse(serrors.CodeBadCall,
			fmt.Sprintf("unknown namespace prefix %q", prefix), pos)
	}
	set, ok := er.ResolveNamespace(uri)
	if !ok {
		return nil, serrors.NewParse(serrors.CodeBadCall,
			fmt.Sprintf("no functions bound to namespace %q", uri), pos)
	}

	var args []ast.Node
	s.SkipWhitespace()
	if !s.MatchChar(')') {
		for {
			arg, err := r.parseSubExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			s.SkipWhitespace()
			if s.MatchChar(',') {
				continue
			}
			if s.MatchChar(')') {
				break
			}
			return nil, serrors.NewParse(serrors.CodeBadArguments,
				"malformed argument list: expected ',' or ')'", s.Pos())
		}
	}
	return ast.NewFunctionCall(set, prefix, funcName, args), nil
}

// parsePostfix applies zero or more .name and [expr] accessors.
func (r *run) parsePostfix(primary ast.Node) (ast.Node, error) {
	s := r.s
	for {
		s.SkipWhitespace()
		switch {
		case s.MatchChar('.'):
			s.SkipWhitespace()
			if !s.MatchIdentifier(scanner.IsIdentifierStart, scanner.IsIdentifierPart) {
				return nil, serrors.NewParse(serrors.CodeBadProperty,
					"expected property name after '.'", s.Pos())
			}
			primary = ast.NewDotIndex(primary, s.Matched())
		case s.MatchChar('['):
			key, err := r.parseSubExpression()
			if err != nil {
				return nil, err
			}
			s.SkipWhitespace()
			if !s.MatchChar(']') {
				return nil, serrors.NewParse(serrors.CodeUnmatched, "missing ']'", s.Pos())
			}
			primary = ast.NewIndex(primary, key)
		default:
			return primary, nil
		}
	}
}

// parseSubExpression parses one complete nested expression, as found
// inside brackets, braces, and argument lists.
func (r *run) parseSubExpression() (ast.Node, error) {
	head := ast.NewParentheses(nil)
	if err := r.parseExpression(head); err != nil {
		return nil, err
	}
	node := head.Right()
	if node == nil {
		return nil, serrors.NewParse(serrors.CodeUnexpectedEnd,
			"unexpected end of expression", r.s.Pos())
	}
	return node, nil
}

func (r *run) parseArrayLiteral() (ast.Node, error) {
	s := r.s
	s.SkipWhitespace()
	if s.MatchChar(']') {
		return ast.NewArrayLiteral(nil), nil
	}
	var elements []ast.Node
	for {
		el, err := r.parseSubExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		s.SkipWhitespace()
		if s.MatchChar(',') {
			continue
		}
		if s.MatchChar(']') {
			return ast.NewArrayLiteral(elements), nil
		}
		return nil, serrors.NewParse(serrors.CodeUnmatched,
			"missing ']' in array literal", s.Pos())
	}
}

func (r *run) parseObjectLiteral() (ast.Node, error) {
	s := r.s
	s.SkipWhitespace()
	if s.MatchChar('}') {
		return ast.NewObjectLiteral(nil, nil), nil
	}
	var keys []string
	var values []ast.Node
	for {
		s.SkipWhitespace()
		var key string
		if s.MatchIdentifier(scanner.IsIdentifierStart, scanner.IsIdentifierPart) {
			key = s.Matched()
		} else if c := s.Peek(); c == '\'' || c == '"' {
			text, ok := s.MatchStringLiteral()
			if !ok {
				return nil, serrors.NewParse(serrors.CodeUnexpectedEnd,
					"unterminated string literal", s.Pos())
			}
			key = text
		} else {
			return nil, serrors.NewParse(serrors.CodeUnexpected,
				"expected key in object literal", s.Pos())
		}
		s.SkipWhitespace()
		if !s.MatchChar(':') {
			return nil, serrors.NewParse(serrors.CodeUnexpected,
				"expected ':' after object literal key", s.Pos())
		}
		val, err := r.parseSubExpression()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, val)
		s.SkipWhitespace()
		if s.MatchChar(',') {
			continue
		}
		if s.MatchChar('}') {
			return ast.NewObjectLiteral(keys, values), nil
		}
		return nil, serrors.NewParse(serrors.CodeUnmatched,
			"missing '}' in object literal", s.Pos())
	}
}

// matchInfix consumes the next infix operator token when one follows,
// trying multi-character tokens before their single-character prefixes
// and accepting the keyword synonyms.
func (r *run) matchInfix() ast.DiadicNode {
	s := r.s
	opts := r.p.opts
	s.SkipWhitespace()

	switch {
	case s.MatchString("&&"), s.MatchKeyword("and"):
		return ast.NewAnd(nil, nil)
	case s.MatchString("||"), s.MatchKeyword("or"):
		return ast.NewOr(nil, nil)
	case s.MatchString("=="), s.MatchKeyword("eq"):
		return ast.NewEquals(nil, nil)
	case s.MatchString("!="), s.MatchKeyword("ne"):
		return ast.NewNotEquals(nil, nil)
	case s.MatchString("<="), s.MatchKeyword("le"):
		return ast.NewLessOrEqual(nil, nil)
	case s.MatchString(">="), s.MatchKeyword("ge"):
		return ast.NewGreaterOrEqual(nil, nil)
	case s.MatchChar('<'), s.MatchKeyword("lt"):
		return ast.NewLess(nil, nil)
	case s.MatchChar('>'), s.MatchKeyword("gt"):
		return ast.NewGreater(nil, nil)
	case opts.Match && s.MatchString("~="):
		return ast.NewMatch(nil, nil)
	case s.MatchChar('+'):
		return ast.NewAdd(nil, nil)
	case s.MatchChar('-'):
		return ast.NewSubtract(nil, nil)
	case s.MatchChar('*'):
		return ast.NewMultiply(nil, nil)
	case s.MatchChar('/'), s.MatchKeyword("div"):
		return ast.NewDivide(nil, nil)
	case s.MatchChar('%'), s.MatchKeyword("mod"):
		return ast.NewModulo(nil, nil)
	case opts.Join && s.MatchChar('#'):
		return ast.NewJoin(nil, nil)
	case opts.Conditional && s.MatchChar('?'):
		return ast.NewConditional(nil, nil)
	case opts.Conditional && s.MatchChar(':'):
		return ast.NewElse(nil, nil)
	case opts.Assignment && s.MatchChar('='):
		return ast.NewAssign(nil, nil)
	}
	return nil
}
