// Package template substitutes ${...} placeholders in text. Each
// placeholder holds one expression in the embedding parser's language;
// text outside placeholders passes through untouched.
package template

import (
	"strings"

	"github.com/sambeau/sorrel/pkg/sorrel/ast"
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/parser"
	"github.com/sambeau/sorrel/pkg/sorrel/scanner"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

const open = "${"

// Substitute evaluates every ${...} placeholder in input eagerly and
// returns the substituted text. Input without placeholders is returned
// as-is; a single placeholder with no surrounding text returns the
// expression's text form directly.
func Substitute(input string, p *parser.Parser) (string, error) {
	if !strings.Contains(input, open) {
		return input, nil
	}
	node, err := Parse(input, p)
	if err != nil {
		return "", err
	}
	v, err := node.Evaluate()
	if err != nil {
		return "", err
	}
	return value.ToText(v), nil
}

// Parse compiles input into an AST for repeated evaluation: a constant
// for placeholder-free input, otherwise a concatenation of literal
// spans and placeholder expressions. Evaluating the tree always yields
// text; a lone non-text placeholder keeps its Concat wrapper as the
// coercion. The result is already optimized.
func Parse(input string, p *parser.Parser) (ast.Node, error) {
	if !strings.Contains(input, open) {
		return ast.NewText(input), nil
	}

	s := scanner.New(input)
	var parts []ast.Node
	for !s.EOF() {
		if !s.SkipTo(open) {
			if text := s.Matched(); text != "" {
				parts = append(parts, ast.NewText(text))
			}
			break
		}
		if text := s.Matched(); text != "" {
			parts = append(parts, ast.NewText(text))
		}
		expr, err := p.ParseEmbedded(s)
		if err != nil {
			return nil, err
		}
		s.SkipWhitespace()
		if !s.MatchChar('}') {
			return nil, serrors.NewParse(serrors.CodeUnmatched,
				"missing '}' after placeholder expression", s.Pos())
		}
		parts = append(parts, expr)
	}

	// even a lone placeholder goes through Concat so the result is
	// coerced to text unless it already is text
	return ast.NewConcat(parts).Optimize(), nil
}
