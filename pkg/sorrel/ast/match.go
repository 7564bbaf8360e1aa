package ast

import (
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Match implements the wildcard-match operator ~=. The left operand is
// the subject, the right the pattern; both must be text or null, and
// null on either side yields false rather than an error.
//
// Pattern alphabet: * matches zero or more characters, ? exactly one,
// and \ escapes the following character to a literal.
type Match struct {
	diadic
	leftAssociative
	nonCommutative
}

func NewMatch(left, right Node) *Match {
	n := &Match{}
	n.left, n.right = left, right
	return n
}

func (n *Match) Name() string           { return "~=" }
func (n *Match) Priority() int          { return PriorityEquality }
func (n *Match) ResultType() value.Type { return value.BooleanType }

func (n *Match) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	if value.IsNull(l) || value.IsNull(r) {
		return value.FALSE, nil
	}
	subject, ok := l.(*value.String)
	if !ok {
		return nil, serrors.Evalf(serrors.CodeOperand, "match subject must be text, got %s", l.Type())
	}
	pattern, ok := r.(*value.String)
	if !ok {
		return nil, serrors.Evalf(serrors.CodeOperand, "match pattern must be text, got %s", r.Type())
	}
	return value.FromBool(WildcardMatch(subject.Value, pattern.Value)), nil
}

func (n *Match) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	return foldConstant(n)
}

func (n *Match) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Match) String() string        { return diadicString(n) }

// WildcardMatch reports whether subject matches pattern. Matching is
// recursive with backtracking: each * tries every split point of the
// remaining subject. Worst case is exponential for pathological
// multi-star patterns; that is a known, accepted limitation.
func WildcardMatch(subject, pattern string) bool {
	return wildcardMatch([]rune(subject), []rune(pattern))
}

func wildcardMatch(subject, pattern []rune) bool {
	if len(pattern) == 0 {
		return len(subject) == 0
	}
	switch pattern[0] {
	case '*':
		for i := 0; i <= len(subject); i++ {
			if wildcardMatch(subject[i:], pattern[1:]) {
				return true
			}
		}
		return false
	case '?':
		return len(subject) > 0 && wildcardMatch(subject[1:], pattern[1:])
	case '\\':
		if len(pattern) > 1 {
			return len(subject) > 0 && subject[0] == pattern[1] &&
				wildcardMatch(subject[1:], pattern[2:])
		}
		// trailing backslash matches itself
		return len(subject) == 1 && subject[0] == '\\'
	}
	return len(subject) > 0 && subject[0] == pattern[0] &&
		wildcardMatch(subject[1:], pattern[1:])
}
