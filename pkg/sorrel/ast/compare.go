package ast

import (
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Equality implements == and its negation !=, using the language's
// equality ladder in value.Equal.
type Equality struct {
	diadic
	leftAssociative
	commutative
	Negated bool
}

func NewEquals(left, right Node) *Equality {
	n := &Equality{}
	n.left, n.right = left, right
	return n
}

func NewNotEquals(left, right Node) *Equality {
	n := &Equality{Negated: true}
	n.left, n.right = left, right
	return n
}

func (n *Equality) Name() string {
	if n.Negated {
		return "!="
	}
	return "=="
}

func (n *Equality) Priority() int          { return PriorityEquality }
func (n *Equality) ResultType() value.Type { return value.BooleanType }

func (n *Equality) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	return value.FromBool(value.Equal(l, r) != n.Negated), nil
}

func (n *Equality) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	return foldConstant(n)
}

// Invert flips == into != and back.
func (n *Equality) Invert() Node {
	inv := &Equality{Negated: !n.Negated}
	inv.left, inv.right = n.left, n.right
	return inv
}

func (n *Equality) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Equality) String() string        { return diadicString(n) }

// Relational implements <, <=, > and >= through one routine
// parameterized by which natural-order outcomes yield true.
type Relational struct {
	diadic
	leftAssociative
	nonCommutative
	less, equal, greater bool
}

func NewLess(left, right Node) *Relational {
	return newRelational(left, right, true, false, false)
}

func NewLessOrEqual(left, right Node) *Relational {
	return newRelational(left, right, true, true, false)
}

func NewGreater(left, right Node) *Relational {
	return newRelational(left, right, false, false, true)
}

func NewGreaterOrEqual(left, right Node) *Relational {
	return newRelational(left, right, false, true, true)
}

func newRelational(left, right Node, less, equal, greater bool) *Relational {
	n := &Relational{less: less, equal: equal, greater: greater}
	n.left, n.right = left, right
	return n
}

func (n *Relational) Name() string {
	switch {
	case n.less && n.equal:
		return "<="
	case n.less:
		return "<"
	case n.greater && n.equal:
		return ">="
	case n.greater:
		return ">"
	}
	return "<>" // unreachable flag combination
}

func (n *Relational) Priority() int          { return PriorityRelational }
func (n *Relational) ResultType() value.Type { return value.BooleanType }

func (n *Relational) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	c, err := value.Compare(l, r)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	switch {
	case c < 0:
		return value.FromBool(n.less), nil
	case c > 0:
		return value.FromBool(n.greater), nil
	}
	return value.FromBool(n.equal), nil
}

func (n *Relational) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	return foldConstant(n)
}

// Invert returns the logical complement: < becomes >=, <= becomes >,
// and so on, over the same operands.
func (n *Relational) Invert() Node {
	return newRelational(n.left, n.right, !n.less, !n.equal, !n.greater)
}

// Equal treats a comparison and its converse over swapped operands as
// the same node: a<=b equals b>=a.
func (n *Relational) Equal(other Node) bool {
	o, ok := other.(*Relational)
	if !ok {
		return false
	}
	if o.less == n.less && o.equal == n.equal && o.greater == n.greater &&
		nodesEqual(n.left, o.left) && nodesEqual(n.right, o.right) {
		return true
	}
	// converse form: flags mirrored, operands swapped
	if o.less == n.greater && o.greater == n.less && o.equal == n.equal &&
		nodesEqual(n.left, o.right) && nodesEqual(n.right, o.left) {
		return true
	}
	return false
}

func (n *Relational) String() string { return diadicString(n) }
