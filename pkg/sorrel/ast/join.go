package ast

import (
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Join implements the string-join operator #. Both operands are coerced
// to text, null contributing nothing, and the result is always text.
type Join struct {
	diadic
	leftAssociative
	nonCommutative
}

func NewJoin(left, right Node) *Join {
	n := &Join{}
	n.left, n.right = left, right
	return n
}

func (n *Join) Name() string           { return "#" }
func (n *Join) Priority() int          { return PriorityAdditive }
func (n *Join) ResultType() value.Type { return value.StringType }

func (n *Join) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	return &value.String{Value: value.ToText(l) + value.ToText(r)}, nil
}

// Optimize collapses a join with a constant null or empty-string operand
// to the other operand.
func (n *Join) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	if isEmptyConstant(n.left) {
		return n.right
	}
	if isEmptyConstant(n.right) {
		return n.left
	}
	return foldConstant(n)
}

func (n *Join) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Join) String() string        { return diadicString(n) }
