package ast

import (
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// And implements short-circuit logical and: the right operand is not
// evaluated when the left is false.
type And struct {
	diadic
	leftAssociative
	nonCommutative
}

func NewAnd(left, right Node) *And {
	n := &And{}
	n.left, n.right = left, right
	return n
}

func (n *And) Name() string           { return "&&" }
func (n *And) Priority() int          { return PriorityAnd }
func (n *And) ResultType() value.Type { return value.BooleanType }

func (n *And) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	lb, err := value.ToBoolean(l)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	if !lb {
		return value.FALSE, nil
	}
	r, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	rb, err := value.ToBoolean(r)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	return value.FromBool(rb), nil
}

// Optimize folds away a constant boolean side: true&&x -> x, false&&x
// -> false, and symmetrically for the right side.
func (n *And) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	if b, ok := constantBool(n.left); ok {
		if !b {
			return False
		}
		return n.right
	}
	if b, ok := constantBool(n.right); ok {
		if !b {
			return False
		}
		return n.left
	}
	return foldConstant(n)
}

func (n *And) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *And) String() string        { return diadicString(n) }

// Or implements short-circuit logical or: the right operand is not
// evaluated when the left is true.
type Or struct {
	diadic
	leftAssociative
	nonCommutative
}

func NewOr(left, right Node) *Or {
	n := &Or{}
	n.left, n.right = left, right
	return n
}

func (n *Or) Name() string           { return "||" }
func (n *Or) Priority() int          { return PriorityOr }
func (n *Or) ResultType() value.Type { return value.BooleanType }

func (n *Or) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	lb, err := value.ToBoolean(l)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	if lb {
		return value.TRUE, nil
	}
	r, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	rb, err := value.ToBoolean(r)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	return value.FromBool(rb), nil
}

// Optimize folds away a constant boolean side: false||x -> x, true||x
// -> true, and symmetrically for the right side.
func (n *Or) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	if b, ok := constantBool(n.left); ok {
		if b {
			return True
		}
		return n.right
	}
	if b, ok := constantBool(n.right); ok {
		if b {
			return True
		}
		return n.left
	}
	return foldConstant(n)
}

func (n *Or) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Or) String() string        { return diadicString(n) }

// constantBool extracts a boolean from a constant node when it has one.
func constantBool(n Node) (bool, bool) {
	c, ok := n.(*Constant)
	if !ok {
		return false, false
	}
	b, err := value.ToBoolean(c.Value)
	if err != nil {
		return false, false
	}
	return b, true
}
