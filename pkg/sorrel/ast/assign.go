package ast

import (
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// VariableStore is the storage a Variable reads from and writes to. The
// scope package provides the map-backed implementation; embedders can
// supply their own.
type VariableStore interface {
	Get(name string) (value.Value, error)
	Set(name string, v value.Value) error
}

// Variable is a named node bound by a resolver.
type Variable struct {
	Name  string
	Store VariableStore
}

func NewVariable(name string, store VariableStore) *Variable {
	return &Variable{Name: name, Store: store}
}

func (n *Variable) Evaluate() (value.Value, error) {
	return n.Store.Get(n.Name)
}

// Assign writes through to the variable's store.
func (n *Variable) Assign(v value.Value) error {
	return n.Store.Set(n.Name, v)
}

func (n *Variable) Optimize() Node         { return n }
func (n *Variable) IsConstant() bool       { return false }
func (n *Variable) ResultType() value.Type { return value.AnyType }

func (n *Variable) Equal(other Node) bool {
	o, ok := other.(*Variable)
	return ok && o.Name == n.Name
}

func (n *Variable) String() string { return n.Name }

// Assign implements the assignment operator. The right operand is
// evaluated first, then assigned; the expression's value is the
// assigned value. Assignment is right-associative and never constant.
type Assign struct {
	diadic
	rightAssociative
	nonCommutative
}

func NewAssign(left, right Node) *Assign {
	n := &Assign{}
	n.left, n.right = left, right
	return n
}

func (n *Assign) Name() string     { return "=" }
func (n *Assign) Priority() int    { return PriorityAssign }
func (n *Assign) IsConstant() bool { return false }

func (n *Assign) ResultType() value.Type { return n.right.ResultType() }

func (n *Assign) Evaluate() (value.Value, error) {
	v, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	target, ok := n.left.(Assignable)
	if !ok {
		return nil, serrors.Evalf(serrors.CodeNotAssignable, "cannot assign to %s", n.left.String())
	}
	if err := target.Assign(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Optimize never folds the assignment itself: only the right operand,
// and the operands of an indexed target, participate.
func (n *Assign) Optimize() Node {
	n.right = n.right.Optimize()
	if idx, ok := n.left.(*Index); ok {
		idx.optimizeOperands()
	}
	return n
}

func (n *Assign) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Assign) String() string        { return diadicString(n) }
