package ast

import (
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Conditional implements c ? a : b. Its right operand must be an Else
// holding the two branches; Verify enforces that after parsing.
type Conditional struct {
	diadic
	rightAssociative
	nonCommutative
}

func NewConditional(left, right Node) *Conditional {
	n := &Conditional{}
	n.left, n.right = left, right
	return n
}

func (n *Conditional) Name() string  { return "?" }
func (n *Conditional) Priority() int { return PriorityConditional }

func (n *Conditional) ResultType() value.Type {
	if els, ok := n.right.(*Else); ok {
		lt := els.left.ResultType()
		if lt == els.right.ResultType() {
			return lt
		}
	}
	return value.AnyType
}

func (n *Conditional) Evaluate() (value.Value, error) {
	els, ok := n.right.(*Else)
	if !ok {
		return nil, serrors.Evalf(serrors.CodeOperand, "conditional without else branch")
	}
	c, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	b, err := value.ToBoolean(c)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	if b {
		return els.left.Evaluate()
	}
	return els.right.Evaluate()
}

// Optimize folds a constant condition directly to the chosen branch's
// optimized form; the other branch is discarded without being evaluated.
func (n *Conditional) Optimize() Node {
	n.left = n.left.Optimize()
	els, ok := n.right.(*Else)
	if !ok {
		return n
	}
	els.left, els.right = els.left.Optimize(), els.right.Optimize()
	if b, ok := constantBool(n.left); ok {
		if b {
			return els.left
		}
		return els.right
	}
	return n
}

func (n *Conditional) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Conditional) String() string {
	if els, ok := n.right.(*Else); ok {
		return "(" + n.left.String() + " ? " + els.left.String() + " : " + els.right.String() + ")"
	}
	return diadicString(n)
}

// Else pairs the two branches of a conditional. It never appears
// anywhere except as a Conditional's right operand, and never survives
// evaluation on its own.
type Else struct {
	diadic
	rightAssociative
	nonCommutative
}

func NewElse(left, right Node) *Else {
	n := &Else{}
	n.left, n.right = left, right
	return n
}

func (n *Else) Name() string           { return ":" }
func (n *Else) Priority() int          { return PriorityConditional }
func (n *Else) ResultType() value.Type { return value.AnyType }

func (n *Else) Evaluate() (value.Value, error) {
	return nil, serrors.Evalf(serrors.CodeOperand, "':' outside a conditional")
}

func (n *Else) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	return n
}

func (n *Else) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Else) String() string        { return diadicString(n) }

// Verify checks the conditional pairing invariant across the whole
// tree: every Conditional's right operand is an Else, and no Else
// appears anywhere else.
func Verify(root Node) error {
	return verify(root)
}

func verify(n Node) error {
	if n == nil {
		return nil
	}
	switch t := n.(type) {
	case *Conditional:
		els, ok := t.right.(*Else)
		if !ok {
			return serrors.NewParse(serrors.CodeConditional, "conditional '?' without matching ':'", -1)
		}
		if err := verify(t.left); err != nil {
			return err
		}
		if err := verify(els.left); err != nil {
			return err
		}
		return verify(els.right)
	case *Else:
		return serrors.NewParse(serrors.CodeConditional, "':' without matching conditional '?'", -1)
	}
	for _, c := range Children(n) {
		if err := verify(c); err != nil {
			return err
		}
	}
	return nil
}
