package ast

import (
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Index implements property access (.name) and general indexing
// ([expr]). Dot access is sugar for indexing by a string-literal key.
// Evaluating with a null left operand yields null; assigning through a
// null left operand is an error.
type Index struct {
	diadic
	leftAssociative
	nonCommutative
	Dot bool
}

func NewIndex(left, key Node) *Index {
	n := &Index{}
	n.left, n.right = left, key
	return n
}

func NewDotIndex(left Node, name string) *Index {
	n := &Index{Dot: true}
	n.left, n.right = left, NewText(name)
	return n
}

func (n *Index) Name() string           { return "[]" }
func (n *Index) Priority() int          { return PriorityIndex }
func (n *Index) ResultType() value.Type { return value.AnyType }

func (n *Index) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	if value.IsNull(l) {
		return value.NULL, nil
	}
	k, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	switch target := l.(type) {
	case *value.Array:
		i, err := value.ToInt(k)
		if err != nil {
			return nil, operandError(n.Name(), err)
		}
		if i < 0 || i >= int64(len(target.Elements)) {
			return value.NULL, nil
		}
		return target.Elements[i], nil
	case *value.Dict:
		v, ok := target.Pairs[value.ToText(k)]
		if !ok {
			return value.NULL, nil
		}
		return v, nil
	}
	return nil, serrors.Evalf(serrors.CodeOperand, "cannot index %s", l.Type())
}

// Assign writes through the indexed target.
func (n *Index) Assign(v value.Value) error {
	l, err := n.left.Evaluate()
	if err != nil {
		return err
	}
	if value.IsNull(l) {
		return serrors.Evalf(serrors.CodeNotAssignable, "cannot assign through null")
	}
	k, err := n.right.Evaluate()
	if err != nil {
		return err
	}
	switch target := l.(type) {
	case *value.Array:
		i, err := value.ToInt(k)
		if err != nil {
			return operandError(n.Name(), err)
		}
		if i < 0 || i >= int64(len(target.Elements)) {
			return serrors.Evalf(serrors.CodeNotAssignable, "index %d out of range", i)
		}
		target.Elements[i] = v
		return nil
	case *value.Dict:
		if target.Pairs == nil {
			target.Pairs = make(map[string]value.Value)
		}
		target.Pairs[value.ToText(k)] = v
		return nil
	}
	return serrors.Evalf(serrors.CodeNotAssignable, "cannot assign into %s", l.Type())
}

func (n *Index) optimizeOperands() {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
}

func (n *Index) Optimize() Node {
	n.optimizeOperands()
	return foldConstant(n)
}

func (n *Index) Equal(other Node) bool {
	o, ok := other.(*Index)
	return ok && nodesEqual(n.left, o.left) && nodesEqual(n.right, o.right)
}

func (n *Index) String() string {
	if n.Dot {
		if c, ok := n.right.(*Constant); ok {
			if s, ok := c.Value.(*value.String); ok {
				return n.left.String() + "." + s.Value
			}
		}
	}
	return n.left.String() + "[" + n.right.String() + "]"
}
