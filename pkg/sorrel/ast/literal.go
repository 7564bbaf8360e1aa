package ast

import (
	"strings"

	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// ArrayLiteral builds a fresh array value on every evaluation. The
// literal never reports itself constant and never folds, so evaluations
// cannot share (and mutate) one result; each item's sub-expression is
// still optimized independently.
type ArrayLiteral struct {
	Elements []Node
}

func NewArrayLiteral(elements []Node) *ArrayLiteral {
	return &ArrayLiteral{Elements: elements}
}

func (n *ArrayLiteral) Evaluate() (value.Value, error) {
	elements := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := el.Evaluate()
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return &value.Array{Elements: elements}, nil
}

func (n *ArrayLiteral) Optimize() Node {
	for i, el := range n.Elements {
		n.Elements[i] = el.Optimize()
	}
	return n
}

func (n *ArrayLiteral) IsConstant() bool       { return false }
func (n *ArrayLiteral) ResultType() value.Type { return value.ArrayType }

func (n *ArrayLiteral) Equal(other Node) bool {
	o, ok := other.(*ArrayLiteral)
	if !ok || len(o.Elements) != len(n.Elements) {
		return false
	}
	for i := range n.Elements {
		if !nodesEqual(n.Elements[i], o.Elements[i]) {
			return false
		}
	}
	return true
}

func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectLiteral builds a fresh dict value on every evaluation, with the
// same no-folding rule as ArrayLiteral. Keys keep declaration order for
// rendering; evaluation order is left to right.
type ObjectLiteral struct {
	Keys   []string
	Values []Node
}

func NewObjectLiteral(keys []string, values []Node) *ObjectLiteral {
	return &ObjectLiteral{Keys: keys, Values: values}
}

func (n *ObjectLiteral) Evaluate() (value.Value, error) {
	pairs := make(map[string]value.Value, len(n.Keys))
	for i, k := range n.Keys {
		v, err := n.Values[i].Evaluate()
		if err != nil {
			return nil, err
		}
		pairs[k] = v
	}
	return &value.Dict{Pairs: pairs}, nil
}

func (n *ObjectLiteral) Optimize() Node {
	for i, v := range n.Values {
		n.Values[i] = v.Optimize()
	}
	return n
}

func (n *ObjectLiteral) IsConstant() bool       { return false }
func (n *ObjectLiteral) ResultType() value.Type { return value.DictType }

func (n *ObjectLiteral) Equal(other Node) bool {
	o, ok := other.(*ObjectLiteral)
	if !ok || len(o.Keys) != len(n.Keys) {
		return false
	}
	for i := range n.Keys {
		if n.Keys[i] != o.Keys[i] || !nodesEqual(n.Values[i], o.Values[i]) {
			return false
		}
	}
	return true
}

func (n *ObjectLiteral) String() string {
	parts := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		parts[i] = k + ": " + n.Values[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
