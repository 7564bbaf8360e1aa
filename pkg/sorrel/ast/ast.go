// Package ast defines the sorrel expression tree: the node contract, the
// operator catalog, and the constant-folding optimizer embedded in each
// node's Optimize method.
package ast

import (
	"fmt"

	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Node represents any node in the expression tree
type Node interface {
	// Evaluate computes the node's value. It may fail with an eval error.
	Evaluate() (value.Value, error)
	// Optimize returns the node itself or a simplified replacement. It
	// never fails: an evaluation error met while folding constants is
	// swallowed and the unfolded node kept, so the error surfaces at
	// real evaluation time instead.
	Optimize() Node
	// IsConstant reports whether evaluation can only ever depend on the
	// tree itself.
	IsConstant() bool
	// ResultType hints at the type evaluation will produce. It is not
	// enforced; value.AnyType means unknown.
	ResultType() value.Type
	// Equal is structural, value-based equality, not identity. Two
	// independently built trees over equal operands compare equal, and
	// so do logically equivalent relational pairs such as a<=b and b>=a.
	Equal(other Node) bool
	String() string
}

// Assignable marks nodes that can be the target of the assignment
// operator or of indexed assignment.
type Assignable interface {
	Node
	Assign(v value.Value) error
}

// Invertible is implemented by nodes that can produce their logical
// complement without reparsing, so !(a<b) optimizes to a>=b.
type Invertible interface {
	Invert() Node
}

// OperandHolder is any node the parser can hang a pending operand on:
// the synthetic head, a prefix operator, or a diadic operator awaiting
// its right side.
type OperandHolder interface {
	Node
	Right() Node
	SetRight(Node)
}

// MonadicNode is a single-operand operator.
type MonadicNode interface {
	Node
	Name() string
	Right() Node
	SetRight(Node)
}

// DiadicNode is a two-operand operator. Priority is binding tightness:
// a numerically higher priority binds tighter. The parser's splice walk
// reads Priority and IsLeftAssociative; IsCommutative feeds structural
// equality.
type DiadicNode interface {
	Node
	Name() string
	Priority() int
	IsLeftAssociative() bool
	IsCommutative() bool
	Left() Node
	Right() Node
	SetLeft(Node)
	SetRight(Node)
}

// Operator priorities, higher binds tighter. Conditional and else share
// a level and are right-associative, which nests a?b:c?d:e to the right.
const (
	PriorityAssign         = 1
	PriorityConditional    = 2
	PriorityOr             = 3
	PriorityAnd            = 4
	PriorityEquality       = 5
	PriorityRelational     = 6
	PriorityAdditive       = 7
	PriorityMultiplicative = 8
	PriorityIndex          = 9
)

// monadic is the shared shape of single-operand operators
type monadic struct {
	operand Node
}

func (m *monadic) Right() Node     { return m.operand }
func (m *monadic) SetRight(n Node) { m.operand = n }
func (m *monadic) IsConstant() bool {
	return isConst(m.operand)
}

// diadic is the shared shape of two-operand operators
type diadic struct {
	left, right Node
}

func (d *diadic) Left() Node      { return d.left }
func (d *diadic) Right() Node     { return d.right }
func (d *diadic) SetLeft(n Node)  { d.left = n }
func (d *diadic) SetRight(n Node) { d.right = n }
func (d *diadic) IsConstant() bool {
	return isConst(d.left) && isConst(d.right)
}

// Associativity and commutativity mixins
type leftAssociative struct{}

func (leftAssociative) IsLeftAssociative() bool { return true }

type rightAssociative struct{}

func (rightAssociative) IsLeftAssociative() bool { return false }

type commutative struct{}

func (commutative) IsCommutative() bool { return true }

type nonCommutative struct{}

func (nonCommutative) IsCommutative() bool { return false }

func isConst(n Node) bool {
	return n != nil && n.IsConstant()
}

func nodesEqual(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// foldConstant eagerly evaluates n when all its operands are constant,
// replacing it with a Constant. When evaluation fails the node is kept
// unchanged so the error reproduces at genuine evaluation time.
func foldConstant(n Node) Node {
	if !n.IsConstant() {
		return n
	}
	v, err := n.Evaluate()
	if err != nil {
		return n
	}
	return NewConstant(v)
}

// diadicEqual implements the default structural equality for diadic
// operators: same kind, equal operands, allowing the swap when the
// operator is commutative.
func diadicEqual(a DiadicNode, other Node) bool {
	b, ok := other.(DiadicNode)
	if !ok || a.Name() != b.Name() {
		return false
	}
	if nodesEqual(a.Left(), b.Left()) && nodesEqual(a.Right(), b.Right()) {
		return true
	}
	if a.IsCommutative() && nodesEqual(a.Left(), b.Right()) && nodesEqual(a.Right(), b.Left()) {
		return true
	}
	return false
}

func monadicEqual(a MonadicNode, other Node) bool {
	b, ok := other.(MonadicNode)
	if !ok || a.Name() != b.Name() {
		return false
	}
	return nodesEqual(a.Right(), b.Right())
}

func diadicString(d DiadicNode) string {
	left, right := "?", "?"
	if d.Left() != nil {
		left = d.Left().String()
	}
	if d.Right() != nil {
		right = d.Right().String()
	}
	return fmt.Sprintf("(%s %s %s)", left, d.Name(), right)
}

func operandError(op string, err error) error {
	if serrors.IsEval(err) {
		return err
	}
	return serrors.Evalf(serrors.CodeOperand, "operator %q: %v", op, err)
}

// Children returns the direct sub-nodes of n, used by structural walks.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *ArrayLiteral:
		return t.Elements
	case *ObjectLiteral:
		return t.Values
	case *FunctionCall:
		return t.Args
	case *Concat:
		return t.Parts
	case DiadicNode:
		return []Node{t.Left(), t.Right()}
	case MonadicNode:
		return []Node{t.Right()}
	}
	return nil
}
