package ast

import (
	"math"

	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// evalArithmetic applies the shared numeric-promotion rule: 64-bit
// integer arithmetic unless either operand is floating, and both-null
// operands short-circuit to integer zero.
func evalArithmetic(name string, left, right Node,
	intFn func(a, b int64) (int64, error),
	floatFn func(a, b float64) (float64, error),
) (value.Value, error) {
	l, err := left.Evaluate()
	if err != nil {
		return nil, err
	}
	r, err := right.Evaluate()
	if err != nil {
		return nil, err
	}
	if value.IsNull(l) && value.IsNull(r) {
		return &value.Integer{}, nil
	}
	if value.IsFloating(l) || value.IsFloating(r) {
		lf, err := value.ToFloat(l)
		if err != nil {
			return nil, operandError(name, err)
		}
		rf, err := value.ToFloat(r)
		if err != nil {
			return nil, operandError(name, err)
		}
		res, err := floatFn(lf, rf)
		if err != nil {
			return nil, err
		}
		return &value.Float{Value: res}, nil
	}
	li, err := value.ToInt(l)
	if err != nil {
		return nil, operandError(name, err)
	}
	ri, err := value.ToInt(r)
	if err != nil {
		return nil, operandError(name, err)
	}
	res, err := intFn(li, ri)
	if err != nil {
		return nil, err
	}
	return &value.Integer{Value: res}, nil
}

// Add implements numeric addition.
type Add struct {
	diadic
	leftAssociative
	commutative
}

func NewAdd(left, right Node) *Add {
	n := &Add{}
	n.left, n.right = left, right
	return n
}

func (n *Add) Name() string           { return "+" }
func (n *Add) Priority() int          { return PriorityAdditive }
func (n *Add) ResultType() value.Type { return value.AnyType }

func (n *Add) Evaluate() (value.Value, error) {
	return evalArithmetic(n.Name(), n.left, n.right,
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) (float64, error) { return a + b, nil })
}

func (n *Add) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	return foldConstant(n)
}

func (n *Add) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Add) String() string        { return diadicString(n) }

// Subtract implements numeric subtraction.
type Subtract struct {
	diadic
	leftAssociative
	nonCommutative
}

func NewSubtract(left, right Node) *Subtract {
	n := &Subtract{}
	n.left, n.right = left, right
	return n
}

func (n *Subtract) Name() string           { return "-" }
func (n *Subtract) Priority() int          { return PriorityAdditive }
func (n *Subtract) ResultType() value.Type { return value.AnyType }

func (n *Subtract) Evaluate() (value.Value, error) {
	return evalArithmetic(n.Name(), n.left, n.right,
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) (float64, error) { return a - b, nil })
}

// Optimize folds constants and applies x-0 -> x and 0-x -> -x.
func (n *Subtract) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	if isZeroConstant(n.right) {
		return n.left
	}
	if isZeroConstant(n.left) {
		return foldConstant(NewNegate(n.right))
	}
	return foldConstant(n)
}

func (n *Subtract) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Subtract) String() string        { return diadicString(n) }

// Multiply implements numeric multiplication.
type Multiply struct {
	diadic
	leftAssociative
	commutative
}

func NewMultiply(left, right Node) *Multiply {
	n := &Multiply{}
	n.left, n.right = left, right
	return n
}

func (n *Multiply) Name() string           { return "*" }
func (n *Multiply) Priority() int          { return PriorityMultiplicative }
func (n *Multiply) ResultType() value.Type { return value.AnyType }

func (n *Multiply) Evaluate() (value.Value, error) {
	return evalArithmetic(n.Name(), n.left, n.right,
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) (float64, error) { return a * b, nil })
}

// Optimize folds constants and applies the x*1 identities.
func (n *Multiply) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	if isOneConstant(n.right) {
		return n.left
	}
	if isOneConstant(n.left) {
		return n.right
	}
	return foldConstant(n)
}

func (n *Multiply) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Multiply) String() string        { return diadicString(n) }

// Divide implements division. Division is always floating regardless of
// operand kinds; a zero divisor is an evaluation error, raised only when
// the node is genuinely evaluated, never at optimize time.
type Divide struct {
	diadic
	leftAssociative
	nonCommutative
}

func NewDivide(left, right Node) *Divide {
	n := &Divide{}
	n.left, n.right = left, right
	return n
}

func (n *Divide) Name() string           { return "/" }
func (n *Divide) Priority() int          { return PriorityMultiplicative }
func (n *Divide) ResultType() value.Type { return value.FloatType }

func (n *Divide) Evaluate() (value.Value, error) {
	l, err := n.left.Evaluate()
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate()
	if err != nil {
		return nil, err
	}
	if value.IsNull(l) && value.IsNull(r) {
		return &value.Float{}, nil
	}
	lf, err := value.ToFloat(l)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	rf, err := value.ToFloat(r)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	if rf == 0 {
		return nil, serrors.Evalf(serrors.CodeOperand, "division by zero")
	}
	return &value.Float{Value: lf / rf}, nil
}

// Optimize folds constants and applies x/1 -> x.
func (n *Divide) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	if isOneConstant(n.right) {
		return n.left
	}
	return foldConstant(n)
}

func (n *Divide) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Divide) String() string        { return diadicString(n) }

// Modulo implements the remainder operation.
type Modulo struct {
	diadic
	leftAssociative
	nonCommutative
}

func NewModulo(left, right Node) *Modulo {
	n := &Modulo{}
	n.left, n.right = left, right
	return n
}

func (n *Modulo) Name() string           { return "%" }
func (n *Modulo) Priority() int          { return PriorityMultiplicative }
func (n *Modulo) ResultType() value.Type { return value.AnyType }

func (n *Modulo) Evaluate() (value.Value, error) {
	return evalArithmetic(n.Name(), n.left, n.right,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, serrors.Evalf(serrors.CodeOperand, "modulo by zero")
			}
			return a % b, nil
		},
		func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, serrors.Evalf(serrors.CodeOperand, "modulo by zero")
			}
			return math.Mod(a, b), nil
		})
}

func (n *Modulo) Optimize() Node {
	n.left, n.right = n.left.Optimize(), n.right.Optimize()
	return foldConstant(n)
}

func (n *Modulo) Equal(other Node) bool { return diadicEqual(n, other) }
func (n *Modulo) String() string        { return diadicString(n) }
