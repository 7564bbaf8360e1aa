package ast

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Negate implements unary minus.
type Negate struct {
	monadic
}

func NewNegate(operand Node) *Negate {
	n := &Negate{}
	n.operand = operand
	return n
}

func (n *Negate) Name() string           { return "-" }
func (n *Negate) ResultType() value.Type { return value.AnyType }

func (n *Negate) Evaluate() (value.Value, error) {
	v, err := n.operand.Evaluate()
	if err != nil {
		return nil, err
	}
	if value.IsNull(v) {
		return &value.Integer{}, nil
	}
	if value.IsFloating(v) {
		f, err := value.ToFloat(v)
		if err != nil {
			return nil, operandError(n.Name(), err)
		}
		return &value.Float{Value: -f}, nil
	}
	i, err := value.ToInt(v)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	return &value.Integer{Value: -i}, nil
}

func (n *Negate) Optimize() Node {
	n.operand = n.operand.Optimize()
	return foldConstant(n)
}

func (n *Negate) Equal(other Node) bool { return monadicEqual(n, other) }
func (n *Negate) String() string        { return "(-" + n.operand.String() + ")" }

// Not implements logical negation (! or not).
type Not struct {
	monadic
}

func NewNot(operand Node) *Not {
	n := &Not{}
	n.operand = operand
	return n
}

func (n *Not) Name() string           { return "!" }
func (n *Not) ResultType() value.Type { return value.BooleanType }

func (n *Not) Evaluate() (value.Value, error) {
	v, err := n.operand.Evaluate()
	if err != nil {
		return nil, err
	}
	b, err := value.ToBoolean(v)
	if err != nil {
		return nil, operandError(n.Name(), err)
	}
	return value.FromBool(!b), nil
}

// Optimize rewrites !(a<b) into its inverted comparison when the
// operand can produce its logical complement.
func (n *Not) Optimize() Node {
	n.operand = n.operand.Optimize()
	if inv, ok := n.operand.(Invertible); ok {
		return foldConstant(inv.Invert())
	}
	return foldConstant(n)
}

func (n *Not) Equal(other Node) bool { return monadicEqual(n, other) }
func (n *Not) String() string        { return "(!" + n.operand.String() + ")" }

// EmptyTest implements the empty prefix operator: true for null, a
// zero-length string, a zero-length array, or an empty dict.
type EmptyTest struct {
	monadic
}

func NewEmptyTest(operand Node) *EmptyTest {
	n := &EmptyTest{}
	n.operand = operand
	return n
}

func (n *EmptyTest) Name() string           { return "empty" }
func (n *EmptyTest) ResultType() value.Type { return value.BooleanType }

func (n *EmptyTest) Evaluate() (value.Value, error) {
	v, err := n.operand.Evaluate()
	if err != nil {
		return nil, err
	}
	return value.FromBool(value.IsEmpty(v)), nil
}

func (n *EmptyTest) Optimize() Node {
	n.operand = n.operand.Optimize()
	return foldConstant(n)
}

func (n *EmptyTest) Equal(other Node) bool { return monadicEqual(n, other) }
func (n *EmptyTest) String() string        { return "(empty " + n.operand.String() + ")" }

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// CaseConvert implements the toupper and tolower prefix operators. The
// operand is coerced to text first, so null converts to the empty
// string.
type CaseConvert struct {
	monadic
	Upper bool
}

func NewCaseConvert(operand Node, upper bool) *CaseConvert {
	n := &CaseConvert{Upper: upper}
	n.operand = operand
	return n
}

func (n *CaseConvert) Name() string {
	if n.Upper {
		return "toupper"
	}
	return "tolower"
}

func (n *CaseConvert) ResultType() value.Type { return value.StringType }

func (n *CaseConvert) Evaluate() (value.Value, error) {
	v, err := n.operand.Evaluate()
	if err != nil {
		return nil, err
	}
	text := value.ToText(v)
	if n.Upper {
		text = upperCaser.String(text)
	} else {
		text = lowerCaser.String(text)
	}
	return &value.String{Value: text}, nil
}

func (n *CaseConvert) Optimize() Node {
	n.operand = n.operand.Optimize()
	return foldConstant(n)
}

func (n *CaseConvert) Equal(other Node) bool {
	o, ok := other.(*CaseConvert)
	return ok && o.Upper == n.Upper && nodesEqual(n.operand, o.operand)
}

func (n *CaseConvert) String() string { return "(" + n.Name() + " " + n.operand.String() + ")" }

// Length implements the length prefix operator for arrays and dicts.
// Any other operand kind is a length error.
type Length struct {
	monadic
}

func NewLength(operand Node) *Length {
	n := &Length{}
	n.operand = operand
	return n
}

func (n *Length) Name() string           { return "length" }
func (n *Length) ResultType() value.Type { return value.IntegerType }

func (n *Length) Evaluate() (value.Value, error) {
	v, err := n.operand.Evaluate()
	if err != nil {
		return nil, err
	}
	switch tv := v.(type) {
	case *value.Array:
		return &value.Integer{Value: int64(len(tv.Elements))}, nil
	case *value.Dict:
		return &value.Integer{Value: int64(len(tv.Pairs))}, nil
	}
	return nil, serrors.Evalf(serrors.CodeLength, "cannot take length of %s", v.Type())
}

func (n *Length) Optimize() Node {
	n.operand = n.operand.Optimize()
	return foldConstant(n)
}

func (n *Length) Equal(other Node) bool { return monadicEqual(n, other) }
func (n *Length) String() string        { return "(length " + n.operand.String() + ")" }

// Sum implements the sum prefix operator over arrays, with the usual
// numeric promotion: any floating element makes the result floating.
type Sum struct {
	monadic
}

func NewSum(operand Node) *Sum {
	n := &Sum{}
	n.operand = operand
	return n
}

func (n *Sum) Name() string           { return "sum" }
func (n *Sum) ResultType() value.Type { return value.AnyType }

func (n *Sum) Evaluate() (value.Value, error) {
	v, err := n.operand.Evaluate()
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*value.Array)
	if !ok {
		return nil, serrors.Evalf(serrors.CodeOperand, "cannot sum %s", v.Type())
	}
	floating := false
	for _, el := range arr.Elements {
		if value.IsFloating(el) {
			floating = true
			break
		}
	}
	if floating {
		var total float64
		for _, el := range arr.Elements {
			f, err := value.ToFloat(el)
			if err != nil {
				return nil, operandError(n.Name(), err)
			}
			total += f
		}
		return &value.Float{Value: total}, nil
	}
	var total int64
	for _, el := range arr.Elements {
		i, err := value.ToInt(el)
		if err != nil {
			return nil, operandError(n.Name(), err)
		}
		total += i
	}
	return &value.Integer{Value: total}, nil
}

func (n *Sum) Optimize() Node {
	n.operand = n.operand.Optimize()
	return foldConstant(n)
}

func (n *Sum) Equal(other Node) bool { return monadicEqual(n, other) }
func (n *Sum) String() string        { return "(sum " + n.operand.String() + ")" }

// Parentheses is the grouping marker the parser wraps sub-expressions in
// so the precedence walk cannot re-enter them. It always reduces to its
// operand under optimization and never survives an optimized tree.
type Parentheses struct {
	monadic
}

func NewParentheses(operand Node) *Parentheses {
	n := &Parentheses{}
	n.operand = operand
	return n
}

func (n *Parentheses) Name() string { return "()" }

func (n *Parentheses) ResultType() value.Type {
	if n.operand == nil {
		return value.AnyType
	}
	return n.operand.ResultType()
}

func (n *Parentheses) Evaluate() (value.Value, error) {
	if n.operand == nil {
		return value.NULL, nil
	}
	return n.operand.Evaluate()
}

func (n *Parentheses) Optimize() Node {
	if n.operand == nil {
		return n
	}
	return n.operand.Optimize()
}

func (n *Parentheses) Equal(other Node) bool { return monadicEqual(n, other) }

func (n *Parentheses) String() string {
	if n.operand == nil {
		return "()"
	}
	return "(" + n.operand.String() + ")"
}
