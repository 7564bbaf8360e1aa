package ast

import (
	"strconv"

	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Constant holds an immutable value.
type Constant struct {
	Value value.Value
}

// Shared constants, so optimization and parsing never reallocate the
// common cases.
var (
	True      = &Constant{Value: value.TRUE}
	False     = &Constant{Value: value.FALSE}
	EmptyText = &Constant{Value: &value.String{}}
	Null      = &Constant{Value: value.NULL}
)

// NewConstant wraps v, reusing the shared instances for true, false,
// null, and the empty string.
func NewConstant(v value.Value) *Constant {
	switch tv := v.(type) {
	case *value.Boolean:
		if tv.Value {
			return True
		}
		return False
	case *value.String:
		if tv.Value == "" {
			return EmptyText
		}
	case *value.Null, nil:
		return Null
	}
	return &Constant{Value: v}
}

// NewInt returns a constant integer node.
func NewInt(n int64) *Constant {
	return &Constant{Value: &value.Integer{Value: n}}
}

// NewFloat returns a constant float node.
func NewFloat(f float64) *Constant {
	return &Constant{Value: &value.Float{Value: f}}
}

// NewText returns a constant text node.
func NewText(s string) *Constant {
	return NewConstant(&value.String{Value: s})
}

func (c *Constant) Evaluate() (value.Value, error) { return c.Value, nil }
func (c *Constant) Optimize() Node                 { return c }
func (c *Constant) IsConstant() bool               { return true }
func (c *Constant) ResultType() value.Type         { return c.Value.Type() }

func (c *Constant) Equal(other Node) bool {
	o, ok := other.(*Constant)
	return ok && value.Same(c.Value, o.Value)
}

func (c *Constant) String() string {
	if s, ok := c.Value.(*value.String); ok {
		return strconv.Quote(s.Value)
	}
	return c.Value.Inspect()
}

// isEmptyConstant reports whether n is a constant null or empty string,
// the cases a join operand collapses over.
func isEmptyConstant(n Node) bool {
	c, ok := n.(*Constant)
	if !ok {
		return false
	}
	if value.IsNull(c.Value) {
		return true
	}
	s, ok := c.Value.(*value.String)
	return ok && s.Value == ""
}

// isZeroConstant reports whether n is a constant numeric zero.
func isZeroConstant(n Node) bool {
	c, ok := n.(*Constant)
	if !ok {
		return false
	}
	switch v := c.Value.(type) {
	case *value.Integer:
		return v.Value == 0
	case *value.Float:
		return v.Value == 0
	}
	return false
}

// isOneConstant reports whether n is a constant numeric one.
func isOneConstant(n Node) bool {
	c, ok := n.(*Constant)
	if !ok {
		return false
	}
	switch v := c.Value.(type) {
	case *value.Integer:
		return v.Value == 1
	case *value.Float:
		return v.Value == 1
	}
	return false
}
