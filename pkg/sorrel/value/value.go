// Package value defines the dynamic values the sorrel engine computes
// with, plus the coercion rules every operator applies at its boundaries.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type identifies the kind of a value. Result-type hints on AST nodes use
// the same constants; AnyType marks a hint that cannot be narrowed.
type Type string

const (
	NullType    Type = "NULL"
	BooleanType Type = "BOOLEAN"
	IntegerType Type = "INTEGER"
	FloatType   Type = "FLOAT"
	StringType  Type = "STRING"
	ArrayType   Type = "ARRAY"
	DictType    Type = "DICT"
	AnyType     Type = "ANY"
)

// Value represents all values in the expression language
type Value interface {
	Type() Type
	Inspect() string
}

// Null represents the null value
type Null struct{}

func (n *Null) Type() Type      { return NullType }
func (n *Null) Inspect() string { return "null" }

// Boolean represents boolean values
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type      { return BooleanType }
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// Integer represents 64-bit whole numbers
type Integer struct {
	Value int64
}

func (i *Integer) Type() Type      { return IntegerType }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Float represents floating-point numbers
type Float struct {
	Value float64
}

func (f *Float) Type() Type      { return FloatType }
func (f *Float) Inspect() string { return formatFloat(f.Value) }

// String represents text values
type String struct {
	Value string
}

func (s *String) Type() Type      { return StringType }
func (s *String) Inspect() string { return s.Value }

// Array represents sequence values. Arrays are mutable: indexed
// assignment writes elements in place.
type Array struct {
	Elements []Value
}

func (a *Array) Type() Type { return ArrayType }
func (a *Array) Inspect() string {
	var out strings.Builder
	out.WriteString("[")
	for i, el := range a.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

// Dict represents associative-mapping values with string keys
type Dict struct {
	Pairs map[string]Value
}

func (d *Dict) Type() Type { return DictType }

// Inspect renders pairs in sorted key order so output is deterministic
func (d *Dict) Inspect() string {
	keys := make([]string, 0, len(d.Pairs))
	for k := range d.Pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	out.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(k)
		out.WriteString(": ")
		out.WriteString(d.Pairs[k].Inspect())
	}
	out.WriteString("}")
	return out.String()
}

// Shared instances so evaluation never reallocates the common results
var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// FromBool returns the shared Boolean for b
func FromBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// IsNull reports whether v is the null value
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(*Null)
	return ok
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// keep whole floats distinguishable from integers in output
	if !strings.ContainsAny(s, ".eE") && !strings.ContainsAny(s, "InN") {
		s += ".0"
	}
	return s
}

// Same reports strict structural equality: same type, same contents.
// This is the equality the AST uses for node comparison; the language's
// own ==, with its cross-type coercions, lives in Equal.
func Same(a, b Value) bool {
	switch av := a.(type) {
	case *Null:
		return IsNull(b)
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Integer:
		bv, ok := b.(*Integer)
		return ok && av.Value == bv.Value
	case *Float:
		bv, ok := b.(*Float)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Same(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv, ok := b.(*Dict)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for k, v := range av.Pairs {
			other, present := bv.Pairs[k]
			if !present || !Same(v, other) {
				return false
			}
		}
		return true
	}
	return false
}

// GoString helps test failure output
func GoString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", v.Type(), v.Inspect())
}
