package ast

import (
	"strings"

	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Function is a callable registered in a function table.
type Function func(args []value.Value) (value.Value, error)

// FunctionSet resolves a function by name and argument count at call
// time. The first arity match wins; there is no overload resolution by
// argument type.
type FunctionSet interface {
	Lookup(name string, arity int) (Function, bool)
}

// FunctionCall invokes a named function from a namespace bound at parse
// time through the extended resolver.
type FunctionCall struct {
	Set      FunctionSet
	Prefix   string // as written, kept for rendering
	FuncName string
	Args     []Node
}

func NewFunctionCall(set FunctionSet, prefix, name string, args []Node) *FunctionCall {
	return &FunctionCall{Set: set, Prefix: prefix, FuncName: name, Args: args}
}

func (n *FunctionCall) Evaluate() (value.Value, error) {
	fn, ok := n.Set.Lookup(n.FuncName, len(n.Args))
	if !ok {
		return nil, serrors.Evalf(serrors.CodeNoFunction,
			"no function %q taking %d arguments", n.FuncName, len(n.Args))
	}
	args := make([]value.Value, len(n.Args))
	for i, arg := range n.Args {
		v, err := arg.Evaluate()
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn(args)
}

// Optimize touches only the arguments; the call itself never folds,
// since a registered function need not be pure.
func (n *FunctionCall) Optimize() Node {
	for i, arg := range n.Args {
		n.Args[i] = arg.Optimize()
	}
	return n
}

func (n *FunctionCall) IsConstant() bool       { return false }
func (n *FunctionCall) ResultType() value.Type { return value.AnyType }

func (n *FunctionCall) Equal(other Node) bool {
	o, ok := other.(*FunctionCall)
	if !ok || o.FuncName != n.FuncName || o.Prefix != n.Prefix || len(o.Args) != len(n.Args) {
		return false
	}
	for i := range n.Args {
		if !nodesEqual(n.Args[i], o.Args[i]) {
			return false
		}
	}
	return true
}

func (n *FunctionCall) String() string {
	parts := make([]string, len(n.Args))
	for i, arg := range n.Args {
		parts[i] = arg.String()
	}
	name := n.FuncName
	if n.Prefix != "" {
		name = n.Prefix + ":" + name
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
