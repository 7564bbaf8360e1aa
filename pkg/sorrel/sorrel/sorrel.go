// Package sorrel provides a public API for embedding the sorrel
// expression engine: an environment bundling variables and function
// namespaces, plus one-call parse, evaluate, and template helpers.
package sorrel

import (
	"github.com/sambeau/sorrel/pkg/sorrel/ast"
	"github.com/sambeau/sorrel/pkg/sorrel/functions"
	"github.com/sambeau/sorrel/pkg/sorrel/parser"
	"github.com/sambeau/sorrel/pkg/sorrel/scope"
	"github.com/sambeau/sorrel/pkg/sorrel/template"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Env is an evaluation environment: an open variable scope plus the
// function namespaces qualified calls resolve against. It implements
// the parser's ExtendedResolver contract.
type Env struct {
	Vars      *scope.Scope
	Functions *functions.Registry
}

// NewEnv creates an environment with an empty open scope and the
// shipped function namespaces.
func NewEnv() *Env {
	return &Env{
		Vars:      scope.New(),
		Functions: functions.Default(),
	}
}

// Resolve implements parser.Resolver via the variable scope.
func (e *Env) Resolve(name string) (ast.Node, bool) {
	return e.Vars.Resolve(name)
}

// ResolvePrefix implements parser.ExtendedResolver.
func (e *Env) ResolvePrefix(prefix string) (string, bool) {
	return e.Functions.ResolvePrefix(prefix)
}

// ResolveNamespace implements parser.ExtendedResolver.
func (e *Env) ResolveNamespace(uri string) (ast.FunctionSet, bool) {
	return e.Functions.ResolveNamespace(uri)
}

// Set writes a variable into the environment.
func (e *Env) Set(name string, v value.Value) {
	e.Vars.Declare(name, v)
}

// Get reads a variable from the environment.
func (e *Env) Get(name string) value.Value {
	v, err := e.Vars.Get(name)
	if err != nil {
		return value.NULL
	}
	return v
}

// Parse parses input as a single expression against env with every
// language extension enabled. The returned tree is optimized.
func Parse(input string, env *Env) (ast.Node, error) {
	node, err := parser.NewExtended(env).Parse(input)
	if err != nil {
		return nil, err
	}
	return node.Optimize(), nil
}

// Eval parses and evaluates input as a single expression.
func Eval(input string, env *Env) (value.Value, error) {
	node, err := Parse(input, env)
	if err != nil {
		return nil, err
	}
	return node.Evaluate()
}

// EvalString evaluates input and returns the result's text form.
func EvalString(input string, env *Env) (string, error) {
	v, err := Eval(input, env)
	if err != nil {
		return "", err
	}
	return value.ToText(v), nil
}

// Substitute evaluates every ${...} placeholder in input against env
// and returns the substituted text.
func Substitute(input string, env *Env) (string, error) {
	return template.Substitute(input, parser.NewExtended(env))
}

// SubstituteLazy compiles input into a reusable tree; evaluating it
// performs the substitution with the environment's current state.
func SubstituteLazy(input string, env *Env) (ast.Node, error) {
	return template.Parse(input, parser.NewExtended(env))
}
