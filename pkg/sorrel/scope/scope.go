// Package scope provides the basic mutable-variable resolver used for
// embedding and tests: a map-backed store with optional outer chaining,
// handing out assignable Variable nodes at parse time.
package scope

import (
	"github.com/sambeau/sorrel/pkg/sorrel/ast"
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Scope stores variables by name. An open scope resolves any
// identifier, auto-declaring on first write and reading null before
// then; a closed scope resolves only declared names, so unknown
// identifiers fail at parse time.
type Scope struct {
	outer *Scope
	open  bool
	vars  map[string]value.Value
}

// New creates an open scope.
func New() *Scope {
	return &Scope{open: true, vars: make(map[string]value.Value)}
}

// NewClosed creates a scope that resolves only declared names.
func NewClosed() *Scope {
	return &Scope{vars: make(map[string]value.Value)}
}

// NewEnclosed creates a scope chained to an outer one. Reads fall
// through to the outer scope; writes stay local once declared locally.
func NewEnclosed(outer *Scope) *Scope {
	return &Scope{outer: outer, open: outer.open, vars: make(map[string]value.Value)}
}

// Declare binds name in this scope, shadowing any outer binding.
func (s *Scope) Declare(name string, v value.Value) {
	if v == nil {
		v = value.NULL
	}
	s.vars[name] = v
}

// Get reads a variable, falling through to outer scopes. An open scope
// reads null for names never written.
func (s *Scope) Get(name string) (value.Value, error) {
	for sc := s; sc != nil; sc = sc.outer {
		if v, ok := sc.vars[name]; ok {
			return v, nil
		}
	}
	if s.open {
		return value.NULL, nil
	}
	return nil, serrors.Evalf(serrors.CodeOperand, "variable %q is not declared", name)
}

// Set writes a variable: the innermost scope that declares the name, or
// this scope when no scope does.
func (s *Scope) Set(name string, v value.Value) error {
	if v == nil {
		v = value.NULL
	}
	for sc := s; sc != nil; sc = sc.outer {
		if _, ok := sc.vars[name]; ok {
			sc.vars[name] = v
			return nil
		}
	}
	if !s.open {
		return serrors.Evalf(serrors.CodeNotAssignable, "variable %q is not declared", name)
	}
	s.vars[name] = v
	return nil
}

// Snapshot returns every visible binding, innermost shadowing outer.
func (s *Scope) Snapshot() map[string]value.Value {
	out := make(map[string]value.Value)
	for sc := s; sc != nil; sc = sc.outer {
		for name, v := range sc.vars {
			if _, shadowed := out[name]; !shadowed {
				out[name] = v
			}
		}
	}
	return out
}

// Clear drops every binding in this scope, leaving outer scopes alone.
func (s *Scope) Clear() {
	s.vars = make(map[string]value.Value)
}

// Resolve implements the parser's Resolver contract, handing out an
// assignable Variable bound to this scope.
func (s *Scope) Resolve(name string) (ast.Node, bool) {
	if s.open {
		return ast.NewVariable(name, s), true
	}
	for sc := s; sc != nil; sc = sc.outer {
		if _, ok := sc.vars[name]; ok {
			return ast.NewVariable(name, s), true
		}
	}
	return nil, false
}
