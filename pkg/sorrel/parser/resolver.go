package parser

import (
	"github.com/sambeau/sorrel/pkg/sorrel/ast"
)

// Resolver maps a free identifier to the node that will stand for it in
// the tree. It is called once per identifier reference during parsing;
// returning ok=false makes the reference a parse error naming the
// identifier.
type Resolver interface {
	Resolve(name string) (ast.Node, bool)
}

// ExtendedResolver additionally resolves namespaces for qualified
// function calls of the form prefix:name(args). The prefix maps to a
// URI and the URI to the function set the call binds to. A parser whose
// resolver does not implement this interface never attempts qualified
// calls.
type ExtendedResolver interface {
	Resolver
	ResolvePrefix(prefix string) (uri string, ok bool)
	ResolveNamespace(uri string) (ast.FunctionSet, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (ast.Node, bool)

func (f ResolverFunc) Resolve(name string) (ast.Node, bool) { return f(name) }
