// Package functions provides the named function library reachable
// through qualified calls (prefix:name(args)), built on registered
// function tables rather than reflection: each table maps a name to an
// ordered list of fixed-arity entries, and the first arity match wins.
package functions

import (
	"github.com/sambeau/sorrel/pkg/sorrel/ast"
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
)

// entry is one registered function under a name.
type entry struct {
	arity int
	fn    ast.Function
}

// Table is a set of named functions implementing ast.FunctionSet.
type Table struct {
	entries map[string][]entry // registration order is dispatch order
}

// NewTable creates an empty function table.
func NewTable() *Table {
	return &Table{entries: make(map[string][]entry)}
}

// Register adds a function under name with a declared argument count.
// Registering the same name with several arities is allowed; lookups
// take the first entry whose arity matches.
func (t *Table) Register(name string, arity int, fn ast.Function) {
	t.entries[name] = append(t.entries[name], entry{arity: arity, fn: fn})
}

// Lookup implements ast.FunctionSet.
func (t *Table) Lookup(name string, arity int) (ast.Function, bool) {
	for _, e := range t.entries[name] {
		if e.arity == arity {
			return e.fn, true
		}
	}
	return nil, false
}

// Registry binds namespace prefixes to URIs and URIs to tables. It
// implements the namespace half of the parser's ExtendedResolver
// contract; embedders pair it with a variable resolver.
type Registry struct {
	prefixes   map[string]string
	namespaces map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		prefixes:   make(map[string]string),
		namespaces: make(map[string]*Table),
	}
}

// Bind registers a table under a URI and gives it a default prefix.
func (r *Registry) Bind(prefix, uri string, t *Table) {
	r.prefixes[prefix] = uri
	r.namespaces[uri] = t
}

// ResolvePrefix maps a namespace prefix to its URI.
func (r *Registry) ResolvePrefix(prefix string) (string, bool) {
	uri, ok := r.prefixes[prefix]
	return uri, ok
}

// ResolveNamespace maps a URI to its function table.
func (r *Registry) ResolveNamespace(uri string) (ast.FunctionSet, bool) {
	t, ok := r.namespaces[uri]
	return t, ok
}

// Canonical namespace URIs for the shipped tables.
const (
	StringsURI     = "sorrel:functions:strings"
	CollectionsURI = "sorrel:functions:collections"
	DatesURI       = "sorrel:functions:dates"
)

// Default returns a registry with the shipped namespaces bound to their
// conventional prefixes: str, coll, and date.
func Default() *Registry {
	r := NewRegistry()
	r.Bind("str", StringsURI, Strings())
	r.Bind("coll", CollectionsURI, Collections())
	r.Bind("date", DatesURI, Dates())
	return r
}

func argError(name, msg string) error {
	return serrors.Evalf(serrors.CodeOperand, "%s: %s", name, msg)
}
