package template

import (
	"testing"

	"github.com/sambeau/sorrel/pkg/sorrel/ast"
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/parser"
	"github.com/sambeau/sorrel/pkg/sorrel/scope"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

func testParser(vars map[string]value.Value) (*parser.Parser, *scope.Scope) {
	sc := scope.New()
	for name, v := range vars {
		sc.Declare(name, v)
	}
	return parser.NewExtended(sc), sc
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		vars  map[string]value.Value
		want  string
	}{
		{"no placeholders pass through", "plain text", nil, "plain text"},
		{"single expression", "${1 + 1}", nil, "2"},
		{"text around placeholders", "a${1 + 1}b${2 + 2}c", nil, "a2b4c"},
		{"adjacent placeholders", "${'x'}${'y'}", nil, "xy"},
		{"leading and trailing text", "sum: ${2 * 3}!", nil, "sum: 6!"},
		{"variable substitution", "Hello ${name}!", map[string]value.Value{"name": &value.String{Value: "Ada"}}, "Hello Ada!"},
		{"null contributes nothing", "a${missing}b", nil, "ab"},
		{"whitespace inside placeholder", "${ 1 + 2 }", nil, "3"},
		{"conditional in placeholder", "${true ? 'y' : 'n'}", nil, "y"},
		{"dollar without brace is literal", "cost: $5", nil, "cost: $5"},
		{"empty input", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := testParser(tt.vars)
			got, err := Substitute(tt.input, p)
			if err != nil {
				t.Fatalf("Substitute(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubstituteErrors(t *testing.T) {
	p, _ := testParser(nil)

	t.Run("unclosed placeholder", func(t *testing.T) {
		_, err := Substitute("a${1 + 1", p)
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("missing closing brace", func(t *testing.T) {
		_, err := Substitute("a${1 + 1)x", p)
		if err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("bad expression", func(t *testing.T) {
		// the dangling operator leaves '}' where an operand should be
		_, err := Substitute("a${1 +}b", p)
		if serrors.CodeOf(err) != serrors.CodeUnexpected {
			t.Errorf("code = %q, want %q", serrors.CodeOf(err), serrors.CodeUnexpected)
		}
	})

	t.Run("eval error surfaces", func(t *testing.T) {
		_, err := Substitute("${1 / 0}", p)
		if serrors.CodeOf(err) != serrors.CodeOperand {
			t.Errorf("code = %q, want %q", serrors.CodeOf(err), serrors.CodeOperand)
		}
	})
}

func TestParseLazy(t *testing.T) {
	t.Run("no placeholders compile to a constant", func(t *testing.T) {
		p, _ := testParser(nil)
		node, err := Parse("plain text", p)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		c, ok := node.(*ast.Constant)
		if !ok {
			t.Fatalf("compiled to %T, want a constant", node)
		}
		if value.ToText(c.Value) != "plain text" {
			t.Errorf("constant = %s", value.GoString(c.Value))
		}
	})

	t.Run("lone constant placeholder folds to text", func(t *testing.T) {
		p, _ := testParser(nil)
		node, err := Parse("${1 + 1}", p)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if !value.Same(v, &value.String{Value: "2"}) {
			t.Errorf("got %s, want text \"2\"", value.GoString(v))
		}
	})

	t.Run("lone variable placeholder coerces to text", func(t *testing.T) {
		p, _ := testParser(map[string]value.Value{"n": &value.Integer{Value: 7}})
		node, err := Parse("${n}", p)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if !value.Same(v, &value.String{Value: "7"}) {
			t.Errorf("got %s, want text \"7\"", value.GoString(v))
		}
	})

	t.Run("lone text placeholder needs no wrapper", func(t *testing.T) {
		p, _ := testParser(map[string]value.Value{"s": &value.String{Value: "Hi"}})
		node, err := Parse("${tolower(s)}", p)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if _, ok := node.(*ast.Concat); ok {
			t.Errorf("compiled to a wrapped %s, want the bare text-typed operand", node.String())
		}
		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if !value.Same(v, &value.String{Value: "hi"}) {
			t.Errorf("got %s, want text \"hi\"", value.GoString(v))
		}
	})

	t.Run("recompilation is not needed when variables change", func(t *testing.T) {
		p, sc := testParser(map[string]value.Value{"n": &value.Integer{Value: 1}})
		node, err := Parse("n is ${n}", p)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if value.ToText(v) != "n is 1" {
			t.Errorf("first eval = %q", value.ToText(v))
		}

		sc.Set("n", &value.Integer{Value: 2})
		v, err = node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if value.ToText(v) != "n is 2" {
			t.Errorf("second eval = %q", value.ToText(v))
		}
	})

	t.Run("constant placeholders fold into the surrounding text", func(t *testing.T) {
		p, _ := testParser(nil)
		node, err := Parse("a${1 + 1}b", p)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		c, ok := node.(*ast.Constant)
		if !ok {
			t.Fatalf("compiled to %T (%s), want a folded constant", node, node.String())
		}
		if value.ToText(c.Value) != "a2b" {
			t.Errorf("constant = %s", value.GoString(c.Value))
		}
	})
}
