package tests

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sambeau/sorrel/pkg/sorrel/sorrel"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

func evalString(t *testing.T, input string) string {
	t.Helper()
	got, err := sorrel.EvalString(input, sorrel.NewEnv())
	if err != nil {
		t.Fatalf("eval %q: %v", input, err)
	}
	return got
}

// TestEndToEnd runs whole expressions through parse, optimize, and
// evaluate via the embedding API.
func TestEndToEnd(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Arithmetic
		{"integer arithmetic", "2 + 3 * 4 - 5", "9"},
		{"division is always floating", "7 / 2", "3.5"},
		{"even division stays floating", "8 / 2", "4.0"},
		{"float promotion", "1 + 0.5", "1.5"},
		{"deep nesting", "((((1 + 2)) * 3))", "9"},

		// Null handling
		{"null plus null", "null + null", "0"},
		{"null minus number", "null - 3", "-3"},
		{"null as empty text", "'a' # null # 'b'", "ab"},

		// Text and coercion
		{"join numbers", "1 # 2 # 3", "123"},
		{"textual numbers compare numerically", "'10' == 10", "true"},
		{"textual float equality", "'1.0' == 1", "true"},
		{"case conversion", "toupper 'abc' # tolower 'DEF'", "ABCdef"},

		// Logic
		{"negation of comparison", "!(1 > 2)", "true"},
		{"boolean text coerces", "'true' && true", "true"},

		// Conditionals
		{"nested conditional chain", "1 > 2 ? 'a' : 2 > 1 ? 'b' : 'c'", "b"},

		// Collections
		{"array literal round trip", "[1, 'two', 3.0]", "[1, two, 3.0]"},
		{"index chain", "{users: [{name: 'Ada'}]}.users[0].name", "Ada"},
		{"length and sum together", "length [1, 2] + sum [3, 4]", "9"},

		// Functions
		{"function composition", "str:upper(coll:join(['a', 'b'], '-'))", "A-B"},
		{"functions in conditions", "str:contains('sorrel', 'rel') ? 'yes' : 'no'", "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalString(t, tt.input); got != tt.expected {
				t.Errorf("%q = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEnvironmentRoundTrip(t *testing.T) {
	env := sorrel.NewEnv()
	env.Set("user", &value.Dict{Pairs: map[string]value.Value{
		"name":  &value.String{Value: "Ada"},
		"roles": &value.Array{Elements: []value.Value{&value.String{Value: "admin"}}},
	}})

	got, err := sorrel.EvalString("user.name # ' (' # user.roles[0] # ')'", env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if diff := cmp.Diff("Ada (admin)", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// assignment through the expression language is visible afterwards
	if _, err := sorrel.Eval("greeting = 'Hi ' # user.name", env); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v := env.Get("greeting"); value.ToText(v) != "Hi Ada" {
		t.Errorf("greeting = %s", value.GoString(v))
	}

	// indexed assignment mutates the stored value
	if _, err := sorrel.Eval("user.name = 'Grace'", env); err != nil {
		t.Fatalf("eval: %v", err)
	}
	got, err = sorrel.EvalString("user.name", env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != "Grace" {
		t.Errorf("user.name = %q, want Grace", got)
	}
}

func TestTemplates(t *testing.T) {
	env := sorrel.NewEnv()
	env.Set("name", &value.String{Value: "World"})
	env.Set("n", &value.Integer{Value: 3})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "no placeholders here", "no placeholders here"},
		{"greeting", "Hello ${name}!", "Hello World!"},
		{"expressions", "${n} squared is ${n * n}", "3 squared is 9"},
		{"functions in templates", "${str:upper(name)}", "WORLD"},
		{"conditional in template", "${n > 2 ? 'many' : 'few'} items", "many items"},
		{"missing variable is blank", "[${missing}]", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sorrel.Substitute(tt.input, env)
			if err != nil {
				t.Fatalf("substitute %q: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("%q = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLazyTemplateReuse(t *testing.T) {
	env := sorrel.NewEnv()
	env.Set("count", &value.Integer{Value: 1})

	node, err := sorrel.SubstituteLazy("count is ${count}", env)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	for i, want := range []string{"count is 1", "count is 2"} {
		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval #%d: %v", i+1, err)
		}
		if got := value.ToText(v); got != want {
			t.Errorf("eval #%d = %q, want %q", i+1, got, want)
		}
		env.Set("count", &value.Integer{Value: 2})
	}
}

func TestErrorsSurface(t *testing.T) {
	env := sorrel.NewEnv()

	if _, err := sorrel.Eval("1 +", env); err == nil {
		t.Error("parse error expected")
	}
	if _, err := sorrel.Eval("1 / 0", env); err == nil {
		t.Error("division by zero must fail at evaluation")
	}
	if _, err := sorrel.Eval("5 = 1", env); err == nil {
		t.Error("assignment to a constant must fail")
	}
	if _, err := sorrel.Eval("length 5", env); err == nil {
		t.Error("length of a number must fail")
	}
}
