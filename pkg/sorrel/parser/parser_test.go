package parser

import (
	"testing"

	"github.com/sambeau/sorrel/pkg/sorrel/ast"
	serrors "github.com/sambeau/sorrel/pkg/sorrel/errors"
	"github.com/sambeau/sorrel/pkg/sorrel/functions"
	"github.com/sambeau/sorrel/pkg/sorrel/scope"
	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// testEnv combines a variable scope with the shipped function
// namespaces so the parser sees an ExtendedResolver.
type testEnv struct {
	*scope.Scope
	*functions.Registry
}

func newTestEnv() *testEnv {
	return &testEnv{Scope: scope.New(), Registry: functions.Default()}
}

func parseEval(t *testing.T, input string) (value.Value, error) {
	t.Helper()
	node, err := NewExtended(newTestEnv()).Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node.Evaluate()
}

func evalText(t *testing.T, input string) string {
	t.Helper()
	v, err := parseEval(t, input)
	if err != nil {
		t.Fatalf("eval %q: %v", input, err)
	}
	return value.ToText(v)
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"multiplication binds tighter", "2 + 3 * 4", "14"},
		{"parentheses override", "(2 + 3) * 4", "20"},
		{"subtraction is left associative", "1 - 2 - 3", "-4"},
		{"division is left associative", "8 / 4 / 2", "1.0"},
		{"additive then relational", "1 + 2 < 4", "true"},
		{"relational then equality", "1 < 2 == true", "true"},
		{"equality then and", "1 == 1 && 2 == 2", "true"},
		{"and binds tighter than or", "false && true || true", "true"},
		{"unary minus in subtraction", "1 - -2", "3"},
		{"negative literal", "-3 * 2", "-6"},
		{"modulo with multiplicative priority", "1 + 7 % 3", "2"},
		{"join has additive priority", "1 + 2 # '!'", "3!"},
		{"nested parentheses", "((1 + 2) * (3 + 4))", "21"},
		{"prefix chain", "!!true", "true"},
		{"not relational", "not (1 > 2)", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalText(t, tt.input); got != tt.want {
				t.Errorf("%q = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeywordSynonyms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"eq", "1 eq 1", "true"},
		{"ne", "1 ne 2", "true"},
		{"lt", "1 lt 2", "true"},
		{"le", "2 le 2", "true"},
		{"gt", "3 gt 2", "true"},
		{"ge", "2 ge 3", "false"},
		{"div", "4 div 2", "2.0"},
		{"mod", "5 mod 2", "1"},
		{"and", "true and false", "false"},
		{"or", "true or false", "true"},
		{"not prefix", "not false", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalText(t, tt.input); got != tt.want {
				t.Errorf("%q = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConditional(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"true picks then", "true ? 'a' : 'b'", "a"},
		{"false picks else", "false ? 'a' : 'b'", "b"},
		{"nested conditionals pair to the right", "false ? 1 : false ? 2 : 3", "3"},
		{"first true wins", "true ? 1 : false ? 2 : 3", "1"},
		{"condition from comparison", "1 + 1 == 2 ? 'yes' : 'no'", "yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalText(t, tt.input); got != tt.want {
				t.Errorf("%q = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShortCircuit(t *testing.T) {
	// the right side would divide by zero if evaluated
	if got := evalText(t, "false && 1 / 0 > 0"); got != "false" {
		t.Errorf("short-circuit and = %q, want false", got)
	}
	if got := evalText(t, "true || 1 / 0 > 0"); got != "true" {
		t.Errorf("short-circuit or = %q, want true", got)
	}
}

func TestLiteralsAndIndexing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"array index", "[10, 20, 30][1]", "20"},
		{"array out of range is null", "[1][5]", ""},
		{"negative index is null", "[1][-1]", ""},
		{"object dot access", "{a: 1, b: 2}.b", "2"},
		{"object bracket access", "{a: 1}['a']", "1"},
		{"missing key is null", "{a: 1}.z", ""},
		{"nested access", "{list: [1, [2, 3]]}.list[1][0]", "2"},
		{"string keys", "{'two words': 5}['two words']", "5"},
		{"length of array", "length [1, 2, 3]", "3"},
		{"sum of array", "sum [1, 2, 3]", "6"},
		{"sum promotes to float", "sum [1, 2.5]", "3.5"},
		{"empty array literal", "empty []", "true"},
		{"empty object literal", "empty {}", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalText(t, tt.input); got != tt.want {
				t.Errorf("%q = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAssignment(t *testing.T) {
	env := newTestEnv()
	p := NewExtended(env)

	node, err := p.Parse("a = b = 2 * 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := node.Evaluate()
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if value.ToText(v) != "6" {
		t.Errorf("assignment value = %s, want 6", value.GoString(v))
	}
	for _, name := range []string{"a", "b"} {
		got, err := env.Scope.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if value.ToText(got) != "6" {
			t.Errorf("%s = %s, want 6", name, value.GoString(got))
		}
	}
}

func TestWildcardOperator(t *testing.T) {
	if got := evalText(t, "'hello.txt' ~= '*.txt'"); got != "true" {
		t.Errorf("match = %q, want true", got)
	}
	if got := evalText(t, "'hello.txt' ~= '*.md'"); got != "false" {
		t.Errorf("match = %q, want false", got)
	}
	if got := evalText(t, "null ~= '*'"); got != "false" {
		t.Errorf("null subject = %q, want false", got)
	}
}

func TestQualifiedCalls(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"str upper", "str:upper('abc')", "ABC"},
		{"str replace", "str:replace('a-b-c', '-', '.')", "a.b.c"},
		{"nested call", "str:upper(str:trim('  hi  '))", "HI"},
		{"call in arithmetic", "str:length('abcd') * 2", "8"},
		{"coll join", "coll:join([1, 2, 3], '-')", "1-2-3"},
		{"coll sort", "coll:sort([3, 1, 2])", "[1, 2, 3]"},
		{"date year", "date:year('2026-08-25')", "2026"},
		{"arity overload", "str:substring('hello', 1)", "ello"},
		{"arity overload three args", "str:substring('hello', 1, 3)", "el"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalText(t, tt.input); got != tt.want {
				t.Errorf("%q = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("unknown function is an eval error", func(t *testing.T) {
		v, err := parseEval(t, "str:nope(1)")
		if err == nil {
			t.Fatalf("expected error, got %s", value.GoString(v))
		}
		if serrors.CodeOf(err) != serrors.CodeNoFunction {
			t.Errorf("code = %q, want %q", serrors.CodeOf(err), serrors.CodeNoFunction)
		}
	})

	t.Run("unknown prefix is a parse error", func(t *testing.T) {
		_, err := NewExtended(newTestEnv()).Parse("zzz:upper('a')")
		if serrors.CodeOf(err) != serrors.CodeBadCall {
			t.Errorf("code = %q, want %q", serrors.CodeOf(err), serrors.CodeBadCall)
		}
	})

	t.Run("colon after identifier can still be an else", func(t *testing.T) {
		env := newTestEnv()
		env.Scope.Declare("str", &value.String{Value: "variable wins"})
		node, err := NewExtended(env).Parse("true ? str : 'x'")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if value.ToText(v) != "variable wins" {
			t.Errorf("got %s, want the variable value", value.GoString(v))
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"empty input", "", serrors.CodeUnexpectedEnd},
		{"dangling operator", "1 +", serrors.CodeUnexpectedEnd},
		{"missing close paren", "(1 + 2", serrors.CodeUnmatched},
		{"missing close bracket", "[1, 2", serrors.CodeUnmatched},
		{"unterminated string", "'abc", serrors.CodeUnexpectedEnd},
		{"reserved word as identifier", "and + 1", serrors.CodeReservedWord},
		{"trailing text", "1 2", serrors.CodeTrailingText},
		{"conditional without else", "true ? 1", serrors.CodeConditional},
		{"else without conditional", "1 : 2", serrors.CodeConditional},
		{"bad property", "a. + 1", serrors.CodeBadProperty},
		{"bad argument list", "str:upper('a' 'b')", serrors.CodeBadArguments},
		{"stray character", "@", serrors.CodeUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExtended(newTestEnv()).Parse(tt.input)
			if err == nil {
				t.Fatalf("parse %q: expected an error", tt.input)
			}
			if got := serrors.CodeOf(err); got != tt.code {
				t.Errorf("parse %q: code = %q, want %q (error: %v)", tt.input, got, tt.code, err)
			}
		})
	}
}

func TestUnresolvedIdentifier(t *testing.T) {
	_, err := NewExtended(&testEnv{Scope: scope.NewClosed(), Registry: functions.Default()}).Parse("missing + 1")
	if serrors.CodeOf(err) != serrors.CodeUnresolved {
		t.Fatalf("code = %q, want %q", serrors.CodeOf(err), serrors.CodeUnresolved)
	}
	se := err.(*serrors.Error)
	if se.Data["identifier"] != "missing" {
		t.Errorf("Data[identifier] = %v, want %q", se.Data["identifier"], "missing")
	}
}

func TestOpenScopeReadsNull(t *testing.T) {
	if got := evalText(t, "never_written"); got != "" {
		t.Errorf("unwritten variable = %q, want empty text form", got)
	}
	v, err := parseEval(t, "unset == null")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v != value.TRUE {
		t.Errorf("unset == null is %s, want true", value.GoString(v))
	}
}

func TestExtensionGating(t *testing.T) {
	plain := New(newTestEnv())

	tests := []struct {
		name  string
		input string
	}{
		{"match operator", "'a' ~= 'b'"},
		{"join operator", "'a' # 'b'"},
		{"conditional", "true ? 1 : 2"},
		{"assignment", "a = 1"},
		{"array literal", "[1, 2]"},
		{"object literal", "{a: 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := plain.Parse(tt.input); err == nil {
				t.Errorf("parse %q without extensions: expected an error", tt.input)
			}
		})
	}

	t.Run("standard language still works", func(t *testing.T) {
		node, err := plain.Parse("1 + 2 * 3 == 7 && !false")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if v != value.TRUE {
			t.Errorf("got %s, want true", value.GoString(v))
		}
	})

	t.Run("keyword operators parse as identifiers when disabled", func(t *testing.T) {
		env := newTestEnv()
		env.Scope.Declare("toupper", &value.Integer{Value: 9})
		node, err := New(env).Parse("toupper")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		v, err := node.Evaluate()
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if value.ToText(v) != "9" {
			t.Errorf("got %s, want 9", value.GoString(v))
		}
	})
}

func TestOptimizedTreeShape(t *testing.T) {
	node, err := NewExtended(newTestEnv()).Parse("x + 2 + 3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// left associativity puts (x+2) inside, so 2 and 3 cannot merge
	opt := node.Optimize()
	if _, ok := opt.(*ast.Add); !ok {
		t.Fatalf("optimized to %T (%s), want an addition", opt, opt.String())
	}

	node, err = NewExtended(newTestEnv()).Parse("2 + 3 + x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opt = node.Optimize()
	add, ok := opt.(*ast.Add)
	if !ok {
		t.Fatalf("optimized to %T (%s), want an addition", opt, opt.String())
	}
	if !add.Left().Equal(ast.NewInt(5)) {
		t.Errorf("left operand = %s, want folded 5", add.Left().String())
	}
}
