package scanner

import (
	"testing"
)

func TestMatchChar(t *testing.T) {
	s := New("a+b")
	if !s.MatchChar('a') {
		t.Fatal("expected to match 'a'")
	}
	if s.MatchChar('b') {
		t.Fatal("should not match 'b' at '+'")
	}
	if !s.MatchChar('+') {
		t.Fatal("expected to match '+'")
	}
	if s.Matched() != "+" {
		t.Errorf("Matched() = %q, want %q", s.Matched(), "+")
	}
}

func TestBackAndRewind(t *testing.T) {
	s := New("abc")
	s.MatchChar('a')
	s.MatchChar('b')
	save := s.Pos()
	s.MatchChar('c')
	if !s.EOF() {
		t.Fatal("expected EOF after consuming all input")
	}
	s.Rewind(save)
	if !s.MatchChar('c') {
		t.Fatal("expected to re-match 'c' after Rewind")
	}
	s.Back(1)
	if !s.MatchChar('c') {
		t.Fatal("expected to re-match 'c' after Back(1)")
	}
}

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		keyword string
		match   bool
	}{
		{"exact word", "not", "not", true},
		{"word before space", "not a", "not", true},
		{"word before operator", "not(a)", "not", true},
		{"prefix of identifier", "nothing", "not", false},
		{"prefix before digit", "not1", "not", false},
		{"prefix before underscore", "not_x", "not", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			if got := s.MatchKeyword(tt.keyword); got != tt.match {
				t.Errorf("MatchKeyword(%q) on %q = %v, want %v", tt.keyword, tt.input, got, tt.match)
			}
		})
	}
}

func TestSkipTo(t *testing.T) {
	s := New("hello ${name} world")
	if !s.SkipTo("${") {
		t.Fatal("expected to find ${")
	}
	if s.Matched() != "hello " {
		t.Errorf("skipped window = %q, want %q", s.Matched(), "hello ")
	}
	if !s.MatchIdentifier(IsIdentifierStart, IsIdentifierPart) {
		t.Fatal("expected identifier after ${")
	}
	if s.Matched() != "name" {
		t.Errorf("identifier = %q, want %q", s.Matched(), "name")
	}

	s.MatchChar('}')
	if s.SkipTo("${") {
		t.Fatal("no further ${ expected")
	}
	if s.Matched() != " world" {
		t.Errorf("trailing window = %q, want %q", s.Matched(), " world")
	}
	if !s.EOF() {
		t.Error("expected EOF after failed SkipTo")
	}
}

func TestMatchNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		match   bool
		isFloat bool
		intVal  int64
		fltVal  float64
	}{
		{"integer", "42", true, false, 42, 0},
		{"negative integer", "-7", true, false, -7, 0},
		{"explicit plus", "+3", true, false, 3, 0},
		{"float", "3.25", true, true, 0, 3.25},
		{"leading dot", ".5", true, true, 0, 0.5},
		{"trailing dot", "2.", true, true, 0, 2},
		{"exponent", "1e3", true, true, 0, 1000},
		{"negative exponent", "25e-1", true, true, 0, 2.5},
		{"overflow falls back to float", "99999999999999999999", true, true, 0, 1e20},
		{"not a number", "abc", false, false, 0, 0},
		{"bare dot", ".", false, false, 0, 0},
		{"bare sign", "-", false, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			num, ok := s.MatchNumber()
			if ok != tt.match {
				t.Fatalf("MatchNumber(%q) matched = %v, want %v", tt.input, ok, tt.match)
			}
			if !ok {
				if s.Pos() != 0 {
					t.Errorf("cursor moved to %d on failed match", s.Pos())
				}
				return
			}
			if num.IsFloat != tt.isFloat {
				t.Fatalf("IsFloat = %v, want %v", num.IsFloat, tt.isFloat)
			}
			if tt.isFloat && num.Float != tt.fltVal {
				t.Errorf("Float = %v, want %v", num.Float, tt.fltVal)
			}
			if !tt.isFloat && num.Int != tt.intVal {
				t.Errorf("Int = %v, want %v", num.Int, tt.intVal)
			}
		})
	}
}

func TestMatchStringLiteral(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		match  bool
		text   string
		window string
	}{
		{"double quoted", `"hello"`, true, "hello", `"hello"`},
		{"single quoted", `'hello'`, true, "hello", `'hello'`},
		{"empty", `""`, true, "", `""`},
		{"escaped quote", `"a\"b"`, true, `a"b`, `"a\"b"`},
		{"escape is literal", `"a\nb"`, true, "anb", `"a\nb"`},
		{"escaped backslash", `"a\\b"`, true, `a\b`, `"a\\b"`},
		{"other quote inside", `"it's"`, true, "it's", `"it's"`},
		{"unterminated", `"abc`, false, "", ""},
		{"trailing backslash", `"abc\`, false, "", ""},
		{"not a string", `abc`, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			text, ok := s.MatchStringLiteral()
			if ok != tt.match {
				t.Fatalf("MatchStringLiteral(%q) matched = %v, want %v", tt.input, ok, tt.match)
			}
			if !ok {
				if s.Pos() != 0 {
					t.Errorf("cursor moved to %d on failed match", s.Pos())
				}
				return
			}
			if text != tt.text {
				t.Errorf("text = %q, want %q", text, tt.text)
			}
			if s.Matched() != tt.window {
				t.Errorf("window = %q, want %q", s.Matched(), tt.window)
			}
		})
	}
}

func TestMatchIdentifier(t *testing.T) {
	s := New("foo_1 bar")
	if !s.MatchIdentifier(IsIdentifierStart, IsIdentifierPart) {
		t.Fatal("expected identifier")
	}
	if s.Matched() != "foo_1" {
		t.Errorf("Matched() = %q, want %q", s.Matched(), "foo_1")
	}
	s.SkipWhitespace()
	if !s.MatchIdentifier(IsIdentifierStart, IsIdentifierPart) {
		t.Fatal("expected second identifier")
	}
	if s.Matched() != "bar" {
		t.Errorf("Matched() = %q, want %q", s.Matched(), "bar")
	}

	s = New("1abc")
	if s.MatchIdentifier(IsIdentifierStart, IsIdentifierPart) {
		t.Error("identifier must not start with a digit")
	}
}
