// Package scanner provides the low-level cursor the sorrel parser reads
// through. It recognizes literals, identifiers, and punctuation, and
// supports look-ahead-then-commit: every Match* method either consumes
// exactly what it matched or leaves the cursor where it was, and Back
// rewinds a committed match.
package scanner

import (
	"strconv"
	"strings"
	"unicode"
)

// Scanner maintains a position cursor over the input plus the window of
// the last successful match.
type Scanner struct {
	src   []rune
	pos   int
	start int // last match window
	end   int
}

// New creates a scanner over input.
func New(input string) *Scanner {
	return &Scanner{src: []rune(input)}
}

// Pos returns the current cursor position in characters.
func (s *Scanner) Pos() int { return s.pos }

// EOF reports whether the cursor is at the end of the input.
func (s *Scanner) EOF() bool { return s.pos >= len(s.src) }

// Back rewinds the cursor by n characters.
func (s *Scanner) Back(n int) {
	s.pos -= n
	if s.pos < 0 {
		s.pos = 0
	}
}

// Rewind moves the cursor back to an earlier position obtained from Pos.
func (s *Scanner) Rewind(pos int) {
	if pos >= 0 && pos <= len(s.src) {
		s.pos = pos
	}
}

// Matched returns the text of the last successful match.
func (s *Scanner) Matched() string {
	return string(s.src[s.start:s.end])
}

func (s *Scanner) setWindow(start, end int) {
	s.start, s.end = start, end
}

// Peek returns the character at the cursor without consuming it, or -1
// at end of input.
func (s *Scanner) Peek() rune {
	if s.EOF() {
		return -1
	}
	return s.src[s.pos]
}

// SkipWhitespace advances the cursor past any whitespace.
func (s *Scanner) SkipWhitespace() {
	for !s.EOF() && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

// MatchChar consumes c when it is the next character.
func (s *Scanner) MatchChar(c rune) bool {
	if s.EOF() || s.src[s.pos] != c {
		return false
	}
	s.setWindow(s.pos, s.pos+1)
	s.pos++
	return true
}

// MatchString consumes lit when the input continues with it.
func (s *Scanner) MatchString(lit string) bool {
	runes := []rune(lit)
	if s.pos+len(runes) > len(s.src) {
		return false
	}
	for i, r := range runes {
		if s.src[s.pos+i] != r {
			return false
		}
	}
	s.setWindow(s.pos, s.pos+len(runes))
	s.pos += len(runes)
	return true
}

// MatchKeyword consumes kw only when it is not immediately followed by
// an identifier-continuation character, so "not" does not eat the front
// of "nothing".
func (s *Scanner) MatchKeyword(kw string) bool {
	runes := []rune(kw)
	if s.pos+len(runes) > len(s.src) {
		return false
	}
	for i, r := range runes {
		if s.src[s.pos+i] != r {
			return false
		}
	}
	if next := s.pos + len(runes); next < len(s.src) && IsIdentifierPart(s.src[next]) {
		return false
	}
	s.setWindow(s.pos, s.pos+len(runes))
	s.pos += len(runes)
	return true
}

// SkipTo advances the cursor to just after the next occurrence of delim,
// leaving the skipped-over text as the match window. When delim does not
// occur the cursor moves to the end of input, the window covers the
// remaining text, and SkipTo returns false.
func (s *Scanner) SkipTo(delim string) bool {
	rest := string(s.src[s.pos:])
	idx := strings.Index(rest, delim)
	if idx < 0 {
		s.setWindow(s.pos, len(s.src))
		s.pos = len(s.src)
		return false
	}
	skipped := len([]rune(rest[:idx]))
	s.setWindow(s.pos, s.pos+skipped)
	s.pos += skipped + len([]rune(delim))
	return true
}

// IsIdentifierStart is the default predicate for the first character of
// an identifier.
func IsIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentifierPart is the default predicate for identifier continuation
// characters.
func IsIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// MatchIdentifier consumes an identifier whose shape is given by the two
// predicates. The identifier text becomes the match window.
func (s *Scanner) MatchIdentifier(isStart, isPart func(rune) bool) bool {
	if s.EOF() || !isStart(s.src[s.pos]) {
		return false
	}
	begin := s.pos
	s.pos++
	for !s.EOF() && isPart(s.src[s.pos]) {
		s.pos++
	}
	s.setWindow(begin, s.pos)
	return true
}

// Number is the result of a numeric-literal match: either a 64-bit
// integer or a floating-point value. A literal with a fractional part or
// an exponent is floating; an integral literal too large for 64 bits
// falls back to floating as well.
type Number struct {
	IsFloat bool
	Int     int64
	Float   float64
}

// MatchNumber consumes a numeric literal: an optional sign, digits, an
// optional fractional part, and an optional exponent. The cursor is left
// untouched when no numeric literal starts here.
func (s *Scanner) MatchNumber() (Number, bool) {
	begin := s.pos
	pos := s.pos

	if pos < len(s.src) && (s.src[pos] == '-' || s.src[pos] == '+') {
		pos++
	}
	digits := 0
	for pos < len(s.src) && isDigit(s.src[pos]) {
		pos++
		digits++
	}
	floating := false
	if pos < len(s.src) && s.src[pos] == '.' {
		frac := 0
		p := pos + 1
		for p < len(s.src) && isDigit(s.src[p]) {
			p++
			frac++
		}
		if frac > 0 || digits > 0 {
			floating = true
			pos = p
			digits += frac
		}
	}
	if digits == 0 {
		return Number{}, false
	}
	if pos < len(s.src) && (s.src[pos] == 'e' || s.src[pos] == 'E') {
		p := pos + 1
		if p < len(s.src) && (s.src[p] == '-' || s.src[p] == '+') {
			p++
		}
		exp := 0
		for p < len(s.src) && isDigit(s.src[p]) {
			p++
			exp++
		}
		if exp > 0 {
			floating = true
			pos = p
		}
	}

	text := string(s.src[begin:pos])
	s.setWindow(begin, pos)
	s.pos = pos

	if !floating {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Number{Int: n}, true
		}
		// magnitude exceeds 64 bits
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.pos = begin
		return Number{}, false
	}
	return Number{IsFloat: true, Float: f}, true
}

// MatchStringLiteral consumes a single- or double-quoted string literal.
// Backslash is a universal escape: the character after it is taken
// literally, with no validation of what it is, so `\n` is the letter n.
// An unterminated literal is not a match and leaves the cursor in place.
func (s *Scanner) MatchStringLiteral() (string, bool) {
	if s.EOF() {
		return "", false
	}
	quote := s.src[s.pos]
	if quote != '\'' && quote != '"' {
		return "", false
	}
	begin := s.pos
	pos := s.pos + 1
	var out strings.Builder
	for pos < len(s.src) {
		c := s.src[pos]
		switch c {
		case quote:
			s.setWindow(begin, pos+1)
			s.pos = pos + 1
			return out.String(), true
		case '\\':
			if pos+1 >= len(s.src) {
				return "", false
			}
			out.WriteRune(s.src[pos+1])
			pos += 2
		default:
			out.WriteRune(c)
			pos++
		}
	}
	return "", false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
