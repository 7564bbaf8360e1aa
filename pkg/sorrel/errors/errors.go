// Package errors provides the structured error type shared by the sorrel
// parser and evaluator.
//
// Errors fall into two classes: parse errors, raised while turning text
// into an AST, and eval errors, raised while computing a value. Both are
// surfaced synchronously to the caller; nothing is retried internally.
package errors

import (
	"fmt"
	"strings"
)

// Class categorizes errors for filtering and display.
type Class string

const (
	ClassParse Class = "parse" // syntax and name-binding errors
	ClassEval  Class = "eval"  // evaluation-time errors
)

// Parse-time error codes.
const (
	CodeUnexpectedEnd = "PARSE-0001" // input ended mid-expression
	CodeUnmatched     = "PARSE-0002" // parenthesis/bracket/brace left open
	CodeUnexpected    = "PARSE-0003" // syntax element out of place
	CodeReservedWord  = "PARSE-0004" // operator keyword used as identifier
	CodeUnresolved    = "PARSE-0005" // identifier unknown to the resolver
	CodeBadProperty   = "PARSE-0006" // malformed .name access
	CodeBadCall       = "PARSE-0007" // malformed qualified function call
	CodeConditional   = "PARSE-0008" // '?' without ':' or ':' without '?'
	CodeTrailingText  = "PARSE-0009" // unparsed text after the expression
	CodeBadArguments  = "PARSE-0010" // malformed argument list
)

// Evaluation-time error codes.
const (
	CodeNotAssignable = "EVAL-0001" // assignment target cannot be assigned
	CodeNoFunction    = "EVAL-0002" // no function matches name and arity
	CodeLength        = "EVAL-0003" // length of an unsupported kind
	CodeOperand       = "EVAL-0004" // operand could not be coerced
)

// Error represents any error from parsing or evaluation.
type Error struct {
	Class   Class          // error category
	Code    string         // stable code, e.g. "PARSE-0005"
	Message string         // human-readable message
	Pos     int            // character offset into the input (-1 if unknown)
	Data    map[string]any // extra detail, e.g. the unresolved identifier
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Class))
	sb.WriteString(" error")
	if e.Pos >= 0 {
		fmt.Fprintf(&sb, " at %d", e.Pos)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// NewParse creates a parse error at the given input offset.
func NewParse(code, msg string, pos int) *Error {
	return &Error{Class: ClassParse, Code: code, Message: msg, Pos: pos}
}

// NewEval creates an evaluation error. Evaluation errors carry no
// position: by evaluation time the source text is gone.
func NewEval(code, msg string) *Error {
	return &Error{Class: ClassEval, Code: code, Message: msg, Pos: -1}
}

// Evalf creates an evaluation error with a formatted message.
func Evalf(code, format string, args ...any) *Error {
	return NewEval(code, fmt.Sprintf(format, args...))
}

// IsParse reports whether err is a parse-class Error.
func IsParse(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Class == ClassParse
}

// IsEval reports whether err is an eval-class Error.
func IsEval(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Class == ClassEval
}

// CodeOf returns the code of a structured error, or "" for any other error.
func CodeOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
