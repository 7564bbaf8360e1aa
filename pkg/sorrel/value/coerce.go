package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercion helpers. Every operator converts its operands through these
// functions; the error policy is fixed here so all operators fail the
// same way on the same inputs.

// CoercionError reports a value that could not be converted to the type
// an operator required.
type CoercionError struct {
	Want string
	Got  Value
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", GoString(e.Got), e.Want)
}

// ToBoolean converts v to a boolean. Booleans pass through; the strings
// "true" and "false" convert; everything else is a coercion error.
func ToBoolean(v Value) (bool, error) {
	switch tv := v.(type) {
	case *Boolean:
		return tv.Value, nil
	case *String:
		switch tv.Value {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, &CoercionError{Want: "boolean", Got: v}
}

// ToText converts v to its text form. Never fails; null becomes the
// empty string so template substitution of a null contributes nothing.
func ToText(v Value) string {
	switch tv := v.(type) {
	case nil, *Null:
		return ""
	case *String:
		return tv.Value
	default:
		return v.Inspect()
	}
}

// ToInt converts v to a 64-bit integer. Null is zero; floats truncate;
// textual numbers parse.
func ToInt(v Value) (int64, error) {
	switch tv := v.(type) {
	case nil, *Null:
		return 0, nil
	case *Integer:
		return tv.Value, nil
	case *Float:
		return int64(tv.Value), nil
	case *String:
		if n, err := strconv.ParseInt(strings.TrimSpace(tv.Value), 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(tv.Value), 64); err == nil {
			return int64(f), nil
		}
	}
	return 0, &CoercionError{Want: "integer", Got: v}
}

// ToFloat converts v to a floating-point number. Null is zero; textual
// numbers parse.
func ToFloat(v Value) (float64, error) {
	switch tv := v.(type) {
	case nil, *Null:
		return 0, nil
	case *Integer:
		return float64(tv.Value), nil
	case *Float:
		return tv.Value, nil
	case *String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(tv.Value), 64); err == nil {
			return f, nil
		}
	}
	return 0, &CoercionError{Want: "float", Got: v}
}

// IsFloating reports whether v is a floating-point number or a textual
// number with a non-integral form.
func IsFloating(v Value) bool {
	switch tv := v.(type) {
	case *Float:
		return true
	case *String:
		s := strings.TrimSpace(tv.Value)
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			return false
		}
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	}
	return false
}

// IsIntegral reports whether v is a whole number
func IsIntegral(v Value) bool {
	_, ok := v.(*Integer)
	return ok
}

// isText reports whether v is a string value
func isText(v Value) bool {
	_, ok := v.(*String)
	return ok
}

// Equal implements the language's equality ladder: null equals only
// null; natural (structural) equality is tried first; then a floating
// comparison if either side is floating, an integer comparison if either
// side is integral, a text comparison if either side is text, and
// finally natural equality again.
func Equal(l, r Value) bool {
	if IsNull(l) || IsNull(r) {
		return IsNull(l) && IsNull(r)
	}
	if Same(l, r) {
		return true
	}
	if IsFloating(l) || IsFloating(r) {
		lf, lerr := ToFloat(l)
		rf, rerr := ToFloat(r)
		if lerr == nil && rerr == nil {
			return lf == rf
		}
		return false
	}
	if IsIntegral(l) || IsIntegral(r) {
		li, lerr := ToInt(l)
		ri, rerr := ToInt(r)
		if lerr == nil && rerr == nil {
			return li == ri
		}
		// fall through to text when the other side is not numeric
	}
	if isText(l) || isText(r) {
		return ToText(l) == ToText(r)
	}
	return Same(l, r)
}

// Compare establishes the natural order between l and r: negative when
// l sorts before r, zero when equal, positive otherwise. Numbers compare
// numerically, text compares lexically; anything else is an error.
func Compare(l, r Value) (int, error) {
	if IsFloating(l) || IsFloating(r) {
		lf, lerr := ToFloat(l)
		rf, rerr := ToFloat(r)
		if lerr == nil && rerr == nil {
			switch {
			case lf < rf:
				return -1, nil
			case lf > rf:
				return 1, nil
			}
			return 0, nil
		}
	}
	if IsIntegral(l) && IsIntegral(r) {
		li, _ := ToInt(l)
		ri, _ := ToInt(r)
		switch {
		case li < ri:
			return -1, nil
		case li > ri:
			return 1, nil
		}
		return 0, nil
	}
	if isText(l) && isText(r) {
		return strings.Compare(ToText(l), ToText(r)), nil
	}
	// one numeric side pulls the other in when it parses as a number
	if IsIntegral(l) || IsIntegral(r) {
		lf, lerr := ToFloat(l)
		rf, rerr := ToFloat(r)
		if lerr == nil && rerr == nil {
			switch {
			case lf < rf:
				return -1, nil
			case lf > rf:
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s with %s", GoString(l), GoString(r))
}

// IsEmpty implements the language's empty test: null, zero-length text,
// a zero-length array, and an empty dict are empty; nothing else is.
func IsEmpty(v Value) bool {
	switch tv := v.(type) {
	case nil, *Null:
		return true
	case *String:
		return tv.Value == ""
	case *Array:
		return len(tv.Elements) == 0
	case *Dict:
		return len(tv.Pairs) == 0
	}
	return false
}
