package functions

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

var (
	strUpper = cases.Upper(language.Und)
	strLower = cases.Lower(language.Und)
)

// Strings builds the str namespace table.
func Strings() *Table {
	t := NewTable()

	t.Register("length", 1, func(args []value.Value) (value.Value, error) {
		return &value.Integer{Value: int64(len([]rune(value.ToText(args[0]))))}, nil
	})

	t.Register("upper", 1, func(args []value.Value) (value.Value, error) {
		return &value.String{Value: strUpper.String(value.ToText(args[0]))}, nil
	})

	t.Register("lower", 1, func(args []value.Value) (value.Value, error) {
		return &value.String{Value: strLower.String(value.ToText(args[0]))}, nil
	})

	t.Register("trim", 1, func(args []value.Value) (value.Value, error) {
		return &value.String{Value: strings.TrimSpace(value.ToText(args[0]))}, nil
	})

	t.Register("split", 2, func(args []value.Value) (value.Value, error) {
		parts := strings.Split(value.ToText(args[0]), value.ToText(args[1]))
		elements := make([]value.Value, len(parts))
		for i, p := range parts {
			elements[i] = &value.String{Value: p}
		}
		return &value.Array{Elements: elements}, nil
	})

	t.Register("replace", 3, func(args []value.Value) (value.Value, error) {
		s := strings.ReplaceAll(value.ToText(args[0]), value.ToText(args[1]), value.ToText(args[2]))
		return &value.String{Value: s}, nil
	})

	t.Register("contains", 2, func(args []value.Value) (value.Value, error) {
		return value.FromBool(strings.Contains(value.ToText(args[0]), value.ToText(args[1]))), nil
	})

	t.Register("startsWith", 2, func(args []value.Value) (value.Value, error) {
		return value.FromBool(strings.HasPrefix(value.ToText(args[0]), value.ToText(args[1]))), nil
	})

	t.Register("endsWith", 2, func(args []value.Value) (value.Value, error) {
		return value.FromBool(strings.HasSuffix(value.ToText(args[0]), value.ToText(args[1]))), nil
	})

	// substring(s, from) and substring(s, from, to): rune offsets, with
	// out-of-range offsets clamped rather than erroring.
	t.Register("substring", 2, func(args []value.Value) (value.Value, error) {
		runes := []rune(value.ToText(args[0]))
		from, err := value.ToInt(args[1])
		if err != nil {
			return nil, argError("str:substring", err.Error())
		}
		return &value.String{Value: substring(runes, from, int64(len(runes)))}, nil
	})
	t.Register("substring", 3, func(args []value.Value) (value.Value, error) {
		runes := []rune(value.ToText(args[0]))
		from, err := value.ToInt(args[1])
		if err != nil {
			return nil, argError("str:substring", err.Error())
		}
		to, err := value.ToInt(args[2])
		if err != nil {
			return nil, argError("str:substring", err.Error())
		}
		return &value.String{Value: substring(runes, from, to)}, nil
	})

	t.Register("indexOf", 2, func(args []value.Value) (value.Value, error) {
		s := value.ToText(args[0])
		byteIndex := strings.Index(s, value.ToText(args[1]))
		if byteIndex < 0 {
			return &value.Integer{Value: -1}, nil
		}
		return &value.Integer{Value: int64(len([]rune(s[:byteIndex])))}, nil
	})

	return t
}

func substring(runes []rune, from, to int64) string {
	n := int64(len(runes))
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from >= to {
		return ""
	}
	return string(runes[from:to])
}
