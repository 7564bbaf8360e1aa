package functions

import (
	"sort"
	"strings"

	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Collections builds the coll namespace table.
func Collections() *Table {
	t := NewTable()

	t.Register("size", 1, func(args []value.Value) (value.Value, error) {
		switch v := args[0].(type) {
		case *value.Null:
			return &value.Integer{Value: 0}, nil
		case *value.Array:
			return &value.Integer{Value: int64(len(v.Elements))}, nil
		case *value.Dict:
			return &value.Integer{Value: int64(len(v.Pairs))}, nil
		case *value.String:
			return &value.Integer{Value: int64(len([]rune(v.Value)))}, nil
		}
		return nil, argError("coll:size", "expected an array, dict, or string")
	})

	t.Register("join", 2, func(args []value.Value) (value.Value, error) {
		arr, ok := args[0].(*value.Array)
		if !ok {
			return nil, argError("coll:join", "expected an array")
		}
		sep := value.ToText(args[1])
		parts := make([]string, len(arr.Elements))
		for i, el := range arr.Elements {
			parts[i] = value.ToText(el)
		}
		return &value.String{Value: strings.Join(parts, sep)}, nil
	})

	t.Register("reverse", 1, func(args []value.Value) (value.Value, error) {
		arr, ok := args[0].(*value.Array)
		if !ok {
			return nil, argError("coll:reverse", "expected an array")
		}
		elements := make([]value.Value, len(arr.Elements))
		for i, el := range arr.Elements {
			elements[len(elements)-1-i] = el
		}
		return &value.Array{Elements: elements}, nil
	})

	// sort orders by the language's natural order and fails on elements
	// that do not compare, mixed types included.
	t.Register("sort", 1, func(args []value.Value) (value.Value, error) {
		arr, ok := args[0].(*value.Array)
		if !ok {
			return nil, argError("coll:sort", "expected an array")
		}
		elements := make([]value.Value, len(arr.Elements))
		copy(elements, arr.Elements)
		var sortErr error
		sort.SliceStable(elements, func(i, j int) bool {
			c, err := value.Compare(elements[i], elements[j])
			if err != nil && sortErr == nil {
				sortErr = err
			}
			return c < 0
		})
		if sortErr != nil {
			return nil, argError("coll:sort", sortErr.Error())
		}
		return &value.Array{Elements: elements}, nil
	})

	t.Register("contains", 2, func(args []value.Value) (value.Value, error) {
		switch v := args[0].(type) {
		case *value.Array:
			for _, el := range v.Elements {
				if value.Equal(el, args[1]) {
					return value.TRUE, nil
				}
			}
			return value.FALSE, nil
		case *value.Dict:
			_, present := v.Pairs[value.ToText(args[1])]
			return value.FromBool(present), nil
		}
		return nil, argError("coll:contains", "expected an array or dict")
	})

	t.Register("keys", 1, func(args []value.Value) (value.Value, error) {
		dict, ok := args[0].(*value.Dict)
		if !ok {
			return nil, argError("coll:keys", "expected a dict")
		}
		keys := make([]string, 0, len(dict.Pairs))
		for k := range dict.Pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elements := make([]value.Value, len(keys))
		for i, k := range keys {
			elements[i] = &value.String{Value: k}
		}
		return &value.Array{Elements: elements}, nil
	})

	t.Register("values", 1, func(args []value.Value) (value.Value, error) {
		dict, ok := args[0].(*value.Dict)
		if !ok {
			return nil, argError("coll:values", "expected a dict")
		}
		keys := make([]string, 0, len(dict.Pairs))
		for k := range dict.Pairs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elements := make([]value.Value, len(keys))
		for i, k := range keys {
			elements[i] = dict.Pairs[k]
		}
		return &value.Array{Elements: elements}, nil
	})

	return t
}
