package ast

import (
	"strings"

	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Concat joins the text form of its parts. The lazy template engine
// builds one per template, alternating constant literal spans with
// parsed placeholder expressions.
type Concat struct {
	Parts []Node
}

func NewConcat(parts []Node) *Concat {
	return &Concat{Parts: parts}
}

func (n *Concat) Evaluate() (value.Value, error) {
	var out strings.Builder
	for _, part := range n.Parts {
		v, err := part.Evaluate()
		if err != nil {
			return nil, err
		}
		out.WriteString(value.ToText(v))
	}
	return &value.String{Value: out.String()}, nil
}

// Optimize collapses adjacent constant spans, drops zero-length spans,
// and reduces a single-part concatenation to that part when the part is
// already text. A single non-text part keeps its Concat wrapper, which
// is what coerces the result to text.
func (n *Concat) Optimize() Node {
	merged := make([]Node, 0, len(n.Parts))
	var pending string
	havePending := false
	flush := func() {
		if havePending && pending != "" {
			merged = append(merged, NewText(pending))
		}
		pending = ""
		havePending = false
	}
	for _, part := range n.Parts {
		part = part.Optimize()
		if c, ok := part.(*Constant); ok {
			pending += value.ToText(c.Value)
			havePending = true
			continue
		}
		flush()
		merged = append(merged, part)
	}
	flush()

	switch len(merged) {
	case 0:
		return EmptyText
	case 1:
		if c, ok := merged[0].(*Constant); ok {
			return NewText(value.ToText(c.Value))
		}
		if merged[0].ResultType() == value.StringType {
			return merged[0]
		}
	}
	n.Parts = merged
	return n
}

func (n *Concat) IsConstant() bool {
	for _, part := range n.Parts {
		if !part.IsConstant() {
			return false
		}
	}
	return true
}

func (n *Concat) ResultType() value.Type { return value.StringType }

func (n *Concat) Equal(other Node) bool {
	o, ok := other.(*Concat)
	if !ok || len(o.Parts) != len(n.Parts) {
		return false
	}
	for i := range n.Parts {
		if !nodesEqual(n.Parts[i], o.Parts[i]) {
			return false
		}
	}
	return true
}

func (n *Concat) String() string {
	parts := make([]string, len(n.Parts))
	for i, part := range n.Parts {
		parts[i] = part.String()
	}
	return "concat(" + strings.Join(parts, ", ") + ")"
}
