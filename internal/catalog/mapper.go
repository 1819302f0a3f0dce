package catalog

import (
	"fmt"
	"strconv"
)

// Connection is the relay shape every reference list arrives in.
type Connection struct {
	Edges []struct {
		Node map[string]any `json:"node"`
	} `json:"edges"`
}

func (c Connection) Nodes() []map[string]any {
	out := make([]map[string]any, 0, len(c.Edges))
	for _, e := range c.Edges {
		if e.Node != nil {
			out = append(out, e.Node)
		}
	}
	return out
}

// ToOptions turns {id, <displayField>} records into options, keeping source order.
// A nil or empty source yields an empty list.
func ToOptions(nodes []map[string]any, displayField string) []Option {
	out := make([]Option, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Option{
			Value: Stringify(n["id"]),
			Label: Stringify(n[displayField]),
		})
	}
	return out
}

// Stringify renders a decoded JSON scalar; nil and composite values become "".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case fmt.Stringer:
		return t.String()
	}
	return ""
}

// Values reduces options to their ids, preserving order.
func Values(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}
