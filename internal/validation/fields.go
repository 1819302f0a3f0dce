package validation

import (
	"fmt"
	"strings"
	"time"

	"travel-admin/internal/catalog"
	"travel-admin/internal/locale"
)

// Rule declares how one field of a simple resource is checked.
type Rule struct {
	Field string
	Tag   string
	// Each, when set, marks the field as a list and validates every element.
	Each string
	// NotBefore names a date field this one must not precede.
	NotBefore string
}

func (r Rule) list() bool {
	return r.Each != ""
}

func (r Rule) required() bool {
	return strings.HasPrefix(r.Tag, "required")
}

// Optional relaxes a required rule, used for fields left unchanged on edit.
func (r Rule) Optional() Rule {
	if rest, ok := strings.CutPrefix(r.Tag, "required"); ok {
		r.Tag = "omitempty" + rest
	}
	return r
}

// Fields is a resource payload that passed ValidateFields.
type Fields struct {
	values map[string]any
	valid  bool
}

func (f Fields) Values() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f Fields) Valid() bool {
	return f.valid
}

// ValidateFields checks values against rules. Keys without a rule are dropped.
func ValidateFields(rules []Rule, values map[string]any, l locale.Locale) (Fields, error) {
	errs := newErrors(l)
	out := make(map[string]any, len(rules))

	for _, r := range rules {
		raw, present := values[r.Field]
		if r.list() {
			list := toStrings(raw)
			if len(list) == 0 {
				if r.required() {
					errs.add(r.Field, locale.ReasonRequired)
				} else if present && raw != nil {
					out[r.Field] = list
				}
				continue
			}
			for i, item := range list {
				errs.check(fmt.Sprintf("%s[%d]", r.Field, i), item, r.Each)
			}
			out[r.Field] = list
			continue
		}

		s := strings.TrimSpace(catalog.Stringify(raw))
		if errs.check(r.Field, s, r.Tag) && s != "" {
			out[r.Field] = s
		}
	}

	for _, r := range rules {
		if r.NotBefore == "" {
			continue
		}
		if dateBefore(out[r.Field], out[r.NotBefore]) {
			errs.add(r.Field, locale.ReasonDateOrder)
		}
	}

	if err := errs.orNil(); err != nil {
		return Fields{}, err
	}
	return Fields{values: out, valid: true}, nil
}

func dateBefore(a, b any) bool {
	as, _ := a.(string)
	bs, _ := b.(string)
	at, err1 := time.Parse(time.DateOnly, as)
	bt, err2 := time.Parse(time.DateOnly, bs)
	return err1 == nil && err2 == nil && at.Before(bt)
}

func toStrings(raw any) []string {
	switch v := raw.(type) {
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			out = append(out, strings.TrimSpace(s))
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, strings.TrimSpace(catalog.Stringify(item)))
		}
		return out
	}
	return nil
}
