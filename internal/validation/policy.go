package validation

import (
	"fmt"

	"travel-admin/internal/catalog"
)

// Policy is the one required-selection rule set shared by both trip kinds.
type Policy struct {
	Required       []catalog.Category
	RequireProgram bool
}

func DefaultPolicy() Policy {
	return Policy{
		Required:       []catalog.Category{catalog.Provinces, catalog.CommonQuestions, catalog.Activities},
		RequireProgram: true,
	}
}

// NewPolicy builds a policy from category names; an empty list gives the default.
func NewPolicy(names []string) (Policy, error) {
	if len(names) == 0 {
		return DefaultPolicy(), nil
	}
	p := Policy{RequireProgram: true}
	for _, n := range names {
		cat := catalog.Category(n)
		if _, ok := catalog.Lookup(cat); !ok {
			return Policy{}, fmt.Errorf("%w: %s", ErrUnknownCategory, n)
		}
		p.Required = append(p.Required, cat)
	}
	return p, nil
}

func (p Policy) isZero() bool {
	return p.Required == nil && !p.RequireProgram
}
