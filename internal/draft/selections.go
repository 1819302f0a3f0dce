package draft

import (
	"fmt"

	"travel-admin/internal/catalog"
	"travel-admin/internal/utils"
)

// Selections holds the chosen ids per reference category for one draft.
// Writes replace; nothing is merged or deduplicated.
type Selections struct {
	ids map[catalog.Category][]string
}

func NewSelections() Selections {
	return Selections{ids: make(map[catalog.Category][]string)}
}

func (s *Selections) Set(cat catalog.Category, ids []string) error {
	if catalog.IsSingle(cat) && len(ids) > 1 {
		return fmt.Errorf("%w: %s", ErrSingleSelect, cat)
	}
	if s.ids == nil {
		s.ids = make(map[catalog.Category][]string)
	}
	s.ids[cat] = utils.CopyStrings(ids)
	return nil
}

func (s Selections) Get(cat catalog.Category) []string {
	return utils.CopyStrings(s.ids[cat])
}

func (s *Selections) SetOne(cat catalog.Category, id string) error {
	if id == "" {
		return s.Set(cat, nil)
	}
	return s.Set(cat, []string{id})
}

// One returns the single selected id, or "" when nothing is chosen.
func (s Selections) One(cat catalog.Category) string {
	ids := s.ids[cat]
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func (s Selections) Has(cat catalog.Category) bool {
	return len(s.ids[cat]) > 0
}

func (s *Selections) Clear() {
	s.ids = make(map[catalog.Category][]string)
}

func (s Selections) Clone() Selections {
	out := NewSelections()
	for cat, ids := range s.ids {
		out.ids[cat] = utils.CopyStrings(ids)
	}
	return out
}
