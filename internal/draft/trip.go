package draft

import (
	"github.com/99designs/gqlgen/graphql"
)

type Kind string

const (
	OneDay   Kind = "one_day"
	MultiDay Kind = "multi_day"
)

func (k Kind) Valid() bool {
	return k == OneDay || k == MultiDay
}

// Condition is the free-text plus picked-conditions block of a multi-day trip.
type Condition struct {
	Text string
	IDs  []string
}

// Trip is the in-progress form state for a single trip submission.
//
// Image fields are data URIs. An unset Omittable means "keep what is stored",
// which only edit mode allows.
type Trip struct {
	Kind Kind
	// ID is set in edit mode.
	ID string

	Title         string
	Description   string
	DurationHours string
	DurationDays  string
	Price         string
	GroupSize     string
	OfferType     string
	Tags          []string
	Condition     Condition

	Thumbnail     graphql.Omittable[string]
	CardThumbnail graphql.Omittable[string]
	Thumbnails    graphql.Omittable[[]string]

	Selections Selections
	Program    Program
}

func New(kind Kind) *Trip {
	return &Trip{Kind: kind, Selections: NewSelections()}
}

func (t *Trip) IsEdit() bool {
	return t.ID != ""
}

// Reset discards everything but the kind.
func (t *Trip) Reset() {
	*t = Trip{Kind: t.Kind, Selections: NewSelections()}
}
