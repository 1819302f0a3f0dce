package catalog

import (
	"fmt"
	"sort"

	"travel-admin/internal/upstream"
)

// Option is one selectable reference entity as the dashboard pickers consume it.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Cardinality int

const (
	Multi Cardinality = iota
	Single
)

type Category string

const (
	Provinces       Category = "provinces"
	Destinations    Category = "destinations"
	SubDestinations Category = "subDestinations"
	Activities      Category = "activities"
	VisitHighlights Category = "visitHighlights"
	Residences      Category = "residences"
	GalleryImages   Category = "galleryImages"
	Conditions      Category = "conditions"
	SubTypes        Category = "subTypes"
	CommonQuestions Category = "commonQuestions"
	Contents        Category = "contents"
	ImportantInfos  Category = "importantInfos"
	Exclusions      Category = "exclusions"
)

// Definition describes where a category's options come from upstream.
type Definition struct {
	Category     Category
	Connection   string
	DisplayField string
	Cardinality  Cardinality

	query *upstream.Operation
}

func define(cat Category, connection, display string, card Cardinality) Definition {
	return Definition{
		Category:     cat,
		Connection:   connection,
		DisplayField: display,
		Cardinality:  card,
		query: upstream.MustParse(fmt.Sprintf(
			`query %sOptions($first: Int = 100) { %s(first: $first) { edges { node { id %s } } } }`,
			connection, connection, display,
		)),
	}
}

var registry = map[Category]Definition{
	Provinces:       define(Provinces, "provinces", "name", Multi),
	Destinations:    define(Destinations, "destinations", "title", Single),
	SubDestinations: define(SubDestinations, "subDestinations", "title", Multi),
	Activities:      define(Activities, "tripActivities", "title", Multi),
	VisitHighlights: define(VisitHighlights, "visitLocationHighlights", "title", Multi),
	Residences:      define(Residences, "residences", "title", Multi),
	GalleryImages:   define(GalleryImages, "galleryImages", "title", Multi),
	Conditions:      define(Conditions, "tripConditions", "title", Multi),
	SubTypes:        define(SubTypes, "tripSubTypes", "type", Multi),
	CommonQuestions: define(CommonQuestions, "commonQuestions", "question", Multi),
	Contents:        define(Contents, "tripContents", "title", Multi),
	ImportantInfos:  define(ImportantInfos, "tripImportantInfos", "title", Multi),
	Exclusions:      define(Exclusions, "tripExclusions", "title", Multi),
}

func Lookup(cat Category) (Definition, bool) {
	d, ok := registry[cat]
	return d, ok
}

// IsSingle reports whether the category accepts at most one selected id.
func IsSingle(cat Category) bool {
	return registry[cat].Cardinality == Single
}

func Categories() []Category {
	out := make([]Category, 0, len(registry))
	for c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
