package resource

import (
	"sort"

	"travel-admin/internal/upstream"
	"travel-admin/internal/validation"
)

type Kind string

const (
	Destinations            Kind = "destinations"
	SubDestinations         Kind = "subDestinations"
	Residences              Kind = "residences"
	GalleryImages           Kind = "galleryImages"
	TripConditions          Kind = "tripConditions"
	TripActivities          Kind = "tripActivities"
	TripExclusions          Kind = "tripExclusions"
	TripImportantInfos      Kind = "tripImportantInfos"
	CommonQuestions         Kind = "commonQuestions"
	VisitLocationHighlights Kind = "visitLocationHighlights"
	TripContents            Kind = "tripContents"
	UnavailabilityDates     Kind = "unavailabilityDates"
	TripPackages            Kind = "tripPackages"
	Provinces               Kind = "provinces"
	TripSubTypes            Kind = "tripSubTypes"
)

// Record is one resource as the upstream returns it.
type Record map[string]any

// Definition is a resource kind: its field rules and operation documents.
// Kinds without mutations are list-only.
type Definition struct {
	Kind   Kind
	Rules  []validation.Rule
	list   *upstream.Operation
	create *upstream.Operation
	edit   *upstream.Operation
	remove *upstream.Operation
}

func (d Definition) ReadOnly() bool {
	return d.create == nil
}

// editRules relaxes every rule the edit document declares nullable, so
// omitted fields stay unchanged.
func (d Definition) editRules() []validation.Rule {
	out := make([]validation.Rule, 0, len(d.Rules))
	for _, r := range d.Rules {
		if !d.edit.Declares(r.Field) {
			continue
		}
		if !d.edit.Required(r.Field) {
			r = r.Optional()
		}
		out = append(out, r)
	}
	return out
}

func Lookup(kind Kind) (Definition, bool) {
	d, ok := registry[kind]
	return d, ok
}

func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
