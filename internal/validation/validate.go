package validation

import (
	"errors"
	"fmt"
	"strings"

	"travel-admin/internal/catalog"
	"travel-admin/internal/draft"
	"travel-admin/internal/locale"
	"travel-admin/internal/utils"

	"github.com/99designs/gqlgen/graphql"
	"github.com/go-playground/validator/v10"
)

// Validated is a trip that passed Validate. Its zero value is not valid and
// cannot be produced outside this package.
type Validated struct {
	trip  draft.Trip
	valid bool
}

func (v Validated) Trip() draft.Trip {
	return v.trip
}

func (v Validated) Valid() bool {
	return v.valid
}

type Options struct {
	Locale locale.Locale
	Policy Policy
	// SubDestinations maps destination ids to their sub-destination ids.
	// Nil skips the membership rule.
	SubDestinations map[string][]string
}

func (e *Errors) check(field string, value any, tag string) bool {
	err := validate.Var(value, tag)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e.add(field, reasonFor(verrs[0].Tag()))
		return false
	}
	e.add(field, locale.ReasonInvalid)
	return false
}

func (e *Errors) image(field string, img graphql.Omittable[string], edit bool) {
	if !img.IsSet() {
		if !edit {
			e.add(field, locale.ReasonRequired)
		}
		return
	}
	e.check(field, img.Value(), TagImage)
}

// Validate runs every rule over t. It returns either a Validated guard or *Errors.
func Validate(t *draft.Trip, opts Options) (Validated, error) {
	errs := newErrors(opts.Locale)
	if t == nil {
		errs.add("trip", locale.ReasonRequired)
		return Validated{}, errs
	}

	policy := opts.Policy
	if policy.isZero() {
		policy = DefaultPolicy()
	}
	n := normalize(t)
	edit := n.IsEdit()

	errs.check("title", n.Title, TagTitle)
	errs.check("description", n.Description, TagDescription)
	errs.check("price", n.Price, TagPrice)
	errs.check("groupSize", n.GroupSize, TagGroupSize)
	errs.check("offerType", n.OfferType, TagOptLabel)
	for i, tag := range n.Tags {
		errs.check(fmt.Sprintf("tags[%d]", i), tag, TagLabel)
	}

	switch n.Kind {
	case draft.OneDay:
		errs.check("durationHours", n.DurationHours, TagHours)
		errs.image("thumbnail", n.Thumbnail, edit)
	case draft.MultiDay:
		errs.check("durationDays", n.DurationDays, TagDays)
		errs.check("condition.text", n.Condition.Text, TagCondition)
		errs.thumbnails(n.Thumbnails, edit)
	default:
		errs.add("kind", locale.ReasonInvalidChoice)
	}
	errs.image("cardThumbnail", n.CardThumbnail, edit)

	for _, cat := range policy.Required {
		if !selected(n, cat) {
			errs.add(string(cat), locale.ReasonRequired)
		}
	}

	errs.program(n.Kind, n.Program, policy, opts.SubDestinations)

	if err := errs.orNil(); err != nil {
		return Validated{}, err
	}
	return Validated{trip: n, valid: true}, nil
}

func (e *Errors) thumbnails(imgs graphql.Omittable[[]string], edit bool) {
	if !imgs.IsSet() {
		if !edit {
			e.add("thumbnails", locale.ReasonRequired)
		}
		return
	}
	list := imgs.Value()
	if len(list) == 0 {
		e.add("thumbnails", locale.ReasonRequired)
		return
	}
	for i, uri := range list {
		e.check(fmt.Sprintf("thumbnails[%d]", i), uri, TagImage)
	}
}

func (e *Errors) program(kind draft.Kind, p draft.Program, policy Policy, index map[string][]string) {
	steps := p.Steps()
	if len(steps) == 0 {
		if policy.RequireProgram {
			e.add("program", locale.ReasonRequired)
		}
		return
	}

	for i, s := range steps {
		prefix := fmt.Sprintf("program[%d]", i)
		if s.Order != i+1 {
			e.add(prefix+".order", locale.ReasonNotContiguous)
		}
		if s.DestinationID == "" {
			e.add(prefix+".destinationId", locale.ReasonRequired)
		} else if index != nil {
			// Day highlights are picked from the same sub-destinations.
			if !subset(s.SubDestinationIDs, index[s.DestinationID]) {
				e.add(prefix+".subDestinationIds", locale.ReasonForeignSubDest)
			}
			if !subset(s.VisitHighlightIDs, index[s.DestinationID]) {
				e.add(prefix+".visitHighlightIds", locale.ReasonForeignSubDest)
			}
		}

		if kind == draft.MultiDay {
			e.check(prefix+".title", s.Title, TagOptLabel)
			e.check(prefix+".subTitle", s.Subtitle, TagOptLabel)
			e.check(prefix+".description", s.Description, TagOptText)
			e.check(prefix+".residenceName", s.ResidenceName, TagOptLabel)
		}
	}
}

// selected reports a choice in cat either on the trip or on any of its steps,
// since multi-day trips pick activities per day. Day highlights are
// sub-destinations and never count toward the trip-level highlights.
func selected(t draft.Trip, cat catalog.Category) bool {
	if t.Selections.Has(cat) {
		return true
	}
	for _, s := range t.Program.Steps() {
		switch {
		case cat == catalog.Activities && len(s.ActivityIDs) > 0,
			cat == catalog.SubDestinations && len(s.SubDestinationIDs) > 0,
			cat == catalog.Destinations && s.DestinationID != "":
			return true
		}
	}
	return false
}

func subset(ids, allowed []string) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// normalize returns a detached copy with free text trimmed.
func normalize(t *draft.Trip) draft.Trip {
	n := *t
	n.Title = strings.TrimSpace(t.Title)
	n.Description = strings.TrimSpace(t.Description)
	n.DurationHours = strings.TrimSpace(t.DurationHours)
	n.DurationDays = strings.TrimSpace(t.DurationDays)
	n.Price = strings.TrimSpace(t.Price)
	n.GroupSize = strings.TrimSpace(t.GroupSize)
	n.OfferType = strings.TrimSpace(t.OfferType)
	n.Condition = draft.Condition{
		Text: strings.TrimSpace(t.Condition.Text),
		IDs:  utils.CopyStrings(t.Condition.IDs),
	}
	n.Tags = make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		n.Tags = append(n.Tags, strings.TrimSpace(tag))
	}
	if t.Thumbnails.IsSet() {
		n.Thumbnails = graphql.OmittableOf(utils.CopyStrings(t.Thumbnails.Value()))
	}
	n.Selections = t.Selections.Clone()
	n.Program = t.Program.Clone()
	return n
}
