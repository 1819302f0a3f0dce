package payload

import (
	"errors"
	"strconv"

	"travel-admin/internal/catalog"
	"travel-admin/internal/draft"
	"travel-admin/internal/upstream"
	"travel-admin/internal/validation"
)

var ErrNotValidated = errors.New("payload: draft has not been validated")

// Variables is the variables object of one GraphQL request.
type Variables map[string]any

// put sets name when op declares it. Empty values are omitted unless the
// operation declares the variable non-null, in which case the empty form is sent.
func (v Variables) put(op *upstream.Operation, name string, value any, empty bool) {
	if !op.Declares(name) {
		return
	}
	if empty && !op.Required(name) {
		return
	}
	v[name] = value
}

func (v Variables) putString(op *upstream.Operation, name, value string) {
	v.put(op, name, value, value == "")
}

func (v Variables) putIDs(op *upstream.Operation, name string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	v.put(op, name, ids, len(ids) == 0)
}

func (v Variables) putInt(op *upstream.Operation, name, value string) {
	n, err := strconv.Atoi(value)
	v.put(op, name, n, err != nil)
}

var selectionVars = []struct {
	name     string
	category catalog.Category
}{
	{"provinceIds", catalog.Provinces},
	{"commonQuestionIds", catalog.CommonQuestions},
	{"visitLocationHighlightIds", catalog.VisitHighlights},
	{"contentIds", catalog.Contents},
	{"activityIds", catalog.Activities},
	{"exclusionIds", catalog.Exclusions},
	{"importantInfoIds", catalog.ImportantInfos},
	{"galleryImageIds", catalog.GalleryImages},
	{"subTypeIds", catalog.SubTypes},
	{"placesOfResidenceIds", catalog.Residences},
}

// Assemble builds the mutation variables for a validated trip.
func Assemble(v validation.Validated, op *upstream.Operation) (Variables, error) {
	if !v.Valid() {
		return nil, ErrNotValidated
	}
	t := v.Trip()
	vars := Variables{}

	if t.IsEdit() {
		vars.put(op, "id", t.ID, false)
	}
	vars.putString(op, "title", t.Title)
	vars.putString(op, "tripDescription", t.Description)
	vars.putString(op, "price", t.Price)
	vars.putString(op, "groupSize", t.GroupSize)
	vars.putString(op, "offerType", t.OfferType)
	vars.putIDs(op, "tags", t.Tags)

	for _, sv := range selectionVars {
		vars.putIDs(op, sv.name, t.Selections.Get(sv.category))
	}

	if t.CardThumbnail.IsSet() {
		vars.put(op, "cardThumbnailBase64", t.CardThumbnail.Value(), false)
	}

	switch t.Kind {
	case draft.OneDay:
		vars.putInt(op, "durationHours", t.DurationHours)
		if t.Thumbnail.IsSet() {
			vars.put(op, "thumbnailBase64", t.Thumbnail.Value(), false)
		}
		vars.put(op, "program", oneDayProgram(t.Program), t.Program.Len() == 0)
	case draft.MultiDay:
		vars.putInt(op, "durationDays", t.DurationDays)
		if t.Thumbnails.IsSet() {
			vars.putIDs(op, "thumbnailsBase64", t.Thumbnails.Value())
		}
		condIDs := t.Condition.IDs
		if condIDs == nil {
			condIDs = []string{}
		}
		vars.put(op, "condition", map[string]any{
			"conditionText": t.Condition.Text,
			"conditionIds":  condIDs,
		}, t.Condition.Text == "" && len(condIDs) == 0)
		vars.put(op, "program", multiDayProgram(t.Program), t.Program.Len() == 0)
	}

	if err := op.CheckVariables(vars); err != nil {
		return nil, err
	}
	return vars, nil
}

func ids(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func oneDayProgram(p draft.Program) []map[string]any {
	steps := p.Steps()
	out := make([]map[string]any, 0, len(steps))
	for _, s := range steps {
		out = append(out, map[string]any{
			"order":             s.Order,
			"destinationId":     s.DestinationID,
			"subDestinationIds": ids(s.SubDestinationIDs),
		})
	}
	return out
}

func multiDayProgram(p draft.Program) []map[string]any {
	steps := p.Steps()
	out := make([]map[string]any, 0, len(steps))
	for _, s := range steps {
		day := map[string]any{
			"dayNumber":         s.Order,
			"destinationId":     s.DestinationID,
			"subDestinationIds": ids(s.SubDestinationIDs),
			"visitHighlightIds": ids(s.VisitHighlightIDs),
			"activityIds":       ids(s.ActivityIDs),
		}
		// Optional day text is left out rather than sent blank.
		for key, val := range map[string]string{
			"title":         s.Title,
			"subTitle":      s.Subtitle,
			"description":   s.Description,
			"residenceName": s.ResidenceName,
		} {
			if val != "" {
				day[key] = val
			}
		}
		out = append(out, day)
	}
	return out
}

// AssembleFields builds variables for a simple resource mutation. id is set for edits and deletes.
func AssembleFields(f validation.Fields, op *upstream.Operation, id string) (Variables, error) {
	if !f.Valid() {
		return nil, ErrNotValidated
	}
	vars := Variables{}
	if id != "" {
		vars.put(op, "id", id, false)
	}

	values := f.Values()
	for _, name := range op.Variables() {
		if name == "id" {
			continue
		}
		switch val := values[name].(type) {
		case []string:
			vars.putIDs(op, name, val)
		case string:
			vars.putString(op, name, val)
		case nil:
			if op.Required(name) && isList(op.TypeOf(name)) {
				vars[name] = []string{}
			}
		}
	}

	if err := op.CheckVariables(vars); err != nil {
		return nil, err
	}
	return vars, nil
}

func isList(gqlType string) bool {
	return len(gqlType) > 0 && gqlType[0] == '['
}
