package hydrate

import (
	"context"
	"errors"
	"fmt"

	"travel-admin/internal/catalog"
	"travel-admin/internal/draft"
	"travel-admin/internal/logger"
	"travel-admin/internal/media"

	"github.com/99designs/gqlgen/graphql"
	"go.uber.org/zap"
)

var ErrUnknownKind = errors.New("hydrate: record is neither a one-day nor a multi-day trip")

// Reencoder turns a stored image URL back into an inline data URI.
type Reencoder interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Previews struct {
	Thumbnail     string   `json:"thumbnail,omitempty"`
	CardThumbnail string   `json:"cardThumbnail,omitempty"`
	Thumbnails    []string `json:"thumbnails,omitempty"`
}

type Result struct {
	Trip     *draft.Trip
	Options  map[catalog.Category][]catalog.Option
	Previews Previews
}

type Hydrator struct {
	mediaBase string
	reencoder Reencoder
}

// New returns a hydrator. A nil reencoder leaves stored images unset, meaning unchanged.
func New(mediaBase string, reencoder Reencoder) *Hydrator {
	return &Hydrator{mediaBase: mediaBase, reencoder: reencoder}
}

func kindOf(rec Record) (draft.Kind, bool) {
	switch {
	case rec.Typename == "OneDayTripNode", rec.LengthType == "ONE_DAY":
		return draft.OneDay, true
	case rec.Typename == "MultiDayTripNode", rec.LengthType == "MULTI_DAY":
		return draft.MultiDay, true
	}
	return "", false
}

// options accumulates the per-category option lists, first label wins per id.
type options struct {
	lists map[catalog.Category][]catalog.Option
	seen  map[catalog.Category]map[string]bool
}

func newOptions() *options {
	return &options{
		lists: make(map[catalog.Category][]catalog.Option),
		seen:  make(map[catalog.Category]map[string]bool),
	}
}

func (o *options) add(cat catalog.Category, refs ...Ref) []string {
	def, _ := catalog.Lookup(cat)
	if o.seen[cat] == nil {
		o.seen[cat] = make(map[string]bool)
	}
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.ID == "" {
			continue
		}
		ids = append(ids, r.ID)
		if o.seen[cat][r.ID] {
			continue
		}
		o.seen[cat][r.ID] = true
		o.lists[cat] = append(o.lists[cat], catalog.Option{Value: r.ID, Label: r.field(def.DisplayField)})
	}
	return ids
}

func (o *options) result() map[catalog.Category][]catalog.Option {
	for _, cat := range catalog.Categories() {
		if o.lists[cat] == nil {
			o.lists[cat] = []catalog.Option{}
		}
	}
	return o.lists
}

// Trip rebuilds editable draft state and labelled options from a persisted record.
func (h *Hydrator) Trip(ctx context.Context, rec Record) (Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Hydrate"),
		zap.String("trip_id", rec.ID),
	)

	kind, ok := kindOf(rec)
	if !ok {
		log.Warn("unknown trip kind", zap.String("typename", rec.Typename))
		return Result{}, ErrUnknownKind
	}

	t := draft.New(kind)
	t.ID = rec.ID
	t.Title = rec.Title
	t.Description = rec.Description
	t.Price = string(rec.Price)
	t.GroupSize = string(rec.GroupSize)
	t.OfferType = rec.OfferType
	t.Tags = append([]string{}, rec.Tags...)

	opts := newOptions()
	selections := []struct {
		cat  catalog.Category
		refs []Ref
	}{
		{catalog.Provinces, rec.Provinces},
		{catalog.CommonQuestions, rec.CommonQuestions},
		{catalog.VisitHighlights, rec.VisitLocationHighlights},
		{catalog.Contents, rec.Content},
		{catalog.Residences, rec.PlacesOfResidence},
		{catalog.GalleryImages, rec.GalleryImages},
		{catalog.SubTypes, rec.SubTypes},
		{catalog.Activities, rec.Activities},
		{catalog.Exclusions, rec.Exclusions},
		{catalog.ImportantInfos, rec.ImportantInfos},
	}
	for _, s := range selections {
		// A nil slice is a relation the query did not fetch.
		if s.refs != nil {
			if err := t.Selections.Set(s.cat, opts.add(s.cat, s.refs...)); err != nil {
				return Result{}, err
			}
		}
	}

	var steps []draft.Step
	switch kind {
	case draft.OneDay:
		t.DurationHours = string(rec.DurationHours)
		for _, sec := range rec.ProgramSections {
			steps = append(steps, draft.Step{
				Order:             sec.Order,
				DestinationID:     destination(opts, sec.Destination),
				SubDestinationIDs: opts.add(catalog.SubDestinations, sec.SubDestinations.Nodes()...),
			})
		}
	case draft.MultiDay:
		t.DurationDays = string(rec.DurationDays)
		t.Condition = draft.Condition{
			Text: rec.ConditionText,
			IDs:  opts.add(catalog.Conditions, rec.Conditions...),
		}
		for i, day := range rec.DayPrograms {
			order := day.DayNumber
			if order == 0 {
				order = i + 1
			}
			steps = append(steps, draft.Step{
				Order:             order,
				DestinationID:     destination(opts, day.Destination),
				SubDestinationIDs: opts.add(catalog.SubDestinations, day.SubDestinations...),
				VisitHighlightIDs: opts.add(catalog.SubDestinations, day.VisitHighlights...),
				ActivityIDs:       opts.add(catalog.Activities, day.Activities.Nodes()...),
				ResidenceName:     day.ResidenceName,
				Title:             day.Title,
				Subtitle:          day.SubTitle,
				Description:       day.Description,
			})
		}
	}
	t.Program = draft.ProgramFrom(steps)

	res := Result{Trip: t, Options: opts.result(), Previews: h.previews(rec)}
	if h.reencoder != nil {
		if err := h.reencode(ctx, t, res.Previews); err != nil {
			log.Error("failed to re-encode images", zap.Error(err))
			return Result{}, err
		}
	}

	log.Debug("success hydrate trip", zap.Int("steps", t.Program.Len()))
	return res, nil
}

func destination(opts *options, ref *Ref) string {
	if ref == nil {
		return ""
	}
	ids := opts.add(catalog.Destinations, *ref)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func (h *Hydrator) previews(rec Record) Previews {
	p := Previews{
		Thumbnail:     media.ResolveURL(h.mediaBase, rec.Thumbnail),
		CardThumbnail: media.ResolveURL(h.mediaBase, rec.CardThumbnail),
	}
	for _, img := range rec.Thumbnails {
		if img.Image != "" {
			p.Thumbnails = append(p.Thumbnails, media.ResolveURL(h.mediaBase, img.Image))
		}
	}
	return p
}

func (h *Hydrator) reencode(ctx context.Context, t *draft.Trip, p Previews) error {
	fetch := func(url string) (string, error) {
		uri, err := h.reencoder.Fetch(ctx, url)
		if err != nil {
			return "", fmt.Errorf("re-encode %s: %w", url, err)
		}
		return uri, nil
	}

	if p.Thumbnail != "" && t.Kind == draft.OneDay {
		uri, err := fetch(p.Thumbnail)
		if err != nil {
			return err
		}
		t.Thumbnail = graphql.OmittableOf(uri)
	}
	if p.CardThumbnail != "" {
		uri, err := fetch(p.CardThumbnail)
		if err != nil {
			return err
		}
		t.CardThumbnail = graphql.OmittableOf(uri)
	}
	if len(p.Thumbnails) > 0 && t.Kind == draft.MultiDay {
		uris := make([]string, 0, len(p.Thumbnails))
		for _, url := range p.Thumbnails {
			uri, err := fetch(url)
			if err != nil {
				return err
			}
			uris = append(uris, uri)
		}
		t.Thumbnails = graphql.OmittableOf(uris)
	}
	return nil
}
