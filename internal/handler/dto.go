package handler

import (
	"fmt"
	"time"

	"travel-admin/internal/audit"
	"travel-admin/internal/catalog"
	"travel-admin/internal/draft"
	"travel-admin/internal/hydrate"

	"github.com/99designs/gqlgen/graphql"
)

type StepRequest struct {
	Order             int      `json:"order,omitempty"`
	DestinationID     string   `json:"destinationId"`
	SubDestinationIDs []string `json:"subDestinationIds"`
	VisitHighlightIDs []string `json:"visitHighlightIds,omitempty"`
	ActivityIDs       []string `json:"activityIds,omitempty"`
	ResidenceName     string   `json:"residenceName,omitempty"`
	Title             string   `json:"title,omitempty"`
	SubTitle          string   `json:"subTitle,omitempty"`
	Description       string   `json:"description,omitempty"`
}

type ConditionRequest struct {
	Text string   `json:"text"`
	IDs  []string `json:"ids"`
}

// TripRequest is the wire form of a draft. Image fields left null mean unchanged.
type TripRequest struct {
	Kind          draft.Kind                    `json:"kind,omitempty"`
	ID            string                        `json:"id,omitempty"`
	Title         string                        `json:"title"`
	Description   string                        `json:"description"`
	DurationHours hydrate.Scalar                `json:"durationHours,omitempty"`
	DurationDays  hydrate.Scalar                `json:"durationDays,omitempty"`
	Price         hydrate.Scalar                `json:"price"`
	GroupSize     hydrate.Scalar                `json:"groupSize,omitempty"`
	OfferType     string                        `json:"offerType,omitempty"`
	Tags          []string                      `json:"tags"`
	Condition     ConditionRequest              `json:"condition"`
	Thumbnail     *string                       `json:"thumbnail,omitempty"`
	CardThumbnail *string                       `json:"cardThumbnail,omitempty"`
	Thumbnails    *[]string                     `json:"thumbnails,omitempty"`
	Selections    map[catalog.Category][]string `json:"selections"`
	Program       []StepRequest                 `json:"program"`
}

func (req TripRequest) toDraft(kind draft.Kind) (*draft.Trip, error) {
	t := draft.New(kind)
	t.ID = req.ID
	t.Title = req.Title
	t.Description = req.Description
	t.DurationHours = string(req.DurationHours)
	t.DurationDays = string(req.DurationDays)
	t.Price = string(req.Price)
	t.GroupSize = string(req.GroupSize)
	t.OfferType = req.OfferType
	t.Tags = req.Tags
	t.Condition = draft.Condition{Text: req.Condition.Text, IDs: req.Condition.IDs}

	if req.Thumbnail != nil {
		t.Thumbnail = graphql.OmittableOf(*req.Thumbnail)
	}
	if req.CardThumbnail != nil {
		t.CardThumbnail = graphql.OmittableOf(*req.CardThumbnail)
	}
	if req.Thumbnails != nil {
		t.Thumbnails = graphql.OmittableOf(*req.Thumbnails)
	}

	for cat, ids := range req.Selections {
		if _, ok := catalog.Lookup(cat); !ok {
			return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownCategory, cat)
		}
		if err := t.Selections.Set(cat, ids); err != nil {
			return nil, err
		}
	}

	steps := make([]draft.Step, 0, len(req.Program))
	for _, s := range req.Program {
		steps = append(steps, draft.Step{
			Order:             s.Order,
			DestinationID:     s.DestinationID,
			SubDestinationIDs: s.SubDestinationIDs,
			VisitHighlightIDs: s.VisitHighlightIDs,
			ActivityIDs:       s.ActivityIDs,
			ResidenceName:     s.ResidenceName,
			Title:             s.Title,
			Subtitle:          s.SubTitle,
			Description:       s.Description,
		})
	}
	t.Program = draft.ProgramFrom(steps)
	return t, nil
}

// fromDraft renders a draft back to its wire form; unset images stay null.
func fromDraft(t *draft.Trip) TripRequest {
	req := TripRequest{
		Kind:          t.Kind,
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DurationHours: hydrate.Scalar(t.DurationHours),
		DurationDays:  hydrate.Scalar(t.DurationDays),
		Price:         hydrate.Scalar(t.Price),
		GroupSize:     hydrate.Scalar(t.GroupSize),
		OfferType:     t.OfferType,
		Tags:          t.Tags,
		Condition:     ConditionRequest{Text: t.Condition.Text, IDs: t.Condition.IDs},
		Selections:    map[catalog.Category][]string{},
	}
	if t.Thumbnail.IsSet() {
		v := t.Thumbnail.Value()
		req.Thumbnail = &v
	}
	if t.CardThumbnail.IsSet() {
		v := t.CardThumbnail.Value()
		req.CardThumbnail = &v
	}
	if t.Thumbnails.IsSet() {
		v := t.Thumbnails.Value()
		req.Thumbnails = &v
	}
	for _, cat := range catalog.Categories() {
		if ids := t.Selections.Get(cat); len(ids) > 0 {
			req.Selections[cat] = ids
		}
	}
	for _, s := range t.Program.Steps() {
		req.Program = append(req.Program, StepRequest{
			Order:             s.Order,
			DestinationID:     s.DestinationID,
			SubDestinationIDs: s.SubDestinationIDs,
			VisitHighlightIDs: s.VisitHighlightIDs,
			ActivityIDs:       s.ActivityIDs,
			ResidenceName:     s.ResidenceName,
			Title:             s.Title,
			SubTitle:          s.Subtitle,
			Description:       s.Description,
		})
	}
	return req
}

type DraftResponse struct {
	Trip     TripRequest                           `json:"trip"`
	Options  map[catalog.Category][]catalog.Option `json:"options"`
	Previews hydrate.Previews                      `json:"previews"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
	Locale    string    `json:"locale"`
	Direction string    `json:"direction"`
}

type LocaleRequest struct {
	Locale string `json:"locale"`
}

type OptionsResponse struct {
	Category catalog.Category `json:"category"`
	Single   bool             `json:"single"`
	Options  []catalog.Option `json:"options"`
}

type AuditResponse struct {
	Entries []audit.Entry `json:"entries"`
	Total   int64         `json:"total"`
}
