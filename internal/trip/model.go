package trip

import (
	"travel-admin/internal/draft"
	"travel-admin/internal/hydrate"
)

// Summary is the list and mutation-result view of a trip.
type Summary struct {
	ID            string         `json:"id"`
	Kind          draft.Kind     `json:"kind"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Price         hydrate.Scalar `json:"price,omitempty"`
	DurationHours hydrate.Scalar `json:"durationHours,omitempty"`
}

type node struct {
	Typename      string         `json:"__typename"`
	LengthType    string         `json:"lengthType"`
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Price         hydrate.Scalar `json:"price"`
	DurationHours hydrate.Scalar `json:"durationHours"`
}

func (n node) summary(fallback draft.Kind) Summary {
	kind := fallback
	switch {
	case n.Typename == "OneDayTripNode", n.LengthType == "ONE_DAY":
		kind = draft.OneDay
	case n.Typename == "MultiDayTripNode", n.LengthType == "MULTI_DAY":
		kind = draft.MultiDay
	}
	return Summary{
		ID:            n.ID,
		Kind:          kind,
		Title:         n.Title,
		Description:   n.Description,
		Price:         n.Price,
		DurationHours: n.DurationHours,
	}
}

// mutationResult is the payload of create and edit mutations.
type mutationResult struct {
	OneDayTrip   *node `json:"oneDayTrip"`
	MultiDayTrip *node `json:"multiDayTrip"`
}

func (r mutationResult) trip() *node {
	if r.OneDayTrip != nil {
		return r.OneDayTrip
	}
	return r.MultiDayTrip
}

type listResult struct {
	Trips hydrate.Edges[node] `json:"trips"`
}

type getResult struct {
	Trip *hydrate.Record `json:"trip"`
}

type deleteResult struct {
	DeleteTrip *struct {
		TripID string `json:"tripId"`
	} `json:"deleteTrip"`
}

// lengthTypes maps draft kinds to the upstream TripLengthTypeEnum.
var lengthTypes = map[draft.Kind]string{
	draft.OneDay:   "ONE_DAY",
	draft.MultiDay: "MULTI_DAY",
}
