package hydrate

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Scalar accepts either a JSON string or number and keeps its text.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar(strings.TrimSpace(str))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = Scalar(n.String())
	return nil
}

// Ref is a nested relation as the upstream returns it.
type Ref struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Question string `json:"question,omitempty"`
	Type     string `json:"type,omitempty"`
}

func (r Ref) field(name string) string {
	switch name {
	case "name":
		return r.Name
	case "title":
		return r.Title
	case "question":
		return r.Question
	case "type":
		return r.Type
	}
	return ""
}

type Edges[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

func (e Edges[T]) Nodes() []T {
	out := make([]T, 0, len(e.Edges))
	for _, edge := range e.Edges {
		out = append(out, edge.Node)
	}
	return out
}

type ImageRef struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

// ProgramSection is one stop of a one-day trip.
type ProgramSection struct {
	Order           int        `json:"order"`
	Destination     *Ref       `json:"destination"`
	SubDestinations Edges[Ref] `json:"subDestinations"`
}

// DayProgram is one day of a multi-day trip.
type DayProgram struct {
	DayNumber       int        `json:"dayNumber"`
	Title           string     `json:"title"`
	SubTitle        string     `json:"subTitle"`
	Description     string     `json:"description"`
	ResidenceName   string     `json:"residenceName"`
	Destination     *Ref       `json:"destination"`
	Activities      Edges[Ref] `json:"activities"`
	SubDestinations []Ref      `json:"subDestinations"`
	VisitHighlights []Ref      `json:"visitHighlights"`
}

// Record is a persisted trip of either kind.
type Record struct {
	Typename   string `json:"__typename"`
	LengthType string `json:"lengthType"`

	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	DurationHours Scalar   `json:"durationHours"`
	DurationDays  Scalar   `json:"durationDays"`
	Price         Scalar   `json:"price"`
	GroupSize     Scalar   `json:"groupSize"`
	OfferType     string   `json:"offerType"`
	ConditionText string   `json:"conditionText"`
	Tags          []string `json:"tags"`

	Thumbnail     string     `json:"thumbnail"`
	CardThumbnail string     `json:"cardThumbnail"`
	Thumbnails    []ImageRef `json:"thumbnails"`

	Provinces               []Ref `json:"provinces"`
	CommonQuestions         []Ref `json:"commonQuestions"`
	VisitLocationHighlights []Ref `json:"visitLocationHighlights"`
	Conditions              []Ref `json:"conditions"`
	Content                 []Ref `json:"content"`
	PlacesOfResidence       []Ref `json:"placesOfResidence"`
	GalleryImages           []Ref `json:"galleryImages"`
	SubTypes                []Ref `json:"subTypes"`
	Activities              []Ref `json:"activities"`
	Exclusions              []Ref `json:"exclusions"`
	ImportantInfos          []Ref `json:"importantInfos"`

	ProgramSections []ProgramSection `json:"programSections"`
	DayPrograms     []DayProgram     `json:"dayPrograms"`
}
