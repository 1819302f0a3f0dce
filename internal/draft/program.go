package draft

import (
	"fmt"
	"sort"

	"travel-admin/internal/utils"
)

// Step is one itinerary entry: an ordered stop for one-day trips, a day for multi-day trips.
type Step struct {
	Order             int
	DestinationID     string
	SubDestinationIDs []string
	VisitHighlightIDs []string
	ActivityIDs       []string
	ResidenceName     string
	Title             string
	Subtitle          string
	Description       string
}

func (s Step) clone() Step {
	s.SubDestinationIDs = utils.CopyStrings(s.SubDestinationIDs)
	s.VisitHighlightIDs = utils.CopyStrings(s.VisitHighlightIDs)
	s.ActivityIDs = utils.CopyStrings(s.ActivityIDs)
	return s
}

// Program is an ordered list of steps whose Order values are always 1..N.
type Program struct {
	steps []Step
}

// ProgramFrom orders steps by their stored Order and renumbers them 1..N.
func ProgramFrom(steps []Step) Program {
	sorted := make([]Step, len(steps))
	for i, s := range steps {
		sorted[i] = s.clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	p := Program{steps: sorted}
	p.renumber()
	return p
}

func (p *Program) renumber() {
	for i := range p.steps {
		p.steps[i].Order = i + 1
	}
}

func (p *Program) AddStep() Step {
	s := Step{Order: len(p.steps) + 1}
	p.steps = append(p.steps, s)
	return s
}

// Update applies fn to the step at index. Order cannot be changed through fn.
func (p *Program) Update(index int, fn func(*Step)) error {
	if index < 0 || index >= len(p.steps) {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, index, len(p.steps))
	}
	fn(&p.steps[index])
	p.steps[index].Order = index + 1
	return nil
}

func (p *Program) SetDestination(index int, id string) error {
	return p.Update(index, func(s *Step) { s.DestinationID = id })
}

func (p *Program) SetSubDestinations(index int, ids []string) error {
	return p.Update(index, func(s *Step) { s.SubDestinationIDs = utils.CopyStrings(ids) })
}

func (p *Program) SetActivities(index int, ids []string) error {
	return p.Update(index, func(s *Step) { s.ActivityIDs = utils.CopyStrings(ids) })
}

func (p *Program) SetVisitHighlights(index int, ids []string) error {
	return p.Update(index, func(s *Step) { s.VisitHighlightIDs = utils.CopyStrings(ids) })
}

func (p *Program) SetResidence(index int, name string) error {
	return p.Update(index, func(s *Step) { s.ResidenceName = name })
}

func (p *Program) SetText(index int, title, subtitle, description string) error {
	return p.Update(index, func(s *Step) {
		s.Title = title
		s.Subtitle = subtitle
		s.Description = description
	})
}

// Remove deletes the step at index and renumbers the rest, keeping relative order.
func (p *Program) Remove(index int) error {
	if index < 0 || index >= len(p.steps) {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, index, len(p.steps))
	}
	p.steps = append(p.steps[:index], p.steps[index+1:]...)
	p.renumber()
	return nil
}

// EnsureOne seeds a single empty step when the program is empty.
func (p *Program) EnsureOne() {
	if len(p.steps) == 0 {
		p.AddStep()
	}
}

func (p Program) Len() int {
	return len(p.steps)
}

func (p Program) Steps() []Step {
	out := make([]Step, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.clone()
	}
	return out
}

func (p Program) Clone() Program {
	return Program{steps: p.Steps()}
}
