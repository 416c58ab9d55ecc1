package domain

import (
	"html"

	"github.com/google/uuid"
)

// Question is one entry on a tournament's feedback form. Unique per
// (tournament, reference) and (tournament, seq). The answer type decides
// which answer table holds responses; changing it after answers exist
// orphans the old rows, which is left to the caller.
type Question struct {
	ID           uuid.UUID
	TournamentID uuid.UUID
	Seq          int
	Text         string
	Name         string
	Reference    string
	AnswerType   AnswerType
	Required     bool
	MinValue     *float64
	MaxValue     *float64
	Choices      []string
	FromAdj      bool
	FromTeam     bool
}

// ChoicePair is a (value, display) option for a selection input. The display
// label is the value itself.
type ChoicePair struct {
	Value   string
	Display string
}

func (q *Question) ChoicesForField() []ChoicePair {
	pairs := make([]ChoicePair, 0, len(q.Choices))
	for _, c := range q.Choices {
		pairs = append(pairs, ChoicePair{Value: c, Display: c})
	}
	return pairs
}

func (q *Question) ChoicesForNumberScale() []int {
	if q.MinValue == nil || q.MaxValue == nil {
		return nil
	}
	return ConstructNumberScale(*q.MinValue, *q.MaxValue)
}

// ConstructNumberScale builds an evenly spaced sequence of integer options
// from min to max inclusive, in at most ten steps. Returns an empty slice
// when max < min.
func ConstructNumberScale(minValue, maxValue float64) []int {
	lo, hi := int(minValue), int(maxValue)
	step := (hi - lo) / 10
	if step < 1 {
		step = 1
	}
	var options []int
	for v := lo; v <= hi; v += step {
		options = append(options, v)
	}
	return options
}

// SerializedQuestion is the display-ready form of a question. ChoiceOptions
// holds escaped choice strings for select questions, or the integer number
// scale for bounded numeric questions.
type SerializedQuestion struct {
	Text          string        `json:"text"`
	Seq           int           `json:"seq"`
	Name          string        `json:"name"`
	Reference     string        `json:"reference"`
	Type          AnswerType    `json:"type"`
	Required      bool          `json:"required"`
	FromTeam      bool          `json:"from_team"`
	FromAdj       bool          `json:"from_adj"`
	ChoiceOptions []interface{} `json:"choice_options,omitempty"`
}

func (q *Question) Serialize() SerializedQuestion {
	s := SerializedQuestion{
		Text:      html.EscapeString(q.Text),
		Seq:       q.Seq,
		Name:      q.Name,
		Reference: q.Reference,
		Type:      q.AnswerType,
		Required:  q.Required,
		FromTeam:  q.FromTeam,
		FromAdj:   q.FromAdj,
	}
	if len(q.Choices) > 0 {
		for _, c := range q.Choices {
			s.ChoiceOptions = append(s.ChoiceOptions, html.EscapeString(c))
		}
	} else if q.MinValue != nil && q.MaxValue != nil {
		for _, v := range q.ChoicesForNumberScale() {
			s.ChoiceOptions = append(s.ChoiceOptions, v)
		}
	}
	return s
}
