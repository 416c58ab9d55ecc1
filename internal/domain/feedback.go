package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSource              = errors.New("neither the source adjudicator nor the source team was specified")
	ErrBothSources           = errors.New("there was both a source adjudicator and a source team")
	ErrNoAdjudicator         = errors.New("no adjudicator is specified as the target for this feedback")
	ErrAdjudicatorNotOnPanel = errors.New("adjudicator did not see this debate")
)

// Feedback is one completed feedback form about a target adjudicator.
// The source is either a debate adjudicator seat or a debate team slot,
// never both. Versions of the same (adjudicator, source) submission share a
// uniqueness key; at most one version is confirmed at a time. Ignored
// feedback keeps its history but is excluded from score aggregation.
type Feedback struct {
	ID                  uuid.UUID
	AdjudicatorID       uuid.UUID
	Score               float64
	SourceAdjudicatorID *uuid.UUID
	SourceTeamID        *uuid.UUID
	Ignored             bool
	Version             int
	Confirmed           bool
	Timestamp           time.Time
}

// Validate enforces the integrity rules applied before a feedback row is
// written: exactly one source, a target adjudicator, and the target present
// on the debate's panel. The storage layer enforces none of these.
func (f *Feedback) Validate(panel []*DebateAdjudicator) error {
	if f.SourceAdjudicatorID == nil && f.SourceTeamID == nil {
		return ErrNoSource
	}
	if f.SourceAdjudicatorID != nil && f.SourceTeamID != nil {
		return ErrBothSources
	}
	if f.AdjudicatorID == uuid.Nil {
		return ErrNoAdjudicator
	}
	for _, da := range panel {
		if da.AdjudicatorID == f.AdjudicatorID {
			return nil
		}
	}
	return ErrAdjudicatorNotOnPanel
}

// FeedbackContext is the derived view of one feedback, resolved from
// whichever source reference is populated. None of it is stored.
type FeedbackContext struct {
	// Source is the display name of the authoring adjudicator or team.
	Source string
	Debate *Debate
	Round  *Round
	// DebateAdjudicator is the target's seat in the debate, nil when the
	// target held no seat record.
	DebateAdjudicator *DebateAdjudicator
	// Panel is every seat at the debate, used for membership validation.
	Panel []*DebateAdjudicator
}

// FeedbackWeight is the round's configured multiplier, defaulting to 1 when
// no round is resolved.
func (c *FeedbackContext) FeedbackWeight() float64 {
	if c.Round == nil {
		return 1
	}
	return c.Round.FeedbackWeight
}
