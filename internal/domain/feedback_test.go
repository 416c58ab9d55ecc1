package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"feedback_service/internal/domain"
)

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func TestFeedbackValidate(t *testing.T) {
	target := uuid.New()
	panel := []*domain.DebateAdjudicator{
		{ID: uuid.New(), AdjudicatorID: target, Type: domain.DebateAdjudicatorChair},
		{ID: uuid.New(), AdjudicatorID: uuid.New(), Type: domain.DebateAdjudicatorPanellist},
	}

	t.Run("valid team source", func(t *testing.T) {
		fb := &domain.Feedback{
			AdjudicatorID: target,
			SourceTeamID:  uuidPtr(uuid.New()),
		}
		assert.NoError(t, fb.Validate(panel))
	})

	t.Run("valid adjudicator source", func(t *testing.T) {
		fb := &domain.Feedback{
			AdjudicatorID:       target,
			SourceAdjudicatorID: uuidPtr(uuid.New()),
		}
		assert.NoError(t, fb.Validate(panel))
	})

	t.Run("no source", func(t *testing.T) {
		fb := &domain.Feedback{AdjudicatorID: target}
		assert.ErrorIs(t, fb.Validate(panel), domain.ErrNoSource)
	})

	t.Run("both sources", func(t *testing.T) {
		fb := &domain.Feedback{
			AdjudicatorID:       target,
			SourceAdjudicatorID: uuidPtr(uuid.New()),
			SourceTeamID:        uuidPtr(uuid.New()),
		}
		assert.ErrorIs(t, fb.Validate(panel), domain.ErrBothSources)
	})

	t.Run("missing target adjudicator", func(t *testing.T) {
		fb := &domain.Feedback{SourceTeamID: uuidPtr(uuid.New())}
		assert.ErrorIs(t, fb.Validate(panel), domain.ErrNoAdjudicator)
	})

	t.Run("target not on panel", func(t *testing.T) {
		fb := &domain.Feedback{
			AdjudicatorID: uuid.New(),
			SourceTeamID:  uuidPtr(uuid.New()),
		}
		assert.ErrorIs(t, fb.Validate(panel), domain.ErrAdjudicatorNotOnPanel)
	})

	t.Run("empty panel rejects everyone", func(t *testing.T) {
		fb := &domain.Feedback{
			AdjudicatorID: target,
			SourceTeamID:  uuidPtr(uuid.New()),
		}
		assert.ErrorIs(t, fb.Validate(nil), domain.ErrAdjudicatorNotOnPanel)
	})
}

func TestFeedbackContextWeight(t *testing.T) {
	t.Run("defaults to one without a round", func(t *testing.T) {
		c := &domain.FeedbackContext{}
		assert.Equal(t, 1.0, c.FeedbackWeight())
	})

	t.Run("uses the round's configured weight", func(t *testing.T) {
		c := &domain.FeedbackContext{Round: &domain.Round{FeedbackWeight: 0.7}}
		assert.Equal(t, 0.7, c.FeedbackWeight())
	})
}
