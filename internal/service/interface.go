package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"feedback_service/internal/domain"
)

// Repository interfaces consumed by the services. The concrete
// implementations live in internal/repository; tests substitute mocks.

type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	GetByReference(ctx context.Context, tournamentID uuid.UUID, reference string) (*domain.Question, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*domain.Question, error)
}

type AnswerRepository interface {
	Save(ctx context.Context, questionID, feedbackID uuid.UUID, v domain.AnswerValue) error
	ListByFeedback(ctx context.Context, feedbackID uuid.UUID) ([]domain.QuestionAnswer, error)
	ListByQuestion(ctx context.Context, q *domain.Question) ([]domain.Answer, error)
}

type FeedbackRepository interface {
	Submit(ctx context.Context, fb *domain.Feedback, answers []domain.QuestionAnswer, dropAdjudicatorFromKey bool) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	ListByTarget(ctx context.Context, adjudicatorID uuid.UUID, confirmedOnly bool) ([]*domain.Feedback, error)
	SetIgnored(ctx context.Context, id uuid.UUID, ignored bool) error
	SetConfirmed(ctx context.Context, id uuid.UUID, confirmed bool) error
}

type ScoreHistoryRepository interface {
	Append(ctx context.Context, h *domain.BaseScoreHistory) error
	ListByAdjudicator(ctx context.Context, adjudicatorID uuid.UUID) ([]*domain.BaseScoreHistory, error)
}

type TournamentRepository interface {
	GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error)
	GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)
	GetAdjudicator(ctx context.Context, id uuid.UUID) (*domain.Adjudicator, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error)
	GetDebateAdjudicator(ctx context.Context, id uuid.UUID) (*domain.DebateAdjudicator, error)
	GetDebateSeat(ctx context.Context, debateID, adjudicatorID uuid.UUID) (*domain.DebateAdjudicator, error)
	GetDebatePanel(ctx context.Context, debateID uuid.UUID) ([]*domain.DebateAdjudicator, error)
	GetDebateTeam(ctx context.Context, id uuid.UUID) (*domain.DebateTeam, error)
	UpdateAdjudicatorBaseScore(ctx context.Context, id uuid.UUID, score float64) error
}

// Cache is the byte cache used for serialized question forms.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// EventProducer publishes domain events to the message broker.
type EventProducer interface {
	Send(ctx context.Context, topic string, message interface{}) error
}
