package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
	"feedback_service/pkg/logger"
)

// TopicScoreChanged receives an event whenever an adjudicator's base score
// is updated.
const TopicScoreChanged = "adjudicator-score-changes"

type ScoreServiceInterface interface {
	UpdateBaseScore(ctx context.Context, adjudicatorID uuid.UUID, roundID *uuid.UUID, score float64) (*domain.BaseScoreHistory, error)
	History(ctx context.Context, adjudicatorID uuid.UUID) ([]*domain.BaseScoreHistory, error)
}

type scoreService struct {
	historyRepo    ScoreHistoryRepository
	tournamentRepo TournamentRepository
	producer       EventProducer
	logger         *logger.Logger
}

func NewScoreService(
	historyRepo ScoreHistoryRepository,
	tournamentRepo TournamentRepository,
	producer EventProducer,
	log *logger.Logger,
) ScoreServiceInterface {
	return &scoreService{
		historyRepo:    historyRepo,
		tournamentRepo: tournamentRepo,
		producer:       producer,
		logger:         log,
	}
}

// UpdateBaseScore sets the adjudicator's base score and appends an audit
// entry. A nil round marks the pre-tournament baseline.
func (s *scoreService) UpdateBaseScore(ctx context.Context, adjudicatorID uuid.UUID, roundID *uuid.UUID, score float64) (*domain.BaseScoreHistory, error) {
	adj, err := s.tournamentRepo.GetAdjudicator(ctx, adjudicatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdjudicatorNotFound
		}
		return nil, err
	}

	if err := s.tournamentRepo.UpdateAdjudicatorBaseScore(ctx, adjudicatorID, score); err != nil {
		return nil, err
	}

	entry := &domain.BaseScoreHistory{
		AdjudicatorID: adjudicatorID,
		RoundID:       roundID,
		Score:         score,
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	event := map[string]interface{}{
		"adjudicator_id": adjudicatorID,
		"name":           adj.Name,
		"old_score":      adj.BaseScore,
		"new_score":      score,
		"round_id":       roundID,
	}
	if err := s.producer.Send(ctx, TopicScoreChanged, event); err != nil {
		s.logger.Error("failed to publish score change event",
			zap.Error(err),
			zap.String("adjudicator_id", adjudicatorID.String()),
		)
	}

	return entry, nil
}

func (s *scoreService) History(ctx context.Context, adjudicatorID uuid.UUID) ([]*domain.BaseScoreHistory, error) {
	if _, err := s.tournamentRepo.GetAdjudicator(ctx, adjudicatorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdjudicatorNotFound
		}
		return nil, err
	}
	return s.historyRepo.ListByAdjudicator(ctx, adjudicatorID)
}
